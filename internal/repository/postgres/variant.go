package postgres

import (
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/Kolanot/catalog-service/internal/repository"
	"github.com/Kolanot/catalog-service/pkg/pagination"
)

var dialect = goqu.Dialect("postgres")

// lineIDQuery is an immutable description of one candidate-id query: the
// SQL text, its ordered arguments, and whether the SQL was written by hand
// rather than built through the query builder. Full-text variants are
// native because tsquery matching has no builder representation.
type lineIDQuery struct {
	SQL    string
	Args   []any
	Native bool
}

// Placeholder positions in the native variants are fixed. The filter
// arguments always come first, in the order catalogue id, party id,
// language id, search text, then category name if present, with the page
// window appended last.
const textSearchSQL = `SELECT DISTINCT l.id
FROM catalogue_lines l
JOIN catalogues c ON l.catalogue_id = c.id
JOIN localized_texts t ON t.owner_id = l.id
WHERE c.business_id = $1
  AND c.provider_party_id = $2
  AND ($3 = '' OR t.language_id = $3)
  AND t.field IN ('name', 'description')
  AND to_tsvector('simple', t.value) @@ plainto_tsquery('simple', $4)
ORDER BY l.id
LIMIT $5 OFFSET $6`

const textSearchWithCategorySQL = `SELECT DISTINCT l.id
FROM catalogue_lines l
JOIN catalogues c ON l.catalogue_id = c.id
JOIN localized_texts t ON t.owner_id = l.id
JOIN classifications cl ON cl.line_id = l.id
WHERE c.business_id = $1
  AND c.provider_party_id = $2
  AND ($3 = '' OR t.language_id = $3)
  AND t.field IN ('name', 'description')
  AND to_tsvector('simple', t.value) @@ plainto_tsquery('simple', $4)
  AND cl.name = $5
ORDER BY l.id
LIMIT $6 OFFSET $7`

// buildLineIDQuery selects one of four query shapes depending on which
// filters are present and returns the finished statement. Callers must not
// mutate the returned query.
func buildLineIDQuery(scope repository.CatalogueScope, filter repository.LineFilter, window pagination.Window) (lineIDQuery, error) {
	if filter.HasSearchText() {
		languageID := ""
		if filter.LanguageID != nil {
			languageID = *filter.LanguageID
		}
		args := []any{scope.CatalogueID, scope.PartyID, languageID, *filter.SearchText}
		sql := textSearchSQL
		if filter.HasCategory() {
			sql = textSearchWithCategorySQL
			args = append(args, *filter.CategoryName)
		}
		args = append(args, window.Limit, window.Offset)
		return lineIDQuery{SQL: sql, Args: args, Native: true}, nil
	}

	ds := dialect.From(goqu.T("catalogue_lines").As("l")).
		Prepared(true).
		Join(
			goqu.T("catalogues").As("c"),
			goqu.On(goqu.I("l.catalogue_id").Eq(goqu.I("c.id"))),
		).
		Where(
			goqu.I("c.business_id").Eq(scope.CatalogueID),
			goqu.I("c.provider_party_id").Eq(scope.PartyID),
		)

	if filter.HasCategory() {
		ds = ds.
			Join(
				goqu.T("classifications").As("cl"),
				goqu.On(goqu.I("cl.line_id").Eq(goqu.I("l.id"))),
			).
			Where(goqu.I("cl.name").Eq(*filter.CategoryName)).
			SelectDistinct(goqu.I("l.id"))
	} else {
		ds = ds.Select(goqu.I("l.id"))
	}

	ds = ds.
		Order(goqu.I("l.id").Asc()).
		Limit(uint(window.Limit)).
		Offset(uint(window.Offset))

	sql, args, err := ds.ToSQL()
	if err != nil {
		return lineIDQuery{}, err
	}
	return lineIDQuery{SQL: sql, Args: args, Native: false}, nil
}
