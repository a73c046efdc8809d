package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Kolanot/catalog-service/internal/domain"
	"github.com/Kolanot/catalog-service/internal/repository"
	apperrors "github.com/Kolanot/catalog-service/pkg/errors"
	"github.com/Kolanot/catalog-service/pkg/pagination"
)

func (r *Repository) LineIDs(ctx context.Context, scope repository.CatalogueScope, filter repository.LineFilter, window pagination.Window) ([]int64, error) {
	if window.Limit == 0 {
		return []int64{}, nil
	}

	q, err := buildLineIDQuery(scope, filter, window)
	if err != nil {
		return nil, apperrors.QueryExecution(err)
	}

	rows, err := r.db.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, apperrors.QueryExecution(err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.QueryExecution(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.QueryExecution(err)
	}
	return ids, nil
}

func (r *Repository) LinesByIDs(ctx context.Context, ids []int64) ([]domain.CatalogueLine, error) {
	if len(ids) == 0 {
		return []domain.CatalogueLine{}, nil
	}

	query := `
		SELECT l.id, l.business_id, c.uuid, l.manufacturer_item_id,
		       l.manufacturer_party_id, l.name, l.price_amount, l.currency,
		       l.created_at, l.updated_at
		FROM catalogue_lines l
		JOIN catalogues c ON l.catalogue_id = c.id
		WHERE l.id = ANY($1)
		ORDER BY l.id`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, apperrors.QueryExecution(err)
	}
	defer rows.Close()

	lines := []domain.CatalogueLine{}
	for rows.Next() {
		var line domain.CatalogueLine
		err := rows.Scan(
			&line.InternalID, &line.ID, &line.CatalogueUUID,
			&line.ManufacturerItemID, &line.ManufacturerPartyID, &line.Name,
			&line.PriceAmount, &line.Currency, &line.CreatedAt, &line.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.QueryExecution(err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.QueryExecution(err)
	}

	classifications, texts, err := r.lineChildren(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range lines {
		lines[i].Classifications = classifications[lines[i].InternalID]
		if lines[i].Classifications == nil {
			lines[i].Classifications = []domain.Classification{}
		}
		lines[i].Texts = texts[lines[i].InternalID]
	}
	return lines, nil
}

// lineChildren batch-loads classifications and localized texts for a set of
// line ids so hydration stays at three round trips total.
func (r *Repository) lineChildren(ctx context.Context, ids []int64) (map[int64][]domain.Classification, map[int64][]domain.LocalizedText, error) {
	classQuery := `
		SELECT line_id, code, name
		FROM classifications
		WHERE line_id = ANY($1)
		ORDER BY line_id, id`

	rows, err := r.db.Query(ctx, classQuery, ids)
	if err != nil {
		return nil, nil, apperrors.QueryExecution(err)
	}
	classifications := make(map[int64][]domain.Classification)
	for rows.Next() {
		var lineID int64
		var cl domain.Classification
		if err := rows.Scan(&lineID, &cl.Code, &cl.Name); err != nil {
			rows.Close()
			return nil, nil, apperrors.QueryExecution(err)
		}
		classifications[lineID] = append(classifications[lineID], cl)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.QueryExecution(err)
	}

	textQuery := `
		SELECT owner_id, language_id, field, value
		FROM localized_texts
		WHERE owner_id = ANY($1)
		ORDER BY owner_id, id`

	rows, err = r.db.Query(ctx, textQuery, ids)
	if err != nil {
		return nil, nil, apperrors.QueryExecution(err)
	}
	texts := make(map[int64][]domain.LocalizedText)
	for rows.Next() {
		var ownerID int64
		var t domain.LocalizedText
		if err := rows.Scan(&ownerID, &t.LanguageID, &t.Field, &t.Value); err != nil {
			rows.Close()
			return nil, nil, apperrors.QueryExecution(err)
		}
		texts[ownerID] = append(texts[ownerID], t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.QueryExecution(err)
	}

	return classifications, texts, nil
}

func (r *Repository) GetLine(ctx context.Context, catalogueUUID, lineID string) (*domain.CatalogueLine, error) {
	query := `
		SELECT l.id, l.business_id, c.uuid, l.manufacturer_item_id,
		       l.manufacturer_party_id, l.name, l.price_amount, l.currency,
		       l.created_at, l.updated_at
		FROM catalogue_lines l
		JOIN catalogues c ON l.catalogue_id = c.id
		WHERE c.uuid = $1 AND l.business_id = $2`

	var line domain.CatalogueLine
	err := r.db.QueryRow(ctx, query, catalogueUUID, lineID).Scan(
		&line.InternalID, &line.ID, &line.CatalogueUUID,
		&line.ManufacturerItemID, &line.ManufacturerPartyID, &line.Name,
		&line.PriceAmount, &line.Currency, &line.CreatedAt, &line.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("catalogue line", lineID)
		}
		return nil, apperrors.QueryExecution(err)
	}

	classifications, texts, err := r.lineChildren(ctx, []int64{line.InternalID})
	if err != nil {
		return nil, err
	}
	line.Classifications = classifications[line.InternalID]
	if line.Classifications == nil {
		line.Classifications = []domain.Classification{}
	}
	line.Texts = texts[line.InternalID]
	return &line, nil
}

func (r *Repository) LineExists(ctx context.Context, catalogueUUID, lineID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM catalogue_lines l
			JOIN catalogues c ON l.catalogue_id = c.id
			WHERE c.uuid = $1 AND l.business_id = $2
		)`

	var exists bool
	err := r.db.QueryRow(ctx, query, catalogueUUID, lineID).Scan(&exists)
	if err != nil {
		return false, apperrors.QueryExecution(err)
	}
	return exists, nil
}

func (r *Repository) CreateLine(ctx context.Context, line *domain.CatalogueLine) error {
	var catalogueID int64
	err := r.db.QueryRow(ctx,
		`SELECT id FROM catalogues WHERE uuid = $1`, line.CatalogueUUID,
	).Scan(&catalogueID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFound("catalogue", line.CatalogueUUID)
		}
		return apperrors.QueryExecution(err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperrors.QueryExecution(err)
	}
	defer tx.Rollback(ctx)

	insertLine := `
		INSERT INTO catalogue_lines (catalogue_id, business_id, manufacturer_item_id,
		                             manufacturer_party_id, name, price_amount, currency)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err = tx.QueryRow(ctx, insertLine,
		catalogueID, line.ID, line.ManufacturerItemID,
		line.ManufacturerPartyID, line.Name, line.PriceAmount, line.Currency,
	).Scan(&line.InternalID, &line.CreatedAt, &line.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperrors.AlreadyExists("catalogue line", "id", line.ID)
		}
		return apperrors.QueryExecution(err)
	}

	if err := insertLineChildren(ctx, tx, line); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return apperrors.QueryExecution(err)
	}
	return nil
}

func (r *Repository) UpdateLine(ctx context.Context, line *domain.CatalogueLine) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperrors.QueryExecution(err)
	}
	defer tx.Rollback(ctx)

	updateLine := `
		UPDATE catalogue_lines l
		SET manufacturer_item_id = $3, manufacturer_party_id = $4, name = $5,
		    price_amount = $6, currency = $7, updated_at = NOW()
		FROM catalogues c
		WHERE l.catalogue_id = c.id AND c.uuid = $1 AND l.business_id = $2
		RETURNING l.id, l.created_at, l.updated_at`

	err = tx.QueryRow(ctx, updateLine,
		line.CatalogueUUID, line.ID, line.ManufacturerItemID,
		line.ManufacturerPartyID, line.Name, line.PriceAmount, line.Currency,
	).Scan(&line.InternalID, &line.CreatedAt, &line.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFound("catalogue line", line.ID)
		}
		return apperrors.QueryExecution(err)
	}

	// Child rows are replaced wholesale on every update.
	if _, err := tx.Exec(ctx, `DELETE FROM classifications WHERE line_id = $1`, line.InternalID); err != nil {
		return apperrors.QueryExecution(err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM localized_texts WHERE owner_id = $1`, line.InternalID); err != nil {
		return apperrors.QueryExecution(err)
	}
	if err := insertLineChildren(ctx, tx, line); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return apperrors.QueryExecution(err)
	}
	return nil
}

func (r *Repository) DeleteLine(ctx context.Context, catalogueUUID, lineID string) error {
	query := `
		DELETE FROM catalogue_lines l
		USING catalogues c
		WHERE l.catalogue_id = c.id AND c.uuid = $1 AND l.business_id = $2`

	tag, err := r.db.Exec(ctx, query, catalogueUUID, lineID)
	if err != nil {
		return apperrors.QueryExecution(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("catalogue line", lineID)
	}
	return nil
}

func insertLineChildren(ctx context.Context, tx pgx.Tx, line *domain.CatalogueLine) error {
	for _, cl := range line.Classifications {
		_, err := tx.Exec(ctx,
			`INSERT INTO classifications (line_id, code, name) VALUES ($1, $2, $3)`,
			line.InternalID, cl.Code, cl.Name,
		)
		if err != nil {
			return apperrors.QueryExecution(err)
		}
	}
	for _, t := range line.Texts {
		_, err := tx.Exec(ctx,
			`INSERT INTO localized_texts (owner_id, language_id, field, value) VALUES ($1, $2, $3, $4)`,
			line.InternalID, t.LanguageID, t.Field, t.Value,
		)
		if err != nil {
			return apperrors.QueryExecution(err)
		}
	}
	return nil
}
