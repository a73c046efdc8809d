package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Kolanot/catalog-service/internal/domain"
	"github.com/Kolanot/catalog-service/internal/repository"
	"github.com/Kolanot/catalog-service/pkg/database"
	apperrors "github.com/Kolanot/catalog-service/pkg/errors"
)

const uniqueViolationCode = "23505"

// Repository implements repository.CatalogueRepository against Postgres.
type Repository struct {
	db database.DBTX
}

// NewRepository creates a catalogue repository backed by the given connection.
func NewRepository(db database.DBTX) *Repository {
	return &Repository{db: db}
}

var _ repository.CatalogueRepository = (*Repository)(nil)

func (r *Repository) CreateCatalogue(ctx context.Context, cat *domain.Catalogue) error {
	query := `
		INSERT INTO catalogues (business_id, uuid, provider_party_id, name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		cat.ID, cat.UUID, cat.ProviderID, cat.Name,
	).Scan(&cat.InternalID, &cat.CreatedAt, &cat.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperrors.AlreadyExists("catalogue", "id", cat.ID)
		}
		return apperrors.QueryExecution(err)
	}
	return nil
}

func (r *Repository) GetCatalogueByUUID(ctx context.Context, catalogueUUID string) (*domain.Catalogue, error) {
	query := `
		SELECT id, business_id, uuid, provider_party_id, name, created_at, updated_at
		FROM catalogues
		WHERE uuid = $1`

	var cat domain.Catalogue
	err := r.db.QueryRow(ctx, query, catalogueUUID).Scan(
		&cat.InternalID, &cat.ID, &cat.UUID, &cat.ProviderID,
		&cat.Name, &cat.CreatedAt, &cat.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("catalogue", catalogueUUID)
		}
		return nil, apperrors.QueryExecution(err)
	}
	return &cat, nil
}

func (r *Repository) ResolveCatalogueUUID(ctx context.Context, scope repository.CatalogueScope) (string, error) {
	query := `
		SELECT uuid
		FROM catalogues
		WHERE business_id = $1 AND provider_party_id = $2`

	var u string
	err := r.db.QueryRow(ctx, query, scope.CatalogueID, scope.PartyID).Scan(&u)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NotFound("catalogue", scope.CatalogueID)
		}
		return "", apperrors.QueryExecution(err)
	}
	return u, nil
}

func (r *Repository) CatalogueExists(ctx context.Context, scope repository.CatalogueScope) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM catalogues
			WHERE business_id = $1 AND provider_party_id = $2
		)`

	var exists bool
	err := r.db.QueryRow(ctx, query, scope.CatalogueID, scope.PartyID).Scan(&exists)
	if err != nil {
		return false, apperrors.QueryExecution(err)
	}
	return exists, nil
}

func (r *Repository) CatalogueUUIDsForParty(ctx context.Context, partyID string) ([]string, error) {
	query := `
		SELECT uuid
		FROM catalogues
		WHERE provider_party_id = $1
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, partyID)
	if err != nil {
		return nil, apperrors.QueryExecution(err)
	}
	defer rows.Close()

	uuids := []string{}
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, apperrors.QueryExecution(err)
		}
		uuids = append(uuids, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.QueryExecution(err)
	}
	return uuids, nil
}

func (r *Repository) CountLines(ctx context.Context, scope repository.CatalogueScope) (int64, error) {
	query := `
		SELECT COUNT(l.id)
		FROM catalogue_lines l
		JOIN catalogues c ON l.catalogue_id = c.id
		WHERE c.business_id = $1 AND c.provider_party_id = $2`

	var count int64
	err := r.db.QueryRow(ctx, query, scope.CatalogueID, scope.PartyID).Scan(&count)
	if err != nil {
		return 0, apperrors.QueryExecution(err)
	}
	return count, nil
}

func (r *Repository) CategoryNames(ctx context.Context, scope repository.CatalogueScope) ([]string, error) {
	query := `
		SELECT DISTINCT cl.name
		FROM classifications cl
		JOIN catalogue_lines l ON cl.line_id = l.id
		JOIN catalogues c ON l.catalogue_id = c.id
		WHERE c.business_id = $1 AND c.provider_party_id = $2
		ORDER BY cl.name`

	rows, err := r.db.Query(ctx, query, scope.CatalogueID, scope.PartyID)
	if err != nil {
		return nil, apperrors.QueryExecution(err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, apperrors.QueryExecution(err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.QueryExecution(err)
	}
	return names, nil
}
