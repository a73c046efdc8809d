package repository

import (
	"context"

	"github.com/Kolanot/catalog-service/internal/domain"
	"github.com/Kolanot/catalog-service/pkg/pagination"
)

// CatalogueScope identifies the catalogue a query runs against: the
// caller-supplied catalogue business id together with the providing party.
type CatalogueScope struct {
	CatalogueID string
	PartyID     string
}

// LineFilter narrows a line query. Nil fields mean "not filtered".
// LanguageID restricts full-text matching to texts in that language and is
// only meaningful together with SearchText.
type LineFilter struct {
	CategoryName *string
	SearchText   *string
	LanguageID   *string
}

// HasCategory reports whether a category filter is present and non-empty.
func (f LineFilter) HasCategory() bool {
	return f.CategoryName != nil && *f.CategoryName != ""
}

// HasSearchText reports whether a full-text filter is present and non-empty.
func (f LineFilter) HasSearchText() bool {
	return f.SearchText != nil && *f.SearchText != ""
}

// CatalogueRepository is the persistence port for catalogues and their lines.
type CatalogueRepository interface {
	// CreateCatalogue persists a new catalogue and fills in its internal id.
	CreateCatalogue(ctx context.Context, cat *domain.Catalogue) error

	// GetCatalogueByUUID loads a catalogue by its UUID. Returns ErrNotFound
	// when no such catalogue exists.
	GetCatalogueByUUID(ctx context.Context, catalogueUUID string) (*domain.Catalogue, error)

	// ResolveCatalogueUUID maps a (catalogue id, party id) scope to the
	// catalogue's UUID. Returns ErrNotFound when the scope matches nothing.
	ResolveCatalogueUUID(ctx context.Context, scope CatalogueScope) (string, error)

	// CatalogueExists reports whether a catalogue exists for the scope.
	CatalogueExists(ctx context.Context, scope CatalogueScope) (bool, error)

	// CatalogueUUIDsForParty lists the UUIDs of all catalogues provided by
	// the given party.
	CatalogueUUIDsForParty(ctx context.Context, partyID string) ([]string, error)

	// CountLines returns the number of lines in the scoped catalogue,
	// ignoring any filters.
	CountLines(ctx context.Context, scope CatalogueScope) (int64, error)

	// CategoryNames returns the distinct classification names present in
	// the scoped catalogue, ignoring any filters.
	CategoryNames(ctx context.Context, scope CatalogueScope) ([]string, error)

	// LineIDs resolves the internal ids of the lines matching the filter,
	// windowed by limit/offset in storage order.
	LineIDs(ctx context.Context, scope CatalogueScope, filter LineFilter, window pagination.Window) ([]int64, error)

	// LinesByIDs batch-loads the full line records for the given internal
	// ids, including classifications and localized texts.
	LinesByIDs(ctx context.Context, ids []int64) ([]domain.CatalogueLine, error)

	// GetLine loads one line by its business id within a catalogue. Returns
	// ErrNotFound when absent.
	GetLine(ctx context.Context, catalogueUUID, lineID string) (*domain.CatalogueLine, error)

	// LineExists reports whether a line with the given business id exists
	// in the catalogue.
	LineExists(ctx context.Context, catalogueUUID, lineID string) (bool, error)

	// CreateLine persists a new line with its classifications and texts.
	CreateLine(ctx context.Context, line *domain.CatalogueLine) error

	// UpdateLine replaces an existing line's fields, classifications and
	// texts. Returns ErrNotFound when the line does not exist.
	UpdateLine(ctx context.Context, line *domain.CatalogueLine) error

	// DeleteLine removes a line and its child rows. Returns ErrNotFound
	// when the line does not exist.
	DeleteLine(ctx context.Context, catalogueUUID, lineID string) error
}
