package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Kolanot/catalog-service/internal/domain"
	"github.com/Kolanot/catalog-service/internal/event"
	"github.com/Kolanot/catalog-service/internal/repository"
	"github.com/Kolanot/catalog-service/internal/validation"
	apperrors "github.com/Kolanot/catalog-service/pkg/errors"
	"github.com/Kolanot/catalog-service/pkg/pagination"
)

// LineQuery is one catalogue line page request.
type LineQuery struct {
	CatalogueID  string
	PartyID      string
	CategoryName *string
	SearchText   *string
	LanguageID   *string
	Sort         domain.SortOption
	Window       pagination.Window
}

// CatalogueService orchestrates catalogue reads, line queries and line writes.
type CatalogueService struct {
	repo      repository.CatalogueRepository
	publisher event.Publisher
	logger    *slog.Logger
}

// NewCatalogueService creates the catalogue service.
func NewCatalogueService(repo repository.CatalogueRepository, publisher event.Publisher, logger *slog.Logger) *CatalogueService {
	return &CatalogueService{repo: repo, publisher: publisher, logger: logger}
}

// GetCatalogueLines resolves one page of catalogue lines with catalogue-wide
// metadata. The returned total size and category names ignore the active
// filters. A catalogue that does not exist for the party yields the empty
// page, not an error.
func (s *CatalogueService) GetCatalogueLines(ctx context.Context, q LineQuery) (domain.CataloguePage, error) {
	if err := validateFilter(q); err != nil {
		return domain.CataloguePage{}, err
	}

	scope := repository.CatalogueScope{CatalogueID: q.CatalogueID, PartyID: q.PartyID}

	catalogueUUID, err := s.repo.ResolveCatalogueUUID(ctx, scope)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.EmptyPage(), nil
		}
		return domain.CataloguePage{}, err
	}

	totalSize, err := s.repo.CountLines(ctx, scope)
	if err != nil {
		return domain.CataloguePage{}, err
	}
	categoryNames, err := s.repo.CategoryNames(ctx, scope)
	if err != nil {
		return domain.CataloguePage{}, err
	}

	page := domain.CataloguePage{
		TotalSize:     totalSize,
		CatalogueUUID: &catalogueUUID,
		CategoryNames: categoryNames,
		Lines:         []domain.CatalogueLine{},
	}

	if q.Window.Limit == 0 {
		return page, nil
	}

	filter := repository.LineFilter{
		CategoryName: q.CategoryName,
		SearchText:   q.SearchText,
		LanguageID:   q.LanguageID,
	}
	ids, err := s.repo.LineIDs(ctx, scope, filter, q.Window)
	if err != nil {
		return domain.CataloguePage{}, err
	}
	if len(ids) == 0 {
		return page, nil
	}

	lines, err := s.repo.LinesByIDs(ctx, ids)
	if err != nil {
		return domain.CataloguePage{}, err
	}
	domain.SortLinesByPrice(lines, q.Sort)
	page.Lines = lines

	return page, nil
}

// validateFilter rejects filter combinations before any store call is made.
func validateFilter(q LineQuery) error {
	if q.SearchText != nil && *q.SearchText != "" {
		if q.LanguageID == nil || *q.LanguageID == "" {
			return apperrors.InvalidInput("languageId is required when searchText is set")
		}
	}
	return nil
}

// CreateCatalogue registers a new catalogue for a party. The catalogue UUID
// is generated here.
func (s *CatalogueService) CreateCatalogue(ctx context.Context, cat *domain.Catalogue) error {
	if cat.ID == "" || cat.ProviderID == "" {
		return apperrors.InvalidInput("catalogue id and provider party id are required")
	}
	cat.UUID = uuid.New().String()
	return s.repo.CreateCatalogue(ctx, cat)
}

// GetCatalogue loads a catalogue by its UUID.
func (s *CatalogueService) GetCatalogue(ctx context.Context, catalogueUUID string) (*domain.Catalogue, error) {
	return s.repo.GetCatalogueByUUID(ctx, catalogueUUID)
}

// CatalogueExists reports whether the party provides a catalogue with the
// given id.
func (s *CatalogueService) CatalogueExists(ctx context.Context, catalogueID, partyID string) (bool, error) {
	return s.repo.CatalogueExists(ctx, repository.CatalogueScope{CatalogueID: catalogueID, PartyID: partyID})
}

// CatalogueUUIDsForParty lists the catalogue UUIDs a party provides.
func (s *CatalogueService) CatalogueUUIDsForParty(ctx context.Context, partyID string) ([]string, error) {
	return s.repo.CatalogueUUIDsForParty(ctx, partyID)
}

// GetLine loads one catalogue line by business id.
func (s *CatalogueService) GetLine(ctx context.Context, catalogueUUID, lineID string) (*domain.CatalogueLine, error) {
	return s.repo.GetLine(ctx, catalogueUUID, lineID)
}

// CreateLine validates and persists a new catalogue line, then publishes a
// creation event. Validation failures and duplicate line ids are rejected
// before any write happens.
func (s *CatalogueService) CreateLine(ctx context.Context, line *domain.CatalogueLine) error {
	cat, err := s.repo.GetCatalogueByUUID(ctx, line.CatalogueUUID)
	if err != nil {
		return err
	}

	if msgs := validation.NewLineValidator(cat, line).Validate(); len(msgs) > 0 {
		return apperrors.InvalidInput(strings.Join(msgs, "; "))
	}

	exists, err := s.repo.LineExists(ctx, line.CatalogueUUID, line.ID)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.AlreadyExists("catalogue line", "id", line.ID)
	}

	if err := s.repo.CreateLine(ctx, line); err != nil {
		return err
	}
	s.publisher.LineCreated(ctx, line)
	return nil
}

// UpdateLine validates and replaces an existing catalogue line, then
// publishes an update event.
func (s *CatalogueService) UpdateLine(ctx context.Context, line *domain.CatalogueLine) error {
	cat, err := s.repo.GetCatalogueByUUID(ctx, line.CatalogueUUID)
	if err != nil {
		return err
	}

	if msgs := validation.NewLineValidator(cat, line).Validate(); len(msgs) > 0 {
		return apperrors.InvalidInput(strings.Join(msgs, "; "))
	}

	if err := s.repo.UpdateLine(ctx, line); err != nil {
		return err
	}
	s.publisher.LineUpdated(ctx, line)
	return nil
}

// DeleteLine removes a catalogue line and publishes a deletion event.
func (s *CatalogueService) DeleteLine(ctx context.Context, catalogueUUID, lineID string) error {
	if err := s.repo.DeleteLine(ctx, catalogueUUID, lineID); err != nil {
		return err
	}
	s.publisher.LineDeleted(ctx, catalogueUUID, lineID)
	return nil
}
