package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Kolanot/catalog-service/internal/domain"
	"github.com/Kolanot/catalog-service/internal/event"
	"github.com/Kolanot/catalog-service/internal/repository"
	apperrors "github.com/Kolanot/catalog-service/pkg/errors"
	"github.com/Kolanot/catalog-service/pkg/pagination"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) CreateCatalogue(ctx context.Context, cat *domain.Catalogue) error {
	return m.Called(ctx, cat).Error(0)
}

func (m *mockRepo) GetCatalogueByUUID(ctx context.Context, catalogueUUID string) (*domain.Catalogue, error) {
	args := m.Called(ctx, catalogueUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Catalogue), args.Error(1)
}

func (m *mockRepo) ResolveCatalogueUUID(ctx context.Context, scope repository.CatalogueScope) (string, error) {
	args := m.Called(ctx, scope)
	return args.String(0), args.Error(1)
}

func (m *mockRepo) CatalogueExists(ctx context.Context, scope repository.CatalogueScope) (bool, error) {
	args := m.Called(ctx, scope)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) CatalogueUUIDsForParty(ctx context.Context, partyID string) ([]string, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockRepo) CountLines(ctx context.Context, scope repository.CatalogueScope) (int64, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepo) CategoryNames(ctx context.Context, scope repository.CatalogueScope) ([]string, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockRepo) LineIDs(ctx context.Context, scope repository.CatalogueScope, filter repository.LineFilter, window pagination.Window) ([]int64, error) {
	args := m.Called(ctx, scope, filter, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *mockRepo) LinesByIDs(ctx context.Context, ids []int64) ([]domain.CatalogueLine, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CatalogueLine), args.Error(1)
}

func (m *mockRepo) GetLine(ctx context.Context, catalogueUUID, lineID string) (*domain.CatalogueLine, error) {
	args := m.Called(ctx, catalogueUUID, lineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogueLine), args.Error(1)
}

func (m *mockRepo) LineExists(ctx context.Context, catalogueUUID, lineID string) (bool, error) {
	args := m.Called(ctx, catalogueUUID, lineID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) CreateLine(ctx context.Context, line *domain.CatalogueLine) error {
	return m.Called(ctx, line).Error(0)
}

func (m *mockRepo) UpdateLine(ctx context.Context, line *domain.CatalogueLine) error {
	return m.Called(ctx, line).Error(0)
}

func (m *mockRepo) DeleteLine(ctx context.Context, catalogueUUID, lineID string) error {
	return m.Called(ctx, catalogueUUID, lineID).Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) LineCreated(ctx context.Context, line *domain.CatalogueLine) {
	m.Called(ctx, line)
}

func (m *mockPublisher) LineUpdated(ctx context.Context, line *domain.CatalogueLine) {
	m.Called(ctx, line)
}

func (m *mockPublisher) LineDeleted(ctx context.Context, catalogueUUID, lineID string) {
	m.Called(ctx, catalogueUUID, lineID)
}

var _ event.Publisher = (*mockPublisher)(nil)

func newTestService(repo repository.CatalogueRepository, pub event.Publisher) *CatalogueService {
	if pub == nil {
		pub = event.NopPublisher{}
	}
	return NewCatalogueService(repo, pub, slog.New(slog.DiscardHandler))
}

func price(v int64) *int64 {
	return &v
}

func scope() repository.CatalogueScope {
	return repository.CatalogueScope{CatalogueID: "C1", PartyID: "P1"}
}

func TestGetCatalogueLinesCatalogueAbsent(t *testing.T) {
	repo := new(mockRepo)
	repo.On("ResolveCatalogueUUID", mock.Anything, scope()).
		Return("", apperrors.NotFound("catalogue", "C1"))

	svc := newTestService(repo, nil)
	page, err := svc.GetCatalogueLines(context.Background(), LineQuery{
		CatalogueID: "C1", PartyID: "P1",
		Window: pagination.Window{Limit: 20},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.EmptyPage(), page)
	// No call beyond the catalogue resolution.
	repo.AssertNotCalled(t, "CountLines", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "CategoryNames", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "LineIDs", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetCatalogueLinesZeroLimitReturnsMetadataOnly(t *testing.T) {
	repo := new(mockRepo)
	repo.On("ResolveCatalogueUUID", mock.Anything, scope()).Return("u-1", nil)
	repo.On("CountLines", mock.Anything, scope()).Return(int64(5), nil)
	repo.On("CategoryNames", mock.Anything, scope()).Return([]string{"Electronics", "Tools"}, nil)

	svc := newTestService(repo, nil)
	page, err := svc.GetCatalogueLines(context.Background(), LineQuery{
		CatalogueID: "C1", PartyID: "P1",
		Window: pagination.Window{Limit: 0},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), page.TotalSize)
	require.NotNil(t, page.CatalogueUUID)
	assert.Equal(t, "u-1", *page.CatalogueUUID)
	assert.Equal(t, []string{"Electronics", "Tools"}, page.CategoryNames)
	assert.Empty(t, page.Lines)
	repo.AssertNotCalled(t, "LineIDs", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetCatalogueLinesCategoryFilterWithSort(t *testing.T) {
	// Five lines in the catalogue: three tagged Tools (prices 10, 5 and
	// unpriced), two tagged Electronics. Category filter plus a window of
	// two yields the first two Tools lines in storage order, then sorting
	// puts the cheaper one first. Metadata stays catalogue-wide.
	repo := new(mockRepo)
	category := "Tools"
	window := pagination.Window{Limit: 2, Offset: 0}
	filter := repository.LineFilter{CategoryName: &category}

	repo.On("ResolveCatalogueUUID", mock.Anything, scope()).Return("u-1", nil)
	repo.On("CountLines", mock.Anything, scope()).Return(int64(5), nil)
	repo.On("CategoryNames", mock.Anything, scope()).Return([]string{"Electronics", "Tools"}, nil)
	repo.On("LineIDs", mock.Anything, scope(), filter, window).Return([]int64{1, 2}, nil)
	repo.On("LinesByIDs", mock.Anything, []int64{1, 2}).Return([]domain.CatalogueLine{
		{InternalID: 1, ID: "T1", PriceAmount: price(10)},
		{InternalID: 2, ID: "T2", PriceAmount: price(5)},
	}, nil)

	svc := newTestService(repo, nil)
	page, err := svc.GetCatalogueLines(context.Background(), LineQuery{
		CatalogueID: "C1", PartyID: "P1",
		CategoryName: &category,
		Sort:         domain.SortPriceLowToHigh,
		Window:       window,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), page.TotalSize)
	assert.Equal(t, []string{"Electronics", "Tools"}, page.CategoryNames)
	require.Len(t, page.Lines, 2)
	assert.Equal(t, "T2", page.Lines[0].ID)
	assert.Equal(t, "T1", page.Lines[1].ID)
}

func TestGetCatalogueLinesEmptyCandidateSet(t *testing.T) {
	repo := new(mockRepo)
	repo.On("ResolveCatalogueUUID", mock.Anything, scope()).Return("u-1", nil)
	repo.On("CountLines", mock.Anything, scope()).Return(int64(5), nil)
	repo.On("CategoryNames", mock.Anything, scope()).Return([]string{"Tools"}, nil)
	repo.On("LineIDs", mock.Anything, scope(), mock.Anything, mock.Anything).Return([]int64{}, nil)

	svc := newTestService(repo, nil)
	page, err := svc.GetCatalogueLines(context.Background(), LineQuery{
		CatalogueID: "C1", PartyID: "P1",
		Window: pagination.Window{Limit: 20, Offset: 100},
	})

	require.NoError(t, err)
	assert.Empty(t, page.Lines)
	assert.Equal(t, int64(5), page.TotalSize)
	repo.AssertNotCalled(t, "LinesByIDs", mock.Anything, mock.Anything)
}

func TestGetCatalogueLinesSearchWithoutLanguageRejected(t *testing.T) {
	repo := new(mockRepo)
	search := "drill"

	svc := newTestService(repo, nil)
	_, err := svc.GetCatalogueLines(context.Background(), LineQuery{
		CatalogueID: "C1", PartyID: "P1",
		SearchText: &search,
		Window:     pagination.Window{Limit: 20},
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "ResolveCatalogueUUID", mock.Anything, mock.Anything)
}

func TestGetCatalogueLinesQueryFailurePropagates(t *testing.T) {
	repo := new(mockRepo)
	repo.On("ResolveCatalogueUUID", mock.Anything, scope()).Return("u-1", nil)
	repo.On("CountLines", mock.Anything, scope()).
		Return(int64(0), apperrors.QueryExecution(errors.New("boom")))

	svc := newTestService(repo, nil)
	_, err := svc.GetCatalogueLines(context.Background(), LineQuery{
		CatalogueID: "C1", PartyID: "P1",
		Window: pagination.Window{Limit: 20},
	})

	assert.ErrorIs(t, err, apperrors.ErrQueryExecution)
}

func TestGetCatalogueLinesHydrationFailureIsFullFailure(t *testing.T) {
	repo := new(mockRepo)
	repo.On("ResolveCatalogueUUID", mock.Anything, scope()).Return("u-1", nil)
	repo.On("CountLines", mock.Anything, scope()).Return(int64(5), nil)
	repo.On("CategoryNames", mock.Anything, scope()).Return([]string{"Tools"}, nil)
	repo.On("LineIDs", mock.Anything, scope(), mock.Anything, mock.Anything).Return([]int64{1}, nil)
	repo.On("LinesByIDs", mock.Anything, []int64{1}).
		Return(nil, apperrors.QueryExecution(errors.New("boom")))

	svc := newTestService(repo, nil)
	_, err := svc.GetCatalogueLines(context.Background(), LineQuery{
		CatalogueID: "C1", PartyID: "P1",
		Window: pagination.Window{Limit: 20},
	})

	assert.ErrorIs(t, err, apperrors.ErrQueryExecution)
}

func validLineFor(cat *domain.Catalogue) *domain.CatalogueLine {
	return &domain.CatalogueLine{
		ID:                  "L1",
		CatalogueUUID:       cat.UUID,
		ManufacturerItemID:  "L1",
		ManufacturerPartyID: cat.ProviderID,
		Name:                "Cordless Drill",
		Classifications:     []domain.Classification{{Name: "Tools"}},
	}
}

func TestCreateLinePublishesEvent(t *testing.T) {
	cat := &domain.Catalogue{ID: "C1", UUID: "u-1", ProviderID: "P1"}
	line := validLineFor(cat)

	repo := new(mockRepo)
	repo.On("GetCatalogueByUUID", mock.Anything, "u-1").Return(cat, nil)
	repo.On("LineExists", mock.Anything, "u-1", "L1").Return(false, nil)
	repo.On("CreateLine", mock.Anything, line).Return(nil)

	pub := new(mockPublisher)
	pub.On("LineCreated", mock.Anything, line).Return()

	svc := newTestService(repo, pub)
	err := svc.CreateLine(context.Background(), line)

	require.NoError(t, err)
	pub.AssertCalled(t, "LineCreated", mock.Anything, line)
}

func TestCreateLineRejectsInvalidLine(t *testing.T) {
	cat := &domain.Catalogue{ID: "C1", UUID: "u-1", ProviderID: "P1"}
	line := validLineFor(cat)
	line.Classifications = nil

	repo := new(mockRepo)
	repo.On("GetCatalogueByUUID", mock.Anything, "u-1").Return(cat, nil)

	svc := newTestService(repo, nil)
	err := svc.CreateLine(context.Background(), line)

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "CreateLine", mock.Anything, mock.Anything)
}

func TestCreateLineRejectsDuplicate(t *testing.T) {
	cat := &domain.Catalogue{ID: "C1", UUID: "u-1", ProviderID: "P1"}
	line := validLineFor(cat)

	repo := new(mockRepo)
	repo.On("GetCatalogueByUUID", mock.Anything, "u-1").Return(cat, nil)
	repo.On("LineExists", mock.Anything, "u-1", "L1").Return(true, nil)

	svc := newTestService(repo, nil)
	err := svc.CreateLine(context.Background(), line)

	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	repo.AssertNotCalled(t, "CreateLine", mock.Anything, mock.Anything)
}

func TestUpdateLinePublishesEvent(t *testing.T) {
	cat := &domain.Catalogue{ID: "C1", UUID: "u-1", ProviderID: "P1"}
	line := validLineFor(cat)

	repo := new(mockRepo)
	repo.On("GetCatalogueByUUID", mock.Anything, "u-1").Return(cat, nil)
	repo.On("UpdateLine", mock.Anything, line).Return(nil)

	pub := new(mockPublisher)
	pub.On("LineUpdated", mock.Anything, line).Return()

	svc := newTestService(repo, pub)
	err := svc.UpdateLine(context.Background(), line)

	require.NoError(t, err)
	pub.AssertCalled(t, "LineUpdated", mock.Anything, line)
}

func TestDeleteLinePublishesEvent(t *testing.T) {
	repo := new(mockRepo)
	repo.On("DeleteLine", mock.Anything, "u-1", "L1").Return(nil)

	pub := new(mockPublisher)
	pub.On("LineDeleted", mock.Anything, "u-1", "L1").Return()

	svc := newTestService(repo, pub)
	err := svc.DeleteLine(context.Background(), "u-1", "L1")

	require.NoError(t, err)
	pub.AssertCalled(t, "LineDeleted", mock.Anything, "u-1", "L1")
}

func TestDeleteLineNotFoundSkipsEvent(t *testing.T) {
	repo := new(mockRepo)
	repo.On("DeleteLine", mock.Anything, "u-1", "missing").
		Return(apperrors.NotFound("catalogue line", "missing"))

	pub := new(mockPublisher)

	svc := newTestService(repo, pub)
	err := svc.DeleteLine(context.Background(), "u-1", "missing")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	pub.AssertNotCalled(t, "LineDeleted", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateCatalogueGeneratesUUID(t *testing.T) {
	repo := new(mockRepo)
	repo.On("CreateCatalogue", mock.Anything, mock.Anything).Return(nil)

	cat := &domain.Catalogue{ID: "C1", ProviderID: "P1"}
	svc := newTestService(repo, nil)
	err := svc.CreateCatalogue(context.Background(), cat)

	require.NoError(t, err)
	assert.NotEmpty(t, cat.UUID)
}

func TestCreateCatalogueRequiresIDs(t *testing.T) {
	repo := new(mockRepo)

	svc := newTestService(repo, nil)
	err := svc.CreateCatalogue(context.Background(), &domain.Catalogue{ID: "C1"})

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "CreateCatalogue", mock.Anything, mock.Anything)
}
