package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Kolanot/catalog-service/internal/domain"
	"github.com/Kolanot/catalog-service/internal/service"
	apperrors "github.com/Kolanot/catalog-service/pkg/errors"
	"github.com/Kolanot/catalog-service/pkg/httputil"
	"github.com/Kolanot/catalog-service/pkg/pagination"
	"github.com/Kolanot/catalog-service/pkg/validator"
)

// CatalogueHandler serves catalogue resources and the line page query.
type CatalogueHandler struct {
	service *service.CatalogueService
	logger  *slog.Logger
}

// NewCatalogueHandler creates a catalogue HTTP handler.
func NewCatalogueHandler(svc *service.CatalogueService, logger *slog.Logger) *CatalogueHandler {
	return &CatalogueHandler{service: svc, logger: logger}
}

// CreateCatalogueRequest is the payload for registering a catalogue.
type CreateCatalogueRequest struct {
	ID         string `json:"id" validate:"required"`
	ProviderID string `json:"provider_id" validate:"required"`
	Name       string `json:"name" validate:"omitempty,max=255"`
}

// GetCatalogueLines handles GET /parties/{partyId}/catalogues/{catalogueId}/lines.
// Filters, sorting and the page window come from query parameters.
func (h *CatalogueHandler) GetCatalogueLines(w http.ResponseWriter, r *http.Request) {
	window, err := pagination.FromRequest(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	sort, err := domain.ParseSortOption(r.URL.Query().Get("sortOption"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	q := service.LineQuery{
		CatalogueID: chi.URLParam(r, "catalogueId"),
		PartyID:     chi.URLParam(r, "partyId"),
		Sort:        sort,
		Window:      window,
	}
	if v := r.URL.Query().Get("categoryName"); v != "" {
		q.CategoryName = &v
	}
	if v := r.URL.Query().Get("searchText"); v != "" {
		q.SearchText = &v
	}
	if v := r.URL.Query().Get("languageId"); v != "" {
		q.LanguageID = &v
	}

	page, err := h.service.GetCatalogueLines(r.Context(), q)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: page})
}

// CreateCatalogue handles POST /catalogues.
func (h *CatalogueHandler) CreateCatalogue(w http.ResponseWriter, r *http.Request) {
	var req CreateCatalogueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body"), h.logger)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cat := &domain.Catalogue{
		ID:         req.ID,
		ProviderID: req.ProviderID,
		Name:       req.Name,
	}
	if err := h.service.CreateCatalogue(r.Context(), cat); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: cat})
}

// GetCatalogue handles GET /catalogues/{catalogueUuid}.
func (h *CatalogueHandler) GetCatalogue(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "catalogueUuid"))
	if !ok {
		return
	}

	cat, err := h.service.GetCatalogue(r.Context(), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cat})
}

// CatalogueExists handles HEAD /parties/{partyId}/catalogues/{catalogueId}.
// It answers 200 when the catalogue exists for the party and 404 otherwise,
// with no body either way.
func (h *CatalogueHandler) CatalogueExists(w http.ResponseWriter, r *http.Request) {
	exists, err := h.service.CatalogueExists(r.Context(),
		chi.URLParam(r, "catalogueId"), chi.URLParam(r, "partyId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if !exists {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// ListPartyCatalogues handles GET /parties/{partyId}/catalogues.
func (h *CatalogueHandler) ListPartyCatalogues(w http.ResponseWriter, r *http.Request) {
	uuids, err := h.service.CatalogueUUIDsForParty(r.Context(), chi.URLParam(r, "partyId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: uuids})
}
