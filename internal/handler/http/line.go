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
	"github.com/Kolanot/catalog-service/pkg/validator"
)

// LineHandler serves catalogue line write and lookup endpoints.
type LineHandler struct {
	service *service.CatalogueService
	logger  *slog.Logger
}

// NewLineHandler creates a catalogue line HTTP handler.
func NewLineHandler(svc *service.CatalogueService, logger *slog.Logger) *LineHandler {
	return &LineHandler{service: svc, logger: logger}
}

// LineRequest is the payload for creating or replacing a catalogue line.
type LineRequest struct {
	ID                  string                  `json:"id" validate:"required"`
	ManufacturerItemID  string                  `json:"manufacturer_item_id" validate:"omitempty,max=255"`
	ManufacturerPartyID string                  `json:"manufacturer_party_id" validate:"required"`
	Name                string                  `json:"name" validate:"required,max=255"`
	PriceAmount         *int64                  `json:"price_amount" validate:"omitempty,min=0"`
	Currency            string                  `json:"currency" validate:"omitempty,len=3"`
	Classifications     []ClassificationRequest `json:"classifications" validate:"required,min=1,dive"`
	Texts               []LocalizedTextRequest  `json:"texts" validate:"omitempty,dive"`
}

// ClassificationRequest is one category tag on a line payload.
type ClassificationRequest struct {
	Code string `json:"code" validate:"omitempty,max=64"`
	Name string `json:"name" validate:"required,max=255"`
}

// LocalizedTextRequest is one translated text value on a line payload.
type LocalizedTextRequest struct {
	LanguageID string `json:"language_id" validate:"required,max=16"`
	Field      string `json:"field" validate:"required,max=64"`
	Value      string `json:"value" validate:"required"`
}

func (req *LineRequest) toDomain(catalogueUUID string) *domain.CatalogueLine {
	line := &domain.CatalogueLine{
		ID:                  req.ID,
		CatalogueUUID:       catalogueUUID,
		ManufacturerItemID:  req.ManufacturerItemID,
		ManufacturerPartyID: req.ManufacturerPartyID,
		Name:                req.Name,
		PriceAmount:         req.PriceAmount,
		Currency:            req.Currency,
		Classifications:     make([]domain.Classification, 0, len(req.Classifications)),
	}
	for _, cl := range req.Classifications {
		line.Classifications = append(line.Classifications, domain.Classification{Code: cl.Code, Name: cl.Name})
	}
	for _, t := range req.Texts {
		line.Texts = append(line.Texts, domain.LocalizedText{LanguageID: t.LanguageID, Field: t.Field, Value: t.Value})
	}
	return line
}

// CreateLine handles POST /catalogues/{catalogueUuid}/lines.
func (h *LineHandler) CreateLine(w http.ResponseWriter, r *http.Request) {
	catalogueUUID, ok := httputil.ParseUUID(w, chi.URLParam(r, "catalogueUuid"))
	if !ok {
		return
	}

	var req LineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body"), h.logger)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	line := req.toDomain(catalogueUUID.String())
	if err := h.service.CreateLine(r.Context(), line); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: line})
}

// GetLine handles GET /catalogues/{catalogueUuid}/lines/{lineId}.
func (h *LineHandler) GetLine(w http.ResponseWriter, r *http.Request) {
	catalogueUUID, ok := httputil.ParseUUID(w, chi.URLParam(r, "catalogueUuid"))
	if !ok {
		return
	}

	line, err := h.service.GetLine(r.Context(), catalogueUUID.String(), chi.URLParam(r, "lineId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: line})
}

// UpdateLine handles PUT /catalogues/{catalogueUuid}/lines/{lineId}. The
// line id in the path wins over any id in the payload.
func (h *LineHandler) UpdateLine(w http.ResponseWriter, r *http.Request) {
	catalogueUUID, ok := httputil.ParseUUID(w, chi.URLParam(r, "catalogueUuid"))
	if !ok {
		return
	}

	var req LineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body"), h.logger)
		return
	}
	req.ID = chi.URLParam(r, "lineId")
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	line := req.toDomain(catalogueUUID.String())
	if err := h.service.UpdateLine(r.Context(), line); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: line})
}

// DeleteLine handles DELETE /catalogues/{catalogueUuid}/lines/{lineId}.
func (h *LineHandler) DeleteLine(w http.ResponseWriter, r *http.Request) {
	catalogueUUID, ok := httputil.ParseUUID(w, chi.URLParam(r, "catalogueUuid"))
	if !ok {
		return
	}

	if err := h.service.DeleteLine(r.Context(), catalogueUUID.String(), chi.URLParam(r, "lineId")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
