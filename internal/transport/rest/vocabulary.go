package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/vocabook/internal/domain"
)

type vocabularyService interface {
	List(ctx context.Context) ([]domain.VocabularyEntry, error)
	Create(ctx context.Context, d domain.Draft) (domain.VocabularyEntry, error)
	Delete(ctx context.Context, id int64) error
}

// VocabularyHandler serves the owner-scoped /vocabulary endpoints.
type VocabularyHandler struct {
	svc      vocabularyService
	validate *requestValidator
	log      *slog.Logger
}

// NewVocabularyHandler creates a VocabularyHandler.
func NewVocabularyHandler(svc vocabularyService, logger *slog.Logger) *VocabularyHandler {
	return &VocabularyHandler{
		svc:      svc,
		validate: newRequestValidator(),
		log:      logger.With("handler", "vocabulary"),
	}
}

type createEntryRequest struct {
	Word         string  `json:"word"                   validate:"required,max=200"`
	Definition   string  `json:"definition"             validate:"required,max=4000"`
	PartOfSpeech *string `json:"partOfSpeech,omitempty" validate:"omitempty,max=100"`
	Example      *string `json:"example,omitempty"      validate:"omitempty,max=2000"`
	Note         *string `json:"note,omitempty"         validate:"omitempty,max=2000"`
}

type deleteEntryRequest struct {
	ID *int64 `json:"id" validate:"required,gt=0"`
}

// EntryResponse is the wire shape of a vocabulary entry.
type EntryResponse struct {
	ID           int64     `json:"id"`
	Word         string    `json:"word"`
	Definition   string    `json:"definition"`
	PartOfSpeech *string   `json:"partOfSpeech,omitempty"`
	Example      *string   `json:"example,omitempty"`
	Note         *string   `json:"note,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	OwnerID      string    `json:"ownerId"`
}

// List handles GET /vocabulary.
func (h *VocabularyHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.List(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, toEntryResponse(e))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create handles POST /vocabulary.
func (h *VocabularyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	entry, err := h.svc.Create(r.Context(), domain.Draft{
		Word:         req.Word,
		Definition:   req.Definition,
		PartOfSpeech: req.PartOfSpeech,
		Example:      req.Example,
		Note:         req.Note,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEntryResponse(entry))
}

// Delete handles DELETE /vocabulary. Entries of other owners are reported
// as not found.
func (h *VocabularyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteEntryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), *req.ID); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func toEntryResponse(e domain.VocabularyEntry) EntryResponse {
	return EntryResponse{
		ID:           e.ID,
		Word:         e.Word,
		Definition:   e.Definition,
		PartOfSpeech: e.PartOfSpeech,
		Example:      e.Example,
		Note:         e.Note,
		CreatedAt:    e.CreatedAt,
		OwnerID:      e.OwnerID.String(),
	}
}
