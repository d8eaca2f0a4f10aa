package rest

import (
	"context"
	"net/http"
	"strings"

	"github.com/heartmarshall/vocabook/internal/provider"
)

type definitionResolver interface {
	Resolve(ctx context.Context, word string) provider.DefinitionResult
}

// DefinitionHandler exposes the dictionary lookup so clients never hold the API key.
type DefinitionHandler struct {
	resolver definitionResolver
}

// NewDefinitionHandler creates a DefinitionHandler.
func NewDefinitionHandler(resolver definitionResolver) *DefinitionHandler {
	return &DefinitionHandler{resolver: resolver}
}

// DefinitionResponse is the wire shape of a lookup result.
type DefinitionResponse struct {
	Word         string  `json:"word"`
	Definition   string  `json:"definition"`
	PartOfSpeech *string `json:"partOfSpeech,omitempty"`
	Example      *string `json:"example,omitempty"`
	Found        bool    `json:"found"`
}

// Get handles GET /definitions/{word}. It always answers 200; a failed
// lookup yields the fallback definition with found=false.
func (h *DefinitionHandler) Get(w http.ResponseWriter, r *http.Request) {
	word := strings.TrimSpace(r.PathValue("word"))
	if word == "" {
		writeError(w, http.StatusBadRequest, "word is required")
		return
	}

	res := h.resolver.Resolve(r.Context(), word)
	writeJSON(w, http.StatusOK, DefinitionResponse{
		Word:         word,
		Definition:   res.Definition,
		PartOfSpeech: res.PartOfSpeech,
		Example:      res.Example,
		Found:        !res.IsFallback(),
	})
}
