package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/theoryflash/internal/errors"
)

type flashcardReviewRequest struct {
	Correct *bool `json:"correct"`
}

func (s *Server) handleFlashcardSession(w http.ResponseWriter, r *http.Request) {
	cards, err := s.ProgressService.FlashcardSession(r.Context(), profileIDFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, cards)
}

func (s *Server) handleReviewFlashcard(w http.ResponseWriter, r *http.Request) {
	var req flashcardReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Correct == nil {
		handleError(w, r, errors.NewValidationError("correct", "is required"))
		return
	}

	out, err := s.ProgressService.ReviewFlashcard(r.Context(), profileIDFromContext(r.Context()), chi.URLParam(r, "signID"), *req.Correct)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}
