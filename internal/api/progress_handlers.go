package api

import (
	"net/http"

	"github.com/vytor/theoryflash/internal/errors"
	"github.com/vytor/theoryflash/internal/logger"
)

type answerRequest struct {
	QuestionID string `json:"questionId"`
	Selected   *int   `json:"selected"`
}

type quizRequest struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

type examRequest struct {
	Passed bool `json:"passed"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	state, err := s.ProgressService.Snapshot(r.Context(), profileIDFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, state)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.ProgressService.Summary(r.Context(), profileIDFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, summary)
}

func (s *Server) handleRecordAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req answerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.QuestionID == "" {
		handleError(w, r, errors.NewValidationError("questionId", "is required"))
		return
	}
	if req.Selected == nil {
		handleError(w, r, errors.NewValidationError("selected", "is required"))
		return
	}

	out, err := s.ProgressService.RecordAnswer(r.Context(), profileIDFromContext(r.Context()), req.QuestionID, *req.Selected)
	if err != nil {
		handleError(w, r, err)
		return
	}
	log.Debug("answer recorded: question_id=%s, events=%d", req.QuestionID, len(out.Events))
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleCompleteQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	out, err := s.ProgressService.CompleteQuiz(r.Context(), profileIDFromContext(r.Context()), req.Correct, req.Total)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleRecordExam(w http.ResponseWriter, r *http.Request) {
	var req examRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	out, err := s.ProgressService.RecordExam(r.Context(), profileIDFromContext(r.Context()), req.Passed)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleTimeCheck(w http.ResponseWriter, r *http.Request) {
	out, err := s.ProgressService.CheckTimeAchievements(r.Context(), profileIDFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleDueReviews(w http.ResponseWriter, r *http.Request) {
	items, err := s.ProgressService.DueReviews(r.Context(), profileIDFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, items)
}

func (s *Server) handleMistakes(w http.ResponseWriter, r *http.Request) {
	mistakes, err := s.ProgressService.Mistakes(r.Context(), profileIDFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, mistakes)
}

func (s *Server) handleWeakCategories(w http.ResponseWriter, r *http.Request) {
	weak, err := s.ProgressService.WeakCategories(r.Context(), profileIDFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, weak)
}

func (s *Server) handleCategoryMastery(w http.ResponseWriter, r *http.Request) {
	mastery, err := s.ProgressService.CategoryMastery(r.Context(), profileIDFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, mastery)
}

func (s *Server) handleSignMastery(w http.ResponseWriter, r *http.Request) {
	mastery, err := s.ProgressService.SignMastery(r.Context(), profileIDFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, mastery)
}
