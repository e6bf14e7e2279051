package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vytor/theoryflash/internal/errors"
	"github.com/vytor/theoryflash/internal/models"
)

type historyResponse struct {
	Items  []models.AnswerHistory `json:"items"`
	Total  int                    `json:"total"`
	Limit  int                    `json:"limit"`
	Offset int                    `json:"offset"`
}

func (s *Server) handleLevel(w http.ResponseWriter, r *http.Request) {
	info, err := s.ProgressService.LevelInfo(r.Context(), profileIDFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, info)
}

func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.ProgressService.Levels())
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	views, err := s.ProgressService.Achievements(r.Context(), profileIDFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, views)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	filter, err := parseHistoryFilter(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	filter.ProfileID = profileIDFromContext(r.Context())

	items, total, err := s.ProgressService.History(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, historyResponse{
		Items:  items,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

func parseHistoryFilter(r *http.Request) (models.AnswerHistoryFilter, error) {
	q := r.URL.Query()
	filter := models.AnswerHistoryFilter{
		Category: q.Get("category"),
		Limit:    50,
	}

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 500 {
			return filter, errors.NewBadRequestError("limit must be between 1 and 500")
		}
		filter.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return filter, errors.NewBadRequestError("offset must be a non-negative integer")
		}
		filter.Offset = n
	}
	if v := q.Get("wrong"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return filter, errors.NewBadRequestError("wrong must be a boolean")
		}
		filter.OnlyWrong = b
	}
	if v := q.Get("since"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, errors.NewBadRequestError("since must be an RFC 3339 timestamp")
		}
		filter.Since = &t
	}
	return filter, nil
}
