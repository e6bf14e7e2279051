package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/levels", s.handleLevels)

	r.Route("/profiles", func(r chi.Router) {
		r.Get("/", s.handleProfiles)
		r.Post("/", s.handleCreateProfile)

		r.Route("/{id}", func(r chi.Router) {
			r.Use(profileIDMiddleware)

			r.Get("/", s.handleGetProfile)
			r.Delete("/", s.handleDeleteProfile)

			r.Get("/state", s.handleState)
			r.Get("/summary", s.handleSummary)
			r.Post("/answers", s.handleRecordAnswer)
			r.Post("/quizzes", s.handleCompleteQuiz)
			r.Post("/exams", s.handleRecordExam)
			r.Post("/time-check", s.handleTimeCheck)

			r.Get("/reviews/due", s.handleDueReviews)
			r.Get("/mistakes", s.handleMistakes)
			r.Get("/categories/weak", s.handleWeakCategories)
			r.Get("/categories/mastery", s.handleCategoryMastery)
			r.Get("/signs/mastery", s.handleSignMastery)

			r.Get("/flashcards/session", s.handleFlashcardSession)
			r.Post("/flashcards/{signID}/review", s.handleReviewFlashcard)

			r.Get("/level", s.handleLevel)
			r.Get("/achievements", s.handleAchievements)
			r.Get("/history", s.handleHistory)
		})
	})

	return r
}
