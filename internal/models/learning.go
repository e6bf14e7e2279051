package models

import "time"

// LearningItem is the review schedule of one question or sign.
type LearningItem struct {
	ID           string    `json:"id"`
	Repetitions  int       `json:"repetitions"`
	IntervalDays float64   `json:"intervalDays"`
	EaseFactor   float64   `json:"easeFactor"`
	NextReviewAt time.Time `json:"nextReviewAt"`
}

// MistakeRecord tracks a wrongly answered question until it has been
// answered correctly enough times in a row.
type MistakeRecord struct {
	QuestionID     string    `json:"questionId"`
	SelectedAnswer int       `json:"selectedAnswer"`
	CorrectAnswer  int       `json:"correctAnswer"`
	Timestamp      time.Time `json:"timestamp"`
	Category       string    `json:"category"`
	Difficulty     string    `json:"difficulty"`
	CorrectStreak  int       `json:"correctStreak"`
}

type LearningState struct {
	Items    map[string]LearningItem  `json:"items"`
	Mistakes map[string]MistakeRecord `json:"mistakes"`
}

// SignStat counts quiz answers about a single sign.
type SignStat struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Accuracy returns the correct ratio in [0,1], or 0 without data.
func (s SignStat) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total)
}

// FlashcardProgress is the ladder position of one sign card.
type FlashcardProgress struct {
	SignID         string    `json:"signId"`
	Level          int       `json:"level"`
	Streak         int       `json:"streak"`
	NextDue        time.Time `json:"nextDue"`
	LastReviewedAt time.Time `json:"lastReviewedAt"`
}
