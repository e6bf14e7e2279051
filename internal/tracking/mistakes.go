package tracking

import (
	"time"

	"github.com/vytor/theoryflash/internal/models"
)

// MistakeClearStreak is how many correct answers in a row remove a mistake.
const MistakeClearStreak = 3

// RecordMistakeAnswer updates the mistake list in place for one answer.
func RecordMistakeAnswer(mistakes map[string]models.MistakeRecord, q models.Question, selected int, correct bool, now time.Time) {
	rec, exists := mistakes[q.ID]
	if correct {
		if !exists {
			return
		}
		rec.CorrectStreak++
		if rec.CorrectStreak >= MistakeClearStreak {
			delete(mistakes, q.ID)
			return
		}
		mistakes[q.ID] = rec
		return
	}

	mistakes[q.ID] = models.MistakeRecord{
		QuestionID:     q.ID,
		SelectedAnswer: selected,
		CorrectAnswer:  q.CorrectAnswer,
		Timestamp:      now,
		Category:       q.Category,
		Difficulty:     q.Difficulty,
		CorrectStreak:  0,
	}
}
