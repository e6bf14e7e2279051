package mastery

import (
	"github.com/vytor/theoryflash/internal/models"
)

// Category mastery labels.
const (
	Beginner     = "beginner"
	Intermediate = "intermediate"
	ExamReady    = "exam-ready"
)

// Sign mastery labels.
const (
	New       = "new"
	Learning  = "learning"
	Reviewing = "reviewing"
	Mastered  = "mastered"
)

// ClassifyCategory labels a category from its running accuracy.
func ClassifyCategory(stat models.CategoryStat) string {
	switch {
	case stat.Total < 10:
		return Beginner
	case stat.Accuracy >= 80 && stat.Total >= 20:
		return ExamReady
	case stat.Accuracy >= 50:
		return Intermediate
	default:
		return Beginner
	}
}

// ClassifySign labels a sign. A nonzero flashcard level wins over quiz stats,
// even when the flashcard data is older than the stats.
func ClassifySign(flashcardLevel int, stat models.SignStat) string {
	switch {
	case flashcardLevel >= 5:
		return Mastered
	case flashcardLevel >= 3:
		return Reviewing
	case flashcardLevel >= 1:
		return Learning
	}

	if stat.Total == 0 {
		return New
	}
	acc := stat.Accuracy()
	switch {
	case stat.Total >= 8 && acc >= 0.9:
		return Mastered
	case stat.Total >= 4 && acc >= 0.7:
		return Reviewing
	default:
		return Learning
	}
}
