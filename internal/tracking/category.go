package tracking

import (
	"math"
	"sort"

	"github.com/vytor/theoryflash/internal/models"
)

const (
	WeakMinAnswers  = 5
	WeakMaxAccuracy = 70
)

// Percent returns round(correct/total*100), or 0 when total is 0.
func Percent(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// RecordCategoryAnswer adds one answer to a category's counters.
func RecordCategoryAnswer(stat models.CategoryStat, correct bool) models.CategoryStat {
	stat.Total++
	if correct {
		stat.Correct++
	}
	stat.Accuracy = Percent(stat.Correct, stat.Total)
	return stat
}

// IsWeak reports whether a category needs more practice.
func IsWeak(stat models.CategoryStat) bool {
	return stat.Total >= WeakMinAnswers && stat.Accuracy < WeakMaxAccuracy
}

// WeakCategories lists weak categories, lowest accuracy first.
func WeakCategories(stats map[string]models.CategoryStat) []models.WeakCategory {
	weak := make([]models.WeakCategory, 0)
	for name, stat := range stats {
		if IsWeak(stat) {
			weak = append(weak, models.WeakCategory{Category: name, CategoryStat: stat})
		}
	}
	sort.Slice(weak, func(i, j int) bool {
		if weak[i].Accuracy != weak[j].Accuracy {
			return weak[i].Accuracy < weak[j].Accuracy
		}
		return weak[i].Category < weak[j].Category
	})
	return weak
}

// OverallAccuracy is 100 * sum(correct) / questionsAnswered.
func OverallAccuracy(stats map[string]models.CategoryStat, questionsAnswered int) float64 {
	if questionsAnswered <= 0 {
		return 0
	}
	correct := 0
	for _, stat := range stats {
		correct += stat.Correct
	}
	return 100 * float64(correct) / float64(questionsAnswered)
}
