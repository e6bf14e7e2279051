package mastery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/theoryflash/internal/mastery"
	"github.com/vytor/theoryflash/internal/models"
)

func TestClassifyCategory(t *testing.T) {
	tests := []struct {
		name     string
		stat     models.CategoryStat
		expected string
	}{
		{"no answers", models.CategoryStat{}, mastery.Beginner},
		{"too few answers despite perfect accuracy", models.CategoryStat{Correct: 9, Total: 9, Accuracy: 100}, mastery.Beginner},
		{"exam ready", models.CategoryStat{Correct: 16, Total: 20, Accuracy: 80}, mastery.ExamReady},
		{"high accuracy but under twenty answers", models.CategoryStat{Correct: 15, Total: 15, Accuracy: 100}, mastery.Intermediate},
		{"intermediate boundary", models.CategoryStat{Correct: 5, Total: 10, Accuracy: 50}, mastery.Intermediate},
		{"below half", models.CategoryStat{Correct: 12, Total: 30, Accuracy: 40}, mastery.Beginner},
		{"79 percent over many answers", models.CategoryStat{Correct: 79, Total: 100, Accuracy: 79}, mastery.Intermediate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mastery.ClassifyCategory(tt.stat))
		})
	}
}

func TestClassifySign_FlashcardLevelWins(t *testing.T) {
	poorStats := models.SignStat{Correct: 1, Total: 10}
	greatStats := models.SignStat{Correct: 10, Total: 10}

	assert.Equal(t, mastery.Mastered, mastery.ClassifySign(5, poorStats))
	assert.Equal(t, mastery.Reviewing, mastery.ClassifySign(4, poorStats))
	assert.Equal(t, mastery.Reviewing, mastery.ClassifySign(3, poorStats))
	assert.Equal(t, mastery.Learning, mastery.ClassifySign(2, greatStats))
	assert.Equal(t, mastery.Learning, mastery.ClassifySign(1, greatStats))
}

func TestClassifySign_StatsFallback(t *testing.T) {
	tests := []struct {
		name     string
		stat     models.SignStat
		expected string
	}{
		{"no data", models.SignStat{}, mastery.New},
		{"mastered", models.SignStat{Correct: 9, Total: 10}, mastery.Mastered},
		{"mastered needs eight answers", models.SignStat{Correct: 7, Total: 7}, mastery.Reviewing},
		{"reviewing", models.SignStat{Correct: 3, Total: 4}, mastery.Reviewing},
		{"reviewing needs four answers", models.SignStat{Correct: 3, Total: 3}, mastery.Learning},
		{"low accuracy", models.SignStat{Correct: 2, Total: 10}, mastery.Learning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mastery.ClassifySign(0, tt.stat))
		})
	}
}
