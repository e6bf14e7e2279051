package tracking_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/theoryflash/internal/models"
	"github.com/vytor/theoryflash/internal/tracking"
)

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, tracking.Percent(0, 0))
	assert.Equal(t, 67, tracking.Percent(2, 3))
	assert.Equal(t, 33, tracking.Percent(1, 3))
	assert.Equal(t, 50, tracking.Percent(1, 2))
	assert.Equal(t, 100, tracking.Percent(4, 4))
}

func TestRecordCategoryAnswer_RandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for run := 0; run < 50; run++ {
		var stat models.CategoryStat
		correct := 0
		n := rng.Intn(60) + 1
		for i := 0; i < n; i++ {
			ok := rng.Intn(2) == 0
			if ok {
				correct++
			}
			stat = tracking.RecordCategoryAnswer(stat, ok)
		}

		require.Equal(t, n, stat.Total)
		require.Equal(t, correct, stat.Correct)
		require.Equal(t, int(math.Round(100*float64(correct)/float64(n))), stat.Accuracy)
	}
}

func TestWeakCategories(t *testing.T) {
	stats := map[string]models.CategoryStat{
		"signs":    {Correct: 2, Total: 5, Accuracy: 40},
		"priority": {Correct: 0, Total: 4, Accuracy: 0},
		"parking":  {Correct: 6, Total: 10, Accuracy: 60},
		"speed":    {Correct: 7, Total: 10, Accuracy: 70},
		"alcohol":  {Correct: 1, Total: 5, Accuracy: 20},
	}

	weak := tracking.WeakCategories(stats)

	names := make([]string, len(weak))
	for i, w := range weak {
		names[i] = w.Category
	}
	assert.Equal(t, []string{"alcohol", "signs", "parking"}, names)
	assert.False(t, tracking.IsWeak(stats["priority"]), "four answers is below the gate")
	assert.False(t, tracking.IsWeak(stats["speed"]), "70 percent is not weak")
}

func TestOverallAccuracy(t *testing.T) {
	stats := map[string]models.CategoryStat{
		"a": {Correct: 8, Total: 10},
		"b": {Correct: 7, Total: 10},
	}
	assert.InDelta(t, 75.0, tracking.OverallAccuracy(stats, 20), 1e-9)
	assert.Equal(t, 0.0, tracking.OverallAccuracy(stats, 0))
}
