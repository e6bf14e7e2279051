package tracking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/theoryflash/internal/models"
	"github.com/vytor/theoryflash/internal/tracking"
)

func TestRecordDailyGoalAnswer_CompletesOnce(t *testing.T) {
	var g models.DailyGoalState
	completions := 0

	for i := 1; i <= 21; i++ {
		var done bool
		g, done = tracking.RecordDailyGoalAnswer(g, today, 20)
		if done {
			completions++
			assert.Equal(t, 20, i, "goal completes on the 20th answer")
		}
	}

	assert.Equal(t, 1, completions)
	assert.True(t, g.Completed)
	assert.Equal(t, 21, g.QuestionsAnswered)
}

func TestRolloverDailyGoal(t *testing.T) {
	stale := models.DailyGoalState{Date: "2024-05-09", QuestionsAnswered: 25, Completed: true}

	g := tracking.RolloverDailyGoal(stale, today)
	assert.Equal(t, models.DailyGoalState{Date: "2024-05-10"}, g)

	fresh := models.DailyGoalState{Date: "2024-05-10", QuestionsAnswered: 3}
	assert.Equal(t, fresh, tracking.RolloverDailyGoal(fresh, today))
}

func TestRecordDailyGoalAnswer_NewDayResets(t *testing.T) {
	g := models.DailyGoalState{Date: "2024-05-09", QuestionsAnswered: 20, Completed: true}

	g, done := tracking.RecordDailyGoalAnswer(g, today, 20)

	assert.False(t, done)
	assert.False(t, g.Completed)
	assert.Equal(t, 1, g.QuestionsAnswered)
}

func TestDateKey_UsesLocation(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	late := time.Date(2024, 5, 10, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-05-10", tracking.DateKey(late))
	assert.Equal(t, "2024-05-11", tracking.DateKey(late.In(berlin)))
}
