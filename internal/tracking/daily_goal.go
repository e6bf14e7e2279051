package tracking

import (
	"time"

	"github.com/vytor/theoryflash/internal/models"
)

// RolloverDailyGoal starts a fresh goal when the stored day is not today.
func RolloverDailyGoal(g models.DailyGoalState, now time.Time) models.DailyGoalState {
	today := DateKey(now)
	if g.Date == today {
		return g
	}
	return models.DailyGoalState{Date: today}
}

// RecordDailyGoalAnswer counts one answer toward today's goal. justCompleted
// is true only on the answer that crosses the target.
func RecordDailyGoalAnswer(g models.DailyGoalState, now time.Time, target int) (updated models.DailyGoalState, justCompleted bool) {
	g = RolloverDailyGoal(g, now)
	g.QuestionsAnswered++
	if !g.Completed && g.QuestionsAnswered >= target {
		g.Completed = true
		return g, true
	}
	return g, false
}
