package achievements

import (
	"github.com/vytor/theoryflash/internal/models"
	"github.com/vytor/theoryflash/internal/tracking"
)

const (
	// accuracy achievements need this many answers before they can unlock
	accuracyMinAnswers = 20
	// category accuracy achievements need this many answers in the category
	categoryMinAnswers = 10
)

// Evaluate returns definitions newly satisfied by state, in catalog order.
// Already unlocked ids, time_of_day requirements and unknown requirement
// types are skipped. Evaluate does not modify state.
func (c *Catalog) Evaluate(state models.AchievementsState) []models.AchievementDefinition {
	unlocked := unlockedSet(state)
	var out []models.AchievementDefinition
	for _, d := range c.Achievements {
		if unlocked[d.ID] || d.Requirement.Type == models.ReqTimeOfDay {
			continue
		}
		if Satisfied(d.Requirement, state) {
			out = append(out, d)
		}
	}
	return out
}

// EvaluateTimeOfDay returns time_of_day definitions whose window holds hour.
func (c *Catalog) EvaluateTimeOfDay(state models.AchievementsState, hour int) []models.AchievementDefinition {
	unlocked := unlockedSet(state)
	var out []models.AchievementDefinition
	for _, d := range c.Achievements {
		if unlocked[d.ID] || d.Requirement.Type != models.ReqTimeOfDay {
			continue
		}
		if InWindow(d.Requirement.Start, d.Requirement.End, hour) {
			out = append(out, d)
		}
	}
	return out
}

// Satisfied evaluates one counter-based requirement.
func Satisfied(req models.Requirement, s models.AchievementsState) bool {
	switch req.Type {
	case models.ReqQuizzesCompleted:
		return s.QuizzesCompleted >= req.Value
	case models.ReqPerfectQuiz:
		return s.PerfectQuizzes >= req.Value
	case models.ReqAccuracyAbove:
		return s.QuestionsAnswered >= accuracyMinAnswers &&
			tracking.OverallAccuracy(s.CategoryAccuracy, s.QuestionsAnswered) >= float64(req.Value)
	case models.ReqStreakDays:
		return s.Streak.Current >= req.Value
	case models.ReqCategoryAccuracy:
		stat, ok := s.CategoryAccuracy[req.Category]
		return ok && stat.Total >= categoryMinAnswers && stat.Accuracy >= req.Value
	case models.ReqExamPassed:
		return s.ExamsPassed >= req.Value
	case models.ReqDailyGoalsCompleted:
		return s.DailyGoalsCompleted >= req.Value
	case models.ReqQuestionsAnswered:
		return s.QuestionsAnswered >= req.Value
	default:
		return false
	}
}

// InWindow reports start <= hour < end. A window with start > end wraps
// past midnight.
func InWindow(start, end, hour int) bool {
	if start <= end {
		return start <= hour && hour < end
	}
	return hour >= start || hour < end
}

func unlockedSet(s models.AchievementsState) map[string]bool {
	set := make(map[string]bool, len(s.UnlockedAchievementIDs))
	for _, id := range s.UnlockedAchievementIDs {
		set[id] = true
	}
	return set
}

// Apply appends newly unlocked definitions to state and adds their points.
// Ids already present are ignored, so applying twice never double-awards.
func Apply(state models.AchievementsState, defs []models.AchievementDefinition) (models.AchievementsState, []models.AchievementDefinition) {
	unlocked := unlockedSet(state)
	ids := append([]string(nil), state.UnlockedAchievementIDs...)
	var applied []models.AchievementDefinition
	for _, d := range defs {
		if unlocked[d.ID] {
			continue
		}
		unlocked[d.ID] = true
		ids = append(ids, d.ID)
		state.TotalXP += d.Points
		applied = append(applied, d)
	}
	state.UnlockedAchievementIDs = ids
	return state, applied
}
