package progress

import (
	"sort"
	"time"

	"github.com/vytor/theoryflash/internal/flashcard"
	"github.com/vytor/theoryflash/internal/mastery"
	"github.com/vytor/theoryflash/internal/models"
	"github.com/vytor/theoryflash/internal/scheduler"
	"github.com/vytor/theoryflash/internal/tracking"
)

// DueReviews lists scheduled items whose review time has come.
func (e *Engine) DueReviews(s State, now time.Time) []models.LearningItem {
	return scheduler.DueItems(s.Learning.Items, now)
}

// MasteredCount counts mastered questions.
func (e *Engine) MasteredCount(s State) int {
	return scheduler.CountMastered(s.Learning.Items)
}

// Mistakes lists open mistakes, most recent first.
func (e *Engine) Mistakes(s State) []models.MistakeRecord {
	out := make([]models.MistakeRecord, 0, len(s.Learning.Mistakes))
	for id, m := range s.Learning.Mistakes {
		m.QuestionID = id
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].QuestionID < out[j].QuestionID
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// WeakCategories lists categories needing practice, weakest first.
func (e *Engine) WeakCategories(s State) []models.WeakCategory {
	return tracking.WeakCategories(s.Achievements.CategoryAccuracy)
}

// CategoryMastery labels every known category, including untouched ones.
func (e *Engine) CategoryMastery(s State) []models.CategoryMastery {
	names := make(map[string]bool)
	for _, c := range e.bank.Categories() {
		names[c] = true
	}
	for c := range s.Achievements.CategoryAccuracy {
		names[c] = true
	}

	out := make([]models.CategoryMastery, 0, len(names))
	for name := range names {
		stat := s.Achievements.CategoryAccuracy[name]
		out = append(out, models.CategoryMastery{
			Category:     name,
			Level:        mastery.ClassifyCategory(stat),
			CategoryStat: stat,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// SignMastery labels every sign in the bank.
func (e *Engine) SignMastery(s State) []models.SignMastery {
	out := make([]models.SignMastery, 0, len(e.bank.Signs))
	for _, sign := range e.bank.Signs {
		out = append(out, models.SignMastery{
			SignID: sign.ID,
			Level:  mastery.ClassifySign(s.Flashcards[sign.ID].Level, s.SignStats[sign.ID]),
		})
	}
	return out
}

// FlashcardSession picks the cards due for study now.
func (e *Engine) FlashcardSession(s State, now time.Time) []models.FlashcardProgress {
	return flashcard.DueSession(e.bank.SignIDs(), s.Flashcards, now, e.sessionSize)
}

// LevelInfo derives the level from total XP.
func (e *Engine) LevelInfo(s State) models.LevelInfo {
	return e.catalog.LevelInfo(s.Achievements.TotalXP)
}

// Achievements lists every catalog entry with its unlock status.
func (e *Engine) Achievements(s State) []models.AchievementView {
	out := make([]models.AchievementView, 0, len(e.catalog.Achievements))
	for _, d := range e.catalog.Achievements {
		out = append(out, models.AchievementView{
			AchievementDefinition: d,
			Unlocked:              s.Achievements.HasUnlocked(d.ID),
		})
	}
	return out
}

// Summary condenses s into dashboard counters as of now.
func (e *Engine) Summary(s State, now time.Time) models.ProgressSummary {
	a := s.Achievements
	return models.ProgressSummary{
		QuestionsAnswered:    a.QuestionsAnswered,
		OverallAccuracy:      tracking.OverallAccuracy(a.CategoryAccuracy, a.QuestionsAnswered),
		MasteredQuestions:    e.MasteredCount(s),
		DueReviews:           len(scheduler.DueItems(s.Learning.Items, now)),
		OpenMistakes:         len(s.Learning.Mistakes),
		QuizzesCompleted:     a.QuizzesCompleted,
		ExamsPassed:          a.ExamsPassed,
		Streak:               a.Streak,
		DailyGoal:            a.DailyGoal,
		DailyGoalTarget:      e.goalTarget,
		UnlockedAchievements: len(a.UnlockedAchievementIDs),
		AchievementXP:        e.catalog.PointsFor(a.UnlockedAchievementIDs),
		TotalAchievements:    len(e.catalog.Achievements),
		Level:                e.catalog.LevelInfo(a.TotalXP),
	}
}
