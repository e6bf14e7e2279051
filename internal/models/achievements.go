package models

// CategoryStat is the running accuracy of one question category.
type CategoryStat struct {
	Correct  int `json:"correct"`
	Total    int `json:"total"`
	Accuracy int `json:"accuracy"`
}

type StreakState struct {
	Current        int    `json:"current"`
	LastActiveDate string `json:"lastActiveDate,omitempty"`
	Longest        int    `json:"longest"`
}

type DailyGoalState struct {
	Date              string `json:"date"`
	QuestionsAnswered int    `json:"questionsAnswered"`
	Completed         bool   `json:"completed"`
}

type RequirementType string

const (
	ReqQuizzesCompleted    RequirementType = "quizzes_completed"
	ReqPerfectQuiz         RequirementType = "perfect_quiz"
	ReqAccuracyAbove       RequirementType = "accuracy_above"
	ReqStreakDays          RequirementType = "streak_days"
	ReqCategoryAccuracy    RequirementType = "category_accuracy"
	ReqExamPassed          RequirementType = "exam_passed"
	ReqDailyGoalsCompleted RequirementType = "daily_goals_completed"
	ReqQuestionsAnswered   RequirementType = "questions_answered"
	ReqTimeOfDay           RequirementType = "time_of_day"
)

type Requirement struct {
	Type     RequirementType `json:"type" yaml:"type"`
	Value    int             `json:"value,omitempty" yaml:"value,omitempty"`
	Category string          `json:"category,omitempty" yaml:"category,omitempty"`
	Start    int             `json:"start,omitempty" yaml:"start,omitempty"`
	End      int             `json:"end,omitempty" yaml:"end,omitempty"`
}

type AchievementDefinition struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Points      int         `json:"points" yaml:"points"`
	Category    string      `json:"category" yaml:"category"`
	Requirement Requirement `json:"requirement" yaml:"requirement"`
}

type Level struct {
	Level int    `json:"level" yaml:"level"`
	Name  string `json:"name" yaml:"name"`
	MinXP int    `json:"minXP" yaml:"minXP"`
}

// LevelInfo is derived from TotalXP on every read and never stored.
type LevelInfo struct {
	Current         Level  `json:"current"`
	Next            *Level `json:"next,omitempty"`
	TotalXP         int    `json:"totalXP"`
	XPToNextLevel   int    `json:"xpToNextLevel"`
	ProgressPercent int    `json:"progressPercent"`
}

type AchievementsState struct {
	UnlockedAchievementIDs []string                `json:"unlockedAchievements"`
	TotalXP                int                     `json:"totalXP"`
	QuestionsAnswered      int                     `json:"questionsAnswered"`
	QuizzesCompleted       int                     `json:"quizzesCompleted"`
	PerfectQuizzes         int                     `json:"perfectQuizzes"`
	ExamsPassed            int                     `json:"examsPassed"`
	DailyGoalsCompleted    int                     `json:"dailyGoalsCompleted"`
	CategoryAccuracy       map[string]CategoryStat `json:"categoryAccuracy"`
	Streak                 StreakState             `json:"streak"`
	DailyGoal              DailyGoalState          `json:"dailyGoal"`
}

// HasUnlocked reports whether id is already in the unlocked list.
func (s AchievementsState) HasUnlocked(id string) bool {
	for _, u := range s.UnlockedAchievementIDs {
		if u == id {
			return true
		}
	}
	return false
}

// AchievementView pairs a definition with its unlock status for listings.
type AchievementView struct {
	AchievementDefinition
	Unlocked bool `json:"unlocked"`
}
