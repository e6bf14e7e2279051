package models

// ProgressSummary condenses a learner's state for dashboards and the CLI.
type ProgressSummary struct {
	QuestionsAnswered    int            `json:"questionsAnswered"`
	OverallAccuracy      float64        `json:"overallAccuracy"`
	MasteredQuestions    int            `json:"masteredQuestions"`
	DueReviews           int            `json:"dueReviews"`
	OpenMistakes         int            `json:"openMistakes"`
	QuizzesCompleted     int            `json:"quizzesCompleted"`
	ExamsPassed          int            `json:"examsPassed"`
	Streak               StreakState    `json:"streak"`
	DailyGoal            DailyGoalState `json:"dailyGoal"`
	DailyGoalTarget      int            `json:"dailyGoalTarget"`
	UnlockedAchievements int            `json:"unlockedAchievements"`
	TotalAchievements    int            `json:"totalAchievements"`
	AchievementXP        int            `json:"achievementXP"`
	Level                LevelInfo      `json:"level"`
}
