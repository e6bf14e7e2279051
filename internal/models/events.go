package models

import "time"

type EventType string

const (
	EventAchievementUnlocked EventType = "achievement_unlocked"
	EventDailyGoalCompleted  EventType = "daily_goal_completed"
	EventLevelUp             EventType = "level_up"
)

// Event is a notification produced by a state transition for the UI to
// consume. It is never persisted.
type Event struct {
	ID            string    `json:"id"`
	Type          EventType `json:"type"`
	At            time.Time `json:"at"`
	AchievementID string    `json:"achievementId,omitempty"`
	Name          string    `json:"name,omitempty"`
	Points        int       `json:"points,omitempty"`
	Level         int       `json:"level,omitempty"`
}
