package models

import "time"

type Profile struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastActiveAt *time.Time `json:"lastActiveAt"`
}

// AnswerHistory is one answered question as kept in the answer log.
type AnswerHistory struct {
	ID         int64     `json:"id"`
	ProfileID  int64     `json:"profileId"`
	QuestionID string    `json:"questionId"`
	Category   string    `json:"category"`
	Selected   int       `json:"selected"`
	Correct    bool      `json:"correct"`
	AnsweredAt time.Time `json:"answeredAt"`
}

type AnswerHistoryFilter struct {
	ProfileID int64
	Category  string
	OnlyWrong bool
	Since     *time.Time
	Limit     int
	Offset    int
}

// StoredState is the persisted form of a learner's progress: one blob per
// key plus the highest revision written so far.
type StoredState struct {
	Blobs    map[string][]byte
	Revision int64
}
