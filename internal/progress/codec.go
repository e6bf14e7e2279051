package progress

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vytor/theoryflash/internal/logger"
	"github.com/vytor/theoryflash/internal/models"
)

// Blob keys in the state store.
const (
	KeyAchievements = "achievements"
	KeyLearning     = "learning"
	KeySignStats    = "sign_stats"
	KeyFlashcards   = "flashcards"
)

// CurrentVersion is the blob format written by Encode.
const CurrentVersion = 2

// Keys lists every blob key, in persistence order.
var Keys = []string{KeyAchievements, KeyLearning, KeySignStats, KeyFlashcards}

type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// Encode serializes state into one versioned blob per key.
func Encode(s State) (map[string][]byte, error) {
	parts := map[string]any{
		KeyAchievements: s.Achievements,
		KeyLearning:     s.Learning,
		KeySignStats:    s.SignStats,
		KeyFlashcards:   s.Flashcards,
	}
	out := make(map[string][]byte, len(parts))
	for key, part := range parts {
		data, err := json.Marshal(part)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", key, err)
		}
		blob, err := json.Marshal(envelope{Version: CurrentVersion, Data: data})
		if err != nil {
			return nil, fmt.Errorf("encode %s envelope: %w", key, err)
		}
		out[key] = blob
	}
	return out, nil
}

// Decode rebuilds state from stored blobs. Missing, corrupt or unsupported
// blobs fall back to defaults; Decode never fails.
func Decode(blobs map[string][]byte, log *logger.Logger) State {
	if log == nil {
		log = logger.Default()
	}
	log = log.WithPrefix("codec")
	s := Default()

	if raw, ok := blobs[KeyAchievements]; ok {
		if a, err := decodeAchievements(raw); err != nil {
			log.Warn("discarding achievements blob: %v", err)
		} else {
			s.Achievements = a
		}
	}
	if raw, ok := blobs[KeyLearning]; ok {
		l := defaultLearning()
		if err := decodeCurrent(raw, &l); err != nil {
			log.Warn("discarding learning blob: %v", err)
		} else {
			s.Learning = l
		}
	}
	if raw, ok := blobs[KeySignStats]; ok {
		m := map[string]models.SignStat{}
		if err := decodeCurrent(raw, &m); err != nil {
			log.Warn("discarding sign stats blob: %v", err)
		} else {
			s.SignStats = m
		}
	}
	if raw, ok := blobs[KeyFlashcards]; ok {
		m := map[string]models.FlashcardProgress{}
		if err := decodeCurrent(raw, &m); err != nil {
			log.Warn("discarding flashcards blob: %v", err)
		} else {
			s.Flashcards = m
		}
	}

	s.normalize()
	return s
}

// unwrap splits a blob into its version and payload. Blobs without an
// envelope predate versioning and are version 1.
func unwrap(raw []byte) (int, json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, nil, fmt.Errorf("empty blob")
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return 0, nil, fmt.Errorf("invalid json: %w", err)
	}
	versionRaw, hasVersion := probe["version"]
	data, hasData := probe["data"]
	if !hasVersion || !hasData || len(probe) != 2 {
		return 1, raw, nil
	}
	var version int
	if err := json.Unmarshal(versionRaw, &version); err != nil {
		return 0, nil, fmt.Errorf("invalid version: %w", err)
	}
	if version < 1 || version > CurrentVersion {
		return 0, nil, fmt.Errorf("unsupported version %d", version)
	}
	return version, data, nil
}

// decodeCurrent handles blobs whose shape did not change between versions:
// the payload is merged over the defaults already in dst.
func decodeCurrent(raw []byte, dst any) error {
	_, data, err := unwrap(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

func decodeAchievements(raw []byte) (models.AchievementsState, error) {
	version, data, err := unwrap(raw)
	if err != nil {
		return models.AchievementsState{}, err
	}
	if version == 1 {
		v1, err := loadV1(data)
		if err != nil {
			return models.AchievementsState{}, err
		}
		return migrateToV2(v1), nil
	}
	a := defaultAchievements()
	if err := json.Unmarshal(data, &a); err != nil {
		return models.AchievementsState{}, err
	}
	return a, nil
}

// achievementsV1 is the unversioned layout: the streak was a bare counter
// with the last active day stored beside it.
type achievementsV1 struct {
	UnlockedAchievementIDs []string                       `json:"unlockedAchievements"`
	TotalXP                int                            `json:"totalXP"`
	QuestionsAnswered      int                            `json:"questionsAnswered"`
	QuizzesCompleted       int                            `json:"quizzesCompleted"`
	PerfectQuizzes         int                            `json:"perfectQuizzes"`
	ExamsPassed            int                            `json:"examsPassed"`
	DailyGoalsCompleted    int                            `json:"dailyGoalsCompleted"`
	CategoryAccuracy       map[string]models.CategoryStat `json:"categoryAccuracy"`
	Streak                 json.RawMessage                `json:"streak"`
	LastActiveDate         *string                        `json:"lastActiveDate"`
	LongestStreak          int                            `json:"longestStreak"`
	DailyGoal              models.DailyGoalState          `json:"dailyGoal"`
}

func loadV1(data []byte) (achievementsV1, error) {
	v1 := achievementsV1{
		UnlockedAchievementIDs: []string{},
		CategoryAccuracy:       map[string]models.CategoryStat{},
	}
	if err := json.Unmarshal(data, &v1); err != nil {
		return achievementsV1{}, err
	}
	return v1, nil
}

func migrateToV2(v1 achievementsV1) models.AchievementsState {
	a := models.AchievementsState{
		UnlockedAchievementIDs: v1.UnlockedAchievementIDs,
		TotalXP:                v1.TotalXP,
		QuestionsAnswered:      v1.QuestionsAnswered,
		QuizzesCompleted:       v1.QuizzesCompleted,
		PerfectQuizzes:         v1.PerfectQuizzes,
		ExamsPassed:            v1.ExamsPassed,
		DailyGoalsCompleted:    v1.DailyGoalsCompleted,
		CategoryAccuracy:       v1.CategoryAccuracy,
		DailyGoal:              v1.DailyGoal,
	}

	var current int
	if err := json.Unmarshal(v1.Streak, &current); err == nil {
		a.Streak.Current = current
	} else {
		// some v1 writers already stored the nested form
		_ = json.Unmarshal(v1.Streak, &a.Streak)
	}
	if v1.LastActiveDate != nil && a.Streak.LastActiveDate == "" {
		a.Streak.LastActiveDate = *v1.LastActiveDate
	}
	a.Streak.Longest = max(a.Streak.Longest, v1.LongestStreak, a.Streak.Current)
	return a
}
