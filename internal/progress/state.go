package progress

import (
	"maps"

	"github.com/vytor/theoryflash/internal/flashcard"
	"github.com/vytor/theoryflash/internal/models"
	"github.com/vytor/theoryflash/internal/scheduler"
)

// State is everything tracked for one learner.
type State struct {
	Achievements models.AchievementsState            `json:"achievements"`
	Learning     models.LearningState                `json:"learning"`
	SignStats    map[string]models.SignStat          `json:"signStats"`
	Flashcards   map[string]models.FlashcardProgress `json:"flashcards"`
}

// Default is the state of a learner who has not answered anything yet.
func Default() State {
	return State{
		Achievements: defaultAchievements(),
		Learning:     defaultLearning(),
		SignStats:    map[string]models.SignStat{},
		Flashcards:   map[string]models.FlashcardProgress{},
	}
}

func defaultAchievements() models.AchievementsState {
	return models.AchievementsState{
		UnlockedAchievementIDs: []string{},
		CategoryAccuracy:       map[string]models.CategoryStat{},
	}
}

func defaultLearning() models.LearningState {
	return models.LearningState{
		Items:    map[string]models.LearningItem{},
		Mistakes: map[string]models.MistakeRecord{},
	}
}

// Clone returns a copy sharing no maps or slices with s.
func (s State) Clone() State {
	out := s
	out.Achievements.UnlockedAchievementIDs = append([]string{}, s.Achievements.UnlockedAchievementIDs...)
	out.Achievements.CategoryAccuracy = cloneMap(s.Achievements.CategoryAccuracy)
	out.Learning.Items = cloneMap(s.Learning.Items)
	out.Learning.Mistakes = cloneMap(s.Learning.Mistakes)
	out.SignStats = cloneMap(s.SignStats)
	out.Flashcards = cloneMap(s.Flashcards)
	return out
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return map[K]V{}
	}
	return maps.Clone(m)
}

// normalize repairs decoded state: nil maps, duplicate unlocks, negative XP,
// item ids that only live in map keys and schedules outside their bounds.
func (s *State) normalize() {
	a := &s.Achievements
	if a.CategoryAccuracy == nil {
		a.CategoryAccuracy = map[string]models.CategoryStat{}
	}
	seen := make(map[string]bool, len(a.UnlockedAchievementIDs))
	unique := make([]string, 0, len(a.UnlockedAchievementIDs))
	for _, id := range a.UnlockedAchievementIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	a.UnlockedAchievementIDs = unique
	if a.TotalXP < 0 {
		a.TotalXP = 0
	}

	if s.Learning.Items == nil {
		s.Learning.Items = map[string]models.LearningItem{}
	}
	for id, item := range s.Learning.Items {
		item.ID = id
		switch {
		case item.EaseFactor == 0:
			item.EaseFactor = scheduler.InitialEase
		case item.EaseFactor < scheduler.MinEase:
			item.EaseFactor = scheduler.MinEase
		}
		if item.IntervalDays <= 0 {
			item.IntervalDays = scheduler.RetryInterval
		}
		if item.Repetitions < 0 {
			item.Repetitions = 0
		}
		s.Learning.Items[id] = item
	}
	if s.Learning.Mistakes == nil {
		s.Learning.Mistakes = map[string]models.MistakeRecord{}
	}
	if s.SignStats == nil {
		s.SignStats = map[string]models.SignStat{}
	}
	if s.Flashcards == nil {
		s.Flashcards = map[string]models.FlashcardProgress{}
	}
	for id, card := range s.Flashcards {
		card.SignID = id
		card.Level = flashcard.ClampLevel(card.Level)
		if card.Streak < 0 {
			card.Streak = 0
		}
		s.Flashcards[id] = card
	}
}
