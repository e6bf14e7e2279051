package scheduler

import (
	"math"
	"sort"
	"time"

	"github.com/vytor/theoryflash/internal/models"
)

const (
	InitialEase   = 2.5
	MinEase       = 1.3
	EaseBonus     = 0.1
	EasePenalty   = 0.2
	RetryInterval = 0.5 // days, i.e. 12 hours

	// MasteredRepetitions is the repetition count from which an item counts as mastered.
	MasteredRepetitions = 3

	day = 24 * time.Hour
)

// ScheduleNext applies one answer to an item's review schedule.
// A nil existing item is created from scratch.
func ScheduleNext(existing *models.LearningItem, id string, isCorrect bool, now time.Time) models.LearningItem {
	if existing == nil {
		item := models.LearningItem{
			ID:           id,
			Repetitions:  0,
			IntervalDays: RetryInterval,
			EaseFactor:   InitialEase,
		}
		if isCorrect {
			item.Repetitions = 1
			item.IntervalDays = 1
		}
		item.NextReviewAt = addDays(now, item.IntervalDays)
		return item
	}

	item := *existing
	item.ID = id
	if isCorrect {
		item.Repetitions++
		switch item.Repetitions {
		case 1:
			item.IntervalDays = 1
		case 2:
			item.IntervalDays = 6
		default:
			item.IntervalDays = math.Round(item.IntervalDays * item.EaseFactor)
		}
		item.EaseFactor = math.Max(MinEase, item.EaseFactor+EaseBonus)
	} else {
		item.Repetitions = 0
		item.IntervalDays = RetryInterval
		item.EaseFactor = math.Max(MinEase, item.EaseFactor-EasePenalty)
	}
	item.NextReviewAt = addDays(now, item.IntervalDays)
	return item
}

// IsMastered reports whether the item has enough consecutive successful cycles.
func IsMastered(item models.LearningItem) bool {
	return item.Repetitions >= MasteredRepetitions
}

// DueItems returns the items whose review time has passed, oldest first.
func DueItems(items map[string]models.LearningItem, now time.Time) []models.LearningItem {
	due := make([]models.LearningItem, 0)
	for id, item := range items {
		if !item.NextReviewAt.After(now) {
			item.ID = id
			due = append(due, item)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].NextReviewAt.Equal(due[j].NextReviewAt) {
			return due[i].ID < due[j].ID
		}
		return due[i].NextReviewAt.Before(due[j].NextReviewAt)
	})
	return due
}

// CountMastered counts mastered items.
func CountMastered(items map[string]models.LearningItem) int {
	n := 0
	for _, item := range items {
		if IsMastered(item) {
			n++
		}
	}
	return n
}

func addDays(t time.Time, days float64) time.Time {
	return t.Add(time.Duration(days * float64(day)))
}
