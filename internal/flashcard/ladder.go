package flashcard

import (
	"sort"
	"time"

	"github.com/vytor/theoryflash/internal/models"
)

const (
	MinLevel = 0
	MaxLevel = 5

	// DefaultSessionSize caps how many cards one study session serves.
	DefaultSessionSize = 20
)

// Intervals maps a card level to the wait before it is due again.
var Intervals = [MaxLevel + 1]time.Duration{
	0,
	time.Minute,
	10 * time.Minute,
	24 * time.Hour,
	7 * 24 * time.Hour,
	30 * 24 * time.Hour,
}

// ClampLevel forces level into [MinLevel, MaxLevel].
func ClampLevel(level int) int {
	return min(MaxLevel, max(MinLevel, level))
}

// ApplyReview moves a card one rung up or down the ladder.
func ApplyReview(card models.FlashcardProgress, correct bool, now time.Time) models.FlashcardProgress {
	card.Level = ClampLevel(card.Level)
	if correct {
		card.Level = min(MaxLevel, card.Level+1)
		card.Streak++
	} else {
		card.Level = max(MinLevel, card.Level-1)
		card.Streak = 0
	}
	card.LastReviewedAt = now
	card.NextDue = now.Add(Intervals[card.Level])
	return card
}

// DueSession picks the cards to study now from a deck of sign ids.
// Cards never reviewed are at level 0 and always eligible.
func DueSession(deck []string, progress map[string]models.FlashcardProgress, now time.Time, limit int) []models.FlashcardProgress {
	if limit <= 0 {
		limit = DefaultSessionSize
	}

	due := make([]models.FlashcardProgress, 0)
	seen := make(map[string]bool, len(deck))
	for _, id := range deck {
		if seen[id] {
			continue
		}
		seen[id] = true

		card, ok := progress[id]
		if !ok {
			card = models.FlashcardProgress{Level: MinLevel}
		}
		card.SignID = id
		if card.Level == MinLevel || !now.Before(card.NextDue) {
			due = append(due, card)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].Level != due[j].Level {
			return due[i].Level < due[j].Level
		}
		return due[i].NextDue.Before(due[j].NextDue)
	})

	if len(due) > limit {
		due = due[:limit]
	}
	return due
}
