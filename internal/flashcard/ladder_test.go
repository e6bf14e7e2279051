package flashcard_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/theoryflash/internal/flashcard"
	"github.com/vytor/theoryflash/internal/models"
)

var now = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func TestApplyReview_ClimbsLadder(t *testing.T) {
	card := models.FlashcardProgress{SignID: "stop"}
	expected := []time.Duration{
		time.Minute,
		10 * time.Minute,
		24 * time.Hour,
		7 * 24 * time.Hour,
		30 * 24 * time.Hour,
		30 * 24 * time.Hour,
	}

	for i, wait := range expected {
		card = flashcard.ApplyReview(card, true, now)
		assert.Equal(t, min(i+1, flashcard.MaxLevel), card.Level)
		assert.Equal(t, i+1, card.Streak)
		assert.Equal(t, now.Add(wait), card.NextDue)
		assert.Equal(t, now, card.LastReviewedAt)
	}
}

func TestApplyReview_Incorrect(t *testing.T) {
	card := models.FlashcardProgress{Level: 3, Streak: 4}

	card = flashcard.ApplyReview(card, false, now)
	assert.Equal(t, 2, card.Level)
	assert.Equal(t, 0, card.Streak)
	assert.Equal(t, now.Add(10*time.Minute), card.NextDue)

	card = flashcard.ApplyReview(models.FlashcardProgress{Level: 0}, false, now)
	assert.Equal(t, 0, card.Level, "level never drops below zero")
	assert.Equal(t, now, card.NextDue)
}

func TestApplyReview_OutOfRangeLevels(t *testing.T) {
	var card models.FlashcardProgress
	require.NotPanics(t, func() {
		card = flashcard.ApplyReview(models.FlashcardProgress{Level: 7}, false, now)
	})
	assert.Equal(t, flashcard.MaxLevel-1, card.Level)
	assert.Equal(t, now.Add(7*24*time.Hour), card.NextDue)

	card = flashcard.ApplyReview(models.FlashcardProgress{Level: 9}, true, now)
	assert.Equal(t, flashcard.MaxLevel, card.Level)

	card = flashcard.ApplyReview(models.FlashcardProgress{Level: -4}, true, now)
	assert.Equal(t, 1, card.Level)
	assert.Equal(t, now.Add(time.Minute), card.NextDue)

	assert.Equal(t, 0, flashcard.ClampLevel(-1))
	assert.Equal(t, 3, flashcard.ClampLevel(3))
	assert.Equal(t, 5, flashcard.ClampLevel(6))
}

func TestDueSession_SelectionAndOrder(t *testing.T) {
	deck := []string{"new", "due-high", "due-low", "future", "due-low-later"}
	progress := map[string]models.FlashcardProgress{
		"due-high":      {Level: 4, NextDue: now.Add(-time.Hour)},
		"due-low":       {Level: 2, NextDue: now.Add(-2 * time.Hour)},
		"due-low-later": {Level: 2, NextDue: now},
		"future":        {Level: 3, NextDue: now.Add(time.Hour)},
	}

	session := flashcard.DueSession(deck, progress, now, 20)

	ids := make([]string, len(session))
	for i, c := range session {
		ids[i] = c.SignID
	}
	assert.Equal(t, []string{"new", "due-low", "due-low-later", "due-high"}, ids)
}

func TestDueSession_Capped(t *testing.T) {
	deck := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		deck = append(deck, fmt.Sprintf("sign-%02d", i))
	}

	session := flashcard.DueSession(deck, nil, now, 0)
	require.Len(t, session, flashcard.DefaultSessionSize)

	session = flashcard.DueSession(deck, nil, now, 5)
	assert.Len(t, session, 5)
}

func TestDueSession_DuplicateDeckEntries(t *testing.T) {
	session := flashcard.DueSession([]string{"a", "a", "b"}, nil, now, 10)
	assert.Len(t, session, 2)
}
