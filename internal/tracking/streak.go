package tracking

import (
	"time"

	"github.com/vytor/theoryflash/internal/models"
)

// TouchStreak records activity on now's calendar day.
func TouchStreak(s models.StreakState, now time.Time) models.StreakState {
	today := DateKey(now)
	switch s.LastActiveDate {
	case today:
		return s
	case PreviousDateKey(now):
		s.Current++
	default:
		s.Current = 1
	}
	s.Longest = max(s.Longest, s.Current)
	s.LastActiveDate = today
	return s
}

// ExpireStreak zeroes the current streak when the last active day is
// neither today nor yesterday. Longest is left alone.
func ExpireStreak(s models.StreakState, now time.Time) models.StreakState {
	if s.LastActiveDate == DateKey(now) || s.LastActiveDate == PreviousDateKey(now) {
		return s
	}
	s.Current = 0
	return s
}
