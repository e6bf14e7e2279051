package progress

import (
	"time"

	"github.com/google/uuid"

	"github.com/vytor/theoryflash/internal/achievements"
	"github.com/vytor/theoryflash/internal/content"
	"github.com/vytor/theoryflash/internal/flashcard"
	"github.com/vytor/theoryflash/internal/models"
	"github.com/vytor/theoryflash/internal/scheduler"
	"github.com/vytor/theoryflash/internal/tracking"
)

const (
	DefaultDailyGoalTarget  = 20
	DefaultDailyGoalBonusXP = 50
)

// Engine applies learner events to State. Its methods never modify the
// state they are given; they return a new state plus the events to notify.
type Engine struct {
	catalog     *achievements.Catalog
	bank        *content.Bank
	goalTarget  int
	goalBonusXP int
	sessionSize int
	loc         *time.Location
	newID       func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithDailyGoal sets the daily question target and its one-time bonus.
func WithDailyGoal(target, bonusXP int) Option {
	return func(e *Engine) {
		if target > 0 {
			e.goalTarget = target
		}
		if bonusXP >= 0 {
			e.goalBonusXP = bonusXP
		}
	}
}

// WithLocation sets the zone whose calendar days bound streaks and goals.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// WithSessionSize caps flashcard sessions.
func WithSessionSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.sessionSize = n
		}
	}
}

// WithIDGenerator replaces the event id source.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		e.newID = fn
	}
}

func NewEngine(catalog *achievements.Catalog, bank *content.Bank, opts ...Option) *Engine {
	e := &Engine{
		catalog:     catalog,
		bank:        bank,
		goalTarget:  DefaultDailyGoalTarget,
		goalBonusXP: DefaultDailyGoalBonusXP,
		sessionSize: flashcard.DefaultSessionSize,
		loc:         time.Local,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Catalog() *achievements.Catalog { return e.catalog }
func (e *Engine) Bank() *content.Bank            { return e.bank }
func (e *Engine) DailyGoalTarget() int           { return e.goalTarget }

// Outcome is the result of one transition.
type Outcome struct {
	State   State          `json:"state"`
	Events  []models.Event `json:"events"`
	Correct *bool          `json:"correct,omitempty"`
}

// Refresh applies passive day-boundary effects: an expired streak drops to
// zero and a stale daily goal starts over. It runs on load and before reads.
func (e *Engine) Refresh(s State, now time.Time) State {
	now = now.In(e.loc)
	next := s.Clone()
	next.Achievements.Streak = tracking.ExpireStreak(next.Achievements.Streak, now)
	next.Achievements.DailyGoal = tracking.RolloverDailyGoal(next.Achievements.DailyGoal, now)
	return next
}

// RecordAnswer applies one answered question. The steps run in a fixed
// order so achievements always see the fully updated counters.
func (e *Engine) RecordAnswer(s State, q models.Question, selected int, now time.Time) Outcome {
	now = now.In(e.loc)
	correct := selected == q.CorrectAnswer
	next := s.Clone()
	a := &next.Achievements

	a.Streak = tracking.TouchStreak(a.Streak, now)

	a.CategoryAccuracy[q.Category] = tracking.RecordCategoryAnswer(a.CategoryAccuracy[q.Category], correct)
	a.QuestionsAnswered++
	if q.SignID != "" {
		stat := next.SignStats[q.SignID]
		stat.Total++
		if correct {
			stat.Correct++
		}
		next.SignStats[q.SignID] = stat
	}

	tracking.RecordMistakeAnswer(next.Learning.Mistakes, q, selected, correct, now)

	var existing *models.LearningItem
	if item, ok := next.Learning.Items[q.ID]; ok {
		existing = &item
	}
	next.Learning.Items[q.ID] = scheduler.ScheduleNext(existing, q.ID, correct, now)

	var events []models.Event
	goal, completed := tracking.RecordDailyGoalAnswer(a.DailyGoal, now, e.goalTarget)
	a.DailyGoal = goal
	if completed {
		a.DailyGoalsCompleted++
		a.TotalXP += e.goalBonusXP
		events = append(events, e.event(models.EventDailyGoalCompleted, now, func(ev *models.Event) {
			ev.Points = e.goalBonusXP
		}))
	}

	next, unlockEvents := e.unlock(next, e.catalog.Evaluate(next.Achievements), now)
	events = append(events, unlockEvents...)
	events = append(events, e.levelUp(s, next, now)...)

	return Outcome{State: next, Events: events, Correct: &correct}
}

// CompleteQuiz counts a finished quiz; a quiz with every answer right is perfect.
func (e *Engine) CompleteQuiz(s State, correctAnswers, total int, now time.Time) Outcome {
	now = now.In(e.loc)
	next := s.Clone()
	next.Achievements.QuizzesCompleted++
	if total > 0 && correctAnswers == total {
		next.Achievements.PerfectQuizzes++
	}
	return e.evaluate(s, next, now)
}

// RecordExam counts a mock exam; only passed exams move the counter.
func (e *Engine) RecordExam(s State, passed bool, now time.Time) Outcome {
	now = now.In(e.loc)
	next := s.Clone()
	if passed {
		next.Achievements.ExamsPassed++
	}
	return e.evaluate(s, next, now)
}

// CheckTimeAchievements evaluates only the time-of-day achievements.
func (e *Engine) CheckTimeAchievements(s State, now time.Time) Outcome {
	now = now.In(e.loc)
	next := s.Clone()
	next, events := e.unlock(next, e.catalog.EvaluateTimeOfDay(next.Achievements, now.Hour()), now)
	events = append(events, e.levelUp(s, next, now)...)
	return Outcome{State: next, Events: events}
}

// ReviewFlashcard moves a sign card on the flashcard ladder.
func (e *Engine) ReviewFlashcard(s State, signID string, correct bool, now time.Time) Outcome {
	now = now.In(e.loc)
	next := s.Clone()
	card := next.Flashcards[signID]
	card.SignID = signID
	next.Flashcards[signID] = flashcard.ApplyReview(card, correct, now)
	return Outcome{State: next, Events: []models.Event{}, Correct: &correct}
}

func (e *Engine) evaluate(prev, next State, now time.Time) Outcome {
	next, events := e.unlock(next, e.catalog.Evaluate(next.Achievements), now)
	events = append(events, e.levelUp(prev, next, now)...)
	return Outcome{State: next, Events: events}
}

func (e *Engine) unlock(s State, defs []models.AchievementDefinition, now time.Time) (State, []models.Event) {
	var applied []models.AchievementDefinition
	s.Achievements, applied = achievements.Apply(s.Achievements, defs)
	events := make([]models.Event, 0, len(applied))
	for _, d := range applied {
		events = append(events, e.event(models.EventAchievementUnlocked, now, func(ev *models.Event) {
			ev.AchievementID = d.ID
			ev.Name = d.Name
			ev.Points = d.Points
		}))
	}
	return s, events
}

func (e *Engine) levelUp(prev, next State, now time.Time) []models.Event {
	before := e.catalog.LevelInfo(prev.Achievements.TotalXP).Current
	after := e.catalog.LevelInfo(next.Achievements.TotalXP).Current
	if after.Level <= before.Level {
		return nil
	}
	return []models.Event{e.event(models.EventLevelUp, now, func(ev *models.Event) {
		ev.Level = after.Level
		ev.Name = after.Name
	})}
}

func (e *Engine) event(typ models.EventType, now time.Time, fill func(*models.Event)) models.Event {
	ev := models.Event{ID: e.newID(), Type: typ, At: now}
	fill(&ev)
	return ev
}
