package services

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/vytor/theoryflash/internal/errors"
	"github.com/vytor/theoryflash/internal/jobs"
	"github.com/vytor/theoryflash/internal/logger"
	"github.com/vytor/theoryflash/internal/models"
	"github.com/vytor/theoryflash/internal/progress"
	"github.com/vytor/theoryflash/internal/repository"
)

// ProgressService owns every learner's progress state. Mutations for one
// profile are serialized; the in-memory state is authoritative and is
// written back to the store after each change.
type ProgressService interface {
	Snapshot(ctx context.Context, profileID int64) (progress.State, error)
	Summary(ctx context.Context, profileID int64) (models.ProgressSummary, error)

	RecordAnswer(ctx context.Context, profileID int64, questionID string, selected int) (progress.Outcome, error)
	CompleteQuiz(ctx context.Context, profileID int64, correct, total int) (progress.Outcome, error)
	RecordExam(ctx context.Context, profileID int64, passed bool) (progress.Outcome, error)
	CheckTimeAchievements(ctx context.Context, profileID int64) (progress.Outcome, error)
	ReviewFlashcard(ctx context.Context, profileID int64, signID string, correct bool) (progress.Outcome, error)

	DueReviews(ctx context.Context, profileID int64) ([]models.LearningItem, error)
	Mistakes(ctx context.Context, profileID int64) ([]models.MistakeRecord, error)
	WeakCategories(ctx context.Context, profileID int64) ([]models.WeakCategory, error)
	CategoryMastery(ctx context.Context, profileID int64) ([]models.CategoryMastery, error)
	SignMastery(ctx context.Context, profileID int64) ([]models.SignMastery, error)
	FlashcardSession(ctx context.Context, profileID int64) ([]models.FlashcardProgress, error)
	LevelInfo(ctx context.Context, profileID int64) (models.LevelInfo, error)
	Achievements(ctx context.Context, profileID int64) ([]models.AchievementView, error)
	History(ctx context.Context, filter models.AnswerHistoryFilter) ([]models.AnswerHistory, int, error)
	Levels() []models.Level

	// Forget drops the cached state of a profile, e.g. after it was deleted.
	Forget(profileID int64)
}

// ProgressOption configures the progress service.
type ProgressOption func(*progressService)

// WithClock overrides the time source.
func WithClock(now func() time.Time) ProgressOption {
	return func(s *progressService) {
		s.now = now
	}
}

type profileState struct {
	mu       sync.Mutex
	state    progress.State
	revision int64
}

type progressService struct {
	engine      *progress.Engine
	profileRepo repository.ProfileRepository
	stateRepo   repository.StateRepository
	historyRepo repository.AnswerHistoryRepository
	queue       jobs.JobQueue
	now         func() time.Time

	mu      sync.Mutex
	entries map[int64]*profileState
	loads   singleflight.Group
}

// NewProgressService creates a new ProgressService
func NewProgressService(
	engine *progress.Engine,
	profileRepo repository.ProfileRepository,
	stateRepo repository.StateRepository,
	historyRepo repository.AnswerHistoryRepository,
	queue jobs.JobQueue,
	opts ...ProgressOption,
) ProgressService {
	s := &progressService{
		engine:      engine,
		profileRepo: profileRepo,
		stateRepo:   stateRepo,
		historyRepo: historyRepo,
		queue:       queue,
		now:         time.Now,
		entries:     make(map[int64]*profileState),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *progressService) cached(profileID int64) *profileState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[profileID]
}

// load returns the cached entry for a profile, reading it from the store on
// first use. Concurrent cold loads of one profile share a single read.
func (s *progressService) load(ctx context.Context, profileID int64) (*profileState, error) {
	if e := s.cached(profileID); e != nil {
		return e, nil
	}

	v, err, _ := s.loads.Do(strconv.FormatInt(profileID, 10), func() (any, error) {
		if e := s.cached(profileID); e != nil {
			return e, nil
		}
		log := logger.FromContext(ctx).WithPrefix("progress").WithField("profile_id", profileID)
		log.Debug("loading progress state")

		profile, err := s.profileRepo.Get(ctx, profileID)
		if err != nil {
			log.Error("failed to get profile: %v", err)
			return nil, errors.NewInternalError(err)
		}
		if profile == nil {
			return nil, errors.NewNotFoundError("profile", profileID)
		}

		stored, err := s.stateRepo.Load(ctx, profileID)
		if err != nil {
			log.Error("failed to load state: %v", err)
			return nil, errors.NewInternalError(err)
		}

		e := &profileState{
			state:    s.engine.Refresh(progress.Decode(stored.Blobs, log), s.now()),
			revision: stored.Revision,
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if existing := s.entries[profileID]; existing != nil {
			return existing, nil
		}
		s.entries[profileID] = e
		log.Debug("progress state cached at revision %d", e.revision)
		return e, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*profileState), nil
}

func (s *progressService) Forget(profileID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, profileID)
}

// mutate runs one transition under the profile lock, then persists the result.
func (s *progressService) mutate(ctx context.Context, profileID int64, fn func(progress.State, time.Time) (progress.Outcome, error)) (progress.Outcome, error) {
	e, err := s.load(ctx, profileID)
	if err != nil {
		return progress.Outcome{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := s.now()
	out, err := fn(s.engine.Refresh(e.state, now), now)
	if err != nil {
		return progress.Outcome{}, err
	}
	if out.Events == nil {
		out.Events = []models.Event{}
	}

	e.state = out.State
	e.revision++
	s.persist(ctx, profileID, e.revision, out.State)

	if err := s.profileRepo.Touch(ctx, profileID, now); err != nil {
		logger.FromContext(ctx).WithPrefix("progress").Warn("failed to record activity for profile %d: %v", profileID, err)
	}
	return out, nil
}

// persist hands the encoded state to the write queue, writing inline when
// the queue refuses it. Failures are logged and never reach the caller.
func (s *progressService) persist(ctx context.Context, profileID, revision int64, state progress.State) {
	log := logger.FromContext(ctx).WithPrefix("progress").WithFields(map[string]any{
		"profile_id": profileID,
		"revision":   revision,
	})

	blobs, err := progress.Encode(state)
	if err != nil {
		log.Warn("failed to encode state: %v", err)
		return
	}

	err = s.queue.EnqueuePersist(profileID, revision, blobs)
	if err == nil {
		return
	}
	log.Debug("persist queue unavailable (%v), writing inline", err)

	if err := s.stateRepo.SaveAll(ctx, profileID, revision, blobs); err != nil {
		log.Warn("failed to persist state: %v", err)
	}
}

// read runs fn over the refreshed state without changing the cache.
func read[T any](s *progressService, ctx context.Context, profileID int64, fn func(progress.State, time.Time) T) (T, error) {
	var zero T
	e, err := s.load(ctx, profileID)
	if err != nil {
		return zero, err
	}

	e.mu.Lock()
	state := e.state
	e.mu.Unlock()

	now := s.now()
	return fn(s.engine.Refresh(state, now), now), nil
}

func (s *progressService) Snapshot(ctx context.Context, profileID int64) (progress.State, error) {
	return read(s, ctx, profileID, func(st progress.State, _ time.Time) progress.State { return st })
}

func (s *progressService) Summary(ctx context.Context, profileID int64) (models.ProgressSummary, error) {
	return read(s, ctx, profileID, s.engine.Summary)
}

func (s *progressService) RecordAnswer(ctx context.Context, profileID int64, questionID string, selected int) (progress.Outcome, error) {
	log := logger.FromContext(ctx).WithPrefix("progress")
	log.Debug("recording answer: profile_id=%d, question_id=%s, selected=%d", profileID, questionID, selected)

	q, ok := s.engine.Bank().Question(questionID)
	if !ok {
		return progress.Outcome{}, errors.NewNotFoundError("question", questionID)
	}
	if selected < 0 || (len(q.Options) > 0 && selected >= len(q.Options)) {
		return progress.Outcome{}, errors.NewValidationError("selected", "answer index out of range")
	}

	var answeredAt time.Time
	out, err := s.mutate(ctx, profileID, func(st progress.State, now time.Time) (progress.Outcome, error) {
		answeredAt = now
		return s.engine.RecordAnswer(st, q, selected, now), nil
	})
	if err != nil {
		return out, err
	}

	s.recordHistory(ctx, models.AnswerHistory{
		ProfileID:  profileID,
		QuestionID: q.ID,
		Category:   q.Category,
		Selected:   selected,
		Correct:    out.Correct != nil && *out.Correct,
		AnsweredAt: answeredAt,
	})
	return out, nil
}

func (s *progressService) recordHistory(ctx context.Context, h models.AnswerHistory) {
	if _, err := s.historyRepo.Insert(ctx, h); err != nil {
		logger.FromContext(ctx).WithPrefix("progress").Warn("failed to append answer history: %v", err)
	}
}

func (s *progressService) CompleteQuiz(ctx context.Context, profileID int64, correct, total int) (progress.Outcome, error) {
	logger.FromContext(ctx).WithPrefix("progress").Debug("completing quiz: profile_id=%d, score=%d/%d", profileID, correct, total)

	if total < 0 {
		return progress.Outcome{}, errors.NewValidationError("total", "cannot be negative")
	}
	if correct < 0 || correct > total {
		return progress.Outcome{}, errors.NewValidationError("correct", "must be between 0 and total")
	}

	return s.mutate(ctx, profileID, func(st progress.State, now time.Time) (progress.Outcome, error) {
		return s.engine.CompleteQuiz(st, correct, total, now), nil
	})
}

func (s *progressService) RecordExam(ctx context.Context, profileID int64, passed bool) (progress.Outcome, error) {
	logger.FromContext(ctx).WithPrefix("progress").Debug("recording exam: profile_id=%d, passed=%t", profileID, passed)

	return s.mutate(ctx, profileID, func(st progress.State, now time.Time) (progress.Outcome, error) {
		return s.engine.RecordExam(st, passed, now), nil
	})
}

func (s *progressService) CheckTimeAchievements(ctx context.Context, profileID int64) (progress.Outcome, error) {
	logger.FromContext(ctx).WithPrefix("progress").Debug("checking time achievements: profile_id=%d", profileID)

	return s.mutate(ctx, profileID, func(st progress.State, now time.Time) (progress.Outcome, error) {
		return s.engine.CheckTimeAchievements(st, now), nil
	})
}

func (s *progressService) ReviewFlashcard(ctx context.Context, profileID int64, signID string, correct bool) (progress.Outcome, error) {
	logger.FromContext(ctx).WithPrefix("progress").Debug("reviewing flashcard: profile_id=%d, sign_id=%s, correct=%t", profileID, signID, correct)

	if _, ok := s.engine.Bank().Sign(signID); !ok {
		return progress.Outcome{}, errors.NewNotFoundError("sign", signID)
	}

	return s.mutate(ctx, profileID, func(st progress.State, now time.Time) (progress.Outcome, error) {
		return s.engine.ReviewFlashcard(st, signID, correct, now), nil
	})
}

func (s *progressService) DueReviews(ctx context.Context, profileID int64) ([]models.LearningItem, error) {
	return read(s, ctx, profileID, s.engine.DueReviews)
}

func (s *progressService) Mistakes(ctx context.Context, profileID int64) ([]models.MistakeRecord, error) {
	return read(s, ctx, profileID, func(st progress.State, _ time.Time) []models.MistakeRecord {
		return s.engine.Mistakes(st)
	})
}

func (s *progressService) WeakCategories(ctx context.Context, profileID int64) ([]models.WeakCategory, error) {
	return read(s, ctx, profileID, func(st progress.State, _ time.Time) []models.WeakCategory {
		return s.engine.WeakCategories(st)
	})
}

func (s *progressService) CategoryMastery(ctx context.Context, profileID int64) ([]models.CategoryMastery, error) {
	return read(s, ctx, profileID, func(st progress.State, _ time.Time) []models.CategoryMastery {
		return s.engine.CategoryMastery(st)
	})
}

func (s *progressService) SignMastery(ctx context.Context, profileID int64) ([]models.SignMastery, error) {
	return read(s, ctx, profileID, func(st progress.State, _ time.Time) []models.SignMastery {
		return s.engine.SignMastery(st)
	})
}

func (s *progressService) FlashcardSession(ctx context.Context, profileID int64) ([]models.FlashcardProgress, error) {
	return read(s, ctx, profileID, s.engine.FlashcardSession)
}

func (s *progressService) LevelInfo(ctx context.Context, profileID int64) (models.LevelInfo, error) {
	return read(s, ctx, profileID, func(st progress.State, _ time.Time) models.LevelInfo {
		return s.engine.LevelInfo(st)
	})
}

func (s *progressService) Achievements(ctx context.Context, profileID int64) ([]models.AchievementView, error) {
	return read(s, ctx, profileID, func(st progress.State, _ time.Time) []models.AchievementView {
		return s.engine.Achievements(st)
	})
}

func (s *progressService) History(ctx context.Context, filter models.AnswerHistoryFilter) ([]models.AnswerHistory, int, error) {
	log := logger.FromContext(ctx).WithPrefix("progress")
	log.Debug("listing history: profile_id=%d", filter.ProfileID)

	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, 0, errors.NewValidationError("pagination", "limit and offset cannot be negative")
	}
	profile, err := s.profileRepo.Get(ctx, filter.ProfileID)
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	if profile == nil {
		return nil, 0, errors.NewNotFoundError("profile", filter.ProfileID)
	}

	history, err := s.historyRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list history: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	total, err := s.historyRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count history: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	return history, total, nil
}

func (s *progressService) Levels() []models.Level {
	return append([]models.Level(nil), s.engine.Catalog().Levels...)
}
