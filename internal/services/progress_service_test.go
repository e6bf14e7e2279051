package services_test

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/theoryflash/internal/achievements"
	"github.com/vytor/theoryflash/internal/content"
	"github.com/vytor/theoryflash/internal/errors"
	"github.com/vytor/theoryflash/internal/models"
	"github.com/vytor/theoryflash/internal/progress"
	"github.com/vytor/theoryflash/internal/services"
	"github.com/vytor/theoryflash/internal/testutil/mocks"
)

var fixedNow = time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC)

type progressFixture struct {
	profiles *mocks.MockProfileRepository
	states   *mocks.MockStateRepository
	history  *mocks.MockAnswerHistoryRepository
	queue    *mocks.MockJobQueue
	svc      services.ProgressService
}

func newProgressFixture(t *testing.T) *progressFixture {
	t.Helper()
	f := &progressFixture{
		profiles: new(mocks.MockProfileRepository),
		states:   new(mocks.MockStateRepository),
		history:  new(mocks.MockAnswerHistoryRepository),
		queue:    new(mocks.MockJobQueue),
	}
	engine := progress.NewEngine(achievements.Default(), content.Default(), progress.WithLocation(time.UTC))
	f.svc = services.NewProgressService(engine, f.profiles, f.states, f.history, f.queue,
		services.WithClock(func() time.Time { return fixedNow }))
	return f
}

func (f *progressFixture) withProfile(id int64, stored models.StoredState) {
	f.profiles.On("Get", mock.Anything, id).Return(&models.Profile{ID: id, Username: "learner"}, nil)
	f.states.On("Load", mock.Anything, id).Return(stored, nil).Once()
	f.profiles.On("Touch", mock.Anything, id, fixedNow).Return(nil)
	f.history.On("Insert", mock.Anything, mock.Anything).Return(int64(1), nil)
}

func TestProgressService_RecordAnswer(t *testing.T) {
	f := newProgressFixture(t)
	f.withProfile(1, models.StoredState{})
	f.queue.On("EnqueuePersist", int64(1), int64(1), mock.Anything).Return(nil).Once()
	f.queue.On("EnqueuePersist", int64(1), int64(2), mock.Anything).Return(nil).Once()
	ctx := context.Background()

	out, err := f.svc.RecordAnswer(ctx, 1, "sig-001", 1)
	require.NoError(t, err)
	require.NotNil(t, out.Correct)
	assert.True(t, *out.Correct)
	assert.Equal(t, 1, out.State.Achievements.QuestionsAnswered)
	require.NotEmpty(t, out.Events)
	assert.Equal(t, "first_steps", out.Events[0].AchievementID)

	out, err = f.svc.RecordAnswer(ctx, 1, "sig-002", 2)
	require.NoError(t, err)
	assert.False(t, *out.Correct)
	assert.Empty(t, out.Events)
	assert.NotNil(t, out.Events)

	snap, err := f.svc.Snapshot(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Achievements.QuestionsAnswered)
	assert.Contains(t, snap.Learning.Mistakes, "sig-002")

	f.queue.AssertExpectations(t)
	f.states.AssertNumberOfCalls(t, "Load", 1)
	f.history.AssertCalled(t, "Insert", mock.Anything, mock.MatchedBy(func(h models.AnswerHistory) bool {
		return h.QuestionID == "sig-002" && !h.Correct && h.Category == "signs"
	}))
}

func TestProgressService_RecordAnswer_HistoryUsesAnswerTime(t *testing.T) {
	profiles := new(mocks.MockProfileRepository)
	states := new(mocks.MockStateRepository)
	history := new(mocks.MockAnswerHistoryRepository)
	queue := new(mocks.MockJobQueue)

	// Each clock read is one minute later, starting just before midnight.
	tick := time.Date(2024, 5, 10, 23, 59, 0, 0, time.UTC)
	clock := func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}
	engine := progress.NewEngine(achievements.Default(), content.Default(), progress.WithLocation(time.UTC))
	svc := services.NewProgressService(engine, profiles, states, history, queue, services.WithClock(clock))

	profiles.On("Get", mock.Anything, int64(1)).Return(&models.Profile{ID: 1, Username: "learner"}, nil)
	states.On("Load", mock.Anything, int64(1)).Return(models.StoredState{}, nil)
	profiles.On("Touch", mock.Anything, int64(1), mock.Anything).Return(nil)
	queue.On("EnqueuePersist", int64(1), int64(1), mock.Anything).Return(nil)
	history.On("Insert", mock.Anything, mock.Anything).Return(int64(1), nil)

	out, err := svc.RecordAnswer(context.Background(), 1, "sig-002", 2)
	require.NoError(t, err)

	mistake, ok := out.State.Learning.Mistakes["sig-002"]
	require.True(t, ok)
	history.AssertCalled(t, "Insert", mock.Anything, mock.MatchedBy(func(h models.AnswerHistory) bool {
		return h.AnsweredAt.Equal(mistake.Timestamp)
	}))
	profiles.AssertCalled(t, "Touch", mock.Anything, int64(1), mock.MatchedBy(func(at time.Time) bool {
		return at.Equal(mistake.Timestamp)
	}))
}

func TestProgressService_RecordAnswer_Validation(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()

	_, err := f.svc.RecordAnswer(ctx, 1, "no-such-question", 0)
	assert.True(t, errors.IsNotFound(err))

	_, err = f.svc.RecordAnswer(ctx, 1, "sig-001", 3)
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)

	_, err = f.svc.RecordAnswer(ctx, 1, "sig-001", -1)
	assert.Error(t, err)

	f.states.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
}

func TestProgressService_UnknownProfile(t *testing.T) {
	f := newProgressFixture(t)
	f.profiles.On("Get", mock.Anything, int64(9)).Return(nil, nil)

	_, err := f.svc.Snapshot(context.Background(), 9)
	assert.True(t, errors.IsNotFound(err))

	_, err = f.svc.RecordExam(context.Background(), 9, true)
	assert.True(t, errors.IsNotFound(err))
}

func TestProgressService_LoadFailure(t *testing.T) {
	f := newProgressFixture(t)
	f.profiles.On("Get", mock.Anything, int64(1)).Return(&models.Profile{ID: 1}, nil)
	f.states.On("Load", mock.Anything, int64(1)).Return(models.StoredState{}, stderrors.New("locked"))

	_, err := f.svc.Snapshot(context.Background(), 1)
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInternal, appErr.Code)
}

func TestProgressService_ResumesStoredState(t *testing.T) {
	f := newProgressFixture(t)
	blobs, err := progress.Encode(func() progress.State {
		s := progress.Default()
		s.Achievements.TotalXP = 120
		s.Achievements.QuestionsAnswered = 40
		return s
	}())
	require.NoError(t, err)
	f.withProfile(1, models.StoredState{Blobs: blobs, Revision: 7})
	f.queue.On("EnqueuePersist", int64(1), int64(8), mock.Anything).Return(nil).Once()

	out, err := f.svc.RecordExam(context.Background(), 1, true)
	require.NoError(t, err)
	assert.Equal(t, 1, out.State.Achievements.ExamsPassed)
	assert.Equal(t, 40, out.State.Achievements.QuestionsAnswered)
	assert.Greater(t, out.State.Achievements.TotalXP, 120)

	f.queue.AssertExpectations(t)
}

func TestProgressService_InlinePersistWhenQueueRejects(t *testing.T) {
	f := newProgressFixture(t)
	f.withProfile(1, models.StoredState{})
	f.queue.On("EnqueuePersist", int64(1), int64(1), mock.Anything).Return(stderrors.New("queue full"))
	f.states.On("SaveAll", mock.Anything, int64(1), int64(1), mock.Anything).Return(stderrors.New("disk full")).Once()

	out, err := f.svc.CompleteQuiz(context.Background(), 1, 10, 10)
	require.NoError(t, err, "persistence failures never reach the caller")
	assert.Equal(t, 1, out.State.Achievements.PerfectQuizzes)

	f.states.AssertExpectations(t)
}

func TestProgressService_CompleteQuiz_Validation(t *testing.T) {
	f := newProgressFixture(t)

	_, err := f.svc.CompleteQuiz(context.Background(), 1, 11, 10)
	assert.Error(t, err)
	_, err = f.svc.CompleteQuiz(context.Background(), 1, 0, -1)
	assert.Error(t, err)
}

func TestProgressService_ReviewFlashcard(t *testing.T) {
	f := newProgressFixture(t)
	f.withProfile(1, models.StoredState{})
	f.queue.On("EnqueuePersist", int64(1), mock.Anything, mock.Anything).Return(nil)
	ctx := context.Background()

	_, err := f.svc.ReviewFlashcard(ctx, 1, "unicorn_crossing", true)
	assert.True(t, errors.IsNotFound(err))

	out, err := f.svc.ReviewFlashcard(ctx, 1, "stop", true)
	require.NoError(t, err)
	assert.Equal(t, 1, out.State.Flashcards["stop"].Level)

	session, err := f.svc.FlashcardSession(ctx, 1)
	require.NoError(t, err)
	for _, card := range session {
		assert.NotEqual(t, "stop", card.SignID)
	}

	signs, err := f.svc.SignMastery(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.SignMastery{SignID: "stop", Level: "learning"}, signs[0])
}

func TestProgressService_ConcurrentAnswersAreSerialized(t *testing.T) {
	f := newProgressFixture(t)
	f.withProfile(1, models.StoredState{})
	f.queue.On("EnqueuePersist", int64(1), mock.Anything, mock.Anything).Return(nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.RecordAnswer(ctx, 1, "sig-003", 2)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	summary, err := f.svc.Summary(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 25, summary.QuestionsAnswered)
	assert.True(t, summary.DailyGoal.Completed)
	f.states.AssertNumberOfCalls(t, "Load", 1)
	f.queue.AssertNumberOfCalls(t, "EnqueuePersist", 25)
}

func TestProgressService_Forget(t *testing.T) {
	f := newProgressFixture(t)
	f.profiles.On("Get", mock.Anything, int64(1)).Return(&models.Profile{ID: 1}, nil)
	f.states.On("Load", mock.Anything, int64(1)).Return(models.StoredState{}, nil).Twice()
	ctx := context.Background()

	_, err := f.svc.Snapshot(ctx, 1)
	require.NoError(t, err)
	f.svc.Forget(1)
	_, err = f.svc.Snapshot(ctx, 1)
	require.NoError(t, err)

	f.states.AssertNumberOfCalls(t, "Load", 2)
}

func TestProgressService_History(t *testing.T) {
	f := newProgressFixture(t)
	f.profiles.On("Get", mock.Anything, int64(1)).Return(&models.Profile{ID: 1}, nil)
	filter := models.AnswerHistoryFilter{ProfileID: 1, Limit: 10}
	f.history.On("List", mock.Anything, filter).Return([]models.AnswerHistory{{ID: 3, QuestionID: "sig-001"}}, nil)
	f.history.On("Count", mock.Anything, filter).Return(31, nil)

	rows, total, err := f.svc.History(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 31, total)

	_, _, err = f.svc.History(context.Background(), models.AnswerHistoryFilter{ProfileID: 1, Limit: -1})
	assert.Error(t, err)
}

func TestProgressService_Levels(t *testing.T) {
	f := newProgressFixture(t)
	levels := f.svc.Levels()
	require.NotEmpty(t, levels)
	assert.Equal(t, 0, levels[0].MinXP)
}
