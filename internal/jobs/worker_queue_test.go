package jobs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/theoryflash/internal/jobs"
	"github.com/vytor/theoryflash/internal/testutil/mocks"
	"github.com/vytor/theoryflash/internal/worker"
)

func TestWorkerQueue_EnqueuePersist(t *testing.T) {
	states := new(mocks.MockStateRepository)
	blobs := map[string][]byte{"flashcards": []byte("{}")}
	states.On("SaveAll", mock.Anything, int64(2), int64(3), blobs).Return(nil).Once()

	pool := worker.NewPool(1, 4)
	pool.Start(context.Background())
	q := jobs.NewWorkerQueue(pool, states)

	require.NoError(t, q.EnqueuePersist(2, 3, blobs))
	pool.Stop()

	states.AssertExpectations(t)
	assert.ErrorIs(t, q.EnqueuePersist(2, 4, blobs), worker.ErrPoolStopped)
}
