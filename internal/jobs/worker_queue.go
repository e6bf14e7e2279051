package jobs

import (
	"github.com/vytor/theoryflash/internal/repository"
	"github.com/vytor/theoryflash/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	persistPool *worker.Pool
	states      repository.StateRepository
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(persistPool *worker.Pool, states repository.StateRepository) JobQueue {
	return &WorkerQueue{
		persistPool: persistPool,
		states:      states,
	}
}

func (q *WorkerQueue) EnqueuePersist(profileID, revision int64, blobs map[string][]byte) error {
	return q.persistPool.Submit(&worker.PersistStateJob{
		States:    q.states,
		ProfileID: profileID,
		Revision:  revision,
		Blobs:     blobs,
	})
}
