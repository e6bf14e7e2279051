package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueuePersist(profileID, revision int64, blobs map[string][]byte) error {
	args := m.Called(profileID, revision, blobs)
	return args.Error(0)
}
