package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/theoryflash/internal/models"
)

// MockStateRepository is a mock implementation of repository.StateRepository
type MockStateRepository struct {
	mock.Mock
}

func (m *MockStateRepository) Load(ctx context.Context, profileID int64) (models.StoredState, error) {
	args := m.Called(ctx, profileID)
	return args.Get(0).(models.StoredState), args.Error(1)
}

func (m *MockStateRepository) SaveAll(ctx context.Context, profileID int64, revision int64, blobs map[string][]byte) error {
	args := m.Called(ctx, profileID, revision, blobs)
	return args.Error(0)
}

func (m *MockStateRepository) Delete(ctx context.Context, profileID int64) error {
	args := m.Called(ctx, profileID)
	return args.Error(0)
}
