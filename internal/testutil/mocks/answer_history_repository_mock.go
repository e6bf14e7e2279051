package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/theoryflash/internal/models"
)

// MockAnswerHistoryRepository is a mock implementation of repository.AnswerHistoryRepository
type MockAnswerHistoryRepository struct {
	mock.Mock
}

func (m *MockAnswerHistoryRepository) Insert(ctx context.Context, h models.AnswerHistory) (int64, error) {
	args := m.Called(ctx, h)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnswerHistoryRepository) List(ctx context.Context, filter models.AnswerHistoryFilter) ([]models.AnswerHistory, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AnswerHistory), args.Error(1)
}

func (m *MockAnswerHistoryRepository) Count(ctx context.Context, filter models.AnswerHistoryFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}
