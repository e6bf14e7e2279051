package repository

import (
	"context"

	"github.com/vytor/theoryflash/internal/models"
)

// AnswerHistoryRepository handles the append-only answer log
type AnswerHistoryRepository interface {
	Insert(ctx context.Context, h models.AnswerHistory) (int64, error)
	List(ctx context.Context, filter models.AnswerHistoryFilter) ([]models.AnswerHistory, error)
	Count(ctx context.Context, filter models.AnswerHistoryFilter) (int, error)
}
