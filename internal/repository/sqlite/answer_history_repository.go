package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/theoryflash/internal/logger"
	"github.com/vytor/theoryflash/internal/models"
	"github.com/vytor/theoryflash/internal/repository"
)

type answerHistoryRepository struct {
	db *sql.DB
}

// NewAnswerHistoryRepository creates a new AnswerHistoryRepository implementation
func NewAnswerHistoryRepository(db *sql.DB) repository.AnswerHistoryRepository {
	return &answerHistoryRepository{db: db}
}

func (r *answerHistoryRepository) Insert(ctx context.Context, h models.AnswerHistory) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("history_repo")
	log.Debug("inserting answer: profile_id=%d, question_id=%s, correct=%t", h.ProfileID, h.QuestionID, h.Correct)

	query, args, err := sqlBuilder.
		Insert("answer_history").
		Columns("profile_id", "question_id", "category", "selected", "correct", "answered_at").
		Values(h.ProfileID, h.QuestionID, h.Category, h.Selected, h.Correct, h.AnsweredAt.UTC()).
		ToSql()
	if err != nil {
		log.Error("failed to build insert: %v", err)
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to insert answer: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get answer id: %v", err)
		return 0, err
	}
	log.Debug("answer inserted: id=%d", id)
	return id, nil
}

func applyHistoryFilter(q squirrel.SelectBuilder, filter models.AnswerHistoryFilter) squirrel.SelectBuilder {
	if filter.ProfileID != 0 {
		q = q.Where(squirrel.Eq{"profile_id": filter.ProfileID})
	}
	if filter.Category != "" {
		q = q.Where(squirrel.Eq{"category": filter.Category})
	}
	if filter.OnlyWrong {
		q = q.Where(squirrel.Eq{"correct": false})
	}
	if filter.Since != nil {
		q = q.Where(squirrel.GtOrEq{"answered_at": filter.Since.UTC()})
	}
	return q
}

func (r *answerHistoryRepository) List(ctx context.Context, filter models.AnswerHistoryFilter) ([]models.AnswerHistory, error) {
	log := logger.FromContext(ctx).WithPrefix("history_repo")
	log.Debug("listing answers with filter: profile_id=%d, category=%s, only_wrong=%t",
		filter.ProfileID, filter.Category, filter.OnlyWrong)

	query := applyHistoryFilter(sqlBuilder.Select(
		"id", "profile_id", "question_id", "category", "selected", "correct", "answered_at",
	).From("answer_history"), filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.OrderBy("answered_at DESC", "id DESC").Limit(uint64(limit)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sql, args...)
	if err != nil {
		log.Error("failed to list answers: %v", err)
		return nil, err
	}
	defer rows.Close()

	history := []models.AnswerHistory{}
	for rows.Next() {
		var h models.AnswerHistory
		if err := rows.Scan(&h.ID, &h.ProfileID, &h.QuestionID, &h.Category, &h.Selected, &h.Correct, &h.AnsweredAt); err != nil {
			log.Error("failed to scan answer row: %v", err)
			return nil, err
		}
		history = append(history, h)
	}
	log.Debug("found %d answers", len(history))
	return history, rows.Err()
}

func (r *answerHistoryRepository) Count(ctx context.Context, filter models.AnswerHistoryFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("history_repo")

	sql, args, err := applyHistoryFilter(sqlBuilder.Select("COUNT(*)").From("answer_history"), filter).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sql, args...).Scan(&count); err != nil {
		log.Error("failed to count answers: %v", err)
		return 0, err
	}
	log.Debug("count result: %d", count)
	return count, nil
}
