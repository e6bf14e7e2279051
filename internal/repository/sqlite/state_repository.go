package sqlite

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/theoryflash/internal/logger"
	"github.com/vytor/theoryflash/internal/models"
	"github.com/vytor/theoryflash/internal/repository"
)

type stateRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewStateRepository creates a new StateRepository implementation
func NewStateRepository(db *sql.DB) repository.StateRepository {
	return &stateRepository{db: db, now: time.Now}
}

func (r *stateRepository) Load(ctx context.Context, profileID int64) (models.StoredState, error) {
	log := logger.FromContext(ctx).WithPrefix("state_repo")
	log.Debug("loading state: profile_id=%d", profileID)

	query, args, err := sqlBuilder.
		Select("key", "value", "revision").
		From("state_blobs").
		Where(squirrel.Eq{"profile_id": profileID}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return models.StoredState{}, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to load state: %v", err)
		return models.StoredState{}, err
	}
	defer rows.Close()

	out := models.StoredState{Blobs: map[string][]byte{}}
	for rows.Next() {
		var key string
		var value []byte
		var revision int64
		if err := rows.Scan(&key, &value, &revision); err != nil {
			log.Error("failed to scan state row: %v", err)
			return models.StoredState{}, err
		}
		out.Blobs[key] = value
		out.Revision = max(out.Revision, revision)
	}
	if err := rows.Err(); err != nil {
		log.Error("failed to iterate state rows: %v", err)
		return models.StoredState{}, err
	}

	log.Debug("loaded %d blobs at revision %d", len(out.Blobs), out.Revision)
	return out, nil
}

func (r *stateRepository) SaveAll(ctx context.Context, profileID int64, revision int64, blobs map[string][]byte) error {
	log := logger.FromContext(ctx).WithPrefix("state_repo")
	log.Debug("saving state: profile_id=%d, revision=%d, keys=%d", profileID, revision, len(blobs))

	if len(blobs) == 0 {
		return nil
	}

	keys := make([]string, 0, len(blobs))
	for k := range blobs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	now := r.now().UTC()
	insert := sqlBuilder.
		Insert("state_blobs").
		Columns("profile_id", "key", "value", "revision", "updated_at")
	for _, k := range keys {
		insert = insert.Values(profileID, k, blobs[k], revision, now)
	}
	query, args, err := insert.Suffix(`
ON CONFLICT(profile_id, key) DO UPDATE SET
    value = excluded.value,
    revision = excluded.revision,
    updated_at = excluded.updated_at
WHERE excluded.revision > state_blobs.revision`).ToSql()
	if err != nil {
		log.Error("failed to build upsert: %v", err)
		return err
	}

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			log.Error("failed to save state for profile %d: %v", profileID, err)
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n < int64(len(keys)) {
			log.Debug("skipped %d stale blobs for profile %d", int64(len(keys))-n, profileID)
		}
		return nil
	})
}

func (r *stateRepository) Delete(ctx context.Context, profileID int64) error {
	log := logger.FromContext(ctx).WithPrefix("state_repo")
	log.Debug("deleting state: profile_id=%d", profileID)

	query, args, err := sqlBuilder.
		Delete("state_blobs").
		Where(squirrel.Eq{"profile_id": profileID}).
		ToSql()
	if err != nil {
		log.Error("failed to build delete: %v", err)
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to delete state: %v", err)
		return err
	}
	return nil
}
