package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vytor/theoryflash/internal/logger"
	"github.com/vytor/theoryflash/internal/models"
	"github.com/vytor/theoryflash/internal/repository"
)

type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new ProfileRepository implementation
func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `id, username, created_at, last_active_at`

func scanProfile(row interface{ Scan(...any) error }) (*models.Profile, error) {
	var p models.Profile
	var lastActive sql.NullTime
	if err := row.Scan(&p.ID, &p.Username, &p.CreatedAt, &lastActive); err != nil {
		return nil, err
	}
	if lastActive.Valid {
		t := lastActive.Time
		p.LastActiveAt = &t
	}
	return &p, nil
}

func (r *profileRepository) Upsert(ctx context.Context, username string) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("upserting profile for username: %s", username)

	if _, err := r.db.ExecContext(ctx, `
INSERT INTO profiles (username)
VALUES (?)
ON CONFLICT(username) DO NOTHING
`, username); err != nil {
		log.Error("failed to upsert profile: %v", err)
		return nil, err
	}

	p, err := r.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, sql.ErrNoRows
	}
	log.Debug("profile upserted: id=%d", p.ID)
	return p, nil
}

func (r *profileRepository) Touch(ctx context.Context, id int64, t time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("updating profile activity: profile_id=%d", id)

	_, err := r.db.ExecContext(ctx, `UPDATE profiles SET last_active_at = ? WHERE id = ?`, t.UTC(), id)
	if err != nil {
		log.Error("failed to update profile activity: %v", err)
	}
	return err
}

func (r *profileRepository) List(ctx context.Context) ([]models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("listing profiles")

	rows, err := r.db.QueryContext(ctx, `
SELECT `+profileColumns+`
FROM profiles
ORDER BY created_at ASC, id ASC
`)
	if err != nil {
		log.Error("failed to list profiles: %v", err)
		return nil, err
	}
	defer rows.Close()

	profiles := []models.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			log.Error("failed to scan profile row: %v", err)
			return nil, err
		}
		profiles = append(profiles, *p)
	}

	log.Debug("found %d profiles", len(profiles))
	return profiles, rows.Err()
}

func (r *profileRepository) Get(ctx context.Context, id int64) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("getting profile: id=%d", id)

	p, err := scanProfile(r.db.QueryRowContext(ctx, `
SELECT `+profileColumns+`
FROM profiles
WHERE id = ?
`, id))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("profile not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("getting profile: username=%s", username)

	p, err := scanProfile(r.db.QueryRowContext(ctx, `
SELECT `+profileColumns+`
FROM profiles
WHERE username = ?
`, username))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("profile not found: username=%s", username)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("deleting profile and related data: id=%d", id)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM answer_history WHERE profile_id = ?`, id); err != nil {
			log.Error("failed to delete answer history for profile %d: %v", id, err)
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM state_blobs WHERE profile_id = ?`, id); err != nil {
			log.Error("failed to delete state for profile %d: %v", id, err)
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id); err != nil {
			log.Error("failed to delete profile %d: %v", id, err)
			return err
		}

		log.Debug("profile %d deleted with cascading data", id)
		return nil
	})
}
