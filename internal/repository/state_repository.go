package repository

import (
	"context"

	"github.com/vytor/theoryflash/internal/models"
)

// StateRepository stores a learner's progress as keyed blobs.
// SaveAll writes every blob in one transaction and never replaces a blob
// with one carrying an older or equal revision.
type StateRepository interface {
	Load(ctx context.Context, profileID int64) (models.StoredState, error)
	SaveAll(ctx context.Context, profileID int64, revision int64, blobs map[string][]byte) error
	Delete(ctx context.Context, profileID int64) error
}
