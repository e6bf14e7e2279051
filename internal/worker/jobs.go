package worker

import (
	"context"
	"fmt"

	"github.com/vytor/theoryflash/internal/logger"
	"github.com/vytor/theoryflash/internal/repository"
)

// PersistStateJob writes one encoded snapshot of a learner's progress.
type PersistStateJob struct {
	States    repository.StateRepository
	ProfileID int64
	Revision  int64
	Blobs     map[string][]byte
}

func (j *PersistStateJob) Name() string { return "persist_state" }

func (j *PersistStateJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"profile_id": j.ProfileID,
		"revision":   j.Revision,
	})
	log.Debug("persisting %d blobs", len(j.Blobs))

	if err := j.States.SaveAll(ctx, j.ProfileID, j.Revision, j.Blobs); err != nil {
		return fmt.Errorf("persist profile %d revision %d: %w", j.ProfileID, j.Revision, err)
	}
	return nil
}
