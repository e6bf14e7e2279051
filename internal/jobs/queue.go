package jobs

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	// EnqueuePersist schedules a state write. An error means the write was
	// not queued and the caller must perform it itself.
	EnqueuePersist(profileID, revision int64, blobs map[string][]byte) error
}
