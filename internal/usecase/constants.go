package usecase

import "time"

const (
	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// MaxBatchSize caps the number of entries in one bulk collection sheet
	MaxBatchSize = 500
)
