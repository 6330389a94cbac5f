package ports

import (
	"context"
	"time"
)

// SubmissionLedger remembers which bug a client-supplied idempotency key
// produced, so a repeated submission returns the first bug.
type SubmissionLedger interface {
	// Lookup returns the bug id recorded for key, or "" when none is.
	Lookup(ctx context.Context, key string) (string, error)
	Remember(ctx context.Context, key, bugID string, ttl time.Duration) error
}
