package ports

import "context"

// Pacer throttles calls to the classification service. Wait blocks until the
// next call is allowed, given an estimate of how many tokens it will consume
// against the service's per-window quota.
type Pacer interface {
	Wait(ctx context.Context, estimatedTokens int) error
}
