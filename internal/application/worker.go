package application

import "context"

// Worker is a long-running background job (the rate probe).
// Start blocks until the context is canceled.
type Worker interface {
	Start(ctx context.Context)
}
