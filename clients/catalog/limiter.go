package catalog

import (
	"context"

	"golang.org/x/time/rate"
)

// admissionQueue is the single shared rate-limit gate every outgoing
// catalog call passes through, grounded in the sibling pack repo
// godver3-mediastorm's backend/api/ratelimit.go token-bucket. Unlike that
// per-IP map (throttling inbound requests), this core throttles one
// outbound client, so a single limiter instance is the shared resource the
// spec's FIFO-ordering guarantee applies to.
type admissionQueue struct {
	limiter *rate.Limiter
}

// newAdmissionQueue builds a queue admitting at most one call per spacing,
// with the given burst.
func newAdmissionQueue(spacing rate.Limit, burst int) *admissionQueue {
	if burst < 1 {
		burst = 1
	}
	return &admissionQueue{limiter: rate.NewLimiter(spacing, burst)}
}

// wait blocks until the next call is admitted, or returns ctx.Err() if ctx
// is canceled first. Cancellation of one waiter never affects others —
// rate.Limiter.Wait reserves and releases tokens per caller.
func (q *admissionQueue) wait(ctx context.Context) error {
	return q.limiter.Wait(ctx)
}
