package oracle

import (
	"context"

	"github.com/cenkalti/backoff/v5"
)

// defaultMaxTries is the attempt ceiling used when no override is given.
const defaultMaxTries = 3

// Retry wraps a LanguageOracle so that transient failures from the
// underlying provider (rate limits, timeouts) are retried with exponential
// backoff before surfacing a treeerr.ErrOracle to the caller. This lives
// entirely on the oracle side: per spec.md §4.5 and §7, the dispatcher
// itself imposes no retry policy and treats any returned error as final.
type Retry struct {
	inner    LanguageOracle
	maxTries uint
}

// NewRetry wraps inner with the package default backoff policy.
func NewRetry(inner LanguageOracle) *Retry {
	return &Retry{inner: inner, maxTries: defaultMaxTries}
}

// NewRetryWithMaxTries wraps inner with the default backoff policy but a
// caller-supplied attempt ceiling. maxTries <= 0 falls back to the package
// default.
func NewRetryWithMaxTries(inner LanguageOracle, maxTries int) *Retry {
	if maxTries <= 0 {
		maxTries = defaultMaxTries
	}
	return &Retry{inner: inner, maxTries: uint(maxTries)}
}

func retryWith[T any](ctx context.Context, maxTries uint, fn func() (T, error)) (T, error) {
	return backoff.Retry(ctx, fn,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(maxTries),
	)
}

func (r *Retry) TopicShift(ctx context.Context, previous, current string) (bool, error) {
	return retryWith(ctx, r.maxTries, func() (bool, error) {
		return r.inner.TopicShift(ctx, previous, current)
	})
}

func (r *Retry) Summarize(ctx context.Context, texts []string) (string, error) {
	return retryWith(ctx, r.maxTries, func() (string, error) {
		return r.inner.Summarize(ctx, texts)
	})
}

func (r *Retry) Group(ctx context.Context, messages []string) ([][]int, error) {
	return retryWith(ctx, r.maxTries, func() ([][]int, error) {
		return r.inner.Group(ctx, messages)
	})
}

var _ LanguageOracle = (*Retry)(nil)
