package shared

import (
	"context"
	"errors"
	"renthubber/shared/failure"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-retry"
)

// Persist runs fn until it succeeds, the attempts run out or fn returns a
// *failure.Failure. It ignores cancellation of ctx: fn records money the
// processor has already moved.
func Persist(ctx context.Context, maxRetries uint64, baseDelay time.Duration, fn func(ctx context.Context) error) error {
	ctx = context.WithoutCancel(ctx)

	if baseDelay <= 0 {
		baseDelay = 100 * time.Millisecond
	}

	backoff := retry.WithMaxRetries(maxRetries, retry.NewExponential(baseDelay))
	attempt := 0

	return retry.Do(ctx, backoff, func(ctx context.Context) error { //nolint:wrapcheck
		attempt++

		err := fn(ctx)
		if err == nil {
			return nil
		}

		var fail *failure.Failure
		if errors.As(err, &fail) {
			return err
		}

		log.Warn().Err(err).Int("attempt", attempt).Msg("failed to persist processor result, retrying")

		return retry.RetryableError(err)
	})
}
