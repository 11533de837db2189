package pos

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrDeadline is returned by Bounded when the ceiling elapses before the operation answers.
var ErrDeadline = errors.New("operation exceeded its time limit")

type outcome[T any] struct {
	value T
	err   error
}

// Bounded runs op with a ceiling of limit. Both an elapsed ceiling and a failed op come back as an
// error; an op that ignores its context is abandoned, not waited for.
func Bounded[T any](ctx context.Context, limit time.Duration, op func(ctx context.Context) (T, error)) (T, error) {

	opCtx, cancel := context.WithTimeout(ctx, limit)
	defer cancel()

	// buffered so an abandoned op can still deliver and exit
	done := make(chan outcome[T], 1)

	go func() {
		value, err := op(opCtx)
		done <- outcome[T]{value: value, err: err}
	}()

	return await(ctx, opCtx, done)
}

func await[T any](ctx, opCtx context.Context, done <-chan outcome[T]) (T, error) {

	var zero T

	select {
	case res := <-done:
		if res.err != nil && ctx.Err() == nil && errors.Is(opCtx.Err(), context.DeadlineExceeded) {
			return zero, fmt.Errorf("%w: %w", ErrDeadline, res.err)
		}

		return res.value, res.err

	case <-opCtx.Done():
		// a confirmation that arrived together with the deadline still counts
		select {
		case res := <-done:
			if res.err == nil {
				return res.value, nil
			}
		default:
		}

		if err := ctx.Err(); err != nil {
			return zero, err
		}

		return zero, ErrDeadline
	}
}
