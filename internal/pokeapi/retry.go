package pokeapi

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// BackoffFunc returns the wait after the given failed attempt (1-based)
type BackoffFunc func(initial time.Duration, attempt int) time.Duration

// LinearBackoff waits initial × attempt
func LinearBackoff(initial time.Duration, attempt int) time.Duration {
	return initial * time.Duration(attempt)
}

// SleepFunc blocks for d or until ctx is done
type SleepFunc func(ctx context.Context, d time.Duration) error

// RetryPolicy parameterizes how often and how patiently an operation is retried
type RetryPolicy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	Backoff      BackoffFunc
	// Sleep is replaced in tests; nil uses a timer
	Sleep SleepFunc
}

// DefaultRetryPolicy makes three attempts, waiting 1s then 2s between them
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:  3,
		InitialDelay: time.Second,
		Backoff:      LinearBackoff,
	}
}

type permanentError struct {
	err error
}

func (p *permanentError) Error() string { return p.err.Error() }
func (p *permanentError) Unwrap() error { return p.err }

// Permanent marks err as not worth retrying
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Do runs op until it succeeds, returns a Permanent error, or MaxAttempts is
// reached. There is no wait after the last attempt
func (p RetryPolicy) Do(ctx context.Context, op func(ctx context.Context, attempt int) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	backoff := p.Backoff
	if backoff == nil {
		backoff = LinearBackoff
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = timerSleep
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = op(ctx, attempt)
		if err == nil {
			return nil
		}

		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if attempt == attempts {
			break
		}

		if sleepErr := sleep(ctx, backoff(p.InitialDelay, attempt)); sleepErr != nil {
			return sleepErr
		}
	}

	return fmt.Errorf("request failed after %d attempts: %w", attempts, err)
}

func timerSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
