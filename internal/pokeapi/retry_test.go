package pokeapi

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearBackoff(t *testing.T) {
	assert.Equal(t, time.Second, LinearBackoff(time.Second, 1))
	assert.Equal(t, 2*time.Second, LinearBackoff(time.Second, 2))
	assert.Equal(t, 1500*time.Millisecond, LinearBackoff(500*time.Millisecond, 3))
}

func TestRetryPolicyStopsOnPermanent(t *testing.T) {
	rec := &sleepRecorder{}
	p := RetryPolicy{MaxAttempts: 5, InitialDelay: time.Millisecond, Sleep: rec.sleep}
	boom := errors.New("boom")

	calls := 0
	err := p.Do(context.Background(), func(ctx context.Context, attempt int) error {
		calls++
		return Permanent(boom)
	})

	assert.Same(t, boom, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, rec.recorded())
}

func TestRetryPolicyCustomBackoff(t *testing.T) {
	rec := &sleepRecorder{}
	p := RetryPolicy{
		MaxAttempts:  4,
		InitialDelay: 10 * time.Millisecond,
		Backoff: func(initial time.Duration, attempt int) time.Duration {
			return initial << attempt
		},
		Sleep: rec.sleep,
	}

	err := p.Do(context.Background(), func(ctx context.Context, attempt int) error {
		return errors.New("flaky")
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 4 attempts")
	assert.Equal(t, []time.Duration{20 * time.Millisecond, 40 * time.Millisecond, 80 * time.Millisecond}, rec.recorded())
}

func TestRetryPolicyHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := RetryPolicy{MaxAttempts: 3, InitialDelay: time.Hour}

	calls := 0
	err := p.Do(ctx, func(ctx context.Context, attempt int) error {
		calls++
		cancel()
		return errors.New("unreachable")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRetryPolicyZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	err := RetryPolicy{}.Do(context.Background(), func(ctx context.Context, attempt int) error {
		calls++
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}
