package retrylimit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusErr int

func (s statusErr) Error() string   { return fmt.Sprintf("http %d", int(s)) }
func (s statusErr) StatusCode() int { return int(s) }

func TestWithRetryMaxFirstTrySuccess(t *testing.T) {
	calls := 0
	err := WithRetryMax(context.Background(), func() error {
		calls++
		return nil
	}, nil, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetryMaxRetriesThenSucceeds(t *testing.T) {
	calls := 0
	err := WithRetryMax(context.Background(), func() error {
		calls++
		if calls < 3 {
			return statusErr(429)
		}
		return nil
	}, nil, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetryMaxExhaustsAttempts(t *testing.T) {
	calls := 0
	err := WithRetryMax(context.Background(), func() error {
		calls++
		return statusErr(429)
	}, nil, 2)
	require.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestWithRetryMaxFatalStopsImmediately(t *testing.T) {
	calls := 0
	err := WithRetryMax(context.Background(), func() error {
		calls++
		return &FatalError{Err: fmt.Errorf("bad request")}
	}, nil, 5)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetryMaxHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := WithRetryMax(ctx, func() error { return nil }, nil, 3)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLimiterBacksOffOnRateLimitError(t *testing.T) {
	lim := NewAdaptiveLimiter(4, 1, 8, 1, 0.5)
	before := lim.CurrentLimit()

	_ = WithRetryMax(context.Background(), func() error {
		return statusErr(429)
	}, lim, 1)

	assert.Less(t, lim.CurrentLimit(), before)
}

func TestLimiterRecoversAfterGrace(t *testing.T) {
	lim := NewAdaptiveLimiter(2, 1, 5, 1, 0.5)
	lim.RateLimited()
	floor := lim.CurrentLimit()

	// Inside the grace window success must not raise the rate.
	lim.Success()
	assert.Equal(t, floor, lim.CurrentLimit())

	lim.lastError = time.Now().Add(-successGrace - time.Second)
	lim.Success()
	assert.Greater(t, lim.CurrentLimit(), floor)
}

func TestLimiterClampsToBounds(t *testing.T) {
	lim := NewAdaptiveLimiter(2, 1, 3, 5, 0.01)

	lim.lastError = time.Time{}
	lim.Success()
	assert.Equal(t, 3.0, lim.CurrentLimit())

	lim.RateLimited()
	assert.Equal(t, 1.0, lim.CurrentLimit())
}
