package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errPublish = errors.New("publish failed")

func failing(context.Context) error { return errPublish }
func passing(context.Context) error { return nil }

func newTestBreaker(failures int) (*Breaker, *time.Time) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	b := New(Settings{Name: "booking.channel", Failures: failures, Cooldown: time.Second}, nil)
	b.now = func() time.Time { return now }
	return b, &now
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	b, _ := newTestBreaker(3)
	ctx := context.Background()

	assert.ErrorIs(t, b.Execute(ctx, failing), errPublish)
	assert.ErrorIs(t, b.Execute(ctx, failing), errPublish)
	assert.Equal(t, StateClosed, b.State())
	assert.ErrorIs(t, b.Execute(ctx, failing), errPublish)
	assert.Equal(t, StateOpen, b.State())

	called := false
	err := b.Execute(ctx, func(context.Context) error { called = true; return nil })
	assert.ErrorIs(t, err, ErrOpen)
	assert.False(t, called)
}

func TestBreaker_SuccessResetsFailureCount(t *testing.T) {
	b, _ := newTestBreaker(2)
	ctx := context.Background()

	assert.Error(t, b.Execute(ctx, failing))
	assert.NoError(t, b.Execute(ctx, passing))
	assert.Error(t, b.Execute(ctx, failing))
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_ProbeClosesAfterCooldown(t *testing.T) {
	b, now := newTestBreaker(1)
	ctx := context.Background()

	assert.Error(t, b.Execute(ctx, failing))
	assert.ErrorIs(t, b.Execute(ctx, passing), ErrOpen)

	*now = now.Add(2 * time.Second)
	assert.NoError(t, b.Execute(ctx, passing))
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_FailedProbeReopens(t *testing.T) {
	b, now := newTestBreaker(1)
	ctx := context.Background()

	assert.Error(t, b.Execute(ctx, failing))
	*now = now.Add(2 * time.Second)
	assert.ErrorIs(t, b.Execute(ctx, failing), errPublish)
	assert.Equal(t, StateOpen, b.State())
	assert.ErrorIs(t, b.Execute(ctx, passing), ErrOpen)
}

func TestBreaker_HalfOpenLimitsProbes(t *testing.T) {
	b, now := newTestBreaker(1)
	ctx := context.Background()

	assert.Error(t, b.Execute(ctx, failing))
	*now = now.Add(2 * time.Second)

	err := b.Execute(ctx, func(ctx context.Context) error {
		assert.Equal(t, StateHalfOpen, b.State())
		assert.ErrorIs(t, b.Execute(ctx, passing), ErrOpen)
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, StateClosed, b.State())
}
