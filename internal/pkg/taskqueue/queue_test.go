package taskqueue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/piresc/tukang/internal/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(workers, maxRetries int) Config {
	return Config{
		Workers: workers,
		Retry:   retry.Config{MaxRetries: maxRetries, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1},
	}
}

func TestQueue_SameKeyRunsInOrder(t *testing.T) {
	q := New(testConfig(4, 0), nil)
	defer q.Close()

	var mu sync.Mutex
	var order []int
	for i := 0; i < 50; i++ {
		i := i
		require.NoError(t, q.Submit(context.Background(), "booking-1", "record", func(ctx context.Context) error {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return nil
		}))
	}
	q.Wait()

	require.Len(t, order, 50)
	for i, v := range order {
		assert.Equal(t, i, v)
	}
}

func TestQueue_RetriesFailedTasks(t *testing.T) {
	q := New(testConfig(2, 3), nil)
	defer q.Close()

	var attempts int32
	require.NoError(t, q.Submit(context.Background(), "booking-2", "notify", func(ctx context.Context) error {
		if atomic.AddInt32(&attempts, 1) < 3 {
			return errors.New("store unavailable")
		}
		return nil
	}))
	q.Wait()

	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestQueue_FailureDoesNotBlockLaterTasks(t *testing.T) {
	q := New(testConfig(1, 1), nil)
	defer q.Close()

	ran := false
	require.NoError(t, q.Submit(context.Background(), "k", "always-fails", func(ctx context.Context) error {
		return errors.New("nope")
	}))
	require.NoError(t, q.Submit(context.Background(), "k", "panics", func(ctx context.Context) error {
		panic("boom")
	}))
	require.NoError(t, q.Submit(context.Background(), "k", "after", func(ctx context.Context) error {
		ran = true
		return nil
	}))
	q.Wait()

	assert.True(t, ran)
}

func TestQueue_DetachesFromCallerCancellation(t *testing.T) {
	q := New(testConfig(1, 0), nil)
	defer q.Close()

	ctx, cancel := context.WithCancel(context.Background())
	var sawErr error
	require.NoError(t, q.Submit(ctx, "k", "detached", func(ctx context.Context) error {
		sawErr = ctx.Err()
		return nil
	}))
	cancel()
	q.Wait()

	assert.NoError(t, sawErr)
}

func TestQueue_SubmitAfterClose(t *testing.T) {
	q := New(testConfig(1, 0), nil)
	q.Close()
	q.Close()

	err := q.Submit(context.Background(), "k", "late", func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrClosed)
}
