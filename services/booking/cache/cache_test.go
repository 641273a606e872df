package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/piresc/tukang/internal/pkg/constants"
	"github.com/piresc/tukang/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func sample(id string) []*models.Booking {
	return []*models.Booking{{ID: id, WorkerID: "w-1", Status: models.BookingStatusAccepted}}
}

func TestNew(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	assert.Nil(t, New(models.CacheConfig{Driver: DriverNone}, nil))
	assert.IsType(t, &Memory{}, New(models.CacheConfig{Driver: DriverMemory}, nil))
	assert.IsType(t, &Memory{}, New(models.CacheConfig{Driver: DriverRedis}, nil))
	assert.IsType(t, &Redis{}, New(models.CacheConfig{Driver: "REDIS"}, rdb))
}

func TestMemory_TTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewMemory(time.Minute, 10, clock.Now)
	ctx := context.Background()

	c.Set(ctx, "w-1", "", c.Version(ctx, "w-1"), sample("b-1"))
	got, ok := c.Get(ctx, "w-1", constants.StatusFilterAll)
	require.True(t, ok)
	assert.Equal(t, "b-1", got[0].ID)

	clock.Advance(61 * time.Second)
	_, ok = c.Get(ctx, "w-1", "")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestMemory_ReturnsCopies(t *testing.T) {
	c := NewMemory(time.Minute, 10, nil)
	ctx := context.Background()
	in := sample("b-1")

	c.Set(ctx, "w-1", "accepted", c.Version(ctx, "w-1"), in)
	in[0].Status = models.BookingStatusCancelled

	got, ok := c.Get(ctx, "w-1", "accepted")
	require.True(t, ok)
	assert.Equal(t, models.BookingStatusAccepted, got[0].Status)

	got[0].Status = models.BookingStatusCompleted
	again, _ := c.Get(ctx, "w-1", "accepted")
	assert.Equal(t, models.BookingStatusAccepted, again[0].Status)
}

func TestMemory_InvalidateWorker(t *testing.T) {
	c := NewMemory(time.Minute, 10, nil)
	ctx := context.Background()
	c.Set(ctx, "w-1", "", c.Version(ctx, "w-1"), sample("b-1"))
	c.Set(ctx, "w-1", "accepted", c.Version(ctx, "w-1"), sample("b-1"))
	c.Set(ctx, "w-2", "", c.Version(ctx, "w-2"), sample("b-2"))

	c.InvalidateWorker(ctx, "w-1")

	_, ok := c.Get(ctx, "w-1", "")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "w-1", "accepted")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "w-2", "")
	assert.True(t, ok)
}

func TestMemory_SetAfterInvalidationIsDropped(t *testing.T) {
	c := NewMemory(time.Minute, 10, nil)
	ctx := context.Background()

	before := c.Version(ctx, "w-1")
	c.InvalidateWorker(ctx, "w-1")
	c.Set(ctx, "w-1", "", before, sample("stale"))
	_, ok := c.Get(ctx, "w-1", "")
	assert.False(t, ok)

	c.Set(ctx, "w-1", "", c.Version(ctx, "w-1"), sample("fresh"))
	got, ok := c.Get(ctx, "w-1", "")
	require.True(t, ok)
	assert.Equal(t, "fresh", got[0].ID)
	assert.Equal(t, uint64(0), c.Version(ctx, "w-2"))
}

func TestMemory_SweepsStaleEntriesAboveThreshold(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewMemory(time.Minute, 2, clock.Now)
	ctx := context.Background()

	c.Set(ctx, "old-1", "", c.Version(ctx, "old-1"), sample("b-1"))
	c.Set(ctx, "old-2", "", c.Version(ctx, "old-2"), sample("b-2"))
	clock.Advance(90 * time.Second)
	c.Set(ctx, "mid", "", c.Version(ctx, "mid"), sample("b-3"))
	// three entries but none older than 2x TTL yet
	assert.Equal(t, 3, c.Len())

	clock.Advance(31 * time.Second)
	c.Set(ctx, "new", "", c.Version(ctx, "new"), sample("b-4"))

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get(ctx, "mid", "")
	assert.True(t, ok)
}

func newRedisCache(t *testing.T) (*Redis, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedis(rdb, time.Minute), mr
}

func TestRedis_RoundTripAndTTL(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()

	c.Set(ctx, "w-1", "", c.Version(ctx, "w-1"), sample("b-1"))
	assert.True(t, mr.Exists("worker:bookings:w-1:all"))
	assert.Equal(t, time.Minute, mr.TTL("worker:bookings:w-1:all"))
	members, err := mr.Members("worker:bookings:w-1:index")
	require.NoError(t, err)
	assert.Equal(t, []string{"worker:bookings:w-1:all"}, members)

	got, ok := c.Get(ctx, "w-1", "")
	require.True(t, ok)
	assert.Equal(t, "b-1", got[0].ID)

	mr.FastForward(61 * time.Second)
	_, ok = c.Get(ctx, "w-1", "")
	assert.False(t, ok)
}

func TestRedis_InvalidateWorker(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()
	c.Set(ctx, "w-1", "", c.Version(ctx, "w-1"), sample("b-1"))
	c.Set(ctx, "w-1", "completed", c.Version(ctx, "w-1"), sample("b-1"))
	c.Set(ctx, "w-2", "", c.Version(ctx, "w-2"), sample("b-2"))

	c.InvalidateWorker(ctx, "w-1")

	assert.False(t, mr.Exists("worker:bookings:w-1:all"))
	assert.False(t, mr.Exists("worker:bookings:w-1:completed"))
	assert.False(t, mr.Exists("worker:bookings:w-1:index"))
	assert.True(t, mr.Exists("worker:bookings:w-2:all"))
}

func TestRedis_SetAfterInvalidationIsDropped(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()

	before := c.Version(ctx, "w-1")
	c.InvalidateWorker(ctx, "w-1")
	gen, err := mr.Get("worker:bookings:w-1:gen")
	require.NoError(t, err)
	assert.Equal(t, "1", gen)

	c.Set(ctx, "w-1", "", before, sample("stale"))
	assert.False(t, mr.Exists("worker:bookings:w-1:all"))

	c.Set(ctx, "w-1", "", c.Version(ctx, "w-1"), sample("fresh"))
	got, ok := c.Get(ctx, "w-1", "")
	require.True(t, ok)
	assert.Equal(t, "fresh", got[0].ID)
}

func TestRedis_FailuresReadAsMiss(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("worker:bookings:w-1:all", "not json"))
	_, ok := c.Get(ctx, "w-1", "")
	assert.False(t, ok)

	mr.Close()
	_, ok = c.Get(ctx, "w-1", "")
	assert.False(t, ok)
	c.Set(ctx, "w-1", "", c.Version(ctx, "w-1"), sample("b-1"))
	c.InvalidateWorker(ctx, "w-1")
}

type capturePublisher struct {
	subject string
	msgs    []Invalidation
	err     error
}

func (p *capturePublisher) PublishJSON(subject string, v interface{}) error {
	p.subject = subject
	p.msgs = append(p.msgs, v.(Invalidation))
	return p.err
}

func TestBroadcast(t *testing.T) {
	ctx := context.Background()
	pubA := &capturePublisher{}
	pubB := &capturePublisher{}
	a := NewBroadcast(NewMemory(time.Minute, 10, nil), pubA)
	b := NewBroadcast(NewMemory(time.Minute, 10, nil), pubB)

	a.Set(ctx, "w-1", "", a.Version(ctx, "w-1"), sample("b-1"))
	b.Set(ctx, "w-1", "", b.Version(ctx, "w-1"), sample("b-1"))

	a.InvalidateWorker(ctx, "w-1")
	require.Len(t, pubA.msgs, 1)
	assert.Equal(t, constants.SubjectCacheInvalidate, pubA.subject)

	_, ok := a.Get(ctx, "w-1", "")
	assert.False(t, ok)
	_, ok = b.Get(ctx, "w-1", "")
	assert.True(t, ok)

	data, err := json.Marshal(pubA.msgs[0])
	require.NoError(t, err)
	require.NoError(t, b.HandleInvalidation(data))
	_, ok = b.Get(ctx, "w-1", "")
	assert.False(t, ok)

	// own messages are ignored
	a.Set(ctx, "w-1", "", a.Version(ctx, "w-1"), sample("b-1"))
	require.NoError(t, a.HandleInvalidation(data))
	_, ok = a.Get(ctx, "w-1", "")
	assert.True(t, ok)

	assert.Error(t, b.HandleInvalidation([]byte("{")))
}

func TestBroadcast_PublishFailureStillInvalidatesLocally(t *testing.T) {
	ctx := context.Background()
	c := NewBroadcast(NewMemory(time.Minute, 10, nil), &capturePublisher{err: errors.New("nats down")})
	c.Set(ctx, "w-1", "", c.Version(ctx, "w-1"), sample("b-1"))

	c.InvalidateWorker(ctx, "w-1")

	_, ok := c.Get(ctx, "w-1", "")
	assert.False(t, ok)
}
