package taskqueue

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
	"time"

	"github.com/piresc/tukang/internal/pkg/logger"
	"github.com/piresc/tukang/internal/pkg/retry"
)

// ErrClosed is returned by Submit after Close
var ErrClosed = errors.New("task queue closed")

// Task is one best-effort unit of work
type Task func(ctx context.Context) error

// Config tunes a Queue
type Config struct {
	Workers     int           // number of shards, each drained by one goroutine
	SoftLimit   int           // backlog per shard above which a warning is logged
	TaskTimeout time.Duration // per attempt; 0 disables
	Retry       retry.Config
}

// DefaultConfig returns a default queue configuration
func DefaultConfig() Config {
	return Config{
		Workers:     8,
		SoftLimit:   256,
		TaskTimeout: 10 * time.Second,
		Retry:       retry.DefaultConfig(),
	}
}

type job struct {
	ctx  context.Context
	key  string
	name string
	task Task
}

type shard struct {
	mu      sync.Mutex
	pending []job
	wake    chan struct{}
}

// Queue runs tasks in the background. Tasks sharing a key always land on the
// same shard and run in submission order; different keys run in parallel.
// Failed tasks are retried, then logged and dropped.
type Queue struct {
	cfg     Config
	shards  []*shard
	retrier *retry.Retrier
	logger  *logger.ZapLogger

	inflight sync.WaitGroup
	workers  sync.WaitGroup

	mu     sync.RWMutex
	closed bool
	stop   chan struct{}
}

// New starts a queue with cfg.Workers shards
func New(cfg Config, l *logger.ZapLogger) *Queue {
	if l == nil {
		l = logger.NewNopLogger()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	q := &Queue{
		cfg:     cfg,
		shards:  make([]*shard, cfg.Workers),
		retrier: retry.New(cfg.Retry, l),
		logger:  l,
		stop:    make(chan struct{}),
	}
	for i := range q.shards {
		s := &shard{wake: make(chan struct{}, 1)}
		q.shards[i] = s
		q.workers.Add(1)
		go q.run(s)
	}
	return q
}

// Submit enqueues task under key. The task gets a context detached from ctx's
// cancellation but keeping its values.
func (q *Queue) Submit(ctx context.Context, key, name string, task Task) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrClosed
	}

	s := q.shards[q.shardFor(key)]
	q.inflight.Add(1)

	s.mu.Lock()
	s.pending = append(s.pending, job{ctx: context.WithoutCancel(ctx), key: key, name: name, task: task})
	backlog := len(s.pending)
	s.mu.Unlock()

	if q.cfg.SoftLimit > 0 && backlog > q.cfg.SoftLimit {
		q.logger.Warn("Follow-up backlog above soft limit",
			logger.String("key", key),
			logger.Int("backlog", backlog))
	}

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return nil
}

// Wait blocks until every submitted task has finished
func (q *Queue) Wait() {
	q.inflight.Wait()
}

// Close stops accepting tasks, drains the backlog and stops the workers
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.mu.Unlock()

	q.inflight.Wait()
	close(q.stop)
	q.workers.Wait()
}

func (q *Queue) shardFor(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(q.shards)))
}

func (q *Queue) run(s *shard) {
	defer q.workers.Done()
	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.mu.Unlock()
			select {
			case <-s.wake:
				continue
			case <-q.stop:
				return
			}
		}
		j := s.pending[0]
		s.pending[0] = job{}
		s.pending = s.pending[1:]
		s.mu.Unlock()

		q.execute(j)
	}
}

func (q *Queue) execute(j job) {
	defer q.inflight.Done()
	defer func() {
		if r := recover(); r != nil {
			q.logger.Error("Follow-up task panicked",
				logger.String("task", j.name),
				logger.String("key", j.key),
				logger.Any("panic", r))
		}
	}()

	err := q.retrier.Execute(j.ctx, func(ctx context.Context) error {
		if q.cfg.TaskTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, q.cfg.TaskTimeout)
			defer cancel()
		}
		return j.task(ctx)
	})
	if err != nil {
		q.logger.Error("Follow-up task failed",
			logger.String("task", j.name),
			logger.String("key", j.key),
			logger.Err(err))
	}
}
