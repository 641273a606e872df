package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/piresc/tukang/internal/pkg/logger"
)

// State is the breaker position
type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half_open"
)

// ErrOpen is returned without calling through while the breaker is open or
// its half-open probes are taken
var ErrOpen = errors.New("circuit breaker is open")

// Settings tune a Breaker
type Settings struct {
	Name     string
	Failures int           // consecutive failures that open the breaker
	Cooldown time.Duration // time spent open before probing
	Probes   int           // concurrent calls allowed while half-open
}

// Defaults returns the settings used for broker publishes
func Defaults(name string) Settings {
	return Settings{
		Name:     name,
		Failures: 5,
		Cooldown: 30 * time.Second,
		Probes:   1,
	}
}

// Breaker stops calling a failing dependency for a cooldown, then lets probe
// calls decide whether to close again
type Breaker struct {
	settings Settings
	logger   *logger.ZapLogger
	now      func() time.Time

	mu       sync.Mutex
	state    State
	failures int
	inflight int
	openedAt time.Time
}

// New creates a closed breaker
func New(s Settings, l *logger.ZapLogger) *Breaker {
	if l == nil {
		l = logger.NewNopLogger()
	}
	if s.Failures <= 0 {
		s.Failures = 1
	}
	if s.Probes <= 0 {
		s.Probes = 1
	}
	return &Breaker{settings: s, logger: l, now: time.Now, state: StateClosed}
}

// Execute runs fn when the breaker admits the call and records its outcome
func (b *Breaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	probe, err := b.admit()
	if err != nil {
		return err
	}
	err = fn(ctx)
	b.record(probe, err)
	return err
}

func (b *Breaker) admit() (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		if b.now().Sub(b.openedAt) < b.settings.Cooldown {
			return false, ErrOpen
		}
		b.transition(StateHalfOpen)
	}
	if b.state == StateHalfOpen {
		if b.inflight >= b.settings.Probes {
			return false, ErrOpen
		}
		b.inflight++
		return true, nil
	}
	return false, nil
}

func (b *Breaker) record(probe bool, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if probe {
		b.inflight--
	}
	if err == nil {
		b.failures = 0
		if b.state == StateHalfOpen {
			b.transition(StateClosed)
		}
		return
	}

	b.failures++
	if b.state == StateHalfOpen || b.failures >= b.settings.Failures {
		b.openedAt = b.now()
		b.transition(StateOpen)
	}
}

func (b *Breaker) transition(to State) {
	if b.state == to {
		return
	}
	b.logger.Warn("Circuit breaker state changed",
		logger.String("name", b.settings.Name),
		logger.String("from", string(b.state)),
		logger.String("to", string(to)),
		logger.Int("failures", b.failures))
	b.state = to
	if to == StateClosed {
		b.failures = 0
	}
}

// State returns the current position
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}
