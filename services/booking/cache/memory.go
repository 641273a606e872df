package cache

import (
	"context"
	"sync"
	"time"

	"github.com/piresc/tukang/internal/pkg/models"
)

const (
	DefaultTTL        = 60 * time.Second
	DefaultMaxEntries = 100
)

type memoryKey struct {
	workerID string
	status   string
}

type memoryEntry struct {
	bookings []*models.Booking
	storedAt time.Time
}

// Memory is a process-local TTL cache. Once it holds more than maxEntries,
// every Set sweeps entries older than twice the TTL.
type Memory struct {
	mu         sync.Mutex
	entries    map[memoryKey]memoryEntry
	versions   map[string]uint64
	ttl        time.Duration
	maxEntries int
	now        models.Clock
}

func NewMemory(ttl time.Duration, maxEntries int, now models.Clock) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if now == nil {
		now = models.Now
	}
	return &Memory{
		entries:    make(map[memoryKey]memoryEntry),
		versions:   make(map[string]uint64),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        now,
	}
}

func (m *Memory) Get(_ context.Context, workerID, statusFilter string) ([]*models.Booking, bool) {
	k := memoryKey{workerID: workerID, status: statusKey(statusFilter)}

	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[k]
	if !ok {
		return nil, false
	}
	if m.now().Sub(e.storedAt) > m.ttl {
		delete(m.entries, k)
		return nil, false
	}
	return cloneBookings(e.bookings), true
}

func (m *Memory) Version(_ context.Context, workerID string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.versions[workerID]
}

func (m *Memory) Set(_ context.Context, workerID, statusFilter string, version uint64, bookings []*models.Booking) {
	k := memoryKey{workerID: workerID, status: statusKey(statusFilter)}
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.versions[workerID] != version {
		return
	}
	m.entries[k] = memoryEntry{bookings: cloneBookings(bookings), storedAt: now}
	if len(m.entries) > m.maxEntries {
		m.sweep(now)
	}
}

func (m *Memory) sweep(now time.Time) {
	for k, e := range m.entries {
		if now.Sub(e.storedAt) > 2*m.ttl {
			delete(m.entries, k)
		}
	}
}

// InvalidateWorker drops the worker's entries and bumps its version so reads
// that started earlier cannot store their result.
func (m *Memory) InvalidateWorker(_ context.Context, workerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.versions[workerID]++
	for k := range m.entries {
		if k.workerID == workerID {
			delete(m.entries, k)
		}
	}
}

// Len returns the number of stored entries, expired ones included
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
