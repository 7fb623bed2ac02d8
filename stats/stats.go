package stats

import (
	"sync"
	"sync/atomic"
	"time"
)

// Stats collects counters for codec operations
type Stats struct {
	// Operations
	Encodes  atomic.Uint64
	Decodes  atomic.Uint64
	Queries  atomic.Uint64
	Failures atomic.Uint64

	// Traffic
	BytesHidden    atomic.Uint64
	BytesRecovered atomic.Uint64
	CarrierBytes   atomic.Uint64

	// Time
	StartTime    time.Time
	LastActivity atomic.Value // time.Time

	// Failures by error kind
	failureKindsMu sync.RWMutex
	failureKinds   map[string]uint64
}

// NewStats creates an empty counter set
func NewStats() *Stats {
	s := &Stats{
		StartTime:    time.Now(),
		failureKinds: make(map[string]uint64),
	}
	s.LastActivity.Store(time.Now())
	return s
}

// RecordEncode counts a successful encode of payload bytes into a carrier
func (s *Stats) RecordEncode(payload, carrier int) {
	s.Encodes.Add(1)
	s.BytesHidden.Add(uint64(payload))
	s.CarrierBytes.Add(uint64(carrier))
	s.updateActivity()
}

// RecordDecode counts a successful decode
func (s *Stats) RecordDecode(payload, carrier int) {
	s.Decodes.Add(1)
	s.BytesRecovered.Add(uint64(payload))
	s.CarrierBytes.Add(uint64(carrier))
	s.updateActivity()
}

// RecordQuery counts a capacity query
func (s *Stats) RecordQuery() {
	s.Queries.Add(1)
	s.updateActivity()
}

// RecordFailure counts a failed operation under kind
func (s *Stats) RecordFailure(kind string) {
	s.Failures.Add(1)
	s.updateActivity()

	s.failureKindsMu.Lock()
	s.failureKinds[kind]++
	s.failureKindsMu.Unlock()
}

func (s *Stats) updateActivity() {
	s.LastActivity.Store(time.Now())
}

// Snapshot is a point-in-time copy of Stats
type Snapshot struct {
	Encodes  uint64
	Decodes  uint64
	Queries  uint64
	Failures uint64

	BytesHidden    uint64
	BytesRecovered uint64
	CarrierBytes   uint64

	Uptime       time.Duration
	LastActivity time.Time

	FailureKinds map[string]uint64
}

// GetSnapshot returns a copy of the current counters
func (s *Stats) GetSnapshot() Snapshot {
	s.failureKindsMu.RLock()
	kinds := make(map[string]uint64, len(s.failureKinds))
	for k, v := range s.failureKinds {
		kinds[k] = v
	}
	s.failureKindsMu.RUnlock()

	return Snapshot{
		Encodes:  s.Encodes.Load(),
		Decodes:  s.Decodes.Load(),
		Queries:  s.Queries.Load(),
		Failures: s.Failures.Load(),

		BytesHidden:    s.BytesHidden.Load(),
		BytesRecovered: s.BytesRecovered.Load(),
		CarrierBytes:   s.CarrierBytes.Load(),

		Uptime:       time.Since(s.StartTime),
		LastActivity: s.LastActivity.Load().(time.Time),

		FailureKinds: kinds,
	}
}

// Reset zeroes all counters
func (s *Stats) Reset() {
	s.Encodes.Store(0)
	s.Decodes.Store(0)
	s.Queries.Store(0)
	s.Failures.Store(0)

	s.BytesHidden.Store(0)
	s.BytesRecovered.Store(0)
	s.CarrierBytes.Store(0)

	s.StartTime = time.Now()
	s.LastActivity.Store(time.Now())

	s.failureKindsMu.Lock()
	s.failureKinds = make(map[string]uint64)
	s.failureKindsMu.Unlock()
}

var globalStats = NewStats()

// Global returns the global stats instance
func Global() *Stats {
	return globalStats
}
