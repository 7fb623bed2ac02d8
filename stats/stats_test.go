package stats

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord(t *testing.T) {
	s := NewStats()

	s.RecordEncode(10, 800)
	s.RecordDecode(10, 800)
	s.RecordQuery()
	s.RecordFailure("truncated_frame")
	s.RecordFailure("truncated_frame")
	s.RecordFailure("payload_too_large")

	snap := s.GetSnapshot()
	assert.Equal(t, uint64(1), snap.Encodes)
	assert.Equal(t, uint64(1), snap.Decodes)
	assert.Equal(t, uint64(1), snap.Queries)
	assert.Equal(t, uint64(3), snap.Failures)
	assert.Equal(t, uint64(10), snap.BytesHidden)
	assert.Equal(t, uint64(10), snap.BytesRecovered)
	assert.Equal(t, uint64(1600), snap.CarrierBytes)
	assert.Equal(t, map[string]uint64{"truncated_frame": 2, "payload_too_large": 1}, snap.FailureKinds)
}

func TestSnapshotIsCopy(t *testing.T) {
	s := NewStats()
	s.RecordFailure("x")

	snap := s.GetSnapshot()
	snap.FailureKinds["x"] = 100

	assert.Equal(t, uint64(1), s.GetSnapshot().FailureKinds["x"])
}

func TestConcurrentRecord(t *testing.T) {
	s := NewStats()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.RecordEncode(1, 8)
			s.RecordFailure("k")
		}()
	}
	wg.Wait()

	snap := s.GetSnapshot()
	assert.Equal(t, uint64(50), snap.Encodes)
	assert.Equal(t, uint64(50), snap.FailureKinds["k"])
}

func TestReset(t *testing.T) {
	s := NewStats()
	s.RecordEncode(5, 40)
	s.RecordQuery()
	s.RecordFailure("k")
	s.Reset()

	snap := s.GetSnapshot()
	assert.Zero(t, snap.Encodes)
	assert.Zero(t, snap.Queries)
	assert.Zero(t, snap.BytesHidden)
	assert.Empty(t, snap.FailureKinds)
}
