package testutil

import (
	"fmt"
	"sync"
)

// Sequence is a monotonic logical counter. The first call to Next returns 1.
// It is safe for concurrent use.
type Sequence struct {
	mu  sync.Mutex
	seq int64
}

// Next increments and returns the sequence number.
func (s *Sequence) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// Current returns the last number handed out, or 0.
func (s *Sequence) Current() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

// SequentialIDs generates "<prefix>-1", "<prefix>-2", ... so that saved
// searches created during a run have reproducible identifiers.
type SequentialIDs struct {
	prefix string
	seq    Sequence
}

// NewSequentialIDs creates a generator. An empty prefix defaults to "id".
func NewSequentialIDs(prefix string) *SequentialIDs {
	if prefix == "" {
		prefix = "id"
	}
	return &SequentialIDs{prefix: prefix}
}

// Generate returns the next identifier.
func (g *SequentialIDs) Generate() string {
	return fmt.Sprintf("%s-%d", g.prefix, g.seq.Next())
}
