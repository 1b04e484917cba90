package engine

import "sync"

// Sequencer tags list queries with a monotonically increasing number per
// query class so that a slow, older response can be told apart from the
// latest one and discarded.
type Sequencer struct {
	mu     sync.Mutex
	latest map[string]uint64
}

func NewSequencer() *Sequencer {
	return &Sequencer{latest: make(map[string]uint64)}
}

// Next issues the sequence number for a new query of class.
func (s *Sequencer) Next(class string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest[class]++
	return s.latest[class]
}

// IsLatest reports whether seq is still the most recent number issued for class.
func (s *Sequencer) IsLatest(class string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest[class] == seq
}
