package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequencer_LatestPerClass(t *testing.T) {
	s := NewSequencer()

	first := s.Next("actions")
	second := s.Next("actions")
	roster := s.Next("roster")

	assert.False(t, s.IsLatest("actions", first))
	assert.True(t, s.IsLatest("actions", second))
	assert.True(t, s.IsLatest("roster", roster))
	assert.False(t, s.IsLatest("assets", 1))
}

func TestSequencer_ConcurrentNextIsUnique(t *testing.T) {
	s := NewSequencer()
	const n = 64

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[uint64]struct{}, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq := s.Next("actions")
			mu.Lock()
			seen[seq] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, n)
	assert.True(t, s.IsLatest("actions", n))
}
