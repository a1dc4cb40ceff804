// Package sequence issues monotonically increasing request tokens so that a
// slow response can be recognized as superseded and dropped.
package sequence

import "sync"

// Token identifies one request issued by a Sequencer.
type Token uint64

// Sequencer hands out tokens and remembers the newest one. The zero value is ready to use.
type Sequencer struct {
	mu     sync.Mutex
	latest Token
}

// Next issues a new token; it supersedes every token issued before it.
func (s *Sequencer) Next() Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest++
	return s.latest
}

// IsCurrent reports whether no newer token has been issued since t.
func (s *Sequencer) IsCurrent(t Token) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return t == s.latest
}

// Commit runs apply only while t is still the newest token. Apply runs under
// the sequencer lock, so a concurrent Next cannot interleave with it.
func (s *Sequencer) Commit(t Token, apply func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t != s.latest {
		return false
	}
	apply()
	return true
}
