package ledger

import "sync/atomic"

// Sequence hands out strictly increasing account ids starting at a base.
type Sequence struct {
	next atomic.Int64
}

func NewSequence(base int64) *Sequence {
	s := &Sequence{}
	s.next.Store(base)
	return s
}

func (s *Sequence) Next() int64 {
	return s.next.Add(1) - 1
}
