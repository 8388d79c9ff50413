// Package optimistic tracks locally applied changes until the server confirms or rejects them.
package optimistic

import "sync"

// State is the lifecycle position of a change.
type State int

const (
	Idle State = iota
	Pending
	Committed
	RolledBack
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Committed:
		return "committed"
	case RolledBack:
		return "rolled back"
	default:
		return "unknown"
	}
}

// Change is one optimistic edit of the value stored under Key.
// Prior is captured at Begin and is what a rollback restores.
type Change[V any] struct {
	Seq   uint64
	Key   string
	Prior V
	Next  V
	State State
	// Value is what the caller should show: Next while pending,
	// the server's value once committed, Prior once rolled back.
	Value V
}

// Ledger issues changes and counts how many are in flight per key.
// The count is informational; it never blocks a new change.
type Ledger[V any] struct {
	mu       sync.Mutex
	seq      uint64
	inFlight map[string]int
}

// NewLedger returns an empty ledger.
func NewLedger[V any]() *Ledger[V] {
	return &Ledger[V]{inFlight: make(map[string]int)}
}

// Begin records a pending change from prior to next.
func (l *Ledger[V]) Begin(key string, prior, next V) Change[V] {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	l.inFlight[key]++
	return Change[V]{
		Seq:   l.seq,
		Key:   key,
		Prior: prior,
		Next:  next,
		State: Pending,
		Value: next,
	}
}

// Commit settles c with the server's value.
func (l *Ledger[V]) Commit(c Change[V], server V) Change[V] {
	if c.State != Pending {
		return c
	}
	l.release(c.Key)
	c.State = Committed
	c.Value = server
	return c
}

// Rollback settles c by restoring its own prior value.
func (l *Ledger[V]) Rollback(c Change[V]) Change[V] {
	if c.State != Pending {
		return c
	}
	l.release(c.Key)
	c.State = RolledBack
	c.Value = c.Prior
	return c
}

// Settle commits on success and rolls back when err is non-nil.
func (l *Ledger[V]) Settle(c Change[V], server V, err error) Change[V] {
	if err != nil {
		return l.Rollback(c)
	}
	return l.Commit(c, server)
}

// InFlight returns the number of pending changes for key.
func (l *Ledger[V]) InFlight(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inFlight[key]
}

func (l *Ledger[V]) release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.inFlight[key] <= 1 {
		delete(l.inFlight, key)
		return
	}
	l.inFlight[key]--
}
