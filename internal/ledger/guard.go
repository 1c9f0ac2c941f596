package ledger

import "sync"

// Guard serializes access to one Assistant. HTTP handlers, bot commands and cron jobs
// all go through the same Guard.
type Guard struct {
	mu sync.Mutex
	a  *Assistant
}

func NewGuard(a *Assistant) *Guard {
	return &Guard{a: a}
}

// Do runs fn while holding the lock.
func (g *Guard) Do(fn func(a *Assistant) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn(g.a)
}
