package queue

import "time"

// DefaultHistoryLimit is how many called tickets ShowLastCalledTickets
// returns when the caller does not ask for a specific amount.
const DefaultHistoryLimit = 10

type Option func(*Manager)

// WithClock overrides the time source used to stamp IssuedAt and CalledAt.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

func utcNow() time.Time {
	return time.Now().UTC()
}
