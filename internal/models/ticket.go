package models

import (
	"strings"
	"time"

	qErrors "github.com/vogiaan1904/ticketbottle-counters/internal/errors"
)

// Ticket is a place in line for one section. Tickets are never mutated after
// issuance except for CalledAt, which is set when the ticket leaves the queue.
type Ticket struct {
	Section    string     `json:"section"`
	Sequence   int        `json:"sequence"`
	HolderName string     `json:"name"`
	IsPriority bool       `json:"is_priority"`
	IssuedAt   time.Time  `json:"issued_at"`
	CalledAt   *time.Time `json:"called_at,omitempty"`
}

// Validate checks the persisted-record invariant: non-empty holder, positive
// sequence number and a section known to the catalog.
func (t Ticket) Validate(known func(string) bool) error {
	if strings.TrimSpace(t.HolderName) == "" {
		return qErrors.NewValidationError("name", "is required")
	}
	if t.Sequence <= 0 {
		return qErrors.NewValidationError("sequence", "must be positive")
	}
	if t.Section == "" || (known != nil && !known(t.Section)) {
		return &qErrors.UnknownSectionError{Section: t.Section}
	}
	return nil
}

func (t Ticket) IsCalled() bool {
	return t.CalledAt != nil
}
