// Package queue implements the counter queue state machine. It is not safe
// for concurrent use: callers own a SystemState and serialise access to it.
package queue

import (
	"slices"
	"strings"
	"time"

	qErrors "github.com/vogiaan1904/ticketbottle-counters/internal/errors"
	"github.com/vogiaan1904/ticketbottle-counters/internal/models"
	"github.com/vogiaan1904/ticketbottle-counters/internal/section"
)

type Manager struct {
	catalog *section.Catalog
	now     func() time.Time
}

func NewManager(catalog *section.Catalog, opts ...Option) *Manager {
	m := &Manager{
		catalog: catalog,
		now:     utcNow,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Catalog() *section.Catalog {
	return m.catalog
}

// NewState returns a fresh state with every catalog counter at 1.
func (m *Manager) NewState() *models.SystemState {
	return models.NewSystemState(m.catalog.Names())
}

// RequestTicket issues the next ticket of sec to holder and places it in the
// shared queue. Priority tickets go right after the section's last priority
// ticket, or right before its first regular ticket, or at the end. The
// returned position is 1-based among the section's waiting tickets.
func (m *Manager) RequestTicket(st *models.SystemState, sec, holder string, isPriority bool) (models.Ticket, int, error) {
	holder = strings.TrimSpace(holder)
	if holder == "" {
		return models.Ticket{}, 0, qErrors.NewValidationError("name", "user name is required to request a ticket")
	}
	if !m.catalog.Has(sec) {
		return models.Ticket{}, 0, &qErrors.UnknownSectionError{Section: sec}
	}

	t := models.Ticket{
		Section:    sec,
		Sequence:   m.nextSequence(st, sec),
		HolderName: holder,
		IsPriority: isPriority,
		IssuedAt:   m.now(),
	}

	idx := insertionIndex(st.Queue, sec, isPriority)
	st.Queue = slices.Insert(st.Queue, idx, t)

	return t, positionAt(st.Queue, idx), nil
}

// CallNextTicket removes the next ticket of sec from the queue and appends it
// to the history. The state is left untouched when nothing is waiting.
func (m *Manager) CallNextTicket(st *models.SystemState, sec string) (models.Ticket, error) {
	if !m.catalog.Has(sec) {
		return models.Ticket{}, &qErrors.UnknownSectionError{Section: sec}
	}

	idx := nextIndex(st.Queue, sec)
	if idx < 0 {
		return models.Ticket{}, &qErrors.EmptyQueueError{Section: sec}
	}

	t := st.Queue[idx]
	calledAt := m.now()
	t.CalledAt = &calledAt

	st.Queue = slices.Delete(st.Queue, idx, idx+1)
	st.History = append(st.History, t)

	return t, nil
}

// ShowQueue lists the waiting tickets of sec in call order.
func (m *Manager) ShowQueue(st *models.SystemState, sec string) ([]models.Ticket, error) {
	if !m.catalog.Has(sec) {
		return nil, &qErrors.UnknownSectionError{Section: sec}
	}

	out := make([]models.Ticket, 0)
	for _, t := range st.Queue {
		if t.Section == sec {
			out = append(out, t)
		}
	}
	return out, nil
}

// Waiting counts the tickets of sec still in the queue.
func (m *Manager) Waiting(st *models.SystemState, sec string) int {
	n := 0
	for _, t := range st.Queue {
		if t.Section == sec {
			n++
		}
	}
	return n
}

// AverageWaitTimeForAll averages, per section, the 1-based positions of the
// waiting tickets. Every catalog section is present; empty ones report 0.
func (m *Manager) AverageWaitTimeForAll(st *models.SystemState) map[string]float64 {
	sums := make(map[string]int, m.catalog.Len())
	counts := make(map[string]int, m.catalog.Len())
	for _, t := range st.Queue {
		counts[t.Section]++
		sums[t.Section] += counts[t.Section]
	}

	out := make(map[string]float64, m.catalog.Len())
	for _, name := range m.catalog.Names() {
		if counts[name] == 0 {
			out[name] = 0
			continue
		}
		out[name] = float64(sums[name]) / float64(counts[name])
	}
	return out
}

// ShowLastCalledTickets returns up to limit of the most recently called
// tickets, oldest first and most recent last.
func (m *Manager) ShowLastCalledTickets(st *models.SystemState, limit int) []models.Ticket {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	start := max(len(st.History)-limit, 0)

	out := make([]models.Ticket, len(st.History)-start)
	copy(out, st.History[start:])
	return out
}

// EmptyQueue resets the state: no waiting or called tickets, no current user
// and every counter back to 1. Sequence numbers restart after this.
func (m *Manager) EmptyQueue(st *models.SystemState) {
	fresh := m.NewState()
	st.CurrentUserName = ""
	st.Queue = fresh.Queue
	st.History = fresh.History
	st.SectionCounters = fresh.SectionCounters
}

func (m *Manager) nextSequence(st *models.SystemState, sec string) int {
	if st.SectionCounters == nil {
		st.SectionCounters = make(map[string]int)
	}
	n := st.SectionCounters[sec]
	if n < 1 {
		n = 1
	}
	st.SectionCounters[sec] = n + 1
	return n
}

func insertionIndex(q []models.Ticket, sec string, isPriority bool) int {
	if !isPriority {
		return len(q)
	}

	lastPriority, firstRegular := -1, -1
	for i, t := range q {
		if t.Section != sec {
			continue
		}
		if t.IsPriority {
			lastPriority = i
		} else if firstRegular < 0 {
			firstRegular = i
		}
	}

	switch {
	case lastPriority >= 0:
		return lastPriority + 1
	case firstRegular >= 0:
		return firstRegular
	default:
		return len(q)
	}
}

// nextIndex picks the first priority ticket of sec, falling back to the first
// ticket of sec. With the insertion policy above this is always headIndex.
func nextIndex(q []models.Ticket, sec string) int {
	for i, t := range q {
		if t.Section == sec && t.IsPriority {
			return i
		}
	}
	return headIndex(q, sec)
}

func headIndex(q []models.Ticket, sec string) int {
	for i, t := range q {
		if t.Section == sec {
			return i
		}
	}
	return -1
}

func positionAt(q []models.Ticket, idx int) int {
	pos := 0
	for _, t := range q[:idx+1] {
		if t.Section == q[idx].Section {
			pos++
		}
	}
	return pos
}
