package queue

import (
	"github.com/vogiaan1904/ticketbottle-counters/internal/models"
)

// Sanitize drops queue and history records that fail validation and
// normalises the counters: one per catalog section, at least 1 and past the
// largest sequence already present. It returns one error per dropped record.
func (m *Manager) Sanitize(st *models.SystemState) []error {
	var rejected []error

	keep := func(in []models.Ticket) []models.Ticket {
		out := make([]models.Ticket, 0, len(in))
		for _, t := range in {
			if err := t.Validate(m.catalog.Has); err != nil {
				rejected = append(rejected, err)
				continue
			}
			out = append(out, t)
		}
		return out
	}
	st.Queue = keep(st.Queue)
	st.History = keep(st.History)

	highest := make(map[string]int)
	for _, list := range [][]models.Ticket{st.Queue, st.History} {
		for _, t := range list {
			highest[t.Section] = max(highest[t.Section], t.Sequence)
		}
	}

	counters := make(map[string]int, m.catalog.Len())
	for _, name := range m.catalog.Names() {
		counters[name] = max(st.SectionCounters[name], highest[name]+1, 1)
	}
	st.SectionCounters = counters

	return rejected
}
