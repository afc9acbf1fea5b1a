package models

// SystemState is the unit of persistence: the active queue shared by all
// sections, the called history and the per-section next sequence numbers.
type SystemState struct {
	CurrentUserName string         `json:"user"`
	Queue           []Ticket       `json:"queue"`
	History         []Ticket       `json:"history"`
	SectionCounters map[string]int `json:"sections"`
}

// NewSystemState returns an empty state with every counter at 1.
func NewSystemState(sections []string) *SystemState {
	st := &SystemState{
		Queue:           []Ticket{},
		History:         []Ticket{},
		SectionCounters: make(map[string]int, len(sections)),
	}
	for _, s := range sections {
		st.SectionCounters[s] = 1
	}
	return st
}

// Clone returns a deep copy so callers can hand state to persistence or
// transports without sharing the backing slices.
func (s *SystemState) Clone() *SystemState {
	cp := &SystemState{
		CurrentUserName: s.CurrentUserName,
		Queue:           cloneTickets(s.Queue),
		History:         cloneTickets(s.History),
		SectionCounters: make(map[string]int, len(s.SectionCounters)),
	}
	for k, v := range s.SectionCounters {
		cp.SectionCounters[k] = v
	}
	return cp
}

func cloneTickets(in []Ticket) []Ticket {
	out := make([]Ticket, len(in))
	copy(out, in)
	for i := range out {
		if out[i].CalledAt != nil {
			at := *out[i].CalledAt
			out[i].CalledAt = &at
		}
	}
	return out
}
