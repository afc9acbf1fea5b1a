package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	qErrors "github.com/vogiaan1904/ticketbottle-counters/internal/errors"
)

func knownSections(names ...string) func(string) bool {
	return func(s string) bool {
		for _, n := range names {
			if n == s {
				return true
			}
		}
		return false
	}
}

func TestTicketValidate(t *testing.T) {
	known := knownSections("Bakery", "Deli")

	tests := []struct {
		name   string
		ticket Ticket
		want   error
	}{
		{"valid", Ticket{Section: "Deli", Sequence: 1, HolderName: "Jane"}, nil},
		{"blank holder", Ticket{Section: "Deli", Sequence: 1, HolderName: "  "}, qErrors.ErrValidation},
		{"zero sequence", Ticket{Section: "Deli", Sequence: 0, HolderName: "Jane"}, qErrors.ErrValidation},
		{"negative sequence", Ticket{Section: "Deli", Sequence: -4, HolderName: "Jane"}, qErrors.ErrValidation},
		{"missing section", Ticket{Sequence: 1, HolderName: "Jane"}, qErrors.ErrUnknownSection},
		{"unknown section", Ticket{Section: "Florist", Sequence: 1, HolderName: "Jane"}, qErrors.ErrUnknownSection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ticket.Validate(known)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSystemStateClone(t *testing.T) {
	at := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	st := NewSystemState([]string{"Bakery"})
	st.Queue = append(st.Queue, Ticket{Section: "Bakery", Sequence: 1, HolderName: "John"})
	st.History = append(st.History, Ticket{Section: "Bakery", Sequence: 2, HolderName: "Jane", CalledAt: &at})

	cp := st.Clone()
	require.Equal(t, st, cp)

	cp.Queue[0].HolderName = "Changed"
	*cp.History[0].CalledAt = at.Add(time.Hour)
	cp.SectionCounters["Bakery"] = 9

	assert.Equal(t, "John", st.Queue[0].HolderName)
	assert.Equal(t, at, *st.History[0].CalledAt)
	assert.Equal(t, 1, st.SectionCounters["Bakery"])
}
