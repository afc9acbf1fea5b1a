package service

import (
	"github.com/vogiaan1904/ticketbottle-counters/internal/models"
)

const (
	TicketStatusWaiting = "waiting"
	TicketStatusCalled  = "called"
)

type SectionInfo struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Waiting int    `json:"waiting"`
}

// RequestTicketInput.Section accepts a section name in any case or its
// numeric id.
type RequestTicketInput struct {
	Section    string `json:"section"`
	Name       string `json:"name" validate:"required,max=100"`
	IsPriority bool   `json:"is_priority"`
}

type RequestTicketOutput struct {
	Ticket   models.Ticket `json:"ticket"`
	Position int           `json:"position"`
	Waiting  int           `json:"waiting"`
	Receipt  string        `json:"receipt,omitempty"`
	Message  string        `json:"message"`
}

type CallNextTicketInput struct {
	Section string `json:"section"`
	Counter string `json:"counter,omitempty"`
}

type CallNextTicketOutput struct {
	Ticket  models.Ticket `json:"ticket"`
	Waiting int           `json:"waiting"`
	Message string        `json:"message"`
}

type ShowQueueOutput struct {
	Section string          `json:"section"`
	Tickets []models.Ticket `json:"tickets"`
}

type SectionWaitTime struct {
	Section string  `json:"section"`
	Average float64 `json:"average"`
	Waiting int     `json:"waiting"`
}

type TicketStatusOutput struct {
	Ticket   models.Ticket `json:"ticket"`
	Status   string        `json:"status"`
	Position int           `json:"position,omitempty"`
	Waiting  int           `json:"waiting"`
}
