package service

import (
	"context"

	"github.com/vogiaan1904/ticketbottle-counters/internal/models"
)

// CounterService is the single entry point transports use to reach the
// queues. Every method is safe for concurrent use.
type CounterService interface {
	ListSections(ctx context.Context) []SectionInfo
	RequestTicket(ctx context.Context, in RequestTicketInput) (*RequestTicketOutput, error)
	CallNextTicket(ctx context.Context, in CallNextTicketInput) (*CallNextTicketOutput, error)
	ShowQueue(ctx context.Context, sectionRef string) (*ShowQueueOutput, error)
	AverageWaitTimes(ctx context.Context) []SectionWaitTime
	LastCalledTickets(ctx context.Context, limit int) []models.Ticket
	EmptyQueue(ctx context.Context) error
	TicketStatus(ctx context.Context, receipt string) (*TicketStatusOutput, error)
}
