package grpc

import (
	"context"

	"github.com/vogiaan1904/ticketbottle-counters/internal/models"
	"github.com/vogiaan1904/ticketbottle-counters/internal/service"
	"github.com/vogiaan1904/ticketbottle-counters/pkg/counterapi"
	"github.com/vogiaan1904/ticketbottle-counters/pkg/logger"
	resp "github.com/vogiaan1904/ticketbottle-counters/pkg/response"
	"github.com/vogiaan1904/ticketbottle-counters/pkg/util"
)

type grpcService struct {
	svc service.CounterService
	l   logger.Logger
	counterapi.UnimplementedCounterServiceServer
}

func NewGrpcService(svc service.CounterService, l logger.Logger) counterapi.CounterServiceServer {
	return &grpcService{
		svc: svc,
		l:   l,
	}
}

func (s *grpcService) ListSections(ctx context.Context, req *counterapi.ListSectionsRequest) (*counterapi.ListSectionsResponse, error) {
	sections := s.svc.ListSections(ctx)

	out := &counterapi.ListSectionsResponse{Sections: make([]*counterapi.Section, 0, len(sections))}
	for _, sec := range sections {
		out.Sections = append(out.Sections, &counterapi.Section{
			Id:      int32(sec.ID),
			Name:    sec.Name,
			Waiting: int32(sec.Waiting),
		})
	}
	return out, nil
}

func (s *grpcService) RequestTicket(ctx context.Context, req *counterapi.RequestTicketRequest) (*counterapi.RequestTicketResponse, error) {
	out, err := s.svc.RequestTicket(ctx, service.RequestTicketInput{
		Section:    req.Section,
		Name:       req.Name,
		IsPriority: req.IsPriority,
	})
	if err != nil {
		s.l.Warnf(ctx, "delivery.grpc.RequestTicket: %v", err)
		return nil, resp.ParseGRPCError(s.mapGRPCError(err))
	}

	return &counterapi.RequestTicketResponse{
		Ticket:   toTicket(out.Ticket),
		Position: int32(out.Position),
		Waiting:  int32(out.Waiting),
		Receipt:  out.Receipt,
		Message:  out.Message,
	}, nil
}

func (s *grpcService) CallNextTicket(ctx context.Context, req *counterapi.CallNextTicketRequest) (*counterapi.CallNextTicketResponse, error) {
	out, err := s.svc.CallNextTicket(ctx, service.CallNextTicketInput{
		Section: req.Section,
		Counter: req.Counter,
	})
	if err != nil {
		s.l.Warnf(ctx, "delivery.grpc.CallNextTicket: %v", err)
		return nil, resp.ParseGRPCError(s.mapGRPCError(err))
	}

	return &counterapi.CallNextTicketResponse{
		Ticket:  toTicket(out.Ticket),
		Waiting: int32(out.Waiting),
		Message: out.Message,
	}, nil
}

func (s *grpcService) ShowQueue(ctx context.Context, req *counterapi.ShowQueueRequest) (*counterapi.ShowQueueResponse, error) {
	out, err := s.svc.ShowQueue(ctx, req.Section)
	if err != nil {
		s.l.Warnf(ctx, "delivery.grpc.ShowQueue: %v", err)
		return nil, resp.ParseGRPCError(s.mapGRPCError(err))
	}

	return &counterapi.ShowQueueResponse{
		Section: out.Section,
		Tickets: toTickets(out.Tickets),
	}, nil
}

func (s *grpcService) AverageWaitTimes(ctx context.Context, req *counterapi.AverageWaitTimesRequest) (*counterapi.AverageWaitTimesResponse, error) {
	waits := s.svc.AverageWaitTimes(ctx)

	out := &counterapi.AverageWaitTimesResponse{Sections: make([]*counterapi.SectionWaitTime, 0, len(waits))}
	for _, w := range waits {
		out.Sections = append(out.Sections, &counterapi.SectionWaitTime{
			Section: w.Section,
			Average: w.Average,
			Waiting: int32(w.Waiting),
		})
	}
	return out, nil
}

func (s *grpcService) LastCalledTickets(ctx context.Context, req *counterapi.LastCalledTicketsRequest) (*counterapi.LastCalledTicketsResponse, error) {
	return &counterapi.LastCalledTicketsResponse{
		Tickets: toTickets(s.svc.LastCalledTickets(ctx, int(req.Limit))),
	}, nil
}

func (s *grpcService) EmptyQueue(ctx context.Context, req *counterapi.EmptyQueueRequest) (*counterapi.EmptyQueueResponse, error) {
	if err := s.svc.EmptyQueue(ctx); err != nil {
		s.l.Errorf(ctx, "delivery.grpc.EmptyQueue: %v", err)
		return nil, resp.ParseGRPCError(s.mapGRPCError(err))
	}

	return &counterapi.EmptyQueueResponse{Message: "All queues have been cleared"}, nil
}

func (s *grpcService) TicketStatus(ctx context.Context, req *counterapi.TicketStatusRequest) (*counterapi.TicketStatusResponse, error) {
	out, err := s.svc.TicketStatus(ctx, req.Receipt)
	if err != nil {
		s.l.Warnf(ctx, "delivery.grpc.TicketStatus: %v", err)
		return nil, resp.ParseGRPCError(s.mapGRPCError(err))
	}

	return &counterapi.TicketStatusResponse{
		Ticket:   toTicket(out.Ticket),
		Status:   out.Status,
		Position: int32(out.Position),
		Waiting:  int32(out.Waiting),
	}, nil
}

func toTicket(t models.Ticket) *counterapi.Ticket {
	return &counterapi.Ticket{
		Section:    t.Section,
		Sequence:   int32(t.Sequence),
		Name:       t.HolderName,
		IsPriority: t.IsPriority,
		IssuedAt:   util.TimeToISO8601Str(t.IssuedAt),
		CalledAt:   util.OptionalTimeToISO8601Str(t.CalledAt),
	}
}

func toTickets(ts []models.Ticket) []*counterapi.Ticket {
	out := make([]*counterapi.Ticket, 0, len(ts))
	for _, t := range ts {
		out = append(out, toTicket(t))
	}
	return out
}
