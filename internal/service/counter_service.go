package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/vogiaan1904/ticketbottle-counters/internal/delivery/kafka"
	"github.com/vogiaan1904/ticketbottle-counters/internal/delivery/kafka/producer"
	qErrors "github.com/vogiaan1904/ticketbottle-counters/internal/errors"
	"github.com/vogiaan1904/ticketbottle-counters/internal/metrics"
	"github.com/vogiaan1904/ticketbottle-counters/internal/models"
	"github.com/vogiaan1904/ticketbottle-counters/internal/queue"
	"github.com/vogiaan1904/ticketbottle-counters/internal/repository"
	pkgLog "github.com/vogiaan1904/ticketbottle-counters/pkg/logger"
)

type counterService struct {
	mu   sync.Mutex
	st   *models.SystemState
	mgr  *queue.Manager
	repo repository.StateRepository
	prod producer.Producer
	rcpt *Receipts
	m    *metrics.Metrics
	l    pkgLog.Logger
}

// NewCounterService loads the persisted state and returns a service that owns
// it. prod may be nil when event publishing is disabled.
func NewCounterService(
	ctx context.Context,
	mgr *queue.Manager,
	repo repository.StateRepository,
	prod producer.Producer,
	rcpt *Receipts,
	m *metrics.Metrics,
	l pkgLog.Logger,
) CounterService {
	st, err := repo.Load(ctx)
	if err != nil {
		l.Errorf(ctx, "service.counterService.New: starting with empty queues: %v", err)
	}

	s := &counterService{
		st:   st,
		mgr:  mgr,
		repo: repo,
		prod: prod,
		rcpt: rcpt,
		m:    m,
		l:    l,
	}
	s.refreshDepth()

	l.Infof(ctx, "Counters ready: %d waiting, %d called", len(st.Queue), len(st.History))
	return s
}

func (s *counterService) ListSections(ctx context.Context) []SectionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat := s.mgr.Catalog()
	out := make([]SectionInfo, 0, cat.Len())
	for _, name := range cat.Names() {
		out = append(out, SectionInfo{
			ID:      cat.ID(name),
			Name:    name,
			Waiting: s.mgr.Waiting(s.st, name),
		})
	}
	return out
}

func (s *counterService) RequestTicket(ctx context.Context, in RequestTicketInput) (*RequestTicketOutput, error) {
	defer s.m.Time("request_ticket")()

	sec, err := s.resolve(in.Section)
	if err != nil {
		s.l.Warnf(ctx, "service.counterService.RequestTicket: %v", err)
		return nil, err
	}

	s.mu.Lock()
	t, pos, err := s.mgr.RequestTicket(s.st, sec, in.Name, in.IsPriority)
	if err != nil {
		s.mu.Unlock()
		s.l.Warnf(ctx, "service.counterService.RequestTicket: %v", err)
		return nil, err
	}
	s.st.CurrentUserName = t.HolderName
	waiting := s.mgr.Waiting(s.st, sec)
	err = s.persist(ctx)
	s.mu.Unlock()

	s.m.TicketIssued(sec, t.IsPriority)
	if err != nil {
		return nil, err
	}

	out := &RequestTicketOutput{
		Ticket:   t,
		Position: pos,
		Waiting:  waiting,
		Message:  requestMessage(t, pos),
	}

	if s.rcpt != nil {
		if out.Receipt, err = s.rcpt.Issue(t); err != nil {
			s.l.Errorf(ctx, "service.counterService.RequestTicket: %v", err)
		}
	}

	if s.prod != nil {
		if err := s.prod.PublishTicketIssued(ctx, kafka.TicketIssuedEvent{
			Section:    t.Section,
			Sequence:   t.Sequence,
			Name:       t.HolderName,
			IsPriority: t.IsPriority,
			Position:   pos,
			Waiting:    waiting,
			IssuedAt:   t.IssuedAt,
		}); err != nil {
			s.l.Errorf(ctx, "service.counterService.RequestTicket: %v", err)
		}
	}

	s.l.Infof(ctx, "%s", out.Message)
	return out, nil
}

func (s *counterService) CallNextTicket(ctx context.Context, in CallNextTicketInput) (*CallNextTicketOutput, error) {
	defer s.m.Time("call_next_ticket")()

	sec, err := s.resolve(in.Section)
	if err != nil {
		s.l.Warnf(ctx, "service.counterService.CallNextTicket: %v", err)
		return nil, err
	}

	s.mu.Lock()
	t, err := s.mgr.CallNextTicket(s.st, sec)
	if err != nil {
		s.mu.Unlock()
		s.l.Warnf(ctx, "service.counterService.CallNextTicket: %v", err)
		return nil, err
	}
	waiting := s.mgr.Waiting(s.st, sec)
	err = s.persist(ctx)
	s.mu.Unlock()

	s.m.TicketCalled(sec)
	if err != nil {
		return nil, err
	}

	if s.prod != nil {
		if err := s.prod.PublishTicketCalled(ctx, kafka.TicketCalledEvent{
			Section:    t.Section,
			Sequence:   t.Sequence,
			Name:       t.HolderName,
			IsPriority: t.IsPriority,
			Counter:    in.Counter,
			Waiting:    waiting,
			CalledAt:   *t.CalledAt,
		}); err != nil {
			s.l.Errorf(ctx, "service.counterService.CallNextTicket: %v", err)
		}
	}

	out := &CallNextTicketOutput{
		Ticket:  t,
		Waiting: waiting,
		Message: fmt.Sprintf("Next ticket for %s is %d for %s", t.Section, t.Sequence, t.HolderName),
	}
	s.l.Infof(ctx, "%s", out.Message)
	return out, nil
}

func (s *counterService) ShowQueue(ctx context.Context, sectionRef string) (*ShowQueueOutput, error) {
	sec, err := s.resolve(sectionRef)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.mgr.ShowQueue(s.st, sec)
	if err != nil {
		return nil, err
	}
	return &ShowQueueOutput{Section: sec, Tickets: tickets}, nil
}

func (s *counterService) AverageWaitTimes(ctx context.Context) []SectionWaitTime {
	s.mu.Lock()
	defer s.mu.Unlock()

	avg := s.mgr.AverageWaitTimeForAll(s.st)
	names := s.mgr.Catalog().Names()
	out := make([]SectionWaitTime, 0, len(names))
	for _, name := range names {
		out = append(out, SectionWaitTime{
			Section: name,
			Average: avg[name],
			Waiting: s.mgr.Waiting(s.st, name),
		})
	}
	return out
}

func (s *counterService) LastCalledTickets(ctx context.Context, limit int) []models.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mgr.ShowLastCalledTickets(s.st, limit)
}

func (s *counterService) EmptyQueue(ctx context.Context) error {
	defer s.m.Time("empty_queue")()

	s.mu.Lock()
	s.mgr.EmptyQueue(s.st)
	s.refreshDepth()
	err := s.repo.Clear(ctx)
	s.mu.Unlock()

	if err != nil {
		s.m.PersistFailed()
		s.l.Errorf(ctx, "service.counterService.EmptyQueue: %v", err)
		return err
	}

	if s.prod != nil {
		if err := s.prod.PublishQueueCleared(ctx, kafka.QueueClearedEvent{
			Sections:  s.mgr.Catalog().Names(),
			ClearedAt: time.Now().UTC(),
		}); err != nil {
			s.l.Errorf(ctx, "service.counterService.EmptyQueue: %v", err)
		}
	}

	s.l.Info(ctx, "All queues cleared")
	return nil
}

func (s *counterService) TicketStatus(ctx context.Context, receipt string) (*TicketStatusOutput, error) {
	if s.rcpt == nil {
		return nil, qErrors.NewValidationError("receipt", "receipts are disabled")
	}

	claims, err := s.rcpt.Parse(receipt)
	if err != nil {
		s.l.Warnf(ctx, "service.counterService.TicketStatus: %v", err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	match := func(t models.Ticket) bool {
		return t.Section == claims.Section && t.Sequence == claims.Sequence && t.HolderName == claims.Name
	}

	waiting := s.mgr.Waiting(s.st, claims.Section)
	pos := 0
	for _, t := range s.st.Queue {
		if t.Section != claims.Section {
			continue
		}
		pos++
		if match(t) {
			return &TicketStatusOutput{Ticket: t, Status: TicketStatusWaiting, Position: pos, Waiting: waiting}, nil
		}
	}

	for i := len(s.st.History) - 1; i >= 0; i-- {
		if t := s.st.History[i]; match(t) {
			return &TicketStatusOutput{Ticket: t, Status: TicketStatusCalled, Waiting: waiting}, nil
		}
	}

	return nil, qErrors.ErrTicketNotFound
}

// persist must be called with mu held.
func (s *counterService) persist(ctx context.Context) error {
	s.refreshDepth()
	if err := s.repo.Save(ctx, s.st); err != nil {
		s.m.PersistFailed()
		s.l.Errorf(ctx, "service.counterService.persist: %v", err)
		if !errors.Is(err, qErrors.ErrPersistence) {
			err = qErrors.NewPersistenceError("save", err)
		}
		return err
	}
	return nil
}

func (s *counterService) refreshDepth() {
	for _, name := range s.mgr.Catalog().Names() {
		s.m.SetQueueDepth(name, s.mgr.Waiting(s.st, name))
	}
}

func (s *counterService) resolve(ref string) (string, error) {
	if strings.TrimSpace(ref) == "" {
		return "", qErrors.NewValidationError("section", "is required")
	}
	if sec, ok := s.mgr.Catalog().Resolve(ref); ok {
		return sec, nil
	}
	return "", &qErrors.UnknownSectionError{Section: ref}
}

func requestMessage(t models.Ticket, pos int) string {
	kind := "Ticket"
	if t.IsPriority {
		kind = "Priority Ticket"
	}
	return fmt.Sprintf("%s for %s requested for %s, position %d in queue", kind, t.Section, t.HolderName, pos)
}
