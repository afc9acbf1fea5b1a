package kafka

const (
	TopicTicketIssued = "counters.ticket.issued"
	TopicTicketCalled = "counters.ticket.called"
	TopicQueueCleared = "counters.queue.cleared"

	TopicTicketRequested = "counters.ticket.requested"
	TopicCallRequested   = "counters.call.requested"
)
