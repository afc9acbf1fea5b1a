package kafka

import "time"

// Events published BY the counters service

type TicketIssuedEvent struct {
	Section    string    `json:"section"`
	Sequence   int       `json:"sequence"`
	Name       string    `json:"name"`
	IsPriority bool      `json:"is_priority"`
	Position   int       `json:"position"`
	Waiting    int       `json:"waiting"`
	IssuedAt   time.Time `json:"issued_at"`
	Timestamp  time.Time `json:"timestamp"`
}

type TicketCalledEvent struct {
	Section    string    `json:"section"`
	Sequence   int       `json:"sequence"`
	Name       string    `json:"name"`
	IsPriority bool      `json:"is_priority"`
	Counter    string    `json:"counter,omitempty"`
	Waiting    int       `json:"waiting"`
	CalledAt   time.Time `json:"called_at"`
	Timestamp  time.Time `json:"timestamp"`
}

type QueueClearedEvent struct {
	Sections  []string  `json:"sections"`
	ClearedAt time.Time `json:"cleared_at"`
	Timestamp time.Time `json:"timestamp"`
}

// Commands consumed BY the counters service (from kiosks and counter desks)

type TicketRequestedEvent struct {
	Section    string `json:"section"`
	Name       string `json:"name"`
	IsPriority bool   `json:"is_priority"`
}

type CallRequestedEvent struct {
	Section string `json:"section"`
	Counter string `json:"counter"`
}
