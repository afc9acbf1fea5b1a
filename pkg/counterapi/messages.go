package counterapi

// Timestamps are RFC 3339 strings in UTC; an empty string means unset.
type Ticket struct {
	Section    string `json:"section"`
	Sequence   int32  `json:"sequence"`
	Name       string `json:"name"`
	IsPriority bool   `json:"is_priority"`
	IssuedAt   string `json:"issued_at"`
	CalledAt   string `json:"called_at,omitempty"`
}

type Section struct {
	Id      int32  `json:"id"`
	Name    string `json:"name"`
	Waiting int32  `json:"waiting"`
}

type SectionWaitTime struct {
	Section string  `json:"section"`
	Average float64 `json:"average"`
	Waiting int32   `json:"waiting"`
}

type ListSectionsRequest struct{}

type ListSectionsResponse struct {
	Sections []*Section `json:"sections"`
}

type RequestTicketRequest struct {
	Section    string `json:"section"`
	Name       string `json:"name"`
	IsPriority bool   `json:"is_priority"`
}

type RequestTicketResponse struct {
	Ticket   *Ticket `json:"ticket"`
	Position int32   `json:"position"`
	Waiting  int32   `json:"waiting"`
	Receipt  string  `json:"receipt,omitempty"`
	Message  string  `json:"message"`
}

type CallNextTicketRequest struct {
	Section string `json:"section"`
	Counter string `json:"counter,omitempty"`
}

type CallNextTicketResponse struct {
	Ticket  *Ticket `json:"ticket"`
	Waiting int32   `json:"waiting"`
	Message string  `json:"message"`
}

type ShowQueueRequest struct {
	Section string `json:"section"`
}

type ShowQueueResponse struct {
	Section string    `json:"section"`
	Tickets []*Ticket `json:"tickets"`
}

type AverageWaitTimesRequest struct{}

type AverageWaitTimesResponse struct {
	Sections []*SectionWaitTime `json:"sections"`
}

type LastCalledTicketsRequest struct {
	Limit int32 `json:"limit"`
}

type LastCalledTicketsResponse struct {
	Tickets []*Ticket `json:"tickets"`
}

type EmptyQueueRequest struct{}

type EmptyQueueResponse struct {
	Message string `json:"message"`
}

type TicketStatusRequest struct {
	Receipt string `json:"receipt"`
}

type TicketStatusResponse struct {
	Ticket   *Ticket `json:"ticket"`
	Status   string  `json:"status"`
	Position int32   `json:"position,omitempty"`
	Waiting  int32   `json:"waiting"`
}
