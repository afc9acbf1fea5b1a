package http

type requestTicketRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	IsPriority bool   `json:"is_priority"`
}

type callNextRequest struct {
	Counter string `json:"counter" validate:"max=50"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
