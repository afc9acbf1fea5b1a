package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	qErrors "github.com/vogiaan1904/ticketbottle-counters/internal/errors"
	"github.com/vogiaan1904/ticketbottle-counters/internal/service"
	pkgErrors "github.com/vogiaan1904/ticketbottle-counters/pkg/errors"
	"github.com/vogiaan1904/ticketbottle-counters/pkg/logger"
	"github.com/vogiaan1904/ticketbottle-counters/pkg/response"
)

type HTTPHandler struct {
	svc       service.CounterService
	l         logger.Logger
	validator *validator.Validate
}

func NewHTTPHandler(svc service.CounterService, l logger.Logger) *HTTPHandler {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &HTTPHandler{
		svc:       svc,
		l:         l,
		validator: v,
	}
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.OK(w, healthResponse{Status: "healthy", Service: "counters-service"})
}

func (h *HTTPHandler) ListSections(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.svc.ListSections(r.Context()))
}

func (h *HTTPHandler) ShowQueue(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.ShowQueue(r.Context(), chi.URLParam(r, "section"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	response.OK(w, out)
}

func (h *HTTPHandler) RequestTicket(w http.ResponseWriter, r *http.Request) {
	var req requestTicketRequest
	if err := h.decode(r, &req, false); err != nil {
		h.respondError(w, r, err)
		return
	}

	out, err := h.svc.RequestTicket(r.Context(), service.RequestTicketInput{
		Section:    chi.URLParam(r, "section"),
		Name:       req.Name,
		IsPriority: req.IsPriority,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	response.Created(w, out)
}

func (h *HTTPHandler) CallNextTicket(w http.ResponseWriter, r *http.Request) {
	var req callNextRequest
	if err := h.decode(r, &req, true); err != nil {
		h.respondError(w, r, err)
		return
	}

	out, err := h.svc.CallNextTicket(r.Context(), service.CallNextTicketInput{
		Section: chi.URLParam(r, "section"),
		Counter: req.Counter,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	response.OK(w, out)
}

func (h *HTTPHandler) EmptyQueue(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.EmptyQueue(r.Context()); err != nil {
		h.respondError(w, r, err)
		return
	}

	response.OK(w, map[string]string{"message": "All queues have been cleared"})
}

func (h *HTTPHandler) AverageWaitTimes(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.svc.AverageWaitTimes(r.Context()))
}

func (h *HTTPHandler) LastCalledTickets(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.respondError(w, r, qErrors.NewValidationError("limit", "must be a non-negative integer"))
			return
		}
		limit = n
	}

	response.OK(w, h.svc.LastCalledTickets(r.Context(), limit))
}

func (h *HTTPHandler) TicketStatus(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.TicketStatus(r.Context(), r.URL.Query().Get("receipt"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	response.OK(w, out)
}

// decode reads a JSON body into dst and validates it. An empty body is
// accepted only when optional is set.
func (h *HTTPHandler) decode(r *http.Request, dst any, optional bool) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return nil
		}
		return errInvalidBody.WithMessage("Invalid request body: " + err.Error())
	}

	if err := h.validator.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return qErrors.NewValidationError(verrs[0].Field(), "failed "+verrs[0].Tag()+" check")
		}
		return qErrors.NewValidationError("body", err.Error())
	}

	return nil
}

func (h *HTTPHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	mapped := mapHTTPError(err)

	var httpErr *pkgErrors.HTTPError
	if errors.As(mapped, &httpErr) {
		h.l.Warnf(r.Context(), "delivery.http.handler: %v", err)
	} else {
		h.l.Errorf(r.Context(), "delivery.http.handler: %v", err)
	}

	response.Error(w, mapped)
}
