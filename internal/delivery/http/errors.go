package http

import (
	"errors"
	"net/http"

	qErrors "github.com/vogiaan1904/ticketbottle-counters/internal/errors"
	pkgErrors "github.com/vogiaan1904/ticketbottle-counters/pkg/errors"
)

var (
	errInvalidBody    = pkgErrors.NewHTTPError(40000, "Invalid request body")
	errValidation     = pkgErrors.NewHTTPError(40001, "Validation failed")
	errUnknownSection = pkgErrors.NewHTTPError(40002, "Unknown section")
	errEmptyQueue     = pkgErrors.NewHTTPError(40003, "Queue is empty")
	errTicketNotFound = pkgErrors.NewHTTPError(40401, "Ticket not found").WithStatus(http.StatusNotFound)
)

// mapHTTPError turns service errors into renderable ones. Anything else,
// persistence failures included, is left for the 500 path.
func mapHTTPError(err error) error {
	switch {
	case errors.Is(err, qErrors.ErrValidation):
		return errValidation.WithMessage(err.Error())
	case errors.Is(err, qErrors.ErrUnknownSection):
		return errUnknownSection.WithMessage(err.Error())
	case errors.Is(err, qErrors.ErrEmptyQueue):
		return errEmptyQueue.WithMessage(err.Error())
	case errors.Is(err, qErrors.ErrTicketNotFound):
		return errTicketNotFound
	default:
		return err
	}
}
