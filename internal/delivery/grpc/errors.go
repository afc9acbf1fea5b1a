package grpc

import (
	"errors"

	qErrors "github.com/vogiaan1904/ticketbottle-counters/internal/errors"
	pkgErrors "github.com/vogiaan1904/ticketbottle-counters/pkg/errors"
	"google.golang.org/grpc/codes"
)

var (
	errValidation     = pkgErrors.NewGRPCError("CTR001", codes.InvalidArgument, "Validation failed")
	errUnknownSection = pkgErrors.NewGRPCError("CTR002", codes.InvalidArgument, "Unknown section")
	errEmptyQueue     = pkgErrors.NewGRPCError("CTR003", codes.InvalidArgument, "Queue is empty")
	errTicketNotFound = pkgErrors.NewGRPCError("CTR004", codes.NotFound, "Ticket not found")
)

func (s *grpcService) mapGRPCError(err error) error {
	switch {
	case errors.Is(err, qErrors.ErrValidation):
		return errValidation.WithDetail(err.Error())
	case errors.Is(err, qErrors.ErrUnknownSection):
		return errUnknownSection.WithDetail(err.Error())
	case errors.Is(err, qErrors.ErrEmptyQueue):
		return errEmptyQueue.WithDetail(err.Error())
	case errors.Is(err, qErrors.ErrTicketNotFound):
		return errTicketNotFound
	default:
		return err
	}
}
