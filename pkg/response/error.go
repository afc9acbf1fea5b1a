package response

import (
	"errors"
	"net/http"

	pkgErrors "github.com/vogiaan1904/ticketbottle-counters/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Resp struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Errors    any    `json:"errors,omitempty"`
}

func parseHttpError(err error) (int, Resp) {
	var httpErr *pkgErrors.HTTPError
	if errors.As(err, &httpErr) {
		statusCode := httpErr.StatusCode
		if statusCode == 0 {
			statusCode = http.StatusBadRequest
		}

		return statusCode, Resp{
			ErrorCode: httpErr.Code,
			Message:   httpErr.Message,
		}
	}

	return http.StatusInternalServerError, Resp{
		ErrorCode: 500,
		Message:   "Internal server error",
	}
}

func ParseGRPCError(err error) error {
	var grpcErr *pkgErrors.GRPCError
	if errors.As(err, &grpcErr) {
		grpcCode := grpcErr.GrpcCode
		if grpcCode == codes.OK {
			grpcCode = codes.InvalidArgument
		}
		return status.Error(grpcCode, grpcErr.Error())
	}

	return status.Error(codes.Internal, "Internal server error")
}
