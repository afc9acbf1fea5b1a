package errors

import (
	"fmt"

	"google.golang.org/grpc/codes"
)

// GRPCError pairs an application error code with the status code it is
// reported under. The zero GrpcCode is rendered as InvalidArgument.
type GRPCError struct {
	Message  string
	GrpcCode codes.Code
}

func NewGRPCError(code string, grpcCode codes.Code, message string) *GRPCError {
	return &GRPCError{
		Message:  fmt.Sprintf("%s - %s", code, message),
		GrpcCode: grpcCode,
	}
}

// WithDetail appends detail to the message of a copy of e.
func (e GRPCError) WithDetail(detail string) *GRPCError {
	e.Message = fmt.Sprintf("%s: %s", e.Message, detail)
	return &e
}

func (e GRPCError) Error() string {
	return e.Message
}
