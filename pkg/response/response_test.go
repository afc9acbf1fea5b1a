package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pkgErrors "github.com/vogiaan1904/ticketbottle-counters/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestError_HTTPError(t *testing.T) {
	rec := httptest.NewRecorder()
	err := fmt.Errorf("wrapped: %w", pkgErrors.NewHTTPError(40401, "Ticket not found").WithStatus(http.StatusNotFound))
	Error(rec, err)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body Resp
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 40401, body.ErrorCode)
	assert.Equal(t, "Ticket not found", body.Message)
}

func TestError_HidesUnknownErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, errors.New("db password is hunter2"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hunter2")
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, map[string]int{"waiting": 3})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error_code":0,"message":"Success","data":{"waiting":3}}`, rec.Body.String())
}

func TestParseGRPCError(t *testing.T) {
	err := ParseGRPCError(pkgErrors.NewGRPCError("CTR004", codes.NotFound, "Ticket not found"))
	assert.Equal(t, codes.NotFound, status.Code(err))
	assert.Equal(t, "CTR004 - Ticket not found", status.Convert(err).Message())

	err = ParseGRPCError(&pkgErrors.GRPCError{Message: "bad"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	err = ParseGRPCError(errors.New("boom"))
	assert.Equal(t, codes.Internal, status.Code(err))
}
