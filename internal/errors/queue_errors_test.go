package errors

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	assert.ErrorIs(t, NewValidationError("name", "is required"), ErrValidation)
	assert.ErrorIs(t, &UnknownSectionError{Section: "Florist"}, ErrUnknownSection)
	assert.ErrorIs(t, &EmptyQueueError{Section: "Deli"}, ErrEmptyQueue)

	wrapped := fmt.Errorf("service: %w", NewPersistenceError("save", io.ErrUnexpectedEOF))
	assert.ErrorIs(t, wrapped, ErrPersistence)
	assert.ErrorIs(t, wrapped, io.ErrUnexpectedEOF)

	var pe *PersistenceError
	assert.True(t, errors.As(wrapped, &pe))
	assert.Equal(t, "save", pe.Op)
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "name: is required", NewValidationError("name", "is required").Error())
	assert.Equal(t, `unknown section "Florist"`, (&UnknownSectionError{Section: "Florist"}).Error())
	assert.Equal(t, "there are no tickets in the Deli queue", (&EmptyQueueError{Section: "Deli"}).Error())
	assert.NotErrorIs(t, &EmptyQueueError{Section: "Deli"}, ErrValidation)
}
