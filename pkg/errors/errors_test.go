package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	wrapped := Wrap(errors.New("boom"), ErrValidation.Code, ErrValidation.Status, "bad input")
	got := FromError(wrapped)
	assert.Equal(t, "VALIDATION_ERROR", got.Code)
	assert.Equal(t, http.StatusBadRequest, got.Status)
	assert.Equal(t, "bad input: boom", got.Error())
}

func TestFromErrorNormalisesUnknown(t *testing.T) {
	got := FromError(errors.New("disk on fire"))
	assert.Equal(t, ErrInternal.Code, got.Code)
	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.Nil(t, FromError(nil))
}

func TestCloneDoesNotMutateOriginal(t *testing.T) {
	clone := Clone(ErrNotFound, "announcement not found")
	assert.Equal(t, "announcement not found", clone.Message)
	assert.Equal(t, "resource not found", ErrNotFound.Message)
}
