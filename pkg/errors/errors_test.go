package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	wrapped := fmt.Errorf("load: %w", Clone(ErrNotFound, "event not found"))

	appErr := FromError(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, ErrNotFound.Code, appErr.Code)
	assert.Equal(t, "event not found", appErr.Message)
	assert.Equal(t, "resource not found", ErrNotFound.Message)
}

func TestFromErrorNormalisesUnknownErrors(t *testing.T) {
	appErr := FromError(errors.New("boom"))
	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.EqualError(t, appErr, "internal server error: boom")
	assert.Nil(t, FromError(nil))
}

func TestIsUpstream(t *testing.T) {
	assert.True(t, IsUpstream(Wrap(errors.New("dial"), ErrUpstreamUnavailable.Code, http.StatusBadGateway, "x")))
	assert.True(t, IsUpstream(Clone(ErrUpstream, "status 500")))
	assert.False(t, IsUpstream(ErrValidation))
	assert.False(t, IsUpstream(errors.New("plain")))
}
