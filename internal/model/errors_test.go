package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoteError_Is(t *testing.T) {
	tests := []struct {
		kind   ErrorKind
		target error
	}{
		{KindTokenExpired, ErrTokenExpired},
		{KindValidation, ErrUpstreamValidation},
		{KindServer, ErrServer},
		{KindNetwork, ErrNetwork},
		{KindAPI, ErrAPI},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			err := fmt.Errorf("fetch order: %w", &RemoteError{Kind: tt.kind})
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestRemoteError_IsOtherKind(t *testing.T) {
	err := &RemoteError{Kind: KindServer, StatusCode: 503}

	assert.False(t, errors.Is(err, ErrTokenExpired))
	assert.Equal(t, "SERVER_ERROR (status 503): ", err.Error())
}

func TestRemoteError_Retryable(t *testing.T) {
	assert.True(t, (&RemoteError{Kind: KindServer}).Retryable())
	assert.False(t, (&RemoteError{Kind: KindNetwork}).Retryable())
	assert.False(t, (&RemoteError{Kind: KindTokenExpired}).Retryable())
}

func TestValidationError_Error(t *testing.T) {
	assert.Equal(t, "validation error: shop_id: is required", NewValidationError("shop_id", "is required").Error())
	assert.Equal(t, "validation error: broken", (&ValidationError{Message: "broken"}).Error())
}
