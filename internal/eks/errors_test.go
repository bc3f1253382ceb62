package eks

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/eks/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
)

func TestIsNotFound(t *testing.T) {
	notFound := &types.ResourceNotFoundException{}

	assert.True(t, IsNotFound(notFound))
	assert.True(t, IsNotFound(fmt.Errorf("describing cluster prod: %w", notFound)))
	assert.False(t, IsNotFound(errors.New("something else")))
	assert.False(t, IsNotFound(nil))
}

func TestIsAccessDenied(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "access denied exception",
			err:  &smithy.GenericAPIError{Code: "AccessDeniedException", Message: "not allowed"},
			want: true,
		},
		{
			name: "expired token",
			err:  &smithy.GenericAPIError{Code: "ExpiredTokenException", Message: "expired"},
			want: true,
		},
		{
			name: "unrecognized client",
			err:  fmt.Errorf("wrapped: %w", &smithy.GenericAPIError{Code: "UnrecognizedClientException"}),
			want: true,
		},
		{
			name: "unrelated api error",
			err:  &smithy.GenericAPIError{Code: "ResourceInUseException"},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("nope"),
			want: false,
		},
		{
			name: "nil",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAccessDenied(tt.err))
		})
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "deadline exceeded",
			err:  context.DeadlineExceeded,
			want: true,
		},
		{
			name: "wrapped deadline exceeded",
			err:  fmt.Errorf("calling eks: %w", context.DeadlineExceeded),
			want: true,
		},
		{
			name: "connection reset",
			err:  fmt.Errorf("dial: %w", syscall.ECONNRESET),
			want: true,
		},
		{
			name: "connection refused",
			err:  fmt.Errorf("dial: %w", syscall.ECONNREFUSED),
			want: true,
		},
		{
			name: "throttling",
			err:  &smithy.GenericAPIError{Code: "ThrottlingException"},
			want: true,
		},
		{
			name: "service unavailable",
			err:  &smithy.GenericAPIError{Code: "ServiceUnavailableException"},
			want: true,
		},
		{
			name: "access denied is not transient",
			err:  &smithy.GenericAPIError{Code: "AccessDeniedException"},
			want: false,
		},
		{
			name: "resource not found is not transient",
			err:  &types.ResourceNotFoundException{},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: false,
		},
		{
			name: "nil",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}
