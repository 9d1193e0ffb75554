package carelink

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyTransportError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind ErrorKind
	}{
		{"deadline", context.DeadlineExceeded, KindTimeout},
		{"wrapped deadline", fmt.Errorf("do: %w", context.DeadlineExceeded), KindTimeout},
		{"net timeout", timeoutErr{}, KindTimeout},
		{"dial refused", &net.OpError{Op: "dial", Err: errors.New("connection refused")}, KindNoConnection},
		{"read reset", &net.OpError{Op: "read", Err: errors.New("connection reset by peer")}, KindNoConnection},
		{"canceled", context.Canceled, KindTransportFailure},
		{"other", errors.New("tls handshake broke"), KindTransportFailure},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ce := classifyTransportError(tc.err)
			require.Equal(t, tc.kind, ce.Kind)
			require.NotEmpty(t, ce.Message)
			require.ErrorIs(t, ce, tc.err)
		})
	}
}

func TestErrorRetryable(t *testing.T) {
	require.True(t, (&Error{Kind: KindTimeout}).Retryable())
	require.True(t, (&Error{Kind: KindNoConnection}).Retryable())
	require.True(t, (&Error{Kind: KindTransportFailure}).Retryable())
	require.True(t, (&Error{Kind: KindRateLimited}).Retryable())
	require.True(t, (&Error{Kind: KindServerError, StatusCode: 503}).Retryable())

	require.False(t, (&Error{Kind: KindServerError, StatusCode: 418}).Retryable())
	require.False(t, (&Error{Kind: KindUnauthorized}).Retryable())
	require.False(t, (&Error{Kind: KindForbidden}).Retryable())
	require.False(t, (&Error{Kind: KindNotFound}).Retryable())
	require.False(t, (&Error{Kind: KindDecodingFailure}).Retryable())
	require.False(t, (&Error{Kind: KindEncodingFailure}).Retryable())
	require.False(t, (&Error{Kind: KindInvalidURL}).Retryable())
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("service: %w", &Error{Kind: KindNotFound, StatusCode: 404, Message: "member missing"})
	require.True(t, IsKind(err, KindNotFound))
	require.False(t, IsKind(err, KindForbidden))
	require.False(t, IsKind(errors.New("plain"), KindNotFound))
}

func TestErrorString(t *testing.T) {
	withStatus := &Error{Kind: KindServerError, StatusCode: 502, Message: "Bad Gateway"}
	require.Equal(t, "carelink: server_error (502): Bad Gateway", withStatus.Error())

	withoutStatus := &Error{Kind: KindNoConnection, Message: "device is offline"}
	require.Equal(t, "carelink: no_connection: device is offline", withoutStatus.Error())
}
