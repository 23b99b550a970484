// Package netutil classifies network failures for the send retry paths.
package netutil

import (
	"context"
	"errors"
	"net"
)

// ShouldRetry reports whether err is a transient network failure worth
// another attempt: a timeout, a temporary condition, or a failed dial.
// Deliberate context cancellation is never retried.
//
// url.Error and net.OpError both implement net.Error and delegate
// Timeout and Temporary to the error they wrap, so a single errors.As
// check covers the whole chain http transports produce.
func ShouldRetry(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && (netErr.Timeout() || netErr.Temporary())
}
