package sender

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"
)

func TestDispatcherDrainsQueueOnClose(t *testing.T) {
	d := NewDispatcher(Options{Workers: 2, QueueSize: 8})

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		err := d.Enqueue(context.Background(), "sendMessage", "/chat", func() error {
			ran.Add(1)
			return nil
		})
		require.NoError(t, err)
	}

	d.Close()
	require.EqualValues(t, 5, ran.Load())
	require.Zero(t, d.ErrorCount())
}

func TestEnqueueAfterClose(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1})
	d.Close()

	err := d.Enqueue(context.Background(), "sendMessage", "", func() error { return nil })
	require.ErrorIs(t, err, ErrQueueClosed)

	// Close is idempotent.
	d.Close()
}

func TestEnqueueRejectsWhenSaturated(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, QueueSize: 1})

	release := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, d.Enqueue(context.Background(), "sendMessage", "", func() error {
		close(started)
		<-release
		return nil
	}))
	<-started

	// Worker is busy, so this one sits in the queue.
	require.NoError(t, d.Enqueue(context.Background(), "sendMessage", "", func() error { return nil }))

	err := d.Enqueue(context.Background(), "sendMessage", "", func() error { return nil })
	require.ErrorIs(t, err, ErrQueueFull)

	close(release)
	d.Close()
}

func TestRetryOnTransientFailure(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, MaxRetries: 2, RetryBackoff: time.Millisecond})

	var calls atomic.Int32
	require.NoError(t, d.Enqueue(context.Background(), "sendMessage", "", func() error {
		if calls.Add(1) == 1 {
			return &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
		}
		return nil
	}))

	d.Close()
	require.EqualValues(t, 2, calls.Load())
	require.Zero(t, d.ErrorCount())
}

func TestPermanentFailureCountsOnce(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, MaxRetries: 3, RetryBackoff: time.Millisecond})

	var calls atomic.Int32
	require.NoError(t, d.Enqueue(context.Background(), "sendMessage", "", func() error {
		calls.Add(1)
		return errors.New("telegram: chat not found (400)")
	}))

	d.Close()
	require.EqualValues(t, 1, calls.Load())
	require.EqualValues(t, 1, d.ErrorCount())
}

func TestEnqueueNilRun(t *testing.T) {
	d := NewDispatcher(Options{})
	defer d.Close()

	require.Error(t, d.Enqueue(context.Background(), "sendMessage", "", nil))
}

func TestErrorKind(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"deadline", context.DeadlineExceeded, "timeout"},
		{"canceled", context.Canceled, "canceled"},
		{"dns", &net.DNSError{Err: "no such host"}, "dns"},
		{"dial", &net.OpError{Op: "dial", Err: errors.New("refused")}, "dial"},
		{"api 502", &tele.Error{Code: 502}, "http_5xx"},
		{"api 403", &tele.Error{Code: 403}, "http_4xx"},
		{"plain", errors.New("boom"), "unknown"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, errorKind(tc.err))
		})
	}
}

func TestStatusCodeFromMessage(t *testing.T) {
	require.Equal(t, 429, statusCode(errors.New("telegram: retry after 5 (429)")))
	require.Equal(t, 0, statusCode(errors.New("no code here")))
}

func TestRedactToken(t *testing.T) {
	err := errors.New(`Post "https://api.telegram.org/bot123456:ABC-def_789/sendMessage": EOF`)
	msg := redactToken(err)
	require.NotContains(t, msg, "123456:ABC")
	require.Contains(t, msg, "bot<redacted>")
}
