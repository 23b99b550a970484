// Package sender queues outbound Telegram calls and retries transient
// failures without blocking handlers.
package sender

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"regexp"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/m3rciful/moviebot/internal/logger"
	"github.com/m3rciful/moviebot/internal/telegram/netutil"

	tele "gopkg.in/telebot.v4"
)

var (
	// ErrQueueClosed means Enqueue was called after Close.
	ErrQueueClosed = errors.New("telegram sender: queue closed")
	// ErrQueueFull means the job was rejected because the queue is at capacity.
	ErrQueueFull = errors.New("telegram sender: queue full")

	tokenRe     = regexp.MustCompile(`bot[0-9]+:[A-Za-z0-9_-]+`)
	statusParen = regexp.MustCompile(`\((\d+)\)`)
)

// Options controls queue capacity and the retry policy of the dispatcher.
type Options struct {
	QueueSize    int
	Workers      int
	MaxRetries   int
	RetryBackoff time.Duration
	// MaxDuration bounds the total time spent on a single job, retries included.
	MaxDuration time.Duration
}

func (o Options) withDefaults() Options {
	if o.QueueSize <= 0 {
		o.QueueSize = 256
	}
	if o.Workers <= 0 {
		o.Workers = 4
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.RetryBackoff <= 0 {
		o.RetryBackoff = 2 * time.Second
	}
	if o.MaxDuration <= 0 {
		o.MaxDuration = 12 * time.Second
	}
	return o
}

type task struct {
	ctx      context.Context
	action   string
	endpoint string
	run      func() error
	queuedAt time.Time
}

func (t task) attrs(ctx context.Context) []slog.Attr {
	attrs := make([]slog.Attr, 0, 6)
	attrs = append(attrs, slog.String("action", t.action))
	if t.endpoint != "" {
		attrs = append(attrs, slog.String("endpoint", t.endpoint))
	}
	if rid := logger.RIDFrom(ctx); rid != "" {
		attrs = append(attrs, slog.String("rid", rid))
	}
	if id := logger.UpdateIDFrom(ctx); id != 0 {
		attrs = append(attrs, slog.Int("update_id", id))
	}
	if id := logger.ChatIDFrom(ctx); id != 0 {
		attrs = append(attrs, slog.Int64("chat_id", id))
	}
	if id := logger.UserIDFrom(ctx); id != 0 {
		attrs = append(attrs, slog.Int64("user_id", id))
	}
	return attrs
}

// Dispatcher executes outbound Telegram calls on a worker pool.
type Dispatcher struct {
	opts   Options
	queue  chan task
	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
	failed atomic.Uint64
}

// NewDispatcher starts the worker pool. Zeroed options get sane defaults.
func NewDispatcher(opts Options) *Dispatcher {
	opts = opts.withDefaults()
	d := &Dispatcher{
		opts:  opts,
		queue: make(chan task, opts.QueueSize),
	}
	d.wg.Add(opts.Workers)
	for i := 0; i < opts.Workers; i++ {
		go d.drain()
	}
	return d
}

// Enqueue schedules run for asynchronous execution. It never blocks: a
// saturated queue returns ErrQueueFull so the caller can fall back to a
// synchronous send. The run closure must be idempotent if retries matter.
func (d *Dispatcher) Enqueue(ctx context.Context, action, endpoint string, run func() error) error {
	if run == nil {
		return errors.New("telegram sender: nil run function")
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrQueueClosed
	}

	t := task{
		ctx:      ctx,
		action:   action,
		endpoint: endpoint,
		run:      run,
		queuedAt: time.Now(),
	}
	select {
	case d.queue <- t:
		return nil
	default:
		return ErrQueueFull
	}
}

// ErrorCount returns the number of jobs that exhausted all attempts.
func (d *Dispatcher) ErrorCount() uint64 {
	return d.failed.Load()
}

// Close rejects new jobs and waits for queued ones to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Dispatcher) drain() {
	defer d.wg.Done()
	for t := range d.queue {
		d.deliver(t)
	}
}

func (d *Dispatcher) deliver(t task) {
	ctx := t.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, d.opts.MaxDuration)
	defer cancel()

	start := time.Now()
	logger.Debug(ctx, "tg.sender", "send.start",
		append(t.attrs(ctx), slog.Int("queue_ms", elapsedMS(start.Sub(t.queuedAt))))...,
	)

	var err error
	for attempt := 1; ; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
			break
		}

		if err = t.run(); err == nil {
			elapsed := time.Since(start)
			if attempt > 1 {
				logger.Info(ctx, "tg.sender", "send.retry.success",
					append(t.attrs(ctx), slog.Int("attempt", attempt), slog.Int("elapsed_ms", elapsedMS(elapsed)))...,
				)
				return
			}
			logger.Debug(ctx, "tg.sender", "send.success",
				append(t.attrs(ctx), slog.Int("elapsed_ms", elapsedMS(elapsed)))...,
			)
			return
		}

		if attempt > d.opts.MaxRetries || !netutil.ShouldRetry(err) {
			break
		}

		delay := time.Duration(attempt) * d.opts.RetryBackoff
		logger.Debug(ctx, "tg.sender", "send.retry.backoff",
			append(t.attrs(ctx), slog.Int("attempt", attempt), slog.Duration("delay", delay))...,
		)
		if !sleepCtx(ctx, delay) {
			err = ctx.Err()
			break
		}
	}

	d.failed.Add(1)
	logger.Error(ctx, "tg.sender", "send.fail",
		append(t.attrs(ctx),
			slog.String("error", redactToken(err)),
			slog.String("error_kind", errorKind(err)),
			slog.Int("elapsed_ms", elapsedMS(time.Since(start))),
		)...,
	)
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func elapsedMS(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(logger.RoundMS(d) / time.Millisecond)
}

// errorKind buckets a send failure for log filtering. net.OpError and
// url.Error unwrap, so errors.As reaches the nested causes directly.
func errorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return "timeout"
		}
		return "dns"
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timeout"
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return "dial"
	}

	var alertErr tls.AlertError
	if errors.As(err, &alertErr) {
		return "tls"
	}

	switch status := statusCode(err); {
	case status >= 500:
		return "http_5xx"
	case status >= 400:
		return "http_4xx"
	}

	return "unknown"
}

// redactToken strips bot tokens from error text before it reaches logs.
func redactToken(err error) string {
	if err == nil {
		return ""
	}
	return tokenRe.ReplaceAllString(err.Error(), "bot<redacted>")
}

func statusCode(err error) int {
	if err == nil {
		return 0
	}

	var apiErr *tele.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var floodErr tele.FloodError
	if errors.As(err, &floodErr) {
		return http.StatusTooManyRequests
	}
	var groupErr tele.GroupError
	if errors.As(err, &groupErr) {
		return http.StatusBadRequest
	}

	// telebot formats unknown API errors as "telegram: <desc> (<code>)".
	matches := statusParen.FindAllStringSubmatch(err.Error(), -1)
	if len(matches) == 0 {
		return 0
	}
	code, convErr := strconv.Atoi(matches[len(matches)-1][1])
	if convErr != nil {
		return 0
	}
	return code
}
