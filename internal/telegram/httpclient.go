package telegram

import (
	"net"
	"net/http"
	"time"

	"github.com/m3rciful/moviebot/internal/telegram/netutil"
)

const (
	apiDialTimeout     = 5 * time.Second
	apiTLSHandshake    = 5 * time.Second
	apiResponseHeader  = 5 * time.Second
	apiIdleConnTimeout = 30 * time.Second
	apiKeepAlive       = 30 * time.Second
	apiClientTimeout   = 30 * time.Second
	apiRetryAttempts   = 3
	apiRetryBackoff    = 2 * time.Second
)

// BuildHTTPClient returns the HTTP client handed to telebot. The client
// timeout must stay above the long-poll timeout or getUpdates gets cut off.
func BuildHTTPClient() *http.Client {
	return &http.Client{
		Timeout: apiClientTimeout,
		Transport: &retryTransport{
			retries: apiRetryAttempts,
			backoff: apiRetryBackoff,
			base: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				DialContext:           (&net.Dialer{Timeout: apiDialTimeout, KeepAlive: apiKeepAlive}).DialContext,
				ForceAttemptHTTP2:     true,
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   10,
				IdleConnTimeout:       apiIdleConnTimeout,
				TLSHandshakeTimeout:   apiTLSHandshake,
				ResponseHeaderTimeout: apiResponseHeader,
				ExpectContinueTimeout: time.Second,
			},
		},
	}
}

// retryTransport retries transient dial and timeout failures below the
// client deadline. Requests whose body cannot be replayed are not retried.
type retryTransport struct {
	base    http.RoundTripper
	retries int
	backoff time.Duration
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	var lastErr error
	for attempt := 0; ; attempt++ {
		curr, ok := rewound(req, attempt)
		if !ok {
			return nil, lastErr
		}

		resp, err := base.RoundTrip(curr)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if attempt >= t.retries || !netutil.ShouldRetry(err) {
			return nil, lastErr
		}

		if delay := time.Duration(attempt+1) * t.backoff; delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-req.Context().Done():
				timer.Stop()
				return nil, req.Context().Err()
			case <-timer.C:
			}
		}
	}
}

func rewound(req *http.Request, attempt int) (*http.Request, bool) {
	if attempt == 0 {
		return req, true
	}
	if req.Body != nil && req.GetBody == nil {
		return nil, false
	}
	clone := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, false
		}
		clone.Body = body
	}
	return clone, true
}
