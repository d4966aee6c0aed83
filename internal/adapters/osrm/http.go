package osrm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"route-planner-service/internal/platform/metrics"
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

func (c *Client) newRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// getJSON fetches url from host and decodes the body into out.
//
// Each attempt gets its own timeout derived from ctx. Transport errors,
// attempt timeouts and 429/5xx responses are retried with exponential backoff
// while respecting cancellation of ctx itself.
func (c *Client) getJSON(ctx context.Context, endpoint, host, url string, out any) error {
	attempts := 1 + c.maxRetries
	backoff := c.backoff

	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if l := c.limiter(host); l != nil {
			if err := l.Wait(ctx); err != nil {
				return fmt.Errorf("rate limit wait: %w", err)
			}
		}

		err := c.attempt(ctx, endpoint, host, url, out)
		if err == nil {
			return nil
		}
		lastErr = err

		// Cancellation of the caller's context is final.
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if !retryable(err) || attempt == attempts {
			return lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return lastErr
}

func (c *Client) attempt(ctx context.Context, endpoint, host, url string, out any) (err error) {
	ctx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()

	start := time.Now()
	defer func() {
		metrics.RoutingLatency.WithLabelValues(endpoint, host).Observe(time.Since(start).Seconds())
		metrics.RoutingAttempts.WithLabelValues(endpoint, host, outcome(err)).Inc()
	}()

	req, err := c.newRequest(ctx, url)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("read %s response: %w", endpoint, ctx.Err())
		}
		return &decodeError{err: err}
	}
	return nil
}

type decodeError struct{ err error }

func (e *decodeError) Error() string { return "decode response: " + e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

func retryable(err error) bool {
	var he *httpStatusError
	if errors.As(err, &he) {
		switch he.Code {
		case 429, 500, 502, 503, 504:
			return true
		}
		return false
	}

	var de *decodeError
	if errors.As(err, &de) {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}

	var he *httpStatusError
	var de *decodeError
	switch {
	case errors.As(err, &he):
		return "http_error"
	case errors.As(err, &de):
		return "decode_error"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "transport_error"
	}
}
