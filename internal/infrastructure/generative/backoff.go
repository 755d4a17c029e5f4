package generative

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
	"time"
)

// BackoffType selects how retry delays grow.
type BackoffType string

const (
	BackoffNone        BackoffType = "none"
	BackoffLinear      BackoffType = "linear"
	BackoffExponential BackoffType = "exponential"
)

// CalculateBackoff computes the delay before retry attempt (1-based).
func CalculateBackoff(strategy BackoffType, attempt int, initialDelay, maxDelay time.Duration) time.Duration {
	switch strategy {
	case BackoffNone:
		return initialDelay
	case BackoffLinear:
		delay := time.Duration(attempt) * initialDelay
		if maxDelay > 0 && delay > maxDelay {
			return maxDelay
		}
		return delay
	case BackoffExponential:
		// 2^(attempt-1) * initialDelay: 1s, 2s, 4s...
		if attempt > 62 {
			return maxDelay
		}
		shift := attempt - 1
		if shift < 0 {
			shift = 0
		}
		delay := time.Duration(1<<shift) * initialDelay
		if maxDelay > 0 && delay > maxDelay {
			return maxDelay
		}
		return delay
	default:
		return initialDelay
	}
}

// StatusError is a non-2xx response from a backend API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Body)
}

// isTransientError reports whether a retry could succeed.
func isTransientError(err error) bool {
	if err == nil {
		return false
	}

	// The caller's deadline is final.
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= 500
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ETIMEDOUT) ||
		errors.Is(err, syscall.ECONNABORTED) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsTemporary {
		return true
	}

	return false
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
