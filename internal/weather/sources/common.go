package sources

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerConfig controls when the remote circuit breaker opens.
type BreakerConfig struct {
	// MaxFailures is the number of consecutive failed round trips that opens the breaker.
	MaxFailures uint32
	// Timeout is how long the breaker stays open before a trial request.
	Timeout time.Duration
}

var (
	errUnexpected   = errors.New("unexpected status code")
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
)

func newCircuitBreaker(name string, cfg BreakerConfig) *gobreaker.CircuitBreaker {
	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
	})
}

// doRequest performs exactly one round trip through the circuit breaker.
// A 404 is handed back as a response rather than an error: it is an expected
// answer from the source and must not count towards opening the breaker.
func doRequest(client *http.Client, cb *gobreaker.CircuitBreaker, req *http.Request) (*http.Response, error) {
	if client == nil {
		return nil, errNoHTTPClient
	}

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		if resp.StatusCode == http.StatusNotFound {
			return resp, nil
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}
		return nil, err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return resp, nil
}
