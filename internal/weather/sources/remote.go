package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// RemoteSource fetches yearly record files from <baseURL>/<year><ext>.
type RemoteSource struct {
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewRemoteSource(client *http.Client, baseURL string, breaker BreakerConfig) *RemoteSource {
	return &RemoteSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		circuit: newCircuitBreaker("weather-remote", breaker),
	}
}

// URL returns the address of the file for year in format f.
func (r *RemoteSource) URL(year int, f weather.Format) string {
	return r.baseURL + "/" + strconv.Itoa(year) + f.Ext
}

// Fetch performs one GET for year in format f. A 404 yields
// weather.ErrFormatNotFound; every other failure yields weather.ErrTransport.
func (r *RemoteSource) Fetch(ctx context.Context, year int, f weather.Format) ([]byte, error) {
	u := r.URL(year, f)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", weather.ErrTransport, err)
	}

	resp, err := doRequest(r.client, r.circuit, req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", weather.ErrTransport, u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", weather.ErrFormatNotFound, u)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", weather.ErrTransport, u, err)
	}
	return body, nil
}

// Probe checks that the source answers for year in the preferred format. It
// bypasses the circuit breaker so background checks never affect requests.
func (r *RemoteSource) Probe(ctx context.Context, year int) error {
	if r.client == nil {
		return errNoHTTPClient
	}
	u := r.URL(year, weather.SupportedFormats[0])
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, u, nil)
	if err != nil {
		return err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
	}
	return nil
}
