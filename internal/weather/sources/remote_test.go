package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-dashboard/internal/observability"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

func testRemote(baseURL string) *RemoteSource {
	return NewRemoteSource(&http.Client{Timeout: 5 * time.Second}, baseURL, BreakerConfig{
		MaxFailures: 3,
		Timeout:     time.Minute,
	})
}

// dropConnection simulates a network-level failure.
func dropConnection(t *testing.T, w http.ResponseWriter) {
	hj, ok := w.(http.Hijacker)
	require.True(t, ok)
	conn, _, err := hj.Hijack()
	require.NoError(t, err)
	conn.Close()
}

func TestRemoteSource_Fetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/data/2019.xml", r.URL.Path)
		w.Write([]byte("<weather></weather>")) //nolint:errcheck
	}))
	defer srv.Close()

	body, err := testRemote(srv.URL+"/data/").Fetch(context.Background(), 2019, weather.FormatXML)
	require.NoError(t, err)
	assert.Equal(t, "<weather></weather>", string(body))
}

func TestRemoteSource_Fetch_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := testRemote(srv.URL).Fetch(context.Background(), 2019, weather.FormatJSON)

	assert.ErrorIs(t, err, weather.ErrFormatNotFound)
	assert.NotErrorIs(t, err, weather.ErrTransport)
}

func TestRemoteSource_Fetch_ErrorStatusIsTransport(t *testing.T) {
	for _, code := range []int{http.StatusInternalServerError, http.StatusForbidden, http.StatusBadGateway} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(code)
		}))

		_, err := testRemote(srv.URL).Fetch(context.Background(), 2019, weather.FormatXML)
		assert.ErrorIs(t, err, weather.ErrTransport, "status %d", code)
		srv.Close()
	}
}

func TestRemoteSource_Fetch_ConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		dropConnection(t, w)
	}))
	defer srv.Close()

	_, err := testRemote(srv.URL).Fetch(context.Background(), 2019, weather.FormatXML)
	assert.ErrorIs(t, err, weather.ErrTransport)
}

func TestRemoteSource_NotFoundDoesNotTripBreaker(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.NotFound(w, nil)
	}))
	defer srv.Close()

	remote := testRemote(srv.URL)
	for i := 0; i < 10; i++ {
		_, err := remote.Fetch(context.Background(), 2019, weather.FormatXML)
		require.ErrorIs(t, err, weather.ErrFormatNotFound)
	}
	assert.Equal(t, int32(10), calls.Load())
}

func TestRemoteSource_BreakerOpensAfterFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	remote := testRemote(srv.URL)
	for i := 0; i < 5; i++ {
		_, err := remote.Fetch(context.Background(), 2019, weather.FormatXML)
		require.ErrorIs(t, err, weather.ErrTransport)
	}

	// MaxFailures is 3; later calls are rejected without a round trip.
	assert.Equal(t, int32(3), calls.Load())
}

func TestRemoteSource_Probe(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusNotFound)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		assert.Equal(t, "/2020.xml", r.URL.Path)
		w.WriteHeader(int(status.Load()))
	}))
	defer srv.Close()

	remote := testRemote(srv.URL)
	assert.NoError(t, remote.Probe(context.Background(), 2020))

	status.Store(http.StatusServiceUnavailable)
	assert.Error(t, remote.Probe(context.Background(), 2020))
}

func writeCacheFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestResolver_HTTP_LocalFallbackWithinTwoCalls(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.NotFound(w, nil)
	}))
	defer srv.Close()

	dir := t.TempDir()
	writeCacheFile(t, dir, "2019.json", `{"weather":{"record":[{"date":"1/3/2019","ws":10,"sr":150}]}}`)

	r := NewResolver(testRemote(srv.URL), store.NewDirStore(dir), observability.NewMetricsForTesting(), testLogger())
	p, err := r.Resolve(context.Background(), 2019)
	require.NoError(t, err)

	assert.Equal(t, weather.OriginLocal, p.Origin)
	assert.Equal(t, weather.FormatJSON, p.Format)
	assert.LessOrEqual(t, calls.Load(), int32(2))

	summaries, err := weather.NewService(r, observability.NewMetricsForTesting(), testLogger()).
		Run(context.Background(), weather.Query{Year: 2019, Months: weather.MonthRange{Start: 3, End: 5}})
	require.NoError(t, err)
	assert.InDelta(t, 36.0, summaries[2].WindSpeedAverage, 1e-9)
}

func TestResolver_HTTP_TransportErrorSkipsFallbacks(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		dropConnection(t, w)
	}))
	defer srv.Close()

	dir := t.TempDir()
	writeCacheFile(t, dir, "2019.xml", `<weather><record><date>1/1/2019</date><ws>1</ws><sr>1</sr></record></weather>`)

	r := NewResolver(testRemote(srv.URL), store.NewDirStore(dir), observability.NewMetricsForTesting(), testLogger())
	_, err := r.Resolve(context.Background(), 2019)

	assert.ErrorIs(t, err, weather.ErrTransport)
	assert.Equal(t, int32(1), calls.Load())
}
