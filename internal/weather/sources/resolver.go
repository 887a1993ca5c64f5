package sources

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/i474232898/weather-dashboard/internal/observability"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// Fetcher retrieves one format of a yearly file from the remote source.
type Fetcher interface {
	Fetch(ctx context.Context, year int, f weather.Format) ([]byte, error)
}

// Cache reads yearly files from local storage, trying formats in order.
type Cache interface {
	Load(year int, formats []weather.Format) ([]byte, weather.Format, error)
}

var _ weather.Source = (*Resolver)(nil)

type state int

const (
	stateTryFormat state = iota
	stateUseLocal
	stateDone
	stateFailed
)

func (s state) String() string {
	switch s {
	case stateTryFormat:
		return "try_format"
	case stateUseLocal:
		return "use_local"
	case stateDone:
		return "done"
	case stateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// attempt is the resolver state for a single Resolve call.
type attempt struct {
	state   state
	format  int // index into Resolver.formats while in stateTryFormat
	payload weather.Payload
	err     error
}

// Resolver implements weather.Source. Formats are tried remotely in order,
// moving on only after a 404. When every format is missing remotely the local
// cache is read. A transport error ends resolution immediately.
type Resolver struct {
	remote  Fetcher
	local   Cache
	formats []weather.Format
	metrics *observability.Metrics
	logger  *slog.Logger
}

func NewResolver(remote Fetcher, local Cache, metrics *observability.Metrics, logger *slog.Logger) *Resolver {
	return &Resolver{
		remote:  remote,
		local:   local,
		formats: weather.SupportedFormats,
		metrics: metrics,
		logger:  logger,
	}
}

// Resolve runs the attempt state machine for year until it is done or failed.
func (r *Resolver) Resolve(ctx context.Context, year int) (weather.Payload, error) {
	a := attempt{state: stateTryFormat}
	if len(r.formats) == 0 {
		a.state = stateUseLocal
	}

	for {
		switch a.state {
		case stateTryFormat:
			a = r.tryRemote(ctx, year, a.format)
		case stateUseLocal:
			a = r.useLocal(year)
		case stateDone:
			return a.payload, nil
		case stateFailed:
			return weather.Payload{}, a.err
		default:
			return weather.Payload{}, fmt.Errorf("resolver reached %s state", a.state)
		}
	}
}

func (r *Resolver) tryRemote(ctx context.Context, year, idx int) attempt {
	f := r.formats[idx]
	data, err := r.remote.Fetch(ctx, year, f)
	switch {
	case err == nil:
		r.metrics.RemoteFetches.WithLabelValues(f.Name, "ok").Inc()
		return attempt{
			state:   stateDone,
			payload: weather.Payload{Data: data, Format: f, Origin: weather.OriginRemote},
		}

	case errors.Is(err, weather.ErrFormatNotFound):
		r.metrics.RemoteFetches.WithLabelValues(f.Name, "not_found").Inc()
		if idx+1 < len(r.formats) {
			r.logger.Warn("remote format not found, trying next",
				"year", year, "format", f.Name, "next", r.formats[idx+1].Name)
			return attempt{state: stateTryFormat, format: idx + 1}
		}
		r.logger.Warn("no remote format available, using local cache", "year", year)
		return attempt{state: stateUseLocal}

	default:
		r.metrics.RemoteFetches.WithLabelValues(f.Name, "error").Inc()
		if !errors.Is(err, weather.ErrTransport) {
			err = fmt.Errorf("%w: %w", weather.ErrTransport, err)
		}
		return attempt{state: stateFailed, err: err}
	}
}

func (r *Resolver) useLocal(year int) attempt {
	data, f, err := r.local.Load(year, r.formats)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			err = fmt.Errorf("%w: %w", weather.ErrResourceNotFound, err)
		}
		return attempt{state: stateFailed, err: err}
	}

	r.metrics.LocalFallbacks.Inc()
	r.logger.Info("serving local cache file", "year", year, "format", f.Name)
	return attempt{
		state:   stateDone,
		payload: weather.Payload{Data: data, Format: f, Origin: weather.OriginLocal},
	}
}
