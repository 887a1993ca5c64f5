package weather

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/i474232898/weather-dashboard/internal/observability"
)

// Service runs the retrieve-parse-aggregate pipeline. It holds no per-request
// state, so a single instance serves concurrent requests.
type Service struct {
	source  Source
	metrics *observability.Metrics
	logger  *slog.Logger
	clock   clockwork.Clock
}

// NewService creates a new Service.
func NewService(source Source, metrics *observability.Metrics, logger *slog.Logger) *Service {
	return &Service{
		source:  source,
		metrics: metrics,
		logger:  logger,
		clock:   clockwork.NewRealClock(),
	}
}

// ParseQuery converts the raw form values into a Query. Only integer parsing
// is checked; month ordering is left to the caller.
func ParseQuery(year, startMonth, endMonth string) (Query, error) {
	y, err := parseInt("year", year)
	if err != nil {
		return Query{}, err
	}
	start, err := parseInt("startMonth", startMonth)
	if err != nil {
		return Query{}, err
	}
	end, err := parseInt("endMonth", endMonth)
	if err != nil {
		return Query{}, err
	}
	return Query{Year: y, Months: MonthRange{Start: start, End: end}}, nil
}

func parseInt(name, v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidQuery, name, v)
	}
	return n, nil
}

// Run resolves the payload for q.Year, parses it, keeps the records in
// q.Months and returns exactly 12 monthly summaries. Any failure aborts the
// run; partial results are never returned.
func (s *Service) Run(ctx context.Context, q Query) ([]MonthSummary, error) {
	start := s.clock.Now()
	logger := s.logger.With("run_id", uuid.NewString(), "year", q.Year)

	summaries, err := s.run(ctx, q, logger)

	s.metrics.PipelineDuration.Observe(s.clock.Since(start).Seconds())
	if err != nil {
		s.metrics.PipelineRuns.WithLabelValues("error").Inc()
		logger.Error("pipeline failed", "error", err)
		return nil, err
	}
	s.metrics.PipelineRuns.WithLabelValues("success").Inc()
	logger.Debug("pipeline completed", "duration", s.clock.Since(start))
	return summaries, nil
}

func (s *Service) run(ctx context.Context, q Query, logger *slog.Logger) ([]MonthSummary, error) {
	payload, err := s.source.Resolve(ctx, q.Year)
	if err != nil {
		return nil, fmt.Errorf("resolve %d: %w", q.Year, err)
	}
	logger.Info("weather data resolved",
		"origin", payload.Origin,
		"served_as", payload.Format.Name,
		"bytes", len(payload.Data),
	)

	buckets, res, err := ParseBuckets(payload.Data, q.Months)
	if err != nil {
		return nil, err
	}
	if res.Format != payload.Format {
		logger.Warn("payload format differs from source extension",
			"served_as", payload.Format.Name,
			"parsed_as", res.Format.Name,
		)
	}
	s.metrics.ParsedPayloads.WithLabelValues(res.Format.Name).Inc()
	if res.Skipped > 0 {
		s.metrics.SkippedRecords.Add(float64(res.Skipped))
		logger.Warn("skipped records with non-numeric readings", "count", res.Skipped)
	}

	return Aggregate(buckets), nil
}
