package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/road-risk-service/internal/advisory"
	"github.com/couchcryptid/road-risk-service/internal/domain"
	"github.com/couchcryptid/road-risk-service/internal/observability"
	"github.com/couchcryptid/road-risk-service/internal/sim"
	"github.com/google/uuid"
)

var errDecode = errors.New("malformed request payload")

// RiskAssessor implements Assessor: it decodes a raw request, runs the
// traversal simulation, and assembles the full report with recommendations,
// rankings, and road statistics.
type RiskAssessor struct {
	logger  *slog.Logger
	metrics *observability.Metrics
	topN    int
}

// NewAssessor creates a RiskAssessor. topN caps the danger ranking when the
// request does not ask for a specific depth.
func NewAssessor(logger *slog.Logger, metrics *observability.Metrics, topN int) *RiskAssessor {
	return &RiskAssessor{logger: logger, metrics: metrics, topN: topN}
}

func (a *RiskAssessor) Assess(_ context.Context, raw domain.RawRequest) (domain.AssessmentReport, error) {
	var req domain.AssessmentRequest
	if err := json.Unmarshal(raw.Value, &req); err != nil {
		return domain.AssessmentReport{}, fmt.Errorf("%w: %v", errDecode, err)
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	start := time.Now()
	results, err := sim.Simulate(req.Segments, req.Vehicle, req.Environment, req.Driver)
	if err != nil {
		return domain.AssessmentReport{}, fmt.Errorf("assess road %q: %w", req.RoadName, err)
	}
	a.metrics.SimulationDuration.Observe(time.Since(start).Seconds())
	a.metrics.SegmentsPerRequest.Observe(float64(len(req.Segments)))
	for _, r := range results {
		a.metrics.RiskBandTotal.WithLabelValues(string(r.Band)).Inc()
	}

	topN := req.TopN
	if topN <= 0 {
		topN = a.topN
	}

	return domain.AssessmentReport{
		ID:              req.ID,
		RoadName:        req.RoadName,
		GeneratedAt:     domain.Now(),
		VehicleClass:    req.Vehicle.Class,
		Weather:         req.Environment.Weather,
		Results:         results,
		Recommendations: advisory.Recommend(results),
		TopDangerous:    advisory.DangerZones(results, topN),
		Stats:           advisory.Stats(results),
		FinalBrakeTempC: sim.FinalBrakeTemp(results),
	}, nil
}

// errorReason buckets an assessment error for the failure counter.
func errorReason(err error) string {
	switch {
	case errors.Is(err, errDecode):
		return "decode"
	case errors.Is(err, domain.ErrEmptySegments),
		errors.Is(err, domain.ErrNonPositiveMass),
		errors.Is(err, domain.ErrNonPositiveDimension),
		errors.Is(err, domain.ErrOutOfRangeSpeed),
		errors.Is(err, domain.ErrUnorderedSegments),
		errors.Is(err, domain.ErrInvalidEnumeration):
		return "validation"
	default:
		return "internal"
	}
}

// FanOutLoader delivers each batch to every underlying loader. Failures are
// joined so the batch retries as a unit; downstream sinks must tolerate
// redelivery.
type FanOutLoader struct {
	loaders []BatchLoader
}

// NewFanOutLoader wraps the given loaders. Nil entries are skipped, so an
// optional sink can be wired conditionally.
func NewFanOutLoader(loaders ...BatchLoader) *FanOutLoader {
	f := &FanOutLoader{}
	for _, l := range loaders {
		if l != nil {
			f.loaders = append(f.loaders, l)
		}
	}
	return f
}

func (f *FanOutLoader) LoadBatch(ctx context.Context, reports []domain.AssessmentReport) error {
	var errs []error
	for _, l := range f.loaders {
		if err := l.LoadBatch(ctx, reports); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
