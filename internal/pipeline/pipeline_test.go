package pipeline_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/couchcryptid/road-risk-service/internal/domain"
	"github.com/couchcryptid/road-risk-service/internal/observability"
	"github.com/couchcryptid/road-risk-service/internal/pipeline"
	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockExtractor struct {
	batches [][]domain.RawRequest
	index   atomic.Int64
}

func (m *mockExtractor) ExtractBatch(ctx context.Context, _ int) ([]domain.RawRequest, error) {
	i := int(m.index.Add(1) - 1)
	if i >= len(m.batches) {
		// block until context cancelled to simulate waiting for messages
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return m.batches[i], nil
}

type mockLoader struct {
	loaded   []domain.AssessmentReport
	failures int
}

func (m *mockLoader) LoadBatch(_ context.Context, reports []domain.AssessmentReport) error {
	if m.failures > 0 {
		m.failures--
		return errors.New("sink unavailable")
	}
	m.loaded = append(m.loaded, reports...)
	return nil
}

func newTestMetrics() *observability.Metrics {
	// Fresh, unregistered metrics avoid "already registered" panics in tests.
	return observability.NewMetricsForTesting()
}

func newAssessor(t *testing.T) *pipeline.RiskAssessor {
	t.Helper()
	return pipeline.NewAssessor(slog.Default(), newTestMetrics(), 3)
}

// --- tests ---

func TestPipeline_Run_HappyPath(t *testing.T) {
	raw := makeRawRequest(t, "req-1")

	ext := &mockExtractor{batches: [][]domain.RawRequest{{raw}}}
	ldr := &mockLoader{}
	metrics := newTestMetrics()

	p := pipeline.New(ext, newAssessor(t), ldr, slog.Default(), metrics, 10)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	require.Len(t, ldr.loaded, 1)
	assert.Equal(t, "req-1", ldr.loaded[0].ID)
	assert.Len(t, ldr.loaded[0].Results, 3)
	assert.NoError(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_Run_ContextCancellation(t *testing.T) {
	ext := &mockExtractor{} // no batches, will block
	ldr := &mockLoader{}

	p := pipeline.New(ext, newAssessor(t), ldr, slog.Default(), newTestMetrics(), 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	err := p.Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, ldr.loaded)
}

func TestPipeline_Run_BadPayloadSkippedAndCommitted(t *testing.T) {
	committed := false
	raw := domain.RawRequest{
		Value: []byte("not json"),
		Topic: "road-assessment-requests",
		Commit: func(_ context.Context) error {
			committed = true
			return nil
		},
	}

	ext := &mockExtractor{batches: [][]domain.RawRequest{{raw}}}
	ldr := &mockLoader{}

	p := pipeline.New(ext, newAssessor(t), ldr, slog.Default(), newTestMetrics(), 10)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, ldr.loaded, "a malformed request never reaches the sink")
	assert.True(t, committed, "malformed requests are committed so they are not redelivered")
	assert.Error(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_Run_InvalidRoadSkipped(t *testing.T) {
	req := validRequest("req-2")
	req.Segments = nil // fails validation, not decoding
	data, err := json.Marshal(req)
	require.NoError(t, err)

	ext := &mockExtractor{batches: [][]domain.RawRequest{{{Key: []byte("req-2"), Value: data}}}}
	ldr := &mockLoader{}

	p := pipeline.New(ext, newAssessor(t), ldr, slog.Default(), newTestMetrics(), 10)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	require.NoError(t, p.Run(ctx))
	assert.Empty(t, ldr.loaded)
}

func TestPipeline_Run_CommitsAfterLoad(t *testing.T) {
	committed := false
	raw := makeRawRequest(t, "req-3")
	raw.Commit = func(_ context.Context) error {
		committed = true
		return nil
	}

	ext := &mockExtractor{batches: [][]domain.RawRequest{{raw}}}
	ldr := &mockLoader{}

	p := pipeline.New(ext, newAssessor(t), ldr, slog.Default(), newTestMetrics(), 10)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	require.NoError(t, p.Run(ctx))
	require.Len(t, ldr.loaded, 1)
	assert.True(t, committed)
}

func TestPipeline_Run_RetriesAfterLoadFailure(t *testing.T) {
	raw := makeRawRequest(t, "req-4")

	// Same batch is re-extracted after the sink rejects it once.
	ext := &mockExtractor{batches: [][]domain.RawRequest{{raw}, {raw}}}
	ldr := &mockLoader{failures: 1}

	p := pipeline.New(ext, newAssessor(t), ldr, slog.Default(), newTestMetrics(), 10)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, p.Run(ctx))
	require.Len(t, ldr.loaded, 1)
	assert.Equal(t, "req-4", ldr.loaded[0].ID)
}

func TestRiskAssessor_Assess(t *testing.T) {
	fakeClock := clockwork.NewFakeClockAt(time.Date(2026, time.August, 31, 15, 10, 0, 0, time.UTC))
	domain.SetClock(fakeClock)
	t.Cleanup(func() {
		domain.SetClock(nil)
	})

	report, err := newAssessor(t).Assess(context.Background(), makeRawRequest(t, "req-5"))
	require.NoError(t, err)

	assert.Equal(t, "req-5", report.ID)
	assert.Equal(t, "Kalka-Shimla NH-5", report.RoadName)
	assert.Equal(t, fakeClock.Now().UTC(), report.GeneratedAt)
	assert.Equal(t, domain.VehicleBus, report.VehicleClass)
	assert.Len(t, report.Results, 3)
	assert.Equal(t, 3, report.Stats.TotalSegments)
	assert.LessOrEqual(t, len(report.TopDangerous), 3)
	assert.Equal(t, report.Results[2].BrakeTempC, report.FinalBrakeTempC)
}

func TestRiskAssessor_Assess_GeneratesIDWhenMissing(t *testing.T) {
	req := validRequest("")
	data, err := json.Marshal(req)
	require.NoError(t, err)

	report, err := newAssessor(t).Assess(context.Background(), domain.RawRequest{Value: data})
	require.NoError(t, err)
	assert.NotEmpty(t, report.ID)
}

func TestRiskAssessor_Assess_Deterministic(t *testing.T) {
	raw := makeRawRequest(t, "req-6")
	assessor := newAssessor(t)

	first, err := assessor.Assess(context.Background(), raw)
	require.NoError(t, err)
	second, err := assessor.Assess(context.Background(), raw)
	require.NoError(t, err)

	if diff := cmp.Diff(first.Results, second.Results); diff != "" {
		t.Fatalf("results differ between runs (-first +second):\n%s", diff)
	}
}

func TestFanOutLoader(t *testing.T) {
	primary := &mockLoader{}
	secondary := &mockLoader{}
	fanout := pipeline.NewFanOutLoader(primary, nil, secondary)

	reports := []domain.AssessmentReport{{ID: "req-7"}}
	require.NoError(t, fanout.LoadBatch(context.Background(), reports))
	assert.Len(t, primary.loaded, 1)
	assert.Len(t, secondary.loaded, 1)

	// One failing sink fails the batch so it is retried as a unit.
	flaky := &mockLoader{failures: 1}
	fanout = pipeline.NewFanOutLoader(primary, flaky)
	assert.Error(t, fanout.LoadBatch(context.Background(), reports))
}

// --- helpers ---

func validRequest(id string) domain.AssessmentRequest {
	segments := make([]domain.RoadSegment, 3)
	for i := range segments {
		segments[i] = domain.RoadSegment{
			Index:           i + 1,
			DistanceKM:      0.1 * float64(i+1),
			ElevationM:      2000 - 30*float64(i+1),
			SlopePct:        -30,
			CurveSharpness:  0.5,
			WidthM:          6,
			Guardrail:       true,
			Soil:            domain.SoilMixed,
			VegetationCover: 0.4,
		}
	}
	return domain.AssessmentRequest{
		ID:       id,
		RoadName: "Kalka-Shimla NH-5",
		Segments: segments,
		Vehicle: domain.Vehicle{
			Class:             domain.VehicleBus,
			MassKG:            12000,
			WidthM:            2.5,
			HeightM:           3.2,
			CGHeightM:         1.8,
			BrakeMassKG:       50,
			BrakeSpecificHeat: 500,
			RatedBrakeKW:      150,
		},
		Environment: domain.EnvironmentCondition{
			Weather:      domain.WeatherNormal,
			AmbientTempC: 18,
			Humidity:     0.6,
			VisibilityM:  150,
			Friction:     0.8,
		},
		Driver: domain.DriverProfile{
			TargetSpeedKMH: 40,
			Experience:     domain.ExperienceMedium,
		},
	}
}

func makeRawRequest(t *testing.T, id string) domain.RawRequest {
	t.Helper()
	data, err := json.Marshal(validRequest(id))
	require.NoError(t, err)
	return domain.RawRequest{
		Key:   []byte(id),
		Value: data,
	}
}
