package sim

import (
	"testing"

	"github.com/couchcryptid/road-risk-service/internal/advisory"
	"github.com/couchcryptid/road-risk-service/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// steepCliffRoad is a sustained 50 m/segment descent with sharp curves along
// an unprotected cliff edge on loose soil.
func steepCliffRoad(n int) []domain.RoadSegment {
	segments := make([]domain.RoadSegment, n)
	for i := range segments {
		segments[i] = domain.RoadSegment{
			Index:           i + 1,
			DistanceKM:      0.1 * float64(i+1),
			ElevationM:      2500 - 50*float64(i+1),
			SlopePct:        -50,
			CurveSharpness:  0.8,
			WidthM:          4,
			CliffEdge:       true,
			Guardrail:       false,
			Soil:            domain.SoilLoose,
			VegetationCover: 0.1,
		}
	}
	return segments
}

func monsoonStorm() domain.EnvironmentCondition {
	return domain.EnvironmentCondition{
		Weather:      domain.WeatherHeavyRain,
		AmbientTempC: 15,
		Humidity:     0.95,
		RainfallMM:   180,
		VisibilityM:  40,
		Friction:     0.45,
	}
}

func recklessNovice() domain.DriverProfile {
	return domain.DriverProfile{
		TargetSpeedKMH: 55,
		Night:          true,
		Overspeeding:   true,
		Experience:     domain.ExperienceNovice,
	}
}

func TestSimulate_Deterministic(t *testing.T) {
	segments := steepCliffRoad(10)

	first, err := Simulate(segments, testBus(), monsoonStorm(), recklessNovice())
	require.NoError(t, err)
	second, err := Simulate(segments, testBus(), monsoonStorm(), recklessNovice())
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("identical inputs produced different results (-first +second):\n%s", diff)
	}
}

func TestSimulate_AllScoresInUnitRange(t *testing.T) {
	// A mixed profile: flat stretch, brutal descent, then a climb.
	segments := makeDescent(3, 0)
	for i, drop := range []float64{60, 60, 40, -20, -20} {
		seg := domain.RoadSegment{
			Index:           len(segments) + 1,
			DistanceKM:      segments[len(segments)-1].DistanceKM + 0.1,
			ElevationM:      segments[len(segments)-1].ElevationM - drop,
			SlopePct:        -drop,
			CurveSharpness:  float64(i) * 0.22,
			WidthM:          4 + float64(i),
			CliffEdge:       i%2 == 0,
			Soil:            domain.SoilMixed,
			VegetationCover: 0.4,
		}
		segments = append(segments, seg)
	}

	results, err := Simulate(segments, testBus(), monsoonStorm(), recklessNovice())
	require.NoError(t, err)
	require.Len(t, results, len(segments))

	for _, r := range results {
		for name, score := range map[string]float64{
			"stability": r.StabilityRisk,
			"brake":     r.BrakeRisk,
			"cliff":     r.CliffFallRisk,
			"landslide": r.LandslideRisk,
			"overall":   r.Overall,
		} {
			assert.GreaterOrEqual(t, score, 0.0, "segment %d %s", r.SegmentIndex, name)
			assert.LessOrEqual(t, score, 1.0, "segment %d %s", r.SegmentIndex, name)
		}
	}
}

func TestSimulate_BenignRoadStaysLow(t *testing.T) {
	segments := []domain.RoadSegment{
		{Index: 1, DistanceKM: 0.5, ElevationM: 1000, SlopePct: -2, CurveSharpness: 0.1, WidthM: 9, Guardrail: true, Soil: domain.SoilRocky, VegetationCover: 0.8},
		{Index: 2, DistanceKM: 1.0, ElevationM: 990, SlopePct: -2, CurveSharpness: 0.1, WidthM: 9, Guardrail: true, Soil: domain.SoilRocky, VegetationCover: 0.8},
	}
	cautious := domain.DriverProfile{TargetSpeedKMH: 30, Experience: domain.ExperienceExpert}

	results, err := Simulate(segments, testBus(), dryWeather(), cautious)
	require.NoError(t, err)

	for _, r := range results {
		assert.Equal(t, domain.BandLow, r.Band, "segment %d overall %.3f", r.SegmentIndex, r.Overall)
	}
}

func TestSimulate_WorstCaseGoesCritical(t *testing.T) {
	results, err := Simulate(steepCliffRoad(10), testBus(), monsoonStorm(), recklessNovice())
	require.NoError(t, err)

	last := results[len(results)-1]
	assert.Equal(t, domain.BandCritical, last.Band)
	assert.Equal(t, 1.0, last.BrakeRisk, "sustained descent must saturate brake risk")
	assert.Greater(t, last.BrakeTempC, brakeFailureTempC)

	recs := advisory.Recommend(results)
	require.NotEmpty(t, recs)

	critical := 0
	for _, rec := range recs {
		if rec.Priority == domain.PriorityCritical {
			critical++
		}
	}
	assert.Greater(t, critical, 0, "a critical road must yield critical-priority actions")
}

func TestSimulate_RejectsInvalidInputsWithoutPartialResults(t *testing.T) {
	results, err := Simulate(nil, testBus(), dryWeather(), recklessNovice())
	assert.ErrorIs(t, err, domain.ErrEmptySegments)
	assert.Nil(t, results)

	unordered := steepCliffRoad(3)
	unordered[1].Index = 5
	unordered[2].Index = 4
	results, err = Simulate(unordered, testBus(), dryWeather(), recklessNovice())
	assert.ErrorIs(t, err, domain.ErrUnorderedSegments)
	assert.Nil(t, results)
}

func TestSimulate_DirectionMatters(t *testing.T) {
	downhill := steepCliffRoad(6)

	uphill := make([]domain.RoadSegment, len(downhill))
	for i := range downhill {
		uphill[i] = downhill[len(downhill)-1-i]
		uphill[i].Index = i + 1
		uphill[i].DistanceKM = downhill[i].DistanceKM
		uphill[i].SlopePct = -uphill[i].SlopePct
	}

	down, err := Simulate(downhill, testBus(), monsoonStorm(), recklessNovice())
	require.NoError(t, err)
	up, err := Simulate(uphill, testBus(), monsoonStorm(), recklessNovice())
	require.NoError(t, err)

	assert.Greater(t, FinalBrakeTemp(down), FinalBrakeTemp(up),
		"descending accumulates brake heat, climbing does not")
}
