package advisory

import (
	"testing"

	"github.com/couchcryptid/road-risk-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopDangerous_OrderAndTieBreak(t *testing.T) {
	results := []domain.SegmentRiskResult{
		result(1, 0.1, domain.BandLow),
		result(2, 0.9, domain.BandCritical),
		result(3, 0.5, domain.BandHigh),
		result(4, 0.9, domain.BandCritical),
		result(5, 0.3, domain.BandMedium),
	}

	top := TopDangerous(results, 2)
	require.Len(t, top, 2)
	assert.Equal(t, 2, top[0].SegmentIndex, "equal scores rank by lower index first")
	assert.Equal(t, 4, top[1].SegmentIndex)

	// The input order must survive the ranking.
	assert.Equal(t, 1, results[0].SegmentIndex)
	assert.Equal(t, 0.1, results[0].Overall)
}

func TestTopDangerous_ClampsAndRejectsDegenerateN(t *testing.T) {
	results := []domain.SegmentRiskResult{
		result(1, 0.4, domain.BandHigh),
		result(2, 0.6, domain.BandExtreme),
	}

	assert.Len(t, TopDangerous(results, 10), 2)
	assert.Nil(t, TopDangerous(results, 0))
	assert.Nil(t, TopDangerous(results, -3))
	assert.Nil(t, TopDangerous(nil, 5))
}

func TestDangerZones_CarriesReasons(t *testing.T) {
	r := result(7, 0.9, domain.BandCritical)
	r.BrakeRisk = 0.8
	r.BrakeTempC = 310
	r.SlopePct = -30

	zones := DangerZones([]domain.SegmentRiskResult{r}, 1)
	require.Len(t, zones, 1)
	assert.Equal(t, 7, zones[0].SegmentIndex)
	assert.Contains(t, zones[0].Reasons, "brake failure risk (310°C)")
	assert.Contains(t, zones[0].Reasons, "extreme slope (-30.0%)")
}

func TestDangerReasons_FallbackWhenNothingStandsOut(t *testing.T) {
	r := result(1, 0.7, domain.BandExtreme)
	assert.Equal(t, "multiple factors", DangerReasons(r))
}

func TestDangerReasons_ListsEachHazard(t *testing.T) {
	r := result(2, 0.95, domain.BandCritical)
	r.CliffFallRisk = 0.7
	r.LandslideRisk = 0.8
	r.StabilityRisk = 0.65

	reasons := DangerReasons(r)
	assert.Contains(t, reasons, "high cliff fall risk")
	assert.Contains(t, reasons, "landslide prone")
	assert.Contains(t, reasons, "vehicle stability issues")
}

func TestStats_Aggregates(t *testing.T) {
	a := result(1, 0.2, domain.BandLow)
	b := result(2, 0.5, domain.BandHigh)
	b.BrakeTempC = 250
	b.CliffFallRisk = 0.6
	c := result(3, 0.9, domain.BandCritical)
	c.BrakeTempC = 320
	c.LandslideRisk = 0.7

	stats := Stats([]domain.SegmentRiskResult{a, b, c})

	assert.Equal(t, 3, stats.TotalSegments)
	assert.Equal(t, 1, stats.BandCounts[domain.BandLow])
	assert.Equal(t, 1, stats.BandCounts[domain.BandHigh])
	assert.Equal(t, 1, stats.BandCounts[domain.BandCritical])
	assert.Equal(t, 2, stats.HighOrWorseCount)
	assert.InDelta(t, (0.2+0.5+0.9)/3, stats.AverageOverall, 1e-9)
	assert.Equal(t, 0.9, stats.MaxOverall)
	assert.Equal(t, 3, stats.MaxOverallSegment)
	assert.Equal(t, 320.0, stats.MaxBrakeTempC)
	assert.Equal(t, 2, stats.BrakeWarningCount)
	assert.Equal(t, 1, stats.CliffZoneCount)
	assert.Equal(t, 1, stats.LandslideZoneCount)
}

func TestStats_Empty(t *testing.T) {
	stats := Stats(nil)
	assert.Equal(t, 0, stats.TotalSegments)
	assert.Equal(t, 0.0, stats.AverageOverall)
	assert.NotNil(t, stats.BandCounts)
}
