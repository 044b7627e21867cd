package advisory

import "github.com/couchcryptid/road-risk-service/internal/domain"

const (
	// Brake temperature above which a segment counts as an overheating zone.
	brakeWarningTempC = 200.0

	// Component score above which a segment counts as a cliff or landslide zone.
	zoneThreshold = 0.5
)

// Stats aggregates a completed result sequence into the road-level figures
// that drive system-wide recommendations and reporting.
func Stats(results []domain.SegmentRiskResult) domain.RoadStats {
	stats := domain.RoadStats{
		TotalSegments: len(results),
		BandCounts:    make(map[domain.RiskBand]int, 5),
	}
	if len(results) == 0 {
		return stats
	}

	var sum float64
	stats.MaxOverallSegment = results[0].SegmentIndex

	for _, r := range results {
		stats.BandCounts[r.Band]++
		sum += r.Overall

		if r.Overall > stats.MaxOverall {
			stats.MaxOverall = r.Overall
			stats.MaxOverallSegment = r.SegmentIndex
		}
		if r.BrakeTempC > stats.MaxBrakeTempC {
			stats.MaxBrakeTempC = r.BrakeTempC
		}
		if r.BrakeTempC > brakeWarningTempC {
			stats.BrakeWarningCount++
		}
		if r.CliffFallRisk > zoneThreshold {
			stats.CliffZoneCount++
		}
		if r.LandslideRisk > zoneThreshold {
			stats.LandslideZoneCount++
		}
		switch r.Band {
		case domain.BandHigh, domain.BandExtreme, domain.BandCritical:
			stats.HighOrWorseCount++
		}
	}

	stats.AverageOverall = sum / float64(len(results))
	return stats
}
