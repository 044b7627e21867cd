package advisory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/couchcryptid/road-risk-service/internal/domain"
)

// Slope magnitude beyond which a segment is called out as extreme grade.
const extremeSlopePct = 25.0

// TopDangerous returns the n highest-risk segments, ordered by overall score
// descending with ties broken by ascending segment index. The input is not
// modified and the order is reproducible.
func TopDangerous(results []domain.SegmentRiskResult, n int) []domain.SegmentRiskResult {
	if n <= 0 || len(results) == 0 {
		return nil
	}

	ranked := make([]domain.SegmentRiskResult, len(results))
	copy(ranked, results)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Overall != ranked[j].Overall {
			return ranked[i].Overall > ranked[j].Overall
		}
		return ranked[i].SegmentIndex < ranked[j].SegmentIndex
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// DangerZones wraps the top-n ranking with human-readable reasons for each
// entry, for report consumers.
func DangerZones(results []domain.SegmentRiskResult, n int) []domain.DangerZone {
	top := TopDangerous(results, n)
	zones := make([]domain.DangerZone, len(top))
	for i, r := range top {
		zones[i] = domain.DangerZone{SegmentRiskResult: r, Reasons: DangerReasons(r)}
	}
	return zones
}

// DangerReasons summarizes which hazards make a segment dangerous.
func DangerReasons(r domain.SegmentRiskResult) string {
	var reasons []string
	if r.BrakeRisk > actionThreshold {
		reasons = append(reasons, fmt.Sprintf("brake failure risk (%.0f°C)", r.BrakeTempC))
	}
	if r.CliffFallRisk > actionThreshold {
		reasons = append(reasons, "high cliff fall risk")
	}
	if r.LandslideRisk > actionThreshold {
		reasons = append(reasons, "landslide prone")
	}
	if r.StabilityRisk > actionThreshold {
		reasons = append(reasons, "vehicle stability issues")
	}
	if r.SlopePct < -extremeSlopePct || r.SlopePct > extremeSlopePct {
		reasons = append(reasons, fmt.Sprintf("extreme slope (%.1f%%)", r.SlopePct))
	}
	if len(reasons) == 0 {
		return "multiple factors"
	}
	return strings.Join(reasons, "; ")
}
