// Package advisory derives prioritized, costed action items and rankings
// from a completed simulation result sequence. Everything here is stateless
// and deterministic: the same results always produce the same
// recommendations in the same order.
package advisory

import (
	"fmt"

	"github.com/couchcryptid/road-risk-service/internal/domain"
)

const (
	// A segment earns a recommendation when its overall score or any single
	// hazard component reaches this threshold.
	actionThreshold = 0.60

	// Two hazard components closer than this are treated as tied; ties
	// resolve by fixed precedence (brake > cliff > landslide > stability,
	// because brake failure is catastrophic and irreversible mid-descent).
	dominanceEpsilon = 0.01
)

// hazardKind identifies a dominant hazard component. Declaration order is
// tie-break precedence.
type hazardKind int

const (
	hazardBrake hazardKind = iota
	hazardCliff
	hazardLandslide
	hazardStability
)

func (h hazardKind) String() string {
	switch h {
	case hazardBrake:
		return "brake failure"
	case hazardCliff:
		return "cliff fall"
	case hazardLandslide:
		return "landslide"
	default:
		return "vehicle stability"
	}
}

// urgency splits classification bands into the two response tiers the
// decision table distinguishes.
type urgency int

const (
	urgencyImmediate urgency = iota // critical and extreme bands
	urgencyElevated                 // high and medium bands
)

// actionSpec is one cell of the decision table.
type actionSpec struct {
	category domain.RecommendationCategory
	action   string
}

// decisionTable maps (dominant hazard, urgency tier) to the intervention.
// Kept as data rather than branching so the policy is auditable in one place.
var decisionTable = map[hazardKind]map[urgency]actionSpec{
	hazardBrake: {
		urgencyImmediate: {domain.CategoryInfrastructure, "Install emergency escape ramp"},
		urgencyElevated:  {domain.CategoryMonitoring, "Set up brake temperature check station before descent"},
	},
	hazardCliff: {
		urgencyImmediate: {domain.CategoryInfrastructure, "Install or upgrade guardrails"},
		urgencyElevated:  {domain.CategorySignage, "Install cliff edge warning signs"},
	},
	hazardLandslide: {
		urgencyImmediate: {domain.CategoryMonitoring, "Install real-time landslide monitoring"},
		urgencyElevated:  {domain.CategoryTrafficManagement, "Adopt closure protocol during heavy rain"},
	},
	hazardStability: {
		urgencyImmediate: {domain.CategorySignage, "Install curve warning signs with speed advisory"},
		urgencyElevated:  {domain.CategoryTrafficManagement, "Enforce reduced speed limit"},
	},
}

// costEntry is the fixed cost range and implementation timeframe per category.
type costEntry struct {
	costRange string
	timeframe string
}

var costTable = map[domain.RecommendationCategory]costEntry{
	domain.CategoryInfrastructure:    {"High (₹20-80 lakhs)", "3-6 months"},
	domain.CategorySignage:           {"Low (₹30,000-1 lakh)", "1-2 weeks"},
	domain.CategoryTrafficManagement: {"Low (₹20,000-1 lakh)", "Immediate"},
	domain.CategoryMonitoring:        {"Medium (₹10-20 lakhs)", "1-2 months"},
}

// Recommend derives the full recommendation set for a completed run:
// per-segment items for every triggered segment in index order, followed by
// road-level items driven by aggregate statistics.
func Recommend(results []domain.SegmentRiskResult) []domain.Recommendation {
	recs := make([]domain.Recommendation, 0, len(results))

	for _, r := range results {
		if rec, ok := segmentRecommendation(r); ok {
			recs = append(recs, rec)
		}
	}

	return append(recs, roadLevelRecommendations(Stats(results))...)
}

// segmentRecommendation builds the action item for one segment, if any.
// Low-band segments never trigger regardless of component scores.
func segmentRecommendation(r domain.SegmentRiskResult) (domain.Recommendation, bool) {
	priority := priorityForBand(r.Band)
	if priority == "" {
		return domain.Recommendation{}, false
	}
	if !triggered(r) {
		return domain.Recommendation{}, false
	}

	dominant, score := dominantHazard(r)
	spec := decisionTable[dominant][urgencyForBand(r.Band)]
	cost := costTable[spec.category]

	rationale := fmt.Sprintf("%s risk %.2f on segment %d", dominant, score, r.SegmentIndex)
	if dominant == hazardBrake {
		rationale = fmt.Sprintf("%s risk %.2f on segment %d (brake temp %.0f°C)",
			dominant, score, r.SegmentIndex, r.BrakeTempC)
	}

	return domain.Recommendation{
		SegmentIndex: r.SegmentIndex,
		Category:     spec.category,
		Priority:     priority,
		Action:       spec.action,
		Rationale:    rationale,
		CostRange:    cost.costRange,
		Timeframe:    cost.timeframe,
	}, true
}

func triggered(r domain.SegmentRiskResult) bool {
	return r.Overall >= actionThreshold ||
		r.BrakeRisk >= actionThreshold ||
		r.CliffFallRisk >= actionThreshold ||
		r.LandslideRisk >= actionThreshold ||
		r.StabilityRisk >= actionThreshold
}

// dominantHazard returns the highest-scoring hazard component, resolving
// near-ties by fixed precedence.
func dominantHazard(r domain.SegmentRiskResult) (hazardKind, float64) {
	scores := [...]float64{
		hazardBrake:     r.BrakeRisk,
		hazardCliff:     r.CliffFallRisk,
		hazardLandslide: r.LandslideRisk,
		hazardStability: r.StabilityRisk,
	}

	max := scores[0]
	for _, s := range scores[1:] {
		if s > max {
			max = s
		}
	}

	// First kind within epsilon of the maximum wins; iteration order is
	// precedence order.
	for kind, s := range scores {
		if max-s <= dominanceEpsilon {
			return hazardKind(kind), s
		}
	}
	return hazardBrake, max
}

func priorityForBand(band domain.RiskBand) domain.Priority {
	switch band {
	case domain.BandCritical, domain.BandExtreme:
		return domain.PriorityCritical
	case domain.BandHigh:
		return domain.PriorityHigh
	case domain.BandMedium:
		return domain.PriorityMedium
	default:
		return ""
	}
}

func urgencyForBand(band domain.RiskBand) urgency {
	if band == domain.BandCritical || band == domain.BandExtreme {
		return urgencyImmediate
	}
	return urgencyElevated
}

// Road-level trigger thresholds.
const (
	highShareThreshold    = 0.30 // fraction of segments at High or worse
	brakeHotspotMin       = 3    // segments above brake warning temperature
	criticalSegmentMin    = 5    // critical-band segments for a full audit
	cliffZoneProgramMin   = 10   // cliff zones for a phased guardrail program
	landslideClosureMin   = 5    // landslide zones for a weather closure system
)

// roadLevelRecommendations derives system-wide items from aggregate stats.
func roadLevelRecommendations(stats domain.RoadStats) []domain.Recommendation {
	if stats.TotalSegments == 0 {
		return nil
	}

	var recs []domain.Recommendation
	add := func(category domain.RecommendationCategory, priority domain.Priority, action, rationale string) {
		cost := costTable[category]
		recs = append(recs, domain.Recommendation{
			SegmentIndex: domain.RoadLevelTarget,
			Category:     category,
			Priority:     priority,
			Action:       action,
			Rationale:    rationale,
			CostRange:    cost.costRange,
			Timeframe:    cost.timeframe,
		})
	}

	if stats.BandCounts[domain.BandCritical] > criticalSegmentMin {
		add(domain.CategoryInfrastructure, domain.PriorityCritical,
			"Commission comprehensive road safety audit and immediate intervention",
			fmt.Sprintf("%d critical danger zones identified", stats.BandCounts[domain.BandCritical]))
	}

	if float64(stats.HighOrWorseCount)/float64(stats.TotalSegments) > highShareThreshold {
		add(domain.CategoryTrafficManagement, domain.PriorityHigh,
			"Impose road-wide speed limit",
			fmt.Sprintf("%d of %d segments at high risk or worse", stats.HighOrWorseCount, stats.TotalSegments))
	}

	if stats.BrakeWarningCount >= brakeHotspotMin {
		add(domain.CategoryInfrastructure, domain.PriorityHigh,
			"Install emergency escape ramps at strategic locations",
			fmt.Sprintf("%d brake overheating zones (max %.0f°C)", stats.BrakeWarningCount, stats.MaxBrakeTempC))
	}

	if stats.CliffZoneCount > cliffZoneProgramMin {
		add(domain.CategoryInfrastructure, domain.PriorityCritical,
			"Run phased guardrail installation program across all cliff zones",
			fmt.Sprintf("%d segments with elevated cliff fall risk", stats.CliffZoneCount))
	}

	if stats.LandslideZoneCount > landslideClosureMin {
		add(domain.CategoryMonitoring, domain.PriorityHigh,
			"Deploy weather-based road closure system",
			fmt.Sprintf("%d landslide-prone segments", stats.LandslideZoneCount))
	}

	return recs
}
