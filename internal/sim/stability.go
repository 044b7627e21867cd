package sim

import (
	"math"

	"github.com/couchcryptid/road-risk-service/internal/domain"
)

const (
	gravityMS2 = 9.81

	// Curve sharpness maps linearly onto an effective curve radius:
	// 0 (straight) → 300 m, 1 (hairpin) → 15 m.
	minCurveRadiusM = 15.0
	maxCurveRadiusM = 300.0

	// Lateral risk saturates at 1 once speed reaches 1.5× the
	// friction-derived safe speed for the segment's curvature.
	saturationSpeedRatio = 1.5

	// Longitudinal descent risk is normalized against a 35% slope and the
	// mass of a fully loaded bus.
	maxSlopeNormPct = 35.0
	referenceMassKG = 12000.0

	// Clearance risk is zero while the vehicle occupies at most 60% of the
	// road width.
	clearanceFreeShare = 0.60

	// Lateral acceleration at which a high-CG vehicle is considered at the
	// tipping limit (g/2).
	tipAccelRefMS2 = gravityMS2 / 2

	// Friction floor guards the safe-speed derivation against degenerate
	// input; anything lower than packed snow is treated as packed snow.
	minFriction = 0.1
)

func kmhToMS(v float64) float64 { return v / 3.6 }

// curveRadiusM converts a curve sharpness fraction to an effective radius.
func curveRadiusM(sharpness float64) float64 {
	s := clamp01(sharpness)
	return maxCurveRadiusM - s*(maxCurveRadiusM-minCurveRadiusM)
}

// SafeSpeedKMH is the friction-derived safe speed bound for a segment's
// curvature: the speed at which lateral acceleration equals the available
// surface grip (v = sqrt(μ·g·r)).
func SafeSpeedKMH(seg domain.RoadSegment, env domain.EnvironmentCondition) float64 {
	mu := env.Friction
	if mu < minFriction {
		mu = minFriction
	}
	return math.Sqrt(mu*gravityMS2*curveRadiusM(seg.CurveSharpness)) * 3.6
}

// Stability scores a vehicle's loss-of-control risk on one segment, in [0,1].
// Pure and segment-local: no state is carried between calls.
func Stability(seg domain.RoadSegment, vehicle domain.Vehicle, env domain.EnvironmentCondition, speedKMH float64) float64 {
	w := DefaultStabilityWeights()
	v := kmhToMS(speedKMH)
	vSafe := kmhToMS(SafeSpeedKMH(seg, env))

	// Lateral: quadratic in speed relative to the safe bound, saturating at
	// saturationSpeedRatio times the bound. Sharper curves shrink the bound,
	// so sharpness raises the ratio for the same speed.
	ratio := v / vSafe
	lateral := clamp01((ratio * ratio) / (saturationSpeedRatio * saturationSpeedRatio))

	// Longitudinal: descent grade scaled by vehicle mass. Heavier vehicles
	// amplify the same grade.
	longitudinal := clamp01((math.Abs(seg.SlopePct) / maxSlopeNormPct) * (vehicle.MassKG / referenceMassKG))

	// Clearance: share of road width the vehicle occupies beyond the free
	// share. Degenerate road width means maximal clearance risk.
	var clearance float64
	if seg.WidthM <= 0 {
		clearance = 1
	} else {
		occupancy := vehicle.WidthM / seg.WidthM
		clearance = clamp01((occupancy - clearanceFreeShare) / (1 - clearanceFreeShare))
	}

	// Tipping: CG height over track width, scaled by the lateral
	// acceleration the curve imposes at this speed.
	latAccel := v * v / curveRadiusM(seg.CurveSharpness)
	tipping := clamp01((vehicle.CGHeightM / vehicle.WidthM) * (latAccel / tipAccelRefMS2))

	friction := clamp01(1 - env.Friction)

	return clamp01(w.Lateral*lateral +
		w.Longitudinal*longitudinal +
		w.Clearance*clearance +
		w.Tipping*tipping +
		w.Friction*friction)
}
