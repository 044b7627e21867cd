package sim

import (
	"math"

	"github.com/couchcryptid/road-risk-service/internal/domain"
)

const (
	// A road wider than this leaves a comfortable margin to the edge.
	cliffSafeWidthM = 7.0

	// Guardrails cut cliff-fall risk multiplicatively; a flagged cliff edge
	// and poor visibility raise it.
	guardrailFactor      = 0.55
	cliffEdgeFactor      = 1.6
	poorVisibilityFactor = 1.3

	// Below this sight distance the segment counts as poor visibility.
	poorVisibilityDistanceM = 80.0

	// Landslide slope risk is normalized against a 40% grade.
	landslideSlopeNormPct = 40.0

	// Heavy rain saturates the ground regardless of the metered intensity.
	heavyRainFloor = 0.9
)

// CliffFall scores the risk of leaving the road over the edge, in [0,1].
// The baseline grows with curve sharpness and shrinking width margin; the
// cliff flag and poor visibility amplify it, a guardrail damps it.
func CliffFall(seg domain.RoadSegment, env domain.EnvironmentCondition, driver domain.DriverProfile) float64 {
	widthRisk := 1.0
	if seg.WidthM > 0 {
		widthRisk = clamp01(1 - seg.WidthM/cliffSafeWidthM)
	}

	risk := 0.5*clamp01(seg.CurveSharpness) + 0.5*widthRisk

	if seg.CliffEdge {
		risk *= cliffEdgeFactor
	}
	if poorVisibility(env, driver) {
		risk *= poorVisibilityFactor
	}
	if seg.Guardrail {
		risk *= guardrailFactor
	}

	return clamp01(risk)
}

// poorVisibility reports whether sight conditions are degraded, from either
// the environment (fog, short sight distance) or the driver situation.
func poorVisibility(env domain.EnvironmentCondition, driver domain.DriverProfile) bool {
	if driver.Night || driver.PoorVisibility {
		return true
	}
	if env.Weather == domain.WeatherFoggy {
		return true
	}
	return env.VisibilityM > 0 && env.VisibilityM < poorVisibilityDistanceM
}

// Landslide scores slope-failure risk for one segment, in [0,1]: a weighted
// sum of grade, soil susceptibility, rainfall saturation, and (inverse)
// vegetation anchoring.
func Landslide(seg domain.RoadSegment, env domain.EnvironmentCondition) float64 {
	w := DefaultLandslideWeights()

	slope := clamp01(math.Abs(seg.SlopePct) / landslideSlopeNormPct)
	vegetation := clamp01(1 - seg.VegetationCover)

	return clamp01(w.Slope*slope +
		w.Soil*soilFactor(seg.Soil) +
		w.Rainfall*rainfallFactor(env) +
		w.Vegetation*vegetation)
}

// soilFactor maps soil classification to landslide susceptibility.
func soilFactor(soil domain.SoilType) float64 {
	switch soil {
	case domain.SoilRocky:
		return 0.3
	case domain.SoilLoose:
		return 0.9
	default:
		return 0.6
	}
}

// rainfallFactor maps rainfall intensity to ground saturation risk, with a
// floor under heavy-rain conditions where metering tends to lag the storm.
func rainfallFactor(env domain.EnvironmentCondition) float64 {
	var f float64
	switch {
	case env.RainfallMM < 25:
		f = 0.1
	case env.RainfallMM < 75:
		f = 0.4
	case env.RainfallMM < 150:
		f = 0.7
	default:
		f = 1.0
	}
	if env.Weather == domain.WeatherHeavyRain && f < heavyRainFloor {
		f = heavyRainFloor
	}
	return f
}
