package sim

import "github.com/couchcryptid/road-risk-service/internal/domain"

// Behavior multipliers compose multiplicatively; the fused score is clamped
// afterwards, so a compounding product saturates at 1 rather than wrapping.
const (
	nightFactor          = 1.15
	overspeedingFactor   = 1.25
	poorVisibilityDriver = 1.20
	noviceFactor         = 1.30
	expertFactor         = 0.90
)

// Classification band lower bounds (inclusive).
const (
	mediumBandMin   = 0.25
	highBandMin     = 0.40
	extremeBandMin  = 0.60
	criticalBandMin = 0.80
)

// ComponentScores carries the four per-segment hazard scores into fusion.
type ComponentScores struct {
	Stability float64
	Brake     float64
	CliffFall float64
	Landslide float64
}

// BehaviorMultiplier builds the compounding driver-behavior factor. Each
// adverse condition contributes an independent multiplicative penalty;
// expert experience contributes a discount. The product is always > 0.
func BehaviorMultiplier(driver domain.DriverProfile) float64 {
	m := 1.0
	if driver.Night {
		m *= nightFactor
	}
	if driver.Overspeeding {
		m *= overspeedingFactor
	}
	if driver.PoorVisibility {
		m *= poorVisibilityDriver
	}
	switch driver.Experience {
	case domain.ExperienceNovice:
		m *= noviceFactor
	case domain.ExperienceExpert:
		m *= expertFactor
	}
	return m
}

// Fuse combines the four hazard components and the behavior multiplier into
// one overall risk value in [0,1]. Saturating: values that would exceed 1
// report exactly 1.
func Fuse(c ComponentScores, multiplier float64) float64 {
	w := DefaultFusionWeights()
	base := w.Stability*clamp01(c.Stability) +
		w.Brake*clamp01(c.Brake) +
		w.CliffFall*clamp01(c.CliffFall) +
		w.Landslide*clamp01(c.Landslide)
	return clamp01(base * multiplier)
}

// Classify maps an overall risk value to its band.
func Classify(overall float64) domain.RiskBand {
	switch {
	case overall >= criticalBandMin:
		return domain.BandCritical
	case overall >= extremeBandMin:
		return domain.BandExtreme
	case overall >= highBandMin:
		return domain.BandHigh
	case overall >= mediumBandMin:
		return domain.BandMedium
	default:
		return domain.BandLow
	}
}
