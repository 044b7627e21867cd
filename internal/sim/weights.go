package sim

import (
	"fmt"
	"math"
)

// StabilityWeights defines the relative importance of the five stability
// sub-scores. All weights must sum to 1.0 (±0.001 tolerance).
type StabilityWeights struct {
	Lateral      float64
	Longitudinal float64
	Clearance    float64
	Tipping      float64
	Friction     float64
}

// DefaultStabilityWeights returns the calibrated stability weight distribution.
func DefaultStabilityWeights() StabilityWeights {
	return StabilityWeights{
		Lateral:      0.30,
		Longitudinal: 0.25,
		Clearance:    0.20,
		Tipping:      0.15,
		Friction:     0.10,
	}
}

// Sum returns the total of all weights.
func (w StabilityWeights) Sum() float64 {
	return w.Lateral + w.Longitudinal + w.Clearance + w.Tipping + w.Friction
}

// Validate checks that weights sum to 1.0 and none are negative.
func (w StabilityWeights) Validate() error {
	return validateWeightSum(w.Sum(), []float64{w.Lateral, w.Longitudinal, w.Clearance, w.Tipping, w.Friction})
}

// FusionWeights defines how the four hazard components combine into the
// overall risk value.
type FusionWeights struct {
	Stability float64
	Brake     float64
	CliffFall float64
	Landslide float64
}

// DefaultFusionWeights returns the calibrated fusion weight distribution.
// Brake failure carries the largest share: it is the one hazard that is
// irreversible once underway mid-descent.
func DefaultFusionWeights() FusionWeights {
	return FusionWeights{
		Stability: 0.25,
		Brake:     0.30,
		CliffFall: 0.25,
		Landslide: 0.20,
	}
}

// Sum returns the total of all weights.
func (w FusionWeights) Sum() float64 {
	return w.Stability + w.Brake + w.CliffFall + w.Landslide
}

// Validate checks that weights sum to 1.0 and none are negative.
func (w FusionWeights) Validate() error {
	return validateWeightSum(w.Sum(), []float64{w.Stability, w.Brake, w.CliffFall, w.Landslide})
}

// LandslideWeights defines the relative importance of the landslide factors.
type LandslideWeights struct {
	Slope      float64
	Soil       float64
	Rainfall   float64
	Vegetation float64
}

// DefaultLandslideWeights returns the calibrated landslide weight distribution.
func DefaultLandslideWeights() LandslideWeights {
	return LandslideWeights{
		Slope:      0.35,
		Soil:       0.30,
		Rainfall:   0.25,
		Vegetation: 0.10,
	}
}

// Sum returns the total of all weights.
func (w LandslideWeights) Sum() float64 {
	return w.Slope + w.Soil + w.Rainfall + w.Vegetation
}

// Validate checks that weights sum to 1.0 and none are negative.
func (w LandslideWeights) Validate() error {
	return validateWeightSum(w.Sum(), []float64{w.Slope, w.Soil, w.Rainfall, w.Vegetation})
}

func validateWeightSum(sum float64, weights []float64) error {
	if math.Abs(sum-1.0) > 0.001 {
		return fmt.Errorf("weights sum to %.4f, must sum to 1.0", sum)
	}
	for _, v := range weights {
		if v < 0 {
			return fmt.Errorf("negative weight: %f", v)
		}
	}
	return nil
}

// clamp01 bounds a score to [0,1]. Every sub-score is clamped before
// weighting and every weighted sum is clamped after.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
