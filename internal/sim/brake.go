package sim

import (
	"github.com/couchcryptid/road-risk-service/internal/domain"
)

const (
	// Share of dissipated descent energy that ends up in the brake assembly
	// as heat (the rest is shed to the airflow and drivetrain).
	heatTransferFactor = 0.35

	// Brake fade begins around 200°C; at 350°C failure is assumed.
	// Risk ramps linearly between the two.
	brakeWarningTempC = 200.0
	brakeFailureTempC = 350.0

	// Cooling on flat or ascending stretches, per kilometre travelled.
	coolingCPerKM = 40.0

	// Fallback segment length when cumulative distances are degenerate.
	defaultSegmentKM = 0.11
)

// BrakeReading is the thermal model's output for one segment.
type BrakeReading struct {
	TempC float64
	Risk  float64
}

// brakeAccumulator is the entire state of one thermal scan. It is created
// fresh per run and threaded through brakeStep explicitly, so independent
// runs never share state.
type brakeAccumulator struct {
	tempC float64
}

// runBrakeScan folds the thermal model over the segment sequence in
// traversal order. It returns one reading per segment plus the temperature
// after the final segment (useful for chained scenario reporting; the scan
// itself always starts at ambient).
func runBrakeScan(segments []domain.RoadSegment, vehicle domain.Vehicle, env domain.EnvironmentCondition, speedKMH float64) ([]BrakeReading, float64) {
	acc := brakeAccumulator{tempC: env.AmbientTempC}
	readings := make([]BrakeReading, len(segments))

	for i, seg := range segments {
		var prev *domain.RoadSegment
		if i > 0 {
			prev = &segments[i-1]
		}
		acc, readings[i] = brakeStep(acc, prev, seg, vehicle, env.AmbientTempC, speedKMH)
	}

	return readings, acc.tempC
}

// brakeStep advances the accumulator across one segment and produces its
// reading. prev is nil for the first segment, which therefore has no
// elevation delta and no heating.
func brakeStep(acc brakeAccumulator, prev *domain.RoadSegment, seg domain.RoadSegment, vehicle domain.Vehicle, ambientC, speedKMH float64) (brakeAccumulator, BrakeReading) {
	lengthKM := seg.DistanceKM
	elevationLossM := 0.0
	if prev != nil {
		lengthKM = seg.DistanceKM - prev.DistanceKM
		elevationLossM = prev.ElevationM - seg.ElevationM
	}
	if lengthKM <= 0 {
		lengthKM = defaultSegmentKM
	}

	if elevationLossM > 0 {
		// Descending: potential energy dissipated across the segment.
		energyJ := vehicle.MassKG * gravityMS2 * elevationLossM

		// The retarder/engine brake continuously absorbs up to its rated
		// capacity over the traversal time; only the remainder reaches the
		// friction brakes.
		traversalS := lengthKM / speedKMH * 3600
		absorbedJ := vehicle.RatedBrakeKW * 1000 * traversalS
		if toBrakes := energyJ - absorbedJ; toBrakes > 0 {
			acc.tempC += toBrakes * heatTransferFactor / (vehicle.BrakeMassKG * vehicle.BrakeSpecificHeat)
		}
	} else {
		// Flat or ascending: brakes shed heat with distance.
		acc.tempC -= coolingCPerKM * lengthKM
	}

	if acc.tempC < ambientC {
		acc.tempC = ambientC
	}

	return acc, BrakeReading{TempC: acc.tempC, Risk: brakeRisk(acc.tempC)}
}

// brakeRisk maps a brake temperature to a failure risk in [0,1]: zero up to
// the warning threshold, then linear to 1 at the failure threshold.
func brakeRisk(tempC float64) float64 {
	if tempC <= brakeWarningTempC {
		return 0
	}
	return clamp01((tempC - brakeWarningTempC) / (brakeFailureTempC - brakeWarningTempC))
}
