package domain

import (
	"errors"
	"fmt"
)

// Validation sentinels. Every simulation input is checked before any run
// state is created; a failed run returns no partial results because the brake
// temperature accumulator makes a truncated sequence meaningless.
var (
	ErrEmptySegments        = errors.New("empty segment sequence")
	ErrNonPositiveMass      = errors.New("non-positive vehicle mass")
	ErrNonPositiveDimension = errors.New("non-positive vehicle dimension")
	ErrOutOfRangeSpeed      = errors.New("target speed out of range")
	ErrUnorderedSegments    = errors.New("segment indices not strictly ascending")
	ErrInvalidEnumeration   = errors.New("invalid enumeration value")
)

// maxPlausibleSpeedKMH rejects obviously corrupt requests; no road vehicle in
// scope sustains more than this on a mountain road.
const maxPlausibleSpeedKMH = 200.0

// ValidateInputs checks a full set of simulation inputs. It returns the first
// violation found, wrapped so callers can match the sentinel with errors.Is.
func ValidateInputs(segments []RoadSegment, vehicle Vehicle, env EnvironmentCondition, driver DriverProfile) error {
	if len(segments) == 0 {
		return ErrEmptySegments
	}
	for i := 1; i < len(segments); i++ {
		if segments[i].Index <= segments[i-1].Index {
			return fmt.Errorf("segment %d after %d: %w", segments[i].Index, segments[i-1].Index, ErrUnorderedSegments)
		}
	}
	for _, seg := range segments {
		if !seg.Soil.Valid() {
			return fmt.Errorf("segment %d soil %q: %w", seg.Index, seg.Soil, ErrInvalidEnumeration)
		}
	}

	if vehicle.MassKG <= 0 {
		return fmt.Errorf("mass %.1f kg: %w", vehicle.MassKG, ErrNonPositiveMass)
	}
	if vehicle.WidthM <= 0 || vehicle.HeightM <= 0 || vehicle.CGHeightM <= 0 {
		return fmt.Errorf("vehicle dimensions %.2f x %.2f (cg %.2f): %w",
			vehicle.WidthM, vehicle.HeightM, vehicle.CGHeightM, ErrNonPositiveDimension)
	}
	if vehicle.BrakeMassKG <= 0 || vehicle.BrakeSpecificHeat <= 0 {
		return fmt.Errorf("brake assembly %.1f kg at %.0f J/(kg·°C): %w",
			vehicle.BrakeMassKG, vehicle.BrakeSpecificHeat, ErrNonPositiveDimension)
	}
	if !vehicle.Class.Valid() {
		return fmt.Errorf("vehicle class %q: %w", vehicle.Class, ErrInvalidEnumeration)
	}

	if !env.Weather.Valid() {
		return fmt.Errorf("weather %q: %w", env.Weather, ErrInvalidEnumeration)
	}

	if driver.TargetSpeedKMH <= 0 || driver.TargetSpeedKMH > maxPlausibleSpeedKMH {
		return fmt.Errorf("target speed %.1f km/h: %w", driver.TargetSpeedKMH, ErrOutOfRangeSpeed)
	}
	if !driver.Experience.Valid() {
		return fmt.Errorf("experience %q: %w", driver.Experience, ErrInvalidEnumeration)
	}

	return nil
}
