// Package domain models mountain (ghat) road profiles and the value records
// exchanged with the risk simulation.
//
// # Road profiles
//
// A road is an ordered, immutable sequence of [RoadSegment] records. Index is
// traversal order and is load-bearing: the brake thermal model accumulates
// temperature across segments, so scrambling segment order changes results.
// DistanceKM is cumulative from the road start; segment length is the delta
// from the previous segment's DistanceKM. ElevationM is the elevation at the
// segment end point, and the thermal model derives descent from consecutive
// elevation deltas rather than from SlopePct, which is carried for scoring
// and reporting.
//
// Curve sharpness is a fraction in [0,1]: 0 is a straight, 1 is a hairpin.
// Upstream profile loaders map surveyed curve categories onto this scale
// (gentle 0.1, moderate 0.3, sharp 0.6, very sharp 0.9).
//
// # Conventions
//
//	Slope:     signed percentage, negative = descending.
//	Rainfall:  mm per day. Heavy rain starts around 150 mm/day.
//	Friction:  dry asphalt ≈ 0.85, heavy rain ≈ 0.45, winter ice lower still.
//	Costs:     recommendation cost ranges use Indian public-works figures
//	           (lakhs/crores), matching the highway authority data the
//	           profiles come from.
//
// # Validation
//
// [ValidateInputs] checks every run input before any simulation state exists.
// A failed run returns no partial results: brake temperature is cumulative,
// so a truncated sequence has no well-defined meaning. Numeric edge cases
// (zero elevation delta, zero road width) are handled by clamping in the
// simulation, not by validation errors.
package domain
