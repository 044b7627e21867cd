// Package sim implements the multi-hazard descent simulation: per-segment
// stability and hazard scoring, the stateful brake thermal scan, and the
// fusion of all four components into a classified overall risk.
//
// A run is a pure function of its four immutable inputs. The only mutable
// state, the brake temperature accumulator, is created per run and threaded
// explicitly through the thermal fold, so independent runs may execute
// concurrently with no synchronization.
package sim

import "github.com/couchcryptid/road-risk-service/internal/domain"

// Simulate traverses the segment sequence in order and produces one
// SegmentRiskResult per segment, in the same order. All inputs are validated
// before any run state is created; on error no partial results are returned.
func Simulate(segments []domain.RoadSegment, vehicle domain.Vehicle, env domain.EnvironmentCondition, driver domain.DriverProfile) ([]domain.SegmentRiskResult, error) {
	if err := domain.ValidateInputs(segments, vehicle, env, driver); err != nil {
		return nil, err
	}

	multiplier := BehaviorMultiplier(driver)
	readings, _ := runBrakeScan(segments, vehicle, env, driver.TargetSpeedKMH)

	results := make([]domain.SegmentRiskResult, len(segments))
	for i, seg := range segments {
		scores := ComponentScores{
			Stability: Stability(seg, vehicle, env, driver.TargetSpeedKMH),
			Brake:     readings[i].Risk,
			CliffFall: CliffFall(seg, env, driver),
			Landslide: Landslide(seg, env),
		}
		overall := Fuse(scores, multiplier)

		results[i] = domain.SegmentRiskResult{
			SegmentIndex:  seg.Index,
			DistanceKM:    seg.DistanceKM,
			SlopePct:      seg.SlopePct,
			StabilityRisk: scores.Stability,
			BrakeRisk:     scores.Brake,
			CliffFallRisk: scores.CliffFall,
			LandslideRisk: scores.Landslide,
			Overall:       overall,
			Band:          Classify(overall),
			BrakeTempC:    readings[i].TempC,
			SafeSpeedKMH:  SafeSpeedKMH(seg, env),
		}
	}

	return results, nil
}

// FinalBrakeTemp returns the brake temperature after the last segment of a
// completed run, or ambient-equivalent zero value semantics for an empty
// sequence. Useful for chained scenario reporting.
func FinalBrakeTemp(results []domain.SegmentRiskResult) float64 {
	if len(results) == 0 {
		return 0
	}
	return results[len(results)-1].BrakeTempC
}
