package domain

import (
	"context"
	"time"
)

// RiskBand is the classification of a fused risk value.
type RiskBand string

const (
	BandLow      RiskBand = "low"
	BandMedium   RiskBand = "medium"
	BandHigh     RiskBand = "high"
	BandExtreme  RiskBand = "extreme"
	BandCritical RiskBand = "critical"
)

// SegmentRiskResult is the per-segment output of a simulation run.
// All component scores and Overall are in [0,1]. Produced exactly once per
// segment per run and never mutated afterwards.
type SegmentRiskResult struct {
	SegmentIndex  int      `json:"segment_index"`
	DistanceKM    float64  `json:"distance_km"`
	SlopePct      float64  `json:"slope_pct"`
	StabilityRisk float64  `json:"stability_risk"`
	BrakeRisk     float64  `json:"brake_risk"`
	CliffFallRisk float64  `json:"cliff_fall_risk"`
	LandslideRisk float64  `json:"landslide_risk"`
	Overall       float64  `json:"overall"`
	Band          RiskBand `json:"band"`
	BrakeTempC    float64  `json:"brake_temp_c"`
	SafeSpeedKMH  float64  `json:"safe_speed_kmh"`
}

// RecommendationCategory groups safety interventions by the kind of work involved.
type RecommendationCategory string

const (
	CategoryInfrastructure    RecommendationCategory = "infrastructure"
	CategorySignage           RecommendationCategory = "signage"
	CategoryTrafficManagement RecommendationCategory = "traffic_management"
	CategoryMonitoring        RecommendationCategory = "monitoring"
)

// Priority orders recommendations by urgency.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// RoadLevelTarget is the SegmentIndex sentinel for recommendations that apply
// to the whole road rather than one segment.
const RoadLevelTarget = -1

// Recommendation is one prioritized, costed action item.
type Recommendation struct {
	SegmentIndex int                    `json:"segment_index"` // RoadLevelTarget for road-wide items
	Category     RecommendationCategory `json:"category"`
	Priority     Priority               `json:"priority"`
	Action       string                 `json:"action"`
	Rationale    string                 `json:"rationale"`
	CostRange    string                 `json:"cost_range"`
	Timeframe    string                 `json:"timeframe"`
}

// RoadStats aggregates a completed result sequence for road-level decisions.
type RoadStats struct {
	TotalSegments     int              `json:"total_segments"`
	BandCounts        map[RiskBand]int `json:"band_counts"`
	HighOrWorseCount  int              `json:"high_or_worse_count"`
	AverageOverall    float64          `json:"average_overall"`
	MaxOverall        float64          `json:"max_overall"`
	MaxOverallSegment int              `json:"max_overall_segment"`
	MaxBrakeTempC     float64          `json:"max_brake_temp_c"`
	BrakeWarningCount int              `json:"brake_warning_count"`
	CliffZoneCount    int              `json:"cliff_zone_count"`
	LandslideZoneCount int             `json:"landslide_zone_count"`
}

// DangerZone is a top-N ranked segment with human-readable reasons.
type DangerZone struct {
	SegmentRiskResult
	Reasons string `json:"reasons"`
}

// RawRequest is an unprocessed message from the request topic.
type RawRequest struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}
