package domain

import "time"

// AssessmentRequest is the service-level contract consumed from the request
// topic: one road profile plus the run conditions to simulate it under.
type AssessmentRequest struct {
	ID          string               `json:"id,omitempty"`
	RoadName    string               `json:"road_name"`
	Segments    []RoadSegment        `json:"segments"`
	Vehicle     Vehicle              `json:"vehicle"`
	Environment EnvironmentCondition `json:"environment"`
	Driver      DriverProfile        `json:"driver"`
	TopN        int                  `json:"top_n,omitempty"`
}

// AssessmentReport is the serialized output of one simulation run, destined
// for the report topic and the assessment store.
type AssessmentReport struct {
	ID              string              `json:"id"`
	RoadName        string              `json:"road_name"`
	GeneratedAt     time.Time           `json:"generated_at"`
	VehicleClass    VehicleClass        `json:"vehicle_class"`
	Weather         Weather             `json:"weather"`
	Results         []SegmentRiskResult `json:"results"`
	Recommendations []Recommendation    `json:"recommendations"`
	TopDangerous    []DangerZone        `json:"top_dangerous"`
	Stats           RoadStats           `json:"stats"`
	FinalBrakeTempC float64             `json:"final_brake_temp_c"`
}
