package domain

// Weather is the environmental condition category for a simulation run.
type Weather string

const (
	WeatherNormal    Weather = "normal"
	WeatherLightRain Weather = "light_rain"
	WeatherHeavyRain Weather = "heavy_rain"
	WeatherWinter    Weather = "winter"
	WeatherFoggy     Weather = "foggy"
)

// Valid reports whether w is one of the known weather categories.
func (w Weather) Valid() bool {
	switch w {
	case WeatherNormal, WeatherLightRain, WeatherHeavyRain, WeatherWinter, WeatherFoggy:
		return true
	}
	return false
}

// SoilType classifies the soil on the uphill side of a segment.
// Looser soil is more landslide-prone.
type SoilType string

const (
	SoilRocky SoilType = "rocky"
	SoilMixed SoilType = "mixed"
	SoilLoose SoilType = "loose"
)

// Valid reports whether s is one of the known soil classifications.
func (s SoilType) Valid() bool {
	switch s {
	case SoilRocky, SoilMixed, SoilLoose:
		return true
	}
	return false
}

// Experience is the driver experience level.
type Experience string

const (
	ExperienceNovice Experience = "novice"
	ExperienceMedium Experience = "medium"
	ExperienceExpert Experience = "expert"
)

// Valid reports whether e is one of the known experience levels.
func (e Experience) Valid() bool {
	switch e {
	case ExperienceNovice, ExperienceMedium, ExperienceExpert:
		return true
	}
	return false
}

// VehicleClass is the broad vehicle category. Custom vehicles are described
// entirely by their numeric parameters.
type VehicleClass string

const (
	VehicleBus    VehicleClass = "bus"
	VehicleCar    VehicleClass = "car"
	VehicleTruck  VehicleClass = "truck"
	VehicleCustom VehicleClass = "custom"
)

// Valid reports whether c is one of the known vehicle classes.
func (c VehicleClass) Valid() bool {
	switch c {
	case VehicleBus, VehicleCar, VehicleTruck, VehicleCustom:
		return true
	}
	return false
}

// RoadSegment is one fixed stretch of road with constant attributes.
// Index defines traversal order; the brake thermal model depends on it.
// DistanceKM is cumulative from the road start, ElevationM is the elevation
// at the segment's end point, and SlopePct is signed (negative = descending,
// defined as elevation delta over segment length).
type RoadSegment struct {
	Index           int      `json:"index"`
	DistanceKM      float64  `json:"distance_km"`
	ElevationM      float64  `json:"elevation_m"`
	SlopePct        float64  `json:"slope_pct"`
	CurveSharpness  float64  `json:"curve_sharpness"` // 0 = straight, 1 = hairpin
	WidthM          float64  `json:"width_m"`
	CliffEdge       bool     `json:"cliff_edge"`
	Guardrail       bool     `json:"guardrail"`
	Soil            SoilType `json:"soil"`
	VegetationCover float64  `json:"vegetation_cover"` // fraction in [0,1]
}

// Vehicle holds the physical parameters of the simulated vehicle.
// Immutable for the duration of a run.
type Vehicle struct {
	Class             VehicleClass `json:"class"`
	MassKG            float64      `json:"mass_kg"`
	WidthM            float64      `json:"width_m"`
	HeightM           float64      `json:"height_m"`
	CGHeightM         float64      `json:"cg_height_m"` // center of gravity above road
	BrakeMassKG       float64      `json:"brake_mass_kg"`
	BrakeSpecificHeat float64      `json:"brake_specific_heat"` // J/(kg·°C)
	RatedBrakeKW      float64      `json:"rated_brake_kw"`      // sustained retarder/engine-brake capacity
}

// EnvironmentCondition describes the weather and road surface for a run.
type EnvironmentCondition struct {
	Weather      Weather `json:"weather"`
	AmbientTempC float64 `json:"ambient_temp_c"`
	Humidity     float64 `json:"humidity"`     // fraction in [0,1]
	RainfallMM   float64 `json:"rainfall_mm"`  // intensity per day
	VisibilityM  float64 `json:"visibility_m"` // 0 means unreported
	Friction     float64 `json:"friction"`     // surface friction coefficient
}

// DriverProfile captures the behavior flags that modulate fused risk.
type DriverProfile struct {
	TargetSpeedKMH float64    `json:"target_speed_kmh"`
	Night          bool       `json:"night"`
	Overspeeding   bool       `json:"overspeeding"`
	PoorVisibility bool       `json:"poor_visibility"`
	Experience     Experience `json:"experience"`
}
