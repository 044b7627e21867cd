// Command scenarios runs a set of canonical traversal scenarios against a
// road profile and prints the resulting reports as JSON. It is an offline
// aid for tuning and regression-checking the risk model without Kafka.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/road-risk-service/internal/advisory"
	"github.com/couchcryptid/road-risk-service/internal/domain"
	"github.com/couchcryptid/road-risk-service/internal/sim"
)

type scenario struct {
	Name        string
	Vehicle     domain.Vehicle
	Environment domain.EnvironmentCondition
	Driver      domain.DriverProfile
}

type scenarioReport struct {
	Scenario        string                     `json:"scenario"`
	GeneratedAt     time.Time                  `json:"generated_at"`
	Results         []domain.SegmentRiskResult `json:"results,omitempty"`
	Recommendations []domain.Recommendation    `json:"recommendations,omitempty"`
	TopDangerous    []domain.DangerZone        `json:"top_dangerous,omitempty"`
	Stats           domain.RoadStats           `json:"stats"`
	FinalBrakeTempC float64                    `json:"final_brake_temp_c"`
	Error           string                     `json:"error,omitempty"`
}

func main() {
	var (
		inputPath  = flag.String("input", "", "path to a road profile JSON file (defaults to the built-in demo descent)")
		topN       = flag.Int("top", 5, "number of segments in the danger ranking")
		segments   = flag.Bool("segments", false, "include per-segment results in the output")
		freezeTime = flag.String("freeze-time", "", "RFC3339 timestamp to pin report times to, for reproducible output")
	)
	flag.Parse()

	if *freezeTime != "" {
		at, err := time.Parse(time.RFC3339, *freezeTime)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -freeze-time: %v\n", err)
			os.Exit(2)
		}
		domain.SetClock(clockwork.NewFakeClockAt(at))
	}

	road, err := loadRoad(*inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load road profile: %v\n", err)
		os.Exit(1)
	}

	scenarios := canonicalScenarios()
	reports := make([]scenarioReport, len(scenarios))

	// Runs share no state, so each scenario simulates on its own goroutine.
	var wg sync.WaitGroup
	for i, sc := range scenarios {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reports[i] = runScenario(road, sc, *topN, *segments)
		}()
	}
	wg.Wait()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(reports); err != nil {
		fmt.Fprintf(os.Stderr, "encode reports: %v\n", err)
		os.Exit(1)
	}
}

func runScenario(road []domain.RoadSegment, sc scenario, topN int, includeSegments bool) scenarioReport {
	report := scenarioReport{Scenario: sc.Name, GeneratedAt: domain.Now()}

	results, err := sim.Simulate(road, sc.Vehicle, sc.Environment, sc.Driver)
	if err != nil {
		report.Error = err.Error()
		return report
	}

	if includeSegments {
		report.Results = results
	}
	report.Recommendations = advisory.Recommend(results)
	report.TopDangerous = advisory.DangerZones(results, topN)
	report.Stats = advisory.Stats(results)
	report.FinalBrakeTempC = sim.FinalBrakeTemp(results)
	return report
}

func loadRoad(path string) ([]domain.RoadSegment, error) {
	if path == "" {
		return demoRoad(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var road []domain.RoadSegment
	if err := json.Unmarshal(data, &road); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return road, nil
}

// demoRoad is a 2 km ghat descent: a flat approach, a long steep drop along
// a cliff edge, and a gentler run-out on loose soil.
func demoRoad() []domain.RoadSegment {
	road := make([]domain.RoadSegment, 0, 20)
	elevation := 2400.0

	appendSegment := func(drop, curve, width float64, cliff, guardrail bool, soil domain.SoilType, veg float64) {
		elevation -= drop
		road = append(road, domain.RoadSegment{
			Index:           len(road) + 1,
			DistanceKM:      0.1 * float64(len(road)+1),
			ElevationM:      elevation,
			SlopePct:        -drop,
			CurveSharpness:  curve,
			WidthM:          width,
			CliffEdge:       cliff,
			Guardrail:       guardrail,
			Soil:            soil,
			VegetationCover: veg,
		})
	}

	for range 4 {
		appendSegment(5, 0.2, 8, false, true, domain.SoilRocky, 0.7)
	}
	for range 8 {
		appendSegment(45, 0.8, 4.5, true, false, domain.SoilMixed, 0.3)
	}
	for range 8 {
		appendSegment(20, 0.4, 6, false, true, domain.SoilLoose, 0.2)
	}
	return road
}

func canonicalScenarios() []scenario {
	bus := domain.Vehicle{
		Class:             domain.VehicleBus,
		MassKG:            12000,
		WidthM:            2.5,
		HeightM:           3.2,
		CGHeightM:         1.8,
		BrakeMassKG:       50,
		BrakeSpecificHeat: 500,
		RatedBrakeKW:      150,
	}
	loadedTruck := domain.Vehicle{
		Class:             domain.VehicleTruck,
		MassKG:            24000,
		WidthM:            2.6,
		HeightM:           3.8,
		CGHeightM:         2.2,
		BrakeMassKG:       80,
		BrakeSpecificHeat: 500,
		RatedBrakeKW:      200,
	}

	clearDay := domain.EnvironmentCondition{
		Weather:      domain.WeatherNormal,
		AmbientTempC: 22,
		Humidity:     0.4,
		VisibilityM:  300,
		Friction:     0.85,
	}
	monsoon := domain.EnvironmentCondition{
		Weather:      domain.WeatherHeavyRain,
		AmbientTempC: 16,
		Humidity:     0.95,
		RainfallMM:   160,
		VisibilityM:  50,
		Friction:     0.45,
	}
	fog := domain.EnvironmentCondition{
		Weather:      domain.WeatherFoggy,
		AmbientTempC: 8,
		Humidity:     0.9,
		VisibilityM:  30,
		Friction:     0.7,
	}

	return []scenario{
		{
			Name:        "clear day, expert bus driver",
			Vehicle:     bus,
			Environment: clearDay,
			Driver:      domain.DriverProfile{TargetSpeedKMH: 40, Experience: domain.ExperienceExpert},
		},
		{
			Name:        "monsoon night, novice bus driver",
			Vehicle:     bus,
			Environment: monsoon,
			Driver:      domain.DriverProfile{TargetSpeedKMH: 45, Night: true, PoorVisibility: true, Experience: domain.ExperienceNovice},
		},
		{
			Name:        "loaded truck, dry descent",
			Vehicle:     loadedTruck,
			Environment: clearDay,
			Driver:      domain.DriverProfile{TargetSpeedKMH: 50, Experience: domain.ExperienceMedium},
		},
		{
			Name:        "fog, overspeeding bus",
			Vehicle:     bus,
			Environment: fog,
			Driver:      domain.DriverProfile{TargetSpeedKMH: 65, Overspeeding: true, PoorVisibility: true, Experience: domain.ExperienceMedium},
		},
	}
}
