package sim

import (
	"testing"

	"github.com/couchcryptid/road-risk-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBus() domain.Vehicle {
	return domain.Vehicle{
		Class:             domain.VehicleBus,
		MassKG:            12000,
		WidthM:            2.5,
		HeightM:           3.2,
		CGHeightM:         1.8,
		BrakeMassKG:       50,
		BrakeSpecificHeat: 500,
		RatedBrakeKW:      150,
	}
}

func dryWeather() domain.EnvironmentCondition {
	return domain.EnvironmentCondition{
		Weather:      domain.WeatherNormal,
		AmbientTempC: 20,
		Humidity:     0.5,
		VisibilityM:  200,
		Friction:     0.85,
	}
}

// makeDescent builds n segments each 0.1 km long, each dropping dropM metres.
func makeDescent(n int, dropM float64) []domain.RoadSegment {
	segments := make([]domain.RoadSegment, n)
	for i := range segments {
		segments[i] = domain.RoadSegment{
			Index:           i + 1,
			DistanceKM:      0.1 * float64(i+1),
			ElevationM:      2000 - dropM*float64(i+1),
			SlopePct:        -dropM, // 0.1 km segments: drop in metres equals slope percent
			CurveSharpness:  0.3,
			WidthM:          7,
			Guardrail:       true,
			Soil:            domain.SoilRocky,
			VegetationCover: 0.5,
		}
	}
	return segments
}

func TestBrakeScan_StartsAtAmbient(t *testing.T) {
	readings, _ := runBrakeScan(makeDescent(1, 50), testBus(), dryWeather(), 40)

	require.Len(t, readings, 1)
	// First segment has no predecessor, hence no elevation delta and no heat.
	assert.Equal(t, 20.0, readings[0].TempC)
	assert.Equal(t, 0.0, readings[0].Risk)
}

func TestBrakeScan_HeatsOnDescent(t *testing.T) {
	readings, final := runBrakeScan(makeDescent(8, 50), testBus(), dryWeather(), 40)

	require.Len(t, readings, 8)
	for i := 1; i < len(readings); i++ {
		assert.Greater(t, readings[i].TempC, readings[i-1].TempC,
			"temperature must accumulate while descending")
	}
	assert.Equal(t, readings[7].TempC, final)
	assert.Greater(t, readings[7].TempC, brakeWarningTempC)
	assert.Greater(t, readings[7].Risk, 0.0)
}

func TestBrakeScan_CoolsButNeverBelowAmbient(t *testing.T) {
	// Climbing road: elevation increases, so every step cools.
	segments := makeDescent(5, -30)
	readings, final := runBrakeScan(segments, testBus(), dryWeather(), 40)

	for _, r := range readings {
		assert.Equal(t, 20.0, r.TempC, "cooling is bounded at ambient")
		assert.Equal(t, 0.0, r.Risk)
	}
	assert.Equal(t, 20.0, final)
}

func TestBrakeScan_RetarderAbsorbsGentleDescent(t *testing.T) {
	// A 10 m drop over 0.1 km at 40 km/h stays within the 150 kW retarder
	// capacity, so the friction brakes see no heat at all.
	readings, _ := runBrakeScan(makeDescent(4, 10), testBus(), dryWeather(), 40)

	for _, r := range readings {
		assert.Equal(t, 20.0, r.TempC)
	}
}

func TestBrakeScan_OrderSensitivity(t *testing.T) {
	forward := makeDescent(6, 50)

	// Same segment attributes traversed in the opposite physical order
	// (the road climbs instead of descending), reindexed to stay valid.
	backward := make([]domain.RoadSegment, len(forward))
	for i := range forward {
		backward[i] = forward[len(forward)-1-i]
		backward[i].Index = i + 1
		backward[i].DistanceKM = forward[i].DistanceKM
	}

	fwdReadings, fwdFinal := runBrakeScan(forward, testBus(), dryWeather(), 40)
	bwdReadings, bwdFinal := runBrakeScan(backward, testBus(), dryWeather(), 40)

	assert.NotEqual(t, fwdFinal, bwdFinal, "thermal state is path-dependent")
	assert.Greater(t, fwdReadings[5].TempC, bwdReadings[5].TempC)
}

func TestBrakeScan_SteeperSlopeNeverLowersRisk(t *testing.T) {
	shallow, _ := runBrakeScan(makeDescent(8, 30), testBus(), dryWeather(), 40)
	steep, _ := runBrakeScan(makeDescent(8, 50), testBus(), dryWeather(), 40)

	for i := range shallow {
		assert.GreaterOrEqual(t, steep[i].Risk, shallow[i].Risk, "segment %d", i)
	}
	assert.Greater(t, steep[7].Risk, shallow[7].Risk)
}

func TestBrakeRisk_Thresholds(t *testing.T) {
	tests := []struct {
		name  string
		tempC float64
		want  float64
	}{
		{"ambient", 20, 0},
		{"at warning", 200, 0},
		{"midway", 275, 0.5},
		{"at failure", 350, 1},
		{"beyond failure saturates", 500, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, brakeRisk(tt.tempC), 1e-9)
		})
	}
}

func TestBrakeStep_DegenerateDistanceUsesDefaultLength(t *testing.T) {
	prev := domain.RoadSegment{Index: 1, DistanceKM: 0.5, ElevationM: 1000}
	seg := domain.RoadSegment{Index: 2, DistanceKM: 0.5, ElevationM: 1010} // climbing, zero length

	acc := brakeAccumulator{tempC: 100}
	acc, reading := brakeStep(acc, &prev, seg, testBus(), 20, 40)

	assert.InDelta(t, 100-coolingCPerKM*defaultSegmentKM, reading.TempC, 1e-9)
	assert.Equal(t, acc.tempC, reading.TempC)
}
