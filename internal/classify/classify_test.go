package classify

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampProgress(t *testing.T) {
	assert.Equal(t, 100, ClampProgress(137))
	assert.Equal(t, 0, ClampProgress(-5))
	assert.Equal(t, 42, ClampProgress(42))
}

func TestClampPercent(t *testing.T) {
	assert.Equal(t, 0.0, ClampPercent(math.NaN()))
	assert.Equal(t, 100.0, ClampPercent(250))
	assert.Equal(t, 12.5, ClampPercent(12.5))
}

func TestHeartRateCategory(t *testing.T) {
	cases := map[int]string{
		45:  HeartBradycardia,
		59:  HeartBradycardia,
		60:  HeartNormal,
		100: HeartNormal,
		101: HeartElevated,
		120: HeartElevated,
		121: HeartTachycardia,
	}
	for bpm, want := range cases {
		assert.Equal(t, want, HeartRateCategory(bpm), "bpm=%d", bpm)
	}
}

func TestHeartRateStatusText(t *testing.T) {
	assert.Equal(t, "LOW HEART RATE", HeartRateStatusText(55))
	assert.Equal(t, "NORMAL RANGE", HeartRateStatusText(72))
	assert.Equal(t, "HIGH HEART RATE", HeartRateStatusText(101))
	assert.True(t, HeartRateAlert(101))
	assert.False(t, HeartRateAlert(72))
}

func TestBloodPressureCategory(t *testing.T) {
	assert.Equal(t, BPHypotension, BloodPressureCategory(85, 70))
	assert.Equal(t, BPHypotension, BloodPressureCategory(110, 55))
	assert.Equal(t, BPNormal, BloodPressureCategory(118, 76))
	assert.Equal(t, BPElevated, BloodPressureCategory(125, 78))
	assert.Equal(t, BPStage1, BloodPressureCategory(135, 85))
	assert.Equal(t, BPStage1, BloodPressureCategory(125, 82))
	assert.Equal(t, BPStage2, BloodPressureCategory(150, 95))
}

func TestBodyTempStatus(t *testing.T) {
	assert.Equal(t, TempFever, BodyTempStatus(38.0))
	assert.Equal(t, TempElevated, BodyTempStatus(37.3))
	assert.Equal(t, TempNormal, BodyTempStatus(37.1))
	assert.Equal(t, TempNormal, BodyTempStatus(36.0))
	assert.Equal(t, TempLow, BodyTempStatus(35.9))
}

func TestThermometerFill(t *testing.T) {
	assert.Equal(t, 0.0, ThermometerFill(34))
	assert.Equal(t, 50.0, ThermometerFill(37))
	assert.Equal(t, 100.0, ThermometerFill(40))
}

func TestRoomComfort(t *testing.T) {
	level, score := RoomComfort(22, 50)
	assert.Equal(t, ComfortVery, level)
	assert.Equal(t, 95, score)
	assert.Equal(t, "Excellent", RoomAirStatus(score))

	level, score = RoomComfort(27, 65)
	assert.Equal(t, ComfortOK, level)
	assert.Equal(t, 75, score)
	assert.Equal(t, "Good", RoomAirStatus(score))

	level, score = RoomComfort(31, 80)
	assert.Equal(t, ComfortAdjust, level)
	assert.Equal(t, 45, score)
	assert.Equal(t, "Fair", RoomAirStatus(score))
}

func TestRoomRecommendations(t *testing.T) {
	recs := RoomRecommendations(15, 75)
	assert.Len(t, recs, 2)
	assert.Equal(t, "Increase heating for better comfort", recs[0].Text)
	assert.Equal(t, "High humidity, improve ventilation", recs[1].Text)

	recs = RoomRecommendations(22, 50)
	assert.Len(t, recs, 1)
	assert.Equal(t, "Environment is optimal!", recs[0].Text)
}

func TestAirQualityScore(t *testing.T) {
	assert.Equal(t, 95, AirQualityScore(50))
	assert.Equal(t, 75, AirQualityScore(51))
	assert.Equal(t, 50, AirQualityScore(150))
	assert.Equal(t, 30, AirQualityScore(200))
	assert.Equal(t, 15, AirQualityScore(201))

	assert.Equal(t, "Excellent", EnvironmentStatus(95))
	assert.Equal(t, "Good", EnvironmentStatus(75))
	assert.Equal(t, "Fair", EnvironmentStatus(50))
	assert.Equal(t, "Poor", EnvironmentStatus(30))
}

func TestAirAlertLevel(t *testing.T) {
	assert.Equal(t, "emergency", AirAlertLevel(201, "Poor"))
	assert.Equal(t, "emergency", AirAlertLevel(80, "Very Poor"))
	assert.Equal(t, "warning", AirAlertLevel(150, "Moderate"))
	assert.Equal(t, "safe", AirAlertLevel(100, "Good"))
}

func TestAirFills(t *testing.T) {
	assert.Equal(t, 0.0, CO2Fill(300))
	assert.Equal(t, 50.0, CO2Fill(2700))
	assert.Equal(t, 100.0, CO2Fill(6000))
	assert.Equal(t, 100.0, RawSensorFill(4095))
	assert.Equal(t, 42.5, SmokeFill(42.5))
	assert.Equal(t, 100.0, SmokeFill(130))
	assert.Equal(t, 0.0, SmokeFill(-3))
}

func TestAirRecommendations(t *testing.T) {
	recs := AirRecommendations(1200, 60, "Poor")
	assert.Len(t, recs, 3)

	recs = AirRecommendations(600, 10, "Good")
	assert.Len(t, recs, 1)
	assert.Equal(t, "Air quality is optimal!", recs[0].Text)

	recs = AirRecommendations(600, 10, "Moderate")
	assert.Len(t, recs, 1)
	assert.Equal(t, "Monitoring air quality continuously", recs[0].Text)
}
