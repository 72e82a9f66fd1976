package classify

// Body temperature statuses
const (
	TempFever    = "FEVER"
	TempElevated = "ELEVATED"
	TempNormal   = "NORMAL"
	TempLow      = "LOW"
)

// BodyTempStatus buckets a skin/body temperature in °C
func BodyTempStatus(celsius float64) string {
	switch {
	case celsius >= 38.0:
		return TempFever
	case celsius >= 37.3:
		return TempElevated
	case celsius >= 36.0:
		return TempNormal
	default:
		return TempLow
	}
}

// ThermometerFill maps 35°C..39°C onto 0..100
func ThermometerFill(celsius float64) float64 {
	return ClampPercent((celsius - 35) / 4 * 100)
}

// Room comfort levels
const (
	ComfortVery   = "Very Comfortable"
	ComfortOK     = "Comfortable"
	ComfortAdjust = "Needs Adjustment"
)

// RoomComfort level and score for a room temperature (°C) and relative humidity (%)
func RoomComfort(celsius, humidity float64) (string, int) {
	if celsius >= 18 && celsius <= 26 && humidity >= 40 && humidity <= 60 {
		return ComfortVery, 95
	}
	if celsius >= 16 && celsius <= 28 && humidity >= 30 && humidity <= 70 {
		return ComfortOK, 75
	}
	return ComfortAdjust, 45
}

// RoomAirStatus rating derived from the comfort score
func RoomAirStatus(score int) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 70:
		return "Good"
	default:
		return "Fair"
	}
}

// RoomTempFill maps 16°C..30°C onto 0..100
func RoomTempFill(celsius float64) float64 {
	return ClampPercent((celsius - 16) / 14 * 100)
}

// RoomRecommendations heating/cooling and humidity advice
func RoomRecommendations(celsius, humidity float64) []Recommendation {
	var recs []Recommendation
	if celsius < 18 {
		recs = append(recs, Recommendation{Icon: "🔥", Text: "Increase heating for better comfort"})
	} else if celsius > 26 {
		recs = append(recs, Recommendation{Icon: "❄️", Text: "Consider cooling the room"})
	}

	if humidity < 40 {
		recs = append(recs, Recommendation{Icon: "💧", Text: "Air is dry, use a humidifier"})
	} else if humidity > 60 {
		recs = append(recs, Recommendation{Icon: "🌬️", Text: "High humidity, improve ventilation"})
	}

	if len(recs) == 0 {
		recs = append(recs, Recommendation{Icon: "✅", Text: "Environment is optimal!"})
	}
	return recs
}
