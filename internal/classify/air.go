package classify

// AirQualityScore converts an AQI reading to the mirror's 0-100 score
func AirQualityScore(aqi int) int {
	switch {
	case aqi <= 50:
		return 95
	case aqi <= 100:
		return 75
	case aqi <= 150:
		return 50
	case aqi <= 200:
		return 30
	default:
		return 15
	}
}

// EnvironmentStatus rating of an air-quality score
func EnvironmentStatus(score int) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 70:
		return "Good"
	case score >= 50:
		return "Fair"
	default:
		return "Poor"
	}
}

// AirDanger hazardous air: AQI above 200 or the device already says so
func AirDanger(aqi int, quality string) bool {
	return aqi > 200 || quality == "Hazardous" || quality == "Very Poor"
}

// AirWarning unhealthy but not hazardous
func AirWarning(aqi int) bool {
	return aqi > 100 && aqi <= 200
}

// AirAlertLevel "emergency", "warning" or "safe"
func AirAlertLevel(aqi int, quality string) string {
	switch {
	case AirDanger(aqi, quality):
		return "emergency"
	case AirWarning(aqi):
		return "warning"
	default:
		return "safe"
	}
}

// CO2Fill maps 400ppm (fresh) .. 5000ppm (dangerous) onto 0..100
func CO2Fill(ppm float64) float64 {
	return ClampPercent((ppm - 400) / 4600 * 100)
}

// SmokeFill smoke level is already a percentage; only the range is enforced
func SmokeFill(level float64) float64 {
	return ClampPercent(level)
}

// RawSensorFill 12-bit ADC value as a percentage
func RawSensorFill(raw int) float64 {
	return ClampPercent(float64(raw) / 4095 * 100)
}

// AirRecommendations ventilation advice for a gas reading
func AirRecommendations(co2PPM, smokeLevel float64, quality string) []Recommendation {
	var recs []Recommendation
	if co2PPM > 1000 {
		recs = append(recs, Recommendation{Icon: "🌬️", Text: "High CO₂ detected - open windows for ventilation"})
	}
	if smokeLevel > 50 {
		recs = append(recs, Recommendation{Icon: "🔥", Text: "Elevated smoke particles - check for sources"})
	}
	if quality == "Poor" || quality == "Hazardous" {
		recs = append(recs, Recommendation{Icon: "⚠️", Text: "Poor air quality - limit exposure time"})
	}
	if quality == "Excellent" || quality == "Good" {
		recs = append(recs, Recommendation{Icon: "✅", Text: "Air quality is optimal!"})
	}
	if len(recs) == 0 {
		recs = append(recs, Recommendation{Icon: "👍", Text: "Monitoring air quality continuously"})
	}
	return recs
}
