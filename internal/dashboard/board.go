package dashboard

import (
	"time"

	"github.com/m7mdaymn/SmartmirrorUi/internal/classify"
	"github.com/m7mdaymn/SmartmirrorUi/internal/models"
)

// Board latest classified view of the ambient sensors
type Board struct {
	UpdatedAt time.Time     `json:"updated_at"`
	BodyTemp  BodyTempPanel `json:"body_temp"`
	Room      RoomPanel     `json:"room"`
	Air       AirPanel      `json:"air"`
}

// Panel fields shared by every board section
type Panel struct {
	Online bool   `json:"online"`
	Error  string `json:"error,omitempty"`
}

type BodyTempPanel struct {
	Panel
	Celsius float64 `json:"celsius"`
	Status  string  `json:"status"`
	Fill    float64 `json:"fill"`
}

type RoomPanel struct {
	Panel
	Celsius         float64                   `json:"celsius"`
	Humidity        float64                   `json:"humidity"`
	Comfort         string                    `json:"comfort"`
	ComfortScore    int                       `json:"comfort_score"`
	AirStatus       string                    `json:"air_status"`
	Fill            float64                   `json:"fill"`
	Recommendations []classify.Recommendation `json:"recommendations,omitempty"`
}

type AirPanel struct {
	Panel
	AQI             int                       `json:"aqi"`
	Quality         string                    `json:"quality"`
	Score           int                       `json:"score"`
	Status          string                    `json:"status"`
	AlertLevel      string                    `json:"alert_level"`
	CO2PPM          float64                   `json:"co2_ppm"`
	CO2Fill         float64                   `json:"co2_fill"`
	SmokeLevel      float64                   `json:"smoke_level"`
	SmokeStatus     string                    `json:"smoke_status"`
	SmokeFill       float64                   `json:"smoke_fill"`
	RawFill         float64                   `json:"raw_fill"`
	Recommendations []classify.Recommendation `json:"recommendations,omitempty"`
}

func bodyTempPanel(r *models.HumanTempReading) BodyTempPanel {
	return BodyTempPanel{
		Panel:   Panel{Online: true},
		Celsius: r.ObjectTemp,
		Status:  classify.BodyTempStatus(r.ObjectTemp),
		Fill:    classify.ThermometerFill(r.ObjectTemp),
	}
}

func roomPanel(r *models.RoomTempReading) RoomPanel {
	comfort, score := classify.RoomComfort(r.Temperature, r.Humidity)
	return RoomPanel{
		Panel:           Panel{Online: true},
		Celsius:         r.Temperature,
		Humidity:        r.Humidity,
		Comfort:         comfort,
		ComfortScore:    score,
		AirStatus:       classify.RoomAirStatus(score),
		Fill:            classify.RoomTempFill(r.Temperature),
		Recommendations: classify.RoomRecommendations(r.Temperature, r.Humidity),
	}
}

func airPanel(r *models.GasReading) AirPanel {
	score := classify.AirQualityScore(r.AQIScore)
	return AirPanel{
		Panel:           Panel{Online: true},
		AQI:             r.AQIScore,
		Quality:         r.OverallQuality,
		Score:           score,
		Status:          classify.EnvironmentStatus(score),
		AlertLevel:      classify.AirAlertLevel(r.AQIScore, r.OverallQuality),
		CO2PPM:          r.CO2PPM,
		CO2Fill:         classify.CO2Fill(r.CO2PPM),
		SmokeLevel:      r.SmokeLevel,
		SmokeStatus:     r.SmokeStatus,
		SmokeFill:       classify.SmokeFill(r.SmokeLevel),
		RawFill:         classify.RawSensorFill(r.RawValue),
		Recommendations: classify.AirRecommendations(r.CO2PPM, r.SmokeLevel, r.OverallQuality),
	}
}

func offline(err error) Panel {
	return Panel{Online: false, Error: err.Error()}
}
