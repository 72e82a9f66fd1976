package models

import "time"

// Sensor names accepted by POST /control/sensor/{name}
const (
	SensorHeart    = "max30105"
	SensorBodyTemp = "mlx90614"
	SensorRoom     = "dht22"
	SensorGas      = "mq135"
)

// HumanTempReading MLX90614 skin/body temperature
type HumanTempReading struct {
	ID          int64     `json:"id"`
	ObjectTemp  float64   `json:"objectTemp"`
	AmbientTemp float64   `json:"ambientTemp"`
	Unit        string    `json:"unit"`
	Timestamp   time.Time `json:"timestamp"`
	DeviceID    string    `json:"deviceId"`
}

// RoomTempReading DHT22 room temperature and relative humidity (%)
type RoomTempReading struct {
	ID          int64     `json:"id"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	Unit        string    `json:"unit"`
	Timestamp   time.Time `json:"timestamp"`
	DeviceID    string    `json:"deviceId"`
}

// GasReading MQ135 air-quality reading. Field names follow the backend's snake_case.
type GasReading struct {
	ID             int64     `json:"id"`
	RawValue       int       `json:"rawValue"`
	Voltage        *float64  `json:"voltage,omitempty"`
	Resistance     *float64  `json:"resistance,omitempty"`
	CO2PPM         float64   `json:"co2_ppm"`
	CO2Percentage  float64   `json:"co2_percentage"`
	CO2Status      string    `json:"co2_status"`
	SmokeLevel     float64   `json:"smoke_level"`
	SmokeStatus    string    `json:"smoke_status"`
	AQIScore       int       `json:"aqi_score"`
	OverallQuality string    `json:"overall_quality"`
	Timestamp      time.Time `json:"timestamp"`
	DeviceID       string    `json:"deviceId"`
}

// SensorStatus enabled flags for every sensor, from GET /control/status
type SensorStatus struct {
	DHT22    bool `json:"dht22"`
	MLX90614 bool `json:"mlx90614"`
	MQ135    bool `json:"mq135"`
	MAX30105 bool `json:"max30105"`
}
