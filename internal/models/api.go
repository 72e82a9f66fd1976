package models

import "encoding/json"

// APIResponse common envelope of every backend endpoint
type APIResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Count   *int            `json:"count,omitempty"`
}

// HasData reports whether data is present and not JSON null
func (r *APIResponse) HasData() bool {
	return len(r.Data) > 0 && string(r.Data) != "null"
}

// SensorToggleRequest body of POST /control/sensor/{name}
type SensorToggleRequest struct {
	Enabled bool `json:"enabled"`
}

// ControlResponse reply of the control endpoints
type ControlResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Sensor  string        `json:"sensor,omitempty"`
	Enabled *bool         `json:"enabled,omitempty"`
	Sensors *SensorStatus `json:"sensors,omitempty"`
}
