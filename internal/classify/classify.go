// Package classify maps raw sensor values to the qualitative buckets shown on the mirror.
package classify

import "math"

// ClampPercent limits v to [0, 100]
func ClampPercent(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}

// ClampProgress integer form of ClampPercent used for measurement progress
func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Recommendation one advice line with its icon
type Recommendation struct {
	Icon string `json:"icon"`
	Text string `json:"text"`
}
