package classify

// Heart-rate categories
const (
	HeartBradycardia = "Bradycardia"
	HeartNormal      = "Normal Range"
	HeartElevated    = "Elevated"
	HeartTachycardia = "Tachycardia"
)

// Blood-pressure categories
const (
	BPHypotension = "Hypotension (Low)"
	BPNormal      = "Normal Range"
	BPElevated    = "Elevated"
	BPStage1      = "Stage 1 Hypertension"
	BPStage2      = "Stage 2 Hypertension"
)

// HeartRateCategory buckets beats per minute
func HeartRateCategory(bpm int) string {
	switch {
	case bpm < 60:
		return HeartBradycardia
	case bpm <= 100:
		return HeartNormal
	case bpm <= 120:
		return HeartElevated
	default:
		return HeartTachycardia
	}
}

// HeartRateStatusText headline shown once a measurement completes
func HeartRateStatusText(bpm int) string {
	switch {
	case bpm < 60:
		return "LOW HEART RATE"
	case bpm > 100:
		return "HIGH HEART RATE"
	default:
		return "NORMAL RANGE"
	}
}

// HeartRateAlert outside the 60-100 bpm resting range
func HeartRateAlert(bpm int) bool {
	return bpm < 60 || bpm > 100
}

// BloodPressureCategory buckets systolic/diastolic mmHg
func BloodPressureCategory(systolic, diastolic int) string {
	switch {
	case systolic < 90 || diastolic < 60:
		return BPHypotension
	case systolic < 120 && diastolic < 80:
		return BPNormal
	case systolic < 130 && diastolic < 80:
		return BPElevated
	case systolic < 140 || diastolic < 90:
		return BPStage1
	default:
		return BPStage2
	}
}
