package domain

import "time"

type VitalType string

const (
	VitalBloodPressure VitalType = "blood_pressure"
	VitalHeartRate     VitalType = "heart_rate"
	VitalBloodSugar    VitalType = "blood_sugar"
	VitalTemperature   VitalType = "temperature"
)

// Vital is one health measurement recorded by a customer.
type Vital struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Type       VitalType `json:"type"`
	Value      string    `json:"value"`
	Unit       string    `json:"unit"`
	RecordedAt time.Time `json:"recorded_at"`
	CreatedAt  time.Time `json:"created_at"`
}

func (t VitalType) Valid() bool {
	switch t {
	case VitalBloodPressure, VitalHeartRate, VitalBloodSugar, VitalTemperature:
		return true
	}
	return false
}
