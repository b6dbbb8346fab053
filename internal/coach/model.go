package coach

import "time"

// Coach is an optional secondary resource on a booking. IsAvailable is an
// administrative on/off switch, separate from interval-based availability.
type Coach struct {
	ID             int64     `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Specialization string    `db:"specialization" json:"specialization"`
	HourlyRate     float64   `db:"hourly_rate" json:"hourly_rate"`
	IsAvailable    bool      `db:"is_available" json:"is_available"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

type CreateCoachRequest struct {
	Name           string   `json:"name" binding:"required"`
	Specialization string   `json:"specialization" binding:"required"`
	HourlyRate     *float64 `json:"hourly_rate" binding:"required,gte=0"`
	IsAvailable    *bool    `json:"is_available"`
}

type UpdateCoachRequest struct {
	Name           *string  `json:"name"`
	Specialization *string  `json:"specialization"`
	HourlyRate     *float64 `json:"hourly_rate" binding:"omitempty,gte=0"`
	IsAvailable    *bool    `json:"is_available"`
}
