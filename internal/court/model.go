package court

import "time"

const (
	TypeIndoor  = "indoor"
	TypeOutdoor = "outdoor"
)

// Court is a bookable playing surface. BasePrice is the hourly rate in
// currency units.
type Court struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Type      string    `db:"type" json:"type"`
	BasePrice float64   `db:"base_price" json:"base_price"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreateCourtRequest struct {
	Name      string   `json:"name" binding:"required"`
	Type      string   `json:"type" binding:"required,oneof=indoor outdoor"`
	BasePrice *float64 `json:"base_price" binding:"required,gte=0"`
	IsActive  *bool    `json:"is_active"`
}

type UpdateCourtRequest struct {
	Name      *string  `json:"name"`
	Type      *string  `json:"type" binding:"omitempty,oneof=indoor outdoor"`
	BasePrice *float64 `json:"base_price" binding:"omitempty,gte=0"`
	IsActive  *bool    `json:"is_active"`
}
