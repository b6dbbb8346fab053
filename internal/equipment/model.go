package equipment

import "time"

const (
	TypeRacket = "racket"
	TypeShoes  = "shoes"
)

// Equipment is a facility-wide rental pool keyed by type. There is no stored
// available counter: availability is always derived from overlapping confirmed
// bookings, so the pool can never drift out of sync with reality.
type Equipment struct {
	ID           int64     `db:"id" json:"id"`
	Type         string    `db:"type" json:"type"`
	TotalStock   int       `db:"total_stock" json:"total_stock"`
	PricePerUnit float64   `db:"price_per_unit" json:"price_per_unit"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type CreateEquipmentRequest struct {
	Type         string   `json:"type" binding:"required,oneof=racket shoes"`
	TotalStock   *int     `json:"total_stock" binding:"required,gte=0"`
	PricePerUnit *float64 `json:"price_per_unit" binding:"required,gte=0"`
}

type UpdateEquipmentRequest struct {
	TotalStock   *int     `json:"total_stock" binding:"omitempty,gte=0"`
	PricePerUnit *float64 `json:"price_per_unit" binding:"omitempty,gte=0"`
}
