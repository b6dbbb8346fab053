package booking

import (
	"errors"
	"fmt"
	"time"

	"courtbook/internal/equipment"
	"courtbook/internal/pricing"
)

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
	ErrCourtUnavailable = errors.New("court is not available for the selected time slot")
	ErrCoachUnavailable = errors.New("coach is not available for the selected time slot")
	ErrCoachInactive    = errors.New("coach is not accepting bookings")
)

// EquipmentShortfallError reports that the requested quantity of an equipment
// type exceeds what remains in the shared pool for the interval.
type EquipmentShortfallError struct {
	Type      string
	Available int
}

func (e *EquipmentShortfallError) Error() string {
	return fmt.Sprintf("only %d %s available for this time slot", e.Available, e.Type)
}

// UnknownEquipmentError reports a requested equipment type that has no
// inventory record at all.
type UnknownEquipmentError struct {
	Type string
}

func (e *UnknownEquipmentError) Error() string {
	return fmt.Sprintf("%s not found in inventory", e.Type)
}

// Booking occupies a court for [StartTime, EndTime), optionally a coach, and
// counted units from the equipment pools. Only confirmed bookings count toward
// availability; a cancelled booking never occupies anything.
type Booking struct {
	ID          int64             `db:"id" json:"id"`
	UserID      int64             `db:"user_id" json:"user_id"`
	CourtID     int64             `db:"court_id" json:"court_id"`
	StartTime   time.Time         `db:"start_time" json:"start_time"`
	EndTime     time.Time         `db:"end_time" json:"end_time"`
	RacketCount int               `db:"racket_count" json:"racket_count"`
	ShoeCount   int               `db:"shoe_count" json:"shoe_count"`
	CoachID     *int64            `db:"coach_id" json:"coach_id,omitempty"`
	Status      string            `db:"status" json:"status"`
	Breakdown   pricing.Breakdown `db:"pricing_breakdown" json:"pricing_breakdown"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`
}

func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

// EquipmentCount returns how many units of the given type this booking holds.
func (b *Booking) EquipmentCount(equipmentType string) int {
	switch equipmentType {
	case equipment.TypeRacket:
		return b.RacketCount
	case equipment.TypeShoes:
		return b.ShoeCount
	}
	return 0
}

type CreateBookingRequest struct {
	UserID      int64     `json:"user_id" binding:"required"`
	CourtID     int64     `json:"court_id" binding:"required"`
	CoachID     *int64    `json:"coach_id"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	RacketCount int       `json:"racket_count" binding:"gte=0"`
	ShoeCount   int       `json:"shoe_count" binding:"gte=0"`
}

type AvailabilityRequest struct {
	CourtID     int64     `json:"court_id" binding:"required"`
	CoachID     *int64    `json:"coach_id"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	RacketCount int       `json:"racket_count" binding:"gte=0"`
	ShoeCount   int       `json:"shoe_count" binding:"gte=0"`
}

type AvailabilityResult struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}
