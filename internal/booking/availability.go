package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"courtbook/internal/equipment"
)

// EquipmentSource is the slice of the equipment repository the evaluator needs.
type EquipmentSource interface {
	GetByType(ctx context.Context, equipmentType string) (*equipment.Equipment, error)
}

// Evaluator answers availability questions against the booking ledger. Its
// answers are advisory; CreateConfirmed repeats them under a row lock before
// anything is written.
type Evaluator struct {
	bookings  Repository
	equipment EquipmentSource
}

func NewEvaluator(bookings Repository, equipmentSrc EquipmentSource) *Evaluator {
	return &Evaluator{bookings: bookings, equipment: equipmentSrc}
}

// IsCourtFree reports whether no confirmed booking occupies the court during iv.
func (e *Evaluator) IsCourtFree(ctx context.Context, courtID int64, iv Interval) (bool, error) {
	conflicts, err := e.bookings.FindOverlappingForCourt(ctx, courtID, iv)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

// IsCoachFree reports whether no confirmed booking occupies the coach during
// iv. A nil coachID is vacuously free.
func (e *Evaluator) IsCoachFree(ctx context.Context, coachID *int64, iv Interval) (bool, error) {
	if coachID == nil {
		return true, nil
	}
	conflicts, err := e.bookings.FindOverlappingForCoach(ctx, *coachID, iv)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

// EquipmentCheck is the outcome of a pool availability check. Shortfalls maps
// each over-requested type to how many units actually remain.
type EquipmentCheck struct {
	Available  bool
	Message    string
	Shortfalls map[string]int
}

// shortfallError converts the first shortfall, in type order, into an error.
func (c *EquipmentCheck) shortfallError() error {
	types := make([]string, 0, len(c.Shortfalls))
	for t := range c.Shortfalls {
		types = append(types, t)
	}
	sort.Strings(types)
	if len(types) == 0 {
		return nil
	}
	return &EquipmentShortfallError{Type: types[0], Available: c.Shortfalls[types[0]]}
}

// CheckEquipment verifies every requested pool against the units held by
// confirmed bookings overlapping iv. Stock is derived, never stored: total
// stock minus the sum over overlapping bookings. A requested type with no
// inventory record is an error, not a shortfall.
func (e *Evaluator) CheckEquipment(ctx context.Context, requested map[string]int, iv Interval) (*EquipmentCheck, error) {
	types := make([]string, 0, len(requested))
	for t, qty := range requested {
		if qty > 0 {
			types = append(types, t)
		}
	}
	sort.Strings(types)

	check := &EquipmentCheck{Available: true, Shortfalls: map[string]int{}}
	if len(types) == 0 {
		return check, nil
	}

	overlapping, err := e.bookings.FindOverlappingConfirmed(ctx, iv)
	if err != nil {
		return nil, err
	}

	for _, equipmentType := range types {
		rec, err := e.equipment.GetByType(ctx, equipmentType)
		if err != nil {
			if errors.Is(err, equipment.ErrEquipmentNotFound) {
				return nil, &UnknownEquipmentError{Type: equipmentType}
			}
			return nil, err
		}

		booked := 0
		for i := range overlapping {
			booked += overlapping[i].EquipmentCount(equipmentType)
		}

		if available := rec.TotalStock - booked; available < requested[equipmentType] {
			check.Available = false
			check.Shortfalls[equipmentType] = available
			if check.Message == "" {
				check.Message = fmt.Sprintf("only %d %s available for this time slot", available, equipmentType)
			}
		}
	}
	return check, nil
}
