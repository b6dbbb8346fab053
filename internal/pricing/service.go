package pricing

import (
	"context"
	"errors"
	"time"

	"courtbook/internal/coach"
	"courtbook/internal/court"
	"courtbook/internal/equipment"
	"courtbook/internal/metrics"
)

var ErrInvalidInterval = errors.New("end time must be after start time")

type CourtSource interface {
	GetByID(ctx context.Context, id int64) (*court.Court, error)
}

type CoachSource interface {
	GetByID(ctx context.Context, id int64) (*coach.Coach, error)
}

type EquipmentSource interface {
	GetByType(ctx context.Context, equipmentType string) (*equipment.Equipment, error)
}

type Service interface {
	Quote(ctx context.Context, courtID int64, coachID *int64, start, end time.Time, racketCount, shoeCount int) (*Breakdown, error)
}

type service struct {
	courts    CourtSource
	coaches   CoachSource
	equipment EquipmentSource
	rules     Repository
}

func NewService(courts CourtSource, coaches CoachSource, equipmentSrc EquipmentSource, rules Repository) Service {
	return &service{
		courts:    courts,
		coaches:   coaches,
		equipment: equipmentSrc,
		rules:     rules,
	}
}

// Quote fetches current store state and computes a breakdown. A coach or
// equipment record that does not exist contributes zero to the quote; only a
// missing court is an error.
func (s *service) Quote(ctx context.Context, courtID int64, coachID *int64, start, end time.Time, racketCount, shoeCount int) (*Breakdown, error) {
	if !end.After(start) {
		return nil, ErrInvalidInterval
	}

	c, err := s.courts.GetByID(ctx, courtID)
	if err != nil {
		return nil, err
	}

	var bookedCoach *coach.Coach
	if coachID != nil {
		bookedCoach, err = s.coaches.GetByID(ctx, *coachID)
		if err != nil && !errors.Is(err, coach.ErrCoachNotFound) {
			return nil, err
		}
	}

	var racket, shoes *equipment.Equipment
	if racketCount > 0 {
		racket, err = s.equipment.GetByType(ctx, equipment.TypeRacket)
		if err != nil && !errors.Is(err, equipment.ErrEquipmentNotFound) {
			return nil, err
		}
	}
	if shoeCount > 0 {
		shoes, err = s.equipment.GetByType(ctx, equipment.TypeShoes)
		if err != nil && !errors.Is(err, equipment.ErrEquipmentNotFound) {
			return nil, err
		}
	}

	rules, err := s.rules.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	breakdown := Compute(QuoteInput{
		Court:       c,
		Start:       start,
		End:         end,
		Coach:       bookedCoach,
		RacketCount: racketCount,
		ShoeCount:   shoeCount,
		Racket:      racket,
		Shoes:       shoes,
		Rules:       rules,
	})

	metrics.RecordPriceQuote()
	return &breakdown, nil
}
