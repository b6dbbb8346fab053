package booking

import (
	"context"

	"courtbook/internal/coach"
	"courtbook/internal/court"
	"courtbook/internal/equipment"
	"courtbook/internal/logger"
	"courtbook/internal/metrics"
	"courtbook/internal/pricing"
	"courtbook/internal/user"
)

type CourtSource interface {
	GetByID(ctx context.Context, id int64) (*court.Court, error)
}

type CoachSource interface {
	GetByID(ctx context.Context, id int64) (*coach.Coach, error)
}

type UserSource interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
}

// Notifier delivers booking lifecycle emails. Delivery is best effort; a
// failed notification never fails the booking.
type Notifier interface {
	BookingConfirmed(ctx context.Context, b *Booking, u *user.User, c *court.Court) error
	BookingCancelled(ctx context.Context, b *Booking, u *user.User, c *court.Court) error
}

type CreateBookingInput struct {
	UserID      int64
	CourtID     int64
	CoachID     *int64
	Interval    Interval
	RacketCount int
	ShoeCount   int
	// Breakdown, when nil, is computed from the active pricing rules.
	Breakdown *pricing.Breakdown
}

type AvailabilityInput struct {
	CourtID     int64
	CoachID     *int64
	Interval    Interval
	RacketCount int
	ShoeCount   int
}

type Service interface {
	CheckAvailability(ctx context.Context, in AvailabilityInput) (*AvailabilityResult, error)
	CreateBooking(ctx context.Context, in CreateBookingInput) (*Booking, error)
	CancelBooking(ctx context.Context, id int64) (*Booking, error)
	GetBooking(ctx context.Context, id int64) (*Booking, error)
	GetUserBookings(ctx context.Context, userID int64) ([]Booking, error)
	GetAllBookings(ctx context.Context) ([]Booking, error)
}

type service struct {
	repo      Repository
	evaluator *Evaluator
	courts    CourtSource
	coaches   CoachSource
	users     UserSource
	pricer    pricing.Service
	notifier  Notifier
}

// NewService wires the booking orchestrator. notifier may be nil when email is
// not configured.
func NewService(repo Repository, evaluator *Evaluator, courts CourtSource, coaches CoachSource, users UserSource, pricer pricing.Service, notifier Notifier) Service {
	return &service{
		repo:      repo,
		evaluator: evaluator,
		courts:    courts,
		coaches:   coaches,
		users:     users,
		pricer:    pricer,
		notifier:  notifier,
	}
}

func (s *service) CheckAvailability(ctx context.Context, in AvailabilityInput) (*AvailabilityResult, error) {
	if err := in.Interval.Validate(); err != nil {
		return nil, err
	}

	if in.CoachID != nil {
		c, err := s.coaches.GetByID(ctx, *in.CoachID)
		if err != nil {
			return nil, err
		}
		if !c.IsAvailable {
			metrics.RecordAvailabilityCheck("unavailable")
			return &AvailabilityResult{Available: false, Reason: ErrCoachInactive.Error()}, nil
		}
	}

	courtFree, err := s.evaluator.IsCourtFree(ctx, in.CourtID, in.Interval)
	if err != nil {
		return nil, err
	}
	if !courtFree {
		metrics.RecordAvailabilityCheck("unavailable")
		return &AvailabilityResult{Available: false, Reason: ErrCourtUnavailable.Error()}, nil
	}

	coachFree, err := s.evaluator.IsCoachFree(ctx, in.CoachID, in.Interval)
	if err != nil {
		return nil, err
	}
	if !coachFree {
		metrics.RecordAvailabilityCheck("unavailable")
		return &AvailabilityResult{Available: false, Reason: ErrCoachUnavailable.Error()}, nil
	}

	check, err := s.evaluator.CheckEquipment(ctx, map[string]int{
		equipment.TypeRacket: in.RacketCount,
		equipment.TypeShoes:  in.ShoeCount,
	}, in.Interval)
	if err != nil {
		return nil, err
	}
	if !check.Available {
		metrics.RecordAvailabilityCheck("unavailable")
		return &AvailabilityResult{Available: false, Reason: check.Message}, nil
	}

	metrics.RecordAvailabilityCheck("available")
	return &AvailabilityResult{Available: true}, nil
}

func (s *service) CreateBooking(ctx context.Context, in CreateBookingInput) (*Booking, error) {
	if err := in.Interval.Validate(); err != nil {
		return nil, err
	}

	if in.CoachID != nil {
		c, err := s.coaches.GetByID(ctx, *in.CoachID)
		if err != nil {
			return nil, err
		}
		if !c.IsAvailable {
			return nil, ErrCoachInactive
		}
	}

	// Advisory pass: reject the obvious conflicts before paying for pricing
	// and the write transaction.
	courtFree, err := s.evaluator.IsCourtFree(ctx, in.CourtID, in.Interval)
	if err != nil {
		return nil, err
	}
	if !courtFree {
		metrics.RecordBooking("rejected")
		return nil, ErrCourtUnavailable
	}

	coachFree, err := s.evaluator.IsCoachFree(ctx, in.CoachID, in.Interval)
	if err != nil {
		return nil, err
	}
	if !coachFree {
		metrics.RecordBooking("rejected")
		return nil, ErrCoachUnavailable
	}

	check, err := s.evaluator.CheckEquipment(ctx, map[string]int{
		equipment.TypeRacket: in.RacketCount,
		equipment.TypeShoes:  in.ShoeCount,
	}, in.Interval)
	if err != nil {
		return nil, err
	}
	if !check.Available {
		metrics.RecordBooking("rejected")
		return nil, check.shortfallError()
	}

	breakdown := in.Breakdown
	if breakdown == nil {
		breakdown, err = s.pricer.Quote(ctx, in.CourtID, in.CoachID, in.Interval.Start, in.Interval.End, in.RacketCount, in.ShoeCount)
		if err != nil {
			return nil, err
		}
	}

	created, err := s.repo.CreateConfirmed(ctx, &Booking{
		UserID:      in.UserID,
		CourtID:     in.CourtID,
		StartTime:   in.Interval.Start,
		EndTime:     in.Interval.End,
		RacketCount: in.RacketCount,
		ShoeCount:   in.ShoeCount,
		CoachID:     in.CoachID,
		Status:      StatusConfirmed,
		Breakdown:   *breakdown,
	})
	if err != nil {
		metrics.RecordBooking("rejected")
		return nil, err
	}

	metrics.RecordBooking("confirmed")
	s.notify(ctx, created, true)
	return created, nil
}

func (s *service) CancelBooking(ctx context.Context, id int64) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status == StatusCancelled {
		return nil, ErrAlreadyCancelled
	}

	if err := s.repo.Cancel(ctx, id); err != nil {
		return nil, err
	}

	cancelled, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	metrics.RecordBookingCancellation()
	s.notify(ctx, cancelled, false)
	return cancelled, nil
}

func (s *service) GetBooking(ctx context.Context, id int64) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetUserBookings(ctx context.Context, userID int64) ([]Booking, error) {
	return s.repo.GetByUser(ctx, userID)
}

func (s *service) GetAllBookings(ctx context.Context) ([]Booking, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) notify(ctx context.Context, b *Booking, confirmed bool) {
	if s.notifier == nil {
		return
	}

	u, err := s.users.GetByID(ctx, b.UserID)
	if err != nil {
		logger.Error("failed to load user for booking email", "booking_id", b.ID, "error", err)
		return
	}
	c, err := s.courts.GetByID(ctx, b.CourtID)
	if err != nil {
		logger.Error("failed to load court for booking email", "booking_id", b.ID, "error", err)
		return
	}

	if confirmed {
		err = s.notifier.BookingConfirmed(ctx, b, u, c)
	} else {
		err = s.notifier.BookingCancelled(ctx, b, u, c)
	}
	if err != nil {
		logger.Error("failed to queue booking email", "booking_id", b.ID, "error", err)
	}
}
