package booking

import "context"

type Repository interface {
	// CreateConfirmed re-checks court, coach and equipment availability inside
	// a single transaction and inserts the booking only if everything still
	// holds. It is the authoritative guard against double booking.
	CreateConfirmed(ctx context.Context, b *Booking) (*Booking, error)

	GetByID(ctx context.Context, id int64) (*Booking, error)
	GetByUser(ctx context.Context, userID int64) ([]Booking, error)
	GetAll(ctx context.Context) ([]Booking, error)

	// Cancel flips a confirmed booking to cancelled. ErrAlreadyCancelled if it
	// was cancelled before the update landed.
	Cancel(ctx context.Context, id int64) error

	FindOverlappingForCourt(ctx context.Context, courtID int64, iv Interval) ([]Booking, error)
	FindOverlappingForCoach(ctx context.Context, coachID int64, iv Interval) ([]Booking, error)
	FindOverlappingConfirmed(ctx context.Context, iv Interval) ([]Booking, error)
}
