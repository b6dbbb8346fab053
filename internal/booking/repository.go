package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"courtbook/internal/coach"
	"courtbook/internal/court"
	"courtbook/internal/equipment"
)

const bookingColumns = "id, user_id, court_id, start_time, end_time, racket_count, shoe_count, coach_id, status, pricing_breakdown, created_at"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateConfirmed(ctx context.Context, b *Booking) (*Booking, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock the court row so concurrent requests for the same court serialize
	// on the availability re-check below.
	var courtID int64
	err = tx.GetContext(ctx, &courtID, "SELECT id FROM courts WHERE id = $1 FOR UPDATE", b.CourtID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, court.ErrCourtNotFound
		}
		return nil, fmt.Errorf("lock court: %w", err)
	}

	if b.CoachID != nil {
		var coachID int64
		err = tx.GetContext(ctx, &coachID, "SELECT id FROM coaches WHERE id = $1 FOR UPDATE", *b.CoachID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, coach.ErrCoachNotFound
			}
			return nil, fmt.Errorf("lock coach: %w", err)
		}
	}

	var courtTaken bool
	err = tx.GetContext(ctx, &courtTaken,
		"SELECT EXISTS(SELECT 1 FROM bookings WHERE court_id = $1 AND status = 'confirmed' AND start_time < $3 AND end_time > $2)",
		b.CourtID, b.StartTime, b.EndTime)
	if err != nil {
		return nil, fmt.Errorf("check court conflicts: %w", err)
	}
	if courtTaken {
		return nil, ErrCourtUnavailable
	}

	if b.CoachID != nil {
		var coachTaken bool
		err = tx.GetContext(ctx, &coachTaken,
			"SELECT EXISTS(SELECT 1 FROM bookings WHERE coach_id = $1 AND status = 'confirmed' AND start_time < $3 AND end_time > $2)",
			*b.CoachID, b.StartTime, b.EndTime)
		if err != nil {
			return nil, fmt.Errorf("check coach conflicts: %w", err)
		}
		if coachTaken {
			return nil, ErrCoachUnavailable
		}
	}

	if b.RacketCount > 0 {
		if err := r.checkStockTx(ctx, tx, equipment.TypeRacket, "racket_count", b.RacketCount, b.Interval()); err != nil {
			return nil, err
		}
	}
	if b.ShoeCount > 0 {
		if err := r.checkStockTx(ctx, tx, equipment.TypeShoes, "shoe_count", b.ShoeCount, b.Interval()); err != nil {
			return nil, err
		}
	}

	var created Booking
	err = tx.GetContext(ctx, &created,
		`INSERT INTO bookings (user_id, court_id, start_time, end_time, racket_count, shoe_count, coach_id, status, pricing_breakdown)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+bookingColumns,
		b.UserID, b.CourtID, b.StartTime, b.EndTime, b.RacketCount, b.ShoeCount, b.CoachID, b.Status, b.Breakdown)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit booking: %w", err)
	}
	return &created, nil
}

// checkStockTx verifies that the pool for equipmentType still covers the
// requested quantity once every overlapping confirmed booking is counted.
// The equipment row is locked first: bookings on different courts share no
// court-row lock, so without it two writers could both read the pool sum
// before either insert lands and oversell the stock.
func (r *repository) checkStockTx(ctx context.Context, tx *sqlx.Tx, equipmentType, sumColumn string, requested int, iv Interval) error {
	var totalStock int
	err := tx.GetContext(ctx, &totalStock, "SELECT total_stock FROM equipment WHERE type = $1 FOR UPDATE", equipmentType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &UnknownEquipmentError{Type: equipmentType}
		}
		return fmt.Errorf("load equipment stock: %w", err)
	}

	var booked int
	err = tx.GetContext(ctx, &booked,
		"SELECT COALESCE(SUM("+sumColumn+"), 0) FROM bookings WHERE status = 'confirmed' AND start_time < $2 AND end_time > $1",
		iv.Start, iv.End)
	if err != nil {
		return fmt.Errorf("sum booked equipment: %w", err)
	}

	if available := totalStock - booked; available < requested {
		return &EquipmentShortfallError{Type: equipmentType, Available: available}
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	var b Booking
	err := r.db.GetContext(ctx, &b, "SELECT "+bookingColumns+" FROM bookings WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}

func (r *repository) GetByUser(ctx context.Context, userID int64) ([]Booking, error) {
	bookings := []Booking{}
	err := r.db.SelectContext(ctx, &bookings,
		"SELECT "+bookingColumns+" FROM bookings WHERE user_id = $1 ORDER BY start_time DESC", userID)
	if err != nil {
		return nil, fmt.Errorf("list user bookings: %w", err)
	}
	return bookings, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Booking, error) {
	bookings := []Booking{}
	err := r.db.SelectContext(ctx, &bookings,
		"SELECT "+bookingColumns+" FROM bookings ORDER BY start_time DESC")
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

func (r *repository) Cancel(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE bookings SET status = 'cancelled' WHERE id = $1 AND status <> 'cancelled'", id)
	if err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}
	if rows == 0 {
		return ErrAlreadyCancelled
	}
	return nil
}

func (r *repository) FindOverlappingForCourt(ctx context.Context, courtID int64, iv Interval) ([]Booking, error) {
	bookings := []Booking{}
	err := r.db.SelectContext(ctx, &bookings,
		"SELECT "+bookingColumns+" FROM bookings WHERE court_id = $1 AND status = 'confirmed' AND start_time < $3 AND end_time > $2",
		courtID, iv.Start, iv.End)
	if err != nil {
		return nil, fmt.Errorf("find court conflicts: %w", err)
	}
	return bookings, nil
}

func (r *repository) FindOverlappingForCoach(ctx context.Context, coachID int64, iv Interval) ([]Booking, error) {
	bookings := []Booking{}
	err := r.db.SelectContext(ctx, &bookings,
		"SELECT "+bookingColumns+" FROM bookings WHERE coach_id = $1 AND status = 'confirmed' AND start_time < $3 AND end_time > $2",
		coachID, iv.Start, iv.End)
	if err != nil {
		return nil, fmt.Errorf("find coach conflicts: %w", err)
	}
	return bookings, nil
}

func (r *repository) FindOverlappingConfirmed(ctx context.Context, iv Interval) ([]Booking, error) {
	bookings := []Booking{}
	err := r.db.SelectContext(ctx, &bookings,
		"SELECT "+bookingColumns+" FROM bookings WHERE status = 'confirmed' AND start_time < $2 AND end_time > $1",
		iv.Start, iv.End)
	if err != nil {
		return nil, fmt.Errorf("find overlapping bookings: %w", err)
	}
	return bookings, nil
}
