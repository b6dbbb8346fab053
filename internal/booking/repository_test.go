package booking

import (
	"context"
	"regexp"
	"testing"
	"time"

	"courtbook/internal/pricing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

func bookingCols() []string {
	return []string{"id", "user_id", "court_id", "start_time", "end_time", "racket_count", "shoe_count", "coach_id", "status", "pricing_breakdown", "created_at"}
}

func TestCreateConfirmed(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	iv := testInterval()
	breakdown := pricing.Breakdown{BasePrice: 25, Total: 25, DurationHours: 1}
	b := &Booking{
		UserID:    7,
		CourtID:   1,
		StartTime: iv.Start,
		EndTime:   iv.End,
		Status:    StatusConfirmed,
		Breakdown: breakdown,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM courts WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM bookings WHERE court_id = $1 AND status = 'confirmed' AND start_time < $3 AND end_time > $2)")).
		WithArgs(int64(1), iv.Start, iv.End).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("INSERT INTO bookings").
		WithArgs(int64(7), int64(1), iv.Start, iv.End, 0, 0, nil, StatusConfirmed, breakdown).
		WillReturnRows(sqlmock.NewRows(bookingCols()).
			AddRow(42, 7, 1, iv.Start, iv.End, 0, 0, nil, StatusConfirmed, []byte(`{"base_price":25,"peak_hour_fee":0,"weekend_fee":0,"equipment_fee":0,"coach_fee":0,"total":25,"duration_hours":1}`), time.Now()))
	mock.ExpectCommit()

	created, err := repo.CreateConfirmed(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, 25.0, created.Breakdown.Total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateConfirmedCourtConflict(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	iv := testInterval()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM courts WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM bookings WHERE court_id = $1 AND status = 'confirmed' AND start_time < $3 AND end_time > $2)")).
		WithArgs(int64(1), iv.Start, iv.End).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, err := repo.CreateConfirmed(context.Background(), &Booking{
		UserID: 7, CourtID: 1, StartTime: iv.Start, EndTime: iv.End, Status: StatusConfirmed,
	})
	assert.ErrorIs(t, err, ErrCourtUnavailable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateConfirmedEquipmentShortfall(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	iv := testInterval()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM courts WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM bookings WHERE court_id = $1 AND status = 'confirmed' AND start_time < $3 AND end_time > $2)")).
		WithArgs(int64(1), iv.Start, iv.End).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT total_stock FROM equipment WHERE type = $1 FOR UPDATE")).
		WithArgs("racket").
		WillReturnRows(sqlmock.NewRows([]string{"total_stock"}).AddRow(10))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(racket_count), 0) FROM bookings WHERE status = 'confirmed' AND start_time < $2 AND end_time > $1")).
		WithArgs(iv.Start, iv.End).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(9))
	mock.ExpectRollback()

	_, err := repo.CreateConfirmed(context.Background(), &Booking{
		UserID: 7, CourtID: 1, StartTime: iv.Start, EndTime: iv.End, RacketCount: 2, Status: StatusConfirmed,
	})

	var shortfall *EquipmentShortfallError
	require.ErrorAs(t, err, &shortfall)
	assert.Equal(t, 1, shortfall.Available)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateConfirmedLocksEquipmentRow(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	iv := testInterval()
	breakdown := pricing.Breakdown{BasePrice: 25, EquipmentFee: 12, Total: 37, DurationHours: 1}

	// The court-row lock does not cover bookings on other courts, so the
	// equipment read must itself take FOR UPDATE to serialize pool writers.
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM courts WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM bookings WHERE court_id = $1 AND status = 'confirmed' AND start_time < $3 AND end_time > $2)")).
		WithArgs(int64(2), iv.Start, iv.End).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT total_stock FROM equipment WHERE type = $1 FOR UPDATE")).
		WithArgs("racket").
		WillReturnRows(sqlmock.NewRows([]string{"total_stock"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(racket_count), 0) FROM bookings WHERE status = 'confirmed' AND start_time < $2 AND end_time > $1")).
		WithArgs(iv.Start, iv.End).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))
	mock.ExpectQuery("INSERT INTO bookings").
		WithArgs(int64(7), int64(2), iv.Start, iv.End, 2, 0, nil, StatusConfirmed, breakdown).
		WillReturnRows(sqlmock.NewRows(bookingCols()).
			AddRow(44, 7, 2, iv.Start, iv.End, 2, 0, nil, StatusConfirmed, []byte(`{}`), time.Now()))
	mock.ExpectCommit()

	created, err := repo.CreateConfirmed(context.Background(), &Booking{
		UserID: 7, CourtID: 2, StartTime: iv.Start, EndTime: iv.End,
		RacketCount: 2, Status: StatusConfirmed, Breakdown: breakdown,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(44), created.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateConfirmedLocksCoach(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	iv := testInterval()
	coachID := int64(3)
	breakdown := pricing.Breakdown{BasePrice: 25, CoachFee: 40, Total: 65, DurationHours: 1}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM courts WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM coaches WHERE id = $1 FOR UPDATE")).
		WithArgs(coachID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM bookings WHERE court_id = $1 AND status = 'confirmed' AND start_time < $3 AND end_time > $2)")).
		WithArgs(int64(1), iv.Start, iv.End).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM bookings WHERE coach_id = $1 AND status = 'confirmed' AND start_time < $3 AND end_time > $2)")).
		WithArgs(coachID, iv.Start, iv.End).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("INSERT INTO bookings").
		WithArgs(int64(7), int64(1), iv.Start, iv.End, 0, 0, &coachID, StatusConfirmed, breakdown).
		WillReturnRows(sqlmock.NewRows(bookingCols()).
			AddRow(43, 7, 1, iv.Start, iv.End, 0, 0, coachID, StatusConfirmed, []byte(`{}`), time.Now()))
	mock.ExpectCommit()

	created, err := repo.CreateConfirmed(context.Background(), &Booking{
		UserID: 7, CourtID: 1, StartTime: iv.Start, EndTime: iv.End,
		CoachID: &coachID, Status: StatusConfirmed, Breakdown: breakdown,
	})
	require.NoError(t, err)
	require.NotNil(t, created.CoachID)
	assert.Equal(t, coachID, *created.CoachID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBookingNotFound(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery("SELECT .+ FROM bookings WHERE id = ").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(bookingCols()))

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = 'cancelled' WHERE id = $1 AND status <> 'cancelled'")).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Cancel(context.Background(), 42))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = 'cancelled' WHERE id = $1 AND status <> 'cancelled'")).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Cancel(context.Background(), 42), ErrAlreadyCancelled)
}

func TestFindOverlappingForCourt(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	iv := testInterval()
	rows := sqlmock.NewRows(bookingCols()).
		AddRow(1, 7, 1, iv.Start, iv.End, 0, 0, nil, StatusConfirmed, []byte(`{}`), time.Now())

	mock.ExpectQuery("SELECT .+ FROM bookings WHERE court_id = ").
		WithArgs(int64(1), iv.Start, iv.End).
		WillReturnRows(rows)

	bookings, err := repo.FindOverlappingForCourt(context.Background(), 1, iv)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, StatusConfirmed, bookings[0].Status)
}
