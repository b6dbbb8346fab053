package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordBooking(t *testing.T) {
	before := testutil.ToFloat64(BookingsTotal.WithLabelValues("confirmed"))

	RecordBooking("confirmed")

	after := testutil.ToFloat64(BookingsTotal.WithLabelValues("confirmed"))
	assert.Equal(t, before+1, after)
}

func TestRecordBookingCancellation(t *testing.T) {
	before := testutil.ToFloat64(BookingCancellationsTotal)

	RecordBookingCancellation()

	assert.Equal(t, before+1, testutil.ToFloat64(BookingCancellationsTotal))
}

func TestRecordAvailabilityCheck(t *testing.T) {
	before := testutil.ToFloat64(AvailabilityChecksTotal.WithLabelValues("available"))

	RecordAvailabilityCheck("available")

	assert.Equal(t, before+1, testutil.ToFloat64(AvailabilityChecksTotal.WithLabelValues("available")))
}

func TestRecordEmail(t *testing.T) {
	before := testutil.ToFloat64(EmailsSentTotal.WithLabelValues("confirmation", "queued"))

	RecordEmail("confirmation", "queued")

	assert.Equal(t, before+1, testutil.ToFloat64(EmailsSentTotal.WithLabelValues("confirmation", "queued")))
}
