package pricing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
)

const (
	RuleTypePeak    = "peak"
	RuleTypeWeekend = "weekend"
	RuleTypeHoliday = "holiday"
	RuleTypeCustom  = "custom"
)

var clockRe = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// Rule is a time-conditioned pricing adjustment. A rule carries a clock-time
// window, a day-of-week set, or both; each condition is matched independently
// against the booking's start instant. RuleType is a descriptive label only.
type Rule struct {
	ID         int64         `db:"id" json:"id"`
	Name       string        `db:"name" json:"name"`
	RuleType   string        `db:"rule_type" json:"rule_type"`
	StartClock *string       `db:"start_clock" json:"start_clock,omitempty"`
	EndClock   *string       `db:"end_clock" json:"end_clock,omitempty"`
	DaysOfWeek pq.Int64Array `db:"days_of_week" json:"days_of_week"`
	Multiplier float64       `db:"multiplier" json:"multiplier"`
	Surcharge  float64       `db:"surcharge" json:"surcharge"`
	IsActive   bool          `db:"is_active" json:"is_active"`
	CreatedAt  time.Time     `db:"created_at" json:"created_at"`
}

// HasClockWindow reports whether the rule carries a clock-time condition.
func (r *Rule) HasClockWindow() bool {
	return r.StartClock != nil && r.EndClock != nil
}

// MatchesClock reports whether t's clock time falls inside the rule's
// [start, end) window, compared in minutes of day.
func (r *Rule) MatchesClock(t time.Time) bool {
	if !r.HasClockWindow() {
		return false
	}

	startMin, err := parseClock(*r.StartClock)
	if err != nil {
		return false
	}
	endMin, err := parseClock(*r.EndClock)
	if err != nil {
		return false
	}

	m := t.Hour()*60 + t.Minute()
	return m >= startMin && m < endMin
}

// MatchesDay reports whether t's weekday (0=Sunday..6=Saturday) is in the
// rule's day set.
func (r *Rule) MatchesDay(t time.Time) bool {
	day := int64(t.Weekday())
	for _, d := range r.DaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}

// ValidClock reports whether s is a 24-hour "HH:MM" string.
func ValidClock(s string) bool {
	return clockRe.MatchString(s)
}

func parseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, err
	}
	min, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, err
	}
	return hour*60 + min, nil
}

// Breakdown is an itemized price quote. Monetary fields are rounded to two
// decimals; DurationHours is left unrounded.
type Breakdown struct {
	BasePrice     float64 `json:"base_price"`
	PeakHourFee   float64 `json:"peak_hour_fee"`
	WeekendFee    float64 `json:"weekend_fee"`
	EquipmentFee  float64 `json:"equipment_fee"`
	CoachFee      float64 `json:"coach_fee"`
	Total         float64 `json:"total"`
	DurationHours float64 `json:"duration_hours"`
}

// Value implements driver.Valuer so a breakdown can be stored as jsonb.
func (b Breakdown) Value() (driver.Value, error) {
	return json.Marshal(b)
}

// Scan implements sql.Scanner for jsonb columns.
func (b *Breakdown) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, b)
	case string:
		return json.Unmarshal([]byte(v), b)
	case nil:
		*b = Breakdown{}
		return nil
	default:
		return errors.New("unsupported type for pricing breakdown")
	}
}

type CreateRuleRequest struct {
	Name       string   `json:"name" binding:"required"`
	RuleType   string   `json:"rule_type" binding:"required,oneof=peak weekend holiday custom"`
	StartClock *string  `json:"start_clock"`
	EndClock   *string  `json:"end_clock"`
	DaysOfWeek []int64  `json:"days_of_week" binding:"omitempty,dive,gte=0,lte=6"`
	Multiplier *float64 `json:"multiplier" binding:"omitempty,gte=0"`
	Surcharge  *float64 `json:"surcharge" binding:"omitempty,gte=0"`
	IsActive   *bool    `json:"is_active"`
}

type UpdateRuleRequest struct {
	Name       *string  `json:"name"`
	RuleType   *string  `json:"rule_type" binding:"omitempty,oneof=peak weekend holiday custom"`
	StartClock *string  `json:"start_clock"`
	EndClock   *string  `json:"end_clock"`
	DaysOfWeek []int64  `json:"days_of_week" binding:"omitempty,dive,gte=0,lte=6"`
	Multiplier *float64 `json:"multiplier" binding:"omitempty,gte=0"`
	Surcharge  *float64 `json:"surcharge" binding:"omitempty,gte=0"`
	IsActive   *bool    `json:"is_active"`
}

type QuoteRequest struct {
	CourtID     int64     `json:"court_id" binding:"required"`
	CoachID     *int64    `json:"coach_id"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	RacketCount int       `json:"racket_count" binding:"gte=0"`
	ShoeCount   int       `json:"shoe_count" binding:"gte=0"`
}
