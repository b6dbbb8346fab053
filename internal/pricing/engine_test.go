package pricing

import (
	"testing"
	"time"

	"courtbook/internal/coach"
	"courtbook/internal/court"
	"courtbook/internal/equipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func testCourt(basePrice float64) *court.Court {
	return &court.Court{ID: 1, Name: "Court A", Type: court.TypeIndoor, BasePrice: basePrice, IsActive: true}
}

// 2025-06-14 is a Saturday.
var saturday10 = time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC)

func TestComputeBaseOnly(t *testing.T) {
	b := Compute(QuoteInput{
		Court: testCourt(25),
		Start: saturday10,
		End:   saturday10.Add(time.Hour),
	})

	assert.Equal(t, 25.0, b.BasePrice)
	assert.Equal(t, 0.0, b.PeakHourFee)
	assert.Equal(t, 0.0, b.WeekendFee)
	assert.Equal(t, 25.0, b.Total)
	assert.Equal(t, 1.0, b.DurationHours)
}

func TestComputePeakMultiplier(t *testing.T) {
	rule := Rule{
		Name:       "evening peak",
		RuleType:   RuleTypePeak,
		StartClock: strPtr("09:00"),
		EndClock:   strPtr("12:00"),
		Multiplier: 1.5,
		IsActive:   true,
	}

	b := Compute(QuoteInput{
		Court: testCourt(25),
		Start: saturday10,
		End:   saturday10.Add(time.Hour),
		Rules: []Rule{rule},
	})

	assert.Equal(t, 12.5, b.PeakHourFee)
	assert.Equal(t, 37.5, b.Total)
}

func TestComputeWeekendSurcharge(t *testing.T) {
	rule := Rule{
		Name:       "weekend",
		RuleType:   RuleTypeWeekend,
		DaysOfWeek: []int64{0, 6},
		Multiplier: 1,
		Surcharge:  10,
		IsActive:   true,
	}

	b := Compute(QuoteInput{
		Court: testCourt(25),
		Start: saturday10,
		End:   saturday10.Add(2 * time.Hour),
		Rules: []Rule{rule},
	})

	assert.Equal(t, 50.0, b.BasePrice)
	assert.Equal(t, 20.0, b.WeekendFee)
	assert.Equal(t, 70.0, b.Total)
	assert.Equal(t, 2.0, b.DurationHours)
}

func TestComputeMultiplierAndSurchargeSameRule(t *testing.T) {
	rule := Rule{
		Name:       "holiday peak",
		RuleType:   RuleTypePeak,
		StartClock: strPtr("08:00"),
		EndClock:   strPtr("20:00"),
		Multiplier: 2,
		Surcharge:  5,
		IsActive:   true,
	}

	b := Compute(QuoteInput{
		Court: testCourt(10),
		Start: saturday10,
		End:   saturday10.Add(time.Hour),
		Rules: []Rule{rule},
	})

	// base*1 from the multiplier plus surcharge*1h
	assert.Equal(t, 15.0, b.PeakHourFee)
	assert.Equal(t, 25.0, b.Total)
}

func TestComputeCustomRuleFeedsBothBuckets(t *testing.T) {
	rule := Rule{
		Name:       "saturday morning",
		RuleType:   RuleTypeCustom,
		StartClock: strPtr("09:00"),
		EndClock:   strPtr("12:00"),
		DaysOfWeek: []int64{6},
		Multiplier: 1.2,
		IsActive:   true,
	}

	b := Compute(QuoteInput{
		Court: testCourt(50),
		Start: saturday10,
		End:   saturday10.Add(time.Hour),
		Rules: []Rule{rule},
	})

	assert.Equal(t, 10.0, b.PeakHourFee)
	assert.Equal(t, 10.0, b.WeekendFee)
	assert.Equal(t, 70.0, b.Total)
}

func TestComputeRulesStack(t *testing.T) {
	peak := Rule{
		RuleType:   RuleTypePeak,
		StartClock: strPtr("09:00"),
		EndClock:   strPtr("12:00"),
		Multiplier: 1.5,
		IsActive:   true,
	}
	weekend := Rule{
		RuleType:   RuleTypeWeekend,
		DaysOfWeek: []int64{0, 6},
		Surcharge:  10,
		IsActive:   true,
	}

	b := Compute(QuoteInput{
		Court: testCourt(25),
		Start: saturday10,
		End:   saturday10.Add(time.Hour),
		Rules: []Rule{peak, weekend},
	})

	assert.Equal(t, 12.5, b.PeakHourFee)
	assert.Equal(t, 10.0, b.WeekendFee)
	assert.Equal(t, 47.5, b.Total)
}

func TestComputeInactiveRuleIgnored(t *testing.T) {
	rule := Rule{
		RuleType:   RuleTypePeak,
		StartClock: strPtr("09:00"),
		EndClock:   strPtr("12:00"),
		Multiplier: 3,
		IsActive:   false,
	}

	b := Compute(QuoteInput{
		Court: testCourt(25),
		Start: saturday10,
		End:   saturday10.Add(time.Hour),
		Rules: []Rule{rule},
	})

	assert.Equal(t, 0.0, b.PeakHourFee)
	assert.Equal(t, 25.0, b.Total)
}

func TestComputeClockWindowHalfOpen(t *testing.T) {
	rule := Rule{
		RuleType:   RuleTypePeak,
		StartClock: strPtr("10:00"),
		EndClock:   strPtr("11:00"),
		Multiplier: 2,
		IsActive:   true,
	}

	// Start exactly at the window start matches.
	b := Compute(QuoteInput{
		Court: testCourt(25),
		Start: saturday10,
		End:   saturday10.Add(time.Hour),
		Rules: []Rule{rule},
	})
	assert.Equal(t, 25.0, b.PeakHourFee)

	// Start exactly at the window end does not.
	b = Compute(QuoteInput{
		Court: testCourt(25),
		Start: saturday10.Add(time.Hour),
		End:   saturday10.Add(2 * time.Hour),
		Rules: []Rule{rule},
	})
	assert.Equal(t, 0.0, b.PeakHourFee)
}

func TestComputeEquipmentFee(t *testing.T) {
	racket := &equipment.Equipment{ID: 1, Type: equipment.TypeRacket, TotalStock: 10, PricePerUnit: 3}
	shoes := &equipment.Equipment{ID: 2, Type: equipment.TypeShoes, TotalStock: 5, PricePerUnit: 2}

	b := Compute(QuoteInput{
		Court:       testCourt(25),
		Start:       saturday10,
		End:         saturday10.Add(2 * time.Hour),
		RacketCount: 2,
		ShoeCount:   1,
		Racket:      racket,
		Shoes:       shoes,
	})

	// 2 rackets * 3 * 2h + 1 pair * 2 * 2h
	assert.Equal(t, 16.0, b.EquipmentFee)
}

func TestComputeMissingEquipmentRecordPricesZero(t *testing.T) {
	b := Compute(QuoteInput{
		Court:       testCourt(25),
		Start:       saturday10,
		End:         saturday10.Add(time.Hour),
		RacketCount: 3,
	})

	assert.Equal(t, 0.0, b.EquipmentFee)
	assert.Equal(t, 25.0, b.Total)
}

func TestComputeCoachFee(t *testing.T) {
	available := &coach.Coach{ID: 1, Name: "Anna", HourlyRate: 40, IsAvailable: true}
	unavailable := &coach.Coach{ID: 2, Name: "Bo", HourlyRate: 40, IsAvailable: false}

	b := Compute(QuoteInput{
		Court: testCourt(25),
		Start: saturday10,
		End:   saturday10.Add(time.Hour + 30*time.Minute),
		Coach: available,
	})
	assert.Equal(t, 60.0, b.CoachFee)
	assert.Equal(t, 1.5, b.DurationHours)

	b = Compute(QuoteInput{
		Court: testCourt(25),
		Start: saturday10,
		End:   saturday10.Add(time.Hour),
		Coach: unavailable,
	})
	assert.Equal(t, 0.0, b.CoachFee)
}

func TestComputeDeterministic(t *testing.T) {
	in := QuoteInput{
		Court: testCourt(33.33),
		Start: saturday10,
		End:   saturday10.Add(90 * time.Minute),
		Rules: []Rule{
			{RuleType: RuleTypePeak, StartClock: strPtr("09:00"), EndClock: strPtr("12:00"), Multiplier: 1.25, Surcharge: 2.5, IsActive: true},
			{RuleType: RuleTypeWeekend, DaysOfWeek: []int64{6}, Surcharge: 7.77, IsActive: true},
		},
	}

	first := Compute(in)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, Compute(in))
	}
}

func TestRoundingIdempotent(t *testing.T) {
	b := Compute(QuoteInput{
		Court: testCourt(33.33),
		Start: saturday10,
		End:   saturday10.Add(100 * time.Minute),
	})

	assert.Equal(t, b.BasePrice, Round2(b.BasePrice))
	assert.Equal(t, b.Total, Round2(b.Total))
}

func TestRound2HalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 0.13, Round2(0.125))
	assert.Equal(t, -0.13, Round2(-0.125))
	assert.Equal(t, 2.35, Round2(2.346))
}

func TestRuleMatchesDay(t *testing.T) {
	rule := Rule{DaysOfWeek: []int64{0, 6}}

	sunday := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC)

	assert.True(t, rule.MatchesDay(saturday10))
	assert.True(t, rule.MatchesDay(sunday))
	assert.False(t, rule.MatchesDay(monday))
}

func TestValidClock(t *testing.T) {
	assert.True(t, ValidClock("00:00"))
	assert.True(t, ValidClock("23:59"))
	assert.False(t, ValidClock("24:00"))
	assert.False(t, ValidClock("9:00"))
	assert.False(t, ValidClock("10:60"))
}
