package pricing

import (
	"math"
	"time"

	"courtbook/internal/coach"
	"courtbook/internal/court"
	"courtbook/internal/equipment"
)

// QuoteInput carries everything Compute needs, already fetched. Racket and
// Shoes are the inventory records for the two equipment types and may be nil
// when no record exists; a missing record prices as zero rather than failing,
// unlike the availability check which treats it as an error.
type QuoteInput struct {
	Court       *court.Court
	Start       time.Time
	End         time.Time
	Coach       *coach.Coach
	RacketCount int
	ShoeCount   int
	Racket      *equipment.Equipment
	Shoes       *equipment.Equipment
	Rules       []Rule
}

// Compute produces an itemized breakdown for a booking request. It is a pure
// function: identical inputs always yield an identical breakdown.
//
// Rules are evaluated independently and additively. A rule whose clock window
// contains the start instant contributes to the peak-hour fee; a rule whose
// day set contains the start weekday contributes to the weekend fee. A rule
// carrying both conditions is evaluated twice, once per bucket. For a matching
// rule, multiplier > 1 adds basePrice*(multiplier-1) and surcharge > 0 adds
// surcharge*durationHours; both can apply from the same rule.
//
// An unavailable coach prices as zero instead of failing. Monetary fields are
// rounded half away from zero to two decimals on the final values only.
func Compute(in QuoteInput) Breakdown {
	hours := in.End.Sub(in.Start).Hours()
	base := in.Court.BasePrice * hours

	var peakFee, weekendFee, equipmentFee, coachFee float64

	for _, rule := range in.Rules {
		if !rule.IsActive {
			continue
		}

		if rule.MatchesClock(in.Start) {
			if rule.Multiplier > 1 {
				peakFee += base * (rule.Multiplier - 1)
			}
			if rule.Surcharge > 0 {
				peakFee += rule.Surcharge * hours
			}
		}

		if rule.MatchesDay(in.Start) {
			if rule.Multiplier > 1 {
				weekendFee += base * (rule.Multiplier - 1)
			}
			if rule.Surcharge > 0 {
				weekendFee += rule.Surcharge * hours
			}
		}
	}

	if in.RacketCount > 0 && in.Racket != nil {
		equipmentFee += in.Racket.PricePerUnit * float64(in.RacketCount) * hours
	}
	if in.ShoeCount > 0 && in.Shoes != nil {
		equipmentFee += in.Shoes.PricePerUnit * float64(in.ShoeCount) * hours
	}

	if in.Coach != nil && in.Coach.IsAvailable {
		coachFee = in.Coach.HourlyRate * hours
	}

	total := base + peakFee + weekendFee + equipmentFee + coachFee

	return Breakdown{
		BasePrice:     Round2(base),
		PeakHourFee:   Round2(peakFee),
		WeekendFee:    Round2(weekendFee),
		EquipmentFee:  Round2(equipmentFee),
		CoachFee:      Round2(coachFee),
		Total:         Round2(total),
		DurationHours: hours,
	}
}

// Round2 rounds to two decimals, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
