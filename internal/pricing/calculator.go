package pricing

import (
	"errors"
	"math"
	"time"
)

var (
	ErrInvalidPrice     = errors.New("monthly price must be greater than zero")
	ErrInvalidDateRange = errors.New("check-out must be after check-in")
)

// BookingCalculation is the derived price breakdown for a stay. It is computed
// fresh per request and never persisted on its own; bookings store a snapshot.
type BookingCalculation struct {
	BaseDailyPrice   float64 `json:"base_daily_price" bson:"base_daily_price"`
	FinalDailyPrice  float64 `json:"final_daily_price" bson:"final_daily_price"`
	Season           Season  `json:"season" bson:"season"`
	Nights           int     `json:"nights" bson:"nights"`
	SurchargePercent float64 `json:"surcharge_percent" bson:"surcharge_percent"`
	Subtotal         float64 `json:"subtotal" bson:"subtotal"`
	Total            float64 `json:"total" bson:"total"`
}

// IsPeakSeason reports whether the date's calendar month is a peak month.
// Only the month matters; year and time zone are ignored.
func IsPeakSeason(date time.Time, config *PricingConfig) bool {
	if config == nil {
		config = DefaultConfig()
	}
	month := date.Month()
	for _, m := range config.PeakSeasonMonths {
		if m == month {
			return true
		}
	}
	return false
}

// StaySeason walks every calendar day in [checkIn, checkOut). A single peak
// day prices the whole stay as peak.
func StaySeason(checkIn, checkOut time.Time, config *PricingConfig) Season {
	if config == nil {
		config = DefaultConfig()
	}
	for d := checkIn; d.Before(checkOut); d = d.AddDate(0, 0, 1) {
		if IsPeakSeason(d, config) {
			return SeasonPeak
		}
	}
	return SeasonLow
}

// SurchargeTierFor returns the tier whose range contains nights. Stays longer
// than the last tier's range fall back to the last tier, so a schedule ending
// in a 0% tier keeps long stays surcharge-free. Returns nil when nights is
// below the first tier.
func SurchargeTierFor(nights int, season Season, config *PricingConfig) *SurchargeTier {
	if config == nil {
		config = DefaultConfig()
	}
	tiers := config.tiersFor(season)
	if len(tiers) == 0 {
		return nil
	}
	for i := range tiers {
		if tiers[i].Contains(nights) {
			return &tiers[i]
		}
	}
	if last := tiers[len(tiers)-1]; nights > last.MaxDays {
		return &tiers[len(tiers)-1]
	}
	return nil
}

// CalculateNights returns ceil((checkOut - checkIn) / 24h).
func CalculateNights(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}

// CalculateBookingPrice prices a stay: base nightly price is the monthly price
// over a fixed 30-day divisor, marked up by the surcharge tier matching the
// stay's length and season. Subtotal is the un-surcharged reference total.
func CalculateBookingPrice(monthlyPrice float64, checkIn, checkOut time.Time, config *PricingConfig) (*BookingCalculation, error) {
	if monthlyPrice <= 0 {
		return nil, ErrInvalidPrice
	}
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidDateRange
	}
	if config == nil {
		config = DefaultConfig()
	}

	nights := CalculateNights(checkIn, checkOut)
	season := StaySeason(checkIn, checkOut, config)

	surcharge := 0.0
	if tier := SurchargeTierFor(nights, season, config); tier != nil {
		surcharge = tier.SurchargePercent
	}

	baseDaily := monthlyPrice / 30
	finalDaily := baseDaily * (1 + surcharge/100)

	return &BookingCalculation{
		BaseDailyPrice:   baseDaily,
		FinalDailyPrice:  finalDaily,
		Season:           season,
		Nights:           nights,
		SurchargePercent: surcharge,
		Subtotal:         baseDaily * float64(nights),
		Total:            finalDaily * float64(nights),
	}, nil
}
