package pricing

import (
	"fmt"
	"time"
)

type Season string

const (
	SeasonPeak Season = "peak"
	SeasonLow  Season = "low"
)

// SurchargeTier maps a stay-length range (in nights, inclusive on both ends)
// to a percentage markup over the base nightly price.
type SurchargeTier struct {
	MinDays          int     `json:"min_days" bson:"min_days"`
	MaxDays          int     `json:"max_days" bson:"max_days"`
	SurchargePercent float64 `json:"surcharge_percent" bson:"surcharge_percent"`
}

func (t SurchargeTier) Contains(nights int) bool {
	return nights >= t.MinDays && nights <= t.MaxDays
}

type PricingConfig struct {
	PeakSeasonMonths []time.Month    `json:"peak_season_months" bson:"peak_season_months"`
	PeakSeasonTiers  []SurchargeTier `json:"peak_season_tiers" bson:"peak_season_tiers"`
	LowSeasonTiers   []SurchargeTier `json:"low_season_tiers" bson:"low_season_tiers"`
	MinStayDays      int             `json:"min_stay_days" bson:"min_stay_days"`
	MaxStayDays      int             `json:"max_stay_days" bson:"max_stay_days"`
}

// DefaultConfig returns the standard rental pricing schedule: December through
// February is peak season, and short stays carry a surcharge that steps down
// to zero at twenty nights.
func DefaultConfig() *PricingConfig {
	return &PricingConfig{
		PeakSeasonMonths: []time.Month{time.December, time.January, time.February},
		PeakSeasonTiers: []SurchargeTier{
			{MinDays: 1, MaxDays: 7, SurchargePercent: 30},
			{MinDays: 8, MaxDays: 14, SurchargePercent: 20},
			{MinDays: 15, MaxDays: 19, SurchargePercent: 15},
			{MinDays: 20, MaxDays: 30, SurchargePercent: 0},
		},
		LowSeasonTiers: []SurchargeTier{
			{MinDays: 1, MaxDays: 7, SurchargePercent: 20},
			{MinDays: 8, MaxDays: 14, SurchargePercent: 17},
			{MinDays: 15, MaxDays: 19, SurchargePercent: 13},
			{MinDays: 20, MaxDays: 30, SurchargePercent: 0},
		},
		MinStayDays: 1,
		MaxStayDays: 30,
	}
}

// Validate checks the config once at load time so the calculation functions
// never have to. Tier lists must be sorted, contiguous, non-overlapping, and
// the surcharge must not increase with stay length.
func (c *PricingConfig) Validate() error {
	if len(c.PeakSeasonMonths) == 0 {
		return fmt.Errorf("pricing config: no peak season months")
	}
	for _, m := range c.PeakSeasonMonths {
		if m < time.January || m > time.December {
			return fmt.Errorf("pricing config: invalid month %d", m)
		}
	}
	if err := validateTiers("peak", c.PeakSeasonTiers); err != nil {
		return err
	}
	if err := validateTiers("low", c.LowSeasonTiers); err != nil {
		return err
	}
	if c.MinStayDays < 1 || c.MaxStayDays < c.MinStayDays {
		return fmt.Errorf("pricing config: invalid stay bounds %d-%d", c.MinStayDays, c.MaxStayDays)
	}
	return nil
}

func validateTiers(season string, tiers []SurchargeTier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("pricing config: %s season has no tiers", season)
	}
	for i, tier := range tiers {
		if tier.MinDays < 1 || tier.MaxDays < tier.MinDays {
			return fmt.Errorf("pricing config: %s tier %d has invalid range %d-%d", season, i, tier.MinDays, tier.MaxDays)
		}
		if tier.SurchargePercent < 0 {
			return fmt.Errorf("pricing config: %s tier %d has negative surcharge", season, i)
		}
		if i == 0 {
			continue
		}
		prev := tiers[i-1]
		if tier.MinDays != prev.MaxDays+1 {
			return fmt.Errorf("pricing config: %s tiers %d and %d are not contiguous", season, i-1, i)
		}
		if tier.SurchargePercent > prev.SurchargePercent {
			return fmt.Errorf("pricing config: %s tier %d surcharge increases with stay length", season, i)
		}
	}
	return nil
}

func (c *PricingConfig) tiersFor(season Season) []SurchargeTier {
	if season == SeasonPeak {
		return c.PeakSeasonTiers
	}
	return c.LowSeasonTiers
}
