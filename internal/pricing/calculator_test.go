package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestTiersPartitionStayRange(t *testing.T) {
	cfg := DefaultConfig()

	for _, season := range []Season{SeasonPeak, SeasonLow} {
		for nights := 1; nights <= 30; nights++ {
			tier := SurchargeTierFor(nights, season, cfg)
			require.NotNilf(t, tier, "nights=%d season=%s", nights, season)
			assert.True(t, tier.Contains(nights), "nights=%d season=%s", nights, season)
		}
	}
}

func TestSurchargeMonotonicity(t *testing.T) {
	cfg := DefaultConfig()

	for _, season := range []Season{SeasonPeak, SeasonLow} {
		prev := SurchargeTierFor(1, season, cfg).SurchargePercent
		for nights := 2; nights <= 30; nights++ {
			pct := SurchargeTierFor(nights, season, cfg).SurchargePercent
			assert.LessOrEqual(t, pct, prev, "nights=%d season=%s", nights, season)
			prev = pct
		}
	}
}

func TestDefaultSurchargeSchedule(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		nights    int
		peakPct   float64
		lowPct    float64
	}{
		{1, 30, 20},
		{7, 30, 20},
		{8, 20, 17},
		{14, 20, 17},
		{15, 15, 13},
		{19, 15, 13},
		{20, 0, 0},
		{30, 0, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.peakPct, SurchargeTierFor(tc.nights, SeasonPeak, cfg).SurchargePercent, "peak nights=%d", tc.nights)
		assert.Equal(t, tc.lowPct, SurchargeTierFor(tc.nights, SeasonLow, cfg).SurchargePercent, "low nights=%d", tc.nights)
	}
}

func TestNightsBeyondLastTierFallBack(t *testing.T) {
	cfg := DefaultConfig()

	tier := SurchargeTierFor(31, SeasonPeak, cfg)
	require.NotNil(t, tier)
	assert.Equal(t, 0.0, tier.SurchargePercent)

	tier = SurchargeTierFor(120, SeasonLow, cfg)
	require.NotNil(t, tier)
	assert.Equal(t, 0.0, tier.SurchargePercent)
}

func TestStaySeason(t *testing.T) {
	cfg := DefaultConfig()

	// Entirely in low season.
	assert.Equal(t, SeasonLow, StaySeason(date(2024, time.March, 1), date(2024, time.November, 30), cfg))

	// Entirely in peak season.
	assert.Equal(t, SeasonPeak, StaySeason(date(2024, time.December, 10), date(2024, time.December, 20), cfg))

	// One peak day converts the whole stay: Feb 28 and 29 are peak even though
	// the stay ends in March.
	assert.Equal(t, SeasonPeak, StaySeason(date(2024, time.February, 28), date(2024, time.March, 3), cfg))

	// Stay starting Mar 1 never touches February.
	assert.Equal(t, SeasonLow, StaySeason(date(2024, time.March, 1), date(2024, time.March, 10), cfg))
}

func TestIsPeakSeasonIgnoresYear(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, IsPeakSeason(date(1999, time.January, 15), cfg))
	assert.True(t, IsPeakSeason(date(2030, time.December, 1), cfg))
	assert.False(t, IsPeakSeason(date(2024, time.July, 4), cfg))
}

func TestCalculateNights(t *testing.T) {
	assert.Equal(t, 5, CalculateNights(date(2024, time.January, 5), date(2024, time.January, 10)))
	assert.Equal(t, 1, CalculateNights(date(2024, time.January, 5), date(2024, time.January, 6)))
	// Partial days round up.
	in := date(2024, time.January, 5)
	out := time.Date(2024, time.January, 6, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, CalculateNights(in, out))
}

func TestPeakShortStayScenario(t *testing.T) {
	// 30000/month, Jan 5-10: 5 nights in January, tier 1-7 at +30%.
	calc, err := CalculateBookingPrice(30000, date(2024, time.January, 5), date(2024, time.January, 10), nil)
	require.NoError(t, err)

	assert.Equal(t, SeasonPeak, calc.Season)
	assert.Equal(t, 5, calc.Nights)
	assert.Equal(t, 30.0, calc.SurchargePercent)
	assert.InDelta(t, 1000, calc.BaseDailyPrice, 1e-9)
	assert.InDelta(t, 1300, calc.FinalDailyPrice, 1e-9)
	assert.InDelta(t, 5000, calc.Subtotal, 1e-9)
	assert.InDelta(t, 6500, calc.Total, 1e-9)
}

func TestLowSeasonLongStayScenario(t *testing.T) {
	// 30000/month, Jun 1-25: 24 nights in June, tier 20-30 at +0%.
	calc, err := CalculateBookingPrice(30000, date(2024, time.June, 1), date(2024, time.June, 25), nil)
	require.NoError(t, err)

	assert.Equal(t, SeasonLow, calc.Season)
	assert.Equal(t, 24, calc.Nights)
	assert.Equal(t, 0.0, calc.SurchargePercent)
	assert.InDelta(t, 1000, calc.FinalDailyPrice, 1e-9)
	assert.InDelta(t, 24000, calc.Total, 1e-9)
}

func TestCalculateBookingPriceIsIdempotent(t *testing.T) {
	in, out := date(2024, time.February, 1), date(2024, time.February, 12)

	first, err := CalculateBookingPrice(45000, in, out, nil)
	require.NoError(t, err)
	second, err := CalculateBookingPrice(45000, in, out, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCalculateBookingPriceRejectsBadInput(t *testing.T) {
	in, out := date(2024, time.June, 1), date(2024, time.June, 10)

	_, err := CalculateBookingPrice(0, in, out, nil)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = CalculateBookingPrice(-500, in, out, nil)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = CalculateBookingPrice(30000, out, in, nil)
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = CalculateBookingPrice(30000, in, in, nil)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestValidateRejectsBrokenTierLists(t *testing.T) {
	gapped := DefaultConfig()
	gapped.LowSeasonTiers = []SurchargeTier{
		{MinDays: 1, MaxDays: 7, SurchargePercent: 20},
		{MinDays: 9, MaxDays: 30, SurchargePercent: 0},
	}
	assert.Error(t, gapped.Validate())

	overlapping := DefaultConfig()
	overlapping.PeakSeasonTiers = []SurchargeTier{
		{MinDays: 1, MaxDays: 10, SurchargePercent: 30},
		{MinDays: 8, MaxDays: 30, SurchargePercent: 0},
	}
	assert.Error(t, overlapping.Validate())

	increasing := DefaultConfig()
	increasing.PeakSeasonTiers = []SurchargeTier{
		{MinDays: 1, MaxDays: 7, SurchargePercent: 10},
		{MinDays: 8, MaxDays: 30, SurchargePercent: 20},
	}
	assert.Error(t, increasing.Validate())

	empty := DefaultConfig()
	empty.PeakSeasonMonths = nil
	assert.Error(t, empty.Validate())
}
