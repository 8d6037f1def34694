package pricing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type currencyInfo struct {
	Symbol   string
	Decimals int
}

var supportedCurrencies = map[string]currencyInfo{
	"THB": {Symbol: "฿", Decimals: 0},
	"USD": {Symbol: "$", Decimals: 2},
	"EUR": {Symbol: "€", Decimals: 2},
	"GBP": {Symbol: "£", Decimals: 2},
	"AUD": {Symbol: "A$", Decimals: 2},
	"SGD": {Symbol: "S$", Decimals: 2},
	"RUB": {Symbol: "₽", Decimals: 0},
}

// FormatRentalPrice renders a price for display. Unknown currency codes fall
// back to THB, which is also the house default (whole baht, no decimals).
func FormatRentalPrice(price float64, currency string) string {
	if currency == "" {
		currency = "THB"
	}
	info, ok := supportedCurrencies[strings.ToUpper(currency)]
	if !ok {
		info = supportedCurrencies["THB"]
	}

	if info.Decimals == 0 {
		return info.Symbol + groupThousands(int64(math.Round(price)))
	}

	rounded := math.Round(price*100) / 100
	whole := int64(rounded)
	frac := int64(math.Round((rounded - float64(whole)) * 100))
	if frac < 0 {
		frac = -frac
	}
	return fmt.Sprintf("%s%s.%02d", info.Symbol, groupThousands(whole), frac)
}

func groupThousands(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return sign + s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + b.String()
}
