package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRentalPrice(t *testing.T) {
	assert.Equal(t, "฿30,000", FormatRentalPrice(30000, "THB"))
	assert.Equal(t, "฿30,000", FormatRentalPrice(30000, ""))
	assert.Equal(t, "฿1,250,500", FormatRentalPrice(1250500, "thb"))
	assert.Equal(t, "฿999", FormatRentalPrice(999, "THB"))
	assert.Equal(t, "฿6,500", FormatRentalPrice(6500.4, "THB"))
	assert.Equal(t, "$1,234.50", FormatRentalPrice(1234.5, "USD"))
	assert.Equal(t, "€980.00", FormatRentalPrice(980, "EUR"))
	// Unknown codes fall back to THB formatting.
	assert.Equal(t, "฿5,000", FormatRentalPrice(5000, "XYZ"))
}
