package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func publishedRental(city string, bedrooms int, monthly float64) *Property {
	return &Property{
		Status:       PropertyStatusPublished,
		City:         city,
		ListingType:  ListingTypeRent,
		PropertyType: PropertyTypeVilla,
		Bedrooms:     bedrooms,
		MonthlyPrice: monthly,
	}
}

func TestPriceAlertMatches(t *testing.T) {
	alert := &PriceAlert{
		Active:      true,
		City:        "Phuket",
		ListingType: ListingTypeRent,
		MaxPrice:    50000,
		MinBedrooms: 2,
	}

	assert.True(t, alert.Matches(publishedRental("Phuket", 3, 45000)))
	assert.False(t, alert.Matches(publishedRental("Phuket", 3, 60000)), "over budget")
	assert.False(t, alert.Matches(publishedRental("Bangkok", 3, 45000)), "wrong city")
	assert.False(t, alert.Matches(publishedRental("Phuket", 1, 45000)), "too few bedrooms")

	draft := publishedRental("Phuket", 3, 45000)
	draft.Status = PropertyStatusDraft
	assert.False(t, alert.Matches(draft), "unpublished property")

	alert.Active = false
	assert.False(t, alert.Matches(publishedRental("Phuket", 3, 45000)), "inactive alert")
}

func TestPriceAlertMatchesSaleListings(t *testing.T) {
	alert := &PriceAlert{Active: true, ListingType: ListingTypeSale, MaxPrice: 10_000_000}

	sale := publishedRental("Phuket", 2, 0)
	sale.ListingType = ListingTypeSale
	sale.SalePrice = 8_500_000
	assert.True(t, alert.Matches(sale))

	sale.SalePrice = 12_000_000
	assert.False(t, alert.Matches(sale))
}

func TestInviteIsUsable(t *testing.T) {
	now := time.Now()
	invite := &Invite{ExpiresAt: now.Add(24 * time.Hour)}
	assert.True(t, invite.IsUsable(now))

	used := now.Add(-time.Hour)
	invite.UsedAt = &used
	assert.False(t, invite.IsUsable(now))

	expired := &Invite{ExpiresAt: now.Add(-time.Minute)}
	assert.False(t, expired.IsUsable(now))
}
