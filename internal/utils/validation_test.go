package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParseDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Luxury Pool Villa in Rawai", "luxury-pool-villa-in-rawai"},
		{"  3-Bedroom Condo — Patong  ", "3-bedroom-condo-patong"},
		{"Sea View!!! (Kata)", "sea-view-kata"},
		{"ALL CAPS TITLE", "all-caps-title"},
		{"---", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.title), "title: %q", tt.title)
	}
}

func TestSlugifyTruncates(t *testing.T) {
	long := strings.Repeat("villa ", 50)
	slug := Slugify(long)

	assert.LessOrEqual(t, len(slug), SlugMaxLength)
	assert.False(t, strings.HasSuffix(slug, "-"))
}

func TestIsValidSlug(t *testing.T) {
	assert.True(t, IsValidSlug("pool-villa-rawai"))
	assert.True(t, IsValidSlug("condo123"))
	assert.False(t, IsValidSlug("Pool-Villa"))
	assert.False(t, IsValidSlug("double--hyphen"))
	assert.False(t, IsValidSlug("-leading"))
	assert.False(t, IsValidSlug(""))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "johndoe@gmail.com", NormalizeEmail("John.Doe+spam@Gmail.com "))
	assert.Equal(t, "jane.doe@example.com", NormalizeEmail("Jane.Doe@Example.com"))
}

func TestGenerateBookingNumber(t *testing.T) {
	number := GenerateBookingNumber(mustParseDate(t, "2026-01-15"))

	assert.True(t, strings.HasPrefix(number, "PSM-20260115-"))
	assert.NotContains(t, number[4:], "O")
	assert.NotContains(t, number[4:], "I")
	assert.NotContains(t, number[4:], "L")
}
