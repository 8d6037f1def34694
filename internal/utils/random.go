package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	letterBytes  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberBytes  = "0123456789"
	alphanumeric = letterBytes + numberBytes
)

func GenerateRandomString(length int) string {
	return generateRandom(length, alphanumeric)
}

func GenerateRandomNumericString(length int) string {
	return generateRandom(length, numberBytes)
}

func generateRandom(length int, charset string) string {
	result := make([]byte, length)
	charsetLength := big.NewInt(int64(len(charset)))

	for i := range result {
		num, _ := rand.Int(rand.Reader, charsetLength)
		result[i] = charset[num.Int64()]
	}

	return string(result)
}

func SecureRandomInt(max int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max)))
	return int(n.Int64())
}

func GenerateUUID() string {
	return uuid.NewString()
}

// GenerateBookingNumber returns a human-readable booking number like
// PSM-20260115-4F7K.
func GenerateBookingNumber(at time.Time) string {
	suffix := strings.ToUpper(GenerateRandomString(4))

	// Drop confusing characters
	suffix = strings.ReplaceAll(suffix, "0", "2")
	suffix = strings.ReplaceAll(suffix, "O", "3")
	suffix = strings.ReplaceAll(suffix, "I", "4")
	suffix = strings.ReplaceAll(suffix, "L", "5")

	return fmt.Sprintf("PSM-%s-%s", at.Format("20060102"), suffix)
}

// GeneratePropertyReference returns an internal listing reference like VL-8241.
func GeneratePropertyReference(propertyType string) string {
	prefix := "PR"
	switch propertyType {
	case "villa":
		prefix = "VL"
	case "condo":
		prefix = "CD"
	case "townhouse":
		prefix = "TH"
	case "apartment":
		prefix = "AP"
	case "land":
		prefix = "LD"
	}
	return prefix + "-" + GenerateRandomNumericString(4)
}

func GenerateInviteToken() string {
	return GenerateRandomString(InviteTokenLength)
}

func GenerateDispatchID() string {
	return uuid.NewString()
}
