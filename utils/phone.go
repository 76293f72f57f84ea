package utils

import "regexp"

var nonDigits = regexp.MustCompile(`\D`)

// FormatPhoneNumber strips everything but digits from a phone number.
func FormatPhoneNumber(phoneNumber string) string {
	return nonDigits.ReplaceAllString(phoneNumber, "")
}

// ValidatePhoneNumber accepts any number that reduces to 7-15 digits
// (E.164 bounds).
func ValidatePhoneNumber(phoneNumber string) bool {
	digits := FormatPhoneNumber(phoneNumber)
	return len(digits) >= 7 && len(digits) <= 15
}
