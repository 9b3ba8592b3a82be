package utils

import (
	"regexp"

	"aurum/karat_gold_loan/internal/pkg/consts"
)

// CleanPhone strips everything but digits and keeps the trailing national
// number, tolerating 91 or 0 prefixes.
func CleanPhone(phone string) string {
	cleaned := regexp.MustCompile(`\D`).ReplaceAllString(phone, "")

	if len(cleaned) >= 12 {
		cleaned = cleaned[len(cleaned)-12:]
	} else if len(cleaned) >= 11 {
		cleaned = cleaned[len(cleaned)-11:]
	}

	return cleaned
}

// IsValidPhone checks a cleaned number against the Indian mobile pattern.
func IsValidPhone(cleanedPhone string) (bool, error) {
	regex := regexp.MustCompile(consts.ValidIndianMobile)

	if !regex.MatchString(cleanedPhone) {
		return false, consts.ErrorPhoneFormatValidationFailed
	}

	if len(cleanedPhone) < 10 || len(cleanedPhone) > 12 {
		return false, consts.ErrorPhoneFormatValidationFailed
	}

	return true, nil
}

// NationalNumber reduces a phone string to its last ten digits, the form the
// SMS gateway expects.
func NationalNumber(phone string) (string, error) {
	cleaned := CleanPhone(phone)
	if _, err := IsValidPhone(cleaned); err != nil {
		return "", err
	}
	return cleaned[len(cleaned)-10:], nil
}
