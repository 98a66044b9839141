package extractor

import (
	"math"
	"strconv"
	"strings"

	"fx-rates/models/entities"
)

// ParseTitle recovers both currencies from a pair title. Codes are returned as written.
func ParseTitle(title string) (baseName, baseCode, targetName, targetCode string, ok bool) {
	m := titlePattern.FindStringSubmatch(title)
	if m == nil {
		return "", "", "", "", false
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), strings.TrimSpace(m[3]), strings.TrimSpace(m[4]), true
}

// ParseRate returns the first number following '=' in a "1 <base> = <rate> <target>" sentence.
// 0 is returned when nothing matches or the number does not parse.
func ParseRate(description string) (float64, bool) {
	m := ratePattern.FindStringSubmatch(description)
	if m == nil {
		return 0, false
	}
	rate, err := strconv.ParseFloat(strings.TrimSpace(m[1]), 64)
	if err != nil || math.IsInf(rate, 0) || math.IsNaN(rate) {
		return 0, false
	}
	return rate, true
}

// IsValid only checks the currency codes; the rate is not looked at.
func IsValid(rate entities.CurrencyRate) bool {
	return len(rate.BaseCode) == codeLength && len(rate.TargetCode) == codeLength
}
