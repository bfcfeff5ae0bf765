package entities

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultOrderPrefix is used for categories outside the known catalogue.
const DefaultOrderPrefix = "ORD"

var categoryPrefixes = map[string]string{
	"PROTESIS FIJA":      "PTF",
	"PROTESIS REMOVIBLE": "PTR",
	"ACRILICO":           "ACR",
	"CERAMICA":           "CER",
	"METAL PORCELANA":    "MPC",
	"ZIRCONIA":           "ZIR",
	"IMPLANTES":          "IMP",
	"ORTODONCIA":         "ORT",
	"PROVISIONALES":      "PRV",
}

// NormalizeCategory upper-cases the category, strips accents and collapses spaces,
// so "Prótesis  fija" and "PROTESIS FIJA" resolve to the same prefix.
func NormalizeCategory(category string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, category)
	if err != nil {
		stripped = category
	}
	return strings.Join(strings.Fields(strings.ToUpper(stripped)), " ")
}

func PrefixForCategory(category string) string {
	if p, ok := categoryPrefixes[NormalizeCategory(category)]; ok {
		return p
	}
	return DefaultOrderPrefix
}

// CounterKey is the sequence counter id for a prefix and year, e.g. "PTF-25".
func CounterKey(prefix string, at time.Time) string {
	return fmt.Sprintf("%s-%02d", prefix, at.Year()%100)
}

func FormatOrderNumber(counterKey string, seq int64) string {
	return fmt.Sprintf("%s-%04d", counterKey, seq)
}

// ParseOrderNumber splits "PTF-25-0007" into its counter key and sequence.
func ParseOrderNumber(orderNumber string) (counterKey string, seq int64, ok bool) {
	idx := strings.LastIndex(orderNumber, "-")
	if idx <= 0 || idx == len(orderNumber)-1 {
		return "", 0, false
	}
	key := orderNumber[:idx]
	if strings.Count(key, "-") != 1 {
		return "", 0, false
	}
	n, err := strconv.ParseInt(orderNumber[idx+1:], 10, 64)
	if err != nil || n <= 0 {
		return "", 0, false
	}
	return key, n, true
}
