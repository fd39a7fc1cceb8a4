// Package extract parses free-form negotiation text into optional numeric
// offer terms. Every function tolerates empty input and returns nil instead
// of an error when nothing matches; a parsed 0 is a present value.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/TheJegede/Negotiator/internal/models"
)

var (
	priceRe    = regexp.MustCompile(`\$\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)
	deliveryRe = regexp.MustCompile(`(?i)\b(\d+)\s*days?\b`)
)

// Volume extraction is an ordered rule table: shorthand ("15k", "15
// thousand") and explicit units outrank bare numbers, which only count when
// the text carries volume context at all.
type volumeRule struct {
	re           *regexp.Regexp
	multiplier   float64
	needsContext bool
}

var volumeRules = []volumeRule{
	{re: regexp.MustCompile(`(\d{1,3}(?:,\d{3})*|\d+(?:\.\d+)?)\s*(?:thousand|k)\b`), multiplier: 1000},
	{re: regexp.MustCompile(`(\d{1,3}(?:,\d{3})*|\d+(?:\.\d+)?)\s*units?\b`), multiplier: 1},
	{re: regexp.MustCompile(`(\d{1,3}(?:,\d{3})*|\d+)`), multiplier: 1, needsContext: true},
}

var volumeContext = []string{"units", "order", "volume", "quantity"}

// Price returns the first currency-marked number in text. Unmarked numbers
// are never mistaken for prices.
func Price(text string) *decimal.Decimal {
	if text == "" {
		return nil
	}
	m := priceRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return nil
	}
	return &d
}

// Delivery returns the first integer immediately followed by "day"/"days".
func Delivery(text string) *int {
	if text == "" {
		return nil
	}
	m := deliveryRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

// Volume returns the order quantity stated in text, trying the rule table in
// priority order with early return.
func Volume(text string) *int {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)
	for _, rule := range volumeRules {
		if rule.needsContext && !containsAny(lower, volumeContext) {
			continue
		}
		m := rule.re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			continue
		}
		n := int(f * rule.multiplier)
		return &n
	}
	return nil
}

// Terms runs all three extractors over one message.
func Terms(text string) models.Terms {
	return models.Terms{
		Price:    Price(text),
		Delivery: Delivery(text),
		Volume:   Volume(text),
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
