package services

import (
	"github.com/shopspring/decimal"

	"github.com/ghuser/backoffice/services/menu/domain/models"
)

// NoPrice is rendered when no variation has a numeric price.
const NoPrice = "—"

// FormatQuantityDisplay renders a usage's amount for list views.
//
// Tracked usages always render "<quantity> <unit>". Custom usages fall back
// through "<quantity> <unit>" when a unit is set, then the original free-form
// text, then the empty string.
func FormatQuantityDisplay(u models.IngredientUsage) string {
	if u.IsTracked() || u.Unit() != "" {
		return u.QuantityUsed().String() + " " + u.Unit()
	}
	return u.QuantityOriginalText()
}

// PriceRange summarises variation prices as "$min - $max", a single price
// when only one is numeric, or NoPrice when none are.
func PriceRange(variations []models.Variation) string {
	var lo, hi decimal.Decimal
	n := 0
	for _, v := range variations {
		if !v.Price.Valid {
			continue
		}
		p := v.Price.Decimal
		if n == 0 || p.LessThan(lo) {
			lo = p
		}
		if n == 0 || p.GreaterThan(hi) {
			hi = p
		}
		n++
	}
	switch n {
	case 0:
		return NoPrice
	case 1:
		return FormatCurrency(lo)
	default:
		return FormatCurrency(lo) + " - " + FormatCurrency(hi)
	}
}

// FormatCurrency renders d as dollars with two decimal places.
func FormatCurrency(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
