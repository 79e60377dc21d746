// Package services contains stateless domain services for the menu bounded
// context: stock classification, variation composition and severity rollup.
// They operate purely on domain types; collaborators are reached only through
// the small interfaces declared here.
package services

import (
	"github.com/shopspring/decimal"

	"github.com/ghuser/backoffice/services/menu/domain/models"
)

// warningMargin widens the threshold into the Warning band: (t, t*1.1].
var warningMargin = decimal.RequireFromString("1.1")

// Classify maps on-hand quantity and threshold to a severity tier:
//
//	Critical  q <= t
//	Warning   t < q <= t*1.1
//	Good      otherwise
//
// With t = 0 the Warning band is empty, so only Critical and Good occur.
func Classify(quantityOnHand, threshold decimal.Decimal) models.Severity {
	if quantityOnHand.LessThanOrEqual(threshold) {
		return models.SeverityCritical
	}
	if quantityOnHand.LessThanOrEqual(threshold.Mul(warningMargin)) {
		return models.SeverityWarning
	}
	return models.SeverityGood
}

// ClassifyIngredient classifies an ingredient's current stock.
func ClassifyIngredient(ing *models.Ingredient) models.Severity {
	return Classify(ing.QuantityOnHand, ing.Threshold)
}
