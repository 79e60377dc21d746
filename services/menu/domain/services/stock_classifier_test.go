package services

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"

	"github.com/ghuser/backoffice/services/menu/domain/models"
)

func TestClassify(t *testing.T) {
	d := decimal.RequireFromString
	tests := []struct {
		name      string
		quantity  string
		threshold string
		want      models.Severity
	}{
		{"below threshold", "4", "5", models.SeverityCritical},
		{"at threshold", "5", "5", models.SeverityCritical},
		{"just above threshold", "5.01", "5", models.SeverityWarning},
		{"at warning edge", "5.5", "5", models.SeverityWarning},
		{"above warning edge", "5.51", "5", models.SeverityGood},
		{"fractional threshold edge", "1.1", "1", models.SeverityWarning},
		{"zero threshold zero stock", "0", "0", models.SeverityCritical},
		{"zero threshold any stock", "1", "0", models.SeverityGood},
		{"zero threshold tiny stock", "0.0001", "0", models.SeverityGood},
		{"plenty", "100", "10", models.SeverityGood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(d(tt.quantity), d(tt.threshold))
			if got != tt.want {
				t.Fatalf("Classify(%s, %s) = %v, want %v", tt.quantity, tt.threshold, got, tt.want)
			}
		})
	}
}

func TestClassifyIngredient(t *testing.T) {
	ing := &models.Ingredient{QuantityOnHand: decimal.NewFromInt(2), Threshold: decimal.NewFromInt(3)}
	if got := ClassifyIngredient(ing); got != models.SeverityCritical {
		t.Fatalf("ClassifyIngredient = %v, want critical", got)
	}
}

// Quantities are generated in hundredths to cover fractional stock levels.
func TestClassifyProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	cents := func(n int64) decimal.Decimal { return decimal.New(n, -2) }

	properties.Property("returns exactly one known tier", prop.ForAll(
		func(q, th int64) bool {
			switch Classify(cents(q), cents(th)) {
			case models.SeverityGood, models.SeverityWarning, models.SeverityCritical:
				return true
			default:
				return false
			}
		},
		gen.Int64Range(0, 1_000_000),
		gen.Int64Range(0, 1_000_000),
	))

	properties.Property("at or below threshold is critical", prop.ForAll(
		func(th, below int64) bool {
			q := th - below
			if q < 0 {
				q = 0
			}
			return Classify(cents(q), cents(th)) == models.SeverityCritical
		},
		gen.Int64Range(0, 1_000_000),
		gen.Int64Range(0, 1_000_000),
	))

	properties.Property("zero threshold has no warning band", prop.ForAll(
		func(q int64) bool {
			return Classify(cents(q), decimal.Zero) != models.SeverityWarning
		},
		gen.Int64Range(0, 1_000_000),
	))

	properties.Property("more stock never raises severity", prop.ForAll(
		func(q, extra, th int64) bool {
			lo := Classify(cents(q), cents(th))
			hi := Classify(cents(q+extra), cents(th))
			return hi <= lo
		},
		gen.Int64Range(0, 1_000_000),
		gen.Int64Range(0, 1_000_000),
		gen.Int64Range(0, 1_000_000),
	))

	properties.TestingRun(t)
}
