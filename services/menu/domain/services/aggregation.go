package services

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	menudomain "github.com/ghuser/backoffice/services/menu/domain"
	"github.com/ghuser/backoffice/services/menu/domain/models"
)

// UncategorizedName labels items whose category cannot be resolved.
const UncategorizedName = "Uncategorized"

// IngredientSeverity classifies the ingredient bound to u. Custom usages are
// not classifiable and report tracked=false with a Good tier. A tracked usage
// whose ingredient is missing from inv fails with ErrUnknownIngredient.
func IngredientSeverity(inv models.Inventory, u models.IngredientUsage) (sev models.Severity, tracked bool, err error) {
	id, ok := u.IngredientID()
	if !ok {
		return models.SeverityGood, false, nil
	}
	ing, found := inv[id]
	if !found {
		return models.SeverityGood, true, fmt.Errorf("%w: %s", menudomain.ErrUnknownIngredient, id)
	}
	return ClassifyIngredient(ing), true, nil
}

// VariationSeverity is the worst tier among v's tracked usages, Good when it
// has none.
func VariationSeverity(inv models.Inventory, v *models.Variation) (models.Severity, error) {
	worst := models.SeverityGood
	for _, u := range v.Usages {
		sev, tracked, err := IngredientSeverity(inv, u)
		if err != nil {
			return models.SeverityGood, err
		}
		if tracked {
			worst = models.Worst(worst, sev)
		}
	}
	return worst, nil
}

// MenuItemSeverity is the worst tier among item's variations.
func MenuItemSeverity(inv models.Inventory, item *models.MenuItem) (models.Severity, error) {
	worst := models.SeverityGood
	for i := range item.Variations {
		sev, err := VariationSeverity(inv, &item.Variations[i])
		if err != nil {
			return models.SeverityGood, fmt.Errorf("variation %s: %w", item.Variations[i].ID, err)
		}
		worst = models.Worst(worst, sev)
	}
	return worst, nil
}

// CategoryCount is one row of the category summary.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CategoryCounts groups items by resolved category name. Items with no
// category, or one not in categories, count toward UncategorizedName. Rows
// are sorted by name.
func CategoryCounts(items []*models.MenuItem, categories []*models.Category) []CategoryCount {
	names := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name.String()
	}

	counts := make(map[string]int)
	for _, item := range items {
		name, ok := names[item.CategoryID]
		if !ok {
			name = UncategorizedName
		}
		counts[name]++
	}

	out := make([]CategoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, CategoryCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
