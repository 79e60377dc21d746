package handlers

import (
	"time"

	"github.com/google/uuid"

	appsvcs "github.com/ghuser/backoffice/services/menu/application/services"
	"github.com/ghuser/backoffice/services/menu/domain/models"
)

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"category not found"`
} // @name ErrorResponse

// UsageRequest is one ingredient line of a variation draft. Set ingredient_id
// to bind the line to a tracked ingredient; name, unit and
// quantity_original_text are then taken from the ingredient.
type UsageRequest struct {
	Mode                 string `json:"mode"                   validate:"omitempty,oneof=custom tracked" example:"tracked"`
	IngredientID         string `json:"ingredient_id"          validate:"omitempty,uuid"                 example:"123e4567-e89b-12d3-a456-426614174000"`
	Name                 string `json:"name"                   validate:"max=255"                        example:"Flour"`
	Unit                 string `json:"unit"                   validate:"max=50"                         example:"g"`
	QuantityUsed         string `json:"quantity_used"          validate:"amount"                         example:"200"`
	QuantityOriginalText string `json:"quantity_original_text" validate:"max=255"                        example:"a handful"`
} // @name UsageRequest

// VariationRequest is an unsaved variation. A non-numeric price is treated as no price.
type VariationRequest struct {
	ID     string         `json:"id"     validate:"omitempty,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name   string         `json:"name"   validate:"max=255"        example:"Large"`
	Price  string         `json:"price"  validate:"max=32"         example:"7.50"`
	Cost   string         `json:"cost"   validate:"amount"         example:"2.10"`
	Usages []UsageRequest `json:"usages" validate:"dive"`
} // @name VariationRequest

// SaveVariationsRequest is the request body for PUT /menu-items/{itemID}/variations.
type SaveVariationsRequest struct {
	Variations []VariationRequest `json:"variations" validate:"required,dive"`
} // @name SaveVariationsRequest

func (r VariationRequest) draft() appsvcs.VariationDraft {
	d := appsvcs.VariationDraft{Name: r.Name, Price: r.Price, Cost: r.Cost}
	if id, err := uuid.Parse(r.ID); err == nil {
		d.ID = id
	}
	d.Usages = make([]appsvcs.UsageDraft, len(r.Usages))
	for i, u := range r.Usages {
		d.Usages[i] = appsvcs.UsageDraft{
			Mode:                 u.Mode,
			IngredientID:         u.IngredientID,
			Name:                 u.Name,
			Unit:                 u.Unit,
			QuantityUsed:         u.QuantityUsed,
			QuantityOriginalText: u.QuantityOriginalText,
		}
	}
	return d
}

// IngredientStockResponse is the classified stock level of one ingredient.
type IngredientStockResponse struct {
	ID             uuid.UUID       `json:"id"               example:"123e4567-e89b-12d3-a456-426614174000"`
	Name           string          `json:"name"             example:"Flour"`
	Unit           string          `json:"unit"             example:"g"`
	QuantityOnHand string          `json:"quantity_on_hand" example:"105"`
	Threshold      string          `json:"threshold"        example:"100"`
	Severity       models.Severity `json:"severity"         swaggertype:"string" enums:"good,warning,critical" example:"warning"`
} // @name IngredientStockResponse

// UsageLineResponse is one rendered line of a variation preview.
type UsageLineResponse struct {
	Mode                 models.UsageMode `json:"mode"                    example:"tracked"`
	IngredientID         *uuid.UUID       `json:"ingredient_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	Name                 string           `json:"name"                    example:"Flour"`
	Unit                 string           `json:"unit"                    example:"g"`
	QuantityUsed         string           `json:"quantity_used"           example:"200"`
	QuantityOriginalText string           `json:"quantity_original_text"  example:""`
	Display              string           `json:"display"                 example:"200 g"`
	Severity             *models.Severity `json:"severity,omitempty"      swaggertype:"string" enums:"good,warning,critical"`
} // @name UsageLineResponse

// VariationPreviewResponse is the derived state of a variation draft.
type VariationPreviewResponse struct {
	ID         uuid.UUID           `json:"id"                example:"550e8400-e29b-41d4-a716-446655440000"`
	Name       string              `json:"name"              example:"Large"`
	Lines      []UsageLineResponse `json:"lines"`
	PriceRange string              `json:"price_range"       example:"$7.50"`
	Severity   models.Severity     `json:"severity"          swaggertype:"string" enums:"good,warning,critical" example:"good"`
	Problem    string              `json:"problem,omitempty" example:"validation failed: ingredients required"`
} // @name VariationPreviewResponse

func newVariationPreviewResponse(p *appsvcs.VariationPreview) VariationPreviewResponse {
	resp := VariationPreviewResponse{
		ID:         p.Variation.ID,
		Name:       p.Variation.Name,
		Lines:      make([]UsageLineResponse, len(p.Lines)),
		PriceRange: p.PriceRange,
		Severity:   p.Severity,
		Problem:    p.Problem,
	}
	for i, l := range p.Lines {
		line := UsageLineResponse{
			Mode:                 l.Usage.Mode(),
			Name:                 l.Usage.Name(),
			Unit:                 l.Usage.Unit(),
			QuantityUsed:         l.Usage.QuantityUsed().String(),
			QuantityOriginalText: l.Usage.QuantityOriginalText(),
			Display:              l.Display,
			Severity:             l.Severity,
		}
		if id, ok := l.Usage.IngredientID(); ok {
			line.IngredientID = &id
		}
		resp.Lines[i] = line
	}
	return resp
}

// MenuItemVariationsResponse is returned after saving an item's variations.
type MenuItemVariationsResponse struct {
	ID         uuid.UUID          `json:"id"         example:"550e8400-e29b-41d4-a716-446655440000"`
	Name       string             `json:"name"       example:"Pancakes"`
	Variations []models.Variation `json:"variations"`
	UpdatedAt  time.Time          `json:"updated_at" example:"2024-01-15T10:30:00Z"`
} // @name MenuItemVariationsResponse

// SnapshotResponse describes an exported stock report.
type SnapshotResponse struct {
	Key         string    `json:"key"          example:"stock/550e8400-e29b-41d4-a716-446655440000/20240115T103000Z.json"`
	GeneratedAt time.Time `json:"generated_at" example:"2024-01-15T10:30:00Z"`
	Items       int       `json:"items"        example:"42"`
} // @name SnapshotResponse

// CreateCategoryRequest is the request body for POST /categories.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100" example:"Desserts"`
} // @name CreateCategoryRequest

// CategoryResponse is one category.
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"         example:"123e4567-e89b-12d3-a456-426614174000"`
	Name      string    `json:"name"       example:"Desserts"`
	CreatedAt time.Time `json:"created_at" example:"2024-01-15T10:30:00Z"`
} // @name CategoryResponse

func newCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name.String(), CreatedAt: c.CreatedAt}
}

// ItemRef names one affected menu item.
type ItemRef struct {
	ID   uuid.UUID `json:"id"   example:"550e8400-e29b-41d4-a716-446655440000"`
	Name string    `json:"name" example:"Pancakes"`
} // @name ItemRef

// DeletionCheckResponse tells the caller what deleting a category would do.
type DeletionCheckResponse struct {
	CategoryID    uuid.UUID          `json:"category_id"    example:"123e4567-e89b-12d3-a456-426614174000"`
	CategoryName  string             `json:"category_name"  example:"Specials"`
	State         string             `json:"state"          enums:"safe_to_delete,requires_transfer" example:"requires_transfer"`
	Blocked       bool               `json:"blocked"        example:"false"`
	AffectedCount int                `json:"affected_count" example:"7"`
	Preview       []ItemRef          `json:"preview"`
	Remaining     int                `json:"remaining"      example:"2"`
	Destinations  []CategoryResponse `json:"destinations"`
} // @name DeletionCheckResponse

func newDeletionCheckResponse(c *appsvcs.DeletionCheck) DeletionCheckResponse {
	shown, remaining := c.Preview()
	resp := DeletionCheckResponse{
		CategoryID:    c.Category.ID,
		CategoryName:  c.Category.Name.String(),
		State:         string(c.State),
		Blocked:       c.Blocked(),
		AffectedCount: len(c.Affected),
		Preview:       make([]ItemRef, len(shown)),
		Remaining:     remaining,
		Destinations:  make([]CategoryResponse, len(c.Destinations)),
	}
	for i, item := range shown {
		resp.Preview[i] = ItemRef{ID: item.ID, Name: item.Name}
	}
	for i, d := range c.Destinations {
		resp.Destinations[i] = newCategoryResponse(d)
	}
	return resp
}

// DeletionResultResponse reports a completed category deletion.
type DeletionResultResponse struct {
	CategoryID    uuid.UUID  `json:"category_id"              example:"123e4567-e89b-12d3-a456-426614174000"`
	DestinationID *uuid.UUID `json:"destination_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	State         string     `json:"state"                    example:"done"`
	Transferred   int        `json:"transferred"              example:"3"`
} // @name DeletionResultResponse
