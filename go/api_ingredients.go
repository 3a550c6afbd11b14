package kitchenserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogmapper "github.com/itayost/AmosKitchen-sub001/internal/domains/catalog/adapters/http/mapper"
	catalogdomain "github.com/itayost/AmosKitchen-sub001/internal/domains/catalog/domain"
	catalogports "github.com/itayost/AmosKitchen-sub001/internal/domains/catalog/ports"
	apierrors "github.com/itayost/AmosKitchen-sub001/internal/shared/errors"
)

// IngredientAPI wires HTTP transport with the catalog service's inventory
// use cases.
type IngredientAPI struct {
	service catalogports.Service
}

// NewIngredientAPI creates an IngredientAPI backed by the provided service.
func NewIngredientAPI(service catalogports.Service) IngredientAPI {
	return IngredientAPI{service: service}
}

// Post /api/v1/ingredients
// Add an ingredient to the inventory
func (api *IngredientAPI) CreateIngredient(c *gin.Context) {
	var payload catalogmapper.MutationIngredient
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	ing, err := api.service.CreateIngredient(c.Request.Context(), catalogmapper.ToIngredientInput(payload))
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, catalogmapper.FromIngredient(ing))
}

// Get /api/v1/ingredients/:ingredientId
// Fetch an ingredient
func (api *IngredientAPI) GetIngredient(c *gin.Context) {
	id, ok := parseUUIDParam(c, "ingredientId")
	if !ok {
		return
	}
	ing, err := api.service.GetIngredient(c.Request.Context(), id)
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromIngredient(ing))
}

// Get /api/v1/ingredients
// List ingredients with filters
func (api *IngredientAPI) ListIngredients(c *gin.Context) {
	filter := catalogports.IngredientFilter{
		Category:     c.Query("category"),
		Supplier:     c.Query("supplier"),
		LowStockOnly: c.Query("lowStock") == "true",
		Search:       c.Query("search"),
	}
	ingredients, err := api.service.ListIngredients(c.Request.Context(), filter)
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromIngredientList(ingredients))
}

// Put /api/v1/ingredients/:ingredientId
// Update an ingredient
func (api *IngredientAPI) UpdateIngredient(c *gin.Context) {
	id, ok := parseUUIDParam(c, "ingredientId")
	if !ok {
		return
	}
	var payload catalogmapper.MutationIngredient
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	ing, err := api.service.UpdateIngredient(c.Request.Context(), id, catalogmapper.ToIngredientInput(payload))
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromIngredient(ing))
}

// Delete /api/v1/ingredients/:ingredientId
// Delete an ingredient not used by any dish
func (api *IngredientAPI) DeleteIngredient(c *gin.Context) {
	id, ok := parseUUIDParam(c, "ingredientId")
	if !ok {
		return
	}
	if err := api.service.DeleteIngredient(c.Request.Context(), id); err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Patch /api/v1/ingredients/:ingredientId/stock
// Apply a relative delta or set an absolute stock level
func (api *IngredientAPI) AdjustStock(c *gin.Context) {
	id, ok := parseUUIDParam(c, "ingredientId")
	if !ok {
		return
	}
	var payload catalogmapper.StockAdjustment
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	var (
		ing *catalogdomain.Ingredient
		err error
	)
	switch {
	case payload.CurrentStock != nil:
		ing, err = api.service.SetStock(c.Request.Context(), id, *payload.CurrentStock)
	case payload.Delta != nil:
		ing, err = api.service.AdjustStock(c.Request.Context(), id, *payload.Delta)
	default:
		respondProblem(c, apierrors.ErrValidation.
			WithDetail("either delta or currentStock is required"))
		return
	}
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromIngredient(ing))
}
