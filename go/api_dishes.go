package kitchenserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	catalogmapper "github.com/itayost/AmosKitchen-sub001/internal/domains/catalog/adapters/http/mapper"
	catalogapp "github.com/itayost/AmosKitchen-sub001/internal/domains/catalog/application"
	catalogports "github.com/itayost/AmosKitchen-sub001/internal/domains/catalog/ports"
	apierrors "github.com/itayost/AmosKitchen-sub001/internal/shared/errors"
)

// DishAPI wires HTTP transport with the catalog service's dish use cases.
type DishAPI struct {
	service catalogports.Service
}

// NewDishAPI creates a DishAPI backed by the provided service.
func NewDishAPI(service catalogports.Service) DishAPI {
	return DishAPI{service: service}
}

// Post /api/v1/dishes
// Add a dish to the catalog
func (api *DishAPI) CreateDish(c *gin.Context) {
	var payload catalogmapper.MutationDish
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	input, err := catalogmapper.ToDishInput(payload)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	dish, err := api.service.CreateDish(c.Request.Context(), input)
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, catalogmapper.FromDish(dish))
}

// Get /api/v1/dishes/:dishId
// Fetch a dish with its ingredient list
func (api *DishAPI) GetDish(c *gin.Context) {
	id, ok := parseUUIDParam(c, "dishId")
	if !ok {
		return
	}
	dish, err := api.service.GetDish(c.Request.Context(), id)
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDish(dish))
}

// Get /api/v1/dishes
// List dishes with filters
func (api *DishAPI) ListDishes(c *gin.Context) {
	filter := catalogports.DishFilter{
		Category:      c.Query("category"),
		AvailableOnly: c.Query("available") == "true",
		Search:        c.Query("search"),
	}
	dishes, err := api.service.ListDishes(c.Request.Context(), filter)
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDishList(dishes))
}

// Put /api/v1/dishes/:dishId
// Update a dish; the ingredient list is replaced wholesale
func (api *DishAPI) UpdateDish(c *gin.Context) {
	id, ok := parseUUIDParam(c, "dishId")
	if !ok {
		return
	}
	var payload catalogmapper.MutationDish
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	input, err := catalogmapper.ToDishInput(payload)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	dish, err := api.service.UpdateDish(c.Request.Context(), id, input)
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDish(dish))
}

// Delete /api/v1/dishes/:dishId
// Delete a dish not referenced by orders
func (api *DishAPI) DeleteDish(c *gin.Context) {
	id, ok := parseUUIDParam(c, "dishId")
	if !ok {
		return
	}
	if err := api.service.DeleteDish(c.Request.Context(), id); err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func respondCatalogServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, catalogports.ErrDishNotFound),
		errors.Is(err, catalogports.ErrIngredientNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, catalogports.ErrDuplicateIngredientName),
		errors.Is(err, catalogports.ErrDishReferencedByOrders),
		errors.Is(err, catalogports.ErrIngredientInUse):
		respondError(c, http.StatusConflict, err)
	case errors.Is(err, catalogapp.ErrInvalidInput):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
