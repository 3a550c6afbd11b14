package kitchenserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	customermapper "github.com/itayost/AmosKitchen-sub001/internal/domains/customers/adapters/http/mapper"
	customerapp "github.com/itayost/AmosKitchen-sub001/internal/domains/customers/application"
	customerports "github.com/itayost/AmosKitchen-sub001/internal/domains/customers/ports"
	apierrors "github.com/itayost/AmosKitchen-sub001/internal/shared/errors"
)

// CustomerAPI wires HTTP transport with the customers bounded context service.
type CustomerAPI struct {
	service customerports.Service
}

// NewCustomerAPI creates a CustomerAPI backed by the provided service.
func NewCustomerAPI(service customerports.Service) CustomerAPI {
	return CustomerAPI{service: service}
}

// Post /api/v1/customers
// Register a new customer
func (api *CustomerAPI) CreateCustomer(c *gin.Context) {
	var payload customermapper.CreateCustomer
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	customer, err := api.service.CreateCustomer(c.Request.Context(), customermapper.ToCreateInput(payload))
	if err != nil {
		respondCustomerServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customermapper.FromCustomer(customer))
}

// Get /api/v1/customers/:customerId
// Fetch a customer with preferences
func (api *CustomerAPI) GetCustomer(c *gin.Context) {
	id, ok := parseUUIDParam(c, "customerId")
	if !ok {
		return
	}
	customer, err := api.service.GetCustomer(c.Request.Context(), id)
	if err != nil {
		respondCustomerServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customermapper.FromCustomer(customer))
}

// Get /api/v1/customers
// List customers with search and paging
func (api *CustomerAPI) ListCustomers(c *gin.Context) {
	filter := customerports.ListFilter{
		Search: c.Query("search"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 20),
	}
	customers, total, err := api.service.ListCustomers(c.Request.Context(), filter)
	if err != nil {
		respondCustomerServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customermapper.FromCustomerList(customers, total, filter.Page, filter.Limit))
}

// Put /api/v1/customers/:customerId
// Update customer fields
func (api *CustomerAPI) UpdateCustomer(c *gin.Context) {
	id, ok := parseUUIDParam(c, "customerId")
	if !ok {
		return
	}
	var payload customermapper.UpdateCustomer
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	customer, err := api.service.UpdateCustomer(c.Request.Context(), id, customermapper.ToUpdateInput(payload))
	if err != nil {
		respondCustomerServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customermapper.FromCustomer(customer))
}

// Delete /api/v1/customers/:customerId
// Delete a customer without orders
func (api *CustomerAPI) DeleteCustomer(c *gin.Context) {
	id, ok := parseUUIDParam(c, "customerId")
	if !ok {
		return
	}
	if err := api.service.DeleteCustomer(c.Request.Context(), id); err != nil {
		respondCustomerServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Post /api/v1/customers/:customerId/preferences
// Attach a preference to a customer
func (api *CustomerAPI) AddPreference(c *gin.Context) {
	id, ok := parseUUIDParam(c, "customerId")
	if !ok {
		return
	}
	var payload customermapper.CreatePreference
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	pref, err := api.service.AddPreference(c.Request.Context(), id, customermapper.ToPreferenceInput(payload))
	if err != nil {
		respondCustomerServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customermapper.FromPreference(*pref))
}

// Get /api/v1/customers/:customerId/preferences
// List a customer's preferences
func (api *CustomerAPI) ListPreferences(c *gin.Context) {
	id, ok := parseUUIDParam(c, "customerId")
	if !ok {
		return
	}
	prefs, err := api.service.ListPreferences(c.Request.Context(), id)
	if err != nil {
		respondCustomerServiceError(c, err)
		return
	}
	out := make([]customermapper.Preference, 0, len(prefs))
	for _, pref := range prefs {
		out = append(out, customermapper.FromPreference(pref))
	}
	c.JSON(http.StatusOK, out)
}

// Delete /api/v1/customers/:customerId/preferences/:preferenceId
// Remove a preference from a customer
func (api *CustomerAPI) RemovePreference(c *gin.Context) {
	customerID, ok := parseUUIDParam(c, "customerId")
	if !ok {
		return
	}
	prefID, ok := parseUUIDParam(c, "preferenceId")
	if !ok {
		return
	}
	if err := api.service.RemovePreference(c.Request.Context(), customerID, prefID); err != nil {
		respondCustomerServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func respondCustomerServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, customerports.ErrNotFound),
		errors.Is(err, customerports.ErrPreferenceNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, customerports.ErrDuplicatePhone),
		errors.Is(err, customerports.ErrDuplicatePreference),
		errors.Is(err, customerports.ErrReferencedByOrders):
		respondError(c, http.StatusConflict, err)
	case errors.Is(err, customerapp.ErrInvalidInput):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
