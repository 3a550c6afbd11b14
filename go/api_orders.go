package kitchenserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	ordermapper "github.com/itayost/AmosKitchen-sub001/internal/domains/orders/adapters/http/mapper"
	orderapp "github.com/itayost/AmosKitchen-sub001/internal/domains/orders/application"
	orderdomain "github.com/itayost/AmosKitchen-sub001/internal/domains/orders/domain"
	orderports "github.com/itayost/AmosKitchen-sub001/internal/domains/orders/ports"
	apierrors "github.com/itayost/AmosKitchen-sub001/internal/shared/errors"
)

const dateLayout = "2006-01-02"

// OrderAPI wires HTTP transport with the orders bounded context service.
type OrderAPI struct {
	service orderports.Service
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service orderports.Service) OrderAPI {
	return OrderAPI{service: service}
}

// Post /api/v1/orders
// Place a new order
func (api *OrderAPI) CreateOrder(c *gin.Context) {
	var payload ordermapper.CreateOrder
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	input, err := ordermapper.ToCreateInput(payload)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := api.service.CreateOrder(c.Request.Context(), input)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ordermapper.FromOrder(order))
}

// Get /api/v1/orders/:orderId
// Fetch an order with items and recent history
func (api *OrderAPI) GetOrder(c *gin.Context) {
	id, ok := parseUUIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromOrder(order))
}

// Get /api/v1/orders
// List orders with filters and paging
func (api *OrderAPI) ListOrders(c *gin.Context) {
	filter := orderports.ListFilter{
		Search: c.Query("search"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 20),
	}
	if raw := c.Query("status"); raw != "" {
		status, err := orderdomain.ParseStatus(raw)
		if err != nil {
			respondProblem(c, apierrors.ErrValidation.
				WithDetail(err.Error()).
				WithExtension("parameter", "status"))
			return
		}
		filter.Status = &status
	}
	from, ok := queryDate(c, "deliveryFrom")
	if !ok {
		return
	}
	filter.DeliveryFrom = from
	to, ok := queryDate(c, "deliveryTo")
	if !ok {
		return
	}
	filter.DeliveryTo = to
	orders, total, err := api.service.ListOrders(c.Request.Context(), filter)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromOrderList(orders, total, filter.Page, filter.Limit))
}

// Put /api/v1/orders/:orderId
// Update order fields, status, or the whole item list
func (api *OrderAPI) UpdateOrder(c *gin.Context) {
	id, ok := parseUUIDParam(c, "orderId")
	if !ok {
		return
	}
	var payload ordermapper.UpdateOrder
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	input, err := ordermapper.ToUpdateInput(payload)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := api.service.UpdateOrder(c.Request.Context(), id, input)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromOrder(order))
}

// Delete /api/v1/orders/:orderId
// Delete an order with its items and history
func (api *OrderAPI) DeleteOrder(c *gin.Context) {
	id, ok := parseUUIDParam(c, "orderId")
	if !ok {
		return
	}
	if err := api.service.DeleteOrder(c.Request.Context(), id); err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func respondOrderServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, orderports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, orderports.ErrCustomerNotFound),
		errors.Is(err, orderports.ErrDishNotFound):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	case errors.Is(err, orderdomain.ErrInvalidTransition):
		respondError(c, http.StatusConflict, err)
	case errors.Is(err, orderapp.ErrInvalidInput):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}

func queryDate(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	value, err := time.Parse(dateLayout, raw)
	if err != nil {
		respondProblem(c, apierrors.ErrValidation.
			WithDetail("date must be formatted YYYY-MM-DD").
			WithExtension("parameter", name))
		return nil, false
	}
	return &value, true
}
