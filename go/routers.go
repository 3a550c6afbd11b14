package kitchenserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route binds one HTTP method and path pattern to a handler.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// Routes is the list of the server's routes.
type Routes []Route

// ApiHandleFunctions holds the API handlers the router dispatches to.
type ApiHandleFunctions struct {
	CustomerAPI   CustomerAPI
	DishAPI       DishAPI
	IngredientAPI IngredientAPI
	OrderAPI      OrderAPI
	ReportsAPI    ReportsAPI
}

// NewRouter returns a new gin engine with all routes registered.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine registers all routes on an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc answers routes without a bound handler.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"Healthz",
			http.MethodGet,
			"/healthz",
			Healthz,
		},
		{
			"ListCustomers",
			http.MethodGet,
			"/api/v1/customers",
			handleFunctions.CustomerAPI.ListCustomers,
		},
		{
			"CreateCustomer",
			http.MethodPost,
			"/api/v1/customers",
			handleFunctions.CustomerAPI.CreateCustomer,
		},
		{
			"GetCustomer",
			http.MethodGet,
			"/api/v1/customers/:customerId",
			handleFunctions.CustomerAPI.GetCustomer,
		},
		{
			"UpdateCustomer",
			http.MethodPut,
			"/api/v1/customers/:customerId",
			handleFunctions.CustomerAPI.UpdateCustomer,
		},
		{
			"DeleteCustomer",
			http.MethodDelete,
			"/api/v1/customers/:customerId",
			handleFunctions.CustomerAPI.DeleteCustomer,
		},
		{
			"ListCustomerPreferences",
			http.MethodGet,
			"/api/v1/customers/:customerId/preferences",
			handleFunctions.CustomerAPI.ListPreferences,
		},
		{
			"AddCustomerPreference",
			http.MethodPost,
			"/api/v1/customers/:customerId/preferences",
			handleFunctions.CustomerAPI.AddPreference,
		},
		{
			"RemoveCustomerPreference",
			http.MethodDelete,
			"/api/v1/customers/:customerId/preferences/:preferenceId",
			handleFunctions.CustomerAPI.RemovePreference,
		},
		{
			"ListDishes",
			http.MethodGet,
			"/api/v1/dishes",
			handleFunctions.DishAPI.ListDishes,
		},
		{
			"CreateDish",
			http.MethodPost,
			"/api/v1/dishes",
			handleFunctions.DishAPI.CreateDish,
		},
		{
			"GetDish",
			http.MethodGet,
			"/api/v1/dishes/:dishId",
			handleFunctions.DishAPI.GetDish,
		},
		{
			"UpdateDish",
			http.MethodPut,
			"/api/v1/dishes/:dishId",
			handleFunctions.DishAPI.UpdateDish,
		},
		{
			"DeleteDish",
			http.MethodDelete,
			"/api/v1/dishes/:dishId",
			handleFunctions.DishAPI.DeleteDish,
		},
		{
			"ListIngredients",
			http.MethodGet,
			"/api/v1/ingredients",
			handleFunctions.IngredientAPI.ListIngredients,
		},
		{
			"CreateIngredient",
			http.MethodPost,
			"/api/v1/ingredients",
			handleFunctions.IngredientAPI.CreateIngredient,
		},
		{
			"GetIngredient",
			http.MethodGet,
			"/api/v1/ingredients/:ingredientId",
			handleFunctions.IngredientAPI.GetIngredient,
		},
		{
			"UpdateIngredient",
			http.MethodPut,
			"/api/v1/ingredients/:ingredientId",
			handleFunctions.IngredientAPI.UpdateIngredient,
		},
		{
			"DeleteIngredient",
			http.MethodDelete,
			"/api/v1/ingredients/:ingredientId",
			handleFunctions.IngredientAPI.DeleteIngredient,
		},
		{
			"AdjustIngredientStock",
			http.MethodPatch,
			"/api/v1/ingredients/:ingredientId/stock",
			handleFunctions.IngredientAPI.AdjustStock,
		},
		{
			"ListOrders",
			http.MethodGet,
			"/api/v1/orders",
			handleFunctions.OrderAPI.ListOrders,
		},
		{
			"CreateOrder",
			http.MethodPost,
			"/api/v1/orders",
			handleFunctions.OrderAPI.CreateOrder,
		},
		{
			"GetOrder",
			http.MethodGet,
			"/api/v1/orders/:orderId",
			handleFunctions.OrderAPI.GetOrder,
		},
		{
			"UpdateOrder",
			http.MethodPut,
			"/api/v1/orders/:orderId",
			handleFunctions.OrderAPI.UpdateOrder,
		},
		{
			"DeleteOrder",
			http.MethodDelete,
			"/api/v1/orders/:orderId",
			handleFunctions.OrderAPI.DeleteOrder,
		},
		{
			"WeeklySummaryReport",
			http.MethodGet,
			"/api/v1/reports/weekly-summary",
			handleFunctions.ReportsAPI.WeeklySummary,
		},
		{
			"ShoppingListReport",
			http.MethodGet,
			"/api/v1/reports/shopping-list",
			handleFunctions.ReportsAPI.ShoppingList,
		},
		{
			"DashboardReport",
			http.MethodGet,
			"/api/v1/reports/dashboard",
			handleFunctions.ReportsAPI.Dashboard,
		},
	}
}

// Healthz reports process liveness.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
