package kitchenserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	reportmapper "github.com/itayost/AmosKitchen-sub001/internal/domains/reports/adapters/http/mapper"
	reportdomain "github.com/itayost/AmosKitchen-sub001/internal/domains/reports/domain"
	reportports "github.com/itayost/AmosKitchen-sub001/internal/domains/reports/ports"
)

// ReportsAPI wires HTTP transport with the reporting service.
type ReportsAPI struct {
	service reportports.Service
	now     func() time.Time
}

// NewReportsAPI creates a ReportsAPI backed by the provided service.
func NewReportsAPI(service reportports.Service) ReportsAPI {
	return ReportsAPI{service: service, now: time.Now}
}

// Get /api/v1/reports/weekly-summary
// Weekly order statistics, rankings, and ingredient requirements
func (api *ReportsAPI) WeeklySummary(c *gin.Context) {
	weekOf, ok := api.weekOf(c)
	if !ok {
		return
	}
	report, err := api.service.WeeklySummary(c.Request.Context(), weekOf)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, reportmapper.FromWeeklySummary(report))
}

// Get /api/v1/reports/shopping-list
// What must be bought to cook the week
func (api *ReportsAPI) ShoppingList(c *gin.Context) {
	weekOf, ok := api.weekOf(c)
	if !ok {
		return
	}
	groupBy := reportdomain.ParseGroupBy(c.Query("groupBy"))
	report, err := api.service.ShoppingList(c.Request.Context(), weekOf, groupBy)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, reportmapper.FromShoppingList(report))
}

// Get /api/v1/reports/dashboard
// At-a-glance view of a single day
func (api *ReportsAPI) Dashboard(c *gin.Context) {
	day := api.now()
	if raw := c.Query("date"); raw != "" {
		parsed, ok := queryDate(c, "date")
		if !ok {
			return
		}
		day = *parsed
	}
	report, err := api.service.Dashboard(c.Request.Context(), day)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, reportmapper.FromDashboard(report))
}

// weekOf reads the optional date selector, defaulting to the current week.
func (api *ReportsAPI) weekOf(c *gin.Context) (time.Time, bool) {
	if c.Query("date") == "" {
		return api.now(), true
	}
	parsed, ok := queryDate(c, "date")
	if !ok {
		return time.Time{}, false
	}
	return *parsed, true
}
