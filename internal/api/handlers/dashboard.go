package handlers

import (
	"log/slog"
	"net/http"

	"github.com/stockroom/product-catalog/internal/api/middleware"
	service "github.com/stockroom/product-catalog/internal/services"
	"github.com/stockroom/product-catalog/internal/utils/response"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard godoc
//	@Summary		Catalog dashboard
//	@Description	Aggregated inventory view: totals, inventory value, average price, stock distribution, health status and the top-five recent/low-stock/out-of-stock lists.
//	@Tags			Dashboard
//	@Produce		json
//	@Success		200	{object}	models.Dashboard		"Current dashboard"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/dashboard [get]
func (h *DashboardHandler) GetDashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		dashboard, err := h.dashboardService.GetDashboard(r.Context())
		if err != nil {
			logger.Error("Failed to build dashboard", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, dashboard)
	}
}
