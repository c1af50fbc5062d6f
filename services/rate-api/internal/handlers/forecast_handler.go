package handlers

import (
	"net/http"
	"time"

	"github.com/bluewud/rate-engine/pkg"
	"github.com/bluewud/rate-engine/pkg/common"
	"github.com/bluewud/rate-engine/pkg/utils"
	"github.com/bluewud/rate-engine/services/rate-api/internal/services"
	"github.com/bluewud/rate-engine/services/rate-api/internal/views"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultForecastDays = 30

// ForecastHandler serves per-SKU demand forecasts.
type ForecastHandler struct {
	logger   *zap.Logger
	forecast services.ForecastService
}

func NewForecastHandler(logger *zap.Logger, forecast services.ForecastService) *ForecastHandler {
	return &ForecastHandler{logger: logger, forecast: forecast}
}

func (h *ForecastHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/forecast", h.PredictDemand)
}

func (h *ForecastHandler) PredictDemand(c *gin.Context) {
	traceID, err := utils.GetTraceID(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, pkg.ErrorResponse{
			Code:    pkg.ErrServerCode.Code,
			Message: err.Error(),
		})
		return
	}

	var req views.ForecastRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, pkg.ErrorResponse{
			Code:    pkg.ErrInvalidInputCode.Code,
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	orders, err := parseForecastOrders(req.Orders)
	if err != nil {
		c.JSON(http.StatusBadRequest, pkg.ErrorResponse{
			Code:    pkg.ErrInvalidInputCode.Code,
			Message: "invalid order timestamp",
			Details: err.Error(),
		})
		return
	}

	days := req.ForecastDays
	if days <= 0 {
		days = defaultForecastDays
	}

	forecast, err := h.forecast.PredictDemand(orders, req.SKU, days)
	if err != nil {
		resp := pkg.ToErrorResponse(h.logger, traceID, err)
		c.JSON(resp.Status, resp)
		return
	}

	c.JSON(http.StatusOK, common.Wrap(traceID, "forecast", forecast))
}

// parseForecastOrders accepts either full RFC 3339 timestamps or bare dates.
func parseForecastOrders(in []views.ForecastOrder) ([]services.OrderRecord, error) {
	orders := make([]services.OrderRecord, len(in))
	for i, o := range in {
		ts, err := time.Parse(time.RFC3339, o.CreatedAt)
		if err != nil {
			ts, err = time.Parse("2006-01-02", o.CreatedAt)
			if err != nil {
				return nil, err
			}
		}
		orders[i] = services.OrderRecord{SKU: o.SKU, Quantity: o.Quantity, CreatedAt: ts}
	}
	return orders, nil
}
