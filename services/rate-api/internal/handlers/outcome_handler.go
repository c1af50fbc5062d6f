package handlers

import (
	"net/http"

	"github.com/bluewud/rate-engine/pkg"
	"github.com/bluewud/rate-engine/pkg/common"
	"github.com/bluewud/rate-engine/pkg/utils"
	"github.com/bluewud/rate-engine/services/rate-api/internal/services"
	"github.com/bluewud/rate-engine/services/rate-api/internal/views"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OutcomeHandler feeds observed delivery outcomes back into the carrier
// performance stats and exposes those stats for the dashboard.
type OutcomeHandler struct {
	logger      *zap.Logger
	performance services.PerformanceService
}

func NewOutcomeHandler(logger *zap.Logger, performance services.PerformanceService) *OutcomeHandler {
	return &OutcomeHandler{logger: logger, performance: performance}
}

func (h *OutcomeHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/shipments/outcome", h.RecordOutcome)
	r.GET("/carriers/:carrierId/performance", h.CarrierPerformance)
}

func (h *OutcomeHandler) RecordOutcome(c *gin.Context) {
	traceID, err := utils.GetTraceID(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, pkg.ErrorResponse{
			Code:    pkg.ErrServerCode.Code,
			Message: err.Error(),
		})
		return
	}

	var req views.OutcomeRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, pkg.ErrorResponse{
			Code:    pkg.ErrInvalidInputCode.Code,
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	if err = h.performance.Record(c.Request.Context(), req.ToOutcome()); err != nil {
		resp := pkg.ToErrorResponse(h.logger, traceID, err)
		c.JSON(resp.Status, resp)
		return
	}

	c.JSON(http.StatusAccepted, common.Wrap(traceID, "recorded", true))
}

func (h *OutcomeHandler) CarrierPerformance(c *gin.Context) {
	traceID, err := utils.GetTraceID(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, pkg.ErrorResponse{
			Code:    pkg.ErrServerCode.Code,
			Message: err.Error(),
		})
		return
	}

	summary, err := h.performance.CarrierSummary(c.Request.Context(), c.Param("carrierId"))
	if err != nil {
		resp := pkg.ToErrorResponse(h.logger, traceID, err)
		c.JSON(resp.Status, resp)
		return
	}

	c.JSON(http.StatusOK, common.Wrap(traceID, "performance", summary))
}
