package handlers

import (
	"net/http"

	"github.com/bluewud/rate-engine/pkg"
	"github.com/bluewud/rate-engine/pkg/common"
	"github.com/bluewud/rate-engine/pkg/utils"
	pkgviews "github.com/bluewud/rate-engine/pkg/views"
	"github.com/bluewud/rate-engine/services/rate-api/internal/services"
	"github.com/bluewud/rate-engine/services/rate-api/internal/views"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RiskHandler serves RTO (return-to-origin) risk scoring.
type RiskHandler struct {
	logger *zap.Logger
	rto    services.RTOService
}

func NewRiskHandler(logger *zap.Logger, rto services.RTOService) *RiskHandler {
	return &RiskHandler{logger: logger, rto: rto}
}

func (h *RiskHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/risk", h.AssessRisk)
	r.POST("/risk/metrics", h.RiskMetrics)
}

// AssessRisk scores a single order. Field-name variants in the payload
// (paymentMode vs paymentMethod, nested vs flat address) are normalized
// before scoring.
func (h *RiskHandler) AssessRisk(c *gin.Context) {
	traceID, err := utils.GetTraceID(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, pkg.ErrorResponse{
			Code:    pkg.ErrServerCode.Code,
			Message: err.Error(),
		})
		return
	}

	var req views.RiskRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, pkg.ErrorResponse{
			Code:    pkg.ErrInvalidInputCode.Code,
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	assessment := h.rto.PredictRisk(req.Order.Normalize(), req.History)
	c.JSON(http.StatusOK, common.Wrap(traceID, "assessment", assessment))
}

// RiskMetrics aggregates risk over a batch of orders.
func (h *RiskHandler) RiskMetrics(c *gin.Context) {
	traceID, err := utils.GetTraceID(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, pkg.ErrorResponse{
			Code:    pkg.ErrServerCode.Code,
			Message: err.Error(),
		})
		return
	}

	var req views.RiskMetricsRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, pkg.ErrorResponse{
			Code:    pkg.ErrInvalidInputCode.Code,
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	orders := make([]pkgviews.Order, len(req.Orders))
	for i, in := range req.Orders {
		orders[i] = in.Normalize()
	}

	c.JSON(http.StatusOK, common.Wrap(traceID, "metrics", h.rto.RiskMetrics(orders)))
}
