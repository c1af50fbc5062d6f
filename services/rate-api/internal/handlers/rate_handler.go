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

// RateHandler serves the rate-shopping surface: all-carrier quotes, the
// single recommended carrier, and pincode serviceability.
type RateHandler struct {
	logger         *zap.Logger
	aggregator     services.RateAggregator
	recommendation services.RecommendationService
	zones          services.ZoneClassifier
}

func NewRateHandler(
	logger *zap.Logger,
	aggregator services.RateAggregator,
	recommendation services.RecommendationService,
	zones services.ZoneClassifier,
) *RateHandler {
	return &RateHandler{
		logger:         logger,
		aggregator:     aggregator,
		recommendation: recommendation,
		zones:          zones,
	}
}

func (h *RateHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/rates", h.GetRates)
	r.POST("/rates/recommendation", h.GetRecommendation)
	r.GET("/pincode/:pincode", h.CheckPincode)
}

// GetRates returns every carrier's quote for the shipment, cheapest first.
func (h *RateHandler) GetRates(c *gin.Context) {
	traceID, err := utils.GetTraceID(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, pkg.ErrorResponse{
			Code:    pkg.ErrServerCode.Code,
			Message: err.Error(),
		})
		return
	}

	var req views.RateRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, pkg.ErrorResponse{
			Code:    pkg.ErrInvalidInputCode.Code,
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	rates := h.aggregator.GetAllRates(c.Request.Context(), req.ToShipment())
	if len(rates) == 0 {
		resp := pkg.ToErrorResponse(h.logger, traceID,
			pkg.NewAppError(pkg.ErrNoCarriersCode, "no carriers available for this destination", nil))
		c.JSON(resp.Status, resp)
		return
	}

	c.JSON(http.StatusOK, common.Wrap(traceID, "rates", rates))
}

// GetRecommendation returns the single best carrier under the requested
// priority strategy.
func (h *RateHandler) GetRecommendation(c *gin.Context) {
	traceID, err := utils.GetTraceID(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, pkg.ErrorResponse{
			Code:    pkg.ErrServerCode.Code,
			Message: err.Error(),
		})
		return
	}

	var req views.RecommendationRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, pkg.ErrorResponse{
			Code:    pkg.ErrInvalidInputCode.Code,
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}
	if req.Priority != "" && !req.Priority.Valid() {
		c.JSON(http.StatusBadRequest, pkg.ErrorResponse{
			Code:    pkg.ErrInvalidInputCode.Code,
			Message: "unknown priority strategy",
		})
		return
	}

	winner, err := h.recommendation.Recommend(c.Request.Context(), req.ToShipment(), req.Priority)
	if err != nil {
		resp := pkg.ToErrorResponse(h.logger, traceID, err)
		c.JSON(resp.Status, resp)
		return
	}

	c.JSON(http.StatusOK, common.Wrap(traceID, "recommendation", winner))
}

// CheckPincode answers whether the pincode is serviceable and which zone
// it falls in.
func (h *RateHandler) CheckPincode(c *gin.Context) {
	traceID, err := utils.GetTraceID(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, pkg.ErrorResponse{
			Code:    pkg.ErrServerCode.Code,
			Message: err.Error(),
		})
		return
	}

	result := h.zones.CheckPincode(c.Param("pincode"))
	c.JSON(http.StatusOK, common.Wrap(traceID, "serviceability", result))
}
