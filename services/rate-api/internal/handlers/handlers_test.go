package handlers

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bluewud/rate-engine/pkg"
	middleware "github.com/bluewud/rate-engine/pkg/middlewares"
	"github.com/bluewud/rate-engine/pkg/models"
	"github.com/bluewud/rate-engine/services/rate-api/configs"
	"github.com/bluewud/rate-engine/services/rate-api/internal/carriers"
	"github.com/bluewud/rate-engine/services/rate-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// newTestRouter wires the full API with no external backends: carriers in
// simulation mode, no Redis, no Kafka.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	zones := services.NewZoneClassifier()
	calculator := services.NewRateCalculator(logger, zones)
	delay := services.NewDelayPredictor(zones, rand.New(rand.NewSource(1)))
	registry := carriers.NewRegistry(&configs.Config{DelhiveryMode: "test"}, calculator.Calculate, logger)
	aggregator := services.NewRateAggregator(logger, calculator, delay, registry, nil, 2*time.Second, models.CarrierIDs())
	recommendation := services.NewRecommendationService(logger, aggregator)
	rto := services.NewRTOService(logger)
	forecast := services.NewForecastService(logger)
	performance := services.NewPerformanceService(logger, nil, nil)

	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(middleware.TraceID(logger))

	NewRateHandler(logger, aggregator, recommendation, zones).RegisterRoutes(api)
	NewRiskHandler(logger, rto).RegisterRoutes(api)
	NewForecastHandler(logger, forecast).RegisterRoutes(api)
	NewOutcomeHandler(logger, performance).RegisterRoutes(api)
	NewBaseHandler(logger).RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		assert.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out struct {
		TraceID string                 `json:"traceId"`
		Data    map[string]interface{} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.NotEmpty(t, out.TraceID)
	return out.Data
}

func TestGetHealth(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPostRates_Success(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/rates", map[string]interface{}{
		"weight": 1.0,
		"state":  "Delhi",
		"city":   "Delhi",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	rates, ok := data["rates"].([]interface{})
	assert.True(t, ok)
	assert.Len(t, rates, len(models.CarrierIDs()))
}

func TestPostRates_MissingWeight(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/rates", map[string]interface{}{
		"state": "Delhi",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var out pkg.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, pkg.ErrInvalidInputCode.Code, out.Code)
}

func TestPostRecommendation_SmartDefault(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/rates/recommendation", map[string]interface{}{
		"weight": 0.5,
		"state":  "Maharashtra",
		"city":   "Mumbai",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	rec, ok := data["recommendation"].(map[string]interface{})
	assert.True(t, ok)
	assert.NotEmpty(t, rec["recommendation"])
	assert.NotEmpty(t, rec["carrierId"])
}

func TestPostRecommendation_UnknownPriority(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/rates/recommendation", map[string]interface{}{
		"weight":   0.5,
		"state":    "Delhi",
		"priority": "cheapest-ever",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPincode(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/pincode/781001", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	result, ok := data["serviceability"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, true, result["serviceable"])
	assert.Equal(t, "NE", result["zone"])
}

func TestPostRisk_NormalizesVariantPayload(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/risk", map[string]interface{}{
		"order": map[string]interface{}{
			"paymentMode": "COD",
			"totalAmount": 5000,
			"shippingAddress": map[string]interface{}{
				"pincode": "800001",
				"state":   "Bihar",
			},
			"customerType": "NEW",
		},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	assessment, ok := data["assessment"].(map[string]interface{})
	assert.True(t, ok)
	// COD 40 + risky pincode 30 + high-risk state 15 + new customer 15
	assert.Equal(t, float64(100), assessment["score"])
	assert.Equal(t, "CRITICAL", assessment["level"])
}

func TestPostRiskMetrics(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/risk/metrics", map[string]interface{}{
		"orders": []map[string]interface{}{
			{"paymentMethod": "COD", "pincode": "800001", "customerType": "NEW"},
			{"paymentMethod": "Prepaid", "pincode": "560001", "customerType": "RETURNING"},
		},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	metrics, ok := data["metrics"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, float64(1), metrics["highRiskCount"])
}

func TestPostForecast_InsufficientData(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/forecast", map[string]interface{}{
		"sku": "SKU-1",
		"orders": []map[string]interface{}{
			{"sku": "SKU-1", "quantity": 2, "createdAt": "2024-02-01"},
			{"sku": "SKU-1", "quantity": 3, "createdAt": "2024-02-02"},
		},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPostOutcome_Accepted(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/shipments/outcome", map[string]interface{}{
		"carrierId":    "delhivery",
		"zone":         "METRO",
		"deliveryDays": 3,
		"success":      true,
		"cost":         98,
		"weight":       1,
	})
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestGetCarrierPerformance_EmptyWithoutBackend(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/carriers/delhivery/performance", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	perf, ok := data["performance"].(map[string]interface{})
	assert.True(t, ok)
	assert.Empty(t, perf)
}
