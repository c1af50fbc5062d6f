package services

import (
	"testing"
	"time"

	"github.com/bluewud/rate-engine/pkg"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newForecaster() ForecastService {
	return NewForecastService(zap.NewNop())
}

// dailyOrders builds one order per day for the SKU starting at start.
func dailyOrders(sku string, start time.Time, quantities []int) []OrderRecord {
	orders := make([]OrderRecord, len(quantities))
	for i, q := range quantities {
		orders[i] = OrderRecord{
			SKU:       sku,
			Quantity:  q,
			CreatedAt: start.AddDate(0, 0, i),
		}
	}
	return orders
}

func TestPredictDemand_InsufficientData(t *testing.T) {
	f := newForecaster()
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	_, err := f.PredictDemand(dailyOrders("SKU-1", start, []int{3, 4, 5}), "SKU-1", 7)
	assert.Error(t, err)

	var appErr pkg.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkg.ErrInsufficientDataCode, appErr.Code)
}

func TestPredictDemand_FiltersOtherSKUs(t *testing.T) {
	f := newForecaster()
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	orders := dailyOrders("SKU-OTHER", start, []int{5, 5, 5, 5, 5, 5, 5})
	_, err := f.PredictDemand(orders, "SKU-1", 7)
	assert.Error(t, err)
}

func TestPredictDemand_GrowingSeries(t *testing.T) {
	f := newForecaster()
	// Early February keeps the horizon clear of calendar holidays.
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	quantities := []int{4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17}

	forecast, err := f.PredictDemand(dailyOrders("SKU-1", start, quantities), "SKU-1", 7)
	assert.NoError(t, err)

	assert.Len(t, forecast.Forecast, 7)
	assert.Positive(t, forecast.Metrics.GrowthRate)
	assert.InDelta(t, 10.5, forecast.Metrics.AvgDemand, 0.01)

	for _, point := range forecast.Forecast {
		assert.GreaterOrEqual(t, point.Quantity, 0)
		assert.LessOrEqual(t, point.Low95, point.Low80)
		assert.LessOrEqual(t, point.Low80, point.Quantity)
		assert.LessOrEqual(t, point.Quantity, point.High80)
		assert.LessOrEqual(t, point.High80, point.High95)
	}

	// A clean linear ramp has slope ~1/day.
	assert.InDelta(t, 1.0, forecast.Decomposition.Trend.Slope, 0.05)
}

func TestPredictDemand_HolidayLiftsForecast(t *testing.T) {
	f := newForecaster()
	// History ends Oct 20; the horizon crosses Diwali (Oct 24, 2.5x).
	start := time.Date(2024, 10, 7, 0, 0, 0, 0, time.UTC)
	quantities := []int{10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10}

	forecast, err := f.PredictDemand(dailyOrders("SKU-1", start, quantities), "SKU-1", 7)
	assert.NoError(t, err)

	// Oct 21 sits at the edge of the holiday window, Oct 24 at the peak.
	var diwali, shoulder *ForecastPoint
	for i := range forecast.Forecast {
		switch forecast.Forecast[i].Date {
		case "2024-10-24":
			diwali = &forecast.Forecast[i]
		case "2024-10-21":
			shoulder = &forecast.Forecast[i]
		}
	}
	assert.NotNil(t, diwali)
	assert.NotNil(t, shoulder)
	assert.Greater(t, diwali.HolidayEffect, 1.0)
	assert.Greater(t, diwali.Quantity, shoulder.Quantity)
}

func TestPredictDemand_ZeroFillsMissingDays(t *testing.T) {
	f := newForecaster()
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	orders := []OrderRecord{
		{SKU: "SKU-1", Quantity: 5, CreatedAt: start},
		{SKU: "SKU-1", Quantity: 5, CreatedAt: start.AddDate(0, 0, 2)},
		{SKU: "SKU-1", Quantity: 5, CreatedAt: start.AddDate(0, 0, 4)},
		{SKU: "SKU-1", Quantity: 5, CreatedAt: start.AddDate(0, 0, 6)},
		{SKU: "SKU-1", Quantity: 5, CreatedAt: start.AddDate(0, 0, 8)},
	}
	forecast, err := f.PredictDemand(orders, "SKU-1", 3)
	assert.NoError(t, err)

	// 9 calendar days: 5 with orders, 4 zero-filled.
	assert.Len(t, forecast.History, 9)
	assert.Equal(t, 0, forecast.History[1].Quantity)
}

func TestSMAForecast_FlatSeries(t *testing.T) {
	f := newForecaster()
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	result := f.SMAForecast(dailyOrders("SKU-1", start, []int{4, 4, 4, 4, 4, 4}), 3, 2)
	assert.Len(t, result, 8)
	for _, point := range result {
		assert.Equal(t, 4, point.Quantity)
	}
}

func TestSMAForecast_Empty(t *testing.T) {
	f := newForecaster()
	assert.Nil(t, f.SMAForecast(nil, 3, 2))
}

func TestReorderPoint(t *testing.T) {
	f := newForecaster()

	forecast := DemandForecast{
		Forecast: []ForecastPoint{
			{Quantity: 10}, {Quantity: 10}, {Quantity: 10}, {Quantity: 10}, {Quantity: 10},
		},
		Metrics: ForecastMetrics{Volatility: 0},
	}

	// No volatility: reorder point equals lead-time demand.
	assert.Equal(t, 30, f.ReorderPoint(forecast, 3, 1.96))

	forecast.Metrics.Volatility = 2
	assert.Greater(t, f.ReorderPoint(forecast, 3, 1.96), 30)
}
