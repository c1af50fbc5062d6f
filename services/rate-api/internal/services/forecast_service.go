package services

import (
	"math"
	"sort"
	"time"

	"github.com/bluewud/rate-engine/pkg"
	"github.com/bluewud/rate-engine/pkg/utils"
	"go.uber.org/zap"
)

const (
	minForecastSamples = 5
	changepointSlope   = 0.5
	holidayWindowDays  = 3
)

// holiday is one entry in the Indian e-commerce demand calendar.
type holiday struct {
	Name   string
	Month  time.Month
	Day    int
	Impact float64 // demand multiplier at the peak
}

// holidays: dates for the movable festivals are approximate.
var holidays = []holiday{
	{"Republic Day", time.January, 26, 1.3},
	{"Holi", time.March, 15, 1.2},
	{"Diwali", time.October, 24, 2.5},
	{"Christmas", time.December, 25, 1.8},
	{"New Year", time.January, 1, 1.5},
	{"Amazon Prime Day", time.July, 15, 2.0},
	{"Flipkart Big Billion Days", time.October, 1, 2.2},
}

// OrderRecord is the minimal order shape demand forecasting needs.
type OrderRecord struct {
	SKU       string    `json:"sku"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
}

// DailyQuantity is one day of observed demand.
type DailyQuantity struct {
	Date     string `json:"date"`
	Quantity int    `json:"quantity"`
}

// Trend is the fitted linear component.
type Trend struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// Changepoint marks a significant slope shift in the demand series.
type Changepoint struct {
	Index       int     `json:"index"`
	SlopeBefore float64 `json:"slopeBefore"`
	SlopeAfter  float64 `json:"slopeAfter"`
	Magnitude   float64 `json:"magnitude"`
}

// ForecastPoint is one predicted day with confidence bands.
type ForecastPoint struct {
	Date          string  `json:"date"`
	Quantity      int     `json:"quantity"`
	Low80         int     `json:"low80"`
	High80        int     `json:"high80"`
	Low95         int     `json:"low95"`
	High95        int     `json:"high95"`
	Trend         float64 `json:"trend"`
	Seasonal      float64 `json:"seasonal"`
	HolidayEffect float64 `json:"holidayEffect"`
}

// Decomposition exposes the fitted model components.
type Decomposition struct {
	Trend        Trend         `json:"trend"`
	Seasonality  [7]float64    `json:"seasonality"` // indexed by weekday, Sunday=0
	Changepoints []Changepoint `json:"changepoints"`
}

// ForecastMetrics summarizes the fit.
type ForecastMetrics struct {
	GrowthRate       float64 `json:"growthRate"` // predicted 30-day change
	Volatility       float64 `json:"volatility"` // std dev of observed demand
	AvgDemand        float64 `json:"avgDemand"`
	ChangepointCount int     `json:"changepointCount"`
}

// DemandForecast is the full forecast output for one SKU.
type DemandForecast struct {
	Forecast      []ForecastPoint `json:"forecast"`
	History       []DailyQuantity `json:"history"`
	Decomposition Decomposition   `json:"decomposition"`
	Metrics       ForecastMetrics `json:"metrics"`
}

// ForecastService predicts per-SKU demand using additive trend+seasonality
// decomposition with holiday effects and changepoint detection.
type ForecastService interface {
	PredictDemand(orders []OrderRecord, sku string, forecastDays int) (DemandForecast, error)
	SMAForecast(orders []OrderRecord, windowDays, forecastDays int) []DailyQuantity
	ReorderPoint(forecast DemandForecast, leadTimeDays int, safetyStockFactor float64) int
}

type ForecastServiceImpl struct {
	logger *zap.Logger
}

func NewForecastService(logger *zap.Logger) ForecastService {
	return &ForecastServiceImpl{logger: logger}
}

func (f *ForecastServiceImpl) PredictDemand(orders []OrderRecord, sku string, forecastDays int) (DemandForecast, error) {
	var skuOrders []OrderRecord
	for _, order := range orders {
		if order.SKU == sku {
			skuOrders = append(skuOrders, order)
		}
	}
	sort.Slice(skuOrders, func(i, j int) bool { return skuOrders[i].CreatedAt.Before(skuOrders[j].CreatedAt) })

	if len(skuOrders) < minForecastSamples {
		return DemandForecast{}, pkg.NewAppError(pkg.ErrInsufficientDataCode, "insufficient data for forecasting", nil)
	}

	daily := groupByDay(skuOrders)
	values := make([]float64, len(daily))
	for i, d := range daily {
		values[i] = float64(d.Quantity)
	}

	trend := fitTrend(values)
	changepoints := detectChangepoints(values)
	seasonality := weeklySeasonality(values, trend)
	stdDev := stdDev(values)

	lastDate, _ := time.Parse("2006-01-02", daily[len(daily)-1].Date)
	forecast := make([]ForecastPoint, 0, forecastDays)
	for i := 1; i <= forecastDays; i++ {
		date := lastDate.AddDate(0, 0, i)
		trendValue := trend.Slope*float64(len(values)+i) + trend.Intercept
		seasonal := seasonality[int(date.Weekday())]
		multiplier := holidayImpact(date)
		predicted := math.Max(0, (trendValue+seasonal)*multiplier)

		holidayEffect := 0.0
		if multiplier > 1 {
			holidayEffect = multiplier - 1
		}
		forecast = append(forecast, ForecastPoint{
			Date:          date.Format("2006-01-02"),
			Quantity:      utils.RoundTo(predicted),
			Low80:         maxInt(0, utils.RoundTo(predicted-1.28*stdDev)),
			High80:        utils.RoundTo(predicted + 1.28*stdDev),
			Low95:         maxInt(0, utils.RoundTo(predicted-1.96*stdDev)),
			High95:        utils.RoundTo(predicted + 1.96*stdDev),
			Trend:         trendValue,
			Seasonal:      seasonal,
			HolidayEffect: holidayEffect,
		})
	}

	history := daily
	if len(history) > 30 {
		history = history[len(history)-30:]
	}

	var sum float64
	for _, v := range values {
		sum += v
	}

	return DemandForecast{
		Forecast: forecast,
		History:  history,
		Decomposition: Decomposition{
			Trend:        trend,
			Seasonality:  seasonality,
			Changepoints: changepoints,
		},
		Metrics: ForecastMetrics{
			GrowthRate:       trend.Slope * 30,
			Volatility:       stdDev,
			AvgDemand:        sum / float64(len(values)),
			ChangepointCount: len(changepoints),
		},
	}, nil
}

// SMAForecast computes a simple moving average over daily order volume and
// extends it flat for forecastDays. Kept for the dashboard's light view.
func (f *ForecastServiceImpl) SMAForecast(orders []OrderRecord, windowDays, forecastDays int) []DailyQuantity {
	if len(orders) == 0 {
		return nil
	}
	if windowDays <= 0 {
		windowDays = 30
	}

	daily := groupByDay(orders)
	result := make([]DailyQuantity, 0, len(daily)+forecastDays)
	window := make([]int, 0, windowDays)
	var windowSum int
	var lastSMA float64

	for _, d := range daily {
		window = append(window, d.Quantity)
		windowSum += d.Quantity
		if len(window) > windowDays {
			windowSum -= window[0]
			window = window[1:]
		}
		lastSMA = float64(windowSum) / float64(len(window))
		result = append(result, DailyQuantity{Date: d.Date, Quantity: utils.RoundTo(lastSMA)})
	}

	lastDate, _ := time.Parse("2006-01-02", daily[len(daily)-1].Date)
	for i := 1; i <= forecastDays; i++ {
		result = append(result, DailyQuantity{
			Date:     lastDate.AddDate(0, 0, i).Format("2006-01-02"),
			Quantity: utils.RoundTo(lastSMA),
		})
	}
	return result
}

// ReorderPoint converts a forecast into a reorder quantity: lead-time
// demand plus safety stock scaled by demand volatility.
func (f *ForecastServiceImpl) ReorderPoint(forecast DemandForecast, leadTimeDays int, safetyStockFactor float64) int {
	if leadTimeDays <= 0 {
		leadTimeDays = 7
	}
	if safetyStockFactor <= 0 {
		safetyStockFactor = 1.96
	}

	var leadTimeDemand int
	for i, point := range forecast.Forecast {
		if i >= leadTimeDays {
			break
		}
		leadTimeDemand += point.Quantity
	}
	safetyStock := math.Sqrt(float64(leadTimeDays)) * forecast.Metrics.Volatility * safetyStockFactor
	return leadTimeDemand + utils.RoundTo(safetyStock)
}

// groupByDay buckets orders into a contiguous daily series, zero-filling
// days with no orders.
func groupByDay(orders []OrderRecord) []DailyQuantity {
	groups := make(map[string]int)
	var first, last time.Time
	for i, order := range orders {
		day := order.CreatedAt.Truncate(24 * time.Hour)
		qty := order.Quantity
		if qty == 0 {
			qty = 1
		}
		groups[day.Format("2006-01-02")] += qty
		if i == 0 || day.Before(first) {
			first = day
		}
		if i == 0 || day.After(last) {
			last = day
		}
	}

	var result []DailyQuantity
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		result = append(result, DailyQuantity{Date: key, Quantity: groups[key]})
	}
	return result
}

// fitTrend runs ordinary least squares over the series index.
func fitTrend(values []float64) Trend {
	n := float64(len(values))
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range values {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return Trend{}
	}
	slope := (n*sumXY - sumX*sumY) / denom
	return Trend{Slope: slope, Intercept: (sumY - slope*sumX) / n}
}

// weeklySeasonality averages detrended residuals per weekday slot.
func weeklySeasonality(values []float64, trend Trend) [7]float64 {
	var sums [7]float64
	var counts [7]int
	for i, v := range values {
		residual := v - (trend.Slope*float64(i) + trend.Intercept)
		sums[i%7] += residual
		counts[i%7]++
	}
	var seasonal [7]float64
	for i := range seasonal {
		if counts[i] > 0 {
			seasonal[i] = sums[i] / float64(counts[i])
		}
	}
	return seasonal
}

func stdDev(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	avg := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		sq += (v - avg) * (v - avg)
	}
	return math.Sqrt(sq / float64(len(values)))
}

// detectChangepoints compares local trends in sliding windows and flags
// significant slope shifts.
func detectChangepoints(values []float64) []Changepoint {
	windowSize := len(values) / 10
	if windowSize < 7 {
		windowSize = 7
	}

	var changepoints []Changepoint
	for i := windowSize; i < len(values)-windowSize; i++ {
		before := fitTrend(values[i-windowSize : i])
		after := fitTrend(values[i : i+windowSize])
		change := math.Abs(after.Slope - before.Slope)
		if change > changepointSlope {
			changepoints = append(changepoints, Changepoint{
				Index:       i,
				SlopeBefore: before.Slope,
				SlopeAfter:  after.Slope,
				Magnitude:   change,
			})
		}
	}
	return changepoints
}

// holidayImpact returns the demand multiplier when date falls within three
// days of a calendar holiday, decaying with distance from the peak.
func holidayImpact(date time.Time) float64 {
	for _, h := range holidays {
		peak := time.Date(date.Year(), h.Month, h.Day, 0, 0, 0, 0, date.Location())
		dayDiff := math.Abs(date.Sub(peak).Hours() / 24)
		if dayDiff <= holidayWindowDays {
			decay := 1 - (dayDiff/holidayWindowDays)*0.3
			return 1 + (h.Impact-1)*decay
		}
	}
	return 1.0
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
