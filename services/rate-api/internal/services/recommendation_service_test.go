package services

import (
	"context"
	"testing"

	"github.com/bluewud/rate-engine/pkg"
	"github.com/bluewud/rate-engine/pkg/models"
	"github.com/bluewud/rate-engine/pkg/views"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubAggregator struct {
	rates []views.RateQuote
}

func (s *stubAggregator) GetAllRates(_ context.Context, _ views.Shipment) []views.RateQuote {
	return s.rates
}

func newRecommender(rates []views.RateQuote) RecommendationService {
	return NewRecommendationService(zap.NewNop(), &stubAggregator{rates: rates})
}

func quoteFor(carrierID string, total int, days [2]int, zone models.Zone) views.RateQuote {
	carrier, _ := models.Carrier(carrierID)
	return views.RateQuote{
		CarrierID:         carrierID,
		CarrierName:       carrier.Name,
		Zone:              zone,
		Total:             total,
		EstimatedDelivery: days,
	}
}

func TestRecommend_NoCarriers(t *testing.T) {
	r := newRecommender(nil)

	_, err := r.Recommend(context.Background(), views.Shipment{}, pkg.PrioritySmart)
	assert.Error(t, err)

	var appErr pkg.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkg.ErrNoCarriersCode, appErr.Code)
}

func TestRecommend_CostPicksCheapest(t *testing.T) {
	r := newRecommender([]views.RateQuote{
		quoteFor("bluedart", 135, [2]int{1, 2}, models.ZoneROI),
		quoteFor("xpressbees", 84, [2]int{5, 7}, models.ZoneROI),
	})

	winner, err := r.Recommend(context.Background(), views.Shipment{State: "Rajasthan"}, pkg.PriorityCost)
	assert.NoError(t, err)
	assert.Equal(t, "xpressbees", winner.CarrierID)
	assert.Equal(t, "Highest Savings", winner.Recommendation)
}

func TestRecommend_SpeedPicksFastest(t *testing.T) {
	r := newRecommender([]views.RateQuote{
		quoteFor("bluedart", 135, [2]int{1, 2}, models.ZoneROI),
		quoteFor("xpressbees", 84, [2]int{5, 7}, models.ZoneROI),
	})

	winner, err := r.Recommend(context.Background(), views.Shipment{State: "Rajasthan"}, pkg.PrioritySpeed)
	assert.NoError(t, err)
	assert.Equal(t, "bluedart", winner.CarrierID)
	assert.Equal(t, "Fastest Delivery", winner.Recommendation)
}

func TestRecommend_ReliabilityPicksHighestScore(t *testing.T) {
	r := newRecommender([]views.RateQuote{
		quoteFor("xpressbees", 84, [2]int{5, 7}, models.ZoneROI),
		quoteFor("bluedart", 135, [2]int{2, 4}, models.ZoneROI),
	})

	winner, err := r.Recommend(context.Background(), views.Shipment{State: "Rajasthan"}, pkg.PriorityReliability)
	assert.NoError(t, err)
	assert.Equal(t, "bluedart", winner.CarrierID)
	assert.Equal(t, "Safest Choice", winner.Recommendation)
	assert.Contains(t, winner.Reason, "98%")
}

func TestRecommend_SmartAppliesStateOverrideWithinCap(t *testing.T) {
	// Delhivery wins the composite; xpressbees is Maharashtra's preferred
	// partner and costs under 10% more, so the override kicks in.
	r := newRecommender([]views.RateQuote{
		quoteFor("delhivery", 100, [2]int{2, 4}, models.ZoneAdjacent),
		quoteFor("xpressbees", 105, [2]int{3, 4}, models.ZoneAdjacent),
	})

	winner, err := r.Recommend(context.Background(), views.Shipment{State: "Maharashtra"}, pkg.PrioritySmart)
	assert.NoError(t, err)
	assert.Equal(t, "xpressbees", winner.CarrierID)
	assert.Equal(t, "Business Rule Match", winner.Recommendation)
	assert.Contains(t, winner.Reason, "Maharashtra")
}

func TestRecommend_SmartOverrideSkippedWhenTooExpensive(t *testing.T) {
	r := newRecommender([]views.RateQuote{
		quoteFor("delhivery", 100, [2]int{2, 4}, models.ZoneAdjacent),
		quoteFor("xpressbees", 125, [2]int{3, 4}, models.ZoneAdjacent),
	})

	winner, err := r.Recommend(context.Background(), views.Shipment{State: "Maharashtra"}, pkg.PrioritySmart)
	assert.NoError(t, err)
	assert.Equal(t, "delhivery", winner.CarrierID)
	assert.Equal(t, "AI Optimized (Delay Aware)", winner.Recommendation)
}

func TestRecommend_SmartDefaultsWithoutOverride(t *testing.T) {
	r := newRecommender([]views.RateQuote{
		quoteFor("delhivery", 98, [2]int{4, 6}, models.ZoneROI),
		quoteFor("ecomexpress", 91, [2]int{5, 7}, models.ZoneROI),
	})

	winner, err := r.Recommend(context.Background(), views.Shipment{State: "Rajasthan"}, pkg.PrioritySmart)
	assert.NoError(t, err)
	assert.Equal(t, "AI Optimized (Delay Aware)", winner.Recommendation)
	assert.NotEmpty(t, winner.Reason)
}

func TestRecommend_EmptyPriorityDefaultsToSmart(t *testing.T) {
	r := newRecommender([]views.RateQuote{
		quoteFor("delhivery", 98, [2]int{4, 6}, models.ZoneROI),
	})

	winner, err := r.Recommend(context.Background(), views.Shipment{State: "Rajasthan"}, "")
	assert.NoError(t, err)
	assert.Equal(t, "AI Optimized (Delay Aware)", winner.Recommendation)
}

func TestScoreOptions_Normalization(t *testing.T) {
	options := scoreOptions([]views.RateQuote{
		quoteFor("xpressbees", 80, [2]int{5, 7}, models.ZoneROI),
		quoteFor("bluedart", 120, [2]int{2, 4}, models.ZoneROI),
	})

	// Cheapest scores 0 on cost, priciest 100; fastest 0 on speed.
	assert.Equal(t, 0.0, options[0].Scores.Cost)
	assert.Equal(t, 100.0, options[1].Scores.Cost)
	assert.Equal(t, 100.0, options[0].Scores.Speed)
	assert.Equal(t, 0.0, options[1].Scores.Speed)
	// Reliability is a penalty: 100 - carrier score.
	assert.Equal(t, 100-82.0, options[0].Scores.Reliability)
	assert.Equal(t, 100-98.0, options[1].Scores.Reliability)
}

func TestScoreOptions_SingleOptionScoresZero(t *testing.T) {
	options := scoreOptions([]views.RateQuote{
		quoteFor("delhivery", 98, [2]int{4, 6}, models.ZoneROI),
	})
	assert.Equal(t, 0.0, options[0].Scores.Cost)
	assert.Equal(t, 0.0, options[0].Scores.Speed)
}
