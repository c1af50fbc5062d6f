package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/bluewud/rate-engine/pkg"
	"github.com/bluewud/rate-engine/pkg/models"
	"github.com/bluewud/rate-engine/pkg/views"
	"github.com/bluewud/rate-engine/services/rate-api/internal/observability"
	"go.uber.org/zap"
)

// smart-composite weights: 30% cost, 40% speed (incl. predicted delay), 30% reliability
const (
	weightCost        = 0.3
	weightSpeed       = 0.4
	weightReliability = 0.3
	aiDelayFactor     = 20 // one predicted delay day costs 20 speed points
	overrideCostCap   = 1.1
)

// RecommendationService picks the winning quote for a shipment under a
// priority strategy (cost, speed, reliability, or the smart composite).
type RecommendationService interface {
	Recommend(ctx context.Context, shipment views.Shipment, priority pkg.Priority) (views.RateQuote, error)
}

type RecommendationServiceImpl struct {
	logger     *zap.Logger
	aggregator RateAggregator
}

func NewRecommendationService(logger *zap.Logger, aggregator RateAggregator) RecommendationService {
	return &RecommendationServiceImpl{logger: logger, aggregator: aggregator}
}

func (r *RecommendationServiceImpl) Recommend(ctx context.Context, shipment views.Shipment, priority pkg.Priority) (views.RateQuote, error) {
	rates := r.aggregator.GetAllRates(ctx, shipment)
	if len(rates) == 0 {
		return views.RateQuote{}, pkg.NewAppError(pkg.ErrNoCarriersCode, "no carriers available", nil)
	}

	options := scoreOptions(rates)

	if priority == "" {
		priority = pkg.PrioritySmart
	}
	observability.RecommendationsTotal.WithLabelValues(string(priority)).Inc()

	var winner views.RateQuote
	switch priority {
	case pkg.PrioritySpeed:
		sort.Slice(options, func(i, j int) bool { return options[i].Scores.Speed < options[j].Scores.Speed })
		winner = options[0]
		winner.Recommendation = "Fastest Delivery"
		winner.Reason = fmt.Sprintf("Rapid transit with %s", winner.CarrierName)

	case pkg.PriorityReliability:
		sort.Slice(options, func(i, j int) bool { return options[i].Scores.Reliability < options[j].Scores.Reliability })
		winner = options[0]
		winner.Recommendation = "Safest Choice"
		winner.Reason = fmt.Sprintf("Highest delivery success rate (%.0f%%)", reliabilityOf(winner.CarrierID))

	case pkg.PriorityCost:
		sort.Slice(options, func(i, j int) bool { return options[i].Scores.Cost < options[j].Scores.Cost })
		winner = options[0]
		winner.Recommendation = "Highest Savings"
		winner.Reason = "Lowest freight cost in this zone"

	default: // smart
		sort.Slice(options, func(i, j int) bool { return compositeScore(options[i]) < compositeScore(options[j]) })
		winner = options[0]
		winner = r.applyBusinessOverride(shipment, options, winner)
	}

	return winner, nil
}

// scoreOptions normalizes cost and speed to 0-100 across the candidate
// set (0 is best) and attaches the reliability penalty.
func scoreOptions(rates []views.RateQuote) []views.RateQuote {
	minCost, maxCost := rates[0].Total, rates[0].Total
	minDays, maxDays := rates[0].EstimatedDelivery[0], rates[0].EstimatedDelivery[0]
	for _, rate := range rates[1:] {
		if rate.Total < minCost {
			minCost = rate.Total
		}
		if rate.Total > maxCost {
			maxCost = rate.Total
		}
		if rate.EstimatedDelivery[0] < minDays {
			minDays = rate.EstimatedDelivery[0]
		}
		if rate.EstimatedDelivery[0] > maxDays {
			maxDays = rate.EstimatedDelivery[0]
		}
	}

	options := make([]views.RateQuote, len(rates))
	for i, rate := range rates {
		var costScore, speedScore float64
		if maxCost != minCost {
			costScore = float64(rate.Total-minCost) / float64(maxCost-minCost) * 100
		}
		if maxDays != minDays {
			speedScore = float64(rate.EstimatedDelivery[0]-minDays) / float64(maxDays-minDays) * 100
		}
		rate.Scores = &views.Scores{
			Cost:        costScore,
			Speed:       speedScore,
			Reliability: 100 - reliabilityOf(rate.CarrierID),
		}
		options[i] = rate
	}
	return options
}

func compositeScore(q views.RateQuote) float64 {
	speedWithDelay := q.Scores.Speed + q.AIDelay*aiDelayFactor
	return q.Scores.Cost*weightCost + speedWithDelay*weightSpeed + q.Scores.Reliability*weightReliability
}

// applyBusinessOverride swaps in the preferred-matrix carrier when one is
// configured for the destination state or zone and its cost stays within
// 10% of the composite winner.
func (r *RecommendationServiceImpl) applyBusinessOverride(shipment views.Shipment, options []views.RateQuote, winner views.RateQuote) views.RateQuote {
	overrideID, ok := models.PreferredCarrierMatrix[shipment.State]
	if !ok {
		overrideID = models.PreferredCarrierMatrix[string(winner.Zone)]
	}

	for _, option := range options {
		if option.CarrierID != overrideID {
			continue
		}
		if float64(option.Total) <= float64(winner.Total)*overrideCostCap {
			target := shipment.State
			if target == "" {
				target = string(winner.Zone)
			}
			r.logger.Info("business rule override applied",
				zap.String("carrier", option.CarrierID),
				zap.String("target", target),
			)
			option.Recommendation = "Business Rule Match"
			option.Reason = fmt.Sprintf("Preferred partner for %s", target)
			return option
		}
		break
	}

	winner.Recommendation = "AI Optimized (Delay Aware)"
	if winner.AIDelay > 0 {
		winner.Reason = fmt.Sprintf("Calculated lowest risk despite %.1fd predicted regional delay", winner.AIDelay)
	} else {
		winner.Reason = "Best balance of cost, speed, and reliability"
	}
	return winner
}

func reliabilityOf(carrierID string) float64 {
	if carrier, ok := models.Carrier(carrierID); ok {
		return carrier.ReliabilityScore
	}
	return 0
}
