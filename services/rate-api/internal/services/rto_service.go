package services

import (
	"fmt"
	"time"

	"github.com/bluewud/rate-engine/pkg/utils"
	"github.com/bluewud/rate-engine/pkg/views"
	"go.uber.org/zap"
)

// Scoring thresholds and adjustments. Each factor is independent and
// additive; the running score is clamped to [0,100] at the end.
const (
	codAdjustment             = 40
	highRiskStateAdjustment   = 15
	riskyPincodeAdjustment    = 30
	safePincodeAdjustment     = -10
	unmappedPincodeAdjustment = 10
	criticalValueAdjustment   = 25
	highValueAdjustment       = 20
	badHistoryAdjustment      = 30
	newCustomerAdjustment     = 15
	returningAdjustment       = -20
	duplicateAdjustment       = 50

	criticalValueThreshold = 50000.0
	highValueThreshold     = 15000.0
	badHistoryRTORate      = 0.3

	riskyPincodeFraction = 0.5
	safePincodeFraction  = 0.2

	verificationThreshold = 55
)

// highRiskStates see disproportionate COD refusals and RTO volume.
var highRiskStates = map[string]bool{
	"Uttar Pradesh": true,
	"Bihar":         true,
	"West Bengal":   true,
}

// pincodeRisk holds observed RTO fractions for pincodes with enough
// shipment history to matter. Sourced from the returns ledger, refreshed
// quarterly.
var pincodeRisk = map[string]float64{
	"800001": 0.65, // Patna GPO
	"800002": 0.58,
	"846001": 0.52, // Darbhanga
	"221001": 0.55, // Varanasi
	"700016": 0.48,
	"560001": 0.10, // Bangalore GPO
	"110001": 0.12, // New Delhi
	"400001": 0.15, // Mumbai Fort
	"600001": 0.17,
}

// RTOService predicts return-to-origin risk for an order and estimates
// the financial hit if the shipment bounces.
type RTOService interface {
	PredictRisk(order views.Order, history *views.CustomerHistory) views.RiskAssessment
	PotentialLoss(order views.Order) int
	RequiresVerification(order views.Order) bool
	RiskMetrics(orders []views.Order) views.RiskMetrics
}

type RTOServiceImpl struct {
	logger *zap.Logger
}

func NewRTOService(logger *zap.Logger) RTOService {
	return &RTOServiceImpl{logger: logger}
}

// PredictRisk runs the additive scoring model. history may be nil when the
// caller has no shipment record for the customer.
func (s *RTOServiceImpl) PredictRisk(order views.Order, history *views.CustomerHistory) views.RiskAssessment {
	score := 0
	var reasons []string

	// 1. Payment method: COD carries the refusal risk; prepaid/UPI/card
	// are negligible.
	if order.PaymentMethod == "COD" {
		score += codAdjustment
		reasons = append(reasons, "COD payment")
	}

	// 2. Destination state
	if highRiskStates[order.State] {
		score += highRiskStateAdjustment
		reasons = append(reasons, fmt.Sprintf("High-risk state: %s", order.State))
	}

	// 3. Destination pincode
	if fraction, ok := pincodeRisk[order.Pincode]; ok {
		if fraction > riskyPincodeFraction {
			score += riskyPincodeAdjustment
			reasons = append(reasons, fmt.Sprintf("High-risk pincode %s (%.0f%% RTO)", order.Pincode, fraction*100))
		} else if fraction < safePincodeFraction {
			score += safePincodeAdjustment
			reasons = append(reasons, fmt.Sprintf("Safe pincode %s", order.Pincode))
		}
	} else if highRiskStates[order.State] {
		score += unmappedPincodeAdjustment
		reasons = append(reasons, "Unmapped pincode in high-risk state")
	}

	// 4. Order value: critical check takes precedence, never both.
	if order.Amount > criticalValueThreshold {
		score += criticalValueAdjustment
		reasons = append(reasons, "Critical order value (>50k)")
	} else if order.Amount > highValueThreshold {
		score += highValueAdjustment
		reasons = append(reasons, "High ticket value (>15k)")
	}

	// 5. Customer history
	if history != nil && history.RTORate > badHistoryRTORate {
		score += badHistoryAdjustment
		reasons = append(reasons, fmt.Sprintf("Customer RTO rate %.0f%%", history.RTORate*100))
	} else if history == nil && order.CustomerType == views.CustomerNew {
		score += newCustomerAdjustment
		reasons = append(reasons, "New customer")
	} else if order.CustomerType == views.CustomerReturning {
		score += returningAdjustment
		reasons = append(reasons, "Returning customer")
	}

	// 6. Duplicate detection
	if order.IsDuplicateCandidate {
		score += duplicateAdjustment
		reasons = append(reasons, "Potential duplicate order")
	}

	score = utils.Clamp(score, 0, 100)
	assessment := views.RiskAssessment{
		Score:                score,
		Level:                riskLevel(score),
		Reasons:              reasons,
		PotentialLoss:        s.PotentialLoss(order),
		RequiresVerification: score >= verificationThreshold,
		Timestamp:            time.Now().UTC(),
	}

	s.logger.Debug("rto risk assessed",
		zap.Int("score", assessment.Score),
		zap.String("level", string(assessment.Level)),
		zap.Strings("reasons", reasons),
	)
	return assessment
}

func riskLevel(score int) views.RiskLevel {
	switch {
	case score >= 70:
		return views.RiskCritical
	case score >= 50:
		return views.RiskHigh
	case score >= 30:
		return views.RiskMedium
	default:
		return views.RiskLow
	}
}

// PotentialLoss estimates the cost of one RTO cycle: forward shipping,
// reverse logistics at 1.5x, flat handling, and opportunity cost on the
// blocked stock.
func (s *RTOServiceImpl) PotentialLoss(order views.Order) int {
	amount := order.Amount
	if amount <= 0 {
		amount = 10000
	}
	shipping := maxFloat(200, amount*0.02)
	reverse := shipping * 1.5
	const handling = 50.0
	oppCost := amount * 0.015
	return utils.RoundTo(shipping + reverse + handling + oppCost)
}

// RequiresVerification flags orders that should get a confirmation call
// before dispatch.
func (s *RTOServiceImpl) RequiresVerification(order views.Order) bool {
	return s.PredictRisk(order, nil).Score >= verificationThreshold
}

// RiskMetrics aggregates risk over a batch of orders.
func (s *RTOServiceImpl) RiskMetrics(orders []views.Order) views.RiskMetrics {
	if len(orders) == 0 {
		return views.RiskMetrics{}
	}

	var sum, highRisk int
	for _, order := range orders {
		assessment := s.PredictRisk(order, nil)
		sum += assessment.Score
		if assessment.Score >= verificationThreshold {
			highRisk++
		}
	}
	return views.RiskMetrics{
		AvgRiskScore:  utils.RoundTo(float64(sum) / float64(len(orders))),
		HighRiskCount: highRisk,
		RTORate:       float64(highRisk) / float64(len(orders)) * 100,
	}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
