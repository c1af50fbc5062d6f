package services

import (
	"math"

	"github.com/bluewud/rate-engine/pkg"
	"github.com/bluewud/rate-engine/pkg/models"
	"github.com/bluewud/rate-engine/pkg/utils"
	"github.com/bluewud/rate-engine/pkg/views"
	"go.uber.org/zap"
)

// RateCalculator prices a shipment against a carrier's static rate card.
// Unknown carriers and unserviceable zones come back as AppError values,
// never panics, so callers can render the message directly.
type RateCalculator interface {
	Calculate(carrierID string, shipment views.Shipment) (views.RateQuote, error)
}

type RateCalculatorImpl struct {
	logger *zap.Logger
	zones  ZoneClassifier
}

func NewRateCalculator(logger *zap.Logger, zones ZoneClassifier) RateCalculator {
	return &RateCalculatorImpl{logger: logger, zones: zones}
}

func (r *RateCalculatorImpl) Calculate(carrierID string, shipment views.Shipment) (views.RateQuote, error) {
	carrier, ok := models.Carrier(carrierID)
	if !ok || !carrier.Serviceable {
		return views.RateQuote{}, pkg.NewAppError(pkg.ErrCarrierNotAvailableCode, "carrier not available", nil)
	}

	zone := r.zones.Classify(shipment.State, shipment.City)
	zoneRate, ok := carrier.Zones[zone]
	if !ok {
		// A zone missing from the card means the carrier doesn't serve it.
		return views.RateQuote{}, pkg.NewAppError(pkg.ErrZoneNotServiceableCode, "zone not serviceable", nil)
	}

	// Billed weight: round up to the nearest 0.5kg, never below the
	// carrier's minimum billable weight.
	weight := shipment.Weight
	if weight <= 0 {
		weight = zoneRate.MinWeight
	}
	weight = math.Max(weight, zoneRate.MinWeight)
	billedWeight := math.Ceil(weight*2) / 2

	// Freight: base covers the first 0.5kg, each further 0.5kg slab adds
	// the incremental rate. Slab count stays fractional by contract.
	freight := zoneRate.Base
	if billedWeight > 0.5 {
		additionalSlabs := (billedWeight - 0.5) / 0.5
		freight += additionalSlabs * zoneRate.Additional
	}

	fuelCharge := freight * carrier.FuelSurcharge / 100

	var codCharge float64
	if shipment.IsCOD && shipment.CODAmount > 0 {
		codCharge = carrier.CODFlatFee + shipment.CODAmount*carrier.CODPercent/100
	}

	subtotal := freight + fuelCharge + codCharge
	tax := subtotal * carrier.TaxPercent / 100

	// Total is rounded exactly once from the unrounded sum. Breakdown
	// fields are rounded per-field for display and may disagree with
	// Total by one rupee when independently summed.
	total := utils.RoundTo(subtotal + tax)

	return views.RateQuote{
		CarrierID:    carrierID,
		CarrierName:  carrier.Name,
		Zone:         zone,
		BilledWeight: billedWeight,
		Breakdown: views.Breakdown{
			Freight:       utils.RoundTo(freight),
			FuelSurcharge: utils.RoundTo(fuelCharge),
			CODCharge:     utils.RoundTo(codCharge),
			Subtotal:      utils.RoundTo(subtotal),
			Tax:           utils.RoundTo(tax),
		},
		Total:             total,
		EstimatedDelivery: zoneRate.DeliveryDays,
		IsCOD:             shipment.IsCOD,
		Source:            views.QuoteSourceStatic,
	}, nil
}
