package views

import (
	"github.com/bluewud/rate-engine/pkg"
	"github.com/bluewud/rate-engine/pkg/models"
	pkgviews "github.com/bluewud/rate-engine/pkg/views"
)

// RateRequest asks for quotes across all carriers for one shipment.
type RateRequest struct {
	Weight    float64 `json:"weight" binding:"required,gt=0"`
	State     string  `json:"state" binding:"required"`
	City      string  `json:"city"`
	Pincode   string  `json:"pincode"`
	IsCOD     bool    `json:"isCOD"`
	CODAmount float64 `json:"codAmount"`
}

func (r RateRequest) ToShipment() pkgviews.Shipment {
	return pkgviews.Shipment{
		Weight:    r.Weight,
		State:     r.State,
		City:      r.City,
		Pincode:   r.Pincode,
		IsCOD:     r.IsCOD,
		CODAmount: r.CODAmount,
	}
}

// RecommendationRequest adds the priority strategy to a rate request.
// Priority defaults to smart when omitted.
type RecommendationRequest struct {
	RateRequest
	Priority pkg.Priority `json:"priority"`
}

// RiskRequest wraps the raw order payload. Customer history is optional;
// without it the scorer falls back to the customerType field.
type RiskRequest struct {
	Order   pkgviews.OrderInput       `json:"order" binding:"required"`
	History *pkgviews.CustomerHistory `json:"history"`
}

// RiskMetricsRequest aggregates risk across a batch of orders.
type RiskMetricsRequest struct {
	Orders []pkgviews.OrderInput `json:"orders" binding:"required,min=1"`
}

// ForecastRequest asks for a per-SKU demand forecast.
type ForecastRequest struct {
	Orders       []ForecastOrder `json:"orders" binding:"required"`
	SKU          string          `json:"sku" binding:"required"`
	ForecastDays int             `json:"forecastDays"`
}

// ForecastOrder mirrors services.OrderRecord on the wire.
type ForecastOrder struct {
	SKU       string `json:"sku"`
	Quantity  int    `json:"quantity"`
	CreatedAt string `json:"createdAt" binding:"required"` // RFC 3339 or YYYY-MM-DD
}

// OutcomeRequest records how a delivered (or bounced) shipment went.
type OutcomeRequest struct {
	CarrierID    string      `json:"carrierId" binding:"required"`
	Zone         models.Zone `json:"zone" binding:"required"`
	DeliveryDays float64     `json:"deliveryDays" binding:"gte=0"`
	Success      bool        `json:"success"`
	Cost         float64     `json:"cost" binding:"gte=0"`
	Weight       float64     `json:"weight" binding:"gte=0"`
}

func (o OutcomeRequest) ToOutcome() pkgviews.DeliveryOutcome {
	return pkgviews.DeliveryOutcome{
		CarrierID:    o.CarrierID,
		Zone:         o.Zone,
		DeliveryDays: o.DeliveryDays,
		Success:      o.Success,
		Cost:         o.Cost,
		Weight:       o.Weight,
	}
}
