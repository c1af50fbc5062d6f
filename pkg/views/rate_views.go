package views

import (
	"time"

	"github.com/bluewud/rate-engine/pkg/models"
)

// QuoteSource marks where a quote came from.
type QuoteSource string

const (
	QuoteSourceStatic QuoteSource = "STATIC"
	QuoteSourceLive   QuoteSource = "LIVE"
)

// Shipment is the per-request rate input. Origin is the fixed warehouse;
// only the destination varies.
type Shipment struct {
	Weight        float64 `json:"weight"` // kg
	State         string  `json:"state"`
	City          string  `json:"city,omitempty"`
	Pincode       string  `json:"pincode,omitempty"`
	OriginPincode string  `json:"originPincode,omitempty"`
	IsCOD         bool    `json:"isCOD,omitempty"`
	CODAmount     float64 `json:"codAmount,omitempty"`
}

// Breakdown itemizes a quote. Each field is rounded to whole rupees for
// display; the total is computed from the unrounded sum, so independently
// summed fields may differ from Total by at most one rupee.
type Breakdown struct {
	Freight       int `json:"freight"`
	FuelSurcharge int `json:"fuelSurcharge"`
	CODCharge     int `json:"codCharge"`
	Subtotal      int `json:"subtotal"`
	Tax           int `json:"tax"`
}

// Scores are normalized 0-100 across one candidate set; lower is better
// on every axis (reliability is stored as a penalty).
type Scores struct {
	Cost        float64 `json:"cost"`
	Speed       float64 `json:"speed"`
	Reliability float64 `json:"reliability"`
}

// RateQuote is one carrier's priced offer for a shipment.
type RateQuote struct {
	CarrierID         string      `json:"carrierId"`
	CarrierName       string      `json:"carrierName"`
	Zone              models.Zone `json:"zone"`
	BilledWeight      float64     `json:"billedWeight"`
	Breakdown         Breakdown   `json:"breakdown"`
	Total             int         `json:"total"`
	EstimatedDelivery [2]int      `json:"estimatedDelivery"`
	IsCOD             bool        `json:"isCOD"`
	Source            QuoteSource `json:"type"`
	IsLive            bool        `json:"isLive,omitempty"`
	AIDelay           float64     `json:"aiDelay,omitempty"` // predicted extra transit days
	Scores            *Scores     `json:"scores,omitempty"`
	Recommendation    string      `json:"recommendation,omitempty"`
	Reason            string      `json:"reason,omitempty"`
}

// ShipmentRef identifies a booked shipment with a carrier.
type ShipmentRef struct {
	CarrierID string    `json:"carrierId"`
	Waybill   string    `json:"waybill"`
	LabelURL  string    `json:"labelUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// TrackingStatus is a carrier's latest word on a shipment.
type TrackingStatus struct {
	Waybill   string    `json:"waybill"`
	Status    string    `json:"status"`
	Location  string    `json:"location,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DeliveryOutcome records how a shipment actually went, fed back into the
// per-zone carrier performance stats.
type DeliveryOutcome struct {
	CarrierID    string      `json:"carrierId"`
	Zone         models.Zone `json:"zone"`
	DeliveryDays float64     `json:"deliveryDays"`
	Success      bool        `json:"success"`
	Cost         float64     `json:"cost"`
	Weight       float64     `json:"weight"`
}

// CarrierStats are rolling per-zone performance numbers for one carrier.
type CarrierStats struct {
	TotalShipments  int     `json:"totalShipments"`
	Successful      int     `json:"successful"`
	Failed          int     `json:"failed"`
	AvgDeliveryDays float64 `json:"avgDeliveryDays"`
	AvgCost         float64 `json:"avgCost"`
	SuccessRate     float64 `json:"successRate"` // %
}

// ServiceabilityResult answers a pincode serviceability check.
type ServiceabilityResult struct {
	Serviceable  bool        `json:"serviceable"`
	Zone         models.Zone `json:"zone"`
	Restrictions []string    `json:"restrictions"`
}
