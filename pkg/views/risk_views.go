package views

import "time"

// RiskLevel buckets an RTO risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// CustomerType as known to the order system.
type CustomerType string

const (
	CustomerNew       CustomerType = "NEW"
	CustomerReturning CustomerType = "RETURNING"
)

// Order is the canonical risk-scoring input. Callers send loose shapes
// (amount vs totalAmount, flat vs nested address); OrderInput.Normalize
// maps them here so the scorer sees exactly one schema.
type Order struct {
	PaymentMethod        string
	Amount               float64
	Pincode              string
	State                string
	Address              string
	CustomerType         CustomerType
	IsDuplicateCandidate bool
}

// OrderInput accepts the field-name variants seen across upstream callers.
type OrderInput struct {
	PaymentMethod        string         `json:"paymentMethod,omitempty"`
	PaymentMode          string         `json:"paymentMode,omitempty"`
	Amount               float64        `json:"amount,omitempty"`
	TotalAmount          float64        `json:"totalAmount,omitempty"`
	Pincode              string         `json:"pincode,omitempty"`
	State                string         `json:"state,omitempty"`
	Address              string         `json:"address,omitempty"`
	ShippingAddress      *ShippingInput `json:"shippingAddress,omitempty"`
	CustomerType         CustomerType   `json:"customerType,omitempty"`
	IsDuplicateCandidate bool           `json:"isDuplicateCandidate,omitempty"`
}

type ShippingInput struct {
	Pincode string `json:"pincode,omitempty"`
	State   string `json:"state,omitempty"`
	Address string `json:"address,omitempty"`
}

// Normalize collapses the caller variants into the canonical Order.
// First-listed field wins when both variants are present.
func (in OrderInput) Normalize() Order {
	o := Order{
		PaymentMethod:        in.PaymentMethod,
		Amount:               in.Amount,
		Pincode:              in.Pincode,
		State:                in.State,
		Address:              in.Address,
		CustomerType:         in.CustomerType,
		IsDuplicateCandidate: in.IsDuplicateCandidate,
	}
	if o.PaymentMethod == "" {
		o.PaymentMethod = in.PaymentMode
	}
	if o.Amount == 0 {
		o.Amount = in.TotalAmount
	}
	if in.ShippingAddress != nil {
		if o.Pincode == "" {
			o.Pincode = in.ShippingAddress.Pincode
		}
		if o.State == "" {
			o.State = in.ShippingAddress.State
		}
		if o.Address == "" {
			o.Address = in.ShippingAddress.Address
		}
	}
	return o
}

// CustomerHistory summarizes a customer's past shipments when available.
type CustomerHistory struct {
	TotalOrders int     `json:"totalOrders"`
	RTOCount    int     `json:"rtoCount"`
	RTORate     float64 `json:"rtoRate"` // fraction, 0-1
}

// RiskAssessment is the RTO scorer output. Computed fresh per order;
// never persisted here (callers may cache).
type RiskAssessment struct {
	Score                int       `json:"score"` // clamped 0-100
	Level                RiskLevel `json:"level"`
	Reasons              []string  `json:"reasons"`
	PotentialLoss        int       `json:"potentialLoss"` // INR if the shipment returns
	RequiresVerification bool      `json:"requiresVerification"`
	Timestamp            time.Time `json:"timestamp"`
}

// RiskMetrics aggregates assessments over a batch of orders.
type RiskMetrics struct {
	AvgRiskScore  int     `json:"avgRiskScore"`
	HighRiskCount int     `json:"highRiskCount"`
	RTORate       float64 `json:"rtoRate"` // % of orders at or above verification threshold
}
