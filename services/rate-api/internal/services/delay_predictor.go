package services

import (
	"math/rand"
	"sync"

	"github.com/bluewud/rate-engine/pkg/models"
	"github.com/bluewud/rate-engine/pkg/views"
)

// DelayPredictor estimates extra transit days on top of the carrier's
// published delivery window, from historic congestion patterns. The random
// source is injected so tests can seed it; the backlog term models real
// unpredictability in carrier capacity, not a deterministic signal.
type DelayPredictor interface {
	Predict(carrierID string, shipment views.Shipment) float64
}

type DelayPredictorImpl struct {
	zones ZoneClassifier
	mu    sync.Mutex
	rng   *rand.Rand
}

func NewDelayPredictor(zones ZoneClassifier, rng *rand.Rand) DelayPredictor {
	return &DelayPredictorImpl{zones: zones, rng: rng}
}

// Predict applies each rule additively; rules are independent.
func (d *DelayPredictorImpl) Predict(carrierID string, shipment views.Shipment) float64 {
	var extraDays float64
	zone := d.zones.Classify(shipment.State, shipment.City)

	// Northeast is historically slower for budget carriers
	if zone == models.ZoneNE {
		if carrier, ok := models.Carrier(carrierID); ok && carrier.Tier == models.TierBudget {
			extraDays += 1.5
		}
	}

	// Heavy rains / festive season slowdown for monsoon-prone states
	if models.MonsoonStates[shipment.State] {
		extraDays += 0.5
	}

	// Delhivery backlog simulator: 20% chance of one extra day
	if carrierID == "delhivery" {
		d.mu.Lock()
		backlog := d.rng.Float64() > 0.8
		d.mu.Unlock()
		if backlog {
			extraDays += 1
		}
	}

	return extraDays
}
