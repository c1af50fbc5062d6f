package services

import (
	"math/rand"
	"testing"

	"github.com/bluewud/rate-engine/pkg/views"
	"github.com/stretchr/testify/assert"
)

func newPredictor(seed int64) DelayPredictor {
	return NewDelayPredictor(NewZoneClassifier(), rand.New(rand.NewSource(seed)))
}

func TestPredict_NortheastBudgetPenalty(t *testing.T) {
	p := newPredictor(1)
	shipment := views.Shipment{State: "Assam", City: "Guwahati"}

	// Budget tier pays the NE penalty, premium doesn't.
	assert.Equal(t, 1.5, p.Predict("xpressbees", shipment))
	assert.Equal(t, 0.0, p.Predict("bluedart", shipment))
}

func TestPredict_MonsoonState(t *testing.T) {
	p := newPredictor(1)

	assert.Equal(t, 0.5, p.Predict("ecomexpress", views.Shipment{State: "Kerala"}))
	assert.Equal(t, 0.0, p.Predict("ecomexpress", views.Shipment{State: "Delhi", City: "Delhi"}))
}

func TestPredict_DelhiveryBacklogIsBounded(t *testing.T) {
	p := newPredictor(7)

	for i := 0; i < 50; i++ {
		delay := p.Predict("delhivery", views.Shipment{State: "Kerala"})
		// monsoon 0.5 plus at most one backlog day
		assert.Contains(t, []float64{0.5, 1.5}, delay)
	}
}

func TestPredict_SeededRandIsDeterministic(t *testing.T) {
	a := newPredictor(42)
	b := newPredictor(42)
	shipment := views.Shipment{State: "Kerala"}

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Predict("delhivery", shipment), b.Predict("delhivery", shipment))
	}
}
