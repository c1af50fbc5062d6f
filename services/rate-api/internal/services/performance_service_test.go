package services

import (
	"context"
	"errors"
	"testing"

	"github.com/bluewud/rate-engine/pkg/models"
	"github.com/bluewud/rate-engine/pkg/views"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type capturePublisher struct {
	published []views.DeliveryOutcome
	err       error
}

func (c *capturePublisher) PublishOutcome(outcome views.DeliveryOutcome) error {
	c.published = append(c.published, outcome)
	return c.err
}

func (c *capturePublisher) Close() {}

func TestRecord_WithoutRedisStillPublishes(t *testing.T) {
	publisher := &capturePublisher{}
	p := NewPerformanceService(zap.NewNop(), nil, publisher)

	outcome := views.DeliveryOutcome{
		CarrierID:    "delhivery",
		Zone:         models.ZoneMetro,
		DeliveryDays: 3,
		Success:      true,
		Cost:         98,
	}
	err := p.Record(context.Background(), outcome)
	assert.NoError(t, err)
	assert.Len(t, publisher.published, 1)
	assert.Equal(t, outcome, publisher.published[0])
}

func TestRecord_PublishFailureIsNotFatal(t *testing.T) {
	publisher := &capturePublisher{err: errors.New("broker down")}
	p := NewPerformanceService(zap.NewNop(), nil, publisher)

	err := p.Record(context.Background(), views.DeliveryOutcome{
		CarrierID: "bluedart",
		Zone:      models.ZoneROI,
		Success:   false,
	})
	assert.NoError(t, err)
}

func TestRecord_NilPublisherIsDisabled(t *testing.T) {
	p := NewPerformanceService(zap.NewNop(), nil, nil)

	err := p.Record(context.Background(), views.DeliveryOutcome{
		CarrierID: "xpressbees",
		Zone:      models.ZoneNE,
		Success:   true,
	})
	assert.NoError(t, err)
}

func TestZoneStats_WithoutRedisReturnsZero(t *testing.T) {
	p := NewPerformanceService(zap.NewNop(), nil, nil)

	stats, err := p.ZoneStats(context.Background(), "delhivery", models.ZoneMetro)
	assert.NoError(t, err)
	assert.Equal(t, views.CarrierStats{}, stats)
}

func TestCarrierSummary_WithoutRedisIsEmpty(t *testing.T) {
	p := NewPerformanceService(zap.NewNop(), nil, nil)

	summary, err := p.CarrierSummary(context.Background(), "delhivery")
	assert.NoError(t, err)
	assert.Empty(t, summary)
}
