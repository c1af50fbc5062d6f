package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bluewud/rate-engine/pkg/models"
	"github.com/bluewud/rate-engine/pkg/views"
	"github.com/bluewud/rate-engine/services/rate-api/internal/observability"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// statsTTL keeps stale zones from accumulating forever; any zone a
// carrier hasn't shipped to in 90 days falls out of the cache.
const statsTTL = 90 * 24 * time.Hour

// PerformanceService maintains rolling per-zone delivery stats for each
// carrier, fed by observed shipment outcomes. Stats live in Redis so
// every api replica sees the same numbers.
type PerformanceService interface {
	Record(ctx context.Context, outcome views.DeliveryOutcome) error
	ZoneStats(ctx context.Context, carrierID string, zone models.Zone) (views.CarrierStats, error)
	CarrierSummary(ctx context.Context, carrierID string) (map[models.Zone]views.CarrierStats, error)
}

type PerformanceServiceImpl struct {
	logger      *zap.Logger
	redisClient *redis.Client
	publisher   OutcomePublisher
}

func NewPerformanceService(logger *zap.Logger, redisClient *redis.Client, publisher OutcomePublisher) PerformanceService {
	return &PerformanceServiceImpl{
		logger:      logger,
		redisClient: redisClient,
		publisher:   publisher,
	}
}

func statsKey(carrierID string, zone models.Zone) string {
	return fmt.Sprintf("carrier:history:%s:%s", carrierID, zone)
}

// Record folds one delivery outcome into the carrier's rolling zone stats
// and emits the raw event for downstream consumers.
func (p *PerformanceServiceImpl) Record(ctx context.Context, outcome views.DeliveryOutcome) error {
	result := "failed"
	if outcome.Success {
		result = "delivered"
	}
	observability.OutcomesRecorded.WithLabelValues(outcome.CarrierID, result).Inc()

	if p.publisher != nil {
		if err := p.publisher.PublishOutcome(outcome); err != nil {
			// Stats update still proceeds; the event stream is best-effort.
			p.logger.Warn("failed to publish delivery outcome", zap.Error(err))
		}
	}

	if p.redisClient == nil {
		p.logger.Debug("redis unavailable, outcome not persisted",
			zap.String("carrier", outcome.CarrierID))
		return nil
	}

	key := statsKey(outcome.CarrierID, outcome.Zone)
	stats, err := p.loadStats(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to load carrier stats: %w", err)
	}

	n := float64(stats.TotalShipments)
	stats.TotalShipments++
	if outcome.Success {
		stats.Successful++
	} else {
		stats.Failed++
	}
	stats.AvgDeliveryDays = (stats.AvgDeliveryDays*n + outcome.DeliveryDays) / float64(stats.TotalShipments)
	stats.AvgCost = (stats.AvgCost*n + outcome.Cost) / float64(stats.TotalShipments)
	stats.SuccessRate = float64(stats.Successful) / float64(stats.TotalShipments) * 100

	payload, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	if err := p.redisClient.Set(ctx, key, payload, statsTTL).Err(); err != nil {
		return fmt.Errorf("failed to persist carrier stats: %w", err)
	}

	p.logger.Info("delivery outcome recorded",
		zap.String("carrier", outcome.CarrierID),
		zap.String("zone", string(outcome.Zone)),
		zap.Bool("success", outcome.Success),
		zap.Float64("successRate", stats.SuccessRate),
	)
	return nil
}

// ZoneStats returns the rolling stats for one carrier/zone pair. A pair
// with no recorded outcomes returns zero stats, not an error.
func (p *PerformanceServiceImpl) ZoneStats(ctx context.Context, carrierID string, zone models.Zone) (views.CarrierStats, error) {
	if p.redisClient == nil {
		return views.CarrierStats{}, nil
	}
	return p.loadStats(ctx, statsKey(carrierID, zone))
}

// CarrierSummary collects stats across all zones for one carrier.
func (p *PerformanceServiceImpl) CarrierSummary(ctx context.Context, carrierID string) (map[models.Zone]views.CarrierStats, error) {
	summary := make(map[models.Zone]views.CarrierStats)
	if p.redisClient == nil {
		return summary, nil
	}

	for _, zone := range models.Zones() {
		stats, err := p.loadStats(ctx, statsKey(carrierID, zone))
		if err != nil {
			return nil, err
		}
		if stats.TotalShipments > 0 {
			summary[zone] = stats
		}
	}
	return summary, nil
}

func (p *PerformanceServiceImpl) loadStats(ctx context.Context, key string) (views.CarrierStats, error) {
	var stats views.CarrierStats
	raw, err := p.redisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return stats, nil
	}
	if err != nil {
		return stats, err
	}
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return views.CarrierStats{}, err
	}
	return stats, nil
}
