package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/bluewud/rate-engine/pkg"
	"github.com/bluewud/rate-engine/pkg/views"
	"github.com/bluewud/rate-engine/services/rate-api/internal/carriers"
	"github.com/bluewud/rate-engine/services/rate-api/internal/observability"
	"go.uber.org/zap"
)

// RateAggregator fans out to every carrier and merges static rate-card
// quotes with whatever live integrations return. One carrier failing its
// live call never fails the batch: that carrier keeps its static quote.
type RateAggregator interface {
	GetAllRates(ctx context.Context, shipment views.Shipment) []views.RateQuote
}

type RateAggregatorImpl struct {
	logger      *zap.Logger
	calculator  RateCalculator
	delay       DelayPredictor
	registry    *carriers.Registry
	liveLimiter *pkg.DistributedLimiter
	liveTimeout time.Duration
	carrierIDs  []string
}

func NewRateAggregator(
	logger *zap.Logger,
	calculator RateCalculator,
	delay DelayPredictor,
	registry *carriers.Registry,
	liveLimiter *pkg.DistributedLimiter,
	liveTimeout time.Duration,
	carrierIDs []string,
) RateAggregator {
	return &RateAggregatorImpl{
		logger:      logger,
		calculator:  calculator,
		delay:       delay,
		registry:    registry,
		liveLimiter: liveLimiter,
		liveTimeout: liveTimeout,
		carrierIDs:  carrierIDs,
	}
}

// GetAllRates returns quotes for every serviceable carrier, cheapest first.
// Static quotes are always computed as the baseline; live quotes override
// them per carrier, preserving static zone metadata the live response omits.
func (a *RateAggregatorImpl) GetAllRates(ctx context.Context, shipment views.Shipment) []views.RateQuote {
	// Kick off live calls first so they overlap the static computation.
	liveCh := a.fetchLiveRates(ctx, shipment)

	static := make(map[string]views.RateQuote, len(a.carrierIDs))
	for _, carrierID := range a.carrierIDs {
		quote, err := a.calculator.Calculate(carrierID, shipment)
		if err != nil {
			a.logger.Debug("carrier skipped",
				zap.String("carrier", carrierID),
				zap.Error(err),
			)
			continue
		}
		quote.AIDelay = a.delay.Predict(carrierID, shipment)
		observability.QuotesComputed.WithLabelValues(carrierID, string(views.QuoteSourceStatic)).Inc()
		static[carrierID] = quote
	}

	merged := make([]views.RateQuote, 0, len(static))
	live := <-liveCh
	for _, carrierID := range a.carrierIDs {
		staticQuote, ok := static[carrierID]
		if !ok {
			continue
		}
		if liveQuote, ok := live[carrierID]; ok {
			merged = append(merged, mergeQuotes(staticQuote, liveQuote))
			continue
		}
		merged = append(merged, staticQuote)
	}

	sort.Slice(merged, func(i, j int) bool { return merged[i].Total < merged[j].Total })
	return merged
}

// fetchLiveRates queries every registered strategy concurrently with a
// per-carrier deadline. Errors are logged and swallowed here; the static
// quote remains the fallback for that carrier.
func (a *RateAggregatorImpl) fetchLiveRates(ctx context.Context, shipment views.Shipment) <-chan map[string]views.RateQuote {
	out := make(chan map[string]views.RateQuote, 1)

	strategies := a.registry.All()
	results := make(chan views.RateQuote, len(strategies))

	var wg sync.WaitGroup
	for _, strategy := range strategies {
		if a.liveLimiter != nil && !a.liveLimiter.Allow(ctx) {
			a.logger.Warn("live rate call throttled", zap.String("carrier", strategy.Name()))
			observability.LiveFetchFailures.WithLabelValues(strategy.Name(), "throttled").Inc()
			continue
		}

		wg.Add(1)
		go func(s carriers.Strategy) {
			defer wg.Done()

			callCtx, cancel := context.WithTimeout(ctx, a.liveTimeout)
			defer cancel()

			quote, err := s.GetRates(callCtx, shipment)
			if err != nil {
				if errors.Is(err, pkg.ErrNotImplemented) {
					// No live integration for this carrier; static only.
					a.logger.Debug("no live integration", zap.String("carrier", s.Name()))
					return
				}
				a.logger.Warn("live rate fetch failed",
					zap.String("carrier", s.Name()),
					zap.Error(err),
				)
				observability.LiveFetchFailures.WithLabelValues(s.Name(), "error").Inc()
				return
			}
			observability.QuotesComputed.WithLabelValues(s.Name(), string(views.QuoteSourceLive)).Inc()
			results <- quote
		}(strategy)
	}

	go func() {
		wg.Wait()
		close(results)

		live := make(map[string]views.RateQuote)
		for quote := range results {
			live[quote.CarrierID] = quote
		}
		out <- live
	}()

	return out
}

// mergeQuotes lays live fields over the static baseline. Zone metadata and
// the delay prediction survive when the live response doesn't carry them.
// IsLive comes from the strategy's quote: a simulated response stays
// IsLive=false even though the price came over the live path.
func mergeQuotes(static, live views.RateQuote) views.RateQuote {
	merged := static
	merged.Source = views.QuoteSourceLive
	merged.IsLive = live.IsLive

	if live.CarrierName != "" {
		merged.CarrierName = live.CarrierName
	}
	if live.Total != 0 {
		merged.Total = live.Total
	}
	if live.Breakdown != (views.Breakdown{}) {
		merged.Breakdown = live.Breakdown
	}
	if live.EstimatedDelivery != [2]int{} {
		merged.EstimatedDelivery = live.EstimatedDelivery
	}
	if live.Zone != "" {
		merged.Zone = live.Zone
	}
	if live.BilledWeight != 0 {
		merged.BilledWeight = live.BilledWeight
	}
	return merged
}
