package carriers

import (
	"strings"
	"sync"

	"github.com/bluewud/rate-engine/pkg"
	"github.com/bluewud/rate-engine/services/rate-api/configs"
	"go.uber.org/zap"
)

// supported lists the carrier ids with a strategy implementation.
var supported = []string{"delhivery", "bluedart"}

// Registry constructs and caches carrier strategies. It is built once at
// application start and passed to the aggregator; there is no package-level
// singleton. Lazy construction is guarded by a mutex so the registry is
// safe for concurrent quote requests.
type Registry struct {
	mu         sync.Mutex
	cfg        *configs.Config
	staticRate RateFn
	logger     *zap.Logger
	strategies map[string]Strategy
}

func NewRegistry(cfg *configs.Config, staticRate RateFn, logger *zap.Logger) *Registry {
	return &Registry{
		cfg:        cfg,
		staticRate: staticRate,
		logger:     logger,
		strategies: make(map[string]Strategy),
	}
}

// Get returns the strategy for a carrier id, constructing it on first
// request. Unknown ids return a structured "carrier not supported" error.
func (r *Registry) Get(carrierID string) (Strategy, error) {
	id := strings.ToLower(strings.TrimSpace(carrierID))

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.strategies[id]; ok {
		return s, nil
	}

	var strategy Strategy
	switch id {
	case "delhivery":
		strategy = NewDelhivery(DelhiveryConfig{
			Token: r.cfg.DelhiveryToken,
			Mode:  r.cfg.DelhiveryMode,
		}, r.logger)
	case "bluedart":
		strategy = NewBlueDart(r.cfg.BluedartLicense, r.staticRate, r.logger)
	default:
		return nil, pkg.NewAppError(pkg.ErrCarrierNotSupportedCode, "carrier '"+id+"' not supported", pkg.ErrCarrierNotSupported)
	}

	r.strategies[id] = strategy
	return strategy, nil
}

// All returns every supported strategy, instantiating as needed.
func (r *Registry) All() []Strategy {
	out := make([]Strategy, 0, len(supported))
	for _, id := range supported {
		s, err := r.Get(id)
		if err != nil {
			continue
		}
		out = append(out, s)
	}
	return out
}
