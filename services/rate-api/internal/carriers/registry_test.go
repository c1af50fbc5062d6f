package carriers

import (
	"context"
	"testing"

	"github.com/bluewud/rate-engine/pkg"
	"github.com/bluewud/rate-engine/pkg/views"
	"github.com/bluewud/rate-engine/services/rate-api/configs"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func stubStaticRate(carrierID string, _ views.Shipment) (views.RateQuote, error) {
	return views.RateQuote{CarrierID: carrierID, Total: 100}, nil
}

func newTestRegistry(cfg *configs.Config) *Registry {
	if cfg == nil {
		cfg = &configs.Config{DelhiveryMode: "test"}
	}
	return NewRegistry(cfg, stubStaticRate, zap.NewNop())
}

func TestRegistry_GetNormalizesID(t *testing.T) {
	r := newTestRegistry(nil)

	s, err := r.Get("  Delhivery ")
	assert.NoError(t, err)
	assert.Equal(t, "delhivery", s.Name())
}

func TestRegistry_GetCachesStrategies(t *testing.T) {
	r := newTestRegistry(nil)

	first, err := r.Get("bluedart")
	assert.NoError(t, err)
	second, err := r.Get("bluedart")
	assert.NoError(t, err)
	assert.Same(t, first, second)
}

func TestRegistry_UnknownCarrier(t *testing.T) {
	r := newTestRegistry(nil)

	_, err := r.Get("dtdc")
	assert.Error(t, err)
	assert.ErrorIs(t, err, pkg.ErrCarrierNotSupported)

	var appErr pkg.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkg.ErrCarrierNotSupportedCode, appErr.Code)
}

func TestRegistry_AllReturnsSupportedStrategies(t *testing.T) {
	r := newTestRegistry(nil)

	all := r.All()
	assert.Len(t, all, 2)

	names := []string{all[0].Name(), all[1].Name()}
	assert.Contains(t, names, "delhivery")
	assert.Contains(t, names, "bluedart")
}

func TestDelhivery_SimulationWithoutToken(t *testing.T) {
	d := NewDelhivery(DelhiveryConfig{Mode: "test"}, zap.NewNop())

	quote, err := d.GetRates(context.Background(), views.Shipment{Weight: 1, State: "Delhi"})
	assert.NoError(t, err)
	assert.Equal(t, "delhivery", quote.CarrierID)
	assert.Equal(t, "Delhivery", quote.CarrierName)
	assert.Equal(t, 52, quote.Total) // 40 base + 1kg * 12
	assert.False(t, quote.IsLive)
}

func TestDelhivery_LiveModeMarksQuote(t *testing.T) {
	d := NewDelhivery(DelhiveryConfig{Token: "tok-123", Mode: "test"}, zap.NewNop())

	quote, err := d.GetRates(context.Background(), views.Shipment{Weight: 0.5, Pincode: "110001"})
	assert.NoError(t, err)
	assert.True(t, quote.IsLive)
	assert.Equal(t, "Delhivery (Live)", quote.CarrierName)
	assert.Equal(t, 46, quote.Total) // 40 + 0.5 * 12
}

func TestDelhivery_LiveCallHonorsContext(t *testing.T) {
	d := NewDelhivery(DelhiveryConfig{Token: "tok-123", Mode: "test"}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.GetRates(ctx, views.Shipment{Weight: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDelhivery_BookingNotImplemented(t *testing.T) {
	d := NewDelhivery(DelhiveryConfig{}, zap.NewNop())

	_, err := d.CreateShipment(context.Background(), "ord-1", views.Shipment{})
	assert.ErrorIs(t, err, pkg.ErrNotImplemented)
}

func TestBlueDart_NoLicenseHasNoLiveRates(t *testing.T) {
	b := NewBlueDart("", stubStaticRate, zap.NewNop())

	_, err := b.GetRates(context.Background(), views.Shipment{Weight: 1})
	assert.ErrorIs(t, err, pkg.ErrNotImplemented)
}

func TestBlueDart_LicensedRateDiscountsStaticCard(t *testing.T) {
	b := NewBlueDart("lic-456", stubStaticRate, zap.NewNop())

	quote, err := b.GetRates(context.Background(), views.Shipment{Weight: 1})
	assert.NoError(t, err)
	assert.Equal(t, 98, quote.Total) // 2% off the static 100
	assert.True(t, quote.IsLive)
	assert.Equal(t, "BlueDart (Live / API)", quote.CarrierName)
}

func TestVolumetricWeight(t *testing.T) {
	// 30x30x30cm at the standard 5000 divisor bills as 5.4kg
	assert.InDelta(t, 5.4, VolumetricWeight(30, 30, 30, 5000), 0.001)
	// zero divisor falls back to the default
	assert.InDelta(t, 5.4, VolumetricWeight(30, 30, 30, 0), 0.001)
}
