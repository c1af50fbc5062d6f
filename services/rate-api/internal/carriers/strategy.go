package carriers

import (
	"context"
	"fmt"

	"github.com/bluewud/rate-engine/pkg"
	"github.com/bluewud/rate-engine/pkg/views"
)

// Strategy is the capability set a carrier integration may implement.
// A capability the integration does not support must fail fast with
// pkg.ErrNotImplemented so the aggregator can tell "this carrier has no
// live integration" apart from "the live integration errored".
type Strategy interface {
	Name() string
	GetRates(ctx context.Context, shipment views.Shipment) (views.RateQuote, error)
	CreateShipment(ctx context.Context, orderID string, shipment views.Shipment) (views.ShipmentRef, error)
	TrackShipment(ctx context.Context, waybill string) (views.TrackingStatus, error)
	CancelShipment(ctx context.Context, waybill string) error
}

// RateFn computes a static rate-card quote; injected into strategies that
// derive their simulated live quote from the static card.
type RateFn func(carrierID string, shipment views.Shipment) (views.RateQuote, error)

// unimplemented provides fail-fast defaults for every capability.
// Concrete strategies embed it and override what they actually support.
type unimplemented struct {
	name string
}

func (u unimplemented) GetRates(context.Context, views.Shipment) (views.RateQuote, error) {
	return views.RateQuote{}, fmt.Errorf("%s getRates: %w", u.name, pkg.ErrNotImplemented)
}

func (u unimplemented) CreateShipment(context.Context, string, views.Shipment) (views.ShipmentRef, error) {
	return views.ShipmentRef{}, fmt.Errorf("%s createShipment: %w", u.name, pkg.ErrNotImplemented)
}

func (u unimplemented) TrackShipment(context.Context, string) (views.TrackingStatus, error) {
	return views.TrackingStatus{}, fmt.Errorf("%s trackShipment: %w", u.name, pkg.ErrNotImplemented)
}

func (u unimplemented) CancelShipment(context.Context, string) error {
	return fmt.Errorf("%s cancelShipment: %w", u.name, pkg.ErrNotImplemented)
}

// VolumetricWeight converts parcel dimensions (cm) to billable kg using the
// industry divisor (default 5000).
func VolumetricWeight(l, b, h, divisor float64) float64 {
	if divisor <= 0 {
		divisor = 5000
	}
	return (l * b * h) / divisor
}
