package models

import "sort"

// Tier buckets carriers by service level; the delay predictor treats
// budget-tier carriers as slower into the Northeast.
type Tier string

const (
	TierBudget   Tier = "budget"
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
)

// ZoneRate is one row of a carrier's rate card.
type ZoneRate struct {
	Base         float64 // first 0.5kg slab, INR
	Additional   float64 // per additional 0.5kg slab, INR
	MinWeight    float64 // minimum billable weight, kg
	DeliveryDays [2]int  // [min, max] estimated transit days
}

// CarrierProfile is the static configuration for one carrier.
// A zone missing from Zones means the carrier does not serve that zone.
type CarrierProfile struct {
	ID               string
	Name             string
	Serviceable      bool
	Tier             Tier
	Zones            map[Zone]ZoneRate
	CODFlatFee       float64 // flat COD collection fee, INR
	CODPercent       float64 // % of COD amount
	FuelSurcharge    float64 // % of freight
	TaxPercent       float64 // GST % on subtotal
	ReliabilityScore float64 // delivery success %, 0-100
}

// CarrierRates is the Pan-India rate card, negotiated annually.
var CarrierRates = map[string]CarrierProfile{
	"delhivery": {
		ID:          "delhivery",
		Name:        "Delhivery",
		Serviceable: true,
		Tier:        TierStandard,
		Zones: map[Zone]ZoneRate{
			ZoneLocal:     {Base: 35, Additional: 15, MinWeight: 0.5, DeliveryDays: [2]int{1, 2}},
			ZoneIntraZone: {Base: 45, Additional: 20, MinWeight: 0.5, DeliveryDays: [2]int{2, 3}},
			ZoneAdjacent:  {Base: 55, Additional: 25, MinWeight: 0.5, DeliveryDays: [2]int{3, 4}},
			ZoneMetro:     {Base: 50, Additional: 22, MinWeight: 0.5, DeliveryDays: [2]int{2, 4}},
			ZoneROI:       {Base: 65, Additional: 30, MinWeight: 0.5, DeliveryDays: [2]int{4, 6}},
			ZoneNE:        {Base: 95, Additional: 45, MinWeight: 0.5, DeliveryDays: [2]int{6, 8}},
		},
		CODFlatFee:       25,
		CODPercent:       2,
		FuelSurcharge:    15,
		TaxPercent:       18,
		ReliabilityScore: 85,
	},
	"bluedart": {
		ID:          "bluedart",
		Name:        "BlueDart",
		Serviceable: true,
		Tier:        TierPremium,
		Zones: map[Zone]ZoneRate{
			ZoneLocal:     {Base: 45, Additional: 20, MinWeight: 0.5, DeliveryDays: [2]int{1, 2}},
			ZoneIntraZone: {Base: 60, Additional: 28, MinWeight: 0.5, DeliveryDays: [2]int{1, 2}},
			ZoneAdjacent:  {Base: 75, Additional: 35, MinWeight: 0.5, DeliveryDays: [2]int{2, 3}},
			ZoneMetro:     {Base: 65, Additional: 30, MinWeight: 0.5, DeliveryDays: [2]int{1, 2}},
			ZoneROI:       {Base: 85, Additional: 40, MinWeight: 0.5, DeliveryDays: [2]int{2, 4}},
			ZoneNE:        {Base: 120, Additional: 55, MinWeight: 0.5, DeliveryDays: [2]int{4, 6}},
		},
		CODFlatFee:       35,
		CODPercent:       2.5,
		FuelSurcharge:    20,
		TaxPercent:       18,
		ReliabilityScore: 98,
	},
	"xpressbees": {
		ID:          "xpressbees",
		Name:        "XpressBees",
		Serviceable: true,
		Tier:        TierBudget,
		Zones: map[Zone]ZoneRate{
			ZoneLocal:     {Base: 30, Additional: 12, MinWeight: 0.5, DeliveryDays: [2]int{2, 3}},
			ZoneIntraZone: {Base: 40, Additional: 18, MinWeight: 0.5, DeliveryDays: [2]int{3, 4}},
			ZoneAdjacent:  {Base: 50, Additional: 22, MinWeight: 0.5, DeliveryDays: [2]int{4, 5}},
			ZoneMetro:     {Base: 45, Additional: 20, MinWeight: 0.5, DeliveryDays: [2]int{3, 4}},
			ZoneROI:       {Base: 60, Additional: 28, MinWeight: 0.5, DeliveryDays: [2]int{5, 7}},
			ZoneNE:        {Base: 90, Additional: 42, MinWeight: 0.5, DeliveryDays: [2]int{7, 10}},
		},
		CODFlatFee:       20,
		CODPercent:       1.5,
		FuelSurcharge:    10,
		TaxPercent:       18,
		ReliabilityScore: 82,
	},
	"ecomexpress": {
		ID:          "ecomexpress",
		Name:        "Ecom Express",
		Serviceable: true,
		Tier:        TierBudget,
		Zones: map[Zone]ZoneRate{
			ZoneLocal:     {Base: 32, Additional: 14, MinWeight: 0.5, DeliveryDays: [2]int{2, 3}},
			ZoneIntraZone: {Base: 42, Additional: 19, MinWeight: 0.5, DeliveryDays: [2]int{3, 4}},
			ZoneAdjacent:  {Base: 52, Additional: 24, MinWeight: 0.5, DeliveryDays: [2]int{4, 5}},
			ZoneMetro:     {Base: 48, Additional: 21, MinWeight: 0.5, DeliveryDays: [2]int{2, 4}},
			ZoneROI:       {Base: 62, Additional: 29, MinWeight: 0.5, DeliveryDays: [2]int{5, 7}},
			ZoneNE:        {Base: 88, Additional: 40, MinWeight: 0.5, DeliveryDays: [2]int{6, 9}},
		},
		CODFlatFee:       22,
		CODPercent:       1.8,
		FuelSurcharge:    12,
		TaxPercent:       18,
		ReliabilityScore: 88,
	},
}

// PreferredCarrierMatrix forces a default carrier for certain states or
// zones, applied by the recommendation engine only when the cost penalty
// versus the algorithmic winner stays within 10%.
var PreferredCarrierMatrix = map[string]string{
	string(ZoneMetro):     "bluedart",
	string(ZoneLocal):     "delhivery",
	string(ZoneNE):        "ecomexpress",
	string(ZoneIntraZone): "delhivery",
	"Maharashtra":         "xpressbees", // special preferred carrier for MH
}

// Carrier looks up a carrier profile by id.
func Carrier(id string) (CarrierProfile, bool) {
	c, ok := CarrierRates[id]
	return c, ok
}

// CarrierIDs returns all configured carrier ids in stable order.
func CarrierIDs() []string {
	ids := make([]string, 0, len(CarrierRates))
	for id := range CarrierRates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
