package models

// Zone is the shipping-distance tier derived from origin/destination geography.
type Zone string

const (
	ZoneLocal     Zone = "LOCAL"
	ZoneIntraZone Zone = "INTRA_ZONE"
	ZoneMetro     Zone = "METRO"
	ZoneAdjacent  Zone = "ADJACENT"
	ZoneROI       Zone = "ROI" // rest of India
	ZoneNE        Zone = "NE"  // Northeast, premium rates
)

// Zones lists every tier in rate-card order.
func Zones() []Zone {
	return []Zone{ZoneLocal, ZoneIntraZone, ZoneMetro, ZoneAdjacent, ZoneROI, ZoneNE}
}

// Region is the macro geographic region a state belongs to.
type Region string

const (
	RegionNorth Region = "NORTH"
	RegionSouth Region = "SOUTH"
	RegionEast  Region = "EAST"
	RegionWest  Region = "WEST"
	RegionNE    Region = "NE"
	RegionROI   Region = "ROI" // unmapped states default here
)

// Origin warehouse (Bluewud facility near Bangalore).
const (
	OriginState          = "Karnataka"
	OriginRegion  Region = RegionSouth
	OriginPincode        = "560001"
)

// StateRegions maps every serviceable Indian state/UT to its macro region.
var StateRegions = map[string]Region{
	// North
	"Delhi":             RegionNorth,
	"Haryana":           RegionNorth,
	"Punjab":            RegionNorth,
	"Uttar Pradesh":     RegionNorth,
	"Uttarakhand":       RegionNorth,
	"Himachal Pradesh":  RegionNorth,
	"Rajasthan":         RegionNorth,
	"Jammu and Kashmir": RegionNorth,
	"Ladakh":            RegionNorth,
	"Chandigarh":        RegionNorth,

	// South
	"Karnataka":      RegionSouth,
	"Tamil Nadu":     RegionSouth,
	"Kerala":         RegionSouth,
	"Andhra Pradesh": RegionSouth,
	"Telangana":      RegionSouth,
	"Puducherry":     RegionSouth,

	// East
	"West Bengal": RegionEast,
	"Odisha":      RegionEast,
	"Bihar":       RegionEast,
	"Jharkhand":   RegionEast,

	// West
	"Maharashtra":    RegionWest,
	"Gujarat":        RegionWest,
	"Madhya Pradesh": RegionWest,
	"Chhattisgarh":   RegionWest,
	"Goa":            RegionWest,

	// Northeast
	"Assam":             RegionNE,
	"Meghalaya":         RegionNE,
	"Tripura":           RegionNE,
	"Mizoram":           RegionNE,
	"Manipur":           RegionNE,
	"Nagaland":          RegionNE,
	"Arunachal Pradesh": RegionNE,
	"Sikkim":            RegionNE,
}

// MetroCities get dedicated METRO rates outside the origin region.
var MetroCities = map[string]bool{
	"Mumbai":    true,
	"Delhi":     true,
	"Bangalore": true,
	"Chennai":   true,
	"Kolkata":   true,
	"Hyderabad": true,
	"Pune":      true,
	"Ahmedabad": true,
}

// AdjacentRegions lists which regions count as ADJACENT relative to a region.
var AdjacentRegions = map[Region][]Region{
	RegionSouth: {RegionWest},
	RegionWest:  {RegionSouth, RegionNorth},
	RegionNorth: {RegionWest, RegionEast},
	RegionEast:  {RegionNorth, RegionNE},
}

// MonsoonStates see seasonal transit slowdowns (heavy rains, festive load).
var MonsoonStates = map[string]bool{
	"Maharashtra": true,
	"Kerala":      true,
	"Karnataka":   true,
}
