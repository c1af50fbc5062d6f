package services

import (
	"regexp"
	"strings"

	"github.com/bluewud/rate-engine/pkg/models"
	"github.com/bluewud/rate-engine/pkg/views"
)

// ZoneClassifier maps a destination to a shipping zone relative to the
// fixed origin warehouse. Classification is total: every (state, city)
// pair resolves to exactly one zone, unknown states fall back to ROI.
type ZoneClassifier interface {
	Classify(state, city string) models.Zone
	CheckPincode(pincode string) views.ServiceabilityResult
}

type ZoneClassifierImpl struct{}

func NewZoneClassifier() ZoneClassifier {
	return &ZoneClassifierImpl{}
}

func (z *ZoneClassifierImpl) Classify(state, city string) models.Zone {
	destRegion, ok := models.StateRegions[state]
	if !ok {
		destRegion = models.RegionROI
	}

	// Same region as origin
	if destRegion == models.OriginRegion {
		if state == models.OriginState {
			return models.ZoneLocal
		}
		return models.ZoneIntraZone
	}

	// Metro city
	if models.MetroCities[city] {
		return models.ZoneMetro
	}

	// Adjacent region
	for _, adj := range models.AdjacentRegions[models.OriginRegion] {
		if destRegion == adj {
			return models.ZoneAdjacent
		}
	}

	// Northeast special zone
	if destRegion == models.RegionNE {
		return models.ZoneNE
	}

	return models.ZoneROI
}

var pincodePattern = regexp.MustCompile(`^\d{6}$`)

// CheckPincode validates a destination pincode. Northeast pincodes
// (78/79 prefixes) are serviceable with restrictions.
func (z *ZoneClassifierImpl) CheckPincode(pincode string) views.ServiceabilityResult {
	valid := pincodePattern.MatchString(pincode)
	isNE := strings.HasPrefix(pincode, "78") || strings.HasPrefix(pincode, "79")

	result := views.ServiceabilityResult{
		Serviceable:  valid,
		Zone:         models.ZoneROI,
		Restrictions: []string{},
	}
	if isNE {
		result.Zone = models.ZoneNE
		result.Restrictions = []string{"Limited carriers", "Longer delivery time"}
	}
	return result
}
