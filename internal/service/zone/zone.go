// Package zone maps postal codes onto delivery zones.
package zone

import (
	"slices"
	"strings"

	"daycare-dispatch/internal/domain"
)

// Resolve returns the name of the first active zone containing postalCode,
// or domain.GeneralZone when none does.
func Resolve(postalCode string, zones []domain.Zone) string {
	return Lookup(postalCode, zones).Name
}

// Lookup is Resolve returning the whole zone. The fallback zone carries the
// default base delivery time.
func Lookup(postalCode string, zones []domain.Zone) domain.Zone {
	code := strings.TrimSpace(postalCode)
	if code != "" {
		for _, z := range zones {
			if z.Active && slices.Contains(z.PostalCodes, code) {
				return z
			}
		}
	}
	return domain.Zone{
		Name:                domain.GeneralZone,
		BaseDeliveryMinutes: domain.DefaultZoneMinutes,
		Active:              true,
	}
}

// Minutes returns the base delivery time for a zone name.
func Minutes(name string, zones []domain.Zone) int {
	for _, z := range zones {
		if z.Name == name && z.BaseDeliveryMinutes > 0 {
			return z.BaseDeliveryMinutes
		}
	}
	return domain.DefaultZoneMinutes
}
