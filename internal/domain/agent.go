package domain

import (
	"slices"
	"time"
)

// Agent defaults applied when a profile omits them.
const (
	DefaultAgentRating        = 4.0
	DefaultAgentSuccessRate   = 90.0
	DefaultMaxConcurrent      = 3
	MaxAgentRating            = 5.0
	MaxAgentSuccessPercentage = 100.0
)

// Agent is a courier that can hold delivery assignments.
type Agent struct {
	ID               string
	Name             string
	Phone            string
	Zones            []string
	Availability     AgentAvailability
	Active           bool
	Rating           float64
	SuccessRate      float64
	MaxConcurrent    int
	ActiveDeliveries int
	TotalDeliveries  int
	Location         *Coordinates
	BaseLocation     *Coordinates
	LocationAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PartialAgentUpdate carries optional fields to update an agent.
// A nil field means "do not change" that attribute.
type PartialAgentUpdate struct {
	ID            string
	Name          *string
	Phone         *string
	Zones         *[]string
	Availability  *AgentAvailability
	Active        *bool
	MaxConcurrent *int
	BaseLocation  *Coordinates
}

// ApplyDefaults fills zero-valued scoring inputs.
func (a *Agent) ApplyDefaults() {
	if a.Rating <= 0 {
		a.Rating = DefaultAgentRating
	}
	if a.SuccessRate <= 0 {
		a.SuccessRate = DefaultAgentSuccessRate
	}
	if a.MaxConcurrent <= 0 {
		a.MaxConcurrent = DefaultMaxConcurrent
	}
	if a.Availability == "" {
		a.Availability = AvailabilityOffline
	}
}

// Covers reports whether the agent serves any of the zones.
func (a Agent) Covers(zones ...string) bool {
	for _, z := range zones {
		if slices.Contains(a.Zones, z) {
			return true
		}
	}
	return false
}

// HasCapacity reports whether one more assignment fits under MaxConcurrent.
func (a Agent) HasCapacity() bool {
	return a.ActiveDeliveries < a.MaxConcurrent
}

// Position is the live location, falling back to the base location and then the zero point.
func (a Agent) Position() Coordinates {
	switch {
	case a.Location != nil:
		return *a.Location
	case a.BaseLocation != nil:
		return *a.BaseLocation
	default:
		return Coordinates{}
	}
}

// RollingRating folds a new customer rating into the average over n deliveries,
// where n already includes the delivery being rated.
func RollingRating(old float64, n int, rating int) float64 {
	if n <= 1 {
		return float64(rating)
	}
	return (old*float64(n-1) + float64(rating)) / float64(n)
}
