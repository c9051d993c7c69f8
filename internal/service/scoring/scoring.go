// Package scoring ranks courier candidates for an assignment.
package scoring

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"daycare-dispatch/internal/apperr"
	"daycare-dispatch/internal/domain"
)

const earthRadiusKm = 6371.0

// Breakdown holds the weighted sub-scores of one candidate. Lower is better.
type Breakdown struct {
	DistanceKm float64 `json:"distance_km"`
	Workload   float64 `json:"workload"`
	Distance   float64 `json:"distance"`
	Rating     float64 `json:"rating"`
	Success    float64 `json:"success"`
	Total      float64 `json:"total"`
}

// Ranked is a scored candidate.
type Ranked struct {
	Agent domain.Agent
	Score Breakdown
}

// Haversine returns the great-circle distance in kilometres.
func Haversine(a, b domain.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Score computes the weighted score of one agent. A nil pickup contributes no distance.
func Score(pickup *domain.Coordinates, a domain.Agent, w domain.Weights) Breakdown {
	var km float64
	if pickup != nil {
		km = Haversine(*pickup, a.Position())
	}

	b := Breakdown{
		DistanceKm: km,
		Workload:   float64(a.ActiveDeliveries) * 10 * w.Workload / 100,
		Distance:   km * 2 * w.Distance / 100,
		Rating:     (domain.MaxAgentRating - a.Rating) * 4 * w.Rating / 100,
		Success:    (domain.MaxAgentSuccessPercentage - a.SuccessRate) / 10 * w.SuccessRate / 100,
	}
	b.Total = b.Workload + b.Distance + b.Rating + b.Success
	return b
}

// Rank drops agents at capacity, scores the rest and orders them by total
// score ascending. Equal totals are ordered by agent id.
func Rank(pickup *domain.Coordinates, agents []domain.Agent, w domain.Weights) []Ranked {
	out := make([]Ranked, 0, len(agents))
	for _, a := range agents {
		if !a.HasCapacity() {
			continue
		}
		out = append(out, Ranked{Agent: a, Score: Score(pickup, a, w)})
	}
	slices.SortStableFunc(out, func(x, y Ranked) int {
		if c := cmp.Compare(x.Score.Total, y.Score.Total); c != 0 {
			return c
		}
		return cmp.Compare(x.Agent.ID, y.Agent.ID)
	})
	return out
}

// Best returns the winner or apperr.ErrNoCandidates.
func Best(pickup *domain.Coordinates, agents []domain.Agent, w domain.Weights) (Ranked, error) {
	ranked := Rank(pickup, agents, w)
	if len(ranked) == 0 {
		return Ranked{}, apperr.ErrNoCandidates
	}
	return ranked[0], nil
}

// Top returns at most n ranked candidates; n <= 0 means all.
func Top(ranked []Ranked, n int) []Ranked {
	if n <= 0 || n >= len(ranked) {
		return ranked
	}
	return ranked[:n]
}

// Reason renders the human-readable assignment reason.
func Reason(zone string, r Ranked) string {
	return fmt.Sprintf("Zone: %s, Load: %d, Distance: %.2fkm, Rating: %.1f",
		zone, r.Agent.ActiveDeliveries, r.Score.DistanceKm, r.Agent.Rating)
}
