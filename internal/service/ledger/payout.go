// Package ledger credits agent wallets for delivered assignments.
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"daycare-dispatch/internal/domain"
)

// BuildPayout computes the earnings breakdown of a delivered assignment.
func BuildPayout(a domain.Assignment, inc domain.Incentives) domain.AgentPayout {
	p := domain.AgentPayout{
		AssignmentID:   a.ID,
		AgentID:        a.AgentID,
		OrderID:        a.OrderID,
		GrossFee:       a.DeliveryFee,
		PlatformShare:  a.PlatformShare,
		AgentShare:     a.AgentShare,
		Bonuses:        []domain.Adjustment{},
		Penalties:      []domain.Adjustment{},
		TotalBonus:     decimal.Zero,
		TotalPenalty:   decimal.Zero,
		OnTime:         a.OnTime(),
		CustomerRating: a.CustomerRating,
	}
	if a.PickedUpAt != nil && a.DeliveredAt != nil {
		p.DeliveryTime = int(a.DeliveredAt.Sub(*a.PickedUpAt).Minutes())
	}

	if p.OnTime && inc.OnTimeBonus.IsPositive() {
		p.Bonuses = append(p.Bonuses, domain.Adjustment{
			Kind:   domain.BonusOnTime,
			Amount: inc.OnTimeBonus,
			Reason: "Delivered within estimated time",
		})
	}
	threshold := inc.HighRatingThreshold
	if threshold <= 0 {
		threshold = 5
	}
	if a.CustomerRating != nil && *a.CustomerRating >= threshold && inc.HighRatingBonus.IsPositive() {
		p.Bonuses = append(p.Bonuses, domain.Adjustment{
			Kind:   domain.BonusHighRating,
			Amount: inc.HighRatingBonus,
			Reason: fmt.Sprintf("%d-star rating", *a.CustomerRating),
		})
	}

	for _, b := range p.Bonuses {
		p.TotalBonus = p.TotalBonus.Add(b.Amount)
	}
	for _, pen := range p.Penalties {
		p.TotalPenalty = p.TotalPenalty.Add(pen.Amount)
	}
	p.NetEarnings = p.AgentShare.Add(p.TotalBonus).Sub(p.TotalPenalty)
	return p
}

// Description is the wallet ledger text of a payout.
func Description(p domain.AgentPayout) string {
	return fmt.Sprintf("Delivery payment + %d bonus(es)", len(p.Bonuses))
}
