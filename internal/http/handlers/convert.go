package handlers

import (
	"daycare-dispatch/internal/domain"
	"daycare-dispatch/internal/service/dispatch"
	"daycare-dispatch/internal/service/ledger"
	"daycare-dispatch/internal/service/settlement"
)

func locationToResponse(l domain.Location) locationDTO {
	return locationDTO{
		Address:     l.Address,
		PostalCode:  l.PostalCode,
		Zone:        l.Zone,
		Coordinates: l.Coordinates,
	}
}

func assignmentToResponse(a domain.Assignment) assignmentDTO {
	items := make([]itemDTO, 0, len(a.Items))
	for _, it := range a.Items {
		items = append(items, itemDTO{ProductID: it.ProductID, Name: it.Name, Price: it.Price, Quantity: it.Quantity})
	}
	rejected := a.RejectedAgents
	if rejected == nil {
		rejected = []string{}
	}
	return assignmentDTO{
		ID:                a.ID,
		OrderID:           a.OrderID,
		VendorID:          a.VendorID,
		Pickup:            locationToResponse(a.Pickup),
		DropOff:           locationToResponse(a.DropOff),
		Items:             items,
		DeliveryFee:       a.DeliveryFee,
		PlatformShare:     a.PlatformShare,
		AgentShare:        a.AgentShare,
		Status:            a.Status,
		Type:              a.Type,
		AgentID:           a.AgentID,
		Score:             a.Score,
		Reason:            a.Reason,
		Attempts:          a.Attempts,
		RejectedAgents:    rejected,
		RejectionReason:   a.RejectionReason,
		FailureReason:     a.FailureReason,
		ResponseDeadline:  a.ResponseDeadline,
		EstimatedDuration: a.EstimatedDuration,
		CurrentLocation:   a.CurrentLocation,
		CustomerRating:    a.CustomerRating,
		AgentEarnings:     a.AgentEarnings,
		AssignedAt:        a.AssignedAt,
		AcceptedAt:        a.AcceptedAt,
		PickedUpAt:        a.PickedUpAt,
		InTransitAt:       a.InTransitAt,
		DeliveredAt:       a.DeliveredAt,
		FailedAt:          a.FailedAt,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

func assignmentsToResponse(list []domain.Assignment) []assignmentDTO {
	out := make([]assignmentDTO, 0, len(list))
	for _, a := range list {
		out = append(out, assignmentToResponse(a))
	}
	return out
}

func dispatchResultToResponse(r dispatch.Result) dispatchResultDTO {
	out := dispatchResultDTO{Outcome: r.Outcome}
	if r.Assignment != nil {
		a := assignmentToResponse(*r.Assignment)
		out.Assignment = &a
	}
	return out
}

func (r createAgentRequest) toModel() *domain.Agent {
	return &domain.Agent{
		ID:            r.ID,
		Name:          r.Name,
		Phone:         r.Phone,
		Zones:         r.Zones,
		Availability:  r.Availability,
		Rating:        r.Rating,
		SuccessRate:   r.SuccessRate,
		MaxConcurrent: r.MaxConcurrent,
		BaseLocation:  r.BaseLocation,
	}
}

func (r updateAgentRequest) toModel(id string) domain.PartialAgentUpdate {
	return domain.PartialAgentUpdate{
		ID:            id,
		Name:          r.Name,
		Phone:         r.Phone,
		Zones:         r.Zones,
		Availability:  r.Availability,
		Active:        r.Active,
		MaxConcurrent: r.MaxConcurrent,
		BaseLocation:  r.BaseLocation,
	}
}

func agentToResponse(a domain.Agent) agentDTO {
	zones := a.Zones
	if zones == nil {
		zones = []string{}
	}
	return agentDTO{
		ID:               a.ID,
		Name:             a.Name,
		Phone:            a.Phone,
		Zones:            zones,
		Availability:     a.Availability,
		Active:           a.Active,
		Rating:           a.Rating,
		SuccessRate:      a.SuccessRate,
		MaxConcurrent:    a.MaxConcurrent,
		ActiveDeliveries: a.ActiveDeliveries,
		TotalDeliveries:  a.TotalDeliveries,
		Location:         a.Location,
		BaseLocation:     a.BaseLocation,
		LocationAt:       a.LocationAt,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func agentsToResponse(list []domain.Agent) []agentDTO {
	out := make([]agentDTO, 0, len(list))
	for _, a := range list {
		out = append(out, agentToResponse(a))
	}
	return out
}

func walletTransactionToResponse(t domain.WalletTransaction) walletTransactionDTO {
	return walletTransactionDTO{
		ID:           t.ID,
		Type:         t.Type,
		Amount:       t.Amount,
		BalanceAfter: t.BalanceAfter,
		SourceRef:    t.SourceRef,
		Description:  t.Description,
		CreatedAt:    t.CreatedAt,
	}
}

func walletToResponse(v ledger.WalletView) walletDTO {
	txs := make([]walletTransactionDTO, 0, len(v.Transactions))
	for _, t := range v.Transactions {
		txs = append(txs, walletTransactionToResponse(t))
	}
	return walletDTO{
		AgentID:        v.Wallet.AgentID,
		Balance:        v.Wallet.Balance,
		TotalEarnings:  v.Wallet.TotalEarnings,
		TotalWithdrawn: v.Wallet.TotalWithdrawn,
		Transactions:   txs,
	}
}

func reconciliationToResponse(r domain.Reconciliation) reconciliationDTO {
	return reconciliationDTO{
		AgentID:      r.AgentID,
		Balance:      r.Balance,
		LedgerSum:    r.LedgerSum,
		Transactions: r.Transactions,
		Balanced:     r.Balanced,
	}
}

func adjustmentsToResponse(list []domain.Adjustment) []adjustmentDTO {
	out := make([]adjustmentDTO, 0, len(list))
	for _, a := range list {
		out = append(out, adjustmentDTO{Kind: a.Kind, Amount: a.Amount, Reason: a.Reason})
	}
	return out
}

func agentPayoutToResponse(p domain.AgentPayout) agentPayoutDTO {
	return agentPayoutDTO{
		ID:             p.ID,
		AssignmentID:   p.AssignmentID,
		AgentID:        p.AgentID,
		OrderID:        p.OrderID,
		GrossFee:       p.GrossFee,
		PlatformShare:  p.PlatformShare,
		AgentShare:     p.AgentShare,
		Bonuses:        adjustmentsToResponse(p.Bonuses),
		Penalties:      adjustmentsToResponse(p.Penalties),
		NetEarnings:    p.NetEarnings,
		OnTime:         p.OnTime,
		DeliveryTime:   p.DeliveryTime,
		CustomerRating: p.CustomerRating,
		TransactionID:  p.TransactionID,
		CreatedAt:      p.CreatedAt,
	}
}

func settlementToResponse(r settlement.Result) settlementDTO {
	out := settlementDTO{
		OrderSettled:  r.OrderSettled,
		VendorPayouts: vendorPayoutsToResponse(r.VendorPayout),
	}
	if r.Payout != nil {
		p := agentPayoutToResponse(*r.Payout)
		out.Payout = &p
	}
	return out
}

func vendorPayoutToResponse(p domain.VendorPayout) vendorPayoutDTO {
	lines := make([]payoutLineDTO, 0, len(p.Lines))
	for _, l := range p.Lines {
		lines = append(lines, payoutLineDTO{OrderID: l.OrderID, Gross: l.Gross, Fee: l.Fee, Net: l.Net})
	}
	return vendorPayoutDTO{
		ID:            p.ID,
		VendorID:      p.VendorID,
		Batch:         p.Batch,
		PeriodStart:   p.PeriodStart,
		PeriodEnd:     p.PeriodEnd,
		Lines:         lines,
		TotalGross:    p.TotalGross,
		TotalFee:      p.TotalFee,
		TotalNet:      p.TotalNet,
		Status:        p.Status,
		ScheduledDate: p.ScheduledDate,
		ProcessedAt:   p.ProcessedAt,
		CompletedAt:   p.CompletedAt,
		TransferRef:   p.TransferRef,
		FailureReason: p.FailureReason,
	}
}

func vendorPayoutsToResponse(list []domain.VendorPayout) []vendorPayoutDTO {
	out := make([]vendorPayoutDTO, 0, len(list))
	for _, p := range list {
		out = append(out, vendorPayoutToResponse(p))
	}
	return out
}

func commissionToResponse(c domain.CommissionRecord) commissionDTO {
	vendors := c.Vendors
	if vendors == nil {
		vendors = []domain.VendorCommission{}
	}
	return commissionDTO{
		ID:                      c.ID,
		OrderID:                 c.OrderID,
		OrderNumber:             c.OrderNumber,
		Vendors:                 vendors,
		Delivery:                c.Delivery,
		TotalVendorCommission:   c.TotalVendorCommission,
		TotalDeliveryCommission: c.TotalDeliveryCommission,
		TotalRevenue:            c.TotalRevenue,
		GatewayFee:              c.GatewayFee,
		NetRevenue:              c.NetRevenue,
		Status:                  c.Status,
		CreatedAt:               c.CreatedAt,
	}
}

func commissionSummaryToResponse(s domain.CommissionSummary) commissionSummaryDTO {
	months := make([]monthlyRevenueDTO, 0, len(s.ByMonth))
	for _, m := range s.ByMonth {
		months = append(months, monthlyRevenueDTO{Month: m.Month, Orders: m.Orders, Revenue: m.Revenue})
	}
	return commissionSummaryDTO{
		Orders:                  s.Orders,
		TotalVendorCommission:   s.TotalVendorCommission,
		TotalDeliveryCommission: s.TotalDeliveryCommission,
		TotalRevenue:            s.TotalRevenue,
		NetRevenue:              s.NetRevenue,
		ByMonth:                 months,
	}
}
