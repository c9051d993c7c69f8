// Package commission derives the per-order financial breakdown.
package commission

import (
	"fmt"

	"github.com/shopspring/decimal"

	"daycare-dispatch/internal/apperr"
	"daycare-dispatch/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Rate returns the vendor override when set, else the platform default.
func Rate(v *domain.Vendor, s domain.CommissionSettings) decimal.Decimal {
	if v != nil && v.CommissionRate != nil && v.CommissionRate.IsPositive() {
		return *v.CommissionRate
	}
	return s.VendorDefaultRate
}

// OrderDeliveryFee is the shipping charged on the order, or the base fee when none was charged.
func OrderDeliveryFee(o domain.Order, s domain.PlatformSettings) decimal.Decimal {
	if o.Shipping.IsPositive() {
		return o.Shipping
	}
	return s.DeliveryFee
}

// SplitFee splits a delivery fee into platform and agent shares. The agent
// share is rounded to cents and the platform keeps the remainder, so the two
// always add up to fee.
func SplitFee(fee decimal.Decimal, s domain.CommissionSettings) (platform, agent decimal.Decimal) {
	agent = fee.Mul(s.DeliveryAgentPct).Div(hundred).Round(2)
	return fee.Sub(agent), agent
}

// Calculate builds the commission record of an order. vendors may miss
// entries; such vendors get the default rate.
func Calculate(o domain.Order, vendors map[string]domain.Vendor, s domain.PlatformSettings) (domain.CommissionRecord, error) {
	ids := o.VendorIDs()
	if len(ids) == 0 {
		return domain.CommissionRecord{}, fmt.Errorf("order %s has no items: %w", o.ID, apperr.ErrInvalid)
	}

	rec := domain.CommissionRecord{
		OrderID:               o.ID,
		OrderNumber:           o.Number,
		Vendors:               make([]domain.VendorCommission, 0, len(ids)),
		TotalVendorCommission: decimal.Zero,
		Status:                domain.CommissionPending,
	}

	for _, id := range ids {
		sales := decimal.Zero
		for _, it := range o.ItemsFor(id) {
			sales = sales.Add(it.Total())
		}
		var vendor *domain.Vendor
		if v, ok := vendors[id]; ok {
			vendor = &v
		}
		rate := Rate(vendor, s.Commission)
		amount := sales.Mul(rate).Div(hundred)

		rec.Vendors = append(rec.Vendors, domain.VendorCommission{
			VendorID:   id,
			Sales:      sales,
			Rate:       rate,
			Commission: amount,
			NetPayout:  sales.Sub(amount),
		})
		rec.TotalVendorCommission = rec.TotalVendorCommission.Add(amount)
	}

	n := decimal.NewFromInt(int64(len(ids)))
	fee := OrderDeliveryFee(o, s)
	// shares are split on the whole fee so they add up to it; the per-vendor
	// figure is informational
	platform, agents := SplitFee(fee, s.Commission)

	rec.Delivery = domain.DeliveryBreakdown{
		TotalFee:      fee,
		Deliveries:    len(ids),
		FeePerVendor:  fee.DivRound(n, 2),
		PlatformShare: platform,
		AgentsShare:   agents,
	}
	rec.TotalDeliveryCommission = rec.Delivery.PlatformShare
	rec.TotalRevenue = rec.TotalVendorCommission.Add(rec.TotalDeliveryCommission)
	rec.GatewayFee = o.Total.Mul(s.Gateway.FeePct).Div(hundred).Round(2)
	rec.NetRevenue = rec.TotalRevenue
	if s.Gateway.AbsorbedBy == domain.FeeAbsorbedByPlatform {
		rec.NetRevenue = rec.NetRevenue.Sub(rec.GatewayFee)
	}
	return rec, nil
}

// AssignmentFee prorates the order delivery fee by the vendor's share of the
// item subtotal and splits it into platform and agent shares.
func AssignmentFee(o domain.Order, vendorID string, s domain.PlatformSettings) (fee, platform, agent decimal.Decimal) {
	total := OrderDeliveryFee(o, s)
	subtotal := o.Subtotal()
	if subtotal.IsZero() {
		fee = total.DivRound(decimal.NewFromInt(int64(max(len(o.VendorIDs()), 1))), 2)
	} else {
		sales := decimal.Zero
		for _, it := range o.ItemsFor(vendorID) {
			sales = sales.Add(it.Total())
		}
		fee = total.Mul(sales).DivRound(subtotal, 2)
	}
	platform, agent = SplitFee(fee, s.Commission)
	return fee, platform, agent
}
