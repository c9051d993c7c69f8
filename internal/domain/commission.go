package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionStatus is the only mutable part of a commission record.
type CommissionStatus string

// Commission statuses.
const (
	CommissionPending   CommissionStatus = "pending"
	CommissionCompleted CommissionStatus = "completed"
)

// VendorCommission is the platform cut of one vendor's sales on an order.
type VendorCommission struct {
	VendorID   string          `json:"vendor_id"`
	Sales      decimal.Decimal `json:"sales"`
	Rate       decimal.Decimal `json:"rate"`
	Commission decimal.Decimal `json:"commission"`
	NetPayout  decimal.Decimal `json:"net_payout"`
}

// DeliveryBreakdown splits an order's delivery fee.
type DeliveryBreakdown struct {
	TotalFee      decimal.Decimal `json:"total_fee"`
	Deliveries    int             `json:"deliveries"`
	FeePerVendor  decimal.Decimal `json:"fee_per_vendor"`
	PlatformShare decimal.Decimal `json:"platform_share"`
	AgentsShare   decimal.Decimal `json:"agents_share"`
}

// CommissionRecord is the per-order financial breakdown.
type CommissionRecord struct {
	ID                      string
	OrderID                 string
	OrderNumber             string
	Vendors                 []VendorCommission
	Delivery                DeliveryBreakdown
	TotalVendorCommission   decimal.Decimal
	TotalDeliveryCommission decimal.Decimal
	TotalRevenue            decimal.Decimal
	GatewayFee              decimal.Decimal
	NetRevenue              decimal.Decimal
	Status                  CommissionStatus
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// Vendor returns the line for vendorID.
func (r CommissionRecord) Vendor(vendorID string) (VendorCommission, bool) {
	for _, v := range r.Vendors {
		if v.VendorID == vendorID {
			return v, true
		}
	}
	return VendorCommission{}, false
}

// CommissionSummary aggregates commission records.
type CommissionSummary struct {
	Orders                  int
	TotalVendorCommission   decimal.Decimal
	TotalDeliveryCommission decimal.Decimal
	TotalRevenue            decimal.Decimal
	NetRevenue              decimal.Decimal
	ByMonth                 []MonthlyRevenue
}

// MonthlyRevenue is one month bucket of a summary, keyed "2006-01".
type MonthlyRevenue struct {
	Month   string
	Orders  int
	Revenue decimal.Decimal
}
