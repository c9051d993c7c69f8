package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayoutStatus is the settlement state of a vendor payout batch.
type PayoutStatus string

// Payout statuses.
const (
	PayoutScheduled  PayoutStatus = "scheduled"
	PayoutProcessing PayoutStatus = "processing"
	PayoutCompleted  PayoutStatus = "completed"
	PayoutFailed     PayoutStatus = "failed"
)

// PayoutLine is one order's contribution to a vendor payout.
type PayoutLine struct {
	OrderID string          `json:"order_id"`
	Gross   decimal.Decimal `json:"gross"`
	Fee     decimal.Decimal `json:"fee"`
	Net     decimal.Decimal `json:"net"`
	AddedAt time.Time       `json:"added_at"`
}

// VendorPayout is one vendor's settlement for one batch.
type VendorPayout struct {
	ID            string
	VendorID      string
	Batch         string
	PeriodStart   time.Time
	PeriodEnd     time.Time
	Lines         []PayoutLine
	TotalGross    decimal.Decimal
	TotalFee      decimal.Decimal
	TotalNet      decimal.Decimal
	Bank          BankAccount
	Status        PayoutStatus
	ScheduledDate time.Time
	ProcessedAt   *time.Time
	CompletedAt   *time.Time
	TransferRef   string
	FailureReason string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasOrder reports whether the order already contributes a line.
func (p VendorPayout) HasOrder(orderID string) bool {
	for _, l := range p.Lines {
		if l.OrderID == orderID {
			return true
		}
	}
	return false
}

// AddLine appends a line and refreshes totals.
func (p *VendorPayout) AddLine(l PayoutLine) {
	p.Lines = append(p.Lines, l)
	p.TotalGross = p.TotalGross.Add(l.Gross)
	p.TotalFee = p.TotalFee.Add(l.Fee)
	p.TotalNet = p.TotalNet.Add(l.Net)
}
