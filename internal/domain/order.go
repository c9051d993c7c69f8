package domain

import "github.com/shopspring/decimal"

// Order is the read-only view of a marketplace order.
type Order struct {
	ID              string
	Number          string
	Items           []OrderItem
	Shipping        decimal.Decimal
	Total           decimal.Decimal
	ShippingAddress Location
}

// OrderItem is one order line tagged with its vendor.
type OrderItem struct {
	Item
	VendorID string
}

// VendorIDs returns distinct vendor ids in first-seen order.
func (o Order) VendorIDs() []string {
	seen := make(map[string]struct{}, len(o.Items))
	out := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		if _, ok := seen[it.VendorID]; ok {
			continue
		}
		seen[it.VendorID] = struct{}{}
		out = append(out, it.VendorID)
	}
	return out
}

// ItemsFor returns the lines sold by vendorID.
func (o Order) ItemsFor(vendorID string) []Item {
	var out []Item
	for _, it := range o.Items {
		if it.VendorID == vendorID {
			out = append(out, it.Item)
		}
	}
	return out
}

// Subtotal sums all item totals.
func (o Order) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.Total())
	}
	return sum
}

// Vendor is the read-only view of a vendor.
type Vendor struct {
	ID             string
	Name           string
	CommissionRate *decimal.Decimal
	Warehouse      Location
	Bank           BankAccount
}

// BankAccount is the payout destination of a vendor.
type BankAccount struct {
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	IFSC          string `json:"ifsc"`
	BankName      string `json:"bank_name"`
}
