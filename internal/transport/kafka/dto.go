package kafka

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"daycare-dispatch/internal/domain"
	"daycare-dispatch/internal/service/orders"
)

// EventDTO is a data transfer object for orders.Event
type EventDTO struct {
	OrderID   string      `json:"order_id"`
	VendorID  string      `json:"vendor_id,omitempty"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	Order     *OrderDTO   `json:"order,omitempty"`
	Vendors   []VendorDTO `json:"vendors,omitempty"`
}

// AddressDTO is a postal address with optional coordinates.
type AddressDTO struct {
	Address    string   `json:"address"`
	PostalCode string   `json:"postal_code"`
	Lat        *float64 `json:"lat,omitempty"`
	Lng        *float64 `json:"lng,omitempty"`
}

// ItemDTO is one order line.
type ItemDTO struct {
	ProductID string          `json:"product_id"`
	VendorID  string          `json:"vendor_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// OrderDTO is the order snapshot carried by an event.
type OrderDTO struct {
	ID              string          `json:"id"`
	Number          string          `json:"number"`
	Items           []ItemDTO       `json:"items"`
	Shipping        decimal.Decimal `json:"shipping"`
	Total           decimal.Decimal `json:"total"`
	ShippingAddress AddressDTO      `json:"shipping_address"`
}

// VendorDTO is the vendor snapshot carried by an event.
type VendorDTO struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	CommissionRate *decimal.Decimal   `json:"commission_rate,omitempty"`
	Warehouse      AddressDTO         `json:"warehouse"`
	Bank           domain.BankAccount `json:"bank"`
}

func (a AddressDTO) toDomain() domain.Location {
	l := domain.Location{
		Address:    strings.TrimSpace(a.Address),
		PostalCode: strings.TrimSpace(a.PostalCode),
	}
	if a.Lat != nil && a.Lng != nil {
		l.Coordinates = &domain.Coordinates{Lat: *a.Lat, Lng: *a.Lng}
	}
	return l
}

func (o OrderDTO) toDomain() *domain.Order {
	items := make([]domain.OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, domain.OrderItem{
			Item: domain.Item{
				ProductID: it.ProductID,
				Name:      it.Name,
				Price:     it.Price,
				Quantity:  it.Quantity,
			},
			VendorID: strings.TrimSpace(it.VendorID),
		})
	}
	return &domain.Order{
		ID:              strings.TrimSpace(o.ID),
		Number:          o.Number,
		Items:           items,
		Shipping:        o.Shipping,
		Total:           o.Total,
		ShippingAddress: o.ShippingAddress.toDomain(),
	}
}

// ToDomain converts EventDTO to orders.Event
func ToDomain(dto EventDTO) orders.Event {
	ev := orders.Event{
		OrderID:   strings.TrimSpace(dto.OrderID),
		VendorID:  strings.TrimSpace(dto.VendorID),
		Status:    strings.TrimSpace(dto.Status),
		CreatedAt: dto.CreatedAt,
	}
	if dto.Order != nil {
		ev.Order = dto.Order.toDomain()
	}
	for _, v := range dto.Vendors {
		ev.Vendors = append(ev.Vendors, domain.Vendor{
			ID:             strings.TrimSpace(v.ID),
			Name:           v.Name,
			CommissionRate: v.CommissionRate,
			Warehouse:      v.Warehouse.toDomain(),
			Bank:           v.Bank,
		})
	}
	return ev
}
