package orders

import (
	"time"

	"daycare-dispatch/internal/domain"
)

// Order workflow statuses acted on by the Processor. Any other status is ignored.
const (
	StatusCreated   = "created"
	StatusUpdated   = "updated"
	StatusConfirmed = "confirmed"
	StatusCanceled  = "canceled"
	StatusDeleted   = "deleted"
)

// Event is a single order event. Order and Vendors are optional snapshots
// that refresh the local directory before the event is acted on.
type Event struct {
	OrderID   string
	VendorID  string
	Status    string
	CreatedAt time.Time
	Order     *domain.Order
	Vendors   []domain.Vendor
}
