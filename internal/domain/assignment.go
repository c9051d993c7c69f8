package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// AssignmentType records how the current agent was chosen.
type AssignmentType string

// Assignment types.
const (
	AssignmentTypeNone       AssignmentType = ""
	AssignmentTypeAuto       AssignmentType = "auto"
	AssignmentTypeManual     AssignmentType = "manual"
	AssignmentTypeReassigned AssignmentType = "reassigned"
)

// Item is one order line carried by an assignment.
type Item struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Total is Price × Quantity.
func (i Item) Total() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Assignment is the vendor portion of an order that one agent delivers.
type Assignment struct {
	ID       string
	OrderID  string
	VendorID string
	Pickup   Location
	DropOff  Location
	Items    []Item

	DeliveryFee   decimal.Decimal
	PlatformShare decimal.Decimal
	AgentShare    decimal.Decimal

	Status          AssignmentStatus
	Type            AssignmentType
	AgentID         string
	Score           float64
	Reason          string
	Attempts        int
	RejectedAgents  []string
	RejectionReason string
	FailureReason   string

	ResponseDeadline  *time.Time
	EstimatedDuration int
	CurrentLocation   *Coordinates
	CustomerRating    *int
	AgentEarnings     *decimal.Decimal

	AssignedAt  *time.Time
	AcceptedAt  *time.Time
	PickedUpAt  *time.Time
	InTransitAt *time.Time
	DeliveredAt *time.Time
	FailedAt    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Zones returns the distinct pickup and drop-off zones.
func (a Assignment) Zones() []string {
	if a.DropOff.Zone == "" || a.DropOff.Zone == a.Pickup.Zone {
		return []string{a.Pickup.Zone}
	}
	return []string{a.Pickup.Zone, a.DropOff.Zone}
}

// HeldBy reports whether agentID is the current holder.
func (a Assignment) HeldBy(agentID string) bool {
	return a.AgentID != "" && a.AgentID == agentID
}

// RejectedBy reports whether the agent has declined this assignment before.
func (a Assignment) RejectedBy(agentID string) bool {
	return slices.Contains(a.RejectedAgents, agentID)
}

// OnTime reports whether the pickup-to-delivery leg fit the estimate.
func (a Assignment) OnTime() bool {
	if a.PickedUpAt == nil || a.DeliveredAt == nil || a.EstimatedDuration <= 0 {
		return false
	}
	return a.DeliveredAt.Sub(*a.PickedUpAt) <= time.Duration(a.EstimatedDuration)*time.Minute
}

// Clone returns a deep copy.
func (a Assignment) Clone() Assignment {
	c := a
	c.Items = slices.Clone(a.Items)
	c.RejectedAgents = slices.Clone(a.RejectedAgents)
	c.Pickup.Coordinates = clonePtr(a.Pickup.Coordinates)
	c.DropOff.Coordinates = clonePtr(a.DropOff.Coordinates)
	c.ResponseDeadline = clonePtr(a.ResponseDeadline)
	c.CurrentLocation = clonePtr(a.CurrentLocation)
	c.CustomerRating = clonePtr(a.CustomerRating)
	c.AgentEarnings = clonePtr(a.AgentEarnings)
	c.AssignedAt = clonePtr(a.AssignedAt)
	c.AcceptedAt = clonePtr(a.AcceptedAt)
	c.PickedUpAt = clonePtr(a.PickedUpAt)
	c.InTransitAt = clonePtr(a.InTransitAt)
	c.DeliveredAt = clonePtr(a.DeliveredAt)
	c.FailedAt = clonePtr(a.FailedAt)
	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// AssignmentFilter narrows assignment listings. Zero values mean "any".
type AssignmentFilter struct {
	Statuses []AssignmentStatus
	AgentID  string
	VendorID string
	OrderID  string
	Zones    []string
	Limit    int
	Offset   int
}

// Matches applies the filter to one assignment, ignoring paging.
func (f AssignmentFilter) Matches(a Assignment) bool {
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, a.Status) {
		return false
	}
	if f.AgentID != "" && a.AgentID != f.AgentID {
		return false
	}
	if f.VendorID != "" && a.VendorID != f.VendorID {
		return false
	}
	if f.OrderID != "" && a.OrderID != f.OrderID {
		return false
	}
	if len(f.Zones) > 0 && !slices.Contains(f.Zones, a.Pickup.Zone) && !slices.Contains(f.Zones, a.DropOff.Zone) {
		return false
	}
	return true
}
