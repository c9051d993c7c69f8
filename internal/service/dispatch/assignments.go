package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"daycare-dispatch/internal/apperr"
	"daycare-dispatch/internal/domain"
	"daycare-dispatch/internal/logx"
	"daycare-dispatch/internal/ports/dispatchtx"
	"daycare-dispatch/internal/service/commission"
	"daycare-dispatch/internal/service/tracking"
	"daycare-dispatch/internal/service/zone"
)

const maxListLimit = 100

// CreateAssignment creates the pending assignment for one vendor portion of
// an order. Calling it again for the same pair returns the existing assignment.
func (e *Engine) CreateAssignment(ctx context.Context, actor domain.Actor, orderID, vendorID string) (*domain.Assignment, error) {
	orderID, vendorID = strings.TrimSpace(orderID), strings.TrimSpace(vendorID)
	if orderID == "" || vendorID == "" {
		return nil, apperr.ErrInvalid
	}
	if !actor.Role.Can(domain.CapCreateAssignment) {
		return nil, apperr.ErrForbidden
	}
	if actor.Role == domain.RoleVendor && actor.ID != vendorID {
		return nil, apperr.ErrForbidden
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	settings, err := e.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	var (
		out     *domain.Assignment
		created bool
	)
	err = e.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		existing, err := tx.ListAssignments(ctx, domain.AssignmentFilter{OrderID: orderID, VendorID: vendorID, Limit: 1})
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			out = &existing[0]
			return nil
		}

		order, err := tx.GetOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("order %s: %w", orderID, apperr.ErrNotFound)
		}
		items := order.ItemsFor(vendorID)
		if len(items) == 0 {
			return fmt.Errorf("order %s has no items of vendor %s: %w", orderID, vendorID, apperr.ErrInvalid)
		}
		vendor, err := tx.GetVendor(ctx, vendorID)
		if err != nil {
			return err
		}
		if vendor == nil {
			return fmt.Errorf("vendor %s: %w", vendorID, apperr.ErrNotFound)
		}

		now := e.now()
		pickup := vendor.Warehouse
		pickup.Zone = resolveZone(pickup, settings.Zones)
		dropOff := order.ShippingAddress
		dropOff.Zone = resolveZone(dropOff, settings.Zones)
		fee, platform, agent := commission.AssignmentFee(*order, vendorID, settings)

		a := &domain.Assignment{
			ID:                uuid.NewString(),
			OrderID:           orderID,
			VendorID:          vendorID,
			Pickup:            pickup,
			DropOff:           dropOff,
			Items:             items,
			DeliveryFee:       fee,
			PlatformShare:     platform,
			AgentShare:        agent,
			Status:            domain.AssignmentPending,
			EstimatedDuration: zone.Minutes(pickup.Zone, settings.Zones),
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := tx.InsertAssignment(ctx, a); err != nil {
			return err
		}
		out, created = a, true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if created {
		e.logger.Info("assignment created",
			logx.String("event", "assignment_created"),
			logx.String("assignment_id", out.ID),
			logx.String("order_id", out.OrderID),
			logx.String("vendor_id", out.VendorID),
			logx.String("pickup_zone", out.Pickup.Zone),
			logx.String("dropoff_zone", out.DropOff.Zone),
			logx.Money("delivery_fee", out.DeliveryFee),
		)
	}
	return out, nil
}

// resolveZone maps a location onto a zone. Locations without a postal code
// keep the zone they already carry.
func resolveZone(l domain.Location, zones []domain.Zone) string {
	if strings.TrimSpace(l.PostalCode) == "" && l.Zone != "" {
		return l.Zone
	}
	return zone.Resolve(l.PostalCode, zones)
}

func canSee(actor domain.Actor, a domain.Assignment) bool {
	switch actor.Role {
	case domain.RoleAdmin, domain.RoleSystem:
		return true
	case domain.RoleVendor:
		return a.VendorID == actor.ID
	case domain.RoleAgent:
		return a.HeldBy(actor.ID) || a.Status == domain.AssignmentPending
	default:
		return false
	}
}

// Get returns one assignment.
func (e *Engine) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Assignment, error) {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	a, err := e.read(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canSee(actor, *a) {
		return nil, apperr.ErrForbidden
	}
	return a, nil
}

// List returns assignments matching f. Vendors and agents only see their own.
func (e *Engine) List(ctx context.Context, actor domain.Actor, f domain.AssignmentFilter) ([]domain.Assignment, error) {
	switch actor.Role {
	case domain.RoleAdmin, domain.RoleSystem:
	case domain.RoleVendor:
		f.VendorID = actor.ID
	case domain.RoleAgent:
		f.AgentID = actor.ID
	default:
		return nil, apperr.ErrForbidden
	}
	if f.Limit <= 0 || f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	if f.Offset < 0 {
		return nil, apperr.ErrInvalid
	}
	for _, s := range f.Statuses {
		if !s.Valid() {
			return nil, fmt.Errorf("unknown status %q: %w", s, apperr.ErrInvalid)
		}
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	var out []domain.Assignment
	err := e.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		var err error
		out, err = tx.ListAssignments(ctx, f)
		return err
	})
	return out, err
}

// ListAvailable returns pending assignments in the calling agent's zones.
func (e *Engine) ListAvailable(ctx context.Context, actor domain.Actor) ([]domain.Assignment, error) {
	if actor.Role != domain.RoleAgent {
		return nil, apperr.ErrForbidden
	}
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	var out []domain.Assignment
	err := e.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		agent, err := tx.GetAgent(ctx, actor.ID)
		if err != nil {
			return err
		}
		if agent == nil {
			return fmt.Errorf("agent %s: %w", actor.ID, apperr.ErrNotFound)
		}
		if len(agent.Zones) == 0 {
			out = []domain.Assignment{}
			return nil
		}
		out, err = tx.ListAssignments(ctx, domain.AssignmentFilter{
			Statuses: []domain.AssignmentStatus{domain.AssignmentPending},
			Zones:    agent.Zones,
			Limit:    maxListLimit,
		})
		return err
	})
	return out, err
}

// ListMine returns the calling agent's assignments, optionally filtered by status.
func (e *Engine) ListMine(ctx context.Context, actor domain.Actor, statuses []domain.AssignmentStatus) ([]domain.Assignment, error) {
	if actor.Role != domain.RoleAgent {
		return nil, apperr.ErrForbidden
	}
	return e.List(ctx, actor, domain.AssignmentFilter{Statuses: statuses})
}

// Tracking returns the live session of an assignment on the road.
func (e *Engine) Tracking(ctx context.Context, actor domain.Actor, id string) (tracking.Session, error) {
	if _, err := e.Get(ctx, actor, id); err != nil {
		return tracking.Session{}, err
	}
	s, ok := e.tracker.Get(id)
	if !ok {
		return tracking.Session{}, fmt.Errorf("tracking session %s: %w", id, apperr.ErrNotFound)
	}
	return s, nil
}
