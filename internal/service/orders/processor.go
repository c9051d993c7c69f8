// Package orders turns order workflow events into assignments.
package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"daycare-dispatch/internal/apperr"
	"daycare-dispatch/internal/domain"
	"daycare-dispatch/internal/logx"
	"daycare-dispatch/internal/ports/dispatchtx"
)

const cancelReason = "order cancelled"

// Processor processes orders events
type Processor struct {
	dispatch   DispatchPort
	commission CommissionPort
	repo       TxRunner
	logger     logx.Logger
}

// NewProcessor creates a new orders.Processor
func NewProcessor(d DispatchPort, c CommissionPort, repo TxRunner, logger logx.Logger) *Processor {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Processor{
		dispatch:   d,
		commission: c,
		repo:       repo,
		logger:     logger,
	}
}

// Handle processes a single orders.Event
func (p *Processor) Handle(ctx context.Context, e Event) error {
	fn := p.action(e.Status)
	if fn == nil {
		p.logger.Debug("order event ignored",
			logx.String("order_id", e.OrderID),
			logx.String("status", e.Status),
		)
		return nil
	}
	return fn(ctx, e)
}

func (p *Processor) action(status string) func(context.Context, Event) error {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case StatusCreated, StatusUpdated:
		return p.onSnapshot
	case StatusConfirmed:
		return p.onConfirmed
	case StatusCanceled, "cancelled", StatusDeleted:
		return p.onCanceled
	default:
		return nil
	}
}

func (p *Processor) onSnapshot(ctx context.Context, e Event) error {
	if e.Order == nil && len(e.Vendors) == 0 {
		return nil
	}
	if e.Order != nil && e.Order.ID != e.OrderID {
		return fmt.Errorf("snapshot of order %s in event for %s: %w", e.Order.ID, e.OrderID, apperr.ErrInvalid)
	}
	return p.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		for _, v := range e.Vendors {
			if err := tx.SaveVendor(ctx, v); err != nil {
				return err
			}
		}
		if e.Order != nil {
			return tx.SaveOrder(ctx, *e.Order)
		}
		return nil
	})
}

// vendorsOf returns the vendors to create assignments for: the event's vendor
// when it names one, otherwise every vendor of the stored order.
func (p *Processor) vendorsOf(ctx context.Context, e Event) ([]string, error) {
	if e.VendorID != "" {
		return []string{e.VendorID}, nil
	}
	var out []string
	err := p.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		o, err := tx.GetOrder(ctx, e.OrderID)
		if err != nil {
			return err
		}
		if o == nil {
			return fmt.Errorf("order %s: %w", e.OrderID, apperr.ErrNotFound)
		}
		out = o.VendorIDs()
		return nil
	})
	return out, err
}

func (p *Processor) onConfirmed(ctx context.Context, e Event) error {
	if err := p.onSnapshot(ctx, e); err != nil {
		return err
	}
	if _, err := p.commission.RecordForOrder(ctx, domain.SystemActor, e.OrderID); err != nil {
		return err
	}
	vendors, err := p.vendorsOf(ctx, e)
	if err != nil {
		return err
	}

	for _, vendorID := range vendors {
		a, err := p.dispatch.CreateAssignment(ctx, domain.SystemActor, e.OrderID, vendorID)
		if err != nil {
			return err
		}
		if a.Status != domain.AssignmentPending {
			continue
		}
		res, err := p.dispatch.AutoAssign(ctx, domain.SystemActor, a.ID)
		if errors.Is(err, apperr.ErrInvalidTransition) {
			continue
		}
		if err != nil {
			return err
		}
		p.logger.Info("order dispatched",
			logx.String("event", "order_dispatched"),
			logx.String("order_id", e.OrderID),
			logx.String("vendor_id", vendorID),
			logx.String("assignment_id", a.ID),
			logx.String("outcome", string(res.Outcome)),
		)
	}
	return nil
}

func (p *Processor) onCanceled(ctx context.Context, e Event) error {
	list, err := p.dispatch.List(ctx, domain.SystemActor, domain.AssignmentFilter{OrderID: e.OrderID})
	if err != nil {
		return err
	}
	for _, a := range list {
		if a.Status.Terminal() {
			continue
		}
		_, err := p.dispatch.Fail(ctx, domain.SystemActor, a.ID, cancelReason)
		if errors.Is(err, apperr.ErrInvalidTransition) {
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}
