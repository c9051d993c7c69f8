package dispatch

import (
	"context"
	"fmt"
	"math"
	"strings"

	"daycare-dispatch/internal/apperr"
	"daycare-dispatch/internal/domain"
	"daycare-dispatch/internal/logx"
	"daycare-dispatch/internal/ports/dispatchtx"
	"daycare-dispatch/internal/service/settlement"
)

// advance applies one agent-driven transition under a compare-and-set on the
// prior status. mutate runs inside the transaction after the guards pass.
func (e *Engine) advance(
	ctx context.Context,
	actor domain.Actor,
	id string,
	to domain.AssignmentStatus,
	mutate func(tx dispatchtx.Repository, a *domain.Assignment) error,
) (*domain.Assignment, domain.AssignmentStatus, error) {
	if !actor.Role.Can(domain.CapDeliver) {
		return nil, "", apperr.ErrForbidden
	}

	var (
		out  *domain.Assignment
		from domain.AssignmentStatus
	)
	err := e.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		a, err := tx.LockAssignment(ctx, id)
		if err != nil {
			return err
		}
		if a == nil {
			return fmt.Errorf("assignment %s: %w", id, apperr.ErrNotFound)
		}
		if !a.HeldBy(actor.ID) {
			return fmt.Errorf("assignment %s is not held by %s: %w", id, actor.ID, apperr.ErrInvalidTransition)
		}
		if !domain.CanTransition(a.Status, to) {
			return fmt.Errorf("assignment %s: %s -> %s: %w", id, a.Status, to, apperr.ErrInvalidTransition)
		}

		from = a.Status
		a.Status = to
		a.UpdatedAt = e.now()
		if mutate != nil {
			if err := mutate(tx, a); err != nil {
				return err
			}
		}

		ok, err := tx.UpdateAssignment(ctx, a, from)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("assignment %s changed concurrently: %w", id, apperr.ErrInvalidTransition)
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	e.logger.Info("assignment status changed",
		logx.String("event", "assignment_"+string(to)),
		logx.String("assignment_id", id),
		logx.String("agent_id", actor.ID),
		logx.String("from", string(from)),
	)
	return out, from, nil
}

// Accept confirms the assignment by its agent.
func (e *Engine) Accept(ctx context.Context, actor domain.Actor, id string) (*domain.Assignment, error) {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	a, _, err := e.advance(ctx, actor, id, domain.AssignmentAccepted, func(_ dispatchtx.Repository, a *domain.Assignment) error {
		now := a.UpdatedAt
		a.AcceptedAt = &now
		a.ResponseDeadline = nil
		return nil
	})
	return a, err
}

// Pickup records that the agent collected the items.
func (e *Engine) Pickup(ctx context.Context, actor domain.Actor, id string) (*domain.Assignment, error) {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	a, _, err := e.advance(ctx, actor, id, domain.AssignmentPickedUp, func(_ dispatchtx.Repository, a *domain.Assignment) error {
		now := a.UpdatedAt
		a.PickedUpAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.tracker.Start(a.ID, a.AgentID)
	return a, nil
}

func validCoordinates(c domain.Coordinates) bool {
	return !math.IsNaN(c.Lat) && !math.IsNaN(c.Lng) &&
		c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// UpdateLocation moves the assignment in transit and records where the agent is.
func (e *Engine) UpdateLocation(ctx context.Context, actor domain.Actor, id string, c domain.Coordinates) (*domain.Assignment, error) {
	if !validCoordinates(c) {
		return nil, fmt.Errorf("coordinates out of range: %w", apperr.ErrInvalid)
	}
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	a, _, err := e.advance(ctx, actor, id, domain.AssignmentInTransit, func(tx dispatchtx.Repository, a *domain.Assignment) error {
		now := a.UpdatedAt
		if a.InTransitAt == nil {
			a.InTransitAt = &now
		}
		loc := c
		a.CurrentLocation = &loc
		return tx.UpdateAgentLocation(ctx, a.AgentID, c, now)
	})
	if err != nil {
		return nil, err
	}
	e.tracker.Update(a.ID, a.AgentID, c)
	return a, nil
}

// Deliver completes the assignment and settles it. A settlement failure is
// logged and left for a later Settle call; the delivery itself stands.
func (e *Engine) Deliver(ctx context.Context, actor domain.Actor, id string, rating *int) (*domain.Assignment, error) {
	if rating != nil && (*rating < 1 || *rating > 5) {
		return nil, fmt.Errorf("rating must be between 1 and 5: %w", apperr.ErrInvalid)
	}
	tctx, cancel := e.withTimeout(ctx)
	a, _, err := e.advance(tctx, actor, id, domain.AssignmentDelivered, func(tx dispatchtx.Repository, a *domain.Assignment) error {
		now := a.UpdatedAt
		a.DeliveredAt = &now
		a.ResponseDeadline = nil
		if rating != nil {
			r := *rating
			a.CustomerRating = &r
		}
		if err := tx.ReleaseAgentSlot(tctx, a.AgentID); err != nil {
			return err
		}
		return tx.RecordDelivery(tctx, a.AgentID, rating)
	})
	cancel()
	if err != nil {
		return nil, err
	}
	e.tracker.Stop(a.ID)

	if e.settler == nil {
		return a, nil
	}
	if _, err := e.settler.Settle(ctx, a.ID); err != nil {
		e.logger.Error("settlement failed",
			logx.String("event", "settlement_failed"),
			logx.String("assignment_id", a.ID),
			logx.Err(err),
		)
		return a, nil
	}

	rctx, cancel := e.withTimeout(ctx)
	defer cancel()
	if settled, err := e.read(rctx, a.ID); err == nil {
		a = settled
	}
	return a, nil
}

// Fail ends a non-terminal assignment by administrative override.
func (e *Engine) Fail(ctx context.Context, actor domain.Actor, id, reason string) (*domain.Assignment, error) {
	if !actor.Role.Can(domain.CapOverride) {
		return nil, apperr.ErrForbidden
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("failure reason is required: %w", apperr.ErrInvalid)
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	var (
		out  *domain.Assignment
		from domain.AssignmentStatus
	)
	err := e.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		a, err := tx.LockAssignment(ctx, id)
		if err != nil {
			return err
		}
		if a == nil {
			return fmt.Errorf("assignment %s: %w", id, apperr.ErrNotFound)
		}
		if !domain.CanTransition(a.Status, domain.AssignmentFailed) {
			return fmt.Errorf("assignment %s is %s: %w", id, a.Status, apperr.ErrInvalidTransition)
		}
		if a.Status.Active() {
			if err := tx.ReleaseAgentSlot(ctx, a.AgentID); err != nil {
				return err
			}
		}

		now := e.now()
		from = a.Status
		a.Status = domain.AssignmentFailed
		a.FailedAt = &now
		a.FailureReason = reason
		a.ResponseDeadline = nil
		a.UpdatedAt = now
		ok, err := tx.UpdateAssignment(ctx, a, from)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("assignment %s changed concurrently: %w", id, apperr.ErrInvalidTransition)
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.tracker.Stop(id)
	e.logger.Warn("assignment failed",
		logx.String("event", "assignment_failed"),
		logx.String("assignment_id", id),
		logx.String("from", string(from)),
		logx.String("reason", reason),
		logx.String("actor_id", actor.ID),
	)
	return out, nil
}

// Settle reruns settlement of a delivered assignment.
func (e *Engine) Settle(ctx context.Context, actor domain.Actor, id string) (settlement.Result, error) {
	if !actor.Role.Can(domain.CapOverride) {
		return settlement.Result{}, apperr.ErrForbidden
	}
	if e.settler == nil {
		return settlement.Result{}, fmt.Errorf("settlement is not configured: %w", apperr.ErrInvalid)
	}
	return e.settler.Settle(ctx, id)
}
