package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"daycare-dispatch/internal/apperr"
	"daycare-dispatch/internal/domain"
	"daycare-dispatch/internal/logx"
	"daycare-dispatch/internal/ports/dispatchtx"
	"daycare-dispatch/internal/service/notify"
	"daycare-dispatch/internal/service/scoring"
)

const timeoutReason = "response timeout"

// Suggestion is one ranked candidate for manual assignment.
type Suggestion struct {
	AgentID string            `json:"agent_id"`
	Name    string            `json:"name"`
	Score   scoring.Breakdown `json:"score"`
	Reason  string            `json:"reason"`
}

func candidates(ctx context.Context, tx dispatchtx.Repository, a domain.Assignment, s domain.PlatformSettings) ([]scoring.Ranked, error) {
	pool, err := tx.ListCandidates(ctx, a.Zones())
	if err != nil {
		return nil, err
	}
	if s.AutoAssignment.ExcludeRejectedAgents {
		kept := pool[:0]
		for _, ag := range pool {
			if !a.RejectedBy(ag.ID) {
				kept = append(kept, ag)
			}
		}
		pool = kept
	}
	return scoring.Rank(a.Pickup.Coordinates, pool, s.AutoAssignment.Weights), nil
}

// SuggestAgents ranks candidates without changing anything.
func (e *Engine) SuggestAgents(ctx context.Context, actor domain.Actor, id string) ([]Suggestion, error) {
	if !actor.Role.Can(domain.CapDispatch) {
		return nil, apperr.ErrForbidden
	}
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	settings, err := e.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	var ranked []scoring.Ranked
	var pickupZone string
	err = e.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		a, err := tx.GetAssignment(ctx, id)
		if err != nil {
			return err
		}
		if a == nil {
			return fmt.Errorf("assignment %s: %w", id, apperr.ErrNotFound)
		}
		pickupZone = a.Pickup.Zone
		ranked, err = candidates(ctx, tx, *a, settings)
		return err
	})
	if err != nil {
		return nil, err
	}

	top := scoring.Top(ranked, settings.AutoAssignment.SuggestionLimit)
	out := make([]Suggestion, 0, len(top))
	for _, r := range top {
		out = append(out, Suggestion{
			AgentID: r.Agent.ID,
			Name:    r.Agent.Name,
			Score:   r.Score,
			Reason:  scoring.Reason(pickupZone, r),
		})
	}
	return out, nil
}

// AutoAssign picks the best candidate for a pending assignment.
func (e *Engine) AutoAssign(ctx context.Context, actor domain.Actor, id string) (Result, error) {
	if !actor.Role.Can(domain.CapDispatch) {
		return Result{}, apperr.ErrForbidden
	}
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	settings, err := e.settings.Current(ctx)
	if err != nil {
		return Result{}, err
	}
	if !settings.AutoAssignment.Enabled {
		a, err := e.read(ctx, id)
		if err != nil {
			return Result{}, err
		}
		return Result{Outcome: OutcomeDisabled, Assignment: a}, nil
	}
	return e.redispatch(ctx, id, settings)
}

// redispatch runs dispatch at most once at a time per assignment; concurrent
// callers share the result.
func (e *Engine) redispatch(ctx context.Context, id string, settings domain.PlatformSettings) (Result, error) {
	v, err, _ := e.group.Do(id, func() (any, error) {
		return e.dispatch(ctx, id, settings)
	})
	if err != nil {
		return Result{}, err
	}
	return v.(Result), nil
}

func (e *Engine) dispatch(ctx context.Context, id string, settings domain.PlatformSettings) (Result, error) {
	var (
		res    Result
		winner scoring.Ranked
	)
	err := e.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		a, err := tx.LockAssignment(ctx, id)
		if err != nil {
			return err
		}
		if a == nil {
			return fmt.Errorf("assignment %s: %w", id, apperr.ErrNotFound)
		}
		if a.Status != domain.AssignmentPending {
			return fmt.Errorf("assignment %s is %s: %w", id, a.Status, apperr.ErrInvalidTransition)
		}
		res.Assignment = a
		if a.Attempts >= settings.AutoAssignment.ReassignmentAttempts {
			res.Outcome = OutcomeAttemptsExhausted
			return nil
		}

		ranked, err := candidates(ctx, tx, *a, settings)
		if err != nil {
			return err
		}
		found := false
		for _, r := range ranked {
			err := tx.ReserveAgentSlot(ctx, r.Agent.ID)
			if errors.Is(err, apperr.ErrCapacityExceeded) {
				continue
			}
			if err != nil {
				return err
			}
			winner, found = r, true
			break
		}
		if !found {
			res.Outcome = OutcomeNoCandidates
			return nil
		}

		typ := domain.AssignmentTypeAuto
		if a.Attempts > 0 {
			typ = domain.AssignmentTypeReassigned
		}
		e.hold(a, winner.Agent.ID, typ, settings)
		a.Score = winner.Score.Total
		a.Reason = scoring.Reason(a.Pickup.Zone, winner)
		ok, err := tx.UpdateAssignment(ctx, a, domain.AssignmentPending)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("assignment %s changed concurrently: %w", id, apperr.ErrInvalidTransition)
		}
		res.Outcome = OutcomeAssigned
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	e.count(string(res.Outcome))
	a := res.Assignment
	switch res.Outcome {
	case OutcomeAssigned:
		e.assigned(ctx, a)
	case OutcomeNoCandidates:
		e.logger.Warn("no agents available",
			logx.String("event", "no_agents_available"),
			logx.String("assignment_id", a.ID),
			logx.String("pickup_zone", a.Pickup.Zone),
		)
		e.notify(ctx, notify.Message{
			Kind:         notify.KindNoAgents,
			Recipient:    notify.RecipientAdmin,
			AssignmentID: a.ID,
			OrderID:      a.OrderID,
			Text:         fmt.Sprintf("No delivery agents available in %s", a.Pickup.Zone),
		})
	}
	return res, nil
}

// hold points a at agentID and opens the response window.
func (e *Engine) hold(a *domain.Assignment, agentID string, typ domain.AssignmentType, settings domain.PlatformSettings) {
	now := e.now()
	deadline := now.Add(settings.AssignmentTimeout())
	a.AgentID = agentID
	a.Status = domain.AssignmentAssigned
	a.Type = typ
	a.AssignedAt = &now
	a.ResponseDeadline = &deadline
	a.UpdatedAt = now
}

func (e *Engine) assigned(ctx context.Context, a *domain.Assignment) {
	e.logger.Info("agent assigned",
		logx.String("event", "assignment_assigned"),
		logx.String("assignment_id", a.ID),
		logx.String("agent_id", a.AgentID),
		logx.String("type", string(a.Type)),
		logx.Float64("score", a.Score),
		logx.Int("attempts", a.Attempts),
	)
	e.notify(ctx, notify.Message{
		Kind:         notify.KindAgentAssigned,
		Recipient:    a.AgentID,
		AssignmentID: a.ID,
		OrderID:      a.OrderID,
		Text:         fmt.Sprintf("New delivery from %s to %s", a.Pickup.Address, a.DropOff.Address),
		Data: map[string]string{
			"pickup_zone": a.Pickup.Zone,
			"deadline":    a.ResponseDeadline.Format(time.RFC3339),
		},
	})
}

// AssignManual hands a pending assignment to a chosen agent.
func (e *Engine) AssignManual(ctx context.Context, actor domain.Actor, id, agentID string) (*domain.Assignment, error) {
	if !actor.Role.Can(domain.CapDispatch) {
		return nil, apperr.ErrForbidden
	}
	agentID = strings.TrimSpace(agentID)
	if agentID == "" {
		return nil, apperr.ErrInvalid
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	settings, err := e.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	var out *domain.Assignment
	err = e.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		a, err := tx.LockAssignment(ctx, id)
		if err != nil {
			return err
		}
		if a == nil {
			return fmt.Errorf("assignment %s: %w", id, apperr.ErrNotFound)
		}
		if a.Status != domain.AssignmentPending {
			return fmt.Errorf("assignment %s is %s: %w", id, a.Status, apperr.ErrInvalidTransition)
		}

		agent, err := tx.GetAgent(ctx, agentID)
		if err != nil {
			return err
		}
		if agent == nil {
			return fmt.Errorf("agent %s: %w", agentID, apperr.ErrNotFound)
		}
		if !agent.Active || agent.Availability != domain.AvailabilityAvailable {
			return fmt.Errorf("agent %s is not available: %w", agentID, apperr.ErrInvalid)
		}
		if err := tx.ReserveAgentSlot(ctx, agentID); err != nil {
			return err
		}

		e.hold(a, agentID, domain.AssignmentTypeManual, settings)
		a.Score = 0
		a.Reason = "Manually assigned by " + actor.ID
		ok, err := tx.UpdateAssignment(ctx, a, domain.AssignmentPending)
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

	e.count("manual")
	e.assigned(ctx, out)
	return out, nil
}

// Reject hands the assignment back. Unless the attempt budget is spent, a
// new agent is looked for right away.
func (e *Engine) Reject(ctx context.Context, actor domain.Actor, id, reason string) (*domain.Assignment, error) {
	if !actor.Role.Can(domain.CapDeliver) {
		return nil, apperr.ErrForbidden
	}
	return e.release(ctx, id, actor.ID, strings.TrimSpace(reason), "rejected")
}

// ExpireOverdue routes assigned assignments past their response deadline
// into the reassignment loop. It returns how many were expired.
func (e *Engine) ExpireOverdue(ctx context.Context, actor domain.Actor) (int, error) {
	if !actor.Role.Can(domain.CapDispatch) {
		return 0, apperr.ErrForbidden
	}

	var overdue []domain.Assignment
	lctx, cancel := e.withTimeout(ctx)
	err := e.repo.WithTx(lctx, func(tx dispatchtx.Repository) error {
		var err error
		overdue, err = tx.ListOverdue(lctx, e.now())
		return err
	})
	cancel()
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, a := range overdue {
		if ctx.Err() != nil {
			return expired, ctx.Err()
		}
		if _, err := e.release(ctx, a.ID, a.AgentID, timeoutReason, "expired"); err != nil {
			// the agent answered in the meantime
			if errors.Is(err, apperr.ErrInvalidTransition) {
				continue
			}
			e.logger.Error("expire assignment failed",
				logx.String("assignment_id", a.ID),
				logx.Err(err),
			)
			continue
		}
		expired++
	}
	return expired, nil
}

// release takes the assignment away from its holder and runs the
// reassignment loop.
func (e *Engine) release(ctx context.Context, id, agentID, reason, outcome string) (*domain.Assignment, error) {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	settings, err := e.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	var (
		out       *domain.Assignment
		exhausted bool
	)
	err = e.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		a, err := tx.LockAssignment(ctx, id)
		if err != nil {
			return err
		}
		if a == nil {
			return fmt.Errorf("assignment %s: %w", id, apperr.ErrNotFound)
		}
		if a.Status != domain.AssignmentAssigned || !a.HeldBy(agentID) {
			return fmt.Errorf("assignment %s is %s: %w", id, a.Status, apperr.ErrInvalidTransition)
		}
		if err := tx.ReleaseAgentSlot(ctx, agentID); err != nil {
			return err
		}

		now := e.now()
		a.Attempts++
		if !a.RejectedBy(agentID) {
			a.RejectedAgents = append(a.RejectedAgents, agentID)
		}
		a.RejectionReason = reason
		a.AgentID = ""
		a.Score = 0
		a.Reason = ""
		a.ResponseDeadline = nil
		a.Status = domain.AssignmentPending
		a.UpdatedAt = now

		exhausted = a.Attempts >= settings.AutoAssignment.ReassignmentAttempts
		if exhausted && !settings.AutoAssignment.FallbackToManual {
			a.Status = domain.AssignmentFailed
			a.FailedAt = &now
			a.FailureReason = "reassignment attempts exhausted"
		}

		ok, err := tx.UpdateAssignment(ctx, a, domain.AssignmentAssigned)
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

	e.count(outcome)
	e.logger.Info("assignment released",
		logx.String("event", "assignment_"+outcome),
		logx.String("assignment_id", id),
		logx.String("agent_id", agentID),
		logx.String("reason", reason),
		logx.Int("attempts", out.Attempts),
	)

	if exhausted {
		e.count(string(OutcomeAttemptsExhausted))
		e.logger.Warn("reassignment attempts exhausted",
			logx.String("event", "attempts_exhausted"),
			logx.String("assignment_id", id),
			logx.Int("attempts", out.Attempts),
			logx.String("status", string(out.Status)),
		)
		e.notify(ctx, notify.Message{
			Kind:         notify.KindNoAgents,
			Recipient:    notify.RecipientAdmin,
			AssignmentID: id,
			OrderID:      out.OrderID,
			Text:         fmt.Sprintf("Assignment needs manual dispatch after %d attempts", out.Attempts),
		})
		return out, nil
	}

	if !settings.AutoAssignment.Enabled {
		return out, nil
	}
	res, err := e.redispatch(ctx, id, settings)
	if err != nil {
		// the release itself succeeded; a failed retry leaves the assignment pending
		e.logger.Warn("reassignment failed",
			logx.String("assignment_id", id),
			logx.Err(err),
		)
		return out, nil
	}
	return res.Assignment, nil
}
