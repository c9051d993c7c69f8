// Package agent manages courier profiles that the dispatch engine scores.
package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"daycare-dispatch/internal/apperr"
	"daycare-dispatch/internal/domain"
	"daycare-dispatch/internal/logx"
	"daycare-dispatch/internal/ports/dispatchtx"
)

// Service - service for agent profiles.
type Service struct {
	repo             dispatchtx.Runner
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

// NewService creates and configures an agent Service.
func NewService(repo dispatchtx.Runner, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		repo:             repo,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

func validZones(zones []string) bool {
	for _, z := range zones {
		if strings.TrimSpace(z) == "" {
			return false
		}
	}
	return true
}

// validateCreate validates an agent for creation.
func validateCreate(a *domain.Agent) error {
	if a == nil {
		return apperr.ErrInvalid
	}
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("name is required: %w", apperr.ErrInvalid)
	}
	if !domain.ValidatePhone(a.Phone) {
		return fmt.Errorf("phone %q: %w", a.Phone, apperr.ErrInvalid)
	}
	if a.Availability != "" && !a.Availability.Valid() {
		return fmt.Errorf("availability %q: %w", a.Availability, apperr.ErrInvalid)
	}
	if !validZones(a.Zones) {
		return fmt.Errorf("zone names must not be empty: %w", apperr.ErrInvalid)
	}
	if a.MaxConcurrent < 0 {
		return fmt.Errorf("max concurrent must not be negative: %w", apperr.ErrInvalid)
	}
	if a.Rating < 0 || a.Rating > domain.MaxAgentRating {
		return fmt.Errorf("rating out of range: %w", apperr.ErrInvalid)
	}
	if a.SuccessRate < 0 || a.SuccessRate > domain.MaxAgentSuccessPercentage {
		return fmt.Errorf("success rate out of range: %w", apperr.ErrInvalid)
	}
	return nil
}

func validateUpdate(u *domain.PartialAgentUpdate) error {
	if strings.TrimSpace(u.ID) == "" {
		return apperr.ErrInvalid
	}
	if u.Name == nil && u.Phone == nil && u.Zones == nil && u.Availability == nil &&
		u.Active == nil && u.MaxConcurrent == nil && u.BaseLocation == nil {
		return fmt.Errorf("nothing to update: %w", apperr.ErrInvalid)
	}
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return apperr.ErrInvalid
	}
	if u.Phone != nil && !domain.ValidatePhone(*u.Phone) {
		return apperr.ErrInvalid
	}
	if u.Availability != nil && !u.Availability.Valid() {
		return apperr.ErrInvalid
	}
	if u.Zones != nil && !validZones(*u.Zones) {
		return apperr.ErrInvalid
	}
	if u.MaxConcurrent != nil && *u.MaxConcurrent <= 0 {
		return apperr.ErrInvalid
	}
	return nil
}

// selfService reports whether u only touches fields an agent may change on its own profile.
func selfService(u domain.PartialAgentUpdate) bool {
	return u.Name == nil && u.Phone == nil && u.Zones == nil && u.Active == nil && u.MaxConcurrent == nil
}

// Create registers a new agent. Scoring inputs left empty get their defaults.
func (s *Service) Create(ctx context.Context, actor domain.Actor, a *domain.Agent) (*domain.Agent, error) {
	if !actor.Role.Can(domain.CapManageAgents) {
		return nil, apperr.ErrForbidden
	}
	if err := validateCreate(a); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	c := *a
	c.ApplyDefaults()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.Active = true
	c.ActiveDeliveries = 0
	c.TotalDeliveries = 0
	now := s.now()
	c.CreatedAt, c.UpdatedAt = now, now

	err := s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		return tx.CreateAgent(ctx, &c)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("agent created",
		logx.String("event", "agent_created"),
		logx.String("agent_id", c.ID),
		logx.Int("zones", len(c.Zones)),
	)
	return &c, nil
}

// Get retrieves an agent by its ID. Agents may only read their own profile.
func (s *Service) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Agent, error) {
	if !actor.Role.Can(domain.CapManageAgents) && !(actor.Role == domain.RoleAgent && actor.ID == id) {
		return nil, apperr.ErrForbidden
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var out *domain.Agent
	err := s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		var err error
		out, err = tx.GetAgent(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, apperr.ErrNotFound
	}
	return out, nil
}

// List returns agents with optional pagination
func (s *Service) List(ctx context.Context, actor domain.Actor, limit, offset *int) ([]domain.Agent, error) {
	if !actor.Role.Can(domain.CapManageAgents) {
		return nil, apperr.ErrForbidden
	}
	if (limit != nil && *limit < 0) || (offset != nil && *offset < 0) {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var out []domain.Agent
	err := s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		var err error
		out, err = tx.ListAgents(ctx, limit, offset)
		return err
	})
	return out, err
}

// UpdatePartial applies a partial update to an agent. Agents may change their
// own availability and base location; everything else needs CapManageAgents.
func (s *Service) UpdatePartial(ctx context.Context, actor domain.Actor, u domain.PartialAgentUpdate) (*domain.Agent, error) {
	self := actor.Role == domain.RoleAgent && actor.ID == u.ID
	if !actor.Role.Can(domain.CapManageAgents) && !(self && selfService(u)) {
		return nil, apperr.ErrForbidden
	}
	if err := validateUpdate(&u); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var out *domain.Agent
	err := s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		ok, err := tx.UpdateAgent(ctx, u)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("agent %s: %w", u.ID, apperr.ErrNotFound)
		}
		out, err = tx.GetAgent(ctx, u.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	fields := []logx.Field{
		logx.String("event", "agent_updated"),
		logx.String("agent_id", u.ID),
		logx.String("actor_id", actor.ID),
	}
	if u.Availability != nil {
		fields = append(fields, logx.String("availability", string(*u.Availability)))
	}
	s.logger.Info("agent updated", fields...)
	return out, nil
}
