// Package settings serves the platform settings singleton.
package settings

import (
	"context"
	"fmt"
	"sync"
	"time"

	"daycare-dispatch/internal/apperr"
	"daycare-dispatch/internal/domain"
	"daycare-dispatch/internal/logx"
	"daycare-dispatch/internal/ports/dispatchtx"
)

// Provider reads settings from the store, creating defaults on first use.
// With a positive ttl the last read is reused until it expires.
type Provider struct {
	repo             dispatchtx.Runner
	seedZones        []domain.Zone
	ttl              time.Duration
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time

	mu       sync.Mutex
	cached   *domain.PlatformSettings
	cachedAt time.Time
}

// NewProvider creates a Provider. seedZones replace the built-in zone table
// when the settings row is created.
func NewProvider(repo dispatchtx.Runner, seedZones []domain.Zone, ttl, timeout time.Duration, logger logx.Logger) *Provider {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Provider{
		repo:             repo,
		seedZones:        seedZones,
		ttl:              ttl,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (p *Provider) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, p.operationTimeout)
}

// Current returns the active settings.
func (p *Provider) Current(ctx context.Context) (domain.PlatformSettings, error) {
	if s, ok := p.fromCache(); ok {
		return s, nil
	}

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	var out domain.PlatformSettings
	err := p.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		s, err := tx.GetSettings(ctx)
		if err != nil {
			return err
		}
		if s != nil {
			out = *s
			return nil
		}

		out = domain.DefaultPlatformSettings()
		if len(p.seedZones) > 0 {
			out.Zones = p.seedZones
		}
		out.UpdatedAt = p.now()
		if err := tx.SaveSettings(ctx, out); err != nil {
			return err
		}
		p.logger.Info("platform settings initialised",
			logx.String("event", "settings_created"),
			logx.Int("zones", len(out.Zones)),
		)
		return nil
	})
	if err != nil {
		return domain.PlatformSettings{}, fmt.Errorf("load settings: %w", err)
	}

	p.store(out)
	return out.Clone(), nil
}

// Update replaces the settings after validation.
func (p *Provider) Update(ctx context.Context, actor domain.Actor, s domain.PlatformSettings) (domain.PlatformSettings, error) {
	if !actor.Role.Can(domain.CapManageSettings) {
		return domain.PlatformSettings{}, apperr.ErrForbidden
	}
	if err := s.Validate(); err != nil {
		return domain.PlatformSettings{}, fmt.Errorf("%w: %v", apperr.ErrInvalid, err)
	}

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	s.UpdatedAt = p.now()
	err := p.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		return tx.SaveSettings(ctx, s)
	})
	if err != nil {
		return domain.PlatformSettings{}, fmt.Errorf("save settings: %w", err)
	}

	p.store(s)
	p.logger.Info("platform settings updated",
		logx.String("event", "settings_updated"),
		logx.String("actor", actor.ID),
		logx.Bool("auto_assignment", s.AutoAssignment.Enabled),
	)
	return s.Clone(), nil
}

func (p *Provider) fromCache() (domain.PlatformSettings, bool) {
	if p.ttl <= 0 {
		return domain.PlatformSettings{}, false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cached == nil || p.now().Sub(p.cachedAt) >= p.ttl {
		return domain.PlatformSettings{}, false
	}
	return p.cached.Clone(), true
}

func (p *Provider) store(s domain.PlatformSettings) {
	if p.ttl <= 0 {
		return
	}
	c := s.Clone()
	p.mu.Lock()
	p.cached = &c
	p.cachedAt = p.now()
	p.mu.Unlock()
}
