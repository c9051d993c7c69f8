package payout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"daycare-dispatch/internal/apperr"
	"daycare-dispatch/internal/domain"
	"daycare-dispatch/internal/logx"
	"daycare-dispatch/internal/ports/dispatchtx"
	"daycare-dispatch/internal/service/notify"
)

type settingsSource interface {
	Current(ctx context.Context) (domain.PlatformSettings, error)
}

type notifier interface {
	Notify(ctx context.Context, m notify.Message)
}

// Service schedules and settles vendor payouts.
type Service struct {
	repo             dispatchtx.Runner
	settings         settingsSource
	notifier         notifier
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

// NewService creates a payout Service. notifier may be nil.
func NewService(repo dispatchtx.Runner, settings settingsSource, n notifier, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		repo:             repo,
		settings:         settings,
		notifier:         n,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// ScheduleForOrder adds the order's vendor lines to the current batches.
// Vendors that already carry the order in any batch are skipped.
func (s *Service) ScheduleForOrder(ctx context.Context, orderID string) ([]domain.VendorPayout, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	settings, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	var touched []domain.VendorPayout
	// a concurrent insert of the same (vendor, batch) surfaces as ErrConflict; the retry appends instead
	for attempt := 0; attempt < 2; attempt++ {
		touched, err = s.schedule(ctx, orderID, settings)
		if !errors.Is(err, apperr.ErrConflict) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	for _, p := range touched {
		s.logger.Info("payout scheduled",
			logx.String("event", "payout_scheduled"),
			logx.String("order_id", orderID),
			logx.String("vendor_id", p.VendorID),
			logx.String("batch", p.Batch),
			logx.Time("scheduled_date", p.ScheduledDate),
			logx.Money("total_net", p.TotalNet),
		)
		if s.notifier != nil {
			s.notifier.Notify(ctx, notify.Message{
				Kind:      notify.KindPayoutScheduled,
				Recipient: p.VendorID,
				OrderID:   orderID,
				Text:      fmt.Sprintf("Payout for order scheduled on %s", p.ScheduledDate.Format(time.DateOnly)),
				Data: map[string]string{
					"batch":     p.Batch,
					"total_net": p.TotalNet.StringFixed(2),
				},
			})
		}
	}
	return touched, nil
}

func (s *Service) schedule(ctx context.Context, orderID string, settings domain.PlatformSettings) ([]domain.VendorPayout, error) {
	var touched []domain.VendorPayout
	err := s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		touched = nil
		rec, err := tx.GetCommission(ctx, orderID)
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("commission for order %s: %w", orderID, apperr.ErrNotFound)
		}

		now := s.now()
		schedule := settings.VendorPayouts.Schedule
		date := NextPayoutDate(now, settings.VendorPayouts)

		for _, vc := range rec.Vendors {
			vendor, err := tx.GetVendor(ctx, vc.VendorID)
			if err != nil {
				return err
			}
			if vendor == nil {
				s.logger.Warn("vendor not found, payout skipped",
					logx.String("order_id", orderID),
					logx.String("vendor_id", vc.VendorID),
				)
				continue
			}

			if err := tx.LockVendorPayouts(ctx, vc.VendorID); err != nil {
				return err
			}
			existing, err := tx.ListVendorPayouts(ctx, vc.VendorID)
			if err != nil {
				return err
			}
			if paid(existing, orderID) {
				continue
			}

			line := domain.PayoutLine{
				OrderID: orderID,
				Gross:   vc.Sales,
				Fee:     vc.Commission,
				Net:     vc.NetPayout,
				AddedAt: now,
			}

			p, vDate, err := openBatch(ctx, tx, existing, vc.VendorID, date, schedule)
			if err != nil {
				return err
			}
			if p != nil && p.HasOrder(orderID) {
				continue
			}
			if p == nil {
				np := &domain.VendorPayout{
					ID:            uuid.NewString(),
					VendorID:      vc.VendorID,
					Batch:         BatchKey(vDate, schedule),
					PeriodStart:   now,
					PeriodEnd:     now,
					TotalGross:    decimal.Zero,
					TotalFee:      decimal.Zero,
					TotalNet:      decimal.Zero,
					Bank:          vendor.Bank,
					Status:        domain.PayoutScheduled,
					ScheduledDate: vDate,
					CreatedAt:     now,
					UpdatedAt:     now,
				}
				np.AddLine(line)
				if err := tx.InsertVendorPayout(ctx, np); err != nil {
					return err
				}
				touched = append(touched, *np)
				continue
			}

			p.AddLine(line)
			p.PeriodEnd = now
			p.Bank = vendor.Bank
			p.UpdatedAt = now
			if err := tx.UpdateVendorPayout(ctx, p); err != nil {
				return err
			}
			touched = append(touched, *p)
		}
		return nil
	})
	return touched, err
}

// openBatch returns the locked batch the next line of a vendor goes to. A
// scheduled batch paying on date is reused even when its key is older, which
// is the case after a deferral. A nil batch means a new one is opened for the
// returned date.
func openBatch(ctx context.Context, tx dispatchtx.Repository, existing []domain.VendorPayout, vendorID string, date time.Time, schedule string) (*domain.VendorPayout, time.Time, error) {
	for _, e := range existing {
		if e.Status != domain.PayoutScheduled || !e.ScheduledDate.Equal(date) {
			continue
		}
		p, err := tx.GetVendorPayout(ctx, e.ID)
		if err != nil {
			return nil, time.Time{}, err
		}
		if p != nil && p.Status == domain.PayoutScheduled {
			return p, date, nil
		}
	}

	// a batch that already left the scheduled state is closed; roll to the next cycle
	p, err := tx.FindVendorPayout(ctx, vendorID, BatchKey(date, schedule))
	for err == nil && p != nil && p.Status != domain.PayoutScheduled {
		date = deferred(date, schedule)
		p, err = tx.FindVendorPayout(ctx, vendorID, BatchKey(date, schedule))
	}
	if err != nil {
		return nil, time.Time{}, err
	}
	return p, date, nil
}

func paid(payouts []domain.VendorPayout, orderID string) bool {
	for _, p := range payouts {
		if p.HasOrder(orderID) {
			return true
		}
	}
	return false
}

// ProcessDue moves due payouts to processing. A vendor whose due payouts add
// up to less than the minimum has all of them deferred one cycle.
func (s *Service) ProcessDue(ctx context.Context, actor domain.Actor) ([]domain.VendorPayout, error) {
	if !actor.Role.Can(domain.CapOverride) {
		return nil, apperr.ErrForbidden
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	settings, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	var (
		processed []domain.VendorPayout
		held      int
	)
	err = s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		processed, held = nil, 0
		now := s.now()
		due, err := tx.ListDuePayouts(ctx, now)
		if err != nil {
			return err
		}
		// the minimum applies to everything a vendor is owed on this run
		owed := make(map[string]decimal.Decimal)
		for _, p := range due {
			owed[p.VendorID] = owed[p.VendorID].Add(p.TotalNet)
		}
		for _, p := range due {
			p.UpdatedAt = now
			if owed[p.VendorID].LessThan(settings.VendorPayouts.MinimumPayout) {
				p.ScheduledDate = deferred(p.ScheduledDate, settings.VendorPayouts.Schedule)
				held++
			} else {
				at := now
				p.Status = domain.PayoutProcessing
				p.ProcessedAt = &at
				processed = append(processed, p)
			}
			if err := tx.UpdateVendorPayout(ctx, &p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(processed) > 0 || held > 0 {
		s.logger.Info("due payouts processed",
			logx.String("event", "payouts_processing"),
			logx.Int("processing", len(processed)),
			logx.Int("deferred", held),
		)
	}
	return processed, nil
}

// Complete records a successful bank transfer.
func (s *Service) Complete(ctx context.Context, actor domain.Actor, id, transferRef string) (*domain.VendorPayout, error) {
	transferRef = strings.TrimSpace(transferRef)
	if transferRef == "" {
		return nil, fmt.Errorf("transfer reference is required: %w", apperr.ErrInvalid)
	}
	return s.finish(ctx, actor, id, func(p *domain.VendorPayout, now time.Time) {
		p.Status = domain.PayoutCompleted
		p.CompletedAt = &now
		p.TransferRef = transferRef
	})
}

// Fail records a failed bank transfer.
func (s *Service) Fail(ctx context.Context, actor domain.Actor, id, reason string) (*domain.VendorPayout, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("failure reason is required: %w", apperr.ErrInvalid)
	}
	return s.finish(ctx, actor, id, func(p *domain.VendorPayout, _ time.Time) {
		p.Status = domain.PayoutFailed
		p.FailureReason = reason
	})
}

func (s *Service) finish(ctx context.Context, actor domain.Actor, id string, apply func(*domain.VendorPayout, time.Time)) (*domain.VendorPayout, error) {
	if !actor.Role.Can(domain.CapOverride) {
		return nil, apperr.ErrForbidden
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var out *domain.VendorPayout
	err := s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		p, err := tx.GetVendorPayout(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("payout %s: %w", id, apperr.ErrNotFound)
		}
		if p.Status != domain.PayoutProcessing {
			return fmt.Errorf("payout %s is %s: %w", id, p.Status, apperr.ErrInvalidTransition)
		}
		now := s.now()
		apply(p, now)
		p.UpdatedAt = now
		if err := tx.UpdateVendorPayout(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payout settled",
		logx.String("event", "payout_"+string(out.Status)),
		logx.String("payout_id", out.ID),
		logx.String("vendor_id", out.VendorID),
		logx.String("batch", out.Batch),
	)
	return out, nil
}

// ListByVendor returns a vendor's payouts by scheduled date.
func (s *Service) ListByVendor(ctx context.Context, actor domain.Actor, vendorID string) ([]domain.VendorPayout, error) {
	own := actor.Role == domain.RoleVendor && actor.ID == vendorID
	if !own && !actor.Role.Can(domain.CapViewFinance) {
		return nil, apperr.ErrForbidden
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var out []domain.VendorPayout
	err := s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		var err error
		out, err = tx.ListVendorPayouts(ctx, vendorID)
		return err
	})
	return out, err
}
