package commission

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"daycare-dispatch/internal/apperr"
	"daycare-dispatch/internal/domain"
	"daycare-dispatch/internal/logx"
	"daycare-dispatch/internal/ports/dispatchtx"
)

type settingsSource interface {
	Current(ctx context.Context) (domain.PlatformSettings, error)
}

// Service records and reports commissions.
type Service struct {
	repo             dispatchtx.Runner
	settings         settingsSource
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

// NewService creates a commission Service.
func NewService(repo dispatchtx.Runner, settings settingsSource, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		repo:             repo,
		settings:         settings,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// RecordForOrder computes and stores the record of an order. A second call
// returns the stored record unchanged.
func (s *Service) RecordForOrder(ctx context.Context, actor domain.Actor, orderID string) (*domain.CommissionRecord, error) {
	if !actor.Role.Can(domain.CapCreateAssignment) {
		return nil, apperr.ErrForbidden
	}
	if orderID == "" {
		return nil, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	settings, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	var (
		out     *domain.CommissionRecord
		created bool
	)
	err = s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		existing, err := tx.GetCommission(ctx, orderID)
		if err != nil {
			return err
		}
		if existing != nil {
			out = existing
			return nil
		}

		order, err := tx.GetOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("order %s: %w", orderID, apperr.ErrNotFound)
		}

		vendors := make(map[string]domain.Vendor)
		for _, id := range order.VendorIDs() {
			v, err := tx.GetVendor(ctx, id)
			if err != nil {
				return err
			}
			if v != nil {
				vendors[id] = *v
			}
		}

		rec, err := Calculate(*order, vendors, settings)
		if err != nil {
			return err
		}
		now := s.now()
		rec.ID = uuid.NewString()
		rec.CreatedAt = now
		rec.UpdatedAt = now
		if err := tx.InsertCommission(ctx, &rec); err != nil {
			return err
		}
		out, created = &rec, true
		return nil
	})
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return s.Get(ctx, actor, orderID)
		}
		return nil, err
	}

	if created {
		s.logger.Info("commission recorded",
			logx.String("event", "commission_recorded"),
			logx.String("order_id", orderID),
			logx.Money("total_revenue", out.TotalRevenue),
			logx.Money("net_revenue", out.NetRevenue),
		)
	}
	return out, nil
}

// Get returns the record of an order.
func (s *Service) Get(ctx context.Context, actor domain.Actor, orderID string) (*domain.CommissionRecord, error) {
	if !actor.Role.Can(domain.CapViewFinance) && !actor.Role.Can(domain.CapCreateAssignment) {
		return nil, apperr.ErrForbidden
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var out *domain.CommissionRecord
	err := s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		r, err := tx.GetCommission(ctx, orderID)
		out = r
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

// Summary aggregates records created in [from, to). A zero to means open-ended.
func (s *Service) Summary(ctx context.Context, actor domain.Actor, from, to time.Time) (domain.CommissionSummary, error) {
	if !actor.Role.Can(domain.CapViewFinance) {
		return domain.CommissionSummary{}, apperr.ErrForbidden
	}
	if !to.IsZero() && to.Before(from) {
		return domain.CommissionSummary{}, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var records []domain.CommissionRecord
	err := s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		var err error
		records, err = tx.ListCommissions(ctx, from, to)
		return err
	})
	if err != nil {
		return domain.CommissionSummary{}, err
	}
	return Summarize(records), nil
}

// Summarize folds records into totals and month buckets.
func Summarize(records []domain.CommissionRecord) domain.CommissionSummary {
	sum := domain.CommissionSummary{
		TotalVendorCommission:   decimal.Zero,
		TotalDeliveryCommission: decimal.Zero,
		TotalRevenue:            decimal.Zero,
		NetRevenue:              decimal.Zero,
		ByMonth:                 []domain.MonthlyRevenue{},
	}
	months := map[string]int{}
	for _, r := range records {
		sum.Orders++
		sum.TotalVendorCommission = sum.TotalVendorCommission.Add(r.TotalVendorCommission)
		sum.TotalDeliveryCommission = sum.TotalDeliveryCommission.Add(r.TotalDeliveryCommission)
		sum.TotalRevenue = sum.TotalRevenue.Add(r.TotalRevenue)
		sum.NetRevenue = sum.NetRevenue.Add(r.NetRevenue)

		key := r.CreatedAt.UTC().Format("2006-01")
		i, ok := months[key]
		if !ok {
			i = len(sum.ByMonth)
			months[key] = i
			sum.ByMonth = append(sum.ByMonth, domain.MonthlyRevenue{Month: key, Revenue: decimal.Zero})
		}
		sum.ByMonth[i].Orders++
		sum.ByMonth[i].Revenue = sum.ByMonth[i].Revenue.Add(r.TotalRevenue)
	}
	slices.SortFunc(sum.ByMonth, func(a, b domain.MonthlyRevenue) int {
		switch {
		case a.Month < b.Month:
			return -1
		case a.Month > b.Month:
			return 1
		}
		return 0
	})
	return sum
}
