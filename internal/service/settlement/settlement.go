// Package settlement runs the money side of a delivery: the agent ledger
// credit and, once the whole order is delivered, the vendor payouts.
package settlement

import (
	"context"
	"time"

	"daycare-dispatch/internal/domain"
	"daycare-dispatch/internal/logx"
	"daycare-dispatch/internal/ports/dispatchtx"
)

type creditor interface {
	CreditDelivery(ctx context.Context, assignmentID string) (*domain.AgentPayout, error)
}

type scheduler interface {
	ScheduleForOrder(ctx context.Context, orderID string) ([]domain.VendorPayout, error)
}

// Result reports what a settlement run did.
type Result struct {
	Payout       *domain.AgentPayout   `json:"payout"`
	OrderSettled bool                  `json:"order_settled"`
	VendorPayout []domain.VendorPayout `json:"vendor_payouts,omitempty"`
}

// Service settles delivered assignments. Every step is idempotent so a failed
// run can simply be repeated.
type Service struct {
	repo    dispatchtx.Runner
	ledger  creditor
	payouts scheduler
	logger  logx.Logger
	now     func() time.Time
}

// NewService creates a settlement Service.
func NewService(repo dispatchtx.Runner, ledger creditor, payouts scheduler, logger logx.Logger) *Service {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		repo:    repo,
		ledger:  ledger,
		payouts: payouts,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Settle credits the agent and, when every assignment of the order is
// delivered, schedules vendor payouts and completes the commission record.
func (s *Service) Settle(ctx context.Context, assignmentID string) (Result, error) {
	payout, err := s.ledger.CreditDelivery(ctx, assignmentID)
	if err != nil {
		return Result{}, err
	}
	res := Result{Payout: payout}

	complete, err := s.orderDelivered(ctx, payout.OrderID)
	if err != nil || !complete {
		return res, err
	}

	res.VendorPayout, err = s.payouts.ScheduleForOrder(ctx, payout.OrderID)
	if err != nil {
		return res, err
	}

	err = s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		rec, err := tx.GetCommission(ctx, payout.OrderID)
		if err != nil || rec == nil || rec.Status == domain.CommissionCompleted {
			return err
		}
		return tx.SetCommissionStatus(ctx, payout.OrderID, domain.CommissionCompleted, s.now())
	})
	if err != nil {
		return res, err
	}

	res.OrderSettled = true
	s.logger.Info("order settled",
		logx.String("event", "order_settled"),
		logx.String("order_id", payout.OrderID),
		logx.Int("vendor_payouts", len(res.VendorPayout)),
	)
	return res, nil
}

func (s *Service) orderDelivered(ctx context.Context, orderID string) (bool, error) {
	var done bool
	err := s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		all, err := tx.ListAssignments(ctx, domain.AssignmentFilter{OrderID: orderID})
		if err != nil {
			return err
		}
		done = len(all) > 0
		for _, a := range all {
			if a.Status != domain.AssignmentDelivered {
				done = false
				break
			}
		}
		return nil
	})
	return done, err
}
