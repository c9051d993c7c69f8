package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"daycare-dispatch/internal/apperr"
	"daycare-dispatch/internal/domain"
	"daycare-dispatch/internal/logx"
	"daycare-dispatch/internal/ports/dispatchtx"
	"daycare-dispatch/internal/service/notify"
)

const recentTransactions = 50

type settingsSource interface {
	Current(ctx context.Context) (domain.PlatformSettings, error)
}

type notifier interface {
	Notify(ctx context.Context, m notify.Message)
}

type counter interface {
	Inc()
}

// WalletView is a wallet with its most recent transactions, newest first.
type WalletView struct {
	Wallet       domain.Wallet
	Transactions []domain.WalletTransaction
}

// Service owns agent wallets.
type Service struct {
	repo             dispatchtx.Runner
	settings         settingsSource
	notifier         notifier
	credits          counter
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

// NewService creates a ledger Service. notifier and credits may be nil.
func NewService(repo dispatchtx.Runner, settings settingsSource, n notifier, credits counter, timeout time.Duration, logger logx.Logger) *Service {
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
		credits:          credits,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// CreditDelivery pays the agent of a delivered assignment. It credits at most
// once per assignment; repeated calls return the stored payout.
func (s *Service) CreditDelivery(ctx context.Context, assignmentID string) (*domain.AgentPayout, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	settings, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	var (
		out     *domain.AgentPayout
		balance decimal.Decimal
		created bool
	)
	err = s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		a, err := tx.LockAssignment(ctx, assignmentID)
		if err != nil {
			return err
		}
		if a == nil {
			return fmt.Errorf("assignment %s: %w", assignmentID, apperr.ErrNotFound)
		}
		if a.Status != domain.AssignmentDelivered {
			return fmt.Errorf("assignment %s is %s: %w", a.ID, a.Status, apperr.ErrInvalidTransition)
		}
		if a.AgentID == "" {
			return fmt.Errorf("assignment %s has no agent: %w", a.ID, apperr.ErrInvalid)
		}

		existing, err := tx.GetAgentPayout(ctx, a.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			out = existing
			return nil
		}

		now := s.now()
		p := BuildPayout(*a, settings.Incentives)
		p.ID = uuid.NewString()
		p.CreatedAt = now

		w, err := tx.GetWallet(ctx, a.AgentID)
		if err != nil {
			return err
		}
		if w == nil {
			w = domain.NewWallet(a.AgentID, now)
		}
		row := w.Credit(uuid.NewString(), p.NetEarnings, a.ID, Description(p), now)
		p.TransactionID = row.ID

		if err := tx.InsertAgentPayout(ctx, &p); err != nil {
			return err
		}
		if err := tx.AppendWalletTransaction(ctx, row); err != nil {
			return err
		}
		if err := tx.SaveWallet(ctx, w); err != nil {
			return err
		}

		earned := p.NetEarnings
		a.AgentEarnings = &earned
		a.UpdatedAt = now
		ok, err := tx.UpdateAssignment(ctx, a, domain.AssignmentDelivered)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("assignment %s changed during credit: %w", a.ID, apperr.ErrConflict)
		}

		out, balance, created = &p, w.Balance, true
		return nil
	})
	if errors.Is(err, apperr.ErrDuplicatePayout) {
		return s.storedPayout(ctx, assignmentID)
	}
	if err != nil {
		return nil, err
	}

	if created {
		if s.credits != nil {
			s.credits.Inc()
		}
		s.logger.Info("wallet credited",
			logx.String("event", "wallet_credited"),
			logx.String("assignment_id", out.AssignmentID),
			logx.String("agent_id", out.AgentID),
			logx.Money("amount", out.NetEarnings),
			logx.Money("balance", balance),
			logx.Int("bonuses", len(out.Bonuses)),
		)
		if s.notifier != nil {
			s.notifier.Notify(ctx, notify.Message{
				Kind:         notify.KindPaymentCredited,
				Recipient:    out.AgentID,
				AssignmentID: out.AssignmentID,
				OrderID:      out.OrderID,
				Text:         fmt.Sprintf("%s credited to your wallet", out.NetEarnings.StringFixed(2)),
				Data: map[string]string{
					"amount":  out.NetEarnings.StringFixed(2),
					"balance": balance.StringFixed(2),
				},
			})
		}
	}
	return out, nil
}

func (s *Service) storedPayout(ctx context.Context, assignmentID string) (*domain.AgentPayout, error) {
	var out *domain.AgentPayout
	err := s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		p, err := tx.GetAgentPayout(ctx, assignmentID)
		out = p
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

// Payout returns the stored payout of an assignment.
func (s *Service) Payout(ctx context.Context, assignmentID string) (*domain.AgentPayout, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.storedPayout(ctx, assignmentID)
}

func canSeeWallet(actor domain.Actor, agentID string) bool {
	if actor.Role.Can(domain.CapViewFinance) {
		return true
	}
	return actor.Role == domain.RoleAgent && actor.ID == agentID
}

// Wallet returns the agent's wallet. An agent with no earnings yet gets an empty wallet.
func (s *Service) Wallet(ctx context.Context, actor domain.Actor, agentID string) (WalletView, error) {
	if !canSeeWallet(actor, agentID) {
		return WalletView{}, apperr.ErrForbidden
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var view WalletView
	err := s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		w, err := tx.GetWallet(ctx, agentID)
		if err != nil {
			return err
		}
		if w == nil {
			view.Wallet = *domain.NewWallet(agentID, s.now())
			view.Transactions = []domain.WalletTransaction{}
			return nil
		}
		view.Wallet = *w
		view.Transactions, err = tx.ListWalletTransactions(ctx, agentID, recentTransactions)
		return err
	})
	if err != nil {
		return WalletView{}, err
	}
	return view, nil
}

// Withdraw debits the wallet for a bank transfer request.
func (s *Service) Withdraw(ctx context.Context, actor domain.Actor, agentID string, amount decimal.Decimal) (*domain.WalletTransaction, error) {
	if !actor.Role.Can(domain.CapWithdraw) || actor.ID != agentID {
		return nil, apperr.ErrForbidden
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("withdrawal amount must be positive: %w", apperr.ErrInvalid)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	settings, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}
	limits := settings.AgentPayouts
	if amount.LessThan(limits.MinimumWithdrawal) {
		return nil, fmt.Errorf("minimum withdrawal amount is %s: %w", limits.MinimumWithdrawal.StringFixed(2), apperr.ErrInvalid)
	}

	var out domain.WalletTransaction
	var balance decimal.Decimal
	err = s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		w, err := tx.GetWallet(ctx, agentID)
		if err != nil {
			return err
		}
		if w == nil || w.Balance.LessThan(amount) {
			return apperr.ErrInsufficientFunds
		}

		now := s.now()
		if limits.DailyWithdrawalLimit.IsPositive() {
			y, m, d := now.Date()
			used, err := tx.SumWithdrawalsSince(ctx, agentID, time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
			if err != nil {
				return err
			}
			if used.Add(amount).GreaterThan(limits.DailyWithdrawalLimit) {
				return fmt.Errorf("daily withdrawal limit %s reached: %w", limits.DailyWithdrawalLimit.StringFixed(2), apperr.ErrInvalid)
			}
		}

		out = w.Withdraw(uuid.NewString(), amount, uuid.NewString(), "Bank withdrawal request", now)
		if err := tx.AppendWalletTransaction(ctx, out); err != nil {
			return err
		}
		balance = w.Balance
		return tx.SaveWallet(ctx, w)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("withdrawal requested",
		logx.String("event", "wallet_withdrawn"),
		logx.String("agent_id", agentID),
		logx.Money("amount", amount),
		logx.Money("balance", balance),
	)
	return &out, nil
}

// Reconcile compares the wallet balance with the sum of its ledger rows.
func (s *Service) Reconcile(ctx context.Context, actor domain.Actor, agentID string) (domain.Reconciliation, error) {
	if !actor.Role.Can(domain.CapViewFinance) {
		return domain.Reconciliation{}, apperr.ErrForbidden
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rec := domain.Reconciliation{AgentID: agentID, Balance: decimal.Zero}
	err := s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		w, err := tx.GetWallet(ctx, agentID)
		if err != nil {
			return err
		}
		if w != nil {
			rec.Balance = w.Balance
		}
		rec.LedgerSum, rec.Transactions, err = tx.SumWalletTransactions(ctx, agentID)
		return err
	})
	if err != nil {
		return domain.Reconciliation{}, err
	}

	rec.Balanced = rec.Balance.Equal(rec.LedgerSum)
	if !rec.Balanced {
		s.logger.Warn("wallet out of balance",
			logx.String("event", "wallet_unbalanced"),
			logx.String("agent_id", agentID),
			logx.Money("balance", rec.Balance),
			logx.Money("ledger_sum", rec.LedgerSum),
		)
	}
	return rec, nil
}
