package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"daycare-dispatch/internal/apperr"
	"daycare-dispatch/internal/domain"
)

// GetWallet - get the agent's wallet. The agent's wallet stays locked until
// the transaction ends, including when it does not exist yet.
func (r *TxRepo) GetWallet(ctx context.Context, agentID string) (*domain.Wallet, error) {
	if _, err := r.tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended('wallet:' || $1, 0))`, agentID); err != nil {
		return nil, fmt.Errorf("lock wallet %q: %w", agentID, err)
	}

	var w domain.Wallet
	err := r.tx.QueryRow(ctx, `
        SELECT agent_id, balance, total_earnings, total_withdrawn, created_at, updated_at
        FROM wallets
        WHERE agent_id = $1
    `, agentID).Scan(&w.AgentID, &w.Balance, &w.TotalEarnings, &w.TotalWithdrawn, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet %q: %w", agentID, err)
	}
	return &w, nil
}

// SaveWallet - insert or overwrite the wallet totals.
func (r *TxRepo) SaveWallet(ctx context.Context, w *domain.Wallet) error {
	_, err := r.tx.Exec(ctx, `
        INSERT INTO wallets (agent_id, balance, total_earnings, total_withdrawn, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (agent_id) DO UPDATE SET
            balance = EXCLUDED.balance,
            total_earnings = EXCLUDED.total_earnings,
            total_withdrawn = EXCLUDED.total_withdrawn,
            updated_at = EXCLUDED.updated_at
    `, w.AgentID, w.Balance, w.TotalEarnings, w.TotalWithdrawn, w.CreatedAt, w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save wallet %q: %w", w.AgentID, err)
	}
	return nil
}

// AppendWalletTransaction - append one ledger row.
func (r *TxRepo) AppendWalletTransaction(ctx context.Context, t domain.WalletTransaction) error {
	_, err := r.tx.Exec(ctx, `
        INSERT INTO wallet_transactions (id, agent_id, type, amount, balance_after, source_ref, description, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `, t.ID, t.AgentID, t.Type, t.Amount, t.BalanceAfter, t.SourceRef, t.Description, t.CreatedAt)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("append wallet transaction: %w", err)
	}
	return nil
}

// ListWalletTransactions returns the newest rows first. limit 0 means all.
func (r *TxRepo) ListWalletTransactions(ctx context.Context, agentID string, limit int) ([]domain.WalletTransaction, error) {
	q := `
        SELECT id, agent_id, type, amount, balance_after, source_ref, description, created_at
        FROM wallet_transactions
        WHERE agent_id = $1
        ORDER BY seq DESC`
	args := []any{agentID}
	if limit > 0 {
		q += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := r.tx.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list wallet transactions %q: %w", agentID, err)
	}
	defer rows.Close()

	out := make([]domain.WalletTransaction, 0, limit)
	for rows.Next() {
		var t domain.WalletTransaction
		if err := rows.Scan(&t.ID, &t.AgentID, &t.Type, &t.Amount, &t.BalanceAfter, &t.SourceRef, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// SumWalletTransactions returns the sum of all deltas and the row count.
func (r *TxRepo) SumWalletTransactions(ctx context.Context, agentID string) (decimal.Decimal, int, error) {
	var (
		sum decimal.Decimal
		n   int
	)
	err := r.tx.QueryRow(ctx, `
        SELECT COALESCE(SUM(amount), 0), COUNT(*) FROM wallet_transactions WHERE agent_id = $1
    `, agentID).Scan(&sum, &n)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("sum wallet transactions %q: %w", agentID, err)
	}
	return sum, n, nil
}

// SumWithdrawalsSince returns the withdrawn amount (positive) since the given time.
func (r *TxRepo) SumWithdrawalsSince(ctx context.Context, agentID string, since time.Time) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.tx.QueryRow(ctx, `
        SELECT COALESCE(-SUM(amount), 0)
        FROM wallet_transactions
        WHERE agent_id = $1 AND type = 'withdrawal' AND created_at >= $2
    `, agentID, since).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum withdrawals %q: %w", agentID, err)
	}
	return sum, nil
}

const agentPayoutColumns = `
	id, assignment_id, agent_id, order_id, gross_fee, platform_share, agent_share,
	bonuses, penalties, total_bonus, total_penalty, net_earnings,
	on_time, delivery_time, customer_rating, transaction_id, created_at`

// GetAgentPayout - get the payout of an assignment.
func (r *TxRepo) GetAgentPayout(ctx context.Context, assignmentID string) (*domain.AgentPayout, error) {
	var p domain.AgentPayout
	err := r.tx.QueryRow(ctx, `SELECT `+agentPayoutColumns+` FROM agent_payouts WHERE assignment_id = $1`, assignmentID).Scan(
		&p.ID, &p.AssignmentID, &p.AgentID, &p.OrderID, &p.GrossFee, &p.PlatformShare, &p.AgentShare,
		&p.Bonuses, &p.Penalties, &p.TotalBonus, &p.TotalPenalty, &p.NetEarnings,
		&p.OnTime, &p.DeliveryTime, &p.CustomerRating, &p.TransactionID, &p.CreatedAt,
	)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get agent payout %q: %w", assignmentID, err)
	}
	return &p, nil
}

func nonNilAdjustments(a []domain.Adjustment) []domain.Adjustment {
	if a == nil {
		return []domain.Adjustment{}
	}
	return a
}

// InsertAgentPayout - insert the payout of an assignment, at most once.
func (r *TxRepo) InsertAgentPayout(ctx context.Context, p *domain.AgentPayout) error {
	_, err := r.tx.Exec(ctx, `INSERT INTO agent_payouts (`+agentPayoutColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`,
		p.ID, p.AssignmentID, p.AgentID, p.OrderID, p.GrossFee, p.PlatformShare, p.AgentShare,
		nonNilAdjustments(p.Bonuses), nonNilAdjustments(p.Penalties), p.TotalBonus, p.TotalPenalty, p.NetEarnings,
		p.OnTime, p.DeliveryTime, p.CustomerRating, p.TransactionID, p.CreatedAt,
	)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrDuplicatePayout
		}
		return fmt.Errorf("insert agent payout: %w", err)
	}
	return nil
}

