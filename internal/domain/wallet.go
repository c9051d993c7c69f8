package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletTxType classifies a wallet ledger row.
type WalletTxType string

// Wallet transaction types.
const (
	WalletTxCredit     WalletTxType = "credit"
	WalletTxWithdrawal WalletTxType = "withdrawal"
)

// Wallet is an agent's running balance. Rows in the transaction log are the
// source of truth: Balance always equals the sum of their Amount deltas.
type Wallet struct {
	AgentID        string
	Balance        decimal.Decimal
	TotalEarnings  decimal.Decimal
	TotalWithdrawn decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// WalletTransaction is an append-only ledger row. Amount is a signed delta.
type WalletTransaction struct {
	ID           string
	AgentID      string
	Type         WalletTxType
	Amount       decimal.Decimal
	BalanceAfter decimal.Decimal
	SourceRef    string
	Description  string
	CreatedAt    time.Time
}

// NewWallet returns an empty wallet.
func NewWallet(agentID string, now time.Time) *Wallet {
	return &Wallet{
		AgentID:        agentID,
		Balance:        decimal.Zero,
		TotalEarnings:  decimal.Zero,
		TotalWithdrawn: decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Credit adds earnings and returns the paired ledger row.
func (w *Wallet) Credit(id string, amount decimal.Decimal, sourceRef, description string, now time.Time) WalletTransaction {
	w.Balance = w.Balance.Add(amount)
	w.TotalEarnings = w.TotalEarnings.Add(amount)
	w.UpdatedAt = now
	return WalletTransaction{
		ID:           id,
		AgentID:      w.AgentID,
		Type:         WalletTxCredit,
		Amount:       amount,
		BalanceAfter: w.Balance,
		SourceRef:    sourceRef,
		Description:  description,
		CreatedAt:    now,
	}
}

// Withdraw debits the balance and returns the paired ledger row.
// The caller checks limits and sufficiency first.
func (w *Wallet) Withdraw(id string, amount decimal.Decimal, sourceRef, description string, now time.Time) WalletTransaction {
	w.Balance = w.Balance.Sub(amount)
	w.TotalWithdrawn = w.TotalWithdrawn.Add(amount)
	w.UpdatedAt = now
	return WalletTransaction{
		ID:           id,
		AgentID:      w.AgentID,
		Type:         WalletTxWithdrawal,
		Amount:       amount.Neg(),
		BalanceAfter: w.Balance,
		SourceRef:    sourceRef,
		Description:  description,
		CreatedAt:    now,
	}
}

// Adjustment is one bonus or penalty line of an agent payout.
type Adjustment struct {
	Kind   string          `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason"`
}

// Bonus kinds.
const (
	BonusOnTime     = "on_time"
	BonusHighRating = "rating"
)

// AgentPayout is the immutable earnings breakdown of one delivered assignment.
type AgentPayout struct {
	ID             string
	AssignmentID   string
	AgentID        string
	OrderID        string
	GrossFee       decimal.Decimal
	PlatformShare  decimal.Decimal
	AgentShare     decimal.Decimal
	Bonuses        []Adjustment
	Penalties      []Adjustment
	TotalBonus     decimal.Decimal
	TotalPenalty   decimal.Decimal
	NetEarnings    decimal.Decimal
	OnTime         bool
	DeliveryTime   int
	CustomerRating *int
	TransactionID  string
	CreatedAt      time.Time
}

// Reconciliation compares a wallet balance with its ledger.
type Reconciliation struct {
	AgentID      string
	Balance      decimal.Decimal
	LedgerSum    decimal.Decimal
	Transactions int
	Balanced     bool
}
