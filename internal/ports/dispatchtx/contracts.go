package dispatchtx

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"daycare-dispatch/internal/domain"
)

// AssignmentStore persists assignments. Get methods return nil, nil when the row is missing.
type AssignmentStore interface {
	InsertAssignment(ctx context.Context, a *domain.Assignment) error
	GetAssignment(ctx context.Context, id string) (*domain.Assignment, error)
	// LockAssignment reads the row and holds it until the transaction ends.
	LockAssignment(ctx context.Context, id string) (*domain.Assignment, error)
	// UpdateAssignment writes a only if the stored status still equals expected.
	UpdateAssignment(ctx context.Context, a *domain.Assignment, expected domain.AssignmentStatus) (bool, error)
	ListAssignments(ctx context.Context, f domain.AssignmentFilter) ([]domain.Assignment, error)
	ListOverdue(ctx context.Context, now time.Time) ([]domain.Assignment, error)
}

// AgentStore persists agents and their load counters.
type AgentStore interface {
	CreateAgent(ctx context.Context, a *domain.Agent) error
	GetAgent(ctx context.Context, id string) (*domain.Agent, error)
	ListAgents(ctx context.Context, limit, offset *int) ([]domain.Agent, error)
	UpdateAgent(ctx context.Context, u domain.PartialAgentUpdate) (bool, error)
	// ListCandidates returns active, dispatchable agents covering any of zones.
	ListCandidates(ctx context.Context, zones []string) ([]domain.Agent, error)
	// ReserveAgentSlot increments the load counter and fails with
	// apperr.ErrCapacityExceeded when the result is above MaxConcurrent.
	ReserveAgentSlot(ctx context.Context, id string) error
	ReleaseAgentSlot(ctx context.Context, id string) error
	// RecordDelivery bumps the lifetime count and folds rating into the average.
	RecordDelivery(ctx context.Context, id string, rating *int) error
	UpdateAgentLocation(ctx context.Context, id string, c domain.Coordinates, at time.Time) error
}

// WalletStore persists wallets, their transaction log and agent payouts.
type WalletStore interface {
	GetWallet(ctx context.Context, agentID string) (*domain.Wallet, error)
	SaveWallet(ctx context.Context, w *domain.Wallet) error
	AppendWalletTransaction(ctx context.Context, t domain.WalletTransaction) error
	ListWalletTransactions(ctx context.Context, agentID string, limit int) ([]domain.WalletTransaction, error)
	SumWalletTransactions(ctx context.Context, agentID string) (decimal.Decimal, int, error)
	SumWithdrawalsSince(ctx context.Context, agentID string, since time.Time) (decimal.Decimal, error)
	GetAgentPayout(ctx context.Context, assignmentID string) (*domain.AgentPayout, error)
	// InsertAgentPayout fails with apperr.ErrDuplicatePayout when the assignment was already paid.
	InsertAgentPayout(ctx context.Context, p *domain.AgentPayout) error
}

// CommissionStore persists per-order commission records.
type CommissionStore interface {
	GetCommission(ctx context.Context, orderID string) (*domain.CommissionRecord, error)
	InsertCommission(ctx context.Context, r *domain.CommissionRecord) error
	SetCommissionStatus(ctx context.Context, orderID string, status domain.CommissionStatus, at time.Time) error
	ListCommissions(ctx context.Context, from, to time.Time) ([]domain.CommissionRecord, error)
}

// PayoutStore persists vendor payout batches.
type PayoutStore interface {
	// LockVendorPayouts serializes payout scheduling for a vendor until the transaction ends.
	LockVendorPayouts(ctx context.Context, vendorID string) error
	GetVendorPayout(ctx context.Context, id string) (*domain.VendorPayout, error)
	FindVendorPayout(ctx context.Context, vendorID, batch string) (*domain.VendorPayout, error)
	InsertVendorPayout(ctx context.Context, p *domain.VendorPayout) error
	UpdateVendorPayout(ctx context.Context, p *domain.VendorPayout) error
	ListVendorPayouts(ctx context.Context, vendorID string) ([]domain.VendorPayout, error)
	ListDuePayouts(ctx context.Context, now time.Time) ([]domain.VendorPayout, error)
}

// SettingsStore persists the platform settings singleton.
type SettingsStore interface {
	GetSettings(ctx context.Context) (*domain.PlatformSettings, error)
	SaveSettings(ctx context.Context, s domain.PlatformSettings) error
}

// Directory is the local copy of orders and vendors fed by the order workflow.
type Directory interface {
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	SaveOrder(ctx context.Context, o domain.Order) error
	GetVendor(ctx context.Context, id string) (*domain.Vendor, error)
	SaveVendor(ctx context.Context, v domain.Vendor) error
}

// Repository is everything reachable inside one transaction.
type Repository interface {
	AssignmentStore
	AgentStore
	WalletStore
	CommissionStore
	PayoutStore
	SettingsStore
	Directory
}

// Runner is a transaction runner
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
