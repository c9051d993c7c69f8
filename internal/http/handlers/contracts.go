package handlers

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"daycare-dispatch/internal/domain"
	"daycare-dispatch/internal/service/dispatch"
	"daycare-dispatch/internal/service/ledger"
	"daycare-dispatch/internal/service/settlement"
	"daycare-dispatch/internal/service/tracking"
)

//go:generate mockgen -source=contracts.go -destination=handlers_mocks_test.go -package=handlers

type assignmentUsecase interface {
	CreateAssignment(ctx context.Context, actor domain.Actor, orderID, vendorID string) (*domain.Assignment, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.Assignment, error)
	List(ctx context.Context, actor domain.Actor, f domain.AssignmentFilter) ([]domain.Assignment, error)
	ListAvailable(ctx context.Context, actor domain.Actor) ([]domain.Assignment, error)
	ListMine(ctx context.Context, actor domain.Actor, statuses []domain.AssignmentStatus) ([]domain.Assignment, error)
	Tracking(ctx context.Context, actor domain.Actor, id string) (tracking.Session, error)
	SuggestAgents(ctx context.Context, actor domain.Actor, id string) ([]dispatch.Suggestion, error)
	AutoAssign(ctx context.Context, actor domain.Actor, id string) (dispatch.Result, error)
	AssignManual(ctx context.Context, actor domain.Actor, id, agentID string) (*domain.Assignment, error)
	Accept(ctx context.Context, actor domain.Actor, id string) (*domain.Assignment, error)
	Reject(ctx context.Context, actor domain.Actor, id, reason string) (*domain.Assignment, error)
	Pickup(ctx context.Context, actor domain.Actor, id string) (*domain.Assignment, error)
	UpdateLocation(ctx context.Context, actor domain.Actor, id string, c domain.Coordinates) (*domain.Assignment, error)
	Deliver(ctx context.Context, actor domain.Actor, id string, rating *int) (*domain.Assignment, error)
	Fail(ctx context.Context, actor domain.Actor, id, reason string) (*domain.Assignment, error)
	Settle(ctx context.Context, actor domain.Actor, id string) (settlement.Result, error)
	ExpireOverdue(ctx context.Context, actor domain.Actor) (int, error)
}

type agentUsecase interface {
	Create(ctx context.Context, actor domain.Actor, a *domain.Agent) (*domain.Agent, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.Agent, error)
	List(ctx context.Context, actor domain.Actor, limit, offset *int) ([]domain.Agent, error)
	UpdatePartial(ctx context.Context, actor domain.Actor, u domain.PartialAgentUpdate) (*domain.Agent, error)
}

type walletUsecase interface {
	Wallet(ctx context.Context, actor domain.Actor, agentID string) (ledger.WalletView, error)
	Withdraw(ctx context.Context, actor domain.Actor, agentID string, amount decimal.Decimal) (*domain.WalletTransaction, error)
	Reconcile(ctx context.Context, actor domain.Actor, agentID string) (domain.Reconciliation, error)
}

type commissionUsecase interface {
	RecordForOrder(ctx context.Context, actor domain.Actor, orderID string) (*domain.CommissionRecord, error)
	Get(ctx context.Context, actor domain.Actor, orderID string) (*domain.CommissionRecord, error)
	Summary(ctx context.Context, actor domain.Actor, from, to time.Time) (domain.CommissionSummary, error)
}

type payoutUsecase interface {
	ProcessDue(ctx context.Context, actor domain.Actor) ([]domain.VendorPayout, error)
	Complete(ctx context.Context, actor domain.Actor, id, transferRef string) (*domain.VendorPayout, error)
	Fail(ctx context.Context, actor domain.Actor, id, reason string) (*domain.VendorPayout, error)
	ListByVendor(ctx context.Context, actor domain.Actor, vendorID string) ([]domain.VendorPayout, error)
}

type settingsUsecase interface {
	Current(ctx context.Context) (domain.PlatformSettings, error)
	Update(ctx context.Context, actor domain.Actor, s domain.PlatformSettings) (domain.PlatformSettings, error)
}
