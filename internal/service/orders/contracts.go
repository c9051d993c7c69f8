//go:generate mockgen -source=contracts.go -destination=orders_mocks_test.go -package=orders_test

package orders

import (
	"context"

	"daycare-dispatch/internal/domain"
	"daycare-dispatch/internal/ports/dispatchtx"
	"daycare-dispatch/internal/service/dispatch"
)

// DispatchPort abstracts the subset of dispatch engine operations
// needed by orders Processor when handling order events
type DispatchPort interface {
	CreateAssignment(ctx context.Context, actor domain.Actor, orderID, vendorID string) (*domain.Assignment, error)
	AutoAssign(ctx context.Context, actor domain.Actor, id string) (dispatch.Result, error)
	List(ctx context.Context, actor domain.Actor, f domain.AssignmentFilter) ([]domain.Assignment, error)
	Fail(ctx context.Context, actor domain.Actor, id, reason string) (*domain.Assignment, error)
}

// CommissionPort records the commission split of a confirmed order.
type CommissionPort interface {
	RecordForOrder(ctx context.Context, actor domain.Actor, orderID string) (*domain.CommissionRecord, error)
}

// TxRunner abstracts running a function within a repository transaction
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) error
}
