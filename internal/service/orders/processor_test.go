package orders_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"daycare-dispatch/internal/apperr"
	"daycare-dispatch/internal/domain"
	"daycare-dispatch/internal/logx"
	"daycare-dispatch/internal/ports/dispatchtx"
	"daycare-dispatch/internal/repository/memory"
	"daycare-dispatch/internal/service/dispatch"
	"daycare-dispatch/internal/service/orders"
)

var system = domain.SystemActor

func snapshot() (*domain.Order, []domain.Vendor) {
	o := &domain.Order{
		ID: "order-1",
		Items: []domain.OrderItem{
			{VendorID: "v1", Item: domain.Item{ProductID: "p1", Price: decimal.NewFromInt(10), Quantity: 1}},
			{VendorID: "v2", Item: domain.Item{ProductID: "p2", Price: decimal.NewFromInt(20), Quantity: 1}},
		},
	}
	return o, []domain.Vendor{{ID: "v1", Name: "One"}, {ID: "v2", Name: "Two"}}
}

func TestProcessor_Handle_Confirmed_DispatchesEveryVendor(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := NewMockDispatchPort(ctrl)
	c := NewMockCommissionPort(ctrl)
	repo := memory.New()
	p := orders.NewProcessor(d, c, repo, logx.Nop())

	o, vendors := snapshot()
	gomock.InOrder(
		c.EXPECT().RecordForOrder(gomock.Any(), system, "order-1").Return(&domain.CommissionRecord{}, nil),
		d.EXPECT().CreateAssignment(gomock.Any(), system, "order-1", "v1").
			Return(&domain.Assignment{ID: "a1", Status: domain.AssignmentPending}, nil),
		d.EXPECT().AutoAssign(gomock.Any(), system, "a1").
			Return(dispatch.Result{Outcome: dispatch.OutcomeAssigned}, nil),
		d.EXPECT().CreateAssignment(gomock.Any(), system, "order-1", "v2").
			Return(&domain.Assignment{ID: "a2", Status: domain.AssignmentPending}, nil),
		d.EXPECT().AutoAssign(gomock.Any(), system, "a2").
			Return(dispatch.Result{Outcome: dispatch.OutcomeNoCandidates}, nil),
	)

	err := p.Handle(context.Background(), orders.Event{
		OrderID:   "order-1",
		Status:    "  CONFIRMED ",
		CreatedAt: time.Now(),
		Order:     o,
		Vendors:   vendors,
	})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		got, err := tx.GetOrder(ctx, "order-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		v, err := tx.GetVendor(ctx, "v2")
		require.NoError(t, err)
		require.Equal(t, "Two", v.Name)
		return nil
	}))
}

func TestProcessor_Handle_Confirmed_SingleVendorAlreadyAssigned(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := NewMockDispatchPort(ctrl)
	c := NewMockCommissionPort(ctrl)
	r := NewMockTxRunner(ctrl)
	p := orders.NewProcessor(d, c, r, nil)

	c.EXPECT().RecordForOrder(gomock.Any(), system, "order-1").Return(&domain.CommissionRecord{}, nil)
	d.EXPECT().CreateAssignment(gomock.Any(), system, "order-1", "v1").
		Return(&domain.Assignment{ID: "a1", Status: domain.AssignmentAssigned}, nil)

	err := p.Handle(context.Background(), orders.Event{OrderID: "order-1", VendorID: "v1", Status: "confirmed"})
	require.NoError(t, err)
}

func TestProcessor_Handle_Confirmed_RaceOnAutoAssignIsIgnored(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := NewMockDispatchPort(ctrl)
	c := NewMockCommissionPort(ctrl)
	p := orders.NewProcessor(d, c, NewMockTxRunner(ctrl), nil)

	c.EXPECT().RecordForOrder(gomock.Any(), system, "order-1").Return(&domain.CommissionRecord{}, nil)
	d.EXPECT().CreateAssignment(gomock.Any(), system, "order-1", "v1").
		Return(&domain.Assignment{ID: "a1", Status: domain.AssignmentPending}, nil)
	d.EXPECT().AutoAssign(gomock.Any(), system, "a1").
		Return(dispatch.Result{}, apperr.ErrInvalidTransition)

	err := p.Handle(context.Background(), orders.Event{OrderID: "order-1", VendorID: "v1", Status: "confirmed"})
	require.NoError(t, err)
}

func TestProcessor_Handle_Confirmed_UnknownOrder(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := NewMockDispatchPort(ctrl)
	c := NewMockCommissionPort(ctrl)
	p := orders.NewProcessor(d, c, memory.New(), nil)

	c.EXPECT().RecordForOrder(gomock.Any(), system, "order-9").Return(nil, apperr.ErrNotFound)

	err := p.Handle(context.Background(), orders.Event{OrderID: "order-9", Status: "confirmed"})
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestProcessor_Handle_Confirmed_CreateErrorReturned(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := NewMockDispatchPort(ctrl)
	c := NewMockCommissionPort(ctrl)
	p := orders.NewProcessor(d, c, NewMockTxRunner(ctrl), nil)

	wantErr := errors.New("boom")
	c.EXPECT().RecordForOrder(gomock.Any(), system, "order-1").Return(&domain.CommissionRecord{}, nil)
	d.EXPECT().CreateAssignment(gomock.Any(), system, "order-1", "v1").Return(nil, wantErr)

	err := p.Handle(context.Background(), orders.Event{OrderID: "order-1", VendorID: "v1", Status: "confirmed"})
	require.ErrorIs(t, err, wantErr)
}

func TestProcessor_Handle_Created_StoresSnapshotOnly(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := NewMockTxRunner(ctrl)
	p := orders.NewProcessor(NewMockDispatchPort(ctrl), NewMockCommissionPort(ctrl), r, nil)

	wantErr := errors.New("db down")
	r.EXPECT().WithTx(gomock.Any(), gomock.Any()).Return(wantErr)

	o, vendors := snapshot()
	err := p.Handle(context.Background(), orders.Event{OrderID: "order-1", Status: "created", Order: o, Vendors: vendors})
	require.ErrorIs(t, err, wantErr)

	// no snapshot, nothing to do
	err = p.Handle(context.Background(), orders.Event{OrderID: "order-1", Status: "updated"})
	require.NoError(t, err)
}

func TestProcessor_Handle_SnapshotMismatch(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p := orders.NewProcessor(NewMockDispatchPort(ctrl), NewMockCommissionPort(ctrl), NewMockTxRunner(ctrl), nil)

	o, _ := snapshot()
	err := p.Handle(context.Background(), orders.Event{OrderID: "order-2", Status: "created", Order: o})
	require.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestProcessor_Handle_Canceled_FailsOpenAssignments(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := NewMockDispatchPort(ctrl)
	p := orders.NewProcessor(d, NewMockCommissionPort(ctrl), NewMockTxRunner(ctrl), nil)

	d.EXPECT().List(gomock.Any(), system, domain.AssignmentFilter{OrderID: "order-2"}).Return([]domain.Assignment{
		{ID: "a1", Status: domain.AssignmentAssigned},
		{ID: "a2", Status: domain.AssignmentDelivered},
		{ID: "a3", Status: domain.AssignmentPending},
	}, nil)
	d.EXPECT().Fail(gomock.Any(), system, "a1", "order cancelled").Return(&domain.Assignment{}, nil)
	d.EXPECT().Fail(gomock.Any(), system, "a3", "order cancelled").Return(nil, apperr.ErrInvalidTransition)

	err := p.Handle(context.Background(), orders.Event{OrderID: "order-2", Status: "cancelled"})
	require.NoError(t, err)
}

func TestProcessor_Handle_UnknownStatus_NoOps(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p := orders.NewProcessor(NewMockDispatchPort(ctrl), NewMockCommissionPort(ctrl), NewMockTxRunner(ctrl), nil)

	err := p.Handle(context.Background(), orders.Event{OrderID: "order-5", Status: "cooking"})
	require.NoError(t, err)
}
