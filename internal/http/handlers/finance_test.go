package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daycare-dispatch/internal/apperr"
	"daycare-dispatch/internal/domain"
)

func newFinanceHandler(t *testing.T) (*FinanceHandler, *MockcommissionUsecase, *MockpayoutUsecase) {
	t.Helper()
	ctrl := gomock.NewController(t)
	c := NewMockcommissionUsecase(ctrl)
	p := NewMockpayoutUsecase(ctrl)
	return NewFinanceHandler(nil, c, p), c, p
}

func TestFinanceHandler_RecordCommission(t *testing.T) {
	t.Parallel()

	h, c, _ := newFinanceHandler(t)
	c.EXPECT().RecordForOrder(gomock.Any(), adminActor, "ord-1").Return(&domain.CommissionRecord{
		ID:      "com-1",
		OrderID: "ord-1",
		Vendors: []domain.VendorCommission{{
			VendorID:   "vendor-1",
			Sales:      decimal.NewFromInt(1000),
			Rate:       decimal.NewFromInt(10),
			Commission: decimal.NewFromInt(100),
			NetPayout:  decimal.NewFromInt(900),
		}},
		TotalRevenue: decimal.NewFromInt(110),
		Status:       domain.CommissionPending,
	}, nil)

	req := newRequest(http.MethodPost, "/orders/ord-1/commission", "", &adminActor, map[string]string{"id": "ord-1"})
	rr := httptest.NewRecorder()
	h.RecordCommission(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got commissionDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	require.Len(t, got.Vendors, 1)
	assert.True(t, got.Vendors[0].NetPayout.Equal(decimal.NewFromInt(900)))
	assert.Equal(t, domain.CommissionPending, got.Status)
}

func TestFinanceHandler_Commission_NotFound(t *testing.T) {
	t.Parallel()

	h, c, _ := newFinanceHandler(t)
	c.EXPECT().Get(gomock.Any(), vendorActor, "ord-404").Return(nil, apperr.ErrNotFound)

	req := newRequest(http.MethodGet, "/orders/ord-404/commission", "", &vendorActor, map[string]string{"id": "ord-404"})
	rr := httptest.NewRecorder()
	h.Commission(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestFinanceHandler_Summary_ParsesDates(t *testing.T) {
	t.Parallel()

	h, c, _ := newFinanceHandler(t)
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 1, 12, 30, 0, 0, time.UTC)
	c.EXPECT().Summary(gomock.Any(), adminActor, from, to).Return(domain.CommissionSummary{
		Orders:       2,
		TotalRevenue: decimal.NewFromInt(220),
		ByMonth:      []domain.MonthlyRevenue{{Month: "2025-01", Orders: 2, Revenue: decimal.NewFromInt(220)}},
	}, nil)

	req := newRequest(http.MethodGet, "/commissions/summary?from=2025-01-01&to=2025-02-01T12:30:00Z", "", &adminActor, nil)
	rr := httptest.NewRecorder()
	h.Summary(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got commissionSummaryDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, 2, got.Orders)
	require.Len(t, got.ByMonth, 1)
	assert.Equal(t, "2025-01", got.ByMonth[0].Month)
}

func TestFinanceHandler_Summary_BadDate(t *testing.T) {
	t.Parallel()

	h, _, _ := newFinanceHandler(t)
	req := newRequest(http.MethodGet, "/commissions/summary?from=yesterday", "", &adminActor, nil)
	rr := httptest.NewRecorder()
	h.Summary(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"invalid from"}`, rr.Body.String())
}

func TestFinanceHandler_VendorPayouts(t *testing.T) {
	t.Parallel()

	h, _, p := newFinanceHandler(t)
	p.EXPECT().ListByVendor(gomock.Any(), vendorActor, "vendor-1").Return([]domain.VendorPayout{{
		ID:       "vp-1",
		VendorID: "vendor-1",
		Batch:    "BATCH-2025-W11",
		Lines:    []domain.PayoutLine{{OrderID: "ord-1", Gross: decimal.NewFromInt(1000), Fee: decimal.NewFromInt(100), Net: decimal.NewFromInt(900)}},
		TotalNet: decimal.NewFromInt(900),
		Status:   domain.PayoutScheduled,
	}}, nil)

	req := newRequest(http.MethodGet, "/vendors/vendor-1/payouts", "", &vendorActor, map[string]string{"id": "vendor-1"})
	rr := httptest.NewRecorder()
	h.VendorPayouts(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got []vendorPayoutDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "BATCH-2025-W11", got[0].Batch)
	require.Len(t, got[0].Lines, 1)
}

func TestFinanceHandler_ProcessDue_Forbidden(t *testing.T) {
	t.Parallel()

	h, _, p := newFinanceHandler(t)
	p.EXPECT().ProcessDue(gomock.Any(), vendorActor).Return(nil, apperr.ErrForbidden)

	req := newRequest(http.MethodPost, "/payouts/process-due", "", &vendorActor, nil)
	rr := httptest.NewRecorder()
	h.ProcessDue(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestFinanceHandler_CompleteAndFail(t *testing.T) {
	t.Parallel()

	h, _, p := newFinanceHandler(t)
	p.EXPECT().Complete(gomock.Any(), adminActor, "vp-1", "TRF-77").
		Return(&domain.VendorPayout{ID: "vp-1", Status: domain.PayoutCompleted, TransferRef: "TRF-77"}, nil)
	p.EXPECT().Fail(gomock.Any(), adminActor, "vp-2", "bank rejected").
		Return(nil, apperr.ErrInvalidTransition)

	req := newRequest(http.MethodPost, "/payouts/vp-1/complete", `{"transfer_ref":"TRF-77"}`, &adminActor, map[string]string{"id": "vp-1"})
	rr := httptest.NewRecorder()
	h.CompletePayout(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var got vendorPayoutDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, domain.PayoutCompleted, got.Status)

	req = newRequest(http.MethodPost, "/payouts/vp-2/fail", `{"reason":"bank rejected"}`, &adminActor, map[string]string{"id": "vp-2"})
	rr = httptest.NewRecorder()
	h.FailPayout(rr, req)
	assert.Equal(t, http.StatusConflict, rr.Code)
}
