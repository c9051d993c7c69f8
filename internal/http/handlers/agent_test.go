package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daycare-dispatch/internal/apperr"
	"daycare-dispatch/internal/domain"
	"daycare-dispatch/internal/service/ledger"
)

type stubAgentUsecase struct {
	createFn func(ctx context.Context, actor domain.Actor, a *domain.Agent) (*domain.Agent, error)
	getFn    func(ctx context.Context, actor domain.Actor, id string) (*domain.Agent, error)
	listFn   func(ctx context.Context, actor domain.Actor, limit, offset *int) ([]domain.Agent, error)
	updateFn func(ctx context.Context, actor domain.Actor, u domain.PartialAgentUpdate) (*domain.Agent, error)
}

func (s *stubAgentUsecase) Create(ctx context.Context, actor domain.Actor, a *domain.Agent) (*domain.Agent, error) {
	if s.createFn == nil {
		panic("Create not expected in this test")
	}
	return s.createFn(ctx, actor, a)
}

func (s *stubAgentUsecase) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Agent, error) {
	if s.getFn == nil {
		panic("Get not expected in this test")
	}
	return s.getFn(ctx, actor, id)
}

func (s *stubAgentUsecase) List(ctx context.Context, actor domain.Actor, limit, offset *int) ([]domain.Agent, error) {
	if s.listFn == nil {
		panic("List not expected in this test")
	}
	return s.listFn(ctx, actor, limit, offset)
}

func (s *stubAgentUsecase) UpdatePartial(ctx context.Context, actor domain.Actor, u domain.PartialAgentUpdate) (*domain.Agent, error) {
	if s.updateFn == nil {
		panic("UpdatePartial not expected in this test")
	}
	return s.updateFn(ctx, actor, u)
}

type stubWalletUsecase struct {
	walletFn    func(ctx context.Context, actor domain.Actor, agentID string) (ledger.WalletView, error)
	withdrawFn  func(ctx context.Context, actor domain.Actor, agentID string, amount decimal.Decimal) (*domain.WalletTransaction, error)
	reconcileFn func(ctx context.Context, actor domain.Actor, agentID string) (domain.Reconciliation, error)
}

func (s *stubWalletUsecase) Wallet(ctx context.Context, actor domain.Actor, agentID string) (ledger.WalletView, error) {
	if s.walletFn == nil {
		panic("Wallet not expected in this test")
	}
	return s.walletFn(ctx, actor, agentID)
}

func (s *stubWalletUsecase) Withdraw(ctx context.Context, actor domain.Actor, agentID string, amount decimal.Decimal) (*domain.WalletTransaction, error) {
	if s.withdrawFn == nil {
		panic("Withdraw not expected in this test")
	}
	return s.withdrawFn(ctx, actor, agentID, amount)
}

func (s *stubWalletUsecase) Reconcile(ctx context.Context, actor domain.Actor, agentID string) (domain.Reconciliation, error) {
	if s.reconcileFn == nil {
		panic("Reconcile not expected in this test")
	}
	return s.reconcileFn(ctx, actor, agentID)
}

func TestAgentHandler_Create_OK(t *testing.T) {
	t.Parallel()

	agents := &stubAgentUsecase{
		createFn: func(_ context.Context, actor domain.Actor, a *domain.Agent) (*domain.Agent, error) {
			require.Equal(t, adminActor, actor)
			require.Equal(t, "Ana", a.Name)
			require.Equal(t, []string{"Downtown"}, a.Zones)
			out := *a
			out.ID = "agent-9"
			out.Active = true
			return &out, nil
		},
	}
	h := NewAgentHandler(nil, agents, &stubWalletUsecase{})

	body := `{"name":"Ana","phone":"+15550001","zones":["Downtown"],"max_concurrent":2}`
	req := newRequest(http.MethodPost, "/agents", body, &adminActor, nil)
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "/agents/agent-9", rr.Header().Get("Location"))

	var got agentDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, "agent-9", got.ID)
	assert.Equal(t, 2, got.MaxConcurrent)
}

func TestAgentHandler_Create_Conflict(t *testing.T) {
	t.Parallel()

	agents := &stubAgentUsecase{
		createFn: func(context.Context, domain.Actor, *domain.Agent) (*domain.Agent, error) {
			return nil, apperr.ErrConflict
		},
	}
	h := NewAgentHandler(nil, agents, &stubWalletUsecase{})

	req := newRequest(http.MethodPost, "/agents", `{"name":"Ana","phone":"+15550001","zones":["Downtown"]}`, &adminActor, nil)
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestAgentHandler_List_Pagination(t *testing.T) {
	t.Parallel()

	agents := &stubAgentUsecase{
		listFn: func(_ context.Context, _ domain.Actor, limit, offset *int) ([]domain.Agent, error) {
			require.NotNil(t, limit)
			require.Equal(t, 5, *limit)
			require.Nil(t, offset)
			return []domain.Agent{{ID: "agent-1"}}, nil
		},
	}
	h := NewAgentHandler(nil, agents, &stubWalletUsecase{})

	req := newRequest(http.MethodGet, "/agents?limit=5", "", &adminActor, nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got []agentDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, []string{}, got[0].Zones)
}

func TestAgentHandler_Update_SelfAvailability(t *testing.T) {
	t.Parallel()

	agents := &stubAgentUsecase{
		updateFn: func(_ context.Context, actor domain.Actor, u domain.PartialAgentUpdate) (*domain.Agent, error) {
			require.Equal(t, agentActor, actor)
			require.Equal(t, "agent-1", u.ID)
			require.NotNil(t, u.Availability)
			require.Equal(t, domain.AvailabilityAvailable, *u.Availability)
			require.Nil(t, u.Name)
			return &domain.Agent{ID: "agent-1", Availability: *u.Availability}, nil
		},
	}
	h := NewAgentHandler(nil, agents, &stubWalletUsecase{})

	req := newRequest(http.MethodPatch, "/agents/agent-1", `{"availability":"available"}`, &agentActor, map[string]string{"id": "agent-1"})
	rr := httptest.NewRecorder()
	h.Update(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
}

func TestAgentHandler_Get_Forbidden(t *testing.T) {
	t.Parallel()

	agents := &stubAgentUsecase{
		getFn: func(context.Context, domain.Actor, string) (*domain.Agent, error) {
			return nil, apperr.ErrForbidden
		},
	}
	h := NewAgentHandler(nil, agents, &stubWalletUsecase{})

	req := newRequest(http.MethodGet, "/agents/agent-2", "", &agentActor, map[string]string{"id": "agent-2"})
	rr := httptest.NewRecorder()
	h.Get(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestAgentHandler_Wallet(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	wallets := &stubWalletUsecase{
		walletFn: func(_ context.Context, _ domain.Actor, agentID string) (ledger.WalletView, error) {
			w := domain.NewWallet(agentID, now)
			tx := w.Credit("tx-1", decimal.RequireFromString("45"), "asg-1", "Delivery", now)
			return ledger.WalletView{Wallet: *w, Transactions: []domain.WalletTransaction{tx}}, nil
		},
	}
	h := NewAgentHandler(nil, &stubAgentUsecase{}, wallets)

	req := newRequest(http.MethodGet, "/agents/agent-1/wallet", "", &agentActor, map[string]string{"id": "agent-1"})
	rr := httptest.NewRecorder()
	h.Wallet(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got walletDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.True(t, got.Balance.Equal(decimal.RequireFromString("45")))
	require.Len(t, got.Transactions, 1)
	assert.Equal(t, domain.WalletTxCredit, got.Transactions[0].Type)
}

func TestAgentHandler_Withdraw(t *testing.T) {
	t.Parallel()

	t.Run("created", func(t *testing.T) {
		t.Parallel()

		wallets := &stubWalletUsecase{
			withdrawFn: func(_ context.Context, _ domain.Actor, agentID string, amount decimal.Decimal) (*domain.WalletTransaction, error) {
				require.Equal(t, "agent-1", agentID)
				require.True(t, amount.Equal(decimal.RequireFromString("20.50")))
				return &domain.WalletTransaction{ID: "tx-2", Type: domain.WalletTxWithdrawal, Amount: amount.Neg()}, nil
			},
		}
		h := NewAgentHandler(nil, &stubAgentUsecase{}, wallets)

		req := newRequest(http.MethodPost, "/agents/agent-1/withdrawals", `{"amount":"20.50"}`, &agentActor, map[string]string{"id": "agent-1"})
		rr := httptest.NewRecorder()
		h.Withdraw(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		t.Parallel()

		wallets := &stubWalletUsecase{
			withdrawFn: func(context.Context, domain.Actor, string, decimal.Decimal) (*domain.WalletTransaction, error) {
				return nil, apperr.ErrInsufficientFunds
			},
		}
		h := NewAgentHandler(nil, &stubAgentUsecase{}, wallets)

		req := newRequest(http.MethodPost, "/agents/agent-1/withdrawals", `{"amount":500}`, &agentActor, map[string]string{"id": "agent-1"})
		rr := httptest.NewRecorder()
		h.Withdraw(rr, req)

		require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})
}

func TestAgentHandler_Reconcile(t *testing.T) {
	t.Parallel()

	wallets := &stubWalletUsecase{
		reconcileFn: func(_ context.Context, _ domain.Actor, agentID string) (domain.Reconciliation, error) {
			return domain.Reconciliation{AgentID: agentID, Balance: decimal.NewFromInt(10), LedgerSum: decimal.NewFromInt(10), Transactions: 2, Balanced: true}, nil
		},
	}
	h := NewAgentHandler(nil, &stubAgentUsecase{}, wallets)

	req := newRequest(http.MethodGet, "/agents/agent-1/wallet/reconcile", "", &adminActor, map[string]string{"id": "agent-1"})
	rr := httptest.NewRecorder()
	h.Reconcile(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got reconciliationDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.True(t, got.Balanced)
	assert.Equal(t, 2, got.Transactions)
}
