package handlers

import (
	"net/http"

	"daycare-dispatch/internal/logx"
)

// AgentHandler serves delivery agent profiles and their wallets.
type AgentHandler struct {
	agents  agentUsecase
	wallets walletUsecase
	logger  logx.Logger
}

// NewAgentHandler wires the agent and wallet usecases into HTTP handlers.
func NewAgentHandler(logger logx.Logger, agents agentUsecase, wallets walletUsecase) *AgentHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &AgentHandler{agents: agents, wallets: wallets, logger: logger}
}

// Create handles POST /agents.
func (h *AgentHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOf(h.logger, w, r)
	if !ok {
		return
	}
	var req createAgentRequest
	if !decodeJSON(h.logger, w, r, &req) {
		return
	}

	a, err := h.agents.Create(r.Context(), actor, req.toModel())
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", "/agents/"+a.ID)
	writeJSON(h.logger, w, r, http.StatusCreated, agentToResponse(*a))
}

// List handles GET /agents.
func (h *AgentHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOf(h.logger, w, r)
	if !ok {
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}

	list, err := h.agents.List(r.Context(), actor, limit, offset)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, agentsToResponse(list))
}

// Get handles GET /agents/{id}.
func (h *AgentHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOf(h.logger, w, r)
	if !ok {
		return
	}
	id, ok := idFromURL(r, "id")
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	a, err := h.agents.Get(r.Context(), actor, id)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, agentToResponse(*a))
}

// Update handles PATCH /agents/{id} with partial updates from the request body.
func (h *AgentHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOf(h.logger, w, r)
	if !ok {
		return
	}
	id, ok := idFromURL(r, "id")
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req updateAgentRequest
	if !decodeJSON(h.logger, w, r, &req) {
		return
	}

	a, err := h.agents.UpdatePartial(r.Context(), actor, req.toModel(id))
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, agentToResponse(*a))
}

// Wallet handles GET /agents/{id}/wallet.
func (h *AgentHandler) Wallet(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOf(h.logger, w, r)
	if !ok {
		return
	}
	id, ok := idFromURL(r, "id")
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	v, err := h.wallets.Wallet(r.Context(), actor, id)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, walletToResponse(v))
}

// Withdraw handles POST /agents/{id}/withdrawals.
func (h *AgentHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOf(h.logger, w, r)
	if !ok {
		return
	}
	id, ok := idFromURL(r, "id")
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req withdrawRequest
	if !decodeJSON(h.logger, w, r, &req) {
		return
	}

	tx, err := h.wallets.Withdraw(r.Context(), actor, id, req.Amount)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, walletTransactionToResponse(*tx))
}

// Reconcile handles GET /agents/{id}/wallet/reconcile.
func (h *AgentHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOf(h.logger, w, r)
	if !ok {
		return
	}
	id, ok := idFromURL(r, "id")
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	rec, err := h.wallets.Reconcile(r.Context(), actor, id)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, reconciliationToResponse(rec))
}
