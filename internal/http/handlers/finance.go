package handlers

import (
	"net/http"
	"time"

	"daycare-dispatch/internal/logx"
)

// FinanceHandler serves commissions and vendor payouts.
type FinanceHandler struct {
	commissions commissionUsecase
	payouts     payoutUsecase
	logger      logx.Logger
}

// NewFinanceHandler wires the commission and payout usecases into HTTP handlers.
func NewFinanceHandler(logger logx.Logger, commissions commissionUsecase, payouts payoutUsecase) *FinanceHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &FinanceHandler{commissions: commissions, payouts: payouts, logger: logger}
}

// RecordCommission handles POST /orders/{id}/commission.
func (h *FinanceHandler) RecordCommission(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOf(h.logger, w, r)
	if !ok {
		return
	}
	id, ok := idFromURL(r, "id")
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	rec, err := h.commissions.RecordForOrder(r.Context(), actor, id)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, commissionToResponse(*rec))
}

// Commission handles GET /orders/{id}/commission.
func (h *FinanceHandler) Commission(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOf(h.logger, w, r)
	if !ok {
		return
	}
	id, ok := idFromURL(r, "id")
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	rec, err := h.commissions.Get(r.Context(), actor, id)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, commissionToResponse(*rec))
}

// Summary handles GET /commissions/summary?from=&to=. Dates are RFC 3339 or YYYY-MM-DD.
func (h *FinanceHandler) Summary(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOf(h.logger, w, r)
	if !ok {
		return
	}
	from, err := queryTime(r, "from")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}
	to, err := queryTime(r, "to")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}

	sum, err := h.commissions.Summary(r.Context(), actor, from, to)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, commissionSummaryToResponse(sum))
}

// VendorPayouts handles GET /vendors/{id}/payouts.
func (h *FinanceHandler) VendorPayouts(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOf(h.logger, w, r)
	if !ok {
		return
	}
	id, ok := idFromURL(r, "id")
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	list, err := h.payouts.ListByVendor(r.Context(), actor, id)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, vendorPayoutsToResponse(list))
}

// ProcessDue handles POST /payouts/process-due.
func (h *FinanceHandler) ProcessDue(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOf(h.logger, w, r)
	if !ok {
		return
	}
	list, err := h.payouts.ProcessDue(r.Context(), actor)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, vendorPayoutsToResponse(list))
}

// CompletePayout handles POST /payouts/{id}/complete.
func (h *FinanceHandler) CompletePayout(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOf(h.logger, w, r)
	if !ok {
		return
	}
	id, ok := idFromURL(r, "id")
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req completePayoutRequest
	if !decodeJSON(h.logger, w, r, &req) {
		return
	}

	p, err := h.payouts.Complete(r.Context(), actor, id, req.TransferRef)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, vendorPayoutToResponse(*p))
}

// FailPayout handles POST /payouts/{id}/fail.
func (h *FinanceHandler) FailPayout(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOf(h.logger, w, r)
	if !ok {
		return
	}
	id, ok := idFromURL(r, "id")
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req reasonRequest
	if !decodeJSON(h.logger, w, r, &req) {
		return
	}

	p, err := h.payouts.Fail(r.Context(), actor, id, req.Reason)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, vendorPayoutToResponse(*p))
}

func queryTime(r *http.Request, name string) (time.Time, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, errInvalidParam(name)
	}
	return t, nil
}
