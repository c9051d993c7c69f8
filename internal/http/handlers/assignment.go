package handlers

import (
	"net/http"
	"strings"

	"daycare-dispatch/internal/domain"
	"daycare-dispatch/internal/logx"
)

// AssignmentHandler serves the delivery assignment lifecycle.
type AssignmentHandler struct {
	uc     assignmentUsecase
	logger logx.Logger
}

// NewAssignmentHandler wires an assignment usecase into HTTP handlers.
func NewAssignmentHandler(logger logx.Logger, uc assignmentUsecase) *AssignmentHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &AssignmentHandler{uc: uc, logger: logger}
}

// Create handles POST /assignments.
func (h *AssignmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOf(h.logger, w, r)
	if !ok {
		return
	}
	var req createAssignmentRequest
	if !decodeJSON(h.logger, w, r, &req) {
		return
	}

	a, err := h.uc.CreateAssignment(r.Context(), actor, req.OrderID, req.VendorID)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", "/assignments/"+a.ID)
	writeJSON(h.logger, w, r, http.StatusCreated, assignmentToResponse(*a))
}

// List handles GET /assignments.
func (h *AssignmentHandler) List(w http.ResponseWriter, r *http.Request) {
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

	q := r.URL.Query()
	f := domain.AssignmentFilter{
		Statuses: queryStatuses(r),
		AgentID:  strings.TrimSpace(q.Get("agent_id")),
		VendorID: strings.TrimSpace(q.Get("vendor_id")),
		OrderID:  strings.TrimSpace(q.Get("order_id")),
	}
	if z := strings.TrimSpace(q.Get("zone")); z != "" {
		f.Zones = []string{z}
	}
	if limit != nil {
		f.Limit = *limit
	}
	if offset != nil {
		f.Offset = *offset
	}

	list, err := h.uc.List(r.Context(), actor, f)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, assignmentsToResponse(list))
}

// Get handles GET /assignments/{id}.
func (h *AssignmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.withAssignment(w, r, func(actor domain.Actor, id string) (*domain.Assignment, error) {
		return h.uc.Get(r.Context(), actor, id)
	})
}

// Available handles GET /assignments/available.
func (h *AssignmentHandler) Available(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOf(h.logger, w, r)
	if !ok {
		return
	}
	list, err := h.uc.ListAvailable(r.Context(), actor)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, assignmentsToResponse(list))
}

// Mine handles GET /assignments/mine.
func (h *AssignmentHandler) Mine(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOf(h.logger, w, r)
	if !ok {
		return
	}
	list, err := h.uc.ListMine(r.Context(), actor, queryStatuses(r))
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, assignmentsToResponse(list))
}

// Suggestions handles GET /assignments/{id}/suggestions.
func (h *AssignmentHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.target(w, r)
	if !ok {
		return
	}
	list, err := h.uc.SuggestAgents(r.Context(), actor, id)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, list)
}

// AutoAssign handles POST /assignments/{id}/auto-assign.
func (h *AssignmentHandler) AutoAssign(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.target(w, r)
	if !ok {
		return
	}
	res, err := h.uc.AutoAssign(r.Context(), actor, id)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, dispatchResultToResponse(res))
}

// AssignManual handles POST /assignments/{id}/assign-manual.
func (h *AssignmentHandler) AssignManual(w http.ResponseWriter, r *http.Request) {
	var req assignManualRequest
	withAssignmentBody(h, w, r, &req, func(actor domain.Actor, id string) (*domain.Assignment, error) {
		return h.uc.AssignManual(r.Context(), actor, id, req.AgentID)
	})
}

// Accept handles PUT /assignments/{id}/accept.
func (h *AssignmentHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.withAssignment(w, r, func(actor domain.Actor, id string) (*domain.Assignment, error) {
		return h.uc.Accept(r.Context(), actor, id)
	})
}

// Reject handles PUT /assignments/{id}/reject.
func (h *AssignmentHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req reasonRequest
	withAssignmentBody(h, w, r, &req, func(actor domain.Actor, id string) (*domain.Assignment, error) {
		return h.uc.Reject(r.Context(), actor, id, req.Reason)
	})
}

// Pickup handles PUT /assignments/{id}/pickup.
func (h *AssignmentHandler) Pickup(w http.ResponseWriter, r *http.Request) {
	h.withAssignment(w, r, func(actor domain.Actor, id string) (*domain.Assignment, error) {
		return h.uc.Pickup(r.Context(), actor, id)
	})
}

// Location handles PUT /assignments/{id}/location.
func (h *AssignmentHandler) Location(w http.ResponseWriter, r *http.Request) {
	var req domain.Coordinates
	withAssignmentBody(h, w, r, &req, func(actor domain.Actor, id string) (*domain.Assignment, error) {
		return h.uc.UpdateLocation(r.Context(), actor, id, req)
	})
}

// Deliver handles PUT /assignments/{id}/deliver. The rating body is optional.
func (h *AssignmentHandler) Deliver(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.target(w, r)
	if !ok {
		return
	}
	var req deliverRequest
	if !decodeOptionalJSON(h.logger, w, r, &req) {
		return
	}
	a, err := h.uc.Deliver(r.Context(), actor, id, req.Rating)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, assignmentToResponse(*a))
}

// Fail handles POST /assignments/{id}/fail.
func (h *AssignmentHandler) Fail(w http.ResponseWriter, r *http.Request) {
	var req reasonRequest
	withAssignmentBody(h, w, r, &req, func(actor domain.Actor, id string) (*domain.Assignment, error) {
		return h.uc.Fail(r.Context(), actor, id, req.Reason)
	})
}

// Settle handles POST /assignments/{id}/settle.
func (h *AssignmentHandler) Settle(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.target(w, r)
	if !ok {
		return
	}
	res, err := h.uc.Settle(r.Context(), actor, id)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, settlementToResponse(res))
}

// Tracking handles GET /assignments/{id}/tracking.
func (h *AssignmentHandler) Tracking(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.target(w, r)
	if !ok {
		return
	}
	sess, err := h.uc.Tracking(r.Context(), actor, id)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, sess)
}

// ExpireOverdue handles POST /assignments/expire-overdue.
func (h *AssignmentHandler) ExpireOverdue(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOf(h.logger, w, r)
	if !ok {
		return
	}
	n, err := h.uc.ExpireOverdue(r.Context(), actor)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, expireResultDTO{Released: n})
}

func (h *AssignmentHandler) target(w http.ResponseWriter, r *http.Request) (domain.Actor, string, bool) {
	actor, ok := actorOf(h.logger, w, r)
	if !ok {
		return domain.Actor{}, "", false
	}
	id, ok := idFromURL(r, "id")
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return domain.Actor{}, "", false
	}
	return actor, id, true
}

func (h *AssignmentHandler) withAssignment(w http.ResponseWriter, r *http.Request, fn func(domain.Actor, string) (*domain.Assignment, error)) {
	actor, id, ok := h.target(w, r)
	if !ok {
		return
	}
	h.respond(w, r, fn, actor, id)
}

func withAssignmentBody[T any](h *AssignmentHandler, w http.ResponseWriter, r *http.Request, dst *T, fn func(domain.Actor, string) (*domain.Assignment, error)) {
	actor, id, ok := h.target(w, r)
	if !ok {
		return
	}
	if !decodeJSON(h.logger, w, r, dst) {
		return
	}
	h.respond(w, r, fn, actor, id)
}

func (h *AssignmentHandler) respond(w http.ResponseWriter, r *http.Request, fn func(domain.Actor, string) (*domain.Assignment, error), actor domain.Actor, id string) {
	a, err := fn(actor, id)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	if a == nil {
		writeError(h.logger, w, r, http.StatusNotFound, "not found")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, assignmentToResponse(*a))
}
