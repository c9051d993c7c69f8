package handlers

import (
	"net/http"

	"daycare-dispatch/internal/domain"
	"daycare-dispatch/internal/logx"
)

// SettingsHandler serves the platform settings document.
type SettingsHandler struct {
	uc     settingsUsecase
	logger logx.Logger
}

// NewSettingsHandler wires a settings usecase into HTTP handlers.
func NewSettingsHandler(logger logx.Logger, uc settingsUsecase) *SettingsHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &SettingsHandler{uc: uc, logger: logger}
}

// Get handles GET /settings. Only admins read the full document.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOf(h.logger, w, r)
	if !ok {
		return
	}
	if !actor.Role.Can(domain.CapManageSettings) {
		writeError(h.logger, w, r, http.StatusForbidden, "forbidden")
		return
	}

	s, err := h.uc.Current(r.Context())
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, s)
}

// Update handles PUT /settings. The body replaces the whole document.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOf(h.logger, w, r)
	if !ok {
		return
	}
	var req domain.PlatformSettings
	if !decodeJSON(h.logger, w, r, &req) {
		return
	}

	s, err := h.uc.Update(r.Context(), actor, req)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, s)
}
