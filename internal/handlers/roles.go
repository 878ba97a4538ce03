package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	authz "github.com/TwigBush/authz-go"
	"github.com/TwigBush/authz-go/internal/httpx"
)

// RolesHandler exposes the engine's role management pass-throughs.
type RolesHandler struct {
	Engine authz.Manager
}

func NewRolesHandler(engine authz.Manager) *RolesHandler {
	return &RolesHandler{Engine: engine}
}

type roleGrant struct {
	User string `json:"user"`
	Role string `json:"role"`
}

func (g roleGrant) valid() bool { return g.User != "" && g.Role != "" }

func (h *RolesHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req roleGrant
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.valid() {
		httpx.WriteError(w, http.StatusBadRequest, "missing user or role")
		return
	}
	if err := h.Engine.AddRoleForUser(r.Context(), req.User, req.Role); err != nil {
		writeEngineErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RolesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	var req roleGrant
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.valid() {
		httpx.WriteError(w, http.StatusBadRequest, "missing user or role")
		return
	}
	if err := h.Engine.DeleteRoleForUser(r.Context(), req.User, req.Role); err != nil {
		writeEngineErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RolesHandler) List(w http.ResponseWriter, r *http.Request) {
	roles, err := h.Engine.RolesForUser(r.Context(), chi.URLParam(r, "user"))
	if err != nil {
		writeEngineErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"roles": roles})
}

// writeEngineErr keeps engine breakage visibly distinct from a 403.
func writeEngineErr(w http.ResponseWriter, err error) {
	var ee *authz.EngineError
	if errors.As(err, &ee) {
		httpx.WriteErrorDetail(w, http.StatusInternalServerError, "policy engine failure", ee.Op)
		return
	}
	httpx.WriteError(w, http.StatusInternalServerError, httpx.SafeErrMsg(err))
}
