package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	authz "github.com/TwigBush/authz-go"
	"github.com/TwigBush/authz-go/internal/httpx"
)

// PoliciesHandler exposes the engine's policy management pass-throughs.
type PoliciesHandler struct {
	Engine authz.Manager
}

func NewPoliciesHandler(engine authz.Manager) *PoliciesHandler {
	return &PoliciesHandler{Engine: engine}
}

type policyRule struct {
	Subject  string `json:"subject"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

func (p policyRule) valid() bool {
	return p.Subject != "" && p.Resource != "" && p.Action != ""
}

func (h *PoliciesHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req policyRule
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.valid() {
		httpx.WriteError(w, http.StatusBadRequest, "missing subject, resource or action")
		return
	}
	if err := h.Engine.AddPolicy(r.Context(), req.Subject, req.Resource, req.Action); err != nil {
		writeEngineErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PoliciesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	var req policyRule
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.valid() {
		httpx.WriteError(w, http.StatusBadRequest, "missing subject, resource or action")
		return
	}
	if err := h.Engine.RemovePolicy(r.Context(), req.Subject, req.Resource, req.Action); err != nil {
		writeEngineErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PoliciesHandler) List(w http.ResponseWriter, r *http.Request) {
	rules, err := h.Engine.Policies(r.Context())
	if err != nil {
		writeEngineErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"policies": rules})
}

func (h *PoliciesHandler) Permissions(w http.ResponseWriter, r *http.Request) {
	perms, err := h.Engine.PermissionsForUser(r.Context(), chi.URLParam(r, "user"))
	if err != nil {
		writeEngineErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"permissions": perms})
}
