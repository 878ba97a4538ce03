package httpx

import (
	"encoding/json"
	"net/http"
	"strings"
)

type APIError struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, code int, msg string) {
	WriteJSON(w, code, APIError{Error: msg})
}

func WriteErrorDetail(w http.ResponseWriter, code int, msg, detail string) {
	WriteJSON(w, code, APIError{Error: msg, Detail: detail})
}

func SafeErrMsg(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// ExtractBearer pulls the token out of an Authorization header.
func ExtractBearer(authz string) (string, bool) {
	const prefix = "Bearer "
	if len(authz) <= len(prefix) || !strings.EqualFold(authz[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(authz[len(prefix):]), true
}
