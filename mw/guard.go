// Package mw contains chi-compatible middleware: the authorization guard
// plus the tracing and request-logging layers servers usually mount with it.
package mw

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	authz "github.com/TwigBush/authz-go"
	"github.com/TwigBush/authz-go/internal/httpx"
	"github.com/TwigBush/authz-go/internal/trace"
)

// SubjectFunc extracts the authenticated subject from a request. An empty
// string means the subject could not be resolved; the evaluator fails
// closed on it.
type SubjectFunc func(r *http.Request) string

// Require guards a route with a fixed requirement list.
func Require(ev *authz.Evaluator, subject SubjectFunc, perms ...authz.Permission) func(http.Handler) http.Handler {
	return guard(ev, subject, func(*http.Request) []authz.Permission { return perms })
}

// Guard resolves the operation's requirements from a registry at dispatch
// time, so declarations stay in one place.
func Guard(ev *authz.Evaluator, subject SubjectFunc, reg *authz.Registry, operation string) func(http.Handler) http.Handler {
	return guard(ev, subject, func(*http.Request) []authz.Permission { return reg.Lookup(operation) })
}

func guard(ev *authz.Evaluator, subject SubjectFunc, perms func(*http.Request) []authz.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sub := subject(r)
			rc := authz.RequestContext{Subject: sub, Params: routeParams(r)}

			allowed, err := ev.Decide(r.Context(), sub, perms(r), rc)
			if err != nil {
				// engine or predicate breakage, not a denial
				slog.Error("authz_check_failed",
					"trace", trace.From(r.Context()),
					"path", r.URL.Path,
					"err", httpx.SafeErrMsg(err),
				)
				httpx.WriteError(w, http.StatusInternalServerError, "authorization check failed")
				return
			}
			if !allowed {
				httpx.WriteError(w, http.StatusForbidden, "forbidden")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// routeParams copies chi URL params into the request context the ownership
// predicates see.
func routeParams(r *http.Request) map[string]any {
	params := make(map[string]any)
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		for i, k := range rctx.URLParams.Keys {
			params[k] = rctx.URLParams.Values[i]
		}
	}
	return params
}
