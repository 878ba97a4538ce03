package mw

import (
	"net/http"

	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/TwigBush/authz-go/internal/httpx"
)

// JWTSubject returns a SubjectFunc that reads the sub claim from a bearer
// token verified against keys. Missing or unverifiable tokens resolve to
// the empty subject, which the evaluator denies fail-closed.
func JWTSubject(keys jwk.Set) SubjectFunc {
	return func(r *http.Request) string {
		raw, ok := httpx.ExtractBearer(r.Header.Get("Authorization"))
		if !ok {
			return ""
		}
		tok, err := jwt.Parse([]byte(raw), jwt.WithKeySet(keys))
		if err != nil {
			return ""
		}
		sub, ok := tok.Subject()
		if !ok {
			return ""
		}
		return sub
	}
}

// HeaderSubject trusts a header set by an authenticating gateway. Only for
// deployments where the header cannot be forged by clients.
func HeaderSubject(name string) SubjectFunc {
	return func(r *http.Request) string {
		return r.Header.Get(name)
	}
}
