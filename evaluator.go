package authz

import (
	"context"
	"errors"
	"log/slog"

	"github.com/TwigBush/authz-go/internal/trace"
)

// Evaluator folds the permission requirements declared for an operation
// into a single allow/deny decision. It holds no per-request state; one
// Evaluator serves concurrent Decide calls over a shared engine.
type Evaluator struct {
	enf Enforcer
	log *slog.Logger
}

type EvaluatorOption func(*Evaluator)

// WithLogger makes the evaluator log each denied requirement.
func WithLogger(l *slog.Logger) EvaluatorOption {
	return func(e *Evaluator) { e.log = l }
}

func NewEvaluator(enf Enforcer, opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{enf: enf}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Decide reports whether subject satisfies every permission in perms, in
// declared order. An empty perms list is vacuously true. The first failed
// requirement settles the decision; later engine calls are skipped.
//
// Ownership-qualified requirements consult the engine only after IsOwn has
// proven ownership; an unproven requirement denies without an engine call.
// Engine and predicate failures propagate as *EngineError and
// *OwnershipError, never as a silent deny.
func (e *Evaluator) Decide(ctx context.Context, subject string, perms []Permission, rc RequestContext) (bool, error) {
	if len(perms) == 0 {
		// vacuous conjunction: the operation is unguarded
		return true, nil
	}

	if subject == "" {
		// an empty subject could match wildcard rules in some engine
		// configurations, so it never reaches the engine
		e.deny(ctx, subject, Permission{}, "unresolved subject")
		return false, nil
	}

	for _, p := range perms {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		if p.Possession == PossessionOwn {
			if p.IsOwn == nil {
				e.deny(ctx, subject, p, "no ownership predicate")
				return false, nil
			}
			own, err := p.IsOwn(rc)
			if err != nil {
				return false, &OwnershipError{Resource: p.Resource, Err: err}
			}
			if !own {
				e.deny(ctx, subject, p, "ownership not proven")
				return false, nil
			}
		}

		allowed, err := e.enf.Enforce(ctx, subject, p.EffectiveResource(), string(p.Action))
		if err != nil {
			var ee *EngineError
			if !errors.As(err, &ee) {
				err = &EngineError{Op: "enforce", Err: err}
			}
			return false, err
		}
		if !allowed {
			e.deny(ctx, subject, p, "no matching policy")
			return false, nil
		}
	}

	return true, nil
}

func (e *Evaluator) deny(ctx context.Context, subject string, p Permission, reason string) {
	if e.log == nil {
		return
	}
	e.log.Info("authz_deny",
		"trace", trace.From(ctx),
		"subject", subject,
		"resource", p.EffectiveResource(),
		"action", string(p.Action),
		"reason", reason,
	)
}
