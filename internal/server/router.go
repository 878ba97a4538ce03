package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	authz "github.com/TwigBush/authz-go"
	"github.com/TwigBush/authz-go/internal/handlers"
	"github.com/TwigBush/authz-go/internal/notes"
	"github.com/TwigBush/authz-go/mw"
)

type Options struct {
	EnableCORS bool
}

type Deps struct {
	Engine  authz.Engine
	Store   *notes.Store
	Subject mw.SubjectFunc
}

// Operations declares the guarded operations and their requirements. The
// registry is built once at startup; dispatch only looks requirements up.
func Operations(store *notes.Store) *authz.Registry {
	reg := authz.NewRegistry()

	reg.MustRegister("notes.create",
		authz.Permission{Action: authz.ActionCreate, Resource: "NOTE", Possession: authz.PossessionAny})
	reg.MustRegister("notes.read",
		authz.Permission{Action: authz.ActionRead, Resource: "NOTE", Possession: authz.PossessionAny})
	reg.MustRegister("notes.update",
		authz.Permission{Action: authz.ActionUpdate, Resource: "NOTE", Possession: authz.PossessionOwn, IsOwn: store.IsOwner})
	reg.MustRegister("notes.delete",
		authz.Permission{Action: authz.ActionDelete, Resource: "NOTE", Possession: authz.PossessionOwn, IsOwn: store.IsOwner})

	return reg
}

func BuildRouter(d Deps, opts Options, extra ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	// baseline
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	if opts.EnableCORS {
		r.Use(cors.Handler(cors.Options{
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	for _, m := range extra {
		r.Use(m)
	}

	// tracing + logger
	r.Use(mw.Trace())
	r.Use(mw.Logger(mw.LogOpts{
		SkipPaths:     []string{"/healthz", "/version"},
		RedactHeaders: []string{"Authorization"},
	}))

	reg := Operations(d.Store)
	ev := authz.NewEvaluator(d.Engine, authz.WithLogger(slog.Default()))

	nh := handlers.NewNotesHandler(d.Store, d.Subject)
	rh := handlers.NewRolesHandler(d.Engine)
	ph := handlers.NewPoliciesHandler(d.Engine)

	r.Get("/healthz", handlers.Healthz)
	r.Get("/version", handlers.Version)

	r.Route("/notes", func(r chi.Router) {
		r.With(mw.Guard(ev, d.Subject, reg, "notes.create")).Post("/", nh.Create)
		r.With(mw.Guard(ev, d.Subject, reg, "notes.read")).Get("/", nh.List)
		r.With(mw.Guard(ev, d.Subject, reg, "notes.read")).Get("/{id}", nh.Get)
		r.With(mw.Guard(ev, d.Subject, reg, "notes.update")).Put("/{id}", nh.Update)
		r.With(mw.Guard(ev, d.Subject, reg, "notes.delete")).Delete("/{id}", nh.Delete)
	})

	// management surface: plain pass-throughs to the engine, themselves
	// guarded by POLICY grants
	manage := authz.Permission{Action: authz.ActionUpdate, Resource: "POLICY", Possession: authz.PossessionAny}
	inspect := authz.Permission{Action: authz.ActionRead, Resource: "POLICY", Possession: authz.PossessionAny}

	r.Route("/manage", func(r chi.Router) {
		r.With(mw.Require(ev, d.Subject, manage)).Post("/roles", rh.Add)
		r.With(mw.Require(ev, d.Subject, manage)).Delete("/roles", rh.Remove)
		r.With(mw.Require(ev, d.Subject, inspect)).Get("/roles/{user}", rh.List)

		r.With(mw.Require(ev, d.Subject, manage)).Post("/policies", ph.Add)
		r.With(mw.Require(ev, d.Subject, manage)).Delete("/policies", ph.Remove)
		r.With(mw.Require(ev, d.Subject, inspect)).Get("/policies", ph.List)
		r.With(mw.Require(ev, d.Subject, inspect)).Get("/permissions/{user}", ph.Permissions)
	})

	return r
}
