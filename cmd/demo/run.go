package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	authz "github.com/TwigBush/authz-go"
	"github.com/TwigBush/authz-go/internal/di"
	"github.com/TwigBush/authz-go/internal/notes"
	"github.com/TwigBush/authz-go/internal/server"
	"github.com/TwigBush/authz-go/mw"
)

func Run() error {
	addr := flag.String("addr", ":8086", "listen addr")
	flag.Parse()

	engine := di.ProvideEngine()
	seed(engine)

	h := server.BuildRouter(server.Deps{
		Engine: engine,
		Store:  notes.NewStore(),
		// the demo trusts X-Subject; real deployments use mw.JWTSubject
		Subject: mw.HeaderSubject("X-Subject"),
	}, server.Options{EnableCORS: true})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var g errgroup.Group
	g.Go(func() error { return serve(ctx, *addr, h) })

	if err := g.Wait(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func serve(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: h}
	errc := make(chan error, 1)
	go func() {
		log.Printf("demo on %s", addr)
		errc <- srv.ListenAndServe()
	}()
	select {
	case <-ctx.Done():
		ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx2)
	case err := <-errc:
		return err
	}
}

// seed gives the in-memory engine something to decide about: alice
// administers everything, members work on their own notes.
func seed(engine authz.Engine) {
	ctx := context.Background()

	must(engine.AddPolicy(ctx, "admin", "NOTE", "create"))
	must(engine.AddPolicy(ctx, "admin", "NOTE", "read"))
	must(engine.AddPolicy(ctx, "admin", "NOTE"+authz.OwnSuffix, "update"))
	must(engine.AddPolicy(ctx, "admin", "NOTE"+authz.OwnSuffix, "delete"))
	must(engine.AddPolicy(ctx, "admin", "POLICY", "read"))
	must(engine.AddPolicy(ctx, "admin", "POLICY", "update"))

	must(engine.AddPolicy(ctx, "member", "NOTE", "create"))
	must(engine.AddPolicy(ctx, "member", "NOTE", "read"))
	must(engine.AddPolicy(ctx, "member", "NOTE"+authz.OwnSuffix, "update"))
	must(engine.AddPolicy(ctx, "member", "NOTE"+authz.OwnSuffix, "delete"))

	must(engine.AddRoleForUser(ctx, "alice", "admin"))
	must(engine.AddRoleForUser(ctx, "bob", "member"))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
