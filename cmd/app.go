package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zjrosen/enroll/internal/cachemanager"
	"github.com/zjrosen/enroll/internal/catalog"
	"github.com/zjrosen/enroll/internal/collaborator"
	"github.com/zjrosen/enroll/internal/config"
	"github.com/zjrosen/enroll/internal/enrollment"
	"github.com/zjrosen/enroll/internal/infrastructure/sqlite"
	"github.com/zjrosen/enroll/internal/log"
	"github.com/zjrosen/enroll/internal/mentor"
	"github.com/zjrosen/enroll/internal/program"
	"github.com/zjrosen/enroll/internal/tracing"

	// Register the built-in programs.
	_ "github.com/zjrosen/enroll/internal/program/builtin"
)

// app holds the wired services shared by the commands.
type app struct {
	db       *sqlite.DB
	registry *program.Registry
	service  *enrollment.Service
	catalog  *catalog.Catalog
	tracing  *tracing.Provider

	closers []func() error
}

// newApp wires the SQLite collaborators, mentor matcher, tracing and the
// program registry from cfg. Callers must Close the result.
func newApp(ctx context.Context, cfg config.Config) (_ *app, err error) {
	a := &app{}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	a.db, err = sqlite.NewDB(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, a.db.Close)

	cache, err := a.newMentorCache(cfg.Cache)
	if err != nil {
		return nil, err
	}
	matcher := mentor.NewMatcher(cfg.Mentors, a.db.MentorAssignments(), mentor.WithCache(cache, cfg.Cache.TTL))

	provisioner := a.db.Provisioner()
	deps := collaborator.Set{
		Requests:  a.db.RequestTracker(),
		Cashiers:  a.db.CashierEnrollments(),
		Registers: provisioner,
		Devices:   provisioner,
		Produce:   a.db.ContentSystem(),
		Scheduler: a.db.Scheduler(cfg.Scheduling.LeadTime),
		Mentors:   matcher,
	}

	a.tracing, err = tracing.NewProvider(ctx, cfg.Tracing)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() error {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.tracing.Shutdown(shutdownCtx)
	})

	a.registry = program.NewRegistry(deps,
		program.WithMiddleware(tracing.Middleware(a.tracing.Tracer()), program.Logging()),
	)

	a.catalog, err = catalog.Builtin()
	if err != nil {
		return nil, err
	}
	if drift := a.catalog.Check(a.registry.Programs()); !drift.Empty() {
		log.Warn(log.CatRegistry, "catalog out of sync with registry",
			"undocumented", drift.Undocumented, "unavailable", drift.Unavailable)
	}

	a.service = enrollment.NewService(a.registry)
	a.closers = append(a.closers, func() error { a.service.Close(); return nil })
	return a, nil
}

func (a *app) newMentorCache(cc config.CacheConfig) (cachemanager.CacheManager[string, string], error) {
	switch cc.Backend {
	case config.CacheRedis:
		client, err := cachemanager.Connect(cc.RedisAddr)
		if err != nil {
			return nil, fmt.Errorf("connect mentor cache: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		log.Debug(log.CatCache, "mentor cache on redis", "addr", client.Options().Addr)
		return cachemanager.NewRedisCacheManager[string, string](client, "enroll:mentor"), nil
	default:
		return cachemanager.NewInMemoryCacheManager[string, string]("mentor matches", cc.TTL, time.Minute), nil
	}
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
