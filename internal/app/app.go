// Package app implements the application layer for pkgscope.
package app

import (
	"context"
	"runtime"
	"strconv"
	"sync"

	"go.trai.ch/pkgscope/internal/core/domain"
	"go.trai.ch/pkgscope/internal/core/ports"
	"go.trai.ch/pkgscope/internal/engine/resolver"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// ReaderFactory builds the manifest reader for a session. verifier is nil when
// integrity checks are disabled.
type ReaderFactory func(verifier ports.IntegrityVerifier, eager bool) ports.ManifestReader

// Options configures a resolution session.
type Options struct {
	// PolicyPath enables integrity checks against the policy manifest at this path.
	PolicyPath string
	// EagerParse materializes exports and imports when a manifest is read.
	EagerParse bool
}

// App represents the main application logic.
type App struct {
	newReader ReaderFactory
	policies  ports.PolicyLoader
	logger    ports.Logger
	telemetry ports.Telemetry

	mu       sync.Mutex
	resolver *resolver.Resolver
}

// New creates a new App instance.
func New(
	newReader ReaderFactory,
	policies ports.PolicyLoader,
	logger ports.Logger,
	telemetry ports.Telemetry,
) *App {
	return &App{
		newReader: newReader,
		policies:  policies,
		logger:    logger,
		telemetry: telemetry,
	}
}

// Configure starts a new session with an empty cache.
func (a *App) Configure(opts Options) error {
	var verifier ports.IntegrityVerifier
	if opts.PolicyPath != "" {
		v, err := a.policies.Load(opts.PolicyPath)
		if err != nil {
			return zerr.Wrap(err, "failed to load integrity policy")
		}
		verifier = v
	}

	r := resolver.NewResolver(resolver.NewCache(a.newReader(verifier, opts.EagerParse)))

	a.mu.Lock()
	a.resolver = r
	a.mu.Unlock()
	return nil
}

func (a *App) session() *resolver.Resolver {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.resolver == nil {
		a.resolver = resolver.NewResolver(resolver.NewCache(a.newReader(nil, false)))
	}
	return a.resolver
}

// PackageConfig returns the configuration of the manifest at path without walking.
func (a *App) PackageConfig(ctx context.Context, path string) (*domain.PackageConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	_, vertex := a.telemetry.Record(ctx, "config "+path)
	cfg, hit, err := a.session().Cache().Lookup(path)
	if hit {
		vertex.Cached()
	}
	vertex.Complete(err)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to load package config"), "path", path)
	}

	a.logger.Debug("package config", "path", cfg.Path(), "exists", cfg.Exists(), "cached", hit)
	return cfg, nil
}

// ScopeConfig returns the configuration of the nearest manifest governing location.
func (a *App) ScopeConfig(ctx context.Context, location string) (*domain.PackageConfig, error) {
	trace, err := a.ScopeTrace(ctx, location)
	if err != nil {
		return nil, err
	}
	return trace.Config, nil
}

// ScopeTrace is ScopeConfig that also returns the probed manifest locations.
func (a *App) ScopeTrace(ctx context.Context, location string) (domain.ScopeTrace, error) {
	if err := ctx.Err(); err != nil {
		return domain.ScopeTrace{}, err
	}

	_, vertex := a.telemetry.Record(ctx, "scope "+location)
	trace, err := a.session().ResolveScopeTrace(location)
	if err != nil {
		vertex.Complete(err)
		return domain.ScopeTrace{}, zerr.With(zerr.Wrap(err, "failed to resolve package scope"), "location", location)
	}

	for _, p := range trace.Probes {
		vertex.Log(domain.LogLevelDebug, probeLine(p))
	}
	if trace.Cached() {
		vertex.Cached()
	}
	vertex.Complete(nil)

	a.logger.Debug("package scope",
		"location", location,
		"manifest", trace.Config.Path(),
		"exists", trace.Config.Exists(),
		"termination", string(trace.Termination),
	)
	return trace, nil
}

// ScopeConfigs resolves several locations concurrently. Results are in input order.
// The first failing location cancels the rest.
func (a *App) ScopeConfigs(ctx context.Context, locations []string) ([]*domain.PackageConfig, error) {
	traces, err := a.ScopeTraces(ctx, locations)
	if err != nil {
		return nil, err
	}

	configs := make([]*domain.PackageConfig, len(traces))
	for i, t := range traces {
		configs[i] = t.Config
	}
	return configs, nil
}

// ScopeTraces is ScopeConfigs returning full traces. The walks are recorded
// under one batch vertex.
func (a *App) ScopeTraces(ctx context.Context, locations []string) ([]domain.ScopeTrace, error) {
	if len(locations) == 0 {
		return nil, domain.ErrNoLocations
	}

	ctx, batch := a.telemetry.Record(ctx, "scope "+strconv.Itoa(len(locations))+" locations")

	traces := make([]domain.ScopeTrace, len(locations))
	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, location := range locations {
		g.Go(func() error {
			trace, err := a.ScopeTrace(groupCtx, location)
			if err != nil {
				return err
			}
			traces[i] = trace
			return nil
		})
	}

	err := g.Wait()
	batch.Complete(err)
	if err != nil {
		return nil, err
	}
	return traces, nil
}

// Close flushes telemetry.
func (a *App) Close() error {
	return a.telemetry.Close()
}

func probeLine(p domain.ScopeProbe) string {
	switch {
	case p.Boundary:
		return "boundary " + p.Path.String()
	case p.Exists:
		return "found " + p.Path.String()
	default:
		return "missing " + p.Path.String()
	}
}
