package app_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pkgscope/internal/app"
	"go.trai.ch/pkgscope/internal/core/domain"
	"go.trai.ch/pkgscope/internal/core/ports"
	"go.trai.ch/pkgscope/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	app       *app.App
	reader    *mocks.MockManifestReader
	policies  *mocks.MockPolicyLoader
	telemetry *mocks.MockTelemetry
	vertex    *mocks.MockVertex

	gotVerifier ports.IntegrityVerifier
	gotEager    bool
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		reader:    mocks.NewMockManifestReader(ctrl),
		policies:  mocks.NewMockPolicyLoader(ctrl),
		telemetry: mocks.NewMockTelemetry(ctrl),
		vertex:    mocks.NewMockVertex(ctrl),
	}

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()

	f.telemetry.EXPECT().
		Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ctx, f.vertex
		}).
		AnyTimes()

	newReader := func(verifier ports.IntegrityVerifier, eager bool) ports.ManifestReader {
		f.gotVerifier = verifier
		f.gotEager = eager
		return f.reader
	}
	f.app = app.New(newReader, f.policies, logger, f.telemetry)
	return f
}

func found(name string) domain.ReadResult {
	return domain.FoundResult(&domain.RawManifest{Name: name})
}

func absent() domain.ReadResult {
	return domain.NotFoundResult(domain.OutcomeAbsent)
}

func TestApp_PackageConfig(t *testing.T) {
	f := newFixture(t)
	f.reader.EXPECT().Read("/proj/package.json").Return(found("app"), nil).Times(1)
	f.vertex.EXPECT().Complete(nil).Times(2)
	f.vertex.EXPECT().Cached().Times(1)

	cfg, err := f.app.PackageConfig(context.Background(), "/proj/package.json")
	require.NoError(t, err)
	assert.Equal(t, "app", cfg.Name())

	again, err := f.app.PackageConfig(context.Background(), "/proj/package.json")
	require.NoError(t, err)
	assert.Same(t, cfg, again)
}

func TestApp_PackageConfigError(t *testing.T) {
	f := newFixture(t)
	f.reader.EXPECT().Read("/proj/package.json").Return(domain.ReadResult{}, domain.ErrIntegrityViolation)
	f.vertex.EXPECT().Complete(gomock.Not(gomock.Nil())).Times(1)

	_, err := f.app.PackageConfig(context.Background(), "/proj/package.json")
	assert.ErrorIs(t, err, domain.ErrIntegrityViolation)
}

func TestApp_ScopeTrace(t *testing.T) {
	f := newFixture(t)
	gomock.InOrder(
		f.reader.EXPECT().Read("/proj/src/package.json").Return(absent(), nil),
		f.reader.EXPECT().Read("/proj/package.json").Return(found("app"), nil),
	)
	f.vertex.EXPECT().Log(domain.LogLevelDebug, "missing /proj/src/package.json")
	f.vertex.EXPECT().Log(domain.LogLevelDebug, "found /proj/package.json")
	f.vertex.EXPECT().Complete(nil)

	trace, err := f.app.ScopeTrace(context.Background(), "/proj/src/index.js")
	require.NoError(t, err)
	assert.Equal(t, "app", trace.Config.Name())
	assert.Equal(t, domain.TerminationFound, trace.Termination)
	assert.Len(t, trace.Probes, 2)
}

func TestApp_ScopeConfigCachedWalk(t *testing.T) {
	f := newFixture(t)
	f.reader.EXPECT().Read("/proj/package.json").Return(found("app"), nil).Times(1)
	f.vertex.EXPECT().Log(gomock.Any(), gomock.Any()).AnyTimes()
	f.vertex.EXPECT().Complete(nil).Times(2)
	f.vertex.EXPECT().Cached().Times(1)

	first, err := f.app.ScopeConfig(context.Background(), "/proj/a.js")
	require.NoError(t, err)
	second, err := f.app.ScopeConfig(context.Background(), "/proj/b.js")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestApp_ScopeConfigInvalidLocation(t *testing.T) {
	f := newFixture(t)
	f.vertex.EXPECT().Complete(gomock.Not(gomock.Nil()))

	_, err := f.app.ScopeConfig(context.Background(), "https://example.com/x.js")
	assert.ErrorIs(t, err, domain.ErrInvalidLocation)
}

func TestApp_ScopeConfigCanceled(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.app.ScopeConfig(ctx, "/proj/a.js")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestApp_ScopeConfigs(t *testing.T) {
	f := newFixture(t)
	f.reader.EXPECT().
		Read(gomock.Any()).
		DoAndReturn(func(path string) (domain.ReadResult, error) {
			switch path {
			case "/proj/package.json":
				return found("app"), nil
			case "/proj/pkg/package.json":
				return found("pkg"), nil
			default:
				return absent(), nil
			}
		}).
		AnyTimes()
	f.vertex.EXPECT().Log(gomock.Any(), gomock.Any()).AnyTimes()
	f.vertex.EXPECT().Cached().AnyTimes()
	f.vertex.EXPECT().Complete(nil).AnyTimes()

	locations := []string{"/proj/src/a.js", "/proj/pkg/lib/b.js", "/proj/c.js", "/proj/pkg/d.js"}
	configs, err := f.app.ScopeConfigs(context.Background(), locations)
	require.NoError(t, err)
	require.Len(t, configs, len(locations))

	names := make([]string, len(configs))
	for i, cfg := range configs {
		names[i] = cfg.Name()
	}
	assert.Equal(t, []string{"app", "pkg", "app", "pkg"}, names)
}

func TestApp_ScopeConfigsStopsOnFatalError(t *testing.T) {
	f := newFixture(t)
	f.reader.EXPECT().
		Read(gomock.Any()).
		DoAndReturn(func(path string) (domain.ReadResult, error) {
			if path == "/bad/package.json" {
				return domain.ReadResult{}, domain.ErrIntegrityViolation
			}
			return found("ok"), nil
		}).
		AnyTimes()
	f.vertex.EXPECT().Log(gomock.Any(), gomock.Any()).AnyTimes()
	f.vertex.EXPECT().Cached().AnyTimes()
	f.vertex.EXPECT().Complete(gomock.Any()).AnyTimes()

	_, err := f.app.ScopeConfigs(context.Background(), []string{"/good/a.js", "/bad/b.js"})
	assert.ErrorIs(t, err, domain.ErrIntegrityViolation)
}

func TestApp_ScopeConfigsRequiresLocations(t *testing.T) {
	f := newFixture(t)

	_, err := f.app.ScopeConfigs(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrNoLocations)
}

func TestApp_ConfigureWithPolicy(t *testing.T) {
	f := newFixture(t)
	verifier := mocks.NewMockIntegrityVerifier(gomock.NewController(t))
	f.policies.EXPECT().Load("policy.yaml").Return(verifier, nil)

	require.NoError(t, f.app.Configure(app.Options{PolicyPath: "policy.yaml", EagerParse: true}))
	assert.Same(t, verifier, f.gotVerifier)
	assert.True(t, f.gotEager)
}

func TestApp_ConfigureWithoutPolicy(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.app.Configure(app.Options{}))
	assert.Nil(t, f.gotVerifier)
	assert.False(t, f.gotEager)
}

func TestApp_ConfigurePolicyError(t *testing.T) {
	f := newFixture(t)
	f.policies.EXPECT().Load("missing.yaml").Return(nil, domain.ErrPolicyReadFailed)

	err := f.app.Configure(app.Options{PolicyPath: "missing.yaml"})
	assert.ErrorIs(t, err, domain.ErrPolicyReadFailed)
}

func TestApp_Close(t *testing.T) {
	f := newFixture(t)
	f.telemetry.EXPECT().Close().Return(nil)

	assert.NoError(t, f.app.Close())
}

type batchKey struct{}

func TestApp_ScopeTracesRecordsBatchVertex(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := mocks.NewMockManifestReader(ctrl)
	telemetry := mocks.NewMockTelemetry(ctrl)
	batch := mocks.NewMockVertex(ctrl)
	walk := mocks.NewMockVertex(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()

	reader.EXPECT().Read("/proj/package.json").Return(found("app"), nil).AnyTimes()

	var mu sync.Mutex
	var parents []any
	telemetry.EXPECT().
		Record(gomock.Any(), "scope 2 locations").
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return context.WithValue(ctx, batchKey{}, "batch"), batch
		})
	telemetry.EXPECT().
		Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			mu.Lock()
			parents = append(parents, ctx.Value(batchKey{}))
			mu.Unlock()
			return ctx, walk
		}).
		Times(2)
	walk.EXPECT().Log(gomock.Any(), gomock.Any()).AnyTimes()
	walk.EXPECT().Cached().AnyTimes()
	walk.EXPECT().Complete(nil).Times(2)
	batch.EXPECT().Complete(nil).Times(1)

	newReader := func(ports.IntegrityVerifier, bool) ports.ManifestReader { return reader }
	a := app.New(newReader, mocks.NewMockPolicyLoader(ctrl), logger, telemetry)
	require.NoError(t, a.Configure(app.Options{}))

	traces, err := a.ScopeTraces(context.Background(), []string{"/proj/a.js", "/proj/b.js"})
	require.NoError(t, err)
	require.Len(t, traces, 2)
	assert.Equal(t, []any{"batch", "batch"}, parents)
}
