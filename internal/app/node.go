package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pkgscope/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/pkgscope/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/pkgscope/internal/adapters/manifest"           //nolint:depguard // Wired in app layer
	"go.trai.ch/pkgscope/internal/adapters/policy"             //nolint:depguard // Wired in app layer
	"go.trai.ch/pkgscope/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/pkgscope/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.NodeID,
			logger.NodeID,
			policy.NodeID,
			progrock.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	fsys, err := graft.Dep[ports.FileSystem](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	policies, err := graft.Dep[ports.PolicyLoader](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	newReader := func(verifier ports.IntegrityVerifier, eager bool) ports.ManifestReader {
		opts := []manifest.Option{}
		if verifier != nil {
			opts = append(opts, manifest.WithVerifier(verifier))
		}
		if eager {
			opts = append(opts, manifest.WithEagerParse())
		}
		return manifest.NewReader(fsys, log, opts...)
	}

	return New(newReader, policies, log, telemetry), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    app,
		Logger: log,
	}, nil
}
