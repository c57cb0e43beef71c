package policy

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pkgscope/internal/adapters/fs"
	"go.trai.ch/pkgscope/internal/adapters/logger"
	"go.trai.ch/pkgscope/internal/core/ports"
)

// NodeID is the graft node ID for the policy loader.
const NodeID graft.ID = "adapter.policy_loader"

func init() {
	graft.Register(graft.Node[ports.PolicyLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.PolicyLoader, error) {
			fsys, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(fsys, log), nil
		},
	})
}
