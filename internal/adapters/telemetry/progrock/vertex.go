package progrock

import (
	"fmt"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/pkgscope/internal/core/domain"
)

// Vertex implements ports.Vertex for a single resolution.
type Vertex struct {
	id     digest.Digest
	vertex *progrock.VertexRecorder
}

// Log appends a line to the vertex. Warnings and errors use the stderr stream.
func (v *Vertex) Log(level domain.LogLevel, msg string) {
	w := v.vertex.Stdout()
	if level >= domain.LogLevelWarn {
		w = v.vertex.Stderr()
	}
	_, _ = fmt.Fprintf(w, "[%s] %s\n", level.String(), msg)
}

// Complete marks the resolution as finished.
func (v *Vertex) Complete(err error) {
	v.vertex.Done(err)
}

// Cached marks the resolution as answered entirely from the manifest cache.
func (v *Vertex) Cached() {
	v.vertex.Cached()
}
