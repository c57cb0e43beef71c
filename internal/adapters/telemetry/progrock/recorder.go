// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"
	"strconv"
	"sync/atomic"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/pkgscope/internal/core/ports"
)

// Recorder implements ports.Telemetry using progrock. Each resolution is recorded as a vertex.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
	seq atomic.Uint64
}

// New creates a new Recorder that reports vertices through logger.
func New(logger ports.Logger) *Recorder {
	return NewRecorder(NewLogWriter(logger))
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Record starts a vertex named after the resolved location. A vertex already
// carried by ctx becomes the input of the new one.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	id := digest.FromString(strconv.FormatUint(r.seq.Add(1), 10) + " " + name)

	var opts []progrock.VertexOpt
	if parent, ok := ports.VertexFromContext(ctx); ok {
		if p, ok := parent.(*Vertex); ok {
			opts = append(opts, progrock.WithInputs(p.id))
		}
	}

	v := &Vertex{id: id, vertex: r.rec.Vertex(id, name, opts...)}
	return ports.ContextWithVertex(ctx, v), v
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	return r.rec.Close()
}
