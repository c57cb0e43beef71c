package progrock

import (
	"strings"
	"sync"

	"github.com/vito/progrock"
	"go.trai.ch/pkgscope/internal/core/ports"
)

// LogWriter is a progrock.Writer that reports finished vertices and their log
// lines through a ports.Logger at debug level.
type LogWriter struct {
	logger ports.Logger

	mu    sync.Mutex
	names map[string]string
}

// NewLogWriter creates a LogWriter reporting to logger.
func NewLogWriter(logger ports.Logger) *LogWriter {
	return &LogWriter{
		logger: logger,
		names:  make(map[string]string),
	}
}

// WriteStatus implements progrock.Writer.
func (w *LogWriter) WriteStatus(update *progrock.StatusUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, v := range update.Vertexes {
		w.names[v.Id] = v.Name
	}

	for _, l := range update.Logs {
		stream := "stdout"
		if l.Stream == progrock.LogStream_STDERR {
			stream = "stderr"
		}
		for _, line := range strings.Split(strings.TrimRight(string(l.Data), "\n"), "\n") {
			w.logger.Debug("resolution log", "vertex", w.names[l.Vertex], "stream", stream, "line", line)
		}
	}

	for _, v := range update.Vertexes {
		if v.Completed == nil {
			continue
		}
		args := []any{
			"vertex", v.Name,
			"cached", v.Cached,
			"duration", v.Completed.AsTime().Sub(v.Started.AsTime()),
		}
		for _, input := range v.Inputs {
			args = append(args, "parent", w.names[input])
		}
		if v.Error != nil {
			args = append(args, "error", *v.Error)
			w.logger.Debug("resolution failed", args...)
			continue
		}
		w.logger.Debug("resolution complete", args...)
	}

	return nil
}

// Close implements progrock.Writer.
func (w *LogWriter) Close() error {
	return nil
}
