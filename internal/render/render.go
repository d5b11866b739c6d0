// Package render implements a chart Renderer that writes plot specs to disk.
package render

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/iwvelando/boiler-optimizer/pkg/plot"
	"go.uber.org/zap"
)

// FileRenderer writes each rendered chart to <dir>/<container>.json. The
// files hold a themed plot spec that any Plotly-compatible viewer can load.
type FileRenderer struct {
	dir    string
	logger *zap.Logger

	mu      sync.Mutex
	written map[string]string
}

// NewFileRenderer creates the output directory if needed.
func NewFileRenderer(dir string, logger *zap.Logger) (*FileRenderer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create chart directory %s: %w", dir, err)
	}
	return &FileRenderer{dir: dir, logger: logger, written: make(map[string]string)}, nil
}

// Render writes the chart for containerID, replacing any earlier file.
func (r *FileRenderer) Render(containerID string, data []map[string]interface{}, layout map[string]interface{}) error {
	if containerID == "" || filepath.Base(containerID) != containerID {
		return fmt.Errorf("invalid chart container %q", containerID)
	}

	payload, err := json.MarshalIndent(plot.Spec{Data: data, Layout: layout}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode chart %s: %w", containerID, err)
	}

	path := filepath.Join(r.dir, containerID+".json")
	if err := os.WriteFile(path, payload, 0644); err != nil {
		return fmt.Errorf("failed to write chart %s: %w", path, err)
	}

	r.mu.Lock()
	r.written[containerID] = path
	r.mu.Unlock()

	r.logger.Debug("chart written",
		zap.String("op", "render.Render"),
		zap.String("container", containerID),
		zap.String("path", path),
	)
	return nil
}

// Resize is a no-op; files have no viewport.
func (r *FileRenderer) Resize(string) error {
	return nil
}

// Files returns the written chart paths, sorted.
func (r *FileRenderer) Files() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	paths := make([]string, 0, len(r.written))
	for _, p := range r.written {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
