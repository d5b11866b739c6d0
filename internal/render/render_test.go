package render

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/boiler-optimizer/pkg/plot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRendererWritesSpec(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")
	r, err := NewFileRenderer(dir, nil)
	require.NoError(t, err)

	spec := plot.Bar("Energy", "Scenario", "MJ/s", []string{"Current", "Optimized"}, []float64{100, 85}, "#4682B4")
	require.NoError(t, r.Render("energy-chart", spec.Data, spec.Layout))

	raw, err := os.ReadFile(filepath.Join(dir, "energy-chart.json"))
	require.NoError(t, err)

	var got plot.Spec
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.True(t, got.Valid())
	assert.Equal(t, "bar", got.Data[0]["type"])

	assert.Equal(t, []string{filepath.Join(dir, "energy-chart.json")}, r.Files())
	assert.NoError(t, r.Resize("energy-chart"))
}

func TestFileRendererRejectsPathContainers(t *testing.T) {
	r, err := NewFileRenderer(t.TempDir(), nil)
	require.NoError(t, err)

	for _, id := range []string{"", "../escape", "nested/chart"} {
		assert.Error(t, r.Render(id, nil, nil), id)
	}
	assert.Empty(t, r.Files())
}

func TestFileRendererOverwrites(t *testing.T) {
	dir := t.TempDir()
	r, err := NewFileRenderer(dir, nil)
	require.NoError(t, err)

	first := plot.Line("A", "x", "y", []float64{1}, []float64{1}, "#000")
	second := plot.Line("B", "x", "y", []float64{2}, []float64{2}, "#000")
	require.NoError(t, r.Render("sensitivity-chart", first.Data, first.Layout))
	require.NoError(t, r.Render("sensitivity-chart", second.Data, second.Layout))

	raw, err := os.ReadFile(filepath.Join(dir, "sensitivity-chart.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"B"`)
	assert.Len(t, r.Files(), 1)
}
