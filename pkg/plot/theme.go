package plot

// Theme is the fixed set of colours and sizes merged into every chart layout.
type Theme struct {
	Primary    string
	Secondary  string
	Background string
	Margin     int
	Height     int
	HoverMode  string
}

// DefaultTheme matches the web UI stylesheet.
var DefaultTheme = Theme{
	Primary:    "#4682B4",
	Secondary:  "#2E8B57",
	Background: "#F5F6F5",
	Margin:     50,
	Height:     400,
	HoverMode:  "x unified",
}

// Overrides returns the layout keys the theme sets.
func (t Theme) Overrides() map[string]interface{} {
	return map[string]interface{}{
		"plot_bgcolor":  t.Background,
		"paper_bgcolor": t.Background,
		"font":          map[string]interface{}{"color": t.Primary},
		"xaxis":         map[string]interface{}{"gridcolor": t.Secondary},
		"yaxis":         map[string]interface{}{"gridcolor": t.Secondary},
		"margin": map[string]interface{}{
			"t": t.Margin,
			"b": t.Margin,
			"l": t.Margin,
			"r": t.Margin,
		},
		"height":    t.Height,
		"hovermode": t.HoverMode,
	}
}

// ApplyTheme returns a copy of layout with the theme overrides merged in.
// Nested objects are merged key by key, so axis titles survive the merge.
// The input layout is never modified.
func ApplyTheme(layout map[string]interface{}, theme Theme) map[string]interface{} {
	return merge(layout, theme.Overrides())
}

func merge(base, overrides map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		overrideMap, overrideIsMap := v.(map[string]interface{})
		baseMap, baseIsMap := out[k].(map[string]interface{})
		if overrideIsMap && baseIsMap {
			out[k] = merge(baseMap, overrideMap)
			continue
		}
		out[k] = v
	}
	return out
}
