// Package plot defines chart specifications in the data+layout shape consumed
// by Plotly-compatible charting libraries.
package plot

// Spec is one chart: a list of traces plus a layout. Both parts are opaque
// JSON objects; only the layout is ever modified, by ApplyTheme.
type Spec struct {
	Data   []map[string]interface{} `json:"data,omitempty"`
	Layout map[string]interface{}   `json:"layout,omitempty"`
}

// Valid reports whether the spec carries both a data and a layout field.
func (s *Spec) Valid() bool {
	return s != nil && s.Data != nil && s.Layout != nil
}

// Bar builds a single-trace bar chart.
func Bar(title, xTitle, yTitle string, categories []string, values []float64, color string) *Spec {
	trace := map[string]interface{}{
		"type":        "bar",
		"x":           categories,
		"y":           values,
		"orientation": "v",
		"showlegend":  false,
		"marker":      map[string]interface{}{"color": color},
	}
	return &Spec{
		Data:   []map[string]interface{}{trace},
		Layout: baseLayout(title, xTitle, yTitle, map[string]interface{}{"barmode": "relative"}),
	}
}

// Line builds a single-trace line chart.
func Line(title, xTitle, yTitle string, xs, ys []float64, color string) *Spec {
	trace := map[string]interface{}{
		"type":       "scatter",
		"mode":       "lines",
		"x":          xs,
		"y":          ys,
		"showlegend": false,
		"line":       map[string]interface{}{"color": color},
	}
	return &Spec{
		Data:   []map[string]interface{}{trace},
		Layout: baseLayout(title, xTitle, yTitle, nil),
	}
}

func baseLayout(title, xTitle, yTitle string, extra map[string]interface{}) map[string]interface{} {
	layout := map[string]interface{}{
		"title":     map[string]interface{}{"text": title},
		"xaxis":     map[string]interface{}{"title": map[string]interface{}{"text": xTitle}},
		"yaxis":     map[string]interface{}{"title": map[string]interface{}{"text": yTitle}},
		"hovermode": "x unified",
		"legend":    map[string]interface{}{"tracegroupgap": 0},
	}
	for k, v := range extra {
		layout[k] = v
	}
	return layout
}
