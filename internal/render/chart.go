package render

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
)

// Series is one named line of a chart.
type Series struct {
	Name string
	X, Y []float64
}

// LineChart renders series as a PNG line chart with a legend.
func LineChart(w io.Writer, title, xLabel, yLabel string, series ...Series) error {
	if len(series) == 0 {
		return fmt.Errorf("chart %q: no series", title)
	}
	cs := make([]chart.Series, 0, len(series))
	for _, s := range series {
		if len(s.X) != len(s.Y) || len(s.X) < 2 {
			return fmt.Errorf("chart %q: series %q needs at least two matching points", title, s.Name)
		}
		cs = append(cs, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: s.X,
			YValues: s.Y,
			Style:   chart.Style{StrokeWidth: 3},
		})
	}
	graph := chart.Chart{
		Title:  title,
		Width:  800,
		Height: 480,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis:  chart.XAxis{Name: xLabel},
		YAxis:  chart.YAxis{Name: yLabel},
		Series: cs,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.PNG, w)
}
