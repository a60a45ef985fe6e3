package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// WriteBenchChart renders microseconds per step against lattice dimension as
// a PNG line chart.
func WriteBenchChart(w io.Writer, dims []int, usPerStep []float64) error {
	if len(dims) != len(usPerStep) {
		return fmt.Errorf("chart: %d sizes but %d timings", len(dims), len(usPerStep))
	}
	if len(dims) < 2 {
		return errors.New("chart: need at least two sizes")
	}

	x := make([]float64, len(dims))
	for i, d := range dims {
		x[i] = float64(d)
	}

	graph := chart.Chart{
		Width:  640,
		Height: 360,
		XAxis: chart.XAxis{
			Name:  "dim",
			Style: chart.Style{FontSize: 10.0},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "us/step",
			Style: chart.Style{FontSize: 10.0},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "us/step",
				XValues: x,
				YValues: usPerStep,
				Style: chart.Style{
					StrokeColor: drawing.Color{R: 0x00, G: 0xcc, B: 0xff, A: 0xff},
					StrokeWidth: 3.0,
				},
			},
		},
	}
	return graph.Render(chart.PNG, w)
}
