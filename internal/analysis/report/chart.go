package report

import (
	"bytes"
	"errors"

	"github.com/Parth-bot-crypto26/ChemicalVisualizer/internal/analysis/entity"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var barColor = drawing.ColorFromHex("2a5298")

// renderChart re-parses the stored file bytes and renders the equipment type
// distribution as a PNG bar chart.
func renderChart(file []byte) ([]byte, error) {
	ds, err := entity.ParseDataset(bytes.NewReader(file))
	if err != nil {
		return nil, err
	}

	dist := ds.TypeCounts()
	if len(dist) == 0 {
		return nil, errors.New("no type data to chart")
	}

	bars := make([]chart.Value, 0, len(dist))
	for _, tc := range dist {
		bars = append(bars, chart.Value{
			Label: tc.Type,
			Value: float64(tc.Count),
			Style: chart.Style{
				FillColor:   barColor,
				StrokeColor: barColor,
			},
		})
	}

	graph := chart.BarChart{
		Title:    "Equipment Type Distribution",
		Width:    600,
		Height:   400,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			ValueFormatter: chart.IntValueFormatter,
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
