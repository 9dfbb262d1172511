// Package report renders the analysis PDF: summary statistics plus a bar
// chart of the equipment type distribution.
package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Parth-bot-crypto26/ChemicalVisualizer/internal/analysis/entity"
	"github.com/go-pdf/fpdf"
)

// Clock provides the document creation time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// Letter page layout in points. Positions mirror the original report layout.
const (
	marginLeft  = 50.0
	titleY      = 42.0
	userY       = 62.0
	fileY       = 77.0
	ruleY       = 92.0
	statsHeadY  = 142.0
	statsStartY = 172.0
	statsStepY  = 20.0
	chartX      = 50.0
	chartY      = 242.0
	chartW      = 500.0
	chartH      = 300.0
	fallbackY   = 542.0
)

// PDF renders single-page analysis reports.
type PDF struct {
	clock Clock
}

// NewPDF returns a renderer. A nil clock falls back to the wall clock; tests
// inject a fixed clock to pin the document creation date.
func NewPDF(clock Clock) *PDF {
	if clock == nil {
		clock = realClock{}
	}
	return &PDF{clock: clock}
}

// Render produces the PDF for one record. The chart is re-derived from the
// stored file bytes; when that fails for any reason the report is still
// produced with a placeholder line in place of the chart.
func (p *PDF) Render(ctx context.Context, rec entity.Record, file []byte) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetCreationDate(p.clock.Now())
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Text(marginLeft, titleY, "Chemical Equipment Analysis Report")

	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(marginLeft, userY, fmt.Sprintf("Generated for: %s", rec.Owner))
	pdf.Text(marginLeft, fileY, fmt.Sprintf("File: %s", rec.FileName))
	pdf.Line(marginLeft, ruleY, 550, ruleY)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(marginLeft, statsHeadY, "Summary Statistics")

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Total Equipment Count: %d", rec.Stats.TotalCount),
		fmt.Sprintf("Average Temperature: %.2f C", rec.Stats.AvgTemp),
		fmt.Sprintf("Average Pressure: %.2f atm", rec.Stats.AvgPressure),
		fmt.Sprintf("Average Flowrate: %.2f L/m", rec.Stats.AvgFlow),
	}
	y := statsStartY
	for _, line := range lines {
		pdf.Text(marginLeft+20, y, "- "+line)
		y += statsStepY
	}

	if png, err := renderChart(file); err != nil {
		slog.WarnContext(ctx, "chart rendering failed, placeholder substituted",
			"record_id", rec.ID, "error", err)
		pdf.Text(marginLeft, fallbackY, fmt.Sprintf("(Chart could not be generated: %v)", err))
	} else {
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("type-distribution", opts, bytes.NewReader(png))
		pdf.ImageOptions("type-distribution", chartX, chartY, chartW, chartH, false, opts, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
