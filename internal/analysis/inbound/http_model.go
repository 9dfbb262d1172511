package inbound

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Parth-bot-crypto26/ChemicalVisualizer/internal/analysis/entity"
	"github.com/Parth-bot-crypto26/ChemicalVisualizer/internal/analysis/usecase"
)

type Stats struct {
	TotalCount       int                 `json:"total_count"`
	AvgTemp          float64             `json:"avg_temp"`
	AvgPressure      float64             `json:"avg_pressure"`
	AvgFlow          float64             `json:"avg_flow"`
	TypeDistribution entity.Distribution `json:"type_distribution"`
}

type HistoryItem struct {
	ID        int64     `json:"id"`
	FileName  string    `json:"file_name"`
	CreatedAt time.Time `json:"created_at"`
	Stats     Stats     `json:"stats"`
}

type SubmitResponse struct {
	RecordID int64            `json:"record_id"`
	Stats    Stats            `json:"stats"`
	Preview  []map[string]any `json:"preview_data"`
	History  []HistoryItem    `json:"history"`
}

func (SubmitResponse) StatusCode() int {
	return http.StatusCreated
}

func (SubmitResponse) Message() string {
	return "analysis complete"
}

type HistoryResponse struct {
	History []HistoryItem `json:"history"`
}

// ReportResponse is a binary PDF body, not a JSON payload.
type ReportResponse struct {
	recordID int64
	pdf      []byte
}

func (ReportResponse) ContentType() string {
	return "application/pdf"
}

func (r ReportResponse) Content() []byte {
	return r.pdf
}

func (r ReportResponse) Disposition() string {
	return fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("report_%d.pdf", r.recordID))
}

func toStats(stats entity.Stats) Stats {
	return Stats{
		TotalCount:       stats.TotalCount,
		AvgTemp:          stats.AvgTemp,
		AvgPressure:      stats.AvgPressure,
		AvgFlow:          stats.AvgFlow,
		TypeDistribution: stats.TypeDistribution,
	}
}

func toHistoryItems(records []entity.Record) []HistoryItem {
	items := make([]HistoryItem, 0, len(records))
	for _, rec := range records {
		items = append(items, HistoryItem{
			ID:        rec.ID,
			FileName:  rec.FileName,
			CreatedAt: rec.CreatedAt,
			Stats:     toStats(rec.Stats),
		})
	}
	return items
}

func toSubmitResponse(result usecase.SubmitResult) SubmitResponse {
	preview := result.Preview
	if preview == nil {
		preview = []map[string]any{}
	}

	return SubmitResponse{
		RecordID: result.Record.ID,
		Stats:    toStats(result.Stats),
		Preview:  preview,
		History:  toHistoryItems(result.History),
	}
}
