package usecase

import "github.com/Parth-bot-crypto26/ChemicalVisualizer/internal/analysis/entity"

// SubmitResult carries everything the submit response needs: the persisted
// record, its stats, the first rows of the file, and the caller's history
// including the record just created.
type SubmitResult struct {
	Record  entity.Record
	Stats   entity.Stats
	Preview []map[string]any
	History []entity.Record
}

// ReportResult is a rendered PDF together with the record it describes.
type ReportResult struct {
	Record entity.Record
	PDF    []byte
}
