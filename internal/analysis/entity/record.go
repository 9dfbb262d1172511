package entity

import "time"

// Record is one persisted analysis of a submitted equipment CSV.
//
// Records are immutable after creation: there is no update path, only
// deletion by administrative action outside this service.
type Record struct {
	ID        int64
	Owner     string
	FileRef   string // key of the original file bytes in blob storage
	FileName  string
	CreatedAt time.Time
	Stats     Stats
}

// Stats are the aggregates computed over one validated dataset.
type Stats struct {
	TotalCount       int
	AvgTemp          float64
	AvgPressure      float64
	AvgFlow          float64
	TypeDistribution Distribution
}
