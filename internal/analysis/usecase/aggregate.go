package usecase

import "github.com/Parth-bot-crypto26/ChemicalVisualizer/internal/analysis/entity"

// aggregate computes the summary statistics for a schema-valid dataset.
// A malformed numeric cell fails the whole submission.
func aggregate(ds *entity.Dataset) (entity.Stats, error) {
	temps, err := ds.NumericColumn(entity.ColumnTemperature)
	if err != nil {
		return entity.Stats{}, err
	}

	pressures, err := ds.NumericColumn(entity.ColumnPressure)
	if err != nil {
		return entity.Stats{}, err
	}

	flows, err := ds.NumericColumn(entity.ColumnFlowrate)
	if err != nil {
		return entity.Stats{}, err
	}

	return entity.Stats{
		TotalCount:       len(ds.Rows),
		AvgTemp:          mean(temps),
		AvgPressure:      mean(pressures),
		AvgFlow:          mean(flows),
		TypeDistribution: ds.TypeCounts(),
	}, nil
}

// mean of an empty column is 0.0, not NaN.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
