package recorder

import "MoneyWise/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordTraining(_ *model.TrainingRun) error  { return nil }
func (n *NoopRecorder) RecordForecast(_ *ForecastEvent) error      { return nil }
func (n *NoopRecorder) RecordAlert(_ *AlertEvent) error            { return nil }
func (n *NoopRecorder) RecentTrainingRuns(_ int) ([]model.TrainingRun, error) {
	return nil, nil
}
func (n *NoopRecorder) Close() error { return nil }
