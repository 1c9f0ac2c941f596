package recorder

import "MoneyWise/internal/model"

// ForecastEvent records one next-week prediction.
type ForecastEvent struct {
	Transactions    int
	PredictedAmount float64
	Scale           float64
	Confidence      float64
}

// AlertEvent records an alert pushed by the scheduler.
type AlertEvent struct {
	Type     string // "budget_exceeded" or "high_spending"
	Category string
	Spent    float64
	Budget   float64
	Message  string
}

// Recorder persists model and alert history for later inspection.
type Recorder interface {
	RecordTraining(run *model.TrainingRun) error
	RecordForecast(evt *ForecastEvent) error
	RecordAlert(evt *AlertEvent) error
	RecentTrainingRuns(limit int) ([]model.TrainingRun, error)
	Close() error
}
