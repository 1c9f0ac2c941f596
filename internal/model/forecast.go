package model

import "time"

// ForecastDay is the projected spending of one upcoming calendar day.
type ForecastDay struct {
	Date            string  `json:"date"`
	Day             string  `json:"day"`
	PredictedAmount float64 `json:"predicted_amount"`
	IsWeekend       bool    `json:"is_weekend"`
}

// Forecast is the result of a next-week prediction.
type Forecast struct {
	PredictedAmount float64       `json:"predicted_amount"`
	Confidence      float64       `json:"confidence"`
	Next7Days       []ForecastDay `json:"next_7_days"`
}

// SkipReason explains why a training attempt did not touch the network.
type SkipReason string

const (
	SkipNone             SkipReason = ""
	SkipInsufficientData SkipReason = "insufficient_data"
	SkipNoSamples        SkipReason = "no_samples"
)

// TrainingRun describes one retraining attempt.
type TrainingRun struct {
	ID           string        `json:"id"`
	StartedAt    time.Time     `json:"started_at"`
	Duration     time.Duration `json:"duration"`
	Transactions int           `json:"transactions"`
	Samples      int           `json:"samples"`
	Epochs       int           `json:"epochs"`
	InitialLoss  float64       `json:"initial_loss"`
	FinalLoss    float64       `json:"final_loss"`
	Skipped      SkipReason    `json:"skipped,omitempty"`
}

// Trained reports whether the run updated the network.
func (r TrainingRun) Trained() bool {
	return r.Skipped == SkipNone
}

// Health is the operational status of the assistant.
type Health struct {
	System               string   `json:"system"`
	TransactionsCount    int      `json:"transactions_count"`
	ModelTrained         bool     `json:"model_trained"`
	LastTrainingLoss     *float64 `json:"last_training_loss"`
	PredictionsAvailable bool     `json:"predictions_available"`
}
