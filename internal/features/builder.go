// Package features turns ledger history into fixed-width vectors for the regressor.
package features

import (
	"MoneyWise/internal/calculator"
	"MoneyWise/internal/model"
)

const (
	// WindowSize is the number of consecutive transactions in one context window.
	WindowSize = 7
	// Width is the length of every feature vector: the window amounts plus four calendar scalars.
	Width = WindowSize + 4
	// MinTrainingRecords is the minimum history accepted by PrepareTrainingData.
	MinTrainingRecords = 10
)

// PrepareTrainingData slides a 7-record window over txs and pairs each window with the raw
// amount of the record that follows it. Returns nil slices when fewer than
// MinTrainingRecords transactions are supplied.
func PrepareTrainingData(txs []model.Transaction) ([][]float64, []float64) {
	if len(txs) < MinTrainingRecords {
		return nil, nil
	}
	n := len(txs) - WindowSize
	features := make([][]float64, 0, n)
	targets := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		vec, _ := windowVector(txs[i : i+WindowSize])
		features = append(features, vec)
		targets = append(targets, txs[i+WindowSize].Amount)
	}
	return features, targets
}

// BuildInferenceVector builds the feature vector for the given window and returns the
// divisor that was used to normalize its amounts. Multiplying the network output by the
// divisor restores the monetary scale.
func BuildInferenceVector(last7 []model.Transaction) ([]float64, float64) {
	return windowVector(last7)
}

func windowVector(window []model.Transaction) ([]float64, float64) {
	amounts := make([]float64, len(window))
	for i, t := range window {
		amounts[i] = t.Amount
	}

	scale := calculator.MaxAbs(amounts)
	if scale == 0 {
		scale = 1
	}

	vec := make([]float64, 0, len(window)+4)
	for _, a := range amounts {
		vec = append(vec, a/scale)
	}

	last := window[len(window)-1]
	weekend := 0.0
	if last.IsWeekend {
		weekend = 1.0
	}
	vec = append(vec,
		float64(last.DayOfWeek)/7,
		float64(last.Month)/12,
		weekend,
		float64(last.CategoryEncoded)/10,
	)
	return vec, scale
}
