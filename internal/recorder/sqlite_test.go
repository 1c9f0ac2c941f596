package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"MoneyWise/internal/model"
)

func TestSQLiteRecorder_TrainingRuns(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "history.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	defer r.Close()

	base := time.Date(2025, time.May, 1, 8, 0, 0, 0, time.UTC)
	runs := []model.TrainingRun{
		{ID: "a", StartedAt: base, Transactions: 10, Skipped: model.SkipInsufficientData},
		{ID: "b", StartedAt: base.Add(time.Minute), Transactions: 20, Samples: 13, Epochs: 500,
			InitialLoss: 4.2, FinalLoss: 0.7, Duration: 15 * time.Millisecond},
	}
	for i := range runs {
		if err := r.RecordTraining(&runs[i]); err != nil {
			t.Fatalf("record run %s: %v", runs[i].ID, err)
		}
	}

	got, err := r.RecentTrainingRuns(5)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(got))
	}
	if got[0].ID != "b" || !got[0].Trained() || got[0].FinalLoss != 0.7 || got[0].Duration != 15*time.Millisecond {
		t.Errorf("unexpected newest run: %+v", got[0])
	}
	if got[1].Skipped != model.SkipInsufficientData {
		t.Errorf("expected skipped reason to round-trip, got %q", got[1].Skipped)
	}
}

func TestSQLiteRecorder_Events(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "history.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	defer r.Close()

	if err := r.RecordForecast(&ForecastEvent{Transactions: 12, PredictedAmount: -42, Scale: 800, Confidence: 0.85}); err != nil {
		t.Errorf("record forecast: %v", err)
	}
	if err := r.RecordAlert(&AlertEvent{Type: "budget_exceeded", Category: "loyer", Spent: 800, Budget: 500}); err != nil {
		t.Errorf("record alert: %v", err)
	}

	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM alerts`).Scan(&n); err != nil || n != 1 {
		t.Errorf("expected 1 alert row, got %d (err=%v)", n, err)
	}
}
