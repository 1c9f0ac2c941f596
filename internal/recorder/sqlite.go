package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"MoneyWise/internal/model"
)

// SQLiteRecorder persists training, forecast and alert history to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log zerolog.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS training_runs (
			id           TEXT PRIMARY KEY,
			timestamp    INTEGER NOT NULL,
			duration_ms  INTEGER,
			transactions INTEGER,
			samples      INTEGER,
			epochs       INTEGER,
			initial_loss REAL,
			final_loss   REAL,
			skipped      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_training_ts ON training_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS forecasts (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp        INTEGER NOT NULL,
			transactions     INTEGER,
			predicted_amount REAL,
			scale            REAL,
			confidence       REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_forecast_ts ON forecasts(timestamp)`,

		`CREATE TABLE IF NOT EXISTS alerts (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			type      TEXT,
			category  TEXT,
			spent     REAL,
			budget    REAL,
			message   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alert_ts ON alerts(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordTraining(run *model.TrainingRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO training_runs
		(id, timestamp, duration_ms, transactions, samples, epochs, initial_loss, final_loss, skipped)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		run.ID, run.StartedAt.UnixMilli(), run.Duration.Milliseconds(),
		run.Transactions, run.Samples, run.Epochs,
		run.InitialLoss, run.FinalLoss, string(run.Skipped),
	)
	return err
}

func (r *SQLiteRecorder) RecordForecast(evt *ForecastEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO forecasts
		(timestamp, transactions, predicted_amount, scale, confidence)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), evt.Transactions, evt.PredictedAmount, evt.Scale, evt.Confidence,
	)
	return err
}

func (r *SQLiteRecorder) RecordAlert(evt *AlertEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO alerts
		(timestamp, type, category, spent, budget, message)
		VALUES (?,?,?,?,?,?)`,
		time.Now().Unix(), evt.Type, evt.Category, evt.Spent, evt.Budget, evt.Message,
	)
	return err
}

// RecentTrainingRuns returns up to limit runs, newest first.
func (r *SQLiteRecorder) RecentTrainingRuns(limit int) ([]model.TrainingRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT id, timestamp, duration_ms, transactions, samples, epochs,
		initial_loss, final_loss, skipped
		FROM training_runs ORDER BY timestamp DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query training runs: %w", err)
	}
	defer rows.Close()

	var runs []model.TrainingRun
	for rows.Next() {
		var (
			run        model.TrainingRun
			startedMs  int64
			durationMs int64
			skipped    string
		)
		if err := rows.Scan(&run.ID, &startedMs, &durationMs, &run.Transactions, &run.Samples,
			&run.Epochs, &run.InitialLoss, &run.FinalLoss, &skipped); err != nil {
			return nil, fmt.Errorf("scan training run: %w", err)
		}
		run.StartedAt = time.UnixMilli(startedMs)
		run.Duration = time.Duration(durationMs) * time.Millisecond
		run.Skipped = model.SkipReason(skipped)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
