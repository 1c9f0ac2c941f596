// Package ledger owns the transaction history, the prediction network and the budgets.
//
// An Assistant is not safe for concurrent use. Hosts that serve several callers share it
// through a Guard.
package ledger

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"MoneyWise/internal/analysis"
	"MoneyWise/internal/calculator"
	"MoneyWise/internal/features"
	"MoneyWise/internal/model"
	"MoneyWise/internal/network"
	"MoneyWise/internal/recorder"
)

const (
	// TrainingGate is the minimum history for any retraining attempt.
	TrainingGate = 20
	// PredictionGate is the minimum history for a forecast.
	PredictionGate = 7
	// RetrainEvery triggers a retrain whenever the history length is a multiple of it.
	RetrainEvery = 10
	// DefaultEpochs is the number of full-batch steps per retrain.
	DefaultEpochs = 500
	// HiddenSize is the width of the regressor's hidden layer.
	HiddenSize = 15
	// ForecastConfidence is reported with every forecast.
	ForecastConfidence = 0.85
	// MaxAmount bounds the magnitude of a single amount or budget so that ledger sums stay finite.
	MaxAmount = 1e12
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrUnknownCategory = errors.New("unknown category")
)

// Store is the persistence collaborator. Loads happen once at construction; saves
// overwrite the whole snapshot after every mutation.
type Store interface {
	LoadTransactions() ([]model.Transaction, error)
	SaveTransactions(txs []model.Transaction) error
	LoadBudgets() (map[model.Category]float64, error)
	SaveBudgets(budgets map[model.Category]float64) error
}

// Assistant is the ledger owner.
type Assistant struct {
	store    Store
	recorder recorder.Recorder
	log      zerolog.Logger
	now      func() time.Time
	rng      *rand.Rand

	epochs        int
	defaultBudget float64

	net          *network.Regressor
	transactions []model.Transaction
	budgets      analysis.Budgets
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *Assistant) { a.now = now }
}

// WithRand sets the random source used for weight initialization and forecast jitter.
func WithRand(rng *rand.Rand) Option {
	return func(a *Assistant) { a.rng = rng }
}

// WithSeed is WithRand over a PCG source seeded with seed.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed)))
}

func WithRecorder(r recorder.Recorder) Option {
	return func(a *Assistant) { a.recorder = r }
}

func WithLogger(log zerolog.Logger) Option {
	return func(a *Assistant) { a.log = log }
}

// WithEpochs overrides DefaultEpochs.
func WithEpochs(epochs int) Option {
	return func(a *Assistant) { a.epochs = epochs }
}

// WithDefaultBudget sets the budget of every category that has none stored.
func WithDefaultBudget(amount float64) Option {
	return func(a *Assistant) { a.defaultBudget = amount }
}

// New loads the ledger from store and builds a freshly initialized network.
func New(store Store, opts ...Option) (*Assistant, error) {
	a := &Assistant{
		store:         store,
		recorder:      recorder.NewNoopRecorder(),
		log:           zerolog.Nop(),
		now:           time.Now,
		epochs:        DefaultEpochs,
		defaultBudget: analysis.DefaultBudget,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.rng == nil {
		seed := uint64(time.Now().UnixNano())
		a.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}

	txs, err := store.LoadTransactions()
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	if txs == nil {
		txs = []model.Transaction{}
	}
	a.transactions = txs

	a.budgets = analysis.DefaultBudgets(a.defaultBudget)
	stored, err := store.LoadBudgets()
	if err != nil {
		return nil, fmt.Errorf("load budgets: %w", err)
	}
	for c, v := range stored {
		if model.IsKnownCategory(c) {
			a.budgets[c] = v
		}
	}

	a.net = network.New(features.Width, HiddenSize, 1, a.rng)
	a.log.Info().Int("transactions", len(a.transactions)).Msg("ledger loaded")
	return a, nil
}

// Ingest appends a transaction, persists the ledger and, when the new length is a multiple
// of RetrainEvery, retrains before returning. Unknown categories are kept as labels and
// encoded as autres.
func (a *Assistant) Ingest(amount float64, category model.Category, description string) (model.Transaction, error) {
	if !validAmount(amount) {
		return model.Transaction{}, fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	if category == "" {
		category = model.CategoryAutres
	}

	tx := model.NewTransaction(len(a.transactions), amount, category, description, a.now())
	a.transactions = append(a.transactions, tx)
	if err := a.store.SaveTransactions(a.transactions); err != nil {
		a.transactions = a.transactions[:len(a.transactions)-1]
		return model.Transaction{}, fmt.Errorf("persist transaction: %w", err)
	}

	a.log.Info().
		Int("id", tx.ID).
		Float64("amount", tx.Amount).
		Str("category", string(tx.Category)).
		Msg("transaction added")

	if len(a.transactions)%RetrainEvery == 0 {
		if _, err := a.Retrain(); err != nil {
			a.log.Error().Err(err).Msg("periodic retrain failed")
		}
	}
	return tx, nil
}

// Retrain fits the network on the entire history. Below TrainingGate, or when no training
// pairs can be built, it changes nothing and reports why in the returned run.
func (a *Assistant) Retrain() (model.TrainingRun, error) {
	run := model.TrainingRun{
		ID:           uuid.NewString(),
		StartedAt:    a.now(),
		Transactions: len(a.transactions),
	}

	if len(a.transactions) < TrainingGate {
		run.Skipped = model.SkipInsufficientData
		a.recordTraining(&run)
		return run, nil
	}

	x, y := features.PrepareTrainingData(a.transactions)
	if len(x) == 0 {
		run.Skipped = model.SkipNoSamples
		a.recordTraining(&run)
		return run, nil
	}

	m, err := calculator.FromRows(x)
	if err != nil {
		return run, fmt.Errorf("build feature matrix: %w", err)
	}

	start := time.Now()
	if err := a.net.Train(m, y, a.epochs); err != nil {
		return run, fmt.Errorf("train: %w", err)
	}
	run.Duration = time.Since(start)
	run.Samples = len(x)
	run.Epochs = a.epochs

	if losses := a.net.LossTail(a.epochs); len(losses) > 0 {
		run.InitialLoss = losses[0]
		run.FinalLoss = losses[len(losses)-1]
		for epoch := 0; epoch < len(losses); epoch += 100 {
			a.log.Debug().Int("epoch", epoch).Float64("loss", losses[epoch]).Msg("training")
		}
	}

	a.log.Info().
		Str("run_id", run.ID).
		Int("samples", run.Samples).
		Float64("initial_loss", run.InitialLoss).
		Float64("final_loss", run.FinalLoss).
		Dur("duration", run.Duration).
		Msg("model retrained")
	a.recordTraining(&run)
	return run, nil
}

func (a *Assistant) recordTraining(run *model.TrainingRun) {
	if err := a.recorder.RecordTraining(run); err != nil {
		a.log.Error().Err(err).Str("run_id", run.ID).Msg("record training run")
	}
}

// PredictNextWeek forecasts the next transaction amount from the last seven records and
// spreads it over the next seven days. Returns nil below PredictionGate.
func (a *Assistant) PredictNextWeek() (*model.Forecast, error) {
	base, scale, ok, err := a.predictBase()
	if err != nil || !ok {
		return nil, err
	}

	fc := &model.Forecast{
		PredictedAmount: base,
		Confidence:      ForecastConfidence,
		Next7Days:       WeeklyForecast(base, a.now(), a.rng),
	}

	if err := a.recorder.RecordForecast(&recorder.ForecastEvent{
		Transactions:    len(a.transactions),
		PredictedAmount: base,
		Scale:           scale,
		Confidence:      ForecastConfidence,
	}); err != nil {
		a.log.Error().Err(err).Msg("record forecast")
	}
	return fc, nil
}

// PreviewNextWeek is PredictNextWeek without side effects: the jitter comes from a source
// seeded by the ledger length and the base prediction, and nothing is recorded.
func (a *Assistant) PreviewNextWeek() (*model.Forecast, error) {
	base, _, ok, err := a.predictBase()
	if err != nil || !ok {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(uint64(len(a.transactions)), math.Float64bits(base)))
	return &model.Forecast{
		PredictedAmount: base,
		Confidence:      ForecastConfidence,
		Next7Days:       WeeklyForecast(base, a.now(), rng),
	}, nil
}

// predictBase returns the denormalized network output for the last window. ok is false
// below PredictionGate.
func (a *Assistant) predictBase() (base, scale float64, ok bool, err error) {
	n := len(a.transactions)
	if n < PredictionGate {
		return 0, 0, false, nil
	}
	vec, scale := features.BuildInferenceVector(a.transactions[n-features.WindowSize:])
	out, err := a.net.PredictOne(vec)
	if err != nil {
		return 0, 0, false, fmt.Errorf("predict: %w", err)
	}
	return out * scale, scale, true, nil
}

// SpendingAnalysis recomputes the analysis over the current ledger.
func (a *Assistant) SpendingAnalysis() model.Analysis {
	return analysis.Analyze(a.transactions, a.budgets)
}

// SavingsRecommendations derives advice from SpendingAnalysis.
func (a *Assistant) SavingsRecommendations() []model.Recommendation {
	return analysis.Recommend(a.SpendingAnalysis())
}

// Statistics summarizes the ledger as of now.
func (a *Assistant) Statistics() model.Statistics {
	return analysis.ComputeStatistics(a.transactions, a.now())
}

// WeeklyReport aggregates the last seven days; ok is false with too little history.
func (a *Assistant) WeeklyReport() (model.WeeklyReport, bool) {
	return analysis.BuildWeeklyReport(a.transactions, a.now())
}

// Health reports whether the model has been trained and forecasts are available.
func (a *Assistant) Health() model.Health {
	h := model.Health{
		System:               "operational",
		TransactionsCount:    len(a.transactions),
		PredictionsAvailable: len(a.transactions) >= PredictionGate,
	}
	if last := a.net.LossTail(1); len(last) == 1 {
		h.ModelTrained = true
		h.LastTrainingLoss = &last[0]
	}
	return h
}

// Reset empties the ledger. The network keeps its parameters and loss history.
func (a *Assistant) Reset() error {
	empty := []model.Transaction{}
	if err := a.store.SaveTransactions(empty); err != nil {
		return fmt.Errorf("persist reset: %w", err)
	}
	a.transactions = empty
	a.log.Info().Msg("ledger reset")
	return nil
}

// SetBudget changes the threshold of a known category.
func (a *Assistant) SetBudget(category model.Category, amount float64) error {
	if !model.IsKnownCategory(category) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	if !validAmount(amount) || amount < 0 {
		return fmt.Errorf("%w: budget %v", ErrInvalidAmount, amount)
	}

	next := a.budgets.Clone()
	next[category] = amount
	if err := a.store.SaveBudgets(next); err != nil {
		return fmt.Errorf("persist budget: %w", err)
	}
	a.budgets = next
	a.log.Info().Str("category", string(category)).Float64("budget", amount).Msg("budget updated")
	return nil
}

func validAmount(v float64) bool {
	return !math.IsNaN(v) && math.Abs(v) <= MaxAmount
}

// Transactions returns a copy of the ledger in insertion order.
func (a *Assistant) Transactions() []model.Transaction {
	out := make([]model.Transaction, len(a.transactions))
	copy(out, a.transactions)
	return out
}

// Budgets returns a copy of the budget map.
func (a *Assistant) Budgets() analysis.Budgets {
	return a.budgets.Clone()
}

// LossTail returns the last n training losses.
func (a *Assistant) LossTail(n int) []float64 {
	return a.net.LossTail(n)
}

// Balance is the sum of every amount in the ledger.
func (a *Assistant) Balance() float64 {
	total := 0.0
	for _, t := range a.transactions {
		total += t.Amount
	}
	return total
}
