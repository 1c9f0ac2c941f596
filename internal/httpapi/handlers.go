package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"MoneyWise/internal/ledger"
	"MoneyWise/internal/logger"
	"MoneyWise/internal/model"
	"MoneyWise/internal/report"
)

// lossTail is the number of trailing losses returned by the train endpoint.
const lossTail = 10

// Handler exposes the assistant over HTTP. Every call goes through the guard.
type Handler struct {
	guard *ledger.Guard
	log   zerolog.Logger
	now   func() time.Time
}

func NewHandler(g *ledger.Guard, log zerolog.Logger) *Handler {
	return &Handler{guard: g, log: log, now: time.Now}
}

// RegisterRoutes mounts the API and demo routes on router.
func (h *Handler) RegisterRoutes(router *mux.Router) {
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/transaction/add", h.AddTransaction).Methods("POST")
	api.HandleFunc("/predict", h.Predict).Methods("GET")
	api.HandleFunc("/analysis", h.Analysis).Methods("GET")
	api.HandleFunc("/train", h.Train).Methods("POST")
	api.HandleFunc("/recommendations", h.Recommendations).Methods("GET")
	api.HandleFunc("/budget/set", h.SetBudget).Methods("POST")
	api.HandleFunc("/transactions", h.Transactions).Methods("GET")
	api.HandleFunc("/statistics", h.Statistics).Methods("GET")
	api.HandleFunc("/weekly-report", h.WeeklyReport).Methods("GET")
	api.HandleFunc("/health", h.Health).Methods("GET")
	api.HandleFunc("/report.pdf", h.ReportPDF).Methods("GET")

	demo := router.PathPrefix("/demo").Subrouter()
	demo.HandleFunc("/add-sample-data", h.AddSampleData).Methods("GET", "POST")
	demo.HandleFunc("/reset", h.Reset).Methods("GET", "POST")
}

// NewRouter builds the full HTTP handler with middleware.
func NewRouter(h *Handler, log zerolog.Logger) http.Handler {
	router := mux.NewRouter()
	h.RegisterRoutes(router)
	return Recovery(log)(RequestID(Logger(log)(CORS(router))))
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount), errors.Is(err, ledger.ErrUnknownCategory):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status := statusFor(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Msg(msg)
	} else {
		log.Warn().Err(err).Msg(msg)
	}
	WriteError(w, status, err.Error())
}

type addTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Category    model.Category  `json:"category"`
	Description string          `json:"description"`
}

// AddTransaction handles POST /api/transaction/add
func (h *Handler) AddTransaction(w http.ResponseWriter, r *http.Request) {
	var req addTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Corps de requête invalide")
		return
	}

	var tx model.Transaction
	err := h.guard.Do(func(a *ledger.Assistant) error {
		var err error
		tx, err = a.Ingest(req.Amount.InexactFloat64(), req.Category, req.Description)
		return err
	})
	if err != nil {
		h.fail(w, r, err, "add transaction")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"transaction": tx,
		"message":     "Transaction ajoutée avec succès",
	})
}

// Predict handles GET /api/predict
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	var fc *model.Forecast
	err := h.guard.Do(func(a *ledger.Assistant) error {
		var err error
		fc, err = a.PredictNextWeek()
		return err
	})
	if err != nil {
		h.fail(w, r, err, "predict")
		return
	}
	if fc == nil {
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"success": false,
			"message": "Pas assez de données pour la prédiction",
		})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"predictions": fc,
	})
}

// Analysis handles GET /api/analysis
func (h *Handler) Analysis(w http.ResponseWriter, r *http.Request) {
	var an model.Analysis
	h.guard.Do(func(a *ledger.Assistant) error {
		an = a.SpendingAnalysis()
		return nil
	})
	var body interface{} = an
	if an.Empty() {
		body = map[string]interface{}{}
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"analysis": body,
	})
}

// Train handles POST /api/train
func (h *Handler) Train(w http.ResponseWriter, r *http.Request) {
	var (
		run    model.TrainingRun
		losses []float64
	)
	err := h.guard.Do(func(a *ledger.Assistant) error {
		var err error
		run, err = a.Retrain()
		losses = a.LossTail(lossTail)
		return err
	})
	if err != nil {
		h.fail(w, r, err, "train")
		return
	}

	msg := "Modèle ré-entraîné avec succès"
	if !run.Trained() {
		msg = fmt.Sprintf("Pas assez de données pour l'entraînement (%d transactions, %d requises)",
			run.Transactions, ledger.TrainingGate)
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"message":      msg,
		"loss_history": losses,
		"training_run": run,
	})
}

// Recommendations handles GET /api/recommendations
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	var recs []model.Recommendation
	h.guard.Do(func(a *ledger.Assistant) error {
		recs = a.SavingsRecommendations()
		return nil
	})
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"recommendations": recs,
	})
}

type setBudgetRequest struct {
	Category model.Category  `json:"category"`
	Budget   decimal.Decimal `json:"budget"`
}

// SetBudget handles POST /api/budget/set
func (h *Handler) SetBudget(w http.ResponseWriter, r *http.Request) {
	var req setBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Corps de requête invalide")
		return
	}

	err := h.guard.Do(func(a *ledger.Assistant) error {
		return a.SetBudget(req.Category, req.Budget.InexactFloat64())
	})
	if errors.Is(err, ledger.ErrUnknownCategory) {
		WriteError(w, http.StatusBadRequest, "Catégorie non valide")
		return
	}
	if err != nil {
		h.fail(w, r, err, "set budget")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Budget %s mis à jour à %s€", req.Category, req.Budget.String()),
	})
}

// Transactions handles GET /api/transactions
func (h *Handler) Transactions(w http.ResponseWriter, r *http.Request) {
	var txs []model.Transaction
	h.guard.Do(func(a *ledger.Assistant) error {
		txs = a.Transactions()
		return nil
	})
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"transactions": txs,
		"count":        len(txs),
	})
}

// Statistics handles GET /api/statistics
func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	var stats model.Statistics
	h.guard.Do(func(a *ledger.Assistant) error {
		stats = a.Statistics()
		return nil
	})
	var body interface{} = stats
	if stats.TotalTransactions == 0 {
		body = map[string]interface{}{}
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"statistics": body,
	})
}

// WeeklyReport handles GET /api/weekly-report
func (h *Handler) WeeklyReport(w http.ResponseWriter, r *http.Request) {
	var (
		rep model.WeeklyReport
		ok  bool
	)
	h.guard.Do(func(a *ledger.Assistant) error {
		rep, ok = a.WeeklyReport()
		return nil
	})
	if !ok {
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"success": false,
			"message": "Pas assez de données",
		})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"weekly_report": rep,
	})
}

// Health handles GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	var health model.Health
	h.guard.Do(func(a *ledger.Assistant) error {
		health = a.Health()
		return nil
	})
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"health":  health,
	})
}

// ReportPDF handles GET /api/report.pdf
func (h *Handler) ReportPDF(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	in := report.Input{
		Title:       "Rapport MoneyWise",
		GeneratedAt: now.Format(model.DateLayout),
	}
	err := h.guard.Do(func(a *ledger.Assistant) error {
		fc, err := a.PreviewNextWeek()
		if err != nil {
			return err
		}
		in.Forecast = fc
		in.Analysis = a.SpendingAnalysis()
		in.Recommendations = a.SavingsRecommendations()
		in.Balance = a.Balance()
		in.Transactions = a.Transactions()
		return nil
	})
	if err != nil {
		h.fail(w, r, err, "collect report data")
		return
	}

	pdf, err := report.BuildAnalysisPDF(in)
	if err != nil {
		h.fail(w, r, err, "build pdf")
		return
	}

	filename := "moneywise-" + now.Format("2006-01-02") + ".pdf"
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// AddSampleData handles /demo/add-sample-data
func (h *Handler) AddSampleData(w http.ResponseWriter, r *http.Request) {
	var total int
	err := h.guard.Do(func(a *ledger.Assistant) error {
		var err error
		total, err = ledger.SeedDemo(a)
		return err
	})
	if err != nil {
		h.fail(w, r, err, "seed demo data")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":            true,
		"message":            fmt.Sprintf("%d transactions de démonstration ajoutées", len(ledger.SampleData)),
		"total_transactions": total,
	})
}

// Reset handles /demo/reset
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	err := h.guard.Do(func(a *ledger.Assistant) error {
		return a.Reset()
	})
	if err != nil {
		h.fail(w, r, err, "reset")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Données réinitialisées",
	})
}
