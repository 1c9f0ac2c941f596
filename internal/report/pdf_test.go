package report

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"MoneyWise/internal/model"
)

func TestBuildAnalysisPDF(t *testing.T) {
	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	var txs []model.Transaction
	for i := 0; i < 250; i++ {
		txs = append(txs, model.NewTransaction(i, -12.5, model.CategoryNourriture, strings.Repeat("courses ", 10), now))
	}

	tests := []struct {
		name string
		in   Input
	}{
		{"empty ledger", Input{Title: "Rapport MoneyWise", GeneratedAt: "2025-03-10"}},
		{"full report", Input{
			Title:       "Rapport MoneyWise",
			GeneratedAt: "2025-03-10",
			Balance:     1200,
			Analysis: model.Analysis{
				TotalSpent:  -1800,
				TotalIncome: 3000,
				ByCategory: map[model.Category]model.CategorySpend{
					model.CategoryLoyer: {Amount: 800, Percentage: 44.4},
				},
				Alerts: []model.Alert{
					{Type: model.AlertBudgetExceeded, Category: model.CategoryLoyer, Spent: 800, Budget: 500},
					{Type: model.AlertHighSpending, Message: "Vos dépenses sont élevées ce mois-ci"},
				},
			},
			Forecast: &model.Forecast{
				PredictedAmount: -40,
				Confidence:      0.85,
				Next7Days:       []model.ForecastDay{{Date: "2025-03-11", Day: "Tuesday", PredictedAmount: -41}},
			},
			Recommendations: []model.Recommendation{{Type: model.RecommendationSavings, Title: "Épargnez 20%", Message: "Essayez d'épargner au moins 20% de vos revenus"}},
			Transactions:    txs,
		}},
		{"overflowed totals", Input{
			Title:       "Rapport MoneyWise",
			GeneratedAt: "2025-03-10",
			Balance:     math.Inf(1),
			Analysis: model.Analysis{
				TotalSpent:  math.Inf(-1),
				TotalIncome: math.Inf(1),
				ByCategory: map[model.Category]model.CategorySpend{
					model.CategoryLoyer: {Amount: math.Inf(1), Percentage: math.NaN()},
				},
				Alerts: []model.Alert{
					{Type: model.AlertBudgetExceeded, Category: model.CategoryLoyer, Spent: math.Inf(1), Budget: 500},
				},
			},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := BuildAnalysisPDF(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.HasPrefix(out, []byte("%PDF")) {
				t.Errorf("expected PDF header, got %q", out[:min(8, len(out))])
			}
		})
	}
}

func TestTrimTo(t *testing.T) {
	if got := trimTo("abc", 5); got != "abc" {
		t.Errorf("expected untouched string, got %q", got)
	}
	if got := trimTo("éééééééé", 6); got != "ééé..." {
		t.Errorf("expected rune-safe truncation, got %q", got)
	}
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{-12.5, "-12.50 €"},
		{math.Inf(1), "+Inf €"},
		{math.Inf(-1), "-Inf €"},
		{math.NaN(), "NaN €"},
	}
	for _, tt := range tests {
		if got := money(tt.in); got != tt.want {
			t.Errorf("money(%v): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
