// Package analysis derives spending statistics, alerts and advice from ledger history.
// Every function is pure: results are recomputed from the transactions passed in.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"MoneyWise/internal/model"
)

const (
	// HighSpendingThreshold raises the blanket alert when total spend falls below it.
	HighSpendingThreshold = -1000.0
	// DefaultBudget is the per-category threshold until one is set explicitly.
	DefaultBudget = 500.0
)

// Budgets maps each category to its spending threshold.
type Budgets map[model.Category]float64

// DefaultBudgets returns a budget map holding amount for every known category.
func DefaultBudgets(amount float64) Budgets {
	b := make(Budgets, len(model.Categories))
	for _, c := range model.Categories {
		b[c] = amount
	}
	return b
}

// Clone returns an independent copy of b.
func (b Budgets) Clone() Budgets {
	out := make(Budgets, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Analyze computes totals, the per-category breakdown, budget alerts and the monthly trend.
// An empty ledger yields the zero Analysis.
func Analyze(txs []model.Transaction, budgets Budgets) model.Analysis {
	if len(txs) == 0 {
		return model.Analysis{}
	}

	a := model.Analysis{
		ByCategory:   make(map[model.Category]model.CategorySpend),
		MonthlyTrend: []model.MonthlyAmount{},
		Alerts:       []model.Alert{},
	}
	for _, t := range txs {
		switch {
		case t.Amount < 0:
			a.TotalSpent += t.Amount
		case t.Amount > 0:
			a.TotalIncome += t.Amount
		}
	}

	for _, c := range model.Categories {
		spent := categorySpend(txs, c)
		if spent >= 0 {
			continue
		}
		abs := math.Abs(spent)
		a.ByCategory[c] = model.CategorySpend{
			Amount:     abs,
			Percentage: abs / math.Abs(a.TotalSpent) * 100,
		}
		if limit := budgets[c]; abs > limit {
			a.Alerts = append(a.Alerts, model.Alert{
				Type:     model.AlertBudgetExceeded,
				Category: c,
				Spent:    abs,
				Budget:   limit,
			})
		}
	}

	a.MonthlyTrend = monthlyTrend(txs)

	if a.TotalSpent < HighSpendingThreshold {
		a.Alerts = append(a.Alerts, model.Alert{
			Type:    model.AlertHighSpending,
			Message: "Vos dépenses sont élevées ce mois-ci",
		})
	}
	return a
}

// categorySpend sums the expenses booked under c. The result is <= 0.
func categorySpend(txs []model.Transaction, c model.Category) float64 {
	total := 0.0
	for _, t := range txs {
		if t.Category == c && t.Amount < 0 {
			total += t.Amount
		}
	}
	return total
}

func monthlyTrend(txs []model.Transaction) []model.MonthlyAmount {
	byMonth := make(map[string]float64)
	for _, t := range txs {
		byMonth[fmt.Sprintf("%d-%02d", t.Year, t.Month)] += t.Amount
	}
	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	trend := make([]model.MonthlyAmount, 0, len(months))
	for _, m := range months {
		trend = append(trend, model.MonthlyAmount{Month: m, Amount: byMonth[m]})
	}
	return trend
}

// BudgetAlerts returns only the budget_exceeded alerts of a.
func BudgetAlerts(a model.Analysis) []model.Alert {
	var out []model.Alert
	for _, al := range a.Alerts {
		if al.Type == model.AlertBudgetExceeded {
			out = append(out, al)
		}
	}
	return out
}
