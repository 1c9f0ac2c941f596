package analysis

import (
	"math"
	"testing"
	"time"

	"MoneyWise/internal/model"
)

var day0 = time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)

type entry struct {
	amount   float64
	category model.Category
	offset   int // days after day0
}

func build(entries ...entry) []model.Transaction {
	txs := make([]model.Transaction, len(entries))
	for i, e := range entries {
		txs[i] = model.NewTransaction(i, e.amount, e.category, "", day0.AddDate(0, 0, e.offset))
	}
	return txs
}

func approx(a, b float64) bool { return math.Abs(a-b) < 0.05 }

func TestAnalyze_SalaryRentFood(t *testing.T) {
	txs := build(
		entry{2500, "salaire", 0},
		entry{-800, model.CategoryLoyer, 0},
		entry{-300, model.CategoryNourriture, 0},
	)
	a := Analyze(txs, DefaultBudgets(DefaultBudget))

	if a.TotalIncome != 2500 {
		t.Errorf("expected total_income 2500, got %.2f", a.TotalIncome)
	}
	if a.TotalSpent != -1100 {
		t.Errorf("expected total_spent -1100, got %.2f", a.TotalSpent)
	}
	if got := a.ByCategory[model.CategoryLoyer].Percentage; !approx(got, 72.7) {
		t.Errorf("expected loyer ≈ 72.7%%, got %.2f", got)
	}
	if got := a.ByCategory[model.CategoryNourriture].Percentage; !approx(got, 27.3) {
		t.Errorf("expected nourriture ≈ 27.3%%, got %.2f", got)
	}
	if len(a.ByCategory) != 2 {
		t.Errorf("expected 2 categories with spend, got %d", len(a.ByCategory))
	}

	budget := BudgetAlerts(a)
	if len(budget) != 1 || budget[0].Category != model.CategoryLoyer {
		t.Fatalf("expected one budget alert for loyer, got %+v", budget)
	}
	if budget[0].Spent != 800 || budget[0].Budget != 500 {
		t.Errorf("expected spent 800 / budget 500, got %.0f / %.0f", budget[0].Spent, budget[0].Budget)
	}

	var high bool
	for _, al := range a.Alerts {
		if al.Type == model.AlertHighSpending {
			high = true
		}
	}
	if !high {
		t.Error("expected high spending alert when total spent < -1000")
	}
}

func TestAnalyze_Empty(t *testing.T) {
	a := Analyze(nil, DefaultBudgets(DefaultBudget))
	if !a.Empty() {
		t.Errorf("expected empty analysis, got %+v", a)
	}
}

func TestAnalyze_MonthlyTrendSorted(t *testing.T) {
	txs := build(
		entry{-100, model.CategoryTransport, 40}, // 2025-02
		entry{-50, model.CategoryTransport, 0},   // 2025-01
		entry{200, "prime", 360},                 // 2026-01
		entry{-25, model.CategoryLoisirs, 1},     // 2025-01
	)
	a := Analyze(txs, DefaultBudgets(DefaultBudget))
	want := []model.MonthlyAmount{
		{Month: "2025-01", Amount: -75},
		{Month: "2025-02", Amount: -100},
		{Month: "2026-01", Amount: 200},
	}
	if len(a.MonthlyTrend) != len(want) {
		t.Fatalf("expected %d months, got %+v", len(want), a.MonthlyTrend)
	}
	for i, w := range want {
		if a.MonthlyTrend[i] != w {
			t.Errorf("month %d: expected %+v, got %+v", i, w, a.MonthlyTrend[i])
		}
	}
	for _, al := range a.Alerts {
		if al.Type == model.AlertHighSpending {
			t.Error("unexpected high spending alert for total spent -175")
		}
	}
}

func TestAnalyze_CustomBudget(t *testing.T) {
	txs := build(entry{-300, model.CategoryNourriture, 0})
	budgets := DefaultBudgets(DefaultBudget)
	budgets[model.CategoryNourriture] = 250
	if alerts := BudgetAlerts(Analyze(txs, budgets)); len(alerts) != 1 {
		t.Errorf("expected nourriture alert with budget 250, got %+v", alerts)
	}
}

func TestRecommend(t *testing.T) {
	tests := []struct {
		name  string
		txs   []model.Transaction
		types []model.RecommendationType
	}{
		{
			name: "no income",
			txs:  build(entry{-300, model.CategoryLoyer, 0}),
		},
		{
			name:  "healthy high earner",
			txs:   build(entry{2500, "salaire", 0}, entry{-800, model.CategoryLoyer, 0}),
			types: []model.RecommendationType{model.RecommendationSuggestion, model.RecommendationSavings},
		},
		{
			name:  "overspending",
			txs:   build(entry{1000, "salaire", 0}, entry{-900, model.CategoryShopping, 0}),
			types: []model.RecommendationType{model.RecommendationCritical, model.RecommendationSuggestion},
		},
		{
			name:  "income only",
			txs:   build(entry{3000, "salaire", 0}),
			types: []model.RecommendationType{model.RecommendationSavings},
		},
	}
	for _, tt := range tests {
		recs := Recommend(Analyze(tt.txs, DefaultBudgets(DefaultBudget)))
		if len(recs) != len(tt.types) {
			t.Errorf("%s: expected %d recommendations, got %+v", tt.name, len(tt.types), recs)
			continue
		}
		for i, typ := range tt.types {
			if recs[i].Type != typ {
				t.Errorf("%s: recommendation %d expected %q, got %q", tt.name, i, typ, recs[i].Type)
			}
		}
	}
}

func TestRecommend_CriticalMessage(t *testing.T) {
	recs := Recommend(Analyze(build(entry{1000, "salaire", 0}, entry{-900, model.CategoryShopping, 0}), nil))
	if recs[0].Message != "Vous dépensez 90.0% de vos revenus" {
		t.Errorf("unexpected critical message: %q", recs[0].Message)
	}
	if recs[1].Message != "Pensez à réduire vos dépenses en shopping" {
		t.Errorf("unexpected suggestion message: %q", recs[1].Message)
	}
}

func TestTopCategory_TieGoesToEnumerationOrder(t *testing.T) {
	txs := build(
		entry{-200, model.CategoryShopping, 0},
		entry{-200, model.CategoryTransport, 0},
		entry{-100, model.CategoryLoyer, 0},
	)
	top, ok := TopCategory(Analyze(txs, nil))
	if !ok || top != model.CategoryTransport {
		t.Errorf("expected transport to win the tie, got %q (ok=%v)", top, ok)
	}
	if _, ok := TopCategory(model.Analysis{}); ok {
		t.Error("expected no top category for an empty analysis")
	}
}

func TestComputeStatistics(t *testing.T) {
	txs := build(
		entry{2000, "salaire", 0},
		entry{-500, model.CategoryLoyer, 1},
		entry{-100, model.CategoryNourriture, 2},
		entry{1000, "prime", 3},
	)
	st := ComputeStatistics(txs, day0.AddDate(0, 0, 10))

	if st.TotalTransactions != 4 {
		t.Errorf("expected 4 transactions, got %d", st.TotalTransactions)
	}
	if st.AverageIncome != 1500 || st.AverageExpense != -300 {
		t.Errorf("expected averages 1500 / -300, got %.0f / %.0f", st.AverageIncome, st.AverageExpense)
	}
	if st.TotalExpenses != 600 || st.TotalIncome != 3000 {
		t.Errorf("expected totals 3000 / 600, got %.0f / %.0f", st.TotalIncome, st.TotalExpenses)
	}
	if st.SavingsRate != 80 {
		t.Errorf("expected savings rate 80, got %.2f", st.SavingsRate)
	}
	if st.LargestIncome != 2000 || st.LargestExpense != -500 {
		t.Errorf("expected largest 2000 / -500, got %.0f / %.0f", st.LargestIncome, st.LargestExpense)
	}
	if st.TransactionFrequency != 0.4 {
		t.Errorf("expected frequency 0.4/day, got %v", st.TransactionFrequency)
	}

	if empty := ComputeStatistics(nil, day0); empty.TotalTransactions != 0 {
		t.Errorf("expected zero statistics, got %+v", empty)
	}
}

func TestBuildWeeklyReport(t *testing.T) {
	if _, ok := BuildWeeklyReport(build(entry{-10, model.CategoryLoyer, 0}), day0); ok {
		t.Error("expected no report below 7 transactions")
	}

	txs := build(
		entry{-10, model.CategoryNourriture, 0},  // too old
		entry{-10, model.CategoryNourriture, 1},  // too old
		entry{-10, model.CategoryNourriture, 2},  // too old
		entry{-20, model.CategoryNourriture, 8},
		entry{-30, model.CategoryTransport, 9},
		entry{100, "prime", 9},
		entry{-40, model.CategoryNourriture, 10},
	)
	now := day0.AddDate(0, 0, 10)
	r, ok := BuildWeeklyReport(txs, now)
	if !ok {
		t.Fatal("expected a weekly report")
	}
	if r.Count != 4 {
		t.Errorf("expected 4 recent transactions, got %d", r.Count)
	}
	if r.Total != 10 || r.Income != 100 || r.Expenses != 90 {
		t.Errorf("expected total/income/expenses 10/100/90, got %.0f/%.0f/%.0f", r.Total, r.Income, r.Expenses)
	}
	if len(r.ByDay) != 7 {
		t.Errorf("expected 7 days, got %d", len(r.ByDay))
	}
	if d := r.ByDay[now.AddDate(0, 0, -1).Format("2006-01-02")]; d.Count != 2 || d.Total != 70 {
		t.Errorf("expected yesterday count 2 total 70, got %+v", d)
	}
	if r.TopCategories[model.CategoryNourriture] != 60 || r.TopCategories[model.CategoryTransport] != 30 {
		t.Errorf("unexpected top categories: %+v", r.TopCategories)
	}
}
