package analysis

import (
	"math"
	"strings"
	"time"

	"MoneyWise/internal/calculator"
	"MoneyWise/internal/model"
)

// MinWeeklyReportRecords is the history required before a weekly report is produced.
const MinWeeklyReportRecords = 7

// ComputeStatistics summarizes the ledger as of now. Dates are interpreted in now's location.
func ComputeStatistics(txs []model.Transaction, now time.Time) model.Statistics {
	if len(txs) == 0 {
		return model.Statistics{}
	}

	var incomes, expenses []float64
	for _, t := range txs {
		switch {
		case t.Amount > 0:
			incomes = append(incomes, t.Amount)
		case t.Amount < 0:
			expenses = append(expenses, t.Amount)
		}
	}

	totalIncome := calculator.Sum(incomes)
	totalExpenses := math.Abs(calculator.Sum(expenses))

	st := model.Statistics{
		TotalTransactions: len(txs),
		AverageIncome:     calculator.Mean(incomes),
		AverageExpense:    calculator.Mean(expenses),
		TotalIncome:       totalIncome,
		TotalExpenses:     totalExpenses,
	}
	if totalIncome > 0 {
		st.SavingsRate = (totalIncome - totalExpenses) / totalIncome * 100
	}
	if high, _, ok := calculator.Extremes(incomes); ok {
		st.LargestIncome = high
	}
	if _, low, ok := calculator.Extremes(expenses); ok {
		st.LargestExpense = low
	}

	days := 1
	if first := txs[0].Time(now.Location()); !first.IsZero() {
		if d := int(now.Sub(first).Hours() / 24); d > days {
			days = d
		}
	}
	st.TransactionFrequency = float64(len(txs)) / float64(days)
	return st
}

// BuildWeeklyReport aggregates the transactions of the last seven days. ok is false when
// the ledger holds fewer than MinWeeklyReportRecords transactions.
func BuildWeeklyReport(txs []model.Transaction, now time.Time) (report model.WeeklyReport, ok bool) {
	if len(txs) < MinWeeklyReportRecords {
		return model.WeeklyReport{}, false
	}

	weekAgo := now.AddDate(0, 0, -7)
	var recent []model.Transaction
	for _, t := range txs {
		if ts := t.Time(now.Location()); !ts.IsZero() && !ts.Before(weekAgo) {
			recent = append(recent, t)
		}
	}

	report = model.WeeklyReport{
		Count:         len(recent),
		ByDay:         make(map[string]model.DayActivity, 7),
		TopCategories: make(map[model.Category]float64),
	}
	for _, t := range recent {
		report.Total += t.Amount
		switch {
		case t.Amount > 0:
			report.Income += t.Amount
		case t.Amount < 0:
			report.Expenses += t.Amount
		}
	}
	report.Expenses = math.Abs(report.Expenses)

	for i := 0; i < 7; i++ {
		day := now.AddDate(0, 0, -i).Format("2006-01-02")
		var act model.DayActivity
		for _, t := range recent {
			if strings.HasPrefix(t.Date, day) {
				act.Count++
				act.Total += t.Amount
			}
		}
		report.ByDay[day] = act
	}

	for _, c := range model.Categories {
		if spent := categorySpend(recent, c); spent < 0 {
			report.TopCategories[c] = math.Abs(spent)
		}
	}
	return report, true
}
