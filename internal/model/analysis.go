package model

import "encoding/json"

// AlertType identifies the rule that raised an alert.
type AlertType string

const (
	AlertBudgetExceeded AlertType = "budget_exceeded"
	AlertHighSpending   AlertType = "high_spending"
)

// CategorySpend is one entry of the per-category breakdown.
type CategorySpend struct {
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// Alert is raised by the spending analysis.
type Alert struct {
	Type     AlertType `json:"type"`
	Category Category  `json:"category,omitempty"`
	Spent    float64   `json:"spent,omitempty"`
	Budget   float64   `json:"budget,omitempty"`
	Message  string    `json:"message,omitempty"`
}

// MarshalJSON always writes spent and budget on budget_exceeded alerts, a zero
// budget included. Other alert types carry neither.
func (a Alert) MarshalJSON() ([]byte, error) {
	type plain Alert
	if a.Type != AlertBudgetExceeded {
		return json.Marshal(plain(a))
	}
	return json.Marshal(struct {
		Type     AlertType `json:"type"`
		Category Category  `json:"category"`
		Spent    float64   `json:"spent"`
		Budget   float64   `json:"budget"`
		Message  string    `json:"message,omitempty"`
	}{a.Type, a.Category, a.Spent, a.Budget, a.Message})
}

// MonthlyAmount is the net amount booked in one YYYY-MM month.
type MonthlyAmount struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// Analysis is derived from the ledger on demand.
type Analysis struct {
	TotalSpent   float64                    `json:"total_spent"`
	TotalIncome  float64                    `json:"total_income"`
	ByCategory   map[Category]CategorySpend `json:"by_category"`
	MonthlyTrend []MonthlyAmount            `json:"monthly_trend"`
	Alerts       []Alert                    `json:"alerts"`
}

// Empty reports whether the analysis was computed over an empty ledger.
func (a Analysis) Empty() bool {
	return a.ByCategory == nil && a.MonthlyTrend == nil && a.TotalSpent == 0 && a.TotalIncome == 0
}

// RecommendationType orders recommendations by urgency.
type RecommendationType string

const (
	RecommendationCritical   RecommendationType = "critical"
	RecommendationSuggestion RecommendationType = "suggestion"
	RecommendationSavings    RecommendationType = "savings"
)

// Recommendation is one piece of savings advice.
type Recommendation struct {
	Type    RecommendationType `json:"type"`
	Title   string             `json:"title"`
	Message string             `json:"message"`
}

// Statistics summarizes the whole ledger.
type Statistics struct {
	TotalTransactions    int     `json:"total_transactions"`
	AverageIncome        float64 `json:"average_income"`
	AverageExpense       float64 `json:"average_expense"`
	TotalIncome          float64 `json:"total_income"`
	TotalExpenses        float64 `json:"total_expenses"`
	SavingsRate          float64 `json:"savings_rate"`
	LargestIncome        float64 `json:"largest_income"`
	LargestExpense       float64 `json:"largest_expense"`
	TransactionFrequency float64 `json:"transaction_frequency"`
}

// DayActivity aggregates the transactions of a single day.
type DayActivity struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

// WeeklyReport covers the last seven days.
type WeeklyReport struct {
	Total         float64                `json:"total"`
	Income        float64                `json:"income"`
	Expenses      float64                `json:"expenses"`
	Count         int                    `json:"count"`
	ByDay         map[string]DayActivity `json:"by_day"`
	TopCategories map[Category]float64   `json:"top_categories"`
}
