package notifier

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"MoneyWise/internal/model"
)

// Euro renders an amount with two decimals and a euro sign.
// Infinite and NaN amounts are printed as-is.
func Euro(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return fmt.Sprintf("%v €", v)
	}
	return decimal.NewFromFloat(v).StringFixed(2) + " €"
}

// FormatAnalysis formats the spending analysis into a Telegram message.
func FormatAnalysis(a model.Analysis) string {
	var b strings.Builder
	b.WriteString("📊 <b>Analyse des dépenses</b>\n\n")
	if a.Empty() {
		b.WriteString("Aucune transaction enregistrée.")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("Revenus: %s\n", Euro(a.TotalIncome)))
	b.WriteString(fmt.Sprintf("Dépenses: %s\n\n", Euro(a.TotalSpent)))

	b.WriteString("<b>Par catégorie:</b>\n")
	for _, c := range model.Categories {
		spend, ok := a.ByCategory[c]
		if !ok || spend.Amount == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("  %s: %s (%.1f%%)\n", c, Euro(spend.Amount), spend.Percentage))
	}

	if len(a.Alerts) > 0 {
		b.WriteString("\n" + FormatAlerts(a.Alerts))
	}
	return b.String()
}

// FormatAlerts lists budget and spending alerts.
func FormatAlerts(alerts []model.Alert) string {
	var b strings.Builder
	b.WriteString("⚠️ <b>Alertes</b>\n")
	for _, al := range alerts {
		switch al.Type {
		case model.AlertBudgetExceeded:
			b.WriteString(fmt.Sprintf("  Budget %s dépassé: %s / %s\n", al.Category, Euro(al.Spent), Euro(al.Budget)))
		default:
			b.WriteString(fmt.Sprintf("  %s\n", al.Message))
		}
	}
	return b.String()
}

// FormatForecast formats a next-week forecast. A nil forecast means too little history.
func FormatForecast(fc *model.Forecast) string {
	var b strings.Builder
	b.WriteString("🔮 <b>Prévisions 7 jours</b>\n\n")
	if fc == nil {
		b.WriteString("Pas assez de données (7 transactions minimum).")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("Prochaine transaction: %s (confiance %.0f%%)\n\n", Euro(fc.PredictedAmount), fc.Confidence*100))
	for _, d := range fc.Next7Days {
		marker := ""
		if d.IsWeekend {
			marker = " 🎉"
		}
		b.WriteString(fmt.Sprintf("  %s %s: %s%s\n", d.Date, d.Day, Euro(d.PredictedAmount), marker))
	}
	return b.String()
}

// FormatRecommendations formats savings advice.
func FormatRecommendations(recs []model.Recommendation) string {
	var b strings.Builder
	b.WriteString("💡 <b>Conseils</b>\n\n")
	if len(recs) == 0 {
		b.WriteString("Rien à signaler, continuez ainsi.")
		return b.String()
	}
	for _, r := range recs {
		icon := "•"
		switch r.Type {
		case model.RecommendationCritical:
			icon = "🚨"
		case model.RecommendationSavings:
			icon = "💰"
		}
		b.WriteString(fmt.Sprintf("%s <b>%s</b>\n   %s\n", icon, r.Title, r.Message))
	}
	return b.String()
}

// FormatBalance formats the running balance.
func FormatBalance(balance float64, count int) string {
	return fmt.Sprintf("💶 <b>Solde</b>: %s (%d transactions)", Euro(balance), count)
}

// FormatWeeklyDigest combines analysis, forecast and advice into the weekly message.
func FormatWeeklyDigest(now time.Time, a model.Analysis, fc *model.Forecast, recs []model.Recommendation) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📅 <b>MoneyWise hebdo</b> | %s\n\n", now.Format("2006-01-02")))
	b.WriteString(FormatAnalysis(a))
	b.WriteString("\n\n")
	b.WriteString(FormatForecast(fc))
	b.WriteString("\n\n")
	b.WriteString(FormatRecommendations(recs))
	return b.String()
}
