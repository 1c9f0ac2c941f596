package analysis

import (
	"fmt"
	"math"

	"MoneyWise/internal/model"
)

const (
	// CriticalSpendRatio is the spend/income ratio above which spending must be cut.
	CriticalSpendRatio = 0.8
	// SavingsIncomeThreshold enables the generic 20% savings advice.
	SavingsIncomeThreshold = 2000.0
)

// Recommend derives savings advice from an analysis, in the fixed order
// critical, suggestion, savings. Each rule fires independently.
func Recommend(a model.Analysis) []model.Recommendation {
	recs := []model.Recommendation{}

	if a.TotalIncome > 0 {
		ratio := math.Abs(a.TotalSpent) / a.TotalIncome
		if ratio > CriticalSpendRatio {
			recs = append(recs, model.Recommendation{
				Type:    model.RecommendationCritical,
				Title:   "Réduisez vos dépenses",
				Message: fmt.Sprintf("Vous dépensez %.1f%% de vos revenus", ratio*100),
			})
		}

		if top, ok := TopCategory(a); ok {
			recs = append(recs, model.Recommendation{
				Type:    model.RecommendationSuggestion,
				Title:   "Optimisation des dépenses",
				Message: fmt.Sprintf("Pensez à réduire vos dépenses en %s", top),
			})
		}
	}

	if a.TotalIncome > SavingsIncomeThreshold {
		recs = append(recs, model.Recommendation{
			Type:    model.RecommendationSavings,
			Title:   "Épargnez 20%",
			Message: "Essayez d'épargner au moins 20% de vos revenus",
		})
	}
	return recs
}

// TopCategory returns the category with the largest spend. Ties go to the category that
// comes first in model.Categories.
func TopCategory(a model.Analysis) (model.Category, bool) {
	var (
		top   model.Category
		best  float64
		found bool
	)
	for _, c := range model.Categories {
		spend, ok := a.ByCategory[c]
		if !ok {
			continue
		}
		if !found || spend.Amount > best {
			top, best, found = c, spend.Amount, true
		}
	}
	return top, found
}
