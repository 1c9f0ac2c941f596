package ledger

import (
	"fmt"

	"MoneyWise/internal/model"
)

// SampleEntry is one row of the demo data set.
type SampleEntry struct {
	Amount      float64
	Category    model.Category
	Description string
}

// SampleData is a month of typical household cash flow.
var SampleData = []SampleEntry{
	{2500, "salaire", "Salaire mensuel"},
	{-800, model.CategoryLoyer, "Loyer appartement"},
	{-300, model.CategoryNourriture, "Courses semaine"},
	{-150, model.CategoryTransport, "Essence"},
	{-200, model.CategoryLoisirs, "Restaurant"},
	{-100, model.CategorySante, "Médecin"},
	{-50, model.CategoryEducation, "Livres"},
	{500, model.CategoryAutres, "Prime"},
	{-120, model.CategoryNourriture, "Supermarché"},
	{-80, model.CategoryTransport, "Taxi"},
}

// SeedDemo ingests SampleData and then forces a retrain. It returns the ledger length.
func SeedDemo(a *Assistant) (int, error) {
	for _, e := range SampleData {
		if _, err := a.Ingest(e.Amount, e.Category, e.Description); err != nil {
			return len(a.transactions), fmt.Errorf("seed %q: %w", e.Description, err)
		}
	}
	if _, err := a.Retrain(); err != nil {
		return len(a.transactions), fmt.Errorf("retrain after seed: %w", err)
	}
	return len(a.transactions), nil
}
