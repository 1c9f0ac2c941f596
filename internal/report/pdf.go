// Package report renders the spending analysis as a printable PDF.
package report

import (
	"bytes"
	"fmt"
	"math"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"

	"MoneyWise/internal/model"
)

// maxRows caps the transaction table.
const maxRows = 200

// Input is everything the PDF shows. Forecast may be nil.
type Input struct {
	Title           string
	GeneratedAt     string
	Balance         float64
	Analysis        model.Analysis
	Forecast        *model.Forecast
	Recommendations []model.Recommendation
	Transactions    []model.Transaction
}

func money(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return fmt.Sprintf("%v €", v)
	}
	return decimal.NewFromFloat(v).StringFixed(2) + " €"
}

// BuildAnalysisPDF renders in as an A4 document.
func BuildAnalysisPDF(in Input) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(14, 14, 14)
	pdf.SetTitle(in.Title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 48)
	pdf.SetTextColor(235, 235, 235)
	pdf.Text(25, 140, "MONEYWISE")

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr(in.Title))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.Cell(0, 6, tr("Généré le "+in.GeneratedAt))
	pdf.Ln(10)

	// Totals
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(248, 248, 248)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 11)
	sumW := []float64{62, 62, 62}
	pdf.CellFormat(sumW[0], 10, "Revenus", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW[1], 10, tr("Dépenses"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW[2], 10, "Solde", "1", 1, "C", true, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(sumW[0], 10, tr(money(in.Analysis.TotalIncome)), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW[1], 10, tr(money(in.Analysis.TotalSpent)), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW[2], 10, tr(money(in.Balance)), "1", 1, "C", false, 0, "")
	pdf.Ln(6)

	// Category breakdown
	section(pdf, tr("Dépenses par catégorie"))
	catW := []float64{70, 60, 56}
	header(pdf, catW, []string{tr("Catégorie"), "Montant", "Part"})
	pdf.SetFont("Helvetica", "", 10)
	for _, c := range model.Categories {
		spend, ok := in.Analysis.ByCategory[c]
		if !ok {
			continue
		}
		pdf.CellFormat(catW[0], 8, string(c), "1", 0, "L", false, 0, "")
		pdf.CellFormat(catW[1], 8, tr(money(spend.Amount)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(catW[2], 8, fmt.Sprintf("%.1f%%", spend.Percentage), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	if len(in.Analysis.Alerts) > 0 {
		section(pdf, "Alertes")
		pdf.SetFont("Helvetica", "", 10)
		for _, al := range in.Analysis.Alerts {
			line := al.Message
			if al.Type == model.AlertBudgetExceeded {
				line = fmt.Sprintf("Budget %s dépassé: %s / %s", al.Category, money(al.Spent), money(al.Budget))
			}
			pdf.MultiCell(0, 6, tr("- "+line), "", "L", false)
		}
		pdf.Ln(4)
	}

	section(pdf, tr("Prévisions"))
	pdf.SetFont("Helvetica", "", 10)
	if in.Forecast == nil {
		pdf.MultiCell(0, 6, tr("Pas assez de données pour la prédiction."), "", "L", false)
	} else {
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("Prochaine transaction: %s (confiance %.0f%%)",
			money(in.Forecast.PredictedAmount), in.Forecast.Confidence*100)), "", "L", false)
		dayW := []float64{50, 50, 86}
		header(pdf, dayW, []string{"Date", "Jour", "Montant"})
		pdf.SetFont("Helvetica", "", 10)
		for _, d := range in.Forecast.Next7Days {
			pdf.CellFormat(dayW[0], 8, d.Date, "1", 0, "C", false, 0, "")
			pdf.CellFormat(dayW[1], 8, d.Day, "1", 0, "C", false, 0, "")
			pdf.CellFormat(dayW[2], 8, tr(money(d.PredictedAmount)), "1", 1, "R", false, 0, "")
		}
	}
	pdf.Ln(4)

	if len(in.Recommendations) > 0 {
		section(pdf, "Conseils")
		for _, r := range in.Recommendations {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.MultiCell(0, 6, tr(r.Title), "", "L", false)
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 6, tr(r.Message), "", "L", false)
		}
		pdf.Ln(4)
	}

	section(pdf, "Transactions")
	txW := []float64{40, 36, 80, 30}
	txHeader := []string{"Date", tr("Catégorie"), "Description", "Montant"}
	header(pdf, txW, txHeader)
	pdf.SetFont("Helvetica", "", 9)
	for i, t := range in.Transactions {
		if i >= maxRows {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.CellFormat(0, 8, tr(fmt.Sprintf("... %d transactions non affichées", len(in.Transactions)-maxRows)), "1", 1, "C", false, 0, "")
			break
		}
		if pdf.GetY() > 270 {
			pdf.AddPage()
			header(pdf, txW, txHeader)
			pdf.SetFont("Helvetica", "", 9)
		}
		pdf.CellFormat(txW[0], 7, t.Date, "1", 0, "C", false, 0, "")
		pdf.CellFormat(txW[1], 7, tr(string(t.Category)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(txW[2], 7, tr(trimTo(t.Description, 48)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(txW[3], 7, tr(money(t.Amount)), "1", 1, "R", false, 0, "")
	}

	pdf.SetY(-18)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 10, tr("Généré par MoneyWise"), "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(20, 20, 20)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
}

func header(pdf *gofpdf.Fpdf, widths []float64, labels []string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(245, 245, 245)
	for i, l := range labels {
		ln := 0
		if i == len(labels)-1 {
			ln = 1
		}
		pdf.CellFormat(widths[i], 8, l, "1", ln, "C", true, 0, "")
	}
}

func trimTo(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
