// Package output provides utilities for formatting and displaying ROI
// metrics results.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/oceanworks/fleet-roi/internal/roi"
	"github.com/oceanworks/fleet-roi/pkg/catalog"
	"github.com/oceanworks/fleet-roi/pkg/format"
	"github.com/oceanworks/fleet-roi/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(result roi.MetricsResult) {
	fmt.Print(PrettyString(result))
}

// PrettyString renders the metrics the way the dashboard's metric cards do:
// six summary metrics, the per-application savings breakdown, and the 3-year
// projection when present. Applications with zero savings are omitted from
// the breakdown.
func PrettyString(result roi.MetricsResult) string {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	b.WriteString("--- Fleet Applications ROI ---\n")
	p.Fprintf(&b, "Baseline Fuel Cost    | $%.0f\n", result.BaselineFuelCost)
	p.Fprintf(&b, "Annual Savings        | $%.0f\n", result.TotalSavingsAnnual)
	p.Fprintf(&b, "License Cost (Year)   | $%.0f\n", result.LicenseCostAnnual)
	fmt.Fprintf(&b, "Return on Investment  | %s\n", ratioString(result.ROIPercentAnnual, format.Percent))
	fmt.Fprintf(&b, "Payback Period        | %s\n", ratioString(result.PaybackMonths, format.Months))
	p.Fprintf(&b, "Emissions Reduced     | %.0f tCO2\n", result.EmissionsReducedTons)

	b.WriteString("\nSavings by Application\n")
	breakdown := false
	for _, app := range catalog.Default() {
		amount := result.PerApplicationSavings[app.Name]
		if mathutil.IsZero(amount) {
			continue
		}
		breakdown = true
		p.Fprintf(&b, "%s | $%.0f\n", app.Label(), amount)
	}
	if !breakdown {
		b.WriteString("No applications selected with savings.\n")
	}

	if result.ThreeYear != nil {
		b.WriteString("\n3-Year Projection\n")
		p.Fprintf(&b, "Total 3-Year Savings  | $%.0f\n", result.ThreeYear.TotalSavings)
		p.Fprintf(&b, "License Cost (3 Years)| $%.0f\n", result.ThreeYear.LicenseCostTotal)
		fmt.Fprintf(&b, "Return on Investment  | %s\n", ratioString(result.ThreeYear.ROIPercent, format.Percent))
		p.Fprintf(&b, "Fuel Saved            | %.0f MT\n", result.ThreeYear.FuelSavedTons)
		p.Fprintf(&b, "Emissions Reduced     | %.0f tCO2\n", result.ThreeYear.EmissionsReducedTons)
		b.WriteString("\nYear | Cumulative Savings | ROI | Fuel Saved (MT)\n")
		for _, year := range result.ThreeYear.YearlySeries {
			p.Fprintf(&b, "%d | $%.0f | %s | %.0f\n",
				year.Year, year.CumulativeSavings, ratioString(year.ROIPercent, format.Percent), year.FuelSavedTons)
		}
	}

	return b.String()
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(result roi.MetricsResult) {
	fmt.Print(CsvString(result))
}

// CsvString renders the metrics as metric,value,unit rows.
func CsvString(result roi.MetricsResult) string {
	var b strings.Builder
	b.WriteString(`"metric","value","unit"` + "\n")
	writeCsvRow(&b, "baselineFuelCost", fmt.Sprintf("%.2f", result.BaselineFuelCost), "USD")
	writeCsvRow(&b, "licenseCostAnnual", fmt.Sprintf("%.2f", result.LicenseCostAnnual), "USD")
	writeCsvRow(&b, "totalSavingsAnnual", fmt.Sprintf("%.2f", result.TotalSavingsAnnual), "USD")
	writeCsvRow(&b, "paybackMonths", csvRatio(result.PaybackMonths), "months")
	writeCsvRow(&b, "roiPercentAnnual", csvRatio(result.ROIPercentAnnual), "percent")
	writeCsvRow(&b, "fuelSavedTons", fmt.Sprintf("%.2f", result.FuelSavedTons), "MT")
	writeCsvRow(&b, "emissionsReducedTons", fmt.Sprintf("%.2f", result.EmissionsReducedTons), "tCO2")

	for _, app := range catalog.Default() {
		writeCsvRow(&b, "savings: "+app.Name, fmt.Sprintf("%.2f", result.PerApplicationSavings[app.Name]), "USD")
	}

	if result.ThreeYear != nil {
		writeCsvRow(&b, "licenseCostTotal3yr", fmt.Sprintf("%.2f", result.ThreeYear.LicenseCostTotal), "USD")
		writeCsvRow(&b, "totalSavings3yr", fmt.Sprintf("%.2f", result.ThreeYear.TotalSavings), "USD")
		writeCsvRow(&b, "roiPercent3yr", csvRatio(result.ThreeYear.ROIPercent), "percent")
		writeCsvRow(&b, "fuelSaved3yr", fmt.Sprintf("%.2f", result.ThreeYear.FuelSavedTons), "MT")
		writeCsvRow(&b, "emissionsReduced3yr", fmt.Sprintf("%.2f", result.ThreeYear.EmissionsReducedTons), "tCO2")
		for _, year := range result.ThreeYear.YearlySeries {
			writeCsvRow(&b, fmt.Sprintf("cumulativeSavingsYear%d", year.Year), fmt.Sprintf("%.2f", year.CumulativeSavings), "USD")
			writeCsvRow(&b, fmt.Sprintf("roiPercentYear%d", year.Year), csvRatio(year.ROIPercent), "percent")
		}
	}

	return b.String()
}

// JSONFormat outputs the full metrics record as indented JSON.
func JSONFormat(result roi.MetricsResult) error {
	s, err := JSONString(result)
	if err != nil {
		return err
	}
	fmt.Println(s)
	return nil
}

// JSONString renders the metrics record as indented JSON; undefined ratios
// appear as null.
func JSONString(result roi.MetricsResult) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode metrics: %w", err)
	}
	return string(data), nil
}

func writeCsvRow(b *strings.Builder, metric, value, unit string) {
	fmt.Fprintf(b, "%q,%q,%q\n", metric, value, unit)
}

func csvRatio(r roi.Ratio) string {
	if !r.Valid {
		return format.NotApplicable
	}
	return fmt.Sprintf("%.4f", r.Value)
}

func ratioString(r roi.Ratio, render func(float64) string) string {
	if !r.Valid {
		return format.NotApplicable
	}
	return render(r.Value)
}
