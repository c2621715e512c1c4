// Package roi defines the data structures for fleet return-on-investment
// inputs and results and includes the engine that computes the metrics.
package roi

import (
	"github.com/oceanworks/fleet-roi/pkg/catalog"
	"github.com/oceanworks/fleet-roi/pkg/constants"
	"go.uber.org/zap"
)

// FleetParameters holds the fleet-wide fuel and operating inputs. All fields
// must be positive; OperatingDays may not exceed 365. Monetary values are
// USD, fuel quantities are metric tons.
type FleetParameters struct {
	FleetSize                int     `json:"fleetSize" yaml:"fleetSize"`
	FuelPricePerTon          float64 `json:"fuelPricePerTon" yaml:"fuelPricePerTon"`
	DailyFuelConsumptionTons float64 `json:"dailyFuelConsumptionTons" yaml:"dailyFuelConsumptionTons"`
	OperatingDays            int     `json:"operatingDays" yaml:"operatingDays"`
}

// Selection records whether one catalog application is adopted and at what
// savings percentage. SavingPercent is ignored (treated as zero) when
// Selected is false.
type Selection struct {
	Selected      bool    `json:"selected" yaml:"selected"`
	SavingPercent float64 `json:"savingPercent" yaml:"savingPercent"`
}

// Selections maps application name to its Selection.
type Selections map[string]Selection

// DefaultSelections returns the selection state the dashboard starts from:
// every catalog application at its default saving percentage, selected when
// that default is non-zero.
func DefaultSelections() Selections {
	selections := make(Selections, len(catalog.Default()))
	for _, app := range catalog.Default() {
		selections[app.Name] = Selection{
			Selected:      app.DefaultSelected(),
			SavingPercent: app.DefaultSavingPct,
		}
	}
	return selections
}

// YearMetrics is one point of the 3-year projection series. ROI for year n is
// computed against that year's cumulative license cost with the same annual
// savings repeating identically every year.
type YearMetrics struct {
	Year              int     `json:"year"`
	CumulativeSavings float64 `json:"cumulativeSavings"`
	ROIPercent        Ratio   `json:"roiPercent"`
	FuelSavedTons     float64 `json:"fuelSavedTons"`
}

// ThreeYearMetrics holds the linear 3-year extrapolation: flat recurring
// license fee, flat recurring savings, no discounting.
type ThreeYearMetrics struct {
	LicenseCostTotal     float64       `json:"licenseCostTotal"`
	TotalSavings         float64       `json:"totalSavings"`
	ROIPercent           Ratio         `json:"roiPercent"`
	FuelSavedTons        float64       `json:"fuelSavedTons"`
	EmissionsReducedTons float64       `json:"emissionsReducedTons"`
	YearlySeries         []YearMetrics `json:"yearlySeries"`
}

// MetricsResult is the full derived metrics record for one evaluation.
// Monetary fields are USD, fuel and emissions are metric tons. ThreeYear is
// nil unless the 3-year view was requested.
type MetricsResult struct {
	LicenseCostAnnual     float64            `json:"licenseCostAnnual"`
	BaselineFuelCost      float64            `json:"baselineFuelCost"`
	PerApplicationSavings map[string]float64 `json:"perApplicationSavings"`
	TotalSavingsAnnual    float64            `json:"totalSavingsAnnual"`
	PaybackMonths         Ratio              `json:"paybackMonths"`
	ROIPercentAnnual      Ratio              `json:"roiPercentAnnual"`
	FuelSavedTons         float64            `json:"fuelSavedTons"`
	EmissionsReducedTons  float64            `json:"emissionsReducedTons"`
	ThreeYear             *ThreeYearMetrics  `json:"threeYear,omitempty"`
}

// Engine computes ROI metrics. It holds no state beyond a logger; every
// evaluation is independent and deterministic.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates an ROI engine with the given logger. If logger is nil, it
// will use a no-op logger to prevent panics.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// ComputeMetrics derives the full metrics record from fleet parameters and
// application selections. It is a pure function of its inputs: no side
// effects, no mutation, and identical inputs produce identical outputs.
// Inputs are assumed validated (see ValidateInputs); the engine does not
// clamp out-of-range saving percentages.
func (e *Engine) ComputeMetrics(fleet FleetParameters, selections Selections, includeThreeYear bool) MetricsResult {
	licenseCostAnnual := float64(fleet.FleetSize) * constants.LicenseCostPerVesselPerMonth * constants.MonthsPerYear
	baselineFuelCost := float64(fleet.FleetSize) * fleet.DailyFuelConsumptionTons * float64(fleet.OperatingDays) * fleet.FuelPricePerTon

	perApplicationSavings := make(map[string]float64, len(catalog.Default()))
	totalSavingsAnnual := 0.0
	for _, app := range catalog.Default() {
		pct := 0.0
		if sel, ok := selections[app.Name]; ok && sel.Selected {
			pct = sel.SavingPercent
		}
		savingAmount := baselineFuelCost * pct / constants.PercentageMultiplier
		perApplicationSavings[app.Name] = savingAmount
		totalSavingsAnnual += savingAmount
	}

	paybackMonths := UndefinedRatio()
	if totalSavingsAnnual != 0 {
		paybackMonths = DefinedRatio(licenseCostAnnual / totalSavingsAnnual * constants.MonthsPerYear)
	}

	// License cost of zero is unreachable under valid input (fleet size must
	// be positive) but the engine stays total regardless of validation order.
	roiPercentAnnual := UndefinedRatio()
	if licenseCostAnnual != 0 {
		roiPercentAnnual = DefinedRatio((totalSavingsAnnual - licenseCostAnnual) / licenseCostAnnual * constants.PercentageMultiplier)
	}

	// Dollar savings converted back to tons at the fleet-wide fuel price, not
	// a per-application physical sum.
	fuelSavedTons := totalSavingsAnnual / fleet.FuelPricePerTon
	emissionsReducedTons := fuelSavedTons * constants.CO2TonsPerFuelTon

	result := MetricsResult{
		LicenseCostAnnual:     licenseCostAnnual,
		BaselineFuelCost:      baselineFuelCost,
		PerApplicationSavings: perApplicationSavings,
		TotalSavingsAnnual:    totalSavingsAnnual,
		PaybackMonths:         paybackMonths,
		ROIPercentAnnual:      roiPercentAnnual,
		FuelSavedTons:         fuelSavedTons,
		EmissionsReducedTons:  emissionsReducedTons,
	}

	if includeThreeYear {
		result.ThreeYear = e.computeThreeYear(licenseCostAnnual, totalSavingsAnnual, fuelSavedTons, emissionsReducedTons)
	}

	e.logger.Debug("metrics computed",
		zap.String("op", "roi.ComputeMetrics"),
		zap.Float64("licenseCostAnnual", licenseCostAnnual),
		zap.Float64("baselineFuelCost", baselineFuelCost),
		zap.Float64("totalSavingsAnnual", totalSavingsAnnual),
		zap.Bool("threeYear", includeThreeYear),
	)

	return result
}

// computeThreeYear extrapolates the annual metrics linearly over the horizon.
func (e *Engine) computeThreeYear(licenseCostAnnual, totalSavingsAnnual, fuelSavedTons, emissionsReducedTons float64) *ThreeYearMetrics {
	licenseCostTotal := licenseCostAnnual * constants.HorizonYears
	totalSavings := totalSavingsAnnual * constants.HorizonYears

	roiPercent := UndefinedRatio()
	if licenseCostTotal != 0 {
		roiPercent = DefinedRatio((totalSavings - licenseCostTotal) / licenseCostTotal * constants.PercentageMultiplier)
	}

	series := make([]YearMetrics, 0, constants.HorizonYears)
	for year := 1; year <= constants.HorizonYears; year++ {
		cumulativeLicense := licenseCostAnnual * float64(year)
		cumulativeSavings := totalSavingsAnnual * float64(year)
		yearROI := UndefinedRatio()
		if cumulativeLicense != 0 {
			yearROI = DefinedRatio((cumulativeSavings - cumulativeLicense) / cumulativeLicense * constants.PercentageMultiplier)
		}
		series = append(series, YearMetrics{
			Year:              year,
			CumulativeSavings: cumulativeSavings,
			ROIPercent:        yearROI,
			FuelSavedTons:     fuelSavedTons,
		})
	}

	return &ThreeYearMetrics{
		LicenseCostTotal:     licenseCostTotal,
		TotalSavings:         totalSavings,
		ROIPercent:           roiPercent,
		FuelSavedTons:        fuelSavedTons * constants.HorizonYears,
		EmissionsReducedTons: emissionsReducedTons * constants.HorizonYears,
		YearlySeries:         series,
	}
}
