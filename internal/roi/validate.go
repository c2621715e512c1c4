package roi

import (
	"fmt"
	"sort"

	"github.com/oceanworks/fleet-roi/pkg/catalog"
	"github.com/oceanworks/fleet-roi/pkg/constants"
	"go.uber.org/multierr"
)

// ValidateInputs checks fleet parameters and application selections against
// the engine's contract. It is the caller's boundary before ComputeMetrics:
// the engine itself never clamps or rejects. All problems are reported in a
// single aggregated error; a nil return means the inputs are safe to compute.
func ValidateInputs(fleet FleetParameters, selections Selections) error {
	var err error

	if fleet.FleetSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("fleetSize must be a positive integer, got %d", fleet.FleetSize))
	}
	if fleet.FuelPricePerTon <= 0 {
		err = multierr.Append(err, fmt.Errorf("fuelPricePerTon must be positive, got %g", fleet.FuelPricePerTon))
	}
	if fleet.DailyFuelConsumptionTons <= 0 {
		err = multierr.Append(err, fmt.Errorf("dailyFuelConsumptionTons must be positive, got %g", fleet.DailyFuelConsumptionTons))
	}
	if fleet.OperatingDays <= 0 {
		err = multierr.Append(err, fmt.Errorf("operatingDays must be a positive integer, got %d", fleet.OperatingDays))
	} else if fleet.OperatingDays > constants.MaxOperatingDays {
		err = multierr.Append(err, fmt.Errorf("operatingDays must not exceed %d, got %d", constants.MaxOperatingDays, fleet.OperatingDays))
	}

	// Sorted iteration keeps the aggregated error message deterministic.
	names := make([]string, 0, len(selections))
	for name := range selections {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		sel := selections[name]
		app, ok := catalog.Lookup(name)
		if !ok {
			err = multierr.Append(err, fmt.Errorf("unknown application %q", name))
			continue
		}
		// SavingPercent is meaningless for unselected applications; bounds
		// apply only when selected.
		if sel.Selected && !app.InRange(sel.SavingPercent) {
			err = multierr.Append(err, fmt.Errorf("application %q saving percent %g outside allowed range [%g, %g]",
				name, sel.SavingPercent, app.MinSavingPct, app.MaxSavingPct))
		}
	}

	return err
}
