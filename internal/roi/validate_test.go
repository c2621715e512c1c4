package roi

import (
	"strings"
	"testing"

	"go.uber.org/multierr"
)

func TestValidateInputs(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*FleetParameters, Selections)
		wantErrors int
		wantText   string
	}{
		{
			name:       "valid reference inputs",
			mutate:     func(*FleetParameters, Selections) {},
			wantErrors: 0,
		},
		{
			name: "zero fleet size",
			mutate: func(f *FleetParameters, _ Selections) {
				f.FleetSize = 0
			},
			wantErrors: 1,
			wantText:   "fleetSize",
		},
		{
			name: "negative fuel price",
			mutate: func(f *FleetParameters, _ Selections) {
				f.FuelPricePerTon = -550
			},
			wantErrors: 1,
			wantText:   "fuelPricePerTon",
		},
		{
			name: "zero daily consumption",
			mutate: func(f *FleetParameters, _ Selections) {
				f.DailyFuelConsumptionTons = 0
			},
			wantErrors: 1,
			wantText:   "dailyFuelConsumptionTons",
		},
		{
			name: "operating days over a year",
			mutate: func(f *FleetParameters, _ Selections) {
				f.OperatingDays = 366
			},
			wantErrors: 1,
			wantText:   "operatingDays",
		},
		{
			name: "zero operating days",
			mutate: func(f *FleetParameters, _ Selections) {
				f.OperatingDays = 0
			},
			wantErrors: 1,
			wantText:   "operatingDays",
		},
		{
			name: "saving percent above catalog max",
			mutate: func(_ *FleetParameters, s Selections) {
				s["Hull Maintainance App"] = Selection{Selected: true, SavingPercent: 15.1}
			},
			wantErrors: 1,
			wantText:   "outside allowed range",
		},
		{
			name: "negative saving percent",
			mutate: func(_ *FleetParameters, s Selections) {
				s["Emission App"] = Selection{Selected: true, SavingPercent: -1}
			},
			wantErrors: 1,
			wantText:   "outside allowed range",
		},
		{
			name: "out-of-range slider on unselected application is ignored",
			mutate: func(_ *FleetParameters, s Selections) {
				s["Emission App"] = Selection{Selected: false, SavingPercent: 99}
			},
			wantErrors: 0,
		},
		{
			name: "unknown application",
			mutate: func(_ *FleetParameters, s Selections) {
				s["Weather Routing App"] = Selection{Selected: true, SavingPercent: 1}
			},
			wantErrors: 1,
			wantText:   "unknown application",
		},
		{
			name: "multiple problems aggregated",
			mutate: func(f *FleetParameters, s Selections) {
				f.FleetSize = -1
				f.FuelPricePerTon = 0
				s["Hull Maintainance App"] = Selection{Selected: true, SavingPercent: 20}
			},
			wantErrors: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fleet := referenceFleet()
			selections := hullOnlySelections()
			tt.mutate(&fleet, selections)

			err := ValidateInputs(fleet, selections)
			if tt.wantErrors == 0 {
				if err != nil {
					t.Fatalf("ValidateInputs() error = %v, expected nil", err)
				}
				return
			}

			if err == nil {
				t.Fatal("ValidateInputs() = nil, expected error")
			}
			if got := len(multierr.Errors(err)); got != tt.wantErrors {
				t.Errorf("error count = %d, expected %d (err: %v)", got, tt.wantErrors, err)
			}
			if tt.wantText != "" && !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantText)
			}
		})
	}
}

func TestValidateInputsBoundaryValues(t *testing.T) {
	fleet := referenceFleet()
	fleet.OperatingDays = 365

	selections := hullOnlySelections()
	// Catalog min and max are inclusive.
	selections["Hull Maintainance App"] = Selection{Selected: true, SavingPercent: 15.0}
	selections["Bunker management"] = Selection{Selected: true, SavingPercent: 0.0}

	if err := ValidateInputs(fleet, selections); err != nil {
		t.Errorf("ValidateInputs() error = %v, expected nil at inclusive bounds", err)
	}
}
