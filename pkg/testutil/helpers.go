// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/oceanworks/fleet-roi/internal/roi"
)

// ReferenceFleet returns the fleet parameters of the documented reference
// scenario: 10 vessels, $550/MT fuel, 50 MT/day, 330 operating days.
func ReferenceFleet() roi.FleetParameters {
	return roi.FleetParameters{
		FleetSize:                10,
		FuelPricePerTon:          550,
		DailyFuelConsumptionTons: 50,
		OperatingDays:            330,
	}
}

// HullOnlySelections returns a selection set with only the hull maintenance
// application active at 3.0%, every other catalog application unselected.
func HullOnlySelections() roi.Selections {
	selections := roi.Selections{}
	for _, name := range []string{
		"Voyage Optimization App",
		"Emission App",
		"Performance App",
		"Propulsion Pro",
		"Bunker management",
	} {
		selections[name] = roi.Selection{}
	}
	selections["Hull Maintainance App"] = roi.Selection{Selected: true, SavingPercent: 3.0}
	return selections
}

// NoSelections returns a selection set with every catalog application
// unselected.
func NoSelections() roi.Selections {
	selections := roi.Selections{}
	for _, name := range []string{
		"Hull Maintainance App",
		"Voyage Optimization App",
		"Emission App",
		"Performance App",
		"Propulsion Pro",
		"Bunker management",
	} {
		selections[name] = roi.Selection{}
	}
	return selections
}
