// Package catalog defines the fixed set of fuel-saving applications offered
// to a fleet, with the allowed savings range for each.
package catalog

// Application describes one offering: a software product that reduces vessel
// fuel consumption by a configurable percentage within [MinSavingPct,
// MaxSavingPct].
type Application struct {
	Name             string
	Icon             string
	MinSavingPct     float64
	MaxSavingPct     float64
	DefaultSavingPct float64
}

// InRange reports whether pct lies within the application's allowed savings
// range.
func (a Application) InRange(pct float64) bool {
	return pct >= a.MinSavingPct && pct <= a.MaxSavingPct
}

// DefaultSelected reports whether the application starts selected in the
// dashboard (any application with a non-zero default saving).
func (a Application) DefaultSelected() bool {
	return a.DefaultSavingPct > 0
}

// applications is the process-wide catalog. Order is significant: savings are
// accumulated and displayed in this order.
var applications = []Application{
	{Name: "Hull Maintainance App", Icon: "🛥️", MinSavingPct: 0.0, MaxSavingPct: 15.0, DefaultSavingPct: 3.0},
	{Name: "Voyage Optimization App", Icon: "🧭", MinSavingPct: 0.0, MaxSavingPct: 6.0, DefaultSavingPct: 2.0},
	{Name: "Emission App", Icon: "🌿", MinSavingPct: 0.0, MaxSavingPct: 3.0, DefaultSavingPct: 1.5},
	{Name: "Performance App", Icon: "📊", MinSavingPct: 0.0, MaxSavingPct: 3.0, DefaultSavingPct: 1.0},
	{Name: "Propulsion Pro", Icon: "☁️", MinSavingPct: 0.0, MaxSavingPct: 4.0, DefaultSavingPct: 0.0},
	{Name: "Bunker management", Icon: "⛽", MinSavingPct: 0.0, MaxSavingPct: 7.0, DefaultSavingPct: 0.0},
}

// Default returns the ordered application catalog. The returned slice is a
// copy; callers may not mutate the catalog.
func Default() []Application {
	out := make([]Application, len(applications))
	copy(out, applications)
	return out
}

// Names returns the application names in catalog order.
func Names() []string {
	names := make([]string, len(applications))
	for i, app := range applications {
		names[i] = app.Name
	}
	return names
}

// Lookup returns the application with the given name, if present.
func Lookup(name string) (Application, bool) {
	for _, app := range applications {
		if app.Name == name {
			return app, true
		}
	}
	return Application{}, false
}

// Label returns the display label used by the dashboard: icon plus name.
func (a Application) Label() string {
	return a.Icon + " " + a.Name
}
