// Package validator checks configuration sources one at a time and collects
// every problem instead of stopping at the first.
//
// A [Checker] loads each file into its own throwaway Config with a private
// environment, so checking never changes the process environment. INI files
// are checked alone, so interpolation that reaches into another file of the
// same group is reported as an error here even though a grouped load would
// resolve it.
//
//	report := validator.NewChecker(validator.Options{}).Check(ctx, groups, files)
//	if report.HasErrors() {
//		// at least one source would make the aggregate fail
//	}
//
// A [Reporter] renders a [Report] as coloured text or JSON.
package validator
