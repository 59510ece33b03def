// Package thermo provides thermodynamic property correlations for water.
//
// All functions are pure and deterministic: the same temperature always
// yields the same value, which keeps simulation runs reproducible and the
// correlations testable against reference points.
//
// Every correlation has an explicit validity range and returns a
// [flash.DomainError] outside it. Nothing is silently extrapolated: the
// policy here is a hard error, not a clamp.
package thermo
