// Package analysis runs a complete binary hull analysis: chemical potential
// resolution, hull construction, the voltage and volume curves and the
// optional metastable voltage profile.
//
// Configuration comes from a TOML file with HULLVOLT_* environment
// overrides (LoadConfig). Run returns a Report that downstream plotting
// and printing tools consume through WriteJSON or WriteSummary.
package analysis
