package analysis

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"

	"github.com/katalvlaran/hullvolt/structure"
)

// number encodes non-finite floats as the strings "+Inf", "-Inf" and "NaN",
// which plain JSON numbers cannot carry.
type number float64

func (n number) MarshalJSON() ([]byte, error) {
	var f = float64(n)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return []byte(strconv.Quote(strconv.FormatFloat(f, 'g', -1, 64))), nil
	}

	return []byte(strconv.FormatFloat(f, 'g', -1, 64)), nil
}

func numbers(fs []float64) []number {
	var out = make([]number, len(fs))
	for i, f := range fs {
		out[i] = number(f)
	}
	return out
}

type pointView struct {
	Label        string `json:"label"`
	Formula      string `json:"formula"`
	SpaceGroup   string `json:"space_group,omitempty"`
	Stoich       number `json:"stoich"`
	NumA         number `json:"num_a"`
	Formation    number `json:"formation_enthalpy_per_atom"`
	EnthalpyPerB number `json:"enthalpy_per_b"`
	VolumePerB   number `json:"volume_per_b"`
	HullDistance number `json:"hull_distance"`
	Capacity     number `json:"capacity"`
	Stable       bool   `json:"stable"`
	Endpoint     bool   `json:"endpoint,omitempty"`
}

type skippedView struct {
	Index int    `json:"index"`
	Label string `json:"label"`
	Error string `json:"error"`
}

type hullView struct {
	Comp    []number      `json:"comp"`
	Energy  []number      `json:"energy"`
	Points  []pointView   `json:"points"`
	Skipped []skippedView `json:"skipped,omitempty"`
}

type voltageView struct {
	NumA           []number `json:"num_a"`
	Capacity       []number `json:"capacity"`
	Voltage        []number `json:"voltage"`
	Monotonic      bool     `json:"monotonic"`
	AverageVoltage number   `json:"average_voltage"`
	MaxCapacity    number   `json:"max_capacity"`
}

type volumeView struct {
	NumA       []number `json:"num_a"`
	Capacity   []number `json:"capacity"`
	VolumePerB []number `json:"volume_per_b"`
	Ratio      []number `json:"ratio"`
}

type metastableView struct {
	Capacity  []number `json:"capacity"`
	Voltage   []number `json:"voltage"`
	Trials    int      `json:"trials"`
	Converged bool     `json:"converged"`
	Delta     number   `json:"delta"`
}

type reportView struct {
	RunID      string          `json:"run_id"`
	Elements   [2]string       `json:"elements"`
	Cutoff     number          `json:"hull_cutoff"`
	ChemPots   [2]number       `json:"chem_pots"`
	Hull       hullView        `json:"hull"`
	Voltage    *voltageView    `json:"voltage,omitempty"`
	Volume     *volumeView     `json:"volume,omitempty"`
	Metastable *metastableView `json:"metastable,omitempty"`
	Warnings   []string        `json:"warnings,omitempty"`
}

func (r *Report) view() reportView {
	var v = reportView{
		RunID:    r.RunID.String(),
		Elements: r.Elements,
		Cutoff:   number(r.Cutoff),
		ChemPots: [2]number{number(r.Potentials[0].EnthalpyPerAtom), number(r.Potentials[1].EnthalpyPerAtom)},
		Warnings: r.Warnings,
	}
	if h := r.Hull; h != nil {
		v.Hull.Comp = numbers(h.HullComp())
		v.Hull.Energy = numbers(h.HullEnergy())
		var stable = make(map[*structure.Record]bool, len(h.Stable))
		for _, p := range h.Stable {
			stable[p.Record] = true
		}
		for i := range h.Points {
			var p = &h.Points[i]
			v.Hull.Points = append(v.Hull.Points, pointView{
				Label:        p.Record.Label(),
				Formula:      p.Record.Formula(),
				SpaceGroup:   p.Record.SpaceGroup,
				Stoich:       number(p.Comp),
				NumA:         number(p.NumA),
				Formation:    number(p.Formation),
				EnthalpyPerB: number(p.EnthalpyPerB),
				VolumePerB:   number(p.VolumePerB),
				HullDistance: number(p.HullDistance),
				Capacity:     number(p.Record.Capacity),
				Stable:       stable[p.Record],
				Endpoint:     p.Endpoint,
			})
		}
		for _, s := range h.Skipped {
			v.Hull.Skipped = append(v.Hull.Skipped, skippedView{Index: s.Index, Label: s.Record.Label(), Error: s.Err.Error()})
		}
	}
	if c := r.Voltage; c != nil {
		v.Voltage = &voltageView{
			NumA:           numbers(c.NumA),
			Capacity:       numbers(c.Capacity),
			Voltage:        numbers(c.Voltage),
			Monotonic:      c.Monotonic,
			AverageVoltage: number(c.AverageVoltage()),
			MaxCapacity:    number(c.MaxCapacity()),
		}
	}
	if c := r.Volume; c != nil {
		v.Volume = &volumeView{
			NumA:       numbers(c.NumA),
			Capacity:   numbers(c.Capacity),
			VolumePerB: numbers(c.VolumePerB),
			Ratio:      numbers(c.Ratio),
		}
	}
	if m := r.Metastable; m != nil {
		v.Metastable = &metastableView{
			Capacity:  numbers(m.Grid),
			Voltage:   numbers(m.Profile),
			Trials:    m.Trials,
			Converged: m.Converged,
			Delta:     number(m.Delta),
		}
	}

	return v
}

// WriteJSON writes the report as indented JSON. Infinite values, such as
// the NumA of pure A, are written as the strings "+Inf" and "-Inf".
func (r *Report) WriteJSON(w io.Writer) error {
	var enc = json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.view()); err != nil {
		return fmt.Errorf("analysis: encode report: %w", err)
	}

	return nil
}

// WriteSummary writes a short human-readable table of the stable phases
// and curve highlights.
func (r *Report) WriteSummary(w io.Writer) error {
	var tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "run %s: %s-%s hull, cutoff %.4g eV/atom\n", r.RunID, r.Elements[0], r.Elements[1], r.Cutoff)
	if r.Hull != nil {
		fmt.Fprintln(tw, "structure\tformula\tx\tEf (eV/atom)\td (eV/atom)\tQ (mAh/g)")
		for _, p := range r.Hull.Stable {
			fmt.Fprintf(tw, "%s\t%s\t%.3f\t%.4f\t%.4f\t%.1f\n",
				p.Record.Label(), p.Record.Formula(), p.Comp, p.Formation, p.HullDistance, p.Record.Capacity)
		}
		fmt.Fprintf(tw, "%d stable, %d unstable, %d skipped\n", len(r.Hull.Stable), len(r.Hull.Unstable), len(r.Hull.Skipped))
	}
	if c := r.Voltage; c != nil {
		fmt.Fprintf(tw, "average voltage %.3f V up to %.1f mAh/g\n", c.AverageVoltage(), c.MaxCapacity())
	}
	if c := r.Volume; c != nil {
		fmt.Fprintf(tw, "max volume expansion %.1f%%\n", 100*c.MaxExpansion())
	}
	if m := r.Metastable; m != nil {
		fmt.Fprintf(tw, "metastable profile: %d paths, converged %t\n", m.Trials, m.Converged)
	}
	for _, msg := range r.Warnings {
		fmt.Fprintf(tw, "warning: %s\n", msg)
	}

	return tw.Flush()
}
