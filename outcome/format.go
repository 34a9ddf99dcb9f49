// Package outcome decides which summary statistics rows survive filtering
// against the exposure variants, and renders the survivors in the tab
// separated layout expected by the Mendelian randomization pipeline.
package outcome

import (
	"strings"

	"github.com/carbocation/mroutcome/layout"
	"github.com/carbocation/mroutcome/variantkey"
)

// Verdict records why a row was kept or dropped.
type Verdict int

const (
	Kept Verdict = iota
	NotInExposure
	NotSNV
	ZeroEffect
)

func (v Verdict) String() string {
	switch v {
	case Kept:
		return "kept"
	case NotInExposure:
		return "not in exposure set"
	case NotSNV:
		return "not a single-nucleotide variant"
	case ZeroEffect:
		return "zero effect size"
	}

	return "unknown"
}

// Formatter filters and renders rows. It holds no mutable state.
type Formatter struct {
	cols      layout.Columns
	exposures *variantkey.Set

	// Sample sizes used under the External and Pure policies
	total    string
	nCase    string
	nControl string
}

func NewFormatter(cols layout.Columns, cfg layout.Config, exposures *variantkey.Set) *Formatter {
	f := &Formatter{
		cols:      cols,
		exposures: exposures,
		total:     cfg.SampleSize,
		nCase:     cfg.NCase,
		nControl:  cfg.NControl,
	}

	if cols.Policy == layout.SampleSizePure {
		f.nCase = layout.NA
		f.nControl = layout.NA
	}

	return f
}

// Format parses fields and, if the row passes every filter, returns its
// rendered output line. The line is empty unless the verdict is Kept, and the
// verdict is meaningless when err is non-nil.
func (f *Formatter) Format(fields []string) (string, Verdict, error) {
	row, err := Parse(fields, f.cols)
	if err != nil {
		return "", Kept, err
	}

	if v := f.Judge(row); v != Kept {
		return "", v, nil
	}

	return f.Render(row), Kept, nil
}

// Judge applies the exposure membership, SNV and non-zero effect filters in
// that order.
func (f *Formatter) Judge(row Row) Verdict {
	if !f.exposures.Contains(row.Key()) {
		return NotInExposure
	}

	if !row.SNV() {
		return NotSNV
	}

	if row.EffectSize == "0" {
		return ZeroEffect
	}

	return Kept
}

// Render produces the output line for row, without a line terminator:
//
//	outcome id chr pos beta se alt ref af p NA NA n_total n_case n_ctrl
func (f *Formatter) Render(row Row) string {
	total, nCase, nControl := f.total, f.nCase, f.nControl
	if f.cols.Policy == layout.SampleSizeNA {
		total, nCase, nControl = row.TotalN, row.CaseN, row.ControlN
	}

	return strings.Join([]string{
		f.cols.Outcome,
		row.Key().ID(),
		row.Chromosome,
		row.Position,
		row.EffectSize,
		row.StandardError,
		row.Alt,
		row.Ref,
		row.AlleleFrequency,
		row.PValue,
		layout.NA,
		layout.NA,
		total,
		nCase,
		nControl,
	}, "\t")
}
