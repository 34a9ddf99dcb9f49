package layout

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingColumn is wrapped when a header name required by the layout is
// absent from the input file.
var ErrMissingColumn = errors.New("missing column")

// SampleSizePolicy decides where the N columns of the output come from.
type SampleSizePolicy int

const (
	// SampleSizeExternal uses the configured sample sizes verbatim.
	SampleSizeExternal SampleSizePolicy = iota
	// SampleSizeNA reads N_total/N_case/N_ctrl from every row.
	SampleSizeNA
	// SampleSizePure uses the configured total and NA for case and control.
	SampleSizePure
)

func (p SampleSizePolicy) String() string {
	switch p {
	case SampleSizeNA:
		return "NA"
	case SampleSizePure:
		return "Pure"
	}

	return "ExternalSampleSize"
}

// Config carries the run-level settings that drive column resolution.
type Config struct {
	Outcome    string
	Ethnicity  string
	Source     string
	Panel      string
	Assay      string
	Gene       string
	SampleSize string
	NCase      string
	NControl   string
}

// European reports whether the outcome ethnicity selects the European allele
// frequency column.
func (c Config) European() bool {
	_, exists := EuropeanEthnicities[c.Ethnicity]
	return exists
}

// Columns is the result of resolving a header. Every index is 0-based. The N
// indices are -1 unless Policy is SampleSizeNA.
type Columns struct {
	Chromosome      int
	Position        int
	Ref             int
	Alt             int
	EffectSize      int
	StandardError   int
	AlleleFrequency int
	PValue          int
	TotalN          int
	CaseN           int
	ControlN        int

	Policy SampleSizePolicy

	// Outcome is the label written to the first output column.
	Outcome string
}

// MaxIndex is the largest column index a row must have.
func (c Columns) MaxIndex() int {
	max := -1
	for _, i := range []int{
		c.Chromosome, c.Position, c.Ref, c.Alt, c.EffectSize, c.StandardError,
		c.AlleleFrequency, c.PValue, c.TotalN, c.CaseN, c.ControlN,
	} {
		if i > max {
			max = i
		}
	}

	return max
}

// Resolve maps each logical field to its column in header, using the layout
// registered for cfg.Source. Header names are matched exactly; if a name is
// repeated, the last occurrence wins.
func (r Registry) Resolve(header []string, cfg Config) (Columns, error) {
	l := r.Lookup(cfg.Source)

	cols := Columns{
		TotalN:   -1,
		CaseN:    -1,
		ControlN: -1,
		Policy:   l.policy(cfg),
		Outcome:  cfg.Outcome,
	}
	if l.RelabelOutcome {
		cols.Outcome = fmt.Sprintf("%s_%s_%s_%s", cfg.Ethnicity, cfg.Panel, cfg.Assay, cfg.Gene)
	}

	af := l.AlleleFrequency
	if cfg.European() {
		af = l.EuropeanAlleleFrequency
	}

	wanted := []struct {
		field  string
		header string
		dst    *int
	}{
		{"chromosome", l.Chromosome, &cols.Chromosome},
		{"position", l.Position, &cols.Position},
		{"ref", l.Ref, &cols.Ref},
		{"alt", l.Alt, &cols.Alt},
		{"effect size", l.EffectSize, &cols.EffectSize},
		{"standard error", l.StandardError, &cols.StandardError},
		{"allele frequency", af, &cols.AlleleFrequency},
		{"p-value", l.PValue, &cols.PValue},
	}
	if cols.Policy == SampleSizeNA {
		wanted = append(wanted, []struct {
			field  string
			header string
			dst    *int
		}{
			{"total N", l.TotalN, &cols.TotalN},
			{"case N", l.CaseN, &cols.CaseN},
			{"control N", l.ControlN, &cols.ControlN},
		}...)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	var missing []string
	for _, w := range wanted {
		i, exists := index[w.header]
		if !exists || w.header == "" {
			missing = append(missing, fmt.Sprintf("%q (%s)", w.header, w.field))
			continue
		}
		*w.dst = i
	}

	if len(missing) > 0 {
		return cols, fmt.Errorf("%w: %s required for outcome source %q with ethnicity %q",
			ErrMissingColumn, strings.Join(missing, ", "), cfg.Source, cfg.Ethnicity)
	}

	return cols, nil
}

func (l Layout) policy(cfg Config) SampleSizePolicy {
	if l.FixedSampleSize {
		return SampleSizePure
	}

	if cfg.SampleSize == NA && cfg.NCase == NA && cfg.NControl == NA {
		return SampleSizeNA
	}

	return SampleSizeExternal
}
