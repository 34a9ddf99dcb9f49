// Package layout maps the logical fields of an outcome summary statistics
// file onto the header names used by each outcome source, and resolves those
// names to column indices.
package layout

import (
	"sort"
	"strings"
)

// DefaultLayout is used for any outcome source without its own entry.
const DefaultLayout = "DEFAULT"

// NA is the literal placeholder used for absent values, both on input
// (sample sizes) and output.
const NA = "NA"

// Layout names the header backing each logical field for one outcome source.
type Layout struct {
	Chromosome    string `yaml:"chromosome"`
	Position      string `yaml:"position"`
	Ref           string `yaml:"ref"`
	Alt           string `yaml:"alt"`
	EffectSize    string `yaml:"effect_size"`
	StandardError string `yaml:"standard_error"`
	PValue        string `yaml:"pvalue"`

	// Which allele frequency is reported depends on the outcome ethnicity.
	AlleleFrequency         string `yaml:"allele_frequency"`
	EuropeanAlleleFrequency string `yaml:"european_allele_frequency"`

	// Only consulted when every configured sample size is NA.
	TotalN   string `yaml:"total_n"`
	CaseN    string `yaml:"case_n"`
	ControlN string `yaml:"control_n"`

	// FixedSampleSize sources carry no usable per-variant N: the configured
	// total is always used and case/control become NA.
	FixedSampleSize bool `yaml:"fixed_sample_size"`

	// RelabelOutcome replaces the outcome label with
	// {ethnicity}_{panel}_{assay}_{gene}.
	RelabelOutcome bool `yaml:"relabel_outcome"`
}

// Registry is a set of named layouts, keyed by outcome source.
type Registry map[string]Layout

var Layouts = Registry{
	DefaultLayout: {
		Chromosome:              "chr_hg19",
		Position:                "pos_hg19",
		Ref:                     "ref",
		Alt:                     "alt",
		EffectSize:              "effect_size",
		StandardError:           "standard_error",
		PValue:                  "pvalue",
		AlleleFrequency:         "EAF",
		EuropeanAlleleFrequency: "gnomAD_AF_EUR",
		TotalN:                  "N_total",
		CaseN:                   "N_case",
		ControlN:                "N_ctrl",
	},
	"PURE_BM": {
		Chromosome:              "chr",
		Position:                "pos",
		Ref:                     "ref",
		Alt:                     "alt",
		EffectSize:              "beta_raw",
		StandardError:           "se",
		PValue:                  "pvalue",
		AlleleFrequency:         "study_AF",
		EuropeanAlleleFrequency: "compiled_EUR_AF",
		TotalN:                  "N_total",
		CaseN:                   "N_case",
		ControlN:                "N_ctrl",
		FixedSampleSize:         true,
		RelabelOutcome:          true,
	},
}

// EuropeanEthnicities selects the European allele frequency column.
var EuropeanEthnicities = map[string]struct{}{
	"EUR":      {},
	"EUROPEAN": {},
}

// Lookup returns the layout registered for source, falling back to the
// default layout.
func (r Registry) Lookup(source string) Layout {
	if l, exists := r[source]; exists {
		return l
	}

	return r[DefaultLayout]
}

// With returns a copy of r with the entries of extra added or replaced.
func (r Registry) With(extra Registry) Registry {
	out := make(Registry, len(r)+len(extra))
	for name, l := range r {
		out[name] = l
	}
	for name, l := range extra {
		out[name] = l
	}

	return out
}

// Names lists the registered sources, sorted and comma separated.
func (r Registry) Names() string {
	names := make([]string, 0, len(r))
	for m := range r {
		names = append(names, m)
	}
	sort.Strings(names)

	return strings.Join(names, ", ")
}
