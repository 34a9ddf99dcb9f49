package outcome

import (
	"errors"
	"fmt"

	"github.com/carbocation/mroutcome/layout"
	"github.com/carbocation/mroutcome/variantkey"
)

// ErrRowTooShort is wrapped when a row has fewer fields than the resolved
// columns require.
var ErrRowTooShort = errors.New("row too short")

// Row holds the fields of one input row that the output needs. TotalN, CaseN
// and ControlN are only populated under the NA sample size policy.
type Row struct {
	Chromosome      string
	Position        string
	Ref             string
	Alt             string
	EffectSize      string
	StandardError   string
	AlleleFrequency string
	PValue          string
	TotalN          string
	CaseN           string
	ControlN        string
}

// Parse extracts a Row from the fields of one input line.
func Parse(fields []string, cols layout.Columns) (Row, error) {
	if need := cols.MaxIndex() + 1; len(fields) < need {
		return Row{}, fmt.Errorf("%w: need at least %d fields but found %d", ErrRowTooShort, need, len(fields))
	}

	row := Row{
		Chromosome:      fields[cols.Chromosome],
		Position:        fields[cols.Position],
		Ref:             fields[cols.Ref],
		Alt:             fields[cols.Alt],
		EffectSize:      fields[cols.EffectSize],
		StandardError:   fields[cols.StandardError],
		AlleleFrequency: fields[cols.AlleleFrequency],
		PValue:          fields[cols.PValue],
	}

	if cols.Policy == layout.SampleSizeNA {
		row.TotalN = fields[cols.TotalN]
		row.CaseN = fields[cols.CaseN]
		row.ControlN = fields[cols.ControlN]
	}

	return row, nil
}

func (r Row) Key() variantkey.Key {
	return variantkey.Key{
		Chromosome: r.Chromosome,
		Position:   r.Position,
		Ref:        r.Ref,
		Alt:        r.Alt,
	}
}

// SNV reports whether the allele lengths sum to two, i.e. a single-nucleotide
// variant for non-empty alleles.
func (r Row) SNV() bool {
	return len(r.Ref)+len(r.Alt) == 2
}
