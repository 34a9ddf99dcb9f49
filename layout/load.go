package layout

import (
	"fmt"
	"io"
	"io/ioutil"

	"gopkg.in/yaml.v2"
)

// LoadLayouts reads extra layouts from YAML and returns base extended with
// them. The document maps source names to layout fields, e.g.:
//
//	UKB_PPP:
//	  chromosome: CHROM
//	  position: GENPOS
//	  effect_size: BETA
//
// Fields left out inherit from the layout already registered under that name,
// or from the default layout for new sources. Unknown fields are an error.
func LoadLayouts(r io.Reader, base Registry) (Registry, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}

	raw := make(map[string]interface{})
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parsing layouts: %w", err)
	}

	extra := make(Registry, len(raw))
	for name, body := range raw {
		entry, err := yaml.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("layout %s: %w", name, err)
		}

		l := base.Lookup(name)
		if err := yaml.UnmarshalStrict(entry, &l); err != nil {
			return nil, fmt.Errorf("layout %s: %w", name, err)
		}
		extra[name] = l
	}

	return base.With(extra), nil
}
