package pipeline

import (
	"fmt"
	"strings"
)

// BadRowPolicy controls what happens when a data row cannot be parsed.
type BadRowPolicy int

const (
	// Abort stops the whole run at the first bad row. Nothing is written.
	Abort BadRowPolicy = iota
	// Skip counts and logs bad rows and carries on.
	Skip
)

func ParseBadRowPolicy(s string) (BadRowPolicy, error) {
	switch strings.ToLower(s) {
	case "abort", "":
		return Abort, nil
	case "skip":
		return Skip, nil
	}

	return Abort, fmt.Errorf("unknown bad row policy %q: expected abort or skip", s)
}

func (p BadRowPolicy) String() string {
	if p == Skip {
		return "skip"
	}

	return "abort"
}

// Set and Type satisfy pflag.Value.
func (p *BadRowPolicy) Set(s string) error {
	parsed, err := ParseBadRowPolicy(s)
	if err != nil {
		return err
	}
	*p = parsed

	return nil
}

func (p *BadRowPolicy) Type() string {
	return "policy"
}

// Decode satisfies envconfig.Decoder.
func (p *BadRowPolicy) Decode(value string) error {
	return p.Set(value)
}
