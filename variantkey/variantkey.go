// Package variantkey holds the set of exposure variants that outcome rows are
// matched against. Membership is tolerant of allele orientation: a variant
// listed as ref/alt also matches alt/ref.
package variantkey

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMalformedLine is wrapped by errors for exposure lines with fewer than
// four tab-separated fields.
var ErrMalformedLine = errors.New("malformed exposure line")

// Map columns in the exposure list to their positions
const (
	Chromosome int = iota
	Position
	Ref
	Alt
)

// Key identifies one variant. All fields are opaque strings and are compared
// byte for byte.
type Key struct {
	Chromosome string
	Position   string
	Ref        string
	Alt        string
}

// Swapped returns the same variant with ref and alt exchanged.
func (k Key) Swapped() Key {
	return Key{
		Chromosome: k.Chromosome,
		Position:   k.Position,
		Ref:        k.Alt,
		Alt:        k.Ref,
	}
}

// ID renders the key as chr_pos_ref_alt.
func (k Key) ID() string {
	return k.Chromosome + "_" + k.Position + "_" + k.Ref + "_" + k.Alt
}

// Set is not safe for concurrent mutation. Once built it is only read.
type Set struct {
	keys map[Key]struct{}
}

func NewSet() *Set {
	return &Set{keys: make(map[Key]struct{})}
}

// Add inserts k in both allele orientations.
func (s *Set) Add(k Key) {
	s.keys[k] = struct{}{}
	s.keys[k.Swapped()] = struct{}{}
}

// Contains reports whether k was added in either orientation.
func (s *Set) Contains(k Key) bool {
	_, exists := s.keys[k]
	return exists
}

// Len is the number of distinct oriented keys, so a single non-palindromic
// exposure line counts twice.
func (s *Set) Len() int {
	return len(s.keys)
}

// ParseLine splits one tab-delimited exposure line into a Key. Fields beyond
// the fourth are ignored.
func ParseLine(line string) (Key, error) {
	cols := strings.Split(strings.TrimSuffix(line, "\r"), "\t")
	if len(cols) < Alt+1 {
		return Key{}, fmt.Errorf("%w: expected 4 tab-separated fields (chr, pos, ref, alt) but found %d in %q", ErrMalformedLine, len(cols), line)
	}

	return Key{
		Chromosome: cols[Chromosome],
		Position:   cols[Position],
		Ref:        cols[Ref],
		Alt:        cols[Alt],
	}, nil
}

// Build creates a Set from already-split exposure lines. Empty lines are
// skipped; a line holding only whitespace is malformed.
func Build(lines []string) (*Set, error) {
	s := NewSet()
	for i, line := range lines {
		if err := s.addLine(line, i+1); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Read creates a Set from a newline-delimited exposure list.
func Read(r io.Reader) (*Set, error) {
	s := NewSet()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		if err := s.addLine(scanner.Text(), lineNumber); err != nil {
			return nil, err
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Set) addLine(line string, lineNumber int) error {
	// Only an empty line is skipped; whitespace-only lines are malformed.
	if strings.TrimSuffix(line, "\r") == "" {
		return nil
	}

	k, err := ParseLine(line)
	if err != nil {
		return fmt.Errorf("line %d: %w", lineNumber, err)
	}
	s.Add(k)

	return nil
}
