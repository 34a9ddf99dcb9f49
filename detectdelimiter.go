package mroutcome

import (
	"strings"

	"github.com/csimplestring/go-csv/detector"
)

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in line, assuming a CSV-like file. Tab is returned when nothing
// better is found, since that is what the sumstat files are supposed to use.
func DetermineDelimiter(line string) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(strings.NewReader(line), '"')

	if len(delimiters) > 0 {
		return rune(delimiters[0][0])
	}

	return '\t'
}
