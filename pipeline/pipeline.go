// Package pipeline runs one extraction: it reads a compressed outcome
// summary statistics file, keeps the rows matching the exposure variants, and
// writes the deduplicated, sorted output atomically.
package pipeline

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/carbocation/mroutcome"
	"github.com/carbocation/mroutcome/layout"
	"github.com/carbocation/mroutcome/outcome"
	"github.com/carbocation/mroutcome/variantkey"
	log "github.com/sirupsen/logrus"
)

// Only the first few skipped rows are logged individually.
const maxLoggedBadRows = 10

type Options struct {
	Config layout.Config

	SumstatFile  string
	ExposureFile string
	OutputFile   string

	// Layouts defaults to layout.Layouts when nil.
	Layouts layout.Registry

	BadRows BadRowPolicy
}

// Summary counts what happened to the input rows.
type Summary struct {
	Compression   mroutcome.DataType
	Policy        layout.SampleSizePolicy
	Outcome       string
	ExposureKeys  int
	RowsRead      int
	NotInExposure int
	NotSNV        int
	ZeroEffect    int
	Skipped       int
	Kept          int
	Unique        int
}

func (s *Summary) count(v outcome.Verdict) {
	switch v {
	case outcome.Kept:
		s.Kept++
	case outcome.NotInExposure:
		s.NotInExposure++
	case outcome.NotSNV:
		s.NotSNV++
	case outcome.ZeroEffect:
		s.ZeroEffect++
	}
}

func (s Summary) Fields() log.Fields {
	return log.Fields{
		"compression":     s.Compression.String(),
		"sample_size":     s.Policy.String(),
		"outcome":         s.Outcome,
		"exposure_keys":   s.ExposureKeys,
		"rows_read":       s.RowsRead,
		"not_in_exposure": s.NotInExposure,
		"not_snv":         s.NotSNV,
		"zero_effect":     s.ZeroEffect,
		"skipped":         s.Skipped,
		"kept":            s.Kept,
		"unique":          s.Unique,
	}
}

// Run performs the extraction described by opts. The output file is only
// created once every row has been processed successfully.
func Run(opts Options) (Summary, error) {
	var summary Summary

	registry := opts.Layouts
	if registry == nil {
		registry = layout.Layouts
	}

	sumstatPath, err := mroutcome.ExpandHome(opts.SumstatFile)
	if err != nil {
		return summary, err
	}
	f, err := os.Open(sumstatPath)
	if err != nil {
		return summary, fmt.Errorf("opening sumstat file: %w", err)
	}
	defer f.Close()

	r, dt, err := mroutcome.MaybeDecompressReader(f)
	if err != nil {
		return summary, fmt.Errorf("%s: %w", sumstatPath, err)
	}
	defer r.Close()
	summary.Compression = dt
	log.Debugf("Parsing %s as %s", sumstatPath, dt)

	c := csv.NewReader(r)
	c.Comma = '\t'
	c.LazyQuotes = true
	c.FieldsPerRecord = -1
	c.ReuseRecord = true

	header, err := c.Read()
	if err == io.EOF {
		return summary, fmt.Errorf("%s: no header line found", sumstatPath)
	} else if err != nil {
		return summary, readError(sumstatPath, err)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	cols, err := registry.Resolve(header, opts.Config)
	if err != nil {
		if len(header) == 1 {
			if delim := mroutcome.DetermineDelimiter(header[0]); delim != '\t' {
				err = fmt.Errorf("%w (the header seems to be delimited by %q rather than tabs)", err, delim)
			}
		}
		return summary, fmt.Errorf("%s: %w", sumstatPath, err)
	}
	summary.Policy = cols.Policy
	summary.Outcome = cols.Outcome
	log.Infof("Resolved columns for outcome source %q: %+v", opts.Config.Source, cols)

	exposures, err := readExposures(opts.ExposureFile)
	if err != nil {
		return summary, err
	}
	summary.ExposureKeys = exposures.Len()
	log.Infof("Loaded %d exposure variant keys (both allele orientations)", exposures.Len())

	formatter := outcome.NewFormatter(cols, opts.Config, exposures)

	// lineNumber is the 1-based line of the file on which the bad record
	// starts. encoding/csv skips empty lines and lets quoted fields span
	// lines, so it can run ahead of the record count.
	badRow := func(lineNumber int, err error) error {
		if opts.BadRows == Abort {
			return fmt.Errorf("%s: line %d: %w", sumstatPath, lineNumber, err)
		}

		summary.Skipped++
		if summary.Skipped <= maxLoggedBadRows {
			log.Warnf("Skipping line %d of %s: %v", lineNumber, sumstatPath, err)
		}
		return nil
	}

	lines := make(map[string]struct{})
	for {
		fields, err := c.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return summary, readError(sumstatPath, err)
			}
			if err := badRow(parseErr.StartLine, err); err != nil {
				return summary, err
			}
			continue
		}
		summary.RowsRead++

		line, verdict, err := formatter.Format(fields)
		if err != nil {
			lineNumber, _ := c.FieldPos(0)
			if err := badRow(lineNumber, err); err != nil {
				return summary, err
			}
			continue
		}

		summary.count(verdict)
		if verdict == outcome.Kept {
			lines[line] = struct{}{}
		}
	}

	if summary.Skipped > maxLoggedBadRows {
		log.Warnf("Skipped %d bad rows in total", summary.Skipped)
	}

	sorted := make([]string, 0, len(lines))
	for line := range lines {
		sorted = append(sorted, line)
	}
	sort.Strings(sorted)
	summary.Unique = len(sorted)

	outputPath, err := mroutcome.ExpandHome(opts.OutputFile)
	if err != nil {
		return summary, err
	}
	if err := WriteLines(outputPath, sorted); err != nil {
		return summary, fmt.Errorf("writing output: %w", err)
	}

	return summary, nil
}

func readExposures(path string) (*variantkey.Set, error) {
	path, err := mroutcome.ExpandHome(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening exposure list: %w", err)
	}
	defer f.Close()

	r, _, err := mroutcome.MaybeDecompressReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer r.Close()

	set, err := variantkey.Read(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return set, nil
}

// readError attributes a failure of the underlying stream to decompression.
func readError(path string, err error) error {
	if errors.Is(err, mroutcome.ErrDecompression) {
		return fmt.Errorf("%s: %w", path, err)
	}

	return fmt.Errorf("%s: %w: %v", path, mroutcome.ErrDecompression, err)
}
