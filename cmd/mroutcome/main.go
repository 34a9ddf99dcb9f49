// mroutcome extracts the rows of an outcome summary statistics file that
// match a list of exposure variants, and reformats them for Mendelian
// randomization.
package main

import (
	"os"

	"github.com/carbocation/mroutcome"
	"github.com/carbocation/mroutcome/compileinfo"
	_ "github.com/carbocation/mroutcome/compileinfoprint"
	"github.com/carbocation/mroutcome/layout"
	"github.com/carbocation/mroutcome/pipeline"
	"github.com/carbocation/pfx"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Env supplies defaults for the optional flags.
type Env struct {
	Layouts  string                `envconfig:"MROUTCOME_LAYOUTS"`
	BadRows  pipeline.BadRowPolicy `envconfig:"MROUTCOME_BAD_ROWS"`
	LogLevel string                `envconfig:"MROUTCOME_LOG_LEVEL" default:"warn"`
}

func main() {
	var env Env
	if err := envconfig.Process("", &env); err != nil {
		log.Fatalln(pfx.Err(err))
	}

	if err := newRootCommand(env).Execute(); err != nil {
		log.Fatalln(pfx.Err(err))
	}
}

func newRootCommand(env Env) *cobra.Command {
	var (
		opts        = pipeline.Options{BadRows: env.BadRows}
		layoutsFile = env.Layouts
		logLevel    = env.LogLevel
	)

	cmd := &cobra.Command{
		Use:   "mroutcome",
		Short: "Extract outcome summary statistics for a set of exposure variants",
		Long: `Keeps the rows of a compressed, tab-delimited outcome summary statistics file
whose chr/pos/ref/alt (in either allele orientation) appear in the exposure
list, that are single-nucleotide variants, and whose effect size is not "0".
Each surviving row is written as:

outcome  chr_pos_ref_alt  chr  pos  beta  se  alt  ref  af  p  NA  NA  n_total  n_case  n_ctrl

Duplicate lines are collapsed and the output is sorted. Built-in outcome sources: ` + layout.Layouts.Names(),
		Version:       compileinfo.Get().Version(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)

			if layoutsFile != "" {
				opts.Layouts, err = loadLayouts(layoutsFile)
				if err != nil {
					return err
				}
			}

			summary, err := pipeline.Run(opts)
			if err != nil {
				return err
			}

			log.WithFields(summary.Fields()).Infof("Wrote %d lines to %s", summary.Unique, opts.OutputFile)

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Config.Outcome, "outcome", "", "Outcome name written in the first output column. Replaced by {eth}_{panel}_{assay}_{gene} for sources that relabel (PURE_BM).")
	flags.StringVar(&opts.Config.Ethnicity, "eth_outcome", "", "Outcome ethnicity. EUR or EUROPEAN selects the European allele frequency column.")
	flags.StringVar(&opts.Config.Source, "outcome_source", "", "Outcome source, which selects the header names to read. Unknown sources use the DEFAULT layout.")
	flags.StringVar(&opts.SumstatFile, "sumstat_file", "", "Path to the compressed (normally gzip), tab-delimited outcome summary statistics, with a header.")
	flags.StringVar(&opts.OutputFile, "output_file", "", "Path to the output file. It is only created once the whole input has been processed.")
	flags.StringVar(&opts.ExposureFile, "list_snps_exposures", "", "Path to the headerless, tab-delimited exposure variant list: chr, pos, ref, alt.")
	flags.StringVar(&opts.Config.Panel, "outcome_panel", "", "Outcome panel.")
	flags.StringVar(&opts.Config.Assay, "outcome_assay", "", "Outcome assay.")
	flags.StringVar(&opts.Config.Gene, "outcome_gene", "", "Outcome gene.")
	flags.StringVar(&opts.Config.SampleSize, "sample_size_outcome", "", "Total sample size, or NA.")
	flags.StringVar(&opts.Config.NCase, "n_case_outcome", "", "Number of cases, or NA. If all three sample sizes are NA, they are read per variant from N_total/N_case/N_ctrl.")
	flags.StringVar(&opts.Config.NControl, "n_control_outcome", "", "Number of controls, or NA.")

	for _, name := range []string{
		"outcome", "eth_outcome", "outcome_source", "sumstat_file", "output_file",
		"list_snps_exposures", "outcome_panel", "outcome_assay", "outcome_gene",
		"sample_size_outcome", "n_case_outcome", "n_control_outcome",
	} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			log.Fatalln(pfx.Err(err))
		}
	}

	flags.StringVar(&layoutsFile, "layouts", layoutsFile, "Optional YAML file adding or overriding outcome source layouts. Env: MROUTCOME_LAYOUTS")
	flags.Var(&opts.BadRows, "bad_rows", "What to do with a data row that cannot be parsed: abort or skip. Env: MROUTCOME_BAD_ROWS")
	flags.StringVar(&logLevel, "log_level", logLevel, "Logging level (debug, info, warn, error). Env: MROUTCOME_LOG_LEVEL")

	return cmd
}

func loadLayouts(path string) (layout.Registry, error) {
	path, err := mroutcome.ExpandHome(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return layout.LoadLayouts(f, layout.Layouts)
}
