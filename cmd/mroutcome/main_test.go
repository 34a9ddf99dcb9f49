package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/carbocation/mroutcome/pipeline"
	"github.com/kelseyhightower/envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredFlags(t *testing.T) {
	cmd := newRootCommand(Env{LogLevel: "info"})
	cmd.SetArgs([]string{"--outcome", "CAD"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sumstat_file")
}

func TestEnvDefaults(t *testing.T) {
	for _, key := range []string{"MROUTCOME_LAYOUTS", "MROUTCOME_BAD_ROWS", "MROUTCOME_LOG_LEVEL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	var env Env
	require.NoError(t, envconfig.Process("", &env))
	assert.Equal(t, "warn", env.LogLevel)
	assert.Equal(t, pipeline.Abort, env.BadRows)

	cmd := newRootCommand(env)
	assert.Equal(t, "warn", cmd.Flags().Lookup("log_level").DefValue)
}

func TestEndToEnd(t *testing.T) {
	dir := t.TempDir()
	sumstats := filepath.Join(dir, "pure.tsv")
	exposures := filepath.Join(dir, "exposures.tsv")
	layouts := filepath.Join(dir, "layouts.yaml")
	output := filepath.Join(dir, "out.tsv")

	require.NoError(t, ioutil.WriteFile(sumstats, []byte(strings.Join([]string{
		"chr\tpos\tref\talt\tbeta_raw\tSE\tstudy_AF\tpvalue",
		"1\t1000\tA\tG\t0.5\t0.1\t0.3\t0.01",
		"1\t1000\tA\tG",
	}, "\n")+"\n"), 0644))
	require.NoError(t, ioutil.WriteFile(exposures, []byte("1\t1000\tG\tA\n"), 0644))
	require.NoError(t, ioutil.WriteFile(layouts, []byte("PURE_BM:\n  standard_error: SE\n"), 0644))

	cmd := newRootCommand(Env{LogLevel: "warn", BadRows: pipeline.Skip})
	cmd.SetArgs([]string{
		"--outcome", "ignored",
		"--eth_outcome", "AFR",
		"--outcome_source", "PURE_BM",
		"--sumstat_file", sumstats,
		"--output_file", output,
		"--list_snps_exposures", exposures,
		"--outcome_panel", "olink",
		"--outcome_assay", "IL6",
		"--outcome_gene", "IL6",
		"--sample_size_outcome", "35000",
		"--n_case_outcome", "NA",
		"--n_control_outcome", "NA",
		"--layouts", layouts,
	})
	require.NoError(t, cmd.Execute())

	b, err := ioutil.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "AFR_olink_IL6_IL6\t1_1000_A_G\t1\t1000\t0.5\t0.1\tG\tA\t0.3\t0.01\tNA\tNA\t35000\tNA\tNA\n", string(b))
}

func TestBadRowsFlagOverridesEnv(t *testing.T) {
	dir := t.TempDir()
	sumstats := filepath.Join(dir, "s.tsv")
	exposures := filepath.Join(dir, "e.tsv")

	require.NoError(t, ioutil.WriteFile(sumstats, []byte("chr_hg19\tpos_hg19\tref\talt\teffect_size\tstandard_error\tEAF\tpvalue\n1\t1\n"), 0644))
	require.NoError(t, ioutil.WriteFile(exposures, []byte("1\t1\tA\tG\n"), 0644))

	cmd := newRootCommand(Env{LogLevel: "warn", BadRows: pipeline.Skip})
	cmd.SetArgs([]string{
		"--outcome", "x", "--eth_outcome", "EAS", "--outcome_source", "OTHER",
		"--sumstat_file", sumstats, "--output_file", filepath.Join(dir, "o.tsv"),
		"--list_snps_exposures", exposures, "--outcome_panel", "p", "--outcome_assay", "a",
		"--outcome_gene", "g", "--sample_size_outcome", "1", "--n_case_outcome", "1",
		"--n_control_outcome", "1", "--bad_rows", "abort",
	})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row too short")
}
