package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("OUTPUT_ORDER", "")
	t.Setenv("METRICS_FILE", "")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(data)
}

func TestRun_Fixtures(t *testing.T) {
	for _, name := range []string{"basic", "disputes"} {
		t.Run(name, func(t *testing.T) {
			out, _, err := execute(t, "--log-level", "disabled", filepath.Join("testdata", name+".csv"))
			require.NoError(t, err)

			expected := readFixture(t, name+".expected")
			assert.Equal(t, strings.TrimSpace(expected), strings.TrimSpace(out))
		})
	}
}

func TestRun_ArrivalOrder(t *testing.T) {
	out, _, err := execute(t, "--log-level", "disabled", "--order", "arrival", filepath.Join("testdata", "disputes.csv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "3,"))
	assert.True(t, strings.HasPrefix(lines[2], "1,"))
	assert.True(t, strings.HasPrefix(lines[3], "2,"))
}

func TestRun_MalformedInputProducesNoReport(t *testing.T) {
	for _, name := range []string{"malformed.csv", "negative.csv"} {
		t.Run(name, func(t *testing.T) {
			out, errOut, err := execute(t, "--log-format", "json", filepath.Join("testdata", name))
			require.Error(t, err)
			assert.Empty(t, out, "no snapshot may be written on fatal input")
			assert.Contains(t, errOut, "replay aborted")
			assert.Contains(t, err.Error(), "malformed transaction")
		})
	}
}

func TestRun_MissingFile(t *testing.T) {
	out, _, err := execute(t, "--log-level", "disabled", filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Contains(t, err.Error(), "open input")
}

func TestRun_RequiresExactlyOneArgument(t *testing.T) {
	_, _, err := execute(t)
	assert.Error(t, err)

	_, _, err = execute(t, "a.csv", "b.csv")
	assert.Error(t, err)
}

func TestRun_InvalidOrderFlag(t *testing.T) {
	_, _, err := execute(t, "--order", "random", filepath.Join("testdata", "basic.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OUTPUT_ORDER")
}

func TestRun_WritesMetricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.prom")

	_, _, err := execute(t, "--log-level", "disabled", "--metrics-file", path, filepath.Join("testdata", "basic.csv"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `payments_transactions_applied_total{type="deposit"} 3`)
	assert.Contains(t, string(data), `payments_transactions_rejected_total{reason="insufficient_funds",type="withdrawal"} 1`)
	assert.Contains(t, string(data), "payments_accounts_created_total 2")
}

func TestRun_InvalidLogLevelFlag(t *testing.T) {
	_, _, err := execute(t, "--log-level", "verbose", filepath.Join("testdata", "basic.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}
