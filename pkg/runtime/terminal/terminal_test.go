package terminal

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/de-tools/csat-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cli := NewCLI(Options{Output: &out, ErrOutput: &errOut})
	cli.SetArgs(args)
	err := cli.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCLI_Report(t *testing.T) {
	out, err := run(t, "report")
	require.NoError(t, err)

	assert.Contains(t, out, "Customer Satisfaction Report (124 days)")
	assert.Contains(t, out, "Source: synthetic")
	assert.Contains(t, out, "Period: 2025-05-30 to 2025-09-30")
	assert.Contains(t, out, "=== Satisfaction Summary: All Months ===")
	assert.Contains(t, out, "=== Critical Events ===")
}

func TestCLI_Report_Month(t *testing.T) {
	out, err := run(t, "report", "--month", "July 2025")
	require.NoError(t, err)

	assert.Contains(t, out, "(31 days)")
	assert.Contains(t, out, "=== Satisfaction Summary: July 2025 ===")
}

func TestCLI_Report_RejectedInputFallsBack(t *testing.T) {
	path := writeFile(t, "legacy.xls", "a\n1\n")

	out, err := run(t, "report", "--input", path)
	require.NoError(t, err)

	assert.Contains(t, out, "warning: ")
	assert.Contains(t, out, "unsupported file type")
	assert.Contains(t, out, "(synthetic fallback)")
}

func TestCLI_Risk(t *testing.T) {
	out, err := run(t, "risk")
	require.NoError(t, err)
	assert.Contains(t, out, "=== Metric Priorities ===")
	assert.Contains(t, out, "Checkout Process")

	out, err = run(t, "risk", "--metric", "Checkout Process")
	require.NoError(t, err)
	assert.Contains(t, out, "Checkout Process: current 9.31")
	assert.Contains(t, out, "=== Periods ===")
	assert.Contains(t, out, "=== Recommendations ===")

	_, err = run(t, "risk", "--metric", "Delivery")
	assert.ErrorIs(t, err, domain.ErrUnknownMetric)
}

func TestCLI_Events(t *testing.T) {
	out, err := run(t, "events", "--min-failure", "50", "--sort", "failure_percentage")
	require.NoError(t, err)

	assert.Contains(t, out, "2025-08-11")
	assert.NotContains(t, out, "2025-07-14")
	assert.Contains(t, out, "6 events")
	assert.Less(t, strings.Index(out, "2025-08-11"), strings.Index(out, "2025-09-22"))

	out, err = run(t, "events", "--severity", "critical")
	require.NoError(t, err)
	assert.Contains(t, out, "1 events")

	_, err = run(t, "events", "--sort", "promotion")
	assert.Error(t, err)

	_, err = run(t, "events", "--min-failure", "101")
	assert.Error(t, err)

	_, err = run(t, "events", "--severity", "urgent")
	assert.Error(t, err)
}

func TestCLI_Export(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "daily.csv")

	out, err := run(t, "export", "--dataset", "daily", "--output", output)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 124 rows of daily_data")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "date,satisfaction_score,month,month_short,day_name,is_weekend,week\n"))

	xlsx := filepath.Join(dir, "events.xlsx")
	_, err = run(t, "export", "--dataset", "events", "--format", "xlsx", "--output", xlsx)
	require.NoError(t, err)
	info, err := os.Stat(xlsx)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	_, err = run(t, "export", "--format", "pdf", "--output", filepath.Join(dir, "x.pdf"))
	assert.Error(t, err)

	_, err = run(t, "export", "--dataset", "weekly", "--output", filepath.Join(dir, "x.csv"))
	assert.ErrorIs(t, err, domain.ErrUnknownDataset)
}

func TestCLI_Export_Upload(t *testing.T) {
	input := writeFile(t, "orders.csv", "region,orders\neast,10\nwest,\n")
	output := filepath.Join(t.TempDir(), "upload.csv")

	_, err := run(t, "export", "--dataset", "upload", "--input", input, "--output", output)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "region,orders\neast,10\nwest,\n", string(data))
}

func TestCLI_Analyze(t *testing.T) {
	a := writeFile(t, "a.csv", "region,orders,returns\neast,10,1\nwest,20,2\n")
	b := writeFile(t, "b.csv", "region,orders,returns\neast,30,3\n")

	out, err := run(t, "analyze", a, b, "--group-by", "region", "--value", "orders")
	require.NoError(t, err)

	assert.Contains(t, out, "=== Files ===")
	assert.Contains(t, out, "=== Statistics ===")
	assert.Contains(t, out, "=== Correlation ===")
	assert.Contains(t, out, "=== orders by region ===")
	assert.Contains(t, out, "| east ")
	assert.Contains(t, out, "3 rows, 3 columns")
}

func TestCLI_Analyze_Rejected(t *testing.T) {
	path := writeFile(t, "legacy.xls", "a\n1\n")

	_, err := run(t, "analyze", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")

	_, err = run(t, "analyze")
	assert.Error(t, err)
}

func TestCLI_InvalidConfig(t *testing.T) {
	path := writeFile(t, "config.yaml", "target: 12\n")

	_, err := run(t, "report", "--config", path)
	require.Error(t, err)
	var cfgErr *domain.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}
