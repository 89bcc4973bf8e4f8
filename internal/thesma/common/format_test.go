package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func f64(v float64) *float64 { return &v }

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "N/A", FormatCurrency(nil, 1))
	assert.Equal(t, "$1.5T", FormatCurrency(f64(1.5e12), 1))
	assert.Equal(t, "$394.3B", FormatCurrency(f64(394.328e9), 1))
	assert.Equal(t, "$25.0M", FormatCurrency(f64(25e6), 1))
	assert.Equal(t, "$1.2K", FormatCurrency(f64(1234), 1))
	assert.Equal(t, "$6.08", FormatCurrency(f64(6.08), 2))
	assert.Equal(t, "$-15.3B", FormatCurrency(f64(-15.34e9), 1))
	assert.Equal(t, "$0", FormatCurrency(f64(0), 0))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "N/A", FormatNumber(nil, 1))
	assert.Equal(t, "915.6M", FormatNumber(f64(915560382), 1))
	assert.Equal(t, "-800.0K", FormatNumber(f64(-800000), 1))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "N/A", FormatPercent(nil, 1))
	assert.Equal(t, "46.2%", FormatPercent(f64(46.21), 1))
	assert.Equal(t, "-15.3%", FormatPercent(f64(-15.34), 1))
	assert.Equal(t, "0.0%", FormatPercent(f64(0), 1))
}

func TestFormatFractionPercent(t *testing.T) {
	assert.Equal(t, "N/A", FormatFractionPercent(nil, 2))
	assert.Equal(t, "-15.34%", FormatFractionPercent(f64(-0.1534), 2))
	assert.Equal(t, "42.5%", FormatFractionPercent(f64(0.425), 1))
}

func TestFormatShares(t *testing.T) {
	assert.Equal(t, "N/A", FormatShares(nil))
	assert.Equal(t, "15,204,137,000 shares", FormatShares(f64(15204137000)))
}

func TestFormatInt(t *testing.T) {
	assert.Equal(t, "0", FormatInt(0))
	assert.Equal(t, "999", FormatInt(999))
	assert.Equal(t, "1,000", FormatInt(1000))
	assert.Equal(t, "1,234,567", FormatInt(1234567))
	assert.Equal(t, "-1,234,567", FormatInt(-1234567))
}

func TestFormatTable(t *testing.T) {
	headers := []string{"#", "Ticker", "Value"}
	rows := [][]string{
		{"1", "AAPL", "$394.3B"},
		{"2", "MSFT", "$245.1B"},
	}

	table := FormatTable(headers, rows, []string{"r", "l", "r"})
	lines := strings.Split(table, "\n")

	assert.Len(t, lines, 4)
	assert.Equal(t, "#  Ticker    Value", lines[0])
	assert.Equal(t, "-  ------  -------", lines[1])
	assert.Equal(t, "1  AAPL    $394.3B", lines[2])
	assert.Equal(t, "2  MSFT    $245.1B", lines[3])
}

func TestFormatTable_Empty(t *testing.T) {
	assert.Equal(t, "", FormatTable([]string{"A"}, nil, nil))
}

func TestFormatTable_ShortRowsPadded(t *testing.T) {
	table := FormatTable([]string{"A", "B"}, [][]string{{"only"}}, nil)
	lines := strings.Split(table, "\n")
	assert.Equal(t, "only  ", lines[2])
}

func TestFormatSource(t *testing.T) {
	assert.Equal(t,
		"Source: SEC EDGAR, 10-K filing 0000320193-24-000123 (iXBRL)",
		FormatSource("10-K", "0000320193-24-000123", "ixbrl"))
	assert.Equal(t,
		"Source: SEC EDGAR, 10-Q filing 0000320193-24-000123 (CompanyFacts)",
		FormatSource("10-Q", "0000320193-24-000123", "companyfacts"))
	assert.Equal(t,
		"Source: SEC EDGAR, Form 4 filings.",
		FormatSource("Form 4", "", ""))
}

func TestFormatPagination(t *testing.T) {
	assert.Equal(t, "1 result found.", FormatPagination(1, 1, ""))
	assert.Equal(t, "5 results found.", FormatPagination(5, 5, ""))
	assert.Equal(t, "Showing 1-20 of 120.", FormatPagination(20, 120, ""))
	assert.Equal(t, "Showing 1-20 of 120 sorted by ROE (descending).",
		FormatPagination(20, 120, "ROE (descending)"))
}
