package main

import (
	"strings"
	"testing"

	"github.com/thesma/thesma-mcp/internal/thesma/models"
)

func f64(v float64) *float64 { return &v }

func TestTitleWords(t *testing.T) {
	cases := map[string]string{
		"revenue growth yoy": "Revenue Growth Yoy",
		"debt-to-equity":     "Debt-To-Equity",
		"ROE":                "Roe",
		"sole":               "Sole",
		"":                   "",
	}
	for in, want := range cases {
		if got := titleWords(in); got != want {
			t.Errorf("titleWords(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTierLabel(t *testing.T) {
	cases := map[string]string{
		"sp500":       "S&P 500",
		"russell1000": "Russell 1000",
		"":            "Other",
		"custom":      "custom",
	}
	for in, want := range cases {
		if got := tierLabel(in); got != want {
			t.Errorf("tierLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTruncateTitle(t *testing.T) {
	if got := truncateTitle("CEO"); got != "CEO" {
		t.Errorf("Short titles should pass through, got %q", got)
	}
	got := truncateTitle("Chief Executive Officer")
	if got != "Chief Executiv…" {
		t.Errorf("Expected truncated title with ellipsis, got %q", got)
	}
	if truncateTitle("") != "" {
		t.Error("Empty title should stay empty")
	}
}

func TestFormatPrice(t *testing.T) {
	if got := formatPrice(nil); got != "N/A" {
		t.Errorf("Nil price should be N/A, got %q", got)
	}
	if got := formatPrice(f64(228.5)); got != "$228.50" {
		t.Errorf("formatPrice(228.5) = %q, want $228.50", got)
	}
	if got := formatPrice(f64(1234.567)); got != "$1,234.57" {
		t.Errorf("formatPrice(1234.567) = %q, want $1,234.57", got)
	}
}

func TestValidMetricsIncludesShareCounts(t *testing.T) {
	for _, metric := range []string{"revenue", "total_assets", "operating_cash_flow", "shares_basic", "shares_diluted"} {
		if !validMetrics[metric] {
			t.Errorf("Expected %q to be a valid metric", metric)
		}
	}
	if validMetrics["stock_price"] {
		t.Error("stock_price should not be a valid metric")
	}
}

func TestFormatStatement_Margins(t *testing.T) {
	s := &models.Statement{
		CompanyName: "Apple Inc.",
		Ticker:      "AAPL",
		FiscalYear:  2024,
		Revenue:     f64(100e9),
		GrossProfit: f64(40e9),
		NetIncome:   f64(-15.34e9),
	}

	text := formatStatement(s, "aapl", "income", "annual")
	if !strings.Contains(text, "Gross Profit:") {
		t.Error("Statement should contain the gross profit line")
	}
	if !strings.Contains(text, "(40.0%)") {
		t.Error("Gross profit should carry its margin")
	}
	if !strings.Contains(text, "(-15.3%)") {
		t.Error("Negative margins should carry a minus sign")
	}
	if !strings.Contains(text, "$-15.3B") {
		t.Error("Negative values should format with a sign inside the unit")
	}
	if strings.Contains(text, "Cost of Revenue") {
		t.Error("Unreported line items should be omitted")
	}
}

func TestFormatStatement_QuarterlyDefaults(t *testing.T) {
	quarter := 3
	s := &models.Statement{
		FiscalYear:    2025,
		FiscalQuarter: &quarter,
		Revenue:       f64(5e9),
	}

	text := formatStatement(s, "msft", "income", "quarterly")
	if !strings.Contains(text, "MSFT (MSFT) — Income Statement, Q3 2025") {
		t.Errorf("Expected ticker fallbacks and quarterly label, got:\n%s", text)
	}
	if !strings.Contains(text, "Source: SEC EDGAR, 10-Q filings.") {
		t.Error("Quarterly statements should default to 10-Q")
	}
	if !strings.Contains(text, "Data covers Q3 of fiscal year 2025.") {
		t.Error("Quarterly coverage line should name the quarter")
	}
}

func TestFormatRatioValue(t *testing.T) {
	if got := formatRatioValue("gross_margin", f64(46.21)); got != "46.2%" {
		t.Errorf("Percent ratios should use one decimal, got %q", got)
	}
	if got := formatRatioValue("debt_to_equity", f64(1.456)); got != "1.46x" {
		t.Errorf("Multiplier ratios should use the x suffix, got %q", got)
	}
	if got := formatRatioValue("gross_margin", nil); got != "N/A" {
		t.Errorf("Nil ratios should be N/A, got %q", got)
	}
}

func TestBuildScreenSummary(t *testing.T) {
	f := screenFilters{}
	if got := buildScreenSummary(f); got != "All screened companies" {
		t.Errorf("Empty filters should summarize as all companies, got %q", got)
	}

	f = screenFilters{Tier: "sp500"}
	if got := buildScreenSummary(f); got != "S&P 500 companies" {
		t.Errorf("Tier-only summary wrong, got %q", got)
	}

	f = screenFilters{
		Tier:             "sp500",
		MinGrossMargin:   f64(40),
		MaxDebtToEquity:  f64(1.5),
		HasInsiderBuying: true,
	}
	got := buildScreenSummary(f)
	want := "S&P 500 companies with gross margin >= 40% and debt-to-equity <= 1.5 and insider buying"
	if got != want {
		t.Errorf("buildScreenSummary = %q, want %q", got, want)
	}
}

func TestPickDisplayColumns(t *testing.T) {
	cols := pickDisplayColumns(screenFilters{})
	if len(cols) != 3 || cols[0] != "gross_margin" {
		t.Errorf("Default columns wrong: %v", cols)
	}

	cols = pickDisplayColumns(screenFilters{
		MinReturnOnEquity: f64(15),
		Sort:              "net_margin",
	})
	if cols[0] != "net_margin" {
		t.Errorf("Sort field should come first, got %v", cols)
	}
	found := false
	for _, c := range cols {
		if c == "return_on_equity" {
			found = true
		}
	}
	if !found {
		t.Errorf("Filtered column should be displayed, got %v", cols)
	}
	if len(cols) > 3 {
		t.Errorf("At most three columns, got %v", cols)
	}
}

func TestFormatDelta(t *testing.T) {
	if got := formatDelta(nil, "increased"); got != "—" {
		t.Errorf("Nil delta should be an em dash, got %q", got)
	}
	if got := formatDelta(f64(1500000), "increased"); got != "+1.5M" {
		t.Errorf("Increased delta = %q, want +1.5M", got)
	}
	if got := formatDelta(f64(-800000), "decreased"); got != "-800.0K" {
		t.Errorf("Decreased delta = %q, want -800.0K", got)
	}
	if got := formatDelta(f64(100000), "unchanged"); got != "100.0K" {
		t.Errorf("Unchanged delta should carry no sign, got %q", got)
	}
}

func TestFormatPctChange(t *testing.T) {
	if got := formatPctChange(f64(12.3), "increased"); got != "+12.3%" {
		t.Errorf("Positive change = %q, want +12.3%%", got)
	}
	if got := formatPctChange(f64(-45.6), "decreased"); got != "-45.6%" {
		t.Errorf("Negative change = %q, want -45.6%%", got)
	}
	if got := formatPctChange(f64(50), "new"); got != "—" {
		t.Errorf("New positions have no percent change, got %q", got)
	}
}

func TestFormatCurrentValue(t *testing.T) {
	if got := formatCurrentValue(f64(342000000), "new"); got != "$342.0M" {
		t.Errorf("Current value = %q, want $342.0M", got)
	}
	if got := formatCurrentValue(f64(342000000), "exited"); got != "—" {
		t.Errorf("Exited positions have no current value, got %q", got)
	}
	if got := formatCurrentValue(nil, "increased"); got != "N/A" {
		t.Errorf("Nil value = %q, want N/A", got)
	}
}

func TestFormatCompanyList_Plural(t *testing.T) {
	companies := []models.Company{
		{CIK: "0000320193", Ticker: "AAPL", Name: "Apple Inc.", CompanyTier: "sp500"},
		{CIK: "0000789019", Ticker: "MSFT", Name: "Microsoft Corp", Tier: "sp500"},
	}
	text := formatCompanyList(companies, "tech")
	if !strings.Contains(text, `Found 2 companies matching "tech"`) {
		t.Errorf("Plural header wrong:\n%s", text)
	}
	if strings.Count(text, "S&P 500") != 2 {
		t.Error("Both tier fields should map to the index label")
	}
}

func TestFormatMetricSeries_SinglePoint(t *testing.T) {
	points := []models.MetricPoint{
		{CompanyName: "Apple Inc.", Ticker: "AAPL", FiscalYear: 2024, Value: f64(391035000000)},
	}
	text := formatMetricSeries(points, "aapl", "revenue", "annual")
	if !strings.Contains(text, "1 data point from 2024 to 2024.") {
		t.Errorf("Single point should use singular phrasing:\n%s", text)
	}
}

func TestFormatEvents_CategorySuffix(t *testing.T) {
	events := []models.Event{
		{FiledAt: "2026-08-25T16:05:00Z", Category: "earnings", Description: "Quarterly results"},
	}
	text := formatEvents(events, 40, "Apple Inc.", "AAPL", "earnings")
	if !strings.Contains(text, "Apple Inc. (AAPL) — Earnings (1 of 40)") {
		t.Errorf("Company-scoped category header wrong:\n%s", text)
	}
	if !strings.Contains(text, "Showing 1 of 40 earnings events.") {
		t.Errorf("Footer should name the category:\n%s", text)
	}
}
