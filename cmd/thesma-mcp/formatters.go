package main

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/thesma/thesma-mcp/internal/thesma/common"
	"github.com/thesma/thesma-mcp/internal/thesma/models"
)

const maxTitleLen = 15

var statementTitles = map[string]string{
	"income":        "Income Statement",
	"balance-sheet": "Balance Sheet",
	"cash-flow":     "Cash Flow",
}

// statementLine is one display row of a financial statement. Indented labels
// are sub-items of the line above them.
type statementLine struct {
	key   string
	label string
	get   func(*models.Statement) *float64
}

var incomeLines = []statementLine{
	{"revenue", "Revenue", func(s *models.Statement) *float64 { return s.Revenue }},
	{"cost_of_revenue", "Cost of Revenue", func(s *models.Statement) *float64 { return s.CostOfRevenue }},
	{"gross_profit", "Gross Profit", func(s *models.Statement) *float64 { return s.GrossProfit }},
	{"operating_expenses", "Operating Expenses", func(s *models.Statement) *float64 { return s.OperatingExpenses }},
	{"research_and_development", "  R&D", func(s *models.Statement) *float64 { return s.ResearchAndDevelopment }},
	{"selling_general_admin", "  SG&A", func(s *models.Statement) *float64 { return s.SellingGeneralAdmin }},
	{"operating_income", "Operating Income", func(s *models.Statement) *float64 { return s.OperatingIncome }},
	{"interest_expense", "Interest Expense", func(s *models.Statement) *float64 { return s.InterestExpense }},
	{"interest_income", "Interest Income", func(s *models.Statement) *float64 { return s.InterestIncome }},
	{"pre_tax_income", "Pre-Tax Income", func(s *models.Statement) *float64 { return s.PreTaxIncome }},
	{"income_tax_expense", "Income Tax", func(s *models.Statement) *float64 { return s.IncomeTaxExpense }},
	{"net_income", "Net Income", func(s *models.Statement) *float64 { return s.NetIncome }},
	{"eps_basic", "EPS (basic)", func(s *models.Statement) *float64 { return s.EPSBasic }},
	{"eps_diluted", "EPS (diluted)", func(s *models.Statement) *float64 { return s.EPSDiluted }},
}

var balanceSheetLines = []statementLine{
	{"total_assets", "Total Assets", func(s *models.Statement) *float64 { return s.TotalAssets }},
	{"current_assets", "Current Assets", func(s *models.Statement) *float64 { return s.CurrentAssets }},
	{"cash_and_equivalents", "  Cash & Equivalents", func(s *models.Statement) *float64 { return s.CashAndEquivalents }},
	{"accounts_receivable", "  Accounts Receivable", func(s *models.Statement) *float64 { return s.AccountsReceivable }},
	{"inventory", "  Inventory", func(s *models.Statement) *float64 { return s.Inventory }},
	{"non_current_assets", "Non-Current Assets", func(s *models.Statement) *float64 { return s.NonCurrentAssets }},
	{"property_plant_equipment", "  Property, Plant & Equipment", func(s *models.Statement) *float64 { return s.PropertyPlantEquipment }},
	{"goodwill", "  Goodwill", func(s *models.Statement) *float64 { return s.Goodwill }},
	{"intangible_assets", "  Intangible Assets", func(s *models.Statement) *float64 { return s.IntangibleAssets }},
	{"total_liabilities", "Total Liabilities", func(s *models.Statement) *float64 { return s.TotalLiabilities }},
	{"current_liabilities", "Current Liabilities", func(s *models.Statement) *float64 { return s.CurrentLiabilities }},
	{"accounts_payable", "  Accounts Payable", func(s *models.Statement) *float64 { return s.AccountsPayable }},
	{"short_term_debt", "  Short-Term Debt", func(s *models.Statement) *float64 { return s.ShortTermDebt }},
	{"non_current_liabilities", "Non-Current Liabilities", func(s *models.Statement) *float64 { return s.NonCurrentLiabilities }},
	{"long_term_debt", "  Long-Term Debt", func(s *models.Statement) *float64 { return s.LongTermDebt }},
	{"total_equity", "Total Equity", func(s *models.Statement) *float64 { return s.TotalEquity }},
	{"common_shares_outstanding", "Common Shares Outstanding", func(s *models.Statement) *float64 { return s.CommonSharesOutstanding }},
}

var cashFlowLines = []statementLine{
	{"operating_cash_flow", "Operating Cash Flow", func(s *models.Statement) *float64 { return s.OperatingCashFlow }},
	{"investing_cash_flow", "Investing Cash Flow", func(s *models.Statement) *float64 { return s.InvestingCashFlow }},
	{"financing_cash_flow", "Financing Cash Flow", func(s *models.Statement) *float64 { return s.FinancingCashFlow }},
	{"net_change_in_cash", "Net Change in Cash", func(s *models.Statement) *float64 { return s.NetChangeInCash }},
	{"capital_expenditures", "Capital Expenditures", func(s *models.Statement) *float64 { return s.CapitalExpenditures }},
	{"dividends_paid", "Dividends Paid", func(s *models.Statement) *float64 { return s.DividendsPaid }},
	{"share_repurchases", "Share Repurchases", func(s *models.Statement) *float64 { return s.ShareRepurchases }},
}

var statementLines = map[string][]statementLine{
	"income":        incomeLines,
	"balance-sheet": balanceSheetLines,
	"cash-flow":     cashFlowLines,
}

// marginLines are income statement items that get an inline margin next to
// the dollar value.
var marginLines = map[string]bool{
	"gross_profit":     true,
	"operating_income": true,
	"net_income":       true,
}

var validMetrics = buildValidMetrics()

func buildValidMetrics() map[string]bool {
	m := map[string]bool{
		"shares_basic":   true,
		"shares_diluted": true,
	}
	for _, lines := range [][]statementLine{incomeLines, balanceSheetLines, cashFlowLines} {
		for _, l := range lines {
			m[l.key] = true
		}
	}
	return m
}

var validRatios = map[string]bool{
	"gross_margin":          true,
	"operating_margin":      true,
	"net_margin":            true,
	"return_on_equity":      true,
	"return_on_assets":      true,
	"debt_to_equity":        true,
	"current_ratio":         true,
	"interest_coverage":     true,
	"revenue_growth_yoy":    true,
	"net_income_growth_yoy": true,
	"eps_growth_yoy":        true,
}

var percentageRatios = map[string]bool{
	"gross_margin":          true,
	"operating_margin":      true,
	"net_margin":            true,
	"return_on_equity":      true,
	"return_on_assets":      true,
	"revenue_growth_yoy":    true,
	"net_income_growth_yoy": true,
	"eps_growth_yoy":        true,
}

var multiplierRatios = map[string]bool{
	"debt_to_equity":    true,
	"current_ratio":     true,
	"interest_coverage": true,
}

var ratioCategories = []struct {
	name   string
	ratios []struct{ key, label string }
}{
	{"Profitability", []struct{ key, label string }{
		{"gross_margin", "Gross Margin"},
		{"operating_margin", "Operating Margin"},
		{"net_margin", "Net Margin"},
	}},
	{"Returns", []struct{ key, label string }{
		{"return_on_equity", "Return on Equity"},
		{"return_on_assets", "Return on Assets"},
	}},
	{"Leverage", []struct{ key, label string }{
		{"debt_to_equity", "Debt to Equity"},
		{"current_ratio", "Current Ratio"},
		{"interest_coverage", "Interest Coverage"},
	}},
	{"Growth (YoY)", []struct{ key, label string }{
		{"revenue_growth_yoy", "Revenue Growth"},
		{"net_income_growth_yoy", "Net Income Growth"},
		{"eps_growth_yoy", "EPS Growth"},
	}},
}

// fieldLabels are the human-readable names used in screener summaries and
// footers.
var fieldLabels = map[string]string{
	"gross_margin":          "gross margin",
	"operating_margin":      "operating margin",
	"net_margin":            "net margin",
	"return_on_equity":      "ROE",
	"return_on_assets":      "ROA",
	"debt_to_equity":        "debt-to-equity",
	"current_ratio":         "current ratio",
	"interest_coverage":     "interest coverage",
	"revenue_growth_yoy":    "revenue growth",
	"net_income_growth_yoy": "net income growth",
	"eps_growth_yoy":        "EPS growth",
}

var validTradeTypes = map[string]bool{
	"purchase": true,
	"sale":     true,
	"grant":    true,
	"exercise": true,
}

var validEventCategories = map[string]bool{
	"earnings":   true,
	"ma":         true,
	"leadership": true,
	"agreements": true,
	"governance": true,
	"accounting": true,
	"distress":   true,
	"regulatory": true,
	"other":      true,
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// titleWords uppercases the first letter of every word, lowercasing the
// rest. Word boundaries are any non-letter character.
func titleWords(s string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}

func tierLabel(tier string) string {
	switch tier {
	case "":
		return "Other"
	case "sp500":
		return "S&P 500"
	case "russell1000":
		return "Russell 1000"
	default:
		return tier
	}
}

func truncateTitle(title string) string {
	if title == "" {
		return ""
	}
	runes := []rune(title)
	if len(runes) <= maxTitleLen {
		return title
	}
	return string(runes[:maxTitleLen-1]) + "…"
}

// --- Companies ---

func formatCompanyList(companies []models.Company, query string) string {
	count := len(companies)
	noun := "companies"
	if count == 1 {
		noun = "company"
	}
	lines := []string{fmt.Sprintf("Found %d %s matching %q", count, noun, query), ""}

	headers := []string{"#", "Ticker", "CIK", "Company", "Index"}
	rows := make([][]string, 0, count)
	for i, c := range companies {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			c.Ticker,
			c.CIK,
			c.Name,
			tierLabel(c.TierValue()),
		})
	}

	lines = append(lines, common.FormatTable(headers, rows, []string{"r", "l", "l", "l", "l"}))
	lines = append(lines, "", "Source: SEC EDGAR company registry.")
	return strings.Join(lines, "\n")
}

func formatCompanyDetail(c *models.Company, ticker, cik string) string {
	name := c.Name
	if name == "" {
		name = "Unknown"
	}
	tkr := c.Ticker
	if tkr == "" {
		tkr = strings.ToUpper(ticker)
	}
	displayCIK := c.CIK
	if displayCIK == "" {
		displayCIK = cik
	}

	sicLine := c.SICCode
	if c.SICDescription != "" {
		sicLine = fmt.Sprintf("%s — %s", c.SICCode, c.SICDescription)
	}

	lines := []string{
		fmt.Sprintf("%s (%s)", name, tkr),
		"",
		fmt.Sprintf("%-18s%s", "CIK:", displayCIK),
		fmt.Sprintf("%-18s%s", "Ticker:", tkr),
		fmt.Sprintf("%-18s%s", "SIC Code:", sicLine),
		fmt.Sprintf("%-18s%s", "Index:", tierLabel(c.TierValue())),
		fmt.Sprintf("%-18s%s", "Fiscal Year End:", c.FiscalYearEnd),
		"",
		"Source: SEC EDGAR company registry.",
	}
	return strings.Join(lines, "\n")
}

// --- Financial statements ---

func formatStatement(s *models.Statement, ticker, statement, period string) string {
	companyName := s.CompanyName
	if companyName == "" {
		companyName = strings.ToUpper(ticker)
	}
	companyTicker := s.Ticker
	if companyTicker == "" {
		companyTicker = strings.ToUpper(ticker)
	}
	filingType := s.FilingType
	if filingType == "" {
		if period == "annual" {
			filingType = "10-K"
		} else {
			filingType = "10-Q"
		}
	}
	dataSource := s.DataSource
	if dataSource == "" {
		dataSource = "ixbrl"
	}

	title := statementTitles[statement]
	var periodLabel string
	if period == "annual" {
		periodLabel = fmt.Sprintf("FY %d", s.FiscalYear)
	} else {
		quarter := 0
		if s.FiscalQuarter != nil {
			quarter = *s.FiscalQuarter
		}
		periodLabel = fmt.Sprintf("Q%d %d", quarter, s.FiscalYear)
	}

	lines := []string{fmt.Sprintf("%s (%s) — %s, %s", companyName, companyTicker, title, periodLabel), ""}

	for _, line := range statementLines[statement] {
		value := line.get(s)
		if value == nil {
			continue
		}

		var formatted string
		switch line.key {
		case "eps_basic", "eps_diluted":
			formatted = common.FormatCurrency(value, 2)
		case "common_shares_outstanding":
			formatted = common.FormatInt(int64(*value))
		default:
			formatted = common.FormatCurrency(value, 1)
		}

		marginStr := ""
		if statement == "income" && marginLines[line.key] && s.Revenue != nil && *s.Revenue != 0 {
			margin := (*value / *s.Revenue) * 100
			marginStr = fmt.Sprintf("  (%s)", common.FormatPercent(&margin, 1))
		}

		lines = append(lines, fmt.Sprintf("%-24s%s%s", line.label+":", formatted, marginStr))
	}

	lines = append(lines, "", "Currency: USD")
	lines = append(lines, common.FormatSource(filingType, s.AccessionNumber, dataSource))
	if s.FiscalYear != 0 {
		if period == "annual" {
			lines = append(lines, fmt.Sprintf("Data covers fiscal year ending %d.", s.FiscalYear))
		} else {
			quarter := 0
			if s.FiscalQuarter != nil {
				quarter = *s.FiscalQuarter
			}
			lines = append(lines, fmt.Sprintf("Data covers Q%d of fiscal year %d.", quarter, s.FiscalYear))
		}
	}

	return strings.Join(lines, "\n")
}

func formatMetricSeries(points []models.MetricPoint, ticker, metric, period string) string {
	companyName := points[0].CompanyName
	if companyName == "" {
		companyName = strings.ToUpper(ticker)
	}
	companyTicker := points[0].Ticker
	if companyTicker == "" {
		companyTicker = strings.ToUpper(ticker)
	}

	metricLabel := titleWords(strings.ReplaceAll(metric, "_", " "))
	periodLabel := "Annual"
	if period != "annual" {
		periodLabel = "Quarterly"
	}

	lines := []string{fmt.Sprintf("%s (%s) — %s (%s)", companyName, companyTicker, metricLabel, periodLabel), ""}
	lines = append(lines, fmt.Sprintf("%-8sValue", "Year"))

	decimals := 1
	if metric == "eps_basic" || metric == "eps_diluted" {
		decimals = 2
	}
	for _, dp := range points {
		lines = append(lines, fmt.Sprintf("%-8d%s", dp.FiscalYear, common.FormatCurrency(dp.Value, decimals)))
	}

	lines = append(lines, "", seriesCountLine(points))
	lines = append(lines, "Source: SEC EDGAR, iXBRL filings. Currency: USD.")
	return strings.Join(lines, "\n")
}

func seriesCountLine(points []models.MetricPoint) string {
	minYear, maxYear := points[0].FiscalYear, points[0].FiscalYear
	for _, dp := range points[1:] {
		if dp.FiscalYear < minYear {
			minYear = dp.FiscalYear
		}
		if dp.FiscalYear > maxYear {
			maxYear = dp.FiscalYear
		}
	}
	plural := "s"
	if len(points) == 1 {
		plural = ""
	}
	return fmt.Sprintf("%d data point%s from %d to %d.", len(points), plural, minYear, maxYear)
}

// --- Ratios ---

func formatRatioValue(key string, value *float64) string {
	if value == nil {
		return "N/A"
	}
	if percentageRatios[key] {
		return common.FormatPercent(value, 1)
	}
	if multiplierRatios[key] {
		return fmt.Sprintf("%.2fx", *value)
	}
	return fmt.Sprintf("%v", *value)
}

func ratioByKey(r *models.RatioSet, key string) *float64 {
	switch key {
	case "gross_margin":
		return r.GrossMargin
	case "operating_margin":
		return r.OperatingMargin
	case "net_margin":
		return r.NetMargin
	case "return_on_equity":
		return r.ReturnOnEquity
	case "return_on_assets":
		return r.ReturnOnAssets
	case "debt_to_equity":
		return r.DebtToEquity
	case "current_ratio":
		return r.CurrentRatio
	case "interest_coverage":
		return r.InterestCoverage
	case "revenue_growth_yoy":
		return r.RevenueGrowthYoY
	case "net_income_growth_yoy":
		return r.NetIncomeGrowthYoY
	case "eps_growth_yoy":
		return r.EPSGrowthYoY
	}
	return nil
}

func formatRatios(r *models.RatioSet, ticker, period string) string {
	companyName := r.CompanyName
	if companyName == "" {
		companyName = strings.ToUpper(ticker)
	}
	companyTicker := r.Ticker
	if companyTicker == "" {
		companyTicker = strings.ToUpper(ticker)
	}

	var periodLabel string
	if period == "annual" {
		periodLabel = fmt.Sprintf("FY %d", r.FiscalYear)
	} else {
		quarter := 0
		if r.FiscalQuarter != nil {
			quarter = *r.FiscalQuarter
		}
		periodLabel = fmt.Sprintf("Q%d %d", quarter, r.FiscalYear)
	}

	lines := []string{fmt.Sprintf("%s (%s) — Financial Ratios, %s", companyName, companyTicker, periodLabel), ""}

	for _, category := range ratioCategories {
		var categoryLines []string
		for _, ratio := range category.ratios {
			value := ratioByKey(r, ratio.key)
			if value == nil {
				continue
			}
			categoryLines = append(categoryLines,
				fmt.Sprintf("  %-24s%s", ratio.label+":", formatRatioValue(ratio.key, value)))
		}
		if len(categoryLines) > 0 {
			lines = append(lines, category.name)
			lines = append(lines, categoryLines...)
			lines = append(lines, "")
		}
	}

	filingLabel := "annual"
	if period != "annual" {
		filingLabel = "quarterly"
	}
	lines = append(lines, fmt.Sprintf("Source: SEC EDGAR, derived from %s filings.", filingLabel))
	return strings.Join(lines, "\n")
}

func formatRatioSeries(points []models.MetricPoint, ticker, ratio, period string) string {
	companyName := points[0].CompanyName
	if companyName == "" {
		companyName = strings.ToUpper(ticker)
	}
	companyTicker := points[0].Ticker
	if companyTicker == "" {
		companyTicker = strings.ToUpper(ticker)
	}

	ratioLabel := titleWords(strings.ReplaceAll(ratio, "_", " "))
	periodLabel := "Annual"
	if period != "annual" {
		periodLabel = "Quarterly"
	}

	lines := []string{fmt.Sprintf("%s (%s) — %s (%s)", companyName, companyTicker, ratioLabel, periodLabel), ""}
	lines = append(lines, fmt.Sprintf("%-8sValue", "Year"))

	for _, dp := range points {
		lines = append(lines, fmt.Sprintf("%-8d%s", dp.FiscalYear, formatRatioValue(ratio, dp.Value)))
	}

	filingLabel := "annual"
	if period != "annual" {
		filingLabel = "quarterly"
	}
	lines = append(lines, "", seriesCountLine(points))
	lines = append(lines, fmt.Sprintf("Source: SEC EDGAR, derived from %s filings.", filingLabel))
	return strings.Join(lines, "\n")
}

// --- Screener ---

// buildScreenSummary turns the applied filters into a natural-language
// header sentence.
func buildScreenSummary(f screenFilters) string {
	var parts []string
	switch f.Tier {
	case "sp500":
		parts = append(parts, "S&P 500")
	case "russell1000":
		parts = append(parts, "Russell 1000")
	}
	if f.SIC != "" {
		parts = append(parts, "SIC "+f.SIC)
	}

	type filterDesc struct {
		val   *float64
		label string
		op    string
	}
	filterMap := []filterDesc{
		{f.MinRevenue, "revenue", ">="},
		{f.MinNetIncome, "net income", ">="},
		{f.MinGrossMargin, "gross margin", ">="},
		{f.MaxGrossMargin, "gross margin", "<="},
		{f.MinOperatingMargin, "operating margin", ">="},
		{f.MinNetMargin, "net margin", ">="},
		{f.MinRevenueGrowth, "revenue growth", ">="},
		{f.MinEPSGrowth, "EPS growth", ">="},
		{f.MinReturnOnEquity, "ROE", ">="},
		{f.MinReturnOnAssets, "ROA", ">="},
		{f.MaxDebtToEquity, "debt-to-equity", "<="},
		{f.MinCurrentRatio, "current ratio", ">="},
		{f.MinInterestCoverage, "interest coverage", ">="},
	}

	var filters []string
	for _, fd := range filterMap {
		if fd.val == nil {
			continue
		}
		valStr := formatFloatParam(*fd.val)
		if strings.Contains(fd.label, "margin") || strings.Contains(fd.label, "growth") ||
			fd.label == "ROE" || fd.label == "ROA" {
			filters = append(filters, fmt.Sprintf("%s %s %s%%", fd.label, fd.op, valStr))
		} else {
			filters = append(filters, fmt.Sprintf("%s %s %s", fd.label, fd.op, valStr))
		}
	}
	if f.HasInsiderBuying {
		filters = append(filters, "insider buying")
	}
	if f.HasInstitutionalIncrease {
		filters = append(filters, "institutional position increases")
	}

	prefix := "Companies"
	if len(parts) > 0 {
		prefix = strings.Join(parts, " ") + " companies"
	}
	if len(filters) > 0 {
		return fmt.Sprintf("%s with %s", prefix, strings.Join(filters, " and "))
	}
	if len(parts) > 0 {
		return prefix
	}
	return "All screened companies"
}

// pickDisplayColumns selects up to three ratio columns for the result table.
// The sort field always comes first; the rest are derived from the filters.
func pickDisplayColumns(f screenFilters) []string {
	type candidate struct {
		val *float64
		col string
	}
	candidates := []candidate{
		{f.MinGrossMargin, "gross_margin"},
		{f.MaxGrossMargin, "gross_margin"},
		{f.MinOperatingMargin, "operating_margin"},
		{f.MinNetMargin, "net_margin"},
		{f.MinRevenueGrowth, "revenue_growth_yoy"},
		{f.MinEPSGrowth, "eps_growth_yoy"},
		{f.MinReturnOnEquity, "return_on_equity"},
		{f.MinReturnOnAssets, "return_on_assets"},
		{f.MaxDebtToEquity, "debt_to_equity"},
		{f.MinCurrentRatio, "current_ratio"},
		{f.MinInterestCoverage, "interest_coverage"},
		{f.MinNetIncome, "net_margin"},
	}

	var columns []string
	seen := map[string]bool{}
	for _, c := range candidates {
		if c.val != nil && !seen[c.col] {
			columns = append(columns, c.col)
			seen[c.col] = true
		}
	}

	if f.Sort != "" && !seen[f.Sort] {
		columns = append([]string{f.Sort}, columns...)
	}

	if len(columns) == 0 {
		columns = []string{"gross_margin", "net_margin", "revenue_growth_yoy"}
	}

	if f.Sort != "" {
		rest := make([]string, 0, len(columns))
		for _, c := range columns {
			if c != f.Sort {
				rest = append(rest, c)
			}
		}
		if len(rest) > 2 {
			rest = rest[:2]
		}
		return append([]string{f.Sort}, rest...)
	}
	if len(columns) > 3 {
		columns = columns[:3]
	}
	return columns
}

func formatScreenResults(results []models.ScreenResult, total int, f screenFilters) string {
	summary := buildScreenSummary(f)
	displayCols := pickDisplayColumns(f)

	headers := []string{"#", "Ticker", "Company"}
	alignments := []string{"r", "l", "l"}
	for _, col := range displayCols {
		label := fieldLabels[col]
		if label == "" {
			label = col
		}
		headers = append(headers, titleWords(label))
		alignments = append(alignments, "r")
	}

	rows := make([][]string, 0, len(results))
	for i, company := range results {
		row := []string{fmt.Sprintf("%d", i+1), company.Ticker, company.Name}
		for _, col := range displayCols {
			row = append(row, common.FormatPercent(company.RatioValue(col), 1))
		}
		rows = append(rows, row)
	}

	table := common.FormatTable(headers, rows, alignments)

	shown := len(results)
	totalStr := common.FormatInt(int64(total))
	var headerLine, countLine string
	if total > shown {
		headerLine = fmt.Sprintf("%s (top %d of %s matches)", summary, shown, totalStr)
		countLine = fmt.Sprintf("%s companies matched. Showing top %d", totalStr, shown)
	} else {
		headerLine = fmt.Sprintf("%s (%s matches)", summary, totalStr)
		countLine = fmt.Sprintf("%s companies matched.", totalStr)
	}
	if f.Sort != "" {
		orderLabel := "descending"
		if f.Order == "asc" {
			orderLabel = "ascending"
		}
		sortLabel := fieldLabels[f.Sort]
		if sortLabel == "" {
			sortLabel = f.Sort
		}
		countLine = strings.TrimSuffix(countLine, ".") + fmt.Sprintf(" sorted by %s (%s).", sortLabel, orderLabel)
	}

	footer := countLine + "\nSource: SEC EDGAR, latest annual filings. Ratios derived from reported financials."
	return fmt.Sprintf("%s\n\n%s\n\n%s", headerLine, table, footer)
}

// --- Insider trades ---

func formatInsiderTrades(trades []models.InsiderTrade, total int, companyName, companyTicker, tradeType string, minValue *float64) string {
	shown := len(trades)
	typeLabel := "Insider Trades"
	if tradeType != "" {
		typeLabel = fmt.Sprintf("Insider %ss", titleWords(tradeType))
	}
	totalStr := common.FormatInt(int64(total))

	var header string
	if companyName != "" {
		header = fmt.Sprintf("%s (%s) — Recent %s (%d of %s)", companyName, companyTicker, typeLabel, shown, totalStr)
	} else {
		minValLabel := ""
		if minValue != nil && *minValue != 0 {
			minValLabel = " over " + common.FormatCurrency(minValue, 1)
		}
		header = fmt.Sprintf("Recent %s%s (%d of %s)", typeLabel, minValLabel, shown, totalStr)
	}

	var headers, alignments []string
	var rows [][]string
	if companyName != "" {
		headers = []string{"Date", "Person", "Title", "Shares", "Price", "Value"}
		alignments = []string{"l", "l", "l", "r", "r", "r"}
		for _, t := range trades {
			rows = append(rows, []string{
				truncateDate(t.TradeDate()),
				t.OwnerName,
				truncateTitle(t.Title),
				formatSharesCompact(t.Shares),
				formatPrice(t.PricePerShare),
				common.FormatCurrency(t.TotalValue, 1),
			})
		}
	} else {
		headers = []string{"Date", "Ticker", "Person", "Title", "Value", "Planned?"}
		alignments = []string{"l", "l", "l", "l", "r", "l"}
		for _, t := range trades {
			planned := "No"
			if t.Is10b51 {
				planned = "Yes"
			}
			rows = append(rows, []string{
				truncateDate(t.TradeDate()),
				t.Ticker,
				t.OwnerName,
				truncateTitle(t.Title),
				common.FormatCurrency(t.TotalValue, 1),
				planned,
			})
		}
	}

	table := common.FormatTable(headers, rows, alignments)
	footer := fmt.Sprintf("%s total %s found. Showing most recent %d.\nSource: SEC EDGAR, Form 4 filings.",
		totalStr, strings.ToLower(typeLabel), shown)
	return fmt.Sprintf("%s\n\n%s\n\n%s", header, table, footer)
}

func truncateDate(date string) string {
	if len(date) > 10 {
		return date[:10]
	}
	return date
}

func formatSharesCompact(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return common.FormatInt(int64(*v))
}

// formatPrice formats a per-share price as dollars with comma grouping and
// two decimal places.
func formatPrice(v *float64) string {
	if v == nil {
		return "N/A"
	}
	s := fmt.Sprintf("%.2f", *v)
	dot := strings.IndexByte(s, '.')
	intPart := s[:dot]
	negative := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")
	var grouped string
	for len(intPart) > 3 {
		grouped = "," + intPart[len(intPart)-3:] + grouped
		intPart = intPart[:len(intPart)-3]
	}
	grouped = intPart + grouped
	if negative {
		grouped = "-" + grouped
	}
	return "$" + grouped + s[dot:]
}

// --- Funds and holdings ---

func formatFundList(funds []models.Fund, query string) string {
	count := len(funds)
	plural := "s"
	if count == 1 {
		plural = ""
	}
	lines := []string{fmt.Sprintf("Found %d fund%s matching %q", count, plural, query), ""}

	headers := []string{"#", "CIK", "Fund Name"}
	rows := make([][]string, 0, count)
	for i, f := range funds {
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), f.CIK, f.Name})
	}

	lines = append(lines, common.FormatTable(headers, rows, []string{"r", "l", "l"}))
	lines = append(lines, "", "Source: SEC EDGAR, 13F filings.")
	return strings.Join(lines, "\n")
}

func formatInstitutionalHolders(holders []models.InstitutionalHolder, total int, ticker, quarter string) string {
	companyName := holders[0].CompanyName
	if companyName == "" {
		companyName = strings.ToUpper(ticker)
	}
	companyTicker := holders[0].CompanyTicker
	if companyTicker == "" {
		companyTicker = strings.ToUpper(ticker)
	}
	qLabel := quarter
	if qLabel == "" {
		qLabel = holders[0].Quarter
	}
	if qLabel == "" {
		qLabel = "Latest"
	}

	totalStr := common.FormatInt(int64(total))
	title := fmt.Sprintf("%s (%s) — Top Institutional Holders, %s (%d of %s)",
		companyName, companyTicker, qLabel, len(holders), totalStr)

	headers := []string{"#", "Fund", "Shares", "Market Value", "Discretion"}
	rows := make([][]string, 0, len(holders))
	for i, h := range holders {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			h.FundName,
			common.FormatNumber(h.Shares, 1),
			common.FormatCurrency(h.MarketValue, 1),
			titleWords(h.Discretion),
		})
	}

	lines := []string{title, ""}
	lines = append(lines, common.FormatTable(headers, rows, []string{"r", "l", "r", "r", "l"}))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Showing %d of %s institutional holders.", len(holders), totalStr))
	lines = append(lines, fmt.Sprintf("Source: SEC EDGAR, 13F filings (%s).", qLabel))
	return strings.Join(lines, "\n")
}

func formatFundHoldings(holdings []models.FundHolding, total int, fundName, quarter, positionType string) string {
	fundDisplay := holdings[0].FundName
	if fundDisplay == "" {
		fundDisplay = strings.ToUpper(fundName)
	}
	qLabel := quarter
	if qLabel == "" {
		qLabel = holdings[0].Quarter
	}
	if qLabel == "" {
		qLabel = "Latest"
	}
	typeLabel := "All"
	if positionType != "all" {
		typeLabel = titleWords(positionType)
	}

	totalStr := common.FormatInt(int64(total))
	title := fmt.Sprintf("%s — Portfolio Holdings, %s (%s, %d of %s)",
		fundDisplay, qLabel, typeLabel, len(holdings), totalStr)

	headers := []string{"#", "Ticker", "Company", "Shares", "Market Value"}
	rows := make([][]string, 0, len(holdings))
	for i, h := range holdings {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			h.TickerValue(),
			h.CompanyValue(),
			common.FormatNumber(h.Shares, 1),
			common.FormatCurrency(h.MarketValue, 1),
		})
	}

	lines := []string{title, ""}
	lines = append(lines, common.FormatTable(headers, rows, []string{"r", "l", "l", "r", "r"}))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Showing %d of %s %s positions.", len(holdings), totalStr, strings.ToLower(typeLabel)))
	lines = append(lines, fmt.Sprintf("Source: SEC EDGAR, 13F filing (%s).", qLabel))
	return strings.Join(lines, "\n")
}

func changeLabel(changeType string) string {
	switch changeType {
	case "new":
		return "New"
	case "exited":
		return "Exited"
	case "increased":
		return "Increased"
	case "decreased":
		return "Decreased"
	case "unchanged":
		return "Unchanged"
	case "":
		return ""
	}
	return titleWords(changeType)
}

func formatDelta(sharesDelta *float64, changeType string) string {
	if sharesDelta == nil {
		return "—"
	}
	abs := *sharesDelta
	if abs < 0 {
		abs = -abs
	}
	formatted := common.FormatNumber(&abs, 1)
	switch changeType {
	case "new", "increased":
		return "+" + formatted
	case "exited", "decreased":
		return "-" + formatted
	}
	return formatted
}

func formatPctChange(pct *float64, changeType string) string {
	if changeType == "new" || pct == nil {
		return "—"
	}
	sign := ""
	if *pct > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.1f%%", sign, *pct)
}

func formatCurrentValue(value *float64, changeType string) string {
	if changeType == "exited" {
		return "—"
	}
	return common.FormatCurrency(value, 1)
}

func formatChangesByTicker(changes []models.HoldingChange, total int, ticker string) string {
	companyName := changes[0].CompanyName
	if companyName == "" {
		companyName = strings.ToUpper(ticker)
	}
	companyTicker := changes[0].CompanyTicker
	if companyTicker == "" {
		companyTicker = strings.ToUpper(ticker)
	}
	qLabel := changes[0].Quarter
	if qLabel == "" {
		qLabel = "Latest"
	}

	totalStr := common.FormatInt(int64(total))
	title := fmt.Sprintf("%s (%s) — Institutional Position Changes, %s (%d of %s)",
		companyName, companyTicker, qLabel, len(changes), totalStr)

	headers := []string{"#", "Fund", "Change", "Shares Delta", "% Change", "Current Value"}
	rows := make([][]string, 0, len(changes))
	for i, c := range changes {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			c.FundName,
			changeLabel(c.ChangeType),
			formatDelta(c.SharesDelta, c.ChangeType),
			formatPctChange(c.PercentChange, c.ChangeType),
			formatCurrentValue(c.CurrentValue, c.ChangeType),
		})
	}

	lines := []string{title, ""}
	lines = append(lines, common.FormatTable(headers, rows, []string{"r", "l", "l", "r", "r", "r"}))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Showing %d of %s position changes.", len(changes), totalStr))
	lines = append(lines, fmt.Sprintf("Source: SEC EDGAR, 13F filings (%s).", qLabel))
	return strings.Join(lines, "\n")
}

func formatChangesByFund(changes []models.HoldingChange, total int, fundName string) string {
	fundDisplay := changes[0].FundName
	if fundDisplay == "" {
		fundDisplay = strings.ToUpper(fundName)
	}
	qLabel := changes[0].Quarter
	if qLabel == "" {
		qLabel = "Latest"
	}

	totalStr := common.FormatInt(int64(total))
	title := fmt.Sprintf("%s — Position Changes, %s (%d of %s)", fundDisplay, qLabel, len(changes), totalStr)

	headers := []string{"#", "Ticker", "Company", "Change", "Shares Delta", "% Change", "Current Value"}
	rows := make([][]string, 0, len(changes))
	for i, c := range changes {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			c.TickerValue(),
			c.CompanyName,
			changeLabel(c.ChangeType),
			formatDelta(c.SharesDelta, c.ChangeType),
			formatPctChange(c.PercentChange, c.ChangeType),
			formatCurrentValue(c.CurrentValue, c.ChangeType),
		})
	}

	lines := []string{title, ""}
	lines = append(lines, common.FormatTable(headers, rows, []string{"r", "l", "l", "l", "r", "r", "r"}))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Showing %d of %s position changes.", len(changes), totalStr))
	lines = append(lines, fmt.Sprintf("Source: SEC EDGAR, 13F filings (%s).", qLabel))
	return strings.Join(lines, "\n")
}

// --- Compensation and governance ---

func formatCompensation(r *models.CompensationReport, ticker string) string {
	companyName := r.CompanyName
	if companyName == "" {
		companyName = strings.ToUpper(ticker)
	}
	companyTicker := r.Ticker
	if companyTicker == "" {
		companyTicker = strings.ToUpper(ticker)
	}

	title := fmt.Sprintf("%s (%s) — Executive Compensation, FY %d", companyName, companyTicker, r.FiscalYear)

	compFields := []struct {
		label string
		get   func(*models.Executive) *float64
	}{
		{"Salary", func(e *models.Executive) *float64 { return e.Salary }},
		{"Bonus", func(e *models.Executive) *float64 { return e.Bonus }},
		{"Stock Awards", func(e *models.Executive) *float64 { return e.StockAwards }},
		{"Option Awards", func(e *models.Executive) *float64 { return e.OptionAwards }},
		{"Non-Equity Incentive", func(e *models.Executive) *float64 { return e.NonEquityIncentive }},
		{"Other", func(e *models.Executive) *float64 { return e.OtherCompensation }},
		{"Total", func(e *models.Executive) *float64 { return e.TotalCompensation }},
	}

	// Only show columns with at least one reported value
	var active []struct {
		label string
		get   func(*models.Executive) *float64
	}
	for _, field := range compFields {
		for i := range r.Executives {
			if field.get(&r.Executives[i]) != nil {
				active = append(active, field)
				break
			}
		}
	}

	headers := []string{"Name", "Title"}
	alignments := []string{"l", "l"}
	for _, field := range active {
		headers = append(headers, field.label)
		alignments = append(alignments, "r")
	}

	rows := make([][]string, 0, len(r.Executives))
	for i := range r.Executives {
		e := &r.Executives[i]
		row := []string{e.Name, e.Title}
		for _, field := range active {
			row = append(row, common.FormatCurrency(field.get(e), 1))
		}
		rows = append(rows, row)
	}

	lines := []string{title, ""}
	lines = append(lines, common.FormatTable(headers, rows, alignments))

	if r.CEOPayRatio != nil {
		lines = append(lines, "")
		lines = append(lines, fmt.Sprintf("CEO-to-Median Pay Ratio: %v:1", *r.CEOPayRatio))
		if r.CEOTotalCompensation != nil && r.MedianEmployeeCompensation != nil {
			lines = append(lines, fmt.Sprintf("  CEO compensation: %s | Median employee: %s",
				common.FormatCurrency(r.CEOTotalCompensation, 1),
				common.FormatCurrency(r.MedianEmployeeCompensation, 1)))
		}
	}

	lines = append(lines, "")
	if r.AccessionNumber != "" {
		lines = append(lines, fmt.Sprintf("Source: SEC EDGAR, DEF 14A filing %s.", r.AccessionNumber))
	} else {
		lines = append(lines, "Source: SEC EDGAR, DEF 14A filing.")
	}
	return strings.Join(lines, "\n")
}

func formatBoard(r *models.BoardReport, ticker string) string {
	companyName := r.CompanyName
	if companyName == "" {
		companyName = strings.ToUpper(ticker)
	}
	companyTicker := r.Ticker
	if companyTicker == "" {
		companyTicker = strings.ToUpper(ticker)
	}

	total := len(r.Members)
	plural := "s"
	if total == 1 {
		plural = ""
	}
	title := fmt.Sprintf("%s (%s) — Board of Directors, FY %d (%d member%s)",
		companyName, companyTicker, r.FiscalYear, total, plural)

	headers := []string{"Name", "Age", "Tenure", "Independent", "Committees"}
	rows := make([][]string, 0, total)
	independentCount := 0
	countable := 0

	for _, m := range r.Members {
		indLabel := "N/A"
		if m.IsIndependent != nil {
			countable++
			if *m.IsIndependent {
				indLabel = "Yes"
				independentCount++
			} else {
				indLabel = "No"
			}
		}

		tenureStr := "—"
		if m.TenureYears != nil {
			tenureStr = fmt.Sprintf("%d yr", *m.TenureYears)
		}

		ageStr := "—"
		if m.Age != nil {
			ageStr = fmt.Sprintf("%d", *m.Age)
		}

		committeeStr := "—"
		if len(m.Committees) > 0 {
			names := make([]string, 0, len(m.Committees))
			for _, c := range m.Committees {
				if c.IsChair {
					names = append(names, c.Name+" (Chair)")
				} else {
					names = append(names, c.Name)
				}
			}
			committeeStr = strings.Join(names, ", ")
		}

		rows = append(rows, []string{m.Name, ageStr, tenureStr, indLabel, committeeStr})
	}

	lines := []string{title, ""}
	lines = append(lines, common.FormatTable(headers, rows, []string{"l", "r", "r", "l", "l"}))
	lines = append(lines, "")
	if countable > 0 {
		lines = append(lines, fmt.Sprintf("%d of %d directors are independent.", independentCount, total))
	}
	if r.AccessionNumber != "" {
		lines = append(lines, fmt.Sprintf("Source: SEC EDGAR, DEF 14A filing %s.", r.AccessionNumber))
	} else {
		lines = append(lines, "Source: SEC EDGAR, DEF 14A filing.")
	}
	return strings.Join(lines, "\n")
}

// --- Filings and events ---

func formatFilings(filings []models.Filing, total int, ticker string) string {
	totalStr := common.FormatInt(int64(total))

	var title string
	if ticker != "" {
		companyName := filings[0].CompanyName
		if companyName == "" {
			companyName = strings.ToUpper(ticker)
		}
		companyTicker := filings[0].Ticker
		if companyTicker == "" {
			companyTicker = strings.ToUpper(ticker)
		}
		title = fmt.Sprintf("%s (%s) — SEC Filings (%d of %s)", companyName, companyTicker, len(filings), totalStr)
	} else {
		title = fmt.Sprintf("SEC Filings (%d of %s)", len(filings), totalStr)
	}

	headers := []string{"Date", "Type", "Period", "Accession Number"}
	rows := make([][]string, 0, len(filings))
	for i := range filings {
		f := &filings[i]
		rows = append(rows, []string{f.FiledAt(), f.TypeValue(), f.PeriodValue(), f.AccessionNumber})
	}

	lines := []string{title, ""}
	lines = append(lines, common.FormatTable(headers, rows, []string{"l", "l", "l", "l"}))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Showing %d of %s filings.", len(filings), totalStr))
	lines = append(lines, "Source: SEC EDGAR filing index.")
	return strings.Join(lines, "\n")
}

func formatEvents(events []models.Event, total int, companyName, companyTicker, category string) string {
	shown := len(events)
	totalStr := common.FormatInt(int64(total))
	catLabel := "Corporate Events"
	if category != "" {
		catLabel = titleWords(category)
	}

	var header string
	if companyName != "" {
		header = fmt.Sprintf("%s (%s) — %s (%d of %s)", companyName, companyTicker, catLabel, shown, totalStr)
	} else {
		header = fmt.Sprintf("Recent %s (%d of %s)", catLabel, shown, totalStr)
	}

	var headers, alignments []string
	var rows [][]string
	if companyName != "" {
		headers = []string{"Date", "Category", "Description"}
		alignments = []string{"l", "l", "l"}
		for i := range events {
			e := &events[i]
			rows = append(rows, []string{truncateDate(e.EventDate()), e.Category, e.DisplayDescription()})
		}
	} else {
		headers = []string{"Date", "Ticker", "Company", "Description"}
		alignments = []string{"l", "l", "l", "l"}
		for i := range events {
			e := &events[i]
			rows = append(rows, []string{truncateDate(e.EventDate()), e.Ticker, e.CompanyName, e.DisplayDescription()})
		}
	}

	table := common.FormatTable(headers, rows, alignments)

	catSuffix := ""
	if category != "" {
		catSuffix = " " + category
	}
	footer := fmt.Sprintf("Showing %d of %s%s events.\nSource: SEC EDGAR, 8-K filings.", shown, totalStr, catSuffix)
	return fmt.Sprintf("%s\n\n%s\n\n%s", header, table, footer)
}
