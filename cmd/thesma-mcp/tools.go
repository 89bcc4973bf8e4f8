package main

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// registerTools registers all MCP tools on the server, wiring each to a
// handler that calls the Thesma REST API. Every handler is wrapped so an
// unexpected panic becomes a generic error result instead of killing the
// process.
func registerTools(s *server.MCPServer, a *App) {
	add := func(tool mcp.Tool, handler server.ToolHandlerFunc) {
		s.AddTool(tool, withRecovery(tool.Name, a, handler))
	}

	add(createGetVersionTool(), handleGetVersion(a))
	add(createSearchCompaniesTool(), handleSearchCompanies(a))
	add(createGetCompanyTool(), handleGetCompany(a))
	add(createGetFinancialsTool(), handleGetFinancials(a))
	add(createGetFinancialMetricTool(), handleGetFinancialMetric(a))
	add(createGetRatiosTool(), handleGetRatios(a))
	add(createGetRatioHistoryTool(), handleGetRatioHistory(a))
	add(createScreenCompaniesTool(), handleScreenCompanies(a))
	add(createGetInsiderTradesTool(), handleGetInsiderTrades(a))
	add(createSearchFundsTool(), handleSearchFunds(a))
	add(createGetInstitutionalHoldersTool(), handleGetInstitutionalHolders(a))
	add(createGetFundHoldingsTool(), handleGetFundHoldings(a))
	add(createGetHoldingChangesTool(), handleGetHoldingChanges(a))
	add(createGetExecutiveCompensationTool(), handleGetExecutiveCompensation(a))
	add(createGetBoardMembersTool(), handleGetBoardMembers(a))
	add(createSearchFilingsTool(), handleSearchFilings(a))
	add(createGetEventsTool(), handleGetEvents(a))
}

func createGetVersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the Thesma MCP server version. Use this to verify connectivity."),
	)
}

func createSearchCompaniesTool() mcp.Tool {
	return mcp.NewTool("search_companies",
		mcp.WithDescription("Find US public companies by name or ticker symbol. Use this to look up a company before querying its financials, ratios, or filings."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Company name, ticker, or sector to search for")),
		mcp.WithString("tier", mcp.Description("Filter by index membership: 'sp500' or 'russell1000'")),
		mcp.WithNumber("limit", mcp.Description("Maximum results to return (default: 20, max: 50)")),
	)
}

func createGetCompanyTool() mcp.Tool {
	return mcp.NewTool("get_company",
		mcp.WithDescription("Get company details including CIK, SIC code, fiscal year end, and index membership. Accepts ticker or CIK."),
		mcp.WithString("ticker", mcp.Required(), mcp.Description("Stock ticker (e.g., 'AAPL') or 10-digit zero-padded CIK")),
	)
}

func createGetFinancialsTool() mcp.Tool {
	return mcp.NewTool("get_financials",
		mcp.WithDescription("Get financial statements (income statement, balance sheet, or cash flow) for a US public company from SEC filings. Returns key line items with formatted values."),
		mcp.WithString("ticker", mcp.Required(), mcp.Description("Stock ticker (e.g., 'AAPL') or CIK")),
		mcp.WithString("statement", mcp.Description("Statement type: 'income' (default), 'balance-sheet', or 'cash-flow'")),
		mcp.WithString("period", mcp.Description("Reporting period: 'annual' (default) or 'quarterly'")),
		mcp.WithNumber("year", mcp.Description("Fiscal year (default: latest)")),
		mcp.WithNumber("quarter", mcp.Description("Fiscal quarter 1-4. Required when period is 'quarterly'.")),
	)
}

func createGetFinancialMetricTool() mcp.Tool {
	return mcp.NewTool("get_financial_metric",
		mcp.WithDescription("Get a single financial metric over time. Returns a time series for trend analysis. "+
			"Income metrics: revenue, cost_of_revenue, gross_profit, operating_expenses, research_and_development, "+
			"selling_general_admin, operating_income, interest_expense, interest_income, pre_tax_income, "+
			"income_tax_expense, net_income, eps_basic, eps_diluted, shares_basic, shares_diluted. "+
			"Balance sheet: total_assets, current_assets, cash_and_equivalents, accounts_receivable, inventory, "+
			"non_current_assets, property_plant_equipment, goodwill, intangible_assets, total_liabilities, "+
			"current_liabilities, accounts_payable, short_term_debt, non_current_liabilities, long_term_debt, "+
			"total_equity, common_shares_outstanding. "+
			"Cash flow: operating_cash_flow, investing_cash_flow, financing_cash_flow, net_change_in_cash, "+
			"capital_expenditures, dividends_paid, share_repurchases."),
		mcp.WithString("ticker", mcp.Required(), mcp.Description("Stock ticker (e.g., 'AAPL') or CIK")),
		mcp.WithString("metric", mcp.Required(), mcp.Description("Metric name (e.g., 'revenue', 'net_income')")),
		mcp.WithString("period", mcp.Description("Reporting period: 'annual' (default) or 'quarterly'")),
		mcp.WithNumber("from_year", mcp.Description("Start fiscal year (inclusive)")),
		mcp.WithNumber("to_year", mcp.Description("End fiscal year (inclusive)")),
	)
}

func createGetRatiosTool() mcp.Tool {
	return mcp.NewTool("get_ratios",
		mcp.WithDescription("Get computed financial ratios (margins, returns, leverage, growth) for a US public company. Derived from SEC filings."),
		mcp.WithString("ticker", mcp.Required(), mcp.Description("Stock ticker (e.g., 'AAPL') or CIK")),
		mcp.WithString("period", mcp.Description("Reporting period: 'annual' (default) or 'quarterly'")),
		mcp.WithNumber("year", mcp.Description("Fiscal year (default: latest)")),
		mcp.WithNumber("quarter", mcp.Description("Fiscal quarter 1-4. Required when period is 'quarterly'.")),
	)
}

func createGetRatioHistoryTool() mcp.Tool {
	return mcp.NewTool("get_ratio_history",
		mcp.WithDescription("Get a single financial ratio over time. Returns a time series for trend analysis. "+
			"Valid ratios: gross_margin, operating_margin, net_margin, return_on_equity, return_on_assets, "+
			"debt_to_equity, current_ratio, interest_coverage, revenue_growth_yoy, net_income_growth_yoy, eps_growth_yoy."),
		mcp.WithString("ticker", mcp.Required(), mcp.Description("Stock ticker (e.g., 'AAPL') or CIK")),
		mcp.WithString("ratio", mcp.Required(), mcp.Description("Ratio name (e.g., 'gross_margin')")),
		mcp.WithString("period", mcp.Description("Reporting period: 'annual' (default) or 'quarterly'")),
		mcp.WithNumber("from_year", mcp.Description("Start fiscal year (inclusive)")),
		mcp.WithNumber("to_year", mcp.Description("End fiscal year (inclusive)")),
	)
}

func createScreenCompaniesTool() mcp.Tool {
	return mcp.NewTool("screen_companies",
		mcp.WithDescription("Find US public companies matching financial criteria. Combine filters: profitability (margins), "+
			"growth rates, leverage ratios, index membership, SIC code, and insider/institutional signals. "+
			"Sort by any ratio: gross_margin, operating_margin, net_margin, return_on_equity, return_on_assets, "+
			"debt_to_equity, current_ratio, interest_coverage, revenue_growth_yoy, net_income_growth_yoy, eps_growth_yoy."),
		mcp.WithNumber("min_revenue", mcp.Description("Minimum annual revenue in USD")),
		mcp.WithNumber("min_net_income", mcp.Description("Minimum annual net income in USD")),
		mcp.WithNumber("min_gross_margin", mcp.Description("Minimum gross margin percent")),
		mcp.WithNumber("max_gross_margin", mcp.Description("Maximum gross margin percent")),
		mcp.WithNumber("min_operating_margin", mcp.Description("Minimum operating margin percent")),
		mcp.WithNumber("min_net_margin", mcp.Description("Minimum net margin percent")),
		mcp.WithNumber("min_revenue_growth", mcp.Description("Minimum YoY revenue growth percent")),
		mcp.WithNumber("min_eps_growth", mcp.Description("Minimum YoY EPS growth percent")),
		mcp.WithNumber("min_return_on_equity", mcp.Description("Minimum return on equity percent")),
		mcp.WithNumber("min_return_on_assets", mcp.Description("Minimum return on assets percent")),
		mcp.WithNumber("max_debt_to_equity", mcp.Description("Maximum debt-to-equity ratio")),
		mcp.WithNumber("min_current_ratio", mcp.Description("Minimum current ratio")),
		mcp.WithNumber("min_interest_coverage", mcp.Description("Minimum interest coverage ratio")),
		mcp.WithString("tier", mcp.Description("Index membership: 'sp500' or 'russell1000'")),
		mcp.WithString("sic", mcp.Description("SIC industry code filter")),
		mcp.WithBoolean("has_insider_buying", mcp.Description("Only companies with recent insider purchases")),
		mcp.WithBoolean("has_institutional_increase", mcp.Description("Only companies with institutional position increases")),
		mcp.WithString("sort", mcp.Description("Ratio to sort by")),
		mcp.WithString("order", mcp.Description("Sort order: 'asc' or 'desc' (default)")),
		mcp.WithNumber("limit", mcp.Description("Maximum results to return (default: 20, max: 50)")),
	)
}

func createGetInsiderTradesTool() mcp.Tool {
	return mcp.NewTool("get_insider_trades",
		mcp.WithDescription("Get insider trading transactions (Form 4) — purchases, sales, grants, and option exercises. "+
			"Use ticker to scope to one company, or omit to search across all companies. "+
			"Filter by transaction type, minimum value, and date range."),
		mcp.WithString("ticker", mcp.Description("Stock ticker to scope to one company (optional)")),
		mcp.WithString("type", mcp.Description("Transaction type: 'purchase', 'sale', 'grant', or 'exercise'")),
		mcp.WithNumber("min_value", mcp.Description("Minimum transaction value in USD (market-wide search only)")),
		mcp.WithString("from_date", mcp.Description("Start date in YYYY-MM-DD format")),
		mcp.WithString("to_date", mcp.Description("End date in YYYY-MM-DD format")),
		mcp.WithNumber("limit", mcp.Description("Maximum results to return (default: 20, max: 50)")),
	)
}

func createSearchFundsTool() mcp.Tool {
	return mcp.NewTool("search_funds",
		mcp.WithDescription("Find institutional investment managers (hedge funds, mutual funds) by name. Use this to look up a fund's CIK before querying its holdings."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Fund name to search for")),
		mcp.WithNumber("limit", mcp.Description("Maximum results to return (default: 20, max: 50)")),
	)
}

func createGetInstitutionalHoldersTool() mcp.Tool {
	return mcp.NewTool("get_institutional_holders",
		mcp.WithDescription("Get which institutional funds hold a company's stock. Shows shares held, market value, and discretion type. Accepts ticker or CIK."),
		mcp.WithString("ticker", mcp.Required(), mcp.Description("Stock ticker (e.g., 'AAPL') or CIK")),
		mcp.WithString("quarter", mcp.Description("Quarter label (e.g., '2025Q4'). Defaults to the latest available.")),
		mcp.WithNumber("limit", mcp.Description("Maximum results to return (default: 20, max: 50)")),
	)
}

func createGetFundHoldingsTool() mcp.Tool {
	return mcp.NewTool("get_fund_holdings",
		mcp.WithDescription("Get a fund's portfolio holdings. Shows what stocks a fund owns, with share counts and market values. Accepts fund name or CIK."),
		mcp.WithString("fund_name", mcp.Required(), mcp.Description("Fund name (e.g., 'Berkshire Hathaway') or 10-digit CIK")),
		mcp.WithString("quarter", mcp.Description("Quarter label (e.g., '2025Q4'). Defaults to the latest available.")),
		mcp.WithString("position_type", mcp.Description("Position type: 'equity' (default), 'option', or 'all'")),
		mcp.WithNumber("limit", mcp.Description("Maximum results to return (default: 20, max: 50)")),
	)
}

func createGetHoldingChangesTool() mcp.Tool {
	return mcp.NewTool("get_holding_changes",
		mcp.WithDescription("Get quarter-over-quarter changes in institutional holdings. Use 'ticker' to see which funds are buying/selling a company, or 'fund_name' to see what a fund is buying/selling. Provide exactly one."),
		mcp.WithString("ticker", mcp.Description("Stock ticker — see which funds changed positions in this company")),
		mcp.WithString("fund_name", mcp.Description("Fund name or CIK — see what positions this fund changed")),
		mcp.WithString("quarter", mcp.Description("Quarter label (e.g., '2025Q4'). Defaults to the latest available.")),
		mcp.WithString("change", mcp.Description("Change type filter: 'new', 'exited', 'increased', or 'decreased'")),
		mcp.WithNumber("limit", mcp.Description("Maximum results to return (default: 20, max: 50)")),
	)
}

func createGetExecutiveCompensationTool() mcp.Tool {
	return mcp.NewTool("get_executive_compensation",
		mcp.WithDescription("Get executive compensation (salary, bonus, stock awards, total) from proxy statements. Includes CEO-to-median pay ratio when available. Accepts ticker or CIK."),
		mcp.WithString("ticker", mcp.Required(), mcp.Description("Stock ticker (e.g., 'AAPL') or CIK")),
		mcp.WithNumber("year", mcp.Description("Fiscal year (default: latest)")),
	)
}

func createGetBoardMembersTool() mcp.Tool {
	return mcp.NewTool("get_board_members",
		mcp.WithDescription("Get board of directors (name, age, tenure, independence, committee memberships) from proxy statements. Accepts ticker or CIK."),
		mcp.WithString("ticker", mcp.Required(), mcp.Description("Stock ticker (e.g., 'AAPL') or CIK")),
		mcp.WithNumber("year", mcp.Description("Fiscal year (default: latest)")),
	)
}

func createSearchFilingsTool() mcp.Tool {
	return mcp.NewTool("search_filings",
		mcp.WithDescription("Search SEC filings by company, type (10-K, 10-Q, 8-K, 4, DEF 14A, 13F-HR), and date range. Returns filing metadata with accession numbers."),
		mcp.WithString("ticker", mcp.Description("Stock ticker to scope to one company (optional)")),
		mcp.WithString("type", mcp.Description("Filing type (e.g., '10-K', '8-K', 'DEF 14A')")),
		mcp.WithString("from_date", mcp.Description("Start date in YYYY-MM-DD format")),
		mcp.WithString("to_date", mcp.Description("End date in YYYY-MM-DD format")),
		mcp.WithNumber("limit", mcp.Description("Maximum results to return (default: 20, max: 50)")),
	)
}

func createGetEventsTool() mcp.Tool {
	return mcp.NewTool("get_events",
		mcp.WithDescription("Get 8-K corporate events (earnings, M&A, leadership changes, material agreements). "+
			"Use ticker to scope to one company, or omit to search across all companies. Filter by category and date range."),
		mcp.WithString("ticker", mcp.Description("Stock ticker to scope to one company (optional)")),
		mcp.WithString("category", mcp.Description("Event category: earnings, ma, leadership, agreements, governance, accounting, distress, regulatory, other")),
		mcp.WithString("from_date", mcp.Description("Start date in YYYY-MM-DD format")),
		mcp.WithString("to_date", mcp.Description("End date in YYYY-MM-DD format")),
		mcp.WithNumber("limit", mcp.Description("Maximum results to return (default: 20, max: 50)")),
	)
}
