package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/thesma/thesma-mcp/internal/thesma/client"
	"github.com/thesma/thesma-mcp/internal/thesma/common"
	"github.com/thesma/thesma-mcp/internal/thesma/models"
	"github.com/thesma/thesma-mcp/internal/thesma/resolver"
)

// maxLimit caps the per_page value sent to every list endpoint.
const maxLimit = 50

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// --- Helpers ---

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

// withRecovery converts an unexpected panic in a handler into a generic
// error result. The process must never crash on a single tool call.
func withRecovery(name string, a *App, h server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
		defer func() {
			if r := recover(); r != nil {
				a.Logger.Error().Str("tool", name).Str("panic", fmt.Sprintf("%v", r)).Msg("Tool handler panicked")
				result = errorResult("Thesma API is temporarily unavailable. Try again in a moment.")
				err = nil
			}
		}()
		return h(ctx, request)
	}
}

// toolLogger returns a logger with a fresh correlation ID for one tool call.
func (a *App) toolLogger(tool string) *common.Logger {
	l := a.Logger.WithCorrelationId(uuid.New().String())
	l.Info().Str("tool", tool).Msg("Tool call")
	return l
}

// capLimit reads the limit argument, applying a default and the global cap.
func capLimit(request mcp.CallToolRequest, defaultVal int) int {
	limit := request.GetInt("limit", defaultVal)
	if limit <= 0 {
		limit = defaultVal
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit
}

// optionalFloat returns the numeric argument if present, nil otherwise.
// Presence matters: a filter of 0 and an absent filter are different things.
func optionalFloat(request mcp.CallToolRequest, key string) *float64 {
	v, ok := request.GetArguments()[key]
	if !ok || v == nil {
		return nil
	}
	switch n := v.(type) {
	case float64:
		return &n
	case int:
		f := float64(n)
		return &f
	case int64:
		f := float64(n)
		return &f
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return &f
		}
	}
	return nil
}

// optionalInt returns the integer argument if present, nil otherwise.
func optionalInt(request mcp.CallToolRequest, key string) *int {
	f := optionalFloat(request, key)
	if f == nil {
		return nil
	}
	i := int(*f)
	return &i
}

// validatePeriodQuarter checks the period/quarter combination. Returns an
// error message, or "" when valid.
func validatePeriodQuarter(period string, quarter *int) string {
	if period == "quarterly" && quarter == nil {
		return "Quarter (1-4) is required when period is 'quarterly'."
	}
	if period == "annual" && quarter != nil {
		return "Quarter should not be specified when period is 'annual'."
	}
	return ""
}

// validateDate checks YYYY-MM-DD format. Returns an error message, or ""
// when valid.
func validateDate(value string) string {
	if !datePattern.MatchString(value) {
		return fmt.Sprintf("Invalid date format '%s'. Expected YYYY-MM-DD.", value)
	}
	return ""
}

func formatFloatParam(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// resolveFundCIK resolves a fund name or CIK to a CIK string via the fund
// search endpoint.
func resolveFundCIK(ctx context.Context, a *App, fundName string) (string, error) {
	if resolver.CIKPattern.MatchString(fundName) {
		return fundName, nil
	}

	params := url.Values{}
	params.Set("search", fundName)
	body, err := a.Client.Get(ctx, "/v1/us/sec/funds", params)
	if err != nil {
		return "", err
	}

	var resp struct {
		Data []models.Fund `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse fund search response: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].CIK == "" {
		return "", client.NotFoundError(fmt.Sprintf(
			"No fund found matching '%s'. Try a different name or use the fund's CIK directly.", fundName))
	}
	return resp.Data[0].CIK, nil
}

// fetchCompany fetches company details for a resolved CIK. Used by handlers
// that need the company name for a header.
func fetchCompany(ctx context.Context, a *App, cik string) (*models.Company, error) {
	body, err := a.Client.Get(ctx, "/v1/us/sec/companies/"+url.PathEscape(cik), nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Data models.Company `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse company response: %w", err)
	}
	return &resp.Data, nil
}

// --- Handlers ---

func handleGetVersion(a *App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := fmt.Sprintf("Thesma MCP Server\nVersion: %s\nAPI: %s\nStatus: OK",
			common.GetFullVersion(), a.Client.BaseURL())
		return textResult(result), nil
	}
}

func handleSearchCompanies(a *App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil || strings.TrimSpace(query) == "" {
			return errorResult("Error: query parameter is required"), nil
		}
		a.toolLogger("search_companies")
		limit := capLimit(request, 20)

		// Exact ticker match first
		params := url.Values{}
		params.Set("ticker", strings.ToUpper(query))
		if body, err := a.Client.Get(ctx, "/v1/us/sec/companies", params); err == nil {
			var resp struct {
				Data []models.Company `json:"data"`
			}
			if json.Unmarshal(body, &resp) == nil && len(resp.Data) > 0 {
				return textResult(formatCompanyList(resp.Data, query)), nil
			}
		}

		// Fall back to name search
		params = url.Values{}
		params.Set("search", query)
		params.Set("per_page", strconv.Itoa(limit))
		if tier := request.GetString("tier", ""); tier != "" {
			params.Set("tier", tier)
		}

		body, err := a.Client.Get(ctx, "/v1/us/sec/companies", params)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		var resp struct {
			Data []models.Company `json:"data"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return errorResult(fmt.Sprintf("Error parsing response: %v", err)), nil
		}

		if len(resp.Data) == 0 {
			return textResult(fmt.Sprintf(
				"No companies found matching %q. Try a different search term or check the spelling.", query)), nil
		}

		return textResult(formatCompanyList(resp.Data, query)), nil
	}
}

func handleGetCompany(a *App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, err := request.RequireString("ticker")
		if err != nil || ticker == "" {
			return errorResult("Error: ticker parameter is required"), nil
		}
		a.toolLogger("get_company")

		cik, err := a.Resolver.Resolve(ctx, ticker)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		company, err := fetchCompany(ctx, a, cik)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		return textResult(formatCompanyDetail(company, ticker, cik)), nil
	}
}

func handleGetFinancials(a *App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, err := request.RequireString("ticker")
		if err != nil || ticker == "" {
			return errorResult("Error: ticker parameter is required"), nil
		}
		statement := request.GetString("statement", "income")
		if _, ok := statementTitles[statement]; !ok {
			return errorResult(fmt.Sprintf(
				"Invalid statement '%s'. Valid statements: balance-sheet, cash-flow, income.", statement)), nil
		}
		period := request.GetString("period", "annual")
		quarter := optionalInt(request, "quarter")
		if msg := validatePeriodQuarter(period, quarter); msg != "" {
			return errorResult(msg), nil
		}
		a.toolLogger("get_financials")

		cik, err := a.Resolver.Resolve(ctx, ticker)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		params := url.Values{}
		params.Set("statement", statement)
		params.Set("period", period)
		if year := optionalInt(request, "year"); year != nil {
			params.Set("year", strconv.Itoa(*year))
		}
		if quarter != nil {
			params.Set("quarter", strconv.Itoa(*quarter))
		}

		body, err := a.Client.Get(ctx, "/v1/us/sec/companies/"+url.PathEscape(cik)+"/financials", params)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		var resp struct {
			Data *models.Statement `json:"data"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return errorResult(fmt.Sprintf("Error parsing response: %v", err)), nil
		}
		if resp.Data == nil {
			title := statementTitles[statement]
			return textResult(fmt.Sprintf(
				"No financial data found for this company. The company may not have filed a %s yet.", title)), nil
		}

		return textResult(formatStatement(resp.Data, ticker, statement, period)), nil
	}
}

func handleGetFinancialMetric(a *App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, err := request.RequireString("ticker")
		if err != nil || ticker == "" {
			return errorResult("Error: ticker parameter is required"), nil
		}
		metric, err := request.RequireString("metric")
		if err != nil || metric == "" {
			return errorResult("Error: metric parameter is required"), nil
		}
		if !validMetrics[metric] {
			return errorResult(fmt.Sprintf(
				"Invalid metric '%s'. Valid metrics are: %s", metric, strings.Join(sortedKeys(validMetrics), ", "))), nil
		}
		a.toolLogger("get_financial_metric")

		cik, err := a.Resolver.Resolve(ctx, ticker)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		period := request.GetString("period", "annual")
		params := url.Values{}
		params.Set("period", period)
		if from := optionalInt(request, "from_year"); from != nil {
			params.Set("from", strconv.Itoa(*from))
		}
		if to := optionalInt(request, "to_year"); to != nil {
			params.Set("to", strconv.Itoa(*to))
		}

		body, err := a.Client.Get(ctx, "/v1/us/sec/companies/"+url.PathEscape(cik)+"/financials/"+url.PathEscape(metric), params)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		var resp struct {
			Data []models.MetricPoint `json:"data"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return errorResult(fmt.Sprintf("Error parsing response: %v", err)), nil
		}
		if len(resp.Data) == 0 {
			return textResult(fmt.Sprintf(
				"No data found for metric '%s'. The company may not report this field.", metric)), nil
		}

		return textResult(formatMetricSeries(resp.Data, ticker, metric, period)), nil
	}
}

func handleGetRatios(a *App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, err := request.RequireString("ticker")
		if err != nil || ticker == "" {
			return errorResult("Error: ticker parameter is required"), nil
		}
		period := request.GetString("period", "annual")
		quarter := optionalInt(request, "quarter")
		if msg := validatePeriodQuarter(period, quarter); msg != "" {
			return errorResult(msg), nil
		}
		a.toolLogger("get_ratios")

		cik, err := a.Resolver.Resolve(ctx, ticker)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		params := url.Values{}
		params.Set("period", period)
		if year := optionalInt(request, "year"); year != nil {
			params.Set("year", strconv.Itoa(*year))
		}
		if quarter != nil {
			params.Set("quarter", strconv.Itoa(*quarter))
		}

		body, err := a.Client.Get(ctx, "/v1/us/sec/companies/"+url.PathEscape(cik)+"/ratios", params)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		var resp struct {
			Data *models.RatioSet `json:"data"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return errorResult(fmt.Sprintf("Error parsing response: %v", err)), nil
		}
		if resp.Data == nil {
			return textResult("No ratio data found for this company."), nil
		}

		return textResult(formatRatios(resp.Data, ticker, period)), nil
	}
}

func handleGetRatioHistory(a *App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, err := request.RequireString("ticker")
		if err != nil || ticker == "" {
			return errorResult("Error: ticker parameter is required"), nil
		}
		ratio, err := request.RequireString("ratio")
		if err != nil || ratio == "" {
			return errorResult("Error: ratio parameter is required"), nil
		}
		if !validRatios[ratio] {
			return errorResult(fmt.Sprintf(
				"Invalid ratio '%s'. Valid ratios are: %s", ratio, strings.Join(sortedKeys(validRatios), ", "))), nil
		}
		a.toolLogger("get_ratio_history")

		cik, err := a.Resolver.Resolve(ctx, ticker)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		period := request.GetString("period", "annual")
		params := url.Values{}
		params.Set("period", period)
		if from := optionalInt(request, "from_year"); from != nil {
			params.Set("from", strconv.Itoa(*from))
		}
		if to := optionalInt(request, "to_year"); to != nil {
			params.Set("to", strconv.Itoa(*to))
		}

		body, err := a.Client.Get(ctx, "/v1/us/sec/companies/"+url.PathEscape(cik)+"/ratios/"+url.PathEscape(ratio), params)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		var resp struct {
			Data []models.MetricPoint `json:"data"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return errorResult(fmt.Sprintf("Error parsing response: %v", err)), nil
		}
		if len(resp.Data) == 0 {
			return textResult(fmt.Sprintf("No data found for ratio '%s'.", ratio)), nil
		}

		return textResult(formatRatioSeries(resp.Data, ticker, ratio, period)), nil
	}
}

// screenFilters carries the screener arguments from request parsing through
// to summary and column formatting.
type screenFilters struct {
	MinRevenue               *float64
	MinNetIncome             *float64
	MinGrossMargin           *float64
	MaxGrossMargin           *float64
	MinOperatingMargin       *float64
	MinNetMargin             *float64
	MinRevenueGrowth         *float64
	MinEPSGrowth             *float64
	MinReturnOnEquity        *float64
	MinReturnOnAssets        *float64
	MaxDebtToEquity          *float64
	MinCurrentRatio          *float64
	MinInterestCoverage      *float64
	Tier                     string
	SIC                      string
	HasInsiderBuying         bool
	HasInstitutionalIncrease bool
	Sort                     string
	Order                    string
}

func handleScreenCompanies(a *App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		f := screenFilters{
			MinRevenue:               optionalFloat(request, "min_revenue"),
			MinNetIncome:             optionalFloat(request, "min_net_income"),
			MinGrossMargin:           optionalFloat(request, "min_gross_margin"),
			MaxGrossMargin:           optionalFloat(request, "max_gross_margin"),
			MinOperatingMargin:       optionalFloat(request, "min_operating_margin"),
			MinNetMargin:             optionalFloat(request, "min_net_margin"),
			MinRevenueGrowth:         optionalFloat(request, "min_revenue_growth"),
			MinEPSGrowth:             optionalFloat(request, "min_eps_growth"),
			MinReturnOnEquity:        optionalFloat(request, "min_return_on_equity"),
			MinReturnOnAssets:        optionalFloat(request, "min_return_on_assets"),
			MaxDebtToEquity:          optionalFloat(request, "max_debt_to_equity"),
			MinCurrentRatio:          optionalFloat(request, "min_current_ratio"),
			MinInterestCoverage:      optionalFloat(request, "min_interest_coverage"),
			Tier:                     request.GetString("tier", ""),
			SIC:                      request.GetString("sic", ""),
			HasInsiderBuying:         request.GetBool("has_insider_buying", false),
			HasInstitutionalIncrease: request.GetBool("has_institutional_increase", false),
			Sort:                     request.GetString("sort", ""),
			Order:                    request.GetString("order", ""),
		}

		if f.Sort != "" && !validRatios[f.Sort] {
			return errorResult(fmt.Sprintf(
				"Invalid sort field '%s'. Valid fields: %s", f.Sort, strings.Join(sortedKeys(validRatios), ", "))), nil
		}
		a.toolLogger("screen_companies")

		limit := capLimit(request, 20)
		params := url.Values{}
		params.Set("per_page", strconv.Itoa(limit))

		numeric := []struct {
			key string
			val *float64
		}{
			{"min_revenue", f.MinRevenue},
			{"min_net_income", f.MinNetIncome},
			{"min_gross_margin", f.MinGrossMargin},
			{"max_gross_margin", f.MaxGrossMargin},
			{"min_operating_margin", f.MinOperatingMargin},
			{"min_net_margin", f.MinNetMargin},
			{"min_revenue_growth", f.MinRevenueGrowth},
			{"min_eps_growth", f.MinEPSGrowth},
			{"min_return_on_equity", f.MinReturnOnEquity},
			{"min_return_on_assets", f.MinReturnOnAssets},
			{"max_debt_to_equity", f.MaxDebtToEquity},
			{"min_current_ratio", f.MinCurrentRatio},
			{"min_interest_coverage", f.MinInterestCoverage},
		}
		for _, n := range numeric {
			if n.val != nil {
				params.Set(n.key, formatFloatParam(*n.val))
			}
		}
		if f.Tier != "" {
			params.Set("tier", f.Tier)
		}
		if f.SIC != "" {
			params.Set("sic", f.SIC)
		}
		// Boolean signals are only sent when true
		if f.HasInsiderBuying {
			params.Set("has_insider_buying", "true")
		}
		if f.HasInstitutionalIncrease {
			params.Set("has_institutional_increase", "true")
		}
		if f.Sort != "" {
			params.Set("sort", f.Sort)
		}
		if f.Order != "" {
			params.Set("order", f.Order)
		}

		body, err := a.Client.Get(ctx, "/v1/us/sec/screener", params)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		var resp struct {
			Data       []models.ScreenResult `json:"data"`
			Pagination models.Pagination     `json:"pagination"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return errorResult(fmt.Sprintf("Error parsing response: %v", err)), nil
		}

		if len(resp.Data) == 0 {
			return textResult("No companies matched the specified criteria. Try broadening your filters."), nil
		}

		total := resp.Pagination.Total
		if total == 0 {
			total = len(resp.Data)
		}

		return textResult(formatScreenResults(resp.Data, total, f)), nil
	}
}

func handleGetInsiderTrades(a *App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker := strings.TrimSpace(request.GetString("ticker", ""))
		tradeType := request.GetString("type", "")
		if tradeType != "" && !validTradeTypes[tradeType] {
			return errorResult(fmt.Sprintf(
				"Invalid type '%s'. Valid types: %s.", tradeType, strings.Join(sortedKeys(validTradeTypes), ", "))), nil
		}
		for _, dateVal := range []string{request.GetString("from_date", ""), request.GetString("to_date", "")} {
			if dateVal != "" {
				if msg := validateDate(dateVal); msg != "" {
					return errorResult(msg), nil
				}
			}
		}
		a.toolLogger("get_insider_trades")

		limit := capLimit(request, 20)
		params := url.Values{}
		params.Set("per_page", strconv.Itoa(limit))
		if tradeType != "" {
			params.Set("type", tradeType)
		}
		if from := request.GetString("from_date", ""); from != "" {
			params.Set("from", from)
		}
		if to := request.GetString("to_date", ""); to != "" {
			params.Set("to", to)
		}

		var path, companyName, companyTicker string
		minValue := optionalFloat(request, "min_value")

		if ticker != "" {
			cik, err := a.Resolver.Resolve(ctx, ticker)
			if err != nil {
				return errorResult(err.Error()), nil
			}
			path = "/v1/us/sec/companies/" + url.PathEscape(cik) + "/insider-trades"
			if company, err := fetchCompany(ctx, a, cik); err == nil {
				companyName = company.Name
				companyTicker = company.Ticker
			}
			if companyName == "" {
				companyName = ticker
			}
			if companyTicker == "" {
				companyTicker = strings.ToUpper(ticker)
			}
		} else {
			path = "/v1/us/sec/insider-trades"
			if minValue != nil {
				params.Set("min_value", formatFloatParam(*minValue))
			}
		}

		body, err := a.Client.Get(ctx, path, params)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		var resp struct {
			Data       []models.InsiderTrade `json:"data"`
			Pagination models.Pagination     `json:"pagination"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return errorResult(fmt.Sprintf("Error parsing response: %v", err)), nil
		}

		if len(resp.Data) == 0 {
			scope := ""
			if companyName != "" {
				scope = " for " + companyName
			}
			typeFilter := ""
			if tradeType != "" {
				typeFilter = fmt.Sprintf(" of type '%s'", tradeType)
			}
			return textResult(fmt.Sprintf("No insider trades found%s%s. Try adjusting your filters.", scope, typeFilter)), nil
		}

		total := resp.Pagination.Total
		if total == 0 {
			total = len(resp.Data)
		}

		return textResult(formatInsiderTrades(resp.Data, total, companyName, companyTicker, tradeType, minValue)), nil
	}
}

func handleSearchFunds(a *App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil || strings.TrimSpace(query) == "" {
			return errorResult("Error: query parameter is required"), nil
		}
		a.toolLogger("search_funds")

		limit := capLimit(request, 20)
		params := url.Values{}
		params.Set("search", query)
		params.Set("per_page", strconv.Itoa(limit))

		body, err := a.Client.Get(ctx, "/v1/us/sec/funds", params)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		var resp struct {
			Data []models.Fund `json:"data"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return errorResult(fmt.Sprintf("Error parsing response: %v", err)), nil
		}

		if len(resp.Data) == 0 {
			return textResult(fmt.Sprintf("No funds found matching %q. Try a different name.", query)), nil
		}

		return textResult(formatFundList(resp.Data, query)), nil
	}
}

func handleGetInstitutionalHolders(a *App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, err := request.RequireString("ticker")
		if err != nil || ticker == "" {
			return errorResult("Error: ticker parameter is required"), nil
		}
		a.toolLogger("get_institutional_holders")

		cik, err := a.Resolver.Resolve(ctx, ticker)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		limit := capLimit(request, 20)
		quarter := request.GetString("quarter", "")
		params := url.Values{}
		params.Set("per_page", strconv.Itoa(limit))
		if quarter != "" {
			params.Set("quarter", quarter)
		}

		body, err := a.Client.Get(ctx, "/v1/us/sec/companies/"+url.PathEscape(cik)+"/institutional-holders", params)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		var resp struct {
			Data       []models.InstitutionalHolder `json:"data"`
			Pagination models.Pagination            `json:"pagination"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return errorResult(fmt.Sprintf("Error parsing response: %v", err)), nil
		}

		if len(resp.Data) == 0 {
			return textResult("No institutional holders found for this company."), nil
		}

		total := resp.Pagination.Total
		if total == 0 {
			total = len(resp.Data)
		}

		return textResult(formatInstitutionalHolders(resp.Data, total, ticker, quarter)), nil
	}
}

func handleGetFundHoldings(a *App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		fundName, err := request.RequireString("fund_name")
		if err != nil || fundName == "" {
			return errorResult("Error: fund_name parameter is required"), nil
		}
		a.toolLogger("get_fund_holdings")

		fundCIK, err := resolveFundCIK(ctx, a, fundName)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		limit := capLimit(request, 20)
		quarter := request.GetString("quarter", "")
		positionType := request.GetString("position_type", "equity")

		params := url.Values{}
		params.Set("per_page", strconv.Itoa(limit))
		if quarter != "" {
			params.Set("quarter", quarter)
		}
		if positionType != "all" {
			params.Set("position_type", positionType)
		}

		body, err := a.Client.Get(ctx, "/v1/us/sec/funds/"+url.PathEscape(fundCIK)+"/holdings", params)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		var resp struct {
			Data       []models.FundHolding `json:"data"`
			Pagination models.Pagination    `json:"pagination"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return errorResult(fmt.Sprintf("Error parsing response: %v", err)), nil
		}

		if len(resp.Data) == 0 {
			return textResult("No holdings found for this fund."), nil
		}

		total := resp.Pagination.Total
		if total == 0 {
			total = len(resp.Data)
		}

		return textResult(formatFundHoldings(resp.Data, total, fundName, quarter, positionType)), nil
	}
}

func handleGetHoldingChanges(a *App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker := strings.TrimSpace(request.GetString("ticker", ""))
		fundName := strings.TrimSpace(request.GetString("fund_name", ""))

		if (ticker != "" && fundName != "") || (ticker == "" && fundName == "") {
			return errorResult("Provide exactly one of 'ticker' or 'fund_name'. " +
				"Use ticker to see which funds changed positions, or fund_name to see what positions changed."), nil
		}
		a.toolLogger("get_holding_changes")

		limit := capLimit(request, 20)
		params := url.Values{}
		params.Set("per_page", strconv.Itoa(limit))
		if quarter := request.GetString("quarter", ""); quarter != "" {
			params.Set("quarter", quarter)
		}
		if change := request.GetString("change", ""); change != "" {
			params.Set("change", change)
		}

		var path string
		byTicker := ticker != ""
		if byTicker {
			cik, err := a.Resolver.Resolve(ctx, ticker)
			if err != nil {
				return errorResult(err.Error()), nil
			}
			path = "/v1/us/sec/companies/" + url.PathEscape(cik) + "/institutional-changes"
		} else {
			fundCIK, err := resolveFundCIK(ctx, a, fundName)
			if err != nil {
				return errorResult(err.Error()), nil
			}
			path = "/v1/us/sec/funds/" + url.PathEscape(fundCIK) + "/holding-changes"
		}

		body, err := a.Client.Get(ctx, path, params)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		var resp struct {
			Data       []models.HoldingChange `json:"data"`
			Pagination models.Pagination      `json:"pagination"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return errorResult(fmt.Sprintf("Error parsing response: %v", err)), nil
		}

		total := resp.Pagination.Total
		if total == 0 {
			total = len(resp.Data)
		}

		if byTicker {
			if len(resp.Data) == 0 {
				return textResult("No position changes found for this company in the selected quarter."), nil
			}
			return textResult(formatChangesByTicker(resp.Data, total, ticker)), nil
		}
		if len(resp.Data) == 0 {
			return textResult("No position changes found for this fund in the selected quarter."), nil
		}
		return textResult(formatChangesByFund(resp.Data, total, fundName)), nil
	}
}

func handleGetExecutiveCompensation(a *App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, err := request.RequireString("ticker")
		if err != nil || ticker == "" {
			return errorResult("Error: ticker parameter is required"), nil
		}
		a.toolLogger("get_executive_compensation")

		cik, err := a.Resolver.Resolve(ctx, ticker)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		params := url.Values{}
		if year := optionalInt(request, "year"); year != nil {
			params.Set("year", strconv.Itoa(*year))
		}

		body, err := a.Client.Get(ctx, "/v1/us/sec/companies/"+url.PathEscape(cik)+"/executive-compensation", params)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		var resp struct {
			Data *models.CompensationReport `json:"data"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return errorResult(fmt.Sprintf("Error parsing response: %v", err)), nil
		}
		if resp.Data == nil || len(resp.Data.Executives) == 0 {
			return textResult("No executive compensation data found for this company."), nil
		}

		return textResult(formatCompensation(resp.Data, ticker)), nil
	}
}

func handleGetBoardMembers(a *App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, err := request.RequireString("ticker")
		if err != nil || ticker == "" {
			return errorResult("Error: ticker parameter is required"), nil
		}
		a.toolLogger("get_board_members")

		cik, err := a.Resolver.Resolve(ctx, ticker)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		params := url.Values{}
		if year := optionalInt(request, "year"); year != nil {
			params.Set("year", strconv.Itoa(*year))
		}

		body, err := a.Client.Get(ctx, "/v1/us/sec/companies/"+url.PathEscape(cik)+"/board", params)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		var resp struct {
			Data *models.BoardReport `json:"data"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return errorResult(fmt.Sprintf("Error parsing response: %v", err)), nil
		}
		if resp.Data == nil || len(resp.Data.Members) == 0 {
			return textResult("No board data found for this company."), nil
		}

		return textResult(formatBoard(resp.Data, ticker)), nil
	}
}

func handleSearchFilings(a *App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker := strings.TrimSpace(request.GetString("ticker", ""))
		for _, dateVal := range []string{request.GetString("from_date", ""), request.GetString("to_date", "")} {
			if dateVal != "" {
				if msg := validateDate(dateVal); msg != "" {
					return errorResult(msg), nil
				}
			}
		}
		a.toolLogger("search_filings")

		limit := capLimit(request, 20)
		params := url.Values{}
		params.Set("per_page", strconv.Itoa(limit))

		if ticker != "" {
			cik, err := a.Resolver.Resolve(ctx, ticker)
			if err != nil {
				return errorResult(err.Error()), nil
			}
			params.Set("cik", cik)
		}
		if filingType := request.GetString("type", ""); filingType != "" {
			params.Set("type", filingType)
		}
		if from := request.GetString("from_date", ""); from != "" {
			params.Set("from", from)
		}
		if to := request.GetString("to_date", ""); to != "" {
			params.Set("to", to)
		}

		body, err := a.Client.Get(ctx, "/v1/us/sec/filings", params)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		var resp struct {
			Data       []models.Filing   `json:"data"`
			Pagination models.Pagination `json:"pagination"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return errorResult(fmt.Sprintf("Error parsing response: %v", err)), nil
		}

		if len(resp.Data) == 0 {
			return textResult("No filings found matching the search criteria."), nil
		}

		total := resp.Pagination.Total
		if total == 0 {
			total = len(resp.Data)
		}

		return textResult(formatFilings(resp.Data, total, ticker)), nil
	}
}

func handleGetEvents(a *App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker := strings.TrimSpace(request.GetString("ticker", ""))
		category := request.GetString("category", "")
		if category != "" && !validEventCategories[category] {
			return errorResult(fmt.Sprintf(
				"Invalid category '%s'. Valid categories: %s.", category, strings.Join(sortedKeys(validEventCategories), ", "))), nil
		}
		for _, dateVal := range []string{request.GetString("from_date", ""), request.GetString("to_date", "")} {
			if dateVal != "" {
				if msg := validateDate(dateVal); msg != "" {
					return errorResult(msg), nil
				}
			}
		}
		a.toolLogger("get_events")

		limit := capLimit(request, 20)
		params := url.Values{}
		params.Set("per_page", strconv.Itoa(limit))
		if category != "" {
			params.Set("category", category)
		}
		if from := request.GetString("from_date", ""); from != "" {
			params.Set("from", from)
		}
		if to := request.GetString("to_date", ""); to != "" {
			params.Set("to", to)
		}

		var path, companyName, companyTicker string
		if ticker != "" {
			cik, err := a.Resolver.Resolve(ctx, ticker)
			if err != nil {
				return errorResult(err.Error()), nil
			}
			path = "/v1/us/sec/companies/" + url.PathEscape(cik) + "/events"
			if company, err := fetchCompany(ctx, a, cik); err == nil {
				companyName = company.Name
				companyTicker = company.Ticker
			}
			if companyName == "" {
				companyName = ticker
			}
			if companyTicker == "" {
				companyTicker = strings.ToUpper(ticker)
			}
		} else {
			path = "/v1/us/sec/events"
		}

		body, err := a.Client.Get(ctx, path, params)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		var resp struct {
			Data       []models.Event    `json:"data"`
			Pagination models.Pagination `json:"pagination"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return errorResult(fmt.Sprintf("Error parsing response: %v", err)), nil
		}

		if len(resp.Data) == 0 {
			scope := ""
			if companyName != "" {
				scope = " for " + companyName
			}
			catFilter := ""
			if category != "" {
				catFilter = fmt.Sprintf(" in category '%s'", category)
			}
			return textResult(fmt.Sprintf("No events found%s%s. Try adjusting your filters.", scope, catFilter)), nil
		}

		total := resp.Pagination.Total
		if total == 0 {
			total = len(resp.Data)
		}

		return textResult(formatEvents(resp.Data, total, companyName, companyTicker, category)), nil
	}
}
