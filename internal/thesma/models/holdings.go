package models

// InstitutionalHolder is one fund position in a company, from 13F filings.
type InstitutionalHolder struct {
	CompanyName   string   `json:"company_name"`
	CompanyTicker string   `json:"company_ticker"`
	Quarter       string   `json:"quarter"`
	FundName      string   `json:"fund_name"`
	Shares        *float64 `json:"shares"`
	MarketValue   *float64 `json:"market_value"`
	Discretion    string   `json:"discretion"`
}

// FundHolding is one position in a fund's 13F portfolio.
type FundHolding struct {
	FundName      string   `json:"fund_name"`
	Quarter       string   `json:"quarter"`
	Ticker        string   `json:"ticker"`
	CompanyTicker string   `json:"company_ticker"`
	CompanyName   string   `json:"company_name"`
	Name          string   `json:"name"`
	Shares        *float64 `json:"shares"`
	MarketValue   *float64 `json:"market_value"`
}

// TickerValue returns the position's ticker, whichever field the API
// populated.
func (h *FundHolding) TickerValue() string {
	if h.Ticker != "" {
		return h.Ticker
	}
	return h.CompanyTicker
}

// CompanyValue returns the position's company name, whichever field the API
// populated.
func (h *FundHolding) CompanyValue() string {
	if h.CompanyName != "" {
		return h.CompanyName
	}
	return h.Name
}

// HoldingChange is one quarter-over-quarter position change from 13F
// comparisons. ChangeType is one of new, exited, increased, decreased,
// unchanged.
type HoldingChange struct {
	FundName      string   `json:"fund_name"`
	CompanyName   string   `json:"company_name"`
	CompanyTicker string   `json:"company_ticker"`
	Ticker        string   `json:"ticker"`
	Quarter       string   `json:"quarter"`
	ChangeType    string   `json:"change_type"`
	SharesDelta   *float64 `json:"shares_delta"`
	PercentChange *float64 `json:"percent_change"`
	CurrentValue  *float64 `json:"current_value"`
}

// TickerValue returns the change's ticker, whichever field the API populated.
func (c *HoldingChange) TickerValue() string {
	if c.Ticker != "" {
		return c.Ticker
	}
	return c.CompanyTicker
}
