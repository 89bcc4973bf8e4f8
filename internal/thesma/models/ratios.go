package models

// RatioSet holds the computed ratios for one fiscal period. All ratio values
// arrive pre-scaled: margins and growth rates in percent points (42.5 means
// 42.5%), leverage ratios as plain multipliers.
type RatioSet struct {
	CompanyName   string `json:"company_name"`
	Ticker        string `json:"ticker"`
	FiscalYear    int    `json:"fiscal_year"`
	FiscalQuarter *int   `json:"fiscal_quarter"`

	GrossMargin        *float64 `json:"gross_margin"`
	OperatingMargin    *float64 `json:"operating_margin"`
	NetMargin          *float64 `json:"net_margin"`
	ReturnOnEquity     *float64 `json:"return_on_equity"`
	ReturnOnAssets     *float64 `json:"return_on_assets"`
	DebtToEquity       *float64 `json:"debt_to_equity"`
	CurrentRatio       *float64 `json:"current_ratio"`
	InterestCoverage   *float64 `json:"interest_coverage"`
	RevenueGrowthYoY   *float64 `json:"revenue_growth_yoy"`
	NetIncomeGrowthYoY *float64 `json:"net_income_growth_yoy"`
	EPSGrowthYoY       *float64 `json:"eps_growth_yoy"`
}

// ScreenResult is one company row from the screener endpoint, with the
// ratio values used for filtering and display.
type ScreenResult struct {
	CIK    string             `json:"cik"`
	Ticker string             `json:"ticker"`
	Name   string             `json:"name"`
	Ratios map[string]float64 `json:"ratios"`
}

// RatioValue returns the named ratio, or nil when the company does not
// report it.
func (s *ScreenResult) RatioValue(name string) *float64 {
	if s.Ratios == nil {
		return nil
	}
	v, ok := s.Ratios[name]
	if !ok {
		return nil
	}
	return &v
}
