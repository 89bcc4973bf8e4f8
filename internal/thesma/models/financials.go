package models

// Statement holds one financial statement (income, balance sheet, or cash
// flow) for a single fiscal period. Line items are pointers: a nil value
// means the company did not report that item.
type Statement struct {
	CompanyName     string `json:"company_name"`
	Ticker          string `json:"ticker"`
	FiscalYear      int    `json:"fiscal_year"`
	FiscalQuarter   *int   `json:"fiscal_quarter"`
	FilingType      string `json:"filing_type"`
	AccessionNumber string `json:"accession_number"`
	DataSource      string `json:"data_source"`

	// Income statement
	Revenue                *float64 `json:"revenue"`
	CostOfRevenue          *float64 `json:"cost_of_revenue"`
	GrossProfit            *float64 `json:"gross_profit"`
	OperatingExpenses      *float64 `json:"operating_expenses"`
	ResearchAndDevelopment *float64 `json:"research_and_development"`
	SellingGeneralAdmin    *float64 `json:"selling_general_admin"`
	OperatingIncome        *float64 `json:"operating_income"`
	InterestExpense        *float64 `json:"interest_expense"`
	InterestIncome         *float64 `json:"interest_income"`
	PreTaxIncome           *float64 `json:"pre_tax_income"`
	IncomeTaxExpense       *float64 `json:"income_tax_expense"`
	NetIncome              *float64 `json:"net_income"`
	EPSBasic               *float64 `json:"eps_basic"`
	EPSDiluted             *float64 `json:"eps_diluted"`

	// Balance sheet
	TotalAssets             *float64 `json:"total_assets"`
	CurrentAssets           *float64 `json:"current_assets"`
	CashAndEquivalents      *float64 `json:"cash_and_equivalents"`
	AccountsReceivable      *float64 `json:"accounts_receivable"`
	Inventory               *float64 `json:"inventory"`
	NonCurrentAssets        *float64 `json:"non_current_assets"`
	PropertyPlantEquipment  *float64 `json:"property_plant_equipment"`
	Goodwill                *float64 `json:"goodwill"`
	IntangibleAssets        *float64 `json:"intangible_assets"`
	TotalLiabilities        *float64 `json:"total_liabilities"`
	CurrentLiabilities      *float64 `json:"current_liabilities"`
	AccountsPayable         *float64 `json:"accounts_payable"`
	ShortTermDebt           *float64 `json:"short_term_debt"`
	NonCurrentLiabilities   *float64 `json:"non_current_liabilities"`
	LongTermDebt            *float64 `json:"long_term_debt"`
	TotalEquity             *float64 `json:"total_equity"`
	CommonSharesOutstanding *float64 `json:"common_shares_outstanding"`

	// Cash flow
	OperatingCashFlow   *float64 `json:"operating_cash_flow"`
	InvestingCashFlow   *float64 `json:"investing_cash_flow"`
	FinancingCashFlow   *float64 `json:"financing_cash_flow"`
	NetChangeInCash     *float64 `json:"net_change_in_cash"`
	CapitalExpenditures *float64 `json:"capital_expenditures"`
	DividendsPaid       *float64 `json:"dividends_paid"`
	ShareRepurchases    *float64 `json:"share_repurchases"`
}

// MetricPoint is one observation in a financial metric or ratio time series.
type MetricPoint struct {
	CompanyName string   `json:"company_name"`
	Ticker      string   `json:"ticker"`
	FiscalYear  int      `json:"fiscal_year"`
	Value       *float64 `json:"value"`
}
