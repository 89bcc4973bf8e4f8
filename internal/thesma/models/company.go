// Package models defines typed views of Thesma API response payloads.
// Unknown or extra fields in a response are ignored rather than rejected;
// optional numeric fields are pointers so missing values stay distinguishable
// from zero.
package models

// Pagination is the metadata block returned alongside list endpoints.
type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
}

// Company is a US public company from the SEC EDGAR registry.
type Company struct {
	CIK            string `json:"cik"`
	Ticker         string `json:"ticker"`
	Name           string `json:"name"`
	SICCode        string `json:"sic_code"`
	SICDescription string `json:"sic_description"`
	CompanyTier    string `json:"company_tier"`
	Tier           string `json:"tier"`
	FiscalYearEnd  string `json:"fiscal_year_end"`
}

// TierValue returns the index-membership tier, preferring the company_tier
// field over the legacy tier field.
func (c *Company) TierValue() string {
	if c.CompanyTier != "" {
		return c.CompanyTier
	}
	return c.Tier
}

// Fund is an institutional investment manager from 13F filings.
type Fund struct {
	CIK  string `json:"cik"`
	Name string `json:"name"`
}
