package models

import "encoding/json"

// CompensationReport holds named executive officer compensation for one
// fiscal year, from DEF 14A proxy statements.
type CompensationReport struct {
	CompanyName                string      `json:"company_name"`
	Ticker                     string      `json:"ticker"`
	FiscalYear                 int         `json:"fiscal_year"`
	Executives                 []Executive `json:"executives"`
	CEOPayRatio                *float64    `json:"ceo_pay_ratio"`
	CEOTotalCompensation       *float64    `json:"ceo_total_compensation"`
	MedianEmployeeCompensation *float64    `json:"median_employee_compensation"`
	AccessionNumber            string      `json:"accession_number"`
}

// Executive is one named executive officer's compensation row.
type Executive struct {
	Name               string   `json:"name"`
	Title              string   `json:"title"`
	Salary             *float64 `json:"salary"`
	Bonus              *float64 `json:"bonus"`
	StockAwards        *float64 `json:"stock_awards"`
	OptionAwards       *float64 `json:"option_awards"`
	NonEquityIncentive *float64 `json:"non_equity_incentive"`
	OtherCompensation  *float64 `json:"other_compensation"`
	TotalCompensation  *float64 `json:"total_compensation"`
}

// BoardReport holds a company's board of directors for one fiscal year,
// from DEF 14A proxy statements.
type BoardReport struct {
	CompanyName     string        `json:"company_name"`
	Ticker          string        `json:"ticker"`
	FiscalYear      int           `json:"fiscal_year"`
	Members         []BoardMember `json:"members"`
	AccessionNumber string        `json:"accession_number"`
}

// BoardMember is one director row.
type BoardMember struct {
	Name          string      `json:"name"`
	Age           *int        `json:"age"`
	TenureYears   *int        `json:"tenure_years"`
	IsIndependent *bool       `json:"is_independent"`
	Committees    []Committee `json:"committees"`
}

// Committee is a board committee membership. The API serializes committees
// either as plain name strings or as objects with a chair flag; both decode
// into this type.
type Committee struct {
	Name    string `json:"name"`
	IsChair bool   `json:"is_chair"`
}

// UnmarshalJSON accepts both the string and object committee encodings.
func (c *Committee) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		c.Name = name
		c.IsChair = false
		return nil
	}

	type committeeObject Committee
	var obj committeeObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*c = Committee(obj)
	return nil
}
