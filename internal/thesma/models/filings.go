package models

// Filing is one entry from the SEC filing index.
type Filing struct {
	CompanyName     string `json:"company_name"`
	Ticker          string `json:"ticker"`
	FiledDate       string `json:"filed_date"`
	FilingDate      string `json:"filing_date"`
	FilingType      string `json:"filing_type"`
	Type            string `json:"type"`
	PeriodOfReport  string `json:"period_of_report"`
	Period          string `json:"period"`
	AccessionNumber string `json:"accession_number"`
}

// FiledAt returns the filing date, whichever field the API populated.
func (f *Filing) FiledAt() string {
	if f.FiledDate != "" {
		return f.FiledDate
	}
	return f.FilingDate
}

// TypeValue returns the filing type, whichever field the API populated.
func (f *Filing) TypeValue() string {
	if f.FilingType != "" {
		return f.FilingType
	}
	return f.Type
}

// PeriodValue returns the period of report, or "—" when absent.
func (f *Filing) PeriodValue() string {
	if f.PeriodOfReport != "" {
		return f.PeriodOfReport
	}
	if f.Period != "" {
		return f.Period
	}
	return "—"
}
