package models

// Event is one 8-K corporate event.
type Event struct {
	FiledAt     string      `json:"filed_at"`
	Date        string      `json:"date"`
	Ticker      string      `json:"ticker"`
	CompanyName string      `json:"company_name"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Items       []EventItem `json:"items"`
}

// EventItem is one reported item within an 8-K filing.
type EventItem struct {
	Description string `json:"description"`
}

// EventDate returns the event date, whichever field the API populated.
func (e *Event) EventDate() string {
	if e.FiledAt != "" {
		return e.FiledAt
	}
	return e.Date
}

// DisplayDescription returns the first item description, falling back to the
// event-level description.
func (e *Event) DisplayDescription() string {
	if len(e.Items) > 0 && e.Items[0].Description != "" {
		return e.Items[0].Description
	}
	return e.Description
}
