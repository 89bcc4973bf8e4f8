package models

// InsiderTrade is one Form 4 transaction.
type InsiderTrade struct {
	TransactionDate string   `json:"transaction_date"`
	Date            string   `json:"date"`
	Ticker          string   `json:"ticker"`
	OwnerName       string   `json:"owner_name"`
	Title           string   `json:"title"`
	Shares          *float64 `json:"shares"`
	PricePerShare   *float64 `json:"price_per_share"`
	TotalValue      *float64 `json:"total_value"`
	Is10b51         bool     `json:"is_10b5_1"`
}

// TradeDate returns the transaction date, whichever field the API populated.
func (t *InsiderTrade) TradeDate() string {
	if t.TransactionDate != "" {
		return t.TransactionDate
	}
	return t.Date
}
