package models

// Supported display currencies
const (
	CurrencyUSD = "USD"
	CurrencyCOP = "COP"
)

// Settings is a singleton row: first row found, created on demand.
type Settings struct {
	ID          int     `json:"id"`
	CompanyName string  `json:"companyName"`
	EIN         *string `json:"ein"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Hours       *string `json:"hours"`
	Currency    string  `json:"currency"`
	Logo        *string `json:"logo"`
}

type UpdateSettingsRequest struct {
	CompanyName *string `json:"companyName"`
	EIN         *string `json:"ein"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Hours       *string `json:"hours"`
	Currency    *string `json:"currency"`
	Logo        *string `json:"logo"`
}
