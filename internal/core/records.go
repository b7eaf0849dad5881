package core

// Administrative record kinds served to the admin views. Field names
// in the Row conversions match the backend's wire keys, which are also
// the filter/sort column keys the dashboard sends back.

type Customer struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type Account struct {
	AccountNumber string  `json:"account_number"`
	AccountType   string  `json:"account_type"`
	Balance       float64 `json:"balance"`
	UserID        string  `json:"user_id"`
}

type Loan struct {
	ID         string  `json:"_id"`
	UserID     string  `json:"user_id"`
	Amount     float64 `json:"amount"`
	Months     int     `json:"months"`
	AnnualRate float64 `json:"annual_rate"`
	EMI        float64 `json:"emi"`
	Status     string  `json:"status"`
	EMIsPaid   int     `json:"emis_paid"`
}

func (c Customer) Row() map[string]any {
	return map[string]any{
		"_id":      c.ID,
		"username": c.Username,
		"email":    c.Email,
	}
}

func (a Account) Row() map[string]any {
	return map[string]any{
		"account_number": a.AccountNumber,
		"account_type":   a.AccountType,
		"balance":        a.Balance,
		"user_id":        a.UserID,
	}
}

func (l Loan) Row() map[string]any {
	return map[string]any{
		"_id":         l.ID,
		"user_id":     l.UserID,
		"amount":      l.Amount,
		"months":      l.Months,
		"annual_rate": l.AnnualRate,
		"emi":         l.EMI,
		"status":      l.Status,
		"emis_paid":   l.EMIsPaid,
	}
}
