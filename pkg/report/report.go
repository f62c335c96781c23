package report

// DailyTotal is the tracked time one user logged in one department on one
// calendar date, summed across every duration field.
type DailyTotal struct {
	UserMail string `json:"User_Mail"`
	Date     string `json:"Date"`
	Minutes  int    `json:"total_minutes"`
	Hours    int    `json:"hours"`
	Rem      int    `json:"minutes"`
}

// Summary is the date-range report a team lead or HR dashboard renders.
type Summary struct {
	Department string       `json:"department"`
	From       string       `json:"from"`
	To         string       `json:"to"`
	Totals     []DailyTotal `json:"totals"`
}
