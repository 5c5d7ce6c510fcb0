package core

// Stats is the dashboard headline for an account and month.
type Stats struct {
	TotalBalance    Money
	MonthlyIncome   Money
	MonthlyExpenses Money
}

// ProjectedBalance is totalBalance + monthlyIncome - monthlyExpenses.
func (s Stats) ProjectedBalance() Money {
	return s.TotalBalance.Add(s.MonthlyIncome).Sub(s.MonthlyExpenses)
}

// CategoryStat is one category's expense total for a month.
type CategoryStat struct {
	CategoryID int64
	Name       string
	Color      string
	Total      Money
}
