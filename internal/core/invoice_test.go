package core

import "testing"

func TestBillingMonth(t *testing.T) {
	cases := []struct {
		name       string
		date       Date
		closingDay int
		wantYear   int
		wantMonth  int
	}{
		{"before closing stays in month", NewDate(2026, 3, 20), 25, 2026, 3},
		{"on closing stays in month", NewDate(2026, 3, 25), 25, 2026, 3},
		{"after closing rolls forward", NewDate(2026, 3, 27), 25, 2026, 4},
		{"december rolls into next year", NewDate(2026, 12, 28), 25, 2027, 1},
		{"closing day clamped in february", NewDate(2026, 2, 28), 31, 2026, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			year, month := BillingMonth(tc.date, tc.closingDay)
			if year != tc.wantYear || month != tc.wantMonth {
				t.Fatalf("got %d-%02d, want %d-%02d", year, month, tc.wantYear, tc.wantMonth)
			}
		})
	}
}

func TestInvoiceDueDate(t *testing.T) {
	cases := []struct {
		name       string
		year       int
		month      int
		closingDay int
		dueDay     int
		want       Date
	}{
		{"due after closing same month", 2026, 3, 10, 20, NewDate(2026, 3, 20)},
		{"due before closing rolls to next month", 2026, 3, 25, 10, NewDate(2026, 4, 10)},
		{"december due rolls the year", 2026, 12, 25, 10, NewDate(2027, 1, 10)},
		{"due day clamped", 2026, 1, 15, 31, NewDate(2026, 1, 31)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := InvoiceDueDate(tc.year, tc.month, tc.closingDay, tc.dueDay)
			if !got.Equal(tc.want.Time) {
				t.Fatalf("got %s, want %s", got.Format("2006-01-02"), tc.want.Format("2006-01-02"))
			}
		})
	}
}

func TestNextDueDate(t *testing.T) {
	cases := []struct {
		name   string
		today  Date
		dueDay int
		want   Date
	}{
		{"before due day", NewDate(2026, 5, 3), 10, NewDate(2026, 5, 10)},
		{"on due day", NewDate(2026, 5, 10), 10, NewDate(2026, 5, 10)},
		{"past due day", NewDate(2026, 5, 11), 10, NewDate(2026, 6, 10)},
		{"year rollover", NewDate(2026, 12, 20), 10, NewDate(2027, 1, 10)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NextDueDate(tc.today, tc.dueDay)
			if !got.Equal(tc.want.Time) {
				t.Fatalf("got %s, want %s", got.Format("2006-01-02"), tc.want.Format("2006-01-02"))
			}
		})
	}
}

func TestCycleLabel(t *testing.T) {
	ok := CreditCard{ClosingDay: 25, DueDay: 5}
	if got := ok.CycleLabel(); got != "25/05" {
		t.Errorf("got %q", got)
	}
	broken := CreditCard{ClosingDay: 0, DueDay: 40}
	if got := broken.CycleLabel(); got != "--/--" {
		t.Errorf("invalid days should render placeholders, got %q", got)
	}
}

func TestBrandIcon(t *testing.T) {
	cases := []struct {
		brand string
		want  string
	}{
		{"Visa Infinite", "visa"},
		{"MASTERCARD", "mastercard"},
		{"Amex Gold", "amex"},
		{"American Express", "amex"},
		{"Elo", "generic"},
		{"", "generic"},
	}
	for _, tc := range cases {
		if got := BrandIcon(tc.brand); got != tc.want {
			t.Errorf("BrandIcon(%q) = %q, want %q", tc.brand, got, tc.want)
		}
	}
}
