package core

import "testing"

func TestSplitAmountExactSum(t *testing.T) {
	cases := []struct {
		total string
		n     int
		want  []string
	}{
		{"100.00", 3, []string{"33.33", "33.33", "33.34"}},
		{"100.00", 4, []string{"25.00", "25.00", "25.00", "25.00"}},
		{"0.05", 3, []string{"0.01", "0.01", "0.03"}},
		{"10.00", 1, []string{"10.00"}},
		{"99.99", 2, []string{"49.99", "50.00"}},
	}
	for _, tc := range cases {
		t.Run(tc.total, func(t *testing.T) {
			total := MustMoney(tc.total)
			parts, err := SplitAmount(total, tc.n)
			if err != nil {
				t.Fatalf("SplitAmount(%s, %d): %v", tc.total, tc.n, err)
			}
			if len(parts) != tc.n {
				t.Fatalf("got %d parts, want %d", len(parts), tc.n)
			}
			var sum int64
			for i, p := range parts {
				if p.String() != tc.want[i] {
					t.Errorf("part %d: got %s, want %s", i+1, p, tc.want[i])
				}
				sum += p.Cents
			}
			if sum != total.Cents {
				t.Fatalf("parts sum to %d cents, total is %d", sum, total.Cents)
			}
		})
	}
}

func TestSplitAmountRejectsBadInput(t *testing.T) {
	if _, err := SplitAmount(MustMoney("10.00"), 0); err != ErrInvalidInstallments {
		t.Errorf("n=0: got %v", err)
	}
	if _, err := SplitAmount(MustMoney("10.00"), 121); err != ErrInvalidInstallments {
		t.Errorf("n=121: got %v", err)
	}
	if _, err := SplitAmount(Money{}, 3); err != ErrInvalidAmount {
		t.Errorf("zero total: got %v", err)
	}
}

func TestSeriesDatesAdvanceByMonth(t *testing.T) {
	dates := SeriesDates(NewDate(2026, 1, 15), 4)
	want := []Date{
		NewDate(2026, 1, 15),
		NewDate(2026, 2, 15),
		NewDate(2026, 3, 15),
		NewDate(2026, 4, 15),
	}
	for i := range want {
		if !dates[i].Equal(want[i].Time) {
			t.Errorf("installment %d: got %s, want %s", i+1, dates[i].Format("2006-01-02"), want[i].Format("2006-01-02"))
		}
	}
}

func TestSeriesDatesClampShortMonths(t *testing.T) {
	// Jan 31 series must land on the last day of short months, and
	// Dec must roll the year over.
	dates := SeriesDates(NewDate(2025, 12, 31), 4)
	want := []Date{
		NewDate(2025, 12, 31),
		NewDate(2026, 1, 31),
		NewDate(2026, 2, 28),
		NewDate(2026, 3, 31),
	}
	for i := range want {
		if !dates[i].Equal(want[i].Time) {
			t.Errorf("installment %d: got %s, want %s", i+1, dates[i].Format("2006-01-02"), want[i].Format("2006-01-02"))
		}
	}
}
