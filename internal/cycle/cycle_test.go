package cycle

import "testing"

func TestParse_Valid(t *testing.T) {
	c, err := Parse("2024-11")
	if err != nil {
		t.Fatalf("Parse(2024-11) error = %v, want nil", err)
	}
	if c.Year != 2024 || c.Month != 11 {
		t.Errorf("Parse(2024-11) = %v, want 2024-11", c)
	}
}

func TestParse_Invalid(t *testing.T) {
	testCases := []string{
		"",
		"2024",
		"2024-13",
		"2024-00",
		"2024/11",
		"11-2024",
		"not-a-cycle",
	}

	for _, s := range testCases {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q) error = nil, want error", s)
		}
	}
}

func TestAddMonths(t *testing.T) {
	testCases := []struct {
		start string
		n     int
		want  string
	}{
		{"2024-01", 0, "2024-01"},
		{"2024-01", 1, "2024-02"},
		{"2024-11", 1, "2024-12"},
		{"2024-11", 2, "2025-01"},
		{"2024-12", 1, "2025-01"},
		{"2024-06", 12, "2025-06"},
		{"2024-06", 24, "2026-06"},
		{"2024-02", 11, "2025-01"},
	}

	for _, tc := range testCases {
		c, err := Parse(tc.start)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", tc.start, err)
		}
		got := c.AddMonths(tc.n).String()
		if got != tc.want {
			t.Errorf("%s + %d months = %s, want %s", tc.start, tc.n, got, tc.want)
		}
	}
}

func TestNext_YearRollover(t *testing.T) {
	c := Cycle{Year: 2024, Month: 12}
	next := c.Next()
	if next.Year != 2025 || next.Month != 1 {
		t.Errorf("Next(2024-12) = %v, want 2025-01", next)
	}
}

func TestFirstDay(t *testing.T) {
	c := Cycle{Year: 2025, Month: 3}
	if got := c.FirstDay(); got != "2025-03-01" {
		t.Errorf("FirstDay() = %q, want 2025-03-01", got)
	}
}
