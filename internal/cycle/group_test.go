package cycle

import "testing"

func TestStripInstallmentSuffix(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"Notebook (1/10)", "Notebook"},
		{"Notebook (10/10)", "Notebook"},
		{"Notebook", "Notebook"},
		{"Mercado (compra grande)", "Mercado (compra grande)"}, // not k/n shaped
		{"TV (2/12) (3/12)", "TV (2/12)"},                      // only the trailing suffix
		{"", ""},
	}

	for _, tc := range testCases {
		if got := StripInstallmentSuffix(tc.in); got != tc.want {
			t.Errorf("StripInstallmentSuffix(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDisplayDescription(t *testing.T) {
	testCases := []struct {
		base    string
		current int
		total   int
		want    string
	}{
		{"Notebook", 1, 10, "Notebook (1/10)"},
		{"Notebook", 10, 10, "Notebook (10/10)"},
		{"Mercado", 1, 1, "Mercado"},
		{"Mercado", 1, 0, "Mercado"},
	}

	for _, tc := range testCases {
		got := DisplayDescription(tc.base, tc.current, tc.total)
		if got != tc.want {
			t.Errorf("DisplayDescription(%q, %d, %d) = %q, want %q",
				tc.base, tc.current, tc.total, got, tc.want)
		}
	}
}

func TestEscapeLikePattern(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"Notebook", "Notebook"},
		{"100% algodão", `100\% algodão`},
		{"a_b", `a\_b`},
		{`a\b`, `a\\b`},
		{"%_", `\%\_`},
	}

	for _, tc := range testCases {
		if got := EscapeLikePattern(tc.in); got != tc.want {
			t.Errorf("EscapeLikePattern(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// TestGroupKeyCollision documents the known limitation of the legacy value
// tuple: two unrelated purchases with the same description, amount and type
// are indistinguishable. Rows created by this codebase always carry a
// PurchaseGroupID, which does not collide.
func TestGroupKeyCollision(t *testing.T) {
	a := GroupKey{Description: "Assinatura", Amount: 2990, Type: "card"}
	b := GroupKey{Description: "Assinatura", Amount: 2990, Type: "card"}
	if a != b {
		t.Fatal("distinct purchases with equal tuples must collide under GroupKey; this test documents that")
	}

	start := Cycle{Year: 2025, Month: 1}
	first := ScheduleInstallments(1, "Assinatura", 2990, 3, start, 5)
	second := ScheduleInstallments(1, "Assinatura", 2990, 3, start, 5)
	if first[0].PurchaseGroupID == second[0].PurchaseGroupID {
		t.Error("purchase group ids of distinct purchases must differ")
	}
}
