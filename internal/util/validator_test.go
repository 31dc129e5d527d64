package util

import (
	"testing"
)

func TestValidateAmountCents_Positive(t *testing.T) {
	testCases := []int64{1, 100, 10050, 999999999}

	for _, cents := range testCases {
		err := ValidateAmountCents(cents)
		if err != nil {
			t.Errorf("ValidateAmountCents(%d) error = %v, want nil", cents, err)
		}
	}
}

func TestValidateAmountCents_ZeroAndNegative(t *testing.T) {
	testCases := []int64{0, -1, -10000}

	for _, cents := range testCases {
		err := ValidateAmountCents(cents)
		if err == nil {
			t.Errorf("ValidateAmountCents(%d) error = nil, want error", cents)
		}
	}
}

func TestValidateAmountCents_TooLarge(t *testing.T) {
	err := ValidateAmountCents(1_000_000_000)

	if err == nil {
		t.Error("ValidateAmountCents(1_000_000_000) error = nil, want error")
	}
}

func TestValidateDescription(t *testing.T) {
	valid := []string{"Mercado", "Notebook Dell", "Conta de luz"}
	for _, d := range valid {
		if err := ValidateDescription(d); err != nil {
			t.Errorf("ValidateDescription(%q) error = %v, want nil", d, err)
		}
	}

	invalid := []string{"", "   ", string(make([]byte, 121))}
	for _, d := range invalid {
		if err := ValidateDescription(d); err == nil {
			t.Errorf("ValidateDescription(%q) error = nil, want error", d)
		}
	}
}

func TestValidateCycle_Valid(t *testing.T) {
	testCases := []string{
		"2024-01",
		"2024-12",
		"2025-06",
	}

	for _, cycle := range testCases {
		err := ValidateCycle(cycle)
		if err != nil {
			t.Errorf("ValidateCycle(%q) error = %v, want nil", cycle, err)
		}
	}
}

func TestValidateCycle_InvalidFormat(t *testing.T) {
	testCases := []string{
		"",
		"2024/01",
		"01-2024",
		"2024-1",
		"not-a-cycle",
		"2024-13",
		"2024-00",
	}

	for _, cycle := range testCases {
		err := ValidateCycle(cycle)
		if err == nil {
			t.Errorf("ValidateCycle(%q) error = nil, want error", cycle)
		}
	}
}

func TestValidateInstallments(t *testing.T) {
	for _, count := range []int{1, 2, 12, 120} {
		if err := ValidateInstallments(count, 120); err != nil {
			t.Errorf("ValidateInstallments(%d, 120) error = %v, want nil", count, err)
		}
	}
	for _, count := range []int{0, -1, 121} {
		if err := ValidateInstallments(count, 120); err == nil {
			t.Errorf("ValidateInstallments(%d, 120) error = nil, want error", count)
		}
	}
}

func TestValidateInstallments_ConfiguredMax(t *testing.T) {
	if err := ValidateInstallments(24, 24); err != nil {
		t.Errorf("ValidateInstallments(24, 24) error = %v, want nil", err)
	}
	if err := ValidateInstallments(25, 24); err == nil {
		t.Error("ValidateInstallments(25, 24) error = nil, want error")
	}
	// non-positive max falls back to the default cap
	if err := ValidateInstallments(120, 0); err != nil {
		t.Errorf("ValidateInstallments(120, 0) error = %v, want nil", err)
	}
	if err := ValidateInstallments(121, 0); err == nil {
		t.Error("ValidateInstallments(121, 0) error = nil, want error")
	}
}

func TestValidateIdealDay(t *testing.T) {
	for _, day := range []int{1, 5, 31} {
		if err := ValidateIdealDay(day); err != nil {
			t.Errorf("ValidateIdealDay(%d) error = %v, want nil", day, err)
		}
	}
	for _, day := range []int{0, -3, 32} {
		if err := ValidateIdealDay(day); err == nil {
			t.Errorf("ValidateIdealDay(%d) error = nil, want error", day)
		}
	}
}
