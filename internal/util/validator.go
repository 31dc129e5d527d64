package util

import (
	"fmt"
	"strings"
	"time"
)

// ValidateAmountCents checks a monetary value in cents (must be positive and
// below the sanity ceiling).
func ValidateAmountCents(cents int64) error {
	if cents <= 0 {
		return fmt.Errorf("amount must be positive, got %d", cents)
	}
	if cents >= 1_000_000_000 { // ten million in currency units
		return fmt.Errorf("amount too large, got %d", cents)
	}
	return nil
}

// ValidateDescription checks a transaction description.
func ValidateDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return fmt.Errorf("description is empty")
	}
	if len(description) > 120 {
		return fmt.Errorf("description too long, max 120 characters")
	}
	return nil
}

// ValidateCycle checks a cycle string (must be YYYY-MM).
func ValidateCycle(cycleStr string) error {
	if cycleStr == "" {
		return fmt.Errorf("cycle is empty")
	}
	if _, err := time.Parse("2006-01", cycleStr); err != nil {
		return fmt.Errorf("invalid cycle format: %w", err)
	}
	return nil
}

// ValidateInstallments checks an installment count against the configured
// cap. A non-positive max falls back to 120.
func ValidateInstallments(count, max int) error {
	if max <= 0 {
		max = 120
	}
	if count < 1 {
		return fmt.Errorf("installments must be at least 1, got %d", count)
	}
	if count > max {
		return fmt.Errorf("installments too many, max %d", max)
	}
	return nil
}

// ValidateIdealDay checks a due day of month.
func ValidateIdealDay(day int) error {
	if day < 1 || day > 31 {
		return fmt.Errorf("ideal day must be between 1 and 31, got %d", day)
	}
	return nil
}
