package cycle

import (
	"testing"

	"github.com/rickreisdev/budget-smart-cycle/internal/models"
)

func TestScheduleInstallments_Count(t *testing.T) {
	start := Cycle{Year: 2025, Month: 3}

	for _, count := range []int{1, 2, 12, 24} {
		drafts := ScheduleInstallments(7, "Notebook", 15000, count, start, 5)
		if len(drafts) != count {
			t.Fatalf("count=%d: got %d drafts", count, len(drafts))
		}
		for i, d := range drafts {
			if d.CurrentInstallment != i+1 {
				t.Errorf("count=%d draft %d: current_installment = %d, want %d",
					count, i, d.CurrentInstallment, i+1)
			}
			if d.Installments != count {
				t.Errorf("count=%d draft %d: installments = %d, want %d",
					count, i, d.Installments, count)
			}
			if d.Amount != 15000 {
				t.Errorf("count=%d draft %d: amount = %d, want 15000", count, i, d.Amount)
			}
			if d.Description != "Notebook" {
				t.Errorf("count=%d draft %d: description = %q, want base description",
					count, i, d.Description)
			}
			if i > 0 && drafts[i-1].Date >= d.Date {
				t.Errorf("count=%d draft %d: dates not strictly increasing (%s then %s)",
					count, i, drafts[i-1].Date, d.Date)
			}
		}
	}
}

func TestScheduleInstallments_MonthIncrement(t *testing.T) {
	start := Cycle{Year: 2025, Month: 1}
	drafts := ScheduleInstallments(1, "Sofá", 20000, 14, start, 10)

	c := start
	for i, d := range drafts {
		if d.Date != c.FirstDay() {
			t.Errorf("draft %d: date = %s, want %s", i, d.Date, c.FirstDay())
		}
		c = c.Next()
	}
}

func TestScheduleInstallments_YearRollover(t *testing.T) {
	start := Cycle{Year: 2024, Month: 11}
	drafts := ScheduleInstallments(1, "X", 10000, 3, start, 5)

	want := []string{"2024-11-01", "2024-12-01", "2025-01-01"}
	for i, d := range drafts {
		if d.Date != want[i] {
			t.Errorf("draft %d: date = %s, want %s", i, d.Date, want[i])
		}
	}
}

func TestScheduleInstallments_SingleInstallment(t *testing.T) {
	start := Cycle{Year: 2025, Month: 6}
	drafts := ScheduleInstallments(1, "Jantar", 8000, 1, start, 5)

	if len(drafts) != 1 {
		t.Fatalf("got %d drafts, want 1", len(drafts))
	}
	d := drafts[0]
	if d.Date != "2025-06-01" {
		t.Errorf("date = %s, want 2025-06-01", d.Date)
	}
	if DisplayDescription(d.Description, d.CurrentInstallment, d.Installments) != "Jantar" {
		t.Errorf("single installment must render without suffix")
	}
}

func TestScheduleInstallments_SharedGroup(t *testing.T) {
	drafts := ScheduleInstallments(1, "TV", 30000, 10, Cycle{Year: 2025, Month: 2}, 5)

	groupID := drafts[0].PurchaseGroupID
	if groupID == "" {
		t.Fatal("purchase group id must be set")
	}
	ids := make(map[string]bool)
	for i, d := range drafts {
		if d.PurchaseGroupID != groupID {
			t.Errorf("draft %d: group id %q, want %q", i, d.PurchaseGroupID, groupID)
		}
		if ids[d.ID] {
			t.Errorf("draft %d: duplicate transaction id %q", i, d.ID)
		}
		ids[d.ID] = true
	}
}

func TestNewRecurring(t *testing.T) {
	d := NewRecurring(3, "Streaming", 2990, Cycle{Year: 2025, Month: 4}, 8)

	if !d.IsRecurrent {
		t.Error("recurring draft must have is_recurrent set")
	}
	if d.Date != "2025-04-01" {
		t.Errorf("date = %s, want 2025-04-01", d.Date)
	}
	if d.Installments != 1 || d.CurrentInstallment != 1 {
		t.Errorf("recurring draft must not be an installment plan")
	}
	if d.Type != models.TypeCard {
		t.Errorf("type = %s, want card", d.Type)
	}
}
