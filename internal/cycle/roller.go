package cycle

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rickreisdev/budget-smart-cycle/internal/models"
)

// IncomeChoice selects how the new cycle's initial income is seeded at
// rollover.
type IncomeChoice string

const (
	// IncomeNone starts the new cycle with zero initial income.
	IncomeNone IncomeChoice = "none"
	// IncomeMonthlySalary seeds initial income from the profile's monthly
	// salary.
	IncomeMonthlySalary IncomeChoice = "monthly_salary"
	// IncomeCurrent carries the current initial income over unchanged.
	IncomeCurrent IncomeChoice = "initial_income"
)

// ParseIncomeChoice validates a raw income choice value. An absent or empty
// value means none.
func ParseIncomeChoice(s string) (IncomeChoice, error) {
	switch c := IncomeChoice(s); c {
	case IncomeNone, IncomeMonthlySalary, IncomeCurrent:
		return c, nil
	case "":
		return IncomeNone, nil
	default:
		return "", fmt.Errorf("unknown income choice %q", s)
	}
}

// Totals summarizes one cycle. All values are cents. Income includes the
// profile's initial income on top of income-typed entries.
type Totals struct {
	Income    int64
	Fixed     int64
	Card      int64
	Casual    int64
	Expenses  int64
	Available int64
}

// ComputeTotals sums the entries dated inside cycle c, plus initialIncome.
func ComputeTotals(initialIncome int64, txs []models.Transaction, c Cycle) Totals {
	t := Totals{Income: initialIncome}
	prefix := c.String()
	for i := range txs {
		tx := &txs[i]
		if !strings.HasPrefix(tx.Date, prefix) {
			continue
		}
		switch tx.Type {
		case models.TypeIncome:
			t.Income += tx.Amount
		case models.TypeFixed:
			t.Fixed += tx.Amount
		case models.TypeCard:
			t.Card += tx.Amount
		case models.TypeCasual:
			t.Casual += tx.Amount
		}
	}
	t.Expenses = t.Fixed + t.Card + t.Casual
	t.Available = t.Income - t.Expenses
	return t
}

// Plan is the complete set of mutations a rollover performs. It is computed
// up front from a snapshot so the store can apply it in a single database
// transaction.
type Plan struct {
	OldCycle Cycle
	NewCycle Cycle

	// AvailableBalance of the old cycle; SavedDelta is the part rolled into
	// the profile's total saved (zero when the balance is not positive).
	AvailableBalance int64
	SavedDelta       int64

	// InitialIncome the profile starts the new cycle with.
	InitialIncome int64

	// DeleteIDs are the old cycle's casual entries and elapsed installment
	// entries. Inserts are the recurring occurrences synthesized for the new
	// cycle.
	DeleteIDs []string
	Inserts   []models.Transaction
}

// BuildRollPlan advances profile's cycle by one month over the given
// transaction snapshot.
//
// Casual spending is cycle-scoped and dropped. Installment plans were fully
// materialized at purchase time, so only the just-elapsed entry is retired;
// future entries already exist with correct dates. Recurring purchases are
// open-ended and not pre-materialized, so one occurrence per distinct
// recurring purchase is synthesized for the new cycle, unless an entry for
// that purchase already exists there.
func BuildRollPlan(profile *models.Profile, txs []models.Transaction, choice IncomeChoice) (*Plan, error) {
	old, err := Parse(profile.CurrentCycle)
	if err != nil {
		return nil, fmt.Errorf("profile cycle: %w", err)
	}

	totals := ComputeTotals(profile.InitialIncome, txs, old)

	plan := &Plan{
		OldCycle:         old,
		NewCycle:         old.Next(),
		AvailableBalance: totals.Available,
	}
	if totals.Available > 0 {
		plan.SavedDelta = totals.Available
	}

	switch choice {
	case IncomeMonthlySalary:
		plan.InitialIncome = profile.MonthlySalary
	case IncomeCurrent:
		plan.InitialIncome = profile.InitialIncome
	case IncomeNone, "":
		plan.InitialIncome = 0
	default:
		return nil, fmt.Errorf("unknown income choice %q", choice)
	}

	oldPrefix := old.String()
	newPrefix := plan.NewCycle.String()

	for i := range txs {
		tx := &txs[i]
		if !strings.HasPrefix(tx.Date, oldPrefix) {
			continue
		}
		if tx.Type == models.TypeCasual || tx.IsInstallment() {
			plan.DeleteIDs = append(plan.DeleteIDs, tx.ID)
		}
	}

	// One occurrence per distinct recurring purchase, skipping purchases
	// that already have an entry in the new cycle.
	seen := make(map[string]bool)
	for i := range txs {
		tx := &txs[i]
		if !tx.IsRecurrent {
			continue
		}
		key := recurringKey(tx)
		if seen[key] {
			continue
		}
		seen[key] = true

		if hasEntryInCycle(txs, tx, newPrefix) {
			continue
		}
		plan.Inserts = append(plan.Inserts, models.Transaction{
			ID:                 uuid.New().String(),
			UserID:             tx.UserID,
			Type:               tx.Type,
			Description:        tx.Description,
			Amount:             tx.Amount,
			Date:               plan.NewCycle.FirstDay(),
			IsRecurrent:        true,
			Installments:       tx.Installments,
			CurrentInstallment: tx.CurrentInstallment,
			IdealDay:           tx.IdealDay,
			PurchaseGroupID:    tx.PurchaseGroupID,
		})
	}

	return plan, nil
}

// recurringKey identifies a recurring purchase across cycles: the group id
// when present, the legacy value tuple otherwise.
func recurringKey(tx *models.Transaction) string {
	if tx.PurchaseGroupID != "" {
		return tx.PurchaseGroupID
	}
	return fmt.Sprintf("%s|%d|%s", tx.Description, tx.Amount, tx.Type)
}

func hasEntryInCycle(txs []models.Transaction, purchase *models.Transaction, prefix string) bool {
	key := recurringKey(purchase)
	for i := range txs {
		tx := &txs[i]
		if strings.HasPrefix(tx.Date, prefix) && tx.IsRecurrent && recurringKey(tx) == key {
			return true
		}
	}
	return false
}
