package cycle

import (
	"github.com/google/uuid"

	"github.com/rickreisdev/budget-smart-cycle/internal/models"
)

// ScheduleInstallments materializes a card purchase as one draft per
// installment, dated to consecutive cycles starting at start. Amount is the
// per-installment value in cents, not the total price. Every draft carries
// the same freshly generated purchase group id, which is the only link
// between the installments of one purchase.
//
// count must be >= 1; callers validate user input before reaching here.
// With count == 1 the result is a single entry dated to the start cycle.
func ScheduleInstallments(userID uint, baseDescription string, amount int64, count int, start Cycle, idealDay int) []models.Transaction {
	groupID := uuid.New().String()
	drafts := make([]models.Transaction, 0, count)
	for i := 0; i < count; i++ {
		drafts = append(drafts, models.Transaction{
			ID:                 uuid.New().String(),
			UserID:             userID,
			Type:               models.TypeCard,
			Description:        baseDescription,
			Amount:             amount,
			Date:               start.AddMonths(i).FirstDay(),
			IsRecurrent:        false,
			Installments:       count,
			CurrentInstallment: i + 1,
			IdealDay:           idealDay,
			PurchaseGroupID:    groupID,
		})
	}
	return drafts
}

// NewRecurring builds the single draft for a recurring card purchase. It is
// not pre-materialized beyond the current cycle; rollover synthesizes the
// next occurrence.
func NewRecurring(userID uint, description string, amount int64, start Cycle, idealDay int) models.Transaction {
	return models.Transaction{
		ID:                 uuid.New().String(),
		UserID:             userID,
		Type:               models.TypeCard,
		Description:        description,
		Amount:             amount,
		Date:               start.FirstDay(),
		IsRecurrent:        true,
		Installments:       1,
		CurrentInstallment: 1,
		IdealDay:           idealDay,
		PurchaseGroupID:    uuid.New().String(),
	}
}
