package models

import "time"

// Transaction types.
const (
	TypeIncome = "income"
	TypeFixed  = "fixed"
	TypeCard   = "card"
	TypeCasual = "casual"
)

// Transaction is a single ledger entry attributed to one cycle.
//
// Description holds the base description only; the " (k/n)" installment
// suffix is derived for display and never stored. Date is always the first
// day of the cycle month ("YYYY-MM-01"), so cycle membership is a string
// prefix match. Amount is the value of this installment/occurrence in cents,
// not the total purchase price.
//
// Entries created together as one installment plan share a PurchaseGroupID,
// which is the authoritative link between them. Recurring card entries keep
// the group id of the purchase they regenerate.
type Transaction struct {
	ID                 string `gorm:"primaryKey;size:36"`
	UserID             uint   `gorm:"index;not null"`
	Type               string `gorm:"size:16;index;not null"` // income / fixed / card / casual
	Description        string `gorm:"size:255;not null"`
	Amount             int64  `gorm:"not null"` // cents
	Date               string `gorm:"size:10;index;not null"` // YYYY-MM-01
	IsRecurrent        bool   `gorm:"index;not null;default:false"`
	Installments       int    `gorm:"not null;default:1"`
	CurrentInstallment int    `gorm:"not null;default:1"`
	IdealDay           int    `gorm:"default:0"` // preferred due day, informational
	PurchaseGroupID    string `gorm:"size:36;index"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}

// IsInstallment reports whether the entry belongs to a multi-installment plan.
func (t *Transaction) IsInstallment() bool {
	return t.Type == TypeCard && !t.IsRecurrent && t.Installments > 1
}
