package models

import "time"

// Profile holds one user's budget state. Exactly one row per user, created at
// registration with zero financial values.
//
// CurrentCycle is the active accounting month as "YYYY-MM". InitialIncome is
// the base income counted once in the current cycle; MonthlySalary is the
// suggested value for it at rollover. Amounts are stored in cents to avoid
// float error.
type Profile struct {
	ID            uint   `gorm:"primaryKey"`
	UserID        uint   `gorm:"uniqueIndex;not null"`
	CurrentCycle  string `gorm:"size:7;not null"`
	IdealDay      int    `gorm:"default:5"` // preferred card due day, informational
	TotalSaved    int64  `gorm:"not null;default:0"`
	InitialIncome int64  `gorm:"not null;default:0"`
	MonthlySalary int64  `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
