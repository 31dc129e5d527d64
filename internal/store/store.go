// Package store is the data-access layer. Handlers and the cycle logic never
// touch gorm directly for transaction rows; they go through these methods,
// which return fresh snapshots per query.
package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/rickreisdev/budget-smart-cycle/internal/cycle"
	"github.com/rickreisdev/budget-smart-cycle/internal/models"
)

// ErrNotFound is returned when a row does not exist or belongs to another
// user.
var ErrNotFound = errors.New("not found")

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for handlers that manage non-transaction
// rows (users, audit logs, backups).
func (s *Store) DB() *gorm.DB {
	return s.db
}

// ---------- profiles ----------

func (s *Store) ProfileByUserID(userID uint) (*models.Profile, error) {
	var p models.Profile
	if err := s.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return &p, nil
}

func (s *Store) CreateProfile(p *models.Profile) error {
	if err := s.db.Create(p).Error; err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

func (s *Store) SaveProfile(p *models.Profile) error {
	if err := s.db.Save(p).Error; err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// ---------- transactions ----------

// TransactionFilter narrows a transaction query. Zero values mean "no
// filter". Cycle matches by date prefix, so "2025-01" selects the whole
// month.
type TransactionFilter struct {
	Type            string
	Cycle           string
	Recurrent       *bool
	MinInstallments int
}

func (s *Store) Transactions(userID uint, f TransactionFilter) ([]models.Transaction, error) {
	q := s.db.Where("user_id = ?", userID)
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Cycle != "" {
		q = q.Where("date LIKE ? ESCAPE '\\'", cycle.EscapeLikePattern(f.Cycle)+"%")
	}
	if f.Recurrent != nil {
		q = q.Where("is_recurrent = ?", *f.Recurrent)
	}
	if f.MinInstallments > 0 {
		q = q.Where("installments > ?", f.MinInstallments)
	}

	var txs []models.Transaction
	if err := q.Order("created_at DESC, id DESC").Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

func (s *Store) TransactionByID(userID uint, id string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load transaction: %w", err)
	}
	return &tx, nil
}

func (s *Store) InsertTransactions(txs []models.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	if err := s.db.Create(&txs).Error; err != nil {
		return fmt.Errorf("insert transactions: %w", err)
	}
	return nil
}

// PatchTransaction applies a partial update to one row.
func (s *Store) PatchTransaction(userID uint, id string, patch map[string]interface{}) error {
	res := s.db.Model(&models.Transaction{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(patch)
	if res.Error != nil {
		return fmt.Errorf("update transaction: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// PatchGroup applies a partial update to every entry of one purchase group.
// An empty group id is rejected: it would match every ungrouped row.
func (s *Store) PatchGroup(userID uint, groupID string, patch map[string]interface{}) error {
	if groupID == "" {
		return fmt.Errorf("update group: empty group id")
	}
	if err := s.db.Model(&models.Transaction{}).
		Where("user_id = ? AND purchase_group_id = ?", userID, groupID).
		Updates(patch).Error; err != nil {
		return fmt.Errorf("update group: %w", err)
	}
	return nil
}

func (s *Store) DeleteTransaction(userID uint, id string) error {
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Transaction{}).Error; err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

// DeleteGroup removes every entry of one purchase group.
func (s *Store) DeleteGroup(userID uint, groupID string) error {
	if err := s.db.Where("user_id = ? AND purchase_group_id = ?", userID, groupID).
		Delete(&models.Transaction{}).Error; err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	return nil
}

// DeleteLegacyGroup removes an installment group identified by the legacy
// value tuple: card entries whose description starts with the base
// description and whose amount matches. Only used for rows without a
// purchase group id; the LIKE pattern is escaped so metacharacters in the
// description match literally.
func (s *Store) DeleteLegacyGroup(userID uint, baseDescription string, amount int64) error {
	if err := s.db.
		Where("user_id = ? AND type = ? AND amount = ?", userID, models.TypeCard, amount).
		Where("description LIKE ? ESCAPE '\\'", cycle.EscapeLikePattern(baseDescription)+"%").
		Delete(&models.Transaction{}).Error; err != nil {
		return fmt.Errorf("delete legacy group: %w", err)
	}
	return nil
}

// PatchLegacyGroup applies a partial update to an installment group
// identified by the legacy value tuple, scoped like DeleteLegacyGroup.
func (s *Store) PatchLegacyGroup(userID uint, baseDescription string, amount int64, patch map[string]interface{}) error {
	if err := s.db.Model(&models.Transaction{}).
		Where("user_id = ? AND type = ? AND amount = ?", userID, models.TypeCard, amount).
		Where("description LIKE ? ESCAPE '\\'", cycle.EscapeLikePattern(baseDescription)+"%").
		Updates(patch).Error; err != nil {
		return fmt.Errorf("update legacy group: %w", err)
	}
	return nil
}

// ReplaceGroup swaps an installment plan for a regenerated one in a single
// database transaction, so an edit never leaves a half-deleted group behind.
func (s *Store) ReplaceGroup(userID uint, groupID string, drafts []models.Transaction) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND purchase_group_id = ?", userID, groupID).
			Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		if len(drafts) > 0 {
			if err := tx.Create(&drafts).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace group: %w", err)
	}
	return nil
}

// ---------- rollover ----------

// ApplyRollPlan executes a rollover plan atomically: the casual and elapsed
// installment deletions, the recurring inserts and the profile update either
// all commit or none do.
func (s *Store) ApplyRollPlan(profile *models.Profile, plan *cycle.Plan) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(plan.DeleteIDs) > 0 {
			if err := tx.Where("user_id = ? AND id IN ?", profile.UserID, plan.DeleteIDs).
				Delete(&models.Transaction{}).Error; err != nil {
				return err
			}
		}
		if len(plan.Inserts) > 0 {
			inserts := plan.Inserts
			if err := tx.Create(&inserts).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Profile{}).
			Where("id = ?", profile.ID).
			Updates(map[string]interface{}{
				"current_cycle":  plan.NewCycle.String(),
				"total_saved":    gorm.Expr("total_saved + ?", plan.SavedDelta),
				"initial_income": plan.InitialIncome,
			}).Error
	})
	if err != nil {
		return fmt.Errorf("apply roll plan: %w", err)
	}

	profile.CurrentCycle = plan.NewCycle.String()
	profile.TotalSaved += plan.SavedDelta
	profile.InitialIncome = plan.InitialIncome
	return nil
}
