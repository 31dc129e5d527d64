package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rickreisdev/budget-smart-cycle/internal/models"
	"github.com/rickreisdev/budget-smart-cycle/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BackupHandler snapshots a user's budget data to a file and restores from
// it.
type BackupHandler struct {
	DB        *gorm.DB
	BackupDir string
}

func NewBackupHandler(db *gorm.DB, backupDir string) *BackupHandler {
	return &BackupHandler{
		DB:        db,
		BackupDir: backupDir,
	}
}

// backupData is the file payload: the profile plus every transaction.
type backupData struct {
	UserID       uint                 `json:"user_id"`
	Created      time.Time            `json:"created"`
	Profile      models.Profile       `json:"profile"`
	Transactions []models.Transaction `json:"transactions"`
}

// CreateBackup writes a snapshot file for the current user.
func (h *BackupHandler) CreateBackup(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var profile models.Profile
	if err := h.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao carregar perfil")
		return
	}

	var txs []models.Transaction
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("date ASC, created_at ASC").
		Find(&txs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao carregar transações")
		return
	}

	data := backupData{
		UserID:       user.ID,
		Created:      time.Now(),
		Profile:      profile,
		Transactions: txs,
	}
	raw, err := json.MarshalIndent(&data, "", "  ")
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao serializar")
		return
	}

	if err := os.MkdirAll(h.BackupDir, 0o755); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao criar diretório de backup")
		return
	}

	fileName := fmt.Sprintf("backup-%d-%s.json", user.ID, uuid.New().String())
	filePath := filepath.Join(h.BackupDir, fileName)

	if err := os.WriteFile(filePath, raw, 0o600); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao gravar arquivo de backup")
		return
	}

	info, _ := os.Stat(filePath)

	backup := models.Backup{
		UserID:   user.ID,
		FileName: fileName,
		FilePath: filePath,
		Size:     info.Size(),
	}
	if err := h.DB.Create(&backup).Error; err != nil {
		_ = os.Remove(filePath)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao registrar backup")
		return
	}

	util.Success(c, util.Response{
		"backup": gin.H{
			"id":         backup.ID,
			"file_name":  backup.FileName,
			"size":       backup.Size,
			"created_at": backup.CreatedAt,
		},
	})
}

// ListBackups lists the current user's snapshots.
func (h *BackupHandler) ListBackups(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var list []models.Backup
	if err := h.DB.
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao listar backups")
		return
	}

	items := make([]gin.H, 0, len(list))
	for i := range list {
		b := &list[i]
		items = append(items, gin.H{
			"id":         b.ID,
			"file_name":  b.FileName,
			"size":       b.Size,
			"created_at": b.CreatedAt,
		})
	}

	util.Success(c, util.Response{
		"items": items,
	})
}

// DownloadBackup serves a snapshot file.
func (h *BackupHandler) DownloadBackup(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id := c.Param("id")

	var backup models.Backup
	if err := h.DB.
		Where("id = ? AND user_id = ?", id, user.ID).
		First(&backup).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Backup não encontrado")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao carregar backup")
		}
		return
	}

	c.Header("Content-Type", "application/json")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", backup.FileName))
	c.File(backup.FilePath)
}

// DeleteBackup removes a snapshot record and its file.
func (h *BackupHandler) DeleteBackup(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id := c.Param("id")

	var backup models.Backup
	if err := h.DB.
		Where("id = ? AND user_id = ?", id, user.ID).
		First(&backup).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Backup não encontrado")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao carregar backup")
		}
		return
	}

	// file first, record second
	_ = os.Remove(backup.FilePath)
	if err := h.DB.Delete(&backup).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao remover backup")
		return
	}

	util.Success(c, util.Response{
		"message": "Backup removido com sucesso",
	})
}

// RestoreBackup replaces the current user's budget data with a snapshot's
// contents, inside one database transaction.
func (h *BackupHandler) RestoreBackup(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id := c.Param("id")

	var backup models.Backup
	if err := h.DB.
		Where("id = ? AND user_id = ?", id, user.ID).
		First(&backup).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Backup não encontrado")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao carregar backup")
		}
		return
	}

	raw, err := os.ReadFile(backup.FilePath)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao ler arquivo de backup")
		return
	}

	var data backupData
	if err := json.Unmarshal(raw, &data); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao interpretar backup")
		return
	}

	if data.UserID != 0 && data.UserID != user.ID {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "O backup não pertence a este usuário")
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Transaction{}).Error; err != nil {
			return err
		}

		for i := range data.Transactions {
			t := data.Transactions[i]
			t.UserID = user.ID
			if t.ID == "" {
				t.ID = uuid.New().String()
			}
			if err := tx.Create(&t).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.Profile{}).
			Where("user_id = ?", user.ID).
			Updates(map[string]interface{}{
				"current_cycle":  data.Profile.CurrentCycle,
				"ideal_day":      data.Profile.IdealDay,
				"total_saved":    data.Profile.TotalSaved,
				"initial_income": data.Profile.InitialIncome,
				"monthly_salary": data.Profile.MonthlySalary,
			}).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao restaurar")
		return
	}

	util.Success(c, util.Response{
		"message":            "Backup restaurado com sucesso",
		"transactions_count": len(data.Transactions),
	})
}
