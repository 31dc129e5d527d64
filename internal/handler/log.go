package handler

import (
	"net/http"
	"strconv"

	"github.com/rickreisdev/budget-smart-cycle/internal/models"
	"github.com/rickreisdev/budget-smart-cycle/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LogHandler serves the activity trail.
type LogHandler struct {
	DB       *gorm.DB
	PageSize int
}

func NewLogHandler(db *gorm.DB, pageSize int) *LogHandler {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &LogHandler{DB: db, PageSize: pageSize}
}

// ListLogs returns the current user's audit entries, newest first, paginated
// with ?page=N.
func (h *LogHandler) ListLogs(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	var total int64
	if err := h.DB.Model(&models.AuditLog{}).
		Where("user_id = ?", user.ID).
		Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao carregar atividades")
		return
	}

	var logs []models.AuditLog
	if err := h.DB.
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(h.PageSize).
		Offset((page - 1) * h.PageSize).
		Find(&logs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao carregar atividades")
		return
	}

	items := make([]gin.H, 0, len(logs))
	for i := range logs {
		l := &logs[i]
		items = append(items, gin.H{
			"id":         l.ID,
			"method":     l.Method,
			"path":       l.Path,
			"action":     l.Action,
			"ip":         l.IP,
			"created_at": l.CreatedAt,
		})
	}

	util.Success(c, util.Response{
		"items":     items,
		"total":     total,
		"page":      page,
		"page_size": h.PageSize,
	})
}
