package router

import (
	"github.com/rickreisdev/budget-smart-cycle/internal/config"
	"github.com/rickreisdev/budget-smart-cycle/internal/handler"
	"github.com/rickreisdev/budget-smart-cycle/internal/middleware"
	"github.com/rickreisdev/budget-smart-cycle/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and mounts the API.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	st := store.New(db)

	// ====== API ======
	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret

	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.ExpireHours, cfg.Security.BcryptCost, cfg.App.DefaultIdealDay)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(jwtSecret, db),
		middleware.AuditMiddleware(db),
	)

	profileHandler := handler.NewProfileHandler(st)
	protected.GET("/me", profileHandler.GetMe)
	protected.GET("/profile", profileHandler.GetProfile)
	protected.PUT("/profile", profileHandler.UpdateProfile)

	txHandler := handler.NewTransactionHandler(st, cfg.App.MaxInstallments)
	protected.POST("/transactions", txHandler.CreateTransaction)
	protected.GET("/transactions", txHandler.ListTransactions)
	protected.PUT("/transactions/:id", txHandler.UpdateTransaction)
	protected.DELETE("/transactions/:id", txHandler.DeleteTransaction)

	cycleHandler := handler.NewCycleHandler(st)
	protected.GET("/summary", cycleHandler.GetSummary)
	protected.POST("/cycle/roll", cycleHandler.RollCycle)

	exportHandler := handler.NewExportHandler(st)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	backupHandler := handler.NewBackupHandler(db, cfg.Backup.Dir)
	protected.POST("/backups", backupHandler.CreateBackup)
	protected.GET("/backups", backupHandler.ListBackups)
	protected.GET("/backups/:id/download", backupHandler.DownloadBackup)
	protected.POST("/backups/:id/restore", backupHandler.RestoreBackup)
	protected.DELETE("/backups/:id", backupHandler.DeleteBackup)

	logHandler := handler.NewLogHandler(db, cfg.App.PageSize)
	protected.GET("/logs", logHandler.ListLogs)

	return r
}
