package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rickreisdev/budget-smart-cycle/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Profile{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestRegister_UsesConfiguredIdealDay(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newAuthTestDB(t)

	// low bcrypt cost to keep the test fast
	h := NewAuthHandler(db, "secret", 24, 4, 10)
	r := gin.New()
	r.POST("/api/auth/register", h.Register)

	body, err := json.Marshal(map[string]string{
		"username":         "rick",
		"password":         "Senha123",
		"confirm_password": "Senha123",
	})
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("register status = %d, body %s", w.Code, w.Body.String())
	}

	var profile models.Profile
	if err := db.First(&profile).Error; err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if profile.IdealDay != 10 {
		t.Errorf("profile IdealDay = %d, want the configured 10", profile.IdealDay)
	}
}

func TestNewAuthHandler_IdealDayFallback(t *testing.T) {
	for _, day := range []int{0, -1, 32} {
		h := NewAuthHandler(nil, "secret", 24, 12, day)
		if h.DefaultIdealDay != 5 {
			t.Errorf("DefaultIdealDay with input %d = %d, want fallback 5", day, h.DefaultIdealDay)
		}
	}
}
