package handler

import (
	"net/http"

	"github.com/rickreisdev/budget-smart-cycle/internal/models"
	"github.com/rickreisdev/budget-smart-cycle/internal/util"

	"github.com/gin-gonic/gin"
)

// currentUser extracts the authenticated user placed in the context by
// AuthMiddleware. Writes the error response itself when absent.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get("currentUser")
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autenticado")
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autenticado")
		return nil, false
	}
	return user, true
}
