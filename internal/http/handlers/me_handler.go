package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AlejoooE764/Login-definitivo-NutriFit/internal/http/middleware"
	"github.com/AlejoooE764/Login-definitivo-NutriFit/internal/utils"
)

// MeHandler returns the authenticated session's user snapshot. The fields
// were captured at login time and are not re-read from the store.
type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	if session == nil {
		utils.RespondError(c, utils.NewAppError(http.StatusUnauthorized, "UNAUTHORIZED", "missing session", nil))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         session.UserID,
		"name":       session.UserName,
		"email":      session.UserEmail,
		"expires_at": session.ExpiresAt,
	})
}
