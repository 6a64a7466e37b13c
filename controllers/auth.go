package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"natura-salon-backend/config"
	"natura-salon-backend/utils"
)

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthController issues tokens for the single salon administrator configured
// through ADMIN_EMAIL and ADMIN_PASSWORD_HASH.
type AuthController struct {
	Config config.AuthConfig
}

func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if ac.Config.AdminEmail == "" || ac.Config.AdminPasswordHash == "" {
		utils.RespondWithError(c, http.StatusServiceUnavailable, "Admin login is not configured")
		return
	}

	if !strings.EqualFold(input.Email, ac.Config.AdminEmail) ||
		!utils.CheckPasswordHash(input.Password, ac.Config.AdminPasswordHash) {
		log.Warn().Str("email", input.Email).Str("ip", c.ClientIP()).Msg("Failed admin login")
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	expiry := time.Duration(ac.Config.JWTExpiryHours) * time.Hour
	token, err := utils.GenerateToken(ac.Config.AdminEmail, ac.Config.JWTSecret, expiry)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresIn": int(expiry.Seconds()),
	})
}

// Me echoes the authenticated administrator.
func (ac *AuthController) Me(c *gin.Context) {
	adminID, exists := c.Get("adminId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Admin not found in context")
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": gin.H{"email": adminID}})
}
