package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"natura-salon-backend/config"
)

type MenuController struct {
	Mode  string
	Items []config.MenuItem
}

// GetMenus returns the bookable menu catalog.
func (mc *MenuController) GetMenus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"mode":  mc.Mode,
		"menus": mc.Items,
	})
}
