package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/dineease/restaurant-backend/models"
)

// currentUserID reads the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func isStaff(c *gin.Context) bool {
	role, _ := c.Get("role")
	return role == models.RoleStaff || role == models.RoleAdmin
}
