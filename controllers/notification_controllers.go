package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dineease/restaurant-backend/services"
	"github.com/dineease/restaurant-backend/utils"
)

type NotificationController struct {
	DB            *gorm.DB
	Notifications *services.NotificationService
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db, Notifications: services.NewNotificationService(db)}
}

// GetMyNotifications lists the user's notifications with the unread count.
func (nc *NotificationController) GetMyNotifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	notifs, err := nc.Notifications.ListForUser(userID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	unread, err := nc.Notifications.UnreadCount(userID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notifications", gin.H{
		"notifications": notifs,
		"unread_count":  unread,
	})
}

// GetUnreadCount returns only the unread counter (polled by the navbar
// badge).
func (nc *NotificationController) GetUnreadCount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	unread, err := nc.Notifications.UnreadCount(userID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Unread count", gin.H{"unread_count": unread})
}

// MarkNotificationRead flips is_read, owner only. Idempotent.
func (nc *NotificationController) MarkNotificationRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}
	notifID, _ := strconv.Atoi(c.Param("notif_id"))

	if err := nc.Notifications.MarkRead(userID, uint(notifID)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Notification marked as read", gin.H{"notif_id": notifID})
}
