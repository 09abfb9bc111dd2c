package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dineease/restaurant-backend/models"
)

type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

// emitNotification appends a notification inside the caller's transaction so
// it commits or rolls back together with the state change that caused it.
func emitNotification(tx *gorm.DB, notif *models.Notification) error {
	return tx.Create(notif).Error
}

// Emit appends a message to the user's outbox. Fails only if the user does
// not exist.
func (ns *NotificationService) Emit(userID uint, notifType, title, message string, orderID, bookingID *uint) (*models.Notification, error) {
	var user models.User
	if err := ns.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	notif := models.Notification{
		UserID:    userID,
		Type:      notifType,
		Title:     title,
		Message:   message,
		OrderID:   orderID,
		BookingID: bookingID,
	}
	if err := emitNotification(ns.DB, &notif); err != nil {
		return nil, err
	}
	return &notif, nil
}

// ListForUser returns the user's notifications, newest first.
func (ns *NotificationService) ListForUser(userID uint) ([]models.Notification, error) {
	var notifs []models.Notification
	err := ns.DB.Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Find(&notifs).Error
	return notifs, err
}

// MarkRead flips is_read on a notification owned by the user. Marking an
// already-read notification is a no-op, not an error.
func (ns *NotificationService) MarkRead(userID, notifID uint) error {
	var notif models.Notification
	if err := ns.DB.Where("id = ? AND user_id = ?", notifID, userID).First(&notif).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if notif.IsRead {
		return nil
	}
	return ns.DB.Model(&notif).Update("is_read", true).Error
}

// UnreadCount returns the number of unread notifications for the user.
func (ns *NotificationService) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := ns.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}
