package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dineease/restaurant-backend/models"
)

// bookingBuffer of 29 minutes on both sides of the requested slot yields a
// minimum gap of just under 30 minutes between two bookings on the same table.
const bookingBuffer = 29 * time.Minute

type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

// CreateBooking validates and persists a reservation for the given table.
// The conflict check and the insert run in one transaction holding a row lock
// on the table, so concurrent requests for the same table serialize instead
// of racing past the window check.
func (bs *BookingService) CreateBooking(userID, tableID uint, dateStr, timeStr string) (*models.TableBooking, error) {
	if tableID == 0 || dateStr == "" || timeStr == "" {
		return nil, ErrValidation
	}

	requested, err := time.ParseInLocation("2006-01-02 15:04", dateStr+" "+timeStr, time.Local)
	if err != nil {
		return nil, ErrValidation
	}
	if requested.Before(time.Now()) {
		return nil, ErrPastDate
	}

	var booking models.TableBooking
	err = bs.DB.Transaction(func(tx *gorm.DB) error {
		var table models.Table
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("is_active = ?", true).
			First(&table, tableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		// The window is clamped to the booking date and never crosses
		// midnight: a 00:10 slot is not checked against 23:50 of the
		// previous day.
		dayStart := time.Date(requested.Year(), requested.Month(), requested.Day(), 0, 0, 0, 0, requested.Location())
		dayEnd := dayStart.Add(24*time.Hour - time.Minute)
		windowStart := requested.Add(-bookingBuffer)
		if windowStart.Before(dayStart) {
			windowStart = dayStart
		}
		windowEnd := requested.Add(bookingBuffer)
		if windowEnd.After(dayEnd) {
			windowEnd = dayEnd
		}

		var conflicts int64
		if err := tx.Model(&models.TableBooking{}).
			Where("table_id = ? AND date = ? AND time BETWEEN ? AND ?",
				table.ID, dayStart, windowStart.Format("15:04"), windowEnd.Format("15:04")).
			Count(&conflicts).Error; err != nil {
			return err
		}
		if conflicts > 0 {
			return ErrBookingConflict
		}

		booking = models.TableBooking{
			UserID:  userID,
			TableID: table.ID,
			Date:    dayStart,
			Time:    requested.Format("15:04"),
		}
		if err := tx.Create(&booking).Error; err != nil {
			// The (table, date, time) unique index is the backstop for
			// exact-slot races.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrBookingConflict
			}
			return err
		}

		return emitNotification(tx, &models.Notification{
			UserID:    userID,
			Type:      models.NotificationTypeBooking,
			Title:     "Booking Confirmed",
			Message:   fmt.Sprintf("Table %s is reserved for you on %s at %s.", table.TableNumber, booking.Date.Format("2006-01-02"), booking.Time),
			BookingID: &booking.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListUserBookings returns the user's bookings, most recent date first.
func (bs *BookingService) ListUserBookings(userID uint) ([]models.TableBooking, error) {
	var bookings []models.TableBooking
	err := bs.DB.Preload("Table").
		Where("user_id = ?", userID).
		Order("date desc, time desc").
		Find(&bookings).Error
	return bookings, err
}

// GetUserBooking fetches one booking, enforcing ownership.
func (bs *BookingService) GetUserBooking(userID, bookingID uint) (*models.TableBooking, error) {
	var booking models.TableBooking
	if err := bs.DB.Preload("Table").
		Where("id = ? AND user_id = ?", bookingID, userID).
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// CancelBooking removes the booking entirely. No cancellation history is
// kept; notifications that referenced the booking cascade away with it.
func (bs *BookingService) CancelBooking(userID, bookingID uint) error {
	return bs.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.TableBooking
		if err := tx.Preload("Table").
			Where("id = ? AND user_id = ?", bookingID, userID).
			First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Where("booking_id = ?", booking.ID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&booking).Error; err != nil {
			return err
		}

		// The cancellation notice carries no booking ref; the row it would
		// point at is gone.
		return emitNotification(tx, &models.Notification{
			UserID:  userID,
			Type:    models.NotificationTypeBooking,
			Title:   "Booking Cancelled",
			Message: fmt.Sprintf("Your booking for table %s on %s at %s has been cancelled.", booking.Table.TableNumber, booking.Date.Format("2006-01-02"), booking.Time),
		})
	})
}
