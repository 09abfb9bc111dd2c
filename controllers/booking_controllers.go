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

type BookingController struct {
	DB       *gorm.DB
	Bookings *services.BookingService
}

func NewBookingController(db *gorm.DB) *BookingController {
	return &BookingController{DB: db, Bookings: services.NewBookingService(db)}
}

// CreateBooking reserves a table for the authenticated user.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	var req struct {
		TableID uint   `json:"table_id"`
		Date    string `json:"date"` // 2006-01-02
		Time    string `json:"time"` // 15:04
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	booking, err := bc.Bookings.CreateBooking(userID, req.TableID, req.Date, req.Time)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrPastDate):
			utils.RespondError(c, http.StatusBadRequest, err)
		case errors.Is(err, services.ErrBookingConflict):
			utils.RespondError(c, http.StatusConflict, err)
		case errors.Is(err, services.ErrNotFound):
			utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	utils.InfoLogger.Printf("Booking created: table=%d user=%d %s %s", booking.TableID, userID, booking.Date.Format("2006-01-02"), booking.Time)
	utils.RespondJSON(c, http.StatusCreated, "Booking confirmed", booking)
}

// GetMyBookings lists the authenticated user's bookings.
func (bc *BookingController) GetMyBookings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	bookings, err := bc.Bookings.ListUserBookings(userID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "My bookings", bookings)
}

// GetBookingByID returns one booking, owner only.
func (bc *BookingController) GetBookingByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}
	bookingID, _ := strconv.Atoi(c.Param("booking_id"))

	booking, err := bc.Bookings.GetUserBooking(userID, uint(bookingID))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking detail", booking)
}

// CancelBooking removes the booking, owner only.
func (bc *BookingController) CancelBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}
	bookingID, _ := strconv.Atoi(c.Param("booking_id"))

	if err := bc.Bookings.CancelBooking(userID, uint(bookingID)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Booking cancelled", gin.H{"booking_id": bookingID})
}
