package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dineease/restaurant-backend/models"
	"github.com/dineease/restaurant-backend/services"
	"github.com/dineease/restaurant-backend/utils"
)

type TableController struct {
	DB      *gorm.DB
	Reviews *services.ReviewService
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db, Reviews: services.NewReviewService(db)}
}

// GetAllTables lists the tables customers can book.
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Where("is_active = ?", true).
		Order("table_number asc").
		Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID returns one table with its reviews and rating summary.
func (tc *TableController) GetTableByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("table_id"))

	var table models.Table
	if err := tc.DB.First(&table, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	reviews, err := tc.Reviews.ListTableReviews(table.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	avg, count, err := tc.Reviews.TableRating(table.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table detail", gin.H{
		"table":          table,
		"reviews":        reviews,
		"average_rating": avg,
		"total_reviews":  count,
	})
}

// CreateTable -> staff adds a new table.
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		TableNumber string `json:"table_number" binding:"required"`
		Seats       uint   `json:"seats" binding:"required,gt=0"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table := models.Table{
		TableNumber: req.TableNumber,
		Seats:       req.Seats,
		Description: req.Description,
		IsActive:    true,
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondError(c, http.StatusConflict, errors.New("table number already exists"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New table created: %s (seats=%d)", table.TableNumber, table.Seats)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// UpdateTable -> staff edits a table. Tables are never deleted; is_active
// soft-disables them instead.
func (tc *TableController) UpdateTable(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("table_id"))

	var table models.Table
	if err := tc.DB.First(&table, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		TableNumber *string `json:"table_number"`
		Seats       *uint   `json:"seats"`
		Description *string `json:"description"`
		IsActive    *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.TableNumber != nil {
		table.TableNumber = *req.TableNumber
	}
	if req.Seats != nil {
		if *req.Seats == 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("seats must be greater than zero"))
			return
		}
		table.Seats = *req.Seats
	}
	if req.Description != nil {
		table.Description = *req.Description
	}
	if req.IsActive != nil {
		table.IsActive = *req.IsActive
	}

	if err := tc.DB.Save(&table).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondError(c, http.StatusConflict, errors.New("table number already exists"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// GetAllTablesAdmin lists every table, active or not, with upcoming
// bookings preloaded for the staff dashboard.
func (tc *TableController) GetAllTablesAdmin(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Preload("Bookings").Preload("Bookings.User").
		Order("table_number asc").
		Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All tables", tables)
}
