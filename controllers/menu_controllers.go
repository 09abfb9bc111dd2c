package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dineease/restaurant-backend/models"
	"github.com/dineease/restaurant-backend/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetAllFoods lists available food items, optionally filtered by category.
func (mc *MenuController) GetAllFoods(c *gin.Context) {
	query := mc.DB.Preload("Category").Where("available = ?", true)
	if catStr := c.Query("category_id"); catStr != "" {
		catID, err := strconv.Atoi(catStr)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid category id"))
			return
		}
		query = query.Where("category_id = ?", catID)
	}

	var foods []models.FoodItem
	if err := query.Order("name asc").Find(&foods).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of foods", foods)
}

// GetFoodByID returns one food item.
func (mc *MenuController) GetFoodByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("food_id"))

	var food models.FoodItem
	if err := mc.DB.Preload("Category").First(&food, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Food detail", food)
}

// CreateFood -> staff adds a food item.
func (mc *MenuController) CreateFood(c *gin.Context) {
	var req struct {
		CategoryID  *uint   `json:"category_id"`
		Name        string  `json:"name" binding:"required"`
		Price       float64 `json:"price" binding:"required,gt=0"`
		Description string  `json:"description"`
		Available   *bool   `json:"available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	food := models.FoodItem{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Available:   true,
	}
	if req.Available != nil {
		food.Available = *req.Available
	}

	if err := mc.DB.Create(&food).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Food item added: %s (%s)", food.Name, utils.FormatAmount(food.Price))
	utils.RespondJSON(c, http.StatusCreated, "Food item added", food)
}

// UpdateFood -> staff edits a food item. Catalog price changes never touch
// existing order snapshots.
func (mc *MenuController) UpdateFood(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("food_id"))

	var food models.FoodItem
	if err := mc.DB.First(&food, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		CategoryID  *uint    `json:"category_id"`
		Name        *string  `json:"name"`
		Price       *float64 `json:"price"`
		Description *string  `json:"description"`
		Available   *bool    `json:"available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.CategoryID != nil {
		food.CategoryID = req.CategoryID
	}
	if req.Name != nil {
		food.Name = *req.Name
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("price must be greater than zero"))
			return
		}
		food.Price = *req.Price
	}
	if req.Description != nil {
		food.Description = *req.Description
	}
	if req.Available != nil {
		food.Available = *req.Available
	}

	if err := mc.DB.Save(&food).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Food updated", food)
}

// DeleteFood -> staff removes a food item. Items referenced by past orders
// are protected by the order-item foreign key; mark them unavailable
// instead.
func (mc *MenuController) DeleteFood(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("food_id"))

	if err := mc.DB.Delete(&models.FoodItem{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusConflict, errors.New("food item is referenced by existing orders"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Food deleted", gin.H{"food_id": id})
}
