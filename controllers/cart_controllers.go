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

type CartController struct {
	DB *gorm.DB
}

func NewCartController(db *gorm.DB) *CartController {
	return &CartController{DB: db}
}

// AddToCart adds one unit of a food item, creating the cart lazily. Adding
// an item already in the cart bumps its quantity.
func (cc *CartController) AddToCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	var req struct {
		FoodID uint `json:"food_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var food models.FoodItem
	if err := cc.DB.Where("available = ?", true).First(&food, req.FoodID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("food item not found"))
		return
	}

	var item models.CartItem
	err := cc.DB.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where(models.Cart{UserID: userID}).FirstOrCreate(&cart).Error; err != nil {
			return err
		}

		err := tx.Where("cart_id = ? AND food_id = ?", cart.ID, food.ID).First(&item).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{CartID: cart.ID, FoodID: food.ID, Quantity: 1}
			return tx.Create(&item).Error
		case err != nil:
			return err
		default:
			item.Quantity++
			return tx.Save(&item).Error
		}
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Added to cart", item)
}

// ViewCart returns the cart contents and running total.
func (cc *CartController) ViewCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	var cart models.Cart
	err := cc.DB.Preload("Items.Food").Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondJSON(c, http.StatusOK, "Cart contents", gin.H{
			"items": []models.CartItem{},
			"total": 0,
		})
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart contents", gin.H{
		"items": cart.Items,
		"total": cart.Total(),
	})
}

// ownedItem resolves a cart line through the user's cart, enforcing
// ownership.
func (cc *CartController) ownedItem(userID, itemID uint) (*models.CartItem, error) {
	var cart models.Cart
	if err := cc.DB.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	var item models.CartItem
	if err := cc.DB.Where("id = ? AND cart_id = ?", itemID, cart.ID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateCartItem sets the quantity of a cart line. Quantity zero removes the
// line.
func (cc *CartController) UpdateCartItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}
	itemID, _ := strconv.Atoi(c.Param("item_id"))

	var req struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if *req.Quantity < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("quantity cannot be negative"))
		return
	}

	item, err := cc.ownedItem(userID, uint(itemID))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("cart item not found"))
		return
	}

	if *req.Quantity == 0 {
		if err := cc.DB.Delete(item).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Item removed", gin.H{"item_id": itemID})
		return
	}

	item.Quantity = *req.Quantity
	if err := cc.DB.Save(item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart updated", item)
}

// RemoveCartItem deletes a cart line, owner only.
func (cc *CartController) RemoveCartItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}
	itemID, _ := strconv.Atoi(c.Param("item_id"))

	item, err := cc.ownedItem(userID, uint(itemID))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("cart item not found"))
		return
	}

	if err := cc.DB.Delete(item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item removed", gin.H{"item_id": itemID})
}
