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

type ReviewController struct {
	DB      *gorm.DB
	Reviews *services.ReviewService
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{DB: db, Reviews: services.NewReviewService(db)}
}

// SubmitReview creates or overwrites the user's review for a table.
func (rc *ReviewController) SubmitReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}
	tableID, _ := strconv.Atoi(c.Param("table_id"))

	var req struct {
		Rating  int    `json:"rating" binding:"required"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	review, err := rc.Reviews.SubmitReview(userID, uint(tableID), req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			utils.RespondError(c, http.StatusBadRequest, errors.New("rating must be between 1 and 5"))
		case errors.Is(err, services.ErrNotFound):
			utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Review saved", review)
}

// GetTableReviews lists all reviews for a table.
func (rc *ReviewController) GetTableReviews(c *gin.Context) {
	tableID, _ := strconv.Atoi(c.Param("table_id"))

	reviews, err := rc.Reviews.ListTableReviews(uint(tableID))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table reviews", reviews)
}
