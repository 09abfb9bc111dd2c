package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dineease/restaurant-backend/models"
)

type ReviewService struct {
	DB *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{DB: db}
}

// SubmitReview upserts the user's review for a table as a single conditional
// write: concurrent submissions by the same user cannot produce duplicate
// rows, the (table, user) unique index plus ON CONFLICT keeps exactly one.
func (rs *ReviewService) SubmitReview(userID, tableID uint, rating int, comment string) (*models.TableReview, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrValidation
	}

	var table models.Table
	if err := rs.DB.First(&table, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	review := models.TableReview{
		TableID: tableID,
		UserID:  userID,
		Rating:  rating,
		Comment: comment,
	}
	if err := rs.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "table_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"rating":     rating,
			"comment":    comment,
			"updated_at": time.Now(),
		}),
	}).Create(&review).Error; err != nil {
		return nil, err
	}

	// Re-read so the caller sees the stored row, not the insert attempt.
	var stored models.TableReview
	if err := rs.DB.Where("table_id = ? AND user_id = ?", tableID, userID).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// ListTableReviews returns all reviews for a table, newest first.
func (rs *ReviewService) ListTableReviews(tableID uint) ([]models.TableReview, error) {
	var reviews []models.TableReview
	err := rs.DB.Preload("User").
		Where("table_id = ?", tableID).
		Order("created_at desc").
		Find(&reviews).Error
	return reviews, err
}

// TableRating returns the rounded average rating and review count for a
// table.
func (rs *ReviewService) TableRating(tableID uint) (float64, int64, error) {
	var count int64
	if err := rs.DB.Model(&models.TableReview{}).Where("table_id = ?", tableID).Count(&count).Error; err != nil {
		return 0, 0, err
	}
	if count == 0 {
		return 0, 0, nil
	}

	var avg float64
	if err := rs.DB.Model(&models.TableReview{}).
		Where("table_id = ?", tableID).
		Select("AVG(rating)").
		Row().Scan(&avg); err != nil {
		return 0, 0, err
	}
	// One decimal place, matching what the table detail page shows.
	return float64(int(avg*10+0.5)) / 10, count, nil
}
