package repository

import (
	"time"

	"github.com/ideaspark/ideaspark/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// subscriptionRepository implements the SubscriptionRepository interface
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository instance
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// UpsertAnnual writes the single subscription row for a user. A repeat
// purchase or a confirmation retry overwrites the row in place rather than
// appending a second window.
func (r *subscriptionRepository) UpsertAnnual(userID string, start time.Time, amount float64) (*models.Subscription, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	sub := &models.Subscription{
		UserID:           userID,
		StartDate:        start,
		EndDate:          start.AddDate(1, 0, 0),
		Status:           models.SubscriptionStatusActive,
		SubscriptionType: models.SubscriptionTypeAnnual,
		Amount:           amount,
	}
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"start_date",
			"end_date",
			"status",
			"subscription_type",
			"amount",
			"updated_at",
		}),
	}).Create(sub).Error; err != nil {
		return nil, err
	}

	// Ensure ID is populated after upsert.
	if err := r.db.Where("user_id = ?", userID).First(sub).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

// FindByUser retrieves the subscription row for a user
func (r *subscriptionRepository) FindByUser(userID string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.db.Where("user_id = ?", userID).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// ExpireIfPast keeps the stored status honest at read time. No-op while the
// window is still open or already marked expired.
func (r *subscriptionRepository) ExpireIfPast(sub *models.Subscription, now time.Time) error {
	if sub == nil || sub.IsActiveAt(now) || sub.Status == models.SubscriptionStatusExpired {
		return nil
	}
	sub.Status = models.SubscriptionStatusExpired
	return r.db.Model(&models.Subscription{}).
		Where("id = ?", sub.ID).
		UpdateColumn("status", models.SubscriptionStatusExpired).Error
}
