package repository

import (
	"github.com/ideaspark/ideaspark/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userCreditRepository implements the UserCreditRepository interface
type userCreditRepository struct {
	db *gorm.DB
}

// NewUserCreditRepository creates a new user credit repository instance
func NewUserCreditRepository(db *gorm.DB) UserCreditRepository {
	return &userCreditRepository{db: db}
}

// GetOrCreate inserts the default row behind the unique index on user_id and
// reads back whichever row survived. A create race loses the insert but
// reads the winner's record instead of erroring.
func (r *userCreditRepository) GetOrCreate(userID string) (*models.UserCredit, error) {
	record := &models.UserCredit{
		UserID:    userID,
		Credits:   models.DefaultFreeCredits,
		IsPremium: false,
	}
	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(record).Error; err != nil {
		return nil, err
	}

	return r.GetByUserID(userID)
}

// GetByUserID retrieves the ledger row for a user
func (r *userCreditRepository) GetByUserID(userID string) (*models.UserCredit, error) {
	var record models.UserCredit
	if err := r.db.Where("user_id = ?", userID).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// Decrement debits one credit in a single conditional UPDATE. The balance
// check and the write execute as one statement, so two concurrent calls for
// a user with one credit left yield exactly one success.
func (r *userCreditRepository) Decrement(userID string) (*models.UserCredit, error) {
	tx := r.db.Model(&models.UserCredit{}).
		Where("user_id = ? AND credits > 0", userID).
		UpdateColumn("credits", gorm.Expr("credits - 1"))
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, ErrInsufficientCredits
	}

	return r.GetByUserID(userID)
}

// SetPremium marks the account premium; the credit balance stays untouched.
// The row is created first if the user paid before ever generating.
func (r *userCreditRepository) SetPremium(userID string) (*models.UserCredit, error) {
	if _, err := r.GetOrCreate(userID); err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.UserCredit{}).
		Where("user_id = ?", userID).
		UpdateColumn("is_premium", true).Error; err != nil {
		return nil, err
	}

	return r.GetByUserID(userID)
}
