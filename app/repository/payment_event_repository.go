package repository

import (
	"time"

	"github.com/ideaspark/ideaspark/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// paymentEventRepository implements the PaymentEventRepository interface
type paymentEventRepository struct {
	db *gorm.DB
}

// NewPaymentEventRepository creates a new payment event repository instance
func NewPaymentEventRepository(db *gorm.DB) PaymentEventRepository {
	return &paymentEventRepository{db: db}
}

// CreateIfNotExists inserts the event behind the unique index on
// payment_intent_id and reads back the stored row. RowsAffected tells the
// caller whether this attempt claimed the intent or found a prior one.
func (r *paymentEventRepository) CreateIfNotExists(event *models.PaymentEvent) (bool, *models.PaymentEvent, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "payment_intent_id"}},
		DoNothing: true,
	}).Create(event)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	created := tx.RowsAffected > 0
	var stored models.PaymentEvent
	if err := r.db.Where("payment_intent_id = ?", event.PaymentIntentID).
		First(&stored).Error; err != nil {
		return false, nil, err
	}
	return created, &stored, nil
}

// MarkProcessed stamps the event once its side effects are durable
func (r *paymentEventRepository) MarkProcessed(id uint, amountCents int64) error {
	now := time.Now()
	updates := map[string]interface{}{
		"processed_at": &now,
		"amount_cents": amountCents,
	}
	return r.db.Model(&models.PaymentEvent{}).
		Where("id = ?", id).
		Updates(updates).Error
}
