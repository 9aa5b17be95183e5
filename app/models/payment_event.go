package models

import "time"

// PaymentEvent records every payment confirmation attempt keyed by the
// processor's payment intent id. The unique index makes confirmation
// idempotent: a second attempt with the same intent id finds the existing
// row instead of re-running side effects.
type PaymentEvent struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	PaymentIntentID string     `gorm:"type:varchar(191);not null;uniqueIndex:ux_payment_events_intent" json:"payment_intent_id"`
	UserID          string     `gorm:"type:varchar(191);not null;index" json:"user_id"`
	AmountCents     int64      `gorm:"not null;default:0" json:"amount_cents"`
	ProcessedAt     *time.Time `gorm:"type:timestamp;default:null" json:"processed_at,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// Processed reports whether this event already completed its side effects.
func (e *PaymentEvent) Processed() bool {
	return e != nil && e.ProcessedAt != nil
}
