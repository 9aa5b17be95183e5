package models

import (
	"math"
	"time"
)

const (
	SubscriptionStatusActive  = "active"
	SubscriptionStatusExpired = "expired"
)

const (
	SubscriptionTypeAnnual  = "annual"
	SubscriptionTypeMonthly = "monthly"
)

// Subscription holds the single paid window per user. A new purchase
// overwrites the existing row (uniqueness is on user_id alone). The stored
// status may lag behind the wall clock; effective activity is decided by
// comparing EndDate against now at read time.
type Subscription struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           string    `gorm:"type:varchar(191);not null;uniqueIndex:ux_subscriptions_user" json:"user_id"`
	StartDate        time.Time `gorm:"not null" json:"start_date"`
	EndDate          time.Time `gorm:"not null" json:"end_date"`
	Status           string    `gorm:"type:varchar(16);not null;default:'active'" json:"status"`
	SubscriptionType string    `gorm:"type:varchar(16);not null;default:'annual'" json:"subscription_type"`
	Amount           float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsActiveAt reports whether the subscription window covers the given time.
func (s *Subscription) IsActiveAt(now time.Time) bool {
	return s != nil && now.Before(s.EndDate)
}

// DaysRemainingAt returns the number of whole or partial days left in the
// window, never negative.
func (s *Subscription) DaysRemainingAt(now time.Time) int {
	if s == nil || !now.Before(s.EndDate) {
		return 0
	}
	return int(math.Ceil(s.EndDate.Sub(now).Hours() / 24))
}
