package models

import "time"

// DefaultFreeCredits is the number of free generations a new account starts with.
const DefaultFreeCredits = 10

// UserCredit is the per-user entitlement ledger: remaining free-tier credits
// and the premium flag. One row per user, created lazily on the first
// entitlement check.
type UserCredit struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(191);not null;uniqueIndex:ux_user_credits_user" json:"user_id"`
	Credits   int       `gorm:"not null;default:10" json:"credits"`
	IsPremium bool      `gorm:"not null;default:false" json:"is_premium"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
