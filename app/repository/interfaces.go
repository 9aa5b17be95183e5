package repository

import (
	"errors"
	"time"

	"github.com/ideaspark/ideaspark/app/models"
)

// ErrInsufficientCredits is returned by Decrement when the conditional
// update matched no row, i.e. the balance was already zero.
var ErrInsufficientCredits = errors.New("insufficient credits")

// ErrInvalidAmount is returned when a subscription is written with a
// non-positive amount.
var ErrInvalidAmount = errors.New("subscription amount must be positive")

// UserCreditRepository defines the database operations on the entitlement ledger.
type UserCreditRepository interface {
	// GetOrCreate returns the ledger row for userID, creating it with the
	// free-tier defaults if it does not exist yet. Concurrent first calls
	// for the same user resolve to a single surviving row.
	GetOrCreate(userID string) (*models.UserCredit, error)
	// GetByUserID returns the row or gorm.ErrRecordNotFound.
	GetByUserID(userID string) (*models.UserCredit, error)
	// Decrement atomically debits one credit where the balance is still
	// positive and returns the updated row, or ErrInsufficientCredits.
	Decrement(userID string) (*models.UserCredit, error)
	// SetPremium flips the premium flag. Idempotent; credits are untouched.
	SetPremium(userID string) (*models.UserCredit, error)
}

// SubscriptionRepository defines the database operations on paid windows.
type SubscriptionRepository interface {
	// UpsertAnnual writes the single subscription row for userID, replacing
	// any previous window. The window runs one year from start.
	UpsertAnnual(userID string, start time.Time, amount float64) (*models.Subscription, error)
	// FindByUser returns the row for userID or gorm.ErrRecordNotFound.
	FindByUser(userID string) (*models.Subscription, error)
	// ExpireIfPast flips the stored status to expired when the window has
	// lapsed at now. Read-time policy; there is no background expiry job.
	ExpireIfPast(sub *models.Subscription, now time.Time) error
}

// PaymentEventRepository defines the idempotency gate for payment confirmations.
type PaymentEventRepository interface {
	// CreateIfNotExists inserts the event unless one with the same payment
	// intent id exists. Returns (created, stored row).
	CreateIfNotExists(event *models.PaymentEvent) (bool, *models.PaymentEvent, error)
	// MarkProcessed records that the event's side effects completed and the
	// verified charge amount the processor reported.
	MarkProcessed(id uint, amountCents int64) error
}

// SavedIdeaRepository defines the CRUD operations on favorite ideas.
type SavedIdeaRepository interface {
	Create(idea *models.SavedIdea) error
	GetByUserID(userID string) ([]models.SavedIdea, error)
	GetByUUID(uuid string) (*models.SavedIdea, error)
	Delete(id uint) error
}
