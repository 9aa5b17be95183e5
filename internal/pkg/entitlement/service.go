package entitlement

import (
	"context"
	"errors"
	"time"

	"github.com/ideaspark/ideaspark/app/repository"
	"gorm.io/gorm"
)

// Decision is the outcome of an authorization check. A denial is an expected
// result, not an error: callers branch on Allowed.
type Decision struct {
	Allowed          bool
	Unlimited        bool
	RemainingCredits int
}

// SubscriptionStatus is the read-only projection served by the status route.
type SubscriptionStatus struct {
	IsPremium        bool
	IsActive         bool
	EndDate          *time.Time
	SubscriptionType string
	DaysRemaining    int
	Lifetime         bool
}

// Service is the single decision point for "may this user generate right
// now, and at what cost". Built on the ledger and subscription repositories.
type Service struct {
	credits       repository.UserCreditRepository
	subscriptions repository.SubscriptionRepository
}

// NewService creates an entitlement service from injected repositories.
func NewService(credits repository.UserCreditRepository, subscriptions repository.SubscriptionRepository) *Service {
	return &Service{credits: credits, subscriptions: subscriptions}
}

// AuthorizeGeneration decides whether a generation attempt may proceed and
// debits one credit for non-premium accounts. The premium check runs before
// any credit arithmetic so premium users are never rate-limited by a stale
// balance. The debit lands before the generation call: the charge is per
// authorized attempt, not per successful generation.
func (s *Service) AuthorizeGeneration(ctx context.Context, userID string) (Decision, error) {
	_ = ctx
	record, err := s.credits.GetOrCreate(userID)
	if err != nil {
		return Decision{}, err
	}

	if record.IsPremium {
		return Decision{Allowed: true, Unlimited: true}, nil
	}

	updated, err := s.credits.Decrement(userID)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientCredits) {
			return Decision{Allowed: false, RemainingCredits: 0}, nil
		}
		return Decision{}, err
	}
	return Decision{Allowed: true, RemainingCredits: updated.Credits}, nil
}

// CheckSubscriptionStatus projects the ledger and the subscription window
// into the shape the status route serves. Effective activity comes from
// comparing EndDate against now; the stored status field is refreshed as a
// side effect when the window has lapsed. A premium flag without a window
// reports a lifetime grant.
func (s *Service) CheckSubscriptionStatus(ctx context.Context, userID string, now time.Time) (*SubscriptionStatus, error) {
	_ = ctx
	record, err := s.credits.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	sub, err := s.subscriptions.FindByUser(userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if sub != nil {
		if err := s.subscriptions.ExpireIfPast(sub, now); err != nil {
			return nil, err
		}
	}

	windowActive := sub.IsActiveAt(now)
	if !record.IsPremium && !windowActive {
		return &SubscriptionStatus{}, nil
	}

	status := &SubscriptionStatus{
		IsPremium: true,
		IsActive:  true,
	}
	if sub != nil {
		end := sub.EndDate
		status.EndDate = &end
		status.SubscriptionType = sub.SubscriptionType
		status.DaysRemaining = sub.DaysRemainingAt(now)
	} else {
		// Premium without a stored window: grandfathered lifetime grant.
		status.SubscriptionType = "lifetime"
		status.Lifetime = true
	}
	return status, nil
}

// HasPremium reports whether the ledger marks the user premium. Unknown
// users are not premium.
func (s *Service) HasPremium(ctx context.Context, userID string) (bool, error) {
	_ = ctx
	record, err := s.credits.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return record.IsPremium, nil
}
