package repository

import (
	"sync"

	"gorm.io/gorm"
)

// Repositories bundles all repository instances
type Repositories struct {
	UserCredit   UserCreditRepository
	Subscription SubscriptionRepository
	PaymentEvent PaymentEventRepository
	SavedIdea    SavedIdeaRepository
}

// NewRepositories creates all repositories from a shared DB handle
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		UserCredit:   NewUserCreditRepository(db),
		Subscription: NewSubscriptionRepository(db),
		PaymentEvent: NewPaymentEventRepository(db),
		SavedIdea:    NewSavedIdeaRepository(db),
	}
}

// Factory manages repository instances and ensures they are singletons
type Factory struct {
	db    *gorm.DB
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{
		db: db,
	}
}

// GetRepositories returns a singleton instance of all repositories
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db)
	})
	return f.repos
}

// GetUserCreditRepository returns the user credit repository instance
func (f *Factory) GetUserCreditRepository() UserCreditRepository {
	return f.GetRepositories().UserCredit
}

// GetSubscriptionRepository returns the subscription repository instance
func (f *Factory) GetSubscriptionRepository() SubscriptionRepository {
	return f.GetRepositories().Subscription
}

// GetPaymentEventRepository returns the payment event repository instance
func (f *Factory) GetPaymentEventRepository() PaymentEventRepository {
	return f.GetRepositories().PaymentEvent
}

// GetSavedIdeaRepository returns the saved idea repository instance
func (f *Factory) GetSavedIdeaRepository() SavedIdeaRepository {
	return f.GetRepositories().SavedIdea
}

var (
	globalFactory *Factory
	globalMu      sync.Mutex
)

// InitializeGlobalFactory sets up the process-wide repository factory
func InitializeGlobalFactory(db *gorm.DB) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalFactory = NewFactory(db)
}

// GetGlobalFactory returns the process-wide repository factory
func GetGlobalFactory() *Factory {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalFactory
}
