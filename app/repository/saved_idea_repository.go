package repository

import (
	"github.com/ideaspark/ideaspark/app/models"
	"gorm.io/gorm"
)

// savedIdeaRepository implements the SavedIdeaRepository interface
type savedIdeaRepository struct {
	db *gorm.DB
}

// NewSavedIdeaRepository creates a new saved idea repository instance
func NewSavedIdeaRepository(db *gorm.DB) SavedIdeaRepository {
	return &savedIdeaRepository{db: db}
}

// Create persists a new saved idea
func (r *savedIdeaRepository) Create(idea *models.SavedIdea) error {
	return r.db.Create(idea).Error
}

// GetByUserID lists a user's saved ideas, newest first
func (r *savedIdeaRepository) GetByUserID(userID string) ([]models.SavedIdea, error) {
	var ideas []models.SavedIdea
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&ideas).Error
	return ideas, err
}

// GetByUUID retrieves a saved idea by its public UUID
func (r *savedIdeaRepository) GetByUUID(uuid string) (*models.SavedIdea, error) {
	var idea models.SavedIdea
	if err := r.db.Where("uuid = ?", uuid).First(&idea).Error; err != nil {
		return nil, err
	}
	return &idea, nil
}

// Delete removes a saved idea by its database ID
func (r *savedIdeaRepository) Delete(id uint) error {
	return r.db.Delete(&models.SavedIdea{}, id).Error
}
