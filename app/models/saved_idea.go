package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// SavedIdea is a favorite generated idea a user chose to keep. Premium
// accounts additionally store the bonus series ideas.
type SavedIdea struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UUID           string    `gorm:"type:char(36);not null;uniqueIndex:ux_saved_ideas_uuid" json:"uuid"`
	UserID         string    `gorm:"type:varchar(191);not null;index" json:"user_id" validate:"required"`
	VideoID        string    `gorm:"type:varchar(32);not null" json:"video_id" validate:"required"`
	Title          string    `gorm:"type:varchar(255)" json:"title" validate:"max=255"`
	Script         string    `gorm:"type:text" json:"script"`
	Hashtags       []string  `gorm:"serializer:json;type:text" json:"hashtags"`
	ProductionTips []string  `gorm:"serializer:json;type:text" json:"production_tips"`
	BonusIdeas     []string  `gorm:"serializer:json;type:text" json:"bonus_ideas,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (i *SavedIdea) Validate() error {
	v := validator.New()

	return v.Struct(i)
}

// NewSavedIdea assigns a public UUID and returns the record ready to persist.
func NewSavedIdea(userID, videoID, title, script string, hashtags, productionTips, bonusIdeas []string) *SavedIdea {
	return &SavedIdea{
		UUID:           uuid.New().String(),
		UserID:         userID,
		VideoID:        videoID,
		Title:          title,
		Script:         script,
		Hashtags:       hashtags,
		ProductionTips: productionTips,
		BonusIdeas:     bonusIdeas,
	}
}
