package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ideaspark/ideaspark/app/models"
	"github.com/ideaspark/ideaspark/app/repository"
)

type saveIdeaRequest struct {
	UserID         string   `json:"userId" validate:"required"`
	VideoID        string   `json:"videoId" validate:"required"`
	Title          string   `json:"title"`
	Script         string   `json:"script"`
	Hashtags       []string `json:"hashtags"`
	ProductionTips []string `json:"productionTips"`
	BonusIdeas     []string `json:"bonusIdeas"`
}

// HandleSaveIdea persists a generated idea as a favorite.
func HandleSaveIdea(c *fiber.Ctx) error {
	var req saveIdeaRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return badRequest(c, "A user ID and video ID are required")
	}

	idea := models.NewSavedIdea(
		strings.TrimSpace(req.UserID),
		strings.TrimSpace(req.VideoID),
		req.Title,
		req.Script,
		req.Hashtags,
		req.ProductionTips,
		req.BonusIdeas,
	)
	if err := idea.Validate(); err != nil {
		return badRequest(c, "Invalid idea payload")
	}

	repo := repository.GetGlobalFactory().GetSavedIdeaRepository()
	if err := repo.Create(idea); err != nil {
		return serverError(c, "Failed to save the idea")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Idea saved", "uuid": idea.UUID})
}

// HandleListSavedIdeas lists a user's favorites, newest first.
func HandleListSavedIdeas(c *fiber.Ctx) error {
	userID := strings.TrimSpace(c.Params("userId"))
	if userID == "" {
		return badRequest(c, "A user ID is required")
	}

	repo := repository.GetGlobalFactory().GetSavedIdeaRepository()
	ideas, err := repo.GetByUserID(userID)
	if err != nil {
		return serverError(c, "Failed to load saved ideas")
	}
	return c.JSON(ideas)
}

// HandleDeleteIdea removes a favorite. Ownership is checked against the
// userId query parameter; deleting another user's idea is a 404, not a hint
// that the idea exists.
func HandleDeleteIdea(c *fiber.Ctx) error {
	ideaUUID := strings.TrimSpace(c.Params("ideaId"))
	userID := strings.TrimSpace(c.Query("userId"))
	if ideaUUID == "" || userID == "" {
		return badRequest(c, "An idea ID and user ID are required")
	}

	repo := repository.GetGlobalFactory().GetSavedIdeaRepository()
	idea, err := repo.GetByUUID(ideaUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Idea not found"})
		}
		return serverError(c, "Failed to delete the idea")
	}
	if idea.UserID != userID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Idea not found"})
	}

	if err := repo.Delete(idea.ID); err != nil {
		return serverError(c, "Failed to delete the idea")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Idea deleted"})
}
