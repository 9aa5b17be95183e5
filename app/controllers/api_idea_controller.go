package controllers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ideaspark/ideaspark/internal/pkg/ideagen"
	"github.com/ideaspark/ideaspark/internal/pkg/youtube"
)

type generateIdeaRequest struct {
	UserID  string `json:"userId" validate:"required"`
	VideoID string `json:"videoId" validate:"required"`
}

// HandleGenerateIdea fetches the video context and runs one metered
// generation. A denial is served as a regular response so the UI can offer
// the upgrade path.
func HandleGenerateIdea(c *fiber.Ctx) error {
	var req generateIdeaRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.UserID = strings.TrimSpace(req.UserID)
	req.VideoID = strings.TrimSpace(req.VideoID)
	if err := validate.Struct(&req); err != nil {
		return badRequest(c, "A user ID and video ID are required")
	}

	details, err := videoClient.FetchVideoDetails(c.Context(), req.VideoID)
	if err != nil {
		if errors.Is(err, youtube.ErrVideoNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Video not found"})
		}
		log.Printf("fetch video details failed: %v", err)
		return serverError(c, "Failed to load the video")
	}

	comments, err := videoClient.FetchTopComments(c.Context(), req.VideoID)
	if err != nil {
		// Comments are supporting material; generate from metadata alone.
		log.Printf("fetch comments failed for %s: %v", req.VideoID, err)
		comments = nil
	}

	result, err := ideaService.RequestIdea(c.Context(), req.UserID, ideagen.VideoContext{
		Details:  details,
		Comments: comments,
	})
	if err != nil {
		log.Printf("generate idea failed: %v", err)
		return serverError(c, "Failed to generate an idea for the video")
	}

	if result.Denied {
		return c.JSON(fiber.Map{
			"success": false,
			"denied":  true,
			"message": "No credits remaining. Upgrade to premium for unlimited generations.",
		})
	}

	response := fiber.Map{"success": true, "idea": result.Idea}
	if result.Unlimited {
		response["credits"] = "unlimited"
	} else {
		response["credits"] = result.RemainingCredits
	}
	return c.JSON(response)
}

// HandleGetVideo serves video metadata plus the ranked top comments.
func HandleGetVideo(c *fiber.Ctx) error {
	videoID := strings.TrimSpace(c.Params("videoId"))
	if videoID == "" {
		return badRequest(c, "A video ID is required")
	}

	details, err := videoClient.FetchVideoDetails(c.Context(), videoID)
	if err != nil {
		if errors.Is(err, youtube.ErrVideoNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Video not found"})
		}
		log.Printf("fetch video details failed: %v", err)
		return serverError(c, "Failed to load the video")
	}

	comments, err := videoClient.FetchTopComments(c.Context(), videoID)
	if err != nil {
		log.Printf("fetch comments failed for %s: %v", videoID, err)
		comments = []youtube.Comment{}
	}

	return c.JSON(fiber.Map{"video": details, "comments": comments})
}

// HandleGetTrending serves the most-popular chart for a region/category.
func HandleGetTrending(c *fiber.Ctx) error {
	videos, err := videoClient.FetchTrending(c.Context(), c.Query("categoryId"), c.Query("regionCode"))
	if err != nil {
		log.Printf("fetch trending failed: %v", err)
		return serverError(c, "Failed to load trending videos")
	}
	return c.JSON(fiber.Map{"videos": videos})
}
