package ideagen

import (
	"context"
	"fmt"

	"github.com/ideaspark/ideaspark/internal/pkg/entitlement"
	"github.com/ideaspark/ideaspark/internal/pkg/openai"
	"github.com/ideaspark/ideaspark/internal/pkg/youtube"
)

// Generator produces an idea from a video context. Implemented by the
// OpenAI client; swapped for a fake in tests.
type Generator interface {
	GenerateIdea(ctx context.Context, details *youtube.VideoDetails, comments []youtube.Comment, premium bool) (*openai.Idea, error)
}

// VideoContext is the source material a generation runs against.
type VideoContext struct {
	Details  *youtube.VideoDetails
	Comments []youtube.Comment
}

// Result reports one generation attempt. Denied is an expected outcome the
// caller branches on, not an error.
type Result struct {
	Denied           bool
	Unlimited        bool
	RemainingCredits int
	Idea             *openai.Idea
}

// Service orchestrates check entitlement, then generate. The debit taken by
// the authorization step is not refunded when the downstream generation
// fails: the charge is per attempt.
type Service struct {
	entitlements *entitlement.Service
	generator    Generator
}

// NewService creates the idea generation façade.
func NewService(entitlements *entitlement.Service, generator Generator) *Service {
	return &Service{entitlements: entitlements, generator: generator}
}

// RequestIdea authorizes the attempt and, if allowed, generates an idea from
// the video context. Premium accounts get the richer generation variant.
func (s *Service) RequestIdea(ctx context.Context, userID string, video VideoContext) (*Result, error) {
	decision, err := s.entitlements.AuthorizeGeneration(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("authorize generation: %w", err)
	}
	if !decision.Allowed {
		return &Result{Denied: true}, nil
	}

	idea, err := s.generator.GenerateIdea(ctx, video.Details, video.Comments, decision.Unlimited)
	if err != nil {
		// The debited credit stays debited on generation failure.
		return nil, fmt.Errorf("generate idea: %w", err)
	}

	return &Result{
		Unlimited:        decision.Unlimited,
		RemainingCredits: decision.RemainingCredits,
		Idea:             idea,
	}, nil
}
