package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ideaspark/ideaspark/internal/pkg/youtube"
)

const defaultAPIBaseURL = "https://api.openai.com/v1"

const model = "gpt-3.5-turbo"

// Idea is a parsed short-video idea. BonusIdeas is only populated for
// premium generations.
type Idea struct {
	Title          string   `json:"title"`
	Script         string   `json:"script"`
	Hashtags       []string `json:"hashtags"`
	ProductionTips []string `json:"productionTips"`
	BonusIdeas     []string `json:"bonusIdeas,omitempty"`
}

// Client talks to the OpenAI chat completions endpoint.
type Client struct {
	APIKey     string
	APIBaseURL string

	HTTPClient *http.Client
}

// NewClient creates a client. Generation is the slowest external call in the
// system, so it gets the longer 30 second bound.
func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:     apiKey,
		APIBaseURL: defaultAPIBaseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

const systemPrompt = "You are an expert in viral short-form video content and digital marketing strategy, " +
	"with special skill in narrated script writing and creative adaptation of existing content."

// GenerateIdea builds the prompt from the video context, calls the chat
// completion endpoint and parses the structured reply.
func (c *Client) GenerateIdea(ctx context.Context, details *youtube.VideoDetails, comments []youtube.Comment, premium bool) (*Idea, error) {
	if c.APIKey == "" {
		return nil, errors.New("OPENAI_API_KEY is not configured")
	}

	maxTokens := 2000
	if premium {
		maxTokens = 2500
	}

	reqBody := chatCompletionRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: BuildPrompt(details, comments, premium)},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.8,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIBaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openai api returned status %d", resp.StatusCode)
	}

	var out chatCompletionResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return nil, errors.New("openai response was empty")
	}

	return ParseIdeaResponse(out.Choices[0].Message.Content, premium), nil
}
