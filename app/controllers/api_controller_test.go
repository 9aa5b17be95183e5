package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ideaspark/ideaspark/app/models"
	"github.com/ideaspark/ideaspark/app/repository"
	"github.com/ideaspark/ideaspark/internal/pkg/entitlement"
	"github.com/ideaspark/ideaspark/internal/pkg/ideagen"
	"github.com/ideaspark/ideaspark/internal/pkg/openai"
	"github.com/ideaspark/ideaspark/internal/pkg/youtube"
)

type testCreditRepo struct {
	mu      sync.Mutex
	records map[string]*models.UserCredit
}

func (r *testCreditRepo) GetOrCreate(userID string) (*models.UserCredit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.records[userID]; ok {
		return rec, nil
	}
	rec := &models.UserCredit{UserID: userID, Credits: models.DefaultFreeCredits}
	r.records[userID] = rec
	return rec, nil
}

func (r *testCreditRepo) GetByUserID(userID string) (*models.UserCredit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rec, nil
}

func (r *testCreditRepo) Decrement(userID string) (*models.UserCredit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[userID]
	if !ok || rec.Credits <= 0 {
		return nil, repository.ErrInsufficientCredits
	}
	rec.Credits--
	return rec, nil
}

func (r *testCreditRepo) SetPremium(userID string) (*models.UserCredit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[userID]
	if !ok {
		rec = &models.UserCredit{UserID: userID, Credits: models.DefaultFreeCredits}
		r.records[userID] = rec
	}
	rec.IsPremium = true
	return rec, nil
}

type testSubscriptionRepo struct {
	subs map[string]*models.Subscription
}

func (r *testSubscriptionRepo) UpsertAnnual(userID string, start time.Time, amount float64) (*models.Subscription, error) {
	sub := &models.Subscription{
		UserID:           userID,
		StartDate:        start,
		EndDate:          start.AddDate(1, 0, 0),
		Status:           models.SubscriptionStatusActive,
		SubscriptionType: models.SubscriptionTypeAnnual,
		Amount:           amount,
	}
	r.subs[userID] = sub
	return sub, nil
}

func (r *testSubscriptionRepo) FindByUser(userID string) (*models.Subscription, error) {
	sub, ok := r.subs[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return sub, nil
}

func (r *testSubscriptionRepo) ExpireIfPast(*models.Subscription, time.Time) error { return nil }

type fixedGenerator struct {
	idea *openai.Idea
}

func (g fixedGenerator) GenerateIdea(_ context.Context, _ *youtube.VideoDetails, _ []youtube.Comment, _ bool) (*openai.Idea, error) {
	return g.idea, nil
}

// newTestApp wires the API controllers against in-memory repositories and a
// stubbed YouTube API, then returns the Fiber app plus the ledger for
// assertions.
func newTestApp(t *testing.T) (*fiber.App, *testCreditRepo, *testSubscriptionRepo) {
	t.Helper()

	credits := &testCreditRepo{records: map[string]*models.UserCredit{}}
	subs := &testSubscriptionRepo{subs: map[string]*models.Subscription{}}

	ytSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/videos":
			fmt.Fprint(w, `{"items":[{"id":"vid1","snippet":{"title":"Source","description":"d","channelTitle":"Ch","thumbnails":{"medium":{"url":"t"}}}}]}`)
		case "/commentThreads":
			fmt.Fprint(w, `{"items":[{"snippet":{"topLevelComment":{"snippet":{"textDisplay":"nice","likeCount":4,"authorDisplayName":"a"}}}}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(ytSrv.Close)

	videos := &youtube.Client{
		APIKey:     "test-key",
		APIBaseURL: ytSrv.URL,
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}

	entitlements := entitlement.NewService(credits, subs)
	ideas := ideagen.NewService(entitlements, fixedGenerator{idea: &openai.Idea{Title: "Generated"}})
	InitializeAPIControllers(entitlements, nil, ideas, videos)

	app := fiber.New()
	api := app.Group("/api")
	api.Post("/check-credits", HandleCheckCredits)
	api.Get("/check-subscription-status", HandleCheckSubscriptionStatus)
	api.Post("/generate-idea", HandleGenerateIdea)
	return app, credits, subs
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]interface{}) {
	t.Helper()
	var reqBody io.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reqBody)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return resp.StatusCode, out
}

func TestGenerateIdea_DebitsUntilExhausted(t *testing.T) {
	app, credits, _ := newTestApp(t)
	credits.records["user-1"] = &models.UserCredit{UserID: "user-1", Credits: 2}

	body := `{"userId":"user-1","videoId":"vid1"}`

	status, out := doJSON(t, app, fiber.MethodPost, "/api/generate-idea", body)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, float64(1), out["credits"])

	status, out = doJSON(t, app, fiber.MethodPost, "/api/generate-idea", body)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(0), out["credits"])

	status, out = doJSON(t, app, fiber.MethodPost, "/api/generate-idea", body)
	assert.Equal(t, fiber.StatusOK, status, "an exhausted balance is a regular response")
	assert.Equal(t, false, out["success"])
	assert.Equal(t, true, out["denied"])
	assert.Contains(t, out["message"], "premium")
}

func TestGenerateIdea_PremiumIsUnlimited(t *testing.T) {
	app, credits, _ := newTestApp(t)
	credits.records["user-2"] = &models.UserCredit{UserID: "user-2", Credits: 0, IsPremium: true}

	status, out := doJSON(t, app, fiber.MethodPost, "/api/generate-idea", `{"userId":"user-2","videoId":"vid1"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "unlimited", out["credits"])
}

func TestCheckCredits(t *testing.T) {
	app, _, _ := newTestApp(t)

	// First contact creates the ledger row and debits the first credit.
	status, out := doJSON(t, app, fiber.MethodPost, "/api/check-credits", `{"userId":"fresh-user"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, out["canGenerate"])
	assert.Equal(t, float64(models.DefaultFreeCredits-1), out["credits"])

	status, _ = doJSON(t, app, fiber.MethodPost, "/api/check-credits", `{"userId":"  "}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestSubscriptionStatus(t *testing.T) {
	app, credits, subs := newTestApp(t)

	status, _ := doJSON(t, app, fiber.MethodGet, "/api/check-subscription-status?userId=nobody", "")
	assert.Equal(t, fiber.StatusNotFound, status)

	credits.records["free-user"] = &models.UserCredit{UserID: "free-user", Credits: 3}
	status, out := doJSON(t, app, fiber.MethodGet, "/api/check-subscription-status?userId=free-user", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, false, out["isPremium"])
	assert.Equal(t, false, out["isActive"])

	credits.records["paid-user"] = &models.UserCredit{UserID: "paid-user", Credits: 0, IsPremium: true}
	start := time.Now().Add(-24 * time.Hour)
	_, err := subs.UpsertAnnual("paid-user", start, 5.00)
	require.NoError(t, err)

	status, out = doJSON(t, app, fiber.MethodGet, "/api/check-subscription-status?userId=paid-user", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, out["isPremium"])
	assert.Equal(t, true, out["isActive"])
	assert.Equal(t, models.SubscriptionTypeAnnual, out["subscriptionType"])
	assert.NotEmpty(t, out["endDate"])

	credits.records["lifetime-user"] = &models.UserCredit{UserID: "lifetime-user", Credits: 0, IsPremium: true}
	status, out = doJSON(t, app, fiber.MethodGet, "/api/check-subscription-status?userId=lifetime-user", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, out["isPremium"])
	assert.Equal(t, "lifetime", out["subscriptionType"])
	assert.Equal(t, "unlimited", out["daysRemaining"])
	assert.Nil(t, out["endDate"])
}
