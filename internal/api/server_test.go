package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wizqo2024/wizqo-sub002/internal/models"
	"github.com/wizqo2024/wizqo-sub002/internal/planner"
	"github.com/wizqo2024/wizqo-sub002/internal/validator"
	"github.com/wizqo2024/wizqo-sub002/shared/storage"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(t *testing.T, secret string) *gin.Engine {
	t.Helper()
	store := storage.NewMemoryStore()
	server := NewServer(Deps{
		Validator:      validator.New(),
		Planner:        planner.New(planner.Options{AffiliateTag: "wizqohobby-20"}),
		Plans:          store,
		Progress:       store,
		JWTSecret:      secret,
		AllowedOrigins: []string{"http://localhost:5173"},
	})
	return server.Router()
}

func doRequest(r http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signToken(t *testing.T, subject, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestHealth(t *testing.T) {
	r := setupRouter(t, "")
	w := doRequest(r, http.MethodGet, "/api/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestValidateHobby(t *testing.T) {
	r := setupRouter(t, "")

	w := doRequest(r, http.MethodPost, "/api/validate-hobby", `{"hobby":"giutar"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	var result models.ValidationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.IsValid)
	assert.Equal(t, "guitar", result.CorrectedHobby)

	w = doRequest(r, http.MethodPost, "/api/validate-hobby", `{"hobby":"how to make a bomb"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.IsValid)
	assert.Equal(t, []string{"cooking", "drawing", "photography"}, result.Suggestions)

	w = doRequest(r, http.MethodPost, "/api/validate-hobby", `{}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"bad_request"`)
}

func TestGeneratePlanEndToEnd(t *testing.T) {
	r := setupRouter(t, "")

	w := doRequest(r, http.MethodPost, "/api/generate-plan",
		`{"hobby":"cooking","experience":"beginner","timeAvailable":"30 minutes"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	var plan models.Plan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))
	assert.Equal(t, "cooking", plan.Hobby)
	require.Len(t, plan.Days, 7)
	for _, day := range plan.Days {
		assert.NotEmpty(t, day.YouTubeVideoID, "day %d", day.Day)
	}
}

func TestGeneratePlanUsesCorrectedHobby(t *testing.T) {
	r := setupRouter(t, "")
	w := doRequest(r, http.MethodPost, "/api/generate-plan",
		`{"hobby":"giutar","experience":"beginner","timeAvailable":"1 hour"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"hobby":"guitar"`)
}

func TestGeneratePlanRejections(t *testing.T) {
	r := setupRouter(t, "")

	w := doRequest(r, http.MethodPost, "/api/generate-plan", `{"hobby":"cooking"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPost, "/api/generate-plan",
		`{"hobby":"quantum physics","experience":"beginner","timeAvailable":"1 hour"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"invalid_hobby"`)
	assert.Contains(t, w.Body.String(), "astronomy")

	w = doRequest(r, http.MethodPost, "/api/generate-plan", `not json`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMethodNotAllowedAndNotFound(t *testing.T) {
	r := setupRouter(t, "")

	w := doRequest(r, http.MethodGet, "/api/validate-hobby", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, w.Body.String(), "method_not_allowed")

	w = doRequest(r, http.MethodGet, "/api/nope", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}

func TestPlanCRUD(t *testing.T) {
	r := setupRouter(t, "")

	w := doRequest(r, http.MethodPost, "/api/hobby-plans",
		`{"userId":"u1","hobby":"chess","title":"Chess Week","planData":{"days":[]}}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	var saved models.StoredPlan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	require.NotEmpty(t, saved.ID)
	assert.JSONEq(t, `{"days":[]}`, string(saved.PlanData))

	w = doRequest(r, http.MethodGet, "/api/hobby-plans/u1", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var plans []models.StoredPlan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plans))
	assert.Len(t, plans, 1)

	w = doRequest(r, http.MethodGet, "/api/hobby-plans/u2/"+saved.ID, "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(r, http.MethodGet, "/api/hobby-plans/u1/"+saved.ID, "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodDelete, "/api/hobby-plans/u1/"+saved.ID, "", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(r, http.MethodGet, "/api/hobby-plans/u1/"+saved.ID, "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(r, http.MethodPost, "/api/hobby-plans", `{"userId":"u1","hobby":"chess"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProgressUpsert(t *testing.T) {
	r := setupRouter(t, "")

	w := doRequest(r, http.MethodPost, "/api/user-progress",
		`{"userId":"u1","planId":"p1","completedDays":[2,1,1],"currentDay":3}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	var progress models.Progress
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &progress))
	assert.Equal(t, []int{1, 2}, progress.CompletedDays)
	assert.Equal(t, []int{1, 2, 3}, progress.UnlockedDays)

	w = doRequest(r, http.MethodPost, "/api/user-progress",
		`{"userId":"u1","planId":"p1","completedDays":[1,2,3],"currentDay":4}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, "/api/user-progress/u1", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var all []models.Progress
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all, 1)
	assert.Equal(t, 4, all[0].CurrentDay)

	w = doRequest(r, http.MethodGet, "/api/user-progress/u1/p1", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = doRequest(r, http.MethodGet, "/api/user-progress/u1/missing", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(r, http.MethodPost, "/api/user-progress", `{"userId":"u1","planId":"p1","currentDay":9}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthRequiredWhenSecretConfigured(t *testing.T) {
	r := setupRouter(t, testSecret)

	w := doRequest(r, http.MethodGet, "/api/hobby-plans/u1", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, http.MethodGet, "/api/hobby-plans/u1", "", signToken(t, "u1", "wrong-secret"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, http.MethodGet, "/api/hobby-plans/u1", "", signToken(t, "u2", testSecret))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(r, http.MethodGet, "/api/hobby-plans/u1", "", signToken(t, "u1", testSecret))
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodPost, "/api/user-progress",
		`{"userId":"u1","planId":"p1"}`, signToken(t, "u2", testSecret))
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Public routes stay open.
	w = doRequest(r, http.MethodPost, "/api/validate-hobby", `{"hobby":"chess"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)
}
