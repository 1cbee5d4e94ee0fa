package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"skilllink/model"
	"skilllink/repository"
	"skilllink/service"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, model.Migrate(db))

	users := repository.NewUserRepository(db)
	tokens := new(service.TokenService)
	userService := service.NewUserService(users, tokens)

	auth := NewAuthController(tokens, users)
	user := NewUserController(userService)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/register", user.Register)
	api.POST("/auth/login", user.Login)
	api.GET("/auth/profile", auth.RequireAuth(), user.Profile)
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return w, parsed
}

func TestRegisterLoginProfileFlow(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r, _ := newTestRouter(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":       "alice@example.com",
		"phoneNumber": "+15551234567",
		"password":    "s3cret",
		"fullName":    "Alice",
		"role":        "customer",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "success", resp["status"])

	w, resp = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "s3cret",
	})
	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]interface{})
	token := data["token"].(string)
	require.NotEmpty(t, token)

	// 响应里不能带密码散列
	userPayload := data["user"].(map[string]interface{})
	_, hasPassword := userPayload["password"]
	assert.False(t, hasPassword)

	w, resp = doJSON(t, r, http.MethodGet, "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := resp["data"].(map[string]interface{})["user"].(map[string]interface{})
	assert.Equal(t, "alice@example.com", profile["email"])
}

func TestRequireAuthErrors(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r, db := newTestRouter(t)

	w, resp := doJSON(t, r, http.MethodGet, "/api/auth/profile", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Access token required", resp["message"])

	w, resp = doJSON(t, r, http.MethodGet, "/api/auth/profile", "not-a-jwt", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", resp["message"])

	// 停用的账号持有效令牌也会被拒
	_, body := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":       "bob@example.com",
		"phoneNumber": "+15557654321",
		"password":    "s3cret",
		"fullName":    "Bob",
		"role":        "provider",
	})
	token := body["data"].(map[string]interface{})["token"].(string)
	require.NoError(t, db.Model(&model.User{}).Where("email = ?", "bob@example.com").
		Update("is_active", false).Error)

	w, resp = doJSON(t, r, http.MethodGet, "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Account is deactivated", resp["message"])
}

func TestLoginWrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r, _ := newTestRouter(t)

	_, _ = doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":       "alice@example.com",
		"phoneNumber": "+15551234567",
		"password":    "s3cret",
		"fullName":    "Alice",
		"role":        "customer",
	})

	w, resp := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", resp["message"])
}
