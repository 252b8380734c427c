package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/teamtask/teamtask-server/internal/auth"
	"github.com/teamtask/teamtask-server/internal/database"
	"github.com/teamtask/teamtask-server/internal/dto"
	"github.com/teamtask/teamtask-server/internal/middleware"
	"github.com/teamtask/teamtask-server/internal/models"
	"github.com/teamtask/teamtask-server/internal/repository"
	"github.com/teamtask/teamtask-server/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
	tokens      *auth.TokenManager
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
		&models.TaskLog{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	tokens, err := auth.NewTokenManager("test-signing-key", "HS256", 30)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo, tokens)
	handler := NewAuthHandler(authService)

	r := gin.New()
	authGroup := r.Group("/auth")
	authGroup.GET("/", handler.ListUsers)
	authGroup.POST("/new", handler.Register)
	authGroup.POST("/token", handler.Token)
	authGroup.GET("/me", middleware.RequireAuth(tokens, userRepo), handler.Me)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{db: db, router: r, authService: authService, tokens: tokens}
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := postJSON(t, env.router, "/auth/new", map[string]string{
		"username": "newuser",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "newuser", response.Username)
	require.NotZero(t, response.ID)

	// The password is stored hashed, never plaintext.
	var user models.User
	require.NoError(t, env.db.Where("username = ?", "newuser").First(&user).Error)
	require.NotEqual(t, "supersecret", user.PasswordHash)
	require.True(t, auth.VerifyPassword(user.PasswordHash, "supersecret"))
}

func TestAuthHandler_Register_DuplicateUsername(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := postJSON(t, env.router, "/auth/new", map[string]string{
		"username": "taken",
		"password": "firstpassword",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, env.router, "/auth/new", map[string]string{
		"username": "taken",
		"password": "otherpassword",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// The first registration is unaffected.
	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Where("username = ?", "taken").Count(&count).Error)
	require.EqualValues(t, 1, count)

	var user models.User
	require.NoError(t, env.db.Where("username = ?", "taken").First(&user).Error)
	require.True(t, auth.VerifyPassword(user.PasswordHash, "firstpassword"))
}

func postToken(t *testing.T, router *gin.Engine, username, password string) *httptest.ResponseRecorder {
	t.Helper()

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Token(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Username: "alice",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := postToken(t, env.router, "alice", "supersecret")
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.TokenDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "bearer", response.TokenType)

	subject, err := env.tokens.Decode(response.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "alice", subject)
}

func TestAuthHandler_Token_BadCredentials(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Username: "alice",
		Password: "supersecret",
	})
	require.NoError(t, err)

	// A wrong password and an unknown username are indistinguishable.
	wrongPassword := postToken(t, env.router, "alice", "wrongpassword")
	unknownUser := postToken(t, env.router, "nobody", "supersecret")

	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	require.JSONEq(t, wrongPassword.Body.String(), unknownUser.Body.String())
}

func TestAuthHandler_Me(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Username: "alice",
		Password: "supersecret",
	})
	require.NoError(t, err)

	token, err := env.tokens.Issue("alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var profile dto.UserProfileDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	require.Equal(t, "alice", profile.Username)
	require.Empty(t, profile.Projects)
	require.Empty(t, profile.OwnedProjects)
	require.Empty(t, profile.Logs)
}

func TestAuthHandler_Me_Unauthorized(t *testing.T) {
	env := setupAuthTestEnv(t)

	expiredManager, err := auth.NewTokenManager("test-signing-key", "HS256", -1)
	require.NoError(t, err)
	expiredToken, err := expiredManager.Issue("alice")
	require.NoError(t, err)

	cases := map[string]string{
		"no header":     "",
		"not bearer":    "Basic abc",
		"garbage token": "Bearer garbage",
		"expired token": "Bearer " + expiredToken,
	}

	for name, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		require.Equal(t, http.StatusUnauthorized, w.Code, name)
		require.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"), name)
	}
}

func TestAuthHandler_ListUsers_NoAuthRequired(t *testing.T) {
	env := setupAuthTestEnv(t)

	for _, username := range []string{"alice", "bob"} {
		_, err := env.authService.Register(services.RegisterInput{
			Username: username,
			Password: "supersecret",
		})
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var users []dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 2)
}
