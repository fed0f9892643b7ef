package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/microblog/config"
	"github.com/d60-Lab/microblog/internal/api/handler"
	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
	"github.com/d60-Lab/microblog/internal/service"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Post{}, &model.Comment{}, &model.Follow{}))

	cfg := &config.Config{}
	cfg.Server.Mode = gin.TestMode
	cfg.JWT.Secret = "api-test-secret"
	cfg.JWT.TTL = time.Hour
	cfg.RateLimit.RPS = 0 // off for tests

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)

	authSvc := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.TTL)
	feedSvc := service.NewFeedService(postRepo, followRepo, nil)
	postSvc := service.NewPostService(postRepo, commentRepo, feedSvc)
	relSvc := service.NewRelationshipService(userRepo, followRepo, nil)

	return NewRouter(cfg, handler.New(authSvc, postSvc, feedSvc, relSvc))
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body any) (int, envelope) {
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

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func register(t *testing.T, r *gin.Engine, name string) (int64, string) {
	t.Helper()
	code, _ := do(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{"username": name, "password": "s3cret1"})
	require.Equal(t, http.StatusCreated, code)
	code, env := do(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": name, "password": "s3cret1"})
	require.Equal(t, http.StatusOK, code)
	var out struct {
		ID    int64  `json:"id"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out.ID, out.Token
}

func TestRegisterValidation(t *testing.T) {
	r := setupRouter(t)

	code, _ := do(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{"username": "no spaces!", "password": "s3cret1"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{"username": "alice", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, code, "password too short")
}

func TestRegisterDuplicateConflict(t *testing.T) {
	r := setupRouter(t)
	register(t, r, "alice")

	code, _ := do(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{"username": "alice", "password": "s3cret1"})
	assert.Equal(t, http.StatusConflict, code)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	r := setupRouter(t)
	register(t, r, "alice")

	code, _ := do(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "alice", "password": "wrong00"})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestPostLifecycleOverHTTP(t *testing.T) {
	r := setupRouter(t)
	_, aliceTok := register(t, r, "alice")
	_, bobTok := register(t, r, "bob")

	// anonymous cannot create
	code, _ := do(t, r, http.MethodPost, "/api/v1/posts", "", gin.H{"title": "t", "content": "c", "public": true})
	require.Equal(t, http.StatusUnauthorized, code)

	code, env := do(t, r, http.MethodPost, "/api/v1/posts", aliceTok, gin.H{
		"title": "Hi", "content": "hello", "public": false, "tags": "intro,life",
	})
	require.Equal(t, http.StatusCreated, code)
	var post model.Post
	require.NoError(t, json.Unmarshal(env.Data, &post))

	// private post: author 200, stranger 403, global feed empty
	code, _ = do(t, r, http.MethodGet, fmt.Sprintf("/api/v1/posts/%d", post.ID), aliceTok, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = do(t, r, http.MethodGet, fmt.Sprintf("/api/v1/posts/%d", post.ID), bobTok, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = do(t, r, http.MethodGet, fmt.Sprintf("/api/v1/posts/%d", post.ID), "", nil)
	assert.Equal(t, http.StatusForbidden, code)

	// non-owner cannot edit or delete
	code, _ = do(t, r, http.MethodPut, fmt.Sprintf("/api/v1/posts/%d", post.ID), bobTok, gin.H{"title": "x", "content": "y"})
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = do(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/posts/%d", post.ID), bobTok, nil)
	assert.Equal(t, http.StatusForbidden, code)

	// owner flips it public; it shows up in the global feed and tag feed
	code, _ = do(t, r, http.MethodPut, fmt.Sprintf("/api/v1/posts/%d", post.ID), aliceTok, gin.H{
		"title": "Hi", "content": "hello", "public": true, "tags": "intro,life",
	})
	require.Equal(t, http.StatusOK, code)

	code, env = do(t, r, http.MethodGet, "/api/v1/posts", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"Hi"`)

	code, env = do(t, r, http.MethodGet, "/api/v1/tags/life", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"Hi"`)

	code, env = do(t, r, http.MethodGet, "/api/v1/tags/nomatch", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.NotContains(t, string(env.Data), `"Hi"`)

	// comments
	code, _ = do(t, r, http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/comments", post.ID), bobTok, gin.H{"content": "nice"})
	require.Equal(t, http.StatusCreated, code)
	code, env = do(t, r, http.MethodGet, fmt.Sprintf("/api/v1/posts/%d/comments", post.ID), "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "nice")

	// delete cascades; a second delete is a 404
	code, _ = do(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/posts/%d", post.ID), aliceTok, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = do(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/posts/%d", post.ID), aliceTok, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestFollowAndFeedOverHTTP(t *testing.T) {
	r := setupRouter(t)
	aliceID, aliceTok := register(t, r, "alice")
	_, bobTok := register(t, r, "bob")

	// alice writes one public and one private post
	code, _ := do(t, r, http.MethodPost, "/api/v1/posts", aliceTok, gin.H{"title": "open", "content": "c", "public": true})
	require.Equal(t, http.StatusCreated, code)
	code, _ = do(t, r, http.MethodPost, "/api/v1/posts", aliceTok, gin.H{"title": "hidden", "content": "c", "public": false})
	require.Equal(t, http.StatusCreated, code)

	// feed requires auth
	code, _ = do(t, r, http.MethodGet, "/api/v1/feed", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	// empty before following
	code, env := do(t, r, http.MethodGet, "/api/v1/feed", bobTok, nil)
	require.Equal(t, http.StatusOK, code)
	assert.NotContains(t, string(env.Data), `"open"`)

	// self-follow and double-follow
	code, _ = do(t, r, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/follow", aliceID), aliceTok, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = do(t, r, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/follow", aliceID), bobTok, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = do(t, r, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/follow", aliceID), bobTok, nil)
	assert.Equal(t, http.StatusConflict, code)

	// bob's feed now carries both of alice's posts, private included
	code, env = do(t, r, http.MethodGet, "/api/v1/feed", bobTok, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"open"`)
	assert.Contains(t, string(env.Data), `"hidden"`)

	// follower/following listings
	code, env = do(t, r, http.MethodGet, fmt.Sprintf("/api/v1/users/%d/followers", aliceID), "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"list"`)

	// unfollow, then unfollow again
	code, _ = do(t, r, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/unfollow", aliceID), bobTok, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = do(t, r, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/unfollow", aliceID), bobTok, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	// following an unknown user is a 404
	code, _ = do(t, r, http.MethodPost, "/api/v1/users/99999/follow", bobTok, nil)
	assert.Equal(t, http.StatusNotFound, code)
}
