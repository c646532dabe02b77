package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-social-api/internal/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details string `json:"details"`
	} `json:"error"`
	Meta *struct {
		Page  int `json:"page"`
		Total int `json:"total"`
	} `json:"meta"`
}

type client struct {
	t       *testing.T
	handler http.Handler
}

func newClient(t *testing.T) *client {
	t.Helper()

	cfg := &config.Config{
		ServerPort:               "0",
		RequestTimeout:           5 * time.Second,
		StoreDriver:              config.StoreDriverMemory,
		JWTSecret:                "e2e-secret",
		AccessTokenExpireMinutes: 15,
		RefreshTokenExpireDays:   7,
		BcryptCost:               4,
		RateLimitRPM:             -1,
		AuthRateLimitRPM:         1000,
	}
	require.NoError(t, cfg.Validate())

	application, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(application.Close)

	return &client{t: t, handler: application.Handler()}
}

func (c *client) do(method string, path string, token string, body any) (int, envelope) {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec.Code, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

type loginData struct {
	User struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

func (c *client) registerAndLogin(username string, email string) loginData {
	c.t.Helper()

	status, _ := c.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": username, "email": email, "password": "secret1",
	})
	require.Equal(c.t, http.StatusCreated, status)

	status, env := c.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": email, "password": "secret1",
	})
	require.Equal(c.t, http.StatusOK, status)
	return decode[loginData](c.t, env)
}

func TestSessionLifecycle(t *testing.T) {
	c := newClient(t)

	status, env := c.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "alice", "email": "a@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.NotContains(t, string(env.Data), "password")

	status, env = c.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "a@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, status)
	session := decode[loginData](t, env)
	require.NotEmpty(t, session.AccessToken)
	require.NotEmpty(t, session.RefreshToken)
	assert.NotEqual(t, session.AccessToken, session.RefreshToken)
	assert.Equal(t, "bearer", session.TokenType)

	status, env = c.do(http.MethodGet, "/api/v1/user/profile", session.AccessToken, nil)
	require.Equal(t, http.StatusOK, status)
	profile := decode[map[string]any](t, env)
	assert.Equal(t, "alice", profile["username"])
	assert.Equal(t, "a@x.com", profile["email"])

	logout := map[string]string{"refresh_token": session.RefreshToken}
	status, _ = c.do(http.MethodPost, "/api/v1/auth/logout", session.AccessToken, logout)
	require.Equal(t, http.StatusOK, status)

	status, env = c.do(http.MethodGet, "/api/v1/user/profile", session.AccessToken, nil)
	require.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "REVOKED_TOKEN", env.Error.Code)

	status, env = c.do(http.MethodPost, "/api/v1/auth/refresh", "", logout)
	require.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "REVOKED_TOKEN", env.Error.Code)

	status, _ = c.do(http.MethodPost, "/api/v1/auth/logout", session.AccessToken, logout)
	assert.Equal(t, http.StatusOK, status, "second logout with the same pair succeeds")
}

func TestAuthErrors(t *testing.T) {
	c := newClient(t)
	session := c.registerAndLogin("alice", "a@x.com")

	cases := []struct {
		name   string
		token  string
		status int
		code   string
	}{
		{"missing token", "", http.StatusUnauthorized, "MISSING_TOKEN"},
		{"garbage token", "garbage", http.StatusUnauthorized, "MALFORMED_TOKEN"},
		{"refresh token as bearer", session.RefreshToken, http.StatusUnauthorized, "WRONG_TOKEN_KIND"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, env := c.do(http.MethodGet, "/api/v1/user/profile", tc.token, nil)
			assert.Equal(t, tc.status, status)
			require.NotNil(t, env.Error)
			assert.Equal(t, tc.code, env.Error.Code)
		})
	}

	status, env := c.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "alice", "email": "other@x.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "ALREADY_EXISTS", env.Error.Code)

	status, env = c.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "x", "email": "bad", "password": "1",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	status, env = c.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "a@x.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)

	status, env = c.do(http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refresh_token": session.AccessToken})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "WRONG_TOKEN_KIND", env.Error.Code)

	status, env = c.do(http.MethodPost, "/api/v1/auth/logout", session.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", env.Error.Code)

	status, env = c.do(http.MethodPost, "/api/v1/auth/logout", session.AccessToken, map[string]string{})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", env.Error.Code)

	status, _ = c.do(http.MethodGet, "/api/v1/user/profile", session.AccessToken, nil)
	require.Equal(t, http.StatusOK, status, "a rejected logout revokes nothing")

	status, _ = c.do(http.MethodDelete, "/api/v1/user/profile", session.AccessToken, nil)
	require.Equal(t, http.StatusOK, status)

	status, env = c.do(http.MethodGet, "/api/v1/user/profile", session.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "USER_NOT_FOUND", env.Error.Code)
}

func TestContentFlow(t *testing.T) {
	c := newClient(t)
	alice := c.registerAndLogin("alice", "a@x.com")
	bob := c.registerAndLogin("bob", "b@x.com")

	status, env := c.do(http.MethodPost, "/api/v1/posts", alice.AccessToken, map[string]string{
		"title": "Hello", "content": "first post",
	})
	require.Equal(t, http.StatusCreated, status)
	post := decode[map[string]any](t, env)
	postID := post["id"].(string)

	status, env = c.do(http.MethodPut, "/api/v1/posts/"+postID, bob.AccessToken, map[string]string{"title": "mine now"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	status, env = c.do(http.MethodGet, "/api/v1/posts?q=hello", bob.AccessToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 1, env.Meta.Total)

	status, env = c.do(http.MethodPost, "/api/v1/comments", bob.AccessToken, map[string]string{
		"post_id": postID, "content": "nice",
	})
	require.Equal(t, http.StatusCreated, status)
	commentID := decode[map[string]any](t, env)["id"].(string)

	status, _ = c.do(http.MethodPost, "/api/v1/comments", alice.AccessToken, map[string]any{
		"post_id": postID, "parent_id": commentID, "content": "thanks",
	})
	require.Equal(t, http.StatusCreated, status)

	status, env = c.do(http.MethodGet, "/api/v1/posts/"+postID+"/comments", alice.AccessToken, nil)
	require.Equal(t, http.StatusOK, status)
	comments := decode[struct {
		Items []struct {
			ID      string `json:"id"`
			Replies []struct {
				Content string `json:"content"`
			} `json:"replies"`
		} `json:"items"`
	}](t, env)
	require.Len(t, comments.Items, 1)
	require.Len(t, comments.Items[0].Replies, 1)
	assert.Equal(t, "thanks", comments.Items[0].Replies[0].Content)

	status, _ = c.do(http.MethodGet, "/api/v1/users/"+bob.User.ID+"/comments", alice.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = c.do(http.MethodPost, "/api/v1/posts/"+postID+"/like", bob.AccessToken, nil)
	require.Equal(t, http.StatusOK, status)

	status, env = c.do(http.MethodGet, "/api/v1/posts/"+postID+"/liked", bob.AccessToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"is_liked":true}`, string(env.Data))

	status, env = c.do(http.MethodGet, "/api/v1/posts/"+postID+"/likes", alice.AccessToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), decode[map[string]any](t, env)["total_likes"])

	status, env = c.do(http.MethodGet, "/api/v1/posts/missing", alice.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	status, env = c.do(http.MethodPut, "/api/v1/comments/abc", alice.AccessToken, map[string]string{"content": "x"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	status, env = c.do(http.MethodPost, "/api/v1/posts/abc/like", alice.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	status, env = c.do(http.MethodPost, "/api/v1/comments", alice.AccessToken, map[string]string{
		"post_id": "abc", "content": "x",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	status, env = c.do(http.MethodGet, "/api/v1/posts?user_id=abc", alice.AccessToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)

	status, _ = c.do(http.MethodDelete, "/api/v1/posts/"+postID, alice.AccessToken, nil)
	require.Equal(t, http.StatusOK, status)
}

func TestActivityTrail(t *testing.T) {
	c := newClient(t)
	session := c.registerAndLogin("alice", "a@x.com")

	require.Eventually(t, func() bool {
		status, env := c.do(http.MethodGet, "/api/v1/user/activity", session.AccessToken, nil)
		return status == http.StatusOK && env.Meta != nil && env.Meta.Total >= 2
	}, time.Second, 10*time.Millisecond)
}

func TestLiveness(t *testing.T) {
	c := newClient(t)

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	status, env := c.do(http.MethodGet, "/api/v1/ping", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
}
