package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"go-social-api/internal/event"
	"go-social-api/internal/model"
	"go-social-api/internal/repository/memory"
	"go-social-api/internal/token"
	"go-social-api/pkg/apierror"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	clock    *testClock
	store    *memory.Store
	codec    *token.Codec
	hasher   *PasswordHasher
	ledger   *RevocationLedger
	gate     *Gate
	bus      *event.InMemoryBus
	auth     *AuthService
	users    *UserService
	posts    *PostService
	comments *CommentService
	likes    *LikeService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := newTestClock()
	store := memory.New()

	codec, err := token.NewCodec("test-secret", 15*time.Minute, 7*24*time.Hour, token.WithClock(clock.Now))
	require.NoError(t, err)

	hasher, err := NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)

	bus := event.NewBus()
	ledger := NewRevocationLedger(store.Revocations(), clock.Now)

	f := &fixture{
		clock:    clock,
		store:    store,
		codec:    codec,
		hasher:   hasher,
		ledger:   ledger,
		gate:     NewGate(ledger, codec, store.Users()),
		bus:      bus,
		auth:     NewAuthService(store.Users(), ledger, codec, hasher, bus),
		users:    NewUserService(store.Users(), hasher, bus),
		posts:    NewPostService(store.Posts()),
		comments: NewCommentService(store.Comments(), store.Posts()),
		likes:    NewLikeService(store.Likes(), store.Posts()),
	}
	f.auth.now = clock.Now
	f.users.now = clock.Now
	f.posts.now = clock.Now
	f.comments.now = clock.Now
	return f
}

// session registers and logs in a user.
func (f *fixture) session(t *testing.T, username string, email string) model.LoginResult {
	t.Helper()

	ctx := context.Background()
	_, err := f.auth.Register(ctx, model.RegisterRequest{Username: username, Email: email, Password: "secret1"})
	require.NoError(t, err)

	result, err := f.auth.Login(ctx, model.LoginRequest{Email: email, Password: "secret1"})
	require.NoError(t, err)
	return result
}

func (f *fixture) identity(t *testing.T, accessToken string) model.Identity {
	t.Helper()

	id, err := f.gate.Authenticate(context.Background(), "Bearer "+accessToken)
	require.NoError(t, err)
	return id
}

func assertAPICode(t *testing.T, err error, code string) {
	t.Helper()
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, code, apiErr.Code)
}
