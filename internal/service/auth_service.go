package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"go-social-api/internal/event"
	"go-social-api/internal/model"
	"go-social-api/internal/token"
	"go-social-api/internal/validation"
)

const tokenTypeBearer = "bearer"

// AuthService runs the session lifecycle: register, login, refresh and
// logout.
type AuthService struct {
	users  UserStore
	ledger *RevocationLedger
	codec  *token.Codec
	hasher *PasswordHasher
	bus    event.Bus
	now    Clock
}

func NewAuthService(users UserStore, ledger *RevocationLedger, codec *token.Codec, hasher *PasswordHasher, bus event.Bus) *AuthService {
	return &AuthService{
		users:  users,
		ledger: ledger,
		codec:  codec,
		hasher: hasher,
		bus:    bus,
		now:    utcNow,
	}
}

// Register creates the account. It does not log the user in.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.PublicUser, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validation.Struct(req); err != nil {
		return model.PublicUser{}, err
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, req.Username, req.Email, "")
	if err != nil {
		return model.PublicUser{}, err
	}
	if exists {
		return model.PublicUser{}, model.ErrUserAlreadyExists
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.PublicUser{}, err
	}

	now := s.now()
	user := model.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return model.PublicUser{}, err
	}

	s.publish(event.TypeUserRegistered, user.ID, event.StatusSuccess, "")
	return user.Public(), nil
}

// Login answers ErrInvalidCredentials for both an unknown email and a wrong
// password, after the same amount of bcrypt work.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.LoginResult, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validation.Struct(req); err != nil {
		return model.LoginResult{}, err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, model.ErrUserNotFound) {
		s.hasher.Burn(req.Password)
		s.publish(event.TypeLoginFailed, "", event.StatusFailure, "unknown email")
		return model.LoginResult{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.LoginResult{}, err
	}

	if !s.hasher.Matches(user.PasswordHash, req.Password) {
		s.publish(event.TypeLoginFailed, user.ID, event.StatusFailure, "wrong password")
		return model.LoginResult{}, model.ErrInvalidCredentials
	}

	subject := token.Subject{UserID: user.ID, Email: user.Email}
	access, err := s.codec.Issue(subject, model.TokenAccess)
	if err != nil {
		return model.LoginResult{}, err
	}
	refresh, err := s.codec.Issue(subject, model.TokenRefresh)
	if err != nil {
		return model.LoginResult{}, err
	}

	s.publish(event.TypeLoginSucceeded, user.ID, event.StatusSuccess, "")
	return model.LoginResult{
		User:         user.Public(),
		AccessToken:  access.Token,
		RefreshToken: refresh.Token,
		TokenType:    tokenTypeBearer,
		ExpiresIn:    int64(s.codec.TTL(model.TokenAccess).Seconds()),
	}, nil
}

// Refresh mints a new access token. The refresh token itself is returned to
// the caller unchanged and stays valid until it expires or is revoked.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (model.AccessTokenResult, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return model.AccessTokenResult{}, model.ErrMissingToken
	}

	revoked, err := s.ledger.Contains(ctx, refreshToken)
	if err != nil {
		return model.AccessTokenResult{}, err
	}
	if revoked {
		s.publish(event.TypeTokenRejected, "", event.StatusFailure, "revoked refresh token")
		return model.AccessTokenResult{}, model.ErrRevokedToken
	}

	claims, err := s.codec.Verify(refreshToken)
	if err != nil {
		return model.AccessTokenResult{}, err
	}
	if claims.Type != model.TokenRefresh {
		return model.AccessTokenResult{}, model.ErrWrongTokenKind
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return model.AccessTokenResult{}, err
	}

	access, err := s.codec.Issue(token.Subject{UserID: user.ID, Email: user.Email}, model.TokenAccess)
	if err != nil {
		return model.AccessTokenResult{}, err
	}

	s.publish(event.TypeTokenRefreshed, user.ID, event.StatusSuccess, "")
	return model.AccessTokenResult{
		AccessToken: access.Token,
		TokenType:   tokenTypeBearer,
		ExpiresIn:   int64(s.codec.TTL(model.TokenAccess).Seconds()),
	}, nil
}

type revocation struct {
	token  string
	claims *token.Claims
}

// Logout revokes the presented access token and the given refresh token.
// Both are checked before anything is written; each is then revoked on its
// own so one failing write does not leave the other token live. Tokens that
// are already revoked are skipped.
func (s *AuthService) Logout(ctx context.Context, identity model.Identity, refreshToken string) error {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return model.ErrMissingToken
	}

	accessClaims, err := s.codec.Verify(identity.Token)
	if err != nil {
		return err
	}
	if accessClaims.Type != model.TokenAccess {
		return model.ErrWrongTokenKind
	}

	refreshClaims, err := s.codec.Verify(refreshToken)
	if err != nil {
		return err
	}
	if refreshClaims.Type != model.TokenRefresh {
		return model.ErrWrongTokenKind
	}
	if refreshClaims.UserID != accessClaims.UserID {
		return fmt.Errorf("%w: tokens belong to different users", model.ErrMalformedToken)
	}

	var errs []error
	for _, r := range []revocation{
		{token: identity.Token, claims: accessClaims},
		{token: refreshToken, claims: refreshClaims},
	} {
		_, err := s.ledger.Add(ctx, model.RevocationEntry{
			Token:     r.token,
			Kind:      r.claims.Type,
			UserID:    r.claims.UserID,
			ExpiresAt: r.claims.ExpiresAt.Time,
			Reason:    model.ReasonLogout,
		})
		if err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		s.publish(event.TypeLogout, accessClaims.UserID, event.StatusFailure, "revocation write failed")
		return err
	}

	s.publish(event.TypeLogout, accessClaims.UserID, event.StatusSuccess, "")
	return nil
}

func (s *AuthService) publish(kind event.Type, actorID string, status string, detail string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(event.Event{
		Type:      kind,
		ActorID:   actorID,
		Status:    status,
		Detail:    detail,
		Timestamp: s.now(),
	})
}
