package service

import (
	"context"
	"strings"

	"go-social-api/internal/event"
	"go-social-api/internal/model"
	"go-social-api/internal/validation"
)

type UserService struct {
	users  UserStore
	hasher *PasswordHasher
	bus    event.Bus
	now    Clock
}

func NewUserService(users UserStore, hasher *PasswordHasher, bus event.Bus) *UserService {
	return &UserService{users: users, hasher: hasher, bus: bus, now: utcNow}
}

func (s *UserService) Profile(ctx context.Context, userID string) (model.PublicUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.PublicUser{}, err
	}
	return user.Public(), nil
}

// UpdateProfile applies only the fields present in req.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req model.UpdateProfileRequest) (model.PublicUser, error) {
	if req.Username != nil {
		trimmed := strings.TrimSpace(*req.Username)
		req.Username = &trimmed
	}
	if req.Email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*req.Email))
		req.Email = &normalized
	}
	if err := validation.Struct(req); err != nil {
		return model.PublicUser{}, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.PublicUser{}, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Username != nil || req.Email != nil {
		exists, err := s.users.ExistsByUsernameOrEmail(ctx, user.Username, user.Email, user.ID)
		if err != nil {
			return model.PublicUser{}, err
		}
		if exists {
			return model.PublicUser{}, model.ErrUserAlreadyExists
		}
	}
	if req.Password != nil {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return model.PublicUser{}, err
		}
		user.PasswordHash = hash
	}

	user.UpdatedAt = s.now()
	if err := s.users.Update(ctx, user); err != nil {
		return model.PublicUser{}, err
	}

	s.publish(event.TypeProfileUpdated, user.ID)
	return user.Public(), nil
}

// DeleteAccount removes the user with everything they own. Outstanding
// tokens die with the account because the gate re-checks the subject.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	s.publish(event.TypeAccountDeleted, userID)
	return nil
}

func (s *UserService) publish(kind event.Type, actorID string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(event.Event{Type: kind, ActorID: actorID, Status: event.StatusSuccess, Timestamp: s.now()})
}
