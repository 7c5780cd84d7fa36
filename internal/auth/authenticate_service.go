package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/arenadesk/arenadesk/internal/store"
	"github.com/arenadesk/arenadesk/internal/users"
	"github.com/arenadesk/arenadesk/model"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	SetLastLoginTime(ctx context.Context, userID uint, lastLoginTime time.Time) error
}

type AuthenticateService struct {
	userService  UserService
	tokenIssuer  *TokenIssuer
	loginStates  *loginStateStore
	maxFails     int
	lockDuration time.Duration
}

func (s *AuthenticateService) registerLoginFailure(ctx context.Context, userID uint, state *LoginState) {
	state.RegisterFailure(s.maxFails, s.lockDuration)
	if err := s.loginStates.Set(ctx, userID, *state, s.lockDuration); err != nil {
		slog.Error("Failed to save login state", "userID", userID, "error", err)
	}
}

// PasswordLogin authenticates an email/password pair and issues a session
// token. Unknown email and wrong password fail identically so callers cannot
// probe which addresses are registered. On a credential match the lifecycle
// preconditions are checked in order: email verification, then pending, then
// rejected.
func (s *AuthenticateService) PasswordLogin(ctx context.Context, email string, password string) (*model.User, string, error) {
	user, err := s.userService.GetUserByEmail(ctx, email)
	if errors.Is(err, users.ErrUserNotFound) {
		return nil, "", ErrInvalidCredentials
	} else if err != nil {
		return nil, "", err
	}

	state, err := s.loginStates.Get(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	if state.IsLocked() {
		return nil, "", ErrTooManyAttempts
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.registerLoginFailure(ctx, user.ID, state)
		return nil, "", ErrInvalidCredentials
	}

	if !user.EmailVerified {
		return nil, "", ErrEmailNotVerified
	}
	if user.Status == model.StatusPending {
		return nil, "", ErrPendingApproval
	}
	if user.Status == model.StatusRejected {
		return nil, "", ErrAccountRejected
	}

	if err := s.loginStates.Del(ctx, user.ID); err != nil {
		slog.Error("Failed to reset login state", "userID", user.ID, "error", err)
	}
	if err := s.userService.SetLastLoginTime(ctx, user.ID, time.Now()); err != nil {
		slog.Error("Failed to update last login time", "userID", user.ID, "error", err)
	}

	token, err := s.tokenIssuer.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func NewAuthenticateService(userService UserService, tokenIssuer *TokenIssuer, loginStates store.Store[LoginState], maxFails int, lockDuration time.Duration) *AuthenticateService {
	return &AuthenticateService{
		userService:  userService,
		tokenIssuer:  tokenIssuer,
		loginStates:  newLoginStateStore(loginStates),
		maxFails:     maxFails,
		lockDuration: lockDuration,
	}
}
