package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arenadesk/arenadesk/internal/store"
	"github.com/arenadesk/arenadesk/internal/users"
	"github.com/arenadesk/arenadesk/model"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserService struct {
	usersByEmail map[string]*model.User
	lastLogins   map[uint]time.Time
}

func newFakeUserService() *fakeUserService {
	return &fakeUserService{
		usersByEmail: make(map[string]*model.User),
		lastLogins:   make(map[uint]time.Time),
	}
}

func (s *fakeUserService) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user, ok := s.usersByEmail[users.NormalizeEmail(email)]
	if !ok {
		return nil, users.ErrUserNotFound
	}
	return user, nil
}

func (s *fakeUserService) SetLastLoginTime(ctx context.Context, userID uint, lastLoginTime time.Time) error {
	s.lastLogins[userID] = lastLoginTime
	return nil
}

func (s *fakeUserService) addUser(id uint, email string, password string, verified bool, status string) *model.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	user := &model.User{
		Name:          "Test User",
		Email:         email,
		Password:      string(hash),
		EmailVerified: verified,
		Status:        status,
	}
	user.ID = id
	s.usersByEmail[email] = user
	return user
}

func newTestAuthService(userService UserService, maxFails int) *AuthenticateService {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	return NewAuthenticateService(userService, issuer, store.NewMemoryStore[LoginState](), maxFails, time.Hour)
}

func TestPasswordLoginEnumerationSafe(t *testing.T) {
	userService := newFakeUserService()
	userService.addUser(1, "ann@x.com", "pw123456", true, model.StatusApproved)
	authService := newTestAuthService(userService, 10)
	ctx := context.Background()

	_, _, unknownErr := authService.PasswordLogin(ctx, "nobody@x.com", "pw123456")
	_, _, wrongPwErr := authService.PasswordLogin(ctx, "ann@x.com", "wrong-password")

	if !errors.Is(unknownErr, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", unknownErr)
	}
	if !errors.Is(wrongPwErr, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPwErr)
	}
	if unknownErr.Error() != wrongPwErr.Error() {
		t.Error("unknown email and wrong password must fail identically")
	}
}

func TestPasswordLoginPreconditionOrder(t *testing.T) {
	userService := newFakeUserService()
	// verification comes before approval in the error ordering
	userService.addUser(1, "unverified@x.com", "pw123456", false, model.StatusPending)
	userService.addUser(2, "pending@x.com", "pw123456", true, model.StatusPending)
	userService.addUser(3, "rejected@x.com", "pw123456", true, model.StatusRejected)
	authService := newTestAuthService(userService, 10)
	ctx := context.Background()

	if _, _, err := authService.PasswordLogin(ctx, "unverified@x.com", "pw123456"); !errors.Is(err, ErrEmailNotVerified) {
		t.Fatalf("expected ErrEmailNotVerified, got %v", err)
	}
	if _, _, err := authService.PasswordLogin(ctx, "pending@x.com", "pw123456"); !errors.Is(err, ErrPendingApproval) {
		t.Fatalf("expected ErrPendingApproval, got %v", err)
	}
	if _, _, err := authService.PasswordLogin(ctx, "rejected@x.com", "pw123456"); !errors.Is(err, ErrAccountRejected) {
		t.Fatalf("expected ErrAccountRejected, got %v", err)
	}
}

func TestPasswordLoginSuccess(t *testing.T) {
	userService := newFakeUserService()
	user := userService.addUser(7, "ann@x.com", "pw123456", true, model.StatusApproved)
	issuer := NewTokenIssuer("test-secret", time.Hour)
	authService := NewAuthenticateService(userService, issuer, store.NewMemoryStore[LoginState](), 10, time.Hour)
	ctx := context.Background()

	loggedIn, token, err := authService.PasswordLogin(ctx, "Ann@X.com", "pw123456")
	if err != nil {
		t.Fatal(err)
	}
	if loggedIn.ID != user.ID {
		t.Errorf("expected user %d, got %d", user.ID, loggedIn.ID)
	}
	userID, err := issuer.Validate(token)
	if err != nil {
		t.Fatal(err)
	}
	if userID != user.ID {
		t.Errorf("token subject mismatch: %d", userID)
	}
	if _, ok := userService.lastLogins[user.ID]; !ok {
		t.Error("expected last login time to be recorded")
	}
}

func TestPasswordLoginLockout(t *testing.T) {
	userService := newFakeUserService()
	userService.addUser(1, "ann@x.com", "pw123456", true, model.StatusApproved)
	authService := newTestAuthService(userService, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, _, err := authService.PasswordLogin(ctx, "ann@x.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i, err)
		}
	}
	// the lock holds even for the correct password
	if _, _, err := authService.PasswordLogin(ctx, "ann@x.com", "pw123456"); !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}
