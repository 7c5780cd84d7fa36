package users

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/arenadesk/arenadesk/model"
	"github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uint]*model.User

	// forceDuplicateOnCreate simulates the unique index firing when two
	// registrations race past the application-level existence check.
	forceDuplicateOnCreate bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*model.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.forceDuplicateOnCreate {
		return &mysql.MySQLError{Number: 1062, Message: fmt.Sprintf("Duplicate entry '%s' for key '%s'", user.Email, model.IdxUserEmail)}
	}
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return &mysql.MySQLError{Number: 1062, Message: fmt.Sprintf("Duplicate entry '%s' for key '%s'", user.Email, model.IdxUserEmail)}
		}
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, userID uint) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByVerificationToken(ctx context.Context, token string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.VerificationToken != nil && *user.VerificationToken == token {
			clone := *user
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func applyColumns(user *model.User, columns map[string]interface{}) {
	for col, val := range columns {
		switch col {
		case "email_verified":
			user.EmailVerified = val.(bool)
		case "verification_token":
			if val == nil {
				user.VerificationToken = nil
			} else {
				token := val.(string)
				user.VerificationToken = &token
			}
		case "verification_token_expiry":
			if val == nil {
				user.VerificationTokenExpiry = nil
			} else {
				expiry := val.(time.Time)
				user.VerificationTokenExpiry = &expiry
			}
		case "status":
			user.Status = val.(string)
		case "last_login_at":
			lastLogin := val.(time.Time)
			user.LastLoginAt = &lastLogin
		}
	}
	user.UpdatedAt = time.Now()
}

func (r *fakeUserRepo) UpdatesByID(ctx context.Context, userID uint, columns map[string]interface{}) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return 0, nil
	}
	applyColumns(user, columns)
	return 1, nil
}

func (r *fakeUserRepo) UpdatesByVerificationToken(ctx context.Context, token string, columns map[string]interface{}) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.VerificationToken != nil && *user.VerificationToken == token {
			applyColumns(user, columns)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeUserRepo) List(ctx context.Context) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var userList []*model.User
	for _, user := range r.users {
		clone := *user
		userList = append(userList, &clone)
	}
	return userList, nil
}

func (r *fakeUserRepo) ListByStatus(ctx context.Context, status string) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var userList []*model.User
	for _, user := range r.users {
		if user.Status == status {
			clone := *user
			userList = append(userList, &clone)
		}
	}
	return userList, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, userID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[userID]; !ok {
		return 0, nil
	}
	delete(r.users, userID)
	return 1, nil
}

func (r *fakeUserRepo) setExpiry(userID uint, expiry time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[userID].VerificationTokenExpiry = &expiry
}

func TestRegisterUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, true, 0)

	user, err := svc.RegisterUser(context.Background(), RegisterOptions{Name: "Ann", Email: "Ann@X.com", Password: "pw123456"})
	if err != nil {
		t.Fatal(err)
	}
	if user.Email != "ann@x.com" {
		t.Errorf("email not normalized: %s", user.Email)
	}
	if user.Status != model.StatusPending {
		t.Errorf("expected pending status, got %s", user.Status)
	}
	if user.EmailVerified {
		t.Error("new user must not be email verified")
	}
	if user.IsAdmin {
		t.Error("new user must not be admin")
	}
	if user.VerificationToken == nil || user.VerificationTokenExpiry == nil {
		t.Fatal("expected verification token and expiry")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("pw123456")); err != nil {
		t.Error("stored password is not a hash of the input")
	}
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, true, 0)
	ctx := context.Background()

	if _, err := svc.RegisterUser(ctx, RegisterOptions{Name: "Ann", Email: "a@x.com", Password: "pw123456"}); err != nil {
		t.Fatal(err)
	}
	_, err := svc.RegisterUser(ctx, RegisterOptions{Name: "Ann 2", Email: "A@X.com", Password: "pw123456"})
	if !errors.Is(err, ErrEmailRegistered) {
		t.Fatalf("expected ErrEmailRegistered, got %v", err)
	}
}

func TestRegisterUserStorageConflict(t *testing.T) {
	repo := newFakeUserRepo()
	repo.forceDuplicateOnCreate = true
	svc := NewUserService(repo, true, 0)

	_, err := svc.RegisterUser(context.Background(), RegisterOptions{Name: "Ann", Email: "a@x.com", Password: "pw123456"})
	if !errors.Is(err, ErrEmailRegistered) {
		t.Fatalf("expected ErrEmailRegistered from storage conflict, got %v", err)
	}
}

func TestRegisterUserWithoutEmailVerification(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, false, 0)

	user, err := svc.RegisterUser(context.Background(), RegisterOptions{Name: "Ann", Email: "a@x.com", Password: "pw123456"})
	if err != nil {
		t.Fatal(err)
	}
	if !user.EmailVerified {
		t.Error("expected email to be pre-verified")
	}
	if user.VerificationToken != nil {
		t.Error("expected no verification token")
	}
}

func TestVerifyEmailSingleUse(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, true, 0)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, RegisterOptions{Name: "Ann", Email: "a@x.com", Password: "pw123456"})
	if err != nil {
		t.Fatal(err)
	}
	token := *user.VerificationToken

	if err := svc.VerifyEmail(ctx, token); err != nil {
		t.Fatal(err)
	}
	verified, err := svc.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !verified.EmailVerified {
		t.Error("expected email verified")
	}
	if verified.VerificationToken != nil || verified.VerificationTokenExpiry != nil {
		t.Error("expected token and expiry cleared")
	}

	// replaying a consumed token must fail, not succeed silently
	if err := svc.VerifyEmail(ctx, token); !errors.Is(err, ErrInvalidVerificationToken) {
		t.Fatalf("expected ErrInvalidVerificationToken on replay, got %v", err)
	}
}

func TestVerifyEmailExpired(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, true, 0)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, RegisterOptions{Name: "Ann", Email: "a@x.com", Password: "pw123456"})
	if err != nil {
		t.Fatal(err)
	}
	repo.setExpiry(user.ID, time.Now().Add(-time.Minute))

	if err := svc.VerifyEmail(ctx, *user.VerificationToken); !errors.Is(err, ErrVerificationTokenExpired) {
		t.Fatalf("expected ErrVerificationTokenExpired, got %v", err)
	}
	if err := svc.VerifyEmail(ctx, "no-such-token"); !errors.Is(err, ErrInvalidVerificationToken) {
		t.Fatalf("expected ErrInvalidVerificationToken for unknown token, got %v", err)
	}
}

func TestResendVerification(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, true, 0)
	ctx := context.Background()

	if _, err := svc.ResendVerification(ctx, "missing@x.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	user, err := svc.RegisterUser(ctx, RegisterOptions{Name: "Ann", Email: "a@x.com", Password: "pw123456"})
	if err != nil {
		t.Fatal(err)
	}
	oldToken := *user.VerificationToken

	resent, err := svc.ResendVerification(ctx, "a@x.com")
	if err != nil {
		t.Fatal(err)
	}
	if *resent.VerificationToken == oldToken {
		t.Error("expected a fresh token")
	}
	// the previous token is permanently invalid
	if err := svc.VerifyEmail(ctx, oldToken); !errors.Is(err, ErrInvalidVerificationToken) {
		t.Fatalf("expected old token to be invalid, got %v", err)
	}
	if err := svc.VerifyEmail(ctx, *resent.VerificationToken); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.ResendVerification(ctx, "a@x.com"); !errors.Is(err, ErrEmailAlreadyVerified) {
		t.Fatalf("expected ErrEmailAlreadyVerified, got %v", err)
	}
}

func TestApproveRejectTransitions(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, true, 0)
	ctx := context.Background()

	if _, err := svc.ApproveUser(ctx, 12345); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	user, err := svc.RegisterUser(ctx, RegisterOptions{Name: "Ann", Email: "a@x.com", Password: "pw123456"})
	if err != nil {
		t.Fatal(err)
	}

	approved, err := svc.ApproveUser(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if approved.Status != model.StatusApproved {
		t.Errorf("expected approved, got %s", approved.Status)
	}

	// re-approving is a no-op
	if _, err := svc.ApproveUser(ctx, user.ID); err != nil {
		t.Fatalf("expected idempotent approve, got %v", err)
	}

	// approved -> rejected is not a legal transition
	if _, err := svc.RejectUser(ctx, user.ID); !errors.Is(err, ErrUserNotPending) {
		t.Fatalf("expected ErrUserNotPending, got %v", err)
	}

	other, err := svc.RegisterUser(ctx, RegisterOptions{Name: "Bob", Email: "b@x.com", Password: "pw123456"})
	if err != nil {
		t.Fatal(err)
	}
	rejected, err := svc.RejectUser(ctx, other.ID)
	if err != nil {
		t.Fatal(err)
	}
	if rejected.Status != model.StatusRejected {
		t.Errorf("expected rejected, got %s", rejected.Status)
	}
	if _, err := svc.ApproveUser(ctx, other.ID); !errors.Is(err, ErrUserNotPending) {
		t.Fatalf("expected ErrUserNotPending, got %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, true, 0)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, RegisterOptions{Name: "Ann", Email: "a@x.com", Password: "pw123456"})
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteUser(ctx, user.ID); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteUser(ctx, user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
