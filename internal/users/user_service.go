package users

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arenadesk/arenadesk/internal/repository"
	"github.com/arenadesk/arenadesk/model"
	"github.com/arenadesk/arenadesk/params"
	"github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, userID uint) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByVerificationToken(ctx context.Context, token string) (*model.User, error)
	UpdatesByID(ctx context.Context, userID uint, columns map[string]interface{}) (int64, error)
	UpdatesByVerificationToken(ctx context.Context, token string, columns map[string]interface{}) (int64, error)
	List(ctx context.Context) ([]*model.User, error)
	ListByStatus(ctx context.Context, status string) ([]*model.User, error)
	Delete(ctx context.Context, userID uint) (int64, error)
}

type RegisterOptions struct {
	Name     string
	Email    string
	Password string
}

type UserService struct {
	userRepo                 UserRepository
	requireEmailVerification bool
	verificationMaxAge       time.Duration
}

// NormalizeEmail lowercases an email address so lookups and the unique index
// are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) generateVerificationToken() string {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		panic(fmt.Errorf("failed to generate random bytes: %w", err))
	}
	token := base64.RawURLEncoding.EncodeToString(b)
	return token
}

func (s *UserService) checkUserExist(ctx context.Context, email string) error {
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		return ErrEmailRegistered
	}
	return nil
}

// RegisterUser creates a new account in pending status. The application-level
// existence check gives a friendly error on the common path, the unique index
// on email remains the authority when two registrations race.
func (s *UserService) RegisterUser(ctx context.Context, opts RegisterOptions) (*model.User, error) {
	email := NormalizeEmail(opts.Email)
	if err := s.checkUserExist(ctx, email); err != nil {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := model.User{
		Name:     opts.Name,
		Email:    email,
		Password: string(passwordHash),
		Status:   model.StatusPending,
	}
	user.ID = model.GenerateID()
	if s.requireEmailVerification {
		token := s.generateVerificationToken()
		expiry := time.Now().Add(s.verificationMaxAge)
		user.VerificationToken = &token
		user.VerificationTokenExpiry = &expiry
	} else {
		user.EmailVerified = true
	}

	var mysqlErr *mysql.MySQLError
	if err := s.userRepo.Create(ctx, &user); errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		if strings.Contains(mysqlErr.Message, model.IdxUserEmail) {
			return nil, ErrEmailRegistered
		}
		return nil, err
	} else if err != nil {
		return nil, err
	}
	return &user, nil
}

// VerifyEmail consumes a verification token. The token is single-use: the
// update is guarded by the token column itself, so a replay finds zero rows
// and fails the same way an unknown token does.
func (s *UserService) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.userRepo.GetByVerificationToken(ctx, token)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidVerificationToken
	} else if err != nil {
		return err
	}

	if user.VerificationTokenExpiry == nil || time.Now().After(*user.VerificationTokenExpiry) {
		return ErrVerificationTokenExpired
	}

	updates := map[string]interface{}{
		repository.ColUserEmailVerified:           true,
		repository.ColUserVerificationToken:       nil,
		repository.ColUserVerificationTokenExpiry: nil,
	}
	ret, err := s.userRepo.UpdatesByVerificationToken(ctx, token, updates)
	if err != nil {
		return err
	}
	if ret == 0 {
		return ErrInvalidVerificationToken
	}
	return nil
}

// ResendVerification issues a fresh token, invalidating any prior unconsumed
// one.
func (s *UserService) ResendVerification(ctx context.Context, email string) (*model.User, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.EmailVerified {
		return nil, ErrEmailAlreadyVerified
	}

	token := s.generateVerificationToken()
	expiry := time.Now().Add(s.verificationMaxAge)
	updates := map[string]interface{}{
		repository.ColUserVerificationToken:       token,
		repository.ColUserVerificationTokenExpiry: expiry,
	}
	if _, err := s.userRepo.UpdatesByID(ctx, user.ID, updates); err != nil {
		return nil, err
	}
	user.VerificationToken = &token
	user.VerificationTokenExpiry = &expiry
	return user, nil
}

func (s *UserService) setStatus(ctx context.Context, userID uint, status string) (*model.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Status == status {
		return user, nil
	}
	if user.Status != model.StatusPending {
		return nil, ErrUserNotPending
	}

	updates := map[string]interface{}{repository.ColUserStatus: status}
	if _, err := s.userRepo.UpdatesByID(ctx, user.ID, updates); err != nil {
		return nil, err
	}
	user.Status = status
	return user, nil
}

// ApproveUser transitions a pending account to approved. Re-approving an
// already approved account is a no-op.
func (s *UserService) ApproveUser(ctx context.Context, userID uint) (*model.User, error) {
	return s.setStatus(ctx, userID, model.StatusApproved)
}

// RejectUser transitions a pending account to rejected. The record persists
// but can no longer authenticate.
func (s *UserService) RejectUser(ctx context.Context, userID uint) (*model.User, error) {
	return s.setStatus(ctx, userID, model.StatusRejected)
}

func (s *UserService) GetUserByID(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (s *UserService) SetLastLoginTime(ctx context.Context, userID uint, lastLoginTime time.Time) error {
	updates := map[string]interface{}{
		repository.ColUserLastLoginAt: lastLoginTime,
	}
	_, err := s.userRepo.UpdatesByID(ctx, userID, updates)
	return err
}

func (s *UserService) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.List(ctx)
}

func (s *UserService) ListPendingUsers(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.ListByStatus(ctx, model.StatusPending)
}

func (s *UserService) DeleteUser(ctx context.Context, userID uint) error {
	ret, err := s.userRepo.Delete(ctx, userID)
	if err != nil {
		return err
	}
	if ret == 0 {
		return ErrUserNotFound
	}
	return nil
}

func NewUserService(userRepo UserRepository, requireEmailVerification bool, verificationMaxAge time.Duration) *UserService {
	if verificationMaxAge == 0 {
		verificationMaxAge = params.VerificationTokenMaxAge
	}
	return &UserService{
		userRepo:                 userRepo,
		requireEmailVerification: requireEmailVerification,
		verificationMaxAge:       verificationMaxAge,
	}
}
