package repository

import (
	"context"

	"github.com/arenadesk/arenadesk/model"
	"gorm.io/gorm"
)

// Column names used for partial updates.
const (
	ColUserEmailVerified           = "email_verified"
	ColUserVerificationToken       = "verification_token"
	ColUserVerificationTokenExpiry = "verification_token_expiry"
	ColUserStatus                  = "status"
	ColUserLastLoginAt             = "last_login_at"
)

type UserRepository struct {
	db *gorm.DB
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) GetByID(ctx context.Context, userID uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByVerificationToken(ctx context.Context, token string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("verification_token = ?", token).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdatesByID(ctx context.Context, userID uint, columns map[string]interface{}) (int64, error) {
	ret := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Updates(columns)
	return ret.RowsAffected, ret.Error
}

// UpdatesByVerificationToken applies columns to the single row still holding
// the given token. A zero row count means the token was already consumed or
// never existed.
func (r *UserRepository) UpdatesByVerificationToken(ctx context.Context, token string, columns map[string]interface{}) (int64, error) {
	ret := r.db.WithContext(ctx).Model(&model.User{}).Where("verification_token = ?", token).Updates(columns)
	return ret.RowsAffected, ret.Error
}

func (r *UserRepository) List(ctx context.Context) ([]*model.User, error) {
	var users []*model.User
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *UserRepository) ListByStatus(ctx context.Context, status string) ([]*model.User, error) {
	var users []*model.User
	err := r.db.WithContext(ctx).Where("status = ?", status).Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *UserRepository) Delete(ctx context.Context, userID uint) (int64, error) {
	ret := r.db.WithContext(ctx).Unscoped().Delete(&model.User{}, userID)
	return ret.RowsAffected, ret.Error
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db}
}
