package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"lightbnb_backend/internal/model"
)

// UserRepository reads and writes users.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a repository backed by db.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetUserWithEmail looks a user up by email.
func (r *UserRepository) GetUserWithEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeError("get user by email", err)
	}
	return &user, nil
}

// GetUserWithID looks a user up by id.
func (r *UserRepository) GetUserWithID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeError("get user by id", err)
	}
	return &user, nil
}

// AddUser inserts u. The password must already be hashed.
func (r *UserRepository) AddUser(ctx context.Context, u *model.User) (*model.User, error) {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, storeError("add user", err)
	}
	return u, nil
}
