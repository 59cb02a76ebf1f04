package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/modi-mansi/ecommerce/internal/domain/model"
	domainrepo "github.com/modi-mansi/ecommerce/internal/repository"
)

type userGormRepository struct {
	db *gorm.DB
}

// DI
// main.goでこれをnewしてusecaseに注入します。
func NewUserGormRepository(db *gorm.DB) domainrepo.UserRepository {
	return &userGormRepository{db: db}
}

// Create はユーザーを新規作成
func (r *userGormRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isDuplicate(err) {
			return model.User{}, domainrepo.ErrDuplicate
		}
		return model.User{}, errors.Wrap(err, "create user")
	}
	return user, nil
}

// IDでユーザーを1件取得
func (r *userGormRepository) FindByID(ctx context.Context, id string) (model.User, error) {
	if !isUUID(id) {
		return model.User{}, domainrepo.ErrNotFound
	}
	return r.first(ctx, "id = ?", id)
}

// emailでユーザーを1件取得（大文字小文字は区別しない）
func (r *userGormRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	return r.first(ctx, "LOWER(email) = LOWER(?)", email)
}

func (r *userGormRepository) FindByUsername(ctx context.Context, username string) (model.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *userGormRepository) first(ctx context.Context, cond string, arg string) (model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where(cond, arg).
		First(&u).Error

	if isNotFound(err) {
		return model.User{}, domainrepo.ErrNotFound
	}
	if err != nil {
		return model.User{}, errors.Wrap(err, "find user")
	}
	return u, nil
}
