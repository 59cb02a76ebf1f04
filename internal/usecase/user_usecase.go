package usecase

import (
	"context"
	"net/mail"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/modi-mansi/ecommerce/internal/domain/model"
	repo "github.com/modi-mansi/ecommerce/internal/repository"
)

const minPasswordLength = 8

// bcryptが扱える上限（バイト数）
const maxPasswordBytes = 72

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

// DI
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost: cost}
}

func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", errors.Wrap(err, "bcrypt")
	}
	return string(hashed), nil
}

// UserUsecase はユーザーの登録と取得。ログイン/セッションは扱わない
type UserUsecase struct {
	users  repo.UserRepository
	hasher PasswordHasher
}

// DI
func NewUserUsecase(users repo.UserRepository, hasher PasswordHasher) *UserUsecase {
	return &UserUsecase{users: users, hasher: hasher}
}

type CreateUserInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	//空ならcustomer
	Role string
}

func (u *UserUsecase) Create(ctx context.Context, in CreateUserInput) (UserOutput, error) {
	var fe fieldErrors
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	role := model.Role(strings.TrimSpace(in.Role))
	if role == "" {
		role = model.RoleCustomer
	}

	if username == "" {
		fe.add("username", "username required")
	}
	// emailの形式チェック
	if _, err := mail.ParseAddress(email); email == "" || err != nil {
		fe.add("email", "invalid email format")
	}
	if len(in.Password) < minPasswordLength {
		fe.add("password", "password too short")
	}
	if len(in.Password) > maxPasswordBytes {
		fe.add("password", "password too long")
	}
	if role != model.RoleCustomer && role != model.RoleAdmin {
		fe.add("role", "role must be customer or admin")
	}
	if err := fe.err("Invalid user data"); err != nil {
		return UserOutput{}, err
	}

	// パスワードをハッシュ化（平文は保存しない）
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return UserOutput{}, internal("hash password", err)
	}

	user, err := u.users.Create(ctx, model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         role,
	})
	if errors.Is(err, repo.ErrDuplicate) {
		return UserOutput{}, conflict("username or email already exists")
	}
	if err != nil {
		return UserOutput{}, internal("create user", err)
	}
	return toUserOutput(user), nil
}

func (u *UserUsecase) Get(ctx context.Context, userID string) (UserOutput, error) {
	user, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return UserOutput{}, notFound("User not found")
	}
	if err != nil {
		return UserOutput{}, internal("find user", err)
	}
	return toUserOutput(user), nil
}
