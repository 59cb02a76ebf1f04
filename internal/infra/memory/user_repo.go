package memory

import (
	"context"
	"strings"

	"github.com/modi-mansi/ecommerce/internal/domain/model"
	"github.com/modi-mansi/ecommerce/internal/repository"
)

type userRepo struct {
	s *session
}

func (r *userRepo) Create(ctx context.Context, user model.User) (model.User, error) {
	err := r.s.do(func(t *tables) error {
		for _, u := range t.users {
			if u.Username == user.Username || strings.EqualFold(u.Email, user.Email) {
				return repository.ErrDuplicate
			}
		}
		if user.ID == "" {
			user.ID = r.s.store.ids.NewID()
		}
		if _, exists := t.users[user.ID]; exists {
			return repository.ErrDuplicate
		}
		if user.CreatedAt.IsZero() {
			user.CreatedAt = r.s.store.clock.Now()
		}
		t.users[user.ID] = user
		t.userOrder = append(t.userOrder, user.ID)
		return nil
	})
	return user, err
}

func (r *userRepo) FindByID(ctx context.Context, userID string) (model.User, error) {
	return r.find(func(u model.User) bool { return u.ID == userID })
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (model.User, error) {
	return r.find(func(u model.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (model.User, error) {
	return r.find(func(u model.User) bool { return u.Username == username })
}

func (r *userRepo) find(match func(u model.User) bool) (model.User, error) {
	var out model.User
	err := r.s.do(func(t *tables) error {
		for _, id := range t.userOrder {
			if match(t.users[id]) {
				out = t.users[id]
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return out, err
}
