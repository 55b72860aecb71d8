package repository

import (
	"context"
	"strings"
	"time"

	"github.com/iliyamo/task-vault/internal/model"
	"github.com/iliyamo/task-vault/internal/store"
	"github.com/iliyamo/task-vault/internal/utils"
)

// UserRepo owns the `users` collection. Emails are normalized to
// trimmed lower case before every comparison and before storage, which
// is what makes the uniqueness check case-insensitive.
type UserRepo struct {
	users      store.Collection[model.User]
	bcryptCost int
}

func NewUserRepo(users store.Collection[model.User], bcryptCost int) *UserRepo {
	return &UserRepo{users: users, bcryptCost: bcryptCost}
}

// NormalizeEmail is the single place that defines what "the same
// email" means across the service.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create hashes the password and appends a new user. The uniqueness
// check runs again inside the collection lock: the validation
// pipeline's unique-email rule is only advisory, since another request
// may register the same address between the check and this write.
func (r *UserRepo) Create(ctx context.Context, fullName, email, password string) (model.User, error) {
	email = NormalizeEmail(email)
	hash, err := utils.HashPassword(password, r.bcryptCost)
	if err != nil {
		return model.User{}, err
	}

	var created model.User
	err = r.users.Update(ctx, func(users []model.User) ([]model.User, error) {
		for _, u := range users {
			if NormalizeEmail(u.Email) == email {
				return nil, ErrEmailExists
			}
		}
		created = model.User{
			ID:           store.NextID(users),
			FullName:     strings.TrimSpace(fullName),
			Email:        email,
			PasswordHash: hash,
			CreatedAt:    time.Now().UTC(),
		}
		return append(users, created), nil
	})
	if err != nil {
		return model.User{}, err
	}
	return created, nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = NormalizeEmail(email)
	users, err := r.users.Load(ctx)
	if err != nil {
		return model.User{}, err
	}
	for _, u := range users {
		if NormalizeEmail(u.Email) == email {
			return u, nil
		}
	}
	return model.User{}, ErrUserNotFound
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (model.User, error) {
	users, err := r.users.Load(ctx)
	if err != nil {
		return model.User{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, ErrUserNotFound
}

// EmailTaken implements validate.EmailLookup for the registration
// pipeline. Read-only.
func (r *UserRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == ErrUserNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
