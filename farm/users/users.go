package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"codeberg.org/krishisakhi/server/internal/store"
)

// wraps store.ErrConflict so callers can treat it as any duplicate
var ErrEmailTaken = fmt.Errorf("email already registered: %w", store.ErrConflict)

func NewRepository(s store.Store[User]) *Repository {
	return &Repository{store: s}
}

// returns the profile of the authenticated user
func (r *Repository) Me(ctx context.Context, userID string) (*User, error) {
	return r.store.Get(ctx, userID)
}

func (r *Repository) List(ctx context.Context, order store.Order, limit int) ([]User, error) {
	return r.store.List(ctx, order, limit)
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	found, err := r.store.Filter(ctx, store.Criteria{"email": normalizeEmail(email)}, store.ParseOrder(""), 1)
	if err != nil {
		return nil, err
	}

	if len(found) == 0 {
		return nil, store.ErrNotFound
	}

	return &found[0], nil
}

func (r *Repository) Create(ctx context.Context, req CreateUserRequest) (*User, error) {
	email := normalizeEmail(req.Email)

	if _, err := r.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrEmailTaken, email)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	return r.store.Create(ctx, User{
		FullName: strings.TrimSpace(req.FullName),
		Email:    email,
		Phone:    req.Phone,
		Location: req.Location,
	})
}

func (r *Repository) Update(ctx context.Context, id string, req UpdateUserRequest) (*User, error) {
	if req.Email != nil {
		email := normalizeEmail(*req.Email)

		existing, err := r.FindByEmail(ctx, email)
		if err == nil && existing.ID != id {
			return nil, fmt.Errorf("%w: %s", ErrEmailTaken, email)
		} else if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}

		req.Email = &email
	}

	patch, err := store.PatchFrom(req)
	if err != nil {
		return nil, err
	}

	return r.store.Update(ctx, id, patch)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
