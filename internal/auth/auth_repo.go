package auth

import (
	"context"
	"strings"
	"time"

	"leave-tracker/internal/store"
)

// UserStore is the part of store.Adapter the repository depends on.
type UserStore interface {
	Users(ctx context.Context) store.UserCollection
}

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock
type Repository interface {
	FindByPaysheetAndEmail(ctx context.Context, paysheetNumber, email string) (*store.User, error)
	FindByEmail(ctx context.Context, email string) (*store.User, error)
	FindByPaysheet(ctx context.Context, paysheetNumber string) (*store.User, error)
	FindByID(ctx context.Context, id string) (*store.User, error)
	CompleteSetup(ctx context.Context, id store.ID, passwordHash string, at time.Time) (bool, error)
}

type repository struct {
	store UserStore
}

func NewRepository(s UserStore) Repository {
	return &repository{store: s}
}

// Emails are stored lowercase; lookups lowercase the input.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Lookups by credential only consider employee accounts.
func (r *repository) FindByPaysheetAndEmail(ctx context.Context, paysheetNumber, email string) (*store.User, error) {
	return r.store.Users(ctx).FindOne(ctx, store.UserFilter{
		Role:           store.RoleEmployee,
		PaysheetNumber: strings.TrimSpace(paysheetNumber),
		Email:          normalizeEmail(email),
	})
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*store.User, error) {
	return r.store.Users(ctx).FindOne(ctx, store.UserFilter{
		Role:  store.RoleEmployee,
		Email: normalizeEmail(email),
	})
}

func (r *repository) FindByPaysheet(ctx context.Context, paysheetNumber string) (*store.User, error) {
	return r.store.Users(ctx).FindOne(ctx, store.UserFilter{
		Role:           store.RoleEmployee,
		PaysheetNumber: strings.TrimSpace(paysheetNumber),
	})
}

func (r *repository) FindByID(ctx context.Context, id string) (*store.User, error) {
	uid := store.ParseID(id)
	if uid.IsZero() {
		return nil, nil
	}
	return r.store.Users(ctx).FindOne(ctx, store.UserFilter{ID: uid.Ptr()})
}

// CompleteSetup stores the hash and clears first_login in a single update.
func (r *repository) CompleteSetup(ctx context.Context, id store.ID, passwordHash string, at time.Time) (bool, error) {
	return r.store.Users(ctx).UpdateOne(ctx, id, store.UserUpdate{
		Password:   passwordHash,
		FirstLogin: false,
		UpdatedAt:  at,
	})
}
