package repository

import (
	"context"

	"github.com/GTDGit/paydii_api/internal/models"
)

// AccountRepository provides data access for login accounts.
type AccountRepository struct {
	accounts Table[models.Account]
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(store Store) *AccountRepository {
	return &AccountRepository{accounts: NewTable[models.Account](store, MapAccounts)}
}

// GetByID finds an account, or returns ErrNotFound.
func (r *AccountRepository) GetByID(ctx context.Context, id models.AccountID) (*models.Account, error) {
	a, ok, err := r.accounts.Get(ctx, string(id))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

// Exists reports whether id is registered.
func (r *AccountRepository) Exists(ctx context.Context, id models.AccountID) (bool, error) {
	return r.accounts.Exists(ctx, string(id))
}

// Create stages a new account.
func (r *AccountRepository) Create(b *Batch, a *models.Account) error {
	return r.accounts.Put(b, string(a.ID), *a)
}
