package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/airdeskhq/airdesk/internal/ids"
	"github.com/airdeskhq/airdesk/internal/model"
	"github.com/airdeskhq/airdesk/internal/utils"
)

// AccountRepo owns the accounts table. Account ids come from the injected
// allocator and are opaque strings to this repository.
type AccountRepo struct {
	DB  *sql.DB
	IDs ids.Allocator
}

func NewAccountRepo(db *sql.DB, alloc ids.Allocator) *AccountRepo {
	return &AccountRepo{DB: db, IDs: alloc}
}

// NormalizeUsername produces the uniqueness/lookup key for a display name:
// surrounding whitespace trimmed, lowercased.
func NormalizeUsername(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Create inserts a new account. The normalized name is checked first so the
// common duplicate case gets a clean ErrUsernameExists without burning an
// identifier, but the unique index on normalized_name remains the final
// authority: when two concurrent creates race, the loser's insert fails
// with a duplicate-key error and is mapped to the same sentinel.
func (r *AccountRepo) Create(ctx context.Context, displayName, password string, cost int) (model.Account, error) {
	display := strings.TrimSpace(displayName)
	norm := NormalizeUsername(displayName)

	var exists int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM accounts WHERE normalized_name=? LIMIT 1", norm).Scan(&exists)
	if err == nil {
		return model.Account{}, ErrUsernameExists
	}
	if err != sql.ErrNoRows {
		return model.Account{}, err
	}

	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return model.Account{}, err
	}
	id, err := r.IDs.Next(ctx)
	if err != nil {
		return model.Account{}, err
	}

	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO accounts (account_id, display_name, normalized_name, credential_hash) VALUES (?,?,?,?)",
		id, display, norm, hash)
	if err != nil {
		// MySQL 1062: duplicate entry on the unique normalized_name index.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return model.Account{}, ErrUsernameExists
		}
		return model.Account{}, err
	}
	return model.Account{AccountID: id, DisplayName: display, NormalizedName: norm}, nil
}

// GetByUsername fetches an account by its normalized name.
func (r *AccountRepo) GetByUsername(ctx context.Context, name string) (model.Account, error) {
	var a model.Account
	err := r.DB.QueryRowContext(ctx,
		"SELECT account_id, display_name, normalized_name, credential_hash, created_at FROM accounts WHERE normalized_name=? LIMIT 1",
		NormalizeUsername(name)).
		Scan(&a.AccountID, &a.DisplayName, &a.NormalizedName, &a.CredentialHash, &a.CreatedAt)
	return a, err
}

// GetByID fetches an account by its identifier.
func (r *AccountRepo) GetByID(ctx context.Context, accountID string) (model.Account, error) {
	var a model.Account
	err := r.DB.QueryRowContext(ctx,
		"SELECT account_id, display_name, normalized_name, credential_hash, created_at FROM accounts WHERE account_id=? LIMIT 1",
		accountID).
		Scan(&a.AccountID, &a.DisplayName, &a.NormalizedName, &a.CredentialHash, &a.CreatedAt)
	return a, err
}
