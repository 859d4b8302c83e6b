package model

import "time"

// Account is a customer identity record. NormalizedName is the trimmed,
// lowercased form of DisplayName and is the uniqueness and lookup key;
// DisplayName keeps the original casing for presentation. Accounts are
// created once and never updated or deleted.
type Account struct {
	AccountID      string    `json:"account_id"`
	DisplayName    string    `json:"display_name"`
	NormalizedName string    `json:"-"`
	CredentialHash string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}
