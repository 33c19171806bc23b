package domain

import (
	"time"

	"github.com/google/uuid"
)

// WalletAccount is a user's internal balance ledger. Donations from a known
// donor are funded by debiting this account inside the donation transaction.
type WalletAccount struct {
	UserID       uuid.UUID `json:"user_id"`
	BalanceCents int64     `json:"balance_cents"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// WalletMutationRequest is the DTO for deposit and withdraw API requests.
type WalletMutationRequest struct {
	AmountCents int64 `json:"amount_cents"`
}
