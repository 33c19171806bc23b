/**
 * @description
 * This file contains the server-side wallet operations backing the donation
 * flow. Balances live in the store, not the client: deposits and withdrawals
 * mutate the ledger here, and the donation recorder debits it transactionally.
 *
 * @dependencies
 * - context, log: Standard Go libraries.
 * - github.com/google/uuid: For UUID handling.
 * - internal/domain: For domain models.
 */

package app

import (
	"context"
	"fmt"
	"log"

	"github.com/givebridge/campaign-service/internal/domain"
	"github.com/google/uuid"
)

// GetWallet returns the caller's wallet, creating a zero-balance account on
// first use.
func (s *Service) GetWallet(ctx context.Context, userID uuid.UUID) (*domain.WalletAccount, error) {
	if err := s.repo.EnsureProfile(ctx, userID, nil); err != nil {
		return nil, fmt.Errorf("failed to ensure profile: %w", err)
	}
	return s.repo.GetOrCreateWalletAccount(ctx, userID)
}

// Deposit credits the caller's wallet and returns the new balance.
func (s *Service) Deposit(ctx context.Context, userID uuid.UUID, amountCents int64) (int64, error) {
	if amountCents <= 0 {
		return 0, ErrInvalidAmount
	}
	if _, err := s.GetWallet(ctx, userID); err != nil {
		return 0, err
	}
	balance, err := s.repo.CreditWallet(ctx, userID, amountCents)
	if err != nil {
		return 0, err
	}
	log.Printf("level=info component=app op=wallet_deposit user_id=%s amount_cents=%d balance_cents=%d", userID, amountCents, balance)
	return balance, nil
}

// Withdraw debits the caller's wallet and returns the new balance. The debit
// fails without mutating the balance when it exceeds the available funds.
func (s *Service) Withdraw(ctx context.Context, userID uuid.UUID, amountCents int64) (int64, error) {
	if amountCents <= 0 {
		return 0, ErrInvalidAmount
	}
	if _, err := s.GetWallet(ctx, userID); err != nil {
		return 0, err
	}
	balance, err := s.repo.DebitWallet(ctx, userID, amountCents)
	if err != nil {
		return 0, err
	}
	log.Printf("level=info component=app op=wallet_withdraw user_id=%s amount_cents=%d balance_cents=%d", userID, amountCents, balance)
	return balance, nil
}
