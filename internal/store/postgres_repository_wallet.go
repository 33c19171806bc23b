/**
 * @description
 * This file provides the PostgreSQL implementation of the wallet ledger. The
 * wallet holds each user's spendable balance server-side; the donation
 * recorder debits it inside the donation transaction, and these standalone
 * operations back the deposit/withdraw API surface.
 *
 * @dependencies
 * - context: Standard Go library.
 * - github.com/jackc/pgx/v5: The PostgreSQL driver for database operations.
 * - internal/domain: Contains the domain models used for data transfer.
 */

package store

import (
	"context"

	"github.com/givebridge/campaign-service/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// GetOrCreateWalletAccount returns the user's wallet, creating a zero-balance
// account on first use.
func (r *PostgresRepository) GetOrCreateWalletAccount(ctx context.Context, userID uuid.UUID) (*domain.WalletAccount, error) {
	_, err := r.db.Exec(ctx, `
		INSERT INTO wallet_accounts (user_id, balance_cents, created_at, updated_at)
		VALUES ($1, 0, NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING
	`, userID)
	if err != nil {
		return nil, err
	}

	var account domain.WalletAccount
	err = r.db.QueryRow(ctx, `
		SELECT user_id, balance_cents, created_at, updated_at FROM wallet_accounts WHERE user_id = $1
	`, userID).Scan(&account.UserID, &account.BalanceCents, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// CreditWallet performs an atomic credit operation on a user's wallet and
// returns the new balance.
func (r *PostgresRepository) CreditWallet(ctx context.Context, userID uuid.UUID, amountCents int64) (int64, error) {
	var balance int64
	err := r.db.QueryRow(ctx, `
		UPDATE wallet_accounts
		SET balance_cents = balance_cents + $1, updated_at = NOW()
		WHERE user_id = $2
		RETURNING balance_cents
	`, amountCents, userID).Scan(&balance)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, ErrWalletNotFound
		}
		return 0, err
	}
	return balance, nil
}

// DebitWallet performs an atomic debit operation on a user's wallet.
func (r *PostgresRepository) DebitWallet(ctx context.Context, userID uuid.UUID, amountCents int64) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var balance int64
	// Use FOR UPDATE to lock the row, preventing race conditions.
	err = tx.QueryRow(ctx, `SELECT balance_cents FROM wallet_accounts WHERE user_id = $1 FOR UPDATE`, userID).Scan(&balance)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, ErrWalletNotFound
		}
		return 0, err
	}
	if balance < amountCents {
		return 0, ErrInsufficientFunds
	}

	var newBalance int64
	err = tx.QueryRow(ctx, `
		UPDATE wallet_accounts
		SET balance_cents = balance_cents - $1, updated_at = NOW()
		WHERE user_id = $2
		RETURNING balance_cents
	`, amountCents, userID).Scan(&newBalance)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return newBalance, nil
}
