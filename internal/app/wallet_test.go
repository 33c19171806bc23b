package app

import (
	"context"
	"errors"
	"testing"

	"github.com/givebridge/campaign-service/internal/domain"
	"github.com/givebridge/campaign-service/internal/store"
	"github.com/google/uuid"
)

type walletRepoStub struct {
	store.Repository

	balance int64
}

func (s *walletRepoStub) EnsureProfile(ctx context.Context, userID uuid.UUID, fullName *string) error {
	return nil
}

func (s *walletRepoStub) GetOrCreateWalletAccount(ctx context.Context, userID uuid.UUID) (*domain.WalletAccount, error) {
	return &domain.WalletAccount{UserID: userID, BalanceCents: s.balance}, nil
}

func (s *walletRepoStub) CreditWallet(ctx context.Context, userID uuid.UUID, amountCents int64) (int64, error) {
	s.balance += amountCents
	return s.balance, nil
}

func (s *walletRepoStub) DebitWallet(ctx context.Context, userID uuid.UUID, amountCents int64) (int64, error) {
	if amountCents > s.balance {
		return 0, store.ErrInsufficientFunds
	}
	s.balance -= amountCents
	return s.balance, nil
}

func TestGetWallet_CreatesZeroBalanceAccount(t *testing.T) {
	repo := &walletRepoStub{}
	svc := NewService(repo, nil)
	userID := uuid.New()

	wallet, err := svc.GetWallet(context.Background(), userID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if wallet.UserID != userID {
		t.Fatalf("expected wallet for %s, got %s", userID, wallet.UserID)
	}
	if wallet.BalanceCents != 0 {
		t.Fatalf("expected zero balance, got %d", wallet.BalanceCents)
	}
}

func TestDeposit(t *testing.T) {
	tests := []struct {
		name        string
		amount      int64
		wantBalance int64
		wantErr     error
	}{
		{name: "credits balance", amount: 5000, wantBalance: 5000},
		{name: "rejects zero", amount: 0, wantErr: ErrInvalidAmount},
		{name: "rejects negative", amount: -100, wantErr: ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &walletRepoStub{}
			svc := NewService(repo, nil)

			balance, err := svc.Deposit(context.Background(), uuid.New(), tt.amount)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if repo.balance != 0 {
					t.Fatalf("expected balance unchanged, got %d", repo.balance)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected nil error, got %v", err)
			}
			if balance != tt.wantBalance {
				t.Fatalf("expected balance %d, got %d", tt.wantBalance, balance)
			}
		})
	}
}

func TestWithdraw_RejectsOverdraft(t *testing.T) {
	repo := &walletRepoStub{balance: 1000}
	svc := NewService(repo, nil)

	_, err := svc.Withdraw(context.Background(), uuid.New(), 5000)
	if !errors.Is(err, store.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if repo.balance != 1000 {
		t.Fatalf("expected balance unchanged at 1000, got %d", repo.balance)
	}
}

func TestWithdraw_DebitsBalance(t *testing.T) {
	repo := &walletRepoStub{balance: 5000}
	svc := NewService(repo, nil)

	balance, err := svc.Withdraw(context.Background(), uuid.New(), 3000)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if balance != 2000 {
		t.Fatalf("expected balance 2000, got %d", balance)
	}
}
