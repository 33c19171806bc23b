package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/givebridge/campaign-service/internal/domain"
	"github.com/givebridge/campaign-service/internal/store"
	"github.com/google/uuid"
)

type donationRepoStub struct {
	store.Repository

	mu sync.Mutex

	funding     *domain.CampaignFunding
	fundingErr  error
	raisedCents int64

	recordCalled    bool
	recordCount     int
	lastDebitWallet bool
	recordErr       error

	donations []domain.DonationView
}

func (s *donationRepoStub) FindCampaignFundingByID(ctx context.Context, campaignID uuid.UUID) (*domain.CampaignFunding, error) {
	if s.fundingErr != nil {
		return nil, s.fundingErr
	}
	return s.funding, nil
}

func (s *donationRepoStub) FindCampaignFundingBySlug(ctx context.Context, slug string) (*domain.CampaignFunding, error) {
	if s.fundingErr != nil {
		return nil, s.fundingErr
	}
	return s.funding, nil
}

func (s *donationRepoStub) RecordDonation(ctx context.Context, donation *domain.Donation, debitDonorWallet bool) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recordCalled = true
	s.recordCount++
	s.lastDebitWallet = debitDonorWallet
	if s.recordErr != nil {
		return 0, s.recordErr
	}
	s.raisedCents += donation.AmountCents
	return s.raisedCents, nil
}

func (s *donationRepoStub) ListDonationsByCampaignID(ctx context.Context, campaignID uuid.UUID) ([]domain.DonationView, error) {
	return s.donations, nil
}

func approvedFunding(raised int64) *domain.CampaignFunding {
	return &domain.CampaignFunding{
		ID:          uuid.New(),
		RaisedCents: raised,
		Status:      domain.CampaignStatusApproved,
	}
}

func TestRecordDonation_RejectsNonPositiveAmount(t *testing.T) {
	repo := &donationRepoStub{funding: approvedFunding(0)}
	svc := NewService(repo, nil)

	for _, amount := range []int64{0, -100} {
		_, err := svc.RecordDonation(context.Background(), domain.RecordDonationRequest{
			Slug:        "water",
			AmountCents: amount,
		}, "")
		if !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("amount=%d: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
	if repo.recordCalled {
		t.Fatal("expected no donation to be recorded for invalid amounts")
	}
}

func TestRecordDonation_RequiresCampaignReference(t *testing.T) {
	repo := &donationRepoStub{funding: approvedFunding(0)}
	svc := NewService(repo, nil)

	_, err := svc.RecordDonation(context.Background(), domain.RecordDonationRequest{
		AmountCents: 1000,
	}, "")
	if !errors.Is(err, ErrMissingCampaignRef) {
		t.Fatalf("expected ErrMissingCampaignRef, got %v", err)
	}
}

func TestRecordDonation_RejectsNonApprovedCampaign(t *testing.T) {
	statuses := []string{
		domain.CampaignStatusDraft,
		domain.CampaignStatusPendingReview,
		domain.CampaignStatusRejected,
		domain.CampaignStatusSuspended,
		domain.CampaignStatusCompleted,
	}

	for _, status := range statuses {
		repo := &donationRepoStub{funding: &domain.CampaignFunding{
			ID:     uuid.New(),
			Status: status,
		}}
		svc := NewService(repo, nil)

		_, err := svc.RecordDonation(context.Background(), domain.RecordDonationRequest{
			Slug:        "water",
			AmountCents: 1000,
		}, "")
		if !errors.Is(err, store.ErrCampaignNotAccepting) {
			t.Fatalf("status=%s: expected ErrCampaignNotAccepting, got %v", status, err)
		}
		if repo.recordCalled {
			t.Fatalf("status=%s: expected no donation to be recorded", status)
		}
	}
}

func TestRecordDonation_UnknownCampaignPropagatesNotFound(t *testing.T) {
	repo := &donationRepoStub{fundingErr: store.ErrCampaignNotFound}
	svc := NewService(repo, nil)

	_, err := svc.RecordDonation(context.Background(), domain.RecordDonationRequest{
		Slug:        "missing",
		AmountCents: 1000,
	}, "")
	if !errors.Is(err, store.ErrCampaignNotFound) {
		t.Fatalf("expected ErrCampaignNotFound, got %v", err)
	}
}

func TestRecordDonation_GuestSkipsWalletDebit(t *testing.T) {
	repo := &donationRepoStub{funding: approvedFunding(500), raisedCents: 500}
	svc := NewService(repo, nil)

	result, err := svc.RecordDonation(context.Background(), domain.RecordDonationRequest{
		Slug:        "water",
		AmountCents: 1000,
	}, "")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if repo.lastDebitWallet {
		t.Fatal("expected guest donation to skip the wallet debit")
	}
	if result.NewRaisedCents != 1500 {
		t.Fatalf("expected new total 1500, got %d", result.NewRaisedCents)
	}
}

func TestRecordDonation_KnownDonorDebitsWallet(t *testing.T) {
	repo := &donationRepoStub{funding: approvedFunding(0)}
	svc := NewService(repo, nil)
	donorID := uuid.New()

	_, err := svc.RecordDonation(context.Background(), domain.RecordDonationRequest{
		Slug:        "water",
		AmountCents: 2500,
		DonorID:     &donorID,
	}, donorID.String())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !repo.lastDebitWallet {
		t.Fatal("expected known donor donation to debit the wallet")
	}
}

func TestRecordDonation_WalletFailureLeavesTotalUnchanged(t *testing.T) {
	repo := &donationRepoStub{
		funding:     approvedFunding(500),
		raisedCents: 500,
		recordErr:   store.ErrInsufficientFunds,
	}
	svc := NewService(repo, nil)
	donorID := uuid.New()

	_, err := svc.RecordDonation(context.Background(), domain.RecordDonationRequest{
		Slug:        "water",
		AmountCents: 100000,
		DonorID:     &donorID,
	}, donorID.String())
	if !errors.Is(err, store.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if repo.raisedCents != 500 {
		t.Fatalf("expected total to remain 500, got %d", repo.raisedCents)
	}
}

func TestRecordDonation_ConcurrentDonationsAllLandInTotal(t *testing.T) {
	repo := &donationRepoStub{funding: approvedFunding(0)}
	svc := NewService(repo, nil)

	const donors = 50
	const amount = int64(200)

	var wg sync.WaitGroup
	errs := make(chan error, donors)
	for i := 0; i < donors; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RecordDonation(context.Background(), domain.RecordDonationRequest{
				Slug:        "water",
				AmountCents: amount,
			}, "")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	}
	if repo.recordCount != donors {
		t.Fatalf("expected %d recorded donations, got %d", donors, repo.recordCount)
	}
	if repo.raisedCents != donors*amount {
		t.Fatalf("expected total %d, got %d", donors*amount, repo.raisedCents)
	}
}

func TestListDonations_HidesAnonymousDonors(t *testing.T) {
	donorName := "Ada Obi"
	donor := &domain.Profile{UserID: uuid.New(), FullName: &donorName}

	repo := &donationRepoStub{
		funding: approvedFunding(0),
		donations: []domain.DonationView{
			{ID: uuid.New(), AmountCents: 1000, IsAnonymous: false, Donor: donor},
			{ID: uuid.New(), AmountCents: 2000, IsAnonymous: true, Donor: donor},
			{ID: uuid.New(), AmountCents: 3000, IsAnonymous: false, Donor: nil},
		},
	}
	svc := NewService(repo, nil)

	views, err := svc.ListDonations(context.Background(), domain.RecordDonationRequest{Slug: "water"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("expected 3 donations, got %d", len(views))
	}
	if views[0].Donor == nil {
		t.Fatal("expected public donation to keep its donor")
	}
	if views[1].Donor != nil {
		t.Fatal("expected anonymous donation to hide its donor")
	}
	if views[2].Donor != nil {
		t.Fatal("expected unresolvable donor to stay nil")
	}
}

type stubLimiter struct {
	count int
	err   error
}

func (l stubLimiter) ConsumeRateLimit(ctx context.Context, scope, subject string, limit int, window time.Duration) (int, int, error) {
	if l.err != nil {
		return 0, 0, l.err
	}
	return l.count, 0, nil
}

func TestRecordDonation_RateLimitExceeded(t *testing.T) {
	repo := &donationRepoStub{funding: approvedFunding(0)}
	svc := NewService(repo, nil)
	svc.SetDonationRateLimiter(stubLimiter{count: 61}, 60)

	_, err := svc.RecordDonation(context.Background(), domain.RecordDonationRequest{
		Slug:        "water",
		AmountCents: 1000,
	}, "203.0.113.9")
	if !errors.Is(err, ErrDonationRateLimited) {
		t.Fatalf("expected ErrDonationRateLimited, got %v", err)
	}
	if repo.recordCalled {
		t.Fatal("expected rate-limited donation to be rejected before recording")
	}
}

func TestRecordDonation_RateLimiterOutageFailsOpen(t *testing.T) {
	repo := &donationRepoStub{funding: approvedFunding(0)}
	svc := NewService(repo, nil)
	svc.SetDonationRateLimiter(stubLimiter{err: errors.New("redis unavailable")}, 60)

	_, err := svc.RecordDonation(context.Background(), domain.RecordDonationRequest{
		Slug:        "water",
		AmountCents: 1000,
	}, "203.0.113.9")
	if err != nil {
		t.Fatalf("expected limiter outage to fail open, got %v", err)
	}
	if !repo.recordCalled {
		t.Fatal("expected donation to be recorded despite limiter outage")
	}
}
