/**
 * @description
 * This file defines the `Repository` interface, which specifies the contract for all
 * data access operations required by the campaign-service. By defining an interface,
 * we decouple the application's business logic from the specific database implementation
 * (e.g., PostgreSQL), making the code more modular and easier to test.
 *
 * @dependencies
 * - context: Standard Go library.
 * - github.com/google/uuid: For UUID generation and handling.
 * - internal/domain: For the service's domain models.
 */

package store

import (
	"context"

	"github.com/givebridge/campaign-service/internal/domain"
	"github.com/google/uuid"
)

// Repository defines the set of methods for interacting with the database.
type Repository interface {
	// Campaign methods
	CreateCampaign(ctx context.Context, campaign *domain.Campaign) error
	ListCampaigns(ctx context.Context, category string) ([]domain.CampaignSummary, error)
	FindCampaignBySlug(ctx context.Context, slug string) (*domain.CampaignWithOwner, error)
	// Funding lookups resolve the minimal aggregate projection the donation
	// recorder needs. Slug resolution is an exact match; no match is
	// ErrCampaignNotFound, never an empty result.
	FindCampaignFundingByID(ctx context.Context, campaignID uuid.UUID) (*domain.CampaignFunding, error)
	FindCampaignFundingBySlug(ctx context.Context, slug string) (*domain.CampaignFunding, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	CampaignExists(ctx context.Context, campaignID uuid.UUID) (bool, error)
	UpdateCampaignStatus(ctx context.Context, campaignID uuid.UUID, status string) error

	// Donation methods
	// RecordDonation commits one donation in a single transaction: an optional
	// wallet debit for the donor, an atomic increment of the campaign's
	// raised_cents guarded by status, and the ledger insert. Any failing leg
	// rolls back the whole donation. Returns the new aggregate total.
	RecordDonation(ctx context.Context, donation *domain.Donation, debitDonorWallet bool) (int64, error)
	ListDonationsByCampaignID(ctx context.Context, campaignID uuid.UUID) ([]domain.DonationView, error)

	// Report queue methods
	CreateReport(ctx context.Context, report *domain.Report) error
	ListRecentReports(ctx context.Context, limit int) ([]domain.ReportWithMeta, error)
	ResolveReport(ctx context.Context, reportID uuid.UUID) error

	// Profile methods
	EnsureProfile(ctx context.Context, userID uuid.UUID, fullName *string) error
	FindProfileByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)

	// Wallet methods
	GetOrCreateWalletAccount(ctx context.Context, userID uuid.UUID) (*domain.WalletAccount, error)
	CreditWallet(ctx context.Context, userID uuid.UUID, amountCents int64) (int64, error)
	DebitWallet(ctx context.Context, userID uuid.UUID, amountCents int64) (int64, error)
}
