/**
 * @description
 * This file provides the PostgreSQL implementation of the `Repository` interface
 * for campaigns and donations. It contains all the necessary SQL queries to
 * interact with the `campaigns`, `donations`, and `profiles` tables.
 *
 * Key behaviors:
 * - Campaign funding lookups resolve by id or exact-match slug and map
 *   pgx.ErrNoRows to ErrCampaignNotFound.
 * - RecordDonation runs inside a single transaction so the wallet debit, the
 *   aggregate increment, and the ledger insert commit or roll back together.
 * - The aggregate increment is a single atomic
 *   `UPDATE ... SET raised_cents = raised_cents + $1` statement guarded by
 *   status, so concurrent donations cannot lose updates.
 *
 * @dependencies
 * - context, errors: Standard Go libraries.
 * - github.com/jackc/pgx/v5: The PostgreSQL driver for database operations.
 * - internal/domain: Contains the domain models used for data transfer.
 */

package store

import (
	"context"
	"errors"

	"github.com/givebridge/campaign-service/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrCampaignNotFound      = errors.New("campaign not found")
	ErrCampaignNotAccepting  = errors.New("campaign not accepting donations")
	ErrSlugTaken             = errors.New("campaign slug already in use")
	ErrReportNotFound        = errors.New("report not found")
	ErrProfileNotFound       = errors.New("profile not found")
	ErrWalletNotFound        = errors.New("wallet account not found")
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrInvalidStatusMutation = errors.New("invalid campaign status")
)

// uniqueViolationCode is the Postgres error code for unique constraint violations.
const uniqueViolationCode = "23505"

// PostgresRepository is a concrete implementation of the Repository interface for PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new instance of PostgresRepository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateCampaign inserts a new campaign row. New campaigns always enter the
// review queue; the caller sets status before handing the record over.
func (r *PostgresRepository) CreateCampaign(ctx context.Context, campaign *domain.Campaign) error {
	query := `
		INSERT INTO campaigns (id, owner_id, title, slug, story, category, goal_cents, raised_cents, deadline, hero_image_url, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		campaign.ID,
		campaign.OwnerID,
		campaign.Title,
		campaign.Slug,
		campaign.Story,
		campaign.Category,
		campaign.GoalCents,
		campaign.RaisedCents,
		campaign.Deadline,
		campaign.HeroImageURL,
		campaign.Status,
	).Scan(&campaign.CreatedAt, &campaign.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return ErrSlugTaken
		}
		return err
	}
	return nil
}

// ListCampaigns returns campaign summaries joined with owner profiles,
// newest first, optionally filtered by category.
func (r *PostgresRepository) ListCampaigns(ctx context.Context, category string) ([]domain.CampaignSummary, error) {
	query := `
		SELECT c.id, c.title, c.slug, c.category, c.goal_cents, c.raised_cents, c.hero_image_url, c.status, c.created_at,
		       p.user_id, p.full_name, p.avatar_url
		FROM campaigns c
		LEFT JOIN profiles p ON p.user_id = c.owner_id
	`
	args := []interface{}{}
	if category != "" && category != "all" {
		query += ` WHERE c.category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY c.created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []domain.CampaignSummary{}
	for rows.Next() {
		var s domain.CampaignSummary
		var ownerID *uuid.UUID
		var fullName, avatarURL *string
		if err := rows.Scan(
			&s.ID, &s.Title, &s.Slug, &s.Category, &s.GoalCents, &s.RaisedCents,
			&s.HeroImageURL, &s.Status, &s.CreatedAt,
			&ownerID, &fullName, &avatarURL,
		); err != nil {
			return nil, err
		}
		if ownerID != nil {
			s.Owner = &domain.Profile{UserID: *ownerID, FullName: fullName, AvatarURL: avatarURL}
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// FindCampaignBySlug retrieves a full campaign record with its owner profile.
func (r *PostgresRepository) FindCampaignBySlug(ctx context.Context, slug string) (*domain.CampaignWithOwner, error) {
	var c domain.CampaignWithOwner
	var ownerID *uuid.UUID
	var fullName, avatarURL *string
	query := `
		SELECT c.id, c.owner_id, c.title, c.slug, c.story, c.category, c.goal_cents, c.raised_cents,
		       c.deadline, c.hero_image_url, c.status, c.created_at, c.updated_at,
		       p.user_id, p.full_name, p.avatar_url
		FROM campaigns c
		LEFT JOIN profiles p ON p.user_id = c.owner_id
		WHERE c.slug = $1
	`
	err := r.db.QueryRow(ctx, query, slug).Scan(
		&c.ID, &c.OwnerID, &c.Title, &c.Slug, &c.Story, &c.Category, &c.GoalCents, &c.RaisedCents,
		&c.Deadline, &c.HeroImageURL, &c.Status, &c.CreatedAt, &c.UpdatedAt,
		&ownerID, &fullName, &avatarURL,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	if ownerID != nil {
		c.Owner = &domain.Profile{UserID: *ownerID, FullName: fullName, AvatarURL: avatarURL}
	}
	return &c, nil
}

// FindCampaignFundingByID resolves the donation recorder's projection by campaign id.
func (r *PostgresRepository) FindCampaignFundingByID(ctx context.Context, campaignID uuid.UUID) (*domain.CampaignFunding, error) {
	var f domain.CampaignFunding
	query := `SELECT id, raised_cents, status FROM campaigns WHERE id = $1`
	err := r.db.QueryRow(ctx, query, campaignID).Scan(&f.ID, &f.RaisedCents, &f.Status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	return &f, nil
}

// FindCampaignFundingBySlug resolves the donation recorder's projection by exact slug.
func (r *PostgresRepository) FindCampaignFundingBySlug(ctx context.Context, slug string) (*domain.CampaignFunding, error) {
	var f domain.CampaignFunding
	query := `SELECT id, raised_cents, status FROM campaigns WHERE slug = $1`
	err := r.db.QueryRow(ctx, query, slug).Scan(&f.ID, &f.RaisedCents, &f.Status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	return &f, nil
}

// SlugExists reports whether any campaign already holds the given slug.
func (r *PostgresRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM campaigns WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}

// CampaignExists reports whether a campaign with the given id exists.
func (r *PostgresRepository) CampaignExists(ctx context.Context, campaignID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM campaigns WHERE id = $1)`, campaignID).Scan(&exists)
	return exists, err
}

// validCampaignStatuses is the closed set of lifecycle statuses the
// campaigns.status column accepts.
var validCampaignStatuses = map[string]bool{
	domain.CampaignStatusDraft:         true,
	domain.CampaignStatusPendingReview: true,
	domain.CampaignStatusApproved:      true,
	domain.CampaignStatusRejected:      true,
	domain.CampaignStatusSuspended:     true,
	domain.CampaignStatusCompleted:     true,
}

// UpdateCampaignStatus sets a campaign's lifecycle status (moderator action).
func (r *PostgresRepository) UpdateCampaignStatus(ctx context.Context, campaignID uuid.UUID, status string) error {
	if !validCampaignStatuses[status] {
		return ErrInvalidStatusMutation
	}
	result, err := r.db.Exec(ctx, `UPDATE campaigns SET status = $1, updated_at = NOW() WHERE id = $2`, status, campaignID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrCampaignNotFound
	}
	return nil
}

// RecordDonation commits one donation atomically. The increment statement is
// guarded by status = 'approved' so the aggregate can never move for a
// campaign that is not accepting funds; a zero-row update is then
// disambiguated into not-found versus wrong-status.
func (r *PostgresRepository) RecordDonation(ctx context.Context, donation *domain.Donation, debitDonorWallet bool) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if debitDonorWallet && donation.DonorID != nil {
		var balance int64
		// Lock the wallet row for the duration of the transaction.
		err = tx.QueryRow(ctx, `SELECT balance_cents FROM wallet_accounts WHERE user_id = $1 FOR UPDATE`, *donation.DonorID).Scan(&balance)
		if err != nil {
			if err == pgx.ErrNoRows {
				return 0, ErrWalletNotFound
			}
			return 0, err
		}
		if balance < donation.AmountCents {
			return 0, ErrInsufficientFunds
		}
		_, err = tx.Exec(ctx, `UPDATE wallet_accounts SET balance_cents = balance_cents - $1, updated_at = NOW() WHERE user_id = $2`, donation.AmountCents, *donation.DonorID)
		if err != nil {
			return 0, err
		}
	}

	var newRaised int64
	err = tx.QueryRow(ctx, `
		UPDATE campaigns
		SET raised_cents = raised_cents + $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING raised_cents
	`, donation.AmountCents, donation.CampaignID, domain.CampaignStatusApproved).Scan(&newRaised)
	if err != nil {
		if err == pgx.ErrNoRows {
			var status string
			statusErr := tx.QueryRow(ctx, `SELECT status FROM campaigns WHERE id = $1`, donation.CampaignID).Scan(&status)
			if statusErr == pgx.ErrNoRows {
				return 0, ErrCampaignNotFound
			}
			if statusErr != nil {
				return 0, statusErr
			}
			return 0, ErrCampaignNotAccepting
		}
		return 0, err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO donations (id, campaign_id, donor_id, amount_cents, is_anonymous, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at
	`, donation.ID, donation.CampaignID, donation.DonorID, donation.AmountCents, donation.IsAnonymous).Scan(&donation.CreatedAt)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return newRaised, nil
}

// ListDonationsByCampaignID returns a campaign's donations newest first, each
// joined with the donor profile when one can be resolved. The anonymity
// projection (nulling the donor for anonymous rows) is applied by the service
// layer so the invariant is enforced regardless of what is stored.
func (r *PostgresRepository) ListDonationsByCampaignID(ctx context.Context, campaignID uuid.UUID) ([]domain.DonationView, error) {
	query := `
		SELECT d.id, d.amount_cents, d.is_anonymous, d.created_at,
		       p.user_id, p.full_name, p.avatar_url
		FROM donations d
		LEFT JOIN profiles p ON p.user_id = d.donor_id
		WHERE d.campaign_id = $1
		ORDER BY d.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := []domain.DonationView{}
	for rows.Next() {
		var v domain.DonationView
		var donorID *uuid.UUID
		var fullName, avatarURL *string
		if err := rows.Scan(&v.ID, &v.AmountCents, &v.IsAnonymous, &v.CreatedAt, &donorID, &fullName, &avatarURL); err != nil {
			return nil, err
		}
		if donorID != nil {
			v.Donor = &domain.Profile{UserID: *donorID, FullName: fullName, AvatarURL: avatarURL}
		}
		views = append(views, v)
	}
	return views, rows.Err()
}
