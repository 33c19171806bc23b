/**
 * @description
 * This file provides the PostgreSQL implementation of the moderation queue:
 * report filing, the enriched admin listing, and one-way resolution. It also
 * holds the profile upsert/lookup queries the report and campaign surfaces
 * depend on.
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

// CreateReport appends a report to the moderation queue. Repeat reports from
// the same reporter against the same campaign are allowed; there is no dedupe.
func (r *PostgresRepository) CreateReport(ctx context.Context, report *domain.Report) error {
	query := `
		INSERT INTO reports (id, campaign_id, reporter_id, reason, resolved, created_at)
		VALUES ($1, $2, $3, $4, FALSE, NOW())
		RETURNING created_at
	`
	return r.db.QueryRow(ctx, query, report.ID, report.CampaignID, report.ReporterID, report.Reason).Scan(&report.CreatedAt)
}

// ListRecentReports returns the newest reports joined with best-effort
// campaign and reporter display metadata. A report whose campaign or reporter
// row has since disappeared is still returned with the corresponding side nil.
func (r *PostgresRepository) ListRecentReports(ctx context.Context, limit int) ([]domain.ReportWithMeta, error) {
	if limit <= 0 {
		limit = 200
	}
	query := `
		SELECT rp.id, rp.campaign_id, rp.reporter_id, rp.reason, rp.resolved, rp.created_at,
		       c.id, c.title, c.slug,
		       p.user_id, p.full_name
		FROM reports rp
		LEFT JOIN campaigns c ON c.id = rp.campaign_id
		LEFT JOIN profiles p ON p.user_id = rp.reporter_id
		ORDER BY rp.created_at DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := []domain.ReportWithMeta{}
	for rows.Next() {
		var rep domain.ReportWithMeta
		var campaignID *uuid.UUID
		var campaignTitle, campaignSlug *string
		var reporterID *uuid.UUID
		var reporterName *string
		if err := rows.Scan(
			&rep.ID, &rep.CampaignID, &rep.ReporterID, &rep.Reason, &rep.Resolved, &rep.CreatedAt,
			&campaignID, &campaignTitle, &campaignSlug,
			&reporterID, &reporterName,
		); err != nil {
			return nil, err
		}
		if campaignID != nil {
			rep.Campaign = &domain.ReportCampaignMeta{ID: *campaignID, Title: *campaignTitle, Slug: *campaignSlug}
		}
		if reporterID != nil {
			rep.Reporter = &domain.ReportReporterMeta{UserID: *reporterID, FullName: reporterName}
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

// ResolveReport flips a report to resolved. The write is unconditional, so
// resolving an already-resolved report succeeds and simply confirms the state;
// only an unknown id is an error.
func (r *PostgresRepository) ResolveReport(ctx context.Context, reportID uuid.UUID) error {
	result, err := r.db.Exec(ctx, `UPDATE reports SET resolved = TRUE WHERE id = $1`, reportID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrReportNotFound
	}
	return nil
}

// EnsureProfile creates a profile row for the user if one does not exist yet.
// Existing rows are left untouched.
func (r *PostgresRepository) EnsureProfile(ctx context.Context, userID uuid.UUID, fullName *string) error {
	query := `
		INSERT INTO profiles (user_id, full_name, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, userID, fullName)
	return err
}

// FindProfileByUserID retrieves a user's profile.
func (r *PostgresRepository) FindProfileByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	var p domain.Profile
	query := `SELECT user_id, full_name, avatar_url, created_at FROM profiles WHERE user_id = $1`
	err := r.db.QueryRow(ctx, query, userID).Scan(&p.UserID, &p.FullName, &p.AvatarURL, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}
