/**
 * @description
 * This file contains the moderation queue logic: filing abuse reports against
 * campaigns, the enriched admin listing, and one-way idempotent resolution.
 *
 * @dependencies
 * - context, log, strings, time: Standard Go libraries.
 * - github.com/google/uuid: For UUID generation.
 * - internal/domain, internal/store: For domain models and data access.
 */

package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/givebridge/campaign-service/internal/domain"
	"github.com/givebridge/campaign-service/internal/store"
	"github.com/google/uuid"
)

// FileReport records an abuse report from an authenticated user against a
// campaign. A blank reason is stored as the placeholder text. Repeat reports
// are accepted; the queue does not dedupe.
func (s *Service) FileReport(ctx context.Context, reporterID uuid.UUID, req domain.FileReportRequest) (*domain.Report, error) {
	exists, err := s.repo.CampaignExists(ctx, req.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to check campaign: %w", err)
	}
	if !exists {
		return nil, store.ErrCampaignNotFound
	}

	// The reporter may never have touched the platform before; satisfy the FK.
	if err := s.repo.EnsureProfile(ctx, reporterID, nil); err != nil {
		return nil, fmt.Errorf("failed to ensure reporter profile: %w", err)
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = domain.DefaultReportReason
	}

	report := &domain.Report{
		ID:         uuid.New(),
		CampaignID: req.CampaignID,
		ReporterID: reporterID,
		Reason:     reason,
		Resolved:   false,
	}
	if err := s.repo.CreateReport(ctx, report); err != nil {
		return nil, err
	}

	log.Printf("level=info component=app op=file_report report_id=%s campaign_id=%s reporter_id=%s", report.ID, req.CampaignID, reporterID)

	s.publishEvent(ctx, "report.filed", map[string]interface{}{
		"report_id":   report.ID,
		"campaign_id": req.CampaignID,
		"timestamp":   time.Now().UTC(),
	})
	return report, nil
}

// ListReports returns the moderation inbox: recent reports enriched with
// best-effort campaign and reporter metadata.
func (s *Service) ListReports(ctx context.Context) ([]domain.ReportWithMeta, error) {
	return s.repo.ListRecentReports(ctx, maxReportListLimit)
}

// ResolveReport marks a report resolved. Resolving an already-resolved report
// is a no-op success; only an unknown id fails.
func (s *Service) ResolveReport(ctx context.Context, reportID uuid.UUID) error {
	if err := s.repo.ResolveReport(ctx, reportID); err != nil {
		return err
	}
	log.Printf("level=info component=app op=resolve_report report_id=%s", reportID)
	return nil
}
