package app

import (
	"context"
	"errors"
	"testing"

	"github.com/givebridge/campaign-service/internal/domain"
	"github.com/givebridge/campaign-service/internal/store"
	"github.com/google/uuid"
)

type reportRepoStub struct {
	store.Repository

	campaignExists bool

	createdReport *domain.Report

	listedLimit int
	reports     []domain.ReportWithMeta

	resolveErr    error
	resolvedCount int
}

func (s *reportRepoStub) CampaignExists(ctx context.Context, campaignID uuid.UUID) (bool, error) {
	return s.campaignExists, nil
}

func (s *reportRepoStub) EnsureProfile(ctx context.Context, userID uuid.UUID, fullName *string) error {
	return nil
}

func (s *reportRepoStub) CreateReport(ctx context.Context, report *domain.Report) error {
	s.createdReport = report
	return nil
}

func (s *reportRepoStub) ListRecentReports(ctx context.Context, limit int) ([]domain.ReportWithMeta, error) {
	s.listedLimit = limit
	return s.reports, nil
}

func (s *reportRepoStub) ResolveReport(ctx context.Context, reportID uuid.UUID) error {
	if s.resolveErr != nil {
		return s.resolveErr
	}
	s.resolvedCount++
	return nil
}

func TestFileReport_UnknownCampaign(t *testing.T) {
	repo := &reportRepoStub{campaignExists: false}
	svc := NewService(repo, nil)

	_, err := svc.FileReport(context.Background(), uuid.New(), domain.FileReportRequest{
		CampaignID: uuid.New(),
		Reason:     "spam",
	})
	if !errors.Is(err, store.ErrCampaignNotFound) {
		t.Fatalf("expected ErrCampaignNotFound, got %v", err)
	}
	if repo.createdReport != nil {
		t.Fatal("expected no report to be created")
	}
}

func TestFileReport_BlankReasonGetsPlaceholder(t *testing.T) {
	tests := []struct {
		name   string
		reason string
		want   string
	}{
		{name: "empty reason", reason: "", want: domain.DefaultReportReason},
		{name: "whitespace reason", reason: "   ", want: domain.DefaultReportReason},
		{name: "real reason kept", reason: "misleading story", want: "misleading story"},
		{name: "reason trimmed", reason: "  fraud  ", want: "fraud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &reportRepoStub{campaignExists: true}
			svc := NewService(repo, nil)
			reporterID := uuid.New()

			report, err := svc.FileReport(context.Background(), reporterID, domain.FileReportRequest{
				CampaignID: uuid.New(),
				Reason:     tt.reason,
			})
			if err != nil {
				t.Fatalf("expected nil error, got %v", err)
			}
			if report.Reason != tt.want {
				t.Fatalf("expected reason %q, got %q", tt.want, report.Reason)
			}
			if report.Resolved {
				t.Fatal("expected new report to be unresolved")
			}
			if report.ReporterID != reporterID {
				t.Fatalf("expected reporter %s, got %s", reporterID, report.ReporterID)
			}
		})
	}
}

func TestFileReport_RepeatReportsAccepted(t *testing.T) {
	repo := &reportRepoStub{campaignExists: true}
	svc := NewService(repo, nil)
	reporterID := uuid.New()
	campaignID := uuid.New()

	first, err := svc.FileReport(context.Background(), reporterID, domain.FileReportRequest{CampaignID: campaignID})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	second, err := svc.FileReport(context.Background(), reporterID, domain.FileReportRequest{CampaignID: campaignID})
	if err != nil {
		t.Fatalf("expected repeat report to be accepted, got %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("expected distinct report ids")
	}
}

func TestListReports_UsesBoundedLimit(t *testing.T) {
	repo := &reportRepoStub{}
	svc := NewService(repo, nil)

	if _, err := svc.ListReports(context.Background()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if repo.listedLimit != maxReportListLimit {
		t.Fatalf("expected limit %d, got %d", maxReportListLimit, repo.listedLimit)
	}
}

func TestResolveReport_IdempotentSuccess(t *testing.T) {
	repo := &reportRepoStub{}
	svc := NewService(repo, nil)
	reportID := uuid.New()

	if err := svc.ResolveReport(context.Background(), reportID); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := svc.ResolveReport(context.Background(), reportID); err != nil {
		t.Fatalf("expected resolving twice to succeed, got %v", err)
	}
	if repo.resolvedCount != 2 {
		t.Fatalf("expected 2 resolve calls, got %d", repo.resolvedCount)
	}
}

func TestResolveReport_UnknownReport(t *testing.T) {
	repo := &reportRepoStub{resolveErr: store.ErrReportNotFound}
	svc := NewService(repo, nil)

	err := svc.ResolveReport(context.Background(), uuid.New())
	if !errors.Is(err, store.ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}
}
