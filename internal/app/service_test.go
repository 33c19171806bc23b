package app

import (
	"context"
	"errors"
	"testing"

	"github.com/givebridge/campaign-service/internal/domain"
	"github.com/givebridge/campaign-service/internal/store"
	"github.com/google/uuid"
)

type campaignRepoStub struct {
	store.Repository

	slugTaken bool

	createdCampaign *domain.Campaign
	createErr       error

	ensureProfileCalled bool

	updatedStatus   string
	updateStatusErr error
}

func (s *campaignRepoStub) SlugExists(ctx context.Context, slug string) (bool, error) {
	return s.slugTaken, nil
}

func (s *campaignRepoStub) EnsureProfile(ctx context.Context, userID uuid.UUID, fullName *string) error {
	s.ensureProfileCalled = true
	return nil
}

func (s *campaignRepoStub) CreateCampaign(ctx context.Context, campaign *domain.Campaign) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.createdCampaign = campaign
	return nil
}

func (s *campaignRepoStub) UpdateCampaignStatus(ctx context.Context, campaignID uuid.UUID, status string) error {
	if s.updateStatusErr != nil {
		return s.updateStatusErr
	}
	s.updatedStatus = status
	return nil
}

func validCreateRequest() domain.CreateCampaignRequest {
	return domain.CreateCampaignRequest{
		Title:     "Clean Water For Everyone",
		Story:     "We are drilling boreholes in three villages.",
		Category:  "community",
		GoalCents: 500000,
	}
}

func TestCreateCampaign_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.CreateCampaignRequest)
		wantErr error
	}{
		{
			name:    "blank title",
			mutate:  func(r *domain.CreateCampaignRequest) { r.Title = "   " },
			wantErr: ErrInvalidTitle,
		},
		{
			name:    "blank story",
			mutate:  func(r *domain.CreateCampaignRequest) { r.Story = "" },
			wantErr: ErrInvalidStory,
		},
		{
			name:    "unknown category",
			mutate:  func(r *domain.CreateCampaignRequest) { r.Category = "crypto" },
			wantErr: ErrInvalidCategory,
		},
		{
			name: "missing goal",
			mutate: func(r *domain.CreateCampaignRequest) {
				r.GoalCents = 0
				r.Goal = 0
			},
			wantErr: ErrInvalidGoal,
		},
		{
			name: "malformed deadline",
			mutate: func(r *domain.CreateCampaignRequest) {
				bad := "next tuesday"
				r.Deadline = &bad
			},
			wantErr: ErrInvalidDeadline,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &campaignRepoStub{}
			svc := NewService(repo, nil)

			req := validCreateRequest()
			tt.mutate(&req)

			_, err := svc.CreateCampaign(context.Background(), uuid.New(), req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if repo.createdCampaign != nil {
				t.Fatal("expected no campaign to be persisted")
			}
		})
	}
}

func TestCreateCampaign_EntersPendingReviewWithSlug(t *testing.T) {
	repo := &campaignRepoStub{}
	svc := NewService(repo, nil)
	ownerID := uuid.New()

	campaign, err := svc.CreateCampaign(context.Background(), ownerID, validCreateRequest())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if campaign.Status != domain.CampaignStatusPendingReview {
		t.Fatalf("expected status pending_review, got %q", campaign.Status)
	}
	if campaign.Slug != "clean-water-for-everyone" {
		t.Fatalf("unexpected slug %q", campaign.Slug)
	}
	if campaign.RaisedCents != 0 {
		t.Fatalf("expected zero raised total, got %d", campaign.RaisedCents)
	}
	if campaign.OwnerID != ownerID {
		t.Fatalf("expected owner %s, got %s", ownerID, campaign.OwnerID)
	}
	if !repo.ensureProfileCalled {
		t.Fatal("expected owner profile to be ensured before insert")
	}
}

func TestCreateCampaign_ConvertsMajorUnitGoalByTruncation(t *testing.T) {
	repo := &campaignRepoStub{}
	svc := NewService(repo, nil)

	req := validCreateRequest()
	req.GoalCents = 0
	req.Goal = 1234.567

	campaign, err := svc.CreateCampaign(context.Background(), uuid.New(), req)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if campaign.GoalCents != 123456 {
		t.Fatalf("expected truncated goal 123456, got %d", campaign.GoalCents)
	}
}

func TestCreateCampaign_RejectsTakenSlug(t *testing.T) {
	repo := &campaignRepoStub{slugTaken: true}
	svc := NewService(repo, nil)

	_, err := svc.CreateCampaign(context.Background(), uuid.New(), validCreateRequest())
	if !errors.Is(err, store.ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}
}

func TestModerateCampaign(t *testing.T) {
	tests := []struct {
		name       string
		action     string
		wantStatus string
		wantErr    error
	}{
		{name: "approve", action: "approve", wantStatus: domain.CampaignStatusApproved},
		{name: "reject", action: "reject", wantStatus: domain.CampaignStatusRejected},
		{name: "unknown action", action: "suspend", wantErr: ErrInvalidModeration},
		{name: "blank action", action: "", wantErr: ErrInvalidModeration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &campaignRepoStub{}
			svc := NewService(repo, nil)

			err := svc.ModerateCampaign(context.Background(), domain.ModerateCampaignRequest{
				CampaignID: uuid.New(),
				Action:     tt.action,
			})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if repo.updatedStatus != "" {
					t.Fatal("expected no status update for invalid action")
				}
				return
			}
			if err != nil {
				t.Fatalf("expected nil error, got %v", err)
			}
			if repo.updatedStatus != tt.wantStatus {
				t.Fatalf("expected status %q, got %q", tt.wantStatus, repo.updatedStatus)
			}
		})
	}
}

func TestModerateCampaign_UnknownCampaign(t *testing.T) {
	repo := &campaignRepoStub{updateStatusErr: store.ErrCampaignNotFound}
	svc := NewService(repo, nil)

	err := svc.ModerateCampaign(context.Background(), domain.ModerateCampaignRequest{
		CampaignID: uuid.New(),
		Action:     "approve",
	})
	if !errors.Is(err, store.ErrCampaignNotFound) {
		t.Fatalf("expected ErrCampaignNotFound, got %v", err)
	}
}
