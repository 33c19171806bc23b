/**
 * @description
 * This file contains the core business logic for the campaign-service. The `Service`
 * struct orchestrates the campaign surface: creation into the review queue, public
 * browsing, and the moderator approve/reject action.
 *
 * Key features:
 * - Derives URL slugs from titles and rejects duplicates before insert.
 * - Converts goals supplied in major currency units to cents by truncation.
 * - Publishes campaign status changes to RabbitMQ for asynchronous consumers.
 *
 * @dependencies
 * - context, errors, log, strings, time: Standard Go libraries.
 * - github.com/google/uuid: For UUID generation.
 * - internal/domain, internal/store: For domain models and data access.
 * - pkg/rabbitmq: For event publishing.
 */

package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/givebridge/campaign-service/internal/domain"
	"github.com/givebridge/campaign-service/internal/store"
	"github.com/givebridge/campaign-service/pkg/rabbitmq"
	"github.com/google/uuid"
)

const (
	// EventsExchange is the topic exchange all campaign-service events go to.
	EventsExchange = "givebridge.events"

	defaultCampaignDuration = 30 * 24 * time.Hour
	maxReportListLimit      = 200
)

var (
	ErrInvalidAmount        = errors.New("amount must be a positive number of cents")
	ErrMissingCampaignRef   = errors.New("missing campaign identifier")
	ErrInvalidTitle         = errors.New("title is required")
	ErrInvalidStory         = errors.New("story is required")
	ErrInvalidCategory      = errors.New("unknown campaign category")
	ErrInvalidGoal          = errors.New("goal must be a positive amount")
	ErrInvalidModeration    = errors.New("action must be 'approve' or 'reject'")
	ErrDonationRateLimited  = errors.New("donation rate limit exceeded")
	ErrInvalidDeadline      = errors.New("deadline must be an RFC 3339 timestamp")
)

// campaignCategories is the set of community-focus tags a campaign may carry.
var campaignCategories = map[string]bool{
	"tech":        true,
	"education":   true,
	"healthcare":  true,
	"art_culture": true,
	"environment": true,
	"community":   true,
}

// DonationRateLimiter consumes one unit of a fixed-window rate limit for the
// given scope and subject. A nil limiter disables limiting.
type DonationRateLimiter interface {
	ConsumeRateLimit(ctx context.Context, scope, subject string, limit int, window time.Duration) (count int, retryAfterSeconds int, err error)
}

// Service provides the core business logic for the crowdfunding platform.
type Service struct {
	repo          store.Repository
	eventProducer rabbitmq.Publisher

	donationLimiter        DonationRateLimiter
	donationLimitPerMinute int
}

// NewService creates a new campaign service instance.
func NewService(repo store.Repository, producer rabbitmq.Publisher) *Service {
	return &Service{
		repo:          repo,
		eventProducer: producer,
	}
}

// SetDonationRateLimiter enables distributed rate limiting on donation creation.
func (s *Service) SetDonationRateLimiter(limiter DonationRateLimiter, perMinute int) {
	s.donationLimiter = limiter
	s.donationLimitPerMinute = perMinute
}

// CreateCampaign validates and persists a new campaign into the review queue.
// The goal may arrive pre-converted in cents or in major units; major units
// are truncated to cents, never rounded.
func (s *Service) CreateCampaign(ctx context.Context, ownerID uuid.UUID, req domain.CreateCampaignRequest) (*domain.Campaign, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrInvalidTitle
	}
	if strings.TrimSpace(req.Story) == "" {
		return nil, ErrInvalidStory
	}
	category := strings.TrimSpace(req.Category)
	if !campaignCategories[category] {
		return nil, ErrInvalidCategory
	}

	goalCents := req.GoalCents
	if goalCents == 0 && req.Goal > 0 {
		goalCents = MajorToCents(req.Goal)
	}
	if goalCents <= 0 {
		return nil, ErrInvalidGoal
	}

	deadline := time.Now().Add(defaultCampaignDuration)
	if req.Deadline != nil && strings.TrimSpace(*req.Deadline) != "" {
		parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(*req.Deadline))
		if err != nil {
			return nil, ErrInvalidDeadline
		}
		deadline = parsed
	}

	slug := Slugify(title)
	taken, err := s.repo.SlugExists(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug availability: %w", err)
	}
	if taken {
		return nil, store.ErrSlugTaken
	}

	// The campaign owner may be donating or reporting for the first time too;
	// make sure a profile row exists to satisfy the FK.
	if err := s.repo.EnsureProfile(ctx, ownerID, nil); err != nil {
		return nil, fmt.Errorf("failed to ensure owner profile: %w", err)
	}

	campaign := &domain.Campaign{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Title:        title,
		Slug:         slug,
		Story:        req.Story,
		Category:     category,
		GoalCents:    goalCents,
		RaisedCents:  0,
		Deadline:     deadline,
		HeroImageURL: req.HeroImageURL,
		Status:       domain.CampaignStatusPendingReview,
	}
	if err := s.repo.CreateCampaign(ctx, campaign); err != nil {
		return nil, err
	}

	log.Printf("level=info component=app op=create_campaign campaign_id=%s slug=%s owner_id=%s goal_cents=%d", campaign.ID, campaign.Slug, ownerID, goalCents)
	return campaign, nil
}

// ListCampaigns returns campaign summaries for browsing, optionally filtered
// by category.
func (s *Service) ListCampaigns(ctx context.Context, category string) ([]domain.CampaignSummary, error) {
	return s.repo.ListCampaigns(ctx, strings.TrimSpace(category))
}

// GetCampaignBySlug returns the full campaign record for a detail page.
func (s *Service) GetCampaignBySlug(ctx context.Context, slug string) (*domain.CampaignWithOwner, error) {
	return s.repo.FindCampaignBySlug(ctx, strings.TrimSpace(slug))
}

// ModerateCampaign applies the moderator approve/reject decision and publishes
// the status change.
func (s *Service) ModerateCampaign(ctx context.Context, req domain.ModerateCampaignRequest) error {
	var status string
	switch req.Action {
	case "approve":
		status = domain.CampaignStatusApproved
	case "reject":
		status = domain.CampaignStatusRejected
	default:
		return ErrInvalidModeration
	}

	if err := s.repo.UpdateCampaignStatus(ctx, req.CampaignID, status); err != nil {
		return err
	}
	log.Printf("level=info component=app op=moderate_campaign campaign_id=%s status=%s", req.CampaignID, status)

	s.publishEvent(ctx, "campaign.status.changed", map[string]interface{}{
		"campaign_id": req.CampaignID,
		"status":      status,
		"timestamp":   time.Now().UTC(),
	})
	return nil
}

// publishEvent publishes to the events exchange. Delivery is best-effort: a
// broker failure is logged, never surfaced to the caller, because the store
// write has already committed.
func (s *Service) publishEvent(ctx context.Context, routingKey string, body interface{}) {
	if s.eventProducer == nil {
		return
	}
	if err := s.eventProducer.Publish(ctx, EventsExchange, routingKey, body); err != nil {
		log.Printf("level=warn component=app msg=\"event publish failed\" routing_key=%s err=%v", routingKey, err)
	}
}
