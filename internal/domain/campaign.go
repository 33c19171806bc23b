/**
 * @description
 * This file defines the core domain models for the campaign-service.
 * These structs represent the main entities and data transfer objects (DTOs)
 * used throughout the service's business logic, database interactions, and API layers.
 *
 * @notes
 * - Amounts are stored as `int64` to represent the value in the smallest currency
 *   unit (cents), which avoids floating-point inaccuracies with money figures.
 * - A campaign's `raised_cents` is a denormalized aggregate of its donations,
 *   maintained incrementally by the store with an atomic increment statement.
 */

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Campaign lifecycle statuses. Only approved campaigns accept donations.
const (
	CampaignStatusDraft         = "draft"
	CampaignStatusPendingReview = "pending_review"
	CampaignStatusApproved      = "approved"
	CampaignStatusRejected      = "rejected"
	CampaignStatusSuspended     = "suspended"
	CampaignStatusCompleted     = "completed"
)

// Campaign represents a fundraising project with a goal and a running total.
// This struct maps directly to the `campaigns` table in the database.
type Campaign struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Story        string    `json:"story"`
	Category     string    `json:"category"`
	GoalCents    int64     `json:"goal_cents"`
	RaisedCents  int64     `json:"raised_cents"`
	Deadline     time.Time `json:"deadline"`
	HeroImageURL *string   `json:"hero_image_url"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CampaignSummary is the list-view subset of a campaign, joined with its owner.
type CampaignSummary struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Category     string    `json:"category"`
	GoalCents    int64     `json:"goal_cents"`
	RaisedCents  int64     `json:"raised_cents"`
	HeroImageURL *string   `json:"hero_image_url"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	Owner        *Profile  `json:"owner,omitempty"`
}

// CampaignWithOwner is the detail view of a campaign joined with its owner profile.
type CampaignWithOwner struct {
	Campaign
	Owner *Profile `json:"owner"`
}

// CampaignFunding is the minimal projection the donation recorder needs:
// the aggregate row's identity, current total, and lifecycle status.
type CampaignFunding struct {
	ID          uuid.UUID `json:"id"`
	RaisedCents int64     `json:"raised_cents"`
	Status      string    `json:"status"`
}

// CreateCampaignRequest is the DTO for incoming campaign creation API requests.
// The goal may be supplied pre-converted in cents, or in major units via `goal`
// (floored to cents, never rounded).
type CreateCampaignRequest struct {
	Title        string  `json:"title"`
	Story        string  `json:"story"`
	Category     string  `json:"category"`
	GoalCents    int64   `json:"goal_cents"`
	Goal         float64 `json:"goal"`
	Deadline     *string `json:"deadline,omitempty"`
	HeroImageURL *string `json:"hero_image_url,omitempty"`
}

// ModerateCampaignRequest is the DTO for the admin approve/reject action.
type ModerateCampaignRequest struct {
	CampaignID uuid.UUID `json:"campaign_id"`
	Action     string    `json:"action"` // 'approve' or 'reject'
}
