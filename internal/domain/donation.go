package domain

import (
	"time"

	"github.com/google/uuid"
)

// Donation is a single recorded contribution toward a campaign's total.
// Rows are immutable once written; there is no edit or delete path.
type Donation struct {
	ID          uuid.UUID  `json:"id"`
	CampaignID  uuid.UUID  `json:"campaign_id"`
	DonorID     *uuid.UUID `json:"donor_id,omitempty"`
	AmountCents int64      `json:"amount_cents"`
	IsAnonymous bool       `json:"is_anonymous"`
	CreatedAt   time.Time  `json:"created_at"`
}

// DonationView is the display projection of a donation. The donor field is
// nil whenever the donation is anonymous or the donor profile cannot be
// resolved, regardless of what the underlying row stores.
type DonationView struct {
	ID          uuid.UUID `json:"id"`
	AmountCents int64     `json:"amount_cents"`
	IsAnonymous bool      `json:"is_anonymous"`
	CreatedAt   time.Time `json:"created_at"`
	Donor       *Profile  `json:"donor"`
}

// RecordDonationRequest is the DTO for incoming donation API requests.
// Exactly one of Slug/CampaignID must resolve to a campaign. DonorID is
// optional; its absence means a guest donation.
type RecordDonationRequest struct {
	Slug        string     `json:"slug,omitempty"`
	CampaignID  *uuid.UUID `json:"campaign_id,omitempty"`
	AmountCents int64      `json:"amount_cents"`
	IsAnonymous bool       `json:"is_anonymous"`
	DonorID     *uuid.UUID `json:"donor_id,omitempty"`
}

// RecordDonationResult carries the post-donation aggregate total back to the caller.
type RecordDonationResult struct {
	DonationID     uuid.UUID `json:"donation_id"`
	NewRaisedCents int64     `json:"new_raised_cents"`
}
