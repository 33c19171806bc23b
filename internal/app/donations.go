/**
 * @description
 * This file contains the donation recorder and query service. Recording a
 * donation resolves the campaign by id or slug, validates the amount and the
 * campaign's lifecycle status, and commits the wallet debit, aggregate
 * increment, and ledger insert as one repository transaction. Listing projects
 * donations for display and is the single place the anonymity rule is applied.
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

// RecordDonation validates and commits one donation, returning the campaign's
// new running total. rateSubject identifies the caller for rate limiting
// (client IP or donor id); it may be empty when limiting is disabled.
func (s *Service) RecordDonation(ctx context.Context, req domain.RecordDonationRequest, rateSubject string) (*domain.RecordDonationResult, error) {
	if req.AmountCents <= 0 {
		return nil, ErrInvalidAmount
	}

	funding, err := s.resolveCampaignFunding(ctx, req)
	if err != nil {
		return nil, err
	}
	if funding.Status != domain.CampaignStatusApproved {
		return nil, store.ErrCampaignNotAccepting
	}

	if err := s.consumeDonationRateLimit(ctx, funding.ID, rateSubject); err != nil {
		return nil, err
	}

	donation := &domain.Donation{
		ID:          uuid.New(),
		CampaignID:  funding.ID,
		DonorID:     req.DonorID,
		AmountCents: req.AmountCents,
		IsAnonymous: req.IsAnonymous,
	}

	// Guest donations carry no wallet custody; only known donors are debited.
	debitWallet := req.DonorID != nil

	newRaised, err := s.repo.RecordDonation(ctx, donation, debitWallet)
	if err != nil {
		return nil, err
	}

	log.Printf("level=info component=app op=record_donation campaign_id=%s donation_id=%s amount_cents=%d anonymous=%t new_raised_cents=%d",
		funding.ID, donation.ID, req.AmountCents, req.IsAnonymous, newRaised)

	s.publishEvent(ctx, "donation.recorded", map[string]interface{}{
		"donation_id":      donation.ID,
		"campaign_id":      funding.ID,
		"amount_cents":     req.AmountCents,
		"is_anonymous":     req.IsAnonymous,
		"new_raised_cents": newRaised,
		"timestamp":        time.Now().UTC(),
	})

	return &domain.RecordDonationResult{DonationID: donation.ID, NewRaisedCents: newRaised}, nil
}

// ListDonations returns a campaign's donations newest first with the
// anonymity projection applied: an anonymous donation never exposes its donor,
// even when the underlying row retains a donor reference.
func (s *Service) ListDonations(ctx context.Context, req domain.RecordDonationRequest) ([]domain.DonationView, error) {
	funding, err := s.resolveCampaignFunding(ctx, req)
	if err != nil {
		return nil, err
	}

	views, err := s.repo.ListDonationsByCampaignID(ctx, funding.ID)
	if err != nil {
		return nil, err
	}

	for i := range views {
		if views[i].IsAnonymous {
			views[i].Donor = nil
		}
	}
	return views, nil
}

// resolveCampaignFunding resolves the campaign aggregate by direct id or by
// exact-match slug. Exactly one identifier must be supplied.
func (s *Service) resolveCampaignFunding(ctx context.Context, req domain.RecordDonationRequest) (*domain.CampaignFunding, error) {
	if req.CampaignID != nil {
		return s.repo.FindCampaignFundingByID(ctx, *req.CampaignID)
	}
	if slug := strings.TrimSpace(req.Slug); slug != "" {
		return s.repo.FindCampaignFundingBySlug(ctx, slug)
	}
	return nil, ErrMissingCampaignRef
}

// consumeDonationRateLimit enforces the per-campaign donation rate limit when
// a limiter is configured. Limiter errors fail open: a Redis outage must not
// block donations.
func (s *Service) consumeDonationRateLimit(ctx context.Context, campaignID uuid.UUID, subject string) error {
	if s.donationLimiter == nil || s.donationLimitPerMinute <= 0 || subject == "" {
		return nil
	}
	scopedSubject := fmt.Sprintf("%s:%s", campaignID, subject)
	count, _, err := s.donationLimiter.ConsumeRateLimit(ctx, "donation_create", scopedSubject, s.donationLimitPerMinute, time.Minute)
	if err != nil {
		log.Printf("level=warn component=app msg=\"donation rate limiter unavailable; allowing request\" err=%v", err)
		return nil
	}
	if count > s.donationLimitPerMinute {
		return ErrDonationRateLimited
	}
	return nil
}
