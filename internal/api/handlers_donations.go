/**
 * @description
 * This file contains the HTTP handlers for recording and listing donations.
 * Recording accepts both authenticated and guest donations; the authenticated
 * caller's identity, when present, always overrides any donor id in the body.
 *
 * @dependencies
 * - encoding/json, log, net/http: Standard Go libraries.
 * - github.com/go-chi/chi/v5: URL parameter extraction.
 * - internal/app, internal/domain, internal/store: For service logic, models, and custom errors.
 */

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/givebridge/campaign-service/internal/app"
	"github.com/givebridge/campaign-service/internal/domain"
	"github.com/givebridge/campaign-service/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// RecordDonationHandler handles donation submissions against a campaign
// identified by slug or id in the request body.
func (h *CampaignHandlers) RecordDonationHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.RecordDonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("level=warn component=api endpoint=record_donation outcome=reject reason=invalid_json err=%v", err)
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	// A verified bearer token is the only accepted donor identity. Guest
	// requests cannot claim a donor id through the body.
	req.DonorID = optionalUserID(r)

	rateSubject := clientIP(r)
	if req.DonorID != nil {
		rateSubject = req.DonorID.String()
	}

	result, err := h.service.RecordDonation(r.Context(), req, rateSubject)
	if err != nil {
		log.Printf("level=warn component=api endpoint=record_donation outcome=failed slug=%s err=%v", req.Slug, err)
		switch {
		case errors.Is(err, store.ErrCampaignNotFound):
			h.writeError(w, http.StatusNotFound, "Campaign not found")
		case errors.Is(err, store.ErrCampaignNotAccepting):
			h.writeError(w, http.StatusBadRequest, "Campaign is not accepting donations")
		case errors.Is(err, store.ErrWalletNotFound):
			h.writeError(w, http.StatusPreconditionFailed, "Wallet account not found. Please fund your wallet first.")
		case errors.Is(err, store.ErrInsufficientFunds):
			h.writeError(w, http.StatusPaymentRequired, "Insufficient wallet balance")
		case errors.Is(err, app.ErrInvalidAmount), errors.Is(err, app.ErrMissingCampaignRef):
			h.writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, app.ErrDonationRateLimited):
			h.writeError(w, http.StatusTooManyRequests, "Too many donations. Please try again shortly.")
		default:
			h.writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":               true,
		"donation_id":      result.DonationID,
		"new_raised_cents": result.NewRaisedCents,
	})
}

// ListDonationsHandler returns a campaign's donations newest first. Anonymous
// donations never expose the donor. The campaign is identified by the slug
// path segment, or by a slug / campaign_id query parameter.
func (h *CampaignHandlers) ListDonationsHandler(w http.ResponseWriter, r *http.Request) {
	req := domain.RecordDonationRequest{Slug: chi.URLParam(r, "slug")}
	if req.Slug == "" {
		req.Slug = r.URL.Query().Get("slug")
	}
	if req.Slug == "" {
		if campaignID, err := uuid.Parse(r.URL.Query().Get("campaign_id")); err == nil {
			req.CampaignID = &campaignID
		}
	}

	donations, err := h.service.ListDonations(r.Context(), req)
	if err != nil {
		if errors.Is(err, store.ErrCampaignNotFound) {
			h.writeError(w, http.StatusNotFound, "Campaign not found")
			return
		}
		if errors.Is(err, app.ErrMissingCampaignRef) {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("level=error component=api endpoint=list_donations outcome=failed slug=%s err=%v", req.Slug, err)
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"donations": donations})
}
