/**
 * @description
 * This file contains the HTTP handlers for the campaign-service's campaign
 * endpoints, plus the shared response helpers all handlers use. Handlers parse
 * incoming requests, call the appropriate methods on the application service,
 * and write the HTTP response. They act as the bridge between the web layer
 * and the business logic layer.
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
	"net"
	"net/http"
	"strings"

	"github.com/givebridge/campaign-service/internal/app"
	"github.com/givebridge/campaign-service/internal/domain"
	"github.com/givebridge/campaign-service/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CampaignHandlers holds the application service that handlers will use.
type CampaignHandlers struct {
	service *app.Service
}

// NewCampaignHandlers creates a new instance of CampaignHandlers.
func NewCampaignHandlers(service *app.Service) *CampaignHandlers {
	return &CampaignHandlers{service: service}
}

// CreateCampaignHandler handles authenticated campaign submissions. New
// campaigns always enter the moderation queue in pending_review.
func (h *CampaignHandlers) CreateCampaignHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	var req domain.CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("level=warn component=api endpoint=create_campaign outcome=reject reason=invalid_json err=%v", err)
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	campaign, err := h.service.CreateCampaign(r.Context(), ownerID, req)
	if err != nil {
		log.Printf("level=warn component=api endpoint=create_campaign outcome=failed owner_id=%s err=%v", ownerID, err)
		if errors.Is(err, store.ErrSlugTaken) {
			h.writeError(w, http.StatusConflict, "A campaign with a similar title already exists")
			return
		}
		if errors.Is(err, app.ErrInvalidTitle) || errors.Is(err, app.ErrInvalidStory) ||
			errors.Is(err, app.ErrInvalidCategory) || errors.Is(err, app.ErrInvalidGoal) ||
			errors.Is(err, app.ErrInvalidDeadline) {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusCreated, campaign)
}

// ListCampaignsHandler returns approved campaigns, optionally filtered by category.
func (h *CampaignHandlers) ListCampaignsHandler(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))

	campaigns, err := h.service.ListCampaigns(r.Context(), category)
	if err != nil {
		log.Printf("level=error component=api endpoint=list_campaigns outcome=failed err=%v", err)
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, campaigns)
}

// GetCampaignBySlugHandler returns the detail view of a single campaign.
func (h *CampaignHandlers) GetCampaignBySlugHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	campaign, err := h.service.GetCampaignBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, store.ErrCampaignNotFound) {
			h.writeError(w, http.StatusNotFound, "Campaign not found")
			return
		}
		log.Printf("level=error component=api endpoint=get_campaign outcome=failed slug=%s err=%v", slug, err)
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, campaign)
}

// ModerateCampaignHandler handles the admin approve/reject decision for a
// pending campaign.
func (h *CampaignHandlers) ModerateCampaignHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.ModerateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := h.service.ModerateCampaign(r.Context(), req); err != nil {
		log.Printf("level=warn component=api endpoint=moderate_campaign outcome=failed campaign_id=%s err=%v", req.CampaignID, err)
		if errors.Is(err, store.ErrCampaignNotFound) {
			h.writeError(w, http.StatusNotFound, "Campaign not found")
			return
		}
		if errors.Is(err, app.ErrInvalidModeration) {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// requireUserID extracts and parses the authenticated caller's UUID from the
// request context, writing the error response itself on failure.
func (h *CampaignHandlers) requireUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userIDStr, ok := GetAuthUserID(r.Context())
	if !ok {
		h.writeError(w, http.StatusInternalServerError, "Could not get user ID from context")
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		log.Printf("level=warn component=api outcome=reject reason=invalid_user_id user_id=%s", userIDStr)
		h.writeError(w, http.StatusBadRequest, "Invalid user ID format")
		return uuid.Nil, false
	}
	return userID, true
}

// optionalUserID returns the caller's UUID when an authenticated subject is
// present in the context, or nil for guest requests.
func optionalUserID(r *http.Request) *uuid.UUID {
	userIDStr, ok := GetAuthUserID(r.Context())
	if !ok {
		return nil
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil
	}
	return &userID
}

// clientIP extracts the originating client address for rate-limit scoping.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// writeJSON is a helper for writing JSON responses.
func (h *CampaignHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError is a helper for writing JSON error responses.
func (h *CampaignHandlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
