/**
 * @description
 * This file contains the HTTP handlers for the abuse report queue: filing a
 * report against a campaign, and the admin-only moderation views for listing
 * and resolving reports.
 *
 * @dependencies
 * - encoding/json, log, net/http: Standard Go libraries.
 * - internal/domain, internal/store: For models and custom errors.
 */

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/givebridge/campaign-service/internal/domain"
	"github.com/givebridge/campaign-service/internal/store"
	"github.com/google/uuid"
)

// FileReportHandler handles authenticated abuse report submissions.
func (h *CampaignHandlers) FileReportHandler(w http.ResponseWriter, r *http.Request) {
	reporterID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	var req domain.FileReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("level=warn component=api endpoint=file_report outcome=reject reason=invalid_json err=%v", err)
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if req.CampaignID == uuid.Nil {
		h.writeError(w, http.StatusBadRequest, "campaign_id is required")
		return
	}

	report, err := h.service.FileReport(r.Context(), reporterID, req)
	if err != nil {
		log.Printf("level=warn component=api endpoint=file_report outcome=failed campaign_id=%s err=%v", req.CampaignID, err)
		if errors.Is(err, store.ErrCampaignNotFound) {
			h.writeError(w, http.StatusNotFound, "Campaign not found")
			return
		}
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusCreated, report)
}

// ListReportsHandler returns the moderation queue, newest first, with
// best-effort campaign and reporter metadata attached.
func (h *CampaignHandlers) ListReportsHandler(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.ListReports(r.Context())
	if err != nil {
		log.Printf("level=error component=api endpoint=list_reports outcome=failed err=%v", err)
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"reports": reports})
}

// ResolveReportHandler marks a report as resolved. Resolving an already
// resolved report succeeds; only an unknown id is an error.
func (h *CampaignHandlers) ResolveReportHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ReportID uuid.UUID `json:"report_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if req.ReportID == uuid.Nil {
		h.writeError(w, http.StatusBadRequest, "report_id is required")
		return
	}

	if err := h.service.ResolveReport(r.Context(), req.ReportID); err != nil {
		if errors.Is(err, store.ErrReportNotFound) {
			h.writeError(w, http.StatusNotFound, "Report not found")
			return
		}
		log.Printf("level=error component=api endpoint=resolve_report outcome=failed report_id=%s err=%v", req.ReportID, err)
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
