package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultReportReason is stored when a reporter submits a blank reason.
const DefaultReportReason = "No reason provided"

// Report is an abuse report filed against a campaign. Resolution is one-way:
// resolved flips from false to true and never back.
type Report struct {
	ID         uuid.UUID `json:"id"`
	CampaignID uuid.UUID `json:"campaign_id"`
	ReporterID uuid.UUID `json:"reporter_id"`
	Reason     string    `json:"reason"`
	Resolved   bool      `json:"resolved"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReportCampaignMeta is the campaign metadata joined onto a moderation-queue row.
type ReportCampaignMeta struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Slug  string    `json:"slug"`
}

// ReportReporterMeta is the reporter metadata joined onto a moderation-queue row.
type ReportReporterMeta struct {
	UserID   uuid.UUID `json:"user_id"`
	FullName *string   `json:"full_name"`
}

// ReportWithMeta is a report enriched with best-effort campaign and reporter
// display metadata. Either side is nil when the referenced row no longer
// exists; the report itself is always returned.
type ReportWithMeta struct {
	Report
	Campaign *ReportCampaignMeta `json:"campaign"`
	Reporter *ReportReporterMeta `json:"reporter"`
}

// FileReportRequest is the DTO for incoming report submissions. The reporter
// identity comes from the authenticated caller, not the body.
type FileReportRequest struct {
	CampaignID uuid.UUID `json:"campaign_id"`
	Reason     string    `json:"reason"`
}
