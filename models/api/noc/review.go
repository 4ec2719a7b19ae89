package nocapimodels

import (
	"strings"
	"time"

	"noc-portal-backend/models"
	dbmodels "noc-portal-backend/models/db"
)

type ReviewData struct {
	Feedback string `json:"feedback"` // комментарий согласующего, обязателен
}

func (v ReviewData) Validate() error {
	if strings.TrimSpace(v.Feedback) == "" {
		return models.NewValidationError("отсутствует комментарий к решению")
	}
	return nil
}

type ReviewView struct {
	ID           string                `json:"id"`
	Stage        models.ReviewStage    `json:"stage"`
	Decision     models.ReviewDecision `json:"decision"`
	Feedback     string                `json:"feedback"`
	ReviewerID   string                `json:"reviewer_id"`
	ReviewerName string                `json:"reviewer_name"`
	DecidedAt    time.Time             `json:"decided_at"`
}

func ReviewConvert(rec dbmodels.NocReview) ReviewView {
	reviewerName := ""
	if rec.Reviewer != nil {
		reviewerName = rec.Reviewer.GetFullName()
	}
	return ReviewView{
		ID:           rec.ID,
		Stage:        rec.Stage,
		Decision:     rec.Decision,
		Feedback:     rec.Feedback,
		ReviewerID:   rec.ReviewerID,
		ReviewerName: reviewerName,
		DecidedAt:    rec.DecidedAt,
	}
}

type HistoryView struct {
	ID           string           `json:"id"`
	RequestID    string           `json:"request_id"`
	ReviewerID   string           `json:"reviewer_id"`
	ReviewerName string           `json:"reviewer_name"`
	Action       models.NocAction `json:"action"`
	FromStatus   models.NocStatus `json:"from_status"`
	ToStatus     models.NocStatus `json:"to_status"`
	Feedback     string           `json:"feedback"`
	CreatedAt    time.Time        `json:"created_at"`
}

func HistoryConvert(rec dbmodels.NocHistory) HistoryView {
	reviewerName := ""
	if rec.Reviewer != nil {
		reviewerName = rec.Reviewer.GetFullName()
	}
	return HistoryView{
		ID:           rec.ID,
		RequestID:    rec.RequestID,
		ReviewerID:   rec.ReviewerID,
		ReviewerName: reviewerName,
		Action:       rec.Action,
		FromStatus:   rec.FromStatus,
		ToStatus:     rec.ToStatus,
		Feedback:     rec.Feedback,
		CreatedAt:    rec.CreatedAt,
	}
}
