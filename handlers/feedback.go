package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/shifo-uz/clinicbackend/apperrors"
	"github.com/shifo-uz/clinicbackend/models"
	"github.com/shifo-uz/clinicbackend/repository"
)

var validate = validator.New()

// FeedbackHandler serves visitor feedback: public submission and listing,
// admin moderation.
type FeedbackHandler struct {
	Repo repository.FeedbackRepositoryInterface
}

func NewFeedbackHandler(repo repository.FeedbackRepositoryInterface) *FeedbackHandler {
	return &FeedbackHandler{Repo: repo}
}

type feedbackPayload struct {
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email" validate:"omitempty,email"`
	FullName    string `json:"full_name" validate:"required"`
	Content     string `json:"content" validate:"required"`
}

// Create accepts a public feedback submission; it starts unapproved.
func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload feedbackPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apperrors.Validationf("invalid request payload"))
		return
	}
	if err := validate.Struct(payload); err != nil {
		writeError(w, apperrors.Validationf("invalid feedback: %v", err))
		return
	}

	feedback := models.Feedback{
		PhoneNumber: payload.PhoneNumber,
		Email:       payload.Email,
		FullName:    payload.FullName,
		Content:     payload.Content,
	}
	if err := h.Repo.Create(&feedback); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, "feedback submitted", feedback)
}

// ListApproved returns the publicly visible feedback.
func (h *FeedbackHandler) ListApproved(w http.ResponseWriter, r *http.Request) {
	feedbacks, err := h.Repo.ListApproved()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "feedback", feedbacks)
}

// ListAll returns every feedback entry for moderation.
func (h *FeedbackHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	feedbacks, err := h.Repo.ListAll()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "feedback", feedbacks)
}

type approvalPayload struct {
	IsApproved *bool `json:"is_approved" validate:"required"`
}

// SetApproval approves or rejects one feedback entry.
func (h *FeedbackHandler) SetApproval(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var payload approvalPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apperrors.Validationf("invalid request payload"))
		return
	}
	if err := validate.Struct(payload); err != nil {
		writeError(w, apperrors.Validationf("is_approved is required"))
		return
	}

	feedback, err := h.Repo.SetApproval(id, *payload.IsApproved)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "feedback updated", feedback)
}

// Delete removes one feedback entry.
func (h *FeedbackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Repo.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "feedback deleted", nil)
}
