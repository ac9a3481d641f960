package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/shifo-uz/clinicbackend/apperrors"
	"github.com/shifo-uz/clinicbackend/models"
	"github.com/shifo-uz/clinicbackend/repository"
)

// ContentHandler serves the plain content tables: contacts, statistics,
// about-us and additional-info blocks.
type ContentHandler struct {
	Repo repository.ContentRepositoryInterface
}

func NewContentHandler(repo repository.ContentRepositoryInterface) *ContentHandler {
	return &ContentHandler{Repo: repo}
}

// ListContacts returns all contact rows.
func (h *ContentHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.Repo.ListContacts()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "contacts", contacts)
}

type contactPayload struct {
	Type    string `json:"type" validate:"required"`
	Contact string `json:"contact" validate:"required"`
}

// CreateContact inserts a new contact row.
func (h *ContentHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var payload contactPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apperrors.Validationf("invalid request payload"))
		return
	}
	if err := validate.Struct(payload); err != nil {
		writeError(w, apperrors.Validationf("type and contact are required"))
		return
	}

	contact := models.Contact{Type: payload.Type, Contact: payload.Contact}
	if err := h.Repo.CreateContact(&contact); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, "contact created", contact)
}

type contactUpdatePayload struct {
	Type    *string `json:"type"`
	Contact *string `json:"contact"`
}

// UpdateContact applies a partial update to one contact row.
func (h *ContentHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var payload contactUpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apperrors.Validationf("invalid request payload"))
		return
	}

	contact, err := h.Repo.UpdateContact(id, payload.Type, payload.Contact)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "contact updated", contact)
}

// DeleteContact removes one contact row.
func (h *ContentHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Repo.DeleteContact(id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "contact deleted", nil)
}

// ListStatistics returns all statistic rows.
func (h *ContentHandler) ListStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Repo.ListStatistics()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "statistics", stats)
}

type statisticPayload struct {
	TitleUz string `json:"title_uz" validate:"required"`
	TitleRu string `json:"title_ru" validate:"required"`
	TitleEn string `json:"title_en" validate:"required"`
	Number  int64  `json:"number"`
}

// CreateStatistic inserts a new statistic row.
func (h *ContentHandler) CreateStatistic(w http.ResponseWriter, r *http.Request) {
	var payload statisticPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apperrors.Validationf("invalid request payload"))
		return
	}
	if err := validate.Struct(payload); err != nil {
		writeError(w, apperrors.Validationf("all three titles are required"))
		return
	}

	stat := models.Statistic{
		TitleUz: payload.TitleUz,
		TitleRu: payload.TitleRu,
		TitleEn: payload.TitleEn,
		Number:  payload.Number,
	}
	if err := h.Repo.CreateStatistic(&stat); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, "statistic created", stat)
}

// UpdateStatistic applies a partial update to one statistic row.
func (h *ContentHandler) UpdateStatistic(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var payload repository.StatisticUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apperrors.Validationf("invalid request payload"))
		return
	}

	stat, err := h.Repo.UpdateStatistic(id, payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "statistic updated", stat)
}

// DeleteStatistic removes one statistic row.
func (h *ContentHandler) DeleteStatistic(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Repo.DeleteStatistic(id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "statistic deleted", nil)
}

// GetAboutUs returns the about-us block.
func (h *ContentHandler) GetAboutUs(w http.ResponseWriter, r *http.Request) {
	about, err := h.Repo.GetAboutUs()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "about us", about)
}

// UpdateAboutUs applies a partial update to the about-us block.
func (h *ContentHandler) UpdateAboutUs(w http.ResponseWriter, r *http.Request) {
	var payload repository.TextBlockUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apperrors.Validationf("invalid request payload"))
		return
	}

	about, err := h.Repo.UpdateAboutUs(payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "about us updated", about)
}

// GetAdditionalInfo returns the additional-info block.
func (h *ContentHandler) GetAdditionalInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.Repo.GetAdditionalInfo()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "additional info", info)
}

// UpdateAdditionalInfo applies a partial update to the additional-info
// block.
func (h *ContentHandler) UpdateAdditionalInfo(w http.ResponseWriter, r *http.Request) {
	var payload repository.TextBlockUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apperrors.Validationf("invalid request payload"))
		return
	}

	info, err := h.Repo.UpdateAdditionalInfo(payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "additional info updated", info)
}
