package handlers

import (
	"net/http"
	"strconv"

	"github.com/shifo-uz/clinicbackend/apperrors"
	"github.com/shifo-uz/clinicbackend/media"
	"github.com/shifo-uz/clinicbackend/models"
	"github.com/shifo-uz/clinicbackend/repository"
	"github.com/shifo-uz/clinicbackend/uploads"
	"github.com/shifo-uz/clinicbackend/workers"
)

// DoctorHandler serves the doctor aggregate: doctors with their awards and
// media.
type DoctorHandler struct {
	Repo     repository.DoctorRepositoryInterface
	Store    media.Store
	ThumbGen *workers.ThumbnailGenerator
}

func NewDoctorHandler(repo repository.DoctorRepositoryInterface, store media.Store, thumbGen *workers.ThumbnailGenerator) *DoctorHandler {
	return &DoctorHandler{Repo: repo, Store: store, ThumbGen: thumbGen}
}

// List returns all doctors, optionally filtered by ?branch_id=.
func (h *DoctorHandler) List(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("branch_id"); raw != "" {
		branchID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			writeError(w, apperrors.Validationf("invalid branch_id %q", raw))
			return
		}
		doctors, err := h.Repo.ListByBranch(uint(branchID))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, "doctors", doctors)
		return
	}

	doctors, err := h.Repo.ListAll()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "doctors", doctors)
}

// Get returns one doctor by id.
func (h *DoctorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	doctor, err := h.Repo.GetByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "doctor", doctor)
}

// Create handles the multipart create form. Award entries arrive as a JSON
// array; their files arrive under award_media__<key> fields.
func (h *DoctorHandler) Create(w http.ResponseWriter, r *http.Request) {
	form, err := uploads.ParseForm(r, "doctor", h.Store)
	if err != nil {
		writeError(w, err)
		return
	}

	fail := func(err error) {
		discardUploads(r.Context(), h.Store, form.Files)
		writeError(w, err)
	}

	branchID, err := strconv.ParseUint(form.Value("branch_id"), 10, 32)
	if err != nil {
		fail(apperrors.Validationf("branch_id must be a number"))
		return
	}

	in := repository.DoctorCreateInput{
		FirstName:   form.Value("first_name"),
		SecondName:  form.Value("second_name"),
		ThirdName:   form.Value("third_name"),
		Description: form.Value("description"),
		BranchID:    uint(branchID),
		Files:       uploads.GroupByField(form.Files, uploads.DoctorScheme()),
	}
	if err := decodeJSONValue(form, "awards", &in.Awards); err != nil {
		fail(err)
		return
	}

	doctor, err := h.Repo.Create(in)
	if err != nil {
		fail(err)
		return
	}

	h.queueThumbnails(doctor)
	writeJSON(w, http.StatusCreated, "doctor created", doctor)
}

// Edit handles the multipart edit form for a doctor.
func (h *DoctorHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	form, err := uploads.ParseForm(r, "doctor", h.Store)
	if err != nil {
		writeError(w, err)
		return
	}

	fail := func(err error) {
		discardUploads(r.Context(), h.Store, form.Files)
		writeError(w, err)
	}

	in := repository.DoctorEditInput{
		FirstName:   form.OptionalValue("first_name"),
		SecondName:  form.OptionalValue("second_name"),
		ThirdName:   form.OptionalValue("third_name"),
		Description: form.OptionalValue("description"),
		Files:       uploads.GroupByField(form.Files, uploads.DoctorScheme()),
	}
	if raw := form.OptionalValue("branch_id"); raw != nil {
		branchID, err := strconv.ParseUint(*raw, 10, 32)
		if err != nil {
			fail(apperrors.Validationf("branch_id must be a number"))
			return
		}
		bid := uint(branchID)
		in.BranchID = &bid
	}

	if in.DeleteMediaIDs, err = idListValue(form, "delete_media_ids"); err != nil {
		fail(err)
		return
	}
	if in.DeleteAwardMediaIDs, err = idListValue(form, "delete_award_media_ids"); err != nil {
		fail(err)
		return
	}
	if in.DeleteAwardIDs, err = idListValue(form, "delete_award_ids"); err != nil {
		fail(err)
		return
	}
	if err := decodeJSONValue(form, "awards", &in.Awards); err != nil {
		fail(err)
		return
	}

	doctor, err := h.Repo.Edit(id, in)
	if err != nil {
		fail(err)
		return
	}

	h.queueThumbnails(doctor)
	writeJSON(w, http.StatusOK, "doctor updated", doctor)
}

// Delete removes a doctor and its awards, then cleans the stored files after
// the transaction commits.
func (h *DoctorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	urls, err := h.Repo.Delete(id)
	if err != nil {
		writeError(w, err)
		return
	}
	removeStoredFiles(r.Context(), h.Store, urls)
	writeJSON(w, http.StatusOK, "doctor deleted", nil)
}

func (h *DoctorHandler) queueThumbnails(doctor *models.Doctor) {
	if h.ThumbGen == nil {
		return
	}
	h.ThumbGen.QueueForMedia(doctor.Media)
	for _, award := range doctor.Awards {
		h.ThumbGen.QueueForMedia(award.Media)
	}
}
