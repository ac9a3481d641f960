package handlers

import (
	"net/http"

	"github.com/shifo-uz/clinicbackend/media"
	"github.com/shifo-uz/clinicbackend/repository"
	"github.com/shifo-uz/clinicbackend/uploads"
	"github.com/shifo-uz/clinicbackend/workers"
)

// PatientHandler serves patient intake records. Create is public (the site's
// intake form); everything else sits behind the access gate.
type PatientHandler struct {
	Repo     repository.PatientRepositoryInterface
	Store    media.Store
	ThumbGen *workers.ThumbnailGenerator
}

func NewPatientHandler(repo repository.PatientRepositoryInterface, store media.Store, thumbGen *workers.ThumbnailGenerator) *PatientHandler {
	return &PatientHandler{Repo: repo, Store: store, ThumbGen: thumbGen}
}

// List returns all patients, newest first.
func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	patients, err := h.Repo.ListAll()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "patients", patients)
}

// Get returns one patient by id.
func (h *PatientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	patient, err := h.Repo.GetByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "patient", patient)
}

// History returns the snapshots of deleted patients.
func (h *PatientHandler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.Repo.ListHistory()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "patient history", history)
}

// Create handles the public intake form; files arrive under patient_media.
func (h *PatientHandler) Create(w http.ResponseWriter, r *http.Request) {
	form, err := uploads.ParseForm(r, "patient", h.Store)
	if err != nil {
		writeError(w, err)
		return
	}

	in := repository.PatientCreateInput{
		FirstName:   form.Value("first_name"),
		SecondName:  form.Value("second_name"),
		ThirdName:   form.Value("third_name"),
		PhoneNumber: form.Value("phone_number"),
		Problem:     form.Value("problem"),
		Files:       uploads.GroupByField(form.Files, uploads.MediaOnlyScheme("patient_media")),
	}

	patient, err := h.Repo.Create(in)
	if err != nil {
		discardUploads(r.Context(), h.Store, form.Files)
		writeError(w, err)
		return
	}

	if h.ThumbGen != nil {
		h.ThumbGen.QueueForMedia(patient.Media)
	}
	writeJSON(w, http.StatusCreated, "patient created", patient)
}

// Edit handles the multipart edit form for a patient.
func (h *PatientHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	form, err := uploads.ParseForm(r, "patient", h.Store)
	if err != nil {
		writeError(w, err)
		return
	}

	in := repository.PatientEditInput{
		FirstName:   form.OptionalValue("first_name"),
		SecondName:  form.OptionalValue("second_name"),
		ThirdName:   form.OptionalValue("third_name"),
		PhoneNumber: form.OptionalValue("phone_number"),
		Problem:     form.OptionalValue("problem"),
		Files:       uploads.GroupByField(form.Files, uploads.MediaOnlyScheme("patient_media")),
	}
	if in.DeleteMediaIDs, err = idListValue(form, "delete_media_ids"); err != nil {
		discardUploads(r.Context(), h.Store, form.Files)
		writeError(w, err)
		return
	}

	patient, err := h.Repo.Edit(id, in)
	if err != nil {
		discardUploads(r.Context(), h.Store, form.Files)
		writeError(w, err)
		return
	}

	if h.ThumbGen != nil {
		h.ThumbGen.QueueForMedia(patient.Media)
	}
	writeJSON(w, http.StatusOK, "patient updated", patient)
}

// Delete removes a patient, snapshotting it into history, then cleans the
// stored files after the transaction commits.
func (h *PatientHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, http.StatusOK, "patient deleted", nil)
}
