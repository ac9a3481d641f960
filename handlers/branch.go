package handlers

import (
	"net/http"

	"github.com/shifo-uz/clinicbackend/media"
	"github.com/shifo-uz/clinicbackend/models"
	"github.com/shifo-uz/clinicbackend/repository"
	"github.com/shifo-uz/clinicbackend/uploads"
	"github.com/shifo-uz/clinicbackend/workers"
)

// BranchHandler serves the branch aggregate: branches with their services,
// techs and media.
type BranchHandler struct {
	Repo     repository.BranchRepositoryInterface
	Store    media.Store
	ThumbGen *workers.ThumbnailGenerator
}

func NewBranchHandler(repo repository.BranchRepositoryInterface, store media.Store, thumbGen *workers.ThumbnailGenerator) *BranchHandler {
	return &BranchHandler{Repo: repo, Store: store, ThumbGen: thumbGen}
}

// List returns all branches.
func (h *BranchHandler) List(w http.ResponseWriter, r *http.Request) {
	branches, err := h.Repo.ListAll()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "branches", branches)
}

// Get returns one branch by id.
func (h *BranchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	branch, err := h.Repo.GetByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "branch", branch)
}

// Create handles the multipart create form. Service and tech entries arrive
// as JSON arrays; their files arrive under service_media__<key> and
// tech_media__<key> fields.
func (h *BranchHandler) Create(w http.ResponseWriter, r *http.Request) {
	form, err := uploads.ParseForm(r, "branch", h.Store)
	if err != nil {
		writeError(w, err)
		return
	}

	in := repository.BranchCreateInput{
		Title:       form.Value("title"),
		Description: form.Value("description"),
		Files:       uploads.GroupByField(form.Files, uploads.BranchScheme()),
	}
	if err := decodeJSONValue(form, "services", &in.Services); err != nil {
		discardUploads(r.Context(), h.Store, form.Files)
		writeError(w, err)
		return
	}
	if err := decodeJSONValue(form, "techs", &in.Techs); err != nil {
		discardUploads(r.Context(), h.Store, form.Files)
		writeError(w, err)
		return
	}

	branch, err := h.Repo.Create(in)
	if err != nil {
		discardUploads(r.Context(), h.Store, form.Files)
		writeError(w, err)
		return
	}

	h.queueThumbnails(branch)
	writeJSON(w, http.StatusCreated, "branch created", branch)
}

// Edit handles the multipart edit form: partial scalar updates, media and
// child delete lists, child upserts, and new files, applied atomically.
func (h *BranchHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	form, err := uploads.ParseForm(r, "branch", h.Store)
	if err != nil {
		writeError(w, err)
		return
	}

	in := repository.BranchEditInput{
		Title:       form.OptionalValue("title"),
		Description: form.OptionalValue("description"),
		Files:       uploads.GroupByField(form.Files, uploads.BranchScheme()),
	}

	fail := func(err error) {
		discardUploads(r.Context(), h.Store, form.Files)
		writeError(w, err)
	}

	if in.DeleteMediaIDs, err = idListValue(form, "delete_media_ids"); err != nil {
		fail(err)
		return
	}
	if in.DeleteServiceMediaIDs, err = idListValue(form, "delete_service_media_ids"); err != nil {
		fail(err)
		return
	}
	if in.DeleteTechMediaIDs, err = idListValue(form, "delete_tech_media_ids"); err != nil {
		fail(err)
		return
	}
	if in.DeleteServiceIDs, err = idListValue(form, "delete_service_ids"); err != nil {
		fail(err)
		return
	}
	if in.DeleteTechIDs, err = idListValue(form, "delete_tech_ids"); err != nil {
		fail(err)
		return
	}
	if err := decodeJSONValue(form, "services", &in.Services); err != nil {
		fail(err)
		return
	}
	if err := decodeJSONValue(form, "techs", &in.Techs); err != nil {
		fail(err)
		return
	}

	branch, err := h.Repo.Edit(id, in)
	if err != nil {
		fail(err)
		return
	}

	h.queueThumbnails(branch)
	writeJSON(w, http.StatusOK, "branch updated", branch)
}

// Delete removes a branch and everything under it, then cleans the stored
// files after the transaction commits.
func (h *BranchHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, http.StatusOK, "branch deleted", nil)
}

func (h *BranchHandler) queueThumbnails(branch *models.Branch) {
	if h.ThumbGen == nil {
		return
	}
	h.ThumbGen.QueueForMedia(branch.Media)
	for _, svc := range branch.Services {
		h.ThumbGen.QueueForMedia(svc.Media)
	}
	for _, tech := range branch.Techs {
		h.ThumbGen.QueueForMedia(tech.Media)
	}
}
