package handlers

import (
	"net/http"

	"github.com/shifo-uz/clinicbackend/media"
	"github.com/shifo-uz/clinicbackend/repository"
	"github.com/shifo-uz/clinicbackend/uploads"
	"github.com/shifo-uz/clinicbackend/workers"
)

// GalleryHandler serves photo/video galleries.
type GalleryHandler struct {
	Repo     repository.GalleryRepositoryInterface
	Store    media.Store
	ThumbGen *workers.ThumbnailGenerator
}

func NewGalleryHandler(repo repository.GalleryRepositoryInterface, store media.Store, thumbGen *workers.ThumbnailGenerator) *GalleryHandler {
	return &GalleryHandler{Repo: repo, Store: store, ThumbGen: thumbGen}
}

// List returns all galleries.
func (h *GalleryHandler) List(w http.ResponseWriter, r *http.Request) {
	galleries, err := h.Repo.ListAll()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "galleries", galleries)
}

// Get returns one gallery by id.
func (h *GalleryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	gallery, err := h.Repo.GetByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "gallery", gallery)
}

// Create handles the multipart create form; files arrive under
// gallery_media.
func (h *GalleryHandler) Create(w http.ResponseWriter, r *http.Request) {
	form, err := uploads.ParseForm(r, "gallery", h.Store)
	if err != nil {
		writeError(w, err)
		return
	}

	in := repository.GalleryCreateInput{
		TitleUz: form.Value("title_uz"),
		TitleRu: form.Value("title_ru"),
		TitleEn: form.Value("title_en"),
		Files:   uploads.GroupByField(form.Files, uploads.MediaOnlyScheme("gallery_media")),
	}

	gallery, err := h.Repo.Create(in)
	if err != nil {
		discardUploads(r.Context(), h.Store, form.Files)
		writeError(w, err)
		return
	}

	if h.ThumbGen != nil {
		h.ThumbGen.QueueForMedia(gallery.Media)
	}
	writeJSON(w, http.StatusCreated, "gallery created", gallery)
}

// Edit handles the multipart edit form for a gallery.
func (h *GalleryHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	form, err := uploads.ParseForm(r, "gallery", h.Store)
	if err != nil {
		writeError(w, err)
		return
	}

	in := repository.GalleryEditInput{
		TitleUz: form.OptionalValue("title_uz"),
		TitleRu: form.OptionalValue("title_ru"),
		TitleEn: form.OptionalValue("title_en"),
		Files:   uploads.GroupByField(form.Files, uploads.MediaOnlyScheme("gallery_media")),
	}
	if in.DeleteMediaIDs, err = idListValue(form, "delete_media_ids"); err != nil {
		discardUploads(r.Context(), h.Store, form.Files)
		writeError(w, err)
		return
	}

	gallery, err := h.Repo.Edit(id, in)
	if err != nil {
		discardUploads(r.Context(), h.Store, form.Files)
		writeError(w, err)
		return
	}

	if h.ThumbGen != nil {
		h.ThumbGen.QueueForMedia(gallery.Media)
	}
	writeJSON(w, http.StatusOK, "gallery updated", gallery)
}

// Delete removes a gallery, then cleans the stored files after the
// transaction commits.
func (h *GalleryHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, http.StatusOK, "gallery deleted", nil)
}
