package handlers

import (
	"net/http"

	"github.com/shifo-uz/clinicbackend/media"
	"github.com/shifo-uz/clinicbackend/repository"
	"github.com/shifo-uz/clinicbackend/uploads"
	"github.com/shifo-uz/clinicbackend/workers"
)

// NewsHandler serves trilingual news posts.
type NewsHandler struct {
	Repo     repository.NewsRepositoryInterface
	Store    media.Store
	ThumbGen *workers.ThumbnailGenerator
}

func NewNewsHandler(repo repository.NewsRepositoryInterface, store media.Store, thumbGen *workers.ThumbnailGenerator) *NewsHandler {
	return &NewsHandler{Repo: repo, Store: store, ThumbGen: thumbGen}
}

// List returns all news posts, newest first.
func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Repo.ListAll()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "news", posts)
}

// Get returns one news post by id.
func (h *NewsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	post, err := h.Repo.GetByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "news", post)
}

// Create handles the multipart create form; files arrive under news_media.
func (h *NewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	form, err := uploads.ParseForm(r, "news", h.Store)
	if err != nil {
		writeError(w, err)
		return
	}

	in := repository.NewsCreateInput{
		TitleUz:       form.Value("title_uz"),
		TitleRu:       form.Value("title_ru"),
		TitleEn:       form.Value("title_en"),
		DescriptionUz: form.Value("description_uz"),
		DescriptionRu: form.Value("description_ru"),
		DescriptionEn: form.Value("description_en"),
		Files:         uploads.GroupByField(form.Files, uploads.MediaOnlyScheme("news_media")),
	}

	post, err := h.Repo.Create(in)
	if err != nil {
		discardUploads(r.Context(), h.Store, form.Files)
		writeError(w, err)
		return
	}

	if h.ThumbGen != nil {
		h.ThumbGen.QueueForMedia(post.Media)
	}
	writeJSON(w, http.StatusCreated, "news created", post)
}

// Edit handles the multipart edit form for a news post.
func (h *NewsHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	form, err := uploads.ParseForm(r, "news", h.Store)
	if err != nil {
		writeError(w, err)
		return
	}

	in := repository.NewsEditInput{
		TitleUz:       form.OptionalValue("title_uz"),
		TitleRu:       form.OptionalValue("title_ru"),
		TitleEn:       form.OptionalValue("title_en"),
		DescriptionUz: form.OptionalValue("description_uz"),
		DescriptionRu: form.OptionalValue("description_ru"),
		DescriptionEn: form.OptionalValue("description_en"),
		Files:         uploads.GroupByField(form.Files, uploads.MediaOnlyScheme("news_media")),
	}
	if in.DeleteMediaIDs, err = idListValue(form, "delete_media_ids"); err != nil {
		discardUploads(r.Context(), h.Store, form.Files)
		writeError(w, err)
		return
	}

	post, err := h.Repo.Edit(id, in)
	if err != nil {
		discardUploads(r.Context(), h.Store, form.Files)
		writeError(w, err)
		return
	}

	if h.ThumbGen != nil {
		h.ThumbGen.QueueForMedia(post.Media)
	}
	writeJSON(w, http.StatusOK, "news updated", post)
}

// Delete removes a news post, then cleans the stored files after the
// transaction commits.
func (h *NewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, http.StatusOK, "news deleted", nil)
}
