package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shifo-uz/clinicbackend/apperrors"
	"github.com/shifo-uz/clinicbackend/media"
	"github.com/shifo-uz/clinicbackend/models"
	"github.com/shifo-uz/clinicbackend/repository"
	"github.com/shifo-uz/clinicbackend/uploads"
	"github.com/shifo-uz/clinicbackend/workers"
)

// ReceptionHandler serves reception accounts: their own login and profile,
// plus admin-side CRUD.
type ReceptionHandler struct {
	Repo      repository.ReceptionRepositoryInterface
	Store     media.Store
	ThumbGen  *workers.ThumbnailGenerator
	SecretKey []byte
	TokenTTL  time.Duration
}

func NewReceptionHandler(repo repository.ReceptionRepositoryInterface, store media.Store, thumbGen *workers.ThumbnailGenerator, secretKey []byte, tokenTTL time.Duration) *ReceptionHandler {
	return &ReceptionHandler{Repo: repo, Store: store, ThumbGen: thumbGen, SecretKey: secretKey, TokenTTL: tokenTTL}
}

// Login exchanges reception credentials for a token.
func (h *ReceptionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apperrors.Validationf("invalid request payload"))
		return
	}

	reception, err := h.Repo.GetByUsername(payload.Username)
	if err != nil {
		writeError(w, apperrors.Authf("invalid username or password"))
		return
	}
	if !reception.CheckPassword(payload.Password) {
		writeError(w, apperrors.Authf("invalid username or password"))
		return
	}

	token, expiresAt, err := issueToken(h.SecretKey, reception.ID, models.RoleReception, h.TokenTTL)
	if err != nil {
		writeError(w, apperrors.Internalf(err, "failed to generate token"))
		return
	}

	writeJSON(w, http.StatusOK, "logged in", loginResponse{
		Token:     token,
		Role:      models.RoleReception,
		ExpiresAt: expiresAt,
	})
}

// Me returns the calling reception's own account.
func (h *ReceptionHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, apperrors.Authf("authentication required"))
		return
	}
	reception, err := h.Repo.GetByID(principal.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "profile", reception)
}

// EditMe lets a reception update their own profile via the multipart form.
func (h *ReceptionHandler) EditMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, apperrors.Authf("authentication required"))
		return
	}
	h.edit(w, r, principal.ID)
}

// List returns all reception accounts.
func (h *ReceptionHandler) List(w http.ResponseWriter, r *http.Request) {
	receptions, err := h.Repo.ListAll()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "receptions", receptions)
}

// Get returns one reception account by id.
func (h *ReceptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	reception, err := h.Repo.GetByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "reception", reception)
}

// Create registers a reception account from the admin's multipart form;
// profile files arrive under reception_media.
func (h *ReceptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	form, err := uploads.ParseForm(r, "reception", h.Store)
	if err != nil {
		writeError(w, err)
		return
	}

	in := repository.ReceptionCreateInput{
		Username:   form.Value("username"),
		Password:   form.Value("password"),
		FirstName:  form.Value("first_name"),
		SecondName: form.Value("second_name"),
		Files:      uploads.GroupByField(form.Files, uploads.MediaOnlyScheme("reception_media")),
	}

	reception, err := h.Repo.Create(in)
	if err != nil {
		discardUploads(r.Context(), h.Store, form.Files)
		writeError(w, err)
		return
	}

	if h.ThumbGen != nil {
		h.ThumbGen.QueueForMedia(reception.Media)
	}
	writeJSON(w, http.StatusCreated, "reception created", reception)
}

// Edit handles the admin-side multipart edit form for a reception account.
func (h *ReceptionHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	h.edit(w, r, id)
}

func (h *ReceptionHandler) edit(w http.ResponseWriter, r *http.Request, id uint) {
	form, err := uploads.ParseForm(r, "reception", h.Store)
	if err != nil {
		writeError(w, err)
		return
	}

	in := repository.ReceptionEditInput{
		Username:   form.OptionalValue("username"),
		Password:   form.OptionalValue("password"),
		FirstName:  form.OptionalValue("first_name"),
		SecondName: form.OptionalValue("second_name"),
		Files:      uploads.GroupByField(form.Files, uploads.MediaOnlyScheme("reception_media")),
	}
	if in.DeleteMediaIDs, err = idListValue(form, "delete_media_ids"); err != nil {
		discardUploads(r.Context(), h.Store, form.Files)
		writeError(w, err)
		return
	}

	reception, err := h.Repo.Edit(id, in)
	if err != nil {
		discardUploads(r.Context(), h.Store, form.Files)
		writeError(w, err)
		return
	}

	if h.ThumbGen != nil {
		h.ThumbGen.QueueForMedia(reception.Media)
	}
	writeJSON(w, http.StatusOK, "reception updated", reception)
}

// Delete removes a reception account, then cleans the stored files after the
// transaction commits.
func (h *ReceptionHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, http.StatusOK, "reception deleted", nil)
}
