package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/shifo-uz/clinicbackend/apperrors"
	"github.com/shifo-uz/clinicbackend/database"
	"github.com/shifo-uz/clinicbackend/models"
	"github.com/shifo-uz/clinicbackend/repository"
)

// AuthHandler serves admin authentication and account management.
type AuthHandler struct {
	AdminRepo repository.AdminRepositoryInterface
	DB        *gorm.DB
	SecretKey []byte
	TokenTTL  time.Duration
}

func NewAuthHandler(adminRepo repository.AdminRepositoryInterface, db *gorm.DB, secretKey []byte, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{AdminRepo: adminRepo, DB: db, SecretKey: secretKey, TokenTTL: tokenTTL}
}

// issueToken signs an access token carrying the account id and role.
func issueToken(secretKey []byte, id uint, role string, ttl time.Duration) (string, time.Time, error) {
	expiresAt := time.Now().Add(ttl)
	claims := &AccessClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(id),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "clinicbackend",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login exchanges admin credentials for a token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apperrors.Validationf("invalid request payload"))
		return
	}

	admin, err := h.AdminRepo.GetByUsername(payload.Username)
	if err != nil {
		writeError(w, apperrors.Authf("invalid username or password"))
		return
	}
	if !admin.CheckPassword(payload.Password) {
		writeError(w, apperrors.Authf("invalid username or password"))
		return
	}

	token, expiresAt, err := issueToken(h.SecretKey, admin.ID, models.RoleAdmin, h.TokenTTL)
	if err != nil {
		writeError(w, apperrors.Internalf(err, "failed to generate token"))
		return
	}

	writeJSON(w, http.StatusOK, "logged in", loginResponse{
		Token:     token,
		Role:      models.RoleAdmin,
		ExpiresAt: expiresAt,
	})
}

type createAdminPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Create registers a new admin account. Only an existing admin may call it.
func (h *AuthHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload createAdminPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apperrors.Validationf("invalid request payload"))
		return
	}

	admin, err := h.AdminRepo.Create(payload.Username, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, "admin created", admin)
}

// Profile returns the calling admin's account.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, apperrors.Authf("authentication required"))
		return
	}
	admin, err := h.AdminRepo.GetByID(principal.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "profile", admin)
}

type editUsernamePayload struct {
	Username string `json:"username"`
}

// EditUsername changes the calling admin's username.
func (h *AuthHandler) EditUsername(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, apperrors.Authf("authentication required"))
		return
	}
	var payload editUsernamePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apperrors.Validationf("invalid request payload"))
		return
	}

	admin, err := h.AdminRepo.UpdateUsername(principal.ID, payload.Username)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "username updated", admin)
}

type editPasswordPayload struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// EditPassword changes the calling admin's password after verifying the old
// one.
func (h *AuthHandler) EditPassword(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, apperrors.Authf("authentication required"))
		return
	}
	var payload editPasswordPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apperrors.Validationf("invalid request payload"))
		return
	}

	if err := h.AdminRepo.UpdatePassword(principal.ID, payload.OldPassword, payload.NewPassword); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "password updated", nil)
}

// Dashboard returns row counts for the admin landing page.
func (h *AuthHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := h.DB.DB()
	if err != nil {
		writeError(w, apperrors.Internalf(err, "failed to access database"))
		return
	}
	stats, err := database.GetDashboardStats(sqlDB)
	if err != nil {
		writeError(w, apperrors.Internalf(err, "failed to collect dashboard stats"))
		return
	}
	writeJSON(w, http.StatusOK, "dashboard", stats)
}
