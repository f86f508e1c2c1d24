package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"locpulse/internal/notify"
	"locpulse/internal/session"
	"locpulse/internal/store"
)

// Auth groups all authentication-related HTTP handlers.
type Auth struct {
	sessions    *session.Store
	resetTokens *session.ResetTokens
	users       *store.UserStore
	notifier    *notify.Notifier
	baseURL     string
}

// NewAuth creates a new Auth handler group. baseURL is used to build
// password reset links.
func NewAuth(sessions *session.Store, resetTokens *session.ResetTokens, users *store.UserStore, notifier *notify.Notifier, baseURL string) *Auth {
	return &Auth{
		sessions:    sessions,
		resetTokens: resetTokens,
		users:       users,
		notifier:    notifier,
		baseURL:     baseURL,
	}
}

type signupRequest struct {
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,min=8,max=128"`
	DisplayName string `json:"display_name" validate:"max=100"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type resetRequestPayload struct {
	Email string `json:"email" validate:"required,email"`
}

type resetConfirmPayload struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// Signup registers a new account.
func (a *Auth) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fields := checkStruct(req); fields != nil {
		respondFieldErrors(w, fields)
		return
	}

	existing, err := a.users.FindByEmail(req.Email)
	if err != nil {
		slog.Error("signup lookup failed", "error", err)
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if existing != nil {
		respondDetail(w, http.StatusBadRequest, "Email already registered.")
		return
	}

	if _, err := a.users.Create(req.Email, req.Password, req.DisplayName); err != nil {
		slog.Error("signup create failed", "error", err)
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	respondDetail(w, http.StatusCreated, "User successfully created. Please log in.")
}

// Login verifies credentials and starts a session.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fields := checkStruct(req); fields != nil {
		respondFieldErrors(w, fields)
		return
	}

	user, err := a.users.FindByEmail(req.Email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if user == nil || !a.users.CheckPassword(user, req.Password) {
		respondDetail(w, http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	if _, err := a.sessions.Create(r.Context(), w, &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}); err != nil {
		slog.Error("session create failed", "error", err)
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	respondDetail(w, http.StatusOK, "Login successful.")
}

// Logout destroys the caller's session.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Error("session destroy failed", "error", err)
	}
	respondDetail(w, http.StatusOK, "Logout successful.")
}

// PasswordResetRequest emails a one-time reset link. Always answers
// 200 so the endpoint doesn't reveal which addresses are registered.
func (a *Auth) PasswordResetRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req resetRequestPayload
	if !decodeJSON(w, r, &req) {
		return
	}
	if fields := checkStruct(req); fields != nil {
		respondFieldErrors(w, fields)
		return
	}

	user, err := a.users.FindByEmail(req.Email)
	if err != nil {
		slog.Error("reset lookup failed", "error", err)
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	if user != nil {
		token, err := a.resetTokens.Create(ctx, user.ID)
		if err != nil {
			slog.Error("reset token create failed", "error", err)
			respondDetail(w, http.StatusInternalServerError, "Internal server error.")
			return
		}
		a.notifier.PasswordReset(ctx, user.Email, a.baseURL+"/api/password-reset/confirm?token="+token)
	}

	respondDetail(w, http.StatusOK, "We have sent you a link to reset your password.")
}

// PasswordResetConfirm consumes a reset token and sets the new password.
func (a *Auth) PasswordResetConfirm(w http.ResponseWriter, r *http.Request) {
	var req resetConfirmPayload
	if !decodeJSON(w, r, &req) {
		return
	}
	if fields := checkStruct(req); fields != nil {
		respondFieldErrors(w, fields)
		return
	}

	userID, err := a.resetTokens.Consume(r.Context(), req.Token)
	if err != nil {
		slog.Error("reset token consume failed", "error", err)
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if userID == uuid.Nil {
		respondDetail(w, http.StatusUnauthorized, "Token is not valid.")
		return
	}

	if err := a.users.SetPassword(userID, req.Password); err != nil {
		slog.Error("set password failed", "error", err)
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	respondDetail(w, http.StatusOK, "Password reset success.")
}
