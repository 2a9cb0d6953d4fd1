package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/quillpad/quillpad-be/internal/auth"
	"github.com/quillpad/quillpad-be/internal/models"
	"github.com/quillpad/quillpad-be/internal/services"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles registration, login and the current-user profile.
type AuthHandler struct {
	users  services.UserServiceProvider
	tokens *auth.TokenManager
	events services.EventServiceProvider
	secure bool // set the Secure flag on the token cookie
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServiceProvider, tokens *auth.TokenManager, events services.EventServiceProvider, secure bool) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, events: events, secure: secure}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles new user registration and issues a token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}

	payload.Name = strings.TrimSpace(payload.Name)
	payload.Email = strings.TrimSpace(payload.Email)
	if payload.Name == "" || !strings.Contains(payload.Email, "@") {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Name and a valid email are required"})
		return
	}
	if len(payload.Password) < 6 {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Password must be 6 or more characters"})
		return
	}

	user, err := h.users.CreateUser(payload.Name, payload.Email, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed to register user")
		respondServiceError(w, err)
		return
	}

	h.events.RecordEvent("user.registered", user.Name+" joined", &user.ID)
	h.issueSession(w, http.StatusCreated, user)
}

// Login handles user authentication and token generation.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}

	user, err := h.users.AuthenticateUser(payload.Email, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed authentication attempt")
		respondServiceError(w, err)
		return
	}

	h.events.RecordEvent("user.login", user.Name+" logged in", &user.ID)
	h.issueSession(w, http.StatusOK, user)
}

// Profile retrieves the currently authenticated user from the token.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user claims from context")
		respondJSON(w, http.StatusInternalServerError, map[string]string{"message": "Could not retrieve user from token"})
		return
	}

	user, err := h.users.GetUserByID(claims.UserID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", claims.UserID).Msg("User from token not found")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// issueSession signs a token for the user, sets it as an HTTP-only cookie
// (used by the browser-side admin feed) and returns it with the minimal
// public identity fields. The password hash never leaves the service layer.
func (h *AuthHandler) issueSession(w http.ResponseWriter, status int, user models.User) {
	token, err := h.tokens.Issue(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to sign token")
		respondJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to generate token"})
		return
	}

	// The cookie lives exactly as long as the token it carries.
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(h.tokens.TTL()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})

	respondJSON(w, status, map[string]interface{}{
		"token": token,
		"user":  user.Public(),
	})
}
