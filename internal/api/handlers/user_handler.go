package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/quillpad/quillpad-be/internal/auth"
	"github.com/quillpad/quillpad-be/internal/models"
	"github.com/quillpad/quillpad-be/internal/services"
	"github.com/rs/zerolog/log"
)

// UserHandler handles public profile reads and own-profile updates.
type UserHandler struct {
	users services.UserServiceProvider
	posts services.PostServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users services.UserServiceProvider, posts services.PostServiceProvider) *UserHandler {
	return &UserHandler{users: users, posts: posts}
}

// GetProfile handles retrieving a user's public profile with their posts.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user, err := h.users.GetUserByID(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	posts, err := h.posts.ListPostsByAuthor(id)
	if err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("Failed to load user's posts")
		respondServiceError(w, err)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"user":  user,
		"posts": posts,
	})
}

// UpdateProfile handles updating the authenticated user's own name/email.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"message": "Missing auth token"})
		return
	}

	var payload struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
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

	user, err := h.users.UpdateProfile(claims.UserID, payload.Name, payload.Email)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to update profile")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}
