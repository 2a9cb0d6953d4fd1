package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/quillpad/quillpad-be/internal/auth"
	"github.com/quillpad/quillpad-be/internal/models"
	"github.com/quillpad/quillpad-be/internal/services"
	"github.com/rs/zerolog/log"
)

// AdminHandler handles the admin-only dashboard and moderation endpoints.
// Role gating happens in the router; these handlers assume an admin caller.
type AdminHandler struct {
	users  services.UserServiceProvider
	posts  services.PostServiceProvider
	events services.EventServiceProvider
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(users services.UserServiceProvider, posts services.PostServiceProvider, events services.EventServiceProvider) *AdminHandler {
	return &AdminHandler{users: users, posts: posts, events: events}
}

// Stats returns dashboard counters, the latest posts and recent activity.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	totalUsers, err := h.users.CountUsers()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	totalPosts, err := h.posts.CountPosts()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	recentPosts, err := h.posts.GetRecentPosts(5)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	recentEvents, err := h.events.GetRecentEvents(20)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"totalUsers":   totalUsers,
		"totalPosts":   totalPosts,
		"recentPosts":  recentPosts,
		"recentEvents": recentEvents,
	})
}

// ListUsers returns every account.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.GetAllUsers()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	respondJSON(w, http.StatusOK, users)
}

// DeleteUser removes an account and cascades to all posts it authored.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.users.DeleteUser(id); err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("Failed to delete user")
		respondServiceError(w, err)
		return
	}

	var actorID *string
	if claims != nil {
		actorID = &claims.UserID
	}
	h.events.RecordEvent("user.deleted", "Account "+id+" removed by admin", actorID)
	respondJSON(w, http.StatusOK, map[string]string{"message": "User and their posts deleted successfully"})
}

// ListPosts returns every post.
func (h *AdminHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.ListPosts("", "")
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}
	respondJSON(w, http.StatusOK, posts)
}

// DeletePost removes any post. The admin role satisfies the ownership check.
func (h *AdminHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"message": "Missing auth token"})
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.posts.DeletePost(id, claims); err != nil {
		respondServiceError(w, err)
		return
	}

	h.events.RecordEvent("post.deleted", "Post "+id+" removed by admin", &claims.UserID)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Post deleted successfully"})
}
