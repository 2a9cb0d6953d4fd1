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

// PostHandler handles HTTP requests for posts and their likes/comments.
type PostHandler struct {
	posts  services.PostServiceProvider
	users  services.UserServiceProvider
	events services.EventServiceProvider
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(posts services.PostServiceProvider, users services.UserServiceProvider, events services.EventServiceProvider) *PostHandler {
	return &PostHandler{posts: posts, users: users, events: events}
}

// CreatePayload defines the structure for post creation requests.
type CreatePayload struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

// CommentPayload defines the structure for comment requests.
type CommentPayload struct {
	Text string `json:"text"`
}

// Create handles new post creation by the authenticated user.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"message": "Missing auth token"})
		return
	}

	var payload CreatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}
	if strings.TrimSpace(payload.Title) == "" || strings.TrimSpace(payload.Content) == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Title and content are required"})
		return
	}

	post, err := h.posts.CreatePost(claims.UserID, payload.Title, payload.Content, payload.Category)
	if err != nil {
		log.Error().Err(err).Str("author_id", claims.UserID).Msg("Failed to create post")
		respondServiceError(w, err)
		return
	}

	h.events.RecordEvent("post.created", post.AuthorName+" published \""+post.Title+"\"", &claims.UserID)
	respondJSON(w, http.StatusCreated, post)
}

// List handles retrieving posts with optional search and category filters.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	category := r.URL.Query().Get("category")

	posts, err := h.posts.ListPosts(search, category)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list posts")
		respondServiceError(w, err)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}
	respondJSON(w, http.StatusOK, posts)
}

// Get handles retrieving a single post by ID.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.GetPostByID(chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// Update handles editing a post's title/content/category. Ownership is
// enforced in the service layer.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"message": "Missing auth token"})
		return
	}

	var patch models.PostPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}

	post, err := h.posts.UpdatePost(chi.URLParam(r, "id"), claims, patch)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// Delete handles post deletion by the author or an admin.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	h.events.RecordEvent("post.deleted", "Post "+id+" deleted", &claims.UserID)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Post deleted successfully"})
}

// Like adds the authenticated user to the post's like set. Liking twice is
// an error, not a silent no-op, so clients can detect double submission.
func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"message": "Missing auth token"})
		return
	}

	likes, err := h.posts.LikePost(chi.URLParam(r, "id"), claims.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, likes)
}

// Unlike removes the authenticated user from the post's like set.
func (h *PostHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"message": "Missing auth token"})
		return
	}

	likes, err := h.posts.UnlikePost(chi.URLParam(r, "id"), claims.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, likes)
}

// AddComment appends a comment by the authenticated user. Any authenticated
// user may comment on any post.
func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"message": "Missing auth token"})
		return
	}

	var payload CommentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}
	if strings.TrimSpace(payload.Text) == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Comment text is required"})
		return
	}

	// The comment carries the author's current display name, so look the
	// user up rather than trusting the (possibly stale) token snapshot.
	user, err := h.users.GetUserByID(claims.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	comments, err := h.posts.AddComment(chi.URLParam(r, "id"), user, payload.Text)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, comments)
}
