package services

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/quillpad/quillpad-be/internal/auth"
	"github.com/quillpad/quillpad-be/internal/models"
)

// updateMaxRetries bounds how often an edit is retried after losing a
// version race before surfacing ErrConflict.
const updateMaxRetries = 3

// PostServiceProvider defines the interface for post services.
type PostServiceProvider interface {
	CreatePost(authorID, title, content, category string) (models.Post, error)
	GetPostByID(id string) (models.Post, error)
	ListPosts(search, category string) ([]models.Post, error)
	ListPostsByAuthor(authorID string) ([]models.Post, error)
	GetRecentPosts(limit int) ([]models.Post, error)
	CountPosts() (int, error)
	UpdatePost(id string, claims *auth.Claims, patch models.PostPatch) (models.Post, error)
	DeletePost(id string, claims *auth.Claims) error
	LikePost(postID, userID string) ([]string, error)
	UnlikePost(postID, userID string) ([]string, error)
	AddComment(postID string, author models.User, text string) ([]models.Comment, error)
}

// PostService provides business logic for posts and their embedded
// likes/comments collections.
type PostService struct {
	db *sql.DB

	// onSnapshot, when set, runs between an edit's snapshot read and its
	// CAS write. Tests use it to force version races.
	onSnapshot func(postID string)
}

// NewPostService creates a new PostService.
func NewPostService(db *sql.DB) *PostService {
	return &PostService{db: db}
}

// CreatePost stores a new post owned by authorID.
func (s *PostService) CreatePost(authorID, title, content, category string) (models.Post, error) {
	post := models.Post{
		ID:       uuid.New().String(),
		AuthorID: authorID,
		Title:    title,
		Content:  content,
		Category: category,
	}

	stmt, err := s.db.Prepare("INSERT INTO posts(id, author_id, title, content, category) VALUES(?, ?, ?, ?, ?)")
	if err != nil {
		return models.Post{}, err
	}
	defer stmt.Close()

	if _, err := stmt.Exec(post.ID, post.AuthorID, post.Title, post.Content, post.Category); err != nil {
		return models.Post{}, err
	}
	return s.GetPostByID(post.ID)
}

// GetPostByID retrieves a single post with its likes and comments populated.
func (s *PostService) GetPostByID(id string) (models.Post, error) {
	row := s.db.QueryRow(`
		SELECT p.id, p.author_id, u.name, p.title, p.content, p.category, p.version, p.created_at
		FROM posts p JOIN users u ON u.id = p.author_id
		WHERE p.id = ?`, id)

	var post models.Post
	err := row.Scan(&post.ID, &post.AuthorID, &post.AuthorName, &post.Title,
		&post.Content, &post.Category, &post.Version, &post.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Post{}, ErrNotFound
		}
		return models.Post{}, err
	}

	if post.Likes, err = s.loadLikes(id); err != nil {
		return models.Post{}, err
	}
	if post.Comments, err = s.loadComments(id); err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// ListPosts retrieves posts newest first, optionally filtered by a
// case-insensitive title search and/or an exact category.
func (s *PostService) ListPosts(search, category string) ([]models.Post, error) {
	query := `
		SELECT p.id, p.author_id, u.name, p.title, p.content, p.category, p.version, p.created_at
		FROM posts p JOIN users u ON u.id = p.author_id
		WHERE 1=1`
	var args []interface{}

	if search != "" {
		query += " AND p.title LIKE '%' || ? || '%' COLLATE NOCASE"
		args = append(args, search)
	}
	if category != "" {
		query += " AND p.category = ?"
		args = append(args, category)
	}
	query += " ORDER BY p.created_at DESC, p.rowid DESC"

	return s.queryPosts(query, args...)
}

// ListPostsByAuthor retrieves all posts by one author, newest first.
func (s *PostService) ListPostsByAuthor(authorID string) ([]models.Post, error) {
	return s.queryPosts(`
		SELECT p.id, p.author_id, u.name, p.title, p.content, p.category, p.version, p.created_at
		FROM posts p JOIN users u ON u.id = p.author_id
		WHERE p.author_id = ?
		ORDER BY p.created_at DESC, p.rowid DESC`, authorID)
}

// GetRecentPosts retrieves the most recently created posts.
func (s *PostService) GetRecentPosts(limit int) ([]models.Post, error) {
	return s.queryPosts(`
		SELECT p.id, p.author_id, u.name, p.title, p.content, p.category, p.version, p.created_at
		FROM posts p JOIN users u ON u.id = p.author_id
		ORDER BY p.created_at DESC, p.rowid DESC
		LIMIT ?`, limit)
}

// CountPosts returns the total number of posts.
func (s *PostService) CountPosts() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM posts").Scan(&count)
	return count, err
}

// UpdatePost applies an ownership-gated patch to title/content/category. The
// author id and the likes/comments collections are never touched by this
// path. Concurrent edits are detected with a version check and retried with
// the latest snapshot a bounded number of times.
func (s *PostService) UpdatePost(id string, claims *auth.Claims, patch models.PostPatch) (models.Post, error) {
	for attempt := 0; attempt < updateMaxRetries; attempt++ {
		post, err := s.GetPostByID(id)
		if err != nil {
			return models.Post{}, err
		}
		if !auth.CanMutate(post, claims) {
			return models.Post{}, ErrForbidden
		}

		title, content, category := post.Title, post.Content, post.Category
		if patch.Title != nil {
			title = *patch.Title
		}
		if patch.Content != nil {
			content = *patch.Content
		}
		if patch.Category != nil {
			category = *patch.Category
		}

		if s.onSnapshot != nil {
			s.onSnapshot(id)
		}

		res, err := s.db.Exec(`
			UPDATE posts SET title = ?, content = ?, category = ?, version = version + 1
			WHERE id = ? AND version = ?`,
			title, content, category, id, post.Version)
		if err != nil {
			return models.Post{}, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return models.Post{}, err
		}
		if n == 1 {
			return s.GetPostByID(id)
		}
		// Lost the version race; loop to reload and retry.
	}
	return models.Post{}, ErrConflict
}

// DeletePost removes a post entirely if the requester may mutate it. Likes
// and comments go with it via the schema cascade.
func (s *PostService) DeletePost(id string, claims *auth.Claims) error {
	post, err := s.GetPostByID(id)
	if err != nil {
		return err
	}
	if !auth.CanMutate(post, claims) {
		return ErrForbidden
	}
	_, err = s.db.Exec("DELETE FROM posts WHERE id = ?", id)
	return err
}

// LikePost inserts userID into the post's like set. The insert itself is the
// atomic membership check, so two racing likes from different users both
// land without a lost update.
func (s *PostService) LikePost(postID, userID string) ([]string, error) {
	if err := s.ensurePostExists(postID); err != nil {
		return nil, err
	}
	res, err := s.db.Exec("INSERT OR IGNORE INTO post_likes(post_id, user_id) VALUES(?, ?)", postID, userID)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrAlreadyLiked
	}
	return s.loadLikes(postID)
}

// UnlikePost removes userID from the post's like set.
func (s *PostService) UnlikePost(postID, userID string) ([]string, error) {
	if err := s.ensurePostExists(postID); err != nil {
		return nil, err
	}
	res, err := s.db.Exec("DELETE FROM post_likes WHERE post_id = ? AND user_id = ?", postID, userID)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotYetLiked
	}
	return s.loadLikes(postID)
}

// AddComment appends a comment and returns the full updated sequence,
// most recent first. Comments are immutable once posted; there is no edit or
// delete path.
func (s *PostService) AddComment(postID string, author models.User, text string) ([]models.Comment, error) {
	if err := s.ensurePostExists(postID); err != nil {
		return nil, err
	}
	_, err := s.db.Exec(`
		INSERT INTO post_comments(id, post_id, author_id, author_name, text)
		VALUES(?, ?, ?, ?, ?)`,
		uuid.New().String(), postID, author.ID, author.Name, text)
	if err != nil {
		return nil, err
	}
	return s.loadComments(postID)
}

func (s *PostService) ensurePostExists(id string) error {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM posts WHERE id = ?", id).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	return err
}

// loadLikes returns the like set ordered most recent first.
func (s *PostService) loadLikes(postID string) ([]string, error) {
	rows, err := s.db.Query("SELECT user_id FROM post_likes WHERE post_id = ? ORDER BY rowid DESC", postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	likes := []string{}
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		likes = append(likes, userID)
	}
	return likes, rows.Err()
}

// loadComments returns the comment sequence ordered most recent first.
func (s *PostService) loadComments(postID string) ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT id, author_id, author_name, text, created_at
		FROM post_comments WHERE post_id = ? ORDER BY rowid DESC`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.AuthorID, &c.AuthorName, &c.Text, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (s *PostService) queryPosts(query string, args ...interface{}) ([]models.Post, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var post models.Post
		if err := rows.Scan(&post.ID, &post.AuthorID, &post.AuthorName, &post.Title,
			&post.Content, &post.Category, &post.Version, &post.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range posts {
		if posts[i].Likes, err = s.loadLikes(posts[i].ID); err != nil {
			return nil, err
		}
		if posts[i].Comments, err = s.loadComments(posts[i].ID); err != nil {
			return nil, err
		}
	}
	return posts, nil
}
