package services

import (
	"database/sql"
	"testing"

	"github.com/quillpad/quillpad-be/internal/database"
	"github.com/quillpad/quillpad-be/internal/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	// A fresh connection would see a fresh in-memory database.
	db.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *sql.DB, name, email string) models.User {
	t.Helper()
	user, err := NewUserService(db).CreateUser(name, email, "password123")
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func promoteToAdmin(t *testing.T, db *sql.DB, userID string) {
	t.Helper()
	if _, err := db.Exec("UPDATE users SET role = ? WHERE id = ?", models.RoleAdmin, userID); err != nil {
		t.Fatalf("promote user: %v", err)
	}
}

func createTestPost(t *testing.T, db *sql.DB, authorID, title string) models.Post {
	t.Helper()
	post, err := NewPostService(db).CreatePost(authorID, title, "some content", "general")
	if err != nil {
		t.Fatalf("create post %q: %v", title, err)
	}
	return post
}
