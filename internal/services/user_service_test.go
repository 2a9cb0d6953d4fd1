package services

import (
	"errors"
	"testing"

	"github.com/quillpad/quillpad-be/internal/models"
)

func TestCreateUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	user, err := svc.CreateUser("Ada", "ada@example.com", "password123")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.Role != models.RoleUser {
		t.Errorf("Role = %q, want %q", user.Role, models.RoleUser)
	}
	if user.PasswordHash != "" {
		t.Error("CreateUser returned the password hash")
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	if _, err := svc.CreateUser("Ada", "ada@example.com", "password123"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if _, err := svc.CreateUser("Imposter", "ada@example.com", "hunter22"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("CreateUser = %v, want ErrEmailTaken", err)
	}
}

func TestAuthenticateUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	createTestUser(t, db, "Ada", "ada@example.com")

	user, err := svc.AuthenticateUser("ada@example.com", "password123")
	if err != nil {
		t.Fatalf("AuthenticateUser: %v", err)
	}
	if user.Name != "Ada" {
		t.Errorf("Name = %q, want Ada", user.Name)
	}
	if user.PasswordHash != "" {
		t.Error("AuthenticateUser returned the password hash")
	}

	if _, err := svc.AuthenticateUser("ada@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.AuthenticateUser("nobody@example.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: %v, want ErrInvalidCredentials", err)
	}
}

func TestGetUserByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	if _, err := NewUserService(db).GetUserByID("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUserByID = %v, want ErrNotFound", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	user := createTestUser(t, db, "Ada", "ada@example.com")

	updated, err := svc.UpdateProfile(user.ID, "Ada L.", "lovelace@example.com")
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Name != "Ada L." || updated.Email != "lovelace@example.com" {
		t.Errorf("profile not updated: %+v", updated)
	}

	if _, err := svc.UpdateProfile("missing", "x", "x@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateProfile missing user = %v, want ErrNotFound", err)
	}
}

func TestDeleteUserCascadesToPosts(t *testing.T) {
	db := setupTestDB(t)
	userSvc := NewUserService(db)
	postSvc := NewPostService(db)

	victim := createTestUser(t, db, "Victim", "victim@example.com")
	other := createTestUser(t, db, "Other", "other@example.com")

	victimPost := createTestPost(t, db, victim.ID, "victim post")
	otherPost := createTestPost(t, db, other.ID, "other post")

	// A like and a comment on the victim's post must vanish with it.
	if _, err := postSvc.LikePost(victimPost.ID, other.ID); err != nil {
		t.Fatalf("LikePost: %v", err)
	}
	if _, err := postSvc.AddComment(victimPost.ID, other, "nice"); err != nil {
		t.Fatalf("AddComment: %v", err)
	}

	if err := userSvc.DeleteUser(victim.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	if _, err := userSvc.GetUserByID(victim.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("user still present after delete: %v", err)
	}
	if _, err := postSvc.GetPostByID(victimPost.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("victim's post still present: %v", err)
	}
	if _, err := postSvc.GetPostByID(otherPost.ID); err != nil {
		t.Errorf("other author's post was removed: %v", err)
	}

	var orphans int
	if err := db.QueryRow("SELECT COUNT(*) FROM post_likes").Scan(&orphans); err != nil || orphans != 0 {
		t.Errorf("orphaned likes = %d (err %v), want 0", orphans, err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM post_comments").Scan(&orphans); err != nil || orphans != 0 {
		t.Errorf("orphaned comments = %d (err %v), want 0", orphans, err)
	}
}

func TestCountUsers(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	createTestUser(t, db, "A", "a@example.com")
	createTestUser(t, db, "B", "b@example.com")

	count, err := svc.CountUsers()
	if err != nil {
		t.Fatalf("CountUsers: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}
