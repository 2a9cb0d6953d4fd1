package auth

import (
	"testing"

	"github.com/quillpad/quillpad-be/internal/models"
)

func TestCanMutate(t *testing.T) {
	post := models.Post{ID: "p-1", AuthorID: "author"}

	tests := []struct {
		name   string
		claims *Claims
		want   bool
	}{
		{"author may mutate own post", &Claims{UserID: "author", Role: models.RoleUser}, true},
		{"other user may not", &Claims{UserID: "someone-else", Role: models.RoleUser}, false},
		{"admin may mutate any post", &Claims{UserID: "someone-else", Role: models.RoleAdmin}, true},
		{"admin author may mutate", &Claims{UserID: "author", Role: models.RoleAdmin}, true},
		{"nil claims may not", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanMutate(post, tt.claims); got != tt.want {
				t.Errorf("CanMutate = %v, want %v", got, tt.want)
			}
		})
	}
}
