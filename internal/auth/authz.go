package auth

import "github.com/quillpad/quillpad-be/internal/models"

// CanMutate reports whether the requesting identity may edit or delete the
// post: the post's author always can, and so can any admin. Evaluated fresh
// on every request; the decision is never cached.
func CanMutate(post models.Post, claims *Claims) bool {
	if claims == nil {
		return false
	}
	return claims.UserID == post.AuthorID || claims.Role == models.RoleAdmin
}
