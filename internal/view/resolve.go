package view

import (
	"strings"

	"github.com/patric-chuzhbe/crudboard/internal/models"
)

// AuthorUsername resolves a post's soft userId reference against the given
// user collection. A dangling reference yields the fallback label; it is an
// expected state, not an error.
func AuthorUsername(post models.Post, users []models.User) string {
	for _, user := range users {
		if user.ID == post.UserID {
			return user.Username
		}
	}

	return models.UnknownAuthor
}

// MatchUser reports whether the term is contained in the user's name,
// username or email.
func MatchUser(user models.User, term string) bool {
	return strings.Contains(strings.ToLower(user.Name), term) ||
		strings.Contains(strings.ToLower(user.Username), term) ||
		strings.Contains(strings.ToLower(user.Email), term)
}

// PostMatcher builds a post matcher over the given user source: the term
// matches on the title or on the resolved author's username. When the
// author cannot be resolved only the title is considered.
func PostMatcher(users func() []models.User) Matcher[models.Post] {
	return func(post models.Post, term string) bool {
		if strings.Contains(strings.ToLower(post.Title), term) {
			return true
		}

		author := AuthorUsername(post, users())
		if author == models.UnknownAuthor {
			return false
		}

		return strings.Contains(strings.ToLower(author), term)
	}
}
