// Package models defines the entity records and the request/response shapes
// used by the collection pipeline and its HTTP command surface.
package models

import "errors"

// UnknownAuthor is the label rendered for a post whose userId
// does not resolve to any user in the current collection.
const UnknownAuthor = "Unknown"

// User is one record of the users collection.
// Extra fields returned by the remote API are ignored on decode.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,emailshape"`
}

// Post is one record of the posts collection. UserID is a soft reference:
// it may point at no existing user, which is a displayable state.
type Post struct {
	ID     int    `json:"id"`
	UserID int    `json:"userId"`
	Title  string `json:"title" validate:"required"`
}

// Identity returns the record id.
func (u User) Identity() int { return u.ID }

// WithIdentity returns a copy of the record carrying the given id.
func (u User) WithIdentity(id int) User {
	u.ID = id
	return u
}

func (p Post) Identity() int { return p.ID }

func (p Post) WithIdentity(id int) Post {
	p.ID = id
	return p
}

// SearchRequest carries the search term of a view's filter command.
type SearchRequest struct {
	Term string `json:"term"`
}

// UserSubmission is the user form payload of a submit command.
type UserSubmission struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// PostSubmission is the post form payload of a submit command.
// UserID may be omitted in create mode; it then defaults to the
// first available user's id.
type PostSubmission struct {
	Title  string `json:"title"`
	UserID *int   `json:"userId"`
}

// PostItem is a rendered post: the record plus its resolved author label.
type PostItem struct {
	Post
	Author string `json:"author"`
}

// UserViewResponse is the rendered state of the users view.
type UserViewResponse struct {
	Items      []User            `json:"items"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
	Search     string            `json:"search"`
	Modal      string            `json:"modal"`
	EditingID  int               `json:"editingId,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`
}

// PostViewResponse is the rendered state of the posts view.
type PostViewResponse struct {
	Items      []PostItem        `json:"items"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
	Search     string            `json:"search"`
	Modal      string            `json:"modal"`
	EditingID  int               `json:"editingId,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`
}

// ErrorResponse is the body of a non-200 answer from the command surface.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrSessionLoading is returned by session commands issued before the
// one-shot remote seed has finished (or after it has failed).
var ErrSessionLoading = errors.New("the session is still loading")

// ErrUnknownEntity is returned when a command needs an existing record
// (such as opening the edit form) and the id resolves to nothing.
var ErrUnknownEntity = errors.New("no entity with such id")
