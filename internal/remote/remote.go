// Package remote fetches the initial collection content from the
// read-only upstream API. Each collection is fetched exactly once, at
// session start; there is no retry, no timeout and no later
// re-synchronization.
package remote

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/patric-chuzhbe/crudboard/internal/models"
)

// Loader is the one-shot seed client.
type Loader struct {
	client        *resty.Client
	usersEndpoint string
	postsEndpoint string
	postsFetchCap int
}

// New returns a loader over the given endpoints. postsFetchCap bounds how
// many posts of the upstream response are retained, in response order.
func New(usersEndpoint, postsEndpoint string, postsFetchCap int) *Loader {
	return &Loader{
		client:        resty.New().SetHeader("Accept", "application/json"),
		usersEndpoint: usersEndpoint,
		postsEndpoint: postsEndpoint,
		postsFetchCap: postsFetchCap,
	}
}

// FetchUsers issues one GET against the users endpoint and decodes the
// body as a typed array. Fields not present in the record type are
// dropped; a body that is not a JSON array is an error.
func (l *Loader) FetchUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User

	response, err := l.client.R().
		SetContext(ctx).
		SetResult(&users).
		Get(l.usersEndpoint)
	if err != nil {
		return nil, fmt.Errorf("fetching users: %w", err)
	}
	if response.IsError() {
		return nil, fmt.Errorf("fetching users: upstream answered %s", response.Status())
	}

	return users, nil
}

// FetchPosts issues one GET against the posts endpoint and retains only
// the first postsFetchCap elements of the response.
func (l *Loader) FetchPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post

	response, err := l.client.R().
		SetContext(ctx).
		SetResult(&posts).
		Get(l.postsEndpoint)
	if err != nil {
		return nil, fmt.Errorf("fetching posts: %w", err)
	}
	if response.IsError() {
		return nil, fmt.Errorf("fetching posts: upstream answered %s", response.Status())
	}

	if len(posts) > l.postsFetchCap {
		posts = posts[:l.postsFetchCap]
	}

	return posts, nil
}
