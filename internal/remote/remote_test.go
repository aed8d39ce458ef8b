package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUpstream(t *testing.T, usersBody, postsBody string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, usersBody)
	})
	mux.HandleFunc("/posts", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, postsBody)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func TestFetchUsers(t *testing.T) {
	t.Run("decodes the typed array and drops extra fields", func(t *testing.T) {
		server := newUpstream(
			t,
			`[{"id":1,"name":"Ann","username":"ann","email":"a@a.com","phone":"555","company":{"name":"ACME"}}]`,
			`[]`,
		)

		loader := New(server.URL+"/users", server.URL+"/posts", 20)

		users, err := loader.FetchUsers(context.Background())
		require.NoError(t, err)

		require.Len(t, users, 1)
		assert.Equal(t, 1, users[0].ID)
		assert.Equal(t, "Ann", users[0].Name)
		assert.Equal(t, "a@a.com", users[0].Email)
	})

	t.Run("non-JSON body is an error", func(t *testing.T) {
		server := newUpstream(t, `<html>oops</html>`, `[]`)

		loader := New(server.URL+"/users", server.URL+"/posts", 20)

		_, err := loader.FetchUsers(context.Background())
		assert.Error(t, err)
	})

	t.Run("upstream error status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		t.Cleanup(server.Close)

		loader := New(server.URL+"/users", server.URL+"/posts", 20)

		_, err := loader.FetchUsers(context.Background())
		assert.Error(t, err)
	})
}

func TestFetchPosts(t *testing.T) {
	t.Run("retains only the first elements up to the cap", func(t *testing.T) {
		postsBody := `[`
		for i := 1; i <= 30; i++ {
			if i > 1 {
				postsBody += ","
			}
			postsBody += fmt.Sprintf(`{"id":%d,"userId":1,"title":"post %d","body":"ignored"}`, i, i)
		}
		postsBody += `]`

		server := newUpstream(t, `[]`, postsBody)

		loader := New(server.URL+"/users", server.URL+"/posts", 20)

		posts, err := loader.FetchPosts(context.Background())
		require.NoError(t, err)

		require.Len(t, posts, 20)
		assert.Equal(t, 1, posts[0].ID, "response order should be kept")
		assert.Equal(t, 20, posts[19].ID)
	})

	t.Run("short responses are kept whole", func(t *testing.T) {
		server := newUpstream(t, `[]`, `[{"id":1,"userId":9,"title":"only one"}]`)

		loader := New(server.URL+"/users", server.URL+"/posts", 20)

		posts, err := loader.FetchPosts(context.Background())
		require.NoError(t, err)

		require.Len(t, posts, 1)
		assert.Equal(t, 9, posts[0].UserID)
	})
}
