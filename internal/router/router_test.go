package router

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/crudboard/internal/middleware"
	"github.com/patric-chuzhbe/crudboard/internal/models"
	"github.com/patric-chuzhbe/crudboard/internal/remote"
	"github.com/patric-chuzhbe/crudboard/internal/session"
)

const upstreamUsers = `[
	{"id":1,"name":"Ann Smith","username":"ann","email":"ann@example.com","phone":"555"},
	{"id":2,"name":"Bo Jones","username":"bo","email":"bo@example.com"}
]`

const upstreamPosts = `[
	{"id":1,"userId":1,"title":"First post","body":"ignored"},
	{"id":2,"userId":2,"title":"Second post"},
	{"id":3,"userId":9,"title":"Orphaned post"}
]`

func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, upstreamUsers)
	})
	mux.HandleFunc("/posts", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, upstreamPosts)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func newBoardServer(t *testing.T, load bool) (*httptest.Server, *resty.Client) {
	t.Helper()

	upstream := newUpstream(t)
	loader := remote.New(upstream.URL+"/users", upstream.URL+"/posts", 20)
	theSession := session.New(loader, 5, 5)

	if load {
		require.NoError(t, theSession.Load(context.Background()))
	}

	server := httptest.NewServer(New(theSession))
	t.Cleanup(server.Close)

	return server, resty.New().SetBaseURL(server.URL)
}

func TestLoadingGate(t *testing.T) {
	_, client := newBoardServer(t, false)

	t.Run("ping answers 503 before the seed", func(t *testing.T) {
		response, err := client.R().Get("/ping")
		require.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, response.StatusCode())
	})

	t.Run("views answer 503 before the seed", func(t *testing.T) {
		for _, path := range []string{"/api/users/", "/api/posts/"} {
			response, err := client.R().Get(path)
			require.NoError(t, err)
			assert.Equal(t, http.StatusServiceUnavailable, response.StatusCode(), path)
		}
	})

	t.Run("commands answer 503 before the seed", func(t *testing.T) {
		response, err := client.R().
			SetBody(models.UserSubmission{Name: "Bo", Username: "bo", Email: "b@b.com"}).
			Post("/api/users/submit")
		require.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, response.StatusCode())
	})
}

func TestPing(t *testing.T) {
	_, client := newBoardServer(t, true)

	response, err := client.R().Get("/ping")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, response.StatusCode())
	assert.NotEmpty(t, response.Header().Get(middleware.RequestIDHeader))
}

func TestUsersSurface(t *testing.T) {
	_, client := newBoardServer(t, true)

	t.Run("lists the seeded users", func(t *testing.T) {
		var view models.UserViewResponse
		response, err := client.R().SetResult(&view).Get("/api/users/")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, response.StatusCode())

		require.Len(t, view.Items, 2)
		assert.Equal(t, "ann", view.Items[0].Username)
		assert.Equal(t, "closed", view.Modal)
	})

	t.Run("search filters case-insensitively and resets the page", func(t *testing.T) {
		var view models.UserViewResponse
		response, err := client.R().
			SetBody(models.SearchRequest{Term: "JONES"}).
			SetResult(&view).
			Post("/api/users/search")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, response.StatusCode())

		require.Len(t, view.Items, 1)
		assert.Equal(t, "bo", view.Items[0].Username)
		assert.Equal(t, 1, view.Page)

		_, err = client.R().SetBody(models.SearchRequest{Term: ""}).Post("/api/users/search")
		require.NoError(t, err)
	})

	t.Run("invalid submission answers 422 with field messages", func(t *testing.T) {
		_, err := client.R().Post("/api/users/modal/create")
		require.NoError(t, err)

		var view models.UserViewResponse
		response, err := client.R().
			SetBody(models.UserSubmission{Name: "Cy", Username: "cy", Email: "not-an-email"}).
			SetResult(&view).
			SetError(&view).
			Post("/api/users/submit")
		require.NoError(t, err)

		assert.Equal(t, http.StatusUnprocessableEntity, response.StatusCode())
		assert.Equal(t, "Email is invalid", view.Errors["email"])
		assert.Equal(t, "create", view.Modal, "the form should stay open")
		assert.Len(t, view.Items, 2, "the collection should be untouched")
	})

	t.Run("valid submission creates with the next id and closes the modal", func(t *testing.T) {
		var view models.UserViewResponse
		response, err := client.R().
			SetBody(models.UserSubmission{Name: "Cy", Username: "cy", Email: "cy@example.com"}).
			SetResult(&view).
			Post("/api/users/submit")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, response.StatusCode())

		require.Len(t, view.Items, 3)
		assert.Equal(t, 3, view.Items[2].ID)
		assert.Equal(t, "closed", view.Modal)
		assert.Empty(t, view.Errors)
	})

	t.Run("edit pre-fills and updates in place", func(t *testing.T) {
		var view models.UserViewResponse
		response, err := client.R().SetResult(&view).Post("/api/users/modal/edit/1")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, response.StatusCode())
		assert.Equal(t, "edit", view.Modal)
		assert.Equal(t, 1, view.EditingID)

		response, err = client.R().
			SetBody(models.UserSubmission{Name: "Ann Q. Smith", Username: "ann", Email: "ann@example.com"}).
			SetResult(&view).
			Post("/api/users/submit")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, response.StatusCode())

		require.Len(t, view.Items, 3)
		assert.Equal(t, "Ann Q. Smith", view.Items[0].Name)
		assert.Equal(t, 1, view.Items[0].ID)
	})

	t.Run("editing an unknown id answers 404", func(t *testing.T) {
		response, err := client.R().Post("/api/users/modal/edit/99")
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, response.StatusCode())
	})

	t.Run("delete removes the record, an absent id is a quiet no-op", func(t *testing.T) {
		var view models.UserViewResponse
		response, err := client.R().SetResult(&view).Delete("/api/users/3")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, response.StatusCode())
		assert.Len(t, view.Items, 2)

		response, err = client.R().SetResult(&view).Delete("/api/users/99")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, response.StatusCode())
		assert.Len(t, view.Items, 2)
	})
}

func TestPostsSurface(t *testing.T) {
	_, client := newBoardServer(t, true)

	t.Run("rendered posts carry the resolved author", func(t *testing.T) {
		var view models.PostViewResponse
		response, err := client.R().SetResult(&view).Get("/api/posts/")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, response.StatusCode())

		require.Len(t, view.Items, 3)
		assert.Equal(t, "ann", view.Items[0].Author)
		assert.Equal(t, models.UnknownAuthor, view.Items[2].Author)
	})

	t.Run("search matches the author username", func(t *testing.T) {
		var view models.PostViewResponse
		_, err := client.R().
			SetBody(models.SearchRequest{Term: "bo"}).
			SetResult(&view).
			Post("/api/posts/search")
		require.NoError(t, err)

		require.Len(t, view.Items, 1)
		assert.Equal(t, "Second post", view.Items[0].Title)

		_, err = client.R().SetBody(models.SearchRequest{Term: ""}).Post("/api/posts/search")
		require.NoError(t, err)
	})

	t.Run("create without a selection defaults to the first user", func(t *testing.T) {
		_, err := client.R().Post("/api/posts/modal/create")
		require.NoError(t, err)

		var view models.PostViewResponse
		response, err := client.R().
			SetBody(map[string]any{"title": "Fresh post"}).
			SetResult(&view).
			Post("/api/posts/submit")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, response.StatusCode())

		require.Len(t, view.Items, 4)
		created := view.Items[3]
		assert.Equal(t, 4, created.ID)
		assert.Equal(t, 1, created.UserID)
		assert.Equal(t, "ann", created.Author)
	})

	t.Run("missing title answers 422", func(t *testing.T) {
		var view models.PostViewResponse
		response, err := client.R().
			SetBody(map[string]any{"title": "   "}).
			SetResult(&view).
			SetError(&view).
			Post("/api/posts/submit")
		require.NoError(t, err)

		assert.Equal(t, http.StatusUnprocessableEntity, response.StatusCode())
		assert.Equal(t, "Title is required", view.Errors["title"])
	})

	t.Run("paging commands clamp at the bounds", func(t *testing.T) {
		var view models.PostViewResponse
		_, err := client.R().SetResult(&view).Post("/api/posts/page/prev")
		require.NoError(t, err)
		assert.Equal(t, 1, view.Page)

		_, err = client.R().SetResult(&view).Post("/api/posts/page/next")
		require.NoError(t, err)
		assert.Equal(t, 1, view.Page, "four posts fit a single page of five")
	})
}
