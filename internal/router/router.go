// Package router exposes the board session as an HTTP command surface:
// every user action of the views (search, paging, opening and closing
// the entity form, submitting, deleting) is one endpoint invoking the
// matching session command synchronously.
package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/patric-chuzhbe/crudboard/internal/logger"
	"github.com/patric-chuzhbe/crudboard/internal/middleware"
	"github.com/patric-chuzhbe/crudboard/internal/models"
)

type board interface {
	Loading() bool

	UsersView() (models.UserViewResponse, error)
	SearchUsers(term string) (models.UserViewResponse, error)
	UsersNextPage() (models.UserViewResponse, error)
	UsersPrevPage() (models.UserViewResponse, error)
	OpenUserCreate() (models.UserViewResponse, error)
	OpenUserEdit(id int) (models.UserViewResponse, error)
	CloseUserModal() (models.UserViewResponse, error)
	SubmitUser(submission models.UserSubmission) (models.UserViewResponse, bool, error)
	DeleteUser(id int) (models.UserViewResponse, error)

	PostsView() (models.PostViewResponse, error)
	SearchPosts(term string) (models.PostViewResponse, error)
	PostsNextPage() (models.PostViewResponse, error)
	PostsPrevPage() (models.PostViewResponse, error)
	OpenPostCreate() (models.PostViewResponse, error)
	OpenPostEdit(id int) (models.PostViewResponse, error)
	ClosePostModal() (models.PostViewResponse, error)
	SubmitPost(submission models.PostSubmission) (models.PostViewResponse, bool, error)
	DeletePost(id int) (models.PostViewResponse, error)
}

// Router wires the session commands into a chi mux.
type Router struct {
	board board
}

// New returns the HTTP handler of the command surface.
func New(theBoard board) http.Handler {
	theRouter := &Router{board: theBoard}

	mux := chi.NewRouter()
	mux.Use(middleware.WithRequestID)
	mux.Use(logger.WithLoggingHTTPMiddleware)
	mux.Use(middleware.GzipResponse)

	mux.Get(`/ping`, theRouter.GetPing)

	mux.Route(`/api/users`, func(r chi.Router) {
		r.Get(`/`, theRouter.GetUsers)
		r.Post(`/search`, theRouter.PostUsersSearch)
		r.Post(`/page/next`, theRouter.PostUsersNextPage)
		r.Post(`/page/prev`, theRouter.PostUsersPrevPage)
		r.Post(`/modal/create`, theRouter.PostUsersOpenCreate)
		r.Post(`/modal/edit/{id}`, theRouter.PostUsersOpenEdit)
		r.Post(`/modal/close`, theRouter.PostUsersCloseModal)
		r.Post(`/submit`, theRouter.PostUsersSubmit)
		r.Delete(`/{id}`, theRouter.DeleteUser)
	})

	mux.Route(`/api/posts`, func(r chi.Router) {
		r.Get(`/`, theRouter.GetPosts)
		r.Post(`/search`, theRouter.PostPostsSearch)
		r.Post(`/page/next`, theRouter.PostPostsNextPage)
		r.Post(`/page/prev`, theRouter.PostPostsPrevPage)
		r.Post(`/modal/create`, theRouter.PostPostsOpenCreate)
		r.Post(`/modal/edit/{id}`, theRouter.PostPostsOpenEdit)
		r.Post(`/modal/close`, theRouter.PostPostsCloseModal)
		r.Post(`/submit`, theRouter.PostPostsSubmit)
		r.Delete(`/{id}`, theRouter.DeletePost)
	})

	return mux
}

func writeJSON(res http.ResponseWriter, status int, body any) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(status)
	if err := json.NewEncoder(res).Encode(body); err != nil {
		logger.Log.Debugln("writing response:", err)
	}
}

func writeError(res http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrSessionLoading):
		status = http.StatusServiceUnavailable
	case errors.Is(err, models.ErrUnknownEntity):
		status = http.StatusNotFound
	}

	writeJSON(res, status, models.ErrorResponse{Error: err.Error()})
}

func pathID(req *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(req, "id"))
}

func (r *Router) writeView(res http.ResponseWriter, view any, err error) {
	if err != nil {
		writeError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, view)
}

// GetPing answers 200 once the seed load finished and 503 before.
func (r *Router) GetPing(res http.ResponseWriter, req *http.Request) {
	if r.board.Loading() {
		writeError(res, models.ErrSessionLoading)
		return
	}

	res.WriteHeader(http.StatusOK)
}

// GetUsers renders the derived users view.
func (r *Router) GetUsers(res http.ResponseWriter, req *http.Request) {
	view, err := r.board.UsersView()
	r.writeView(res, view, err)
}

// PostUsersSearch sets the users search term.
func (r *Router) PostUsersSearch(res http.ResponseWriter, req *http.Request) {
	var request models.SearchRequest
	if err := json.NewDecoder(req.Body).Decode(&request); err != nil {
		writeJSON(res, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	view, err := r.board.SearchUsers(request.Term)
	r.writeView(res, view, err)
}

// PostUsersNextPage advances the users view one page.
func (r *Router) PostUsersNextPage(res http.ResponseWriter, req *http.Request) {
	view, err := r.board.UsersNextPage()
	r.writeView(res, view, err)
}

// PostUsersPrevPage goes the users view one page back.
func (r *Router) PostUsersPrevPage(res http.ResponseWriter, req *http.Request) {
	view, err := r.board.UsersPrevPage()
	r.writeView(res, view, err)
}

// PostUsersOpenCreate opens the empty user form.
func (r *Router) PostUsersOpenCreate(res http.ResponseWriter, req *http.Request) {
	view, err := r.board.OpenUserCreate()
	r.writeView(res, view, err)
}

// PostUsersOpenEdit opens the user form pre-filled from the record in the path.
func (r *Router) PostUsersOpenEdit(res http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		writeJSON(res, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	view, err := r.board.OpenUserEdit(id)
	r.writeView(res, view, err)
}

// PostUsersCloseModal closes the user form without submitting.
func (r *Router) PostUsersCloseModal(res http.ResponseWriter, req *http.Request) {
	view, err := r.board.CloseUserModal()
	r.writeView(res, view, err)
}

// PostUsersSubmit submits the user form; field validation failures come
// back as 422 with one message per invalid field.
func (r *Router) PostUsersSubmit(res http.ResponseWriter, req *http.Request) {
	var submission models.UserSubmission
	if err := json.NewDecoder(req.Body).Decode(&submission); err != nil {
		writeJSON(res, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	view, ok, err := r.board.SubmitUser(submission)
	if err != nil {
		writeError(res, err)
		return
	}

	if !ok {
		writeJSON(res, http.StatusUnprocessableEntity, view)
		return
	}

	writeJSON(res, http.StatusOK, view)
}

// DeleteUser removes the record in the path; an absent id still answers 200.
func (r *Router) DeleteUser(res http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		writeJSON(res, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	view, err := r.board.DeleteUser(id)
	r.writeView(res, view, err)
}

// GetPosts renders the derived posts view.
func (r *Router) GetPosts(res http.ResponseWriter, req *http.Request) {
	view, err := r.board.PostsView()
	r.writeView(res, view, err)
}

// PostPostsSearch sets the posts search term.
func (r *Router) PostPostsSearch(res http.ResponseWriter, req *http.Request) {
	var request models.SearchRequest
	if err := json.NewDecoder(req.Body).Decode(&request); err != nil {
		writeJSON(res, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	view, err := r.board.SearchPosts(request.Term)
	r.writeView(res, view, err)
}

// PostPostsNextPage advances the posts view one page.
func (r *Router) PostPostsNextPage(res http.ResponseWriter, req *http.Request) {
	view, err := r.board.PostsNextPage()
	r.writeView(res, view, err)
}

// PostPostsPrevPage goes the posts view one page back.
func (r *Router) PostPostsPrevPage(res http.ResponseWriter, req *http.Request) {
	view, err := r.board.PostsPrevPage()
	r.writeView(res, view, err)
}

// PostPostsOpenCreate opens the empty post form.
func (r *Router) PostPostsOpenCreate(res http.ResponseWriter, req *http.Request) {
	view, err := r.board.OpenPostCreate()
	r.writeView(res, view, err)
}

// PostPostsOpenEdit opens the post form pre-filled from the record in the path.
func (r *Router) PostPostsOpenEdit(res http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		writeJSON(res, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	view, err := r.board.OpenPostEdit(id)
	r.writeView(res, view, err)
}

// PostPostsCloseModal closes the post form without submitting.
func (r *Router) PostPostsCloseModal(res http.ResponseWriter, req *http.Request) {
	view, err := r.board.ClosePostModal()
	r.writeView(res, view, err)
}

// PostPostsSubmit submits the post form.
func (r *Router) PostPostsSubmit(res http.ResponseWriter, req *http.Request) {
	var submission models.PostSubmission
	if err := json.NewDecoder(req.Body).Decode(&submission); err != nil {
		writeJSON(res, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	view, ok, err := r.board.SubmitPost(submission)
	if err != nil {
		writeError(res, err)
		return
	}

	if !ok {
		writeJSON(res, http.StatusUnprocessableEntity, view)
		return
	}

	writeJSON(res, http.StatusOK, view)
}

// DeletePost removes the record in the path; an absent id still answers 200.
func (r *Router) DeletePost(res http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		writeJSON(res, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	view, err := r.board.DeletePost(id)
	r.writeView(res, view, err)
}
