// Package session owns the state of one running board: the two entity
// collections seeded from the remote API plus, per view, the derivation
// pipeline, the form controller and the modal state. Every command runs
// to completion under one mutex, so a command always observes the result
// of the previous one, matching a single-threaded event loop.
package session

import (
	"context"
	"sync"

	"github.com/patric-chuzhbe/crudboard/internal/form"
	"github.com/patric-chuzhbe/crudboard/internal/modal"
	"github.com/patric-chuzhbe/crudboard/internal/models"
	"github.com/patric-chuzhbe/crudboard/internal/store"
	"github.com/patric-chuzhbe/crudboard/internal/view"
)

type seedLoader interface {
	FetchUsers(ctx context.Context) ([]models.User, error)
	FetchPosts(ctx context.Context) ([]models.Post, error)
}

type usersView struct {
	collection *store.Collection[models.User]
	pipeline   *view.Pipeline[models.User]
	form       *form.UserForm
	modal      *modal.Controller
}

type postsView struct {
	collection *store.Collection[models.Post]
	pipeline   *view.Pipeline[models.Post]
	form       *form.PostForm
	modal      *modal.Controller
}

// Session is one board instance.
type Session struct {
	mu     sync.Mutex
	loaded bool

	loader seedLoader
	users  usersView
	posts  postsView
}

// New returns an unloaded session over the given seed loader. Page sizes
// apply per view.
func New(loader seedLoader, usersPageSize, postsPageSize int) *Session {
	s := &Session{
		loader: loader,
		users: usersView{
			collection: store.New[models.User](),
			pipeline:   view.New(usersPageSize, view.MatchUser),
			form:       &form.UserForm{},
			modal:      modal.New(),
		},
	}

	s.posts = postsView{
		collection: store.New[models.Post](),
		pipeline: view.New(postsPageSize, view.PostMatcher(func() []models.User {
			return s.users.collection.Snapshot()
		})),
		form:  &form.PostForm{},
		modal: modal.New(),
	}

	return s
}

// Load performs the one-shot seed: users first, then posts, each replaced
// wholesale. The session leaves the loading state only after both fetches
// succeeded; any failure keeps it loading for good.
func (s *Session) Load(ctx context.Context) error {
	users, err := s.loader.FetchUsers(ctx)
	if err != nil {
		return err
	}

	posts, err := s.loader.FetchPosts(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.users.collection.Replace(users)
	s.posts.collection.Replace(posts)
	s.loaded = true

	return nil
}

// Loading reports whether the seed has not finished yet.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return !s.loaded
}

func (s *Session) guard() error {
	if !s.loaded {
		return models.ErrSessionLoading
	}

	return nil
}

func (s *Session) renderUsers() models.UserViewResponse {
	records := s.users.collection.Snapshot()

	return models.UserViewResponse{
		Items:      s.users.pipeline.Visible(records),
		Page:       s.users.pipeline.Page(records),
		TotalPages: s.users.pipeline.TotalPages(records),
		Search:     s.users.pipeline.Search(),
		Modal:      s.users.modal.Mode().String(),
		EditingID:  s.users.modal.EditingID(),
		Errors:     s.users.form.Errors(),
	}
}

func (s *Session) renderPosts() models.PostViewResponse {
	records := s.posts.collection.Snapshot()
	users := s.users.collection.Snapshot()

	visible := s.posts.pipeline.Visible(records)
	items := make([]models.PostItem, 0, len(visible))
	for _, post := range visible {
		items = append(items, models.PostItem{
			Post:   post,
			Author: view.AuthorUsername(post, users),
		})
	}

	return models.PostViewResponse{
		Items:      items,
		Page:       s.posts.pipeline.Page(records),
		TotalPages: s.posts.pipeline.TotalPages(records),
		Search:     s.posts.pipeline.Search(),
		Modal:      s.posts.modal.Mode().String(),
		EditingID:  s.posts.modal.EditingID(),
		Errors:     s.posts.form.Errors(),
	}
}

// UsersView renders the current derived state of the users view.
func (s *Session) UsersView() (models.UserViewResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(); err != nil {
		return models.UserViewResponse{}, err
	}

	return s.renderUsers(), nil
}

// SearchUsers replaces the users search term and resets the page.
func (s *Session) SearchUsers(term string) (models.UserViewResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(); err != nil {
		return models.UserViewResponse{}, err
	}

	s.users.pipeline.SetSearch(term)

	return s.renderUsers(), nil
}

// UsersNextPage advances the users view a page forward.
func (s *Session) UsersNextPage() (models.UserViewResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(); err != nil {
		return models.UserViewResponse{}, err
	}

	s.users.pipeline.NextPage(s.users.collection.Snapshot())

	return s.renderUsers(), nil
}

// UsersPrevPage goes the users view a page back.
func (s *Session) UsersPrevPage() (models.UserViewResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(); err != nil {
		return models.UserViewResponse{}, err
	}

	s.users.pipeline.PrevPage(s.users.collection.Snapshot())

	return s.renderUsers(), nil
}

// OpenUserCreate opens the user form empty.
func (s *Session) OpenUserCreate() (models.UserViewResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(); err != nil {
		return models.UserViewResponse{}, err
	}

	s.users.form.Reset()
	s.users.modal.OpenCreate()

	return s.renderUsers(), nil
}

// OpenUserEdit opens the user form pre-filled from the given record.
func (s *Session) OpenUserEdit(id int) (models.UserViewResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(); err != nil {
		return models.UserViewResponse{}, err
	}

	user, found := s.users.collection.Find(id)
	if !found {
		return models.UserViewResponse{}, models.ErrUnknownEntity
	}

	s.users.form.FillFrom(user)
	s.users.modal.OpenEdit(id)

	return s.renderUsers(), nil
}

// CloseUserModal closes the user form without submitting.
func (s *Session) CloseUserModal() (models.UserViewResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(); err != nil {
		return models.UserViewResponse{}, err
	}

	s.users.modal.Close()
	s.users.form.Reset()

	return s.renderUsers(), nil
}

// SubmitUser validates the submission and, when it passes, applies it to
// the collection and closes the modal. The returned flag reports whether
// the submit was accepted; on rejection the rendered view carries the
// per-field messages.
func (s *Session) SubmitUser(submission models.UserSubmission) (models.UserViewResponse, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(); err != nil {
		return models.UserViewResponse{}, false, err
	}

	s.users.form.SetValues(submission)

	_, ok := s.users.form.Submit(s.users.collection)
	if ok {
		s.users.modal.Close()
	}

	return s.renderUsers(), ok, nil
}

// DeleteUser removes the record with the given id; absent id is a no-op.
func (s *Session) DeleteUser(id int) (models.UserViewResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(); err != nil {
		return models.UserViewResponse{}, err
	}

	s.users.collection.Delete(id)

	return s.renderUsers(), nil
}

// PostsView renders the current derived state of the posts view.
func (s *Session) PostsView() (models.PostViewResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(); err != nil {
		return models.PostViewResponse{}, err
	}

	return s.renderPosts(), nil
}

// SearchPosts replaces the posts search term and resets the page.
func (s *Session) SearchPosts(term string) (models.PostViewResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(); err != nil {
		return models.PostViewResponse{}, err
	}

	s.posts.pipeline.SetSearch(term)

	return s.renderPosts(), nil
}

// PostsNextPage advances the posts view a page forward.
func (s *Session) PostsNextPage() (models.PostViewResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(); err != nil {
		return models.PostViewResponse{}, err
	}

	s.posts.pipeline.NextPage(s.posts.collection.Snapshot())

	return s.renderPosts(), nil
}

// PostsPrevPage goes the posts view a page back.
func (s *Session) PostsPrevPage() (models.PostViewResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(); err != nil {
		return models.PostViewResponse{}, err
	}

	s.posts.pipeline.PrevPage(s.posts.collection.Snapshot())

	return s.renderPosts(), nil
}

// OpenPostCreate opens the post form empty.
func (s *Session) OpenPostCreate() (models.PostViewResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(); err != nil {
		return models.PostViewResponse{}, err
	}

	s.posts.form.Reset()
	s.posts.modal.OpenCreate()

	return s.renderPosts(), nil
}

// OpenPostEdit opens the post form pre-filled from the given record.
func (s *Session) OpenPostEdit(id int) (models.PostViewResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(); err != nil {
		return models.PostViewResponse{}, err
	}

	post, found := s.posts.collection.Find(id)
	if !found {
		return models.PostViewResponse{}, models.ErrUnknownEntity
	}

	s.posts.form.FillFrom(post)
	s.posts.modal.OpenEdit(id)

	return s.renderPosts(), nil
}

// ClosePostModal closes the post form without submitting.
func (s *Session) ClosePostModal() (models.PostViewResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(); err != nil {
		return models.PostViewResponse{}, err
	}

	s.posts.modal.Close()
	s.posts.form.Reset()

	return s.renderPosts(), nil
}

// SubmitPost behaves like SubmitUser for the posts view.
func (s *Session) SubmitPost(submission models.PostSubmission) (models.PostViewResponse, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(); err != nil {
		return models.PostViewResponse{}, false, err
	}

	s.posts.form.SetValues(submission)

	_, ok := s.posts.form.Submit(s.posts.collection, s.users.collection.Snapshot())
	if ok {
		s.posts.modal.Close()
	}

	return s.renderPosts(), ok, nil
}

// DeletePost removes the record with the given id; absent id is a no-op.
func (s *Session) DeletePost(id int) (models.PostViewResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(); err != nil {
		return models.PostViewResponse{}, err
	}

	s.posts.collection.Delete(id)

	return s.renderPosts(), nil
}
