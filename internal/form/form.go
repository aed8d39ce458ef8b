// Package form implements the create/edit form controllers of the two
// views. A form holds the entered field values, the id of the record being
// edited (zero in create mode) and the per-field error messages of the
// last failed submit. Validation runs through go-playground/validator with
// a custom rule for the minimal email shape.
package form

import (
	"regexp"
	"strings"

	validator "github.com/go-playground/validator/v10"

	"github.com/patric-chuzhbe/crudboard/internal/models"
	"github.com/patric-chuzhbe/crudboard/internal/store"
)

var emailShapePattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

func validateEmailShape(fieldLevel validator.FieldLevel) bool {
	return emailShapePattern.MatchString(fieldLevel.Field().String())
}

func newValidator() *validator.Validate {
	validate := validator.New()

	// The rule is registered on a fresh instance, so the error is
	// only possible with a broken tag name.
	if err := validate.RegisterValidation("emailshape", validateEmailShape); err != nil {
		panic(err)
	}

	return validate
}

var validate = newValidator()

func fieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}

	messages := map[string]string{}
	for _, fieldError := range err.(validator.ValidationErrors) {
		field := fieldError.Field()
		key := strings.ToLower(field)

		switch fieldError.Tag() {
		case "required":
			messages[key] = field + " is required"
		case "emailshape":
			messages[key] = field + " is invalid"
		}
	}

	return messages
}

// UserForm is the form controller of the users view.
type UserForm struct {
	Name     string
	Username string
	Email    string

	editingID int
	errors    map[string]string
}

// Reset clears the fields, the errors and the editing id (create mode).
func (f *UserForm) Reset() {
	*f = UserForm{}
}

// FillFrom pre-fills the form from an existing record (edit mode).
func (f *UserForm) FillFrom(user models.User) {
	f.Name = user.Name
	f.Username = user.Username
	f.Email = user.Email
	f.editingID = user.ID
	f.errors = nil
}

// SetValues replaces the entered field values with the submitted ones.
func (f *UserForm) SetValues(submission models.UserSubmission) {
	f.Name = submission.Name
	f.Username = submission.Username
	f.Email = submission.Email
}

// EditingID returns the id of the record being edited, zero in create mode.
func (f *UserForm) EditingID() int {
	return f.editingID
}

// Errors returns the per-field messages of the last failed submit.
func (f *UserForm) Errors() map[string]string {
	return f.errors
}

// Submit validates the entered values and, when they pass, applies the
// candidate to the collection: a create appends with a fresh id, an edit
// replaces the record carrying the editing id. On success the form is
// cleared and true is returned; on failure the values stay, the per-field
// errors are recorded and the collection is untouched.
func (f *UserForm) Submit(users *store.Collection[models.User]) (models.User, bool) {
	candidate := models.User{
		ID:       f.editingID,
		Name:     strings.TrimSpace(f.Name),
		Username: strings.TrimSpace(f.Username),
		Email:    strings.TrimSpace(f.Email),
	}

	f.errors = fieldErrors(validate.Struct(candidate))
	if len(f.errors) > 0 {
		return models.User{}, false
	}

	if f.editingID == 0 {
		candidate = users.Add(candidate)
	} else {
		users.Update(candidate)
	}

	f.Reset()

	return candidate, true
}

// PostForm is the form controller of the posts view. UserID is a pointer:
// nil means no selection was made yet, in which case a create defaults to
// the first available user's id.
type PostForm struct {
	Title  string
	UserID *int

	editingID int
	errors    map[string]string
}

// Reset clears the fields, the errors and the editing id (create mode).
func (f *PostForm) Reset() {
	*f = PostForm{}
}

// FillFrom pre-fills the form from an existing record (edit mode).
func (f *PostForm) FillFrom(post models.Post) {
	userID := post.UserID
	f.Title = post.Title
	f.UserID = &userID
	f.editingID = post.ID
	f.errors = nil
}

// SetValues replaces the entered field values with the submitted ones.
func (f *PostForm) SetValues(submission models.PostSubmission) {
	f.Title = submission.Title
	if submission.UserID != nil {
		f.UserID = submission.UserID
	}
}

// EditingID returns the id of the record being edited, zero in create mode.
func (f *PostForm) EditingID() int {
	return f.editingID
}

// Errors returns the per-field messages of the last failed submit.
func (f *PostForm) Errors() map[string]string {
	return f.errors
}

// Submit behaves like UserForm.Submit. The author selection defaults to
// the first user of the given collection when none was made; with no
// users present the reference stays zero, a valid dangling state.
func (f *PostForm) Submit(
	posts *store.Collection[models.Post],
	users []models.User,
) (models.Post, bool) {
	userID := 0
	switch {
	case f.UserID != nil:
		userID = *f.UserID
	case len(users) > 0:
		userID = users[0].ID
	}

	candidate := models.Post{
		ID:     f.editingID,
		UserID: userID,
		Title:  strings.TrimSpace(f.Title),
	}

	f.errors = fieldErrors(validate.Struct(candidate))
	if len(f.errors) > 0 {
		return models.Post{}, false
	}

	if f.editingID == 0 {
		candidate = posts.Add(candidate)
	} else {
		posts.Update(candidate)
	}

	f.Reset()

	return candidate, true
}
