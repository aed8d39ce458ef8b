// Package modal implements the state machine gating the create/edit form
// overlay of one view: closed, open for creation, or open for editing a
// specific record. Only one mode is active at a time; opening while open
// replaces the mode instead of stacking.
package modal

// Mode is the current state of the overlay.
type Mode int

const (
	// Closed means no form is visible.
	Closed Mode = iota
	// Create means the form is open with empty fields.
	Create
	// Edit means the form is open, pre-filled from an existing record.
	Edit
)

// String renders the mode for the view response.
func (m Mode) String() string {
	switch m {
	case Create:
		return "create"
	case Edit:
		return "edit"
	}

	return "closed"
}

// Controller tracks the overlay mode and, in edit mode, the record id
// being edited.
type Controller struct {
	mode      Mode
	editingID int
}

// New returns a closed controller.
func New() *Controller {
	return &Controller{mode: Closed}
}

// OpenCreate switches to the create mode.
func (c *Controller) OpenCreate() {
	c.mode = Create
	c.editingID = 0
}

// OpenEdit switches to the edit mode for the given record id.
func (c *Controller) OpenEdit(id int) {
	c.mode = Edit
	c.editingID = id
}

// Close returns to the closed state, forgetting any editing id.
func (c *Controller) Close() {
	c.mode = Closed
	c.editingID = 0
}

// Mode returns the current overlay mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// EditingID returns the id being edited, or 0 outside the edit mode.
func (c *Controller) EditingID() int {
	return c.editingID
}

// IsOpen reports whether any form is visible.
func (c *Controller) IsOpen() bool {
	return c.mode != Closed
}
