package console

import "sync"

// Modal is the closed/open/closed presentational state machine. Cancel,
// confirm and backdrop dismissal all land back in the closed state.
type Modal struct {
	mu    sync.Mutex
	open  bool
	title string
}

// Open shows the modal with a title. Opening an already open modal just
// replaces the title.
func (m *Modal) Open(title string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = true
	m.title = title
}

// Close hides the modal. Used for explicit cancel and backdrop dismissal
// alike.
func (m *Modal) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = false
	m.title = ""
}

// IsOpen reports whether the modal is visible.
func (m *Modal) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// Title returns the modal title, empty when closed.
func (m *Modal) Title() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.title
}

// ConfirmDialog gates an action behind an explicit affirmation. For
// destructive actions this dialog is the second affirmation step; there
// is no undo once the action runs.
type ConfirmDialog struct {
	mu        sync.Mutex
	open      bool
	message   string
	danger    bool
	onConfirm func()
}

// Open shows the dialog. onConfirm runs only on explicit confirmation.
func (d *ConfirmDialog) Open(message string, danger bool, onConfirm func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = true
	d.message = message
	d.danger = danger
	d.onConfirm = onConfirm
}

// Confirm invokes the pending action and closes the dialog.
func (d *ConfirmDialog) Confirm() {
	d.mu.Lock()
	fn := d.onConfirm
	d.open = false
	d.message = ""
	d.danger = false
	d.onConfirm = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Cancel closes the dialog without running the action.
func (d *ConfirmDialog) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = false
	d.message = ""
	d.danger = false
	d.onConfirm = nil
}

// IsOpen reports whether the dialog is waiting for an answer.
func (d *ConfirmDialog) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// Message returns the dialog prompt, empty when closed.
func (d *ConfirmDialog) Message() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.message
}

// Danger reports whether the dialog guards a destructive action.
func (d *ConfirmDialog) Danger() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.danger
}
