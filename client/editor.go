package client

import (
	"context"
	"sync"
	"time"

	"writesync/pkg/apperror"
)

const (
	// Quiescence is how long the draft must stay untouched before an
	// autosave fires.
	Quiescence = 2 * time.Second
	// StatusTTL is how long the transient saved indicator stays visible.
	StatusTTL = 2 * time.Second

	StatusSaved = "Saved"
	StatusError = "Error saving"
)

// Draft is the local, unsaved copy of a document's editable fields.
type Draft struct {
	Title   string
	Content string
}

type EditorOptions struct {
	// ReadOnly disables local mutation and the save timer entirely.
	ReadOnly bool
	// Quiescence overrides the debounce window (tests shrink it).
	Quiescence time.Duration
	// StatusTTL overrides how long the saved indicator lingers.
	StatusTTL time.Duration
}

// Editor maintains a local draft synchronized to one server document. Edits
// reset a single debounce timer; once the draft has been quiet for the
// quiescence window and differs from the last-synced snapshot, one update is
// issued. At most one update is in flight at a time; a save triggered while
// one is pending reschedules instead of racing it.
type Editor struct {
	session *Session
	ctx     context.Context

	mu          sync.Mutex
	id          string
	doc         Document
	draft       Draft
	synced      Draft
	readOnly    bool
	autosave    bool
	quiescence  time.Duration
	statusTTL   time.Duration
	timer       *time.Timer
	statusTimer *time.Timer
	status      string
	saving      bool
	rerun       bool
	closed      bool
}

// OpenEditor opens an editing session. With an id it fetches the document
// and seeds the draft from it; with an empty id it creates a fresh document
// first and then behaves as if opened by id. ctx also bounds the network
// calls made later by the autosave timer.
func OpenEditor(ctx context.Context, session *Session, id string, opts EditorOptions) (*Editor, error) {
	var doc Document
	var err error
	switch {
	case id != "":
		doc, err = session.Document(ctx, id)
	case opts.ReadOnly:
		return nil, apperror.New(apperror.ValidationError, "read-only editor needs a document id")
	default:
		doc, err = session.CreateDocument(ctx, "", "")
	}
	if err != nil {
		return nil, err
	}

	e := &Editor{
		session:    session,
		ctx:        ctx,
		id:         doc.ID,
		doc:        doc,
		draft:      Draft{Title: doc.Title, Content: doc.Content},
		synced:     Draft{Title: doc.Title, Content: doc.Content},
		readOnly:   opts.ReadOnly,
		autosave:   !opts.ReadOnly,
		quiescence: opts.Quiescence,
		statusTTL:  opts.StatusTTL,
	}
	if e.quiescence <= 0 {
		e.quiescence = Quiescence
	}
	if e.statusTTL <= 0 {
		e.statusTTL = StatusTTL
	}
	return e, nil
}

func (e *Editor) ID() string { return e.id }

func (e *Editor) ReadOnly() bool { return e.readOnly }

// Document returns the last server-confirmed record.
func (e *Editor) Document() Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc
}

// Draft returns a copy of the current local draft.
func (e *Editor) Draft() Draft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft
}

// Dirty reports whether the draft differs from the last-synced snapshot.
func (e *Editor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirtyLocked()
}

// Saving reports whether an update request is in flight.
func (e *Editor) Saving() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saving
}

// Status returns the save indicator: StatusSaved shortly after a successful
// save, StatusError stuck after a failed one, empty otherwise.
func (e *Editor) Status() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

func (e *Editor) Autosave() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.autosave
}

// SetAutosave toggles debounced saving. Enabling it with unsaved edits
// schedules a cycle; disabling cancels any pending one.
func (e *Editor) SetAutosave(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.readOnly || e.closed {
		return
	}
	e.autosave = enabled
	if !enabled {
		e.stopTimerLocked()
		return
	}
	if e.dirtyLocked() {
		e.bumpLocked()
	}
}

// SetTitle mutates the draft title and resets the debounce timer.
func (e *Editor) SetTitle(title string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.readOnly || e.closed || e.draft.Title == title {
		return
	}
	e.draft.Title = title
	e.bumpLocked()
}

// SetContent mutates the draft content and resets the debounce timer.
func (e *Editor) SetContent(content string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.readOnly || e.closed || e.draft.Content == content {
		return
	}
	e.draft.Content = content
	e.bumpLocked()
}

// Save issues the update immediately, bypassing the debounce timer and the
// autosave toggle. It is a no-op when the draft matches the synced snapshot.
func (e *Editor) Save(ctx context.Context) error {
	e.mu.Lock()
	e.stopTimerLocked()
	e.mu.Unlock()
	return e.save(ctx)
}

// Close stops the timers. The draft is retained; callers that want the last
// edits persisted should Save first.
func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	e.stopTimerLocked()
	if e.statusTimer != nil {
		e.statusTimer.Stop()
		e.statusTimer = nil
	}
}

func (e *Editor) dirtyLocked() bool {
	return e.draft != e.synced
}

// bumpLocked restarts the single debounce timer.
func (e *Editor) bumpLocked() {
	e.stopTimerLocked()
	e.timer = time.AfterFunc(e.quiescence, e.autosaveTick)
}

func (e *Editor) stopTimerLocked() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

func (e *Editor) autosaveTick() {
	e.mu.Lock()
	skip := e.closed || !e.autosave
	e.mu.Unlock()
	if skip {
		return
	}
	// Errors surface through the status indicator; the draft stays dirty
	// and the next cycle or a manual save retries.
	_ = e.save(e.ctx)
}

func (e *Editor) save(ctx context.Context) error {
	e.mu.Lock()
	if e.closed || e.readOnly || !e.dirtyLocked() {
		e.mu.Unlock()
		return nil
	}
	if e.saving {
		// One update in flight at a time; remember to run again once it
		// completes so the newest draft still gets saved.
		e.rerun = true
		e.mu.Unlock()
		return nil
	}
	snap := e.draft
	id := e.id
	e.saving = true
	e.rerun = false
	e.mu.Unlock()

	doc, err := e.session.UpdateDocument(ctx, id, DocumentPatch{Title: &snap.Title, Content: &snap.Content})

	e.mu.Lock()
	e.saving = false
	if err != nil {
		e.rerun = false
		e.setStatusLocked(StatusError, false)
		e.mu.Unlock()
		return err
	}

	e.doc = doc
	e.synced = Draft{Title: doc.Title, Content: doc.Content}
	// Reconcile the echo as a merge: a field edited while the request was
	// in flight keeps the local value, so a stale response never clobbers
	// a newer draft.
	if e.draft.Title == snap.Title {
		e.draft.Title = doc.Title
	}
	if e.draft.Content == snap.Content {
		e.draft.Content = doc.Content
	}
	e.setStatusLocked(StatusSaved, true)
	if (e.rerun || e.dirtyLocked()) && e.autosave && !e.closed {
		e.bumpLocked()
	}
	e.rerun = false
	e.mu.Unlock()
	return nil
}

func (e *Editor) setStatusLocked(status string, transient bool) {
	e.status = status
	if e.statusTimer != nil {
		e.statusTimer.Stop()
		e.statusTimer = nil
	}
	if transient {
		e.statusTimer = time.AfterFunc(e.statusTTL, func() {
			e.mu.Lock()
			if e.status == status {
				e.status = ""
			}
			e.mu.Unlock()
		})
	}
}
