package album

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/polaroidwall/polaroidwall/pkg/client"
	"github.com/polaroidwall/polaroidwall/pkg/models"
)

const (
	MsgCreated      = "Polaroid added successfully!"
	MsgCreateFailed = "Failed to add polaroid. Please try again."
	MsgDeleted      = "Polaroid deleted successfully!"
	MsgDeleteFailed = "Failed to delete polaroid. Please try again."
	MsgUpdateFailed = "Failed to update polaroid. Please try again."
	MsgLoadFailed   = "Failed to load polaroids. Please try again."
)

// Notifier shows transient messages to the user
type Notifier interface {
	Success(message string)
	Error(message string)
}

// ErrNotEditing is returned by Submit when the creation dialog is not open
var ErrNotEditing = errors.New("creation dialog is not open")

// Session drives a State through a polaroids server. Requests are made without
// holding the lock, so overlapping mutations each apply their own response
// once it arrives.
type Session struct {
	client   client.PolaroidsClient
	notifier Notifier

	mu    sync.Mutex
	state State
	drag  *DragItem
}

func NewSession(c client.PolaroidsClient, notifier Notifier) *Session {
	return &Session{client: c, notifier: notifier}
}

// State returns a snapshot of the current state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.state
	state.Polaroids = append([]models.Polaroid{}, s.state.Polaroids...)
	return state
}

func (s *Session) dispatch(action Action) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Reduce(s.state, action)
}

// Load replaces the local list with the server's
func (s *Session) Load(ctx context.Context) error {
	polaroids, err := s.client.ListPolaroids(ctx)
	if err != nil {
		s.notifier.Error(MsgLoadFailed)
		return err
	}

	s.dispatch(Loaded{Polaroids: polaroids})
	return nil
}

func (s *Session) OpenDialog()   { s.dispatch(DialogOpened{}) }
func (s *Session) CancelDialog() { s.dispatch(DialogCancelled{}) }

func (s *Session) ChooseFile(file *client.Upload) { s.dispatch(FileChosen{File: file}) }
func (s *Session) SetCaption(caption string)      { s.dispatch(CaptionChanged{Caption: caption}) }
func (s *Session) SetDate(date string)            { s.dispatch(DateChanged{Date: date}) }

// Submit sends the creation form. Whatever the outcome, the form is reset and
// the dialog closed once the server has answered.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.state.Dialog != DialogOpen {
		s.mu.Unlock()
		return ErrNotEditing
	}
	s.state = Reduce(s.state, DialogSubmitted{})
	form := s.state.Form
	s.mu.Unlock()

	defer s.dispatch(DialogFinished{})

	if form.File == nil {
		s.notifier.Error(MsgCreateFailed)
		return errors.New("no image chosen")
	}

	polaroid, err := s.client.CreatePolaroid(ctx, *form.File, form.Caption, form.Date)
	if err != nil {
		s.notifier.Error(MsgCreateFailed)
		return err
	}

	s.dispatch(Created{Polaroid: polaroid})
	s.notifier.Success(MsgCreated)
	return nil
}

// Delete removes a polaroid. On failure the local list is left as it was.
func (s *Session) Delete(ctx context.Context, id string) error {
	if err := s.client.DestroyPolaroid(ctx, id); err != nil {
		s.notifier.Error(MsgDeleteFailed)
		return err
	}

	s.dispatch(Deleted{ID: id})
	s.notifier.Success(MsgDeleted)
	return nil
}

// EditCaption saves an edited caption along with the polaroid's current date
func (s *Session) EditCaption(ctx context.Context, id, caption string) error {
	return s.edit(ctx, id, func(p models.Polaroid) models.PolaroidUpdate {
		return models.PolaroidUpdate{Caption: &caption, Date: &p.Date}
	})
}

// EditDate saves an edited date along with the polaroid's current caption
func (s *Session) EditDate(ctx context.Context, id, date string) error {
	return s.edit(ctx, id, func(p models.Polaroid) models.PolaroidUpdate {
		return models.PolaroidUpdate{Caption: &p.Caption, Date: &date}
	})
}

func (s *Session) edit(ctx context.Context, id string, build func(models.Polaroid) models.PolaroidUpdate) error {
	current, ok := s.find(id)
	if !ok {
		s.notifier.Error(MsgUpdateFailed)
		return errors.Errorf("polaroid %s is not loaded", id)
	}

	polaroid, err := s.client.UpdatePolaroid(ctx, id, build(current))
	if err != nil {
		s.notifier.Error(MsgUpdateFailed)
		return err
	}

	s.dispatch(Updated{Polaroid: polaroid})
	return nil
}

func (s *Session) find(id string) (models.Polaroid, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.state.Polaroids {
		if p.ID == id {
			return p, true
		}
	}
	return models.Polaroid{}, false
}

// BeginDrag starts dragging the polaroid currently at index
func (s *Session) BeginDrag(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := BeginDrag(s.state.Polaroids, index)
	if !ok {
		s.drag = nil
		return false
	}
	s.drag = &item
	return true
}

// HoverDrag moves the dragged polaroid over the card at target. The new order
// is local only.
func (s *Session) HoverDrag(target int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.drag == nil {
		return
	}

	moved, item, ok := Hover(s.state.Polaroids, *s.drag, target)
	s.drag = &item
	if ok {
		s.state = Reduce(s.state, moved)
	}
}

func (s *Session) EndDrag() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drag = nil
}
