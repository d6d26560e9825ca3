// Package album holds the view state of a polaroid wall client: the ordered
// list of polaroids, the creation dialog and its form.
package album

import (
	"github.com/polaroidwall/polaroidwall/pkg/client"
	"github.com/polaroidwall/polaroidwall/pkg/models"
)

type DialogState int

const (
	DialogClosed DialogState = iota
	DialogOpen
	DialogSubmitting
)

func (d DialogState) String() string {
	switch d {
	case DialogClosed:
		return "closed"
	case DialogOpen:
		return "open"
	case DialogSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

const (
	UploadLabel   = "Upload Image"
	UploadedLabel = "Uploaded"
)

// Form is the creation dialog's input
type Form struct {
	File    *client.Upload
	Caption string
	Date    string
}

// FileLabel is shown on the file picker
func (f Form) FileLabel() string {
	if f.File != nil {
		return UploadedLabel
	}
	return UploadLabel
}

type State struct {
	Polaroids []models.Polaroid
	Dialog    DialogState
	Form      Form
}

// Action is a state transition understood by Reduce
type Action interface {
	isAction()
}

type (
	// Loaded replaces the list wholesale with the server's
	Loaded struct{ Polaroids []models.Polaroid }
	// Created appends a polaroid the server accepted
	Created struct{ Polaroid models.Polaroid }
	// Updated replaces the polaroid with the same id
	Updated struct{ Polaroid models.Polaroid }
	// Deleted removes the polaroid with this id
	Deleted struct{ ID string }
	// Moved splices the polaroid at From into position To
	Moved struct{ From, To int }

	DialogOpened    struct{}
	DialogCancelled struct{}
	DialogSubmitted struct{}
	// DialogFinished ends a submission, whether it succeeded or not
	DialogFinished struct{}

	FileChosen     struct{ File *client.Upload }
	CaptionChanged struct{ Caption string }
	DateChanged    struct{ Date string }
)

func (Loaded) isAction()          {}
func (Created) isAction()         {}
func (Updated) isAction()         {}
func (Deleted) isAction()         {}
func (Moved) isAction()           {}
func (DialogOpened) isAction()    {}
func (DialogCancelled) isAction() {}
func (DialogSubmitted) isAction() {}
func (DialogFinished) isAction()  {}
func (FileChosen) isAction()      {}
func (CaptionChanged) isAction()  {}
func (DateChanged) isAction()     {}

// Reduce returns the state after applying action. The polaroids slice of s is
// never modified; a changed list is always a fresh slice.
func Reduce(s State, action Action) State {
	switch a := action.(type) {
	case Loaded:
		s.Polaroids = append([]models.Polaroid{}, a.Polaroids...)

	case Created:
		s.Polaroids = append(append(make([]models.Polaroid, 0, len(s.Polaroids)+1), s.Polaroids...), a.Polaroid)

	case Updated:
		polaroids := make([]models.Polaroid, len(s.Polaroids))
		for i, p := range s.Polaroids {
			if p.ID == a.Polaroid.ID {
				p = a.Polaroid
			}
			polaroids[i] = p
		}
		s.Polaroids = polaroids

	case Deleted:
		polaroids := make([]models.Polaroid, 0, len(s.Polaroids))
		for _, p := range s.Polaroids {
			if p.ID != a.ID {
				polaroids = append(polaroids, p)
			}
		}
		s.Polaroids = polaroids

	case Moved:
		s.Polaroids = move(s.Polaroids, a.From, a.To)

	case DialogOpened:
		if s.Dialog == DialogClosed {
			s.Dialog = DialogOpen
		}

	case DialogCancelled:
		if s.Dialog == DialogOpen {
			s.Dialog = DialogClosed
			s.Form = Form{}
		}

	case DialogSubmitted:
		if s.Dialog == DialogOpen {
			s.Dialog = DialogSubmitting
		}

	case DialogFinished:
		s.Dialog = DialogClosed
		s.Form = Form{}

	case FileChosen:
		s.Form.File = a.File

	case CaptionChanged:
		s.Form.Caption = a.Caption

	case DateChanged:
		s.Form.Date = a.Date
	}

	return s
}

// move returns a copy of polaroids with the element at from removed and
// reinserted at to. Out of range indices leave the order unchanged.
func move(polaroids []models.Polaroid, from, to int) []models.Polaroid {
	moved := append([]models.Polaroid{}, polaroids...)
	if from == to || from < 0 || to < 0 || from >= len(moved) || to >= len(moved) {
		return moved
	}

	dragged := moved[from]
	moved = append(moved[:from], moved[from+1:]...)
	moved = append(moved[:to], append([]models.Polaroid{dragged}, moved[to:]...)...)
	return moved
}
