package widget

import (
	"errors"
	"fmt"
)

// ErrActionNotAllowed is returned when an action does not apply to the current state.
var ErrActionNotAllowed = errors.New("action not allowed in current state")

// Action is a state transition request. Every change to State goes through Reduce.
type Action interface {
	name() string
}

// SelectFiles replaces the whole selection with Files.
type SelectFiles struct {
	Files []FileHandle
}

// SetDragActive toggles the drop zone highlight.
type SetDragActive struct {
	Active bool
}

// SetExpiration ...
type SetExpiration struct {
	Option Expiration
}

// SubmitStarted marks an upload as in flight.
type SubmitStarted struct{}

// SubmitSucceeded ends an upload with a result.
type SubmitSucceeded struct {
	Result UploadResult
}

// SubmitFailed ends an upload without a result.
type SubmitFailed struct {
	Err error
}

// StartNewUpload drops the current result and returns to an empty selection.
type StartNewUpload struct{}

func (SelectFiles) name() string     { return "select-files" }
func (SetDragActive) name() string   { return "set-drag-active" }
func (SetExpiration) name() string   { return "set-expiration" }
func (SubmitStarted) name() string   { return "submit-started" }
func (SubmitSucceeded) name() string { return "submit-succeeded" }
func (SubmitFailed) name() string    { return "submit-failed" }
func (StartNewUpload) name() string  { return "start-new-upload" }

// Reduce applies a to s and returns the next state. On error the returned
// state equals s.
func Reduce(s State, a Action) (State, error) {
	next := s.clone()

	switch a := a.(type) {
	case SelectFiles:
		if s.View != ViewSelecting || s.Selection.Submitting {
			return s, notAllowed(a, s)
		}
		next.Selection.Files = append([]FileHandle(nil), a.Files...)
		next.Selection.DragActive = false
	case SetDragActive:
		if s.View != ViewSelecting {
			return s, notAllowed(a, s)
		}
		next.Selection.DragActive = a.Active
	case SetExpiration:
		if s.View != ViewSelecting {
			return s, notAllowed(a, s)
		}
		if !a.Option.Valid() {
			return s, fmt.Errorf("%w: %q", ErrInvalidExpiration, string(a.Option))
		}
		next.Selection.Expiration = a.Option
	case SubmitStarted:
		if !s.CanSubmit() {
			return s, notAllowed(a, s)
		}
		next.Selection.Submitting = true
	case SubmitSucceeded:
		if s.View != ViewSelecting || !s.Selection.Submitting {
			return s, notAllowed(a, s)
		}
		result := a.Result
		next.Selection.Submitting = false
		next.Selection.Files = nil
		next.Selection.DragActive = false
		next.Result = &result
		next.View = ViewShowingResult
	case SubmitFailed:
		if s.View != ViewSelecting || !s.Selection.Submitting {
			return s, notAllowed(a, s)
		}
		next.Selection.Submitting = false
	case StartNewUpload:
		if s.View != ViewShowingResult {
			return s, notAllowed(a, s)
		}
		next = InitialState()
	default:
		return s, fmt.Errorf("unknown action %T", a)
	}

	return next, nil
}

func notAllowed(a Action, s State) error {
	return fmt.Errorf("%s (view: %s, submitting: %t): %w", a.name(), s.View, s.Selection.Submitting, ErrActionNotAllowed)
}
