package widget

import "github.com/artyrk/go-uploadwidget/network"

// FileHandle is a reference to a file chosen by the user. Handles are
// supplied by the host (see the picker package); the widget never builds them.
type FileHandle = network.File

// View identifies which of the two screens is shown.
type View int

const (
	ViewSelecting View = iota
	ViewShowingResult
)

func (v View) String() string {
	switch v {
	case ViewSelecting:
		return "selecting"
	case ViewShowingResult:
		return "showing-result"
	default:
		return "unknown"
	}
}

// SelectionState ...
type SelectionState struct {
	Files      []FileHandle
	DragActive bool
	Expiration Expiration
	Submitting bool
}

// UploadResult describes a completed upload. DownloadPath is the server's
// download_url as returned, not a full URL.
type UploadResult struct {
	DownloadPath string
	Filename     string
	ShortCode    string
}

// State is the whole widget state. Result is set if and only if View is
// ViewShowingResult.
type State struct {
	View      View
	Selection SelectionState
	Result    *UploadResult
}

// InitialState is the empty selection view.
func InitialState() State {
	return State{
		View: ViewSelecting,
		Selection: SelectionState{
			Expiration: DefaultExpiration,
		},
	}
}

// CanSubmit reports whether a submit would issue a request.
func (s State) CanSubmit() bool {
	return s.View == ViewSelecting && len(s.Selection.Files) > 0 && !s.Selection.Submitting
}

func (s State) clone() State {
	c := s
	c.Selection.Files = append([]FileHandle(nil), s.Selection.Files...)
	if s.Result != nil {
		r := *s.Result
		c.Result = &r
	}
	return c
}
