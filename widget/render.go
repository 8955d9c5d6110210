package widget

import (
	"fmt"

	"github.com/docker/go-units"
)

// ViewModel is everything a front end needs to draw the widget. Exactly one
// of Selecting and Result is set.
type ViewModel struct {
	View      View
	Selecting *SelectingView
	Result    *ResultView
}

// SelectingView ...
type SelectingView struct {
	DropZone      DropZone
	TotalSize     string
	Expiration    Expiration
	Options       []ExpirationOption
	SubmitLabel   string
	SubmitEnabled bool
}

// DropZone ...
type DropZone struct {
	Title  string
	Hint   string
	Active bool
}

// ExpirationOption ...
type ExpirationOption struct {
	Value    Expiration
	Label    string
	Selected bool
}

// ResultView ...
type ResultView struct {
	Heading   string
	Subtitle  string
	ShareLink string
	Filename  string
}

// Render maps s to a view model. It has no side effects.
func Render(s State, baseOrigin string) ViewModel {
	if s.View == ViewShowingResult && s.Result != nil {
		return ViewModel{
			View: ViewShowingResult,
			Result: &ResultView{
				Heading:   "Success!",
				Subtitle:  "Your files are ready to share",
				ShareLink: ShareLink(baseOrigin, s.Result.DownloadPath),
				Filename:  s.Result.Filename,
			},
		}
	}

	sel := s.Selection
	v := &SelectingView{
		DropZone: DropZone{
			Title:  "Drag & Drop files here",
			Hint:   "or press b to browse",
			Active: sel.DragActive,
		},
		Expiration:    sel.Expiration,
		SubmitLabel:   "Upload Now",
		SubmitEnabled: s.CanSubmit(),
	}
	if n := len(sel.Files); n > 0 {
		v.DropZone.Title = fmt.Sprintf("%d file(s) selected", n)
		v.DropZone.Hint = "press b to change"
		v.TotalSize = units.HumanSizeWithPrecision(float64(totalSize(sel.Files)), 3)
	}
	if sel.Submitting {
		v.SubmitLabel = "Uploading..."
	}
	for _, e := range expirations {
		v.Options = append(v.Options, ExpirationOption{
			Value:    e,
			Label:    e.Label(),
			Selected: e == sel.Expiration,
		})
	}

	return ViewModel{View: ViewSelecting, Selecting: v}
}

func totalSize(files []FileHandle) int64 {
	var total int64
	for _, f := range files {
		total += f.Size()
	}
	return total
}
