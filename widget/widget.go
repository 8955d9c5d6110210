package widget

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/artyrk/go-uploadwidget/network"
	"github.com/bitrise-io/go-utils/v2/log"
)

// ErrUploadFailed wraps every error returned by a failed submit. Transport
// and server failures are not told apart.
var ErrUploadFailed = errors.New("upload failed")

const (
	uploadFailedMessage = "Upload failed"
	uploadDoneMessage   = "Upload complete"
	copiedMessage       = "Copied!"
)

// ClipboardWriter ...
type ClipboardWriter interface {
	WriteText(text string) error
}

// Option configures a Widget.
type Option func(*Widget)

// WithBaseOrigin sets the origin prepended to download paths.
func WithBaseOrigin(origin string) Option {
	return func(w *Widget) { w.baseOrigin = origin }
}

// WithEndpoint sets the upload URL. Defaults to {baseOrigin}/upload.
func WithEndpoint(endpoint string) Option {
	return func(w *Widget) { w.endpoint = endpoint }
}

// WithClipboard ...
func WithClipboard(c ClipboardWriter) Option {
	return func(w *Widget) { w.clipboard = c }
}

// WithNotifier ...
func WithNotifier(n Notifier) Option {
	return func(w *Widget) { w.notifier = n }
}

// WithLogger ...
func WithLogger(l log.Logger) Option {
	return func(w *Widget) { w.logger = l }
}

// Widget collects files and an expiration option, submits them as one
// upload and keeps the resulting share link.
type Widget struct {
	uploader   network.Uploader
	clipboard  ClipboardWriter
	notifier   Notifier
	logger     log.Logger
	baseOrigin string
	endpoint   string

	mu    sync.Mutex
	state State
}

// New ...
func New(uploader network.Uploader, opts ...Option) *Widget {
	w := &Widget{
		uploader: uploader,
		state:    InitialState(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = log.NewLogger()
	}
	if w.notifier == nil {
		w.notifier = NewLogNotifier(w.logger)
	}
	if w.endpoint == "" {
		w.endpoint = strings.TrimSuffix(w.baseOrigin, "/") + "/upload"
	}
	return w
}

// State returns a snapshot of the current state.
func (w *Widget) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.clone()
}

// Dispatch applies a to the widget state.
func (w *Widget) Dispatch(a Action) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dispatchLocked(a)
}

func (w *Widget) dispatchLocked(a Action) error {
	next, err := Reduce(w.state, a)
	if err != nil {
		return err
	}
	w.logger.Debugf("%s: view=%s files=%d expiration=%s submitting=%t", a.name(), next.View, len(next.Selection.Files), next.Selection.Expiration, next.Selection.Submitting)
	w.state = next
	return nil
}

// SelectFiles replaces the current selection. Files are not validated.
func (w *Widget) SelectFiles(files []FileHandle) error {
	return w.Dispatch(SelectFiles{Files: files})
}

// SetDragActive ...
func (w *Widget) SetDragActive(active bool) error {
	return w.Dispatch(SetDragActive{Active: active})
}

// SetExpiration ...
func (w *Widget) SetExpiration(option Expiration) error {
	return w.Dispatch(SetExpiration{Option: option})
}

// Submit uploads the current selection. It returns nil without sending
// anything when there is nothing to submit or an upload is already running.
// A failed upload notifies the user once and keeps the selection.
func (w *Widget) Submit(ctx context.Context) error {
	params, ok := w.beginSubmit()
	if !ok {
		return nil
	}

	resp, err := w.uploader.Upload(ctx, params)
	if err != nil {
		w.logger.Debugf("Upload error: %s", err)
		w.finishSubmit(SubmitFailed{Err: err})
		w.notifier.Notify(LevelError, uploadFailedMessage)
		return fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	w.finishSubmit(SubmitSucceeded{Result: UploadResult{
		DownloadPath: resp.DownloadURL,
		Filename:     resp.Filename,
		ShortCode:    resp.ShortCode,
	}})
	w.notifier.Notify(LevelSuccess, uploadDoneMessage)
	return nil
}

func (w *Widget) beginSubmit() (network.UploadParams, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.state.CanSubmit() {
		return network.UploadParams{}, false
	}
	if err := w.dispatchLocked(SubmitStarted{}); err != nil {
		return network.UploadParams{}, false
	}
	return network.UploadParams{
		Endpoint:   w.endpoint,
		Files:      append([]FileHandle(nil), w.state.Selection.Files...),
		Expiration: string(w.state.Selection.Expiration),
	}, true
}

func (w *Widget) finishSubmit(a Action) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.dispatchLocked(a); err != nil {
		w.logger.Warnf("Failed to finish submit: %s", err)
	}
}

// ShareLink returns the absolute link for the current result, or "" in the
// selection view.
func (w *Widget) ShareLink() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state.Result == nil {
		return ""
	}
	return ShareLink(w.baseOrigin, w.state.Result.DownloadPath)
}

// CopyShareLink writes the share link to the clipboard. Clipboard errors are
// returned unchanged and no confirmation is shown.
func (w *Widget) CopyShareLink() error {
	link := w.ShareLink()
	if link == "" {
		return fmt.Errorf("copy share link: %w", ErrActionNotAllowed)
	}
	if w.clipboard == nil {
		return fmt.Errorf("copy share link: no clipboard configured")
	}
	if err := w.clipboard.WriteText(link); err != nil {
		return err
	}
	w.notifier.Notify(LevelInfo, copiedMessage)
	return nil
}

// StartNewUpload discards the result and returns to an empty selection.
func (w *Widget) StartNewUpload() error {
	return w.Dispatch(StartNewUpload{})
}

// Render maps the current state to its view model.
func (w *Widget) Render() ViewModel {
	return Render(w.State(), w.baseOrigin)
}

// ShareLink joins origin and a server-issued download path.
func ShareLink(origin, downloadPath string) string {
	if strings.HasPrefix(downloadPath, "/") {
		origin = strings.TrimSuffix(origin, "/")
	}
	return origin + downloadPath
}
