package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/artyrk/go-uploadwidget/network"
	"github.com/artyrk/go-uploadwidget/picker"
	"github.com/artyrk/go-uploadwidget/widget"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type submitDoneMsg struct {
	err error
}

type filesResolvedMsg struct {
	files []network.File
	err   error
}

// Model is the bubbletea model of the upload widget. All state lives in the
// wrapped widget; the model only adds terminal concerns.
type Model struct {
	ctx      context.Context
	widget   *widget.Widget
	provider picker.FileProvider
	toasts   *Toasts

	keys     KeyMap
	help     help.Model
	spinner  spinner.Model
	browser  filepicker.Model
	browsing bool

	// set from the enter key until submitDoneMsg, since the widget flips
	// Submitting on the command goroutine
	uploading bool
}

// New returns a model for w. toasts must be the notifier w was built with.
func New(ctx context.Context, w *widget.Widget, provider picker.FileProvider, toasts *Toasts) Model {
	browser := filepicker.New()
	browser.Height = 10
	if wd, err := os.Getwd(); err == nil {
		browser.CurrentDirectory = wd
	}

	return Model{
		ctx:      ctx,
		widget:   w,
		provider: provider,
		toasts:   toasts,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		browser:  browser,
	}
}

// Run starts the interactive widget and blocks until the user quits.
func Run(ctx context.Context, w *widget.Widget, provider picker.FileProvider, toasts *Toasts) error {
	p := tea.NewProgram(
		New(ctx, w, provider, toasts),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	)
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.BlurMsg:
		// a drag that left the terminal never drops
		_ = m.widget.SetDragActive(false)
		return m, nil
	case submitDoneMsg:
		// the widget already recorded the outcome and notified
		m.uploading = false
		return m, nil
	case filesResolvedMsg:
		m.selectResolved(msg)
		return m, nil
	case spinner.TickMsg:
		if !m.uploading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// directory listings and errors of the file browser
	var cmd tea.Cmd
	m.browser, cmd = m.browser.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) && (!m.browsing || msg.String() == "ctrl+c") {
		return m, tea.Quit
	}
	m.toasts.Clear()

	if m.browsing {
		return m.handleBrowserKey(msg)
	}

	state := m.widget.State()
	if state.View == widget.ViewShowingResult {
		return m.handleResultKey(msg)
	}

	if msg.Paste {
		// highlighted until the dropped paths resolve
		_ = m.widget.SetDragActive(true)
		return m, m.resolveDrop(string(msg.Runes))
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		if !state.CanSubmit() || m.uploading {
			return m, nil
		}
		m.uploading = true
		return m, tea.Batch(m.submit(), m.spinner.Tick)
	case key.Matches(msg, m.keys.Browse):
		if state.Selection.Submitting {
			return m, nil
		}
		m.browsing = true
		return m, m.browser.Init()
	case key.Matches(msg, m.keys.NextExp):
		_ = m.widget.SetExpiration(state.Selection.Expiration.Next())
	case key.Matches(msg, m.keys.PrevExp):
		_ = m.widget.SetExpiration(state.Selection.Expiration.Prev())
	case key.Matches(msg, m.keys.ShowHelp):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Copy):
		if err := m.widget.CopyShareLink(); err != nil {
			m.toasts.Notify(widget.LevelError, fmt.Sprintf("Copy failed: %s", err))
		}
	case key.Matches(msg, m.keys.NewUp):
		_ = m.widget.StartNewUpload()
	}
	return m, nil
}

func (m Model) handleBrowserKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.browsing = false
		return m, nil
	}

	var cmd tea.Cmd
	m.browser, cmd = m.browser.Update(msg)
	if ok, path := m.browser.DidSelectFile(msg); ok {
		m.browsing = false
		return m, m.resolve([]string{path})
	}
	return m, cmd
}

func (m Model) submit() tea.Cmd {
	w, ctx := m.widget, m.ctx
	return func() tea.Msg {
		return submitDoneMsg{err: w.Submit(ctx)}
	}
}

func (m Model) resolveDrop(text string) tea.Cmd {
	sources, err := picker.ParseDrop(text)
	if err != nil {
		return func() tea.Msg { return filesResolvedMsg{err: err} }
	}
	if len(sources) == 0 {
		_ = m.widget.SetDragActive(false)
		return nil
	}
	return m.resolve(sources)
}

func (m Model) resolve(sources []string) tea.Cmd {
	provider, ctx := m.provider, m.ctx
	return func() tea.Msg {
		files, err := provider.Resolve(ctx, sources)
		return filesResolvedMsg{files: files, err: err}
	}
}

func (m Model) selectResolved(msg filesResolvedMsg) {
	if msg.err != nil {
		m.toasts.Notify(widget.LevelError, fmt.Sprintf("Could not use dropped files: %s", msg.err))
		_ = m.widget.SetDragActive(false)
		return
	}
	if len(msg.files) == 0 {
		_ = m.widget.SetDragActive(false)
		return
	}
	if err := m.widget.SelectFiles(msg.files); err != nil {
		m.toasts.Notify(widget.LevelError, "Files can't be changed right now")
	}
}

// View implements tea.Model.
func (m Model) View() string {
	vm := m.widget.Render()
	m.keys.view = vm.View

	var body string
	switch {
	case m.browsing:
		body = m.browserView()
	case vm.View == widget.ViewShowingResult:
		body = m.resultView(vm.Result)
	default:
		body = m.selectingView(vm.Selecting)
	}

	var b strings.Builder
	b.WriteString(cardStyle.Render(body))
	b.WriteString("\n")
	if level, message := m.toasts.Current(); message != "" {
		b.WriteString(toastStyles[string(level)].Render(message))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) selectingView(v *widget.SelectingView) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("✦ ArtyrkUpload"))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("Upload files securely & fast"))
	b.WriteString("\n\n")

	zone := v.DropZone.Title
	if v.TotalSize != "" {
		zone += " · " + v.TotalSize
	}
	zone += "\n" + hintStyle.Render(v.DropZone.Hint)
	if v.DropZone.Active {
		b.WriteString(dropZoneActiveStyle.Render(zone))
	} else {
		b.WriteString(dropZoneStyle.Render(zone))
	}
	b.WriteString("\n\n")

	b.WriteString(hintStyle.Render("Expiration"))
	b.WriteString("\n")
	var options []string
	for _, o := range v.Options {
		if o.Selected {
			options = append(options, optionSelectedStyle.Render(o.Label))
		} else {
			options = append(options, optionStyle.Render(o.Label))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, options...))
	b.WriteString("\n\n")

	label := v.SubmitLabel
	if m.widget.State().Selection.Submitting {
		label = m.spinner.View() + " " + label
	}
	if v.SubmitEnabled {
		b.WriteString(buttonStyle.Render(label))
	} else {
		b.WriteString(buttonDisabledStyle.Render(label))
	}
	return b.String()
}

func (m Model) resultView(v *widget.ResultView) string {
	var b strings.Builder
	b.WriteString(checkStyle.Render("✔ " + v.Heading))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(v.Subtitle))
	b.WriteString("\n\n")
	if v.Filename != "" {
		b.WriteString(v.Filename)
		b.WriteString("\n")
	}
	b.WriteString(linkStyle.Render(v.ShareLink))
	return b.String()
}

func (m Model) browserView() string {
	return titleStyle.Render("Pick a file") + "\n" +
		hintStyle.Render(m.browser.CurrentDirectory) + "\n\n" +
		m.browser.View()
}
