// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package lockscreen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/applock/internal/lock"
	"github.com/jeranaias/applock/internal/pattern"
	"github.com/jeranaias/applock/internal/ui/styles"
)

// Layout offsets of the App style padding.
const (
	padTop  = 1
	padLeft = 2
	// canvasIndent is the blank margin before the canvas on each line.
	canvasIndent = 2
)

// =============================================================================
// NOTICES
// =============================================================================

type noticeKind int

const (
	noticeNone noticeKind = iota
	noticeInfo
	noticeSuccess
	noticeWarning
	noticeError
	noticeLocked
)

type notice struct {
	kind noticeKind
	text string
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the lock screen. It owns no authentication state; every
// decision is delegated to the engine.
type Model struct {
	engine *lock.Engine
	theme  *styles.Theme
	keys   KeyMap
	help   help.Model
	canvas canvas

	input     textinput.Model
	provision textinput.Model

	provisioning bool
	notice       notice
	showHelp     bool

	// mouse enables pointer drawing. mouseDown is set between a left
	// press and its release.
	mouse     bool
	mouseDown bool

	// done is set after a terminal outcome; the next key exits.
	done bool
	err  error

	width  int
	height int
}

// Option configures a Model.
type Option func(*Model)

// WithCellSpacing sets how many terminal columns and rows separate
// neighbouring pattern nodes.
func WithCellSpacing(cols, rows int) Option {
	return func(m *Model) {
		m.canvas = newCanvas(m.engine.Recognizer().Grid(), cols, rows)
	}
}

// WithHelp shows or hides the key help footer.
func WithHelp(show bool) Option {
	return func(m *Model) {
		m.showHelp = show
	}
}

// WithMouse enables or disables drawing the pattern with the mouse.
// Keyboard drawing is always available.
func WithMouse(enabled bool) Option {
	return func(m *Model) {
		m.mouse = enabled
	}
}

// WithTheme replaces the detected theme.
func WithTheme(t *styles.Theme) Option {
	return func(m *Model) {
		if t != nil {
			m.theme = t
		}
	}
}

// New creates a lock screen over engine.
func New(engine *lock.Engine, opts ...Option) Model {
	input := textinput.New()
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '*'
	input.CharLimit = 64
	input.Prompt = "> "

	provision := textinput.New()
	provision.EchoMode = textinput.EchoPassword
	provision.EchoCharacter = '*'
	provision.CharLimit = 64
	provision.Prompt = "> "
	provision.Placeholder = "new password"

	m := Model{
		engine:    engine,
		theme:     styles.NewTheme(),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		canvas:    newCanvas(engine.Recognizer().Grid(), 10, 5),
		input:     input,
		provision: provision,
		showHelp:  true,
		mouse:     true,
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.input.PromptStyle = m.theme.InputPrompt
	m.provision.PromptStyle = m.theme.InputPrompt

	if engine.State().Terminal() {
		m.done = true
		m.syncFocus()
		return m
	}
	if engine.NeedsProvisioning(engine.Modality()) {
		m.openProvisioning()
	} else {
		m.syncFocus()
	}
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// State reports the engine state after the program exits.
func (m Model) State() lock.State {
	return m.engine.State()
}

// MouseEnabled reports whether mouse events draw on the pattern canvas.
func (m Model) MouseEnabled() bool {
	return m.mouse
}

// Err returns a fatal engine error, if one ended the program.
func (m Model) Err() error {
	return m.err
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles key, mouse and resize messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	return m.updateInputs(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.done {
		if key.Matches(msg, m.keys.Continue) {
			return m, tea.Quit
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.provisioning {
		return m.handleProvisionKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		return m.selectModality((m.engine.Modality() + 1) % lock.Modality(len(lock.Modalities)))

	case key.Matches(msg, m.keys.Prev):
		n := lock.Modality(len(lock.Modalities))
		return m.selectModality((m.engine.Modality() + n - 1) % n)

	case key.Matches(msg, m.keys.Choose):
		idx := int(msg.Runes[0] - '1')
		return m.selectModality(lock.Modalities[idx])

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Clear):
		m.clearEntry()
		return m, nil

	case m.engine.Modality() == lock.ModalityPattern && key.Matches(msg, m.keys.Draw):
		m.drawNode(int(msg.Runes[0] - '0'))
		return m, nil
	}

	return m.updateInputs(msg)
}

func (m Model) handleProvisionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		if err := m.engine.CancelPasswordProvisioning(lock.ModalityPIN); err != nil {
			return m.fail(err)
		}
		m.provisioning = false
		m.provision.Reset()
		m.notice = notice{noticeInfo, fmt.Sprintf("Password not set. Switched to %s.", m.engine.Modality().Label())}
		m.syncFocus()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		err := m.engine.ProvisionPassword(m.provision.Value())
		switch {
		case errors.Is(err, lock.ErrEmptyPassword):
			m.notice = notice{noticeWarning, "Password must not be empty."}
			return m, nil
		case errors.Is(err, lock.ErrAlreadyProvisioned):
			m.notice = notice{noticeWarning, "Password is already set for this session."}
		case err != nil:
			return m.fail(err)
		default:
			m.notice = notice{noticeInfo, "Password set. Enter it to unlock."}
		}
		m.provisioning = false
		m.provision.Reset()
		m.syncFocus()
		return m, nil
	}

	var cmd tea.Cmd
	m.provision, cmd = m.provision.Update(msg)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.mouse || m.done || m.provisioning || m.engine.Modality() != lock.ModalityPattern {
		return m, nil
	}

	originCol, originRow := m.canvasOrigin()
	x, y := m.canvas.toGrid(msg.X-originCol, msg.Y-originRow)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		// A press always starts over, dropping any keyboard gesture.
		m.mouseDown = true
		m.engine.BeginGesture()
		m.engine.FeedPoint(x, y)
	case tea.MouseActionMotion:
		if m.mouseDown {
			m.engine.FeedPoint(x, y)
		}
	case tea.MouseActionRelease:
		if m.mouseDown {
			m.mouseDown = false
			m.engine.EndGesture()
		}
	}
	return m, nil
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.provisioning {
		m.provision, cmd = m.provision.Update(msg)
		return m, cmd
	}
	if m.engine.Modality().IsText() && !m.done {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// =============================================================================
// ACTIONS
// =============================================================================

func (m Model) selectModality(mod lock.Modality) (tea.Model, tea.Cmd) {
	if err := m.engine.SelectModality(mod); err != nil {
		return m.fail(err)
	}
	m.input.Reset()
	m.notice = notice{}
	m.mouseDown = false
	if m.engine.NeedsProvisioning(mod) {
		m.openProvisioning()
	} else {
		m.syncFocus()
	}
	return m, textinput.Blink
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	var (
		out lock.Outcome
		err error
	)
	if m.engine.Modality() == lock.ModalityPattern {
		m.engine.EndGesture()
		out, err = m.engine.SubmitPattern()
	} else {
		out, err = m.engine.Submit(m.input.Value())
		m.input.Reset()
	}
	if err != nil {
		return m.fail(err)
	}

	m.notice = noticeFor(out)
	if out.Terminal {
		m.done = true
		m.syncFocus()
	}
	return m, nil
}

func (m *Model) clearEntry() {
	if m.engine.Modality() == lock.ModalityPattern {
		m.engine.ClearPattern()
		return
	}
	m.input.Reset()
}

// drawNode extends the keyboard gesture with node id, starting one if
// none is in progress.
func (m *Model) drawNode(id int) {
	center, ok := m.engine.Recognizer().Grid().Center(id)
	if !ok {
		return
	}
	if !m.engine.Recognizer().Active() {
		m.engine.BeginGesture()
	}
	m.engine.FeedPoint(center.X, center.Y)
}

func (m *Model) openProvisioning() {
	m.provisioning = true
	m.input.Blur()
	m.provision.Reset()
	m.provision.Focus()
	m.keys.modeProvision()
}

// syncFocus focuses the text field for text modalities and sets the
// enabled key bindings for the current screen.
func (m *Model) syncFocus() {
	m.provision.Blur()
	switch {
	case m.done:
		m.input.Blur()
		m.keys.modeDone()
	case m.engine.Modality().IsText():
		m.input.Focus()
		m.keys.modeText()
	default:
		m.input.Blur()
		m.keys.modePattern()
	}
}

// fail ends the program on an engine error. The only expected case is
// ErrInvalidState, which means input arrived after a terminal outcome.
func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	m.err = err
	m.done = true
	m.notice = notice{noticeError, err.Error()}
	return m, tea.Quit
}

func noticeFor(out lock.Outcome) notice {
	switch {
	case out.Granted():
		return notice{noticeSuccess, out.Message()}
	case out.LockedOut():
		return notice{noticeLocked, out.Message()}
	case out.Kind == lock.OutcomeConfigurationError:
		return notice{noticeWarning, out.Message()}
	default:
		return notice{noticeError, out.Message()}
	}
}

// =============================================================================
// VIEW
// =============================================================================

// canvasOrigin returns the screen cell of node 1's center. It must agree
// with the layout produced by View.
func (m Model) canvasOrigin() (col, row int) {
	return padLeft + canvasIndent + 1, padTop + lipgloss.Height(m.headerView()) + 1
}

// View renders the lock screen.
func (m Model) View() string {
	sections := []string{m.headerView(), "", m.bodyView(), "", m.attemptsView()}
	if n := m.noticeView(); n != "" {
		sections = append(sections, n)
	}
	if m.showHelp {
		sections = append(sections, m.theme.Footer.Render(m.help.View(m.keys)))
	}
	return m.theme.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) headerView() string {
	title := m.theme.Title.Render("applock")

	tabs := make([]string, 0, len(lock.Modalities))
	for _, mod := range lock.Modalities {
		label := mod.Label()
		switch {
		case m.done:
			tabs = append(tabs, m.theme.TabDisabled.Render(label))
		case mod == m.engine.Modality():
			tabs = append(tabs, m.theme.TabActive.Render(label))
		default:
			tabs = append(tabs, m.theme.Tab.Render(label))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m Model) bodyView() string {
	if m.provisioning {
		return m.theme.ProvisionBox.Render(lipgloss.JoinVertical(lipgloss.Left,
			m.theme.ProvisionTitle.Render("Set a password for this session"),
			m.provision.View(),
			m.theme.InputHint.Render("Enter to save, Esc to use PIN instead"),
		))
	}

	mod := m.engine.Modality()
	if mod.IsText() {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.theme.InputLabel.Render(fmt.Sprintf("Enter %s", mod.Label())),
			m.input.View(),
		)
	}

	indent := strings.Repeat(" ", canvasIndent)
	grid := m.canvas.render(m.theme, m.engine.CurrentPattern())
	lines := strings.Split(grid, "\n")
	for i := range lines {
		lines[i] = indent + lines[i]
	}

	path := pattern.FormatSequence(m.engine.CurrentPattern())
	if path == "" {
		hint := "type node numbers 1-9"
		if m.mouse {
			hint = "draw with the mouse or type 1-9"
		}
		path = m.theme.InputHint.Render(hint)
	} else {
		path = m.theme.PathText.Render(path)
	}
	return lipgloss.JoinVertical(lipgloss.Left, strings.Join(lines, "\n"), "", indent+path)
}

func (m Model) attemptsView() string {
	remaining := m.engine.Remaining()
	text := fmt.Sprintf("Attempts left: %d of %d", remaining, m.engine.MaxAttempts())
	if remaining <= 1 {
		return m.theme.AttemptsLow.Render(text)
	}
	return m.theme.Attempts.Render(text)
}

func (m Model) noticeView() string {
	text := m.notice.text
	if text == "" {
		return ""
	}
	if m.width > 0 {
		// Leave room for padding and the status indicator.
		text = runewidth.Truncate(text, max(m.width-padLeft*2-6, 10), "...")
	}
	switch m.notice.kind {
	case noticeSuccess:
		return styles.RenderSuccess(text)
	case noticeWarning:
		return styles.RenderWarning(text)
	case noticeError:
		return styles.RenderError(text)
	case noticeLocked:
		return styles.RenderLocked(text)
	default:
		return styles.RenderInfo(text)
	}
}
