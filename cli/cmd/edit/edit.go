// Package edit implements an interactive equation editor with a live
// domain-coloring preview drawn in the terminal.
package edit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/domcol/log"
	"github.com/ardnew/domcol/plot"
	"github.com/ardnew/domcol/render"
	"github.com/ardnew/domcol/render/cpu"
	"github.com/ardnew/domcol/shader"
)

const prompt = "➜ "

const helpLine = "enter commit · ↑/↓ select · ctrl+x delete · ctrl+p plot · " +
	"ctrl+e $EDITOR · tab complete · ctrl+c quit"

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	titleStyle      = lipgloss.NewStyle().Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle      = suggestionStyle.Bold(true).Underline(true)
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true).Underline(true)
)

// plottedMsg reports the outcome of one plot.
type plottedMsg struct {
	res *plot.Result
	err error
	id  int
}

// editListMsg carries the list read back from the external editor.
type editListMsg struct{ list []string }

// editErrorMsg is sent when the external editor fails.
type editErrorMsg struct{ err error }

// model is the Bubble Tea model for the editor.
type model struct {
	ctxFunc      func() context.Context
	bridge       *render.Bridge
	session      *plot.Session
	equations    *atomic.Pointer[[]string] // list read by the session
	result       *plot.Result
	plotErr      error
	previewErr   error
	logger       log.Logger
	input        textinput.Model
	list         []string
	matches      fuzzy.Matches
	preview      string
	base         render.View
	view         render.View
	selected     int    // index into list; len(list) is the new-equation slot
	seq          uint64 // last pulse seen
	plots        int    // id of the latest plot
	wordStart    int    // byte offset of current word start
	wordEnd      int    // byte offset of current word end
	suggIdx      int    // selected candidate index
	preTabCursor int    // cursor position before tab-cycling began
	preTabText   string // input text before tab-cycling began
	width        int
	tabActive    bool
	quitting     bool
}

// Run starts the editor on list. Previews are drawn with the software
// renderer using the center and scale of view.
func Run(
	ctx context.Context,
	list []string,
	view render.View,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	b := render.NewBridge(cpu.New(cpu.WithLogger(logger)), render.WithLogger(logger))
	defer b.Close()

	m, err := newModel(ctx, b, list, view, logger)
	if err != nil {
		return err
	}

	logger.TraceContext(ctx, "editor start", slog.Int("equations", len(list)))

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	b *render.Bridge,
	list []string,
	view render.View,
	logger log.Logger,
) (model, error) {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.TextStyle = inputStyle
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	equations := new(atomic.Pointer[[]string])

	m := model{
		ctxFunc:   func() context.Context { return ctx },
		bridge:    b,
		equations: equations,
		session: plot.NewSession(b,
			func() []string { return *equations.Load() },
			plot.WithDialect(shader.GLSL),
			plot.WithLogger(logger),
		),
		logger:  logger,
		input:   ti,
		base:    view,
		view:    previewView(view, defaultWidth),
		width:   defaultWidth,
		suggIdx: -1,
	}

	m.setList(slices.Clone(list))
	m.selected = len(m.list)

	// The initial list is plotted by Init.
	if len(m.list) > 0 {
		m.plots = 1
	}

	if err := b.Attach(m.view); err != nil {
		return model{}, err
	}

	return m, nil
}

// setList replaces the list the session plots.
func (m *model) setList(list []string) {
	m.list = list
	m.equations.Store(&list)
	m.selected = min(m.selected, len(list))
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		waitPulse(m.ctxFunc(), m.bridge.Pulse(), m.seq),
	}

	if m.plots > 0 {
		cmds = append(cmds, m.plotCmd())
	}

	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(prompt) - 2
		m.view = previewView(m.base, msg.Width)

		if err := m.bridge.Attach(m.view); err != nil {
			m.previewErr = err

			return m, nil
		}

		if m.bridge.Program() == nil {
			return m, nil
		}

		return m, drawPreview(m.ctxFunc(), m.bridge, m.view)

	case plottedMsg:
		if msg.id != m.plots {
			return m, nil
		}

		m.result, m.plotErr = msg.res, msg.err

		m.logger.TraceContext(m.ctxFunc(), "editor plotted",
			slog.Int("plot", msg.id),
			slog.Int("valid", len(msg.res.Valid())),
			slog.String("state", m.bridge.State().String()),
		)

		return m, nil

	case pulseMsg:
		m.seq = msg.seq

		return m, tea.Batch(
			waitPulse(m.ctxFunc(), m.bridge.Pulse(), m.seq),
			drawPreview(m.ctxFunc(), m.bridge, m.view),
		)

	case previewMsg:
		m.previewErr = msg.err
		if msg.err == nil {
			m.preview = msg.text
		}

		return m, nil

	case editListMsg:
		m.setList(msg.list)
		m.selected = len(m.list)
		m.input.SetValue("")
		refreshMatches(&m, false)

		return m.plot()

	case editErrorMsg:
		m.plotErr = msg.err

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

// plot submits the list and returns a command delivering the outcome.
// Outcomes of earlier plots are dropped when they arrive.
func (m model) plot() (model, tea.Cmd) {
	m.plots++

	return m, m.plotCmd()
}

// plotCmd compiles and submits the list now, in submission order, and
// returns a command that waits for the bridge to settle.
func (m model) plotCmd() tea.Cmd {
	id := m.plots
	res, done := m.session.Plot(m.ctxFunc())

	return func() tea.Msg {
		return plottedMsg{id: id, res: res, err: <-done}
	}
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Equations"))
	b.WriteString("\n")

	for i, eq := range m.list {
		b.WriteString(m.listLine(i, eq))
		b.WriteString("\n")
	}

	newSlot := hintStyle.Render("+ new equation")
	if m.selected == len(m.list) {
		newSlot = promptStyle.Render("▸ ") + newSlot
	} else {
		newSlot = "  " + newSlot
	}

	b.WriteString(newSlot)
	b.WriteString("\n\n")

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.hintLine())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")

	if diag := m.bridge.Diagnostics(); diag != "" {
		b.WriteString(errorStyle.Render(diag))
		b.WriteString("\n")
	}

	if m.preview != "" {
		b.WriteString(m.preview)
		b.WriteString("\n")
	}

	b.WriteString(hintStyle.Render(helpLine))
	b.WriteString("\n")

	return b.String()
}

// compiled returns the outcome of equation i from the last plot, if the
// equation has not been edited since.
func (m model) compiled(i int) (plot.Equation, bool) {
	if m.result == nil || i >= len(m.result.Equations) {
		return plot.Equation{}, false
	}

	eq := m.result.Equations[i]

	return eq, eq.Source == m.list[i]
}

func (m model) listLine(i int, eq string) string {
	var b strings.Builder

	if i == m.selected {
		b.WriteString(promptStyle.Render("▸ "))
	} else {
		b.WriteString("  ")
	}

	b.WriteString(hintStyle.Render(fmt.Sprintf("%2d ", i)))

	res, ok := m.compiled(i)

	switch {
	case !ok:
		b.WriteString(hintStyle.Render("·"))
	case res.OK():
		b.WriteString(resultStyle.Render("✔"))
	default:
		b.WriteString(errorStyle.Render("✘"))
	}

	b.WriteString(" ")
	b.WriteString(eq)

	if ok && !res.OK() {
		b.WriteString("  ")
		b.WriteString(errorStyle.Render(res.Err.Error()))
	}

	return b.String()
}

// hintLine shows the signature of the enclosing call, or the completion
// candidates, or a usage hint.
func (m model) hintLine() string {
	input := m.input.Value()

	if strings.TrimSpace(input) == "" {
		if m.selected < len(m.list) {
			return hintStyle.Render("Enter an empty line to delete the equation")
		}

		return hintStyle.Render("Type an equation in z, such as (z^2+1)/(z-1)")
	}

	if call := detectFunctionCall(input, m.input.Position()); call.inCall {
		if signature, params, doc := getSignature(call.name); signature != "" {
			hint := renderSignatureHint(signature, params, call.argIndex)
			if doc != "" {
				hint += "  " + hintStyle.Render(doc)
			}

			return hint
		}
	}

	return renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width)
}

func (m model) statusLine() string {
	state := m.bridge.State()

	style := hintStyle

	switch state {
	case render.Active:
		style = resultStyle
	case render.Error:
		style = errorStyle
	}

	line := style.Render(state.String())

	if m.seq > 0 {
		line += hintStyle.Render(" · pulse " + strconv.FormatUint(m.seq, 10))
	}

	if m.plotErr != nil && !errors.Is(m.plotErr, render.ErrSuperseded) {
		line += "  " + errorStyle.Render(m.plotErr.Error())
	}

	if m.previewErr != nil {
		line += "  " + errorStyle.Render(m.previewErr.Error())
	}

	return line
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(
		m.ctxFunc(),
		"editor keypress",
		slog.String("key", msg.String()),
		slog.Int("type", int(msg.Type)),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		m.quitting = true

		return m, tea.Quit

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.commit()
		}
		// Lock in the current tab candidate without committing.
		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.handleTab(1)

	case tea.KeyShiftTab:
		return m.handleTab(-1)

	case tea.KeyUp:
		return m.selectEquation(m.selected - 1), nil

	case tea.KeyDown:
		return m.selectEquation(m.selected + 1), nil

	case tea.KeyCtrlX:
		return m.deleteSelected()

	case tea.KeyCtrlP:
		return m.plot()

	case tea.KeyCtrlE:
		return m.handleEdit()

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)

			return m, nil
		}

		return m.selectEquation(m.selected), nil

	case tea.KeyRunes:
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// Any other key edits the input without auto-confirming a completion.
	var cmd tea.Cmd

	m.tabActive = false
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// selectEquation selects entry i, clamped to the list and its new slot,
// and loads its text into the input.
func (m model) selectEquation(i int) model {
	m.selected = max(0, min(i, len(m.list)))
	m.tabActive = false

	text := ""
	if m.selected < len(m.list) {
		text = m.list[m.selected]
	}

	m.input.SetValue(text)
	m.input.SetCursor(len(text))
	refreshMatches(&m, false)

	return m
}

// commit stores the input in the selected entry and plots. An empty input
// deletes the entry. Committing the new slot appends and keeps the new
// slot selected.
func (m model) commit() (model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())

	switch {
	case m.selected == len(m.list) && text == "":
		return m, nil
	case m.selected == len(m.list):
		m.setList(append(slices.Clone(m.list), text))
		m.selected = len(m.list)
		m.input.SetValue("")
	case text == "":
		return m.deleteSelected()
	default:
		list := slices.Clone(m.list)
		list[m.selected] = text
		m.setList(list)
	}

	m.logger.TraceContext(m.ctxFunc(), "editor commit",
		slog.Int("equation", m.selected),
		slog.String("source", text),
	)

	refreshMatches(&m, false)

	return m.plot()
}

// deleteSelected removes the selected entry and plots.
func (m model) deleteSelected() (model, tea.Cmd) {
	if m.selected >= len(m.list) {
		return m, nil
	}

	m.setList(slices.Delete(slices.Clone(m.list), m.selected, m.selected+1))
	m = m.selectEquation(m.selected)

	return m.plot()
}

func (m model) handleEdit() (model, tea.Cmd) {
	cmd := &editListCommand{
		ctxFunc: m.ctxFunc,
		logger:  m.logger,
		list:    slices.Clone(m.list),
	}

	return m, tea.Exec(cmd, func(err error) tea.Msg {
		if err != nil {
			return editErrorMsg{err: err}
		}

		return editListMsg{list: cmd.edited}
	})
}

// handleTab completes the current word. dir is 1 to cycle forward and -1
// to cycle backward.
func (m model) handleTab(dir int) (model, tea.Cmd) {
	if len(m.matches) == 0 {
		return m, nil
	}

	// Single candidate: complete and confirm immediately.
	if len(m.matches) == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m, nil
	}

	if m.tabActive {
		m.suggIdx = (m.suggIdx + dir + len(m.matches)) % len(m.matches)
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if dir < 0 {
			m.suggIdx = len(m.matches) - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m, nil
}

// replaceCurrentWord replaces the current word with replacement and moves
// the cursor after it.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	newInput := input[:m.wordStart] + replacement + input[m.wordEnd:]
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(newInput)
	m.input.SetCursor(newCursor)

	m.wordEnd = newCursor
}

// refreshMatches recomputes the matches for the current input. With
// autoConfirm set, a typed word equal to its sole candidate is confirmed.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	candidate := m.matches[0].Str
	if m.input.Value()[m.wordStart:m.wordEnd] == candidate {
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}
