package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Brendon-Hablutzel/api-client/internal/domain"
)

// ErrCrashed is returned by Run after a panic ended the session.
var ErrCrashed = errors.New("interactive session crashed")

type focusArea int

const (
	focusURL focusArea = iota
	focusMethods
	focusBody
	focusResponse
	focusCount
)

const methodsWidth = 12

type methodItem domain.HTTPMethod

func (m methodItem) Title() string       { return string(m) }
func (m methodItem) Description() string { return "" }
func (m methodItem) FilterValue() string { return string(m) }

type model struct {
	ctx   context.Context
	theme Theme
	deps  Deps
	log   *slog.Logger

	url      textinput.Model
	body     textarea.Model
	methods  list.Model
	response viewport.Model

	label  string
	notice string

	focus    focusArea
	inFlight bool

	width  int
	height int
}

func Run(ctx context.Context, deps Deps) error {
	if deps.Submitter == nil {
		return errors.New("tui: nil submitter")
	}

	s := wrapSafe(newModel(ctx, deps), deps.Logger, deps.Crash)
	p := tea.NewProgram(s, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()

	if sm, ok := final.(safeModel); ok && sm.state.crashed {
		return fmt.Errorf("%w: %s", ErrCrashed, sm.state.reason)
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func newModel(ctx context.Context, deps Deps) model {
	if ctx == nil {
		ctx = context.Background()
	}
	log := deps.Logger
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	url := textinput.New()
	url.Placeholder = "https://example.com/api"
	url.Prompt = ""
	url.Focus()

	body := textarea.New()
	body.Placeholder = "Request body (sent with POST only)"
	body.ShowLineNumbers = false
	body.Blur()

	items := make([]list.Item, 0, len(domain.Methods()))
	for _, m := range domain.Methods() {
		items = append(items, methodItem(m))
	}
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	methods := list.New(items, delegate, methodsWidth, len(items)+4)
	methods.Title = "Method"
	methods.SetShowStatusBar(false)
	methods.SetShowPagination(false)
	methods.SetFilteringEnabled(false)
	methods.SetShowHelp(false)
	methods.KeyMap.Quit.SetEnabled(false)
	methods.KeyMap.ForceQuit.SetEnabled(false)

	return model{
		ctx:      ctx,
		theme:    DefaultTheme(),
		deps:     deps,
		log:      log,
		url:      url,
		body:     body,
		methods:  methods,
		response: viewport.New(0, 0),
		focus:    focusURL,
	}
}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case submissionDoneMsg:
		return m.applySubmission(msg), nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// The notice is modal until dismissed.
		if m.notice != "" {
			switch msg.String() {
			case "esc", "enter":
				m.notice = ""
			}
			return m, nil
		}

		switch msg.String() {
		case "tab":
			return m.setFocus((m.focus + 1) % focusCount), nil
		case "shift+tab":
			return m.setFocus((m.focus + focusCount - 1) % focusCount), nil
		case "ctrl+s":
			return m.submit()
		case "enter":
			if m.focus == focusMethods {
				return m.submit()
			}
		}
	}

	return m.updateFocused(msg)
}

func (m model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusURL:
		m.url, cmd = m.url.Update(msg)
	case focusMethods:
		m.methods, cmd = m.methods.Update(msg)
	case focusBody:
		m.body, cmd = m.body.Update(msg)
	case focusResponse:
		m.response, cmd = m.response.Update(msg)
	}
	return m, cmd
}

func (m model) setFocus(f focusArea) model {
	m.focus = f
	m.url.Blur()
	m.body.Blur()
	switch f {
	case focusURL:
		m.url.Focus()
	case focusBody:
		m.body.Focus()
	}
	return m
}

// submit snapshots the form and starts one request. Submits while a request
// is in flight are dropped.
func (m model) submit() (tea.Model, tea.Cmd) {
	if m.inFlight {
		return m, nil
	}

	method := domain.MethodGet
	if it, ok := m.methods.SelectedItem().(methodItem); ok {
		method = domain.HTTPMethod(it)
	}
	body := m.body.Value()
	req := domain.NewRequest(method, m.url.Value(), &body)

	m.inFlight = true
	m.log.Debug("submit.start", "method", string(req.Method), "url", req.URL)
	return m, cmdSubmit(m.ctx, m.deps.Submitter, req)
}

func (m model) applySubmission(msg submissionDoneMsg) model {
	m.inFlight = false
	m.label = msg.sub.Label
	m.response.SetContent(msg.sub.Body)
	m.response.GotoTop()
	if msg.sub.LogErr != nil {
		m.notice = logNotice(msg.sub.LogErr, m.deps.LogFile)
	}
	return m
}

func (m *model) resize(w, h int) {
	m.width, m.height = w, h

	inner := max(w-4, 10)
	m.url.Width = max(inner-methodsWidth-6, 5)
	m.methods.SetSize(methodsWidth, len(domain.Methods())+4)
	m.body.SetWidth(inner)
	m.body.SetHeight(max(h/5, 3))
	m.response.Width = inner
	// title, url row, body, label, help and borders
	m.response.Height = max(h-m.body.Height()-len(domain.Methods())-14, 3)
}

func (m model) card(f focusArea, content string) string {
	if m.focus == f {
		return m.theme.Focused.Render(content)
	}
	return m.theme.Card.Render(content)
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(0, 1)
	header := m.theme.Title.Render("apiclient") + "  " +
		m.theme.Subtitle.Render("compose a request and send it")

	urlCard := m.card(focusURL, "URL:\n"+m.url.View())
	methodCard := m.card(focusMethods, m.methods.View())
	top := lipgloss.JoinHorizontal(lipgloss.Top, urlCard, methodCard)

	bodyCard := m.card(focusBody, "Body:\n"+m.body.View())

	label := m.label
	if m.inFlight {
		label = "Sending…"
	}
	if m.width > 0 {
		label = clampString(label, max(m.width-6, 1))
	}
	respCard := m.card(focusResponse, m.theme.Label.Render(label)+"\n"+m.response.View())

	help := m.theme.Help.Render("tab/shift+tab focus • enter on method send • ctrl+s send • ctrl+c quit")

	parts := []string{header, top, bodyCard, respCard}
	if m.notice != "" {
		parts = append(parts, m.theme.Notice.Render(m.notice+"\n\n"+m.theme.Help.Render("esc dismiss")))
	}
	parts = append(parts, help)

	return wrap.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
