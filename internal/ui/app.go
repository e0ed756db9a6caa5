package ui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/davfen/mingle/internal/api"
	"github.com/davfen/mingle/internal/flight"
	"github.com/davfen/mingle/internal/router"
	"github.com/davfen/mingle/internal/session"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    *api.Client
	Session   *session.Manager
	ThemeName string
	PageSize  int
	StartPath string
}

const snackbarVisible = 3 * time.Second

// confirmState is a pending yes/no prompt for a destructive action.
type confirmState struct {
	prompt string
	action tea.Cmd
}

// Model is the root application state: the navigation shell plus the single
// mounted page. Every navigation fully replaces the page, so no stale screen
// state survives a route change.
type Model struct {
	ctx      context.Context
	client   *api.Client
	sess     *session.Manager
	flights  *flight.Group
	history  *router.History
	styles   Styles
	pageSize int

	width  int
	height int
	ready  bool

	seq     int
	match   router.Match
	current page

	loading     bool
	snackbar    string
	snackbarErr bool
	snackbarID  int

	confirm *confirmState
}

// New creates the root model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	start := opts.StartPath
	if start == "" {
		start = "/"
	}

	m := Model{
		ctx:      ctx,
		client:   opts.Client,
		sess:     opts.Session,
		flights:  &flight.Group{},
		history:  router.NewHistory(start),
		styles:   GetTheme(opts.ThemeName).Styles(),
		pageSize: pageSize,
	}
	m.mount(m.history.Current())
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnterAltScreen}
	if m.current != nil {
		if cmd := m.current.Init(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case navigateMsg:
		path := m.history.Navigate(msg.path)
		return m, m.mount(path)

	case sessionChangedMsg:
		// Remount the current route so it renders under the new auth state.
		return m, m.mount(m.history.Current())

	case loadingMsg:
		m.loading = msg.active
		return m, nil

	case snackbarMsg:
		m.snackbar = msg.text
		m.snackbarErr = msg.isError
		m.snackbarID++
		id := m.snackbarID
		return m, tea.Tick(snackbarVisible, func(time.Time) tea.Msg {
			return clearSnackbarMsg{id: id}
		})

	case clearSnackbarMsg:
		if msg.id == m.snackbarID {
			m.snackbar = ""
		}
		return m, nil

	case confirmMsg:
		m.confirm = &confirmState{prompt: msg.prompt, action: msg.action}
		return m, nil
	}

	if seqMsg, ok := msg.(sequenced); ok && seqMsg.navSeq() != m.seq {
		// Response for a route the user already left; the page it targeted
		// is gone.
		return m, nil
	}
	return m.updatePage(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderNav())
	b.WriteString("\n\n")

	if m.current != nil {
		b.WriteString(m.current.View(m.width))
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// A pending confirmation swallows all input until answered.
	if m.confirm != nil {
		switch msg.String() {
		case "y", "Y", "enter":
			action := m.confirm.action
			m.confirm = nil
			return m, action
		case "n", "N", "esc":
			m.confirm = nil
			return m, nil
		}
		return m, nil
	}

	// Pages with a focused input get every key except the quit chord.
	if capturer, ok := m.current.(inputCapturer); ok && capturer.capturesInput() {
		return m.updatePage(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "[":
		if path, ok := m.history.Back(); ok {
			return m, m.mount(path)
		}
		return m, nil
	case "]":
		if path, ok := m.history.Forward(); ok {
			return m, m.mount(path)
		}
		return m, nil
	case "H":
		return m, navigate("/")
	case "F":
		return m, navigate("/feed")
	case "E":
		return m, navigate("/events")
	case "P":
		return m, navigate("/places")
	case "S":
		return m, navigate("/search")
	case "C":
		return m, navigate("/create")
	case "O":
		return m, navigate("/settings")
	case "R":
		return m, navigate("/profile")
	case "L":
		if !m.sess.Authenticated() {
			return m, navigate("/login")
		}
		sess := m.sess
		return m, confirm("Are you sure you want to log out?", func() tea.Msg {
			sess.Logout()
			return nil
		})
	}

	return m.updatePage(msg)
}

func (m Model) updatePage(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.current == nil {
		return m, nil
	}
	next, cmd := m.current.Update(msg)
	m.current = next
	return m, cmd
}

// mount replaces the page for path. The previous page is discarded entirely
// and its late responses are filtered by the bumped sequence number.
func (m *Model) mount(path string) tea.Cmd {
	m.seq++
	m.match = router.Resolve(path)
	m.current = newPage(m.match, deps{
		ctx:      m.ctx,
		client:   m.client,
		sess:     m.sess,
		flights:  m.flights,
		styles:   m.styles,
		pageSize: m.pageSize,
		seq:      m.seq,
	})
	return m.current.Init()
}

type navItem struct {
	label string
	page  router.Page
	key   string
}

func (m Model) renderNav() string {
	items := []navItem{
		{"Home", router.PageHome, "H"},
		{"Feed", router.PageFeed, "F"},
		{"Events", router.PageEvents, "E"},
		{"Places", router.PagePlaces, "P"},
		{"Search", router.PageSearch, "S"},
	}
	if m.sess.Authenticated() {
		items = append(items,
			navItem{"Create", router.PageCreateEvent, "C"},
			navItem{"Settings", router.PageSettings, "O"},
			navItem{"Profile", router.PageProfile, "R"},
			navItem{"Logout", router.PageLogin, "L"},
		)
	} else {
		items = append(items, navItem{"Login", router.PageLogin, "L"})
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		label := item.key + ":" + item.label
		if item.page == m.match.Page {
			parts = append(parts, m.styles.NavActive.Render(label))
		} else {
			parts = append(parts, m.styles.NavBar.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderStatus() string {
	if m.confirm != nil {
		return m.styles.WarningText.Render(m.confirm.prompt + " [y/n]")
	}

	var parts []string
	if m.loading {
		parts = append(parts, m.styles.MutedText.Render("loading..."))
	}
	if m.snackbar != "" {
		if m.snackbarErr {
			parts = append(parts, m.styles.DangerText.Render(m.snackbar))
		} else {
			parts = append(parts, m.styles.SuccessText.Render(m.snackbar))
		}
	}
	if len(parts) == 0 {
		parts = append(parts, m.styles.MutedText.Render("[/] history  q quit"))
	}
	return strings.Join(parts, "  ")
}

// monitor feeds request lifecycle events into the program as the loading
// indicator. Best-effort: overlapping requests may flicker, which is accepted.
type monitor struct {
	send func(tea.Msg)
}

func (mo monitor) RequestStarted()  { mo.send(loadingMsg{active: true}) }
func (mo monitor) RequestFinished() { mo.send(loadingMsg{active: false}) }

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())

	opts.Client.SetMonitor(monitor{send: p.Send})
	opts.Session.OnChange(func() { p.Send(sessionChangedMsg{}) })

	_, err := p.Run()
	return err
}
