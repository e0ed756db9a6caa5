package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/davfen/mingle/internal/api"
	"github.com/davfen/mingle/internal/router"
)

func testModel(t *testing.T, startPath string) Model {
	t.Helper()
	d := testDeps(t)
	return New(Options{
		Context:   d.ctx,
		Client:    d.client,
		Session:   d.sess,
		ThemeName: "Dracula",
		PageSize:  10,
		StartPath: startPath,
	})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	model, cmd := m.Update(msg)
	next, ok := model.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", model)
	}
	return next, cmd
}

func TestStaleResponsesAreDropped(t *testing.T) {
	m := testModel(t, "/events")

	page, ok := m.current.(*eventsPage)
	if !ok {
		t.Fatalf("current page = %T, want *eventsPage", m.current)
	}

	result := &api.EventsPage{Events: []api.Event{{EventID: "e1", Title: "Old"}}, Total: 1}

	// A response stamped with a stale sequence number must not reach the page.
	m, _ = update(t, m, eventsLoadedMsg{seq: m.seq - 1, result: result})
	if page.loaded {
		t.Fatal("stale response reached the page")
	}

	m, _ = update(t, m, eventsLoadedMsg{seq: m.seq, result: result})
	if !page.loaded {
		t.Fatal("current response did not reach the page")
	}
	if len(page.events) != 1 || page.total != 1 {
		t.Fatalf("events/total = %d/%d, want 1/1", len(page.events), page.total)
	}
}

func TestNavigationReplacesPageAndBumpsSeq(t *testing.T) {
	m := testModel(t, "/")
	seq := m.seq

	m, _ = update(t, m, navigateMsg{path: "/places"})
	if m.match.Page != router.PagePlaces {
		t.Fatalf("page after navigate = %v, want %v", m.match.Page, router.PagePlaces)
	}
	if m.seq != seq+1 {
		t.Fatalf("seq = %d, want %d", m.seq, seq+1)
	}
	if _, ok := m.current.(*placesPage); !ok {
		t.Fatalf("current page = %T, want *placesPage", m.current)
	}
}

func TestHistoryKeysWalkBackAndForward(t *testing.T) {
	m := testModel(t, "/")
	m.ready = true

	m, _ = update(t, m, navigateMsg{path: "/events"})
	m, _ = update(t, m, navigateMsg{path: "/places"})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'['}})
	if m.match.Page != router.PageEvents {
		t.Fatalf("page after back = %v, want %v", m.match.Page, router.PageEvents)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{']'}})
	if m.match.Page != router.PagePlaces {
		t.Fatalf("page after forward = %v, want %v", m.match.Page, router.PagePlaces)
	}
}

func TestSnackbarClearMatchesGeneration(t *testing.T) {
	m := testModel(t, "/")

	m, _ = update(t, m, snackbarMsg{text: "first"})
	first := m.snackbarID
	m, _ = update(t, m, snackbarMsg{text: "second"})

	// The first notification's timer firing must not clear the second.
	m, _ = update(t, m, clearSnackbarMsg{id: first})
	if m.snackbar != "second" {
		t.Fatalf("snackbar = %q, want %q", m.snackbar, "second")
	}

	m, _ = update(t, m, clearSnackbarMsg{id: m.snackbarID})
	if m.snackbar != "" {
		t.Fatalf("snackbar = %q, want empty", m.snackbar)
	}
}

func TestConfirmPromptGatesAction(t *testing.T) {
	m := testModel(t, "/")
	m.ready = true

	ran := false
	action := func() tea.Msg { ran = true; return nil }
	m, _ = update(t, m, confirmMsg{prompt: "Delete?", action: action})
	if m.confirm == nil {
		t.Fatal("confirm prompt not shown")
	}

	// Declining drops the action.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	if m.confirm != nil {
		t.Fatal("confirm prompt still shown after decline")
	}
	if ran {
		t.Fatal("action ran after decline")
	}

	m, _ = update(t, m, confirmMsg{prompt: "Delete?", action: action})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	if cmd == nil {
		t.Fatal("accept returned no command")
	}
	cmd()
	if !ran {
		t.Fatal("action did not run after accept")
	}
}

func TestGlobalKeysNavigate(t *testing.T) {
	m := testModel(t, "/")
	m.ready = true

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'E'}})
	if cmd == nil {
		t.Fatal("E produced no command")
	}
	msg := cmd()
	nav, ok := msg.(navigateMsg)
	if !ok {
		t.Fatalf("E produced %T, want navigateMsg", msg)
	}
	if nav.path != "/events" {
		t.Fatalf("E navigates to %q, want /events", nav.path)
	}

	m, _ = update(t, m, nav)
	if m.match.Page != router.PageEvents {
		t.Fatalf("page = %v, want %v", m.match.Page, router.PageEvents)
	}
}

func TestAnonymousLoginKeyGoesToLoginPage(t *testing.T) {
	m := testModel(t, "/")
	m.ready = true

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'L'}})
	if cmd == nil {
		t.Fatal("L produced no command")
	}
	nav, ok := cmd().(navigateMsg)
	if !ok || nav.path != "/login" {
		t.Fatalf("L for anonymous user = %#v, want navigate to /login", nav)
	}
}
