package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/davfen/mingle/internal/api"
)

// navigateMsg asks the root model to navigate to an in-app path.
type navigateMsg struct {
	path string
}

// navigate is the in-app equivalent of following a link.
func navigate(path string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{path: path} }
}

// snackbarMsg raises a transient notification.
type snackbarMsg struct {
	text    string
	isError bool
}

// clearSnackbarMsg hides the snackbar if it still shows generation id.
type clearSnackbarMsg struct {
	id int
}

func notify(text string) tea.Cmd {
	return func() tea.Msg { return snackbarMsg{text: text} }
}

// notifyErr surfaces err as a snackbar. Aborted requests produce nothing;
// supersession is an expected outcome, never a user-visible failure.
func notifyErr(err error) tea.Cmd {
	if err == nil || api.Aborted(err) {
		return nil
	}
	text := api.UserMessage(err)
	return func() tea.Msg { return snackbarMsg{text: text, isError: true} }
}

// confirmMsg asks the root model to show a yes/no prompt before running
// action.
type confirmMsg struct {
	prompt string
	action tea.Cmd
}

func confirm(prompt string, action tea.Cmd) tea.Cmd {
	return func() tea.Msg { return confirmMsg{prompt: prompt, action: action} }
}

// loadingMsg toggles the process-wide loading indicator.
type loadingMsg struct {
	active bool
}

// sessionChangedMsg reports a session transition (login, refresh, logout);
// the root model re-renders the current route under the new auth state.
type sessionChangedMsg struct{}

// sequenced is implemented by page fetch results so the root model can drop
// responses that arrive after the user has navigated away.
type sequenced interface {
	navSeq() int
}
