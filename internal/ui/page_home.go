package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/davfen/mingle/internal/api"
	"github.com/davfen/mingle/internal/flight"
)

type suggestionsLoadedMsg struct {
	seq   int
	items []api.Suggestion
	err   error
}

func (m suggestionsLoadedMsg) navSeq() int { return m.seq }

type followedMsg struct {
	seq      int
	username string
	err      error
}

func (m followedMsg) navSeq() int { return m.seq }

// homePage is the landing screen. Logged-in users get follow suggestions,
// everyone else gets a pitch and the login hint.
type homePage struct {
	deps
	suggestions []api.Suggestion
	cursor      int
	loaded      bool
	err         error
}

func newHomePage(d deps) *homePage {
	return &homePage{deps: d}
}

func (p *homePage) Title() string { return "Home" }

func (p *homePage) Init() tea.Cmd {
	if !p.sess.Authenticated() {
		return nil
	}
	seq := p.seq
	return func() tea.Msg {
		items, err := flight.Do(p.flights, p.ctx, "suggestions", func(ctx context.Context) (*[]api.Suggestion, error) {
			s, err := p.client.FollowSuggestions(ctx)
			if err != nil {
				return nil, err
			}
			return &s, nil
		})
		if items == nil && err == nil {
			return nil
		}
		var list []api.Suggestion
		if items != nil {
			list = *items
		}
		return suggestionsLoadedMsg{seq: seq, items: list, err: err}
	}
}

func (p *homePage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case suggestionsLoadedMsg:
		p.loaded = true
		p.err = msg.err
		p.suggestions = msg.items
		p.cursor = 0
		return p, nil

	case followedMsg:
		if msg.err != nil {
			return p, notifyErr(msg.err)
		}
		return p, notify("Now following " + msg.username)

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if p.cursor < len(p.suggestions)-1 {
				p.cursor++
			}
		case "k", "up":
			if p.cursor > 0 {
				p.cursor--
			}
		case "enter":
			if p.cursor < len(p.suggestions) {
				return p, navigate("/user/" + p.suggestions[p.cursor].Username)
			}
		case "f":
			if p.cursor < len(p.suggestions) {
				return p, p.follow(p.suggestions[p.cursor])
			}
		}
	}
	return p, nil
}

func (p *homePage) follow(s api.Suggestion) tea.Cmd {
	seq := p.seq
	return func() tea.Msg {
		_, err := p.client.ToggleFollow(p.ctx, s.UserID)
		return followedMsg{seq: seq, username: s.Username, err: err}
	}
}

func (p *homePage) View(width int) string {
	var b strings.Builder
	b.WriteString(p.styles.Title.Render("Welcome to Mingle"))
	b.WriteString("\n\n")
	b.WriteString(p.styles.Text.Render("Discover events, venues and people near you."))
	b.WriteString("\n\n")

	if !p.sess.Authenticated() {
		b.WriteString(p.styles.MutedText.Render("Press L to log in or create an account."))
		return b.String()
	}

	b.WriteString(p.styles.AccentText.Render("People you may know"))
	b.WriteString("\n")
	switch {
	case p.err != nil:
		b.WriteString(p.styles.DangerText.Render(api.UserMessage(p.err)))
	case !p.loaded:
		b.WriteString(p.styles.MutedText.Render("Loading suggestions..."))
	case len(p.suggestions) == 0:
		b.WriteString(p.styles.MutedText.Render("No suggestions right now."))
	default:
		for i, s := range p.suggestions {
			line := fmt.Sprintf("%-20s %s", s.Username, s.Bio)
			if i == p.cursor {
				b.WriteString(p.styles.Selected.Render("> " + line))
			} else {
				b.WriteString(p.styles.Text.Render("  " + line))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(p.styles.MutedText.Render("enter view profile  f follow"))
	}
	return b.String()
}
