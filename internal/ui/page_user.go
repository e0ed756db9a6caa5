package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/davfen/mingle/internal/api"
	"github.com/davfen/mingle/internal/flight"
)

type userLoadedMsg struct {
	seq     int
	profile *api.PublicProfile
	err     error
}

func (m userLoadedMsg) navSeq() int { return m.seq }

type followToggledMsg struct {
	seq       int
	following bool
	err       error
}

func (m followToggledMsg) navSeq() int { return m.seq }

// userPage shows another user's public profile.
type userPage struct {
	deps
	username string
	profile  *api.PublicProfile
	loaded   bool
	err      error
	toggling bool
}

func newUserPage(d deps, username string) *userPage {
	return &userPage{deps: d, username: username}
}

func (p *userPage) Title() string { return "@" + p.username }

func (p *userPage) Init() tea.Cmd {
	seq := p.seq
	username := p.username
	return func() tea.Msg {
		profile, err := flight.Do(p.flights, p.ctx, "user", func(ctx context.Context) (*api.PublicProfile, error) {
			return p.client.UserProfile(ctx, username)
		})
		if profile == nil && err == nil {
			return nil
		}
		return userLoadedMsg{seq: seq, profile: profile, err: err}
	}
}

func (p *userPage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case userLoadedMsg:
		p.loaded = true
		p.err = msg.err
		p.profile = msg.profile
		return p, nil

	case followToggledMsg:
		p.toggling = false
		if msg.err != nil {
			return p, notifyErr(msg.err)
		}
		if p.profile != nil {
			p.profile.IsFollowing = msg.following
		}
		if msg.following {
			return p, notify("Following @" + p.username)
		}
		return p, notify("Unfollowed @" + p.username)

	case tea.KeyMsg:
		if msg.String() == "f" && p.profile != nil && !p.toggling {
			if !p.sess.Authenticated() {
				return p, navigate("/login")
			}
			if p.profile.UserID == p.sess.UserID() {
				return p, navigate("/profile")
			}
			p.toggling = true
			return p, p.toggle(p.profile.UserID)
		}
	}
	return p, nil
}

func (p *userPage) toggle(userID string) tea.Cmd {
	seq := p.seq
	return func() tea.Msg {
		following, err := p.client.ToggleFollow(p.ctx, userID)
		return followToggledMsg{seq: seq, following: following, err: err}
	}
}

func (p *userPage) View(width int) string {
	if p.err != nil {
		return p.styles.DangerText.Render(api.UserMessage(p.err))
	}
	if !p.loaded || p.profile == nil {
		return p.styles.MutedText.Render("Loading profile...")
	}

	pr := p.profile
	var b strings.Builder
	b.WriteString(p.styles.Title.Render("@" + pr.Username))
	if pr.IsVerified {
		b.WriteString(" " + p.styles.SuccessText.Render("verified"))
	}
	b.WriteString("\n\n")
	if pr.Name != "" {
		b.WriteString(p.styles.AccentText.Render(pr.Name))
		b.WriteString("\n")
	}
	if pr.Bio != "" {
		b.WriteString(p.styles.Text.Render(pr.Bio))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(p.styles.Text.Render(fmt.Sprintf(
		"%d followers  %d following", len(pr.Followers), len(pr.Follows))))
	b.WriteString("\n\n")

	if p.sess.Authenticated() && pr.UserID != p.sess.UserID() {
		switch {
		case p.toggling:
			b.WriteString(p.styles.MutedText.Render("..."))
		case pr.IsFollowing:
			b.WriteString(p.styles.MutedText.Render("f unfollow"))
		default:
			b.WriteString(p.styles.MutedText.Render("f follow"))
		}
	}
	return b.String()
}
