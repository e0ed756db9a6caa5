package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/davfen/mingle/internal/api"
	"github.com/davfen/mingle/internal/flight"
)

type profileLoadedMsg struct {
	seq     int
	profile *api.Profile
	err     error
}

func (m profileLoadedMsg) navSeq() int { return m.seq }

type profileSavedMsg struct {
	seq     int
	profile *api.Profile
	err     error
}

func (m profileSavedMsg) navSeq() int { return m.seq }

type accountDeletedMsg struct {
	seq int
	err error
}

func (m accountDeletedMsg) navSeq() int { return m.seq }

// profilePage shows the logged-in user's own profile. The cached copy renders
// immediately while the fresh one loads behind it.
type profilePage struct {
	deps
	profile *api.Profile
	stale   bool
	err     error

	form *huh.Form

	editName    string
	editBio     string
	editPhone   string
	editAddress string
	editPicture string
}

func newProfilePage(d deps) *profilePage {
	p := &profilePage{deps: d}
	if cached := d.sess.CachedProfile(); cached != nil {
		p.profile = cached
		p.stale = true
	}
	return p
}

func (p *profilePage) Title() string { return "Profile" }

func (p *profilePage) capturesInput() bool { return p.form != nil }

func (p *profilePage) Init() tea.Cmd {
	if !p.sess.Authenticated() {
		return nil
	}
	seq := p.seq
	return func() tea.Msg {
		profile, err := flight.Do(p.flights, p.ctx, "profile", func(ctx context.Context) (*api.Profile, error) {
			return p.client.Profile(ctx)
		})
		if profile == nil && err == nil {
			return nil
		}
		return profileLoadedMsg{seq: seq, profile: profile, err: err}
	}
}

func (p *profilePage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		if msg.err != nil {
			// Keep showing the cached copy when the refresh fails.
			if p.profile == nil {
				p.err = msg.err
			}
			return p, notifyErr(msg.err)
		}
		p.profile = msg.profile
		p.stale = false
		p.sess.SetProfile(msg.profile)
		return p, nil

	case profileSavedMsg:
		if msg.err != nil {
			return p, notifyErr(msg.err)
		}
		p.profile = msg.profile
		p.stale = false
		p.sess.SetProfile(msg.profile)
		return p, notify("Profile updated")

	case accountDeletedMsg:
		if msg.err != nil {
			return p, notifyErr(msg.err)
		}
		p.sess.Logout()
		return p, tea.Batch(notify("Account deleted"), navigate("/"))

	case tea.KeyMsg:
		if p.form != nil {
			if msg.String() == "esc" {
				p.form = nil
				return p, nil
			}
			return p.updateForm(msg)
		}
		switch msg.String() {
		case "e":
			if p.profile != nil {
				p.openEditForm()
				return p, p.form.Init()
			}
		case "x":
			return p, confirm("Delete your account? This cannot be undone.", p.deleteCmd())
		}
	}

	if p.form != nil {
		return p.updateForm(msg)
	}
	return p, nil
}

func (p *profilePage) openEditForm() {
	p.editName = p.profile.Name
	p.editBio = p.profile.Bio
	p.editPhone = p.profile.PhoneNumber
	p.editAddress = p.profile.Address
	p.editPicture = ""
	p.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Display name").
			Value(&p.editName),
		huh.NewText().
			Title("Bio").
			Value(&p.editBio),
		huh.NewInput().
			Title("Phone").
			Value(&p.editPhone),
		huh.NewInput().
			Title("Address").
			Value(&p.editAddress),
		huh.NewInput().
			Title("New picture (optional path)").
			Value(&p.editPicture),
	))
}

func (p *profilePage) updateForm(msg tea.Msg) (page, tea.Cmd) {
	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}
	if p.form.State == huh.StateCompleted {
		p.form = nil
		return p, p.saveCmd()
	}
	return p, cmd
}

// saveCmd sends only the fields the user actually changed.
func (p *profilePage) saveCmd() tea.Cmd {
	seq := p.seq
	changed := map[string]string{}
	if p.editName != p.profile.Name {
		changed["name"] = p.editName
	}
	if p.editBio != p.profile.Bio {
		changed["bio"] = p.editBio
	}
	if p.editPhone != p.profile.PhoneNumber {
		changed["phone_number"] = p.editPhone
	}
	if p.editAddress != p.profile.Address {
		changed["address"] = p.editAddress
	}
	picturePath := strings.TrimSpace(p.editPicture)

	if len(changed) == 0 && picturePath == "" {
		return notify("Nothing changed")
	}
	return func() tea.Msg {
		var picture *api.Upload
		if picturePath != "" {
			content, err := os.ReadFile(picturePath)
			if err != nil {
				return profileSavedMsg{seq: seq, err: fmt.Errorf("read picture: %w", err)}
			}
			picture = &api.Upload{Filename: filepath.Base(picturePath), Content: content}
		}
		profile, err := p.client.UpdateProfile(p.ctx, changed, picture)
		return profileSavedMsg{seq: seq, profile: profile, err: err}
	}
}

func (p *profilePage) deleteCmd() tea.Cmd {
	seq := p.seq
	return func() tea.Msg {
		err := p.client.DeleteProfile(p.ctx)
		return accountDeletedMsg{seq: seq, err: err}
	}
}

func (p *profilePage) View(width int) string {
	if !p.sess.Authenticated() {
		return requireLogin(p.styles, "your profile")
	}
	if p.err != nil && p.profile == nil {
		return p.styles.DangerText.Render(api.UserMessage(p.err))
	}
	if p.profile == nil {
		return p.styles.MutedText.Render("Loading profile...")
	}
	if p.form != nil {
		return p.styles.Title.Render("Edit Profile") + "\n\n" + p.form.View() + "\n" +
			p.styles.MutedText.Render("esc cancel")
	}

	pr := p.profile
	var b strings.Builder
	b.WriteString(p.styles.Title.Render("@" + pr.Username))
	if p.stale {
		b.WriteString(" " + p.styles.MutedText.Render("(refreshing)"))
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
		"%d followers  %d following  %d profile views",
		len(pr.Followers), len(pr.Follows), pr.ProfileViews)))
	b.WriteString("\n")
	if pr.Email != "" {
		b.WriteString(p.styles.MutedText.Render(pr.Email))
		b.WriteString("\n")
	}
	if pr.IsVerified {
		b.WriteString(p.styles.SuccessText.Render("verified"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(p.styles.MutedText.Render("e edit  x delete account"))
	return b.String()
}
