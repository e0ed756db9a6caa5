package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/davfen/mingle/internal/api"
	"github.com/davfen/mingle/internal/flight"
)

type settingsLoadedMsg struct {
	seq      int
	settings []api.Setting
	err      error
}

func (m settingsLoadedMsg) navSeq() int { return m.seq }

type settingSavedMsg struct {
	seq         int
	settingType string
	value       string
	err         error
}

func (m settingSavedMsg) navSeq() int { return m.seq }

// settingsPage lists account settings and edits them in place.
type settingsPage struct {
	deps
	settings []api.Setting
	cursor   int
	loaded   bool
	err      error

	editing bool
	input   textinput.Model
}

func newSettingsPage(d deps) *settingsPage {
	return &settingsPage{deps: d}
}

func (p *settingsPage) Title() string { return "Settings" }

func (p *settingsPage) capturesInput() bool { return p.editing }

func (p *settingsPage) Init() tea.Cmd {
	if !p.sess.Authenticated() {
		return nil
	}
	seq := p.seq
	return func() tea.Msg {
		settings, err := flight.Do(p.flights, p.ctx, "settings", func(ctx context.Context) (*[]api.Setting, error) {
			list, err := p.client.Settings(ctx)
			if err != nil {
				return nil, err
			}
			return &list, nil
		})
		if settings == nil && err == nil {
			return nil
		}
		var list []api.Setting
		if settings != nil {
			list = *settings
		}
		return settingsLoadedMsg{seq: seq, settings: list, err: err}
	}
}

func (p *settingsPage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsLoadedMsg:
		p.loaded = true
		p.err = msg.err
		p.settings = msg.settings
		p.cursor = 0
		return p, nil

	case settingSavedMsg:
		if msg.err != nil {
			return p, notifyErr(msg.err)
		}
		for i := range p.settings {
			if p.settings[i].Type == msg.settingType {
				p.settings[i].Value = msg.value
			}
		}
		return p, notify("Setting saved")

	case tea.KeyMsg:
		if p.editing {
			switch msg.String() {
			case "enter":
				p.editing = false
				return p, p.save(p.settings[p.cursor].Type, p.input.Value())
			case "esc":
				p.editing = false
				return p, nil
			}
			var cmd tea.Cmd
			p.input, cmd = p.input.Update(msg)
			return p, cmd
		}
		switch msg.String() {
		case "j", "down":
			if p.cursor < len(p.settings)-1 {
				p.cursor++
			}
		case "k", "up":
			if p.cursor > 0 {
				p.cursor--
			}
		case "enter":
			if p.cursor < len(p.settings) {
				p.input = textinput.New()
				p.input.SetValue(p.settings[p.cursor].Value)
				p.input.CharLimit = 200
				p.input.Focus()
				p.editing = true
				return p, textinput.Blink
			}
		}
	}
	return p, nil
}

func (p *settingsPage) save(settingType, value string) tea.Cmd {
	seq := p.seq
	return func() tea.Msg {
		err := p.client.UpdateSetting(p.ctx, settingType, value)
		return settingSavedMsg{seq: seq, settingType: settingType, value: value, err: err}
	}
}

func (p *settingsPage) View(width int) string {
	if !p.sess.Authenticated() {
		return requireLogin(p.styles, "settings")
	}

	var b strings.Builder
	b.WriteString(p.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	switch {
	case p.err != nil:
		b.WriteString(p.styles.DangerText.Render(api.UserMessage(p.err)))
	case !p.loaded:
		b.WriteString(p.styles.MutedText.Render("Loading settings..."))
	case len(p.settings) == 0:
		b.WriteString(p.styles.MutedText.Render("No settings available."))
	default:
		for i, s := range p.settings {
			value := s.Value
			if p.editing && i == p.cursor {
				value = p.input.View()
			}
			line := fmt.Sprintf("%-25s %s", s.Type, value)
			if i == p.cursor {
				b.WriteString(p.styles.Selected.Render("> " + line))
			} else {
				b.WriteString(p.styles.Text.Render("  " + line))
			}
			if s.Description != "" {
				b.WriteString("\n")
				b.WriteString(p.styles.MutedText.Render("    " + s.Description))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		if p.editing {
			b.WriteString(p.styles.MutedText.Render("enter save  esc cancel"))
		} else {
			b.WriteString(p.styles.MutedText.Render("enter edit value"))
		}
	}
	return b.String()
}
