package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/davfen/mingle/internal/api"
	"github.com/davfen/mingle/internal/flight"
)

type placesLoadedMsg struct {
	seq    int
	places []api.Place
	err    error
}

func (m placesLoadedMsg) navSeq() int { return m.seq }

// placesPage lists all venues.
type placesPage struct {
	deps
	places []api.Place
	cursor int
	loaded bool
	err    error
}

func newPlacesPage(d deps) *placesPage {
	return &placesPage{deps: d}
}

func (p *placesPage) Title() string { return "Places" }

func (p *placesPage) Init() tea.Cmd {
	seq := p.seq
	return func() tea.Msg {
		places, err := flight.Do(p.flights, p.ctx, "places", func(ctx context.Context) (*[]api.Place, error) {
			list, err := p.client.Places(ctx)
			if err != nil {
				return nil, err
			}
			return &list, nil
		})
		if places == nil && err == nil {
			return nil
		}
		var list []api.Place
		if places != nil {
			list = *places
		}
		return placesLoadedMsg{seq: seq, places: list, err: err}
	}
}

func (p *placesPage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case placesLoadedMsg:
		p.loaded = true
		p.err = msg.err
		p.places = msg.places
		p.cursor = 0
		return p, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if p.cursor < len(p.places)-1 {
				p.cursor++
			}
		case "k", "up":
			if p.cursor > 0 {
				p.cursor--
			}
		case "enter":
			if p.cursor < len(p.places) {
				return p, navigate("/place/" + p.places[p.cursor].PlaceID)
			}
		case "a":
			if p.sess.Authenticated() {
				return p, navigate("/place")
			}
			return p, navigate("/login")
		}
	}
	return p, nil
}

func (p *placesPage) View(width int) string {
	var b strings.Builder
	b.WriteString(p.styles.Title.Render("Places"))
	b.WriteString("\n\n")

	switch {
	case p.err != nil:
		b.WriteString(p.styles.DangerText.Render(api.UserMessage(p.err)))
	case !p.loaded:
		b.WriteString(p.styles.MutedText.Render("Loading places..."))
	case len(p.places) == 0:
		b.WriteString(p.styles.MutedText.Render("No places yet. Press a to add one."))
	default:
		for i, pl := range p.places {
			line := fmt.Sprintf("%-25s %-12s %s", truncate(pl.Name, 25), pl.Category, pl.Address)
			if i == p.cursor {
				b.WriteString(p.styles.Selected.Render("> " + line))
			} else {
				b.WriteString(p.styles.Text.Render("  " + line))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(p.styles.MutedText.Render("enter view  a add place"))
	}
	return b.String()
}
