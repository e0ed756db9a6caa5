package ui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/davfen/mingle/internal/api"
)

type placeCreatedMsg struct {
	seq   int
	place *api.Place
	err   error
}

func (m placeCreatedMsg) navSeq() int { return m.seq }

// createPlacePage adds a new venue.
type createPlacePage struct {
	deps
	form      *huh.Form
	submitted bool

	name        string
	address     string
	description string
	category    string
	capacity    string
}

func newCreatePlacePage(d deps) *createPlacePage {
	p := &createPlacePage{deps: d}
	if d.sess.Authenticated() {
		p.form = placeForm(&p.name, &p.address, &p.description, &p.category, &p.capacity)
	}
	return p
}

func (p *createPlacePage) Title() string { return "Add Place" }

func (p *createPlacePage) capturesInput() bool { return p.form != nil && !p.submitted }

func (p *createPlacePage) Init() tea.Cmd {
	if p.form == nil {
		return nil
	}
	return p.form.Init()
}

func (p *createPlacePage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case placeCreatedMsg:
		if msg.err != nil {
			p.submitted = false
			return p, notifyErr(msg.err)
		}
		if msg.place != nil {
			return p, tea.Batch(notify("Place created"), navigate("/place/"+msg.place.PlaceID))
		}
		return p, tea.Batch(notify("Place created"), navigate("/places"))

	case tea.KeyMsg:
		if msg.String() == "esc" && !p.submitted {
			return p, navigate("/places")
		}
	}

	if p.form == nil || p.submitted {
		return p, nil
	}
	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}
	if p.form.State == huh.StateCompleted {
		p.submitted = true
		return p, p.submit()
	}
	return p, cmd
}

func (p *createPlacePage) submit() tea.Cmd {
	seq := p.seq
	capacity, _ := strconv.Atoi(p.capacity)
	payload := api.PlacePayload{
		Name:        p.name,
		Address:     p.address,
		Description: p.description,
		Category:    p.category,
		Capacity:    capacity,
	}
	return func() tea.Msg {
		place, err := p.client.CreatePlace(p.ctx, payload)
		return placeCreatedMsg{seq: seq, place: place, err: err}
	}
}

func (p *createPlacePage) View(width int) string {
	if !p.sess.Authenticated() {
		return requireLogin(p.styles, "this page")
	}
	if p.submitted {
		return p.styles.MutedText.Render("Creating place...")
	}
	return p.styles.Title.Render("Add Place") + "\n\n" + p.form.View() + "\n" +
		p.styles.MutedText.Render("esc cancel")
}
