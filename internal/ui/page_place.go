package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/davfen/mingle/internal/api"
	"github.com/davfen/mingle/internal/flight"
)

type placeLoadedMsg struct {
	seq   int
	place *api.Place
	err   error
}

func (m placeLoadedMsg) navSeq() int { return m.seq }

type placeSavedMsg struct {
	seq   int
	place *api.Place
	err   error
}

func (m placeSavedMsg) navSeq() int { return m.seq }

type placeDeletedMsg struct {
	seq int
	err error
}

func (m placeDeletedMsg) navSeq() int { return m.seq }

// placePage shows one venue. The creator can edit or delete it.
type placePage struct {
	deps
	id     string
	place  *api.Place
	loaded bool
	err    error

	form *huh.Form

	editName        string
	editAddress     string
	editDescription string
	editCategory    string
	editCapacity    string
}

func newPlacePage(d deps, id string) *placePage {
	return &placePage{deps: d, id: id}
}

func (p *placePage) Title() string { return "Place" }

func (p *placePage) capturesInput() bool { return p.form != nil }

func (p *placePage) owned() bool {
	return p.place != nil && p.sess.Authenticated() && p.place.CreatorID == p.sess.UserID()
}

func (p *placePage) Init() tea.Cmd {
	seq := p.seq
	id := p.id
	return func() tea.Msg {
		place, err := flight.Do(p.flights, p.ctx, "place", func(ctx context.Context) (*api.Place, error) {
			return p.client.Place(ctx, id)
		})
		if place == nil && err == nil {
			return nil
		}
		return placeLoadedMsg{seq: seq, place: place, err: err}
	}
}

func (p *placePage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case placeLoadedMsg:
		p.loaded = true
		p.err = msg.err
		p.place = msg.place
		return p, nil

	case placeSavedMsg:
		if msg.err != nil {
			return p, notifyErr(msg.err)
		}
		if msg.place != nil {
			p.place = msg.place
		}
		return p, notify("Place updated")

	case placeDeletedMsg:
		if msg.err != nil {
			return p, notifyErr(msg.err)
		}
		return p, tea.Batch(notify("Place deleted"), navigate("/places"))

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
			if p.owned() {
				p.openEditForm()
				return p, p.form.Init()
			}
		case "d":
			if p.owned() {
				return p, confirm("Delete this place?", p.deleteCmd())
			}
		}
	}

	if p.form != nil {
		return p.updateForm(msg)
	}
	return p, nil
}

func (p *placePage) updateForm(msg tea.Msg) (page, tea.Cmd) {
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

func (p *placePage) openEditForm() {
	p.editName = p.place.Name
	p.editAddress = p.place.Address
	p.editDescription = p.place.Description
	p.editCategory = p.place.Category
	p.editCapacity = strconv.Itoa(p.place.Capacity)
	p.form = placeForm(&p.editName, &p.editAddress, &p.editDescription, &p.editCategory, &p.editCapacity)
}

// placeForm is shared with the create-place page; both screens edit the same
// field set.
func placeForm(name, address, description, category, capacity *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(name).
				Validate(required("name")),
			huh.NewInput().
				Title("Address").
				Value(address).
				Validate(required("address")),
			huh.NewText().
				Title("Description").
				Value(description),
			huh.NewInput().
				Title("Category").
				Value(category),
			huh.NewInput().
				Title("Capacity").
				Value(capacity).
				Validate(positiveInt("capacity")),
		),
	)
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func positiveInt(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return fmt.Errorf("%s must be a non-negative number", field)
		}
		return nil
	}
}

func (p *placePage) saveCmd() tea.Cmd {
	seq := p.seq
	capacity, _ := strconv.Atoi(p.editCapacity)
	payload := api.PlacePayload{
		Name:        p.editName,
		Address:     p.editAddress,
		Description: p.editDescription,
		Category:    p.editCategory,
		Capacity:    capacity,
	}
	return func() tea.Msg {
		place, err := p.client.UpdatePlace(p.ctx, p.id, payload)
		return placeSavedMsg{seq: seq, place: place, err: err}
	}
}

func (p *placePage) deleteCmd() tea.Cmd {
	seq := p.seq
	return func() tea.Msg {
		err := p.client.DeletePlace(p.ctx, p.id)
		return placeDeletedMsg{seq: seq, err: err}
	}
}

func (p *placePage) View(width int) string {
	if p.err != nil {
		return p.styles.DangerText.Render(api.UserMessage(p.err))
	}
	if !p.loaded || p.place == nil {
		return p.styles.MutedText.Render("Loading place...")
	}
	if p.form != nil {
		return p.styles.Title.Render("Edit "+p.place.Name) + "\n\n" + p.form.View()
	}

	var b strings.Builder
	b.WriteString(p.styles.Title.Render(p.place.Name))
	b.WriteString("\n\n")
	b.WriteString(p.styles.Text.Render(p.place.Address))
	b.WriteString("\n")
	if p.place.Category != "" {
		b.WriteString(p.styles.MutedText.Render("Category: " + p.place.Category))
		b.WriteString("\n")
	}
	if p.place.Capacity > 0 {
		b.WriteString(p.styles.MutedText.Render(fmt.Sprintf("Capacity: %d", p.place.Capacity)))
		b.WriteString("\n")
	}
	if p.place.Description != "" {
		b.WriteString("\n")
		b.WriteString(p.styles.Text.Render(p.place.Description))
		b.WriteString("\n")
	}
	if p.owned() {
		b.WriteString("\n")
		b.WriteString(p.styles.MutedText.Render("e edit  d delete"))
	}
	return b.String()
}
