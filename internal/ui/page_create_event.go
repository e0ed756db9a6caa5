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

type venueOptionsMsg struct {
	seq    int
	places []api.Place
	err    error
}

func (m venueOptionsMsg) navSeq() int { return m.seq }

type eventCreatedMsg struct {
	seq   int
	event *api.Event
	err   error
}

func (m eventCreatedMsg) navSeq() int { return m.seq }

// createEventPage hosts the new-event form. The venue select is populated
// from the places list, so the form only appears once that load finishes.
type createEventPage struct {
	deps
	form      *huh.Form
	submitted bool
	loadErr   error

	title       string
	date        string
	location    string
	placeID     string
	description string
	bannerPath  string
}

func newCreateEventPage(d deps) *createEventPage {
	return &createEventPage{deps: d}
}

func (p *createEventPage) Title() string { return "Create Event" }

func (p *createEventPage) capturesInput() bool { return p.form != nil && !p.submitted }

func (p *createEventPage) Init() tea.Cmd {
	if !p.sess.Authenticated() {
		return nil
	}
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
		return venueOptionsMsg{seq: seq, places: list, err: err}
	}
}

func (p *createEventPage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case venueOptionsMsg:
		if msg.err != nil {
			p.loadErr = msg.err
			return p, nil
		}
		p.buildForm(msg.places)
		return p, p.form.Init()

	case eventCreatedMsg:
		if msg.err != nil {
			p.submitted = false
			return p, notifyErr(msg.err)
		}
		if msg.event != nil {
			return p, tea.Batch(notify("Event created"), navigate("/event/"+msg.event.EventID))
		}
		return p, tea.Batch(notify("Event created"), navigate("/events"))

	case tea.KeyMsg:
		if msg.String() == "esc" && !p.submitted {
			return p, navigate("/events")
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

func (p *createEventPage) buildForm(places []api.Place) {
	venueOptions := []huh.Option[string]{huh.NewOption("(no venue)", "")}
	for _, pl := range places {
		venueOptions = append(venueOptions, huh.NewOption(pl.Name, pl.PlaceID))
	}
	p.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Title").
			Value(&p.title).
			Validate(required("title")),
		huh.NewInput().
			Title("Date (YYYY-MM-DD)").
			Value(&p.date).
			Validate(required("date")),
		huh.NewInput().
			Title("Location").
			Value(&p.location),
		huh.NewSelect[string]().
			Title("Venue").
			Options(venueOptions...).
			Value(&p.placeID),
		huh.NewText().
			Title("Description").
			Value(&p.description),
		huh.NewInput().
			Title("Banner image (optional path)").
			Value(&p.bannerPath),
	))
}

func (p *createEventPage) submit() tea.Cmd {
	seq := p.seq
	payload := api.EventPayload{
		Title:       p.title,
		Date:        p.date,
		Location:    p.location,
		PlaceID:     p.placeID,
		Description: p.description,
	}
	bannerPath := strings.TrimSpace(p.bannerPath)
	return func() tea.Msg {
		var banner *api.Upload
		if bannerPath != "" {
			content, err := os.ReadFile(bannerPath)
			if err != nil {
				return eventCreatedMsg{seq: seq, err: fmt.Errorf("read banner: %w", err)}
			}
			banner = &api.Upload{Filename: filepath.Base(bannerPath), Content: content}
		}
		event, err := p.client.CreateEvent(p.ctx, payload, banner)
		return eventCreatedMsg{seq: seq, event: event, err: err}
	}
}

func (p *createEventPage) View(width int) string {
	if !p.sess.Authenticated() {
		return requireLogin(p.styles, "this page")
	}
	if p.loadErr != nil {
		return p.styles.DangerText.Render(api.UserMessage(p.loadErr))
	}
	if p.form == nil {
		return p.styles.MutedText.Render("Loading venues...")
	}
	if p.submitted {
		return p.styles.MutedText.Render("Creating event...")
	}
	return p.styles.Title.Render("Create Event") + "\n\n" + p.form.View() + "\n" +
		p.styles.MutedText.Render("esc cancel")
}
