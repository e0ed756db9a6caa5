package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/davfen/mingle/internal/api"
	"github.com/davfen/mingle/internal/flight"
)

type eventsLoadedMsg struct {
	seq    int
	result *api.EventsPage
	err    error
}

func (m eventsLoadedMsg) navSeq() int { return m.seq }

// eventsPage is the paginated events list. The page count comes from the
// total reported by the server, not from guessing off a short page.
type eventsPage struct {
	deps
	events  []api.Event
	total   int
	pageNum int
	cursor  int
	loaded  bool
	err     error
}

func newEventsPage(d deps) *eventsPage {
	return &eventsPage{deps: d, pageNum: 1}
}

func (p *eventsPage) Title() string { return "Events" }

func (p *eventsPage) Init() tea.Cmd {
	return p.fetch()
}

// fetch loads the current page. Repeated calls share the "events" key, so
// mashing n/p cancels the previous page's request instead of racing it.
func (p *eventsPage) fetch() tea.Cmd {
	seq := p.seq
	pageNum := p.pageNum
	return func() tea.Msg {
		result, err := flight.Do(p.flights, p.ctx, "events", func(ctx context.Context) (*api.EventsPage, error) {
			ep, err := p.client.Events(ctx, pageNum, p.pageSize)
			if err != nil {
				return nil, err
			}
			return &ep, nil
		})
		if result == nil && err == nil {
			return nil
		}
		return eventsLoadedMsg{seq: seq, result: result, err: err}
	}
}

func (p *eventsPage) lastPage() int {
	if p.total <= 0 {
		return 1
	}
	return (p.total + p.pageSize - 1) / p.pageSize
}

func (p *eventsPage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case eventsLoadedMsg:
		p.loaded = true
		p.err = msg.err
		if msg.result != nil {
			p.events = msg.result.Events
			p.total = msg.result.Total
		}
		p.cursor = 0
		return p, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if p.cursor < len(p.events)-1 {
				p.cursor++
			}
		case "k", "up":
			if p.cursor > 0 {
				p.cursor--
			}
		case "enter":
			if p.cursor < len(p.events) {
				return p, navigate("/event/" + p.events[p.cursor].EventID)
			}
		case "n", "right":
			if p.pageNum < p.lastPage() {
				p.pageNum++
				p.loaded = false
				return p, p.fetch()
			}
		case "p", "left":
			if p.pageNum > 1 {
				p.pageNum--
				p.loaded = false
				return p, p.fetch()
			}
		case "r":
			p.loaded = false
			return p, p.fetch()
		}
	}
	return p, nil
}

func (p *eventsPage) View(width int) string {
	var b strings.Builder
	b.WriteString(p.styles.Title.Render("Events"))
	b.WriteString("\n\n")

	switch {
	case p.err != nil:
		b.WriteString(p.styles.DangerText.Render(api.UserMessage(p.err)))
	case !p.loaded:
		b.WriteString(p.styles.MutedText.Render("Loading events..."))
	case len(p.events) == 0:
		b.WriteString(p.styles.MutedText.Render("No events found."))
	default:
		for i, ev := range p.events {
			line := fmt.Sprintf("%-30s %s  %s", truncate(ev.Title, 30), ev.Date, ev.Location)
			if i == p.cursor {
				b.WriteString(p.styles.Selected.Render("> " + line))
			} else {
				b.WriteString(p.styles.Text.Render("  " + line))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(p.styles.MutedText.Render(fmt.Sprintf(
		"page %d/%d (%d events)  n/p page  enter view  r reload",
		p.pageNum, p.lastPage(), p.total)))
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
