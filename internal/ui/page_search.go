package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/davfen/mingle/internal/api"
	"github.com/davfen/mingle/internal/flight"
)

type searchDoneMsg struct {
	seq   int
	query string
	items []api.SearchItem
	err   error
}

func (m searchDoneMsg) navSeq() int { return m.seq }

// searchPage runs platform-wide searches. Typing stays in the query box;
// esc drops to the result list, f opens the filter form.
type searchPage struct {
	deps
	input    textinput.Model
	items    []api.SearchItem
	cursor   int
	searched bool
	lastRun  string
	err      error

	filters  *huh.Form
	category string
	location string
	maxPrice string
}

func newSearchPage(d deps) *searchPage {
	input := textinput.New()
	input.Placeholder = "Search events, places and people"
	input.CharLimit = 120
	input.Focus()
	return &searchPage{deps: d, input: input}
}

func (p *searchPage) Title() string { return "Search" }

func (p *searchPage) capturesInput() bool { return p.input.Focused() || p.filters != nil }

func (p *searchPage) Init() tea.Cmd {
	return textinput.Blink
}

func (p *searchPage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case searchDoneMsg:
		p.searched = true
		p.lastRun = msg.query
		p.err = msg.err
		p.items = msg.items
		p.cursor = 0
		return p, nil

	case tea.KeyMsg:
		if p.filters != nil {
			if msg.String() == "esc" {
				p.filters = nil
				return p, nil
			}
			return p.updateFilters(msg)
		}
		switch msg.String() {
		case "enter":
			if p.input.Focused() {
				return p, p.runCurrent()
			}
			if p.cursor < len(p.items) {
				return p, p.open(p.items[p.cursor])
			}
			return p, nil
		case "esc":
			p.input.Blur()
			return p, nil
		}
		if !p.input.Focused() {
			switch msg.String() {
			case "j", "down":
				if p.cursor < len(p.items)-1 {
					p.cursor++
				}
				return p, nil
			case "k", "up":
				if p.cursor > 0 {
					p.cursor--
				}
				return p, nil
			case "f":
				p.openFilters()
				return p, p.filters.Init()
			case "/", "i":
				p.input.Focus()
				return p, textinput.Blink
			}
			return p, nil
		}
	}

	if p.filters != nil {
		return p.updateFilters(msg)
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *searchPage) openFilters() {
	p.filters = huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Category").
			Options(
				huh.NewOption("Everything", ""),
				huh.NewOption("Events", "events"),
				huh.NewOption("Places", "places"),
				huh.NewOption("People", "users"),
			).
			Value(&p.category),
		huh.NewInput().
			Title("Location").
			Value(&p.location),
		huh.NewInput().
			Title("Max price").
			Value(&p.maxPrice).
			Validate(price("max price")),
	).Title("Filters"))
}

func (p *searchPage) updateFilters(msg tea.Msg) (page, tea.Cmd) {
	form, cmd := p.filters.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.filters = f
	}
	if p.filters.State == huh.StateCompleted {
		p.filters = nil
		return p, p.runCurrent()
	}
	return p, cmd
}

func (p *searchPage) runCurrent() tea.Cmd {
	query := strings.TrimSpace(p.input.Value())
	if query == "" {
		return nil
	}
	return p.run(query)
}

// run issues a search under the shared "search" key, so a new query cancels
// the one still in flight.
func (p *searchPage) run(query string) tea.Cmd {
	seq := p.seq
	maxPrice, _ := strconv.ParseFloat(strings.TrimSpace(p.maxPrice), 64)
	sq := api.SearchQuery{
		Query:    query,
		Category: p.category,
		Location: strings.TrimSpace(p.location),
		MaxPrice: maxPrice,
	}
	return func() tea.Msg {
		items, err := flight.Do(p.flights, p.ctx, "search", func(ctx context.Context) (*[]api.SearchItem, error) {
			list, err := p.client.Search(ctx, sq)
			if err != nil {
				return nil, err
			}
			return &list, nil
		})
		if items == nil && err == nil {
			return nil
		}
		var list []api.SearchItem
		if items != nil {
			list = *items
		}
		return searchDoneMsg{seq: seq, query: query, items: list, err: err}
	}
}

func (p *searchPage) open(item api.SearchItem) tea.Cmd {
	switch item.Type {
	case "event":
		return navigate("/event/" + item.ID)
	case "place":
		return navigate("/place/" + item.ID)
	case "user":
		return navigate("/user/" + item.ID)
	}
	return nil
}

func (p *searchPage) activeFilters() string {
	var parts []string
	if p.category != "" {
		parts = append(parts, p.category)
	}
	if loc := strings.TrimSpace(p.location); loc != "" {
		parts = append(parts, "near "+loc)
	}
	if mp := strings.TrimSpace(p.maxPrice); mp != "" {
		parts = append(parts, "under $"+mp)
	}
	if len(parts) == 0 {
		return "everything"
	}
	return strings.Join(parts, ", ")
}

func (p *searchPage) View(width int) string {
	if p.filters != nil {
		return p.styles.Title.Render("Search Filters") + "\n\n" + p.filters.View() + "\n" +
			p.styles.MutedText.Render("esc cancel")
	}

	var b strings.Builder
	b.WriteString(p.styles.Title.Render("Search"))
	b.WriteString("\n\n")
	b.WriteString(p.input.View())
	b.WriteString("\n")
	b.WriteString(p.styles.MutedText.Render("showing: " + p.activeFilters()))
	b.WriteString("\n\n")

	switch {
	case p.err != nil:
		b.WriteString(p.styles.DangerText.Render(api.UserMessage(p.err)))
	case !p.searched:
		b.WriteString(p.styles.MutedText.Render("Type a query and press enter."))
	case len(p.items) == 0:
		b.WriteString(p.styles.MutedText.Render(fmt.Sprintf("No results for %q.", p.lastRun)))
	default:
		for i, item := range p.items {
			line := fmt.Sprintf("%-7s %-30s %s", item.Type, truncate(item.Title, 30), item.Location)
			if item.Price > 0 {
				line += fmt.Sprintf("  $%.2f", item.Price)
			}
			if i == p.cursor && !p.input.Focused() {
				b.WriteString(p.styles.Selected.Render("> " + line))
			} else {
				b.WriteString(p.styles.Text.Render("  " + line))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(p.styles.MutedText.Render("esc browse  enter open  f filters  / edit query"))
	}
	return b.String()
}
