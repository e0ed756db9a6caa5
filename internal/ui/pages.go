package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/davfen/mingle/internal/api"
	"github.com/davfen/mingle/internal/flight"
	"github.com/davfen/mingle/internal/router"
	"github.com/davfen/mingle/internal/session"
)

// page is one screen's fetch/render/mutate cycle. The root model owns exactly
// one page at a time and replaces it wholesale on navigation, so pages never
// carry state across routes.
type page interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (page, tea.Cmd)
	View(width int) string
	Title() string
}

// inputCapturer is implemented by pages that own a focused text input or
// form; while capturing, global navigation keys are suspended.
type inputCapturer interface {
	capturesInput() bool
}

// deps is everything a page needs from the application shell.
type deps struct {
	ctx      context.Context
	client   *api.Client
	sess     *session.Manager
	flights  *flight.Group
	styles   Styles
	pageSize int
	seq      int
}

// newPage builds the page for a resolved route.
func newPage(match router.Match, d deps) page {
	switch match.Page {
	case router.PageHome:
		return newHomePage(d)
	case router.PageFeed:
		return newFeedPage(d)
	case router.PageProfile:
		return newProfilePage(d)
	case router.PageCreateEvent:
		return newCreateEventPage(d)
	case router.PageCreatePlace:
		return newCreatePlacePage(d)
	case router.PageSettings:
		return newSettingsPage(d)
	case router.PagePlaces:
		return newPlacesPage(d)
	case router.PageEvents:
		return newEventsPage(d)
	case router.PageLogin:
		return newLoginPage(d)
	case router.PageSearch:
		return newSearchPage(d)
	case router.PageUser:
		return newUserPage(d, match.Param)
	case router.PageEvent:
		return newEventPage(d, match.Param)
	case router.PagePlace:
		return newPlacePage(d, match.Param)
	default:
		return notFoundPage{styles: d.styles, path: match.Path}
	}
}

// notFoundPage renders the 404 view.
type notFoundPage struct {
	styles Styles
	path   string
}

func (p notFoundPage) Init() tea.Cmd { return nil }

func (p notFoundPage) Update(tea.Msg) (page, tea.Cmd) { return p, nil }

func (p notFoundPage) Title() string { return "Not Found" }

func (p notFoundPage) View(width int) string {
	return p.styles.DangerText.Render("404 Not Found") + "\n\n" +
		p.styles.MutedText.Render(fmt.Sprintf("No page matches %q.", p.path))
}

// requireLogin renders the standard prompt for authenticated-only pages. The
// page showing it must not have issued any request.
func requireLogin(s Styles, what string) string {
	return s.Text.Render("Please log in to view "+what+".") + "\n\n" +
		s.MutedText.Render("Press L to go to the login page.")
}
