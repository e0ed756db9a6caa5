// Package router maps URL-style paths to pages and tracks navigation history.
//
// The route table is fixed at construction: a set of exact paths plus three
// dynamic prefixes (/user/:username, /event/:id, /place/:id). Prefixes are
// checked before exact matches, and anything unmatched resolves to the
// not-found page. History follows browser semantics: navigating pushes onto
// the stack and discards any forward entries, back and forward move a cursor
// without changing the stack.
package router

import (
	"strings"
	"sync"
)

// Page identifies a screen in the application.
type Page string

const (
	PageHome        Page = "home"
	PageFeed        Page = "feed"
	PageProfile     Page = "profile"
	PageCreateEvent Page = "create-event"
	PageCreatePlace Page = "create-place"
	PageSettings    Page = "settings"
	PagePlaces      Page = "places"
	PageEvents      Page = "events"
	PageLogin       Page = "login"
	PageSearch      Page = "search"
	PageUser        Page = "user"
	PageEvent       Page = "event"
	PagePlace       Page = "place"
	PageNotFound    Page = "not-found"
)

// Match is the result of resolving a path.
type Match struct {
	Path  string
	Page  Page
	Param string // dynamic segment value for user/event/place routes
}

var staticRoutes = map[string]Page{
	"/":         PageHome,
	"/feed":     PageFeed,
	"/profile":  PageProfile,
	"/create":   PageCreateEvent,
	"/place":    PageCreatePlace,
	"/settings": PageSettings,
	"/places":   PagePlaces,
	"/events":   PageEvents,
	"/login":    PageLogin,
	"/search":   PageSearch,
}

var prefixRoutes = []struct {
	prefix string
	page   Page
}{
	{"/user/", PageUser},
	{"/event/", PageEvent},
	{"/place/", PagePlace},
}

// StaticPaths returns every exact path in the route table.
func StaticPaths() []string {
	paths := make([]string, 0, len(staticRoutes))
	for path := range staticRoutes {
		paths = append(paths, path)
	}
	return paths
}

// Resolve maps a path to its page. Dynamic prefixes win over exact matches;
// unknown paths resolve to PageNotFound.
func Resolve(path string) Match {
	path = normalize(path)

	for _, route := range prefixRoutes {
		if strings.HasPrefix(path, route.prefix) {
			param := strings.TrimPrefix(path, route.prefix)
			if i := strings.IndexByte(param, '/'); i >= 0 {
				param = param[:i]
			}
			if param != "" {
				return Match{Path: path, Page: route.page, Param: param}
			}
		}
	}

	if page, ok := staticRoutes[path]; ok {
		return Match{Path: path, Page: page}
	}
	return Match{Path: path, Page: PageNotFound}
}

func normalize(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

// History is a browser-style navigation stack.
type History struct {
	mu     sync.Mutex
	stack  []string
	cursor int
}

// NewHistory starts a history at the given path.
func NewHistory(initial string) *History {
	return &History{stack: []string{normalize(initial)}}
}

// Current returns the path under the cursor.
func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stack[h.cursor]
}

// Navigate pushes path and discards any forward entries.
func (h *History) Navigate(path string) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	path = normalize(path)
	h.stack = append(h.stack[:h.cursor+1], path)
	h.cursor = len(h.stack) - 1
	return path
}

// Back moves the cursor toward the oldest entry. It reports false at the
// beginning of the stack.
func (h *History) Back() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cursor == 0 {
		return h.stack[h.cursor], false
	}
	h.cursor--
	return h.stack[h.cursor], true
}

// Forward moves the cursor toward the newest entry. It reports false at the
// end of the stack.
func (h *History) Forward() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cursor == len(h.stack)-1 {
		return h.stack[h.cursor], false
	}
	h.cursor++
	return h.stack[h.cursor], true
}
