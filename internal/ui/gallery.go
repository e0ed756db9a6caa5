package ui

import "github.com/davfen/mingle/internal/api"

// gallery is a lightbox cursor over an immutable snapshot of an event's media.
// Navigation wraps circularly; closing the lightbox discards the cursor.
type gallery struct {
	items []api.Media
	index int
	open  bool
}

func newGallery(items []api.Media, start int) gallery {
	snapshot := make([]api.Media, len(items))
	copy(snapshot, items)
	if start < 0 || start >= len(snapshot) {
		start = 0
	}
	return gallery{items: snapshot, index: start, open: len(snapshot) > 0}
}

func (g *gallery) next() {
	if len(g.items) == 0 {
		return
	}
	g.index = (g.index + 1) % len(g.items)
}

func (g *gallery) prev() {
	if len(g.items) == 0 {
		return
	}
	g.index = (g.index - 1 + len(g.items)) % len(g.items)
}

func (g *gallery) close() {
	g.open = false
}

func (g gallery) current() (api.Media, bool) {
	if !g.open || len(g.items) == 0 {
		return api.Media{}, false
	}
	return g.items[g.index], true
}
