package ui

import (
	"testing"

	"github.com/davfen/mingle/internal/api"
)

func mediaItems(n int) []api.Media {
	items := make([]api.Media, n)
	for i := range items {
		items[i] = api.Media{MediaID: string(rune('a' + i)), URL: "u", Caption: "c"}
	}
	return items
}

func TestGalleryWrapsAround(t *testing.T) {
	g := newGallery(mediaItems(3), 0)

	g.next()
	g.next()
	if g.index != 2 {
		t.Fatalf("index after two next = %d, want 2", g.index)
	}
	g.next()
	if g.index != 0 {
		t.Fatalf("index after wrap = %d, want 0", g.index)
	}
	g.prev()
	if g.index != 2 {
		t.Fatalf("index after prev from 0 = %d, want 2", g.index)
	}
}

func TestGalleryStartClamped(t *testing.T) {
	g := newGallery(mediaItems(2), 7)
	if g.index != 0 {
		t.Fatalf("out-of-range start = %d, want 0", g.index)
	}
}

func TestGallerySnapshotIsolated(t *testing.T) {
	items := mediaItems(2)
	g := newGallery(items, 1)

	// Mutating the source slice must not change what the lightbox shows.
	items[1].Caption = "changed"
	current, ok := g.current()
	if !ok {
		t.Fatal("current() not ok for open gallery")
	}
	if current.Caption != "c" {
		t.Fatalf("caption = %q, want snapshot value %q", current.Caption, "c")
	}
}

func TestGalleryEmptyNeverOpens(t *testing.T) {
	g := newGallery(nil, 0)
	if g.open {
		t.Fatal("gallery opened with no items")
	}
	if _, ok := g.current(); ok {
		t.Fatal("current() ok for empty gallery")
	}
	// Navigation on an empty gallery is a no-op, not a panic.
	g.next()
	g.prev()
}

func TestGalleryCloseDiscardsCursor(t *testing.T) {
	g := newGallery(mediaItems(3), 2)
	g.close()
	if _, ok := g.current(); ok {
		t.Fatal("current() ok after close")
	}
}
