package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/davfen/mingle/internal/api"
)

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func testEventPage(t *testing.T) *eventPage {
	t.Helper()
	p := newEventPage(testDeps(t), "e1")
	p.loaded = true
	p.detail = &api.EventDetail{
		Event: api.Event{EventID: "e1", Title: "Launch Party", Date: "2026-09-01"},
		Tickets: []api.Ticket{
			{TicketID: "t1", Name: "General", Price: 25, Quantity: 100},
		},
		Merch: []api.Merch{
			{MerchID: "m1", Name: "Shirt", Price: 20, Stock: 3},
		},
		Media: []api.Media{
			{MediaID: "md1", URL: "a.jpg"},
			{MediaID: "md2", URL: "b.jpg"},
		},
	}
	return p
}

func TestTicketQuantityCappedAtFive(t *testing.T) {
	p := testEventPage(t)
	p.tab = tabTickets

	for i := 0; i < 10; i++ {
		p.Update(keyPress('+'))
	}
	if p.qty != api.MaxTicketPurchase {
		t.Fatalf("qty = %d, want %d", p.qty, api.MaxTicketPurchase)
	}

	for i := 0; i < 10; i++ {
		p.Update(keyPress('-'))
	}
	if p.qty != api.MinTicketPurchase {
		t.Fatalf("qty = %d, want %d", p.qty, api.MinTicketPurchase)
	}
}

func TestMerchQuantityCappedAtStock(t *testing.T) {
	p := testEventPage(t)
	p.tab = tabMerch

	for i := 0; i < 10; i++ {
		p.Update(keyPress('+'))
	}
	if p.qty != 3 {
		t.Fatalf("qty = %d, want stock limit 3", p.qty)
	}
}

func TestTicketPurchaseDecrementsLocally(t *testing.T) {
	p := testEventPage(t)
	p.tab = tabTickets
	p.qty = 4

	p.Update(ticketBoughtMsg{seq: p.seq, ticketID: "t1", quantity: 4})
	if got := p.detail.Tickets[0].Quantity; got != 96 {
		t.Fatalf("quantity after purchase = %d, want 96", got)
	}
	if p.qty != 1 {
		t.Fatalf("qty reset = %d, want 1", p.qty)
	}

	// Over-selling clamps at zero rather than going negative.
	p.Update(ticketBoughtMsg{seq: p.seq, ticketID: "t1", quantity: 200})
	if got := p.detail.Tickets[0].Quantity; got != 0 {
		t.Fatalf("quantity after oversell = %d, want 0", got)
	}
}

func TestSoldOutTicketCannotBeBought(t *testing.T) {
	p := testEventPage(t)
	p.tab = tabTickets
	p.detail.Tickets[0].Quantity = 0

	view := p.View(80)
	if !containsFold(view, "sold out") {
		t.Fatalf("view does not show sold out:\n%s", view)
	}
}

func TestMerchPurchaseDecrementsStock(t *testing.T) {
	p := testEventPage(t)
	p.tab = tabMerch

	p.Update(merchBoughtMsg{seq: p.seq, merchID: "m1", quantity: 2})
	if got := p.detail.Merch[0].Stock; got != 1 {
		t.Fatalf("stock after purchase = %d, want 1", got)
	}
}

func TestMediaLightboxNavigation(t *testing.T) {
	p := testEventPage(t)
	p.tab = tabMedia

	p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !p.lightbox.open {
		t.Fatal("lightbox did not open")
	}

	p.Update(keyPress('n'))
	if p.lightbox.index != 1 {
		t.Fatalf("lightbox index = %d, want 1", p.lightbox.index)
	}
	p.Update(keyPress('n'))
	if p.lightbox.index != 0 {
		t.Fatalf("lightbox index after wrap = %d, want 0", p.lightbox.index)
	}

	p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.lightbox.open {
		t.Fatal("lightbox still open after esc")
	}
}

func TestTabSwitchingResetsCursor(t *testing.T) {
	p := testEventPage(t)
	p.tab = tabTickets
	p.cursor = 3
	p.qty = 5

	p.Update(tea.KeyMsg{Type: tea.KeyTab})
	if p.tab != tabMerch {
		t.Fatalf("tab = %d, want %d", p.tab, tabMerch)
	}
	if p.cursor != 0 || p.qty != 1 {
		t.Fatalf("cursor/qty = %d/%d, want 0/1", p.cursor, p.qty)
	}
}
