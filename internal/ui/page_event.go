package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/davfen/mingle/internal/api"
	"github.com/davfen/mingle/internal/flight"
)

type eventLoadedMsg struct {
	seq    int
	detail *api.EventDetail
	err    error
}

func (m eventLoadedMsg) navSeq() int { return m.seq }

type ticketBoughtMsg struct {
	seq      int
	ticketID string
	quantity int
	err      error
}

func (m ticketBoughtMsg) navSeq() int { return m.seq }

type merchBoughtMsg struct {
	seq      int
	merchID  string
	quantity int
	err      error
}

func (m merchBoughtMsg) navSeq() int { return m.seq }

// eventMutatedMsg reports an owner-side change (item added, edited or
// removed, event details saved). Success triggers a reload so the page
// reflects the server's view.
type eventMutatedMsg struct {
	seq    int
	action string
	err    error
}

func (m eventMutatedMsg) navSeq() int { return m.seq }

type eventDeletedMsg struct {
	seq int
	err error
}

func (m eventDeletedMsg) navSeq() int { return m.seq }

var eventTabs = []string{"Info", "Tickets", "Merch", "Media"}

const (
	tabInfo = iota
	tabTickets
	tabMerch
	tabMedia
)

const (
	formNone = iota
	formEditEvent
	formAddTicket
	formEditTicket
	formAddMerch
	formEditMerch
	formUploadMedia
)

// eventPage is the event detail screen: tabbed browsing of the event's
// tickets, merch and media, with purchases for everyone and editing for the
// creator.
type eventPage struct {
	deps
	id     string
	detail *api.EventDetail
	loaded bool
	err    error

	tab    int
	cursor int
	qty    int

	lightbox gallery

	form     *huh.Form
	formKind int
	itemID   string

	fieldA string // title / name
	fieldB string // date / price
	fieldC string // location / quantity or stock
	fieldD string // place or caption
	fieldE string // description or file path
}

func newEventPage(d deps, id string) *eventPage {
	return &eventPage{deps: d, id: id, qty: 1}
}

func (p *eventPage) Title() string { return "Event" }

func (p *eventPage) capturesInput() bool { return p.form != nil }

func (p *eventPage) owned() bool {
	return p.detail != nil && p.sess.Authenticated() && p.detail.CreatorID == p.sess.UserID()
}

func (p *eventPage) Init() tea.Cmd {
	return p.fetch()
}

func (p *eventPage) fetch() tea.Cmd {
	seq := p.seq
	id := p.id
	return func() tea.Msg {
		detail, err := flight.Do(p.flights, p.ctx, "event", func(ctx context.Context) (*api.EventDetail, error) {
			return p.client.Event(ctx, id)
		})
		if detail == nil && err == nil {
			return nil
		}
		return eventLoadedMsg{seq: seq, detail: detail, err: err}
	}
}

func (p *eventPage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case eventLoadedMsg:
		p.loaded = true
		p.err = msg.err
		p.detail = msg.detail
		p.cursor = 0
		p.qty = 1
		return p, nil

	case ticketBoughtMsg:
		if msg.err != nil {
			return p, notifyErr(msg.err)
		}
		// Optimistic decrement; the next reload is authoritative.
		if p.detail != nil {
			for i := range p.detail.Tickets {
				if p.detail.Tickets[i].TicketID == msg.ticketID {
					p.detail.Tickets[i].Quantity -= msg.quantity
					if p.detail.Tickets[i].Quantity < 0 {
						p.detail.Tickets[i].Quantity = 0
					}
				}
			}
		}
		p.qty = 1
		return p, notify(fmt.Sprintf("Bought %d ticket(s)", msg.quantity))

	case merchBoughtMsg:
		if msg.err != nil {
			return p, notifyErr(msg.err)
		}
		if p.detail != nil {
			for i := range p.detail.Merch {
				if p.detail.Merch[i].MerchID == msg.merchID {
					p.detail.Merch[i].Stock -= msg.quantity
					if p.detail.Merch[i].Stock < 0 {
						p.detail.Merch[i].Stock = 0
					}
				}
			}
		}
		p.qty = 1
		return p, notify(fmt.Sprintf("Bought %d item(s)", msg.quantity))

	case eventMutatedMsg:
		if msg.err != nil {
			return p, notifyErr(msg.err)
		}
		return p, tea.Batch(notify(msg.action), p.fetch())

	case eventDeletedMsg:
		if msg.err != nil {
			return p, notifyErr(msg.err)
		}
		return p, tea.Batch(notify("Event deleted"), navigate("/events"))

	case tea.KeyMsg:
		return p.handleKey(msg)
	}

	if p.form != nil {
		return p.updateForm(msg)
	}
	return p, nil
}

func (p *eventPage) handleKey(msg tea.KeyMsg) (page, tea.Cmd) {
	if p.form != nil {
		if msg.String() == "esc" {
			p.form = nil
			p.formKind = formNone
			return p, nil
		}
		return p.updateForm(msg)
	}

	if p.lightbox.open {
		switch msg.String() {
		case "right", "l", "n":
			p.lightbox.next()
		case "left", "h", "p":
			p.lightbox.prev()
		case "esc", "enter":
			p.lightbox.close()
		}
		return p, nil
	}

	if p.detail == nil {
		return p, nil
	}

	switch msg.String() {
	case "tab":
		p.tab = (p.tab + 1) % len(eventTabs)
		p.cursor = 0
		p.qty = 1
		return p, nil
	case "shift+tab":
		p.tab = (p.tab - 1 + len(eventTabs)) % len(eventTabs)
		p.cursor = 0
		p.qty = 1
		return p, nil
	case "1", "2", "3", "4":
		p.tab = int(msg.String()[0] - '1')
		p.cursor = 0
		p.qty = 1
		return p, nil
	case "j", "down":
		if p.cursor < p.tabLen()-1 {
			p.cursor++
			p.qty = 1
		}
		return p, nil
	case "k", "up":
		if p.cursor > 0 {
			p.cursor--
			p.qty = 1
		}
		return p, nil
	case "r":
		p.loaded = false
		return p, p.fetch()
	}

	switch p.tab {
	case tabInfo:
		return p.handleInfoKey(msg)
	case tabTickets:
		return p.handleTicketKey(msg)
	case tabMerch:
		return p.handleMerchKey(msg)
	case tabMedia:
		return p.handleMediaKey(msg)
	}
	return p, nil
}

func (p *eventPage) tabLen() int {
	switch p.tab {
	case tabTickets:
		return len(p.detail.Tickets)
	case tabMerch:
		return len(p.detail.Merch)
	case tabMedia:
		return len(p.detail.Media)
	}
	return 0
}

func (p *eventPage) handleInfoKey(msg tea.KeyMsg) (page, tea.Cmd) {
	switch msg.String() {
	case "e":
		if p.owned() {
			p.openEventForm()
			return p, p.form.Init()
		}
	case "d":
		if p.owned() {
			return p, confirm("Delete this event?", p.deleteEventCmd())
		}
	case "v":
		if p.detail.PlaceID != "" {
			return p, navigate("/place/" + p.detail.PlaceID)
		}
	}
	return p, nil
}

func (p *eventPage) handleTicketKey(msg tea.KeyMsg) (page, tea.Cmd) {
	tickets := p.detail.Tickets
	switch msg.String() {
	case "+", "=":
		if p.qty < api.MaxTicketPurchase {
			p.qty++
		}
	case "-":
		if p.qty > api.MinTicketPurchase {
			p.qty--
		}
	case "b", "enter":
		if p.cursor < len(tickets) {
			ticket := tickets[p.cursor]
			if !p.sess.Authenticated() {
				return p, navigate("/login")
			}
			if ticket.Quantity <= 0 {
				return p, notify("Sold out")
			}
			qty := p.qty
			if qty > ticket.Quantity {
				qty = ticket.Quantity
			}
			return p, p.buyTicketCmd(ticket.TicketID, qty)
		}
	case "a":
		if p.owned() {
			p.openTicketForm(nil)
			return p, p.form.Init()
		}
	case "e":
		if p.owned() && p.cursor < len(tickets) {
			p.openTicketForm(&tickets[p.cursor])
			return p, p.form.Init()
		}
	case "x":
		if p.owned() && p.cursor < len(tickets) {
			return p, confirm("Remove this ticket class?", p.deleteTicketCmd(tickets[p.cursor].TicketID))
		}
	}
	return p, nil
}

func (p *eventPage) handleMerchKey(msg tea.KeyMsg) (page, tea.Cmd) {
	merch := p.detail.Merch
	switch msg.String() {
	case "+", "=":
		if p.cursor < len(merch) && p.qty < merch[p.cursor].Stock {
			p.qty++
		}
	case "-":
		if p.qty > 1 {
			p.qty--
		}
	case "b", "enter":
		if p.cursor < len(merch) {
			item := merch[p.cursor]
			if !p.sess.Authenticated() {
				return p, navigate("/login")
			}
			if item.Stock <= 0 {
				return p, notify("Out of stock")
			}
			qty := p.qty
			if qty > item.Stock {
				qty = item.Stock
			}
			return p, p.buyMerchCmd(item.MerchID, qty, item.Stock)
		}
	case "a":
		if p.owned() {
			p.openMerchForm(nil)
			return p, p.form.Init()
		}
	case "e":
		if p.owned() && p.cursor < len(merch) {
			p.openMerchForm(&merch[p.cursor])
			return p, p.form.Init()
		}
	case "x":
		if p.owned() && p.cursor < len(merch) {
			return p, confirm("Remove this item?", p.deleteMerchCmd(merch[p.cursor].MerchID))
		}
	}
	return p, nil
}

func (p *eventPage) handleMediaKey(msg tea.KeyMsg) (page, tea.Cmd) {
	media := p.detail.Media
	switch msg.String() {
	case "enter", "v":
		if len(media) > 0 {
			p.lightbox = newGallery(media, p.cursor)
		}
	case "u":
		if p.sess.Authenticated() {
			p.openUploadForm()
			return p, p.form.Init()
		}
		return p, navigate("/login")
	case "x":
		if p.owned() && p.cursor < len(media) {
			return p, confirm("Remove this media?", p.deleteMediaCmd(media[p.cursor].MediaID))
		}
	}
	return p, nil
}

func (p *eventPage) updateForm(msg tea.Msg) (page, tea.Cmd) {
	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}
	if p.form.State == huh.StateCompleted {
		kind := p.formKind
		p.form = nil
		p.formKind = formNone
		return p, p.submitForm(kind)
	}
	return p, cmd
}

func (p *eventPage) openEventForm() {
	p.formKind = formEditEvent
	p.fieldA = p.detail.Title
	p.fieldB = p.detail.Date
	p.fieldC = p.detail.Location
	p.fieldD = p.detail.PlaceID
	p.fieldE = p.detail.Description
	p.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Title").
			Value(&p.fieldA).
			Validate(required("title")),
		huh.NewInput().
			Title("Date (YYYY-MM-DD)").
			Value(&p.fieldB).
			Validate(required("date")),
		huh.NewInput().
			Title("Location").
			Value(&p.fieldC),
		huh.NewInput().
			Title("Venue ID").
			Value(&p.fieldD),
		huh.NewText().
			Title("Description").
			Value(&p.fieldE),
	))
}

func (p *eventPage) openTicketForm(ticket *api.Ticket) {
	p.formKind = formAddTicket
	p.itemID = ""
	p.fieldA, p.fieldB, p.fieldC = "", "", ""
	title := "Add Ticket"
	if ticket != nil {
		p.formKind = formEditTicket
		p.itemID = ticket.TicketID
		p.fieldA = ticket.Name
		p.fieldB = strconv.FormatFloat(ticket.Price, 'f', 2, 64)
		p.fieldC = strconv.Itoa(ticket.Quantity)
		title = "Edit Ticket"
	}
	p.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Name").
			Value(&p.fieldA).
			Validate(required("name")),
		huh.NewInput().
			Title("Price").
			Value(&p.fieldB).
			Validate(price("price")),
		huh.NewInput().
			Title("Quantity").
			Value(&p.fieldC).
			Validate(positiveInt("quantity")),
	).Title(title))
}

func (p *eventPage) openMerchForm(item *api.Merch) {
	p.formKind = formAddMerch
	p.itemID = ""
	p.fieldA, p.fieldB, p.fieldC = "", "", ""
	title := "Add Merch"
	if item != nil {
		p.formKind = formEditMerch
		p.itemID = item.MerchID
		p.fieldA = item.Name
		p.fieldB = strconv.FormatFloat(item.Price, 'f', 2, 64)
		p.fieldC = strconv.Itoa(item.Stock)
		title = "Edit Merch"
	}
	p.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Name").
			Value(&p.fieldA).
			Validate(required("name")),
		huh.NewInput().
			Title("Price").
			Value(&p.fieldB).
			Validate(price("price")),
		huh.NewInput().
			Title("Stock").
			Value(&p.fieldC).
			Validate(positiveInt("stock")),
	).Title(title))
}

func (p *eventPage) openUploadForm() {
	p.formKind = formUploadMedia
	p.fieldD, p.fieldE = "", ""
	p.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("File path").
			Value(&p.fieldE).
			Validate(required("file path")),
		huh.NewInput().
			Title("Caption").
			Value(&p.fieldD),
	).Title("Upload Media"))
}

func price(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil || n < 0 {
			return fmt.Errorf("%s must be a non-negative number", field)
		}
		return nil
	}
}

func (p *eventPage) submitForm(kind int) tea.Cmd {
	seq := p.seq
	switch kind {
	case formEditEvent:
		payload := api.EventPayload{
			Title:       p.fieldA,
			Date:        p.fieldB,
			Location:    p.fieldC,
			PlaceID:     p.fieldD,
			Description: p.fieldE,
		}
		return func() tea.Msg {
			_, err := p.client.UpdateEvent(p.ctx, p.id, payload, nil)
			return eventMutatedMsg{seq: seq, action: "Event updated", err: err}
		}

	case formAddTicket, formEditTicket:
		priceVal, _ := strconv.ParseFloat(p.fieldB, 64)
		quantity, _ := strconv.Atoi(p.fieldC)
		payload := api.TicketPayload{Name: p.fieldA, Price: priceVal, Quantity: quantity}
		itemID := p.itemID
		return func() tea.Msg {
			var err error
			action := "Ticket added"
			if kind == formEditTicket {
				action = "Ticket updated"
				_, err = p.client.UpdateTicket(p.ctx, p.id, itemID, payload)
			} else {
				_, err = p.client.AddTicket(p.ctx, p.id, payload)
			}
			return eventMutatedMsg{seq: seq, action: action, err: err}
		}

	case formAddMerch, formEditMerch:
		priceVal, _ := strconv.ParseFloat(p.fieldB, 64)
		stock, _ := strconv.Atoi(p.fieldC)
		payload := api.MerchPayload{Name: p.fieldA, Price: priceVal, Stock: stock}
		itemID := p.itemID
		return func() tea.Msg {
			var err error
			action := "Merch added"
			if kind == formEditMerch {
				action = "Merch updated"
				_, err = p.client.UpdateMerch(p.ctx, p.id, itemID, payload)
			} else {
				_, err = p.client.AddMerch(p.ctx, p.id, payload)
			}
			return eventMutatedMsg{seq: seq, action: action, err: err}
		}

	case formUploadMedia:
		path := strings.TrimSpace(p.fieldE)
		caption := p.fieldD
		return func() tea.Msg {
			content, err := os.ReadFile(path)
			if err != nil {
				return eventMutatedMsg{seq: seq, err: fmt.Errorf("read file: %w", err)}
			}
			upload := api.Upload{Filename: filepath.Base(path), Content: content}
			_, err = p.client.UploadMedia(p.ctx, p.id, upload, caption)
			return eventMutatedMsg{seq: seq, action: "Media uploaded", err: err}
		}
	}
	return nil
}

func (p *eventPage) buyTicketCmd(ticketID string, quantity int) tea.Cmd {
	seq := p.seq
	return func() tea.Msg {
		err := p.client.BuyTicket(p.ctx, p.id, ticketID, quantity)
		return ticketBoughtMsg{seq: seq, ticketID: ticketID, quantity: quantity, err: err}
	}
}

func (p *eventPage) buyMerchCmd(merchID string, quantity, stock int) tea.Cmd {
	seq := p.seq
	return func() tea.Msg {
		err := p.client.BuyMerch(p.ctx, p.id, merchID, quantity, stock)
		return merchBoughtMsg{seq: seq, merchID: merchID, quantity: quantity, err: err}
	}
}

func (p *eventPage) deleteEventCmd() tea.Cmd {
	seq := p.seq
	return func() tea.Msg {
		err := p.client.DeleteEvent(p.ctx, p.id)
		return eventDeletedMsg{seq: seq, err: err}
	}
}

func (p *eventPage) deleteTicketCmd(ticketID string) tea.Cmd {
	seq := p.seq
	return func() tea.Msg {
		err := p.client.DeleteTicket(p.ctx, p.id, ticketID)
		return eventMutatedMsg{seq: seq, action: "Ticket removed", err: err}
	}
}

func (p *eventPage) deleteMerchCmd(merchID string) tea.Cmd {
	seq := p.seq
	return func() tea.Msg {
		err := p.client.DeleteMerch(p.ctx, p.id, merchID)
		return eventMutatedMsg{seq: seq, action: "Merch removed", err: err}
	}
}

func (p *eventPage) deleteMediaCmd(mediaID string) tea.Cmd {
	seq := p.seq
	return func() tea.Msg {
		err := p.client.DeleteMedia(p.ctx, p.id, mediaID)
		return eventMutatedMsg{seq: seq, action: "Media removed", err: err}
	}
}

func (p *eventPage) View(width int) string {
	if p.err != nil {
		return p.styles.DangerText.Render(api.UserMessage(p.err))
	}
	if !p.loaded || p.detail == nil {
		return p.styles.MutedText.Render("Loading event...")
	}
	if p.form != nil {
		return p.form.View() + "\n" + p.styles.MutedText.Render("esc cancel")
	}
	if media, ok := p.lightbox.current(); ok {
		return p.renderLightbox(media)
	}

	var b strings.Builder
	b.WriteString(p.styles.Title.Render(p.detail.Title))
	b.WriteString("\n")
	b.WriteString(p.styles.MutedText.Render(p.detail.Date + "  " + p.detail.Location))
	b.WriteString("\n\n")
	b.WriteString(p.renderTabs())
	b.WriteString("\n\n")

	switch p.tab {
	case tabInfo:
		b.WriteString(p.renderInfo())
	case tabTickets:
		b.WriteString(p.renderTickets())
	case tabMerch:
		b.WriteString(p.renderMerch())
	case tabMedia:
		b.WriteString(p.renderMedia())
	}
	return b.String()
}

func (p *eventPage) renderTabs() string {
	parts := make([]string, 0, len(eventTabs))
	for i, name := range eventTabs {
		label := fmt.Sprintf("%d:%s", i+1, name)
		if i == p.tab {
			parts = append(parts, p.styles.NavActive.Render(label))
		} else {
			parts = append(parts, p.styles.NavBar.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (p *eventPage) renderInfo() string {
	var b strings.Builder
	if p.detail.Description != "" {
		b.WriteString(p.styles.Text.Render(p.detail.Description))
		b.WriteString("\n\n")
	}
	if p.detail.PlaceID != "" {
		b.WriteString(p.styles.MutedText.Render("v view venue"))
		b.WriteString("\n")
	}
	if p.owned() {
		b.WriteString(p.styles.MutedText.Render("e edit  d delete"))
	}
	return b.String()
}

func (p *eventPage) renderTickets() string {
	if len(p.detail.Tickets) == 0 {
		s := p.styles.MutedText.Render("No tickets on sale.")
		if p.owned() {
			s += "\n" + p.styles.MutedText.Render("a add ticket")
		}
		return s
	}

	var b strings.Builder
	for i, t := range p.detail.Tickets {
		availability := fmt.Sprintf("%d left", t.Quantity)
		if t.Quantity <= 0 {
			availability = "sold out"
		}
		line := fmt.Sprintf("%-20s $%-8.2f %s", truncate(t.Name, 20), t.Price, availability)
		if i == p.cursor {
			b.WriteString(p.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(p.styles.Text.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(p.styles.AccentText.Render(fmt.Sprintf("quantity: %d", p.qty)))
	b.WriteString("\n")
	hint := "+/- quantity  b buy"
	if p.owned() {
		hint += "  a add  e edit  x remove"
	}
	b.WriteString(p.styles.MutedText.Render(hint))
	return b.String()
}

func (p *eventPage) renderMerch() string {
	if len(p.detail.Merch) == 0 {
		s := p.styles.MutedText.Render("No merchandise.")
		if p.owned() {
			s += "\n" + p.styles.MutedText.Render("a add item")
		}
		return s
	}

	var b strings.Builder
	for i, m := range p.detail.Merch {
		availability := fmt.Sprintf("%d in stock", m.Stock)
		if m.Stock <= 0 {
			availability = "out of stock"
		}
		line := fmt.Sprintf("%-20s $%-8.2f %s", truncate(m.Name, 20), m.Price, availability)
		if i == p.cursor {
			b.WriteString(p.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(p.styles.Text.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(p.styles.AccentText.Render(fmt.Sprintf("quantity: %d", p.qty)))
	b.WriteString("\n")
	hint := "+/- quantity  b buy"
	if p.owned() {
		hint += "  a add  e edit  x remove"
	}
	b.WriteString(p.styles.MutedText.Render(hint))
	return b.String()
}

func (p *eventPage) renderMedia() string {
	if len(p.detail.Media) == 0 {
		return p.styles.MutedText.Render("No media yet.") + "\n" +
			p.styles.MutedText.Render("u upload")
	}

	var b strings.Builder
	for i, m := range p.detail.Media {
		caption := m.Caption
		if caption == "" {
			caption = m.URL
		}
		line := fmt.Sprintf("%-7s %s", m.Type, truncate(caption, 50))
		if i == p.cursor {
			b.WriteString(p.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(p.styles.Text.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	hint := "enter view  u upload"
	if p.owned() {
		hint += "  x remove"
	}
	b.WriteString(p.styles.MutedText.Render(hint))
	return b.String()
}

func (p *eventPage) renderLightbox(media api.Media) string {
	var b strings.Builder
	b.WriteString(p.styles.Box.Render(
		p.styles.AccentText.Render(media.URL) + "\n\n" +
			p.styles.Text.Render(media.Caption)))
	b.WriteString("\n")
	b.WriteString(p.styles.MutedText.Render(fmt.Sprintf(
		"%d/%d  left/right browse  esc close",
		p.lightbox.index+1, len(p.lightbox.items))))
	return b.String()
}
