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

type feedLoadedMsg struct {
	seq   int
	posts []api.Post
	err   error
}

func (m feedLoadedMsg) navSeq() int { return m.seq }

type postCreatedMsg struct {
	seq int
	err error
}

func (m postCreatedMsg) navSeq() int { return m.seq }

type postDeletedMsg struct {
	seq    int
	postID string
	err    error
}

func (m postDeletedMsg) navSeq() int { return m.seq }

// feedPage shows posts from followed users, newest first.
type feedPage struct {
	deps
	posts  []api.Post
	cursor int
	loaded bool
	err    error

	form      *huh.Form
	postText  string
	mediaPath string
}

func newFeedPage(d deps) *feedPage {
	return &feedPage{deps: d}
}

func (p *feedPage) Title() string { return "Feed" }

func (p *feedPage) capturesInput() bool { return p.form != nil }

func (p *feedPage) Init() tea.Cmd {
	if !p.sess.Authenticated() {
		return nil
	}
	return p.fetch()
}

func (p *feedPage) fetch() tea.Cmd {
	seq := p.seq
	return func() tea.Msg {
		posts, err := flight.Do(p.flights, p.ctx, "feed", func(ctx context.Context) (*[]api.Post, error) {
			list, err := p.client.Feed(ctx)
			if err != nil {
				return nil, err
			}
			return &list, nil
		})
		if posts == nil && err == nil {
			return nil
		}
		var list []api.Post
		if posts != nil {
			list = *posts
		}
		return feedLoadedMsg{seq: seq, posts: list, err: err}
	}
}

func (p *feedPage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case feedLoadedMsg:
		p.loaded = true
		p.err = msg.err
		p.posts = msg.posts
		if p.cursor >= len(p.posts) {
			p.cursor = 0
		}
		return p, nil

	case postCreatedMsg:
		if msg.err != nil {
			return p, notifyErr(msg.err)
		}
		return p, tea.Batch(notify("Posted"), p.fetch())

	case postDeletedMsg:
		if msg.err != nil {
			return p, notifyErr(msg.err)
		}
		// Drop the post locally; the next fetch is authoritative.
		kept := p.posts[:0]
		for _, post := range p.posts {
			if post.PostID != msg.postID {
				kept = append(kept, post)
			}
		}
		p.posts = kept
		if p.cursor >= len(p.posts) && p.cursor > 0 {
			p.cursor--
		}
		return p, notify("Post deleted")

	case tea.KeyMsg:
		if p.form != nil {
			if msg.String() == "esc" {
				p.form = nil
				return p, nil
			}
			return p.updateForm(msg)
		}
		switch msg.String() {
		case "j", "down":
			if p.cursor < len(p.posts)-1 {
				p.cursor++
			}
		case "k", "up":
			if p.cursor > 0 {
				p.cursor--
			}
		case "enter":
			if p.cursor < len(p.posts) {
				return p, navigate("/user/" + p.posts[p.cursor].Username)
			}
		case "c":
			p.postText = ""
			p.mediaPath = ""
			p.form = huh.NewForm(huh.NewGroup(
				huh.NewText().
					Title("What's happening?").
					Value(&p.postText).
					Validate(required("post text")),
				huh.NewInput().
					Title("Attach file (optional path)").
					Value(&p.mediaPath),
			))
			return p, p.form.Init()
		case "x":
			if p.cursor < len(p.posts) {
				post := p.posts[p.cursor]
				if post.UserID == p.sess.UserID() {
					return p, confirm("Delete this post?", p.deleteCmd(post.PostID))
				}
			}
		case "r":
			p.loaded = false
			return p, p.fetch()
		}
	}

	if p.form != nil {
		return p.updateForm(msg)
	}
	return p, nil
}

func (p *feedPage) updateForm(msg tea.Msg) (page, tea.Cmd) {
	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}
	if p.form.State == huh.StateCompleted {
		p.form = nil
		return p, p.submitPost()
	}
	return p, cmd
}

func (p *feedPage) submitPost() tea.Cmd {
	seq := p.seq
	text, mediaPath := p.postText, strings.TrimSpace(p.mediaPath)
	return func() tea.Msg {
		var media []api.Upload
		if mediaPath != "" {
			content, err := os.ReadFile(mediaPath)
			if err != nil {
				return postCreatedMsg{seq: seq, err: fmt.Errorf("read attachment: %w", err)}
			}
			media = append(media, api.Upload{Filename: filepath.Base(mediaPath), Content: content})
		}
		_, err := p.client.CreatePost(p.ctx, text, media)
		return postCreatedMsg{seq: seq, err: err}
	}
}

func (p *feedPage) deleteCmd(postID string) tea.Cmd {
	seq := p.seq
	return func() tea.Msg {
		err := p.client.DeletePost(p.ctx, postID)
		return postDeletedMsg{seq: seq, postID: postID, err: err}
	}
}

func (p *feedPage) View(width int) string {
	if !p.sess.Authenticated() {
		return requireLogin(p.styles, "your feed")
	}
	if p.form != nil {
		return p.styles.Title.Render("New Post") + "\n\n" + p.form.View() + "\n" +
			p.styles.MutedText.Render("esc cancel")
	}

	var b strings.Builder
	b.WriteString(p.styles.Title.Render("Feed"))
	b.WriteString("\n\n")

	switch {
	case p.err != nil:
		b.WriteString(p.styles.DangerText.Render(api.UserMessage(p.err)))
	case !p.loaded:
		b.WriteString(p.styles.MutedText.Render("Loading feed..."))
	case len(p.posts) == 0:
		b.WriteString(p.styles.MutedText.Render("Nothing here yet. Follow people or press c to post."))
	default:
		for i, post := range p.posts {
			header := p.styles.AccentText.Render("@"+post.Username) + " " +
				p.styles.MutedText.Render(post.Timestamp)
			body := p.styles.Text.Render(post.Text)
			if len(post.MediaURLs) > 0 {
				body += "\n" + p.styles.MutedText.Render(fmt.Sprintf("[%d attachment(s)]", len(post.MediaURLs)))
			}
			entry := header + "\n" + body
			if i == p.cursor {
				b.WriteString(p.styles.Selected.Render(entry))
			} else {
				b.WriteString(entry)
			}
			b.WriteString("\n\n")
		}
		b.WriteString(p.styles.MutedText.Render("c post  enter author  x delete own  r reload"))
	}
	return b.String()
}
