package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

type loginDoneMsg struct {
	seq int
	err error
}

func (m loginDoneMsg) navSeq() int { return m.seq }

type signupDoneMsg struct {
	seq int
	err error
}

func (m signupDoneMsg) navSeq() int { return m.seq }

// loginPage holds the sign-in and sign-up forms. Field validation beyond
// non-emptiness lives in the session manager, so both entry points share it.
type loginPage struct {
	deps
	signup  bool
	form    *huh.Form
	waiting bool

	username string
	email    string
	password string
}

func newLoginPage(d deps) *loginPage {
	p := &loginPage{deps: d}
	p.buildForm()
	return p
}

func (p *loginPage) Title() string {
	if p.signup {
		return "Sign Up"
	}
	return "Login"
}

func (p *loginPage) capturesInput() bool { return !p.waiting }

func (p *loginPage) buildForm() {
	fields := []huh.Field{
		huh.NewInput().
			Title("Username").
			Value(&p.username),
	}
	if p.signup {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Value(&p.email))
	}
	fields = append(fields, huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(&p.password))
	p.form = huh.NewForm(huh.NewGroup(fields...))
}

func (p *loginPage) Init() tea.Cmd {
	return p.form.Init()
}

func (p *loginPage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		p.waiting = false
		if msg.err != nil {
			p.buildForm()
			return p, tea.Batch(notifyErr(msg.err), p.form.Init())
		}
		return p, tea.Batch(notify("Welcome back, "+p.username), navigate("/"))

	case signupDoneMsg:
		p.waiting = false
		if msg.err != nil {
			p.buildForm()
			return p, tea.Batch(notifyErr(msg.err), p.form.Init())
		}
		p.signup = false
		p.password = ""
		p.buildForm()
		return p, tea.Batch(notify("Account created, log in to continue"), p.form.Init())

	case tea.KeyMsg:
		// ctrl+t flips between login and signup without leaving the page.
		if msg.String() == "ctrl+t" && !p.waiting {
			p.signup = !p.signup
			p.password = ""
			p.buildForm()
			return p, p.form.Init()
		}
	}

	if p.waiting {
		return p, nil
	}
	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}
	if p.form.State == huh.StateCompleted {
		p.waiting = true
		if p.signup {
			return p, p.submitSignup()
		}
		return p, p.submitLogin()
	}
	return p, cmd
}

func (p *loginPage) submitLogin() tea.Cmd {
	seq := p.seq
	username, password := p.username, p.password
	return func() tea.Msg {
		err := p.sess.Login(p.ctx, username, password)
		if err == nil {
			// Activity logging is best effort; a failure never blocks login.
			_ = p.client.LogActivity(p.ctx, "login")
		}
		return loginDoneMsg{seq: seq, err: err}
	}
}

func (p *loginPage) submitSignup() tea.Cmd {
	seq := p.seq
	username, email, password := p.username, p.email, p.password
	return func() tea.Msg {
		err := p.sess.Signup(p.ctx, username, email, password)
		return signupDoneMsg{seq: seq, err: err}
	}
}

func (p *loginPage) View(width int) string {
	title := "Log In"
	hint := "ctrl+t switch to sign up"
	if p.signup {
		title = "Create Account"
		hint = "ctrl+t switch to log in"
	}
	if p.waiting {
		return p.styles.Title.Render(title) + "\n\n" +
			p.styles.MutedText.Render("Please wait...")
	}
	return p.styles.Title.Render(title) + "\n\n" + p.form.View() + "\n" +
		p.styles.MutedText.Render(hint)
}
