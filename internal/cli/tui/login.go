package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"donee/internal/cli/model"
	"donee/internal/cli/service"
	"donee/internal/cli/view"
)

// Selectors of the login form elements.
const (
	SelTitle  = "#title"
	SelError  = "#error"
	SelSubmit = "#submit"
	SelStatus = "#status"
)

// LoginResultMsg is delivered when the login call returns.
type LoginResultMsg struct {
	User *model.User
	Err  error
}

// LoginModel is an interactive email/password form.
// Loading and error states go through the view helpers.
type LoginModel struct {
	ctx        context.Context
	svc        service.AuthService
	email      textinput.Model
	password   textinput.Model
	focusIndex int
	doc        *view.Document
	submitting bool
	User       *model.User
}

func NewLoginModel(ctx context.Context, svc service.AuthService) LoginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.Focus()
	email.Width = 32

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.Width = 32

	doc := view.NewDocument(
		view.NewElement(SelTitle, view.KindTitle, "Sign in to donee"),
		view.NewElement(SelError, view.KindError, ""),
		view.NewElement(SelSubmit, view.KindButton, "Sign in"),
		view.NewElement(SelStatus, view.KindText, ""),
	)
	view.ClearError(doc.Query(SelError))
	view.Hide(doc.Query(SelStatus))

	return LoginModel{ctx: ctx, svc: svc, email: email, password: password, doc: doc}
}

// Document exposes the form elements (used by tests).
func (m LoginModel) Document() *view.Document { return m.doc }

func (m LoginModel) Init() tea.Cmd { return textinput.Blink }

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "shift+tab":
			m.toggleFocus()
			return m, nil
		case "enter":
			return m.submit()
		}

	case LoginResultMsg:
		m.submitting = false
		view.SetLoading(m.doc.Query(SelSubmit), false)
		if msg.Err != nil {
			view.ShowError(m.doc.Query(SelError), msg.Err.Error())
			return m, nil
		}
		m.User = msg.User
		status := m.doc.Query(SelStatus)
		if msg.User != nil {
			view.SetText(status, "Logged in as "+msg.User.Username)
		} else {
			view.SetText(status, "Logged in")
		}
		view.Show(status)
		return m, tea.Quit
	}

	var cmd tea.Cmd
	if m.focusIndex == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m *LoginModel) toggleFocus() {
	if m.focusIndex == 0 {
		m.focusIndex = 1
		m.email.Blur()
		m.password.Focus()
		return
	}
	m.focusIndex = 0
	m.password.Blur()
	m.email.Focus()
}

func (m LoginModel) submit() (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	// пустая форма уходит на сервер как есть: валидацию делает API
	req := model.LoginRequest{Email: strings.TrimSpace(m.email.Value()), Password: m.password.Value()}
	m.submitting = true
	view.ClearError(m.doc.Query(SelError))
	view.SetLoading(m.doc.Query(SelSubmit), true)

	ctx, svc := m.ctx, m.svc
	return m, func() tea.Msg {
		if _, err := svc.Login(ctx, req); err != nil {
			return LoginResultMsg{Err: err}
		}
		u, err := svc.Me(ctx)
		if err != nil {
			return LoginResultMsg{Err: err}
		}
		return LoginResultMsg{User: u}
	}
}

func (m LoginModel) View() string {
	var sb strings.Builder
	sb.WriteString(view.NewDocument(m.doc.Query(SelTitle)).Render())
	sb.WriteString("\n")
	sb.WriteString(m.email.View())
	sb.WriteString("\n")
	sb.WriteString(m.password.View())
	sb.WriteString("\n\n")
	rest := view.NewDocument(m.doc.Query(SelError), m.doc.Query(SelSubmit), m.doc.Query(SelStatus))
	sb.WriteString(rest.Render())
	sb.WriteString("\n\n")
	sb.WriteString(view.DimStyle.Render("tab: switch field • enter: submit • esc: quit"))
	return sb.String()
}
