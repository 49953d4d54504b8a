// Package tui renders the contact form in a terminal and drives a
// contactform.Controller from key presses.
package tui

import (
	"context"
	"errors"
	"strings"

	"corvus-contact/pkg/contactform"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const successMessage = "Thank you for your message! We'll get back to you soon."

// statusMsg carries a transition reported by the controller
type statusMsg struct{ status contactform.Status }

// submitDoneMsg is returned by the submit command
type submitDoneMsg struct {
	status contactform.Status
	err    error
}

// KeyMap defines keybindings
type KeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s", "enter"),
			key.WithHelp("enter", "send message"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	focusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	buttonStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("12")).Padding(0, 2)
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var fieldLabels = map[string]string{
	contactform.FieldName:    "Name *",
	contactform.FieldEmail:   "Email *",
	contactform.FieldCompany: "Company (optional)",
	contactform.FieldMessage: "Message *",
}

// Model is the bubbletea model for the contact form
type Model struct {
	ctl      *contactform.Controller
	statusCh <-chan contactform.Status
	keys     KeyMap

	inputs  []textinput.Model
	focus   int
	spinner spinner.Model

	status contactform.Status
	errs   contactform.FieldErrors
}

// StatusFeed returns a callback for contactform.WithOnChange and the channel
// the model listens on. Transitions are dropped if the model falls behind;
// the model re-reads the controller's status on each one it receives.
func StatusFeed() (func(contactform.Status), <-chan contactform.Status) {
	ch := make(chan contactform.Status, 8)
	return func(s contactform.Status) {
		select {
		case ch <- s:
		default:
		}
	}, ch
}

// New creates the form model. statusCh may be nil, in which case the
// Succeeded to Idle reset is only picked up on the next key press.
func New(ctl *contactform.Controller, statusCh <-chan contactform.Status) Model {
	m := Model{
		ctl:      ctl,
		statusCh: statusCh,
		keys:     DefaultKeyMap(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		status:   ctl.Status(),
	}

	limits := map[string]int{
		contactform.FieldName:    50,
		contactform.FieldEmail:   100,
		contactform.FieldCompany: 100,
		contactform.FieldMessage: 1000,
	}
	for i, name := range contactform.FieldOrder {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = limits[name]
		ti.Width = 60
		if v, err := ctl.Fields().Get(name); err == nil {
			ti.SetValue(v)
		}
		if i == 0 {
			ti.Focus()
		}
		m.inputs = append(m.inputs, ti)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForStatus())
}

func (m Model) waitForStatus() tea.Cmd {
	if m.statusCh == nil {
		return nil
	}
	ch := m.statusCh
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return statusMsg{status: s}
	}
}

func (m Model) submit() tea.Cmd {
	ctl := m.ctl
	return func() tea.Msg {
		st, err := ctl.Submit(context.Background())
		return submitDoneMsg{status: st, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.ctl.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			return m, m.moveFocus(1)
		case key.Matches(msg, m.keys.Prev):
			return m, m.moveFocus(-1)
		case key.Matches(msg, m.keys.Submit):
			return m.handleSubmit()
		}

		if _, busy := m.status.(contactform.Submitting); busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		_ = m.ctl.SetField(contactform.FieldOrder[m.focus], m.inputs[m.focus].Value())
		m.errs = m.ctl.Errors()
		m.status = m.ctl.Status()
		return m, cmd

	case submitDoneMsg:
		m.status = m.ctl.Status()
		if errors.Is(msg.err, contactform.ErrValidation) {
			m.errs = m.ctl.Errors()
		}
		m.syncInputs()
		return m, nil

	case statusMsg:
		m.status = m.ctl.Status()
		if _, idle := m.status.(contactform.Idle); idle {
			m.syncInputs()
		}
		return m, m.waitForStatus()

	case spinner.TickMsg:
		if _, busy := m.status.(contactform.Submitting); !busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleSubmit validates locally and starts the request only when every
// field passes
func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	if !contactform.CanSubmit(m.status) {
		return m, nil
	}
	if errs := m.ctl.Validate(); errs != nil {
		m.errs = errs
		return m, nil
	}
	m.errs = nil
	m.status = contactform.Submitting{}
	return m, tea.Batch(m.spinner.Tick, m.submit())
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

// syncInputs copies controller values into the inputs, so a cleared form
// after success shows empty fields
func (m *Model) syncInputs() {
	fields := m.ctl.Fields()
	for i, name := range contactform.FieldOrder {
		v, _ := fields.Get(name)
		if m.inputs[i].Value() != v {
			m.inputs[i].SetValue(v)
		}
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Send us a message"))
	b.WriteString("\n")

	if _, ok := m.status.(contactform.Succeeded); ok {
		b.WriteString(successStyle.Render(successMessage))
		b.WriteString("\n\n")
	}

	for i, name := range contactform.FieldOrder {
		label := labelStyle.Render(fieldLabels[name])
		if i == m.focus {
			label = focusStyle.Render(fieldLabels[name])
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
		if msg, ok := m.errs[name]; ok {
			b.WriteString(errorStyle.Render(msg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	switch st := m.status.(type) {
	case contactform.Submitting:
		b.WriteString(m.spinner.View() + " Sending...")
	case contactform.Failed:
		b.WriteString(buttonStyle.Render("Send Message"))
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(st.Reason))
	default:
		b.WriteString(buttonStyle.Render("Send Message"))
	}
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("tab: next field • enter: send • esc: quit"))
	b.WriteString("\n")

	return b.String()
}

// Run starts the interactive form and blocks until the user quits
func Run(ctl *contactform.Controller, statusCh <-chan contactform.Status) error {
	_, err := tea.NewProgram(New(ctl, statusCh)).Run()
	return err
}
