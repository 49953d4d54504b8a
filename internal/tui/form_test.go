package tui

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"corvus-contact/pkg/contactform"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(m tea.Model, s string) tea.Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func press(m tea.Model, k tea.KeyType) (tea.Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: k})
}

func TestTypingUpdatesController(t *testing.T) {
	ctl := contactform.New("http://unused")
	var m tea.Model = New(ctl, nil)

	m = typeText(m, "Ada")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "ada@example.com")

	fields := ctl.Fields()
	assert.Equal(t, "Ada", fields.Name)
	assert.Equal(t, "ada@example.com", fields.Email)
}

func TestSubmitShowsValidationErrors(t *testing.T) {
	ctl := contactform.New("http://unused")
	var m tea.Model = New(ctl, nil)

	m, cmd := press(m, tea.KeyEnter)
	assert.Nil(t, cmd, "no request is started")

	view := m.View()
	assert.Contains(t, view, "Name is required")
	assert.Contains(t, view, "Email is required")
	assert.Contains(t, view, "Message is required")
	assert.Equal(t, contactform.Idle{}, ctl.Status())
}

func TestSubmitStartsRequestWhenValid(t *testing.T) {
	ctl := contactform.New("http://unused")
	require.NoError(t, ctl.SetField(contactform.FieldName, "Ada"))
	require.NoError(t, ctl.SetField(contactform.FieldEmail, "ada@example.com"))
	require.NoError(t, ctl.SetField(contactform.FieldMessage, "Hello from the terminal"))

	var m tea.Model = New(ctl, nil)
	m, cmd := press(m, tea.KeyEnter)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Sending...")

	// A second submit while the first is pending is ignored
	_, cmd = press(m, tea.KeyEnter)
	assert.Nil(t, cmd)
}

func TestSubmitDoneRendersFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Error sending email"}`))
	}))
	defer srv.Close()

	ctl := contactform.New(srv.URL)
	require.NoError(t, ctl.SetField(contactform.FieldName, "Ada"))
	require.NoError(t, ctl.SetField(contactform.FieldEmail, "ada@example.com"))
	require.NoError(t, ctl.SetField(contactform.FieldMessage, "Hello from the terminal"))

	model := New(ctl, nil)
	msg := model.submit()()
	m, _ := model.Update(msg)

	view := m.View()
	assert.Contains(t, view, "Error sending email")
	assert.True(t, strings.Contains(view, "Ada"), "fields stay filled for retry")
}

func TestQuit(t *testing.T) {
	ctl := contactform.New("http://unused")
	var m tea.Model = New(ctl, nil)

	_, cmd := press(m, tea.KeyEsc)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestStatusFeedDropsWhenFull(t *testing.T) {
	push, ch := StatusFeed()
	for i := 0; i < 20; i++ {
		push(contactform.Idle{})
	}
	assert.Len(t, ch, cap(ch))
}
