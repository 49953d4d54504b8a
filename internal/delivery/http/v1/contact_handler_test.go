package v1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"corvus-contact/config"
	"corvus-contact/internal/delivery/http/middleware"
	"corvus-contact/internal/domain"
	"corvus-contact/internal/usecase"
	"corvus-contact/pkg/email"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Mock contact usecase ---

type MockContactUsecase struct {
	mock.Mock
}

func (m *MockContactUsecase) SubmitContact(ctx context.Context, sub *domain.ContactSubmission) error {
	return m.Called(ctx, sub).Error(0)
}

// --- Recording sender ---

type recordingSender struct {
	mu      sync.Mutex
	sent    []email.Message
	failFor map[string]error // keyed by subject
}

func (s *recordingSender) Send(_ context.Context, msg email.Message) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	if err := s.failFor[msg.Subject]; err != nil {
		return "", err
	}
	return fmt.Sprintf("msg-%d", len(s.sent)), nil
}

func testConfig() *config.Config {
	return &config.Config{
		ContactFromEmail:          "contact@corvusbpo.com",
		ContactToEmail:            "hello@corvusbpo.com",
		RateLimitWindowSeconds:    60,
		RateLimitContactThreshold: 100,
		RateLimitGlobalThreshold:  100,
	}
}

// newTestRouter wires the real usecase; a nil sender simulates a missing API key
func newTestRouter(sender email.Sender) *gin.Engine {
	cfg := testConfig()
	uc := usecase.NewContactUsecase(sender, usecase.ContactConfig{
		FromEmail: cfg.ContactFromEmail,
		ToEmail:   cfg.ContactToEmail,
	}, nil, nil)
	return NewRouter(RouterDeps{ContactUC: uc, Config: cfg})
}

func postContact(t *testing.T, r http.Handler, body string) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded), w.Body.String())
	return w, decoded
}

func TestSubmitContactSuccess(t *testing.T) {
	sender := &recordingSender{}
	r := newTestRouter(sender)

	w, body := postContact(t, r, `{"name":"A","email":"a@b.com","message":"hello there"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Emails sent successfully", body["message"])
	assert.Empty(t, body["error"])

	require.Len(t, sender.sent, 2)
	assert.Equal(t, []string{"hello@corvusbpo.com"}, sender.sent[0].To)
	assert.Equal(t, "New Contact Form Submission", sender.sent[0].Subject)
	assert.NotContains(t, sender.sent[0].HTML, "Company")
	assert.Equal(t, []string{"a@b.com"}, sender.sent[1].To)
	assert.Equal(t, "Thank you for contacting Corvus Labs", sender.sent[1].Subject)
}

func TestSubmitContactMissingMessage(t *testing.T) {
	sender := &recordingSender{}
	r := newTestRouter(sender)

	w, body := postContact(t, r, `{"name":"A","email":"a@b.com"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Name, email and message are required", body["error"])
	assert.Empty(t, sender.sent, "no send is attempted")
}

func TestSubmitContactMalformedJSON(t *testing.T) {
	sender := &recordingSender{}
	r := newTestRouter(sender)

	for _, payload := range []string{`{"name":`, `not json`, ``, `{"name":42,"email":"a@b.com","message":"hello there"}`} {
		w, body := postContact(t, r, payload)
		assert.Equal(t, http.StatusBadRequest, w.Code, payload)
		assert.Equal(t, "Invalid request body", body["error"], payload)
	}
	assert.Empty(t, sender.sent)
}

func TestSubmitContactNotConfigured(t *testing.T) {
	r := newTestRouter(nil)

	w, body := postContact(t, r, `{"name":"A","email":"a@b.com","message":"hello there"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Email service is not configured", body["error"])
}

func TestSubmitContactAdminSendFails(t *testing.T) {
	sender := &recordingSender{failFor: map[string]error{
		email.AdminNotificationSubject: errors.New("resend: 500 internal"),
	}}
	r := newTestRouter(sender)

	w, body := postContact(t, r, `{"name":"A","email":"a@b.com","message":"hello there"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error sending email", body["error"])
	assert.NotContains(t, w.Body.String(), "resend", "provider detail is not leaked")
	require.Len(t, sender.sent, 1, "acknowledgment is never attempted")
	assert.Equal(t, email.AdminNotificationSubject, sender.sent[0].Subject)
}

func TestSubmitContactAcknowledgmentFails(t *testing.T) {
	sender := &recordingSender{failFor: map[string]error{
		email.AcknowledgmentSubject: errors.New("resend: 429"),
	}}
	r := newTestRouter(sender)

	w, body := postContact(t, r, `{"name":"A","email":"a@b.com","message":"hello there"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error sending email", body["error"])
	assert.Len(t, sender.sent, 2)
}

func TestSubmitContactErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"missing fields", domain.ErrMissingFields, http.StatusBadRequest, "Name, email and message are required"},
		{"not configured", domain.ErrEmailNotConfigured, http.StatusInternalServerError, "Email service is not configured"},
		{"delivery", fmt.Errorf("%w: admin", domain.ErrEmailDeliveryFailed), http.StatusInternalServerError, "Error sending email"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "Error sending email"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := new(MockContactUsecase)
			uc.On("SubmitContact", mock.Anything, mock.Anything).Return(tc.err)
			r := NewRouter(RouterDeps{ContactUC: uc, Config: testConfig()})

			w, body := postContact(t, r, `{"name":"A","email":"a@b.com","message":"hello there"}`)
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.msg, body["error"])
		})
	}
}

func TestSubmitContactRateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitContactThreshold = 1

	uc := new(MockContactUsecase)
	uc.On("SubmitContact", mock.Anything, mock.Anything).Return(nil)
	r := NewRouter(RouterDeps{
		ContactUC:   uc,
		Config:      cfg,
		RateLimiter: middleware.NewRateLimiter(nil, nil),
	})

	payload := `{"name":"A","email":"a@b.com","message":"hello there"}`
	w, _ := postContact(t, r, payload)
	assert.Equal(t, http.StatusOK, w.Code)

	w, body := postContact(t, r, payload)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, body["error"])
	uc.AssertNumberOfCalls(t, "SubmitContact", 1)
}

func TestHealth(t *testing.T) {
	r := newTestRouter(nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "System operational")
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestHealthReportsChecks(t *testing.T) {
	r := NewRouter(RouterDeps{
		ContactUC: &MockContactUsecase{},
		HealthUC:  usecase.NewHealthUsecase(usecase.EmailModeNotConfigured, nil),
		Config:    testConfig(),
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Message string            `json:"message"`
		Checks  map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "System operational", body.Message)
	assert.Equal(t, "degraded", body.Checks["status"])
	assert.Equal(t, "memory", body.Checks["rate_limit_store"])
}

func TestPanicReturnsJSONError(t *testing.T) {
	r := newTestRouter(nil)
	r.GET("/api/boom", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/boom", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "An unexpected error occurred. Please try again later.", body["error"])
}
