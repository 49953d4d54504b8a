package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"corvus-contact/pkg/contactform"
	"corvus-contact/pkg/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	apiKey string
	from   string
	sent   []email.Message
}

func (f *fakeSender) Send(_ context.Context, msg email.Message) (string, error) {
	f.sent = append(f.sent, msg)
	return "msg_123", nil
}

type fakeDomains struct {
	apiKey string
	name   string
	region string
}

func (f *fakeDomains) RegisterDomain(_ context.Context, name, region string) (email.Domain, error) {
	f.name, f.region = name, region
	return email.Domain{
		ID:     "dom_1",
		Name:   name,
		Status: "not_started",
		Records: []email.DNSRecord{
			{Record: "SPF", Type: "MX", Name: "send", Value: "feedback-smtp.us-east-1.amazonses.com", Priority: "10", TTL: "Auto"},
			{Record: "DKIM", Type: "TXT", Name: "resend._domainkey", Value: "p=MIGf", TTL: "Auto"},
		},
	}, nil
}

func run(t *testing.T, a *app, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand(a)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSubmitCommandSuccess(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Emails sent successfully"}`))
	}))
	defer srv.Close()

	stdout, _, err := run(t, newApp(), "submit",
		"--endpoint", srv.URL,
		"--name", "Ada Lovelace",
		"--email", "ada@example.com",
		"--message", "We would like to talk about automation.",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Thank you for your message!")
	assert.Equal(t, "Ada Lovelace", got["name"])
	assert.NotContains(t, got, "company")
}

func TestSubmitCommandValidation(t *testing.T) {
	hit := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hit = true
	}))
	defer srv.Close()

	_, stderr, err := run(t, newApp(), "submit", "--endpoint", srv.URL, "--name", "A", "--email", "nope")
	assert.ErrorIs(t, err, contactform.ErrValidation)
	assert.Contains(t, stderr, "name: Name must be between 2 and 50 characters")
	assert.Contains(t, stderr, "email: Please enter a valid email address")
	assert.Contains(t, stderr, "message: Message is required")
	assert.False(t, hit)
}

func TestSubmitCommandServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Error sending email"}`))
	}))
	defer srv.Close()

	_, _, err := run(t, newApp(), "submit",
		"--endpoint", srv.URL,
		"--name", "Ada Lovelace",
		"--email", "ada@example.com",
		"--message", "We would like to talk about automation.",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Error sending email")
}

func TestEndpointFromEnvironment(t *testing.T) {
	t.Setenv("CORVUS_ENDPOINT", "http://example.invalid/api/contact")
	a := newApp()
	cmd := newRootCommand(a)
	require.NoError(t, cmd.ParseFlags(nil))
	assert.Equal(t, "http://example.invalid/api/contact", a.v.GetString("endpoint"))
}

func TestTestEmailCommand(t *testing.T) {
	t.Setenv("RESEND_API_KEY", "re_test")
	t.Setenv("CONTACT_FROM_EMAIL", "contact@corvusbpo.com")
	t.Setenv("CONTACT_TO_EMAIL", "hello@corvusbpo.com")

	fake := &fakeSender{}
	a := newApp()
	a.newSender = func(apiKey, from string) email.Sender {
		fake.apiKey, fake.from = apiKey, from
		return fake
	}

	stdout, _, err := run(t, a, "test-email", "--to", "labs@example.com")
	require.NoError(t, err)
	assert.Contains(t, stdout, "msg_123")
	assert.Equal(t, "re_test", fake.apiKey)
	assert.Equal(t, "contact@corvusbpo.com", fake.from)
	require.Len(t, fake.sent, 1)
	assert.Equal(t, []string{"labs@example.com"}, fake.sent[0].To)
	assert.Equal(t, testEmailSubject, fake.sent[0].Subject)
	assert.Contains(t, fake.sent[0].HTML, "hello@corvusbpo.com")
}

func TestTestEmailCommandRequiresKey(t *testing.T) {
	t.Setenv("RESEND_API_KEY", "")

	a := newApp()
	a.newSender = func(string, string) email.Sender {
		t.Fatal("sender must not be built without a key")
		return nil
	}
	_, _, err := run(t, a, "test-email")
	assert.EqualError(t, err, "RESEND_API_KEY is not set")
}

func TestSetupDomainCommand(t *testing.T) {
	t.Setenv("RESEND_API_KEY", "re_test")
	t.Setenv("CONTACT_FROM_EMAIL", "contact@corvusbpo.com")

	fake := &fakeDomains{}
	a := newApp()
	a.newDomains = func(apiKey string) email.DomainRegistrar {
		fake.apiKey = apiKey
		return fake
	}

	stdout, _, err := run(t, a, "setup-domain", "--domain", "example.org", "--region", "eu-west-1")
	require.NoError(t, err)
	assert.Equal(t, "re_test", fake.apiKey)
	assert.Equal(t, "example.org", fake.name)
	assert.Equal(t, "eu-west-1", fake.region)
	assert.Contains(t, stdout, "Domain added successfully: example.org")
	assert.Contains(t, stdout, "resend._domainkey")
	assert.Contains(t, stdout, "feedback-smtp.us-east-1.amazonses.com")
}

func TestSetupDomainDefaultsToSenderDomain(t *testing.T) {
	t.Setenv("RESEND_API_KEY", "re_test")
	t.Setenv("CONTACT_FROM_EMAIL", "contact@corvusbpo.com")

	fake := &fakeDomains{}
	a := newApp()
	a.newDomains = func(string) email.DomainRegistrar { return fake }

	_, _, err := run(t, a, "setup-domain")
	require.NoError(t, err)
	assert.Equal(t, "corvusbpo.com", fake.name)
}

func TestSetupDomainRequiresKey(t *testing.T) {
	t.Setenv("RESEND_API_KEY", "")

	a := newApp()
	a.newDomains = func(string) email.DomainRegistrar {
		t.Fatal("registrar must not be built without a key")
		return nil
	}
	_, _, err := run(t, a, "setup-domain", "--domain", "corvusbpo.com")
	assert.EqualError(t, err, "RESEND_API_KEY is not set")
}
