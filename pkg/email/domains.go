package email

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// DNSRecord is one record that must be published before the provider
// accepts mail from a domain
type DNSRecord struct {
	Record   string // SPF, DKIM, ...
	Name     string
	Type     string
	TTL      string
	Value    string
	Priority string
	Status   string
}

// Domain is a sending domain registered with the provider
type Domain struct {
	ID      string
	Name    string
	Status  string
	Region  string
	Records []DNSRecord
}

// DomainRegistrar registers sending domains with the provider
type DomainRegistrar interface {
	RegisterDomain(ctx context.Context, name, region string) (Domain, error)
}

// ResendDomains registers domains through the Resend domains API
type ResendDomains struct {
	client *resend.Client
	log    *slog.Logger
}

func NewResendDomains(apiKey string, log *slog.Logger) *ResendDomains {
	if log == nil {
		log = slog.Default()
	}
	return &ResendDomains{client: resend.NewClient(apiKey), log: log}
}

// RegisterDomain adds name to the account. region may be empty for the
// provider default.
func (d *ResendDomains) RegisterDomain(ctx context.Context, name, region string) (Domain, error) {
	if name == "" {
		return Domain{}, errors.New("resend: domain name is required")
	}

	created, err := d.client.Domains.CreateWithContext(ctx, &resend.CreateDomainRequest{
		Name:   name,
		Region: region,
	})
	if err != nil {
		return Domain{}, fmt.Errorf("resend domain create failed: %w", err)
	}

	out := Domain{
		ID:     created.Id,
		Name:   created.Name,
		Status: created.Status,
		Region: created.Region,
	}
	for _, r := range created.Records {
		out.Records = append(out.Records, DNSRecord{
			Record:   r.Record,
			Name:     r.Name,
			Type:     r.Type,
			TTL:      r.Ttl,
			Value:    r.Value,
			Priority: r.Priority.String(),
			Status:   r.Status,
		})
	}

	d.log.Info("resend_domain_created", "domain_id", out.ID, "name", out.Name, "records", len(out.Records))
	return out, nil
}
