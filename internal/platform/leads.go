package platform

import (
	"context"
	"net/http"

	"github.com/felixgeelhaar/carbonwallet/internal/lead"
)

// SubmitLead creates a lead and returns the stored record.
func (c *Client) SubmitLead(ctx context.Context, payload lead.Payload) (*lead.Lead, error) {
	req, err := jsonRequest(http.MethodPost, "/leads", payload)
	if err != nil {
		return nil, err
	}
	if payload.IdempotencyKey != "" {
		req.headers = map[string]string{"Idempotency-Key": payload.IdempotencyKey}
	}

	var created lead.Lead
	if err := c.do(ctx, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// FetchLeads lists every lead in the order the server returns them.
func (c *Client) FetchLeads(ctx context.Context) ([]lead.Lead, error) {
	req, _ := jsonRequest(http.MethodGet, "/leads", nil)

	var leads []lead.Lead
	if err := c.do(ctx, req, &leads); err != nil {
		return nil, err
	}
	if leads == nil {
		leads = []lead.Lead{}
	}
	return leads, nil
}
