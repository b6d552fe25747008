package api

import (
	"context"
	"net/http"
)

// SendSupportEmail forwards a support request to the operations inbox.
func (c *Client) SendSupportEmail(ctx context.Context, name, email, message string) error {
	body := map[string]string{
		"name":    name,
		"email":   email,
		"message": message,
	}
	return c.do(ctx, http.MethodPost, "/api/support/email", nil, body, nil)
}
