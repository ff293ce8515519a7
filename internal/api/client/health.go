package client

import (
	"context"
	"errors"
)

// Health reports liveness and readiness of the server.
type Health struct {
	Live  bool `json:"live"`
	Ready bool `json:"ready"`
}

// Health probes /healthz and /readyz. An unready server is not an error.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var status struct {
		Status string `json:"status"`
	}
	if err := c.get(ctx, "/healthz", &status); err != nil {
		return nil, err
	}
	h := &Health{Live: status.Status == "ok"}

	status.Status = ""
	if err := c.get(ctx, "/readyz", &status); err != nil {
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			return nil, err
		}
		return h, nil
	}
	h.Ready = status.Status == "ready"
	return h, nil
}
