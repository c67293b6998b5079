package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/autopeer-io/voltura/internal/configurator/core"
	"github.com/autopeer-io/voltura/internal/configurator/core/model"
)

var _ core.CatalogSource = (*HTTP)(nil)

// maxPayload bounds the catalog body read from the network.
const maxPayload = 32 << 20

// HTTP fetches the catalog with a single GET.
type HTTP struct {
	url    string
	client *http.Client
}

func NewHTTP(url string, timeout time.Duration) *HTTP {
	return &HTTP{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (h *HTTP) Name() string {
	return "http:" + h.url
}

func (h *HTTP) Load(ctx context.Context) ([]model.Vehicle, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch catalog: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPayload))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog body: %w", err)
	}
	return Decode(data)
}
