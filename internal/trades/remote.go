package trades

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// RemoteStore is the authoritative trade store, reached over its
// request/response JSON API.
type RemoteStore interface {
	FetchTrades(ctx context.Context) ([]Trade, error)
	FetchTrade(ctx context.Context, id string) (*Trade, error)
	CreateTrade(ctx context.Context, t *Trade) error
	// UpdateTrade writes the full record conditionally on the copy the
	// caller read; the store rejects the write with a conflict when its
	// updatedAt no longer matches expected.
	UpdateTrade(ctx context.Context, t *Trade, expected time.Time) error
	UpdateShipping(ctx context.Context, id string, shipping ShippingAddress, contacts []BuyerContact) error
}

type remoteClient struct {
	baseURL string
	http    *http.Client
	apiKey  string
}

// NewRemoteStore creates a client for the remote trade store API.
func NewRemoteStore(baseURL, apiKey string, timeout time.Duration) RemoteStore {
	return &remoteClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *remoteClient) do(ctx context.Context, method, path string, body, out interface{}, headers map[string]string) (int, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("remote store %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Errorf("remote store %s %s: status %d", method, path, resp.StatusCode)
	}
	if out != nil {
		// Unknown fields are a schema mismatch; fail closed rather than
		// guess at what the store meant.
		dec := json.NewDecoder(resp.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("remote store %s %s: invalid response: %w", method, path, err)
		}
	}
	return resp.StatusCode, nil
}

func (c *remoteClient) FetchTrades(ctx context.Context) ([]Trade, error) {
	var dtos []Trade
	if _, err := c.do(ctx, http.MethodGet, "/trades/records", nil, &dtos, nil); err != nil {
		return nil, err
	}
	for i := range dtos {
		if err := dtos[i].Validate(); err != nil {
			return nil, fmt.Errorf("remote store returned malformed record: %w", err)
		}
	}
	return dtos, nil
}

func (c *remoteClient) FetchTrade(ctx context.Context, id string) (*Trade, error) {
	var dto Trade
	status, err := c.do(ctx, http.MethodGet, "/trades/"+id, nil, &dto, nil)
	if status == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, fmt.Errorf("remote store returned malformed record: %w", err)
	}
	return &dto, nil
}

func (c *remoteClient) CreateTrade(ctx context.Context, t *Trade) error {
	_, err := c.do(ctx, http.MethodPost, "/trades/records", t, nil, nil)
	return err
}

func (c *remoteClient) UpdateTrade(ctx context.Context, t *Trade, expected time.Time) error {
	headers := map[string]string{
		"If-Unmodified-Since": expected.UTC().Format(http.TimeFormat),
	}
	status, err := c.do(ctx, http.MethodPatch, "/trades/records/"+t.ID, t, nil, headers)
	if status == http.StatusPreconditionFailed || status == http.StatusConflict {
		return ErrConflict
	}
	return err
}

func (c *remoteClient) UpdateShipping(ctx context.Context, id string, shipping ShippingAddress, contacts []BuyerContact) error {
	body := map[string]interface{}{"shipping": shipping}
	if contacts != nil {
		body["contacts"] = contacts
	}
	_, err := c.do(ctx, http.MethodPatch, "/trades/"+id+"/shipping", body, nil, nil)
	return err
}
