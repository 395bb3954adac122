package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"clinicsite-backend/internal/builder"
	"clinicsite-backend/internal/models"
)

// Client talks to the site persistence API on behalf of one editing session.
// It satisfies builder.Gateway; a 409 from the server becomes
// builder.ErrSaveConflict so the session surfaces it instead of retrying.
type Client struct {
	baseURL  string
	clinicID uint
	token    string
	http     *http.Client
}

func NewClient(baseURL string, clinicID uint, token string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		clinicID: clinicID,
		token:    token,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) siteURL(suffix string) string {
	return fmt.Sprintf("%s/api/v1/sites/%d%s", c.baseURL, c.clinicID, suffix)
}

func (c *Client) do(ctx context.Context, method, url string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return c.http.Do(req)
}

func (c *Client) Load(ctx context.Context) (*builder.Site, int64, error) {
	resp, err := c.do(ctx, http.MethodGet, c.siteURL(""), nil)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("load site: unexpected status %d", resp.StatusCode)
	}

	var payload models.SiteResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, 0, fmt.Errorf("load site: %w", err)
	}

	var site builder.Site
	if err := json.Unmarshal(payload.Document, &site); err != nil {
		return nil, 0, fmt.Errorf("load site: malformed document: %w", err)
	}

	return &site, payload.Revision, nil
}

func (c *Client) Save(ctx context.Context, site *builder.Site, revision int64) (int64, error) {
	document, err := json.Marshal(site)
	if err != nil {
		return 0, err
	}

	resp, err := c.do(ctx, http.MethodPut, c.siteURL(""), models.SaveSiteRequest{
		Revision: revision,
		Document: document,
	})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusConflict:
		return 0, builder.ErrSaveConflict
	default:
		return 0, fmt.Errorf("save site: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Revision int64 `json:"revision"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("save site: %w", err)
	}
	return payload.Revision, nil
}

func (c *Client) Publish(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodPost, c.siteURL("/publish"), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("publish site: unexpected status %d", resp.StatusCode)
	}
	return nil
}
