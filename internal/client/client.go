// Package client is a minimal client for the campaign HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"mesa-campaigns/internal/core/domain"
)

// Client talks to a campaign service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// New creates a client with sane defaults.
func New(baseURL string) *Client {
	return &Client{BaseURL: baseURL, Timeout: 30 * time.Second}
}

// Variant is the API view of one experiment arm.
type Variant struct {
	Recipients     int                     `json:"recipients"`
	Content        *domain.Content         `json:"content,omitempty"`
	Deliverability *domain.CheckResult     `json:"deliverability,omitempty"`
	Sent           bool                    `json:"sent"`
	AttemptedAt    *time.Time              `json:"attempted_at,omitempty"`
	Succeeded      int                     `json:"succeeded"`
	Failed         int                     `json:"failed"`
	Metrics        *domain.MetricsSnapshot `json:"metrics,omitempty"`
}

// Campaign is the API view of a campaign.
type Campaign struct {
	ID          string                   `json:"campaign_id"`
	Brief       string                   `json:"brief"`
	AudienceRef string                   `json:"audience_ref"`
	Stage       domain.Stage             `json:"stage"`
	Variants    int                      `json:"variants"`
	Audience    int                      `json:"audience"`
	Groups      map[domain.Label]Variant `json:"groups"`
	Winner      domain.Label             `json:"winner,omitempty"`
	Error       *domain.StateError       `json:"error,omitempty"`
	Version     int64                    `json:"version"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// APIError is a non-2xx answer. Campaign is set when the service returned
// the stored state together with the error.
type APIError struct {
	StatusCode int
	Message    string
	Campaign   *Campaign
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

type StartRequest struct {
	Brief       string `json:"brief"`
	AudienceRef string `json:"audience_ref,omitempty"`
	Variants    int    `json:"variants,omitempty"`
}

func (c *Client) Start(ctx context.Context, req StartRequest) (Campaign, error) {
	var out Campaign
	err := c.do(ctx, http.MethodPost, "campaigns", req, &out)
	return out, err
}

func (c *Client) List(ctx context.Context, limit int) ([]Campaign, error) {
	endpoint := "campaigns"
	if limit > 0 {
		endpoint += "?limit=" + strconv.Itoa(limit)
	}
	var out []Campaign
	err := c.do(ctx, http.MethodGet, endpoint, nil, &out)
	return out, err
}

func (c *Client) Get(ctx context.Context, id string) (Campaign, error) {
	var out Campaign
	err := c.do(ctx, http.MethodGet, "campaigns/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (c *Client) Retry(ctx context.Context, id string) (Campaign, error) {
	var out Campaign
	err := c.do(ctx, http.MethodPost, "campaigns/"+url.PathEscape(id)+"/retry", nil, &out)
	return out, err
}

func (c *Client) Dispatch(ctx context.Context, id string, label domain.Label) (Campaign, error) {
	var out Campaign
	endpoint := fmt.Sprintf("campaigns/%s/variants/%s/dispatch", url.PathEscape(id), url.PathEscape(string(label)))
	err := c.do(ctx, http.MethodPost, endpoint, nil, &out)
	return out, err
}

func (c *Client) Finalize(ctx context.Context, id string) (Campaign, error) {
	var out Campaign
	err := c.do(ctx, http.MethodPost, "campaigns/"+url.PathEscape(id)+"/finalize", nil, &out)
	return out, err
}

func (c *Client) Report(ctx context.Context, id string) (domain.Report, error) {
	var out domain.Report
	err := c.do(ctx, http.MethodGet, "campaigns/"+url.PathEscape(id)+"/report", nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, out any) error {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	u := strings.TrimRight(c.BaseURL, "/") + "/api/v1/" + strings.TrimLeft(endpoint, "/")

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, u, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(b))}
		var decoded struct {
			Error    string    `json:"error"`
			Campaign *Campaign `json:"campaign"`
		}
		if json.Unmarshal(b, &decoded) == nil && decoded.Error != "" {
			apiErr.Message = decoded.Error
			apiErr.Campaign = decoded.Campaign
		}
		return apiErr
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
