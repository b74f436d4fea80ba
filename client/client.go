// Copyright (c) 2025 Kayla Lewis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kaylew1421/commonkind/models"
)

// Client is the CommonKind API client.
type Client struct {
	baseURL    string
	token      string
	secret     string
	httpClient *http.Client
}

// New creates a new API client. token is the admin bearer token and
// may be empty for public endpoints.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken replaces the admin bearer token after a login.
func (c *Client) SetToken(token string) {
	c.token = token
}

// SetSecret sets the machine reset secret for ResetAll.
func (c *Client) SetSecret(secret string) {
	c.secret = secret
}

// FetchHubs returns all hubs.
func (c *Client) FetchHubs(ctx context.Context) ([]models.Hub, error) {
	var hubs []models.Hub
	if err := c.get(ctx, "/api/hubs", &hubs); err != nil {
		return nil, fmt.Errorf("client.FetchHubs: %w", err)
	}
	return hubs, nil
}

// IssueVoucher requests a voucher for a hub.
func (c *Client) IssueVoucher(ctx context.Context, hubID string) (*models.IssueVoucherResponse, error) {
	var issued models.IssueVoucherResponse
	if err := c.post(ctx, "/api/voucher/issue", models.IssueVoucherRequest{HubID: hubID}, &issued); err != nil {
		return nil, fmt.Errorf("client.IssueVoucher: %w", err)
	}
	return &issued, nil
}

// RedeemVoucher redeems a voucher by id.
func (c *Client) RedeemVoucher(ctx context.Context, id string) (*models.RedeemVoucherResponse, error) {
	var redeemed models.RedeemVoucherResponse
	if err := c.post(ctx, "/api/voucher/redeem", models.RedeemVoucherRequest{ID: id}, &redeemed); err != nil {
		return nil, fmt.Errorf("client.RedeemVoucher: %w", err)
	}
	return &redeemed, nil
}

// AdminLogin exchanges the shared password for a bearer token and
// stores it on the client.
func (c *Client) AdminLogin(ctx context.Context, password string) (string, error) {
	var resp models.AdminLoginResponse
	if err := c.post(ctx, "/api/admin/login", models.AdminLoginRequest{Password: strings.TrimSpace(password)}, &resp); err != nil {
		return "", fmt.Errorf("client.AdminLogin: %w", err)
	}
	c.token = resp.Token
	return resp.Token, nil
}

// AdminMe probes whether the stored token is still valid.
func (c *Client) AdminMe(ctx context.Context) (*models.AdminMeResponse, error) {
	var me models.AdminMeResponse
	if err := c.get(ctx, "/api/admin/me", &me); err != nil {
		return nil, fmt.Errorf("client.AdminMe: %w", err)
	}
	return &me, nil
}

// CreateHub creates a hub (admin).
func (c *Client) CreateHub(ctx context.Context, req models.CreateHubRequest) (*models.Hub, error) {
	var resp models.HubResponse
	if err := c.post(ctx, "/api/admin/hubs", req, &resp); err != nil {
		return nil, fmt.Errorf("client.CreateHub: %w", err)
	}
	return &resp.Hub, nil
}

// UpdateHub merges a partial edit into a hub (admin).
func (c *Client) UpdateHub(ctx context.Context, id string, req models.UpdateHubRequest) (*models.Hub, error) {
	var resp models.HubResponse
	if err := c.doRequest(ctx, http.MethodPut, "/api/admin/hubs/"+url.PathEscape(id), req, &resp); err != nil {
		return nil, fmt.Errorf("client.UpdateHub: %w", err)
	}
	return &resp.Hub, nil
}

// DeleteHub deletes a hub (admin).
func (c *Client) DeleteHub(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/api/admin/hubs/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteHub: %w", err)
	}
	return nil
}

// ResetHub restores a hub's remaining vouchers to its daily cap (admin).
func (c *Client) ResetHub(ctx context.Context, id string) (*models.Hub, error) {
	var resp models.HubResponse
	if err := c.post(ctx, "/api/admin/hubs/"+url.PathEscape(id)+"/reset", nil, &resp); err != nil {
		return nil, fmt.Errorf("client.ResetHub: %w", err)
	}
	return &resp.Hub, nil
}

// ResetAll triggers the machine demo reset using the shared secret.
// Returns the server's plain-text confirmation.
func (c *Client) ResetAll(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/admin/reset", nil)
	if err != nil {
		return "", fmt.Errorf("client.ResetAll: %w", err)
	}
	req.Header.Set("x-admin-secret", c.secret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("client.ResetAll: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("client.ResetAll: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("client.ResetAll: %w", &HTTPError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))})
	}

	return string(body), nil
}

// AskAI sends a chat question with hub context.
func (c *Client) AskAI(ctx context.Context, question string, hubs []models.Hub, locale string) (*models.AskAIResponse, error) {
	var resp models.AskAIResponse
	if err := c.post(ctx, "/api/ai", models.AskAIRequest{Question: question, Hubs: hubs, Locale: locale}, &resp); err != nil {
		return nil, fmt.Errorf("client.AskAI: %w", err)
	}
	return &resp, nil
}

// --- internals ---

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFromResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) errorFromResponse(resp *http.Response) error {
	httpErr := &HTTPError{StatusCode: resp.StatusCode}

	var body models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		httpErr.Message = body.Message
	} else if body.Error != "" {
		httpErr.Message = body.Error
	} else {
		httpErr.Message = http.StatusText(resp.StatusCode)
	}

	return httpErr
}
