// Package tiktok is a minimal TikTok open-API client (user info only).
package tiktok

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ProfileFields are the user-info fields the broker requests.
const ProfileFields = "open_id,union_id,avatar_url,display_name"

// Client is a TikTok open-API client. Safe for concurrent use.
type Client struct {
	base string
	http *http.Client
}

// New creates a client against the given base URL (empty for the real API).
func New(base string) *Client {
	if base == "" {
		base = "https://open.tiktokapis.com"
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// Error is a TikTok API error.
type Error struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("tiktok: status %d", e.Status)
}

// UserInfo is the profile payload returned by /v2/user/info/.
type UserInfo struct {
	OpenID      string `json:"open_id"`
	UnionID     string `json:"union_id,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context, accessToken string) (*UserInfo, error) {
	q := url.Values{}
	q.Set("fields", ProfileFields)
	u := c.base + "/v2/user/info/?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	// TikTok wraps responses as {"data": {"user": {...}}, "error": {...}}.
	var wrapper struct {
		Data struct {
			User UserInfo `json:"user"`
		} `json:"data"`
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, fmt.Errorf("tiktok: decode response: %w", err)
	}

	if resp.StatusCode/100 != 2 || (wrapper.Error.Code != "" && wrapper.Error.Code != "ok") {
		return nil, &Error{Status: resp.StatusCode, Code: wrapper.Error.Code, Message: wrapper.Error.Message}
	}
	return &wrapper.Data.User, nil
}
