// Package graph is a minimal Facebook Graph API client covering the calls
// the broker needs: listing managed pages, resolving the Instagram business
// account linked to a page, and the page-feed / IG-media write endpoints.
package graph

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

// DefaultVersion is the Graph API version the broker targets.
const DefaultVersion = "v21.0"

// Client is a Facebook Graph API client. Safe for concurrent use.
type Client struct {
	base string
	ver  string
	http *http.Client
}

// New creates a Graph client against the given base URL (empty for the real
// endpoint). Version defaults to DefaultVersion.
func New(base, version string) *Client {
	if base == "" {
		base = "https://graph.facebook.com"
	}
	if version == "" {
		version = DefaultVersion
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		ver:  version,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// Error is a Graph API error response.
type Error struct {
	Status  int
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("graph: status %d", e.Status)
}

// Page is one managed page from /me/accounts.
type Page struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AccessToken string `json:"access_token,omitempty"`
	Category    string `json:"category,omitempty"`
}

// PageList is the /me/accounts response.
type PageList struct {
	Data []Page `json:"data"`
}

// IGAccount is the Instagram business account linked to a page.
type IGAccount struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
}

// PageInfo is the per-page enrichment result. Error is set in place when the
// lookup for this page failed; the other entries are unaffected.
type PageInfo struct {
	ID                       string     `json:"id"`
	Name                     string     `json:"name"`
	InstagramBusinessAccount *IGAccount `json:"instagram_business_account,omitempty"`
	Error                    string     `json:"error,omitempty"`
}

// PostResult is the response of the write endpoints (feed post, media publish).
type PostResult struct {
	ID     string `json:"id"`
	PostID string `json:"post_id,omitempty"`
}

// ListPages lists the pages the user manages.
// fields may be empty for the default page shape (includes access tokens).
func (c *Client) ListPages(ctx context.Context, accessToken, fields string) (*PageList, error) {
	q := url.Values{}
	q.Set("access_token", accessToken)
	if fields != "" {
		q.Set("fields", fields)
	}
	var out PageList
	if err := c.get(ctx, "/me/accounts", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PageInfo fetches a page's name and linked Instagram business account.
func (c *Client) PageInfo(ctx context.Context, pageID, accessToken string) (*PageInfo, error) {
	q := url.Values{}
	q.Set("access_token", accessToken)
	q.Set("fields", "name,instagram_business_account{id,username}")
	var out PageInfo
	if err := c.get(ctx, "/"+pageID, q, &out); err != nil {
		return nil, err
	}
	out.ID = pageID
	return &out, nil
}

// PostToFeed publishes a message to a page's feed using a page-scoped token.
func (c *Client) PostToFeed(ctx context.Context, pageID, pageToken, message string) (*PostResult, error) {
	form := url.Values{}
	form.Set("message", message)
	var out PostResult
	if err := c.post(ctx, "/"+pageID+"/feed", pageToken, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateMedia creates an IG media container (step 1 of publishing).
func (c *Client) CreateMedia(ctx context.Context, igUserID, accessToken, imageURL, caption string) (*PostResult, error) {
	form := url.Values{}
	form.Set("image_url", imageURL)
	form.Set("caption", caption)
	var out PostResult
	if err := c.post(ctx, "/"+igUserID+"/media", accessToken, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PublishMedia publishes a previously created media container (step 2).
func (c *Client) PublishMedia(ctx context.Context, igUserID, accessToken, creationID string) (*PostResult, error) {
	form := url.Values{}
	form.Set("creation_id", creationID)
	var out PostResult
	if err := c.post(ctx, "/"+igUserID+"/media_publish", accessToken, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	u := c.base + "/" + c.ver + path + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path, accessToken string, form url.Values, out any) error {
	u := c.base + "/" + c.ver + path + "?" + url.Values{"access_token": {accessToken}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}

	if resp.StatusCode/100 != 2 {
		gerr := &Error{Status: resp.StatusCode}
		var wrapper struct {
			Error *Error `json:"error"`
		}
		if json.Unmarshal(body, &wrapper) == nil && wrapper.Error != nil {
			gerr.Message = wrapper.Error.Message
			gerr.Type = wrapper.Error.Type
			gerr.Code = wrapper.Error.Code
		}
		return gerr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("graph: decode response: %w", err)
	}
	return nil
}
