package provider

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

// Token is the credential returned by a token endpoint.
type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

// ExchangeError carries the provider's error message verbatim when the
// token endpoint rejected the exchange.
type ExchangeError struct {
	Status  int
	Message string
}

func (e *ExchangeError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("token endpoint returned status %d", e.Status)
}

// Exchanger swaps an authorization code for a Token.
// verifier is empty for non-PKCE providers.
type Exchanger interface {
	Exchange(ctx context.Context, cfg Config, code, verifier string) (*Token, error)
}

// HTTPExchanger is the production Exchanger. One attempt per call, no
// retries, no backoff.
type HTTPExchanger struct {
	http *http.Client
}

// NewExchanger creates an HTTPExchanger with a 10s timeout.
func NewExchanger() *HTTPExchanger {
	return &HTTPExchanger{http: &http.Client{Timeout: 10 * time.Second}}
}

// Exchange performs the server-to-server code exchange.
// Facebook Graph takes a GET with query parameters; TikTok takes a POST form
// carrying client_key and the PKCE verifier. Both shapes are driven by cfg.
func (x *HTTPExchanger) Exchange(ctx context.Context, cfg Config, code, verifier string) (*Token, error) {
	params := url.Values{}
	params.Set(cfg.clientIDParam(), cfg.ClientID)
	params.Set("client_secret", cfg.ClientSecret)
	params.Set("redirect_uri", cfg.RedirectURI)
	params.Set("code", code)
	if !cfg.TokenViaGet {
		params.Set("grant_type", "authorization_code")
	}
	if cfg.UsePKCE && verifier != "" {
		params.Set("code_verifier", verifier)
	}

	var req *http.Request
	var err error
	if cfg.TokenViaGet {
		sep := "?"
		if strings.Contains(cfg.TokenURL, "?") {
			sep = "&"
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, cfg.TokenURL+sep+params.Encode(), nil)
	} else {
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, cfg.TokenURL, strings.NewReader(params.Encode()))
		if req != nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	}
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := x.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode/100 != 2 {
		return nil, &ExchangeError{Status: resp.StatusCode, Message: upstreamMessage(body)}
	}

	var tok Token
	if err := json.Unmarshal(body, &tok); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	if tok.AccessToken == "" {
		// TikTok reports some failures with 200 and an error payload.
		return nil, &ExchangeError{Status: resp.StatusCode, Message: upstreamMessage(body)}
	}
	return &tok, nil
}

// upstreamMessage extracts a human-readable message from the provider's
// error payload. Facebook nests it under error.message; TikTok uses
// error_description or message at the top level.
func upstreamMessage(body []byte) string {
	// Facebook shape: {"error": {"message": "..."}}
	var fb struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &fb) == nil && fb.Error.Message != "" {
		return fb.Error.Message
	}

	// TikTok shape: {"error": "...", "error_description": "..."} or {"message": "..."}
	var tt struct {
		ErrorDescription string `json:"error_description"`
		Message          string `json:"message"`
	}
	if json.Unmarshal(body, &tt) == nil {
		if tt.ErrorDescription != "" {
			return tt.ErrorDescription
		}
		if tt.Message != "" {
			return tt.Message
		}
	}
	return ""
}
