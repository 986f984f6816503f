// Package session holds the per-browser state of the broker: the credentials
// obtained per provider, the pending anti-CSRF state for flows in progress,
// and the last operation result shown by the result viewer.
//
// A Session is exclusively owned by the request that loaded it; the store
// provides no mutual exclusion across concurrent requests for the same
// session, so a double-submitted callback is last-write-wins.
package session

import "time"

// Provider keys used in the CredentialSet and PendingAuthState maps.
const (
	KeyFacebook  = "fb"
	KeyInstagram = "ig"
	KeyTikTok    = "tt"
)

// Credential is an obtained bearer credential for one provider.
// Expiry is the provider's responsibility; no expiry checks happen here.
type Credential struct {
	AccessToken     string    `json:"access_token"`
	RefreshToken    string    `json:"refresh_token,omitempty"`
	ObtainedAt      time.Time `json:"obtained_at"`
	PageAccessToken string    `json:"page_access_token,omitempty"`
}

// PendingAuth is the per-provider state issued when an authorization
// redirect goes out. Consumed (read once) by the matching callback.
type PendingAuth struct {
	State        string `json:"state"`
	CodeVerifier string `json:"code_verifier,omitempty"`
}

// Result is the outcome of the last completed operation, success or failure.
// Overwritten by every handler that completes.
type Result struct {
	Title   string `json:"title"`
	Payload any    `json:"payload,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Session is the state object passed by reference into each handler.
type Session struct {
	ID          string                  `json:"id"`
	Credentials map[string]*Credential  `json:"credentials,omitempty"`
	Pending     map[string]*PendingAuth `json:"pending,omitempty"`
	LastResult  *Result                 `json:"last_result,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
}

// New creates an empty session with the given id.
func New(id string) *Session {
	return &Session{
		ID:          id,
		Credentials: map[string]*Credential{},
		Pending:     map[string]*PendingAuth{},
		CreatedAt:   time.Now().UTC(),
	}
}

// Credential returns the stored credential for a provider, or nil.
func (s *Session) Credential(provider string) *Credential {
	if s.Credentials == nil {
		return nil
	}
	return s.Credentials[provider]
}

// SetCredential replaces the credential for a provider.
func (s *Session) SetCredential(provider string, c *Credential) {
	if s.Credentials == nil {
		s.Credentials = map[string]*Credential{}
	}
	s.Credentials[provider] = c
}

// ClearCredential removes the credential for a provider (logout/unlink).
func (s *Session) ClearCredential(provider string) {
	if s.Credentials != nil {
		delete(s.Credentials, provider)
	}
}

// SetPending overwrites any prior pending value for the provider.
func (s *Session) SetPending(provider string, p *PendingAuth) {
	if s.Pending == nil {
		s.Pending = map[string]*PendingAuth{}
	}
	s.Pending[provider] = p
}

// ConsumePending returns and clears the pending auth state for a provider.
// Returns nil when no flow was started (or the session was lost in between).
func (s *Session) ConsumePending(provider string) *PendingAuth {
	if s.Pending == nil {
		return nil
	}
	p := s.Pending[provider]
	delete(s.Pending, provider)
	return p
}

// SetResult overwrites the last result.
func (s *Session) SetResult(r *Result) {
	s.LastResult = r
}
