// Package social contiene los DTOs de los endpoints del broker.
package social

import "time"

// PageTokenPayload es el payload del resultado de /facebook/page-token.
type PageTokenPayload struct {
	PageID          string `json:"pageId"`
	PageName        string `json:"page_name"`
	PageAccessToken string `json:"page_access_token"`
}

// PagePostRequest es el body de POST /facebook/page-post/{pageId}.
type PagePostRequest struct {
	Message string `json:"message"`
}

// InstagramPostRequest es el body de POST /instagram/post/{igUserId}.
type InstagramPostRequest struct {
	ImageURL string `json:"imageUrl"`
	Caption  string `json:"caption"`
}

// ProviderStatus indica si hay credencial almacenada para un provider.
type ProviderStatus struct {
	Connected  bool       `json:"connected"`
	ObtainedAt *time.Time `json:"obtained_at,omitempty"`
}

// HomeResponse es el estado de conexión por provider (GET /).
type HomeResponse struct {
	Facebook  ProviderStatus `json:"fb"`
	Instagram ProviderStatus `json:"ig"`
	TikTok    ProviderStatus `json:"tt"`
}

// ResultResponse es la vista del último resultado (GET /result).
type ResultResponse struct {
	Title   string `json:"title"`
	Payload any    `json:"payload,omitempty"`
	Error   string `json:"error,omitempty"`
}
