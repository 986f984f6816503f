// Package social implementa los flujos OAuth (start/callback) y los action
// endpoints autenticados contra los providers.
package social

// Services agrupa todos los services del dominio social.
type Services struct {
	Start     StartService
	Callback  CallbackService
	Facebook  FacebookService
	Instagram InstagramService
	TikTok    TikTokService
}
