// Package social contains controllers for the OAuth broker endpoints.
package social

import (
	svc "github.com/dropDatabas3/socialgate/internal/http/services/social"
	"github.com/dropDatabas3/socialgate/internal/provider"
	"github.com/dropDatabas3/socialgate/internal/session"
)

// Controllers agrupa todos los controllers del dominio social.
type Controllers struct {
	Home      *HomeController
	Start     *StartController
	Callback  *CallbackController
	Result    *ResultController
	Logout    *LogoutController
	Facebook  *FacebookController
	Instagram *InstagramController
	TikTok    *TikTokController
}

// NewControllers creates the social controllers aggregator.
func NewControllers(s svc.Services, sessions *session.Manager, registry *provider.Registry) *Controllers {
	return &Controllers{
		Home:      NewHomeController(),
		Start:     NewStartController(s.Start, sessions),
		Callback:  NewCallbackController(s.Callback, sessions),
		Result:    NewResultController(),
		Logout:    NewLogoutController(sessions, registry),
		Facebook:  NewFacebookController(s.Facebook, sessions),
		Instagram: NewInstagramController(s.Instagram, sessions),
		TikTok:    NewTikTokController(s.TikTok, sessions),
	}
}
