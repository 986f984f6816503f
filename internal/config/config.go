package config

import (
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del servicio.
// Se carga desde YAML (opcional) y se sobreescribe con variables de entorno.
type Config struct {
	// Bloque app (opcional en YAML). Si no está, queda vacío.
	App struct {
		// dev | staging | prod
		Env string `yaml:"env"`
	} `yaml:"app"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Session struct {
		CookieName string        `yaml:"cookie_name"`
		Domain     string        `yaml:"domain"`
		SameSite   string        `yaml:"samesite"`
		Secure     bool          `yaml:"secure"`
		TTL        time.Duration `yaml:"ttl"`
	} `yaml:"session"`

	Cache struct {
		Kind  string `yaml:"kind"` // memory | redis
		Redis struct {
			Addr   string `yaml:"addr"`
			DB     int    `yaml:"db"`
			Prefix string `yaml:"prefix"`
		} `yaml:"redis"`
		Memory struct {
			DefaultTTL time.Duration `yaml:"default_ttl"`
		} `yaml:"memory"`
	} `yaml:"cache"`

	// ───────── Providers ─────────
	// Cada provider es un triple (client id, client secret, redirect uri) más
	// parámetros de flujo. Los scopes y el callback path de TikTok son
	// configuración explícita: las dos revisiones observadas del flujo difieren
	// y no se adivina cuál es la canónica.
	Providers struct {
		Facebook  ProviderConfig `yaml:"facebook"`
		Instagram ProviderConfig `yaml:"instagram"`
		TikTok    ProviderConfig `yaml:"tiktok"`
	} `yaml:"providers"`

	// Endpoints upstream. Overridables en tests (httptest).
	Graph struct {
		AuthBaseURL string `yaml:"auth_base_url"` // https://www.facebook.com
		BaseURL     string `yaml:"base_url"`      // https://graph.facebook.com
		Version     string `yaml:"version"`       // v21.0
	} `yaml:"graph"`

	TikTok struct {
		AuthURL    string `yaml:"auth_url"`     // https://www.tiktok.com/v2/auth/authorize/
		TokenURL   string `yaml:"token_url"`    // https://open.tiktokapis.com/v2/oauth/token/
		APIBaseURL string `yaml:"api_base_url"` // https://open.tiktokapis.com
	} `yaml:"tiktok"`
}

// ProviderConfig es el triple de credenciales más los parámetros del flujo.
type ProviderConfig struct {
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	RedirectURI  string   `yaml:"redirect_uri"`
	Scopes       []string `yaml:"scopes"`
	CallbackPath string   `yaml:"callback_path"`
}

// Load carga la configuración desde un archivo YAML (si path no es vacío y
// existe) y aplica overrides de entorno y defaults.
// Un client id/secret faltante es un error de despliegue, no se valida acá.
func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
		} else if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, err
		}
	}

	c.applyEnv()
	c.applyDefaults()
	return &c, nil
}

// applyEnv aplica las variables de entorno documentadas (un triple por provider).
// Env gana sobre YAML.
func (c *Config) applyEnv() {
	setenv := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}

	setenv(&c.App.Env, "APP_ENV")
	setenv(&c.Server.Addr, "SERVER_ADDR")

	setenv(&c.Providers.Facebook.ClientID, "FB_APP_ID")
	setenv(&c.Providers.Facebook.ClientSecret, "FB_APP_SECRET")
	setenv(&c.Providers.Facebook.RedirectURI, "FB_REDIRECT_URI")

	setenv(&c.Providers.Instagram.ClientID, "IG_APP_ID")
	setenv(&c.Providers.Instagram.ClientSecret, "IG_APP_SECRET")
	setenv(&c.Providers.Instagram.RedirectURI, "IG_REDIRECT_URI")

	setenv(&c.Providers.TikTok.ClientID, "TT_CLIENT_KEY")
	setenv(&c.Providers.TikTok.ClientSecret, "TT_CLIENT_SECRET")
	setenv(&c.Providers.TikTok.RedirectURI, "TT_REDIRECT_URI")

	if v := strings.TrimSpace(os.Getenv("TT_SCOPES")); v != "" {
		c.Providers.TikTok.Scopes = strings.Split(v, ",")
	}
	setenv(&c.Providers.TikTok.CallbackPath, "TT_CALLBACK_PATH")

	setenv(&c.Cache.Kind, "CACHE_KIND")
	setenv(&c.Cache.Redis.Addr, "REDIS_ADDR")
}

// applyDefaults aplica defaults sanos.
func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "sg_session"
	}
	if c.Session.TTL <= 0 {
		c.Session.TTL = 24 * time.Hour
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.Memory.DefaultTTL <= 0 {
		c.Cache.Memory.DefaultTTL = 24 * time.Hour
	}

	if c.Graph.AuthBaseURL == "" {
		c.Graph.AuthBaseURL = "https://www.facebook.com"
	}
	if c.Graph.BaseURL == "" {
		c.Graph.BaseURL = "https://graph.facebook.com"
	}
	if c.Graph.Version == "" {
		c.Graph.Version = "v21.0"
	}

	if c.TikTok.AuthURL == "" {
		c.TikTok.AuthURL = "https://www.tiktok.com/v2/auth/authorize/"
	}
	if c.TikTok.TokenURL == "" {
		c.TikTok.TokenURL = "https://open.tiktokapis.com/v2/oauth/token/"
	}
	if c.TikTok.APIBaseURL == "" {
		c.TikTok.APIBaseURL = "https://open.tiktokapis.com"
	}

	if len(c.Providers.Facebook.Scopes) == 0 {
		c.Providers.Facebook.Scopes = []string{
			"pages_show_list",
			"pages_manage_posts",
			"pages_read_engagement",
			"publish_video",
		}
	}
	if len(c.Providers.Instagram.Scopes) == 0 {
		c.Providers.Instagram.Scopes = []string{
			"instagram_basic",
			"pages_show_list",
			"business_management",
			"ads_management",
			"pages_manage_posts",
		}
	}
	if len(c.Providers.TikTok.Scopes) == 0 {
		c.Providers.TikTok.Scopes = []string{
			"user.info.basic",
			"video.upload",
			"video.publish",
		}
	}
	if c.Providers.Facebook.CallbackPath == "" {
		c.Providers.Facebook.CallbackPath = "/callback/facebook"
	}
	if c.Providers.Instagram.CallbackPath == "" {
		c.Providers.Instagram.CallbackPath = "/callback/instagram"
	}
	if c.Providers.TikTok.CallbackPath == "" {
		c.Providers.TikTok.CallbackPath = "/callback/tiktok"
	}
}
