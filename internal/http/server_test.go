package http

import (
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/socialgate/internal/config"
)

// fakeGraph emula los endpoints del Graph API que usa el flujo de Facebook.
func fakeGraph(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v21.0/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"message":"Invalid verification code format.","type":"OAuthException","code":100}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"fb-user-token","token_type":"bearer"}`))
	})
	mux.HandleFunc("/v21.0/me/accounts", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":"111","name":"Page One","access_token":"pt-1"}]}`))
	})
	return httptest.NewServer(mux)
}

func newBrokerForTest(t *testing.T, upstream string) *httptest.Server {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)

	cfg.Graph.AuthBaseURL = upstream
	cfg.Graph.BaseURL = upstream
	cfg.TikTok.TokenURL = upstream + "/v2/oauth/token/"
	cfg.TikTok.APIBaseURL = upstream
	cfg.Providers.Facebook.ClientID = "fb-app-id"
	cfg.Providers.Facebook.ClientSecret = "fb-app-secret"
	cfg.Providers.Facebook.RedirectURI = "http://broker.test/callback/facebook"

	handler, err := BuildHandler(cfg)
	require.NoError(t, err)
	return httptest.NewServer(handler)
}

func noRedirectClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func getResult(t *testing.T, client *http.Client, base string) map[string]any {
	t.Helper()
	resp, err := client.Get(base + "/result")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestFacebookFlow_EndToEnd(t *testing.T) {
	upstream := fakeGraph(t)
	defer upstream.Close()
	broker := newBrokerForTest(t, upstream.URL)
	defer broker.Close()

	client := noRedirectClient(t)

	// 1. Iniciar el flujo: redirect al consent con state en la URL.
	resp, err := client.Get(broker.URL + "/auth/facebook")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)

	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	state := loc.Query().Get("state")
	require.NotEmpty(t, state)
	require.Equal(t, "fb-app-id", loc.Query().Get("client_id"))

	// 2. Callback con code y el state emitido.
	resp, err = client.Get(broker.URL + "/callback/facebook?code=good-code&state=" + state)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/result", resp.Header.Get("Location"))

	// 3. El resultado muestra las páginas del usuario.
	result := getResult(t, client, broker.URL)
	require.Equal(t, "Facebook: Your Pages", result["title"])
	require.Empty(t, result["error"])

	// 4. Home refleja la conexión.
	homeResp, err := client.Get(broker.URL + "/")
	require.NoError(t, err)
	defer homeResp.Body.Close()
	var home map[string]map[string]any
	require.NoError(t, json.NewDecoder(homeResp.Body).Decode(&home))
	require.Equal(t, true, home["fb"]["connected"])
	require.Equal(t, false, home["tt"]["connected"])
}

func TestFacebookFlow_ForgedState(t *testing.T) {
	upstream := fakeGraph(t)
	defer upstream.Close()
	broker := newBrokerForTest(t, upstream.URL)
	defer broker.Close()

	client := noRedirectClient(t)

	resp, err := client.Get(broker.URL + "/auth/facebook")
	require.NoError(t, err)
	resp.Body.Close()

	// Callback con un state forjado: el flujo termina en /result con error.
	resp, err = client.Get(broker.URL + "/callback/facebook?code=good-code&state=forged")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)

	result := getResult(t, client, broker.URL)
	require.Equal(t, "Facebook OAuth Error", result["title"])
	require.Equal(t, "Invalid or missing state parameter.", result["error"])
}

func TestActionEndpoint_NotAuthenticated(t *testing.T) {
	upstream := fakeGraph(t)
	defer upstream.Close()
	broker := newBrokerForTest(t, upstream.URL)
	defer broker.Close()

	client := noRedirectClient(t)

	resp, err := client.Get(broker.URL + "/facebook/page-token/111")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "No credential stored for this provider. Connect the account first.", body["message"])
}

func TestUnknownProvider_Is404(t *testing.T) {
	upstream := fakeGraph(t)
	defer upstream.Close()
	broker := newBrokerForTest(t, upstream.URL)
	defer broker.Close()

	client := noRedirectClient(t)

	for _, path := range []string{"/auth/twitter", "/callback/twitter?code=c&state=s", "/logout/twitter"} {
		resp, err := client.Get(broker.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode, "path %s", path)
	}
}

func TestLogout_ClearsSingleProvider(t *testing.T) {
	upstream := fakeGraph(t)
	defer upstream.Close()
	broker := newBrokerForTest(t, upstream.URL)
	defer broker.Close()

	client := noRedirectClient(t)

	// Conectar Facebook primero.
	resp, err := client.Get(broker.URL + "/auth/facebook")
	require.NoError(t, err)
	resp.Body.Close()
	loc, _ := url.Parse(resp.Header.Get("Location"))
	resp, err = client.Get(broker.URL + "/callback/facebook?code=good-code&state=" + loc.Query().Get("state"))
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = client.Get(broker.URL + "/logout/facebook")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)

	result := getResult(t, client, broker.URL)
	require.Equal(t, "Facebook Logout", result["title"])
	require.Equal(t, "Disconnected from Facebook.", result["payload"])

	homeResp, err := client.Get(broker.URL + "/")
	require.NoError(t, err)
	defer homeResp.Body.Close()
	var home map[string]map[string]any
	require.NoError(t, json.NewDecoder(homeResp.Body).Decode(&home))
	require.Equal(t, false, home["fb"]["connected"])
}

func TestHealthz(t *testing.T) {
	upstream := fakeGraph(t)
	defer upstream.Close()
	broker := newBrokerForTest(t, upstream.URL)
	defer broker.Close()

	resp, err := http.Get(broker.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestResult_EmptySession(t *testing.T) {
	upstream := fakeGraph(t)
	defer upstream.Close()
	broker := newBrokerForTest(t, upstream.URL)
	defer broker.Close()

	result := getResult(t, noRedirectClient(t), broker.URL)
	require.Equal(t, "No result", result["title"])
}
