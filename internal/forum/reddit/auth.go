package reddit

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
)

// passwordSource fetches script-app tokens with the resource owner password grant.
type passwordSource struct {
	ctx      context.Context
	conf     *oauth2.Config
	username string
	password string
}

func (s passwordSource) Token() (*oauth2.Token, error) {
	return s.conf.PasswordCredentialsToken(s.ctx, s.username, s.password)
}

// userAgentTransport stamps every request, token exchanges included, with the bot's agent.
type userAgentTransport struct {
	agent string
	base  http.RoundTripper
}

func (t userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.agent)
	return t.base.RoundTrip(r)
}

// newAuthorizedClient returns an HTTP client that authenticates with a reused password-grant token.
func newAuthorizedClient(cfg Config, base *http.Client) *http.Client {
	transport := base.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	agentClient := &http.Client{
		Transport: userAgentTransport{agent: cfg.UserAgent, base: transport},
		Timeout:   base.Timeout,
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, agentClient)

	conf := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  cfg.TokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
	src := oauth2.ReuseTokenSource(nil, passwordSource{
		ctx:      ctx,
		conf:     conf,
		username: cfg.Username,
		password: cfg.Password,
	})
	return oauth2.NewClient(ctx, src)
}
