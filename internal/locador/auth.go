package locador

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

const loginPath = "/auth/login"

// Credentials are posted as a form to the login endpoint.
type Credentials struct {
	Username string
	Password string
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for a bearer token and installs it on the client.
func (c *Client) Login(ctx context.Context, creds Credentials) (*oauth2.Token, error) {
	if strings.TrimSpace(creds.Username) == "" {
		return nil, fmt.Errorf("username is required")
	}
	form := url.Values{}
	form.Set("username", creds.Username)
	form.Set("password", creds.Password)

	rel := &url.URL{Path: loginPath}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolve(rel).String(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var payload loginResponse
	if err := c.roundTrip(c.plain, req, rel.Path, &payload); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if payload.AccessToken == "" {
		return nil, fmt.Errorf("login: empty access token")
	}

	tok := NewToken(payload.AccessToken, payload.TokenType)
	c.SetToken(tok)
	c.logger.Info().Str("user", creds.Username).Time("expires", tok.Expiry).Msg("session started")
	return tok, nil
}

// Logout drops the session token.
func (c *Client) Logout() {
	c.SetToken(nil)
}

// NewToken wraps an access token. When the token is a JWT its exp claim is
// copied to Expiry; the signature is not checked here, the backend does that.
func NewToken(access, tokenType string) *oauth2.Token {
	if strings.TrimSpace(tokenType) == "" {
		tokenType = "bearer"
	}
	return &oauth2.Token{
		AccessToken: access,
		TokenType:   tokenType,
		Expiry:      tokenExpiry(access),
	}
}

func tokenExpiry(access string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(access, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

// SessionExpiry returns when the current token expires; zero when unknown.
func (c *Client) SessionExpiry() time.Time {
	tok := c.Token()
	if tok == nil {
		return time.Time{}
	}
	return tok.Expiry
}
