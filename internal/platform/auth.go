package platform

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/felixgeelhaar/carbonwallet/internal/errors"
)

// TokenResponse is the body of a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// Login exchanges credentials for an access token. The request is form
// encoded with grant_type=password. Rejected credentials (400, 401, 403)
// are reported as AUTH-001.
func (c *Client) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	req := formRequest(http.MethodPost, "/auth/login", url.Values{
		"username":   {username},
		"password":   {password},
		"grant_type": {"password"},
	})
	req.classify = func(status int, _ string) error {
		switch status {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
			return errors.NewInvalidCredentialsError(status)
		}
		return nil
	}

	var tokenResp TokenResponse
	if err := c.do(ctx, req, &tokenResp); err != nil {
		return nil, err
	}

	if strings.TrimSpace(tokenResp.AccessToken) == "" {
		return nil, errors.New(errors.ErrCodeAPIDecode, "login response did not contain an access token")
	}

	return &tokenResp, nil
}
