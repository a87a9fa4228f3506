package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/isdelr/staff-portal/internal/models"
)

// Login exchanges credentials for a bearer token using the OAuth2 password form.
func (c *Client) Login(ctx context.Context, email, password string) (models.Token, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/token", nil), strings.NewReader(form.Encode()))
	if err != nil {
		return models.Token{}, fmt.Errorf("failed to build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var token models.Token
	if err := c.send(req, &token); err != nil {
		return models.Token{}, err
	}
	if token.AccessToken == "" {
		return models.Token{}, fmt.Errorf("backend returned an empty access token")
	}
	return token, nil
}
