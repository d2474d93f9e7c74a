package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/edumanage/edudash/internal/errors"
)

// credentialsRequest is the body of password-grant and sign-up calls.
type credentialsRequest struct {
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Data     *SignUpMetadata `json:"data,omitempty"`
}

// SignIn exchanges credentials for a session using the password grant.
// A provider rejection comes back as an AUTH-001 coded error; transport
// failures as AUTH-004.
func (c *Client) SignIn(ctx context.Context, email, password string) (*AuthSession, error) {
	query := url.Values{"grant_type": {"password"}}
	req := credentialsRequest{Email: email, Password: password}

	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/v1/token", query, req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAuthUnreachable, "auth provider unreachable", err)
	}

	var session AuthSession
	if err := parseResponse(resp, &session); err != nil {
		if isRejection(err) {
			return nil, errors.NewInvalidCredentialsError(err)
		}
		return nil, errors.Wrap(errors.ErrCodeAuthUnreachable, "sign-in failed", err)
	}

	c.SetToken(session.AccessToken)
	return &session, nil
}

// SignUp creates a new account with the given profile metadata. The backend
// creates the matching profile row. Duplicate emails and validation
// rejections come back as AUTH-002.
func (c *Client) SignUp(ctx context.Context, email, password string, meta SignUpMetadata) (*AuthSession, error) {
	req := credentialsRequest{Email: email, Password: password, Data: &meta}

	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/v1/signup", nil, req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAuthUnreachable, "auth provider unreachable", err)
	}

	var session AuthSession
	if err := parseResponse(resp, &session); err != nil {
		if isRejection(err) {
			return nil, errors.NewSignUpRejectedError(err)
		}
		return nil, errors.Wrap(errors.ErrCodeAuthUnreachable, "sign-up failed", err)
	}

	if session.AccessToken != "" {
		c.SetToken(session.AccessToken)
	}
	return &session, nil
}

// SignOut revokes the current session server-side and always drops the local
// token, so no later request can reuse it even when the revocation fails.
func (c *Client) SignOut(ctx context.Context) error {
	if c.Token() == "" {
		return nil
	}
	defer c.ClearToken()

	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/v1/logout", nil, nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeAuthUnreachable, "sign-out request failed", err)
	}
	return parseResponse(resp, nil)
}

// CurrentUser resolves the user behind the current access token. Used for
// the initial session check when a cached token exists.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/auth/v1/user", nil, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAuthUnreachable, "auth provider unreachable", err)
	}

	var user User
	if err := parseResponse(resp, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// isRejection reports whether the provider explicitly refused the request,
// as opposed to being unreachable or broken.
func isRejection(err error) bool {
	apiErr, ok := err.(*APIError)
	if !ok {
		return false
	}
	switch apiErr.StatusCode {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusUnprocessableEntity:
		return true
	}
	return false
}
