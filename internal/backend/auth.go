package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/srilaxmialankar/storefront-golang/internal/models"
)

// SignupInput is the payload for /auth/signup.
type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

// Login exchanges email/password credentials for a token + user.
func (c *Client) Login(ctx context.Context, email, password string) (models.AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result models.AuthResult
	if err := c.do(ctx, http.MethodPost, c.endpoints.AuthLogin(), nil, body, &result); err != nil {
		return models.AuthResult{}, err
	}
	if result.Token == "" {
		return models.AuthResult{}, fmt.Errorf("%w: login response carried no token", ErrUnexpectedShape)
	}
	return result, nil
}

// Signup registers a new account and, like Login, returns a token + user.
func (c *Client) Signup(ctx context.Context, input SignupInput) (models.AuthResult, error) {
	var result models.AuthResult
	if err := c.do(ctx, http.MethodPost, c.endpoints.AuthSignup(), nil, input, &result); err != nil {
		return models.AuthResult{}, err
	}
	return result, nil
}

// GoogleSignin exchanges a Google identity token for our backend's token.
func (c *Client) GoogleSignin(ctx context.Context, idToken string) (models.AuthResult, error) {
	body := map[string]string{"idToken": idToken}
	var result models.AuthResult
	if err := c.do(ctx, http.MethodPost, c.endpoints.AuthGoogleSignin(), nil, body, &result); err != nil {
		return models.AuthResult{}, err
	}
	return result, nil
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, c.endpoints.AuthProfile(), nil, nil, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}
