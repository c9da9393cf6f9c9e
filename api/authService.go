package api

import (
	"context"
	"net/http"

	"github.com/Kariqs/amexan-storefront/models"
)

func (c *Client) Signup(ctx context.Context, data models.SignupData) (models.AuthResponse, error) {
	var res models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/signup", data, &res)
	return res, err
}

func (c *Client) Login(ctx context.Context, data models.LoginData) (models.AuthResponse, error) {
	var res models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", data, &res)
	return res, err
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *Client) CheckEmail(ctx context.Context, email string) (bool, error) {
	var res models.EmailCheck
	err := c.do(ctx, http.MethodGet, "/auth/check-email", nil, &res, withQuery(map[string]string{"email": email}))
	return res.Exists, err
}

func (c *Client) CurrentUser(ctx context.Context) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user)
	return user, err
}

func (c *Client) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodPut, "/auth/profile", update, &user)
	return user, err
}

func (c *Client) ChangePassword(ctx context.Context, data models.ChangePasswordData) error {
	return c.do(ctx, http.MethodPost, "/auth/change-password", data, nil)
}
