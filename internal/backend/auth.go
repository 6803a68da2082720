package backend

import (
	"context"
	"net/http"

	"github.com/ujjiboni/dashboard/internal/domain"
)

type loginResponse struct {
	Envelope
	domain.LoginResponse
}

type profileResponse struct {
	Envelope
	User domain.User `json:"user"`
}

type setupPasswordResponse struct {
	Envelope
	Token string `json:"token"`
}

func (c *Client) Login(ctx context.Context, req domain.LoginRequest) (string, error) {
	var resp loginResponse
	err := c.do(ctx, request{method: http.MethodPost, path: "/auth/login", body: req, skipAuth: true}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *Client) Profile(ctx context.Context) (*domain.User, error) {
	var resp profileResponse
	if err := c.get(ctx, "/auth/profile", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

type changePasswordPayload struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword returns the backend's confirmation message.
func (c *Client) ChangePassword(ctx context.Context, req domain.ChangePasswordRequest) (string, error) {
	var resp Envelope
	payload := changePasswordPayload{CurrentPassword: req.CurrentPassword, NewPassword: req.NewPassword}
	if err := c.post(ctx, "/auth/change-password", payload, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

type setupPasswordPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	OTPCode  string `json:"otpCode"`
}

func (c *Client) SetupPassword(ctx context.Context, req domain.SetupPasswordRequest) (*domain.SetupPasswordResponse, error) {
	var resp setupPasswordResponse
	payload := setupPasswordPayload{Email: req.Email, Password: req.Password, OTPCode: req.OTPCode}
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/auth/setup-password-with-otp",
		body:     payload,
		skipAuth: true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &domain.SetupPasswordResponse{Token: resp.Token, Message: resp.Message}, nil
}
