package upstream

import (
	"context"
	"net/http"

	"doorsteps/internal/domain"
)

type loginRequest struct {
	PhoneNumber string `json:"phone_number"`
}

type verifyOTPRequest struct {
	PhoneNumber string `json:"phone_number"`
	OTP         string `json:"otp"`
}

// VerifyOTPResult carries the issued access token together with the
// profile as the backend knows it at login time.
type VerifyOTPResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type SetupProfileRequest struct {
	FullName string          `json:"full_name"`
	Email    string          `json:"email,omitempty"`
	Gender   string          `json:"gender,omitempty"`
	AgeGroup string          `json:"age_group,omitempty"`
	Mode     domain.UserMode `json:"mode,omitempty"`
}

// Login asks the backend to send an OTP to the given phone.
func (c *Client) Login(ctx context.Context, phone string) error {
	return c.do(ctx, http.MethodPost, "/api/v1/auth/login", loginRequest{PhoneNumber: phone}, nil)
}

func (c *Client) VerifyOTP(ctx context.Context, phone, otp string) (*VerifyOTPResult, error) {
	var out VerifyOTPResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/verify-otp", verifyOTPRequest{PhoneNumber: phone, OTP: otp}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SetupProfile(ctx context.Context, req SetupProfileRequest) (*domain.User, error) {
	var out domain.User
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/setup-profile", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me fetches the fresh profile for the current token.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var out domain.User
	if err := c.do(ctx, http.MethodGet, "/api/v1/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SwitchMode flips the customer/professional view server-side.
func (c *Client) SwitchMode(ctx context.Context, mode domain.UserMode) (*domain.User, error) {
	var out domain.User
	if err := c.do(ctx, http.MethodPatch, "/api/v1/users/me/mode", map[string]any{"mode": mode}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
