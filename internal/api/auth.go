package api

import (
	"context"
	"fmt"

	"github.com/agrilearn/agrilearn/internal/storage"
	"github.com/agrilearn/agrilearn/internal/validation"
)

// AuthResponse is the { token, user } envelope returned by the login
// and register endpoints.
type AuthResponse struct {
	Token string       `json:"token"`
	User  storage.User `json:"user"`
}

// Login exchanges credentials for a bearer token. Validation happens
// before any network traffic.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, fmt.Errorf("password is required")
	}

	payload := map[string]string{"email": email, "password": password}
	var resp AuthResponse
	if err := c.postJSON(ctx, "/login", payload, &resp); err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("login response missing token")
	}
	return &resp, nil
}

// RegisterRequest carries the sign-up form.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

func (r *RegisterRequest) validate() error {
	if err := validation.ValidateRequired(
		validation.Field{Name: "name", Value: r.Name},
		validation.Field{Name: "email", Value: r.Email},
		validation.Field{Name: "password", Value: r.Password},
		validation.Field{Name: "phone", Value: r.Phone},
	); err != nil {
		return err
	}
	if err := validation.ValidateEmail(r.Email); err != nil {
		return err
	}
	if err := validation.ValidatePhone(r.Phone); err != nil {
		return err
	}
	return validation.ValidatePassword(r.Password)
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var resp AuthResponse
	if err := c.postJSON(ctx, "/register", req, &resp); err != nil {
		return nil, fmt.Errorf("registering: %w", err)
	}
	return &resp, nil
}

// ForgotPassword starts the two-step OTP reset: the API mails a
// one-time code to the address.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	if err := validation.ValidateEmail(email); err != nil {
		return err
	}

	payload := map[string]string{"email": email}
	if err := c.postJSON(ctx, "/forgot-password", payload, nil); err != nil {
		return fmt.Errorf("requesting password reset: %w", err)
	}
	return nil
}

// ResetPassword completes the OTP flow with the mailed code and the
// new password.
func (c *Client) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	if err := validation.ValidateEmail(email); err != nil {
		return err
	}
	if err := validation.ValidateRequired(validation.Field{Name: "otp", Value: otp}); err != nil {
		return err
	}
	if err := validation.ValidatePassword(newPassword); err != nil {
		return err
	}

	payload := map[string]string{
		"email":       email,
		"otp":         otp,
		"newPassword": newPassword,
	}
	if err := c.postJSON(ctx, "/reset-password", payload, nil); err != nil {
		return fmt.Errorf("resetting password: %w", err)
	}
	return nil
}

// ListUsers needs an admin token; forum screens use it to resolve
// author names.
func (c *Client) ListUsers(ctx context.Context) ([]*storage.User, error) {
	var users []*storage.User
	if err := c.getJSON(ctx, "/users", &users); err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}
