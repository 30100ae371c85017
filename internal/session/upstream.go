// Copyright (c) 2026 SkillHub. All rights reserved.

package session

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/skillhub/web/internal/gateway"
)

// upstreamAuth wraps the gateway calls the auth flows depend on.
type upstreamAuth struct {
	client *gateway.Client
}

// loginResponse tolerates the upstream's two token spellings and three
// display-name spellings.
type loginResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"access_token"`
	User        struct {
		ID       json.Number `json:"id"`
		Role     string      `json:"role"`
		Name     string      `json:"name"`
		FullName string      `json:"full_name"`
		Username string      `json:"username"`
	} `json:"user"`
}

// bearer returns the issued token under either field name.
func (r *loginResponse) bearer() string {
	if r.Token != "" {
		return r.Token
	}
	return r.AccessToken
}

// displayName returns the best available name for the user.
func (r *loginResponse) displayName() string {
	switch {
	case r.User.Name != "":
		return r.User.Name
	case r.User.FullName != "":
		return r.User.FullName
	case r.User.Username != "":
		return r.User.Username
	}
	return "User"
}

// login exchanges credentials for a token and user record.
func (u *upstreamAuth) login(ctx context.Context, email, password string) (*loginResponse, error) {
	body := map[string]string{"email": email, "password": password}

	var response loginResponse
	if err := u.client.Post(ctx, "/login", body, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// RegisterInput is forwarded verbatim to the upstream /register endpoint.
type RegisterInput struct {
	FullName             string `json:"full_name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	Phone                string `json:"phone,omitempty"`
	Role                 string `json:"role"`
}

// register creates an account upstream.
func (u *upstreamAuth) register(ctx context.Context, input RegisterInput) (*gateway.Message, error) {
	var response gateway.Message
	if err := u.client.Post(ctx, "/register", input, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// revoke notifies the upstream that the current token should be invalidated.
func (u *upstreamAuth) revoke(ctx context.Context) error {
	return u.client.Post(ctx, "/logout", struct{}{}, nil)
}

// hasProfile reports whether the logged-in provider already completed a
// profile. The upstream answers {"profile": {...}} or {"profile": null}.
func (u *upstreamAuth) hasProfile(ctx context.Context) (bool, error) {
	var response struct {
		Profile json.RawMessage `json:"profile"`
	}
	if err := u.client.Get(ctx, "/provider/profile", nil, &response); err != nil {
		return false, err
	}

	trimmed := bytes.TrimSpace(response.Profile)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return false, nil
	}
	return true, nil
}
