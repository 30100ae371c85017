// Copyright (c) 2026 SkillHub. All rights reserved.

/*
Package gateway provides the single HTTP client for the remote marketplace API.

Every network call the front end makes goes through this client. It is the one
place where the bearer token is attached to outgoing requests and the one
place where upstream authorization failures are intercepted.

Architecture:

  - Token injection: the token source is consulted per request, so the header
    always reflects the durable session state loaded for the current request,
    never a cached copy.
  - Auth-failure policy: an upstream 401/403 fires a single hook (wired to the
    session layer, which clears the login state) and surfaces SESSION_EXPIRED.
    Views never interpret authorization failures themselves.
  - Error taxonomy: transport failures, validation rejections (Laravel-style
    422 envelopes), and other upstream rejections map to distinct [apperr]
    codes.

Domain packages build their typed upstream accessors on the generic
Get/Post/Put helpers, mirroring how storage backends are implemented
per-domain elsewhere in the codebase.
*/
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/skillhub/web/internal/platform/apperr"
	"github.com/skillhub/web/internal/platform/constants"
	"github.com/skillhub/web/internal/platform/ctxutil"
)

// TokenSource yields the bearer token for the current request, or the empty
// string for anonymous calls.
type TokenSource func(ctx context.Context) string

// AuthFailureHook runs when the upstream rejects the bearer token.
type AuthFailureHook func(ctx context.Context)

// Message is the minimal envelope most upstream mutations respond with.
type Message struct {
	Message string `json:"message"`
}

// Client is the shared marketplace API client.
type Client struct {
	base          *url.URL
	httpClient    *http.Client
	log           *slog.Logger
	token         TokenSource
	onAuthFailure AuthFailureHook
}

// New creates a gateway client for the given base address.
//
// httpClient may be nil, in which case a default client bounded by
// [constants.UpstreamRequestTimeout] is used.
func New(baseURL string, httpClient *http.Client, logger *slog.Logger, token TokenSource) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("gateway: invalid base URL %q: %w", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("gateway: base URL %q must be absolute", baseURL)
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.UpstreamRequestTimeout}
	}
	if token == nil {
		token = func(context.Context) string { return "" }
	}

	return &Client{
		base:       base,
		httpClient: httpClient,
		log:        logger,
		token:      token,
	}, nil
}

// SetAuthFailureHook installs the session-clearing hook.
//
// Installed after construction because the session service itself depends on
// the gateway for token revocation.
func (client *Client) SetAuthFailureHook(hook AuthFailureHook) {
	client.onAuthFailure = hook
}

// # Request Helpers

// Get performs a GET request and decodes the response body into out.
func (client *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return client.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post performs a POST request with a JSON body.
func (client *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return client.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put performs a PUT request with a JSON body.
func (client *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return client.do(ctx, http.MethodPut, path, nil, body, out)
}

// Ping reports whether the upstream API is reachable. Used by readiness probes.
func (client *Client) Ping(ctx context.Context) error {
	return client.Get(ctx, "/locations", nil, nil)
}

// do executes one upstream call end to end: URL assembly, token injection,
// error mapping, and response decoding.
func (client *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	target := *client.base
	target.Path = strings.TrimRight(target.Path, "/") + path
	if query != nil {
		target.RawQuery = query.Encode()
	}

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperr.Internal(fmt.Errorf("gateway: encode request body: %w", err))
		}
		payload = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, target.String(), payload)
	if err != nil {
		return apperr.Internal(fmt.Errorf("gateway: build request: %w", err))
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	// The token source reads the session state loaded for this request, so
	// even calls issued mid-login carry the freshest credential.
	if token := client.token(ctx); token != "" {
		request.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		client.log.WarnContext(ctx, "upstream_unreachable",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return apperr.UpstreamUnavailable(err)
	}
	defer func() { _ = response.Body.Close() }()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return apperr.UpstreamUnavailable(fmt.Errorf("gateway: read response: %w", err))
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		if out == nil || len(bytes.TrimSpace(raw)) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return apperr.UpstreamUnavailable(fmt.Errorf("gateway: decode response: %w", err))
		}
		return nil
	}

	return client.mapFailure(ctx, method, path, response.StatusCode, raw)
}

// mapFailure converts a non-2xx upstream response into an [apperr.AppError].
func (client *Client) mapFailure(ctx context.Context, method, path string, status int, raw []byte) error {
	logger := ctxutil.GetLogger(ctx)

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		// Centralized policy: the session layer clears the login state and
		// the caller redirects to the login page.
		logger.WarnContext(ctx, "upstream_auth_rejected",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", status),
		)
		if client.onAuthFailure != nil {
			client.onAuthFailure(ctx)
		}
		return apperr.SessionExpired()

	case status == http.StatusUnprocessableEntity:
		return decodeValidationFailure(raw)

	default:
		var envelope Message
		_ = json.Unmarshal(raw, &envelope)
		logger.WarnContext(ctx, "upstream_request_rejected",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", status),
		)
		return apperr.Upstream(status, envelope.Message)
	}
}

// decodeValidationFailure maps a Laravel-style 422 payload
// ({"message": ..., "errors": {field: [msgs]}}) onto field-level details.
func decodeValidationFailure(raw []byte) error {
	var envelope struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	_ = json.Unmarshal(raw, &envelope)

	message := envelope.Message
	if message == "" {
		message = "Validation failed"
	}

	details := make([]apperr.FieldError, 0, len(envelope.Errors))
	for field, messages := range envelope.Errors {
		if len(messages) == 0 {
			continue
		}
		details = append(details, apperr.FieldError{Field: field, Message: messages[0]})
	}

	return apperr.Unprocessable(message, details...)
}
