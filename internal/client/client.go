// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package client calls a remote invocation boundary over its HTTP binding.
// It speaks the same envelopes as the registry, so callers handle local and
// remote invocations alike.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/research-analytics/internal/errors"
	"github.com/pdiddy/research-analytics/internal/httputil"
	"github.com/pdiddy/research-analytics/internal/registry"
	"github.com/pdiddy/research-analytics/pkg/types"
)

// ErrUnexpectedStatus reports a response that carries no envelope.
var ErrUnexpectedStatus = errors.New("unexpected HTTP status")

// Client talks to one remote boundary.
type Client struct {
	baseURL    string
	http       *http.Client
	token      string
	userAgent  string
	maxRetries int
}

// New returns a client for the server at baseURL (e.g.
// "http://localhost:8080"). token, when non-empty, is sent as a bearer
// token.
func New(baseURL string, cfg types.ClientConfig, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		http:       &http.Client{Timeout: cfg.Timeout},
		token:      token,
		userAgent:  cfg.UserAgent,
		maxRetries: cfg.MaxRetries,
	}
}

// Functions fetches the remote function descriptions.
func (c *Client) Functions(ctx context.Context) ([]registry.FunctionDescription, error) {
	var out []registry.FunctionDescription
	if _, err := c.do(ctx, http.MethodGet, "/api/functions", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// Invoke calls one remote function. Failed invocations come back as
// envelopes with Success false, not as errors; an error means the call
// never produced an envelope.
func (c *Client) Invoke(ctx context.Context, name string, params map[string]any) (registry.Envelope, error) {
	var env registry.Envelope
	_, err := c.do(ctx, http.MethodPost, "/api/invoke",
		registry.Call{Function: name, Parameters: params}, &env,
		http.StatusOK, http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError)
	if err != nil {
		return registry.Envelope{}, err
	}
	if !env.Success && env.Error == nil {
		return registry.Envelope{}, errors.Newf("invoking %s: response is neither a success nor an error envelope", name)
	}
	return env, nil
}

// InvokeBatch calls a remote batch and returns one envelope per call.
func (c *Client) InvokeBatch(ctx context.Context, calls []registry.Call) ([]registry.Envelope, error) {
	var out registry.BatchResponse
	if _, err := c.do(ctx, http.MethodPost, "/api/invoke/batch",
		registry.BatchRequest{Calls: calls}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	if len(out.Results) != len(calls) {
		return nil, errors.Newf("batch returned %d results for %d calls", len(out.Results), len(calls))
	}
	return out.Results, nil
}

// do sends body as JSON and decodes the response into out when its status
// is one of accept.
func (c *Client) do(ctx context.Context, method, path string, body, out any, accept ...int) (int, error) {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return 0, errors.Wrap(err, "encoding request")
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, errors.Wrap(err, "building request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.maxRetries)
	if err != nil {
		return 0, errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, errors.Wrap(err, "reading response")
	}

	if !accepted(resp.StatusCode, accept) {
		return resp.StatusCode, errors.WithDetailf(
			errors.Wrapf(ErrUnexpectedStatus, "%s %s: %d", method, path, resp.StatusCode),
			"body: %s", truncate(data, 512))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return resp.StatusCode, errors.Wrapf(err, "decoding %s response", path)
	}
	return resp.StatusCode, nil
}

func accepted(status int, accept []int) bool {
	for _, s := range accept {
		if status == s {
			return true
		}
	}
	return false
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
