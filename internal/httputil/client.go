// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across pipeline stages.
package httputil

import (
	"net/http"
	"time"

	"github.com/pdiddy/paperfeed/pkg/types"
)

const defaultTimeout = 60 * time.Second

// TokenTransport adds the API credential and User-Agent to every request.
// The Paperless token scheme is "Authorization: Token <token>", not Bearer.
type TokenTransport struct {
	Token     string
	UserAgent string
	Base      http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *TokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	if t.Token != "" {
		clone.Header.Set("Authorization", "Token "+t.Token)
	}
	if t.UserAgent != "" {
		clone.Header.Set("User-Agent", t.UserAgent)
	}
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(clone)
}

// NewClient builds an http.Client carrying the token transport and the
// configured timeout. A zero timeout falls back to 60 s.
func NewClient(cfg types.APIConfig) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &TokenTransport{
			Token:     cfg.Token,
			UserAgent: cfg.UserAgent,
		},
	}
}
