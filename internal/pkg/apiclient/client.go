// Package apiclient is the single configured pipeline to the REST backend.
// Every call carries the stored bearer token and fails after the configured
// timeout.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-edudash/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-edudash/internal/pkg/config"
)

// DefaultTimeout applies when the config leaves the timeout unset.
const DefaultTimeout = 5000 * time.Millisecond

// maxErrorBody bounds how much of an error response is read for its msg.
const maxErrorBody = 64 << 10

type Client struct {
	baseURL string
	timeout time.Duration
	base    http.RoundTripper
	http    *http.Client
	logger  *zap.Logger
	tracer  trace.Tracer
}

// New builds a client without credentials. Use WithTokens to bind it to a
// token store.
func New(cfg config.APIConfig, logger *zap.Logger) *Client {
	return newClient(cfg, otelhttp.NewTransport(http.DefaultTransport), logger)
}

func newClient(cfg config.APIConfig, base http.RoundTripper, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: timeout,
		base:    base,
		logger:  logger,
		tracer:  otel.Tracer("edudash/apiclient"),
	}
	c.http = &http.Client{Timeout: timeout, Transport: &bearerTransport{base: base}}
	return c
}

// WithTokens returns a copy of c whose requests carry the token from ts.
// The copy shares the underlying transport and its connection pool.
func (c *Client) WithTokens(ts TokenSource) *Client {
	clone := *c
	clone.http = &http.Client{
		Timeout:   c.timeout,
		Transport: &bearerTransport{base: c.base, tokens: ts},
	}
	return &clone
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// do sends one request and decodes a JSON answer into out when out is
// non-nil. Non-2xx answers become *APIError.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	ctx, span := c.tracer.Start(ctx, "apiclient "+method+" "+path, trace.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.String("edudash.backend.path", path),
	))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "build request")
		return errors.Wrapf(err, "building %s %s", method, path)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		err = classify(err, method, path)
		metrics.Observe(ctx, metrics.Get().BackendRequestDuration, elapsed.Seconds(), "method", method, "result", "error")
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		c.logger.Warn("Backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	metrics.Observe(ctx, metrics.Get().BackendRequestDuration, elapsed.Seconds(), "method", method, "result", strconv.Itoa(resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Method: method, Path: path, Status: resp.StatusCode, Message: errorMessage(resp.Body)}
		span.SetStatus(codes.Error, apiErr.Error())
		c.logger.Debug("Backend returned error status",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("msg", apiErr.Message))
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		span.RecordError(err)
		return errors.Wrapf(classify(err, method, path), "decoding response")
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	if in == nil {
		return c.do(ctx, method, path, nil, "", out)
	}
	data, err := json.Marshal(in)
	if err != nil {
		return errors.Wrapf(err, "encoding %s %s body", method, path)
	}
	return c.do(ctx, method, path, bytes.NewReader(data), "application/json", out)
}

// errorMessage extracts the backend's {"msg": "..."} text, if any.
func errorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}
	var envelope struct {
		Msg   string `json:"msg"`
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &envelope) != nil {
		return ""
	}
	if envelope.Msg != "" {
		return envelope.Msg
	}
	return envelope.Error
}
